package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	defaultShowsFolder  = "Shows"
	defaultSyncInterval = 6 * time.Hour
	defaultHTTPTimeout  = 80 * time.Second
	defaultMaxRetries   = 3
)

// Config is the explicit configuration record passed into each component.
type Config struct {
	VaultDir          string `toml:"vault_dir"`
	ShowsFolder       string `toml:"shows_folder"`
	DataDir           string `toml:"data_dir"`
	TraktAPIKey       string `toml:"trakt_api_key"`
	TraktClientSecret string `toml:"trakt_client_secret"`
	SyncIntervalMin   int    `toml:"sync_interval_minutes"`
	HTTPTimeoutSec    int    `toml:"http_timeout_seconds"`
	MaxRetries        int    `toml:"max_retries"`
}

// Load reads the TOML file at path when given (or the default location when
// one exists), applies environment overrides and validates required values.
func Load(path string) (*Config, error) {
	cfg := &Config{
		ShowsFolder:     defaultShowsFolder,
		SyncIntervalMin: int(defaultSyncInterval / time.Minute),
		HTTPTimeoutSec:  int(defaultHTTPTimeout / time.Second),
		MaxRetries:      defaultMaxRetries,
	}

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.applyEnv()

	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = defaultPath()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func defaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "shownotes", "config.toml")
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"TRAKT_API_KEY":       &c.TraktAPIKey,
		"TRAKT_CLIENT_SECRET": &c.TraktClientSecret,
		"SHOWNOTES_VAULT_DIR": &c.VaultDir,
		"SHOWNOTES_DATA_DIR":  &c.DataDir,
	}
	for key, ptr := range overrides {
		if value := os.Getenv(key); value != "" {
			*ptr = value
		}
	}
}

func (c *Config) validate() error {
	required := map[string]string{
		"trakt_api_key (TRAKT_API_KEY)":             c.TraktAPIKey,
		"trakt_client_secret (TRAKT_CLIENT_SECRET)": c.TraktClientSecret,
		"vault_dir (SHOWNOTES_VAULT_DIR)":           c.VaultDir,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("required configuration missing: %s", name)
		}
	}
	return nil
}

// ShowsDir is the folder holding one note per show.
func (c *Config) ShowsDir() string {
	return filepath.Join(c.VaultDir, c.ShowsFolder)
}

func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "shownotes.db")
}

func (c *Config) TokenPath() string {
	return filepath.Join(c.DataDir, "token.json")
}

func (c *Config) SyncInterval() time.Duration {
	return time.Duration(c.SyncIntervalMin) * time.Minute
}

func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSec) * time.Second
}
