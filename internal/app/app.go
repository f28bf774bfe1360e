package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shownotes/internal/clients"
	"shownotes/internal/config"
	"shownotes/internal/domain"
	"shownotes/internal/service"
	"shownotes/internal/storage"

	log "github.com/sirupsen/logrus"
)

type App struct {
	cfg     *config.Config
	shows   domain.ShowRepository
	tracker *clients.TraktClient
	syncSvc *service.SyncService
}

// New loads configuration and wires every dependency. Missing credentials
// fail here, before any remote call.
func New(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	shows, err := storage.OpenShowRepository(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	tracker, err := clients.NewTraktClient(cfg)
	if err != nil {
		shows.Close()
		return nil, fmt.Errorf("initializing trakt: %w", err)
	}

	return &App{
		cfg:     cfg,
		shows:   shows,
		tracker: tracker,
		syncSvc: service.NewSyncService(cfg, tracker, storage.NewFileVault(), shows),
	}, nil
}

// SyncOnce runs a single sync pass.
func (a *App) SyncOnce(ctx context.Context) error {
	return a.syncSvc.Run(ctx)
}

// Run executes sync passes at the configured interval until a shutdown
// signal arrives or the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			log.WithField("signal", sig).Info("received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	a.runPass(ctx)

	ticker := time.NewTicker(a.cfg.SyncInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("sync loop stopped")
			return nil
		case <-ticker.C:
			a.runPass(ctx)
		}
	}
}

func (a *App) runPass(ctx context.Context) {
	log.WithField("component", "sync").Info("starting sync pass")
	if err := a.syncSvc.Run(ctx); err != nil {
		log.WithFields(log.Fields{
			"component": "sync",
			"error":     err,
		}).Error("sync pass failed")
	}
}

func (a *App) Close() error {
	if err := a.shows.Close(); err != nil {
		return fmt.Errorf("closing store: %w", err)
	}
	return nil
}
