package storage

import (
	"fmt"
	"os"

	"shownotes/internal/domain"
)

// FileVault implements the Vault contract over the local filesystem.
type FileVault struct{}

func NewFileVault() domain.Vault {
	return &FileVault{}
}

func (v *FileVault) FolderExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (v *FileVault) CreateFolder(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("creating folder %s: %w", path, err)
	}
	return nil
}

func (v *FileVault) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (v *FileVault) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func (v *FileVault) CreateFile(path, content string) error {
	return v.WriteFile(path, content)
}

func (v *FileVault) WriteFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
