package domain

import "context"

// Tracker is the narrow contract against the remote tracking service.
type Tracker interface {
	WatchedShows(ctx context.Context) ([]WatchedShow, error)
	Ratings(ctx context.Context) ([]RatingEvent, error)
	SeasonSummaries(ctx context.Context, slug string) ([]SeasonSummary, error)
	RefreshToken(ctx context.Context) error
}

// Vault is the narrow contract against the local notes storage.
type Vault interface {
	FolderExists(path string) bool
	CreateFolder(path string) error
	FileExists(path string) bool
	ReadFile(path string) (string, error)
	CreateFile(path, content string) error
	WriteFile(path, content string) error
}

// ShowRepository persists per-show sync state.
type ShowRepository interface {
	Upsert(ctx context.Context, record *ShowRecord) error
	Get(ctx context.Context, traktID int64) (*ShowRecord, error)
	FindAll(ctx context.Context) ([]ShowRecord, error)
	DeleteNotInList(ctx context.Context, traktIDs []int64) error
	Close() error
}
