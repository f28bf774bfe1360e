package storage

import (
	"context"
	"fmt"

	"shownotes/internal/domain"

	"github.com/timshannon/bolthold"
)

type showRepository struct {
	store *bolthold.Store
}

// OpenShowRepository opens the sync-state database at path.
func OpenShowRepository(path string) (domain.ShowRepository, error) {
	store, err := bolthold.Open(path, 0666, nil)
	if err != nil {
		return nil, fmt.Errorf("opening show database: %w", err)
	}
	return &showRepository{store: store}, nil
}

// NewShowRepository wraps an already opened store.
func NewShowRepository(store *bolthold.Store) domain.ShowRepository {
	return &showRepository{store: store}
}

func (r *showRepository) Upsert(ctx context.Context, record *domain.ShowRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := r.store.Upsert(record.TraktID, record); err != nil {
		return fmt.Errorf("upserting show record: %w", err)
	}
	return nil
}

func (r *showRepository) Get(ctx context.Context, traktID int64) (*domain.ShowRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var record domain.ShowRecord
	if err := r.store.Get(traktID, &record); err != nil {
		if err == bolthold.ErrNotFound {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("getting show record: %w", err)
	}
	return &record, nil
}

func (r *showRepository) FindAll(ctx context.Context) ([]domain.ShowRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var records []domain.ShowRecord
	if err := r.store.Find(&records, (&bolthold.Query{}).SortBy("Title")); err != nil {
		return nil, fmt.Errorf("listing show records: %w", err)
	}
	return records, nil
}

// DeleteNotInList prunes records for shows no longer present in the watch
// history.
func (r *showRepository) DeleteNotInList(ctx context.Context, traktIDs []int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ids := make([]interface{}, len(traktIDs))
	for i, id := range traktIDs {
		ids[i] = id
	}

	err := r.store.DeleteMatching(&domain.ShowRecord{}, bolthold.Where("TraktID").Not().ContainsAny(ids...))
	if err != nil {
		return fmt.Errorf("pruning stale show records: %w", err)
	}
	return nil
}

func (r *showRepository) Close() error {
	return r.store.Close()
}
