package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"shownotes/internal/domain"
)

func setupTestRepo(t *testing.T) domain.ShowRepository {
	t.Helper()
	repo, err := OpenShowRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening repository: %v", err)
	}
	t.Cleanup(func() {
		repo.Close()
	})
	return repo
}

func TestShowRepositoryUpsertAndGet(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	record := &domain.ShowRecord{
		TraktID:      42,
		Title:        "Severance",
		Slug:         "severance",
		Year:         2022,
		Path:         "/vault/Shows/Severance (42).md",
		SeasonCount:  2,
		EpisodeCount: 5,
		LastSyncedAt: time.Now(),
	}

	if err := repo.Upsert(ctx, record); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := repo.Get(ctx, 42)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "Severance" || got.EpisodeCount != 5 {
		t.Errorf("Get() = %+v, want stored record", got)
	}

	record.EpisodeCount = 6
	if err := repo.Upsert(ctx, record); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}
	got, err = repo.Get(ctx, 42)
	if err != nil {
		t.Fatalf("Get() after update error = %v", err)
	}
	if got.EpisodeCount != 6 {
		t.Errorf("EpisodeCount = %d, want updated value 6", got.EpisodeCount)
	}
}

func TestShowRepositoryGetMissing(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.Get(context.Background(), 99999)
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Errorf("Get() error = %v, want ErrRecordNotFound", err)
	}
}

func TestShowRepositoryFindAllSorted(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	for _, record := range []*domain.ShowRecord{
		{TraktID: 1, Title: "Zebra Story"},
		{TraktID: 2, Title: "Andor"},
		{TraktID: 3, Title: "Severance"},
	} {
		if err := repo.Upsert(ctx, record); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}

	records, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("FindAll() returned %d records, want 3", len(records))
	}
	if records[0].Title != "Andor" || records[2].Title != "Zebra Story" {
		t.Errorf("FindAll() not sorted by title: %v", records)
	}
}

func TestShowRepositoryDeleteNotInList(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	for id := int64(1); id <= 3; id++ {
		if err := repo.Upsert(ctx, &domain.ShowRecord{TraktID: id, Title: "Show"}); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}

	if err := repo.DeleteNotInList(ctx, []int64{1, 3}); err != nil {
		t.Fatalf("DeleteNotInList() error = %v", err)
	}

	if _, err := repo.Get(ctx, 2); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Error("record 2 should have been pruned")
	}
	if _, err := repo.Get(ctx, 1); err != nil {
		t.Errorf("record 1 should survive pruning: %v", err)
	}
}

func TestShowRepositoryCancelledContext(t *testing.T) {
	repo := setupTestRepo(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := repo.Upsert(ctx, &domain.ShowRecord{TraktID: 1}); !errors.Is(err, context.Canceled) {
		t.Errorf("Upsert() error = %v, want context.Canceled", err)
	}
	if _, err := repo.FindAll(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("FindAll() error = %v, want context.Canceled", err)
	}
}
