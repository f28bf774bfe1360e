package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"shownotes/internal/config"
	"shownotes/internal/domain"
	"shownotes/internal/note"

	log "github.com/sirupsen/logrus"
)

// SyncService synchronizes the user's watched-show history into the vault.
type SyncService struct {
	cfg     *config.Config
	tracker domain.Tracker
	vault   domain.Vault
	shows   domain.ShowRepository
}

// NewSyncService creates a new SyncService.
func NewSyncService(cfg *config.Config, tracker domain.Tracker, vault domain.Vault, shows domain.ShowRepository) *SyncService {
	return &SyncService{
		cfg:     cfg,
		tracker: tracker,
		vault:   vault,
		shows:   shows,
	}
}

// Run executes one full sync pass. A valid session is acquired up front;
// when the token refresh fails the run aborts before any authenticated call.
func (s *SyncService) Run(ctx context.Context) error {
	if err := s.tracker.RefreshToken(ctx); err != nil {
		return fmt.Errorf("refreshing trakt session: %w", err)
	}

	if err := s.ensureFolders(); err != nil {
		return err
	}

	events, err := s.tracker.Ratings(ctx)
	if err != nil {
		return fmt.Errorf("fetching ratings: %w", err)
	}

	watched, err := s.tracker.WatchedShows(ctx)
	if err != nil {
		return fmt.Errorf("fetching watched shows: %w", err)
	}
	if len(watched) == 0 {
		log.Warn("watch history is empty, nothing to sync")
		return nil
	}

	watchedIDs := make([]int64, 0, len(watched))
	synced := 0
	for i := range watched {
		show := watched[i]
		if err := ctx.Err(); err != nil {
			return err
		}

		watchedIDs = append(watchedIDs, show.IDs.Trakt)
		if err := s.syncShow(ctx, show, events); err != nil {
			log.WithFields(log.Fields{
				"show":    show.Title,
				"traktID": show.IDs.Trakt,
				"error":   err,
			}).Error("failed to sync show, continuing with the rest")
			continue
		}
		synced++
	}

	if err := s.shows.DeleteNotInList(ctx, watchedIDs); err != nil {
		log.WithField("error", err).Warn("failed to prune stale show records")
	}

	log.WithFields(log.Fields{
		"synced": synced,
		"total":  len(watched),
	}).Info("sync completed")
	return nil
}

func (s *SyncService) ensureFolders() error {
	for _, dir := range []string{s.cfg.VaultDir, s.cfg.ShowsDir()} {
		if s.vault.FolderExists(dir) {
			continue
		}
		if err := s.vault.CreateFolder(dir); err != nil {
			return fmt.Errorf("preparing vault folders: %w", err)
		}
	}
	return nil
}

func (s *SyncService) syncShow(ctx context.Context, show domain.WatchedShow, events []domain.RatingEvent) error {
	summaries, err := s.tracker.SeasonSummaries(ctx, show.IDs.Slug)
	if err != nil {
		return fmt.Errorf("fetching season summaries: %w", err)
	}

	candidate := note.Build(show, summaries, events)
	path := s.notePath(show)

	if s.vault.FileExists(path) {
		if err := s.updateNote(candidate, path, show); err != nil {
			return err
		}
	} else {
		if err := s.vault.CreateFile(path, candidate.Render()); err != nil {
			return fmt.Errorf("creating note: %w", err)
		}
		log.WithFields(log.Fields{
			"show": show.Title,
			"path": path,
		}).Info("created note")
	}

	return s.recordSync(ctx, show, summaries, events, path)
}

func (s *SyncService) updateNote(candidate note.Note, path string, show domain.WatchedShow) error {
	existing, err := s.vault.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading existing note: %w", err)
	}

	merged := candidate.Merge(existing)
	if merged == existing {
		log.WithField("show", show.Title).Debug("note unchanged, skipping write")
		return nil
	}

	if err := s.vault.WriteFile(path, merged); err != nil {
		return fmt.Errorf("updating note: %w", err)
	}
	log.WithFields(log.Fields{
		"show": show.Title,
		"path": path,
	}).Info("updated note")
	return nil
}

func (s *SyncService) recordSync(ctx context.Context, show domain.WatchedShow, summaries []domain.SeasonSummary, events []domain.RatingEvent, path string) error {
	episodes := int64(0)
	for _, summary := range summaries {
		episodes += int64(len(summary.Episodes))
	}
	rating, _ := note.ResolveShowRating(show.IDs.Trakt, events)

	record := &domain.ShowRecord{
		TraktID:      show.IDs.Trakt,
		Title:        show.Title,
		Slug:         show.IDs.Slug,
		Year:         show.Year,
		Path:         path,
		SeasonCount:  int64(len(summaries)),
		EpisodeCount: episodes,
		Rating:       rating,
		LastSyncedAt: time.Now(),
	}
	if err := s.shows.Upsert(ctx, record); err != nil {
		return fmt.Errorf("recording sync state: %w", err)
	}
	return nil
}

func (s *SyncService) notePath(show domain.WatchedShow) string {
	name := fmt.Sprintf("%s (%d).md", note.Sanitize(show.Title), show.IDs.Trakt)
	return filepath.Join(s.cfg.ShowsDir(), name)
}
