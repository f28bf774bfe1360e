package clients

import (
	"context"
	"fmt"
	"net/http"

	"shownotes/internal/config"
	"shownotes/internal/domain"

	"github.com/jacklaaa89/trakt"
	"github.com/jacklaaa89/trakt/authorization"
	"github.com/jacklaaa89/trakt/show"
	"github.com/jacklaaa89/trakt/sync"
)

// TraktClient adapts the Trakt API to the domain Tracker interface.
type TraktClient struct {
	token        *trakt.Token
	clientSecret string
	tokenPath    string
}

// NewTraktClient configures the Trakt backend and loads a stored token,
// running the device-code flow when none exists yet.
func NewTraktClient(cfg *config.Config) (*TraktClient, error) {
	trakt.Key = cfg.TraktAPIKey

	trakt.WithConfig(&trakt.BackendConfig{
		MaxNetworkRetries: cfg.MaxRetries,
		HTTPClient:        &http.Client{Timeout: cfg.HTTPTimeout()},
	})

	token, err := loadOrGenerateToken(cfg.TraktClientSecret, cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("loading trakt token: %w", err)
	}

	return &TraktClient{
		token:        token,
		clientSecret: cfg.TraktClientSecret,
		tokenPath:    cfg.TokenPath(),
	}, nil
}

func (c *TraktClient) Token() *trakt.Token {
	return c.token
}

// RefreshToken exchanges the refresh token for a fresh access token and
// persists it. Sync runs gate on this succeeding before any other call.
func (c *TraktClient) RefreshToken(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &trakt.RefreshTokenParams{
		BasicParams:  trakt.BasicParams{Context: ctx},
		RefreshToken: c.token.RefreshToken,
		ClientSecret: c.clientSecret,
	}

	refreshed, err := authorization.RefreshToken(params)
	if err != nil {
		return fmt.Errorf("refreshing token: %w", err)
	}

	if err := saveToken(refreshed, c.tokenPath); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}

	c.token = refreshed
	return nil
}

// WatchedShows returns every show in the user's watch history with
// per-episode play counts and last-watched timestamps.
func (c *TraktClient) WatchedShows(ctx context.Context) ([]domain.WatchedShow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params := &trakt.ListWatchedParams{
		ListParams: trakt.ListParams{Context: ctx, OAuth: c.token.AccessToken},
		Type:       trakt.TypeShow,
	}

	iterator := sync.Watched(params)
	var shows []domain.WatchedShow
	for iterator.Next() {
		item, err := iterator.Show()
		if err != nil {
			return nil, fmt.Errorf("scanning watched show: %w", err)
		}
		shows = append(shows, convertWatchedShow(item))
	}
	if err := iterator.Err(); err != nil {
		return nil, fmt.Errorf("iterating watched shows: %w", err)
	}
	return shows, nil
}

// Ratings returns the user's rating events across all granularities, in the
// order the API reports them. That order is carried through unchanged; the
// resolver's tie-breaking depends on it.
func (c *TraktClient) Ratings(ctx context.Context) ([]domain.RatingEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params := &trakt.ListRatingParams{
		ListParams: trakt.ListParams{Context: ctx, OAuth: c.token.AccessToken},
		Type:       trakt.TypeAll,
	}

	iterator := sync.Ratings(params)
	var events []domain.RatingEvent
	for iterator.Next() {
		item, err := iterator.Rating()
		if err != nil {
			return nil, fmt.Errorf("scanning rating: %w", err)
		}
		if ev, ok := convertRating(item); ok {
			events = append(events, ev)
		}
	}
	if err := iterator.Err(); err != nil {
		return nil, fmt.Errorf("iterating ratings: %w", err)
	}
	return events, nil
}

// SeasonSummaries returns the catalog structure of a show: every season with
// its ordered episode numbers and titles.
func (c *TraktClient) SeasonSummaries(ctx context.Context, slug string) ([]domain.SeasonSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params := &trakt.ExtendedListParams{
		BasicListParams: trakt.BasicListParams{Context: ctx},
		Extended:        trakt.ExtendedTypeEpisodes,
	}

	iterator := show.Seasons(trakt.Slug(slug), params)
	var summaries []domain.SeasonSummary
	for iterator.Next() {
		item, err := iterator.Season()
		if err != nil {
			return nil, fmt.Errorf("scanning season summary: %w", err)
		}
		summary := domain.SeasonSummary{Number: item.Number}
		for _, ep := range item.Episodes {
			summary.Episodes = append(summary.Episodes, domain.EpisodeSummary{
				Number: ep.Number,
				Title:  ep.Title,
			})
		}
		summaries = append(summaries, summary)
	}
	if err := iterator.Err(); err != nil {
		return nil, fmt.Errorf("iterating season summaries for %s: %w", slug, err)
	}
	return summaries, nil
}

func convertWatchedShow(item *trakt.WatchedShow) domain.WatchedShow {
	converted := domain.WatchedShow{
		IDs:   convertIDs(item.MediaIDs),
		Title: item.Title,
		Year:  item.Year,
	}

	for _, s := range item.Seasons {
		if s == nil {
			continue
		}
		watched := domain.WatchedSeason{Number: s.Number}
		for _, ep := range s.Episodes {
			if ep == nil {
				continue
			}
			watched.Episodes = append(watched.Episodes, domain.WatchedEpisode{
				Number:        ep.Number,
				Plays:         ep.Plays,
				LastWatchedAt: ep.LastWatchedAt,
			})
		}
		converted.Seasons = append(converted.Seasons, watched)
	}
	return converted
}

// convertRating maps one API rating onto a domain event. The score arrives
// as a float but personal ratings are whole numbers from 1 to 10. Movie and
// list ratings carry no show and are skipped.
func convertRating(item *trakt.Rating) (domain.RatingEvent, bool) {
	if item.Show == nil {
		return domain.RatingEvent{}, false
	}

	ev := domain.RatingEvent{
		Rating:  int64(item.Score),
		RatedAt: item.RatedAt,
		Show:    convertIDs(item.Show.MediaIDs),
	}

	switch item.Type {
	case trakt.TypeShow:
		ev.Scope = domain.RatingScopeShow
	case trakt.TypeSeason:
		if item.Season == nil {
			return domain.RatingEvent{}, false
		}
		ev.Scope = domain.RatingScopeSeason
		ev.Season = item.Season.Number
	case trakt.TypeEpisode:
		if item.Episode == nil {
			return domain.RatingEvent{}, false
		}
		ev.Scope = domain.RatingScopeEpisode
		ev.Season = item.Episode.Season
		ev.Episode = item.Episode.Number
	default:
		return domain.RatingEvent{}, false
	}
	return ev, true
}

func convertIDs(ids trakt.MediaIDs) domain.ShowIDs {
	return domain.ShowIDs{
		Trakt: int64(ids.Trakt),
		Slug:  string(ids.Slug),
		IMDB:  string(ids.IMDB),
		TMDB:  int64(ids.TMDB),
		TVDB:  int64(ids.TVDB),
	}
}

// Authenticate runs the interactive device-code flow and persists the
// resulting token, replacing any stored one.
func Authenticate(cfg *config.Config) error {
	trakt.Key = cfg.TraktAPIKey

	token, err := generateToken(cfg.TraktClientSecret, cfg.TokenPath())
	if err != nil {
		return fmt.Errorf("authenticating with trakt: %w", err)
	}
	fmt.Printf("Token saved to %s (expires in %s)\n", cfg.TokenPath(), token.ExpiresIn)
	return nil
}
