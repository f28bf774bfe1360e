package domain

import "time"

// ShowIDs carries the external identifiers of a show. The Trakt id is the
// primary key; the rest are cross-references into other catalogs. Values are
// immutable once fetched.
type ShowIDs struct {
	Trakt int64
	Slug  string
	IMDB  string
	TMDB  int64
	TVDB  int64
}

// WatchedEpisode is the user's play record for one episode. Plays greater
// than zero means watched at least once.
type WatchedEpisode struct {
	Number        int64
	Plays         int64
	LastWatchedAt time.Time
}

// WatchedSeason groups the watched episodes of one season.
type WatchedSeason struct {
	Number   int64
	Episodes []WatchedEpisode
}

// WatchedShow is a show the user has watched, with per-episode play state.
type WatchedShow struct {
	IDs     ShowIDs
	Title   string
	Year    int64
	Seasons []WatchedSeason
}

// EpisodeSummary is the catalog entry for one episode. The title here is
// authoritative over whatever the watch history carries.
type EpisodeSummary struct {
	Number int64
	Title  string
}

// SeasonSummary is the catalog truth for one season's structure, independent
// of user watch state.
type SeasonSummary struct {
	Number   int64
	Episodes []EpisodeSummary
}

// RatingScope identifies the granularity a rating event targets.
type RatingScope string

const (
	RatingScopeShow    RatingScope = "show"
	RatingScopeSeason  RatingScope = "season"
	RatingScopeEpisode RatingScope = "episode"
)

// RatingEvent is a single user rating at show, season or episode granularity.
// Events arrive in the order the tracking service returns them, which is
// treated as chronological; no re-sorting happens downstream.
type RatingEvent struct {
	Scope   RatingScope
	Rating  int64
	RatedAt time.Time
	Show    ShowIDs
	Season  int64
	Episode int64
}

// ShowRecord is the persisted sync state for one show: where its note lives
// and what the last sync produced.
type ShowRecord struct {
	TraktID      int64 `boltholdIndex:"Trakt"`
	Title        string
	Slug         string
	Year         int64
	Path         string
	SeasonCount  int64
	EpisodeCount int64
	Rating       int64
	LastSyncedAt time.Time
}
