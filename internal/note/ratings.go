package note

import "shownotes/internal/domain"

// selectionPolicy decides which event wins when several target the same
// entity. Events are taken in source order, which upstream reports as
// chronological.
type selectionPolicy int

const (
	pickFirst selectionPolicy = iota
	pickLast
)

// The upstream resolution rules are asymmetric: show and episode ratings
// take the last matching event, season ratings take the first. Kept as
// distinct policies rather than silently unified.
const (
	showRatingPolicy    = pickLast
	seasonRatingPolicy  = pickFirst
	episodeRatingPolicy = pickLast
)

// ResolveShowRating returns the rating of the winning show-scope event for
// the given show, or false when none matches.
func ResolveShowRating(showID int64, events []domain.RatingEvent) (int64, bool) {
	return resolve(showRatingPolicy, events, func(ev domain.RatingEvent) bool {
		return ev.Scope == domain.RatingScopeShow && ev.Show.Trakt == showID
	})
}

// ResolveSeasonRatings maps each season number to its winning season-scope
// rating. Seasons without a matching event are absent from the map.
func ResolveSeasonRatings(showID int64, seasons []domain.SeasonSummary, events []domain.RatingEvent) map[int64]int64 {
	ratings := make(map[int64]int64)
	for _, season := range seasons {
		number := season.Number
		rating, ok := resolve(seasonRatingPolicy, events, func(ev domain.RatingEvent) bool {
			return ev.Scope == domain.RatingScopeSeason && ev.Show.Trakt == showID && ev.Season == number
		})
		if ok {
			ratings[number] = rating
		}
	}
	return ratings
}

// ResolveEpisodeRating returns the winning episode-scope rating for one
// episode, or false when none matches.
func ResolveEpisodeRating(showID, season, episode int64, events []domain.RatingEvent) (int64, bool) {
	return resolve(episodeRatingPolicy, events, func(ev domain.RatingEvent) bool {
		return ev.Scope == domain.RatingScopeEpisode && ev.Show.Trakt == showID &&
			ev.Season == season && ev.Episode == episode
	})
}

func resolve(policy selectionPolicy, events []domain.RatingEvent, match func(domain.RatingEvent) bool) (int64, bool) {
	var rating int64
	found := false
	for _, ev := range events {
		if !match(ev) {
			continue
		}
		if policy == pickFirst {
			return ev.Rating, true
		}
		rating = ev.Rating
		found = true
	}
	return rating, found
}
