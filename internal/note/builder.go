package note

import (
	"fmt"
	"strconv"
	"strings"

	"shownotes/internal/domain"
)

const showURLBase = "https://trakt.tv/shows/"

// Header keys owned by the generator. Every merge overwrites their values;
// keys outside this set are user property and survive untouched.
const (
	keyAlias         = "alias"
	keyURL           = "url"
	keyTraktID       = "trakt_id"
	keyIMDBID        = "imdb_id"
	keyTMDBID        = "tmdb_id"
	keyTVDBID        = "tvdb_id"
	keyYear          = "year"
	keySeasons       = "seasons"
	keyTotalEpisodes = "total_episodes"
	keyRating        = "rating"
)

// HeaderField is one generator-owned frontmatter entry.
type HeaderField struct {
	Key   string
	Value string
}

// ProgressLine is one generated watch-progress line, keyed by season number
// so the merge can pair it with its stored counterpart.
type ProgressLine struct {
	Season int64
	Line   string
}

// Block is one generated episode block. Only the first line is generated;
// stored blocks may carry user content below it.
type Block struct {
	Season  int64
	Episode int64
	Line    string
}

// Note is the canonical document for one show, recomputed on every sync.
type Note struct {
	Title    string
	Header   []HeaderField
	Progress []ProgressLine
	Episodes []Block
}

// Build assembles the canonical note from watch history, catalog summaries
// and rating events. Season summaries drive structure and episode titles;
// the watch history only contributes play state.
func Build(show domain.WatchedShow, summaries []domain.SeasonSummary, events []domain.RatingEvent) Note {
	showRating, rated := ResolveShowRating(show.IDs.Trakt, events)
	seasonRatings := ResolveSeasonRatings(show.IDs.Trakt, summaries, events)

	return Note{
		Title:    show.Title,
		Header:   buildHeader(show, summaries, showRating, rated),
		Progress: buildProgress(show, summaries, seasonRatings),
		Episodes: buildEpisodes(show, summaries, events),
	}
}

func buildHeader(show domain.WatchedShow, summaries []domain.SeasonSummary, rating int64, rated bool) []HeaderField {
	total := int64(0)
	for _, s := range summaries {
		total += int64(len(s.Episodes))
	}

	ratingValue := ""
	if rated {
		ratingValue = formatRating(rating)
	}

	return []HeaderField{
		{keyAlias, Sanitize(show.Title)},
		{keyURL, showURLBase + show.IDs.Slug},
		{keyTraktID, strconv.FormatInt(show.IDs.Trakt, 10)},
		{keyIMDBID, show.IDs.IMDB},
		{keyTMDBID, formatID(show.IDs.TMDB)},
		{keyTVDBID, formatID(show.IDs.TVDB)},
		{keyYear, strconv.FormatInt(show.Year, 10)},
		{keySeasons, strconv.FormatInt(int64(len(summaries)), 10)},
		{keyTotalEpisodes, strconv.FormatInt(total, 10)},
		{keyRating, ratingValue},
	}
}

func buildProgress(show domain.WatchedShow, summaries []domain.SeasonSummary, seasonRatings map[int64]int64) []ProgressLine {
	lines := make([]ProgressLine, 0, len(summaries))
	for _, summary := range summaries {
		watched := int64(0)
		if season, ok := watchedSeason(show, summary.Number); ok {
			for _, ep := range season.Episodes {
				if ep.Plays > 0 {
					watched++
				}
			}
		}

		line := fmt.Sprintf("- Season %d: Watched %d / %d episodes", summary.Number, watched, len(summary.Episodes))
		if rating, ok := seasonRatings[summary.Number]; ok {
			line += " | " + formatRating(rating)
		}
		lines = append(lines, ProgressLine{Season: summary.Number, Line: line})
	}
	return lines
}

func buildEpisodes(show domain.WatchedShow, summaries []domain.SeasonSummary, events []domain.RatingEvent) []Block {
	var blocks []Block
	for _, summary := range summaries {
		for _, ep := range summary.Episodes {
			line := fmt.Sprintf("#### S%d Ep%d | %s", summary.Number, ep.Number, ep.Title)
			if watched, ok := watchedEpisode(show, summary.Number, ep.Number); ok && !watched.LastWatchedAt.IsZero() {
				line += " | Watched: [[" + watched.LastWatchedAt.Format("2006-01-02") + "]]"
			}
			if rating, ok := ResolveEpisodeRating(show.IDs.Trakt, summary.Number, ep.Number, events); ok {
				line += " | " + formatRating(rating)
			}
			blocks = append(blocks, Block{Season: summary.Number, Episode: ep.Number, Line: line})
		}
	}
	return blocks
}

// Render produces the full document text for a show that has no stored note
// yet: header, title heading, watch progress, an empty General Notes
// placeholder and the episode blocks, in that order.
func (n Note) Render() string {
	lines := make([]string, 0, len(n.Header)+len(n.Progress)+len(n.Episodes)+10)

	lines = append(lines, headerMarker)
	for _, f := range n.Header {
		lines = append(lines, headerLine(f))
	}
	lines = append(lines, headerMarker, "")

	lines = append(lines, "# "+n.Title, "")

	lines = append(lines, headingWatchProgress)
	for _, p := range n.Progress {
		lines = append(lines, p.Line)
	}
	lines = append(lines, "")

	lines = append(lines, headingGeneralNotes, "")

	lines = append(lines, headingEpisodes)
	for _, b := range n.Episodes {
		lines = append(lines, b.Line)
	}

	return strings.Join(lines, "\n") + "\n"
}

func headerLine(f HeaderField) string {
	if f.Value == "" {
		return f.Key + ":"
	}
	return f.Key + ": " + f.Value
}

func formatRating(rating int64) string {
	return strconv.FormatInt(rating, 10) + "/10"
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func watchedSeason(show domain.WatchedShow, number int64) (domain.WatchedSeason, bool) {
	for _, season := range show.Seasons {
		if season.Number == number {
			return season, true
		}
	}
	return domain.WatchedSeason{}, false
}

func watchedEpisode(show domain.WatchedShow, season, episode int64) (domain.WatchedEpisode, bool) {
	s, ok := watchedSeason(show, season)
	if !ok {
		return domain.WatchedEpisode{}, false
	}
	for _, ep := range s.Episodes {
		if ep.Number == episode {
			return ep, true
		}
	}
	return domain.WatchedEpisode{}, false
}
