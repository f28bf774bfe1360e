package note

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

var (
	// progressLineRe matches the generator-owned portion of a watch-progress
	// line. Anything after the match is user annotation.
	progressLineRe = regexp.MustCompile(`^- Season \d+: Watched \d+ / \d+ episodes( \| \d+/10)?`)

	// blockPrefixRe identifies an episode block and its season/episode key.
	blockPrefixRe = regexp.MustCompile(`^####\s+S(\d+)\s+Ep(\d+)\b`)

	blockSpacingRe = regexp.MustCompile(`^####\s+`)
)

// Merge applies the canonical note to previously stored text and returns the
// final document. With no stored text the fresh rendering comes back
// verbatim. Merging is idempotent: repeating it with an unchanged note
// yields byte-identical output.
func (n Note) Merge(existing string) string {
	if existing == "" {
		return n.Render()
	}

	doc := parseDocument(existing)
	n.logMissingRegions(doc)

	lines := make([]string, 0, 64)

	lines = append(lines, headerMarker)
	if doc.hasHeader {
		lines = append(lines, mergeHeader(n.Header, doc.header)...)
	} else {
		for _, f := range n.Header {
			lines = append(lines, headerLine(f))
		}
	}
	lines = append(lines, headerMarker, "")

	preamble := trimBlankEdges(doc.preamble)
	if len(preamble) == 0 {
		preamble = []string{"# " + n.Title}
	}
	lines = append(lines, preamble...)
	lines = append(lines, "")

	lines = append(lines, headingWatchProgress)
	var storedProgress []string
	if s, ok := doc.section(headingWatchProgress); ok {
		storedProgress = s.lines
	}
	lines = append(lines, mergeProgress(n.Progress, storedProgress)...)
	lines = append(lines, "")

	if s, ok := doc.section(headingGeneralNotes); ok {
		lines = append(lines, headingGeneralNotes)
		lines = append(lines, s.lines...)
	}
	if s, ok := doc.section(headingNotes); ok {
		lines = append(lines, headingNotes)
		lines = append(lines, s.lines...)
	}

	lines = append(lines, headingEpisodes)
	var storedEpisodes []string
	if s, ok := doc.section(headingEpisodes); ok {
		storedEpisodes = s.lines
	}
	lines = append(lines, mergeEpisodes(n.Episodes, storedEpisodes)...)

	return strings.Join(lines, "\n") + "\n"
}

// mergeHeader rewrites recognized keys in place, keeps unrecognized lines
// untouched and appends missing recognized keys before the closing marker.
// A recognized key stored more than once keeps only its first line.
func mergeHeader(candidate []HeaderField, stored []string) []string {
	fields := make(map[string]HeaderField, len(candidate))
	for _, f := range candidate {
		fields[f.Key] = f
	}

	seen := make(map[string]bool)
	out := make([]string, 0, len(stored)+len(candidate))
	for _, line := range stored {
		key := headerKeyOf(line)
		if f, ok := fields[key]; ok {
			if seen[key] {
				continue
			}
			out = append(out, headerLine(f))
			seen[key] = true
			continue
		}
		out = append(out, line)
	}

	for _, f := range candidate {
		if !seen[f.Key] {
			out = append(out, headerLine(f))
		}
	}
	return out
}

func headerKeyOf(line string) string {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(line[:idx])
}

// mergeProgress takes the candidate lines as baseline and carries over any
// user suffix trailing the generated portion of the matching stored line.
// Seasons absent from the candidate are dropped.
func mergeProgress(candidate []ProgressLine, stored []string) []string {
	out := make([]string, 0, len(candidate))
	for _, p := range candidate {
		line := p.Line
		prefix := fmt.Sprintf("- Season %d:", p.Season)
		for _, old := range stored {
			if !strings.HasPrefix(old, prefix) {
				continue
			}
			if generated := progressLineRe.FindString(old); generated != "" {
				line += old[len(generated):]
			}
			break
		}
		out = append(out, line)
	}
	return out
}

type storedBlock struct {
	extra []string
}

// mergeEpisodes rebuilds every candidate block's first line and re-attaches
// the user content stored below the matching block. Blocks absent from the
// candidate are dropped; new blocks are emitted with normalized spacing.
func mergeEpisodes(candidate []Block, stored []string) []string {
	preamble, blocks := parseBlocks(stored)

	out := make([]string, 0, len(stored)+len(candidate))
	out = append(out, preamble...)
	for _, b := range candidate {
		out = append(out, normalizeBlockLine(b.Line))
		if old, ok := blocks[blockKey{b.Season, b.Episode}]; ok {
			out = append(out, old.extra...)
		}
	}
	return out
}

type blockKey struct {
	season  int64
	episode int64
}

// parseBlocks splits an Episodes region into the free text before the first
// block and the per-episode blocks, keyed by season and episode number. On
// duplicate keys the first block wins.
func parseBlocks(lines []string) ([]string, map[blockKey]storedBlock) {
	var preamble []string
	blocks := make(map[blockKey]storedBlock)

	var key blockKey
	inBlock := false
	for _, line := range lines {
		if m := blockPrefixRe.FindStringSubmatch(line); m != nil {
			season, _ := strconv.ParseInt(m[1], 10, 64)
			episode, _ := strconv.ParseInt(m[2], 10, 64)
			key = blockKey{season, episode}
			inBlock = true
			if _, ok := blocks[key]; !ok {
				blocks[key] = storedBlock{}
			}
			continue
		}
		if !inBlock {
			preamble = append(preamble, line)
			continue
		}
		b := blocks[key]
		b.extra = append(b.extra, line)
		blocks[key] = b
	}
	return preamble, blocks
}

func normalizeBlockLine(line string) string {
	return blockSpacingRe.ReplaceAllString(line, "#### ")
}

// logMissingRegions surfaces stored documents that look corrupted: text was
// present but an expected generated region could not be located.
func (n Note) logMissingRegions(doc document) {
	missing := make([]string, 0, 3)
	if !doc.hasHeader {
		missing = append(missing, "header")
	}
	if _, ok := doc.section(headingWatchProgress); !ok {
		missing = append(missing, headingWatchProgress)
	}
	if _, ok := doc.section(headingEpisodes); !ok {
		missing = append(missing, headingEpisodes)
	}
	if len(missing) == 0 {
		return
	}
	log.WithFields(log.Fields{
		"title":   n.Title,
		"regions": strings.Join(missing, ", "),
	}).Warn("stored note is missing generated regions, treating them as new")
}
