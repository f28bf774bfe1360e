package note

import (
	"strings"
	"testing"
)

const storedNote = `---
alias: Old Alias
status: watching
url: https://trakt.tv/shows/old-slug
trakt_id: 42
year: 2021
---

# Severance

## Watch Progress
- Season 1: Watched 1 / 3 episodes | 6/10 (slow start)
- Season 7: Watched 1 / 1 episodes

## General Notes
Theories about the board.

## Notes
- rewatch with Alex

## Episodes
#### S1 Ep1 | Pilot | Watched: [[2023-01-01]] | 3/10
Great cold open.

#### S1 Ep9 | Removed Episode
#### S2 Ep1 | Hello
`

func mergedFixture(t *testing.T) string {
	t.Helper()
	n := Build(testShow(), testSummaries(), testEvents())
	return n.Merge(storedNote)
}

func TestMergeFreshCreateEquivalence(t *testing.T) {
	n := Build(testShow(), testSummaries(), testEvents())
	if n.Merge("") != n.Render() {
		t.Error("Merge with no stored document should equal the fresh rendering")
	}
}

func TestMergeIdempotence(t *testing.T) {
	n := Build(testShow(), testSummaries(), testEvents())

	once := n.Merge(storedNote)
	twice := n.Merge(once)
	if once != twice {
		t.Errorf("second merge changed the document\nfirst:\n%s\nsecond:\n%s", once, twice)
	}

	if rendered := n.Render(); n.Merge(rendered) != rendered {
		t.Error("merging into a fresh rendering should be a no-op")
	}
}

func TestMergeHeaderOwnership(t *testing.T) {
	merged := mergedFixture(t)

	tests := []struct {
		name string
		want string
	}{
		{name: "recognized key overwritten", want: "alias: Severance\n"},
		{name: "recognized url overwritten", want: "url: https://trakt.tv/shows/severance\n"},
		{name: "recognized year overwritten", want: "year: 2022\n"},
		{name: "unknown key preserved", want: "status: watching\n"},
		{name: "missing key appended", want: "total_episodes: 5\n"},
		{name: "missing rating appended", want: "rating: 9/10\n"},
	}

	header := merged[:strings.Index(merged, "\n# ")]
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(header, tt.want) {
				t.Errorf("merged header missing %q\nheader:\n%s", tt.want, header)
			}
		})
	}

	if strings.Contains(header, "Old Alias") || strings.Contains(header, "old-slug") || strings.Contains(header, "2021") {
		t.Errorf("merged header kept stale generator-owned values:\n%s", header)
	}
}

func TestMergeAppendsMissingKeysBeforeClosingMarker(t *testing.T) {
	merged := mergedFixture(t)

	end := strings.Index(merged[3:], "---")
	header := merged[:end+3]
	if !strings.Contains(header, "imdb_id: tt11280740") {
		t.Errorf("appended keys should sit inside the header block:\n%s", header)
	}
}

func TestMergeCollapsesDuplicateHeaderKeys(t *testing.T) {
	doubled := strings.Replace(storedNote, "alias: Old Alias\n", "alias: Old Alias\nalias: Older Alias\n", 1)
	n := Build(testShow(), testSummaries(), testEvents())

	merged := n.Merge(doubled)
	if got := strings.Count(merged, "alias:"); got != 1 {
		t.Errorf("alias appears %d times, want 1:\n%s", got, merged)
	}
	if n.Merge(merged) != merged {
		t.Error("merge after collapsing a duplicate key should be a no-op")
	}
}

func TestMergeWatchProgressExtraPreserved(t *testing.T) {
	merged := mergedFixture(t)

	want := "- Season 1: Watched 2 / 3 episodes | 8/10 (slow start)"
	if !strings.Contains(merged, want) {
		t.Errorf("merged document missing %q\n%s", want, merged)
	}
	if strings.Contains(merged, "Season 7") {
		t.Error("season absent from canonical data should be dropped")
	}
}

func TestMergeEpisodeBlockRebuiltAndExtraPreserved(t *testing.T) {
	merged := mergedFixture(t)

	want := "#### S1 Ep1 | Good News About Hell | Watched: [[2024-02-18]] | 10/10\nGreat cold open.\n"
	if !strings.Contains(merged, want) {
		t.Errorf("merged document missing rebuilt block with trailing user text\n%s", merged)
	}
	if strings.Contains(merged, "Pilot") || strings.Contains(merged, "2023-01-01") || strings.Contains(merged, "3/10") {
		t.Error("stale title, watched date or rating survived the merge")
	}
	if strings.Contains(merged, "Removed Episode") {
		t.Error("episode absent from canonical data should be dropped")
	}
}

func TestMergeUserSectionsPreservedVerbatim(t *testing.T) {
	merged := mergedFixture(t)

	if !strings.Contains(merged, "## General Notes\nTheories about the board.\n") {
		t.Errorf("General Notes content altered:\n%s", merged)
	}
	if !strings.Contains(merged, "## Notes\n- rewatch with Alex\n") {
		t.Errorf("Notes content altered:\n%s", merged)
	}
}

func TestMergeOmitsUserSectionsAbsentFromStored(t *testing.T) {
	stored := strings.Join([]string{
		"---",
		"trakt_id: 42",
		"---",
		"",
		"# Severance",
		"",
		"## Watch Progress",
		"- Season 1: Watched 0 / 3 episodes",
		"",
		"## Episodes",
		"#### S1 Ep1 | Pilot",
		"",
	}, "\n")

	n := Build(testShow(), testSummaries(), testEvents())
	merged := n.Merge(stored)

	if strings.Contains(merged, headingGeneralNotes) {
		t.Error("General Notes should stay deleted once the user removed it")
	}
	if strings.Contains(merged, headingNotes+"\n") {
		t.Error("Notes should not be generated fresh")
	}
	if n.Merge(merged) != merged {
		t.Error("merge without user sections is not idempotent")
	}
}

func TestMergeSectionOrderNormalized(t *testing.T) {
	// Stored document with sections in a scrambled order.
	stored := strings.Join([]string{
		"---",
		"trakt_id: 42",
		"---",
		"",
		"# Severance",
		"",
		"## Episodes",
		"#### S1 Ep1 | Pilot",
		"kept line",
		"",
		"## Notes",
		"always mine",
		"",
		"## Watch Progress",
		"- Season 1: Watched 1 / 3 episodes",
		"",
	}, "\n")

	n := Build(testShow(), testSummaries(), testEvents())
	merged := n.Merge(stored)

	progressAt := strings.Index(merged, headingWatchProgress)
	notesAt := strings.Index(merged, "## Notes")
	episodesAt := strings.Index(merged, headingEpisodes)
	if progressAt < 0 || notesAt < 0 || episodesAt < 0 {
		t.Fatalf("merged document lost a section:\n%s", merged)
	}
	if !(progressAt < notesAt && notesAt < episodesAt) {
		t.Errorf("sections not in canonical order:\n%s", merged)
	}
	if !strings.Contains(merged, "kept line") {
		t.Error("episode extra content lost while reordering")
	}
	if n.Merge(merged) != merged {
		t.Error("reordering merge is not idempotent")
	}
}

func TestMergeCollapsesBlankRunAfterHeader(t *testing.T) {
	stored := strings.Replace(storedNote, "---\n\n# Severance", "---\n\n\n\n# Severance", 1)

	n := Build(testShow(), testSummaries(), testEvents())
	merged := n.Merge(stored)

	if !strings.Contains(merged, "---\n\n# Severance") {
		t.Errorf("blank run after header not collapsed:\n%s", merged)
	}
	if strings.Contains(merged, "---\n\n\n") {
		t.Errorf("extra blank lines survived after header:\n%s", merged)
	}
}

func TestMergeNormalizesNewBlockSpacing(t *testing.T) {
	n := Build(testShow(), testSummaries(), nil)
	n.Episodes[0].Line = strings.Replace(n.Episodes[0].Line, "#### ", "####   ", 1)

	merged := n.Merge(storedNote)
	if strings.Contains(merged, "####   ") {
		t.Errorf("block prefix spacing not normalized:\n%s", merged)
	}
}

func TestMergeHeaderlessStoredDocument(t *testing.T) {
	stored := "just some text the user wrote\n"

	n := Build(testShow(), testSummaries(), testEvents())
	merged := n.Merge(stored)

	if !strings.HasPrefix(merged, "---\nalias: Severance\n") {
		t.Errorf("candidate header not inserted for headerless document:\n%s", merged)
	}
	if !strings.Contains(merged, "just some text the user wrote") {
		t.Error("free text before the first section was lost")
	}
	if n.Merge(merged) != merged {
		t.Error("headerless merge is not idempotent")
	}
}
