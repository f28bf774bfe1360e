package note

import "strings"

const (
	headerMarker = "---"

	headingWatchProgress = "## Watch Progress"
	headingGeneralNotes  = "## General Notes"
	headingNotes         = "## Notes"
	headingEpisodes      = "## Episodes"
)

// recognizedHeadings are the section headings the generator knows about.
// Any other heading belongs to whichever region precedes it.
var recognizedHeadings = []string{
	headingWatchProgress,
	headingGeneralNotes,
	headingNotes,
	headingEpisodes,
}

// document is a stored note split into ownership regions in a single parse
// pass: the frontmatter header, the free-text preamble before the first
// recognized heading, and the recognized sections in the order found.
type document struct {
	hasHeader bool
	header    []string
	preamble  []string
	sections  []section
}

// section is one recognized region: its heading line and the content lines
// up to the next recognized heading or end of document.
type section struct {
	heading string
	lines   []string
}

func isRecognizedHeading(line string) bool {
	for _, heading := range recognizedHeadings {
		if strings.TrimRight(line, " \t") == heading {
			return true
		}
	}
	return false
}

// parseDocument splits stored text into regions. It never fails: malformed
// input degrades to "region absent" and the text lands in the preamble.
// The final newline belongs to the file, not to any region, so it is
// stripped here and restored on reassembly.
func parseDocument(text string) document {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	var doc document

	body := lines
	if len(lines) > 0 && strings.TrimRight(lines[0], " \t") == headerMarker {
		for i := 1; i < len(lines); i++ {
			if strings.TrimRight(lines[i], " \t") == headerMarker {
				doc.hasHeader = true
				doc.header = lines[1:i]
				body = lines[i+1:]
				break
			}
		}
	}

	current := -1
	for _, line := range body {
		if isRecognizedHeading(line) {
			doc.sections = append(doc.sections, section{heading: strings.TrimRight(line, " \t")})
			current = len(doc.sections) - 1
			continue
		}
		if current < 0 {
			doc.preamble = append(doc.preamble, line)
			continue
		}
		doc.sections[current].lines = append(doc.sections[current].lines, line)
	}

	return doc
}

// section returns the first region with the given heading.
func (d document) section(heading string) (section, bool) {
	for _, s := range d.sections {
		if s.heading == heading {
			return s, true
		}
	}
	return section{}, false
}

// trimBlankEdges drops leading and trailing blank lines, leaving interior
// blanks untouched.
func trimBlankEdges(lines []string) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
