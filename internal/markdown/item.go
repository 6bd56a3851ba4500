package markdown

import (
	"regexp"
	"strconv"
	"strings"
)

// Numbered digest items arrive in several historical formats produced by the
// summarization model. The title patterns below are tried in fixed
// precedence; the first match wins.
var (
	itemStartRe = regexp.MustCompile(`^(\*\*)?\d+\.\s+`)

	itemTitlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\*\*(\d+)\.\s+(.+?)\*\*$`), // **1. Title**
		regexp.MustCompile(`^(\d+)\.\s+\*\*(.+?)\*\*$`), // 1. **Title**
		regexp.MustCompile(`^(\d+)\.\s+(.+)$`),          // 1. Title
	}

	itemNumberRe = regexp.MustCompile(`\d+`)

	sourceFieldRe  = regexp.MustCompile(`\*\*Source:\*\*\s*\[([^\]]+)\]\(([^)]+)\)`)
	summaryFieldRe = regexp.MustCompile(`\*\*Summary:\*\*\s*(.+)`)
)

// itemAccumulator collects the lines of one open numbered item until the
// parser decides to close it.
type itemAccumulator struct {
	number  int
	title   string
	source  *SourceLink
	summary []string

	// openSummary is true while the last summary entry accepts plain-line
	// continuations.
	openSummary bool
}

// newItemAccumulator opens an accumulator from an item start line. Lines
// matching none of the known title patterns still open an item, with an
// empty title.
func newItemAccumulator(line string) *itemAccumulator {
	for _, re := range itemTitlePatterns {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		number, _ := strconv.Atoi(m[1])

		return &itemAccumulator{
			number: number,
			title:  stripEmphasisMarkers(strings.TrimSpace(m[2])),
		}
	}

	number, _ := strconv.Atoi(itemNumberRe.FindString(line))

	return &itemAccumulator{number: number}
}

// setSource records the first markdown link on a "**Source:**" bullet line.
// Later links on the same line are ignored.
func (acc *itemAccumulator) setSource(line string) {
	m := sourceFieldRe.FindStringSubmatch(line)
	if m == nil {
		return
	}

	acc.source = &SourceLink{Text: m[1], URL: m[2]}
	acc.openSummary = false
}

// startSummary opens a new summary entry from a "**Summary:**" bullet line.
func (acc *itemAccumulator) startSummary(line string) {
	m := summaryFieldRe.FindStringSubmatch(line)
	if m == nil {
		return
	}

	acc.summary = append(acc.summary, strings.TrimSpace(m[1]))
	acc.openSummary = true
}

// appendText merges a plain continuation line into the last open summary
// entry, or starts a standalone summary paragraph when none is open.
func (acc *itemAccumulator) appendText(line string) {
	text := strings.TrimSpace(line)
	if text == "" {
		return
	}

	if acc.openSummary && len(acc.summary) > 0 {
		acc.summary[len(acc.summary)-1] += " " + text
		return
	}

	acc.summary = append(acc.summary, text)
}

// hasBody reports whether the accumulator holds more than just a title.
func (acc *itemAccumulator) hasBody() bool {
	return acc.source != nil || len(acc.summary) > 0
}

func (acc *itemAccumulator) block() Block {
	return Block{
		Kind:    KindNumberedItem,
		Number:  acc.number,
		Title:   acc.title,
		Source:  acc.source,
		Summary: acc.summary,
	}
}
