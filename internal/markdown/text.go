package markdown

import (
	"fmt"
	"strings"
)

// RenderPlainText renders a digest document as readable plain text: headers
// become underlined titles, numbered items become title/source/summary
// lines, lists keep a "-" prefix, and all inline markup is stripped. Empty
// input yields an empty string.
func RenderPlainText(doc string) string {
	blocks := Parse(doc)
	if len(blocks) == 0 {
		return ""
	}

	var parts []string

	for _, b := range blocks {
		parts = append(parts, renderBlockText(b))
	}

	return strings.TrimSpace(strings.Join(parts, "\n"))
}

func renderBlockText(b Block) string {
	switch b.Kind {
	case KindHeader:
		return renderHeaderText(b)
	case KindNumberedItem:
		return renderItemText(b)
	case KindBulletList:
		var sb strings.Builder
		for i, entry := range b.Entries {
			if i > 0 {
				sb.WriteByte('\n')
			}

			sb.WriteString("- " + renderInlinePlain(entry))
		}

		return sb.String()
	case KindParagraph:
		return renderInlinePlain(b.Text)
	default: // KindBlank
		return ""
	}
}

// renderHeaderText underlines the header with a rule matching its length:
// "=" for levels 1 and 2, "-" for level 3.
func renderHeaderText(b Block) string {
	rule := "="
	if b.Level == 3 {
		rule = "-"
	}

	return fmt.Sprintf("\n%s\n%s", b.Text, strings.Repeat(rule, len([]rune(b.Text))))
}

func renderItemText(b Block) string {
	var sb strings.Builder

	sb.WriteByte('\n')

	if b.Title != "" {
		fmt.Fprintf(&sb, "%d. %s\n", b.Number, b.Title)
	}

	if b.Source != nil {
		fmt.Fprintf(&sb, "Source: %s\n", b.Source.URL)
	}

	for _, para := range b.Summary {
		sb.WriteString(renderInlinePlain(para) + "\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}
