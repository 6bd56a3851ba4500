package markdown

import (
	"regexp"
	"strings"
)

var (
	headerPrefixRe = regexp.MustCompile(`(?m)^#+\s*`)
	htmlTagRe      = regexp.MustCompile(`<[^>]+>`)
	trailingWSRe   = regexp.MustCompile(`[ \t]+\n`)
)

const ellipsis = "…"

// Sanitize strips markdown headers and HTML tags from text so it can be used
// as a plain-text preview. Trailing whitespace before newlines is collapsed
// and the result is trimmed.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}

	text = headerPrefixRe.ReplaceAllString(text, "")
	text = htmlTagRe.ReplaceAllString(text, "")
	text = trailingWSRe.ReplaceAllString(text, "\n")

	return strings.TrimSpace(text)
}

// Summarize sanitizes text and truncates it to at most maxChars characters,
// cutting at a word boundary and appending an ellipsis when truncated.
func Summarize(text string, maxChars int) string {
	if maxChars <= 0 {
		return ""
	}

	plain := Sanitize(text)
	if len([]rune(plain)) <= maxChars {
		return plain
	}

	budget := maxChars - len([]rune(ellipsis))

	var b strings.Builder

	width := 0

	for _, word := range strings.Fields(plain) {
		wordLen := len([]rune(word))

		need := wordLen
		if width > 0 {
			need++ // joining space
		}

		if width+need > budget {
			break
		}

		if width > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(word)

		width += need
	}

	return b.String() + ellipsis
}
