package markdown

import (
	"html"
	"regexp"
	"strings"
)

// Inline rendering works in two passes: the line is first tokenized into an
// ordered span list (text, link, bold, italic), then each span is rendered on
// its own. Generated markup never travels through the escaping step, so
// nothing is double-encoded.

type spanKind int

const (
	spanText spanKind = iota
	spanLink
	spanBold
	spanItalic
)

type inlineSpan struct {
	kind spanKind
	text string
	url  string // spanLink only
}

var (
	linkRe       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	boldStarRe   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	boldUnderRe  = regexp.MustCompile(`__([^_]+)__`)
	boldMarkerRe = regexp.MustCompile(`\*\*([^*]+)\*\*|__([^_]+)__`)
)

// tokenizeInline splits text into an ordered list of inline spans. Matching
// precedence is links, then bold, then italic; bold and italic never match
// inside link text because links are carved out first. Malformed constructs
// stay behind as literal text spans.
func tokenizeInline(text string) []inlineSpan {
	spans := []inlineSpan{{kind: spanText, text: text}}

	spans = splitSpans(spans, matchLinks)
	spans = splitSpans(spans, matchBold)
	spans = splitSpans(spans, matchItalic)

	return spans
}

// splitSpans applies a matcher to every text span, replacing it with the
// matcher's output. Non-text spans pass through untouched.
func splitSpans(spans []inlineSpan, match func(string) []inlineSpan) []inlineSpan {
	out := make([]inlineSpan, 0, len(spans))

	for _, sp := range spans {
		if sp.kind != spanText {
			out = append(out, sp)
			continue
		}

		out = append(out, match(sp.text)...)
	}

	return out
}

func matchLinks(text string) []inlineSpan {
	var out []inlineSpan

	last := 0

	for _, m := range linkRe.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			out = append(out, inlineSpan{kind: spanText, text: text[last:m[0]]})
		}

		out = append(out, inlineSpan{kind: spanLink, text: text[m[2]:m[3]], url: text[m[4]:m[5]]})
		last = m[1]
	}

	if last < len(text) {
		out = append(out, inlineSpan{kind: spanText, text: text[last:]})
	}

	return out
}

func matchBold(text string) []inlineSpan {
	var out []inlineSpan

	last := 0

	for _, m := range boldMarkerRe.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			out = append(out, inlineSpan{kind: spanText, text: text[last:m[0]]})
		}

		inner := ""
		if m[2] >= 0 {
			inner = text[m[2]:m[3]]
		} else {
			inner = text[m[4]:m[5]]
		}

		out = append(out, inlineSpan{kind: spanBold, text: inner})
		last = m[1]
	}

	if last < len(text) {
		out = append(out, inlineSpan{kind: spanText, text: text[last:]})
	}

	return out
}

func matchItalic(text string) []inlineSpan {
	var out []inlineSpan

	last := 0

	for pos := 0; pos < len(text); {
		start, end, inner, ok := findItalic(text, pos)
		if !ok {
			break
		}

		if start > last {
			out = append(out, inlineSpan{kind: spanText, text: text[last:start]})
		}

		out = append(out, inlineSpan{kind: spanItalic, text: inner})
		last = end
		pos = end
	}

	if last < len(text) {
		out = append(out, inlineSpan{kind: spanText, text: text[last:]})
	}

	return out
}

// findItalic locates the next single-delimiter emphasis run (*text* or
// _text_) at or after pos. A delimiter only opens or closes a run when it is
// not adjacent to another delimiter of the same kind, so a ** pair left over
// from an unterminated bold run is never half-matched as italic.
func findItalic(text string, pos int) (start, end int, inner string, ok bool) {
	for i := pos; i < len(text)-1; i++ {
		d := text[i]
		if d != '*' && d != '_' {
			continue
		}

		if i > 0 && text[i-1] == d {
			continue
		}

		if text[i+1] == d {
			continue
		}

		j := strings.IndexByte(text[i+1:], d)
		if j < 0 {
			continue
		}

		close := i + 1 + j
		if close+1 < len(text) && text[close+1] == d {
			continue
		}

		return i, close + 1, text[i+1 : close], true
	}

	return 0, 0, "", false
}

// renderInlineHTML converts inline markdown constructs in text to HTML.
// Literal text is entity-escaped exactly once; hrefs are escaped for
// attribute context independently of body text.
func renderInlineHTML(text string, theme Theme) string {
	var b strings.Builder

	for _, sp := range tokenizeInline(text) {
		switch sp.kind {
		case spanLink:
			b.WriteString(`<a href="` + html.EscapeString(sp.url) + `" style="color:` + theme.Primary + `;text-decoration:none;font-weight:600;">` + html.EscapeString(sp.text) + `</a>`)
		case spanBold:
			b.WriteString("<strong>" + html.EscapeString(sp.text) + "</strong>")
		case spanItalic:
			b.WriteString("<em>" + html.EscapeString(sp.text) + "</em>")
		default:
			b.WriteString(html.EscapeString(sp.text))
		}
	}

	return b.String()
}

// renderInlinePlain strips inline markdown constructs, keeping their inner
// text. Links become "text (url)". No HTML escaping is applied.
func renderInlinePlain(text string) string {
	var b strings.Builder

	for _, sp := range tokenizeInline(text) {
		if sp.kind == spanLink {
			b.WriteString(sp.text + " (" + sp.url + ")")
			continue
		}

		b.WriteString(sp.text)
	}

	return b.String()
}

// stripEmphasisMarkers removes residual bold markers from extracted titles.
func stripEmphasisMarkers(text string) string {
	text = boldStarRe.ReplaceAllString(text, "$1")
	text = boldUnderRe.ReplaceAllString(text, "$1")

	return text
}
