package markdown

import (
	"strings"
	"testing"
)

func TestRenderInlineHTML(t *testing.T) {
	theme := DefaultTheme()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text",
			input:    "Hello World",
			expected: "Hello World",
		},
		{
			name:     "bold and italic do not cross match",
			input:    "**bold** and *italic*",
			expected: "<strong>bold</strong> and <em>italic</em>",
		},
		{
			name:     "underscore variants",
			input:    "__bold__ and _italic_",
			expected: "<strong>bold</strong> and <em>italic</em>",
		},
		{
			name:     "escapes special characters once",
			input:    "Apple & Google > Microsoft < Amazon",
			expected: "Apple &amp; Google &gt; Microsoft &lt; Amazon",
		},
		{
			name:     "escapes inside bold",
			input:    "**a & b**",
			expected: "<strong>a &amp; b</strong>",
		},
		{
			name:     "unterminated bold stays literal",
			input:    "**bold",
			expected: "**bold",
		},
		{
			name:     "unterminated link stays literal",
			input:    "[text(missing paren",
			expected: "[text(missing paren",
		},
		{
			name:     "bold opener not half matched as italic",
			input:    "**a* b",
			expected: "**a* b",
		},
		{
			name:     "italic after stray bold pair",
			input:    "a ** b * c *",
			expected: "a ** b <em> c </em>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderInlineHTML(tt.input, theme)
			if got != tt.expected {
				t.Errorf("renderInlineHTML(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRenderInlineHTMLLink(t *testing.T) {
	got := renderInlineHTML("[Anthropic](https://anthropic.com)", DefaultTheme())

	if !strings.Contains(got, `href="https://anthropic.com"`) {
		t.Errorf("expected href attribute, got %q", got)
	}

	if !strings.Contains(got, ">Anthropic</a>") {
		t.Errorf("expected visible link text, got %q", got)
	}
}

func TestRenderInlineHTMLLinkEscaping(t *testing.T) {
	got := renderInlineHTML(`[a & b](https://example.com/?q=1&r=2)`, DefaultTheme())

	if !strings.Contains(got, `href="https://example.com/?q=1&amp;r=2"`) {
		t.Errorf("expected attribute-escaped href, got %q", got)
	}

	if !strings.Contains(got, ">a &amp; b</a>") {
		t.Errorf("expected escaped link text, got %q", got)
	}

	if strings.Contains(got, "&amp;amp;") {
		t.Errorf("double escaping detected: %q", got)
	}
}

func TestRenderInlinePlain(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "link becomes text with url",
			input:    "[Anthropic](https://anthropic.com)",
			expected: "Anthropic (https://anthropic.com)",
		},
		{
			name:     "bold stripped",
			input:    "**important** news",
			expected: "important news",
		},
		{
			name:     "italic stripped",
			input:    "quite _subtle_ change",
			expected: "quite subtle change",
		},
		{
			name:     "no html escaping",
			input:    "a < b & c",
			expected: "a < b & c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderInlinePlain(tt.input)
			if got != tt.expected {
				t.Errorf("renderInlinePlain(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTokenizeInlineBoldInsideLinkText(t *testing.T) {
	// The link pass runs first, so emphasis markers inside link text are
	// never re-tokenized.
	spans := tokenizeInline("[**bold title**](https://example.com)")

	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d: %#v", len(spans), spans)
	}

	if spans[0].kind != spanLink || spans[0].text != "**bold title**" {
		t.Errorf("unexpected span: %#v", spans[0])
	}
}
