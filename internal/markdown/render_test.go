package markdown

import (
	"strings"
	"testing"
)

func TestRenderHTMLEmpty(t *testing.T) {
	if got := RenderHTML("", DefaultTheme()); got != "" {
		t.Errorf("RenderHTML(\"\") = %q, want \"\"", got)
	}
}

func TestRenderHTMLListClosedBeforeParagraph(t *testing.T) {
	doc := "- one\n- two\n\nafter"
	got := RenderHTML(doc, DefaultTheme())

	ulEnd := strings.Index(got, "</ul>")
	para := strings.Index(got, "after")

	if ulEnd < 0 || para < 0 {
		t.Fatalf("expected closed list and paragraph, got %q", got)
	}

	if ulEnd > para {
		t.Errorf("list not closed before paragraph: %q", got)
	}

	if strings.Contains(got[ulEnd:], "<li") {
		t.Errorf("found <li> outside the list: %q", got)
	}
}

func TestRenderHTMLNumberedItemCard(t *testing.T) {
	doc := `1. **Model Release**
* **Source:** [Anthropic](https://anthropic.com/news)
* **Summary:** A new model shipped.`

	got := RenderHTML(doc, DefaultTheme())

	for _, want := range []string{
		">Model Release</div>",
		`href="https://anthropic.com/news"`,
		"🔗 Anthropic</a>",
		">A new model shipped.</p>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got %q", want, got)
		}
	}
}

func TestRenderHTMLNoDoubleEscaping(t *testing.T) {
	got := RenderHTML("Tom & Jerry <3", DefaultTheme())

	if !strings.Contains(got, "Tom &amp; Jerry &lt;3") {
		t.Errorf("expected singly escaped text, got %q", got)
	}

	if strings.Contains(got, "&amp;amp;") || strings.Contains(got, "&amp;lt;") {
		t.Errorf("double escaping detected: %q", got)
	}
}

func TestRenderHTMLHeaderTiers(t *testing.T) {
	got := RenderHTML("# One\n## Two\n### Three", DefaultTheme())

	for _, want := range []string{"<h1 ", "<h2 ", "<h3 "} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output %q", want, got)
		}
	}
}

func TestRenderHTMLUsesTheme(t *testing.T) {
	theme := DefaultTheme()
	theme.Primary = "#123456"

	got := RenderHTML("[link](https://example.com)", theme)

	if !strings.Contains(got, "#123456") {
		t.Errorf("expected custom primary color in output, got %q", got)
	}
}

func TestRenderPlainTextEmpty(t *testing.T) {
	if got := RenderPlainText(""); got != "" {
		t.Errorf("RenderPlainText(\"\") = %q, want \"\"", got)
	}
}

func TestRenderPlainTextHeaders(t *testing.T) {
	got := RenderPlainText("## Section Title")

	want := "Section Title\n============="
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	got = RenderPlainText("### Sub")
	want = "Sub\n---"

	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderPlainTextItem(t *testing.T) {
	doc := `1. **Great News**
* **Source:** [TechCrunch](https://tc.example/a)
* **Summary:** Something happened.`

	got := RenderPlainText(doc)

	for _, want := range []string{
		"1. Great News",
		"Source: https://tc.example/a",
		"Something happened.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in %q", want, got)
		}
	}

	if strings.Contains(got, "**") || strings.Contains(got, "](") {
		t.Errorf("markdown markup leaked into plain text: %q", got)
	}
}

func TestRenderPlainTextLinkInParagraph(t *testing.T) {
	got := RenderPlainText("Read [Anthropic](https://anthropic.com) today")

	want := "Read Anthropic (https://anthropic.com) today"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
