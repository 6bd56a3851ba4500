package email

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tntduc/ai-news-digest/internal/curator"
	"github.com/tntduc/ai-news-digest/internal/markdown"
	"github.com/tntduc/ai-news-digest/internal/storage"
)

func testDigest() *storage.Digest {
	return &storage.Digest{
		DigestDate: time.Date(2025, 7, 18, 0, 0, 0, 0, time.UTC),
		Title:      "AI News Daily Digest",
		Content: strings.Join([]string{
			"## Today in AI",
			"",
			"1. **Model release**",
			"* **Source:** [OpenAI Blog](https://example.com/release)",
			"* **Summary:** A new model shipped today.",
		}, "\n"),
	}
}

func TestComposeSubjectFallback(t *testing.T) {
	c := NewComposer(markdown.DefaultTheme(), "https://example.com", "Subscribe")

	content := c.Compose(testDigest(), nil, "", "")
	assert.Equal(t, "Daily AI News Digest - 07/18/2025", content.Subject)

	content = c.Compose(testDigest(), nil, "Custom subject", "")
	assert.Equal(t, "Custom subject", content.Subject)
}

func TestComposeHTMLBody(t *testing.T) {
	theme := markdown.DefaultTheme()
	theme.BrandName = "Signal & Noise"
	theme.Primary = "#123456"

	c := NewComposer(theme, "https://example.com/cta", "Join us")

	curated := []curator.Item{{
		SourceType: "openai",
		Provider:   "OpenAI Blog",
		Title:      "Tools <beta>",
		Summary:    "Agents & tools everywhere.",
		URL:        "https://example.com/tools",
	}}

	content := c.Compose(testDigest(), curated, "", "Good morning!")

	assert.Contains(t, content.HTMLBody, "Signal &amp; Noise")
	assert.Contains(t, content.HTMLBody, "#123456")
	assert.Contains(t, content.HTMLBody, "Friday, July 18, 2025")
	assert.Contains(t, content.HTMLBody, "Good morning!")
	// Digest markdown is rendered into an item card.
	assert.Contains(t, content.HTMLBody, ">Model release</div>")
	assert.Contains(t, content.HTMLBody, "🔗 OpenAI Blog")
	// Curated card with escaped title and read-more link.
	assert.Contains(t, content.HTMLBody, "Tools &lt;beta&gt;")
	assert.Contains(t, content.HTMLBody, `href="https://example.com/tools"`)
	assert.Contains(t, content.HTMLBody, `href="https://example.com/cta"`)
	assert.Contains(t, content.HTMLBody, "Join us")
}

func TestComposeTextBody(t *testing.T) {
	c := NewComposer(markdown.DefaultTheme(), "https://example.com", "Subscribe")

	curated := []curator.Item{{
		SourceType: "youtube",
		Provider:   "Two Minute Papers",
		Title:      "Amazing results",
		URL:        "https://youtube.com/watch?v=1",
	}}

	content := c.Compose(testDigest(), curated, "", "Hello!")

	assert.Contains(t, content.TextBody, "Hello!")
	assert.Contains(t, content.TextBody, strings.Repeat("=", 60))
	assert.Contains(t, content.TextBody, "AI News Daily Digest — 2025-07-18")
	assert.Contains(t, content.TextBody, "1. [Youtube · Two Minute Papers] Amazing results")
	assert.Contains(t, content.TextBody, "https://youtube.com/watch?v=1")
	// Plain body carries the rendered item, not raw markdown.
	assert.Contains(t, content.TextBody, "Source: https://example.com/release")
	assert.NotContains(t, content.TextBody, "**Source:**")
}

func TestComposeNoCuratedItems(t *testing.T) {
	c := NewComposer(markdown.DefaultTheme(), "https://example.com", "Subscribe")

	content := c.Compose(testDigest(), nil, "", "")

	assert.Contains(t, content.TextBody, "No highlighted items for today.")
	assert.Contains(t, content.HTMLBody, "No additional highlights for today.")
}
