// Package email composes and delivers the daily digest email. Bodies are
// built from the digest markdown via the renderer in internal/markdown;
// delivery goes over SMTP or the Resend HTTP API.
package email

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/tntduc/ai-news-digest/internal/config"
	"github.com/tntduc/ai-news-digest/internal/curator"
	"github.com/tntduc/ai-news-digest/internal/markdown"
	"github.com/tntduc/ai-news-digest/internal/storage"
)

const (
	heroSummaryChars    = 360
	curatedSummaryChars = 220
	textRuleWidth       = 60
)

// Content is a fully composed email: subject plus alternative bodies.
type Content struct {
	Subject  string
	TextBody string
	HTMLBody string
}

// Composer builds digest emails from a theme and brand settings. It is
// pure: all personalization arrives through arguments.
type Composer struct {
	theme   markdown.Theme
	ctaURL  string
	ctaText string
}

func NewComposer(theme markdown.Theme, ctaURL, ctaText string) *Composer {
	return &Composer{theme: theme, ctaURL: ctaURL, ctaText: ctaText}
}

// ThemeFromConfig applies branding overrides from the environment on top of
// the default theme.
func ThemeFromConfig(cfg *config.Config) markdown.Theme {
	theme := markdown.DefaultTheme()

	if cfg.BrandName != "" {
		theme.BrandName = cfg.BrandName
	}

	if cfg.PrimaryColor != "" {
		theme.Primary = cfg.PrimaryColor
	}

	if cfg.AccentColor != "" {
		theme.Accent = cfg.AccentColor
	}

	return theme
}

// Compose builds subject, text, and HTML bodies for a digest email.
// subject and intro may be empty; deterministic fallbacks are used.
func (c *Composer) Compose(digest *storage.Digest, curated []curator.Item, subject, intro string) Content {
	if subject == "" {
		subject = fmt.Sprintf("Daily AI News Digest - %s", digest.DigestDate.Format("01/02/2006"))
	}

	if intro == "" {
		intro = "Here's your daily digest of the most interesting AI updates, hand-picked across YouTube, OpenAI, and Anthropic."
	}

	return Content{
		Subject:  subject,
		TextBody: c.composeText(digest, curated, intro),
		HTMLBody: c.composeHTML(digest, curated, intro),
	}
}

func (c *Composer) composeText(digest *storage.Digest, curated []curator.Item, intro string) string {
	var lines []string

	lines = append(lines,
		intro,
		"",
		strings.Repeat("=", textRuleWidth),
		fmt.Sprintf("%s — %s", digest.Title, digest.DigestDate.Format("2006-01-02")),
		strings.Repeat("=", textRuleWidth),
		markdown.RenderPlainText(digest.Content),
		"",
		"Top recommendations:",
		curatedItemsText(curated),
		"",
		"More ways to get the most out of "+c.theme.BrandName+":",
		"- Reply to this email to adjust your preferences.",
		"- Share an article you think we should feature.",
		"",
		"Best,",
		c.theme.BrandName,
	)

	return strings.Join(lines, "\n")
}

func curatedItemsText(items []curator.Item) string {
	if len(items) == 0 {
		return "No highlighted items for today."
	}

	var lines []string

	for i, item := range items {
		provider := item.Provider
		if provider == "" {
			provider = "Source"
		}

		lines = append(lines, fmt.Sprintf("%d. [%s · %s] %s", i+1, titleCase(item.SourceType), provider, item.Title))

		if item.Summary != "" {
			lines = append(lines, "   "+markdown.Sanitize(item.Summary))
		}

		lines = append(lines, "   "+item.URL)
	}

	return strings.Join(lines, "\n")
}

func (c *Composer) composeHTML(digest *storage.Digest, curated []curator.Item, intro string) string {
	th := c.theme
	introHTML := strings.Join(strings.Split(html.EscapeString(intro), "\n"), "<br>")
	heroSummary := html.EscapeString(markdown.Summarize(digest.Content, heroSummaryChars))
	formattedDate := formatDigestDate(digest.DigestDate)

	var sb strings.Builder

	sb.WriteString(`<html><body style="margin:0;padding:0;background-color:` + th.Background + `;">`)
	sb.WriteString(`<table width="100%" cellpadding="0" cellspacing="0" role="presentation" style="background:` + th.Background + `;padding:24px 0;"><tr><td align="center">`)
	sb.WriteString(`<table width="620" cellpadding="0" cellspacing="0" role="presentation" style="background:` + th.CardBackground + `;border-radius:18px;box-shadow:0 12px 35px rgba(15,23,42,0.08);overflow:hidden;">`)

	// Brand header band
	fmt.Fprintf(&sb,
		`<tr><td style="background:%s;padding:28px 32px;font-family:%s;color:#ffffff;">`+
			`<div style="font-size:13px;letter-spacing:0.12em;text-transform:uppercase;opacity:0.8;">%s</div>`+
			`<div style="font-size:26px;font-weight:600;margin-top:6px;">Daily Digest</div>`+
			`<div style="font-size:14px;opacity:0.85;margin-top:4px;">%s</div>`+
			`</td></tr>`,
		th.Primary, th.FontStack, html.EscapeString(th.BrandName), formattedDate,
	)

	// Intro and hero card
	fmt.Fprintf(&sb,
		`<tr><td style="padding:28px 32px;font-family:%s;color:%s;">`+
			`<p style="font-size:15px;line-height:1.65;margin:0 0 20px 0;color:%s;">%s</p>`+
			`<div style="background:%s;border:1px solid %s;border-radius:14px;padding:20px 24px;">`+
			`<h2 style="margin:0 0 8px 0;font-size:19px;color:%s;">%s</h2>`+
			`<p style="margin:0;font-size:15px;line-height:1.7;color:%s;">%s</p>`+
			`</div></td></tr>`,
		th.FontStack, th.Text, th.Text, introHTML,
		th.Background, th.Border, th.Text, html.EscapeString(digest.Title), th.MutedText, heroSummary,
	)

	// Full digest body rendered from markdown
	fmt.Fprintf(&sb,
		`<tr><td style="padding:0 32px;font-family:%s;">%s</td></tr>`,
		th.FontStack, markdown.RenderHTML(digest.Content, th),
	)

	// Curated highlights
	fmt.Fprintf(&sb,
		`<tr><td style="padding:0 32px 10px 32px;font-family:%s;">`+
			`<div style="font-size:13px;text-transform:uppercase;letter-spacing:0.08em;color:%s;margin-bottom:6px;">Top recommendations</div>`+
			`<table width="100%%" cellpadding="0" cellspacing="0" role="presentation">%s</table>`+
			`</td></tr>`,
		th.FontStack, th.Accent, c.curatedItemsHTML(curated),
	)

	// Footer
	fmt.Fprintf(&sb, `<tr><td style="padding:10px 32px 32px 32px;">%s</td></tr>`, c.footerHTML())

	sb.WriteString(`</table></td></tr></table></body></html>`)

	return sb.String()
}

func (c *Composer) curatedItemsHTML(items []curator.Item) string {
	th := c.theme

	if len(items) == 0 {
		return fmt.Sprintf(`<tr><td><p style="margin:0;color:%s;">No additional highlights for today.</p></td></tr>`, th.MutedText)
	}

	var sb strings.Builder

	for _, item := range items {
		provider := item.Provider
		if provider == "" {
			provider = "Source"
		}

		fmt.Fprintf(&sb,
			`<tr><td style="padding:16px 0;">`+
				`<table width="100%%" cellpadding="0" cellspacing="0" role="presentation" style="border-radius:12px;border:1px solid %s;background:%s;"><tr>`+
				`<td style="padding:18px 22px;font-family:%s;">`+
				`<div style="font-size:12px;text-transform:uppercase;letter-spacing:0.08em;color:%s;margin-bottom:6px;">%s · %s</div>`+
				`<div style="font-size:17px;font-weight:600;color:%s;margin-bottom:8px;">%s</div>`+
				`<div style="font-size:14px;line-height:1.55;color:%s;margin-bottom:12px;">%s</div>`+
				`<a href="%s" style="font-size:14px;color:%s;font-weight:600;text-decoration:none;">Read more →</a>`+
				`</td></tr></table></td></tr>`,
			th.Border, th.CardBackground, th.FontStack,
			th.MutedText, html.EscapeString(titleCase(item.SourceType)), html.EscapeString(provider),
			th.Text, html.EscapeString(item.Title),
			th.MutedText, curatedDisplayText(item),
			html.EscapeString(item.URL), th.Primary,
		)
	}

	return sb.String()
}

func curatedDisplayText(item curator.Item) string {
	text := markdown.Summarize(item.Summary, curatedSummaryChars)
	if text == "" {
		text = "Stay tuned for more details soon."
	}

	return html.EscapeString(text)
}

func (c *Composer) footerHTML() string {
	th := c.theme

	return fmt.Sprintf(
		`<table width="100%%" cellpadding="0" cellspacing="0" role="presentation"><tr>`+
			`<td style="padding:24px 32px;font-family:%s;color:%s;font-size:13px;text-align:center;">`+
			`<p style="margin:0 0 8px 0;">You're receiving this digest because you subscribed to %s.</p>`+
			`<p style="margin:0 0 16px 0;">Want to tailor your interests or pause emails? Reply to this message and we'll take care of it.</p>`+
			`<a href="%s" style="display:inline-block;padding:10px 18px;background:%s;color:#ffffff;text-decoration:none;border-radius:999px;font-weight:600;">%s</a>`+
			`<p style="margin:18px 0 0 0;font-size:12px;color:%s;">© %d %s. All rights reserved.</p>`+
			`</td></tr></table>`,
		th.FontStack, th.MutedText,
		html.EscapeString(th.BrandName),
		html.EscapeString(c.ctaURL), th.Primary, html.EscapeString(c.ctaText),
		th.MutedText, time.Now().Year(), html.EscapeString(th.BrandName),
	)
}

// formatDigestDate renders a human-friendly date, e.g. "Thursday, July 18, 2025".
func formatDigestDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
