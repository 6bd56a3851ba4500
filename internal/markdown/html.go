package markdown

import (
	"fmt"
	"html"
	"strings"
)

// RenderHTML renders a digest document as a styled HTML fragment suitable
// for email clients. All styling is inline (email clients ignore
// stylesheets) and parameterized by theme. Empty input yields an empty
// string.
func RenderHTML(doc string, theme Theme) string {
	blocks := Parse(doc)
	if len(blocks) == 0 {
		return ""
	}

	r := htmlRenderer{theme: theme}

	var parts []string

	for _, b := range blocks {
		if frag := r.renderBlock(b); frag != "" {
			parts = append(parts, frag)
		}
	}

	return strings.Join(parts, "\n")
}

type htmlRenderer struct {
	theme Theme
}

func (r htmlRenderer) renderBlock(b Block) string {
	switch b.Kind {
	case KindHeader:
		return r.renderHeader(b)
	case KindNumberedItem:
		return r.renderItem(b)
	case KindBulletList:
		return r.renderList(b)
	case KindParagraph:
		return fmt.Sprintf(
			`<p style="margin:14px 0;font-size:15px;line-height:1.75;color:%s;">%s</p>`,
			r.theme.MutedText, renderInlineHTML(b.Text, r.theme),
		)
	case KindBlank:
		return `<p style="margin:12px 0;"></p>`
	default:
		return ""
	}
}

// renderHeader maps the three heading levels to fixed size/weight tiers.
// Header text is escaped but carries no inline markup.
func (r htmlRenderer) renderHeader(b Block) string {
	text := html.EscapeString(b.Text)

	switch b.Level {
	case 1:
		return fmt.Sprintf(
			`<h1 style="margin:32px 0 20px 0;font-size:24px;font-weight:700;color:%s;line-height:1.4;letter-spacing:-0.01em;">%s</h1>`,
			r.theme.Text, text,
		)
	case 2:
		return fmt.Sprintf(
			`<h2 style="margin:40px 0 22px 0;font-size:22px;font-weight:700;color:%s;line-height:1.4;letter-spacing:-0.01em;">%s</h2>`,
			r.theme.Text, text,
		)
	default:
		return fmt.Sprintf(
			`<h3 style="margin:36px 0 18px 0;font-size:20px;font-weight:700;color:%s;line-height:1.4;letter-spacing:-0.01em;">%s</h3>`,
			r.theme.Text, text,
		)
	}
}

// renderItem renders a numbered digest item as a card: bold title line, an
// optional pill-styled source link, then the summary paragraphs.
func (r htmlRenderer) renderItem(b Block) string {
	var sb strings.Builder

	sb.WriteString(`<div style="margin:24px 0;">`)

	if b.Title != "" {
		fmt.Fprintf(&sb,
			`<div style="font-size:18px;font-weight:700;color:%s;margin-bottom:10px;line-height:1.5;letter-spacing:-0.01em;">%s</div>`,
			r.theme.Text, html.EscapeString(b.Title),
		)
	}

	if b.Source != nil {
		fmt.Fprintf(&sb,
			`<div style="margin-bottom:14px;">`+
				`<span style="font-size:13px;color:%s;text-transform:uppercase;letter-spacing:0.05em;font-weight:600;margin-right:8px;">Source:</span>`+
				`<a href="%s" style="display:inline-block;padding:6px 14px;background:%s;border:1px solid %s;border-radius:6px;color:%s;text-decoration:none;font-size:14px;font-weight:600;line-height:1.4;">🔗 %s</a>`+
				`</div>`,
			r.theme.MutedText,
			html.EscapeString(b.Source.URL),
			r.theme.Background, r.theme.Border, r.theme.Primary,
			html.EscapeString(b.Source.Text),
		)
	}

	if len(b.Summary) > 0 {
		sb.WriteString(`<div style="margin-top:8px;">`)

		for _, para := range b.Summary {
			fmt.Fprintf(&sb,
				`<p style="margin:0 0 14px 0;font-size:15px;line-height:1.75;color:%s;">%s</p>`,
				r.theme.MutedText, renderInlineHTML(para, r.theme),
			)
		}

		sb.WriteString(`</div>`)
	}

	sb.WriteString(`</div>`)

	return sb.String()
}

func (r htmlRenderer) renderList(b Block) string {
	tag := "ul"
	if b.Ordered {
		tag = "ol"
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, `<%s style="margin:14px 0;padding-left:24px;color:%s;">`, tag, r.theme.MutedText)

	for _, entry := range b.Entries {
		fmt.Fprintf(&sb,
			`<li style="margin:10px 0;font-size:15px;line-height:1.7;color:%s;">%s</li>`,
			r.theme.MutedText, renderInlineHTML(entry, r.theme),
		)
	}

	fmt.Fprintf(&sb, `</%s>`, tag)

	return sb.String()
}
