package markdown

// Theme carries the brand constants used by the HTML formatter. Rendering is
// a pure function of (markdown, theme); callers that want different branding
// pass their own value instead of mutating globals.
type Theme struct {
	BrandName string
	FontStack string

	Background     string
	CardBackground string
	Primary        string
	Accent         string
	Text           string
	MutedText      string
	Border         string
}

// DefaultTheme returns the stock AI News Daily branding.
func DefaultTheme() Theme {
	return Theme{
		BrandName:      "AI News Daily",
		FontStack:      "'Segoe UI', 'Helvetica Neue', Arial, sans-serif",
		Background:     "#f5f7fb",
		CardBackground: "#ffffff",
		Primary:        "#1d4ed8",
		Accent:         "#f97316",
		Text:           "#1f2937",
		MutedText:      "#6b7280",
		Border:         "#e5e7eb",
	}
}
