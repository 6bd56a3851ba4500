// Package scraper collects AI-related content from RSS feeds: the OpenAI
// blog, Anthropic news, and YouTube channel uploads. Feed entries are
// normalized into Items; blog posts are optionally expanded to full article
// text via readability extraction.
package scraper

import (
	"context"
	"time"
)

// Item is one normalized piece of scraped content.
type Item struct {
	SourceType  string // storage.SourceYouTube / SourceOpenAI / SourceAnthropic
	Provider    string // site or channel name
	Title       string
	URL         string
	Author      string
	Content     string
	PublishedAt time.Time
}

// Scraper fetches the current set of items from one source.
type Scraper interface {
	Name() string
	Scrape(ctx context.Context) ([]Item, error)
}
