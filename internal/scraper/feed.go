package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	readability "github.com/go-shiori/go-readability"
	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const maxArticleBody = 1 << 20 // cap page downloads at 1 MiB

// FeedScraper reads one RSS/Atom feed and normalizes its entries. When
// fetchFull is set, each entry's page is downloaded and run through
// readability extraction so the summarizer sees the whole article, not just
// the feed excerpt.
type FeedScraper struct {
	name       string
	sourceType string
	provider   string
	feedURL    string
	fetchFull  bool

	parser  *gofeed.Parser
	client  *http.Client
	limiter *rate.Limiter
	logger  *zerolog.Logger
}

func NewFeedScraper(name, sourceType, provider, feedURL string, fetchFull bool, fetchRPS float64, timeout time.Duration, logger *zerolog.Logger) *FeedScraper {
	return &FeedScraper{
		name:       name,
		sourceType: sourceType,
		provider:   provider,
		feedURL:    feedURL,
		fetchFull:  fetchFull,
		parser:     gofeed.NewParser(),
		client:     &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(fetchRPS), 1),
		logger:     logger,
	}
}

func (s *FeedScraper) Name() string { return s.name }

func (s *FeedScraper) Scrape(ctx context.Context) ([]Item, error) {
	feed, err := s.parser.ParseURLWithContext(s.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", s.feedURL, err)
	}

	items := make([]Item, 0, len(feed.Items))

	for _, entry := range feed.Items {
		if entry.Link == "" {
			continue
		}

		item := Item{
			SourceType:  s.sourceType,
			Provider:    s.provider,
			Title:       strings.TrimSpace(entry.Title),
			URL:         entry.Link,
			Author:      entryAuthor(entry),
			Content:     entryContent(entry),
			PublishedAt: entryPublished(entry),
		}

		if s.fetchFull {
			if body, err := s.fetchArticle(ctx, entry.Link); err != nil {
				s.logger.Warn().Err(err).Str("url", entry.Link).Msg("full-text extraction failed, keeping feed excerpt")
			} else if body != "" {
				item.Content = body
			}
		}

		items = append(items, item)
	}

	return items, nil
}

// fetchArticle downloads the entry page and extracts readable article text.
func (s *FeedScraper) fetchArticle(ctx context.Context, link string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", link, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", link, resp.StatusCode)
	}

	parsed, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	article, err := readability.FromReader(io.LimitReader(resp.Body, maxArticleBody), parsed)
	if err != nil {
		return "", fmt.Errorf("readability extraction: %w", err)
	}

	return strings.TrimSpace(article.TextContent), nil
}

func entryAuthor(entry *gofeed.Item) string {
	if len(entry.Authors) > 0 {
		return entry.Authors[0].Name
	}

	return ""
}

func entryContent(entry *gofeed.Item) string {
	if entry.Content != "" {
		return entry.Content
	}

	return entry.Description
}

// entryPublished prefers the parsed feed timestamp but falls back to
// lenient parsing; feeds in the wild carry all sorts of date formats.
func entryPublished(entry *gofeed.Item) time.Time {
	if entry.PublishedParsed != nil {
		return *entry.PublishedParsed
	}

	if entry.UpdatedParsed != nil {
		return *entry.UpdatedParsed
	}

	if entry.Published != "" {
		if t, err := dateparse.ParseAny(entry.Published); err == nil {
			return t
		}
	}

	return time.Time{}
}
