package scraper

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
)

const youtubeFeedURL = "https://www.youtube.com/feeds/videos.xml?channel_id=%s"

// YouTubeScraper reads the uploads feed of one channel. The video
// description stands in for content; transcripts are not fetched.
type YouTubeScraper struct {
	channelID string
	feedURL   string
	parser    *gofeed.Parser
	logger    *zerolog.Logger
}

func NewYouTubeScraper(channelID string, logger *zerolog.Logger) *YouTubeScraper {
	return &YouTubeScraper{
		channelID: channelID,
		feedURL:   fmt.Sprintf(youtubeFeedURL, channelID),
		parser:    gofeed.NewParser(),
		logger:    logger,
	}
}

func (s *YouTubeScraper) Name() string {
	return "youtube:" + s.channelID
}

func (s *YouTubeScraper) Scrape(ctx context.Context) ([]Item, error) {
	feed, err := s.parser.ParseURLWithContext(s.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse youtube feed %s: %w", s.channelID, err)
	}

	provider := strings.TrimSpace(feed.Title)
	if provider == "" {
		provider = s.channelID
	}

	items := make([]Item, 0, len(feed.Items))

	for _, entry := range feed.Items {
		if entry.Link == "" {
			continue
		}

		items = append(items, Item{
			SourceType:  "youtube",
			Provider:    provider,
			Title:       strings.TrimSpace(entry.Title),
			URL:         entry.Link,
			Author:      entryAuthor(entry),
			Content:     videoDescription(entry),
			PublishedAt: entryPublished(entry),
		})
	}

	return items, nil
}

// videoDescription digs the description out of the media extension where
// YouTube feeds put it.
func videoDescription(entry *gofeed.Item) string {
	if groups, ok := entry.Extensions["media"]["group"]; ok {
		for _, group := range groups {
			for _, desc := range group.Children["description"] {
				if desc.Value != "" {
					return desc.Value
				}
			}
		}
	}

	return entry.Description
}
