package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Example Blog</title>
  <item>
    <title>First Post</title>
    <link>https://blog.example/first</link>
    <description>Intro paragraph.</description>
    <pubDate>Mon, 07 Jul 2025 10:00:00 GMT</pubDate>
    <author>alice@example.com (Alice)</author>
  </item>
  <item>
    <title>Second Post</title>
    <link>https://blog.example/second</link>
    <description>Another intro.</description>
  </item>
</channel>
</rss>`

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func TestFeedScraperScrape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(testRSS))
	}))
	defer srv.Close()

	s := NewFeedScraper("openai-blog", "openai", "OpenAI Blog", srv.URL, false, 10, 5*time.Second, testLogger())

	items, err := s.Scrape(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "openai", first.SourceType)
	assert.Equal(t, "OpenAI Blog", first.Provider)
	assert.Equal(t, "First Post", first.Title)
	assert.Equal(t, "https://blog.example/first", first.URL)
	assert.Equal(t, "Intro paragraph.", first.Content)
	assert.Equal(t, 2025, first.PublishedAt.Year())

	// Second item has no pubDate; published time stays zero.
	assert.True(t, items[1].PublishedAt.IsZero())
}

func TestFeedScraperBadFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewFeedScraper("openai-blog", "openai", "OpenAI Blog", srv.URL, false, 10, 5*time.Second, testLogger())

	_, err := s.Scrape(context.Background())
	assert.Error(t, err)
}

const testYouTubeFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015"
      xmlns:media="http://search.yahoo.com/mrss/"
      xmlns="http://www.w3.org/2005/Atom">
  <title>AI Channel</title>
  <entry>
    <title>Model Deep Dive</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=abc123"/>
    <author><name>AI Channel</name></author>
    <published>2025-07-08T12:00:00+00:00</published>
    <media:group>
      <media:description>We walk through the new release.</media:description>
    </media:group>
  </entry>
</feed>`

func TestYouTubeScraperScrape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(testYouTubeFeed))
	}))
	defer srv.Close()

	s := NewYouTubeScraper("UCtest", testLogger())
	s.feedURL = srv.URL

	items, err := s.Scrape(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "youtube", item.SourceType)
	assert.Equal(t, "AI Channel", item.Provider)
	assert.Equal(t, "Model Deep Dive", item.Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", item.URL)
	assert.Equal(t, "We walk through the new release.", item.Content)
}
