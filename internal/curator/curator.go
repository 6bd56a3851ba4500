// Package curator ranks scraped articles against a user profile with a
// small heuristic: topic keyword matches, preferred providers, and recency.
// Pure functions; the resulting top-N items feed the email highlights.
package curator

import (
	"sort"
	"strings"
	"time"

	"github.com/tntduc/ai-news-digest/internal/storage"
)

const (
	boostMatchingTopics = 1.0
	boostProvider       = 1.0
	boostRecency        = 0.3

	// Recency fades linearly from full score at publication to zero after
	// a week.
	recencyWindow = 7 * 24 * time.Hour
)

// Item is a normalized view of one article for curation and email.
type Item struct {
	SourceType  string
	Provider    string
	Title       string
	Summary     string
	URL         string
	PublishedAt time.Time
	Score       float64
}

// FromArticle converts a stored article into a curatable item.
func FromArticle(a storage.Article) Item {
	summary := a.Summary
	if summary == "" {
		summary = a.Content
	}

	provider := a.Provider
	if provider == "" {
		provider = a.Author
	}

	return Item{
		SourceType:  a.SourceType,
		Provider:    provider,
		Title:       a.Title,
		Summary:     strings.TrimSpace(summary),
		URL:         a.URL,
		PublishedAt: a.PublishedAt,
	}
}

// Rank scores items against the profile and returns the top n by
// descending score. The input slice is not modified.
func Rank(items []Item, profile storage.UserProfile, n int, now time.Time) []Item {
	ranked := make([]Item, len(items))
	copy(ranked, items)

	for i := range ranked {
		ranked[i].Score = Score(ranked[i], profile, now)
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	if len(ranked) > n {
		ranked = ranked[:n]
	}

	return ranked
}

// Score computes the relevance of one item for a profile: one point per
// preferred topic appearing in the title or summary, one point for a
// preferred provider, and a weighted recency bonus.
func Score(item Item, profile storage.UserProfile, now time.Time) float64 {
	text := strings.ToLower(item.Title + " " + item.Summary)

	var topicScore float64

	for _, topic := range profile.Topics {
		topic = strings.ToLower(strings.TrimSpace(topic))
		if topic != "" && strings.Contains(text, topic) {
			topicScore += boostMatchingTopics
		}
	}

	var providerScore float64

	if item.Provider != "" {
		providerLC := strings.ToLower(item.Provider)

		for _, p := range profile.Providers {
			p = strings.ToLower(strings.TrimSpace(p))
			if p != "" && strings.Contains(providerLC, p) {
				providerScore = boostProvider
				break
			}
		}
	}

	return topicScore + providerScore + recencyScore(item.PublishedAt, now)*boostRecency
}

func recencyScore(published time.Time, now time.Time) float64 {
	if published.IsZero() {
		return 0
	}

	age := now.Sub(published)
	if age <= 0 {
		return 1
	}

	if age >= recencyWindow {
		return 0
	}

	return 1 - float64(age)/float64(recencyWindow)
}
