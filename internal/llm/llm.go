// Package llm wraps the OpenAI API behind a small client interface used by
// the digest pipeline. A deterministic mock is substituted when no API key
// is configured, which keeps local runs and tests offline.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tntduc/ai-news-digest/internal/config"
	"github.com/tntduc/ai-news-digest/internal/storage"
)

// SourceItem is one summarized article handed to digest aggregation.
type SourceItem struct {
	SourceType string
	Title      string
	URL        string
	Summary    string
}

type Client interface {
	// Summarize produces a concise summary of one article or transcript.
	// Oversized content is summarized in chunks and recombined.
	Summarize(ctx context.Context, contentType, title, content string) (string, error)

	// ComposeDigest aggregates per-item summaries into one markdown digest
	// document.
	ComposeDigest(ctx context.Context, items []SourceItem) (string, error)

	// GenerateSubject writes an email subject line for the digest.
	GenerateSubject(ctx context.Context, date string, topTitles []string) (string, error)

	// GenerateIntro writes a short personalized intro paragraph.
	GenerateIntro(ctx context.Context, recipientName string, topTitles []string) (string, error)

	// GetEmbedding returns an embedding vector for near-duplicate detection.
	GetEmbedding(ctx context.Context, text string) ([]float32, error)
}

func New(cfg *config.Config, logger *zerolog.Logger) Client {
	if cfg.OpenAIAPIKey == "" || cfg.OpenAIAPIKey == "mock" {
		logger.Warn().Msg("no OpenAI API key configured, using mock LLM client")

		return &mockClient{}
	}

	return newOpenAI(cfg, logger)
}

type mockClient struct{}

func (m *mockClient) Summarize(_ context.Context, contentType, title, content string) (string, error) {
	snippet := content
	if len(snippet) > 120 {
		snippet = snippet[:120]
	}

	return fmt.Sprintf("Mock %s summary of %q: %s", contentType, title, snippet), nil
}

func (m *mockClient) ComposeDigest(_ context.Context, items []SourceItem) (string, error) {
	return FormatFallbackDigest(items), nil
}

func (m *mockClient) GenerateSubject(_ context.Context, date string, _ []string) (string, error) {
	return "Daily AI News Digest - " + date, nil
}

func (m *mockClient) GenerateIntro(_ context.Context, recipientName string, _ []string) (string, error) {
	if recipientName == "" {
		recipientName = "there"
	}

	return fmt.Sprintf("Hi %s, here's what happened in AI today.", recipientName), nil
}

func (m *mockClient) GetEmbedding(_ context.Context, text string) ([]float32, error) {
	// Cheap deterministic vector so dedup code paths stay exercised. The
	// dimension must match the schema or pgvector rejects the value.
	vec := make([]float32, storage.EmbeddingDim)
	for i, r := range text {
		vec[i%storage.EmbeddingDim] += float32(r % 97)
	}

	return vec, nil
}

// FormatFallbackDigest renders item summaries as a plain markdown digest.
// Used when LLM aggregation fails, so a digest still goes out.
func FormatFallbackDigest(items []SourceItem) string {
	var sb strings.Builder

	sb.WriteString("# Daily AI News Digest\n")

	for i, item := range items {
		fmt.Fprintf(&sb, "\n%d. **%s**\n", i+1, item.Title)
		fmt.Fprintf(&sb, "* **Source:** [%s](%s)\n", sourceLabel(item.SourceType), item.URL)

		if item.Summary != "" {
			fmt.Fprintf(&sb, "* **Summary:** %s\n", item.Summary)
		}
	}

	return sb.String()
}

func sourceLabel(sourceType string) string {
	switch sourceType {
	case "youtube":
		return "YouTube"
	case "openai":
		return "OpenAI Blog"
	case "anthropic":
		return "Anthropic News"
	default:
		return "Source"
	}
}
