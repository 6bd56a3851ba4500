package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tntduc/ai-news-digest/internal/markdown"
	"github.com/tntduc/ai-news-digest/internal/storage"
)

func TestSplitChunks(t *testing.T) {
	tests := []struct {
		name    string
		content string
		size    int
		want    []string
	}{
		{
			name:    "fits in one chunk",
			content: "short text",
			size:    100,
			want:    []string{"short text"},
		},
		{
			name:    "splits at paragraph boundary",
			content: "first paragraph here\n\nsecond paragraph here",
			size:    30,
			want:    []string{"first paragraph here", "second paragraph here"},
		},
		{
			name:    "hard split when no boundary",
			content: strings.Repeat("a", 25),
			size:    10,
			want:    []string{strings.Repeat("a", 10), strings.Repeat("a", 10), strings.Repeat("a", 5)},
		},
		{
			name:    "empty content",
			content: "",
			size:    10,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitChunks(tt.content, tt.size))
		})
	}
}

func TestFormatFallbackDigestParsesAsItems(t *testing.T) {
	items := []SourceItem{
		{SourceType: "openai", Title: "Model release", URL: "https://example.com/1", Summary: "A new model."},
		{SourceType: "youtube", Title: "Paper walkthrough", URL: "https://example.com/2", Summary: "Video recap."},
	}

	doc := FormatFallbackDigest(items)
	blocks := markdown.Parse(doc)

	var parsed []markdown.Block

	for _, b := range blocks {
		if b.Kind == markdown.KindNumberedItem {
			parsed = append(parsed, b)
		}
	}

	require.Len(t, parsed, 2)

	assert.Equal(t, "Model release", parsed[0].Title)
	require.NotNil(t, parsed[0].Source)
	assert.Equal(t, "OpenAI Blog", parsed[0].Source.Text)
	assert.Equal(t, "https://example.com/1", parsed[0].Source.URL)
	assert.Equal(t, []string{"A new model."}, parsed[0].Summary)

	assert.Equal(t, "Paper walkthrough", parsed[1].Title)
	require.NotNil(t, parsed[1].Source)
	assert.Equal(t, "YouTube", parsed[1].Source.Text)
}

func TestMockClientDeterministic(t *testing.T) {
	client := &mockClient{}
	ctx := context.Background()

	summary, err := client.Summarize(ctx, "openai", "Big launch", "Lots of details here.")
	require.NoError(t, err)
	assert.Contains(t, summary, "Big launch")

	subject, err := client.GenerateSubject(ctx, "07/18/2025", nil)
	require.NoError(t, err)
	assert.Equal(t, "Daily AI News Digest - 07/18/2025", subject)

	vec1, err := client.GetEmbedding(ctx, "same text")
	require.NoError(t, err)
	vec2, err := client.GetEmbedding(ctx, "same text")
	require.NoError(t, err)
	assert.Equal(t, vec1, vec2)
	// pgvector enforces the declared column dimension, so the mock has to
	// produce full-size vectors or offline runs can never persist summaries.
	assert.Len(t, vec1, storage.EmbeddingDim)
}
