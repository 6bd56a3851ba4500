package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/tntduc/ai-news-digest/internal/config"
	"github.com/tntduc/ai-news-digest/internal/observability"
)

const (
	circuitBreakerThreshold = 5
	circuitBreakerTimeout   = time.Minute

	// chunkOverhead leaves room for the prompt scaffolding around a chunk.
	chunkOverhead = 500

	summaryMaxTokens = 400
	digestMaxTokens  = 2000
	subjectMaxTokens = 40
	introMaxTokens   = 120
)

type openaiClient struct {
	cfg         *config.Config
	client      *openai.Client
	logger      *zerolog.Logger
	rateLimiter *rate.Limiter

	// Circuit breaker state
	consecutiveFailures int
	circuitOpenUntil    time.Time
	mu                  sync.Mutex
}

func newOpenAI(cfg *config.Config, logger *zerolog.Logger) Client {
	return &openaiClient{
		cfg:         cfg,
		client:      openai.NewClient(cfg.OpenAIAPIKey),
		logger:      logger,
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.LLMRateRPS), 5),
	}
}

func (c *openaiClient) Summarize(ctx context.Context, contentType, title, content string) (string, error) {
	if len(content) <= c.cfg.MaxInputChars {
		return c.chat(ctx, summarizeSystemPrompt, summarizePrompt(contentType, title, content), 0.3, summaryMaxTokens)
	}

	return c.summarizeChunked(ctx, contentType, content)
}

// summarizeChunked splits oversized content, summarizes each chunk, then
// combines the partial summaries into one.
func (c *openaiClient) summarizeChunked(ctx context.Context, contentType, content string) (string, error) {
	chunkSize := c.cfg.MaxInputChars - chunkOverhead
	chunks := splitChunks(content, chunkSize)

	partials := make([]string, 0, len(chunks))

	for i, chunk := range chunks {
		partial, err := c.chat(ctx, summarizeSystemPrompt, chunkPrompt(contentType, i+1, len(chunks), chunk), 0.3, summaryMaxTokens)
		if err != nil {
			return "", fmt.Errorf("summarize chunk %d/%d: %w", i+1, len(chunks), err)
		}

		partials = append(partials, partial)
	}

	if len(partials) == 1 {
		return partials[0], nil
	}

	return c.chat(ctx, summarizeSystemPrompt, combineChunksPrompt(contentType, partials), 0.3, summaryMaxTokens)
}

func (c *openaiClient) ComposeDigest(ctx context.Context, items []SourceItem) (string, error) {
	return c.chat(ctx, digestSystemPrompt, digestPrompt(items), 0.8, digestMaxTokens)
}

func (c *openaiClient) GenerateSubject(ctx context.Context, date string, topTitles []string) (string, error) {
	subject, err := c.chat(ctx, subjectSystemPrompt, subjectPrompt(date, topTitles), 0.7, subjectMaxTokens)
	if err != nil {
		return "", err
	}

	return strings.ReplaceAll(strings.TrimSpace(subject), "\n", " "), nil
}

func (c *openaiClient) GenerateIntro(ctx context.Context, recipientName string, topTitles []string) (string, error) {
	intro, err := c.chat(ctx, digestSystemPrompt, introPrompt(recipientName, topTitles), 0.7, introMaxTokens)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(intro), nil
}

func (c *openaiClient) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	if err := c.checkCircuit(); err != nil {
		return nil, err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.SmallEmbedding3,
	})
	if err != nil {
		c.recordFailure()

		return nil, fmt.Errorf("create embeddings: %w", err)
	}

	c.recordSuccess()

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("empty embedding response")
	}

	return resp.Data[0].Embedding, nil
}

func (c *openaiClient) chat(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	if err := c.checkCircuit(); err != nil {
		return "", err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.OpenAIModel,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})

	observability.LLMRequestDuration.WithLabelValues(c.cfg.OpenAIModel).Observe(time.Since(start).Seconds())

	if err != nil {
		c.recordFailure()

		return "", fmt.Errorf("chat completion: %w", err)
	}

	c.recordSuccess()

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *openaiClient) checkCircuit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if time.Now().Before(c.circuitOpenUntil) {
		return fmt.Errorf("circuit breaker is open until %v", c.circuitOpenUntil)
	}

	return nil
}

func (c *openaiClient) recordSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.consecutiveFailures = 0
}

func (c *openaiClient) recordFailure() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.consecutiveFailures++
	if c.consecutiveFailures >= circuitBreakerThreshold {
		c.circuitOpenUntil = time.Now().Add(circuitBreakerTimeout)
		c.logger.Warn().
			Int("consecutive_failures", c.consecutiveFailures).
			Time("open_until", c.circuitOpenUntil).
			Msg("circuit breaker opened")
	}
}

// splitChunks cuts content into chunks of at most size bytes, preferring
// paragraph boundaries.
func splitChunks(content string, size int) []string {
	var chunks []string

	for len(content) > size {
		cut := size

		if idx := strings.LastIndex(content[:size], "\n\n"); idx > size/2 {
			cut = idx
		}

		chunks = append(chunks, content[:cut])
		content = strings.TrimLeft(content[cut:], "\n")
	}

	if content != "" {
		chunks = append(chunks, content)
	}

	return chunks
}
