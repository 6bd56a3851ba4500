// Package digest orchestrates the daily pipeline: ingesting scraped items,
// summarizing pending articles, composing the digest document, and sending
// the digest email to subscribers.
package digest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tntduc/ai-news-digest/internal/config"
	"github.com/tntduc/ai-news-digest/internal/curator"
	"github.com/tntduc/ai-news-digest/internal/email"
	"github.com/tntduc/ai-news-digest/internal/llm"
	"github.com/tntduc/ai-news-digest/internal/observability"
	"github.com/tntduc/ai-news-digest/internal/scraper"
	"github.com/tntduc/ai-news-digest/internal/storage"
)

const summarizeBatchSize = 50

// Store is the storage surface the pipeline needs. *storage.DB satisfies it.
type Store interface {
	SaveArticle(ctx context.Context, a *storage.Article) (bool, error)
	ListArticlesByStatus(ctx context.Context, status string, limit int) ([]storage.Article, error)
	ListArticlesForDigest(ctx context.Context, since time.Time) ([]storage.Article, error)
	UpdateArticleSummary(ctx context.Context, id, summary string, embedding []float32) error
	MarkArticleFailed(ctx context.Context, id string) error
	MarkArticlesDigested(ctx context.Context, ids []string) error
	FindSimilarArticle(ctx context.Context, embedding []float32, threshold float32) (string, error)
	SaveDigest(ctx context.Context, d *storage.Digest, articleIDs []string) error
	GetDigestByDate(ctx context.Context, date time.Time) (*storage.Digest, error)
	MarkDigestSent(ctx context.Context, id string) error
	LogEmail(ctx context.Context, digestID, recipient, status, errText string) error
	GetProfile(ctx context.Context, email string) (storage.UserProfile, error)
}

type Service struct {
	cfg      *config.Config
	store    Store
	llm      llm.Client
	sender   email.Sender
	composer *email.Composer
	logger   zerolog.Logger
}

func NewService(cfg *config.Config, store Store, llmClient llm.Client, sender email.Sender, composer *email.Composer, logger zerolog.Logger) *Service {
	return &Service{
		cfg:      cfg,
		store:    store,
		llm:      llmClient,
		sender:   sender,
		composer: composer,
		logger:   logger.With().Str("component", "digest").Logger(),
	}
}

// Ingest stores scraped items as pending articles. Items already known by
// URL are skipped. Returns the number of newly stored articles.
func (s *Service) Ingest(ctx context.Context, items []scraper.Item) (int, error) {
	stored := 0

	for _, item := range items {
		article := &storage.Article{
			SourceType:  item.SourceType,
			Provider:    item.Provider,
			Title:       item.Title,
			URL:         item.URL,
			Author:      item.Author,
			Content:     item.Content,
			Status:      storage.StatusPending,
			PublishedAt: item.PublishedAt,
		}

		created, err := s.store.SaveArticle(ctx, article)
		if err != nil {
			return stored, fmt.Errorf("save article %s: %w", item.URL, err)
		}

		if created {
			stored++

			observability.ArticlesScraped.WithLabelValues(item.SourceType).Inc()
		}
	}

	s.logger.Info().Int("received", len(items)).Int("stored", stored).Msg("ingested scraped items")

	return stored, nil
}

// SummarizePending summarizes pending articles one by one: each gets an LLM
// summary and an embedding, near duplicates of recent articles are
// suppressed, and failures are marked so they don't block the queue.
func (s *Service) SummarizePending(ctx context.Context) error {
	articles, err := s.store.ListArticlesByStatus(ctx, storage.StatusPending, summarizeBatchSize)
	if err != nil {
		return fmt.Errorf("list pending articles: %w", err)
	}

	for _, article := range articles {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.summarizeOne(ctx, article); err != nil {
			s.logger.Error().Err(err).Str("url", article.URL).Msg("summarization failed")

			observability.ArticlesSummarized.WithLabelValues("error").Inc()

			if markErr := s.store.MarkArticleFailed(ctx, article.ID); markErr != nil {
				return fmt.Errorf("mark article failed: %w", markErr)
			}
		}
	}

	return nil
}

func (s *Service) summarizeOne(ctx context.Context, article storage.Article) error {
	content := article.Content
	if content == "" {
		content = article.Title
	}

	summary, err := s.llm.Summarize(ctx, article.SourceType, article.Title, content)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	embedding, err := s.llm.GetEmbedding(ctx, article.Title+"\n"+summary)
	if err != nil {
		return fmt.Errorf("embed: %w", err)
	}

	dupID, err := s.store.FindSimilarArticle(ctx, embedding, s.cfg.SimilarityThreshold)
	if err != nil {
		return fmt.Errorf("similarity lookup: %w", err)
	}

	if dupID != "" && dupID != article.ID {
		s.logger.Info().Str("url", article.URL).Str("duplicate_of", dupID).Msg("suppressing near-duplicate article")

		observability.DuplicatesSuppressed.Inc()

		return s.store.MarkArticleFailed(ctx, article.ID)
	}

	if err := s.store.UpdateArticleSummary(ctx, article.ID, summary, embedding); err != nil {
		return fmt.Errorf("store summary: %w", err)
	}

	observability.ArticlesSummarized.WithLabelValues("ok").Inc()

	return nil
}

// RunDigest composes the digest for the given date from articles summarized
// within the configured window and emails it to all recipients. A date that
// already has a sent digest is a no-op.
func (s *Service) RunDigest(ctx context.Context, date time.Time) error {
	date = date.Truncate(24 * time.Hour)

	if existing, err := s.store.GetDigestByDate(ctx, date); err == nil && existing.EmailSent {
		s.logger.Info().Time("date", date).Msg("digest already sent, skipping")

		return nil
	} else if err != nil && !errors.Is(err, storage.ErrDigestNotFound) {
		return fmt.Errorf("check existing digest: %w", err)
	}

	articles, err := s.store.ListArticlesForDigest(ctx, date.Add(-s.cfg.DigestWindow))
	if err != nil {
		return fmt.Errorf("list articles for digest: %w", err)
	}

	if len(articles) == 0 {
		s.logger.Info().Time("date", date).Msg("no summarized articles in window, skipping digest")

		return nil
	}

	digest, err := s.composeDigest(ctx, date, articles)
	if err != nil {
		observability.DigestsGenerated.WithLabelValues("error").Inc()

		return err
	}

	observability.DigestsGenerated.WithLabelValues("ok").Inc()

	items := make([]curator.Item, 0, len(articles))
	for _, a := range articles {
		items = append(items, curator.FromArticle(a))
	}

	if err := s.deliver(ctx, digest, items); err != nil {
		return err
	}

	articleIDs := make([]string, 0, len(articles))
	for _, a := range articles {
		articleIDs = append(articleIDs, a.ID)
	}

	if err := s.store.MarkArticlesDigested(ctx, articleIDs); err != nil {
		return fmt.Errorf("mark articles digested: %w", err)
	}

	return nil
}

func (s *Service) composeDigest(ctx context.Context, date time.Time, articles []storage.Article) (*storage.Digest, error) {
	items := make([]llm.SourceItem, 0, len(articles))
	for _, a := range articles {
		items = append(items, llm.SourceItem{
			SourceType: a.SourceType,
			Title:      a.Title,
			URL:        a.URL,
			Summary:    a.Summary,
		})
	}

	content, err := s.llm.ComposeDigest(ctx, items)
	if err != nil {
		s.logger.Error().Err(err).Msg("LLM digest composition failed, using fallback formatting")

		content = llm.FormatFallbackDigest(items)
	}

	digest := &storage.Digest{
		DigestDate: date,
		Title:      s.cfg.BrandName + " Digest",
		Content:    content,
	}

	articleIDs := make([]string, 0, len(articles))
	for _, a := range articles {
		articleIDs = append(articleIDs, a.ID)
	}

	if err := s.store.SaveDigest(ctx, digest, articleIDs); err != nil {
		return nil, fmt.Errorf("save digest: %w", err)
	}

	s.logger.Info().Time("date", date).Int("articles", len(articles)).Msg("digest composed")

	return digest, nil
}

func (s *Service) deliver(ctx context.Context, digest *storage.Digest, items []curator.Item) error {
	// Default ranking feeds the shared subject line; each recipient gets a
	// re-ranked selection from their own profile below.
	defaultCurated := curator.Rank(items, storage.DefaultProfile(""), s.cfg.CuratedTopN, digest.DigestDate)

	topTitles := make([]string, 0, len(defaultCurated))
	for _, item := range defaultCurated {
		topTitles = append(topTitles, item.Title)
	}

	subject := ""

	if s.cfg.UseLLMSubject {
		generated, err := s.llm.GenerateSubject(ctx, digest.DigestDate.Format("January 2, 2006"), topTitles)
		if err != nil {
			s.logger.Warn().Err(err).Msg("subject generation failed, using default subject")
		} else {
			subject = generated
		}
	}

	sent := 0
	attempted := 0

	for _, recipient := range s.cfg.ToEmails {
		profile, err := s.store.GetProfile(ctx, recipient)
		if err != nil {
			return fmt.Errorf("load profile %s: %w", recipient, err)
		}

		if !profile.ReceiveDailyDigest {
			s.logger.Info().Str("recipient", recipient).Msg("recipient opted out, skipping")

			continue
		}

		attempted++

		intro := ""

		if s.cfg.UseLLMIntro {
			generated, err := s.llm.GenerateIntro(ctx, profile.Name, topTitles)
			if err != nil {
				s.logger.Warn().Err(err).Str("recipient", recipient).Msg("intro generation failed, using default intro")
			} else {
				intro = generated
			}
		}

		curated := curator.Rank(items, profile, s.cfg.CuratedTopN, digest.DigestDate)

		content := s.composer.Compose(digest, curated, subject, intro)

		if err := s.sender.Send(ctx, recipient, content); err != nil {
			s.logger.Error().Err(err).Str("recipient", recipient).Msg("email delivery failed")

			observability.EmailsSent.WithLabelValues("error", s.sender.Transport()).Inc()

			if logErr := s.store.LogEmail(ctx, digest.ID, recipient, "failed", err.Error()); logErr != nil {
				return fmt.Errorf("log email failure: %w", logErr)
			}

			continue
		}

		sent++

		observability.EmailsSent.WithLabelValues("ok", s.sender.Transport()).Inc()

		if err := s.store.LogEmail(ctx, digest.ID, recipient, "sent", ""); err != nil {
			return fmt.Errorf("log email: %w", err)
		}
	}

	// Every recipient opting out is not a delivery failure: record the
	// digest as sent so the scheduler doesn't retry it for the rest of the
	// send hour.
	if attempted == 0 {
		s.logger.Info().Msg("all recipients opted out, nothing to deliver")
	} else if sent == 0 {
		return fmt.Errorf("digest %s: no emails delivered", digest.DigestDate.Format("2006-01-02"))
	}

	if err := s.store.MarkDigestSent(ctx, digest.ID); err != nil {
		return fmt.Errorf("mark digest sent: %w", err)
	}

	s.logger.Info().Int("sent", sent).Msg("digest delivered")

	return nil
}
