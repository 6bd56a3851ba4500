// Package app provides the application bootstrap and runtime orchestration.
//
// The App type wires together all dependencies and exposes methods to run
// different operational modes:
//
//   - Scrape mode: fetch all configured sources once and summarize
//   - Digest mode: compose and email the daily digest
//   - Run mode: long-running scheduler combining both
//
// Each mode can be run independently or combined based on deployment needs.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tntduc/ai-news-digest/internal/config"
	"github.com/tntduc/ai-news-digest/internal/digest"
	"github.com/tntduc/ai-news-digest/internal/email"
	"github.com/tntduc/ai-news-digest/internal/llm"
	"github.com/tntduc/ai-news-digest/internal/observability"
	"github.com/tntduc/ai-news-digest/internal/scraper"
	"github.com/tntduc/ai-news-digest/internal/storage"
	"github.com/tntduc/ai-news-digest/internal/worker"
)

const (
	schedulerPollInterval = time.Minute
	digestRunTimeout      = 15 * time.Minute
)

// App holds the application dependencies and provides methods to run
// different modes.
type App struct {
	cfg      *config.Config
	database *storage.DB
	logger   *zerolog.Logger

	service  *digest.Service
	scrapers []scraper.Scraper
}

// New creates an App and wires the pipeline: scrapers, LLM client, email
// transport, and the digest service.
func New(cfg *config.Config, database *storage.DB, logger *zerolog.Logger) (*App, error) {
	llmClient := llm.New(cfg, logger)

	sender, err := email.NewSender(cfg, *logger)
	if err != nil {
		return nil, fmt.Errorf("email sender init: %w", err)
	}

	composer := email.NewComposer(email.ThemeFromConfig(cfg), cfg.CTAURL, cfg.CTAText)
	service := digest.NewService(cfg, database, llmClient, sender, composer, *logger)

	return &App{
		cfg:      cfg,
		database: database,
		logger:   logger,
		service:  service,
		scrapers: buildScrapers(cfg, logger),
	}, nil
}

func buildScrapers(cfg *config.Config, logger *zerolog.Logger) []scraper.Scraper {
	var scrapers []scraper.Scraper

	if cfg.OpenAIFeedURL != "" {
		scrapers = append(scrapers, scraper.NewFeedScraper(
			"openai-blog", storage.SourceOpenAI, "OpenAI Blog",
			cfg.OpenAIFeedURL, true, cfg.FetchRPS, cfg.FetchTimeout, logger,
		))
	}

	if cfg.AnthropicFeedURL != "" {
		scrapers = append(scrapers, scraper.NewFeedScraper(
			"anthropic-news", storage.SourceAnthropic, "Anthropic News",
			cfg.AnthropicFeedURL, true, cfg.FetchRPS, cfg.FetchTimeout, logger,
		))
	}

	for _, channelID := range cfg.YouTubeChannels {
		scrapers = append(scrapers, scraper.NewYouTubeScraper(channelID, logger))
	}

	return scrapers
}

// StartHealthServer starts the health check and metrics server.
func (a *App) StartHealthServer(ctx context.Context) error {
	return observability.NewServer(a.database, a.cfg.HealthPort, a.logger).Start(ctx)
}

// RunScrape fetches all configured sources once, stores new articles, and
// summarizes the pending queue.
func (a *App) RunScrape(ctx context.Context) error {
	a.scrapeAll(ctx)

	return a.service.SummarizePending(ctx)
}

func (a *App) scrapeAll(ctx context.Context) {
	for _, s := range a.scrapers {
		items, err := s.Scrape(ctx)
		if err != nil {
			a.logger.Error().Err(err).Str("scraper", s.Name()).Msg("scrape failed")

			continue
		}

		if _, err := a.service.Ingest(ctx, items); err != nil {
			a.logger.Error().Err(err).Str("scraper", s.Name()).Msg("ingest failed")
		}
	}
}

// RunDigest composes and sends today's digest. With once set it runs a
// single time and exits; otherwise it waits for the configured send hour
// each day.
func (a *App) RunDigest(ctx context.Context, once bool) error {
	if once {
		return a.service.RunDigest(ctx, time.Now())
	}

	var lastRun time.Time

	return worker.Loop(ctx, worker.Config{
		Name:         "digest-scheduler",
		PollInterval: schedulerPollInterval,
		Process: func(ctx context.Context) error {
			now := time.Now()
			if !worker.ShouldRunDaily(now, a.cfg.DigestHour, lastRun) {
				return nil
			}

			if err := a.runDigestOnce(ctx, now); err != nil {
				return err
			}

			lastRun = now

			return nil
		},
		OnError: func(err error) bool {
			a.logger.Error().Err(err).Msg("digest run failed")

			return true
		},
		Logger: a.logger,
	})
}

func (a *App) runDigestOnce(ctx context.Context, now time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, digestRunTimeout)
	defer cancel()

	return a.service.RunDigest(ctx, now)
}

// Run starts the combined scheduler: periodic scraping, continuous
// summarization of the pending queue, and the daily digest send.
func (a *App) Run(ctx context.Context) error {
	var lastDigest time.Time

	return worker.Loop(ctx, worker.Config{
		Name:         "digest-service",
		PollInterval: schedulerPollInterval,
		PeriodicTasks: []worker.PeriodicTask{{
			Name:     "scrape",
			Interval: a.cfg.ScrapeInterval,
			Run: func(ctx context.Context) {
				defer worker.RecoverPanic(a.logger, "scrape")

				a.scrapeAll(ctx)
			},
		}},
		Process: func(ctx context.Context) error {
			if err := a.service.SummarizePending(ctx); err != nil {
				return fmt.Errorf("summarize pending: %w", err)
			}

			now := time.Now()
			if worker.ShouldRunDaily(now, a.cfg.DigestHour, lastDigest) {
				if err := a.runDigestOnce(ctx, now); err != nil {
					return err
				}

				lastDigest = now
			}

			return nil
		},
		OnError: func(err error) bool {
			a.logger.Error().Err(err).Msg("scheduler step failed")

			return true
		},
		Logger: a.logger,
	})
}
