package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ArticlesScraped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "digest_articles_scraped_total",
		Help: "The total number of scraped articles, by source",
	}, []string{"source"})

	ArticlesSummarized = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "digest_articles_summarized_total",
		Help: "The total number of articles run through summarization",
	}, []string{"status"})

	DuplicatesSuppressed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "digest_duplicates_suppressed_total",
		Help: "The total number of near-duplicate articles suppressed",
	})

	LLMRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "digest_llm_request_duration_seconds",
		Help:    "Duration of LLM requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"model"})

	DigestsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "digest_generated_total",
		Help: "The total number of digests generated",
	}, []string{"status"})

	EmailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "digest_emails_sent_total",
		Help: "The total number of digest emails sent",
	}, []string{"status", "transport"})
)
