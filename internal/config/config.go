package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"local"`
	PostgresDSN string `env:"POSTGRES_DSN,required"`
	HealthPort  int    `env:"HEALTH_PORT" envDefault:"8080"`

	// LLM
	OpenAIAPIKey  string  `env:"OPENAI_API_KEY"`
	OpenAIModel   string  `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	LLMRateRPS    float64 `env:"LLM_RATE_RPS" envDefault:"1"`
	MaxInputChars int     `env:"LLM_MAX_INPUT_CHARS" envDefault:"12000"`

	// Scraping
	OpenAIFeedURL    string        `env:"OPENAI_FEED_URL" envDefault:"https://openai.com/blog/rss.xml"`
	AnthropicFeedURL string        `env:"ANTHROPIC_FEED_URL" envDefault:"https://www.anthropic.com/news/rss.xml"`
	YouTubeChannels  []string      `env:"YOUTUBE_CHANNELS" envSeparator:","`
	ScrapeInterval   time.Duration `env:"SCRAPE_INTERVAL" envDefault:"1h"`
	FetchRPS         float64       `env:"FETCH_RPS" envDefault:"2"`
	FetchTimeout     time.Duration `env:"FETCH_TIMEOUT" envDefault:"30s"`

	// Digest
	DigestHour          int           `env:"DIGEST_HOUR" envDefault:"7"`
	DigestWindow        time.Duration `env:"DIGEST_WINDOW" envDefault:"24h"`
	CuratedTopN         int           `env:"CURATED_TOP_N" envDefault:"5"`
	SimilarityThreshold float32       `env:"SIMILARITY_THRESHOLD" envDefault:"0.92"`

	// Email delivery
	SMTPHost      string   `env:"SMTP_HOST"`
	SMTPPort      int      `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser      string   `env:"SMTP_USER"`
	SMTPPassword  string   `env:"SMTP_PASSWORD"`
	FromEmail     string   `env:"FROM_EMAIL"`
	ToEmails      []string `env:"TO_EMAILS" envSeparator:","`
	ResendAPIKey  string   `env:"RESEND_API_KEY"`
	UseLLMSubject bool     `env:"USE_LLM_SUBJECT" envDefault:"false"`
	UseLLMIntro   bool     `env:"USE_LLM_INTRO" envDefault:"false"`

	// Branding overrides for the email theme
	BrandName    string `env:"BRAND_NAME" envDefault:"AI News Daily"`
	PrimaryColor string `env:"PRIMARY_COLOR"`
	AccentColor  string `env:"ACCENT_COLOR"`
	CTAURL       string `env:"CTA_URL" envDefault:"mailto:hello@ainewsdaily.example"`
	CTAText      string `env:"CTA_TEXT" envDefault:"Share feedback"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
