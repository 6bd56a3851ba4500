package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
)

// EmbeddingDim is the dimension of article embedding vectors. It must match
// the vector(N) column in the articles migration and the embedding model
// output (OpenAI text-embedding-3-small).
const EmbeddingDim = 1536

// Article statuses.
const (
	StatusPending    = "pending"
	StatusSummarized = "summarized"
	StatusDigested   = "digested"
	StatusFailed     = "failed"
)

// Source types.
const (
	SourceYouTube   = "youtube"
	SourceOpenAI    = "openai"
	SourceAnthropic = "anthropic"
)

// Article is one scraped content item: a blog post or a video.
type Article struct {
	ID          string
	SourceType  string
	Provider    string
	Title       string
	URL         string
	Author      string
	Content     string
	Summary     string
	Status      string
	PublishedAt time.Time
	Embedding   []float32
	CreatedAt   time.Time
}

// SaveArticle inserts an article, ignoring duplicates by URL. Returns true
// when a new row was created.
func (db *DB) SaveArticle(ctx context.Context, a *Article) (bool, error) {
	row := db.Pool.QueryRow(ctx, `
		INSERT INTO articles (id, source_type, provider, title, url, author, content, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (url) DO NOTHING
		RETURNING id`,
		uuid.NewString(), a.SourceType, a.Provider, a.Title, a.URL, a.Author, a.Content, nullableTime(a.PublishedAt),
	)

	if err := row.Scan(&a.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}

		return false, fmt.Errorf("save article: %w", err)
	}

	return true, nil
}

// ListArticlesByStatus returns articles in a given status, oldest first.
func (db *DB) ListArticlesByStatus(ctx context.Context, status string, limit int) ([]Article, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, source_type, provider, title, url, author, content, summary, status,
		       COALESCE(published_at, created_at), created_at
		FROM articles
		WHERE status = $1
		ORDER BY created_at
		LIMIT $2`,
		status, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list articles by status: %w", err)
	}
	defer rows.Close()

	return scanArticles(rows)
}

// ListArticlesForDigest returns summarized articles published inside the
// digest window, newest first.
func (db *DB) ListArticlesForDigest(ctx context.Context, since time.Time) ([]Article, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, source_type, provider, title, url, author, content, summary, status,
		       COALESCE(published_at, created_at), created_at
		FROM articles
		WHERE status = $1 AND COALESCE(published_at, created_at) >= $2
		ORDER BY COALESCE(published_at, created_at) DESC`,
		StatusSummarized, since,
	)
	if err != nil {
		return nil, fmt.Errorf("list articles for digest: %w", err)
	}
	defer rows.Close()

	return scanArticles(rows)
}

// UpdateArticleSummary stores the LLM summary and optional embedding, moving
// the article to the summarized status.
func (db *DB) UpdateArticleSummary(ctx context.Context, id, summary string, embedding []float32) error {
	var emb any
	if embedding != nil {
		v := pgvector.NewVector(embedding)
		emb = &v
	}

	_, err := db.Pool.Exec(ctx, `
		UPDATE articles
		SET summary = $2, embedding = $3, status = $4, updated_at = now()
		WHERE id = $1`,
		id, summary, emb, StatusSummarized,
	)
	if err != nil {
		return fmt.Errorf("update article summary: %w", err)
	}

	return nil
}

// MarkArticleFailed records a permanent summarization failure.
func (db *DB) MarkArticleFailed(ctx context.Context, id string) error {
	if _, err := db.Pool.Exec(ctx,
		`UPDATE articles SET status = $2, updated_at = now() WHERE id = $1`,
		id, StatusFailed,
	); err != nil {
		return fmt.Errorf("mark article failed: %w", err)
	}

	return nil
}

// MarkArticlesDigested moves a batch of articles to the digested status.
func (db *DB) MarkArticlesDigested(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	if _, err := db.Pool.Exec(ctx,
		`UPDATE articles SET status = $2, updated_at = now() WHERE id = ANY($1)`,
		ids, StatusDigested,
	); err != nil {
		return fmt.Errorf("mark articles digested: %w", err)
	}

	return nil
}

// FindSimilarArticle returns the id of a recent article whose embedding is
// within the cosine similarity threshold, or "" when none exists.
func (db *DB) FindSimilarArticle(ctx context.Context, embedding []float32, threshold float32) (string, error) {
	var id string

	err := db.Pool.QueryRow(ctx, `
		SELECT id FROM articles
		WHERE embedding IS NOT NULL
		  AND created_at >= now() - interval '7 days'
		  AND embedding <=> $1 < $2
		ORDER BY embedding <=> $1
		LIMIT 1`,
		pgvector.NewVector(embedding), float64(1.0-threshold),
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("find similar article: %w", err)
	}

	return id, nil
}

func scanArticles(rows pgx.Rows) ([]Article, error) {
	var articles []Article

	for rows.Next() {
		var a Article
		if err := rows.Scan(
			&a.ID, &a.SourceType, &a.Provider, &a.Title, &a.URL, &a.Author,
			&a.Content, &a.Summary, &a.Status, &a.PublishedAt, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}

		articles = append(articles, a)
	}

	return articles, rows.Err()
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}

	return t
}
