package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// ErrDigestNotFound is returned when no digest exists for the requested date.
var ErrDigestNotFound = errors.New("digest not found")

// Digest is one generated daily digest document.
type Digest struct {
	ID         string
	DigestDate time.Time
	Title      string
	Content    string // markdown produced by the LLM
	EmailSent  bool
	SentAt     time.Time
	CreatedAt  time.Time
}

// SaveDigest inserts a digest and links its source articles. An existing
// digest for the same date is replaced.
func (db *DB) SaveDigest(ctx context.Context, d *Digest, articleIDs []string) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save digest: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO digests (digest_date, title, content)
		VALUES ($1, $2, $3)
		ON CONFLICT (digest_date) DO UPDATE
		SET title = EXCLUDED.title, content = EXCLUDED.content, email_sent = FALSE
		RETURNING id`,
		d.DigestDate, d.Title, d.Content,
	).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("save digest: %w", err)
	}

	for _, articleID := range articleIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO digest_articles (digest_id, article_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`,
			d.ID, articleID,
		); err != nil {
			return fmt.Errorf("link digest article: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit save digest: %w", err)
	}

	return nil
}

// GetDigestByDate loads the digest for a calendar date.
func (db *DB) GetDigestByDate(ctx context.Context, date time.Time) (*Digest, error) {
	var d Digest

	var sentAt *time.Time

	err := db.Pool.QueryRow(ctx, `
		SELECT id, digest_date, title, content, email_sent, sent_at, created_at
		FROM digests WHERE digest_date = $1`,
		date,
	).Scan(&d.ID, &d.DigestDate, &d.Title, &d.Content, &d.EmailSent, &sentAt, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDigestNotFound
		}

		return nil, fmt.Errorf("get digest by date: %w", err)
	}

	if sentAt != nil {
		d.SentAt = *sentAt
	}

	return &d, nil
}

// MarkDigestSent records a successful email delivery for the digest.
func (db *DB) MarkDigestSent(ctx context.Context, id string) error {
	if _, err := db.Pool.Exec(ctx,
		`UPDATE digests SET email_sent = TRUE, sent_at = now() WHERE id = $1`,
		id,
	); err != nil {
		return fmt.Errorf("mark digest sent: %w", err)
	}

	return nil
}

// LogEmail appends one delivery attempt to the email log.
func (db *DB) LogEmail(ctx context.Context, digestID, recipient, status, errText string) error {
	if _, err := db.Pool.Exec(ctx, `
		INSERT INTO email_log (digest_id, recipient, status, error)
		VALUES ($1, $2, $3, $4)`,
		digestID, recipient, status, errText,
	); err != nil {
		return fmt.Errorf("log email: %w", err)
	}

	return nil
}
