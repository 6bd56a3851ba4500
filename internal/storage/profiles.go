package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// UserProfile carries per-recipient personalization settings.
type UserProfile struct {
	ID                 string
	Email              string
	Name               string
	Topics             []string
	Providers          []string
	ExpertiseLevel     string
	ReceiveDailyDigest bool
}

// DefaultProfile returns the profile used when a recipient has no stored
// settings.
func DefaultProfile(email string) UserProfile {
	return UserProfile{
		Email:              email,
		ReceiveDailyDigest: true,
	}
}

// GetProfile loads the profile for an email address, falling back to the
// default profile when none is stored.
func (db *DB) GetProfile(ctx context.Context, email string) (UserProfile, error) {
	var p UserProfile

	err := db.Pool.QueryRow(ctx, `
		SELECT id, email, name, topics, providers, expertise_level, receive_daily_digest
		FROM user_profiles WHERE email = $1`,
		email,
	).Scan(&p.ID, &p.Email, &p.Name, &p.Topics, &p.Providers, &p.ExpertiseLevel, &p.ReceiveDailyDigest)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return DefaultProfile(email), nil
		}

		return UserProfile{}, fmt.Errorf("get profile: %w", err)
	}

	return p, nil
}

// UpsertProfile creates or updates a profile keyed by email.
func (db *DB) UpsertProfile(ctx context.Context, p *UserProfile) error {
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO user_profiles (email, name, topics, providers, expertise_level, receive_daily_digest)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name,
		    topics = EXCLUDED.topics,
		    providers = EXCLUDED.providers,
		    expertise_level = EXCLUDED.expertise_level,
		    receive_daily_digest = EXCLUDED.receive_daily_digest,
		    updated_at = now()
		RETURNING id`,
		p.Email, p.Name, p.Topics, p.Providers, p.ExpertiseLevel, p.ReceiveDailyDigest,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	return nil
}
