package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"
)

const apiKeySetting = "riot_api_key"

// CredentialRepository persists the Riot API key so restarts resume with
// the last known-good credential without operator interaction.
type CredentialRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewCredentialRepository(db *sql.DB, logger zerolog.Logger) *CredentialRepository {
	return &CredentialRepository{db: db, logger: logger}
}

// Get returns the stored key, or "" when none has been stored yet.
func (r *CredentialRepository) Get(ctx context.Context) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, apiKeySetting).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to read stored credential")
		return "", err
	}
	return value, nil
}

// Store upserts the key; storing the same value twice is a no-op.
func (r *CredentialRepository) Store(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		apiKeySetting, key, time.Now())
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to store credential")
		return err
	}
	r.logger.Info().Msg("credential stored")
	return nil
}
