package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

const languageKey = "preferredLanguage"

// PreferenceStore is the durable slot for user preferences. Last write
// wins; a missing row is a valid state and callers supply the default.
type PreferenceStore struct {
	db *sql.DB
}

func NewPreferenceStore(db *sql.DB) *PreferenceStore {
	return &PreferenceStore{db: db}
}

// Language returns the stored language code, or "" when none is saved.
func (s *PreferenceStore) Language(ctx context.Context) (string, error) {
	var code string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE key = ?`, languageKey,
	).Scan(&code)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return code, err
}

// SetLanguage overwrites the stored language code.
func (s *PreferenceStore) SetLanguage(ctx context.Context, code string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		languageKey, code, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}
