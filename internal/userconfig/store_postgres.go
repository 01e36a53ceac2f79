package userconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	id "consentd/pkg/domain"
)

// PostgresStore persists user preferences in the user_settings table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed user preference store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetBool(ctx context.Context, userID id.UserID, key string) (bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM user_settings WHERE user_id = $1 AND key = $2`,
		userID.String(), key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("get user setting: %w", err)
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, nil
	}
	return parsed, nil
}

func (s *PostgresStore) SetBool(ctx context.Context, userID id.UserID, key string, value bool) error {
	query := `
		INSERT INTO user_settings (user_id, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, userID.String(), key, strconv.FormatBool(value)); err != nil {
		return fmt.Errorf("set user setting: %w", err)
	}
	return nil
}
