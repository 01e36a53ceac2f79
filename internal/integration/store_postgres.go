package integration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	id "consentd/pkg/domain"
	"consentd/pkg/platform/sentinel"
)

// PostgresStore persists credentials in the integrations table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed credential store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, credential *AccessCredential) error {
	query := `
		INSERT INTO integrations (id, label, access_key, secret_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		credential.ID.String(),
		credential.Label,
		credential.AccessKey,
		credential.SecretHash,
		credential.CreatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create integration: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, integrationID id.IntegrationID) (*AccessCredential, error) {
	query := `
		SELECT id, label, access_key, secret_hash, created_at
		FROM integrations
		WHERE id = $1
	`
	var (
		rawID      string
		credential AccessCredential
	)
	err := s.db.QueryRowContext(ctx, query, integrationID.String()).Scan(
		&rawID,
		&credential.Label,
		&credential.AccessKey,
		&credential.SecretHash,
		&credential.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find integration: %w", err)
	}
	parsed, err := id.ParseIntegrationID(rawID)
	if err != nil {
		return nil, fmt.Errorf("find integration: invalid stored id: %w", err)
	}
	credential.ID = parsed
	return &credential, nil
}

func (s *PostgresStore) DeleteByID(ctx context.Context, integrationID id.IntegrationID) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM integrations WHERE id = $1`, integrationID.String(),
	)
	if err != nil {
		return fmt.Errorf("delete integration: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete integration: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
