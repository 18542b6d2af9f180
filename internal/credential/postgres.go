package credential

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps the key in the app_credentials table (see migrations/0001_credentials.sql).
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context) (string, bool, error) {
	var key string
	err := s.db.QueryRow(ctx, `SELECT value FROM app_credentials WHERE name = $1`, KeyName).Scan(&key)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("credential: select: %w", err)
	}
	return key, true, nil
}

// Set upserts the key, overwriting any previous value.
func (s *PostgresStore) Set(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO app_credentials (name, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, KeyName, key)
	if err != nil {
		return fmt.Errorf("credential: upsert: %w", err)
	}
	return nil
}
