package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCartStorage stores each cart as a JSONB document in cart_sessions.
type PostgresCartStorage struct {
	db *pgxpool.Pool
}

func NewPostgresCartStorage(db *pgxpool.Pool) *PostgresCartStorage {
	return &PostgresCartStorage{db: db}
}

func (s *PostgresCartStorage) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT items::text FROM cart_sessions WHERE key = $1`

	var items string
	err := s.db.QueryRow(ctx, query, key).Scan(&items)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return []byte(items), nil
}

func (s *PostgresCartStorage) Set(ctx context.Context, key string, data []byte) error {
	query := `
		INSERT INTO cart_sessions (key, items, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (key) DO UPDATE SET items = EXCLUDED.items, updated_at = NOW()
	`
	if _, err := s.db.Exec(ctx, query, key, string(data)); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (s *PostgresCartStorage) Clear(ctx context.Context, key string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM cart_sessions WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
