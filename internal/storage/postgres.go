package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresKV stores entries in the kv_entries table created by the migrations.
type PostgresKV struct {
	db *pgxpool.Pool
}

func NewPostgresKV(db *pgxpool.Pool) *PostgresKV {
	return &PostgresKV{db: db}
}

func (p *PostgresKV) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM kv_entries WHERE key = $1`

	var value []byte
	err := p.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка чтения записи %s: %w", key, err)
	}

	return value, nil
}

func (p *PostgresKV) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	if _, err := p.db.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("ошибка записи %s: %w", key, err)
	}

	return nil
}
