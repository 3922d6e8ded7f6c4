package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xavierca1/calltracker/internal/entity"
)

const createKVTable = `
	CREATE TABLE IF NOT EXISTS app_kv (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// KVRepository stores the record-store keys in a single Postgres table.
type KVRepository struct {
	DB *sql.DB
}

func NewKVRepository(db *sql.DB) *KVRepository {
	return &KVRepository{DB: db}
}

func (r *KVRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, createKVTable); err != nil {
		return fmt.Errorf("create app_kv table: %w", err)
	}
	return nil
}

func (r *KVRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.DB.QueryRowContext(ctx, `SELECT value FROM app_kv WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", entity.ErrKeyNotFound
		}
		return "", fmt.Errorf("select %s: %w", key, err)
	}
	return value, nil
}

func (r *KVRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO app_kv (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = NOW()
	`
	if _, err := r.DB.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (r *KVRepository) Remove(ctx context.Context, key string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM app_kv WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (r *KVRepository) Clear(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM app_kv`); err != nil {
		return fmt.Errorf("clear app_kv: %w", err)
	}
	return nil
}

func (r *KVRepository) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}
