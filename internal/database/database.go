package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx connection pool using the provided DSN.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConns = 8
	cfg.MaxConnIdleTime = 5 * time.Minute
	return pgxpool.NewWithConfig(ctx, cfg)
}

// EnsureSchema creates the complaints table if needed. Having the migration
// in code keeps the demo self-contained so docker-compose can bootstrap
// everything.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const stmt = `
CREATE TABLE IF NOT EXISTS complaints (
	id TEXT PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL,
	category TEXT,
	main_category TEXT NOT NULL,
	sub_category TEXT NOT NULL,
	description TEXT NOT NULL,
	location JSONB,
	user_phone TEXT,
	user_id TEXT,
	user_name TEXT,
	image JSONB,
	analysis JSONB
);
CREATE INDEX IF NOT EXISTS idx_complaints_created_at ON complaints(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_complaints_user_phone ON complaints(user_phone);`
	_, err := pool.Exec(ctx, stmt)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
