package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		additional_details TEXT NOT NULL DEFAULT '',
		income DOUBLE PRECISION NOT NULL DEFAULT 0,
		gets_pension BOOLEAN NOT NULL DEFAULT FALSE,
		pension_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		invests_in_stocks BOOLEAN NOT NULL DEFAULT FALSE,
		yearly_stock_investment DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS bill_items (
		id UUID PRIMARY KEY,
		user_id TEXT NOT NULL,
		store_name TEXT,
		bill_date TEXT NOT NULL,
		total_amount DOUBLE PRECISION,
		item_name TEXT NOT NULL,
		quantity DOUBLE PRECISION NOT NULL,
		unit_price DOUBLE PRECISION NOT NULL,
		category TEXT NOT NULL,
		input_type TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bill_items_user_created
		ON bill_items (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS goals (
		id UUID PRIMARY KEY,
		user_id TEXT NOT NULL,
		goal_description TEXT NOT NULL,
		month TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, month)
	)`,
}

// Migrate applies the schema. Statements are idempotent, so running it on
// every startup is safe.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	for _, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	logger.Info("Database schema is up to date")
	return nil
}
