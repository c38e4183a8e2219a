package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Documents are stored whole in a JSONB column. The extra columns only serve
// ordering, filtering and the conditional update.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS candidates (
		legacy_id      TEXT PRIMARY KEY,
		doc            JSONB NOT NULL,
		pipeline_stage TEXT NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_candidates_stage ON candidates (pipeline_stage)`,
	`CREATE INDEX IF NOT EXISTS idx_candidates_created_at ON candidates (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id         TEXT PRIMARY KEY,
		doc        JSONB NOT NULL,
		status     TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_created_at ON jobs (created_at DESC)`,
}

// EnsureSchema creates the tables when missing. It is safe to run on every
// start.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
