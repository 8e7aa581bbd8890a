// Package migrations applies the database schema for the feature layer.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

// statements are applied in order. Each statement is idempotent so Apply can
// run on every server start.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS app_notes (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		body       TEXT NOT NULL DEFAULT '',
		tags       JSONB,
		pinned     BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS app_tasks (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		status     TEXT NOT NULL,
		due_at     TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS app_transcripts (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		provider   TEXT NOT NULL DEFAULT '',
		model      TEXT NOT NULL DEFAULT '',
		messages   JSONB,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_app_tasks_status ON app_tasks (status)`,
	`CREATE INDEX IF NOT EXISTS idx_app_transcripts_provider ON app_transcripts (provider)`,
}

// Apply executes every migration statement against db.
func Apply(ctx context.Context, db *sql.DB) error {
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
