package database

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations are idempotent and run in order on every start.
//
// Ownership is expressed with REFERENCES but without ON DELETE CASCADE:
// cascades are performed explicitly by the cascade engine, and the foreign
// keys only guarantee that nothing can be left dangling.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS columns (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id),
		name TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0 CHECK (position >= 0),
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id),
		column_id TEXT NOT NULL REFERENCES columns(id),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		due_date DATETIME,
		position INTEGER NOT NULL DEFAULT 0 CHECK (position >= 0),
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_user ON projects(user_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_columns_project ON columns(project_id, position)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_column ON tasks(column_id, position)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id, column_id, position)`,
}

// Migrate creates the schema if needed
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
