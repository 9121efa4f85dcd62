package database

import (
	"context"
	"database/sql"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	// db is nil for a transaction-scoped repository
	db *sql.DB

	*UserRepo
	*ProjectRepo
	*ColumnRepo
	*TaskRepo
}

var _ Store = (*Repository)(nil)

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	r := newRepository(db)
	r.db = db
	return r
}

func newRepository(conn DBTX) *Repository {
	return &Repository{
		UserRepo:    &UserRepo{db: conn},
		ProjectRepo: &ProjectRepo{db: conn},
		ColumnRepo:  &ColumnRepo{db: conn},
		TaskRepo:    &TaskRepo{db: conn},
	}
}

// WithinTx implements Store.
func (r *Repository) WithinTx(ctx context.Context, fn func(Store) error) error {
	if r.db == nil {
		return fn(r)
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		return fn(newRepository(tx))
	})
}
