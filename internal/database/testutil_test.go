package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/kanban/internal/models"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database with the schema applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitDB(context.Background(), MemoryPath)
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// ============================================================================
// FIXTURES
// ============================================================================

func createTestProject(t *testing.T, repo *Repository, userID, name string) *models.Project {
	t.Helper()
	p := &models.Project{UserID: userID, Name: name}
	require.NoError(t, repo.InsertProject(context.Background(), p))
	return p
}

func createTestColumn(t *testing.T, repo *Repository, projectID, name string, order int) *models.Column {
	t.Helper()
	c := &models.Column{ProjectID: projectID, Name: name, Order: order}
	require.NoError(t, repo.InsertColumns(context.Background(), c))
	return c
}

func createTestTask(t *testing.T, repo *Repository, column *models.Column, title string, order int) *models.Task {
	t.Helper()
	task := &models.Task{ProjectID: column.ProjectID, ColumnID: column.ID, Title: title, Order: order}
	require.NoError(t, repo.InsertTask(context.Background(), task))
	return task
}
