// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/thenoetrevino/kanban/internal/database"
	"github.com/thenoetrevino/kanban/internal/models"
)

// SetupTestDB creates an in-memory database with full schema.
// The handle is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.InitDB(context.Background(), database.MemoryPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SetupTestStore returns a repository over a fresh in-memory database
func SetupTestStore(t *testing.T) *database.Repository {
	t.Helper()
	return database.NewRepository(SetupTestDB(t))
}

// CreateTestProject inserts a project owned by userID
func CreateTestProject(t *testing.T, store database.Store, userID, name string) *models.Project {
	t.Helper()
	p := &models.Project{UserID: userID, Name: name}
	if err := store.InsertProject(context.Background(), p); err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	return p
}

// CreateTestColumn inserts a column at the given order
func CreateTestColumn(t *testing.T, store database.Store, projectID, name string, order int) *models.Column {
	t.Helper()
	c := &models.Column{ProjectID: projectID, Name: name, Order: order}
	if err := store.InsertColumns(context.Background(), c); err != nil {
		t.Fatalf("Failed to create test column: %v", err)
	}
	return c
}

// CreateTestTask inserts a task into column at the given order
func CreateTestTask(t *testing.T, store database.Store, column *models.Column, title string, order int) *models.Task {
	t.Helper()
	task := &models.Task{ProjectID: column.ProjectID, ColumnID: column.ID, Title: title, Order: order}
	if err := store.InsertTask(context.Background(), task); err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	return task
}
