package task

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/kanban/internal/models"
	"github.com/thenoetrevino/kanban/internal/services/column"
	"github.com/thenoetrevino/kanban/internal/services/project"
	"github.com/thenoetrevino/kanban/internal/testutil"
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func TestSprintOneScenario(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestStore(t)
	projects := project.NewService(store, nil, nil)
	columns := column.NewService(store, nil, nil)
	tasks := NewService(store, nil, nil)

	board, err := projects.CreateProject(ctx, "alice", project.CreateProjectRequest{Name: "Sprint 1"})
	require.NoError(t, err)
	require.Len(t, board.Columns, 3)
	todo, inProgress, done := board.Columns[0].Column, board.Columns[1].Column, board.Columns[2].Column
	assert.Equal(t, []int{0, 1, 2}, []int{todo.Order, inProgress.Order, done.Order})

	write, err := tasks.CreateTask(ctx, "alice", CreateTaskRequest{Title: "Write spec", ColumnID: todo.ID, ProjectID: board.Project.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, write.Order)

	review, err := tasks.CreateTask(ctx, "alice", CreateTaskRequest{Title: "Review", ColumnID: todo.ID, ProjectID: board.Project.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, review.Order)

	moved, err := tasks.MoveTask(ctx, "alice", MoveTaskRequest{ID: write.ID, ColumnID: done.ID, Order: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, done.ID, moved.ColumnID)
	assert.Equal(t, 0, moved.Order)

	inTodo, err := tasks.ListTasksByColumn(ctx, "alice", todo.ID)
	require.NoError(t, err)
	require.Len(t, inTodo, 1)
	assert.Equal(t, review.ID, inTodo[0].ID)
	assert.Equal(t, 1, inTodo[0].Order)

	require.NoError(t, columns.DeleteColumn(ctx, "alice", todo.ID))

	_, err = store.GetTaskByID(ctx, review.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	all, err := tasks.ListTasksByProject(ctx, "alice", board.Project.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, write.ID, all[0].ID)

	remaining, err := columns.ListColumns(ctx, "alice", board.Project.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}

func TestCreateTask_Validation(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestStore(t)
	svc := NewService(store, nil, nil)
	p := testutil.CreateTestProject(t, store, "alice", "p")
	other := testutil.CreateTestProject(t, store, "alice", "other")
	col := testutil.CreateTestColumn(t, store, p.ID, "c", 0)

	cases := map[string]struct {
		req  CreateTaskRequest
		want error
	}{
		"empty title":      {CreateTaskRequest{Title: " ", ColumnID: col.ID, ProjectID: p.ID}, ErrEmptyTitle},
		"long title":       {CreateTaskRequest{Title: strings.Repeat("x", models.MaxTaskTitleLength+1), ColumnID: col.ID, ProjectID: p.ID}, ErrTitleTooLong},
		"long description": {CreateTaskRequest{Title: "t", Description: strings.Repeat("x", models.MaxTaskDescriptionLength+1), ColumnID: col.ID, ProjectID: p.ID}, ErrDescriptionTooLong},
		"no column":        {CreateTaskRequest{Title: "t", ProjectID: p.ID}, ErrInvalidColumnID},
		"no project":       {CreateTaskRequest{Title: "t", ColumnID: col.ID}, ErrInvalidProjectID},
		"wrong project":    {CreateTaskRequest{Title: "t", ColumnID: col.ID, ProjectID: other.ID}, models.ErrParentMismatch},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.CreateTask(ctx, "alice", tc.req)
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func TestUpdateTask(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestStore(t)
	svc := NewService(store, nil, nil)
	p := testutil.CreateTestProject(t, store, "alice", "p")
	col := testutil.CreateTestColumn(t, store, p.ID, "c", 0)
	due := time.Now().Add(-time.Hour).UTC()

	created, err := svc.CreateTask(ctx, "alice", CreateTaskRequest{Title: "t", ColumnID: col.ID, ProjectID: p.ID, DueDate: &due})
	require.NoError(t, err)
	assert.True(t, created.IsOverdue(time.Now()))

	updated, err := svc.UpdateTask(ctx, "alice", UpdateTaskRequest{ID: created.ID, Title: strPtr("renamed"), ClearDueDate: true})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.Nil(t, updated.DueDate)
	assert.Equal(t, col.ID, updated.ColumnID)

	_, err = svc.UpdateTask(ctx, "alice", UpdateTaskRequest{ID: created.ID, DueDate: &due, ClearDueDate: true})
	assert.ErrorIs(t, err, ErrConflictingDueDates)

	_, err = svc.UpdateTask(ctx, "bob", UpdateTaskRequest{ID: created.ID, Title: strPtr("x")})
	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestMoveTask_ParentMismatch(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestStore(t)
	svc := NewService(store, nil, nil)
	p := testutil.CreateTestProject(t, store, "alice", "p")
	q := testutil.CreateTestProject(t, store, "alice", "q")
	col := testutil.CreateTestColumn(t, store, p.ID, "c", 0)
	foreign := testutil.CreateTestColumn(t, store, q.ID, "f", 0)
	task := testutil.CreateTestTask(t, store, col, "t", 0)

	_, err := svc.MoveTask(ctx, "alice", MoveTaskRequest{ID: task.ID, ColumnID: foreign.ID})
	assert.ErrorIs(t, err, models.ErrParentMismatch)
}

func TestReorderAndDeleteTasks(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestStore(t)
	svc := NewService(store, nil, nil)
	p := testutil.CreateTestProject(t, store, "alice", "p")
	col := testutil.CreateTestColumn(t, store, p.ID, "c", 0)
	a := testutil.CreateTestTask(t, store, col, "a", 0)
	b := testutil.CreateTestTask(t, store, col, "b", 1)

	req := ReorderTasksRequest{ColumnID: col.ID, Tasks: []models.OrderUpdate{{ID: a.ID, Order: 1}, {ID: b.ID, Order: 0}}}
	got, err := svc.ReorderTasks(ctx, "alice", req)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, b.ID, got[0].ID)

	_, err = svc.ReorderTasks(ctx, "bob", req)
	assert.ErrorIs(t, err, models.ErrForbidden)

	assert.ErrorIs(t, svc.DeleteTask(ctx, "bob", a.ID), models.ErrForbidden)
	require.NoError(t, svc.DeleteTask(ctx, "alice", a.ID))
	assert.ErrorIs(t, svc.DeleteTask(ctx, "alice", a.ID), models.ErrNotFound)
}
