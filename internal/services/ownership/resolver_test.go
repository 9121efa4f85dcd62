package ownership

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/kanban/internal/models"
	"github.com/thenoetrevino/kanban/internal/testutil"
)

func TestResolver(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestStore(t)
	r := NewResolver(store)

	project := testutil.CreateTestProject(t, store, "alice", "Alice's board")
	column := testutil.CreateTestColumn(t, store, project.ID, "To do", 0)
	task := testutil.CreateTestTask(t, store, column, "Write", 0)

	t.Run("owner resolves every level", func(t *testing.T) {
		p, err := r.Project(ctx, "alice", project.ID)
		require.NoError(t, err)
		assert.Equal(t, project.ID, p.ID)

		c, p, err := r.Column(ctx, "alice", column.ID)
		require.NoError(t, err)
		assert.Equal(t, column.ID, c.ID)
		assert.Equal(t, project.ID, p.ID)

		tk, p, err := r.Task(ctx, "alice", task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, tk.ID)
		assert.Equal(t, project.ID, p.ID)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		_, err := r.Project(ctx, "bob", project.ID)
		assert.ErrorIs(t, err, models.ErrForbidden)
		_, _, err = r.Column(ctx, "bob", column.ID)
		assert.ErrorIs(t, err, models.ErrForbidden)
		_, _, err = r.Task(ctx, "bob", task.ID)
		assert.ErrorIs(t, err, models.ErrForbidden)
	})

	t.Run("missing entity is not found", func(t *testing.T) {
		_, err := r.Project(ctx, "alice", "nope")
		assert.ErrorIs(t, err, models.ErrNotFound)
		_, _, err = r.Column(ctx, "alice", "nope")
		assert.ErrorIs(t, err, models.ErrNotFound)
		_, _, err = r.Task(ctx, "bob", "nope")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("empty caller is unauthenticated", func(t *testing.T) {
		_, err := r.Project(ctx, "", project.ID)
		assert.ErrorIs(t, err, models.ErrUnauthenticated)
		_, _, err = r.Task(ctx, "", task.ID)
		assert.ErrorIs(t, err, models.ErrUnauthenticated)
	})
}
