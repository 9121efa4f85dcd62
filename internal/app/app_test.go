package app

import (
	"context"
	"path/filepath"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/kanban/internal/config"
	projectservice "github.com/thenoetrevino/kanban/internal/services/project"
	"github.com/thenoetrevino/kanban/internal/testutil"
)

func TestNew(t *testing.T) {
	app := New(testutil.SetupTestStore(t))

	require.NotNil(t, app)
	assert.NotNil(t, app.UserService)
	assert.NotNil(t, app.ProjectService)
	assert.NotNil(t, app.ColumnService)
	assert.NotNil(t, app.TaskService)
	assert.NotNil(t, app.Logger)
	assert.NotNil(t, app.Store())
	assert.NoError(t, app.Close())
}

func TestOpen_WithRedis(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := &config.Config{}
	cfg.Database.Path = filepath.Join(t.TempDir(), "kanban.db")
	cfg.Cache.RedisURL = "redis://" + mr.Addr()
	cfg.Cache.TTL = config.DefaultCacheTTL

	app, err := Open(ctx, cfg)
	require.NoError(t, err)

	board, err := app.ProjectService.CreateProject(ctx, "alice", projectservice.CreateProjectRequest{Name: "p"})
	require.NoError(t, err)
	_, err = app.ProjectService.GetBoard(ctx, "alice", board.Project.ID)
	require.NoError(t, err)
	assert.True(t, mr.Exists("board:"+board.Project.ID))

	require.NoError(t, app.Close())
}

func TestOpen_BadRedis(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.Path = filepath.Join(t.TempDir(), "kanban.db")
	cfg.Cache.RedisURL = "::not a url::"

	_, err := Open(context.Background(), cfg)
	assert.Error(t, err)
}

func TestOpen_CacheLogsThroughInjectedLogger(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Database.Path = filepath.Join(t.TempDir(), "kanban.db")
	cfg.Cache.RedisURL = "redis://" + mr.Addr()
	cfg.Cache.TTL = config.DefaultCacheTTL

	logger, hook := logtest.NewNullLogger()
	app, err := Open(ctx, cfg, WithLogger(logger))
	require.NoError(t, err)
	defer func() { _ = app.Close() }()
	assert.Same(t, logger, app.Logger)

	board, err := app.ProjectService.CreateProject(ctx, "alice", projectservice.CreateProjectRequest{Name: "p"})
	require.NoError(t, err)

	// A dead cache degrades to database reads and warns on the shared logger
	mr.Close()
	_, err = app.ProjectService.GetBoard(ctx, "alice", board.Project.ID)
	require.NoError(t, err)

	var messages []string
	for _, entry := range hook.AllEntries() {
		messages = append(messages, entry.Message)
	}
	assert.Contains(t, messages, "board cache read failed")
}
