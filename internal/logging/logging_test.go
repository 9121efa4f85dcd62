package logging

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_File(t *testing.T) {
	defer log.SetOutput(os.Stderr)
	path := filepath.Join(t.TempDir(), "logs", "kanban.log")

	logger, closer, err := Init("debug", path)
	require.NoError(t, err)
	assert.Same(t, log.StandardLogger(), logger)
	assert.Equal(t, log.DebugLevel, logger.GetLevel())

	logger.WithField("k", "v").Debug("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "k=v")
}

func TestInit_BadLevel(t *testing.T) {
	_, _, err := Init("loud", "")
	assert.Error(t, err)
}
