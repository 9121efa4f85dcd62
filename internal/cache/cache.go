// Package cache keeps rendered boards in Redis so repeated board reads skip
// the database. Every write to a project evicts its board.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/thenoetrevino/kanban/internal/models"
)

// BoardCache stores boards keyed by project id.
// Implementations never fail a request because of the cache: a broken cache
// behaves like an empty one.
//
// Readers take a Generation before loading a board from the database and hand
// it back to Set. An Invalidate in between bumps the generation and the stale
// board is dropped instead of stored.
type BoardCache interface {
	Get(ctx context.Context, projectID string) (*models.Board, bool)
	Generation(ctx context.Context, projectID string) int64
	Set(ctx context.Context, board *models.Board, generation int64)
	Invalidate(ctx context.Context, projectID string)
}

// Noop is a BoardCache that never holds anything
type Noop struct{}

func (Noop) Get(context.Context, string) (*models.Board, bool) { return nil, false }
func (Noop) Generation(context.Context, string) int64          { return 0 }
func (Noop) Set(context.Context, *models.Board, int64)         {}
func (Noop) Invalidate(context.Context, string)                {}

// generationTTL bounds how long an idle project's generation counter is kept
const generationTTL = 24 * time.Hour

// unknownGeneration is returned when the counter cannot be read; it never
// matches a stored generation, so the following Set is skipped.
const unknownGeneration int64 = -1

var errStale = errors.New("board invalidated during read")

// Redis is a BoardCache backed by a Redis client.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

// NewRedis creates a Redis board cache. A zero ttl disables writes.
// A nil logger falls back to the standard logrus logger.
func NewRedis(client *redis.Client, ttl time.Duration, logger *log.Logger) *Redis {
	if client == nil {
		panic("cache.NewRedis: client is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Redis{client: client, ttl: ttl, logger: logger}
}

// Connect parses a redis:// URL, pings the server and returns the cache.
func Connect(ctx context.Context, url string, ttl time.Duration, logger *log.Logger) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return NewRedis(client, ttl, logger), nil
}

// Close releases the underlying client
func (c *Redis) Close() error {
	return c.client.Close()
}

func (c *Redis) Get(ctx context.Context, projectID string) (*models.Board, bool) {
	data, err := c.client.Get(ctx, boardKey(projectID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WithError(err).WithField("project", projectID).Warn("board cache read failed")
			c.Invalidate(ctx, projectID)
		}
		return nil, false
	}
	var board models.Board
	if err := sonic.ConfigStd.Unmarshal(data, &board); err != nil {
		c.Invalidate(ctx, projectID)
		return nil, false
	}
	return &board, true
}

func (c *Redis) Generation(ctx context.Context, projectID string) int64 {
	gen, err := c.client.Get(ctx, generationKey(projectID)).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		return 0
	case err != nil:
		c.logger.WithError(err).WithField("project", projectID).Warn("board cache generation read failed")
		return unknownGeneration
	}
	return gen
}

// Set stores board only while the project's generation still equals
// generation. WATCH makes the check and the write atomic.
func (c *Redis) Set(ctx context.Context, board *models.Board, generation int64) {
	if c.ttl == 0 || board == nil || board.Project == nil || generation == unknownGeneration {
		return
	}
	data, err := sonic.ConfigStd.Marshal(board)
	if err != nil {
		return
	}

	projectID := board.Project.ID
	genKey := generationKey(projectID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return errStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, boardKey(projectID), data, c.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
	case errors.Is(err, errStale), errors.Is(err, redis.TxFailedErr):
		c.logger.WithField("project", projectID).Debug("skipped caching board invalidated during read")
	default:
		c.logger.WithError(err).WithField("project", projectID).Warn("board cache write failed")
	}
}

func (c *Redis) Invalidate(ctx context.Context, projectID string) {
	genKey := generationKey(projectID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, boardKey(projectID))
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, generationTTL)
		return nil
	})
	if err != nil {
		c.logger.WithError(err).WithField("project", projectID).Warn("board cache eviction failed")
	}
}

func boardKey(projectID string) string {
	return "board:" + projectID
}

func generationKey(projectID string) string {
	return "board-gen:" + projectID
}
