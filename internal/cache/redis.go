package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/vytor/stageboard/internal/logger"
	"github.com/vytor/stageboard/internal/models"
)

const leaderboardKeyPrefix = "stageboard:leaderboard:"

// RedisCache keeps JSON-encoded leaderboards in Redis with a fixed TTL.
// Entries carry the stage revision they were read at; callers compare it
// against the datastore before trusting a hit.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisCache connects to addr. The connection is lazy; call Ping to check it.
func NewRedisCache(addr string, ttl time.Duration) *RedisCache {
	return NewRedisCacheWithClient(redis.NewClient(&redis.Options{Addr: addr}), ttl)
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func leaderboardKey(stageID string) string {
	return leaderboardKeyPrefix + stageID
}

func (c *RedisCache) Get(ctx context.Context, stageID string) (*models.Leaderboard, error) {
	log := logger.FromContext(ctx).WithPrefix("cache")

	b, err := c.client.Get(ctx, leaderboardKey(stageID)).Bytes()
	if errors.Is(err, redis.Nil) {
		log.Debug("cache miss: stage_id=%s", stageID)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", stageID, err)
	}

	lb, err := decodeEntry(stageID, b)
	if err != nil {
		// A corrupt entry is dropped and treated as a miss.
		log.Warn("discarding undecodable cache entry for %s: %v", stageID, err)
		_ = c.client.Del(ctx, leaderboardKey(stageID)).Err()
		return nil, nil
	}
	log.Debug("cache hit: stage_id=%s revision=%d", stageID, lb.Stage.Revision)
	return lb, nil
}

func (c *RedisCache) Set(ctx context.Context, lb *models.Leaderboard) error {
	b, err := encodeEntry(lb)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, leaderboardKey(lb.Stage.ID), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", lb.Stage.ID, err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context, stageID string) error {
	if err := c.client.Del(ctx, leaderboardKey(stageID)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", stageID, err)
	}
	return nil
}

// Ping checks the connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the client's connections.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

var _ LeaderboardCache = (*RedisCache)(nil)
