// Package followcache keeps a read-through copy of each user's following set
// in Redis. The store stays the source of truth: every cache failure falls
// back to it, and follow toggles invalidate the acting user's entry.
package followcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"socialfeed/backend/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultTTL bounds how long a cached following set may be served.
const DefaultTTL = 10 * time.Minute

// Loader reads the authoritative following ids for a user.
type Loader func(ctx context.Context, userID string) ([]string, error)

// Index serves following-id lists. A nil *Index is valid and always loads
// from the store.
type Index struct {
	client *redis.Client
	ttl    time.Duration
}

// New wraps client; ttl <= 0 selects DefaultTTL.
func New(client *redis.Client, ttl time.Duration) *Index {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Index{client: client, ttl: ttl}
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func key(userID string) string { return "following:index:" + userID }

// emptyMarker stands in for an empty following set; Redis cannot store an empty list.
const emptyMarker = ""

// Following returns the ids userID follows, in follow order.
func (ix *Index) Following(ctx context.Context, userID string, load Loader) ([]string, error) {
	if ix == nil {
		return load(ctx, userID)
	}

	ids, err := ix.client.LRange(ctx, key(userID), 0, -1).Result()
	switch {
	case err == nil && len(ids) > 0:
		if len(ids) == 1 && ids[0] == emptyMarker {
			return []string{}, nil
		}
		return ids, nil
	case err != nil && !errors.Is(err, redis.Nil):
		logger.Warn("following cache read failed", zap.String("user_id", userID), zap.Error(err))
	}

	ids, err = load(ctx, userID)
	if err != nil {
		return nil, err
	}
	ix.store(ctx, userID, ids)
	return ids, nil
}

func (ix *Index) store(ctx context.Context, userID string, ids []string) {
	values := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		values = append(values, id)
	}
	if len(values) == 0 {
		values = append(values, emptyMarker)
	}

	k := key(userID)
	pipe := ix.client.TxPipeline()
	pipe.Del(ctx, k)
	pipe.RPush(ctx, k, values...)
	pipe.Expire(ctx, k, ix.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Warn("following cache write failed", zap.String("user_id", userID), zap.Error(err))
	}
}

// Invalidate drops userID's cached following set.
func (ix *Index) Invalidate(ctx context.Context, userID string) {
	if ix == nil {
		return
	}
	if err := ix.client.Del(ctx, key(userID)).Err(); err != nil {
		logger.Warn("following cache invalidate failed", zap.String("user_id", userID), zap.Error(err))
	}
}
