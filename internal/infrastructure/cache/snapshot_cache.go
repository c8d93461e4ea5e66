// Package cache provides the catalog snapshot cache (Redis) and the
// in-process cost memoization cache.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/redis/go-redis/v9"

	"prepstock/internal/core/id"
	"prepstock/internal/domain/ingredient"
	"prepstock/pkg/logger"
)

// DefaultSnapshotTTL bounds staleness if an invalidation is ever lost.
const DefaultSnapshotTTL = 10 * time.Minute

// SnapshotCache stores each user's full ingredient catalog in Redis as a
// zstd-compressed JSON blob. A nil Redis client disables the cache; every
// Get then reports a miss.
type SnapshotCache struct {
	client  *redis.Client
	ttl     time.Duration
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

var _ ingredient.SnapshotCache = (*SnapshotCache)(nil)

// NewSnapshotCache creates a snapshot cache backed by client. client may
// be nil.
func NewSnapshotCache(client *redis.Client, ttl time.Duration) (*SnapshotCache, error) {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &SnapshotCache{
		client:  client,
		ttl:     ttl,
		encoder: encoder,
		decoder: decoder,
	}, nil
}

func snapshotKey(ownerID id.ID) string {
	return "catalog:" + ownerID.String()
}

// Get returns the cached catalog for ownerID. Any Redis or decode failure
// is treated as a miss.
func (c *SnapshotCache) Get(ctx context.Context, ownerID id.ID) ([]*ingredient.Ingredient, bool) {
	if c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, snapshotKey(ownerID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn(ctx, "snapshot cache read failed", "error", err)
		}
		return nil, false
	}

	decoded, err := c.decoder.DecodeAll(raw, nil)
	if err != nil {
		logger.Warn(ctx, "snapshot cache decompress failed", "error", err)
		return nil, false
	}

	var items []*ingredient.Ingredient
	if err := json.Unmarshal(decoded, &items); err != nil {
		logger.Warn(ctx, "snapshot cache unmarshal failed", "error", err)
		return nil, false
	}
	return items, true
}

// Set stores the catalog for ownerID. Failures are logged, not returned;
// the cache is an optimization.
func (c *SnapshotCache) Set(ctx context.Context, ownerID id.ID, items []*ingredient.Ingredient) {
	if c.client == nil {
		return
	}

	raw, err := json.Marshal(items)
	if err != nil {
		logger.Warn(ctx, "snapshot cache marshal failed", "error", err)
		return
	}
	compressed := c.encoder.EncodeAll(raw, nil)

	if err := c.client.Set(ctx, snapshotKey(ownerID), compressed, c.ttl).Err(); err != nil {
		logger.Warn(ctx, "snapshot cache write failed", "error", err)
	}
}

// Invalidate drops the cached catalog for ownerID.
func (c *SnapshotCache) Invalidate(ctx context.Context, ownerID id.ID) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, snapshotKey(ownerID)).Err(); err != nil {
		logger.Warn(ctx, "snapshot cache invalidate failed", "error", err)
	}
}
