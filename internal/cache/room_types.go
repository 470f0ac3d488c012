// Package cache keeps read-mostly catalog listings in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/grandstay/service-hotel/internal/domain/catalog"
	"github.com/grandstay/service-hotel/internal/metrics"
)

// roomTypesKey is a hash of listing limit to the JSON-encoded listing.
const roomTypesKey = "hotel:room_types:active"

// RoomTypeCache caches active room type listings. Redis failures are logged and reported as misses.
type RoomTypeCache struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *zap.Logger
}

// NewRoomTypeCache creates a RoomTypeCache.
func NewRoomTypeCache(client redis.Cmdable, ttl time.Duration, logger *zap.Logger) *RoomTypeCache {
	return &RoomTypeCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached listing for limit.
func (c *RoomTypeCache) Get(ctx context.Context, limit int) ([]catalog.RoomType, bool) {
	raw, err := c.client.HGet(ctx, roomTypesKey, strconv.Itoa(limit)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheLookup("miss")
		} else {
			metrics.CacheLookup("error")
			c.logger.Warn("room type cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var types []catalog.RoomType
	if err := json.Unmarshal(raw, &types); err != nil {
		metrics.CacheLookup("error")
		c.logger.Warn("room type cache entry is corrupt", zap.Error(err))
		return nil, false
	}
	metrics.CacheLookup("hit")
	return types, true
}

// Set stores the listing for limit and refreshes the TTL.
func (c *RoomTypeCache) Set(ctx context.Context, limit int, types []catalog.RoomType) {
	raw, err := json.Marshal(types)
	if err != nil {
		c.logger.Warn("room type cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.HSet(ctx, roomTypesKey, strconv.Itoa(limit), raw).Err(); err != nil {
		c.logger.Warn("room type cache write failed", zap.Error(err))
		return
	}
	if err := c.client.Expire(ctx, roomTypesKey, c.ttl).Err(); err != nil {
		c.logger.Warn("room type cache expire failed", zap.Error(err))
	}
}

// Invalidate drops every cached listing.
func (c *RoomTypeCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, roomTypesKey).Err(); err != nil {
		c.logger.Warn("room type cache invalidation failed", zap.Error(err))
	}
}
