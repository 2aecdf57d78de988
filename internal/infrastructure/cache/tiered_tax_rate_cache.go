package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orc/backend/internal/domain/tariff"
)

// TieredTaxRateCache implements a two-tier caching strategy
// L1: Local in-memory cache (fast, but local to instance)
// L2: Redis cache (slower, but shared across instances)
// This follows a read-through, write-around pattern with Pub/Sub invalidation
type TieredTaxRateCache struct {
	l1Cache     *InMemoryTaxRateCache
	l2Cache     *RedisTaxRateCache
	invalidator *RedisRateCacheInvalidator
	config      tariff.CacheConfig
	logger      *zap.Logger

	// Stats for monitoring
	l1Hits   int64
	l1Misses int64
	l2Hits   int64
	l2Misses int64
}

// TieredTaxRateCacheOption is a functional option for configuring the cache
type TieredTaxRateCacheOption func(*TieredTaxRateCache)

// WithTieredConfig sets the cache configuration
func WithTieredConfig(cfg tariff.CacheConfig) TieredTaxRateCacheOption {
	return func(c *TieredTaxRateCache) {
		c.config = cfg
	}
}

// WithTieredLogger sets the logger for the cache
func WithTieredLogger(logger *zap.Logger) TieredTaxRateCacheOption {
	return func(c *TieredTaxRateCache) {
		c.logger = logger
	}
}

// NewTieredTaxRateCache creates a new tiered tax rate cache
func NewTieredTaxRateCache(
	l1Cache *InMemoryTaxRateCache,
	l2Cache *RedisTaxRateCache,
	invalidator *RedisRateCacheInvalidator,
	opts ...TieredTaxRateCacheOption,
) *TieredTaxRateCache {
	cache := &TieredTaxRateCache{
		l1Cache:     l1Cache,
		l2Cache:     l2Cache,
		invalidator: invalidator,
		config:      tariff.DefaultCacheConfig(),
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// StartInvalidationSubscription starts listening for cache invalidation messages
// This should be called after creating the cache, typically in a goroutine
func (c *TieredTaxRateCache) StartInvalidationSubscription(ctx context.Context) error {
	if c.invalidator == nil {
		return nil
	}

	return c.invalidator.Subscribe(ctx, func(msg tariff.CacheUpdateMessage) {
		c.handleInvalidationMessage(msg)
	})
}

// handleInvalidationMessage processes cache invalidation messages
func (c *TieredTaxRateCache) handleInvalidationMessage(msg tariff.CacheUpdateMessage) {
	ctx := context.Background()

	switch msg.Action {
	case tariff.CacheUpdateActionUpdated, tariff.CacheUpdateActionDeleted:
		key, err := msg.Key()
		if err != nil {
			c.logger.Error("Failed to parse rate key in invalidation message",
				zap.String("station_id", msg.StationID),
				zap.Error(err))
			return
		}
		// Invalidate L1 cache for the rate
		if err := c.l1Cache.Delete(ctx, key); err != nil {
			c.logger.Error("Failed to invalidate L1 cache for rate",
				zap.String("key", key.String()),
				zap.Error(err))
		}
		c.logger.Debug("Invalidated L1 cache for rate",
			zap.String("action", string(msg.Action)),
			zap.String("key", key.String()))

	case tariff.CacheUpdateActionStationInvalidated:
		stationID, err := uuid.Parse(msg.StationID)
		if err != nil {
			c.logger.Error("Failed to parse station ID in invalidation message",
				zap.String("station_id", msg.StationID),
				zap.Error(err))
			return
		}
		if err := c.l1Cache.InvalidateStation(ctx, stationID); err != nil {
			c.logger.Error("Failed to invalidate L1 cache for station",
				zap.String("station_id", msg.StationID),
				zap.Error(err))
		}
		c.logger.Debug("Invalidated L1 cache for station",
			zap.String("station_id", msg.StationID))

	case tariff.CacheUpdateActionInvalidateAll:
		// Invalidate all L1 cache
		if err := c.l1Cache.InvalidateAll(ctx); err != nil {
			c.logger.Error("Failed to invalidate all L1 cache", zap.Error(err))
		}
		c.logger.Info("Invalidated all L1 cache")
	}
}

// Get retrieves a tax rate from cache (L1 -> L2)
func (c *TieredTaxRateCache) Get(ctx context.Context, key tariff.RateKey) (*tariff.Tax, error) {
	// Try L1 first
	tax, err := c.l1Cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("L1 cache error", zap.String("key", key.String()), zap.Error(err))
	}
	if tax != nil {
		atomic.AddInt64(&c.l1Hits, 1)
		return tax, nil
	}
	atomic.AddInt64(&c.l1Misses, 1)

	// Try L2
	tax, err = c.l2Cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if tax != nil {
		atomic.AddInt64(&c.l2Hits, 1)
		// Populate L1 cache
		if err := c.l1Cache.Set(ctx, key, tax, c.config.L1TTL); err != nil {
			c.logger.Warn("Failed to populate L1 cache", zap.String("key", key.String()), zap.Error(err))
		}
		return tax, nil
	}
	atomic.AddInt64(&c.l2Misses, 1)

	return nil, nil
}

// Set stores a tax rate in cache
func (c *TieredTaxRateCache) Set(ctx context.Context, key tariff.RateKey, tax *tariff.Tax, ttl time.Duration) error {
	// Set in L2
	if err := c.l2Cache.Set(ctx, key, tax, ttl); err != nil {
		return err
	}

	// Also set in L1 for immediate local access
	if err := c.l1Cache.Set(ctx, key, tax, c.config.L1TTL); err != nil {
		c.logger.Warn("Failed to set L1 cache", zap.String("key", key.String()), zap.Error(err))
	}

	// Publish invalidation for other instances
	if c.invalidator != nil {
		if err := c.invalidator.PublishRateUpdate(ctx, key); err != nil {
			c.logger.Warn("Failed to publish rate update", zap.String("key", key.String()), zap.Error(err))
		}
	}

	return nil
}

// Delete removes a tax rate from cache (both L1 and L2)
func (c *TieredTaxRateCache) Delete(ctx context.Context, key tariff.RateKey) error {
	// Delete from L2
	if err := c.l2Cache.Delete(ctx, key); err != nil {
		return err
	}

	// Delete from L1
	if err := c.l1Cache.Delete(ctx, key); err != nil {
		c.logger.Warn("Failed to delete from L1 cache", zap.String("key", key.String()), zap.Error(err))
	}

	// Publish invalidation for other instances
	if c.invalidator != nil {
		if err := c.invalidator.PublishRateDelete(ctx, key); err != nil {
			c.logger.Warn("Failed to publish rate delete", zap.String("key", key.String()), zap.Error(err))
		}
	}

	return nil
}

// InvalidateStation removes all cached rates for one station (both L1 and L2)
func (c *TieredTaxRateCache) InvalidateStation(ctx context.Context, stationID uuid.UUID) error {
	// Invalidate L2
	if err := c.l2Cache.InvalidateStation(ctx, stationID); err != nil {
		return err
	}

	// Invalidate L1
	if err := c.l1Cache.InvalidateStation(ctx, stationID); err != nil {
		c.logger.Warn("Failed to invalidate station in L1 cache",
			zap.String("station_id", stationID.String()),
			zap.Error(err))
	}

	// Publish invalidation for other instances
	if c.invalidator != nil {
		if err := c.invalidator.PublishStationInvalidation(ctx, stationID); err != nil {
			c.logger.Warn("Failed to publish station invalidation",
				zap.String("station_id", stationID.String()),
				zap.Error(err))
		}
	}

	return nil
}

// InvalidateAll removes all cached tax rates
func (c *TieredTaxRateCache) InvalidateAll(ctx context.Context) error {
	// Invalidate L2
	if err := c.l2Cache.InvalidateAll(ctx); err != nil {
		return err
	}

	// Invalidate L1
	if err := c.l1Cache.InvalidateAll(ctx); err != nil {
		c.logger.Warn("Failed to invalidate L1 cache", zap.Error(err))
	}

	// Publish invalidation for other instances
	if c.invalidator != nil {
		if err := c.invalidator.PublishInvalidateAll(ctx); err != nil {
			c.logger.Warn("Failed to publish invalidate all", zap.Error(err))
		}
	}

	return nil
}

// Close releases any resources held by the cache
func (c *TieredTaxRateCache) Close() error {
	var lastErr error

	if c.invalidator != nil {
		if err := c.invalidator.Close(); err != nil {
			lastErr = err
		}
	}

	if err := c.l2Cache.Close(); err != nil {
		lastErr = err
	}

	if err := c.l1Cache.Close(); err != nil {
		lastErr = err
	}

	return lastErr
}

// TieredRateCache interface implementation

// GetL1 directly accesses the L1 (local) cache
func (c *TieredTaxRateCache) GetL1(ctx context.Context, key tariff.RateKey) (*tariff.Tax, error) {
	return c.l1Cache.Get(ctx, key)
}

// SetL1 directly sets a value in the L1 (local) cache
func (c *TieredTaxRateCache) SetL1(ctx context.Context, key tariff.RateKey, tax *tariff.Tax, ttl time.Duration) error {
	return c.l1Cache.Set(ctx, key, tax, ttl)
}

// InvalidateL1 removes an entry from the L1 (local) cache only
func (c *TieredTaxRateCache) InvalidateL1(ctx context.Context, key tariff.RateKey) error {
	return c.l1Cache.Delete(ctx, key)
}

// GetCacheStats returns statistics about cache hits, misses, and other metrics
func (c *TieredTaxRateCache) GetCacheStats(ctx context.Context) tariff.CacheStats {
	l1Hits := atomic.LoadInt64(&c.l1Hits)
	l1Misses := atomic.LoadInt64(&c.l1Misses)
	l2Hits := atomic.LoadInt64(&c.l2Hits)
	l2Misses := atomic.LoadInt64(&c.l2Misses)

	totalHits := l1Hits + l2Hits
	totalMisses := l2Misses // Only count final misses

	var hitRatio float64
	totalRequests := totalHits + totalMisses
	if totalRequests > 0 {
		hitRatio = float64(totalHits) / float64(totalRequests)
	}

	return tariff.CacheStats{
		L1Hits:       l1Hits,
		L1Misses:     l1Misses,
		L2Hits:       l2Hits,
		L2Misses:     l2Misses,
		TotalHits:    totalHits,
		TotalMisses:  totalMisses,
		HitRatio:     hitRatio,
		CacheEntries: int64(c.l1Cache.Count()),
	}
}

// ResetStats resets the cache statistics
func (c *TieredTaxRateCache) ResetStats() {
	atomic.StoreInt64(&c.l1Hits, 0)
	atomic.StoreInt64(&c.l1Misses, 0)
	atomic.StoreInt64(&c.l2Hits, 0)
	atomic.StoreInt64(&c.l2Misses, 0)
	c.l1Cache.ResetStats()
}

// Ensure TieredTaxRateCache implements both RateCache and TieredRateCache
var _ tariff.RateCache = (*TieredTaxRateCache)(nil)
var _ tariff.TieredRateCache = (*TieredTaxRateCache)(nil)
