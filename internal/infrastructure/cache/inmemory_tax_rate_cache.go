package cache

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orc/backend/internal/domain/tariff"
)

// Constants for in-memory cache configuration
const (
	defaultCleanupInterval = 30 * time.Second
)

// InMemoryTaxRateCache implements RateCache using in-memory storage
// This is designed to be used as L1 cache in front of Redis
type InMemoryTaxRateCache struct {
	rates   sync.Map // map[string]*rateEntry
	config  tariff.CacheConfig
	logger  *zap.Logger
	stopCh  chan struct{} // Channel to stop the cleanup goroutine
	stopped int32         // Atomic flag to track if cache is stopped

	// Stats for monitoring
	hits   int64
	misses int64
}

// rateEntry wraps a cached rate with expiration time
type rateEntry struct {
	value     *tariff.Tax
	expiresAt time.Time
}

// isExpired checks if the cache entry has expired
func (e *rateEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemoryTaxRateCacheOption is a functional option for configuring the cache
type InMemoryTaxRateCacheOption func(*InMemoryTaxRateCache)

// WithInMemoryConfig sets the cache configuration
func WithInMemoryConfig(cfg tariff.CacheConfig) InMemoryTaxRateCacheOption {
	return func(c *InMemoryTaxRateCache) {
		c.config = cfg
	}
}

// WithInMemoryLogger sets the logger for the cache
func WithInMemoryLogger(logger *zap.Logger) InMemoryTaxRateCacheOption {
	return func(c *InMemoryTaxRateCache) {
		c.logger = logger
	}
}

// NewInMemoryTaxRateCache creates a new in-memory tax rate cache
func NewInMemoryTaxRateCache(opts ...InMemoryTaxRateCacheOption) *InMemoryTaxRateCache {
	cache := &InMemoryTaxRateCache{
		config: tariff.DefaultCacheConfig(),
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(cache)
	}

	// Start background cleanup goroutine
	go cache.cleanupExpired()

	return cache
}

// Get retrieves a tax rate from cache
func (c *InMemoryTaxRateCache) Get(ctx context.Context, key tariff.RateKey) (*tariff.Tax, error) {
	cacheKey := key.String()

	if value, ok := c.rates.Load(cacheKey); ok {
		entry := value.(*rateEntry)
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			c.logger.Debug("L1 cache hit for tax rate", zap.String("key", cacheKey))
			return entry.value, nil
		}
		// Expired, remove from cache
		c.rates.Delete(cacheKey)
	}

	atomic.AddInt64(&c.misses, 1)
	c.logger.Debug("L1 cache miss for tax rate", zap.String("key", cacheKey))
	return nil, nil
}

// Set stores a tax rate in cache
func (c *InMemoryTaxRateCache) Set(ctx context.Context, key tariff.RateKey, tax *tariff.Tax, ttl time.Duration) error {
	if tax == nil {
		return nil
	}

	if ttl == 0 {
		ttl = c.config.L1TTL
	}

	cacheKey := key.String()
	entry := &rateEntry{
		value:     tax,
		expiresAt: time.Now().Add(ttl),
	}

	c.rates.Store(cacheKey, entry)
	c.logger.Debug("Cached tax rate in L1",
		zap.String("key", cacheKey),
		zap.Duration("ttl", ttl))
	return nil
}

// Delete removes a tax rate from cache
func (c *InMemoryTaxRateCache) Delete(ctx context.Context, key tariff.RateKey) error {
	cacheKey := key.String()
	c.rates.Delete(cacheKey)
	c.logger.Debug("Deleted tax rate from L1 cache", zap.String("key", cacheKey))
	return nil
}

// InvalidateStation removes all cached rates for one station
func (c *InMemoryTaxRateCache) InvalidateStation(ctx context.Context, stationID uuid.UUID) error {
	prefix := stationID.String() + ":"
	var removed int

	c.rates.Range(func(key, _ any) bool {
		if strings.HasPrefix(key.(string), prefix) {
			c.rates.Delete(key)
			removed++
		}
		return true
	})

	c.logger.Debug("Invalidated station rates in L1 cache",
		zap.String("station_id", stationID.String()),
		zap.Int("removed", removed))
	return nil
}

// InvalidateAll removes all cached tax rates
func (c *InMemoryTaxRateCache) InvalidateAll(ctx context.Context) error {
	c.rates.Range(func(key, _ any) bool {
		c.rates.Delete(key)
		return true
	})

	c.logger.Info("Invalidated all L1 tax rate cache")
	return nil
}

// Close releases any resources held by the cache
func (c *InMemoryTaxRateCache) Close() error {
	// Only close once
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// GetStats returns cache statistics
func (c *InMemoryTaxRateCache) GetStats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// ResetStats resets the cache statistics
func (c *InMemoryTaxRateCache) ResetStats() {
	atomic.StoreInt64(&c.hits, 0)
	atomic.StoreInt64(&c.misses, 0)
}

// Count returns the number of entries in the cache
func (c *InMemoryTaxRateCache) Count() int {
	var count int
	c.rates.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// cleanupExpired periodically removes expired entries from the cache
func (c *InMemoryTaxRateCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						c.logger.Error("Panic in cache cleanup",
							zap.Any("panic", r))
					}
				}()
				c.doCleanup()
			}()
		}
	}
}

// doCleanup removes expired entries
func (c *InMemoryTaxRateCache) doCleanup() {
	var removed int

	c.rates.Range(func(key, value any) bool {
		entry := value.(*rateEntry)
		if entry.isExpired() {
			c.rates.Delete(key)
			removed++
		}
		return true
	})

	if removed > 0 {
		c.logger.Debug("Cleaned up expired L1 cache entries",
			zap.Int("rates_removed", removed))
	}
}

// Ensure InMemoryTaxRateCache implements RateCache
var _ tariff.RateCache = (*InMemoryTaxRateCache)(nil)
