package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/orc/backend/internal/domain/tariff"
	"github.com/orc/backend/internal/infrastructure/config"
)

// Constants for Redis cache configuration
const (
	defaultScanBatchSize = 100
)

// RedisTaxRateCache implements RateCache using Redis
type RedisTaxRateCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	config     tariff.CacheConfig
	logger     *zap.Logger
}

// RedisTaxRateCacheOption is a functional option for configuring the cache
type RedisTaxRateCacheOption func(*RedisTaxRateCache)

// WithCacheConfig sets the cache configuration
func WithCacheConfig(cfg tariff.CacheConfig) RedisTaxRateCacheOption {
	return func(c *RedisTaxRateCache) {
		c.config = cfg
	}
}

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisTaxRateCacheOption {
	return func(c *RedisTaxRateCache) {
		c.logger = logger
	}
}

// NewRedisTaxRateCache creates a new Redis-based tax rate cache
func NewRedisTaxRateCache(cfg config.RedisConfig, opts ...RedisTaxRateCacheOption) (*RedisTaxRateCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisTaxRateCache{
		client:     client,
		ownsClient: true, // We created this client, so we own it
		config:     tariff.DefaultCacheConfig(),
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisTaxRateCacheWithClient creates a cache with an existing Redis client
// Note: The caller retains ownership of the client and is responsible for closing it
func NewRedisTaxRateCacheWithClient(client *redis.Client, opts ...RedisTaxRateCacheOption) *RedisTaxRateCache {
	cache := &RedisTaxRateCache{
		client:     client,
		ownsClient: false, // Client is shared, don't close it
		config:     tariff.DefaultCacheConfig(),
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// rateCacheKey generates the cache key for a tax rate
func (c *RedisTaxRateCache) rateCacheKey(key tariff.RateKey) string {
	return "tax_rate:" + key.String()
}

// stationPattern matches every cached rate of one station
func (c *RedisTaxRateCache) stationPattern(stationID uuid.UUID) string {
	return "tax_rate:" + stationID.String() + ":*"
}

// Get retrieves a tax rate from cache
func (c *RedisTaxRateCache) Get(ctx context.Context, key tariff.RateKey) (*tariff.Tax, error) {
	cacheKey := c.rateCacheKey(key)

	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if err == redis.Nil {
		// Cache miss
		c.logger.Debug("Cache miss for tax rate", zap.String("key", key.String()))
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Failed to get tax rate from cache",
			zap.String("key", key.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get rate from cache: %w", err)
	}

	var tax tariff.Tax
	if err := json.Unmarshal(data, &tax); err != nil {
		c.logger.Error("Failed to unmarshal tax rate",
			zap.String("key", key.String()),
			zap.Error(err))
		// Delete corrupted cache entry
		_ = c.client.Del(ctx, cacheKey)
		return nil, fmt.Errorf("failed to unmarshal rate: %w", err)
	}

	c.logger.Debug("Cache hit for tax rate", zap.String("key", key.String()))
	return &tax, nil
}

// Set stores a tax rate in cache
func (c *RedisTaxRateCache) Set(ctx context.Context, key tariff.RateKey, tax *tariff.Tax, ttl time.Duration) error {
	if tax == nil {
		return nil
	}

	if ttl == 0 {
		ttl = c.config.RateTTL
	}

	cacheKey := c.rateCacheKey(key)

	data, err := json.Marshal(tax)
	if err != nil {
		c.logger.Error("Failed to marshal tax rate",
			zap.String("key", key.String()),
			zap.Error(err))
		return fmt.Errorf("failed to marshal rate: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey, data, ttl).Err(); err != nil {
		c.logger.Error("Failed to set tax rate in cache",
			zap.String("key", key.String()),
			zap.Error(err))
		return fmt.Errorf("failed to set rate in cache: %w", err)
	}

	c.logger.Debug("Cached tax rate",
		zap.String("key", key.String()),
		zap.Duration("ttl", ttl))
	return nil
}

// Delete removes a tax rate from cache
func (c *RedisTaxRateCache) Delete(ctx context.Context, key tariff.RateKey) error {
	cacheKey := c.rateCacheKey(key)

	if err := c.client.Del(ctx, cacheKey).Err(); err != nil {
		c.logger.Error("Failed to delete tax rate from cache",
			zap.String("key", key.String()),
			zap.Error(err))
		return fmt.Errorf("failed to delete rate from cache: %w", err)
	}

	c.logger.Debug("Deleted tax rate from cache", zap.String("key", key.String()))
	return nil
}

// InvalidateStation removes all cached rates for one station
func (c *RedisTaxRateCache) InvalidateStation(ctx context.Context, stationID uuid.UUID) error {
	deleted, err := c.deleteByPattern(ctx, c.stationPattern(stationID))
	if err != nil {
		return err
	}

	c.logger.Info("Invalidated station tax rate cache",
		zap.String("station_id", stationID.String()),
		zap.Int64("deleted_count", deleted))
	return nil
}

// InvalidateAll removes all cached tax rates
func (c *RedisTaxRateCache) InvalidateAll(ctx context.Context) error {
	deleted, err := c.deleteByPattern(ctx, "tax_rate:*")
	if err != nil {
		return err
	}

	c.logger.Info("Invalidated all tax rate cache",
		zap.Int64("deleted_count", deleted))
	return nil
}

// deleteByPattern removes all keys matching the pattern.
// Uses SCAN to avoid blocking Redis with the KEYS command.
func (c *RedisTaxRateCache) deleteByPattern(ctx context.Context, pattern string) (int64, error) {
	var cursor uint64
	var deletedCount int64

	for {
		var keys []string
		var err error
		keys, cursor, err = c.client.Scan(ctx, cursor, pattern, defaultScanBatchSize).Result()
		if err != nil {
			c.logger.Error("Failed to scan tax rate keys", zap.Error(err))
			return deletedCount, fmt.Errorf("failed to scan cache keys: %w", err)
		}

		if len(keys) > 0 {
			deleted, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				c.logger.Error("Failed to delete tax rate keys", zap.Error(err))
				return deletedCount, fmt.Errorf("failed to delete cache keys: %w", err)
			}
			deletedCount += deleted
		}

		if cursor == 0 {
			break
		}
	}

	return deletedCount, nil
}

// Close releases any resources held by the cache
func (c *RedisTaxRateCache) Close() error {
	// Only close client if we own it
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisTaxRateCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisTaxRateCache implements RateCache
var _ tariff.RateCache = (*RedisTaxRateCache)(nil)
