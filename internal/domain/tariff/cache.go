package tariff

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RateKey identifies a tax rate by its lookup triple.
type RateKey struct {
	StationID      uuid.UUID
	TaxPayerTypeID uuid.UUID
	CommodityID    uuid.UUID
}

// String renders the key in station:type:commodity order so station-wide
// invalidation can match on the station prefix.
func (k RateKey) String() string {
	return k.StationID.String() + ":" + k.TaxPayerTypeID.String() + ":" + k.CommodityID.String()
}

// RateCache defines the interface for tax rate caching.
// Every checkin resolves a rate for its (station, taxpayer type, commodity)
// triple, while rates themselves change rarely. Implementations provide fast
// access on that hot path.
//
// The cache operates as part of a multi-tier caching strategy:
// - L1: Local in-memory cache for ultra-fast access
// - L2: Redis cache for distributed consistency
// - L3: Database as the source of truth
//
// Cache keys follow the pattern tax_rate:{station_id}:{taxpayer_type_id}:{commodity_id}
type RateCache interface {
	// Get retrieves a tax rate from cache by its key.
	// Returns nil, nil if the rate is not in cache (cache miss).
	// Returns nil, error if there was an error accessing the cache.
	Get(ctx context.Context, key RateKey) (*Tax, error)

	// Set stores a tax rate in cache with the specified TTL.
	// If ttl is 0, implementation should use a default TTL.
	Set(ctx context.Context, key RateKey, tax *Tax, ttl time.Duration) error

	// Delete removes a tax rate from cache by its key.
	Delete(ctx context.Context, key RateKey) error

	// InvalidateStation removes all cached rates for one station.
	// Used when a station's rate schedule is replaced in bulk.
	InvalidateStation(ctx context.Context, stationID uuid.UUID) error

	// InvalidateAll removes all cached tax rates.
	InvalidateAll(ctx context.Context) error

	// Close releases any resources held by the cache.
	Close() error
}

// CacheUpdateAction represents the type of cache update notification
type CacheUpdateAction string

const (
	// CacheUpdateActionUpdated indicates a rate was created or updated
	CacheUpdateActionUpdated CacheUpdateAction = "updated"
	// CacheUpdateActionDeleted indicates a rate was deleted
	CacheUpdateActionDeleted CacheUpdateAction = "deleted"
	// CacheUpdateActionStationInvalidated indicates all rates for a station should be cleared
	CacheUpdateActionStationInvalidated CacheUpdateAction = "station_invalidated"
	// CacheUpdateActionInvalidateAll indicates all cache should be cleared
	CacheUpdateActionInvalidateAll CacheUpdateAction = "invalidate_all"
)

// CacheUpdateMessage represents a cache invalidation message
// sent via Pub/Sub to notify other instances of rate changes.
type CacheUpdateMessage struct {
	Action         CacheUpdateAction `json:"action"`
	StationID      string            `json:"station_id,omitempty"`
	TaxPayerTypeID string            `json:"tax_payer_type_id,omitempty"`
	CommodityID    string            `json:"commodity_id,omitempty"`
	Timestamp      int64             `json:"timestamp"`
}

// Key reconstructs the rate key carried by the message.
func (m CacheUpdateMessage) Key() (RateKey, error) {
	stationID, err := uuid.Parse(m.StationID)
	if err != nil {
		return RateKey{}, err
	}
	typeID, err := uuid.Parse(m.TaxPayerTypeID)
	if err != nil {
		return RateKey{}, err
	}
	commodityID, err := uuid.Parse(m.CommodityID)
	if err != nil {
		return RateKey{}, err
	}
	return RateKey{StationID: stationID, TaxPayerTypeID: typeID, CommodityID: commodityID}, nil
}

// CacheInvalidator provides cache invalidation functionality.
// It allows publishing cache update notifications to other instances
// and subscribing to receive notifications from other instances.
type CacheInvalidator interface {
	// Publish sends a cache update notification to all subscribers.
	Publish(ctx context.Context, msg CacheUpdateMessage) error

	// Subscribe starts listening for cache update notifications.
	// The callback function is invoked for each received message.
	// This method should be called in a goroutine as it blocks.
	Subscribe(ctx context.Context, callback func(msg CacheUpdateMessage)) error

	// Close releases any resources held by the invalidator.
	Close() error
}

// TieredRateCache combines multiple cache layers for optimal performance.
// It follows a read-through, write-around pattern:
// - Reads: Check L1 -> Check L2 -> Database
// - Writes: Write to L2, invalidate L1 via Pub/Sub
type TieredRateCache interface {
	RateCache

	// GetL1 directly accesses the L1 (local) cache, bypassing L2.
	GetL1(ctx context.Context, key RateKey) (*Tax, error)

	// SetL1 directly sets a value in the L1 (local) cache.
	// This is typically called when receiving Pub/Sub notifications.
	SetL1(ctx context.Context, key RateKey, tax *Tax, ttl time.Duration) error

	// InvalidateL1 removes an entry from the L1 (local) cache only.
	InvalidateL1(ctx context.Context, key RateKey) error

	// GetCacheStats returns statistics about cache hits, misses, and other metrics.
	GetCacheStats(ctx context.Context) CacheStats
}

// CacheStats holds cache performance statistics
type CacheStats struct {
	L1Hits       int64   `json:"l1_hits"`
	L1Misses     int64   `json:"l1_misses"`
	L2Hits       int64   `json:"l2_hits"`
	L2Misses     int64   `json:"l2_misses"`
	TotalHits    int64   `json:"total_hits"`
	TotalMisses  int64   `json:"total_misses"`
	HitRatio     float64 `json:"hit_ratio"`
	CacheEntries int64   `json:"cache_entries"`
}

// CacheConfig holds configuration for the tax rate cache
type CacheConfig struct {
	// RateTTL is the time-to-live for cached rates in L2 (default: 5m)
	RateTTL time.Duration
	// L1TTL is the time-to-live for L1 (local) cache (default: 30s)
	L1TTL time.Duration
	// L1MaxSize is the maximum number of entries in L1 cache (default: 10000)
	L1MaxSize int
	// PubSubChannel is the Redis Pub/Sub channel name (default: "tax_rate:updates")
	PubSubChannel string
}

// DefaultCacheConfig returns the default cache configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		RateTTL:       5 * time.Minute,
		L1TTL:         30 * time.Second,
		L1MaxSize:     10000,
		PubSubChannel: "tax_rate:updates",
	}
}
