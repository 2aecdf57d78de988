package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/orc/backend/internal/domain/tariff"
	"github.com/orc/backend/internal/infrastructure/config"
)

// Constants for invalidator configuration
const (
	defaultCloseTimeout = 5 * time.Second
)

// RedisRateCacheInvalidator implements CacheInvalidator using Redis Pub/Sub
type RedisRateCacheInvalidator struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	channel    string
	logger     *zap.Logger
	cancelFn   context.CancelFunc
	doneCh     chan struct{}
	doneOnce   sync.Once
	mu         sync.Mutex
	isRunning  bool
}

// RedisRateCacheInvalidatorOption is a functional option for configuring the invalidator
type RedisRateCacheInvalidatorOption func(*RedisRateCacheInvalidator)

// WithInvalidatorChannel sets the Pub/Sub channel name
func WithInvalidatorChannel(channel string) RedisRateCacheInvalidatorOption {
	return func(i *RedisRateCacheInvalidator) {
		i.channel = channel
	}
}

// WithInvalidatorLogger sets the logger for the invalidator
func WithInvalidatorLogger(logger *zap.Logger) RedisRateCacheInvalidatorOption {
	return func(i *RedisRateCacheInvalidator) {
		i.logger = logger
	}
}

// NewRedisRateCacheInvalidator creates a new Redis Pub/Sub cache invalidator
func NewRedisRateCacheInvalidator(cfg config.RedisConfig, opts ...RedisRateCacheInvalidatorOption) (*RedisRateCacheInvalidator, error) {
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

	invalidator := &RedisRateCacheInvalidator{
		client:     client,
		ownsClient: true, // We created this client, so we own it
		channel:    tariff.DefaultCacheConfig().PubSubChannel,
		logger:     zap.NewNop(),
		doneCh:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(invalidator)
	}

	return invalidator, nil
}

// NewRedisRateCacheInvalidatorWithClient creates an invalidator with an existing Redis client
// Note: The caller retains ownership of the client and is responsible for closing it
func NewRedisRateCacheInvalidatorWithClient(client *redis.Client, opts ...RedisRateCacheInvalidatorOption) *RedisRateCacheInvalidator {
	invalidator := &RedisRateCacheInvalidator{
		client:     client,
		ownsClient: false, // Client is shared, don't close it
		channel:    tariff.DefaultCacheConfig().PubSubChannel,
		logger:     zap.NewNop(),
		doneCh:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(invalidator)
	}

	return invalidator
}

// Publish sends a cache update notification to all subscribers
func (i *RedisRateCacheInvalidator) Publish(ctx context.Context, msg tariff.CacheUpdateMessage) error {
	// Set timestamp if not set
	if msg.Timestamp == 0 {
		msg.Timestamp = time.Now().UnixNano()
	}

	data, err := json.Marshal(msg)
	if err != nil {
		i.logger.Error("Failed to marshal cache update message",
			zap.String("action", string(msg.Action)),
			zap.Error(err))
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := i.client.Publish(ctx, i.channel, data).Err(); err != nil {
		i.logger.Error("Failed to publish cache update message",
			zap.String("channel", i.channel),
			zap.Error(err))
		return fmt.Errorf("failed to publish message: %w", err)
	}

	i.logger.Debug("Published cache update message",
		zap.String("action", string(msg.Action)),
		zap.String("station_id", msg.StationID),
		zap.String("channel", i.channel))

	return nil
}

// Subscribe starts listening for cache update notifications
// The callback function is invoked for each received message
// This method should be called in a goroutine as it blocks
func (i *RedisRateCacheInvalidator) Subscribe(ctx context.Context, callback func(msg tariff.CacheUpdateMessage)) error {
	i.mu.Lock()
	if i.isRunning {
		i.mu.Unlock()
		return fmt.Errorf("subscription already running")
	}
	i.isRunning = true
	i.mu.Unlock()

	// Create a cancellable context
	subCtx, cancel := context.WithCancel(ctx)
	i.mu.Lock()
	i.cancelFn = cancel
	i.mu.Unlock()

	pubsub := i.client.Subscribe(subCtx, i.channel)
	defer pubsub.Close()

	// Wait for subscription confirmation
	_, err := pubsub.Receive(subCtx)
	if err != nil {
		i.mu.Lock()
		i.isRunning = false
		i.mu.Unlock()
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}

	i.logger.Info("Subscribed to rate cache invalidation channel",
		zap.String("channel", i.channel))

	// Get the message channel
	ch := pubsub.Channel()

	for {
		select {
		case <-subCtx.Done():
			i.logger.Info("Rate cache invalidation subscription stopped")
			i.mu.Lock()
			i.isRunning = false
			i.mu.Unlock()
			i.markDone()
			return subCtx.Err()
		case msg, ok := <-ch:
			if !ok {
				i.logger.Warn("Rate cache invalidation channel closed")
				i.mu.Lock()
				i.isRunning = false
				i.mu.Unlock()
				i.markDone()
				return nil
			}

			var updateMsg tariff.CacheUpdateMessage
			if err := json.Unmarshal([]byte(msg.Payload), &updateMsg); err != nil {
				i.logger.Error("Failed to unmarshal cache update message",
					zap.String("payload", msg.Payload),
					zap.Error(err))
				continue
			}

			i.logger.Debug("Received cache update message",
				zap.String("action", string(updateMsg.Action)),
				zap.String("station_id", updateMsg.StationID))

			// Call the callback in a separate goroutine to prevent blocking
			go func(m tariff.CacheUpdateMessage) {
				defer func() {
					if r := recover(); r != nil {
						i.logger.Error("Panic in cache update callback",
							zap.Any("panic", r))
					}
				}()
				callback(m)
			}(updateMsg)
		}
	}
}

// markDone safely marks the invalidator as done
func (i *RedisRateCacheInvalidator) markDone() {
	i.doneOnce.Do(func() {
		close(i.doneCh)
	})
}

// Close releases any resources held by the invalidator
func (i *RedisRateCacheInvalidator) Close() error {
	i.mu.Lock()
	cancelFn := i.cancelFn
	i.mu.Unlock()

	if cancelFn != nil {
		cancelFn()
		// Wait for subscription to stop with timeout
		select {
		case <-i.doneCh:
		case <-time.After(defaultCloseTimeout):
			i.logger.Warn("Timeout waiting for subscription to stop")
		}
	}

	// Only close client if we own it
	if i.ownsClient {
		return i.client.Close()
	}
	return nil
}

// PublishRateUpdate publishes a rate update notification
func (i *RedisRateCacheInvalidator) PublishRateUpdate(ctx context.Context, key tariff.RateKey) error {
	return i.Publish(ctx, tariff.CacheUpdateMessage{
		Action:         tariff.CacheUpdateActionUpdated,
		StationID:      key.StationID.String(),
		TaxPayerTypeID: key.TaxPayerTypeID.String(),
		CommodityID:    key.CommodityID.String(),
	})
}

// PublishRateDelete publishes a rate deletion notification
func (i *RedisRateCacheInvalidator) PublishRateDelete(ctx context.Context, key tariff.RateKey) error {
	return i.Publish(ctx, tariff.CacheUpdateMessage{
		Action:         tariff.CacheUpdateActionDeleted,
		StationID:      key.StationID.String(),
		TaxPayerTypeID: key.TaxPayerTypeID.String(),
		CommodityID:    key.CommodityID.String(),
	})
}

// PublishStationInvalidation publishes a station-wide invalidation notification
func (i *RedisRateCacheInvalidator) PublishStationInvalidation(ctx context.Context, stationID uuid.UUID) error {
	return i.Publish(ctx, tariff.CacheUpdateMessage{
		Action:    tariff.CacheUpdateActionStationInvalidated,
		StationID: stationID.String(),
	})
}

// PublishInvalidateAll publishes an invalidate-all notification
func (i *RedisRateCacheInvalidator) PublishInvalidateAll(ctx context.Context) error {
	return i.Publish(ctx, tariff.CacheUpdateMessage{
		Action: tariff.CacheUpdateActionInvalidateAll,
	})
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (i *RedisRateCacheInvalidator) GetClient() *redis.Client {
	return i.client
}

// Ensure RedisRateCacheInvalidator implements CacheInvalidator
var _ tariff.CacheInvalidator = (*RedisRateCacheInvalidator)(nil)
