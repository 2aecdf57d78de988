package shared

import (
	"context"
	"time"
)

// IdempotencyStore tracks request identifiers that have already been processed.
// Weighbridge devices retry aggressively on flaky links; the store lets the
// ingestion endpoints absorb those retries before they reach the database.
type IdempotencyStore interface {
	// MarkProcessed marks a key as processed with a TTL.
	// Returns true if the key was newly marked, false if it was already present.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed reports whether the key has already been processed.
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Close releases any resources held by the store.
	Close() error
}
