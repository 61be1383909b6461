// Package cache stores rendered batch artifacts so re-running the same
// input with the same options skips composition entirely.
//
// Only sealed artifacts are cached. Symbol intermediates are deliberately
// never cached or written anywhere shared; they stay scoped to a single
// compose call.
package cache

import (
	"context"
	"time"
)

// TTLArtifact bounds how long a rendered artifact stays valid.
const TTLArtifact = 24 * time.Hour

// Cache is a byte store with expiry.
type Cache interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any underlying resources.
	Close() error
}
