// Package cache stores encoded artifacts between runs.
//
// A generation is deterministic given its options, so artifacts can be
// reused across invocations. Three backends implement [Cache]:
//
//   - [FileCache]: JSON entry files under a local directory (CLI default)
//   - [RedisCache]: a shared Redis instance (server deployments)
//   - [NullCache]: stores nothing (--no-cache, tests)
//
// Keys come from a [Keyer] so that callers never build key strings by hand:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ArtifactKey(opts.Hash(), "png")
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. A miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TTLArtifact is how long encoded artifacts are kept.
const TTLArtifact = 7 * 24 * time.Hour

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey identifies one encoded format of one generation.
	ArtifactKey(optionsHash, format string) string
}

// DefaultKeyer builds unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256(optionsHash, format)>".
func (DefaultKeyer) ArtifactKey(optionsHash, format string) string {
	return hashKey("artifact", optionsHash, format)
}
