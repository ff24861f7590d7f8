// Package cache provides byte caches for rendered artifacts.
//
// Three implementations are available:
//   - [FileCache] stores entries as JSON files for CLI usage
//   - [RedisCache] stores entries in Redis for the HTTP server
//   - [NullCache] never stores anything
//
// Keys are produced by a [Keyer] so that identical render requests map to
// identical keys regardless of which frontend issued them.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered artifacts stay cached. Rendering is
// deterministic, so entries only expire to bound storage.
const TTLArtifact = 7 * 24 * time.Hour

// Cache stores opaque byte payloads under string keys.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored data and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// ArtifactKeyOpts holds everything that influences a rendered artifact.
type ArtifactKeyOpts struct {
	Level      string  `json:"level"`
	Version    int     `json:"version"`
	Border     bool    `json:"border"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Backend    string  `json:"backend"`
	Foreground string  `json:"fg"`
	Background string  `json:"bg"`
	Format     string  `json:"format"`
	Title      string  `json:"title,omitempty"` // HTML document title; empty for fragments
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key for a payload rendered with opts.
	ArtifactKey(payload string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256>" over the payload hash and opts.
func (DefaultKeyer) ArtifactKey(payload string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", Hash([]byte(payload)), opts)
}
