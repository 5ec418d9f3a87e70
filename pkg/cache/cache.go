// Package cache provides pluggable byte caching for pipeline results.
//
// Layout passes are pure functions of (graph snapshot, view state), so their
// results cache perfectly: the key is derived from the snapshot hash and the
// canonical view-state encoding. Backends:
//
//   - FileCache: directory-backed, for CLI usage
//   - RedisCache: shared cache for multi-instance server deployments
//   - NullCache: disables caching
//
// Caching here is ephemeral acceleration with TTLs, not persistence - a cold
// cache only costs recomputation.
package cache

import (
	"context"
	"time"
)

// TTLs per entry category.
const (
	// TTLGraph bounds cached graph snapshots.
	TTLGraph = 24 * time.Hour

	// TTLLayout bounds cached layout passes. Layouts are cheap to recompute,
	// so this mainly smooths bursts of identical requests.
	TTLLayout = 12 * time.Hour
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys. Implementations must be deterministic.
type Keyer interface {
	// GraphKey generates a key for a stored graph snapshot.
	GraphKey(name string) string

	// LayoutKey generates a key for a layout pass over a specific snapshot
	// and view state.
	LayoutKey(graphHash, stateHash string) string
}

// DefaultKeyer hashes key components with SHA-256 under a type prefix.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// GraphKey generates a key for a stored graph snapshot.
func (k *DefaultKeyer) GraphKey(name string) string {
	return hashKey("graph", name)
}

// LayoutKey generates a key for a layout pass.
func (k *DefaultKeyer) LayoutKey(graphHash, stateHash string) string {
	return hashKey("layout", graphHash, stateHash)
}
