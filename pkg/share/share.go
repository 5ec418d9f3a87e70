// Package share provides shareable exploration links.
//
// A link captures a graph name plus the complete view state (filters, focus,
// mode) under a short opaque ID, so a teammate opening the link lands on the
// exact same exploration view - including the initially focused node. Links
// expire; they are conveniences, not storage.
//
// Backends mirror the deployment shapes:
//   - memory: development and tests
//   - file: CLI usage
//   - redis: multi-instance server deployments
package share

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/specatlas/specatlas/pkg/view"
)

// Sentinel errors for link operations.
var (
	// ErrNotFound is returned when a link does not exist.
	ErrNotFound = errors.New("not found")

	// ErrExpired is returned when a link has exceeded its TTL.
	ErrExpired = errors.New("expired")
)

// DefaultTTL is the default link lifetime.
const DefaultTTL = 30 * 24 * time.Hour

// Link stores a shareable exploration view.
type Link struct {
	ID        string     `json:"id"`
	GraphName string     `json:"graph_name"`
	State     view.State `json:"state"`
	ExpiresAt time.Time  `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// IsExpired returns true if the link has expired.
func (l *Link) IsExpired() bool {
	return time.Now().After(l.ExpiresAt)
}

// New creates a link for a graph and view state with the given TTL.
// A zero ttl selects DefaultTTL. IDs are random UUIDs.
func New(graphName string, state view.State, ttl time.Duration) *Link {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now().UTC()
	return &Link{
		ID:        uuid.NewString(),
		GraphName: graphName,
		State:     state,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

// Store is the interface for link storage backends.
type Store interface {
	// Get retrieves a link by ID.
	// Returns nil, nil if the link doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Link, error)

	// Set stores a link.
	Set(ctx context.Context, link *Link) error

	// Delete removes a link.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired links (may be a no-op for TTL-native backends).
	Cleanup(ctx context.Context) error
}
