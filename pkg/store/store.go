// Package store provides named graph-snapshot storage.
//
// The dashboard backend writes specification graphs; this engine only reads
// them, builds an index, and serves exploration views. Backends:
//
//   - FileStore: a directory of graph JSON files, for CLI and development
//   - MongoStore: a collection of graph documents for server deployments
//
// Snapshots are stored whole and replaced whole - there is no incremental
// mutation, matching the snapshot semantics of the exploration pipeline.
package store

import (
	"context"
	"errors"
	"strings"

	"github.com/specatlas/specatlas/pkg/graph"
)

// Sentinel errors for snapshot operations.
var (
	// ErrNotFound is returned when a named graph does not exist.
	ErrNotFound = errors.New("graph not found")

	// ErrInvalidName is returned for empty or unsafe graph names.
	ErrInvalidName = errors.New("invalid graph name")
)

// Store is the interface for graph-snapshot backends.
type Store interface {
	// Get retrieves a graph by name. Returns ErrNotFound if absent.
	Get(ctx context.Context, name string) (graph.Graph, error)

	// Put stores a graph under a name, replacing any existing snapshot.
	Put(ctx context.Context, name string, g graph.Graph) error

	// Delete removes a named graph. Returns ErrNotFound if absent.
	Delete(ctx context.Context, name string) error

	// List returns the stored graph names sorted ascending.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// validName rejects empty names and path separators so file backends cannot
// be steered outside their directory.
func validName(name string) error {
	if name == "" || name == "." || name == ".." {
		return ErrInvalidName
	}
	if strings.ContainsAny(name, `/\`) {
		return ErrInvalidName
	}
	return nil
}
