package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/specatlas/specatlas/pkg/graph"
)

// FileStore keeps each graph as a JSON file in a directory.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewFileStore creates a file-based store in the given directory.
// The directory is created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create graph dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Get retrieves a graph by name.
func (s *FileStore) Get(ctx context.Context, name string) (graph.Graph, error) {
	if err := validName(name); err != nil {
		return graph.Graph{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, err := graph.ReadGraphFile(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return graph.Graph{}, ErrNotFound
	}
	return g, err
}

// Put stores a graph under a name, replacing any existing snapshot.
func (s *FileStore) Put(ctx context.Context, name string, g graph.Graph) error {
	if err := validName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return graph.WriteGraphFile(g, s.path(name))
}

// Delete removes a named graph.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(name))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

// List returns the stored graph names sorted ascending.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	slices.Sort(names)
	return names, nil
}

// Close does nothing for the file backend.
func (s *FileStore) Close(ctx context.Context) error { return nil }

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
