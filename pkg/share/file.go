package share

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore is a file-based link store for CLI usage.
// Links are stored as JSON files in a config directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based link store.
// If baseDir is empty, defaults to ~/.config/specatlas/shares/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "specatlas", "shares")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create share dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// validID rejects IDs that could steer the file backend outside its
// directory. Generated IDs are UUIDs, but Get and Delete take caller input.
func validID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}

func (s *FileStore) linkPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

// Get retrieves a link by ID. Malformed IDs and expired links read as
// absent; expired files are removed by Cleanup, not here.
func (s *FileStore) Get(ctx context.Context, id string) (*Link, error) {
	if !validID(id) {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.linkPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read share file: %w", err)
	}

	var link Link
	if err := json.Unmarshal(data, &link); err != nil {
		return nil, fmt.Errorf("parse share: %w", err)
	}
	if link.IsExpired() {
		return nil, nil
	}
	return &link, nil
}

// Set stores a link.
func (s *FileStore) Set(ctx context.Context, link *Link) error {
	if !validID(link.ID) {
		return fmt.Errorf("invalid share id %q", link.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(link, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal share: %w", err)
	}

	if err := os.WriteFile(s.linkPath(link.ID), data, 0600); err != nil {
		return fmt.Errorf("write share file: %w", err)
	}
	return nil
}

// Delete removes a link. Malformed IDs are a no-op.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.linkPath(id))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete share file: %w", err)
	}
	return nil
}

// Cleanup removes expired links.
func (s *FileStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.baseDir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var link Link
		if err := json.Unmarshal(data, &link); err != nil || link.IsExpired() {
			os.Remove(path)
		}
	}
	return nil
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
