package share

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory link store for development and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	links map[string]*Link
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{links: make(map[string]*Link)}
}

// Get retrieves a link by ID. Expired links are removed and reported absent.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Link, error) {
	s.mu.RLock()
	link, ok := s.links[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if link.IsExpired() {
		s.mu.Lock()
		delete(s.links, id)
		s.mu.Unlock()
		return nil, nil
	}
	cp := *link
	return &cp, nil
}

// Set stores a link.
func (s *MemoryStore) Set(ctx context.Context, link *Link) error {
	cp := *link
	s.mu.Lock()
	s.links[link.ID] = &cp
	s.mu.Unlock()
	return nil
}

// Delete removes a link.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.links, id)
	s.mu.Unlock()
	return nil
}

// Cleanup removes expired links.
func (s *MemoryStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, link := range s.links {
		if link.IsExpired() {
			delete(s.links, id)
		}
	}
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
