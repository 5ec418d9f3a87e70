package share

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/specatlas/specatlas/pkg/graph"
	"github.com/specatlas/specatlas/pkg/view"
)

func testLink(ttl time.Duration) *Link {
	state := view.State{
		Statuses: []string{graph.StatusInProgress},
		FocusID:  "auth",
	}
	return New("roadmap", state, ttl)
}

func TestNew(t *testing.T) {
	link := testLink(time.Hour)

	if link.ID == "" {
		t.Error("link has no ID")
	}
	if link.GraphName != "roadmap" {
		t.Errorf("GraphName = %q", link.GraphName)
	}
	if link.State.FocusID != "auth" {
		t.Errorf("State.FocusID = %q", link.State.FocusID)
	}
	if link.IsExpired() {
		t.Error("fresh link should not be expired")
	}
	if got := link.ExpiresAt.Sub(link.CreatedAt); got != time.Hour {
		t.Errorf("ttl = %v, want 1h", got)
	}

	// Zero TTL selects the default.
	link = testLink(0)
	if got := link.ExpiresAt.Sub(link.CreatedAt); got != DefaultTTL {
		t.Errorf("default ttl = %v, want %v", got, DefaultTTL)
	}

	// IDs are unique.
	if testLink(time.Hour).ID == testLink(time.Hour).ID {
		t.Error("two links share an ID")
	}
}

func testStoreBehavior(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	got, err := s.Get(ctx, "absent")
	if err != nil || got != nil {
		t.Errorf("Get(absent) = %v, %v; want nil, nil", got, err)
	}

	link := testLink(time.Hour)
	if err := s.Set(ctx, link); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err = s.Get(ctx, link.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.GraphName != "roadmap" || got.State.FocusID != "auth" {
		t.Errorf("Get = %+v", got)
	}

	if err := s.Delete(ctx, link.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, _ := s.Get(ctx, link.ID); got != nil {
		t.Error("Get after Delete should be nil")
	}
}

func testStoreExpiry(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	expired := testLink(time.Hour)
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	if err := s.Set(ctx, expired); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got, _ := s.Get(ctx, expired.ID); got != nil {
		t.Error("expired link should read as absent")
	}

	live := testLink(time.Hour)
	if err := s.Set(ctx, live); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if got, _ := s.Get(ctx, live.ID); got == nil {
		t.Error("Cleanup removed a live link")
	}
}

func TestMemoryStore(t *testing.T) {
	testStoreBehavior(t, NewMemoryStore())
	testStoreExpiry(t, NewMemoryStore())
}

func TestMemoryStoreCopySemantics(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	link := testLink(time.Hour)
	if err := s.Set(ctx, link); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Mutating the caller's copy must not affect the stored link.
	link.GraphName = "mutated"
	got, _ := s.Get(ctx, link.ID)
	if got.GraphName != "roadmap" {
		t.Errorf("stored link mutated: %q", got.GraphName)
	}
}

func TestFileStore(t *testing.T) {
	newStore := func(t *testing.T) Store {
		s, err := NewFileStore(t.TempDir())
		if err != nil {
			t.Fatalf("NewFileStore: %v", err)
		}
		return s
	}
	testStoreBehavior(t, newStore(t))
	testStoreExpiry(t, newStore(t))
}

func TestFileStoreRejectsMalformedIDs(t *testing.T) {
	root := t.TempDir()
	s, err := NewFileStore(filepath.Join(root, "shares"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	// A sibling file outside the share directory. Any JSON that is not a
	// link decodes with a zero expiry, so a traversal ID that reached it
	// would read it and could tear it down as expired.
	outside := filepath.Join(root, "secret.json")
	if err := os.WriteFile(outside, []byte(`{"credentials":"hunter2"}`), 0600); err != nil {
		t.Fatalf("write outside file: %v", err)
	}

	for _, id := range []string{"../secret", "..", ".", "", "a/b", `a\b`} {
		got, err := s.Get(ctx, id)
		if err != nil || got != nil {
			t.Errorf("Get(%q) = %v, %v; want nil, nil", id, got, err)
		}
		if err := s.Delete(ctx, id); err != nil {
			t.Errorf("Delete(%q) = %v", id, err)
		}
	}

	if _, err := os.Stat(outside); err != nil {
		t.Fatalf("file outside the share dir was touched: %v", err)
	}

	link := testLink(time.Hour)
	link.ID = "../secret"
	if err := s.Set(ctx, link); err == nil {
		t.Error("Set with a traversal ID should fail")
	}
}

func TestFileStoreGetLeavesExpiredFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	expired := testLink(time.Hour)
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	if err := s.Set(ctx, expired); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Get reports the link absent but leaves removal to Cleanup.
	if got, _ := s.Get(ctx, expired.ID); got != nil {
		t.Error("expired link should read as absent")
	}
	if _, err := os.Stat(filepath.Join(dir, expired.ID+".json")); err != nil {
		t.Errorf("Get should not remove the expired file: %v", err)
	}

	if err := s.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, expired.ID+".json")); !os.IsNotExist(err) {
		t.Errorf("Cleanup should remove the expired file, stat err = %v", err)
	}
}
