package view

import (
	"context"
	"testing"

	"github.com/specatlas/specatlas/pkg/cache"
	"github.com/specatlas/specatlas/pkg/graph"
	"github.com/specatlas/specatlas/pkg/layout"
)

func testSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	snap, err := NewSnapshot(graph.Graph{
		Nodes: []graph.Node{
			{ID: "a", Name: "Alpha", Status: graph.StatusComplete},
			{ID: "b", Name: "Beta", Status: graph.StatusInProgress},
			{ID: "c", Name: "Gamma", Status: graph.StatusPlanned},
			{ID: "d", Name: "Delta", Status: graph.StatusPlanned},
		},
		Edges: []graph.Edge{
			{From: "a", To: "b"},
			{From: "b", To: "c"},
		},
	})
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}
	return snap
}

func TestNewSnapshotHashStable(t *testing.T) {
	first := testSnapshot(t)
	second := testSnapshot(t)
	if first.Hash != second.Hash {
		t.Error("identical graphs produced different hashes")
	}

	other, err := NewSnapshot(graph.Graph{Nodes: []graph.Node{{ID: "x"}}})
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}
	if other.Hash == first.Hash {
		t.Error("different graphs produced the same hash")
	}
}

func TestRunUnfocused(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Run(context.Background(), testSnapshot(t), State{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// d is standalone and hidden by default.
	if result.Timings.NodeCount != 3 {
		t.Errorf("nodes = %d, want 3", result.Timings.NodeCount)
	}
	if result.Details != nil {
		t.Error("unfocused pass should carry no details")
	}
	if result.Stats.Connected != 3 || result.Stats.Standalone != 1 {
		t.Errorf("stats = %+v", result.Stats)
	}
	for _, n := range result.Nodes {
		if n.X < 0 || n.Y < 0 {
			t.Errorf("node %s at (%v,%v), want non-negative", n.ID, n.X, n.Y)
		}
	}
}

func TestRunFocused(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Run(context.Background(), testSnapshot(t), State{FocusID: "b"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Details == nil {
		t.Fatal("focused pass should carry details")
	}
	if result.Details.Node.ID != "b" {
		t.Errorf("details node = %q, want b", result.Details.Node.ID)
	}

	for _, n := range result.Nodes {
		if n.ID == "b" && !n.Focused {
			t.Error("focus node not marked focused")
		}
	}
}

func TestRunFiltered(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	// Filtering to complete matches only a; expansion pulls the whole chain.
	result, err := runner.Run(context.Background(), testSnapshot(t), State{
		Statuses: []string{graph.StatusComplete},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Timings.NodeCount != 3 {
		t.Errorf("nodes = %d, want expanded chain of 3", result.Timings.NodeCount)
	}
	secondary := 0
	for _, n := range result.Nodes {
		if n.Secondary {
			secondary++
		}
	}
	if secondary != 2 {
		t.Errorf("secondary nodes = %d, want 2 (b and c)", secondary)
	}
}

func TestRunInvalidState(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	if _, err := runner.Run(context.Background(), testSnapshot(t), State{Mode: "radial"}); err == nil {
		t.Error("expected error for invalid mode")
	}
}

// TestRunFullRestore checks the restore property: after filtering and
// focusing, a pass with the zero filters reproduces the full-graph totals.
func TestRunFullRestore(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()
	ctx := context.Background()
	snap := testSnapshot(t)

	baseline, err := runner.Run(ctx, snap, State{ShowStandalone: true})
	if err != nil {
		t.Fatalf("baseline: %v", err)
	}

	// Narrow, then restore.
	if _, err := runner.Run(ctx, snap, State{Statuses: []string{graph.StatusPlanned}, FocusID: "c"}); err != nil {
		t.Fatalf("narrowed: %v", err)
	}
	restored, err := runner.Run(ctx, snap, State{ShowStandalone: true})
	if err != nil {
		t.Fatalf("restored: %v", err)
	}

	if restored.Timings.NodeCount != baseline.Timings.NodeCount {
		t.Errorf("restored nodes = %d, want %d", restored.Timings.NodeCount, baseline.Timings.NodeCount)
	}
	if restored.Timings.EdgeCount != baseline.Timings.EdgeCount {
		t.Errorf("restored edges = %d, want %d", restored.Timings.EdgeCount, baseline.Timings.EdgeCount)
	}
	if restored.Stats != baseline.Stats {
		t.Errorf("restored stats = %+v, want %+v", restored.Stats, baseline.Stats)
	}
}

func TestRunBaseLayoutOptions(t *testing.T) {
	ctx := context.Background()
	snap := testSnapshot(t)

	runner := NewRunner(nil, nil, nil)
	runner.Layout = layout.Options{RankGap: 300}
	defer runner.Close()

	result, err := runner.Run(ctx, snap, State{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Chain a→b→c, widened rank gap: each rank starts NodeWidth+300 after
	// the previous one instead of the default NodeWidth+120.
	wantX := map[string]float64{
		"a": layout.DefaultMargin,
		"b": layout.DefaultMargin + layout.NodeWidth + 300,
		"c": layout.DefaultMargin + 2*(layout.NodeWidth+300),
	}
	for _, n := range result.Nodes {
		if want, ok := wantX[n.ID]; ok && n.X != want {
			t.Errorf("node %s X = %v, want %v", n.ID, n.X, want)
		}
	}
}

func TestRunBaseModeAndOverride(t *testing.T) {
	ctx := context.Background()
	snap := testSnapshot(t)

	// The base mode applies when the state leaves mode unset, so an invalid
	// base surfaces as a layout error.
	broken := NewRunner(nil, nil, nil)
	broken.Layout = layout.Options{Mode: "radial"}
	defer broken.Close()
	if _, err := broken.Run(ctx, snap, State{}); err == nil {
		t.Error("invalid base mode should fail the pass")
	}

	// A mode in the state overrides the base.
	if _, err := broken.Run(ctx, snap, State{Mode: layout.ModeForce}); err != nil {
		t.Errorf("state mode should override the base, got %v", err)
	}
}

func TestRunBaseOptionsSeparateCacheEntries(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	t.Cleanup(func() { fc.Close() })
	ctx := context.Background()
	snap := testSnapshot(t)

	def := NewRunner(fc, nil, nil)
	if _, err := def.Run(ctx, snap, State{}); err != nil {
		t.Fatalf("default run: %v", err)
	}

	// Same graph and state under different tuning must not reuse the entry.
	tuned := NewRunner(fc, nil, nil)
	tuned.Layout = layout.Options{RankGap: 300}
	result, err := tuned.Run(ctx, snap, State{})
	if err != nil {
		t.Fatalf("tuned run: %v", err)
	}
	if result.Timings.CacheHit {
		t.Error("tuned run served a result cached under different spacing")
	}
}

func TestRunCacheHit(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()
	ctx := context.Background()
	snap := testSnapshot(t)
	state := State{Mode: layout.ModeForce}

	first, err := runner.Run(ctx, snap, state)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Timings.CacheHit {
		t.Error("first run should be a miss")
	}

	second, err := runner.Run(ctx, snap, state)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second.Timings.CacheHit {
		t.Error("second run should hit the cache")
	}
	if len(second.Nodes) != len(first.Nodes) {
		t.Errorf("cached nodes = %d, want %d", len(second.Nodes), len(first.Nodes))
	}

	// A different state must not hit the same entry.
	third, err := runner.Run(ctx, snap, State{Mode: layout.ModeForce, Compact: true})
	if err != nil {
		t.Fatalf("third run: %v", err)
	}
	if third.Timings.CacheHit {
		t.Error("different state should miss")
	}
}
