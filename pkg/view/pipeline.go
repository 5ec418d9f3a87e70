package view

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/specatlas/specatlas/pkg/cache"
	"github.com/specatlas/specatlas/pkg/graph"
	"github.com/specatlas/specatlas/pkg/graph/traverse"
	"github.com/specatlas/specatlas/pkg/layout"
	"github.com/specatlas/specatlas/pkg/observability"
	"github.com/specatlas/specatlas/pkg/render"
)

// =============================================================================
// Snapshot
// =============================================================================

// Snapshot bundles a graph with its adjacency index and content hash.
// Build one per incoming graph payload and reuse it across passes; the
// fetch collaborator owns refresh and supplies a new snapshot.
type Snapshot struct {
	Graph graph.Graph
	Index *graph.Index
	Hash  string
}

// NewSnapshot indexes and hashes a graph payload.
func NewSnapshot(g graph.Graph) (*Snapshot, error) {
	data, err := graph.MarshalGraph(g)
	if err != nil {
		return nil, fmt.Errorf("hash graph: %w", err)
	}
	return &Snapshot{
		Graph: g,
		Index: graph.NewIndex(g),
		Hash:  cache.Hash(data),
	}, nil
}

// =============================================================================
// Result
// =============================================================================

// Result is the complete output of one recomputation pass: positioned render
// sets plus the auxiliary panel data.
type Result struct {
	Nodes   []render.Node          `json:"nodes"`
	Edges   []render.Edge          `json:"edges"`
	Details *traverse.FocusDetails `json:"details,omitempty"`
	Stats   graph.ConnectionStats  `json:"stats"`

	Timings Timings `json:"timings"`
}

// Timings contains pass execution statistics.
type Timings struct {
	NodeCount    int           `json:"node_count"`
	EdgeCount    int           `json:"edge_count"`
	DroppedEdges int           `json:"dropped_edges,omitempty"`
	BuildTime    time.Duration `json:"build_time"`
	LayoutTime   time.Duration `json:"layout_time"`
	CacheHit     bool          `json:"cache_hit,omitempty"`
}

// =============================================================================
// Runner
// =============================================================================

// Runner executes recomputation passes with optional result caching.
// It is stateless apart from the cache and logger: multiple goroutines can
// share one Runner, and concurrent passes cannot race because every pass is
// pure over its snapshot.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Layout is the base layout options every pass starts from, typically
	// deployment tuning (spacing, iteration count, default mode). The view
	// state's mode and compact flag are applied on top. The zero value keeps
	// the engine defaults.
	Layout layout.Options
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects the default keyer, a nil logger selects log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Close releases the cache backend.
func (r *Runner) Close() error { return r.Cache.Close() }

// Run executes one complete pass: connectivity BFS, critical-path expansion,
// render-set building, and layout. The pass is synchronous and deterministic;
// the result wholly replaces any previous one.
func (r *Runner) Run(ctx context.Context, snap *Snapshot, state State) (*Result, error) {
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("invalid view state: %w", err)
	}

	passStart := time.Now()
	observability.Pipeline().OnPassStart(ctx, state.Mode, snap.Index.NodeCount())

	// The base layout options participate in the key so tuning changes
	// cannot serve results computed under old spacing.
	baseOpts, _ := json.Marshal(r.Layout)
	cacheKey := r.Keyer.LayoutKey(snap.Hash, cache.Hash(append(state.Canonical(), baseOpts...)))
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		var cached Result
		if err := json.Unmarshal(data, &cached); err == nil {
			observability.CacheEvents().OnCacheHit(ctx, "layout")
			cached.Timings.CacheHit = true
			observability.Pipeline().OnPassComplete(ctx, state.Mode, time.Since(passStart), nil)
			return &cached, nil
		}
	}
	observability.CacheEvents().OnCacheMiss(ctx, "layout")

	result, err := r.compute(ctx, snap, state)
	observability.Pipeline().OnPassComplete(ctx, state.Mode, time.Since(passStart), err)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(result); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.CacheEvents().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return result, nil
}

func (r *Runner) compute(ctx context.Context, snap *Snapshot, state State) (*Result, error) {
	idx := snap.Index

	// Connectivity from the focus. An absent focus node yields an empty
	// depth map, which downstream treats as "everything unreachable".
	var depths map[string]int
	if state.Focused() {
		depths = traverse.Depths(idx, state.FocusID, state.MaxDepth)
	}

	// Critical-path expansion of the filter match. Without active filters
	// the expansion is the whole graph, so skip the traversal.
	var include, secondary map[string]bool
	if state.Filtered() {
		primary := make(map[string]bool)
		for _, n := range idx.Nodes() {
			if state.Matches(n) {
				primary[n.ID] = true
			}
		}
		exp := traverse.Expand(idx, primary)
		include, secondary = exp.IDs, exp.Secondary
	}

	buildStart := time.Now()
	nodes, edges := render.Build(idx, render.Options{
		Include:        include,
		Secondary:      secondary,
		FocusID:        state.FocusID,
		Depths:         depths,
		Compact:        state.Compact,
		ShowStandalone: state.ShowStandalone,
		IncludeRelated: state.IncludeRelated,
	})
	buildTime := time.Since(buildStart)

	layoutOpts := r.Layout
	if state.Mode != "" {
		layoutOpts.Mode = state.Mode
	}
	layoutOpts.Compact = state.Compact

	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, state.Mode, len(nodes))
	positioned, err := layout.Compute(nodes, edges, layoutOpts)
	layoutTime := time.Since(layoutStart)
	observability.Pipeline().OnLayoutComplete(ctx, state.Mode, layoutTime, err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	result := &Result{
		Nodes: positioned,
		Edges: edges,
		Stats: idx.Stats(),
		Timings: Timings{
			NodeCount:    len(positioned),
			EdgeCount:    len(edges),
			DroppedEdges: idx.DroppedEdges(),
			BuildTime:    buildTime,
			LayoutTime:   layoutTime,
		},
	}
	if state.Focused() {
		result.Details = traverse.Details(idx, state.FocusID)
	}

	r.Logger.Debug("completed pass",
		"mode", state.Mode,
		"nodes", len(positioned),
		"edges", len(edges),
		"build", buildTime,
		"layout", layoutTime)

	return result, nil
}
