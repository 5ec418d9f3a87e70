package layout

import (
	"fmt"

	"github.com/specatlas/specatlas/pkg/render"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// View modes selecting the layout strategy.
const (
	ModeHierarchical = "hierarchical"
	ModeForce        = "force"
)

// ValidModes is the set of supported view modes.
var ValidModes = map[string]bool{
	ModeHierarchical: true,
	ModeForce:        true,
}

// Node size presets. Fixed sizes keep rank geometry and collision radii
// independent of label content.
const (
	NodeWidth  = 180.0
	NodeHeight = 56.0

	CompactNodeWidth  = 120.0
	CompactNodeHeight = 36.0
)

// Spacing defaults.
const (
	DefaultRankGap = 120.0 // horizontal gap between ranks (hierarchical)
	DefaultNodeGap = 32.0  // vertical gap between nodes in a rank
	DefaultMargin  = 40.0  // non-negative origin offset after normalization
	gridGap        = 24.0  // gap between cells in the standalone grid
	gridPadding    = 80.0  // clearance between main arrangement and the grid
)

// ValidateMode checks that a view mode is supported.
func ValidateMode(mode string) error {
	if !ValidModes[mode] {
		return fmt.Errorf("invalid mode: %q (must be one of: hierarchical, force)", mode)
	}
	return nil
}

// NodeSize returns the preset node dimensions for the given presentation.
func NodeSize(compact bool) (w, h float64) {
	if compact {
		return CompactNodeWidth, CompactNodeHeight
	}
	return NodeWidth, NodeHeight
}

// =============================================================================
// Options
// =============================================================================

// Options configures a layout computation. The zero value selects
// hierarchical mode with default spacing.
type Options struct {
	// Mode selects the strategy; empty defaults to hierarchical.
	Mode string `json:"mode,omitempty"`

	// Compact switches to the compact node size preset.
	Compact bool `json:"compact,omitempty"`

	// RankGap and NodeGap control hierarchical spacing; zero selects the
	// defaults.
	RankGap float64 `json:"rank_gap,omitempty"`
	NodeGap float64 `json:"node_gap,omitempty"`

	// Margin is the normalized origin offset; zero selects DefaultMargin.
	Margin float64 `json:"margin,omitempty"`

	// Iterations overrides the force step count; zero means size-adaptive.
	Iterations int `json:"iterations,omitempty"`
}

func (o Options) mode() string {
	if o.Mode == "" {
		return ModeHierarchical
	}
	return o.Mode
}

func (o Options) rankGap() float64 {
	if o.RankGap == 0 {
		return DefaultRankGap
	}
	return o.RankGap
}

func (o Options) nodeGap() float64 {
	if o.NodeGap == 0 {
		return DefaultNodeGap
	}
	return o.NodeGap
}

func (o Options) margin() float64 {
	if o.Margin == 0 {
		return DefaultMargin
	}
	return o.Margin
}

// =============================================================================
// Strategy
// =============================================================================

// Strategy positions a render set. Implementations must be pure and
// deterministic: they return a positioned copy and never mutate the input.
type Strategy interface {
	// Name returns the view mode this strategy serves.
	Name() string

	// Apply computes positions for the given nodes. Edges describe the
	// connectivity the strategy may use; they are not modified.
	Apply(nodes []render.Node, edges []render.Edge, opts Options) []render.Node
}

// Select returns the strategy for a view mode.
func Select(mode string) (Strategy, error) {
	switch mode {
	case "", ModeHierarchical:
		return Hierarchical{}, nil
	case ModeForce:
		return Force{}, nil
	default:
		return nil, fmt.Errorf("invalid mode: %q (must be one of: hierarchical, force)", mode)
	}
}

// Compute selects a strategy from opts and applies it. An empty node set
// yields an empty result, never an error.
func Compute(nodes []render.Node, edges []render.Edge, opts Options) ([]render.Node, error) {
	strategy, err := Select(opts.mode())
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return []render.Node{}, nil
	}
	return strategy.Apply(nodes, edges, opts), nil
}

// splitStandalone partitions nodes by dependsOn participation in the given
// edge set. Order within each partition follows the input order.
func splitStandalone(nodes []render.Node, edges []render.Edge) (connected, standalone []render.Node) {
	degree := make(map[string]int)
	for _, e := range edges {
		if e.IsDependsOn() {
			degree[e.From]++
			degree[e.To]++
		}
	}
	for _, n := range nodes {
		if degree[n.ID] > 0 {
			connected = append(connected, n)
		} else {
			standalone = append(standalone, n)
		}
	}
	return connected, standalone
}
