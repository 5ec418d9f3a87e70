package render

import (
	"github.com/specatlas/specatlas/pkg/graph"
)

// Label budgets. Compact mode truncates to keep dense graphs readable;
// normal mode shows full names.
const compactLabelBudget = 24

// Node is a renderable specification node. Positions are zero until a layout
// engine fills them in; everything else is decided here.
type Node struct {
	graph.Node

	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`

	// Depth is the BFS hop count from the focus; present only when the node
	// is reachable from an active focus (HasDepth).
	Depth    int  `json:"depth,omitempty"`
	HasDepth bool `json:"has_depth,omitempty"`

	Dimmed    bool `json:"dimmed,omitempty"`
	Focused   bool `json:"focused,omitempty"`
	Secondary bool `json:"secondary,omitempty"`
	Compact   bool `json:"compact,omitempty"`
}

// Edge is a renderable dependency edge with its style hints resolved.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Kind string `json:"kind,omitempty"`

	Highlighted bool    `json:"highlighted,omitempty"`
	Animated    bool    `json:"animated,omitempty"`
	Opacity     float64 `json:"opacity"`
}

// IsDependsOn reports whether the edge is a hard dependency.
// An empty kind defaults to dependsOn, mirroring graph.Edge.
func (e Edge) IsDependsOn() bool { return e.Kind == "" || e.Kind == graph.EdgeDependsOn }

// Options selects and styles the render set.
type Options struct {
	// Include restricts output to this node set (typically a critical-path
	// expansion). Nil means every node.
	Include map[string]bool

	// Secondary marks nodes that are in the set only to preserve a chain.
	Secondary map[string]bool

	// FocusID is the active focus node; empty means unfocused.
	FocusID string

	// Depths is the connectivity map from the focus (ignored when FocusID
	// is empty).
	Depths map[string]int

	// Compact switches to compact node presentation with truncated labels.
	Compact bool

	// ShowStandalone keeps nodes with zero post-filter dependsOn edges.
	ShowStandalone bool

	// IncludeRelated also emits related edges (network-exploration views).
	IncludeRelated bool

	// Opacity overrides the edge opacity tiers; zero value selects
	// DefaultOpacityPolicy.
	Opacity OpacityPolicy
}

func (o Options) focusActive() bool { return o.FocusID != "" }

func (o Options) included(id string) bool {
	return o.Include == nil || o.Include[id]
}

func (o Options) policy() OpacityPolicy {
	if o.Opacity == (OpacityPolicy{}) {
		return DefaultOpacityPolicy
	}
	return o.Opacity
}

// Build assembles render nodes and edges from a graph snapshot and view
// options. Every output edge has both endpoints in the output node set.
func Build(x *graph.Index, opts Options) ([]Node, []Edge) {
	// Edges surviving the include filter, and the per-node dependsOn degree
	// after filtering. Standalone exclusion keys off this post-filter degree.
	var kept []graph.Edge
	degree := make(map[string]int)
	for _, e := range x.Edges() {
		if !opts.included(e.From) || !opts.included(e.To) {
			continue
		}
		if e.IsRelated() && !opts.IncludeRelated {
			continue
		}
		kept = append(kept, e)
		if e.IsDependsOn() {
			degree[e.From]++
			degree[e.To]++
		}
	}

	visible := make(map[string]bool)
	var nodes []Node
	for _, n := range x.Nodes() {
		if !opts.included(n.ID) {
			continue
		}
		if !opts.ShowStandalone && degree[n.ID] == 0 {
			continue
		}
		visible[n.ID] = true

		rn := Node{
			Node:      *n,
			Label:     nodeLabel(n, opts.Compact),
			Focused:   opts.focusActive() && n.ID == opts.FocusID,
			Secondary: opts.Secondary[n.ID],
			Compact:   opts.Compact,
		}
		if opts.focusActive() {
			if d, ok := opts.Depths[n.ID]; ok {
				rn.Depth = d
				rn.HasDepth = true
			} else {
				rn.Dimmed = true
			}
		}
		nodes = append(nodes, rn)
	}

	policy := opts.policy()
	var edges []Edge
	for _, e := range kept {
		if !visible[e.From] || !visible[e.To] {
			continue // endpoint excluded as standalone
		}
		fd, fok := opts.Depths[e.From]
		td, tok := opts.Depths[e.To]
		highlighted := opts.focusActive() && ((fok && fd == 0) || (tok && td == 0))
		edges = append(edges, Edge{
			From:        e.From,
			To:          e.To,
			Kind:        e.Kind,
			Highlighted: highlighted,
			Animated:    highlighted,
			Opacity:     policy.edgeOpacity(opts.focusActive(), fd, td, fok, tok),
		})
	}

	return nodes, edges
}

func nodeLabel(n *graph.Node, compact bool) string {
	label := n.DisplayName()
	if !compact {
		return label
	}
	runes := []rune(label)
	if len(runes) <= compactLabelBudget {
		return label
	}
	return string(runes[:compactLabelBudget-1]) + "…"
}
