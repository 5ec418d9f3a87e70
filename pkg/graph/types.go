package graph

import (
	"encoding/json"
	"fmt"
	"slices"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Lifecycle statuses for specification nodes.
const (
	StatusPlanned    = "planned"
	StatusInProgress = "in-progress"
	StatusComplete   = "complete"
	StatusArchived   = "archived"
)

// Edge kinds.
const (
	// EdgeDependsOn marks a hard dependency: the source specification is not
	// considered complete without the target. Only dependsOn edges participate
	// in traversal, connectivity, and hierarchical layout.
	EdgeDependsOn = "dependsOn"

	// EdgeRelated marks a soft cross-reference. Related edges are ignored by
	// the core and only drawn in network-exploration views.
	EdgeRelated = "related"
)

// ValidStatuses is the set of recognized lifecycle statuses.
var ValidStatuses = map[string]bool{
	StatusPlanned:    true,
	StatusInProgress: true,
	StatusComplete:   true,
	StatusArchived:   true,
}

// ValidateStatus checks that a status string is recognized.
func ValidateStatus(status string) error {
	if !ValidStatuses[status] {
		return fmt.Errorf("invalid status: %q (must be one of: planned, in-progress, complete, archived)", status)
	}
	return nil
}

// =============================================================================
// Graph - Specification Graph Serialization
// =============================================================================

// Graph is the canonical serialization format for specification graphs.
// Used for API payloads, storage, caching, and cross-tool compatibility.
//
// Neither slice carries ordering guarantees; build an [Index] for stable,
// validated access.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is a single specification document. Nodes are externally supplied and
// immutable for the duration of a layout cycle.
type Node struct {
	ID       string   `json:"id" bson:"id"`
	Number   string   `json:"number,omitempty" bson:"number,omitempty"` // Display number, e.g. "SPEC-042"
	Name     string   `json:"name" bson:"name"`
	Status   string   `json:"status" bson:"status"`
	Priority int      `json:"priority,omitempty" bson:"priority,omitempty"`
	Tags     []string `json:"tags,omitempty" bson:"tags,omitempty"`
}

// DisplayName returns "Number Name" when a display number is set,
// otherwise the name alone.
func (n *Node) DisplayName() string {
	if n.Number != "" {
		return n.Number + " " + n.Name
	}
	return n.Name
}

// HasTag reports whether the node carries the given tag.
func (n *Node) HasTag(tag string) bool {
	return slices.Contains(n.Tags, tag)
}

// Edge represents a directed relationship between two specifications:
// From depends on To.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
	Kind string `json:"kind,omitempty" bson:"kind,omitempty"` // "dependsOn" (default) or "related"
}

// IsDependsOn reports whether the edge is a hard dependency.
// An empty kind defaults to dependsOn.
func (e Edge) IsDependsOn() bool { return e.Kind == "" || e.Kind == EdgeDependsOn }

// IsRelated reports whether the edge is a soft cross-reference.
func (e Edge) IsRelated() bool { return e.Kind == EdgeRelated }

// =============================================================================
// ConnectionStats
// =============================================================================

// ConnectionStats counts nodes by dependency participation: a node is
// connected when it has at least one valid dependsOn edge, standalone
// otherwise.
type ConnectionStats struct {
	Connected  int `json:"connected" bson:"connected"`
	Standalone int `json:"standalone" bson:"standalone"`
}

// Total returns the full node count.
func (s ConnectionStats) Total() int { return s.Connected + s.Standalone }

// =============================================================================
// Serialization
// =============================================================================

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, fmt.Errorf("unmarshal graph: %w", err)
	}
	return g, nil
}

// MarshalGraph serializes a Graph to pretty-printed JSON bytes with nodes
// sorted by ID and edges sorted by (from, to, kind) for deterministic output.
func MarshalGraph(g Graph) ([]byte, error) {
	out := Graph{
		Nodes: slices.Clone(g.Nodes),
		Edges: slices.Clone(g.Edges),
	}
	slices.SortFunc(out.Nodes, func(a, b Node) int {
		return compareStrings(a.ID, b.ID)
	})
	slices.SortFunc(out.Edges, func(a, b Edge) int {
		if c := compareStrings(a.From, b.From); c != 0 {
			return c
		}
		if c := compareStrings(a.To, b.To); c != 0 {
			return c
		}
		return compareStrings(a.Kind, b.Kind)
	})
	return json.MarshalIndent(out, "", "  ")
}

func compareStrings(a, b string) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
