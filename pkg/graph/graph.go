package graph

import (
	"fmt"
	"io"
	"os"
	"slices"
)

// =============================================================================
// Index - Adjacency-Indexed Snapshot
// =============================================================================

// Index is an immutable, adjacency-indexed view of a Graph snapshot.
// Build one with [NewIndex] whenever a new snapshot arrives; all traversal
// and layout code reads through it.
//
// Edges whose endpoints reference unknown node IDs are silently dropped at
// build time rather than failing the snapshot - partial graphs are a normal
// transient loading state. DroppedEdges reports how many were discarded.
//
// Index is safe for concurrent readers; it is never mutated after NewIndex
// returns.
type Index struct {
	nodes map[string]*Node
	order []string // node IDs sorted for deterministic iteration

	edges      []Edge              // valid edges, malformed ones removed
	dependsOn  map[string][]string // from -> dependsOn targets
	dependents map[string][]string // to -> dependsOn sources
	neighbors  map[string][]string // undirected dependsOn adjacency

	dropped int
}

// NewIndex builds an adjacency index over a graph snapshot.
func NewIndex(g Graph) *Index {
	idx := &Index{
		nodes:      make(map[string]*Node, len(g.Nodes)),
		dependsOn:  make(map[string][]string),
		dependents: make(map[string][]string),
		neighbors:  make(map[string][]string),
	}

	for i := range g.Nodes {
		n := g.Nodes[i]
		if _, exists := idx.nodes[n.ID]; exists {
			continue // first occurrence wins; IDs are unique by contract
		}
		idx.nodes[n.ID] = &n
		idx.order = append(idx.order, n.ID)
	}
	slices.Sort(idx.order)

	for _, e := range g.Edges {
		if _, ok := idx.nodes[e.From]; !ok {
			idx.dropped++
			continue
		}
		if _, ok := idx.nodes[e.To]; !ok {
			idx.dropped++
			continue
		}
		idx.edges = append(idx.edges, e)
		if e.IsDependsOn() {
			idx.dependsOn[e.From] = append(idx.dependsOn[e.From], e.To)
			idx.dependents[e.To] = append(idx.dependents[e.To], e.From)
			idx.neighbors[e.From] = append(idx.neighbors[e.From], e.To)
			idx.neighbors[e.To] = append(idx.neighbors[e.To], e.From)
		}
	}

	return idx
}

// Node returns the node with the given ID, or nil if absent.
func (x *Index) Node(id string) *Node { return x.nodes[id] }

// HasNode reports whether a node with the given ID exists.
func (x *Index) HasNode(id string) bool { return x.nodes[id] != nil }

// Nodes returns all nodes sorted by ID. The slice is freshly allocated;
// the pointed-to nodes are shared and must not be mutated.
func (x *Index) Nodes() []*Node {
	out := make([]*Node, len(x.order))
	for i, id := range x.order {
		out[i] = x.nodes[id]
	}
	return out
}

// NodeIDs returns all node IDs sorted ascending.
func (x *Index) NodeIDs() []string { return slices.Clone(x.order) }

// Edges returns all valid edges (dependsOn and related) in input order.
func (x *Index) Edges() []Edge { return slices.Clone(x.edges) }

// DependsOnEdges returns the valid dependsOn edges in input order.
func (x *Index) DependsOnEdges() []Edge {
	out := make([]Edge, 0, len(x.edges))
	for _, e := range x.edges {
		if e.IsDependsOn() {
			out = append(out, e)
		}
	}
	return out
}

// Dependencies returns the dependsOn targets of a node (what it points to).
func (x *Index) Dependencies(id string) []string { return x.dependsOn[id] }

// Dependents returns the dependsOn sources pointing at a node.
func (x *Index) Dependents(id string) []string { return x.dependents[id] }

// Neighbors returns the undirected dependsOn adjacency of a node.
// A node appears once per edge, so parallel edges yield duplicates.
func (x *Index) Neighbors(id string) []string { return x.neighbors[id] }

// Degree returns the number of dependsOn edges touching a node.
func (x *Index) Degree(id string) int { return len(x.neighbors[id]) }

// NodeCount returns the number of nodes.
func (x *Index) NodeCount() int { return len(x.nodes) }

// EdgeCount returns the number of valid edges of all kinds.
func (x *Index) EdgeCount() int { return len(x.edges) }

// DroppedEdges returns the number of malformed edges discarded at build.
func (x *Index) DroppedEdges() int { return x.dropped }

// Stats counts connected (≥1 dependsOn edge) vs standalone nodes.
func (x *Index) Stats() ConnectionStats {
	var s ConnectionStats
	for _, id := range x.order {
		if len(x.neighbors[id]) > 0 {
			s.Connected++
		} else {
			s.Standalone++
		}
	}
	return s
}

// =============================================================================
// File I/O
// =============================================================================

// ReadGraph decodes a JSON graph from an io.Reader.
func ReadGraph(r io.Reader) (Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Graph{}, fmt.Errorf("read graph: %w", err)
	}
	return UnmarshalGraph(data)
}

// ReadGraphFile reads a JSON file and returns the decoded Graph.
func ReadGraphFile(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

// WriteGraph writes a Graph as deterministic JSON to an io.Writer.
func WriteGraph(g Graph, w io.Writer) error {
	data, err := MarshalGraph(g)
	if err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// WriteGraphFile writes a Graph to a JSON file with 0644 permissions.
func WriteGraphFile(g Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}
