package traverse

import (
	"slices"

	"github.com/specatlas/specatlas/pkg/graph"
)

// DepthGroup holds the nodes discovered at one BFS depth from the focus,
// sorted by ID for stable presentation.
type DepthGroup struct {
	Depth int          `json:"depth"`
	Specs []graph.Node `json:"specs"`
}

// FocusDetails describes the focused node's transitive relationships for the
// detail panel: upstream follows dependsOn edges out of the focus (what it
// depends on), downstream follows them inward (what depends on it). Both
// sequences are ordered by increasing depth, starting at depth 1.
type FocusDetails struct {
	Node       graph.Node   `json:"node"`
	Upstream   []DepthGroup `json:"upstream"`
	Downstream []DepthGroup `json:"downstream"`
}

// Details derives the depth-grouped upstream and downstream sets for a focus
// node by running independent, uncapped BFS in each edge direction.
// Direction convention: upstream is what the focus depends on (its dependsOn
// targets, transitively), downstream is what depends on it. Focusing b in
// a→b→c yields upstream [c] and downstream [a].
// Returns nil if the focus ID is not in the graph.
func Details(x *graph.Index, focus string) *FocusDetails {
	n := x.Node(focus)
	if n == nil {
		return nil
	}
	return &FocusDetails{
		Node:       *n,
		Upstream:   directionalGroups(x, focus, x.Dependencies),
		Downstream: directionalGroups(x, focus, x.Dependents),
	}
}

// directionalGroups runs a level-synchronous BFS following only the supplied
// adjacency direction and buckets discovered nodes by depth.
func directionalGroups(x *graph.Index, start string, adjacent func(string) []string) []DepthGroup {
	seen := map[string]bool{start: true}
	frontier := []string{start}

	var groups []DepthGroup
	for depth := 1; len(frontier) > 0; depth++ {
		var next []string
		for _, id := range frontier {
			for _, adj := range adjacent(id) {
				if seen[adj] {
					continue
				}
				seen[adj] = true
				next = append(next, adj)
			}
		}
		if len(next) == 0 {
			break
		}
		slices.Sort(next)

		specs := make([]graph.Node, 0, len(next))
		for _, id := range next {
			specs = append(specs, *x.Node(id))
		}
		groups = append(groups, DepthGroup{Depth: depth, Specs: specs})
		frontier = next
	}

	return groups
}
