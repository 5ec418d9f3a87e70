package traverse

import "github.com/specatlas/specatlas/pkg/graph"

// Expansion is the result of critical-path expansion: the primary filter
// match plus every node transitively connected to it through dependsOn edges.
type Expansion struct {
	// IDs is the expanded node set.
	IDs map[string]bool

	// Secondary marks nodes pulled in only to preserve a dependency chain,
	// i.e. members of IDs that were not in the primary set.
	Secondary map[string]bool

	// Edges is the dependsOn edge set restricted to expanded endpoints.
	Edges []graph.Edge
}

// Contains reports whether a node is part of the expanded set.
func (e Expansion) Contains(id string) bool { return e.IDs[id] }

// Expand grows a primary node subset (the nodes matching active filters) to
// include every node reachable from it through dependsOn edges in either
// direction, with no hop limit. Without this, filtering by status would
// visually sever dependency chains that cross a filtered-out node.
//
// The search is a multi-source worklist seeded by all primary nodes at once;
// a node joins the set the first time it is discovered and then continues the
// search. Expand is idempotent: re-running it with its own output as the
// primary set returns the same expanded set.
//
// Primary IDs absent from the graph are ignored.
func Expand(x *graph.Index, primary map[string]bool) Expansion {
	exp := Expansion{
		IDs:       make(map[string]bool, len(primary)),
		Secondary: make(map[string]bool),
	}

	worklist := make([]string, 0, len(primary))
	for _, id := range x.NodeIDs() {
		if primary[id] {
			exp.IDs[id] = true
			worklist = append(worklist, id)
		}
	}

	for len(worklist) > 0 {
		id := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		for _, nb := range x.Neighbors(id) {
			if exp.IDs[nb] {
				continue
			}
			exp.IDs[nb] = true
			exp.Secondary[nb] = true
			worklist = append(worklist, nb)
		}
	}

	for _, e := range x.DependsOnEdges() {
		if exp.IDs[e.From] && exp.IDs[e.To] {
			exp.Edges = append(exp.Edges, e)
		}
	}

	return exp
}
