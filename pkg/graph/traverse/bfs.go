package traverse

import "github.com/specatlas/specatlas/pkg/graph"

// Unbounded disables the depth cap for [Depths].
const Unbounded = 0

// Depths computes the minimum hop count from start to every reachable node,
// treating dependsOn edges as undirected - direction is irrelevant to "how
// many hops away". The start node maps to depth 0.
//
// The traversal is level-synchronous: every node at depth d is visited before
// any node at depth d+1, so each recorded depth is the unique shortest
// distance by construction. It stops when the frontier empties or, if
// maxDepth > 0, once that depth has been reached. Pass [Unbounded] for no cap.
//
// Unreachable nodes are simply absent from the result. A start ID not present
// in the graph yields an empty map rather than an error.
func Depths(x *graph.Index, start string, maxDepth int) map[string]int {
	depths := make(map[string]int)
	if !x.HasNode(start) {
		return depths
	}

	depths[start] = 0
	frontier := []string{start}

	for depth := 1; len(frontier) > 0; depth++ {
		if maxDepth > 0 && depth > maxDepth {
			break
		}
		var next []string
		for _, id := range frontier {
			for _, nb := range x.Neighbors(id) {
				if _, seen := depths[nb]; seen {
					continue
				}
				depths[nb] = depth
				next = append(next, nb)
			}
		}
		frontier = next
	}

	return depths
}
