package layout

import (
	"slices"

	"github.com/specatlas/specatlas/pkg/render"
)

// Hierarchical arranges connected nodes in ranked left-to-right order
// following the dependsOn direction: a node's dependencies sit in ranks to
// its right, so dependency flow reads left to right.
//
// The algorithm is the classic layered pipeline: longest-path rank
// assignment via topological traversal, barycenter ordering within ranks to
// reduce crossings, then fixed-geometry coordinates. Standalone nodes go
// into the grid below the hierarchy's bounding box.
type Hierarchical struct{}

// Name returns the view mode this strategy serves.
func (Hierarchical) Name() string { return ModeHierarchical }

// orderingSweeps is the number of barycenter passes (down then up per sweep).
// Two sweeps settle orderings for graphs of this size; more passes trade
// determinism-preserving work for marginal crossing gains.
const orderingSweeps = 2

// Apply computes hierarchical positions. The input slices are not modified.
func (h Hierarchical) Apply(nodes []render.Node, edges []render.Edge, opts Options) []render.Node {
	connected, standalone := splitStandalone(nodes, edges)
	if len(connected) > 0 {
		h.arrange(connected, edges, opts)
	}

	normalize(connected, opts.margin(), opts.margin())

	if len(standalone) > 0 {
		w, hgt := NodeSize(opts.Compact)
		top := opts.margin()
		if len(connected) > 0 {
			_, _, _, maxY := bounds(connected)
			top = maxY + hgt + gridPadding
		}
		placeGrid(standalone, w, hgt, gridGap, opts.margin(), top)
	}

	return reassemble(nodes, connected, standalone)
}

// arrange positions the connected subgraph in place.
func (h Hierarchical) arrange(nodes []render.Node, edges []render.Edge, opts Options) {
	present := make(map[string]int, len(nodes)) // id -> index into nodes
	for i, n := range nodes {
		present[n.ID] = i
	}

	// Directed dependsOn adjacency restricted to the connected subgraph.
	// An edge From -> To means From depends on To, so To ranks to the right.
	children := make(map[string][]string)
	parents := make(map[string][]string)
	for _, e := range edges {
		if !e.IsDependsOn() {
			continue
		}
		if _, ok := present[e.From]; !ok {
			continue
		}
		if _, ok := present[e.To]; !ok {
			continue
		}
		children[e.From] = append(children[e.From], e.To)
		parents[e.To] = append(parents[e.To], e.From)
	}

	ranks := assignRanks(nodes, children, parents)
	order := orderRanks(nodes, ranks, children, parents)

	w, hgt := NodeSize(opts.Compact)
	rankGap, nodeGap := opts.rankGap(), opts.nodeGap()

	// Tallest rank defines the vertical extent; shorter ranks are centered.
	tallest := 0
	for _, ids := range order {
		if len(ids) > tallest {
			tallest = len(ids)
		}
	}
	total := float64(tallest)*hgt + float64(tallest-1)*nodeGap

	for rank, ids := range order {
		extent := float64(len(ids))*hgt + float64(len(ids)-1)*nodeGap
		offset := (total - extent) / 2
		for i, id := range ids {
			n := &nodes[present[id]]
			n.X = float64(rank) * (w + rankGap)
			n.Y = offset + float64(i)*(hgt+nodeGap)
		}
	}
}

// assignRanks computes longest-path ranks with Kahn's algorithm: sources
// (nodes nothing depends on... i.e. with no incoming dependsOn edges from
// the left) start at rank 0 and every node lands one past its deepest
// parent. Nodes trapped in cycles never reach zero in-degree and keep their
// default rank 0, which degrades gracefully instead of failing.
func assignRanks(nodes []render.Node, children, parents map[string][]string) map[string]int {
	ranks := make(map[string]int, len(nodes))
	inDegree := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, n := range nodes {
		degree := len(parents[n.ID])
		inDegree[n.ID] = degree
		if degree == 0 {
			queue = append(queue, n.ID)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range children[curr] {
			if rank := ranks[curr] + 1; rank > ranks[child] {
				ranks[child] = rank
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	return ranks
}

// orderRanks produces the within-rank orderings. Initial order follows the
// input node order; barycenter sweeps then pull each node toward the mean
// position of its neighbors in the adjacent rank. Ties keep the previous
// relative order (stable sort), so the result is deterministic.
func orderRanks(nodes []render.Node, ranks map[string]int, children, parents map[string][]string) map[int][]string {
	order := make(map[int][]string)
	maxRank := 0
	for _, n := range nodes {
		r := ranks[n.ID]
		order[r] = append(order[r], n.ID)
		if r > maxRank {
			maxRank = r
		}
	}

	for sweep := 0; sweep < orderingSweeps; sweep++ {
		for r := 1; r <= maxRank; r++ {
			sortByBarycenter(order[r], order[r-1], parents)
		}
		for r := maxRank - 1; r >= 0; r-- {
			sortByBarycenter(order[r], order[r+1], children)
		}
	}

	return order
}

// sortByBarycenter stably reorders row by the mean position of each node's
// neighbors in the adjacent row. Nodes without neighbors there keep their
// current position value, anchoring them in place.
func sortByBarycenter(row, adjacent []string, neighbors map[string][]string) {
	pos := make(map[string]int, len(adjacent))
	for i, id := range adjacent {
		pos[id] = i
	}

	weights := make(map[string]float64, len(row))
	for i, id := range row {
		sum, count := 0.0, 0
		for _, nb := range neighbors[id] {
			if p, ok := pos[nb]; ok {
				sum += float64(p)
				count++
			}
		}
		if count > 0 {
			weights[id] = sum / float64(count)
		} else {
			weights[id] = float64(i)
		}
	}

	slices.SortStableFunc(row, func(a, b string) int {
		if weights[a] < weights[b] {
			return -1
		}
		if weights[a] > weights[b] {
			return 1
		}
		return 0
	})
}
