package layout

import (
	"math"

	"github.com/specatlas/specatlas/pkg/render"
)

// placeGrid lays nodes out in a deterministic row-major grid anchored at
// (left, top). The column count approximates a slightly-wide square:
// ceil(sqrt(1.5 × n)), so the auxiliary grid reads as a block rather than a
// strip. Mutates the given slice in place.
func placeGrid(nodes []render.Node, w, h, gap, left, top float64) {
	if len(nodes) == 0 {
		return
	}
	cols := int(math.Ceil(math.Sqrt(1.5 * float64(len(nodes)))))
	for i := range nodes {
		col := i % cols
		row := i / cols
		nodes[i].X = left + float64(col)*(w+gap)
		nodes[i].Y = top + float64(row)*(h+gap)
	}
}

// reassemble merges positioned partitions back into the original node order.
// Partition membership is keyed by node ID, which is unique per graph.
func reassemble(original, connected, standalone []render.Node) []render.Node {
	byID := make(map[string]render.Node, len(connected)+len(standalone))
	for _, n := range connected {
		byID[n.ID] = n
	}
	for _, n := range standalone {
		byID[n.ID] = n
	}

	out := make([]render.Node, len(original))
	for i, n := range original {
		out[i] = byID[n.ID]
	}
	return out
}
