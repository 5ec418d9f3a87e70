package layout

import "github.com/specatlas/specatlas/pkg/render"

// bounds returns the bounding box of node positions.
// Degenerate for an empty slice; callers check length first.
func bounds(nodes []render.Node) (minX, minY, maxX, maxY float64) {
	if len(nodes) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = nodes[0].X, nodes[0].Y
	maxX, maxY = nodes[0].X, nodes[0].Y
	for _, n := range nodes[1:] {
		if n.X < minX {
			minX = n.X
		}
		if n.Y < minY {
			minY = n.Y
		}
		if n.X > maxX {
			maxX = n.X
		}
		if n.Y > maxY {
			maxY = n.Y
		}
	}
	return minX, minY, maxX, maxY
}

// normalize shifts all positions so the minimum lands at (originX, originY).
// Both strategies run this last, so coordinates handed to the rendering
// collaborator are always non-negative with a fixed offset.
func normalize(nodes []render.Node, originX, originY float64) {
	if len(nodes) == 0 {
		return
	}
	minX, minY, _, _ := bounds(nodes)
	for i := range nodes {
		nodes[i].X += originX - minX
		nodes[i].Y += originY - minY
	}
}
