package layout

import (
	"math"

	"github.com/specatlas/specatlas/pkg/render"
)

// Force arranges nodes by iterative physical simulation for exploratory
// network views. Edges act as springs (dependsOn shorter and stronger than
// related), nodes repel with strength scaled by their degree so hubs claim
// more room, a centering force keeps the cluster from drifting, and a
// collision pass enforces a minimum separation of one node width.
//
// The simulation runs a fixed, size-adaptive number of synchronous steps -
// there is no animation loop and no randomness. Initial positions follow a
// golden-angle spiral in input order, so identical input always settles into
// identical positions.
type Force struct{}

// Name returns the view mode this strategy serves.
func (Force) Name() string { return ModeForce }

// Simulation tuning. Rest lengths and strengths separate the tight
// dependency skeleton from looser related links.
const (
	dependsOnRestLength = 140.0
	dependsOnStrength   = 0.08
	relatedRestLength   = 220.0
	relatedStrength     = 0.025

	repulsionStrength = 2600.0
	centeringStrength = 0.012
	velocityDamping   = 0.85

	minSteps = 200
	maxSteps = 600

	// goldenAngle spreads seed positions evenly around the spiral.
	goldenAngle = 2.39996322972865332
	seedSpread  = 38.0
)

// Apply runs the simulation. The input slices are not modified.
func (f Force) Apply(nodes []render.Node, edges []render.Edge, opts Options) []render.Node {
	connected, standalone := splitStandalone(nodes, edges)
	if len(connected) > 0 {
		f.simulate(connected, edges, opts)
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

func (f Force) simulate(nodes []render.Node, edges []render.Edge, opts Options) {
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		index[n.ID] = i
	}

	type spring struct {
		a, b     int
		rest     float64
		strength float64
	}
	var springs []spring
	degree := make([]int, len(nodes))
	for _, e := range edges {
		a, aok := index[e.From]
		b, bok := index[e.To]
		if !aok || !bok || a == b {
			continue
		}
		s := spring{a: a, b: b, rest: relatedRestLength, strength: relatedStrength}
		if e.IsDependsOn() {
			s.rest = dependsOnRestLength
			s.strength = dependsOnStrength
			degree[a]++
			degree[b]++
		}
		springs = append(springs, s)
	}

	// Deterministic seeding: golden-angle spiral in input order.
	xs := make([]float64, len(nodes))
	ys := make([]float64, len(nodes))
	for i := range nodes {
		r := seedSpread * math.Sqrt(float64(i))
		theta := float64(i) * goldenAngle
		xs[i] = r * math.Cos(theta)
		ys[i] = r * math.Sin(theta)
	}

	steps := opts.Iterations
	if steps <= 0 {
		steps = minSteps + 4*len(nodes)
		if steps > maxSteps {
			steps = maxSteps
		}
	}

	w, _ := NodeSize(opts.Compact)
	minSep := w

	vx := make([]float64, len(nodes))
	vy := make([]float64, len(nodes))
	fx := make([]float64, len(nodes))
	fy := make([]float64, len(nodes))

	for step := 0; step < steps; step++ {
		// Linear cooling keeps early steps energetic and late steps settled.
		alpha := 1.0 - float64(step)/float64(steps)

		for i := range fx {
			fx[i], fy[i] = 0, 0
		}

		// Degree-scaled pairwise repulsion.
		for i := 0; i < len(nodes); i++ {
			for j := i + 1; j < len(nodes); j++ {
				dx, dy, dist := delta(xs, ys, i, j)
				scale := repulsionStrength * float64(1+degree[i]) * float64(1+degree[j]) / (dist * dist)
				fx[i] -= dx / dist * scale
				fy[i] -= dy / dist * scale
				fx[j] += dx / dist * scale
				fy[j] += dy / dist * scale
			}
		}

		// Spring attraction toward rest length.
		for _, s := range springs {
			dx, dy, dist := delta(xs, ys, s.a, s.b)
			displacement := (dist - s.rest) * s.strength
			fx[s.a] += dx / dist * displacement
			fy[s.a] += dy / dist * displacement
			fx[s.b] -= dx / dist * displacement
			fy[s.b] -= dy / dist * displacement
		}

		// Centering pull toward the origin.
		for i := range nodes {
			fx[i] -= xs[i] * centeringStrength
			fy[i] -= ys[i] * centeringStrength
		}

		for i := range nodes {
			vx[i] = (vx[i] + fx[i]*alpha) * velocityDamping
			vy[i] = (vy[i] + fy[i]*alpha) * velocityDamping
			xs[i] += vx[i]
			ys[i] += vy[i]
		}

		// Collision: push overlapping pairs apart to one node width.
		for i := 0; i < len(nodes); i++ {
			for j := i + 1; j < len(nodes); j++ {
				dx, dy, dist := delta(xs, ys, i, j)
				if dist >= minSep {
					continue
				}
				push := (minSep - dist) / 2
				xs[i] -= dx / dist * push
				ys[i] -= dy / dist * push
				xs[j] += dx / dist * push
				ys[j] += dy / dist * push
			}
		}
	}

	for i := range nodes {
		nodes[i].X = xs[i]
		nodes[i].Y = ys[i]
	}
}

// delta returns the displacement vector from i to j with a strictly positive
// distance: coincident points get a tiny index-derived separation so force
// directions stay deterministic.
func delta(xs, ys []float64, i, j int) (dx, dy, dist float64) {
	dx = xs[j] - xs[i]
	dy = ys[j] - ys[i]
	dist = math.Hypot(dx, dy)
	if dist < 1e-6 {
		dx = 1e-3 * float64(j-i)
		dy = 1e-3
		dist = math.Hypot(dx, dy)
	}
	return dx, dy, dist
}
