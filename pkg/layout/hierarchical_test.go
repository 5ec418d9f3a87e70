package layout

import (
	"math"
	"testing"

	"github.com/specatlas/specatlas/pkg/render"
)

// chainSet builds a→b→c with d standalone.
func chainSet() ([]render.Node, []render.Edge) {
	nodes := []render.Node{rnode("a"), rnode("b"), rnode("c"), rnode("d")}
	edges := []render.Edge{
		{From: "a", To: "b"},
		{From: "b", To: "c"},
	}
	return nodes, edges
}

func TestHierarchicalRankOrder(t *testing.T) {
	nodes, edges := chainSet()
	out := Hierarchical{}.Apply(nodes, edges, Options{})

	pos := positions(out)
	// a depends on b depends on c: dependency flow runs left to right.
	if !(pos["a"][0] < pos["b"][0] && pos["b"][0] < pos["c"][0]) {
		t.Errorf("rank X order violated: a=%v b=%v c=%v", pos["a"][0], pos["b"][0], pos["c"][0])
	}

	// Consecutive ranks are one node width plus rank gap apart.
	if got := pos["b"][0] - pos["a"][0]; got != NodeWidth+DefaultRankGap {
		t.Errorf("rank spacing = %v, want %v", got, NodeWidth+DefaultRankGap)
	}
}

func TestHierarchicalStandaloneGridBelow(t *testing.T) {
	nodes, edges := chainSet()
	out := Hierarchical{}.Apply(nodes, edges, Options{})

	pos := positions(out)
	maxConnectedY := math.Max(pos["a"][1], math.Max(pos["b"][1], pos["c"][1]))
	if pos["d"][1] <= maxConnectedY {
		t.Errorf("standalone d at Y=%v, want below connected max %v", pos["d"][1], maxConnectedY)
	}
	if pos["d"][0] != DefaultMargin {
		t.Errorf("grid left = %v, want margin %v", pos["d"][0], DefaultMargin)
	}
}

func TestHierarchicalDeterministic(t *testing.T) {
	nodes, edges := chainSet()

	first := positions(Hierarchical{}.Apply(nodes, edges, Options{}))
	second := positions(Hierarchical{}.Apply(nodes, edges, Options{}))

	for id, p := range first {
		if second[id] != p {
			t.Errorf("node %s moved between runs: %v vs %v", id, p, second[id])
		}
	}
}

func TestHierarchicalDoesNotMutateInput(t *testing.T) {
	nodes, edges := chainSet()
	Hierarchical{}.Apply(nodes, edges, Options{})

	for _, n := range nodes {
		if n.X != 0 || n.Y != 0 {
			t.Errorf("input node %s mutated to (%v,%v)", n.ID, n.X, n.Y)
		}
	}
}

func TestHierarchicalNonNegative(t *testing.T) {
	nodes, edges := chainSet()
	out := Hierarchical{}.Apply(nodes, edges, Options{Compact: true})

	for _, n := range out {
		if n.X < DefaultMargin || n.Y < DefaultMargin {
			t.Errorf("node %s at (%v,%v), want >= margin", n.ID, n.X, n.Y)
		}
	}
}

func TestHierarchicalPreservesOrder(t *testing.T) {
	nodes, edges := chainSet()
	out := Hierarchical{}.Apply(nodes, edges, Options{})

	for i, n := range out {
		if n.ID != nodes[i].ID {
			t.Errorf("output[%d] = %s, want %s (input order)", i, n.ID, nodes[i].ID)
		}
	}
}

func TestHierarchicalCycleDegrades(t *testing.T) {
	// a→b→a cycle plus c hanging off b: must terminate and position all nodes.
	nodes := []render.Node{rnode("a"), rnode("b"), rnode("c")}
	edges := []render.Edge{
		{From: "a", To: "b"},
		{From: "b", To: "a"},
		{From: "b", To: "c"},
	}

	out := Hierarchical{}.Apply(nodes, edges, Options{})
	if len(out) != 3 {
		t.Fatalf("nodes = %d, want 3", len(out))
	}
	for _, n := range out {
		if math.IsNaN(n.X) || math.IsNaN(n.Y) {
			t.Errorf("node %s has NaN position", n.ID)
		}
	}
}

func TestHierarchicalCustomSpacing(t *testing.T) {
	nodes, edges := chainSet()
	out := Hierarchical{}.Apply(nodes, edges, Options{RankGap: 50, Margin: 10})

	pos := positions(out)
	if got := pos["b"][0] - pos["a"][0]; got != NodeWidth+50 {
		t.Errorf("rank spacing = %v, want %v", got, NodeWidth+50)
	}
	if pos["a"][0] != 10 {
		t.Errorf("origin = %v, want margin 10", pos["a"][0])
	}
}
