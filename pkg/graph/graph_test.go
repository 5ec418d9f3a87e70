package graph

import (
	"bytes"
	"path/filepath"
	"testing"
)

func testGraph() Graph {
	return Graph{
		Nodes: []Node{
			{ID: "a", Number: "SPEC-001", Name: "Auth", Status: StatusComplete},
			{ID: "b", Number: "SPEC-002", Name: "Billing", Status: StatusInProgress},
			{ID: "c", Name: "Catalog", Status: StatusPlanned, Tags: []string{"backend"}},
			{ID: "d", Name: "Docs", Status: StatusPlanned},
		},
		Edges: []Edge{
			{From: "a", To: "b"},
			{From: "b", To: "c", Kind: EdgeDependsOn},
			{From: "a", To: "c", Kind: EdgeRelated},
		},
	}
}

func TestValidateStatus(t *testing.T) {
	tests := []struct {
		status  string
		wantErr bool
	}{
		{StatusPlanned, false},
		{StatusInProgress, false},
		{StatusComplete, false},
		{StatusArchived, false},
		{"done", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			err := ValidateStatus(tt.status)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStatus(%q) err = %v, wantErr %v", tt.status, err, tt.wantErr)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"WithNumber", Node{Number: "SPEC-001", Name: "Auth"}, "SPEC-001 Auth"},
		{"NameOnly", Node{Name: "Auth"}, "Auth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEdgeKinds(t *testing.T) {
	tests := []struct {
		name          string
		edge          Edge
		wantDependsOn bool
	}{
		{"EmptyDefaultsToDependsOn", Edge{From: "a", To: "b"}, true},
		{"Explicit", Edge{From: "a", To: "b", Kind: EdgeDependsOn}, true},
		{"Related", Edge{From: "a", To: "b", Kind: EdgeRelated}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.edge.IsDependsOn(); got != tt.wantDependsOn {
				t.Errorf("IsDependsOn() = %v, want %v", got, tt.wantDependsOn)
			}
			if got := tt.edge.IsRelated(); got == tt.wantDependsOn {
				t.Errorf("IsRelated() = %v, want %v", got, !tt.wantDependsOn)
			}
		})
	}
}

func TestNewIndex(t *testing.T) {
	idx := NewIndex(testGraph())

	if got := idx.NodeCount(); got != 4 {
		t.Errorf("NodeCount() = %d, want 4", got)
	}
	if got := idx.EdgeCount(); got != 3 {
		t.Errorf("EdgeCount() = %d, want 3", got)
	}
	if got := len(idx.DependsOnEdges()); got != 2 {
		t.Errorf("DependsOnEdges() = %d, want 2", got)
	}
	if !idx.HasNode("a") || idx.HasNode("z") {
		t.Error("HasNode lookup incorrect")
	}
	if got := idx.Node("b").Name; got != "Billing" {
		t.Errorf("Node(b).Name = %q, want Billing", got)
	}

	// Related edges don't contribute to adjacency.
	if got := idx.Dependencies("a"); len(got) != 1 || got[0] != "b" {
		t.Errorf("Dependencies(a) = %v, want [b]", got)
	}
	if got := idx.Dependents("c"); len(got) != 1 || got[0] != "b" {
		t.Errorf("Dependents(c) = %v, want [b]", got)
	}
	if got := idx.Degree("d"); got != 0 {
		t.Errorf("Degree(d) = %d, want 0", got)
	}
}

func TestNewIndexDropsMalformedEdges(t *testing.T) {
	g := testGraph()
	g.Edges = append(g.Edges,
		Edge{From: "a", To: "ghost"},
		Edge{From: "ghost", To: "b"},
	)
	idx := NewIndex(g)

	if got := idx.DroppedEdges(); got != 2 {
		t.Errorf("DroppedEdges() = %d, want 2", got)
	}
	if got := idx.EdgeCount(); got != 3 {
		t.Errorf("EdgeCount() = %d, want 3", got)
	}
}

func TestIndexNodesSorted(t *testing.T) {
	idx := NewIndex(Graph{
		Nodes: []Node{{ID: "z"}, {ID: "a"}, {ID: "m"}},
	})

	ids := idx.NodeIDs()
	want := []string{"a", "m", "z"}
	for i, id := range want {
		if ids[i] != id {
			t.Fatalf("NodeIDs() = %v, want %v", ids, want)
		}
	}
}

func TestStats(t *testing.T) {
	idx := NewIndex(testGraph())
	stats := idx.Stats()

	// d has no dependsOn edge; a's related edge to c doesn't count for c.
	if stats.Connected != 3 {
		t.Errorf("Connected = %d, want 3", stats.Connected)
	}
	if stats.Standalone != 1 {
		t.Errorf("Standalone = %d, want 1", stats.Standalone)
	}
	if stats.Total() != 4 {
		t.Errorf("Total() = %d, want 4", stats.Total())
	}
}

func TestMarshalGraphDeterministic(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "b", Name: "B"}, {ID: "a", Name: "A"}},
		Edges: []Edge{{From: "b", To: "a"}, {From: "a", To: "b"}},
	}
	shuffled := Graph{
		Nodes: []Node{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}},
		Edges: []Edge{{From: "a", To: "b"}, {From: "b", To: "a"}},
	}

	first, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}
	second, err := MarshalGraph(shuffled)
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("MarshalGraph output depends on input order")
	}
}

func TestReadWriteGraphFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	g := testGraph()

	if err := WriteGraphFile(g, path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}
	got, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}

	if len(got.Nodes) != len(g.Nodes) {
		t.Errorf("nodes = %d, want %d", len(got.Nodes), len(g.Nodes))
	}
	if len(got.Edges) != len(g.Edges) {
		t.Errorf("edges = %d, want %d", len(got.Edges), len(g.Edges))
	}
}

func TestReadGraphFileMissing(t *testing.T) {
	if _, err := ReadGraphFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestUnmarshalGraphInvalid(t *testing.T) {
	if _, err := UnmarshalGraph([]byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
