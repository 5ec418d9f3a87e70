package view

import (
	"bytes"
	"testing"

	"github.com/specatlas/specatlas/pkg/graph"
	"github.com/specatlas/specatlas/pkg/layout"
)

func TestStateValidate(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		wantErr bool
	}{
		{"Zero", State{}, false},
		{"ValidMode", State{Mode: layout.ModeForce}, false},
		{"InvalidMode", State{Mode: "radial"}, true},
		{"ValidStatuses", State{Statuses: []string{graph.StatusPlanned, graph.StatusComplete}}, false},
		{"InvalidStatus", State{Statuses: []string{"done"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.state.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestFocusTransitions walks the click state machine:
// Unfocused -> Focused(a) -> Focused(b) -> Unfocused.
func TestFocusTransitions(t *testing.T) {
	s := State{}
	if s.Focused() {
		t.Fatal("zero state should be unfocused")
	}

	s = s.ClickNode("a")
	if s.FocusID != "a" {
		t.Fatalf("after click a: focus = %q", s.FocusID)
	}

	// Clicking a different node moves the focus.
	s = s.ClickNode("b")
	if s.FocusID != "b" {
		t.Fatalf("after click b: focus = %q", s.FocusID)
	}

	// Re-clicking the focused node clears.
	s = s.ClickNode("b")
	if s.Focused() {
		t.Fatalf("after re-click b: focus = %q, want cleared", s.FocusID)
	}

	s = s.ClickNode("a")
	s = s.ClickBackground()
	if s.Focused() {
		t.Error("background click should clear focus")
	}
}

func TestStatusChangeClearsFocus(t *testing.T) {
	s := State{}.ClickNode("a").WithStatuses(graph.StatusPlanned)
	if s.Focused() {
		t.Errorf("focus survived a status change: %q", s.FocusID)
	}
	if len(s.Statuses) != 1 || s.Statuses[0] != graph.StatusPlanned {
		t.Errorf("Statuses = %v", s.Statuses)
	}

	// Search changes keep the focus.
	s = State{}.ClickNode("a").WithSearch("auth")
	if !s.Focused() {
		t.Error("focus should survive a search change")
	}
}

func TestStateFiltered(t *testing.T) {
	if (State{}).Filtered() {
		t.Error("zero state should be unfiltered")
	}
	if !(State{Search: "x"}).Filtered() {
		t.Error("search should count as a filter")
	}
	if !(State{Statuses: []string{graph.StatusPlanned}}).Filtered() {
		t.Error("statuses should count as a filter")
	}
}

func TestStateMatches(t *testing.T) {
	node := &graph.Node{
		ID:     "auth",
		Number: "SPEC-042",
		Name:   "Auth Service",
		Status: graph.StatusInProgress,
		Tags:   []string{"security"},
	}

	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{"ZeroMatchesAll", State{}, true},
		{"StatusMatch", State{Statuses: []string{graph.StatusInProgress}}, true},
		{"StatusMiss", State{Statuses: []string{graph.StatusComplete}}, false},
		{"SearchName", State{Search: "auth"}, true},
		{"SearchCaseInsensitive", State{Search: "AUTH"}, true},
		{"SearchNumber", State{Search: "042"}, true},
		{"SearchTag", State{Search: "secur"}, true},
		{"SearchMiss", State{Search: "billing"}, false},
		{"StatusAndSearch", State{Statuses: []string{graph.StatusInProgress}, Search: "auth"}, true},
		{"StatusHitSearchMiss", State{Statuses: []string{graph.StatusInProgress}, Search: "zzz"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.Matches(node); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanonicalOrderIndependent(t *testing.T) {
	a := State{Statuses: []string{graph.StatusPlanned, graph.StatusComplete}}
	b := State{Statuses: []string{graph.StatusComplete, graph.StatusPlanned}}

	if !bytes.Equal(a.Canonical(), b.Canonical()) {
		t.Error("canonical encoding depends on status order")
	}

	c := State{Statuses: []string{graph.StatusPlanned}}
	if bytes.Equal(a.Canonical(), c.Canonical()) {
		t.Error("different filters encode equally")
	}

	// Canonical must not mutate the receiver's filter order.
	if b.Statuses[0] != graph.StatusComplete {
		t.Error("Canonical mutated the state")
	}
}
