package view

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/specatlas/specatlas/pkg/graph"
	"github.com/specatlas/specatlas/pkg/layout"
)

// State is the complete, serializable view state: filters, search, focus,
// and presentation flags. It is a value - transitions return a new State
// rather than mutating, so every pipeline pass sees one immutable input.
//
// The zero value means: all statuses, no search, unfocused, hierarchical
// mode, standalone nodes hidden.
type State struct {
	// Statuses filters nodes by lifecycle status; empty means all.
	Statuses []string `json:"statuses,omitempty"`

	// Search filters nodes by case-insensitive substring match on display
	// number, name, and tags; empty means no search.
	Search string `json:"search,omitempty"`

	// FocusID is the active focus node; empty means unfocused.
	FocusID string `json:"focus_id,omitempty"`

	// Mode selects the layout strategy; empty means hierarchical.
	Mode string `json:"mode,omitempty"`

	// MaxDepth caps connectivity BFS from the focus; 0 means unbounded.
	MaxDepth int `json:"max_depth,omitempty"`

	Compact        bool `json:"compact,omitempty"`
	ShowStandalone bool `json:"show_standalone,omitempty"`
	IncludeRelated bool `json:"include_related,omitempty"`
}

// Validate checks mode and status values.
func (s State) Validate() error {
	if s.Mode != "" {
		if err := layout.ValidateMode(s.Mode); err != nil {
			return err
		}
	}
	for _, status := range s.Statuses {
		if err := graph.ValidateStatus(status); err != nil {
			return err
		}
	}
	return nil
}

// Focused reports whether a focus node is active.
func (s State) Focused() bool { return s.FocusID != "" }

// Filtered reports whether any node filter (status or search) is active.
func (s State) Filtered() bool { return len(s.Statuses) > 0 || s.Search != "" }

// =============================================================================
// Focus State Machine
// =============================================================================

// ClickNode applies a node click: clicking an unfocused or differently
// focused node focuses it, re-clicking the focused node clears focus.
func (s State) ClickNode(id string) State {
	if id == "" || id == s.FocusID {
		s.FocusID = ""
		return s
	}
	s.FocusID = id
	return s
}

// ClickBackground applies an empty-canvas click, clearing focus.
func (s State) ClickBackground() State {
	s.FocusID = ""
	return s
}

// WithStatuses replaces the status filter. Changing the filter clears focus,
// since depth data computed under the old filter may reference nodes that
// are no longer visible.
func (s State) WithStatuses(statuses ...string) State {
	s.Statuses = slices.Clone(statuses)
	s.FocusID = ""
	return s
}

// WithSearch replaces the search text.
func (s State) WithSearch(search string) State {
	s.Search = search
	return s
}

// WithMode selects the layout strategy.
func (s State) WithMode(mode string) State {
	s.Mode = mode
	return s
}

// =============================================================================
// Filter Matching
// =============================================================================

// Matches reports whether a node passes the active status and search
// filters. An unfiltered state matches every node.
func (s State) Matches(n *graph.Node) bool {
	if len(s.Statuses) > 0 && !slices.Contains(s.Statuses, n.Status) {
		return false
	}
	if s.Search == "" {
		return true
	}
	needle := strings.ToLower(s.Search)
	if strings.Contains(strings.ToLower(n.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(n.Number), needle) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Canonical returns a stable JSON encoding with statuses sorted, suitable
// for cache keys: states that differ only in filter order encode equally.
func (s State) Canonical() []byte {
	s.Statuses = slices.Clone(s.Statuses)
	slices.Sort(s.Statuses)
	data, _ := json.Marshal(s)
	return data
}
