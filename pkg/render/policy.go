package render

// OpacityPolicy maps an edge's relationship to the current focus onto an
// opacity tier. The three tiers produce the visual hierarchy of focused
// exploration: edges touching the focus directly, edges between reachable
// nodes, and edges into unreachable territory.
//
// The zero value is not usable; start from [DefaultOpacityPolicy] and adjust.
type OpacityPolicy struct {
	// Direct is used when an endpoint sits at depth 0 (the focus itself).
	Direct float64

	// Indirect is used when both endpoints are reachable but neither is the
	// focus.
	Indirect float64

	// Background is used when an endpoint is unreachable from the focus.
	Background float64

	// Unfocused is used for every edge when no focus is active.
	Unfocused float64
}

// DefaultOpacityPolicy is the standard three-tier scheme.
var DefaultOpacityPolicy = OpacityPolicy{
	Direct:     1.0,
	Indirect:   0.55,
	Background: 0.12,
	Unfocused:  0.8,
}

// edgeOpacity resolves the tier for an edge given the endpoint depths.
// focusActive distinguishes "no focus" from "focus with unreachable endpoints".
func (p OpacityPolicy) edgeOpacity(focusActive bool, fromDepth, toDepth int, fromOK, toOK bool) float64 {
	if !focusActive {
		return p.Unfocused
	}
	if !fromOK || !toOK {
		return p.Background
	}
	if fromDepth == 0 || toDepth == 0 {
		return p.Direct
	}
	return p.Indirect
}
