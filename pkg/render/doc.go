// Package render assembles the renderable node and edge records consumed by
// the canvas collaborator. It is the glue between raw graph data, filter and
// focus state, and the layout engines: the builder decides what is visible
// and how it is styled (dimmed, highlighted, secondary, opacity tiers), while
// positions are filled in afterwards by pkg/layout.
//
// Building is a pure function: the same inputs always produce the same
// output slices, and nothing in the input snapshot is mutated.
package render
