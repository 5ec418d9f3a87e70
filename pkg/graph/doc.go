// Package graph defines the specification dependency graph model.
//
// A graph is a set of specification nodes plus directed dependency edges.
// Each edge means "From depends on To" and carries a kind: dependsOn edges
// participate in traversal and layout, related edges are cosmetic links
// carried through for network-exploration views only.
//
// The package provides two representations:
//
//   - [Graph]: the canonical serialization format (JSON/BSON) used for API
//     payloads, storage, and caching. Arrays carry no ordering guarantees.
//   - [Index]: an immutable adjacency-indexed view built once per snapshot
//     with [NewIndex]. Edges referencing unknown node IDs are dropped at
//     index build, since partial graphs are a normal transient loading state.
//
// All derived structures elsewhere in the module (depth maps, render sets,
// layouts) are recomputed from an Index snapshot; the snapshot itself is
// never mutated.
package graph
