// Package traverse implements the pure graph traversals behind the
// exploration views: hop-distance BFS from a focus node, critical-path
// expansion of a filtered node subset, and depth-grouped upstream/downstream
// detail derivation for the focused node.
//
// All functions are pure over an immutable [graph.Index] snapshot and
// allocate fresh result structures on every call. Only dependsOn edges
// participate; related edges are invisible here.
package traverse
