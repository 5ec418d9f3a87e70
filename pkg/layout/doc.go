// Package layout positions render nodes in 2D.
//
// Two strategies share one contract ([Strategy]): hierarchical layout ranks
// nodes left-to-right along the dependsOn direction for acyclic dependency
// flow, and force layout runs a synchronous physical simulation for general
// network exploration. The strategy is selected by the view mode.
//
// Both strategies place standalone nodes (no dependsOn edges) in a
// deterministic grid below the main arrangement, and both normalize final
// positions to a fixed non-negative origin offset. Layout never errors on an
// empty graph - it returns empty output.
//
// All computation is synchronous and deterministic: identical input yields
// identical positions across runs.
package layout
