// Package view owns the explicit, serializable view state and the
// recomputation pipeline that turns a graph snapshot plus view state into a
// complete render payload.
//
// The interactive shell (CLI, TUI, or HTTP host) holds a [State] value and
// re-invokes [Runner.Run] on every change: each pass is one synchronous,
// deterministic traverse → expand → build → layout sequence over an
// immutable snapshot. Passes share no mutable state, so a newer pass's
// output simply supersedes an older one - last write wins, no locking.
package view
