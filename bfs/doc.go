// SPDX-License-Identifier: MIT
// Package: fieldsim/bfs
//
// Package bfs computes multi-source breadth-first hop distances over a
// topology snapshot. It is the reference answer a converged hop-count
// gradient must reproduce: every node's value equals its hop distance to the
// nearest source, and nodes no source can reach are absent from Depth.
//
// What
//
//   - Seeds the queue with every source at depth 0.
//   - Explores neighbours in ascending id order, so Order and Parent are
//     reproducible.
//   - Supports a visit hook (may abort with an error), neighbour filtering,
//     a depth limit and context cancellation.
//
// Complexity (V = nodes, E = edges)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Errors
//
//	ErrGraphNil         - nil graph.
//	ErrSourceNotFound   - a source id is not registered.
//	ErrOptionViolation  - invalid option (negative depth).
package bfs
