// SPDX-License-Identifier: MIT
// Package: fieldsim/topology
//
// degree.go - static, incrementally built topology with a per-node degree cap.
//
// Contract:
//   • Register(id) adds id and performs auto-connect: scan registered ids in
//     ascending order; the first other node with degree < maxDegree, provided
//     id itself still has degree < maxDegree, gets a symmetric edge. At most
//     one edge is created per registration.
//   • Connect(a,b) adds a-b iff a ≠ b, both are registered, the edge is new and
//     both endpoints have spare capacity.
//   • Edges are never removed. The graph is sparse and tree-like, not
//     necessarily connected, and not degree-balanced (auto-connect is greedy).
//
// Complexity:
//   • Register: O(V log V) worst case (ascending scan of the registry).
//   • Connect:  O(log V + log d).

package topology

import "fmt"

// DegreeCapped is the static topology policy.
type DegreeCapped struct {
	maxDegree int
	adj       *adjacency
}

var _ Topology = (*DegreeCapped)(nil)

// NewDegreeCapped creates an empty degree-capped topology.
// Returns ErrBadDegree if maxDegree < 0. A cap of 0 yields isolated nodes.
func NewDegreeCapped(maxDegree int) (*DegreeCapped, error) {
	if maxDegree < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadDegree, maxDegree)
	}

	return &DegreeCapped{maxDegree: maxDegree, adj: newAdjacency()}, nil
}

// MaxDegree returns the per-node degree cap.
func (t *DegreeCapped) MaxDegree() int { return t.maxDegree }

// Register adds id and auto-connects it.
func (t *DegreeCapped) Register(id NodeID) error {
	if id < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidNode, id)
	}
	if !t.adj.add(id) {
		return fmt.Errorf("%w: %d", ErrDuplicateNode, id)
	}
	t.autoConnect(id)
	t.adj.mustBeValid(t.maxDegree)

	return nil
}

// autoConnect links id to the lowest registered node that still has capacity.
func (t *DegreeCapped) autoConnect(id NodeID) {
	if t.adj.degree(id) >= t.maxDegree {
		return
	}
	for _, existing := range t.adj.ids() {
		if existing == id {
			continue
		}
		if t.Connect(existing, id) {
			return
		}
	}
}

// Connect adds the symmetric edge a-b and reports whether it was added.
// Self-edges, unknown endpoints, existing edges and full endpoints are
// rejected with false; none of these is an error.
func (t *DegreeCapped) Connect(a, b NodeID) bool {
	if a == b || !t.adj.has(a) || !t.adj.has(b) {
		return false
	}
	if t.adj.linked(a, b) {
		return false
	}
	if t.adj.degree(a) >= t.maxDegree || t.adj.degree(b) >= t.maxDegree {
		return false
	}
	t.adj.link(a, b)
	t.adj.mustBeValid(t.maxDegree)

	return true
}

// Has reports whether id is registered.
func (t *DegreeCapped) Has(id NodeID) bool { return t.adj.has(id) }

// Nodes returns registered ids, ascending.
func (t *DegreeCapped) Nodes() []NodeID { return t.adj.ids() }

// Neighbors returns N(id), ascending; nil for unknown ids.
func (t *DegreeCapped) Neighbors(id NodeID) []NodeID { return t.adj.neighbors(id) }

// IsNeighbor reports whether a-b exists.
func (t *DegreeCapped) IsNeighbor(a, b NodeID) bool { return t.adj.linked(a, b) }

// Degree returns |N(id)|.
func (t *DegreeCapped) Degree(id NodeID) int { return t.adj.degree(id) }

// EdgeCount returns the number of undirected edges.
func (t *DegreeCapped) EdgeCount() int { return t.adj.edgeCount() }

// Edges returns every edge once, sorted.
func (t *DegreeCapped) Edges() []Edge { return t.adj.edges() }

// Dynamic is false: the relation only changes on Register/Connect.
func (t *DegreeCapped) Dynamic() bool { return false }

// Refresh is a no-op for the static policy.
func (t *DegreeCapped) Refresh() {}

// Validate checks symmetry, loops and the degree cap.
func (t *DegreeCapped) Validate() error { return t.adj.validate(t.maxDegree) }
