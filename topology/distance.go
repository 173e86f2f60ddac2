// SPDX-License-Identifier: MIT
// Package: fieldsim/topology
//
// distance.go - dynamic topology recomputed from live positions.
//
// Contract:
//   • Register(id) places id at geom.Origin(); it has no edges until Refresh.
//   • UpdatePosition(id, p) only records p; adjacency changes on Refresh.
//   • Refresh() rebuilds the relation from scratch: for every unordered pair
//     {a,b}, a-b iff Distance(pos[a], pos[b]) ≤ maxDistance. The previous
//     relation is discarded (no incremental carry-over).
//   • Refresh must run once per round, after that round's position updates and
//     before any message is sent or received.
//
// Complexity:
//   • Refresh: O(V²) distance evaluations. Accepted for small simulated
//     networks; a spatial index is the known next step if V grows.

package topology

import (
	"fmt"
	"math"

	"github.com/katalvlaran/fieldsim/geom"
)

// DistanceThreshold is the dynamic topology policy.
type DistanceThreshold struct {
	maxDistance float64
	adj         *adjacency
	positions   map[NodeID]geom.Position
}

var _ Positioned = (*DistanceThreshold)(nil)

// NewDistanceThreshold creates an empty distance-threshold topology.
// Returns ErrBadDistance if maxDistance is NaN or negative. +Inf links every
// pair of nodes with finite positions.
func NewDistanceThreshold(maxDistance float64) (*DistanceThreshold, error) {
	if math.IsNaN(maxDistance) || maxDistance < 0 {
		return nil, fmt.Errorf("%w: got %v", ErrBadDistance, maxDistance)
	}

	return &DistanceThreshold{
		maxDistance: maxDistance,
		adj:         newAdjacency(),
		positions:   make(map[NodeID]geom.Position),
	}, nil
}

// MaxDistance returns the link threshold.
func (t *DistanceThreshold) MaxDistance() float64 { return t.maxDistance }

// Register adds id at the origin.
func (t *DistanceThreshold) Register(id NodeID) error {
	if id < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidNode, id)
	}
	if !t.adj.add(id) {
		return fmt.Errorf("%w: %d", ErrDuplicateNode, id)
	}
	t.positions[id] = geom.Origin()

	return nil
}

// UpdatePosition records the new position of id.
func (t *DistanceThreshold) UpdatePosition(id NodeID, p geom.Position) error {
	if _, ok := t.positions[id]; !ok {
		return fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	t.positions[id] = p

	return nil
}

// Position returns the live position of id.
func (t *DistanceThreshold) Position(id NodeID) (geom.Position, bool) {
	p, ok := t.positions[id]
	return p, ok
}

// Distance returns the Euclidean distance between a and b.
func (t *DistanceThreshold) Distance(a, b NodeID) float64 {
	pa, okA := t.positions[a]
	pb, okB := t.positions[b]
	if !okA || !okB {
		return math.Inf(1)
	}

	return geom.Distance(pa, pb)
}

// Refresh recomputes the adjacency from current positions.
func (t *DistanceThreshold) Refresh() {
	ids := t.adj.ids()
	next := newAdjacency()
	for _, id := range ids {
		next.add(id)
	}
	for i := 0; i < len(ids); i++ {
		pa := t.positions[ids[i]]
		if !pa.Finite() {
			continue
		}
		for j := i + 1; j < len(ids); j++ {
			pb := t.positions[ids[j]]
			if pb.Finite() && geom.Distance(pa, pb) <= t.maxDistance {
				next.link(ids[i], ids[j])
			}
		}
	}
	next.mustBeValid(-1)
	t.adj = next
}

// Has reports whether id is registered.
func (t *DistanceThreshold) Has(id NodeID) bool { return t.adj.has(id) }

// Nodes returns registered ids, ascending.
func (t *DistanceThreshold) Nodes() []NodeID { return t.adj.ids() }

// Neighbors returns N(id) as of the last Refresh.
func (t *DistanceThreshold) Neighbors(id NodeID) []NodeID { return t.adj.neighbors(id) }

// IsNeighbor reports whether a-b held at the last Refresh.
func (t *DistanceThreshold) IsNeighbor(a, b NodeID) bool { return t.adj.linked(a, b) }

// Degree returns |N(id)|.
func (t *DistanceThreshold) Degree(id NodeID) int { return t.adj.degree(id) }

// EdgeCount returns the number of undirected edges.
func (t *DistanceThreshold) EdgeCount() int { return t.adj.edgeCount() }

// Edges returns every edge once, sorted.
func (t *DistanceThreshold) Edges() []Edge { return t.adj.edges() }

// Dynamic is true: Refresh rebuilds the relation every round.
func (t *DistanceThreshold) Dynamic() bool { return true }

// Validate checks symmetry and loops. There is no degree cap.
func (t *DistanceThreshold) Validate() error { return t.adj.validate(-1) }
