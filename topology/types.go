// SPDX-License-Identifier: MIT
// Package: fieldsim/topology
//
// types.go - node identity, sentinel errors and the Topology contract shared
// by the degree-capped and distance-threshold builders.

package topology

import (
	"errors"

	"github.com/katalvlaran/fieldsim/geom"
)

// NodeID identifies a simulated device. It is a small non-negative integer,
// stable for the lifetime of an engine and unique among registered nodes.
type NodeID int32

// Sentinel errors for topology operations.
var (
	// ErrInvalidNode indicates a negative node id.
	ErrInvalidNode = errors.New("topology: invalid node id")

	// ErrDuplicateNode indicates Register was called twice for the same id.
	ErrDuplicateNode = errors.New("topology: node already registered")

	// ErrNodeNotFound indicates an operation referenced an unregistered id.
	ErrNodeNotFound = errors.New("topology: node not registered")

	// ErrBadDegree indicates a negative maxDegree.
	ErrBadDegree = errors.New("topology: maxDegree must be non-negative")

	// ErrBadDistance indicates a NaN or negative maxDistance.
	ErrBadDistance = errors.New("topology: maxDistance must be a non-negative number")

	// ErrAsymmetric indicates b ∈ N(a) while a ∉ N(b).
	ErrAsymmetric = errors.New("topology: adjacency is not symmetric")

	// ErrSelfLoop indicates a ∈ N(a).
	ErrSelfLoop = errors.New("topology: self-loop in adjacency")

	// ErrDegreeExceeded indicates |N(a)| > maxDegree.
	ErrDegreeExceeded = errors.New("topology: degree cap exceeded")
)

// Edge is an undirected neighbor pair with A < B.
type Edge struct {
	A NodeID
	B NodeID
}

// Topology is the neighbor relation consumed by the mailbox and the round
// scheduler. Every query tolerates unknown ids: they have no neighbors.
type Topology interface {
	// Register adds id with an empty neighbor set, applying the policy's
	// registration rule (auto-connect for DegreeCapped).
	Register(id NodeID) error

	// Has reports whether id is registered.
	Has(id NodeID) bool

	// Nodes returns every registered id in ascending order.
	Nodes() []NodeID

	// Neighbors returns the current neighbors of id in ascending order.
	Neighbors(id NodeID) []NodeID

	// IsNeighbor reports whether a-b is a current edge.
	IsNeighbor(a, b NodeID) bool

	// Degree returns |N(id)|, 0 for unknown ids.
	Degree(id NodeID) int

	// EdgeCount returns the number of undirected edges.
	EdgeCount() int

	// Edges returns every undirected edge, sorted by (A, B).
	Edges() []Edge

	// Dynamic reports whether Refresh recomputes the relation every round.
	Dynamic() bool

	// Refresh recomputes the relation (no-op for static policies).
	Refresh()

	// Validate checks the adjacency invariants.
	Validate() error
}

// Positioned is a Topology whose nodes carry live positions.
type Positioned interface {
	Topology

	// UpdatePosition moves id; takes effect on the next Refresh.
	UpdatePosition(id NodeID, p geom.Position) error

	// Position returns the live position of id.
	Position(id NodeID) (geom.Position, bool)

	// Distance returns the Euclidean distance between a and b,
	// +Inf if either is unregistered.
	Distance(a, b NodeID) float64
}
