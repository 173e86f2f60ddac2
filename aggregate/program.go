// SPDX-License-Identifier: MIT
// Package: fieldsim/aggregate
//
// program.go - the Program strategy and the scalar constraint.

package aggregate

import (
	"slices"

	"github.com/katalvlaran/fieldsim/topology"
)

// Scalar is the set of value types a gradient can carry.
type Scalar interface {
	~int32 | ~float64
}

// Field maps each current neighbor to the value it sent most recently.
type Field[V Scalar] map[topology.NodeID]V

// Senders returns the neighbor ids present in f, ascending.
func (f Field[V]) Senders() []topology.NodeID {
	out := make([]topology.NodeID, 0, len(f))
	for id := range f {
		out = append(out, id)
	}
	slices.Sort(out)

	return out
}

// Program computes one device's value for one round.
type Program[V Scalar] interface {
	// Name identifies the program in logs, metrics and traces.
	Name() string

	// Unreached is the "not yet reached" sentinel every value starts from.
	Unreached() V

	// Identity is the value pinned on source nodes.
	Identity() V

	// Reached reports whether v carries information (v ≠ Unreached()).
	Reached(v V) bool

	// Step folds the neighbor field and the source flag into a new value.
	// Implementations must be pure: no state survives between calls.
	Step(self topology.NodeID, source bool, field Field[V]) V
}
