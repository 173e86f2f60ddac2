// SPDX-License-Identifier: MIT
// Package: fieldsim/topology
//
// adjacency.go - ordered adjacency storage shared by both policies.
//
// Layout:
//   registry: treemap NodeID → *treeset.Set (neighbor ids)
// Both containers are ordered by nodeComparator, so every read is ascending.

package topology

import (
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/treeset"
)

// nodeComparator orders NodeID values for gods containers.
func nodeComparator(a, b interface{}) int {
	x, y := a.(NodeID), b.(NodeID)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

// adjacency is the symmetric neighbor relation over registered nodes.
type adjacency struct {
	registry *treemap.Map
}

func newAdjacency() *adjacency {
	return &adjacency{registry: treemap.NewWith(nodeComparator)}
}

// add registers id with an empty neighbor set; false if already present.
func (a *adjacency) add(id NodeID) bool {
	if _, found := a.registry.Get(id); found {
		return false
	}
	a.registry.Put(id, treeset.NewWith(nodeComparator))

	return true
}

func (a *adjacency) set(id NodeID) (*treeset.Set, bool) {
	v, found := a.registry.Get(id)
	if !found {
		return nil, false
	}

	return v.(*treeset.Set), true
}

func (a *adjacency) has(id NodeID) bool {
	_, found := a.registry.Get(id)
	return found
}

// link adds the symmetric edge x-y. Both endpoints must be registered.
func (a *adjacency) link(x, y NodeID) {
	sx, _ := a.set(x)
	sy, _ := a.set(y)
	sx.Add(y)
	sy.Add(x)
}

func (a *adjacency) linked(x, y NodeID) bool {
	sx, ok := a.set(x)
	if !ok {
		return false
	}

	return sx.Contains(y)
}

func (a *adjacency) degree(id NodeID) int {
	s, ok := a.set(id)
	if !ok {
		return 0
	}

	return s.Size()
}

func (a *adjacency) neighbors(id NodeID) []NodeID {
	s, ok := a.set(id)
	if !ok {
		return nil
	}

	return toIDs(s.Values())
}

func (a *adjacency) ids() []NodeID {
	return toIDs(a.registry.Keys())
}

func (a *adjacency) len() int { return a.registry.Size() }

func (a *adjacency) edgeCount() int {
	total := 0
	it := a.registry.Iterator()
	for it.Next() {
		total += it.Value().(*treeset.Set).Size()
	}

	return total / 2
}

// edges lists each undirected edge once, A < B, in (A, B) order.
func (a *adjacency) edges() []Edge {
	out := make([]Edge, 0, a.edgeCount())
	it := a.registry.Iterator()
	for it.Next() {
		from := it.Key().(NodeID)
		for _, v := range it.Value().(*treeset.Set).Values() {
			if to := v.(NodeID); from < to {
				out = append(out, Edge{A: from, B: to})
			}
		}
	}

	return out
}

// validate checks symmetry, loops and (when maxDegree ≥ 0) the degree cap.
func (a *adjacency) validate(maxDegree int) error {
	it := a.registry.Iterator()
	for it.Next() {
		id := it.Key().(NodeID)
		s := it.Value().(*treeset.Set)
		if maxDegree >= 0 && s.Size() > maxDegree {
			return fmt.Errorf("%w: node %d has %d neighbors (max %d)", ErrDegreeExceeded, id, s.Size(), maxDegree)
		}
		for _, v := range s.Values() {
			nbr := v.(NodeID)
			if nbr == id {
				return fmt.Errorf("%w: node %d", ErrSelfLoop, id)
			}
			if !a.linked(nbr, id) {
				return fmt.Errorf("%w: %d→%d has no mirror", ErrAsymmetric, id, nbr)
			}
		}
	}

	return nil
}

// mustBeValid panics on an invariant violation in fieldsim_debug builds.
func (a *adjacency) mustBeValid(maxDegree int) {
	if !debugInvariants {
		return
	}
	if err := a.validate(maxDegree); err != nil {
		panic(err)
	}
}

func toIDs(values []interface{}) []NodeID {
	out := make([]NodeID, len(values))
	for i, v := range values {
		out[i] = v.(NodeID)
	}

	return out
}
