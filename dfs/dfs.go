// SPDX-License-Identifier: MIT
// Package: fieldsim/dfs

package dfs

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/fieldsim/topology"
)

var (
	// ErrGraphNil is returned when a nil graph is passed.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrStartVertexNotFound indicates the start id is not registered.
	ErrStartVertexNotFound = errors.New("dfs: start vertex not found")
)

// Graph is the read-only view a walk needs.
type Graph interface {
	Has(id topology.NodeID) bool
	Nodes() []topology.NodeID
	Neighbors(id topology.NodeID) []topology.NodeID
}

// Option configures a walk.
type Option func(*Options)

// Options holds the walk's hooks and limits.
type Options struct {
	// Ctx allows cancellation; checked once per visited node.
	Ctx context.Context

	// OnVisit runs in pre-order. A non-nil error aborts the walk.
	OnVisit func(id topology.NodeID) error
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a pre-order hook.
func WithOnVisit(fn func(id topology.NodeID) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// Walk visits every node reachable from start and returns them in
// pre-order.
func Walk(g Graph, start topology.NodeID, opts ...Option) ([]topology.NodeID, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if !g.Has(start) {
		return nil, fmt.Errorf("%w: %d", ErrStartVertexNotFound, start)
	}
	o := Options{Ctx: context.Background(), OnVisit: func(topology.NodeID) error { return nil }}
	for _, opt := range opts {
		opt(&o)
	}

	return walk(g, start, make(map[topology.NodeID]bool), o)
}

func walk(g Graph, start topology.NodeID, seen map[topology.NodeID]bool, o Options) ([]topology.NodeID, error) {
	var order []topology.NodeID
	stack := []topology.NodeID{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		select {
		case <-o.Ctx.Done():
			return order, o.Ctx.Err()
		default:
		}

		seen[id] = true
		order = append(order, id)
		if err := o.OnVisit(id); err != nil {
			return order, fmt.Errorf("dfs: OnVisit error at %d: %w", id, err)
		}

		// push in reverse so the smallest neighbour is popped first
		nbrs := g.Neighbors(id)
		for i := len(nbrs) - 1; i >= 0; i-- {
			if !seen[nbrs[i]] {
				stack = append(stack, nbrs[i])
			}
		}
	}

	return order, nil
}

// Components splits g into connected components. Each component is sorted
// ascending; components are ordered by their smallest id.
func Components(g Graph) ([][]topology.NodeID, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := Options{Ctx: context.Background(), OnVisit: func(topology.NodeID) error { return nil }}
	seen := make(map[topology.NodeID]bool)

	var out [][]topology.NodeID
	for _, id := range g.Nodes() {
		if seen[id] {
			continue
		}
		comp, err := walk(g, id, seen, o)
		if err != nil {
			return nil, err
		}
		slices.Sort(comp)
		out = append(out, comp)
	}

	return out, nil
}
