// SPDX-License-Identifier: MIT
// Package: fieldsim/dijkstra
//
// dijkstra.go processes nodes in order of increasing distance using a
// binary min-heap.
//
// Implementation:
//   - All sources enter the heap at distance 0.
//   - Lazy decrease-key: improved distances push a duplicate entry; stale
//     entries are skipped when popped.
//   - Exploration stops once the heap minimum exceeds MaxDistance.
//   - Ties are broken by node id, so Prev is reproducible.

package dijkstra

import (
	"fmt"
	"math"
	"slices"

	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/emirpasic/gods/utils"

	"github.com/katalvlaran/fieldsim/topology"
)

// nodeItem is one heap entry.
type nodeItem struct {
	id   topology.NodeID
	dist float64
}

// byDistance orders heap entries by distance, then id.
func byDistance(a, b interface{}) int {
	x, y := a.(nodeItem), b.(nodeItem)
	switch {
	case x.dist < y.dist:
		return -1
	case x.dist > y.dist:
		return 1
	}

	return utils.Int32Comparator(int32(x.id), int32(y.id))
}

type runner struct {
	g       Graph
	cfg     Options
	dist    map[topology.NodeID]float64
	prev    map[topology.NodeID]topology.NodeID
	visited map[topology.NodeID]bool
	pq      *binaryheap.Heap
}

// Distances runs multi-source Dijkstra on g.
// Duplicate sources are ignored; an empty list yields an empty result.
func Distances(g Graph, sources []topology.NodeID, opts ...Option) (*Result, error) {
	// 1) Build Options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate the graph and every source.
	if g == nil {
		return nil, ErrNilGraph
	}
	seeds := slices.Clone(sources)
	slices.Sort(seeds)
	seeds = slices.Compact(seeds)
	for _, s := range seeds {
		if !g.Has(s) {
			return nil, fmt.Errorf("%w: %d", ErrSourceNotFound, s)
		}
	}

	// 3) Seed the heap.
	r := &runner{
		g:       g,
		cfg:     cfg,
		dist:    make(map[topology.NodeID]float64),
		visited: make(map[topology.NodeID]bool),
		pq:      binaryheap.NewWith(byDistance),
	}
	if cfg.ReturnPath {
		r.prev = make(map[topology.NodeID]topology.NodeID)
	}
	for _, s := range seeds {
		r.dist[s] = 0
		r.pq.Push(nodeItem{id: s})
	}

	// 4) Drain.
	if err := r.process(); err != nil {
		return nil, err
	}

	// 5) Drop tentative distances beyond the cap.
	for id, d := range r.dist {
		if d > cfg.MaxDistance {
			delete(r.dist, id)
			if r.prev != nil {
				delete(r.prev, id)
			}
		}
	}

	return &Result{Dist: r.dist, Prev: r.prev}, nil
}

func (r *runner) process() error {
	for {
		top, ok := r.pq.Pop()
		if !ok {
			return nil
		}
		item := top.(nodeItem)
		if r.visited[item.id] {
			continue
		}
		if item.dist > r.cfg.MaxDistance {
			return nil
		}
		r.visited[item.id] = true

		if err := r.relax(item.id); err != nil {
			return err
		}
	}
}

// relax pushes every neighbour whose distance improves through u.
func (r *runner) relax(u topology.NodeID) error {
	du := r.dist[u]
	for _, v := range r.g.Neighbors(u) {
		if r.visited[v] {
			continue
		}
		w := r.g.Distance(u, v)
		if math.IsNaN(w) || w < 0 {
			return fmt.Errorf("%w: edge %d→%d weight=%v", ErrNegativeWeight, u, v, w)
		}
		nd := du + w
		if old, seen := r.dist[v]; seen && nd >= old {
			continue
		}
		r.dist[v] = nd
		if r.prev != nil {
			r.prev[v] = u
		}
		r.pq.Push(nodeItem{id: v, dist: nd})
	}

	return nil
}
