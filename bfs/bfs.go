// SPDX-License-Identifier: MIT
// Package: fieldsim/bfs

package bfs

import (
	"context"
	"fmt"
	"slices"

	"github.com/katalvlaran/fieldsim/topology"
)

type queueItem struct {
	id    topology.NodeID
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph Graph
	opts  Options
	ctx   context.Context
	queue []queueItem
	res   *Result
}

// Hops runs breadth-first search on g from every id in sources at once.
// Duplicate sources are ignored. An empty source list yields an empty result.
func Hops(g Graph, sources []topology.NodeID, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	seeds := slices.Clone(sources)
	slices.Sort(seeds)
	seeds = slices.Compact(seeds)
	for _, s := range seeds {
		if !g.Has(s) {
			return nil, fmt.Errorf("%w: %d", ErrSourceNotFound, s)
		}
	}

	w := &walker{
		graph: g,
		opts:  o,
		ctx:   o.Ctx,
		res: &Result{
			Depth:  make(map[topology.NodeID]int),
			Parent: make(map[topology.NodeID]topology.NodeID),
		},
	}
	for _, s := range seeds {
		w.res.Depth[s] = 0
		w.queue = append(w.queue, queueItem{id: s})
	}

	return w.res, w.loop()
}

func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]

		w.res.Order = append(w.res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %d: %w", item.id, err)
		}

		next := item.depth + 1
		if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
			continue
		}
		for _, nbr := range w.graph.Neighbors(item.id) {
			if !w.opts.FilterNeighbor(item.id, nbr) {
				continue
			}
			if _, seen := w.res.Depth[nbr]; seen {
				continue
			}
			w.res.Depth[nbr] = next
			w.res.Parent[nbr] = item.id
			w.queue = append(w.queue, queueItem{id: nbr, depth: next})
		}
	}

	return nil
}
