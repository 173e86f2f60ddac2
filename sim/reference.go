// SPDX-License-Identifier: MIT
// Package: fieldsim/sim

package sim

import (
	"math"

	"github.com/katalvlaran/fieldsim/aggregate"
	"github.com/katalvlaran/fieldsim/bfs"
	"github.com/katalvlaran/fieldsim/dijkstra"
	"github.com/katalvlaran/fieldsim/engine"
	"github.com/katalvlaran/fieldsim/geom"
	"github.com/katalvlaran/fieldsim/topology"
)

// engineGraph exposes an engine's current topology to bfs, dfs and dijkstra.
type engineGraph[V aggregate.Scalar] struct {
	e *engine.Engine[V]
}

func (g engineGraph[V]) Has(id topology.NodeID) bool {
	return id >= 0 && int(id) < g.e.NodeCount()
}

func (g engineGraph[V]) Nodes() []topology.NodeID {
	out := make([]topology.NodeID, g.e.NodeCount())
	for i := range out {
		out[i] = topology.NodeID(i)
	}

	return out
}

func (g engineGraph[V]) Neighbors(id topology.NodeID) []topology.NodeID {
	return g.e.Neighborhood(id)
}

// Distance is the Euclidean distance between live positions, +Inf when
// either node has none.
func (g engineGraph[V]) Distance(a, b topology.NodeID) float64 {
	pa, okA := g.e.Position(a)
	pb, okB := g.e.Position(b)
	if !okA || !okB {
		return math.Inf(1)
	}

	return geom.Distance(pa, pb)
}

func hopReference(g engineGraph[int32], sources []topology.NodeID) ([]float64, error) {
	res, err := bfs.Hops(g, sources)
	if err != nil {
		return nil, err
	}
	out := make([]float64, g.e.NodeCount())
	for i := range out {
		d, ok := res.Depth[topology.NodeID(i)]
		if !ok {
			out[i] = math.Inf(1)
			continue
		}
		out[i] = float64(d)
	}

	return out, nil
}

func distanceReference(g engineGraph[float64], sources []topology.NodeID) ([]float64, error) {
	res, err := dijkstra.Distances(g, sources)
	if err != nil {
		return nil, err
	}
	out := make([]float64, g.e.NodeCount())
	for i := range out {
		out[i] = res.Value(topology.NodeID(i))
	}

	return out, nil
}
