// SPDX-License-Identifier: MIT
// Package: fieldsim/dijkstra
//
// Package dijkstra computes multi-source shortest Euclidean path lengths over
// a positioned topology. It is the reference answer for the distance
// gradient: once converged, every node's value equals the length of the
// shortest neighbour-to-neighbour path to its nearest source.
//
// Complexity:
//
//	- Time:  O((V + E) log V) with lazy decrease-key.
//	- Space: O(V + E) in the worst case (duplicate heap entries).
//
// Options:
//
//	- MaxDistance:  nodes whose shortest distance would exceed it are left unreached.
//	- ReturnPath:   keep the predecessor map for PathTo.
//
// Errors (sentinel):
//
//	- ErrNilGraph        if the graph is nil.
//	- ErrSourceNotFound  if a source is not registered.
//	- ErrNegativeWeight  if an edge cost is negative or NaN.
//	- ErrBadMaxDistance  if MaxDistance < 0 or NaN (option constructor panics).
package dijkstra

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/fieldsim/topology"
)

// Sentinel errors returned by Distances.
var (
	// ErrNilGraph indicates that a nil graph was passed.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrSourceNotFound indicates that a source id is not registered.
	ErrSourceNotFound = errors.New("dijkstra: source not found in graph")

	// ErrNegativeWeight indicates a negative or NaN edge cost.
	ErrNegativeWeight = errors.New("dijkstra: negative edge weight encountered")

	// ErrBadMaxDistance indicates MaxDistance was negative or NaN.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")
)

// Graph is a topology with a per-edge cost. topology.DistanceThreshold
// satisfies it, with the live Euclidean distance as the cost.
type Graph interface {
	Has(id topology.NodeID) bool
	Neighbors(id topology.NodeID) []topology.NodeID
	Distance(a, b topology.NodeID) float64
}

// Options configures the algorithm.
type Options struct {
	MaxDistance float64 // exploration cap, +Inf by default
	ReturnPath  bool    // keep predecessors
}

// Option represents a functional option for configuring Distances.
type Option func(*Options)

// WithMaxDistance caps exploration. Panics on a negative or NaN cap.
func WithMaxDistance(max float64) Option {
	if math.IsNaN(max) || max < 0 {
		panic(ErrBadMaxDistance.Error())
	}
	return func(o *Options) {
		o.MaxDistance = max
	}
}

// WithReturnPath keeps the predecessor map so Result.PathTo works.
func WithReturnPath() Option {
	return func(o *Options) {
		o.ReturnPath = true
	}
}

// DefaultOptions returns no cap and no predecessor map.
func DefaultOptions() Options {
	return Options{MaxDistance: math.Inf(1)}
}

// Result holds shortest distances from the nearest source.
// Unreached nodes are absent from Dist.
type Result struct {
	Dist map[topology.NodeID]float64
	Prev map[topology.NodeID]topology.NodeID // nil unless WithReturnPath
}

// Value returns the distance of id, +Inf when unreached.
func (r *Result) Value(id topology.NodeID) float64 {
	if d, ok := r.Dist[id]; ok {
		return d
	}

	return math.Inf(1)
}

// PathTo reconstructs the path from the nearest source to dest.
// Requires WithReturnPath.
func (r *Result) PathTo(dest topology.NodeID) ([]topology.NodeID, error) {
	if _, ok := r.Dist[dest]; !ok {
		return nil, fmt.Errorf("dijkstra: no path to %d", dest)
	}
	if r.Prev == nil {
		return nil, errors.New("dijkstra: predecessors not recorded")
	}
	path := []topology.NodeID{dest}
	for cur := dest; ; {
		prev, ok := r.Prev[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	slices.Reverse(path)

	return path, nil
}
