// SPDX-License-Identifier: MIT
// Package: fieldsim/engine
//
// variants.go - constructors for the two shipped gradient engines.

package engine

import (
	"fmt"

	"github.com/katalvlaran/fieldsim/aggregate"
	"github.com/katalvlaran/fieldsim/topology"
)

// NewHopCount builds a hop-count gradient over a degree-capped topology.
// Values are int32 hops; the sentinel is aggregate.HopUnreached.
func NewHopCount(nodeCount, maxDegree int, opts ...Option) (*Engine[int32], error) {
	topo, err := topology.NewDegreeCapped(maxDegree)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	return New[int32](topo, aggregate.HopCount{}, nodeCount, opts...)
}

// NewDistance builds an accumulated-distance gradient over a distance-threshold
// topology. Every device starts at the origin, so the initial adjacency is
// complete; move devices with UpdatePosition before stepping. Edge cost is the
// live Euclidean distance between the two devices.
func NewDistance(nodeCount int, maxDistance float64, opts ...Option) (*Engine[float64], error) {
	topo, err := topology.NewDistanceThreshold(maxDistance)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	return New[float64](topo, aggregate.NewDistance(topo.Distance), nodeCount, opts...)
}
