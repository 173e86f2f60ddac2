// SPDX-License-Identifier: MIT
// Package: fieldsim/facade

package facade

import (
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/fieldsim/aggregate"
	"github.com/katalvlaran/fieldsim/engine"
	"github.com/katalvlaran/fieldsim/geom"
	"github.com/katalvlaran/fieldsim/topology"
)

// Distances manages accumulated-distance engines over distance-threshold
// topologies.
type Distances struct {
	surface[float64]
}

// NewDistances returns an empty table.
func NewDistances(opts ...Option) *Distances {
	f := &Distances{}
	f.init("distances", aggregate.DistanceUnreached, opts)

	return f
}

// Create builds an engine with nodeCount devices, all at the origin, linked
// when at most maxDistance apart. It returns Invalid for a negative count or
// a NaN or negative range, and for more than MaxNodes devices.
func (f *Distances) Create(nodeCount int32, maxDistance float64) Handle {
	fields := logrus.Fields{"nodes": nodeCount, "max_distance": maxDistance}
	if err := checkNodes(nodeCount); err != nil {
		return f.adopt(nil, err, fields)
	}
	e, err := engine.NewDistance(int(nodeCount), maxDistance, f.cfg.engine...)

	return f.adopt(e, err, fields)
}

// UpdatePosition moves node; the next Step sees the new adjacency.
// Non-finite coordinates are stored, and such a node links to nobody.
func (f *Distances) UpdatePosition(h Handle, node int32, x, y, z float64) {
	f.instances.with(h, func(e *engine.Engine[float64]) {
		_ = e.UpdatePosition(toID(node), geom.At(x, y, z))
	})
}

// Position returns the stored position of node.
func (f *Distances) Position(h Handle, node int32) (geom.Position, bool) {
	var (
		p  geom.Position
		ok bool
	)
	f.instances.with(h, func(e *engine.Engine[float64]) { p, ok = e.Position(toID(node)) })

	return p, ok
}

func toID(v int32) topology.NodeID { return topology.NodeID(v) }
