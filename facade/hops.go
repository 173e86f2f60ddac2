// SPDX-License-Identifier: MIT
// Package: fieldsim/facade

package facade

import (
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/fieldsim/aggregate"
	"github.com/katalvlaran/fieldsim/engine"
)

// Hops manages hop-count engines over degree-capped topologies.
type Hops struct {
	surface[int32]
}

// NewHops returns an empty table.
func NewHops(opts ...Option) *Hops {
	f := &Hops{}
	f.init("hops", aggregate.HopUnreached, opts)

	return f
}

// Create builds an engine with nodeCount devices and the given degree cap.
// It returns Invalid when either parameter is negative or nodeCount exceeds
// MaxNodes.
func (f *Hops) Create(nodeCount, maxDegree int32) Handle {
	fields := logrus.Fields{"nodes": nodeCount, "max_degree": maxDegree}
	if err := checkNodes(nodeCount); err != nil {
		return f.adopt(nil, err, fields)
	}
	e, err := engine.NewHopCount(int(nodeCount), int(maxDegree), f.cfg.engine...)

	return f.adopt(e, err, fields)
}

// Connect adds an explicit edge; false for unknown handles, invalid ids,
// existing edges and full endpoints.
func (f *Hops) Connect(h Handle, a, b int32) bool {
	var out bool
	f.instances.with(h, func(e *engine.Engine[int32]) { out = e.Connect(toID(a), toID(b)) })

	return out
}
