// SPDX-License-Identifier: MIT
// Package: fieldsim/aggregate

package aggregate

import (
	"math"

	"github.com/katalvlaran/fieldsim/topology"
)

// DistanceUnreached is the distance sentinel (+Inf).
var DistanceUnreached = math.Inf(1)

// Metric returns the cost of the edge a-b.
type Metric func(a, b topology.NodeID) float64

// Distance is the accumulated-distance gradient. Edge cost comes from a
// Metric, normally the live Euclidean distance between the two devices.
type Distance struct {
	metric Metric
}

var _ Program[float64] = (*Distance)(nil)

// NewDistance returns a distance gradient using m as edge cost.
// Panics on a nil metric (programmer error).
func NewDistance(m Metric) *Distance {
	if m == nil {
		panic("aggregate: NewDistance(nil)")
	}

	return &Distance{metric: m}
}

// Name implements Program.
func (*Distance) Name() string { return "distance" }

// Unreached implements Program.
func (*Distance) Unreached() float64 { return DistanceUnreached }

// Identity implements Program.
func (*Distance) Identity() float64 { return 0 }

// Reached implements Program.
func (*Distance) Reached(v float64) bool { return !math.IsInf(v, 1) }

// Step returns 0 on sources, otherwise min over neighbors of value + cost.
// Unreached neighbors and NaN costs never win.
func (d *Distance) Step(self topology.NodeID, source bool, field Field[float64]) float64 {
	if source {
		return 0
	}
	best := DistanceUnreached
	for nbr, v := range field {
		if math.IsInf(v, 1) {
			continue
		}
		if c := v + d.metric(self, nbr); c < best {
			best = c
		}
	}

	return best
}
