// SPDX-License-Identifier: MIT
// Package: fieldsim/aggregate

package aggregate

import (
	"math"

	"github.com/katalvlaran/fieldsim/topology"
)

// HopUnreached is the hop-count sentinel (max int32).
const HopUnreached int32 = math.MaxInt32

// HopCount is the hop-count gradient: every edge costs 1.
type HopCount struct{}

var _ Program[int32] = HopCount{}

// Name implements Program.
func (HopCount) Name() string { return "hopcount" }

// Unreached implements Program.
func (HopCount) Unreached() int32 { return HopUnreached }

// Identity implements Program.
func (HopCount) Identity() int32 { return 0 }

// Reached implements Program.
func (HopCount) Reached(v int32) bool { return v != HopUnreached }

// Step returns 0 on sources, otherwise the best neighbor plus one.
// The sentinel is checked before adding, so MaxInt32 never overflows.
func (HopCount) Step(_ topology.NodeID, source bool, field Field[int32]) int32 {
	best := HopUnreached
	for _, v := range field {
		if v < best {
			best = v
		}
	}
	switch {
	case source:
		return 0
	case best == HopUnreached:
		return HopUnreached
	default:
		return best + 1
	}
}
