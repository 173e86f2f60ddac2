// SPDX-License-Identifier: MIT
// Package: fieldsim/geom
//
// geom.go - 3D positions and the Euclidean metric used by the
// distance-threshold topology and the distance gradient.

// Package geom provides the coordinate type carried by simulated devices and
// the distance function used to decide proximity and edge cost.
//
// Positions are plain values: copying a Position never aliases another node's
// coordinates. Callers (a visualisation loop, a motion schedule) replace a
// node's Position between rounds; nothing in this package mutates state.
package geom

import (
	"fmt"
	"math"
)

// Position is a point in 3D space.
type Position struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

// Origin returns the position every node starts from before it is moved.
func Origin() Position { return Position{} }

// At is a shorthand constructor.
func At(x, y, z float64) Position { return Position{X: x, Y: y, Z: z} }

// Distance returns the Euclidean distance between a and b.
// Complexity: O(1).
func Distance(a, b Position) float64 {
	dx, dy, dz := b.X-a.X, b.Y-a.Y, b.Z-a.Z

	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// DistanceTo is the method form of Distance.
func (p Position) DistanceTo(q Position) float64 { return Distance(p, q) }

// Add returns p translated by d.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y, Z: p.Z + d.Z}
}

// Finite reports whether every coordinate is a finite number.
// Positions with NaN or infinite coordinates never satisfy a distance threshold.
func (p Position) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0) &&
		!math.IsNaN(p.Z) && !math.IsInf(p.Z, 0)
}

// String renders the position as "(x, y, z)".
func (p Position) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}
