// SPDX-License-Identifier: MIT
// Package: fieldsim/layout
//
// Package layout generates initial device positions for distance-threshold
// simulations. Each generator returns a Placement closure; Place applies it
// for a given device count, so configuration can pick a generator by name
// before the count is known.
//
// Contract:
//   • Positions are indexed by node id; element i belongs to node i.
//   • Every generator is deterministic (Scatter for a fixed seed).
//   • Parameters are validated when Place runs; generators never panic.
//
// Complexity: O(n) time and space for every generator.

package layout

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/fieldsim/geom"
)

// Sentinel errors for layout generation.
var (
	// ErrBadCount indicates a negative device count.
	ErrBadCount = errors.New("layout: device count must be non-negative")

	// ErrBadColumns indicates a grid with fewer than one column.
	ErrBadColumns = errors.New("layout: columns must be ≥ 1")

	// ErrBadSpacing indicates a negative, NaN or infinite spacing or radius.
	ErrBadSpacing = errors.New("layout: spacing must be finite and non-negative")

	// ErrUnknownKind indicates an unrecognised layout name.
	ErrUnknownKind = errors.New("layout: unknown kind")
)

// Layout kinds accepted by ByName.
const (
	KindOrigin  = "origin"
	KindGrid    = "grid"
	KindLine    = "line"
	KindRing    = "ring"
	KindScatter = "scatter"
)

// Placement produces n positions.
type Placement func(n int) ([]geom.Position, error)

// Place runs p for n devices after validating n.
func Place(p Placement, n int) ([]geom.Position, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadCount, n)
	}

	return p(n)
}

func checkSpacing(method string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%s: %v: %w", method, v, ErrBadSpacing)
	}

	return nil
}

// Origin stacks every device at (0, 0, 0), the engine's starting placement.
func Origin() Placement {
	return func(n int) ([]geom.Position, error) {
		return make([]geom.Position, n), nil
	}
}

// Grid lays devices out row-major on the z=0 plane: node i sits at
// (i mod cols · spacing, ⌊i / cols⌋ · spacing, 0).
func Grid(cols int, spacing float64) Placement {
	return func(n int) ([]geom.Position, error) {
		if cols < 1 {
			return nil, fmt.Errorf("Grid: cols=%d: %w", cols, ErrBadColumns)
		}
		if err := checkSpacing("Grid", spacing); err != nil {
			return nil, err
		}
		out := make([]geom.Position, n)
		for i := range out {
			out[i] = geom.At(float64(i%cols)*spacing, float64(i/cols)*spacing, 0)
		}

		return out, nil
	}
}

// Line places devices along the x axis, spacing apart.
func Line(spacing float64) Placement {
	return Grid(math.MaxInt32, spacing)
}

// Ring places devices evenly on a circle of the given radius in the z=0
// plane, node 0 at (radius, 0, 0), counter-clockwise.
func Ring(radius float64) Placement {
	return func(n int) ([]geom.Position, error) {
		if err := checkSpacing("Ring", radius); err != nil {
			return nil, err
		}
		out := make([]geom.Position, n)
		for i := range out {
			theta := 2 * math.Pi * float64(i) / float64(n)
			out[i] = geom.At(radius*math.Cos(theta), radius*math.Sin(theta), 0)
		}

		return out, nil
	}
}

// Scatter draws positions uniformly from [0, extent)² on the z=0 plane.
func Scatter(extent float64, seed int64) Placement {
	return func(n int) ([]geom.Position, error) {
		if err := checkSpacing("Scatter", extent); err != nil {
			return nil, err
		}
		rng := rand.New(rand.NewSource(seed))
		out := make([]geom.Position, n)
		for i := range out {
			out[i] = geom.At(rng.Float64()*extent, rng.Float64()*extent, 0)
		}

		return out, nil
	}
}

// ByName resolves a configured layout. spacing is the grid/line pitch, the
// ring radius or the scatter extent.
func ByName(kind string, cols int, spacing float64, seed int64) (Placement, error) {
	switch kind {
	case "", KindOrigin:
		return Origin(), nil
	case KindGrid:
		return Grid(cols, spacing), nil
	case KindLine:
		return Line(spacing), nil
	case KindRing:
		return Ring(spacing), nil
	case KindScatter:
		return Scatter(spacing, seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
