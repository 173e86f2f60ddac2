// SPDX-License-Identifier: MIT
package facade

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fieldsim/aggregate"
)

func TestPackRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		slot int
		gen  uint32
	}{{0, 1}, {1, 1}, {7, 3}, {slotMask - 1, genMask}} {
		h := pack(tc.slot, tc.gen)
		assert.Positive(t, int32(h))
		slot, gen, ok := unpack(h)
		require.True(t, ok)
		assert.Equal(t, tc.slot, slot)
		assert.Equal(t, tc.gen, gen)
	}

	for _, h := range []Handle{0, -1, 1, slotMask} {
		_, _, ok := unpack(h)
		assert.False(t, ok, "handle %d", h)
	}
}

func TestHopsLifecycle(t *testing.T) {
	f := NewHops()
	h := f.Create(10, 3)
	require.NotEqual(t, Invalid, h)
	assert.Equal(t, 1, f.Len())

	f.SetSource(h, 0, true)
	assert.True(t, f.IsSource(h, 0))
	f.Step(h, 3)

	assert.EqualValues(t, 3, f.Round(h))
	assert.EqualValues(t, 0, f.Value(h, 0))
	assert.EqualValues(t, 1, f.Value(h, 3))
	assert.EqualValues(t, 2, f.Value(h, 9))
	assert.Equal(t, []int32{0, 4, 5}, f.Neighborhood(h, 1))

	f.ClearSources(h)
	assert.False(t, f.IsSource(h, 0))

	f.Destroy(h)
	assert.Zero(t, f.Len())
	assert.False(t, f.Valid(h))
	assert.Equal(t, aggregate.HopUnreached, f.Value(h, 0))
	assert.Nil(t, f.Neighborhood(h, 1))
}

// TestUnknownHandleLeavesLiveInstances: step(999, 5) changes nothing.
func TestUnknownHandleLeavesLiveInstances(t *testing.T) {
	f := NewHops()
	h := f.Create(4, 2)
	f.SetSource(h, 0, true)
	f.Step(h, 1)
	before := []int32{f.Value(h, 0), f.Value(h, 1), f.Value(h, 2), f.Value(h, 3)}

	f.Step(999, 5)
	f.SetSource(999, 1, true)
	f.ClearSources(999)
	f.Destroy(999)
	f.Destroy(Invalid)
	f.Destroy(-3)

	after := []int32{f.Value(h, 0), f.Value(h, 1), f.Value(h, 2), f.Value(h, 3)}
	assert.Equal(t, before, after)
	assert.EqualValues(t, 1, f.Round(h))
	assert.True(t, f.IsSource(h, 0))
	assert.Equal(t, 1, f.Len())
	assert.False(t, f.Connect(999, 0, 1))
}

func TestInvalidNodesAbsorbed(t *testing.T) {
	f := NewHops()
	h := f.Create(3, 2)

	f.SetSource(h, 7, true)
	f.SetSource(h, -1, true)
	assert.False(t, f.IsSource(h, 7))
	assert.Equal(t, aggregate.HopUnreached, f.Value(h, 3))
	assert.Equal(t, aggregate.HopUnreached, f.Value(h, -1))
	assert.Nil(t, f.Neighborhood(h, 3))
	single := f.Create(1, 2)
	require.NotEqual(t, Invalid, single)
	assert.Empty(t, f.Neighborhood(single, 0))
	f.Step(h, -4)
	f.Step(h, 0)
	assert.Zero(t, f.Round(h))
}

func TestCreateRejectsBadParams(t *testing.T) {
	f := NewHops()
	assert.Equal(t, Invalid, f.Create(-1, 3))
	assert.Equal(t, Invalid, f.Create(3, -1))
	assert.Zero(t, f.Len())

	d := NewDistances()
	assert.Equal(t, Invalid, d.Create(3, math.NaN()))
	assert.Equal(t, Invalid, d.Create(3, -0.5))
	assert.Equal(t, Invalid, d.Create(-2, 1))
}

func TestCreateRejectsOversizedCounts(t *testing.T) {
	f := NewHops()
	assert.Equal(t, Invalid, f.Create(math.MaxInt32, 3))
	assert.Equal(t, Invalid, f.Create(MaxNodes+1, 3))
	assert.Zero(t, f.Len())

	d := NewDistances()
	assert.Equal(t, Invalid, d.Create(math.MaxInt32, 1))
	assert.Zero(t, d.Len())

	require.ErrorIs(t, checkNodes(MaxNodes+1), ErrTooManyNodes)
	assert.NoError(t, checkNodes(MaxNodes))
}

// TestStaleHandleNeverAliases: a reused slot gets a new generation.
func TestStaleHandleNeverAliases(t *testing.T) {
	f := NewHops()
	old := f.Create(2, 1)
	f.Destroy(old)

	fresh := f.Create(5, 2)
	require.NotEqual(t, old, fresh)
	oldSlot, _, _ := unpack(old)
	freshSlot, _, _ := unpack(fresh)
	assert.Equal(t, oldSlot, freshSlot, "slot reused")

	f.SetSource(old, 0, true)
	assert.False(t, f.IsSource(fresh, 0))
	f.Step(old, 3)
	assert.Zero(t, f.Round(fresh))
}

func TestHopsConnect(t *testing.T) {
	f := NewHops()
	h := f.Create(5, 2)

	assert.True(t, f.Connect(h, 3, 4))
	assert.False(t, f.Connect(h, 3, 3))
	assert.False(t, f.Connect(h, 0, 9))
	assert.Equal(t, []int32{1, 4}, f.Neighborhood(h, 3))
}

func TestDistancesMove(t *testing.T) {
	f := NewDistances()
	h := f.Create(3, 1)
	require.NotEqual(t, Invalid, h)

	// co-located until moved
	assert.Equal(t, []int32{1, 2}, f.Neighborhood(h, 0))

	for i := int32(0); i < 3; i++ {
		f.UpdatePosition(h, i, float64(i), 0, 0)
	}
	f.SetSource(h, 0, true)
	f.Step(h, 3)

	assert.Equal(t, 0.0, f.Value(h, 0))
	assert.Equal(t, 1.0, f.Value(h, 1))
	assert.Equal(t, 2.0, f.Value(h, 2))
	assert.Equal(t, []int32{0, 2}, f.Neighborhood(h, 1))

	p, ok := f.Position(h, 2)
	require.True(t, ok)
	assert.Equal(t, 2.0, p.X)

	f.UpdatePosition(h, 9, 1, 1, 1)
	f.UpdatePosition(999, 0, 1, 1, 1)
	assert.True(t, math.IsInf(f.Value(999, 0), 1))
	assert.True(t, math.IsInf(f.Value(h, 9), 1))
}

func TestDistinctHandlesStepConcurrently(t *testing.T) {
	f := NewHops()
	handles := make([]Handle, 8)
	for i := range handles {
		handles[i] = f.Create(10, 3)
		f.SetSource(handles[i], 0, true)
	}

	var wg sync.WaitGroup
	for _, h := range handles {
		wg.Add(1)
		go func(h Handle) {
			defer wg.Done()
			f.Step(h, 3)
		}(h)
	}
	wg.Wait()

	for _, h := range handles {
		assert.EqualValues(t, 2, f.Value(h, 9))
	}
}

func TestWithLoggerPanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { WithLogger(nil) })
}
