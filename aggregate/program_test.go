package aggregate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/fieldsim/aggregate"
	"github.com/katalvlaran/fieldsim/topology"
)

func TestHopCountStep(t *testing.T) {
	p := aggregate.HopCount{}
	cases := []struct {
		name   string
		source bool
		field  aggregate.Field[int32]
		want   int32
	}{
		{"source ignores neighbors", true, aggregate.Field[int32]{1: 5}, 0},
		{"source without neighbors", true, nil, 0},
		{"no neighbors", false, nil, aggregate.HopUnreached},
		{"all unreached", false, aggregate.Field[int32]{1: aggregate.HopUnreached, 2: aggregate.HopUnreached}, aggregate.HopUnreached},
		{"min plus one", false, aggregate.Field[int32]{1: 4, 2: 2, 3: aggregate.HopUnreached}, 3},
		{"next to source", false, aggregate.Field[int32]{7: 0}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, p.Step(0, tc.source, tc.field))
		})
	}
	assert.True(t, p.Reached(0))
	assert.False(t, p.Reached(aggregate.HopUnreached))
	assert.Equal(t, "hopcount", p.Name())
}

func TestDistanceStep(t *testing.T) {
	// Edge cost is |a-b| on a number line.
	p := aggregate.NewDistance(func(a, b topology.NodeID) float64 {
		return math.Abs(float64(a - b))
	})
	inf := aggregate.DistanceUnreached

	assert.Equal(t, 0.0, p.Step(3, true, aggregate.Field[float64]{1: 9}))
	assert.True(t, math.IsInf(p.Step(3, false, nil), 1))
	assert.True(t, math.IsInf(p.Step(3, false, aggregate.Field[float64]{1: inf}), 1))
	// via 1: 2+2=4, via 5: 0.5+2=2.5
	assert.InDelta(t, 2.5, p.Step(3, false, aggregate.Field[float64]{1: 2, 5: 0.5}), 1e-12)
	assert.False(t, p.Reached(inf))
	assert.True(t, p.Reached(0))
}

func TestDistanceIgnoresNaNCost(t *testing.T) {
	p := aggregate.NewDistance(func(a, b topology.NodeID) float64 {
		if b == 1 {
			return math.NaN()
		}
		return 1
	})
	assert.Equal(t, 4.0, p.Step(0, false, aggregate.Field[float64]{1: 0, 2: 3}))
}

func TestNewDistancePanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { aggregate.NewDistance(nil) })
}

func TestFieldSenders(t *testing.T) {
	f := aggregate.Field[int32]{5: 1, 2: 1, 9: 1}
	assert.Equal(t, []topology.NodeID{2, 5, 9}, f.Senders())
}
