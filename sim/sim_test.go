// SPDX-License-Identifier: MIT
package sim_test

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fieldsim/config"
	"github.com/katalvlaran/fieldsim/engine"
	"github.com/katalvlaran/fieldsim/geom"
	"github.com/katalvlaran/fieldsim/layout"
	"github.com/katalvlaran/fieldsim/sim"
	"github.com/katalvlaran/fieldsim/topology"
	"github.com/katalvlaran/fieldsim/trace"
)

func distanceScenario() *config.Scenario {
	sc := config.Default()
	sc.Name = "grid"
	sc.Topology.Kind = config.TopologyDistance
	return sc
}

func TestRunDefaultScenario(t *testing.T) {
	res, err := sim.Verify(context.Background(), config.Default())
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 1, 1, 1, 2, 2, 2, 2, 2, 2}, res.Values)
	assert.Equal(t, res.Values, res.Expected)
	assert.EqualValues(t, 10, res.Rounds)
	assert.Equal(t, 10, res.Reached)
	assert.Equal(t, engine.KindDegree, res.Kind)
	assert.Len(t, res.Edges, 9)
	assert.Len(t, res.Components, 1)
	assert.Empty(t, res.RunID)
}

// TestRunDistanceGrid: on the 5×2 host grid each value is 3 × Manhattan hops.
func TestRunDistanceGrid(t *testing.T) {
	res, err := sim.Verify(context.Background(), distanceScenario())
	require.NoError(t, err)

	want := []float64{0, 3, 6, 9, 12, 3, 6, 9, 12, 15}
	for i, w := range want {
		assert.InDelta(t, w, res.Values[i], 1e-9, "node %d", i)
	}
	assert.Len(t, res.Edges, 13)
}

// TestRunZeroRoundsReportsPlacedTopology: with no rounds the reported
// adjacency, components and reference already follow the layout.
func TestRunZeroRoundsReportsPlacedTopology(t *testing.T) {
	sc := distanceScenario()
	sc.Rounds = 0

	res, err := sim.Run(context.Background(), sc)
	require.NoError(t, err)
	assert.Zero(t, res.Rounds)
	assert.Len(t, res.Edges, 13)
	assert.Contains(t, res.Edges, topology.Edge{A: 0, B: 1})
	assert.Contains(t, res.Edges, topology.Edge{A: 0, B: 5})
	assert.NotContains(t, res.Edges, topology.Edge{A: 0, B: 2})
	assert.Len(t, res.Components, 1)
	assert.InDelta(t, 15, res.Expected[9], 1e-9)

	sc.Topology.MaxDistance = 1
	res, err = sim.Run(context.Background(), sc)
	require.NoError(t, err)
	assert.Empty(t, res.Edges)
	assert.Len(t, res.Components, 10)
	assert.True(t, math.IsInf(res.Expected[1], 1))
}

func TestRunAppliesMoves(t *testing.T) {
	sc := distanceScenario()
	sc.Nodes = 3
	sc.Topology.MaxDistance = 1
	sc.Layout = config.LayoutConfig{Kind: layout.KindLine, Spacing: 1}
	sc.Rounds = 8
	sc.Moves = []config.Move{{Round: 4, Node: 2, Position: geom.At(0.5, 0, 0)}}

	res, err := sim.Verify(context.Background(), sc)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, res.Values[2], 1e-12)

	sc.Moves = []config.Move{{Round: 4, Node: 2, Position: geom.At(50, 0, 0)}}
	res, err = sim.Verify(context.Background(), sc)
	require.NoError(t, err)
	assert.True(t, math.IsInf(res.Values[2], 1))
	assert.Equal(t, 2, res.Reached)
	assert.Equal(t, [][]topology.NodeID{{0, 1}, {2}}, res.Components)
}

func TestVerifyReportsUnsettledField(t *testing.T) {
	sc := config.Default()
	sc.Rounds = 1

	res, err := sim.Verify(context.Background(), sc)
	require.ErrorIs(t, err, sim.ErrNotSettled)
	require.NotNil(t, res)
	assert.False(t, res.Settled())
	assert.Len(t, res.Mismatches, 9)
	assert.Equal(t, 1.0, res.Mismatches[0].Expected)
	assert.True(t, math.IsInf(res.Mismatches[0].Got, 1))
}

func TestRunLinks(t *testing.T) {
	sc := config.Default()
	sc.Nodes = 5
	sc.Topology.MaxDegree = 2
	sc.Sources = []int32{3}
	sc.Links = []config.Link{{A: 3, B: 4}, {A: 0, B: 4}}

	res, err := sim.Verify(context.Background(), sc)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 1, 2, 0, 1}, res.Values)
}

func TestRunSnapshotSettles(t *testing.T) {
	sc := config.Default()
	sc.Snapshot = true

	res, err := sim.Verify(context.Background(), sc)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 1, 1, 2, 2, 2, 2, 2, 2}, res.Values)
}

func TestRunHooksMetricsAndTrace(t *testing.T) {
	ctx := context.Background()
	rec, err := trace.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer rec.Close()

	reg := prometheus.NewRegistry()
	m := engine.NewMetrics(reg)

	var rounds []uint64
	res, err := sim.Run(ctx, config.Default(),
		sim.WithRecorder(rec),
		sim.WithMetrics(m),
		sim.WithRoundHook(func(r uint64, values []float64) {
			rounds = append(rounds, r)
			assert.Len(t, values, 10)
		}),
	)
	require.NoError(t, err)

	assert.Equal(t, []uint64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, rounds)
	require.NotEmpty(t, res.RunID)

	runs, err := rec.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 10, runs[0].Rounds)
	_, values, _, err := rec.RowCounts(ctx, runs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 100, values)

	n, err := testutil.GatherAndCount(reg, "fieldsim_rounds_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRunRejects(t *testing.T) {
	_, err := sim.Run(context.Background(), nil)
	assert.Error(t, err)

	sc := config.Default()
	sc.Sources = []int32{42}
	_, err = sim.Run(context.Background(), sc)
	assert.ErrorIs(t, err, config.ErrInvalid)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sim.Run(ctx, config.Default())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunBatch(t *testing.T) {
	var scenarios []*config.Scenario
	for n := 1; n <= 6; n++ {
		sc := config.Default()
		sc.Nodes = n * 4
		scenarios = append(scenarios, sc)
	}
	scenarios = append(scenarios, distanceScenario())

	var (
		mu    sync.Mutex
		calls int
	)
	results, err := sim.RunBatch(context.Background(), scenarios,
		sim.WithParallelism(3),
		sim.WithRoundHook(func(uint64, []float64) {
			mu.Lock()
			calls++
			mu.Unlock()
		}),
	)
	require.NoError(t, err)
	require.Len(t, results, len(scenarios))
	for i, res := range results {
		assert.Equal(t, scenarios[i].Nodes, res.Nodes)
	}
	assert.Equal(t, 10*len(scenarios), calls)
	assert.Equal(t, engine.KindDistance, results[6].Kind)
}

func TestRunBatchFailsFast(t *testing.T) {
	bad := config.Default()
	bad.Rounds = -1
	_, err := sim.RunBatch(context.Background(), []*config.Scenario{config.Default(), bad})
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestOptionsPanicOnNil(t *testing.T) {
	assert.Panics(t, func() { sim.WithLogger(nil) })
	assert.Panics(t, func() { sim.WithMetrics(nil) })
	assert.Panics(t, func() { sim.WithRecorder(nil) })
	assert.Panics(t, func() { sim.WithRoundHook(nil) })
}
