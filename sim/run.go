// SPDX-License-Identifier: MIT
// Package: fieldsim/sim

package sim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/fieldsim/aggregate"
	"github.com/katalvlaran/fieldsim/config"
	"github.com/katalvlaran/fieldsim/dfs"
	"github.com/katalvlaran/fieldsim/engine"
	"github.com/katalvlaran/fieldsim/layout"
	"github.com/katalvlaran/fieldsim/topology"
	"github.com/katalvlaran/fieldsim/trace"
)

// ErrNotSettled is returned by Verify when the field differs from the
// reference shortest paths.
var ErrNotSettled = errors.New("sim: field not settled")

// Mismatch is one node whose value differs from the reference.
type Mismatch struct {
	Node     topology.NodeID
	Got      float64
	Expected float64
}

// Result is the outcome of one scenario. Values and Expected use +Inf for
// unreached nodes regardless of the program's own sentinel.
type Result struct {
	Name       string
	Kind       string
	Program    string
	Nodes      int
	Rounds     uint64
	Sources    []topology.NodeID
	Edges      []topology.Edge
	Components [][]topology.NodeID
	Values     []float64
	Expected   []float64
	Reached    int
	Mismatches []Mismatch
	RunID      string // trace run id, empty when not traced
}

// Settled reports whether every value equals its reference.
func (r *Result) Settled() bool { return len(r.Mismatches) == 0 }

// Run executes sc and compares the final field with the reference.
func Run(ctx context.Context, sc *config.Scenario, opts ...Option) (*Result, error) {
	cfg := defaultSettings()
	for _, opt := range opts {
		opt(&cfg)
	}

	return run(ctx, sc, cfg)
}

// Verify runs sc and returns ErrNotSettled (with the result) on any mismatch.
func Verify(ctx context.Context, sc *config.Scenario, opts ...Option) (*Result, error) {
	res, err := Run(ctx, sc, opts...)
	if err != nil {
		return nil, err
	}
	if !res.Settled() {
		return res, fmt.Errorf("%w: %d of %d nodes differ after %d rounds",
			ErrNotSettled, len(res.Mismatches), res.Nodes, res.Rounds)
	}

	return res, nil
}

func run(ctx context.Context, sc *config.Scenario, cfg settings) (*Result, error) {
	if sc == nil {
		return nil, errors.New("sim: scenario is nil")
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	log := cfg.logger.WithFields(logrus.Fields{"scenario": sc.Name, "topology": sc.Topology.Kind})
	engOpts := []engine.Option{engine.WithLogger(cfg.logger)}
	if cfg.metrics != nil {
		engOpts = append(engOpts, engine.WithMetrics(cfg.metrics))
	}
	if sc.Snapshot {
		engOpts = append(engOpts, engine.WithSnapshotRounds())
	}

	switch sc.Topology.Kind {
	case config.TopologyDegree:
		e, err := engine.NewHopCount(sc.Nodes, sc.Topology.MaxDegree, engOpts...)
		if err != nil {
			return nil, err
		}
		for _, l := range sc.Links {
			if !e.Connect(topology.NodeID(l.A), topology.NodeID(l.B)) {
				log.WithFields(logrus.Fields{"a": l.A, "b": l.B}).Warn("link rejected")
			}
		}

		return execute(ctx, sc, cfg, log, e, float64(sc.Topology.MaxDegree), hopReference)

	case config.TopologyDistance:
		e, err := engine.NewDistance(sc.Nodes, sc.Topology.MaxDistance, engOpts...)
		if err != nil {
			return nil, err
		}
		p, err := layout.ByName(sc.Layout.Kind, sc.Layout.Columns, sc.Layout.Spacing, sc.Layout.Seed)
		if err != nil {
			return nil, err
		}
		positions, err := layout.Place(p, sc.Nodes)
		if err != nil {
			return nil, err
		}
		for i, pos := range positions {
			if err := e.UpdatePosition(topology.NodeID(i), pos); err != nil {
				return nil, err
			}
		}
		e.Refresh()

		return execute(ctx, sc, cfg, log, e, sc.Topology.MaxDistance, distanceReference)
	}

	return nil, fmt.Errorf("%w: unknown topology kind %q", config.ErrInvalid, sc.Topology.Kind)
}

// reference computes the expected settled field over the engine's topology.
type reference[V aggregate.Scalar] func(g engineGraph[V], sources []topology.NodeID) ([]float64, error)

func execute[V aggregate.Scalar](
	ctx context.Context,
	sc *config.Scenario,
	cfg settings,
	log *logrus.Entry,
	e *engine.Engine[V],
	parameter float64,
	ref reference[V],
) (*Result, error) {
	for _, id := range sc.Sources {
		if err := e.SetSource(topology.NodeID(id), true); err != nil {
			return nil, err
		}
	}

	res := &Result{Name: sc.Name, Kind: e.Kind(), Program: e.ProgramName(), Nodes: sc.Nodes}

	var traced *trace.Run
	if cfg.recorder != nil {
		run, err := cfg.recorder.Begin(ctx, trace.RunInfo{
			Name:      sc.Name,
			Topology:  e.Kind(),
			Program:   e.ProgramName(),
			Nodes:     sc.Nodes,
			Parameter: parameter,
		})
		if err != nil {
			return nil, err
		}
		traced = run
		res.RunID = run.ID.String()
		e.Observe(trace.Observer[V](run))
	}
	if len(cfg.hooks) > 0 {
		e.Observe(engine.ObserverFunc[V](func(r engine.RoundReport[V]) {
			values := toFloats(r.Values, r.Unreached)
			for _, hook := range cfg.hooks {
				hook(r.Round, values)
			}
		}))
	}

	log.WithFields(logrus.Fields{"nodes": sc.Nodes, "rounds": sc.Rounds}).Info("run started")
	for r := 1; r <= sc.Rounds; r++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, m := range sc.MovesAt(r) {
			if err := e.UpdatePosition(topology.NodeID(m.Node), m.Position); err != nil {
				return nil, fmt.Errorf("sim: move before round %d: %w", r, err)
			}
		}
		e.StepOnce()
	}
	if traced != nil {
		if err := traced.Err(); err != nil {
			return nil, err
		}
	}

	res.Rounds = e.Round()
	res.Sources = e.Sources()
	res.Edges = e.Edges()
	res.Values = toFloats(e.Values(), e.Unreached())
	for _, v := range res.Values {
		if !math.IsInf(v, 1) {
			res.Reached++
		}
	}

	g := engineGraph[V]{e: e}
	comps, err := dfs.Components(g)
	if err != nil {
		return nil, err
	}
	res.Components = comps
	expected, err := ref(g, res.Sources)
	if err != nil {
		return nil, err
	}
	res.Expected = expected
	res.Mismatches = compare(res.Values, expected)

	log.WithFields(logrus.Fields{
		"rounds":     res.Rounds,
		"reached":    res.Reached,
		"components": len(res.Components),
		"settled":    res.Settled(),
	}).Info("run finished")

	return res, nil
}

func toFloats[V aggregate.Scalar](values []V, unreached V) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if v == unreached {
			out[i] = math.Inf(1)
			continue
		}
		out[i] = float64(v)
	}

	return out
}

const tolerance = 1e-9

func compare(got, expected []float64) []Mismatch {
	var out []Mismatch
	for i := range got {
		g, x := got[i], expected[i]
		if g == x {
			continue
		}
		if !math.IsInf(g, 0) && !math.IsInf(x, 0) && math.Abs(g-x) <= tolerance*math.Max(1, math.Abs(x)) {
			continue
		}
		out = append(out, Mismatch{Node: topology.NodeID(i), Got: g, Expected: x})
	}

	return out
}
