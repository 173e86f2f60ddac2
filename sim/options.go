// SPDX-License-Identifier: MIT
// Package: fieldsim/sim

package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/fieldsim/engine"
	"github.com/katalvlaran/fieldsim/logging"
	"github.com/katalvlaran/fieldsim/trace"
)

// RoundHook receives the field after every round; unreached nodes are +Inf.
// RunBatch calls hooks from several goroutines at once.
type RoundHook func(round uint64, values []float64)

// Option customises Run and RunBatch.
type Option func(*settings)

type settings struct {
	logger   *logrus.Logger
	metrics  *engine.Metrics
	recorder *trace.Recorder
	hooks    []RoundHook
	parallel int
}

func defaultSettings() settings {
	return settings{logger: logging.Discard()}
}

// WithLogger sets the logger for the runner and its engines. Panics on nil.
func WithLogger(l *logrus.Logger) Option {
	if l == nil {
		panic("sim: WithLogger(nil)")
	}
	return func(s *settings) { s.logger = l }
}

// WithMetrics records every round of every engine into m. Panics on nil.
func WithMetrics(m *engine.Metrics) Option {
	if m == nil {
		panic("sim: WithMetrics(nil)")
	}
	return func(s *settings) { s.metrics = m }
}

// WithRecorder traces every run into rec. Panics on nil.
func WithRecorder(rec *trace.Recorder) Option {
	if rec == nil {
		panic("sim: WithRecorder(nil)")
	}
	return func(s *settings) { s.recorder = rec }
}

// WithRoundHook calls fn after every round. Panics on nil.
func WithRoundHook(fn RoundHook) Option {
	if fn == nil {
		panic("sim: WithRoundHook(nil)")
	}
	return func(s *settings) { s.hooks = append(s.hooks, fn) }
}

// WithParallelism caps concurrent runs in RunBatch; n ≤ 0 means GOMAXPROCS.
func WithParallelism(n int) Option {
	return func(s *settings) { s.parallel = n }
}
