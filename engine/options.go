// SPDX-License-Identifier: MIT
// Package: fieldsim/engine
//
// options.go - functional options for engine construction.
//
// Option constructors validate and panic on meaningless input (nil logger,
// nil metrics); the engine itself never panics.

package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/fieldsim/logging"
)

// Option customises an Engine before its first round.
type Option func(*settings)

type settings struct {
	logger   *logrus.Logger
	metrics  *Metrics
	snapshot bool
}

func defaultSettings() settings {
	return settings{logger: logging.Discard()}
}

// WithLogger routes engine logs to l. Panics on nil.
func WithLogger(l *logrus.Logger) Option {
	if l == nil {
		panic("engine: WithLogger(nil)")
	}
	return func(s *settings) { s.logger = l }
}

// WithMetrics records every round into m. Panics on nil.
func WithMetrics(m *Metrics) Option {
	if m == nil {
		panic("engine: WithMetrics(nil)")
	}
	return func(s *settings) { s.metrics = m }
}

// WithSnapshotRounds stages every send until all devices have stepped, so a
// round only ever reads values produced in earlier rounds.
func WithSnapshotRounds() Option {
	return func(s *settings) { s.snapshot = true }
}
