// SPDX-License-Identifier: MIT
// Package: fieldsim/facade
//
// surface.go - the handle operations shared by Hops and Distances.

package facade

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/fieldsim/aggregate"
	"github.com/katalvlaran/fieldsim/engine"
	"github.com/katalvlaran/fieldsim/logging"
	"github.com/katalvlaran/fieldsim/topology"
)

// MaxNodes is the largest node count Create accepts. Larger counts return
// Invalid instead of allocating an engine the host cannot afford.
const MaxNodes = 1 << 16

// ErrTooManyNodes is logged when Create is asked for more than MaxNodes.
var ErrTooManyNodes = errors.New("facade: node count above MaxNodes")

// checkNodes rejects counts above MaxNodes; negative counts are left to the
// engine constructor.
func checkNodes(nodeCount int32) error {
	if nodeCount > MaxNodes {
		return fmt.Errorf("%w: %d", ErrTooManyNodes, nodeCount)
	}

	return nil
}

// Option customises a facade.
type Option func(*config)

type config struct {
	logger *logrus.Logger
	engine []engine.Option
}

// WithLogger logs handle lifecycle events to l. Panics on nil.
func WithLogger(l *logrus.Logger) Option {
	if l == nil {
		panic("facade: WithLogger(nil)")
	}
	return func(c *config) { c.logger = l }
}

// WithEngineOptions applies opts to every engine the facade creates.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(c *config) { c.engine = append(c.engine, opts...) }
}

func newConfig(opts []Option) config {
	c := config{logger: logging.Discard()}
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

type surface[V aggregate.Scalar] struct {
	instances table[*engine.Engine[V]]
	unreached V
	cfg       config
	log       *logrus.Entry
}

func (s *surface[V]) init(name string, unreached V, opts []Option) {
	s.cfg = newConfig(opts)
	s.unreached = unreached
	s.log = s.cfg.logger.WithField("facade", name)
}

func (s *surface[V]) adopt(e *engine.Engine[V], err error, fields logrus.Fields) Handle {
	if err != nil {
		s.log.WithFields(fields).WithError(err).Warn("create rejected")
		return Invalid
	}
	h := s.instances.insert(e)
	if h == Invalid {
		s.log.WithFields(fields).Warn("handle table full")
		return Invalid
	}
	s.log.WithFields(fields).WithField("handle", int32(h)).Debug("instance created")

	return h
}

// Destroy releases h. Destroying an unknown handle does nothing.
func (s *surface[V]) Destroy(h Handle) {
	if s.instances.remove(h) {
		s.log.WithField("handle", int32(h)).Debug("instance destroyed")
	}
}

// Len returns the number of live instances.
func (s *surface[V]) Len() int { return s.instances.len() }

// Valid reports whether h names a live instance.
func (s *surface[V]) Valid(h Handle) bool {
	_, ok := s.instances.lookup(h)
	return ok
}

// SetSource marks or unmarks node as a source for the next round.
func (s *surface[V]) SetSource(h Handle, node int32, isSource bool) {
	s.instances.with(h, func(e *engine.Engine[V]) {
		_ = e.SetSource(topology.NodeID(node), isSource)
	})
}

// ClearSources empties the source set of h.
func (s *surface[V]) ClearSources(h Handle) {
	s.instances.with(h, func(e *engine.Engine[V]) { e.ClearSources() })
}

// IsSource reports whether node is a source of h.
func (s *surface[V]) IsSource(h Handle, node int32) bool {
	var out bool
	s.instances.with(h, func(e *engine.Engine[V]) { out = e.IsSource(topology.NodeID(node)) })

	return out
}

// Step runs rounds rounds on h; non-positive counts do nothing.
func (s *surface[V]) Step(h Handle, rounds int32) {
	if rounds <= 0 {
		return
	}
	s.instances.with(h, func(e *engine.Engine[V]) { e.StepMany(int(rounds)) })
}

// Value returns the latest value of node, or the sentinel.
func (s *surface[V]) Value(h Handle, node int32) V {
	out := s.unreached
	s.instances.with(h, func(e *engine.Engine[V]) { out = e.Value(topology.NodeID(node)) })

	return out
}

// Neighborhood returns the current neighbours of node in ascending order,
// or nil for unknown handles and out-of-range nodes.
func (s *surface[V]) Neighborhood(h Handle, node int32) []int32 {
	var out []int32
	s.instances.with(h, func(e *engine.Engine[V]) {
		nbrs := e.Neighborhood(topology.NodeID(node))
		if nbrs == nil {
			return
		}
		out = make([]int32, len(nbrs))
		for i, id := range nbrs {
			out[i] = int32(id)
		}
	})

	return out
}

// Round returns the number of rounds h has completed, 0 when unknown.
func (s *surface[V]) Round(h Handle) uint64 {
	var out uint64
	s.instances.with(h, func(e *engine.Engine[V]) { out = e.Round() })

	return out
}
