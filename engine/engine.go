// SPDX-License-Identifier: MIT
// Package: fieldsim/engine
//
// engine.go - the Engine type, source set, value table and round scheduler.

package engine

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/fieldsim/aggregate"
	"github.com/katalvlaran/fieldsim/geom"
	"github.com/katalvlaran/fieldsim/mailbox"
	"github.com/katalvlaran/fieldsim/topology"
)

// Sentinel errors for engine operations.
var (
	// ErrBadNodeCount indicates a negative node count or one that overflows NodeID.
	ErrBadNodeCount = errors.New("engine: invalid node count")

	// ErrNilTopology indicates New was called without a topology.
	ErrNilTopology = errors.New("engine: topology is nil")

	// ErrNilProgram indicates New was called without a program.
	ErrNilProgram = errors.New("engine: program is nil")

	// ErrNodeOutOfRange indicates a node id outside [0, nodeCount).
	ErrNodeOutOfRange = errors.New("engine: node id out of range")

	// ErrStaticTopology indicates a position update on a topology without positions.
	ErrStaticTopology = errors.New("engine: topology has no positions")
)

// Topology kinds reported in logs, metrics and round reports.
const (
	KindDegree   = "degree"
	KindDistance = "distance"
)

// Engine is one simulation instance.
type Engine[V aggregate.Scalar] struct {
	kind    string
	topo    topology.Topology
	box     *mailbox.Mailbox[V]
	program aggregate.Program[V]

	nodeCount int
	order     []topology.NodeID // n-1 … 0
	sources   map[topology.NodeID]struct{}
	values    []V
	round     uint64

	cfg       settings
	log       *logrus.Entry
	observers []Observer[V]
}

// roundStats carries per-round counters to metrics and reports.
type roundStats struct {
	delivered int
	pruned    int
	reached   int
	duration  time.Duration
}

// delivery is a staged send in snapshot mode.
type delivery[V aggregate.Scalar] struct {
	from  topology.NodeID
	value V
}

// New creates an engine over topo, registering nodes 0 … nodeCount-1 in
// ascending order (each registration may auto-connect, see topology). A
// dynamic topology is refreshed once so the engine starts from a consistent
// adjacency.
//
// topo must be empty: registering an id twice fails with the topology's
// ErrDuplicateNode.
func New[V aggregate.Scalar](topo topology.Topology, program aggregate.Program[V], nodeCount int, opts ...Option) (*Engine[V], error) {
	if topo == nil {
		return nil, ErrNilTopology
	}
	if program == nil {
		return nil, ErrNilProgram
	}
	if nodeCount < 0 || nodeCount > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %d", ErrBadNodeCount, nodeCount)
	}

	cfg := defaultSettings()
	for _, opt := range opts {
		opt(&cfg)
	}

	kind := KindDegree
	if topo.Dynamic() {
		kind = KindDistance
	}

	e := &Engine[V]{
		kind:      kind,
		topo:      topo,
		box:       mailbox.New[V](topo),
		program:   program,
		nodeCount: nodeCount,
		order:     make([]topology.NodeID, nodeCount),
		sources:   make(map[topology.NodeID]struct{}),
		values:    make([]V, nodeCount),
		cfg:       cfg,
		log: cfg.logger.WithFields(logrus.Fields{
			"topology": kind,
			"program":  program.Name(),
		}),
	}

	unreached := program.Unreached()
	for i := 0; i < nodeCount; i++ {
		id := topology.NodeID(i)
		if err := topo.Register(id); err != nil {
			return nil, fmt.Errorf("engine: register node %d: %w", i, err)
		}
		e.values[i] = unreached
		e.order[nodeCount-1-i] = id
	}
	e.Refresh()

	e.log.WithFields(logrus.Fields{
		"nodes": nodeCount,
		"edges": topo.EdgeCount(),
	}).Debug("engine created")

	return e, nil
}

// Kind returns KindDegree or KindDistance.
func (e *Engine[V]) Kind() string { return e.kind }

// ProgramName returns the name of the per-device program.
func (e *Engine[V]) ProgramName() string { return e.program.Name() }

// NodeCount returns the fixed number of devices.
func (e *Engine[V]) NodeCount() int { return e.nodeCount }

// Round returns the number of completed rounds.
func (e *Engine[V]) Round() uint64 { return e.round }

// Unreached returns the program's sentinel value.
func (e *Engine[V]) Unreached() V { return e.program.Unreached() }

// Reached reports whether v is a non-sentinel value.
func (e *Engine[V]) Reached(v V) bool { return e.program.Reached(v) }

func (e *Engine[V]) valid(id topology.NodeID) bool {
	return id >= 0 && int(id) < e.nodeCount
}

// SetSource adds (isSource=true) or removes id from the source set.
// Takes effect on the next round.
func (e *Engine[V]) SetSource(id topology.NodeID, isSource bool) error {
	if !e.valid(id) {
		return fmt.Errorf("%w: %d", ErrNodeOutOfRange, id)
	}
	if isSource {
		e.sources[id] = struct{}{}
	} else {
		delete(e.sources, id)
	}

	return nil
}

// ClearSources empties the source set.
func (e *Engine[V]) ClearSources() {
	clear(e.sources)
}

// IsSource reports whether id is currently a source.
func (e *Engine[V]) IsSource(id topology.NodeID) bool {
	_, ok := e.sources[id]
	return ok
}

// Sources returns the source set, ascending.
func (e *Engine[V]) Sources() []topology.NodeID {
	out := make([]topology.NodeID, 0, len(e.sources))
	for id := range e.sources {
		out = append(out, id)
	}
	slices.Sort(out)

	return out
}

// Value returns the latest value of id, or the sentinel for ids that were
// never reached or are out of range.
func (e *Engine[V]) Value(id topology.NodeID) V {
	if !e.valid(id) {
		return e.program.Unreached()
	}

	return e.values[id]
}

// Values returns a copy of the value table, indexed by node id.
func (e *Engine[V]) Values() []V {
	return slices.Clone(e.values)
}

// Neighborhood returns the current neighbors of id, ascending; nil for
// out-of-range ids.
func (e *Engine[V]) Neighborhood(id topology.NodeID) []topology.NodeID {
	if !e.valid(id) {
		return nil
	}

	return e.topo.Neighbors(id)
}

// Edges returns the current adjacency as sorted undirected edges.
func (e *Engine[V]) Edges() []topology.Edge { return e.topo.Edges() }

// Validate checks the topology invariants.
func (e *Engine[V]) Validate() error { return e.topo.Validate() }

// Buffered returns the number of entries currently held by the mailbox.
func (e *Engine[V]) Buffered() int { return e.box.Len() }

// Connect adds an explicit edge on a degree-capped topology and reports
// whether it was added. Dynamic topologies always return false: their
// adjacency is derived from positions only.
func (e *Engine[V]) Connect(a, b topology.NodeID) bool {
	static, ok := e.topo.(*topology.DegreeCapped)
	if !ok || !e.valid(a) || !e.valid(b) {
		return false
	}

	return static.Connect(a, b)
}

// UpdatePosition moves id; the move is applied by the next round's refresh.
func (e *Engine[V]) UpdatePosition(id topology.NodeID, p geom.Position) error {
	mobile, ok := e.topo.(topology.Positioned)
	if !ok {
		return ErrStaticTopology
	}
	if !e.valid(id) {
		return fmt.Errorf("%w: %d", ErrNodeOutOfRange, id)
	}

	return mobile.UpdatePosition(id, p)
}

// Position returns the live position of id on a positioned topology.
func (e *Engine[V]) Position(id topology.NodeID) (geom.Position, bool) {
	mobile, ok := e.topo.(topology.Positioned)
	if !ok {
		return geom.Position{}, false
	}

	return mobile.Position(id)
}

// Observe registers o to receive a report after every round.
func (e *Engine[V]) Observe(o Observer[V]) {
	if o != nil {
		e.observers = append(e.observers, o)
	}
}

// Refresh recomputes a dynamic topology from the current positions and drops
// mailbox entries from senders that are no longer neighbours, without
// running a round. It returns the number of pruned entries and does nothing
// on static topologies. Call it after placing devices so that adjacency
// reads reflect the placement before the first StepOnce.
func (e *Engine[V]) Refresh() int {
	if !e.topo.Dynamic() {
		return 0
	}
	e.topo.Refresh()

	return e.box.Prune()
}

// StepMany runs exactly rounds rounds; rounds ≤ 0 does nothing.
func (e *Engine[V]) StepMany(rounds int) {
	for i := 0; i < rounds; i++ {
		e.StepOnce()
	}
}

// StepOnce runs one round: refresh and prune (dynamic topologies), then every
// device in descending id order.
func (e *Engine[V]) StepOnce() {
	start := time.Now()
	var stats roundStats

	stats.pruned = e.Refresh()

	var staged []delivery[V]
	if e.cfg.snapshot {
		staged = make([]delivery[V], 0, e.nodeCount)
	}
	tracing := e.log.Logger.IsLevelEnabled(logrus.TraceLevel)

	for _, id := range e.order {
		field := aggregate.Field[V](e.box.Receive(id))
		_, source := e.sources[id]
		v := e.program.Step(id, source, field)
		e.values[id] = v

		if tracing {
			e.log.WithFields(logrus.Fields{
				"round":     e.round + 1,
				"node":      id,
				"source":    source,
				"neighbors": len(field),
				"value":     v,
			}).Trace("device step")
		}

		if e.cfg.snapshot {
			staged = append(staged, delivery[V]{from: id, value: v})
			continue
		}
		stats.delivered += e.box.Send(id, v)
	}
	for _, d := range staged {
		stats.delivered += e.box.Send(d.from, d.value)
	}

	e.round++
	for _, v := range e.values {
		if e.program.Reached(v) {
			stats.reached++
		}
	}
	stats.duration = time.Since(start)

	edges := e.topo.EdgeCount()
	e.cfg.metrics.record(e.kind, e.program.Name(), e.nodeCount, edges, stats)
	e.log.WithFields(logrus.Fields{
		"round":     e.round,
		"reached":   stats.reached,
		"delivered": stats.delivered,
		"pruned":    stats.pruned,
		"edges":     edges,
	}).Debug("round complete")

	if len(e.observers) > 0 {
		e.notify(stats)
	}
}

func (e *Engine[V]) notify(stats roundStats) {
	report := RoundReport[V]{
		Round:     e.round,
		Kind:      e.kind,
		Program:   e.program.Name(),
		Values:    e.Values(),
		Unreached: e.program.Unreached(),
		Sources:   e.Sources(),
		Edges:     e.topo.Edges(),
		Reached:   stats.reached,
		Delivered: stats.delivered,
		Pruned:    stats.pruned,
		Duration:  stats.duration,
	}
	for _, o := range e.observers {
		o.ObserveRound(report)
	}
}
