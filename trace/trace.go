// SPDX-License-Identifier: MIT
// Package: fieldsim/trace
//
// Package trace records simulation rounds into a SQLite database. Each run
// gets a random UUID; every observed round adds one rounds row, one
// node_values row per device and one edges row per undirected edge.
//
// The trace is an export sink. Nothing reads it back into an engine.

package trace

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/katalvlaran/fieldsim/aggregate"
	"github.com/katalvlaran/fieldsim/engine"
	"github.com/katalvlaran/fieldsim/logging"
	"github.com/katalvlaran/fieldsim/topology"
)

// ErrClosed indicates use of a closed Recorder.
var ErrClosed = errors.New("trace: recorder closed")

// Recorder owns the database handle.
type Recorder struct {
	mu     sync.Mutex
	db     *sql.DB
	log    *logrus.Logger
	closed bool
}

// RecorderOption customises a Recorder.
type RecorderOption func(*Recorder)

// WithLogger logs write failures to l. Panics on nil.
func WithLogger(l *logrus.Logger) RecorderOption {
	if l == nil {
		panic("trace: WithLogger(nil)")
	}
	return func(r *Recorder) { r.log = l }
}

// Open opens (or creates) the trace database at path. ":memory:" keeps it in
// memory for the life of the Recorder.
func Open(ctx context.Context, path string, opts ...RecorderOption) (*Recorder, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open trace database: %w", err)
	}
	// one connection: SQLite has a single writer, and :memory: is per connection
	db.SetMaxOpenConns(1)

	if err := InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	r := &Recorder{db: db, log: logging.Discard()}
	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Close releases the database.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true

	return r.db.Close()
}

// RunInfo describes a run at creation.
type RunInfo struct {
	Name      string
	Topology  string
	Program   string
	Nodes     int
	Parameter float64 // max degree or max distance
}

// Run is one recorded simulation.
type Run struct {
	ID  uuid.UUID
	rec *Recorder

	mu  sync.Mutex
	err error
}

// Begin inserts a runs row and returns its handle.
func (r *Recorder) Begin(ctx context.Context, info RunInfo) (*Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}

	run := &Run{ID: uuid.New(), rec: r}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO runs (id, name, topology, program, nodes, parameter, started_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(), info.Name, info.Topology, info.Program, info.Nodes, info.Parameter,
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}

	return run, nil
}

// Err returns the first write error seen by an observer of this run.
func (run *Run) Err() error {
	run.mu.Lock()
	defer run.mu.Unlock()

	return run.err
}

func (run *Run) fail(err error) {
	run.mu.Lock()
	defer run.mu.Unlock()
	if run.err == nil {
		run.err = err
	}
}

// Observer adapts run to an engine observer. Write failures are logged and
// kept for Run.Err; the engine is never interrupted.
func Observer[V aggregate.Scalar](run *Run) engine.Observer[V] {
	return engine.ObserverFunc[V](func(rep engine.RoundReport[V]) {
		if err := record(context.Background(), run, rep); err != nil {
			run.rec.log.WithError(err).WithFields(logrus.Fields{
				"run":   run.ID.String(),
				"round": rep.Round,
			}).Error("trace write failed")
			run.fail(err)
		}
	})
}

func record[V aggregate.Scalar](ctx context.Context, run *Run, rep engine.RoundReport[V]) error {
	r := run.rec
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id := run.ID.String()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO rounds (run_id, round, reached, delivered, pruned, edges, duration_ns) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, rep.Round, rep.Reached, rep.Delivered, rep.Pruned, len(rep.Edges), rep.Duration.Nanoseconds()); err != nil {
		return fmt.Errorf("failed to insert round: %w", err)
	}

	sources := make(map[topology.NodeID]bool, len(rep.Sources))
	for _, s := range rep.Sources {
		sources[s] = true
	}
	valStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO node_values (run_id, round, node, value, source) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare value insert: %w", err)
	}
	defer valStmt.Close()
	for node, v := range rep.Values {
		var value sql.NullFloat64
		if v != rep.Unreached {
			value = sql.NullFloat64{Float64: float64(v), Valid: true}
		}
		if _, err := valStmt.ExecContext(ctx, id, rep.Round, node, value, sources[topology.NodeID(node)]); err != nil {
			return fmt.Errorf("failed to insert value of node %d: %w", node, err)
		}
	}

	edgeStmt, err := tx.PrepareContext(ctx, `INSERT INTO edges (run_id, round, a, b) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare edge insert: %w", err)
	}
	defer edgeStmt.Close()
	for _, e := range rep.Edges {
		if _, err := edgeStmt.ExecContext(ctx, id, rep.Round, int32(e.A), int32(e.B)); err != nil {
			return fmt.Errorf("failed to insert edge %d-%d: %w", e.A, e.B, err)
		}
	}

	return tx.Commit()
}
