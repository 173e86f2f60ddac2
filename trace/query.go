// SPDX-License-Identifier: MIT
// Package: fieldsim/trace

package trace

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// RunSummary is one runs row with its round count.
type RunSummary struct {
	ID        uuid.UUID
	Name      string
	Topology  string
	Program   string
	Nodes     int
	Parameter float64
	StartedAt time.Time
	Rounds    int
}

// Runs lists recorded runs, oldest first.
func (r *Recorder) Runs(ctx context.Context) ([]RunSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT r.id, r.name, r.topology, r.program, r.nodes, r.parameter, r.started_at,
		       (SELECT COUNT(*) FROM rounds WHERE run_id = r.id)
		FROM runs r ORDER BY r.started_at, r.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			s       RunSummary
			id      string
			started string
		)
		if err := rows.Scan(&id, &s.Name, &s.Topology, &s.Program, &s.Nodes, &s.Parameter, &started, &s.Rounds); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if s.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("corrupt run id %q: %w", id, err)
		}
		if s.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("corrupt start time %q: %w", started, err)
		}
		out = append(out, s)
	}

	return out, rows.Err()
}

// Values returns the node values recorded for round, indexed by node id.
// Unreached nodes read back as +Inf.
func (r *Recorder) Values(ctx context.Context, run uuid.UUID, round uint64) ([]float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT node, value FROM node_values WHERE run_id = ? AND round = ? ORDER BY node`,
		run.String(), round)
	if err != nil {
		return nil, fmt.Errorf("failed to query values: %w", err)
	}
	defer rows.Close()

	var out []float64
	for rows.Next() {
		var (
			node  int
			value *float64
		)
		if err := rows.Scan(&node, &value); err != nil {
			return nil, fmt.Errorf("failed to scan value: %w", err)
		}
		v := math.Inf(1)
		if value != nil {
			v = *value
		}
		out = append(out, v)
	}

	return out, rows.Err()
}

// RowCounts returns how many rounds, node_values and edges rows run owns.
func (r *Recorder) RowCounts(ctx context.Context, run uuid.UUID) (rounds, values, edges int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0, 0, 0, ErrClosed
	}

	id := run.String()
	for _, q := range []struct {
		sql string
		dst *int
	}{
		{`SELECT COUNT(*) FROM rounds WHERE run_id = ?`, &rounds},
		{`SELECT COUNT(*) FROM node_values WHERE run_id = ?`, &values},
		{`SELECT COUNT(*) FROM edges WHERE run_id = ?`, &edges},
	} {
		if err = r.db.QueryRowContext(ctx, q.sql, id).Scan(q.dst); err != nil {
			return 0, 0, 0, fmt.Errorf("failed to count rows: %w", err)
		}
	}

	return rounds, values, edges, nil
}
