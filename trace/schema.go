// SPDX-License-Identifier: MIT
// Package: fieldsim/trace

package trace

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the current trace schema version.
const SchemaVersion = 1

const schemaSQL = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	topology   TEXT NOT NULL,
	program    TEXT NOT NULL,
	nodes      INTEGER NOT NULL,
	parameter  REAL NOT NULL,
	started_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS rounds (
	run_id      TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	round       INTEGER NOT NULL,
	reached     INTEGER NOT NULL,
	delivered   INTEGER NOT NULL,
	pruned      INTEGER NOT NULL,
	edges       INTEGER NOT NULL,
	duration_ns INTEGER NOT NULL,
	PRIMARY KEY (run_id, round)
);

-- value is NULL while a node is unreached
CREATE TABLE IF NOT EXISTS node_values (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	round  INTEGER NOT NULL,
	node   INTEGER NOT NULL,
	value  REAL,
	source INTEGER NOT NULL,
	PRIMARY KEY (run_id, round, node)
);

CREATE TABLE IF NOT EXISTS edges (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	round  INTEGER NOT NULL,
	a      INTEGER NOT NULL,
	b      INTEGER NOT NULL,
	PRIMARY KEY (run_id, round, a, b)
);
`

// InitSchema creates the tables if needed and records the schema version.
func InitSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`, SchemaVersion); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	return tx.Commit()
}
