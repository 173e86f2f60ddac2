// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()

	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "fieldsim version "+version+"\n", out)
}

// TestRunPrintsConsoleRounds: the default scenario prints the console host layout.
func TestRunPrintsConsoleRounds(t *testing.T) {
	out, err := execute(t, "run", "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, out, "Round 1\n  Device 0 -> 0\n  Device 1 -> unreached\n")
	assert.Contains(t, out, "Round 10\n")
	assert.Contains(t, out, "  Device 9 -> 2\n")
	assert.Equal(t, 10, strings.Count(out, "Round "))
}

func TestRunJSON(t *testing.T) {
	out, err := execute(t, "run", "--json", "--rounds", "1", "--log-level", "error")
	require.NoError(t, err)

	var s summary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.EqualValues(t, 1, s.Rounds)
	assert.False(t, s.Settled)
	require.Len(t, s.Values, 10)
	require.NotNil(t, s.Values[0])
	assert.Equal(t, 0.0, *s.Values[0])
	assert.Nil(t, s.Values[1])
}

func TestVerify(t *testing.T) {
	out, err := execute(t, "verify", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "settled after 10 rounds: 10 of 10 devices reached")

	out, err = execute(t, "verify", "--rounds", "1", "--log-level", "error")
	assert.Error(t, err)
	assert.Contains(t, out, "Device 1 -> unreached, expected 1")
}

func TestVerifyDistanceFlags(t *testing.T) {
	out, err := execute(t, "verify", "--topology", "distance", "--max-distance", "3",
		"--layout", "grid", "--sources", "0,9", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "10 of 10 devices reached")
}

func TestNeighbors(t *testing.T) {
	out, err := execute(t, "neighbors", "--rounds", "0", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "0: 1 2 3\n")
	assert.Contains(t, out, "1: 0 4 5\n")
	assert.Contains(t, out, "9: 3\n")
	assert.Contains(t, out, "components: 1\n")

	out, err = execute(t, "neighbors", "--rounds", "0", "--topology", "distance",
		"--max-distance", "1", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "components: 10\n")
}

func TestRunRejectsBadScenario(t *testing.T) {
	_, err := execute(t, "run", "--nodes", "-1")
	assert.Error(t, err)

	_, err = execute(t, "run", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBatchWithTrace(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	require.NoError(t, os.WriteFile(a, []byte("name: tree\nlogging: {level: error}\n"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("name: grid\ntopology: {kind: distance}\n"), 0o600))
	db := filepath.Join(dir, "trace.db")

	out, err := execute(t, "batch", "--json", "--trace", db, a, b)
	require.NoError(t, err)

	var sums []summary
	require.NoError(t, json.Unmarshal([]byte(out), &sums))
	require.Len(t, sums, 2)
	assert.Equal(t, "tree", sums[0].Name)
	assert.Equal(t, "distance", sums[1].Kind)
	for _, s := range sums {
		assert.True(t, s.Settled, s.Name)
		assert.NotEmpty(t, s.RunID)
	}
	_, err = os.Stat(db)
	assert.NoError(t, err)
}

func TestBatchNeedsArgs(t *testing.T) {
	_, err := execute(t, "batch")
	assert.Error(t, err)
}
