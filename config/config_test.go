// SPDX-License-Identifier: MIT
package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fieldsim/geom"
)

func TestDefaultReproducesConsoleHost(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())

	assert.Equal(t, 10, s.Nodes)
	assert.Equal(t, TopologyDegree, s.Topology.Kind)
	assert.Equal(t, 3, s.Topology.MaxDegree)
	assert.Equal(t, []int32{0}, s.Sources)
	assert.Equal(t, 10, s.Rounds)
	assert.Equal(t, 5, s.Layout.Columns)
	assert.Equal(t, 3.0, s.Layout.Spacing)
}

func TestParseDistanceScenario(t *testing.T) {
	t.Setenv("FIELDSIM_LOG_LEVEL", "")
	doc := `
name: moving
nodes: 6
topology:
  kind: distance
  max_distance: 1.5
sources: [0, 5]
rounds: 4
layout:
  kind: line
  spacing: 1
moves:
  - round: 2
    node: 3
    position: {x: 9, y: 0, z: 0}
  - round: 2
    node: 4
    position: {x: 1, y: 1, z: 0}
`
	s, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.NoError(t, s.Validate())

	assert.Equal(t, "moving", s.Name)
	assert.Equal(t, []int32{0, 5}, s.Sources)
	assert.Equal(t, 1.5, s.Topology.MaxDistance)
	assert.Equal(t, 3, s.Topology.MaxDegree, "unset fields keep defaults")
	require.Len(t, s.MovesAt(2), 2)
	assert.Equal(t, geom.At(9, 0, 0), s.MovesAt(2)[0].Position)
	assert.Empty(t, s.MovesAt(1))
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("nodes: 3\nmax_hops: 4\n"))
	assert.Error(t, err)
}

func TestParseEmptyDocument(t *testing.T) {
	s, err := Parse([]byte("# nothing here\n"))
	require.NoError(t, err)
	assert.Equal(t, Default().Nodes, s.Nodes)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nodes: 4\nrounds: 2\n"), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Nodes)
	assert.Equal(t, 2, s.Rounds)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	s := Default()
	s.Links = []Link{{A: 3, B: 4}}
	data, err := s.Marshal()
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, s.Links, back.Links)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Scenario)
	}{
		{"negative nodes", func(s *Scenario) { s.Nodes = -1 }},
		{"negative rounds", func(s *Scenario) { s.Rounds = -2 }},
		{"unknown kind", func(s *Scenario) { s.Topology.Kind = "mesh" }},
		{"negative degree", func(s *Scenario) { s.Topology.MaxDegree = -1 }},
		{"nan distance", func(s *Scenario) {
			s.Topology.Kind = TopologyDistance
			s.Topology.MaxDistance = math.NaN()
		}},
		{"source out of range", func(s *Scenario) { s.Sources = []int32{10} }},
		{"moves on degree", func(s *Scenario) { s.Moves = []Move{{Round: 1}} }},
		{"links on distance", func(s *Scenario) {
			s.Topology.Kind = TopologyDistance
			s.Links = []Link{{A: 0, B: 1}}
		}},
		{"move round zero", func(s *Scenario) {
			s.Topology.Kind = TopologyDistance
			s.Moves = []Move{{Round: 0, Node: 1}}
		}},
		{"move node out of range", func(s *Scenario) {
			s.Topology.Kind = TopologyDistance
			s.Moves = []Move{{Round: 1, Node: 99}}
		}},
		{"link out of range", func(s *Scenario) { s.Links = []Link{{A: 0, B: 10}} }},
		{"bad layout", func(s *Scenario) {
			s.Topology.Kind = TopologyDistance
			s.Layout.Kind = "spiral"
		}},
		{"bad grid columns", func(s *Scenario) {
			s.Topology.Kind = TopologyDistance
			s.Layout.Columns = 0
		}},
		{"bad log level", func(s *Scenario) { s.Logging.Level = "shouty" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Default()
			tc.mutate(s)
			assert.ErrorIs(t, s.Validate(), ErrInvalid)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	env := map[string]string{
		"FIELDSIM_LOG_LEVEL":    "debug",
		"FIELDSIM_METRICS_ADDR": ":9100",
		"FIELDSIM_TRACE":        "/tmp/t.db",
		"FIELDSIM_ROUNDS":       "25",
	}
	s := Default()
	applyEnvOverrides(s, func(k string) string { return env[k] })

	assert.Equal(t, "debug", s.Logging.Level)
	assert.Equal(t, ":9100", s.Metrics.Addr)
	assert.Equal(t, "/tmp/t.db", s.Trace.Path)
	assert.Equal(t, 25, s.Rounds)

	env["FIELDSIM_ROUNDS"] = "many"
	applyEnvOverrides(s, func(k string) string { return env[k] })
	assert.Equal(t, 25, s.Rounds)
}
