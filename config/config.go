// SPDX-License-Identifier: MIT
// Package: fieldsim/config
//
// Package config loads simulation scenarios from YAML. A scenario names the
// topology, its parameter, the sources, the number of rounds and, for the
// distance topology, an initial layout and scheduled moves. Defaults
// reproduce the console host: 10 devices, degree cap 3, source 0, 10 rounds.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/fieldsim/geom"
	"github.com/katalvlaran/fieldsim/layout"
	"github.com/katalvlaran/fieldsim/logging"
)

// Topology kinds.
const (
	TopologyDegree   = "degree"
	TopologyDistance = "distance"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid scenario")

// Scenario is one simulation run.
type Scenario struct {
	// Name labels logs, traces and batch results.
	Name string `json:"name" yaml:"name"`

	// Nodes is the fixed device count.
	Nodes int `json:"nodes" yaml:"nodes"`

	Topology TopologyConfig `json:"topology" yaml:"topology"`

	// Sources are the initial source ids.
	Sources []int32 `json:"sources" yaml:"sources"`

	// Rounds is how many rounds Run executes.
	Rounds int `json:"rounds" yaml:"rounds"`

	// Snapshot switches the engine to double-buffered rounds.
	Snapshot bool `json:"snapshot,omitempty" yaml:"snapshot,omitempty"`

	Layout LayoutConfig `json:"layout" yaml:"layout"`

	// Moves are position updates applied before the given round (distance only).
	Moves []Move `json:"moves,omitempty" yaml:"moves,omitempty"`

	// Links are explicit edges added after auto-connect (degree only).
	Links []Link `json:"links,omitempty" yaml:"links,omitempty"`

	Logging LoggingConfig `json:"logging" yaml:"logging"`
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`
	Trace   TraceConfig   `json:"trace" yaml:"trace"`
}

// TopologyConfig selects the neighbourhood policy.
type TopologyConfig struct {
	// Kind is "degree" or "distance".
	Kind        string  `json:"kind" yaml:"kind"`
	MaxDegree   int     `json:"max_degree" yaml:"max_degree"`
	MaxDistance float64 `json:"max_distance" yaml:"max_distance"`
}

// LayoutConfig picks the initial placement for distance topologies.
type LayoutConfig struct {
	// Kind is one of origin, grid, line, ring, scatter.
	Kind    string  `json:"kind" yaml:"kind"`
	Columns int     `json:"columns" yaml:"columns"`
	Spacing float64 `json:"spacing" yaml:"spacing"`
	Seed    int64   `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// Move relocates Node right before round Round (1-based) is stepped.
type Move struct {
	Round    int           `json:"round" yaml:"round"`
	Node     int32         `json:"node" yaml:"node"`
	Position geom.Position `json:"position" yaml:"position"`
}

// Link is an explicit edge request.
type Link struct {
	A int32 `json:"a" yaml:"a"`
	B int32 `json:"b" yaml:"b"`
}

// LoggingConfig configures the logrus logger.
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// MetricsConfig configures the Prometheus endpoint; empty Addr disables it.
type MetricsConfig struct {
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`
}

// TraceConfig configures the SQLite trace; empty Path disables it.
type TraceConfig struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Default returns the console host scenario.
func Default() *Scenario {
	return &Scenario{
		Name:  "gradient",
		Nodes: 10,
		Topology: TopologyConfig{
			Kind:        TopologyDegree,
			MaxDegree:   3,
			MaxDistance: 3,
		},
		Sources: []int32{0},
		Rounds:  10,
		Layout: LayoutConfig{
			Kind:    layout.KindGrid,
			Columns: 5,
			Spacing: 3,
		},
		Logging: LoggingConfig{Level: "info", Format: logging.FormatText},
	}
}

// Parse decodes YAML over the defaults and applies environment overrides.
// Unknown keys are rejected.
func Parse(data []byte) (*Scenario, error) {
	s := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	applyEnvOverrides(s, os.Getenv)

	return s, nil
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}

	return Parse(data)
}

// Marshal renders s as YAML.
func (s *Scenario) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Validate checks the scenario for values the engine would reject or
// silently absorb.
func (s *Scenario) Validate() error {
	if s.Nodes < 0 || s.Nodes > math.MaxInt32 {
		return fmt.Errorf("%w: nodes must be in [0, %d], got %d", ErrInvalid, math.MaxInt32, s.Nodes)
	}
	if s.Rounds < 0 {
		return fmt.Errorf("%w: rounds must be non-negative, got %d", ErrInvalid, s.Rounds)
	}

	switch s.Topology.Kind {
	case TopologyDegree:
		if s.Topology.MaxDegree < 0 {
			return fmt.Errorf("%w: max_degree must be non-negative, got %d", ErrInvalid, s.Topology.MaxDegree)
		}
		if len(s.Moves) > 0 {
			return fmt.Errorf("%w: moves need the distance topology", ErrInvalid)
		}
	case TopologyDistance:
		if math.IsNaN(s.Topology.MaxDistance) || s.Topology.MaxDistance < 0 {
			return fmt.Errorf("%w: max_distance must be non-negative, got %v", ErrInvalid, s.Topology.MaxDistance)
		}
		if len(s.Links) > 0 {
			return fmt.Errorf("%w: links need the degree topology", ErrInvalid)
		}
		p, err := layout.ByName(s.Layout.Kind, s.Layout.Columns, s.Layout.Spacing, s.Layout.Seed)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		if _, err := layout.Place(p, 0); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	default:
		return fmt.Errorf("%w: unknown topology kind %q", ErrInvalid, s.Topology.Kind)
	}

	for _, id := range s.Sources {
		if !s.inRange(id) {
			return fmt.Errorf("%w: source %d outside [0, %d)", ErrInvalid, id, s.Nodes)
		}
	}
	for i, m := range s.Moves {
		if !s.inRange(m.Node) {
			return fmt.Errorf("%w: move %d: node %d outside [0, %d)", ErrInvalid, i, m.Node, s.Nodes)
		}
		if m.Round < 1 {
			return fmt.Errorf("%w: move %d: round must be ≥ 1, got %d", ErrInvalid, i, m.Round)
		}
	}
	for i, l := range s.Links {
		if !s.inRange(l.A) || !s.inRange(l.B) {
			return fmt.Errorf("%w: link %d: %d-%d outside [0, %d)", ErrInvalid, i, l.A, l.B, s.Nodes)
		}
	}
	if _, err := logging.ParseLevel(s.Logging.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return nil
}

func (s *Scenario) inRange(id int32) bool {
	return id >= 0 && int(id) < s.Nodes
}

// MovesAt returns the moves scheduled before round r, in file order.
func (s *Scenario) MovesAt(r int) []Move {
	var out []Move
	for _, m := range s.Moves {
		if m.Round == r {
			out = append(out, m)
		}
	}

	return out
}

// applyEnvOverrides lets FIELDSIM_* variables override file values.
func applyEnvOverrides(s *Scenario, getenv func(string) string) {
	if v := getenv("FIELDSIM_LOG_LEVEL"); v != "" {
		s.Logging.Level = v
	}
	if v := getenv("FIELDSIM_LOG_FORMAT"); v != "" {
		s.Logging.Format = v
	}
	if v := getenv("FIELDSIM_METRICS_ADDR"); v != "" {
		s.Metrics.Addr = v
	}
	if v := getenv("FIELDSIM_TRACE"); v != "" {
		s.Trace.Path = v
	}
	if v := getenv("FIELDSIM_ROUNDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.Rounds = n
		}
	}
}
