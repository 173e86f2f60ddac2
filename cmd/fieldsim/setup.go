// SPDX-License-Identifier: MIT
// Package: fieldsim/cmd/fieldsim

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/fieldsim/config"
	"github.com/katalvlaran/fieldsim/engine"
	"github.com/katalvlaran/fieldsim/logging"
	"github.com/katalvlaran/fieldsim/sim"
	"github.com/katalvlaran/fieldsim/trace"
)

// runtimeEnv holds what a command needs around the simulation itself.
type runtimeEnv struct {
	log      *logrus.Logger
	opts     []sim.Option
	recorder *trace.Recorder
	server   *http.Server
}

// loadScenario reads --config (or the defaults) and applies scenario flags
// the command defines.
func loadScenario(cmd *cobra.Command) (*config.Scenario, error) {
	path, _ := cmd.Flags().GetString("config")
	var (
		sc  *config.Scenario
		err error
	)
	if path != "" {
		sc, err = config.Load(path)
	} else {
		sc, err = config.Parse(nil)
	}
	if err != nil {
		return nil, err
	}
	if err := applyScenarioFlags(cmd, sc); err != nil {
		return nil, err
	}
	applyRuntimeFlags(cmd, sc)

	return sc, sc.Validate()
}

// addScenarioFlags registers overrides for the most common scenario fields.
func addScenarioFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int("nodes", 0, "Device count")
	f.Int("rounds", 0, "Rounds to run")
	f.String("topology", "", "Topology kind: degree or distance")
	f.Int("max-degree", 0, "Degree cap (degree topology)")
	f.Float64("max-distance", 0, "Link range (distance topology)")
	f.Int32Slice("sources", nil, "Source device ids")
	f.Bool("snapshot", false, "Double-buffered rounds")
	f.String("layout", "", "Initial layout: origin, grid, line, ring, scatter")
}

func applyScenarioFlags(cmd *cobra.Command, sc *config.Scenario) error {
	f := cmd.Flags()
	if f.Lookup("nodes") == nil {
		return nil
	}
	var err error
	if f.Changed("nodes") {
		sc.Nodes, err = f.GetInt("nodes")
	}
	if err == nil && f.Changed("rounds") {
		sc.Rounds, err = f.GetInt("rounds")
	}
	if err == nil && f.Changed("topology") {
		sc.Topology.Kind, err = f.GetString("topology")
	}
	if err == nil && f.Changed("max-degree") {
		sc.Topology.MaxDegree, err = f.GetInt("max-degree")
	}
	if err == nil && f.Changed("max-distance") {
		sc.Topology.MaxDistance, err = f.GetFloat64("max-distance")
	}
	if err == nil && f.Changed("sources") {
		sc.Sources, err = f.GetInt32Slice("sources")
	}
	if err == nil && f.Changed("snapshot") {
		sc.Snapshot, err = f.GetBool("snapshot")
	}
	if err == nil && f.Changed("layout") {
		sc.Layout.Kind, err = f.GetString("layout")
	}

	return err
}

func applyRuntimeFlags(cmd *cobra.Command, sc *config.Scenario) {
	f := cmd.Flags()
	if v, _ := f.GetString("log-level"); v != "" {
		sc.Logging.Level = v
	}
	if v, _ := f.GetString("log-format"); v != "" {
		sc.Logging.Format = v
	}
	if v, _ := f.GetString("metrics-addr"); v != "" {
		sc.Metrics.Addr = v
	}
	if v, _ := f.GetString("trace"); v != "" {
		sc.Trace.Path = v
	}
}

// setup builds the logger, metrics endpoint and trace recorder sc asks for.
func setup(ctx context.Context, cmd *cobra.Command, sc *config.Scenario) (*runtimeEnv, error) {
	log, err := logging.New(sc.Logging.Level, sc.Logging.Format, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	env := &runtimeEnv{log: log, opts: []sim.Option{sim.WithLogger(log)}}

	if sc.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		env.opts = append(env.opts, sim.WithMetrics(engine.NewMetrics(reg)))

		ln, err := net.Listen("tcp", sc.Metrics.Addr)
		if err != nil {
			return nil, fmt.Errorf("metrics listener: %w", err)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		env.server = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := env.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("metrics server stopped")
			}
		}()
		log.WithField("addr", ln.Addr().String()).Info("serving metrics")
	}

	if sc.Trace.Path != "" {
		rec, err := trace.Open(ctx, sc.Trace.Path, trace.WithLogger(log))
		if err != nil {
			env.close()
			return nil, err
		}
		env.recorder = rec
		env.opts = append(env.opts, sim.WithRecorder(rec))
	}

	return env, nil
}

func (env *runtimeEnv) close() {
	if env.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = env.server.Shutdown(ctx)
	}
	if env.recorder != nil {
		if err := env.recorder.Close(); err != nil {
			env.log.WithError(err).Warn("closing trace")
		}
	}
}
