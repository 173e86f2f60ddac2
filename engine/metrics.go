// SPDX-License-Identifier: MIT
// Package: fieldsim/engine
//
// metrics.go - Prometheus collectors for round execution.
//
// Metrics are shared by every engine handed the same *Metrics. Labels are
// bounded: topology kind ("degree"|"distance") and program name.

package engine

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the engine's Prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	rounds    *prometheus.CounterVec
	steps     *prometheus.CounterVec
	delivered *prometheus.CounterVec
	pruned    *prometheus.CounterVec
	edges     *prometheus.GaugeVec
	reached   *prometheus.GaugeVec
	duration  *prometheus.HistogramVec
}

var metricLabels = []string{"topology", "program"}

// NewMetrics builds the collectors and registers them with reg.
// A nil reg leaves them unregistered (useful in tests).
// Panics if registration fails, as prometheus.MustRegister does.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rounds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fieldsim_rounds_total",
			Help: "Completed simulation rounds",
		}, metricLabels),
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fieldsim_device_steps_total",
			Help: "Per-device program evaluations",
		}, metricLabels),
		delivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fieldsim_messages_delivered_total",
			Help: "Inbox writes performed by the mailbox",
		}, metricLabels),
		pruned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fieldsim_mailbox_pruned_total",
			Help: "Stale mailbox entries removed after topology refresh",
		}, metricLabels),
		edges: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fieldsim_topology_edges",
			Help: "Undirected edges in the most recently stepped topology",
		}, metricLabels),
		reached: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fieldsim_reached_nodes",
			Help: "Nodes holding a non-sentinel value after the most recent round",
		}, metricLabels),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fieldsim_round_duration_seconds",
			Help:    "Wall time of one round",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, metricLabels),
	}
	if reg != nil {
		reg.MustRegister(m.rounds, m.steps, m.delivered, m.pruned, m.edges, m.reached, m.duration)
	}

	return m
}

// record folds one round into the collectors.
func (m *Metrics) record(kind, program string, devices, edges int, r roundStats) {
	if m == nil {
		return
	}
	m.rounds.WithLabelValues(kind, program).Inc()
	m.steps.WithLabelValues(kind, program).Add(float64(devices))
	m.delivered.WithLabelValues(kind, program).Add(float64(r.delivered))
	m.pruned.WithLabelValues(kind, program).Add(float64(r.pruned))
	m.edges.WithLabelValues(kind, program).Set(float64(edges))
	m.reached.WithLabelValues(kind, program).Set(float64(r.reached))
	m.duration.WithLabelValues(kind, program).Observe(r.duration.Seconds())
}
