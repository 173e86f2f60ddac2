// SPDX-License-Identifier: MIT
// Package: fieldsim/engine

package engine

import (
	"time"

	"github.com/katalvlaran/fieldsim/aggregate"
	"github.com/katalvlaran/fieldsim/topology"
)

// RoundReport summarises one completed round.
type RoundReport[V aggregate.Scalar] struct {
	Round     uint64            // 1-based round number
	Kind      string            // topology kind: "degree" or "distance"
	Program   string            // program name
	Values    []V               // value table after the round, indexed by node id
	Unreached V                 // the program's sentinel
	Sources   []topology.NodeID // ascending
	Edges     []topology.Edge   // adjacency used during the round
	Reached   int               // nodes holding a non-sentinel value
	Delivered int               // inbox writes performed
	Pruned    int               // stale entries removed before the round
	Duration  time.Duration
}

// Observer receives a report after every round.
type Observer[V aggregate.Scalar] interface {
	ObserveRound(r RoundReport[V])
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc[V aggregate.Scalar] func(r RoundReport[V])

// ObserveRound calls f(r).
func (f ObserverFunc[V]) ObserveRound(r RoundReport[V]) { f(r) }
