// Package engine runs a gradient field over a simulated device network, one
// synchronous round at a time.
//
// An Engine owns everything a simulation instance needs: the node count, the
// topology (degree-capped or distance-threshold), the mailbox, the source set,
// the value table and the per-device program. No other party mutates the
// adjacency or the mailbox.
//
// Round (StepOnce):
//
//	(a) dynamic topology only: Refresh() from live positions, then Prune() the mailbox;
//	(b) for id = n-1 … 0 (DESCENDING):
//	        field := mailbox.Receive(id)
//	        v     := program.Step(id, id ∈ sources, field)
//	        values[id] = v
//	        mailbox.Send(id, v)
//
// The descending order is part of the observable contract. Message relay and
// value computation share one buffer, so a node processed later in the round
// (lower id) already sees the fresh value of a higher-id neighbor processed
// before it. Information therefore travels any number of hops "downhill" in a
// single round but only one hop "uphill". WithSnapshotRounds stages all sends
// until every node has stepped, giving a double-buffered round instead; it is
// off by default.
//
// StepMany(k) runs exactly k rounds back to back: no sleeping, no yielding,
// no cancellation.
//
// Ambient concerns:
//
//	- Logging: logrus (WithLogger); silent by default. Debug logs one line per
//	  round, Trace one line per device step.
//	- Metrics: Prometheus collectors (NewMetrics + WithMetrics); nil-safe.
//	- Observers: Observe(...) receives a RoundReport after every round.
//
// Concurrency: an Engine is NOT safe for concurrent use and takes no locks.
// Use distinct engines, or serialise access externally.
//
// Errors:
//
//	ErrBadNodeCount    - negative or too large node count.
//	ErrNilTopology     - New called without a topology.
//	ErrNilProgram      - New called without a program.
//	ErrNodeOutOfRange  - node id outside [0, nodeCount).
//	ErrStaticTopology  - position update on a topology without positions.
package engine
