// SPDX-License-Identifier: MIT
// Package: fieldsim/sim
//
// Package sim runs scenarios end to end: it builds the engine a
// config.Scenario describes, places devices, applies scheduled moves and
// explicit links, steps the requested rounds, and reports the final field.
//
// Verify compares a finished field against the reference shortest paths
// (bfs for hop counts, dijkstra for distances) over the engine's final
// topology. A self-stabilised gradient matches exactly; a mismatch means the
// run stopped before the field settled.
//
// RunBatch executes independent scenarios concurrently, one engine per
// goroutine.
package sim
