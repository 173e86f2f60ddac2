// Package aggregate defines the per-device, one-round program the engine
// drives, and the two gradient programs shipped with fieldsim.
//
// The engine treats a program as a pure strategy:
//
//	Step(self, isSource, field) → new value
//
// where field holds the latest value received this round from each current
// neighbor. No evaluation tree, alignment or sharing protocol lives here; a
// program only folds neighbor values into a scalar.
//
// Programs:
//
//	HopCount  - int32 hops; source → 0; else min(neighbor)+1; MaxInt32 when unreached.
//	Distance  - float64 distance; source → 0; else min(neighbor + metric(self, neighbor));
//	            +Inf when unreached.
//
// Both are self-stabilising distance-vector computations: on a static,
// connected topology with persistent sources they converge to the true
// shortest hop count / distance within diameter rounds.
package aggregate
