// SPDX-License-Identifier: MIT
// Package: fieldsim/facade
//
// Package facade exposes engines through opaque int32 handles, the surface a
// host process (see cmd/libfieldsim) drives across a C ABI.
//
// Handles are generational: the low bits select a slot, the high bits carry
// the slot's generation, so a destroyed handle never aliases a later
// instance. Handle 0 is never issued.
//
// Every call checks its handle. Unknown or destroyed handles, and node ids
// outside [0, nodeCount), are absorbed: mutators do nothing and readers
// return the program's sentinel (math.MaxInt32 for Hops, +Inf for Distances).
// Create returns Invalid for node counts above MaxNodes. Nothing in this
// package returns an error or panics on malformed input.
//
// Concurrency:
//
//	The handle table is guarded by one RWMutex; each live instance carries its
//	own mutex, so distinct handles can be stepped from different goroutines
//	while calls on the same handle are serialised. Engines themselves are
//	never shared.
package facade
