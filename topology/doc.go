// Package topology decides which simulated devices are neighbors.
//
// A topology owns the registry of node identities and the adjacency relation
// between them. Two policies are provided:
//
//	- DegreeCapped (static, incremental)
//	    Register(id) adds a node and auto-connects it to the first registered
//	    node (ascending id) that still has spare capacity. Connect(a, b) adds
//	    an explicit edge. Edges are never removed; every degree stays ≤ maxDegree.
//
//	- DistanceThreshold (dynamic, recomputed)
//	    Nodes carry a geom.Position. Refresh() rebuilds the whole relation
//	    from live positions: a-b iff Distance(a, b) ≤ maxDistance.
//	    The result replaces the previous round's adjacency entirely.
//
// Invariants (checked by Validate, and after every mutation when the module is
// built with the fieldsim_debug tag):
//
//   - Symmetry:   b ∈ N(a) ⇔ a ∈ N(b)
//   - No loops:   a ∉ N(a)
//   - Degree cap: |N(a)| ≤ maxDegree (DegreeCapped only)
//
// Determinism: Nodes(), Neighbors() and Edges() always return ascending ids.
// Neighbor sets are gods treesets and the registry is a gods treemap, so
// iteration order never depends on Go map randomisation.
//
// Concurrency: topologies are NOT safe for concurrent use. An engine owns its
// topology exclusively; callers that share one must serialise access.
//
// Errors:
//
//	ErrInvalidNode     - negative node id.
//	ErrDuplicateNode   - id already registered.
//	ErrNodeNotFound    - id not registered (UpdatePosition).
//	ErrBadDegree       - negative maxDegree.
//	ErrBadDistance     - NaN or negative maxDistance.
//	ErrAsymmetric      - Validate found a one-sided edge.
//	ErrSelfLoop        - Validate found a loop.
//	ErrDegreeExceeded  - Validate found a node above maxDegree.
package topology
