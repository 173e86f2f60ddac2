// Package fieldsim simulates gradient fields over networks of devices that
// only talk to their neighbours.
//
// Every device repeatedly combines its neighbours' last values into its own:
// sources hold the identity, everyone else takes the best neighbour value
// plus the cost of the link. After enough rounds each device knows its hop
// count (or metric distance) to the nearest source.
//
// Layout:
//
//	geom/      - 3-D positions and Euclidean distance
//	topology/  - degree-capped and distance-threshold neighbour relations
//	mailbox/   - last-received value per (receiver, sender) pair
//	aggregate/ - hop-count and distance programs
//	engine/    - round scheduler, observers and Prometheus metrics
//	bfs/       - multi-source hop reference
//	dijkstra/  - multi-source distance reference
//	dfs/       - connected components of a topology
//	layout/    - initial placements (grid, line, ring, scatter)
//	config/    - YAML scenarios with env overrides
//	trace/     - SQLite recording of every round
//	sim/       - scenario runs, verification and batches
//	facade/    - handle-addressed simulations for foreign callers
//	logging/   - logrus setup shared by the binaries
//
// Binaries:
//
//	cmd/fieldsim/    - cobra CLI (run, verify, batch, neighbors)
//	cmd/libfieldsim/ - C shared library (go build -buildmode=c-shared)
//
// Quick start:
//
//	e, _ := engine.NewHopCount(10, 3)
//	_ = e.SetSource(0, true)
//	e.StepMany(10)
//	fmt.Println(e.Values()) // [0 1 1 1 2 2 2 2 2 2]
package fieldsim
