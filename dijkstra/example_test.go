// SPDX-License-Identifier: MIT
package dijkstra_test

import (
	"fmt"

	"github.com/katalvlaran/fieldsim/dijkstra"
	"github.com/katalvlaran/fieldsim/geom"
	"github.com/katalvlaran/fieldsim/topology"
)

// ExampleDistances measures a 3-4-5 right triangle from its right angle.
func ExampleDistances() {
	g, _ := topology.NewDistanceThreshold(4)
	for i, p := range []geom.Position{geom.At(0, 0, 0), geom.At(3, 0, 0), geom.At(0, 4, 0)} {
		_ = g.Register(topology.NodeID(i))
		_ = g.UpdatePosition(topology.NodeID(i), p)
	}
	g.Refresh()

	res, _ := dijkstra.Distances(g, []topology.NodeID{1})
	fmt.Println(res.Value(0), res.Value(2))
	// Output: 3 7
}
