// SPDX-License-Identifier: MIT
package dfs_test

import (
	"fmt"

	"github.com/katalvlaran/fieldsim/dfs"
	"github.com/katalvlaran/fieldsim/topology"
)

// ExampleComponents splits a degree-1 topology into linked pairs.
func ExampleComponents() {
	g, _ := topology.NewDegreeCapped(1)
	for i := 0; i < 5; i++ {
		_ = g.Register(topology.NodeID(i))
	}

	comps, _ := dfs.Components(g)
	fmt.Println(comps)
	// Output: [[0 1] [2 3] [4]]
}
