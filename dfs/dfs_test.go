// SPDX-License-Identifier: MIT
package dfs_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/katalvlaran/fieldsim/dfs"
	"github.com/katalvlaran/fieldsim/topology"
)

func capped(t *testing.T, n, degree int) *topology.DegreeCapped {
	t.Helper()
	g, err := topology.NewDegreeCapped(degree)
	if err != nil {
		t.Fatalf("NewDegreeCapped: %v", err)
	}
	for i := 0; i < n; i++ {
		if err := g.Register(topology.NodeID(i)); err != nil {
			t.Fatalf("Register(%d): %v", i, err)
		}
	}

	return g
}

func TestWalk_PreOrder(t *testing.T) {
	order, err := dfs.Walk(capped(t, 10, 3), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []topology.NodeID{0, 1, 4, 5, 2, 6, 7, 3, 8, 9}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("Order = %v; want %v", order, want)
	}
}

func TestWalk_Errors(t *testing.T) {
	if _, err := dfs.Walk(nil, 0); !errors.Is(err, dfs.ErrGraphNil) {
		t.Errorf("nil graph: want ErrGraphNil, got %v", err)
	}
	if _, err := dfs.Walk(capped(t, 2, 1), 5); !errors.Is(err, dfs.ErrStartVertexNotFound) {
		t.Errorf("missing start: want ErrStartVertexNotFound, got %v", err)
	}

	stop := errors.New("stop")
	order, err := dfs.Walk(capped(t, 4, 2), 0, dfs.WithOnVisit(func(id topology.NodeID) error {
		if id == 1 {
			return stop
		}
		return nil
	}))
	if !errors.Is(err, stop) || len(order) != 2 {
		t.Errorf("OnVisit abort: order=%v err=%v", order, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := dfs.Walk(capped(t, 3, 2), 0, dfs.WithContext(ctx)); !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}

func TestComponents(t *testing.T) {
	comps, err := dfs.Components(capped(t, 5, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]topology.NodeID{{0, 1}, {2, 3}, {4}}
	if !reflect.DeepEqual(comps, want) {
		t.Errorf("Components = %v; want %v", comps, want)
	}

	comps, err = dfs.Components(capped(t, 0, 3))
	if err != nil || len(comps) != 0 {
		t.Errorf("empty graph: %v, %v", comps, err)
	}
	if _, err := dfs.Components(nil); !errors.Is(err, dfs.ErrGraphNil) {
		t.Errorf("nil graph: want ErrGraphNil, got %v", err)
	}
}
