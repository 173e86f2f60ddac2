// SPDX-License-Identifier: MIT
// Package: fieldsim/cmd/libfieldsim
//
// libfieldsim builds the C shared library loaded by host applications:
//
//	go build -buildmode=c-shared -o libsimple_gradient.so ./cmd/libfieldsim
//
// Hop-count engines use the plain symbols (create, step, get_value, …);
// distance engines use the *_with_distance family plus update_position.
// Buffers returned by get_neighborhood* are malloc'd and must be released
// with the matching free_neighborhood* call.
package main

/*
#include <stdbool.h>
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"github.com/katalvlaran/fieldsim/facade"
)

var (
	hops      = facade.NewHops(facadeOptions()...)
	distances = facade.NewDistances(facadeOptions()...)
)

//export create
func create(nodeCount, maxDegree C.int32_t) C.int32_t {
	return C.int32_t(hops.Create(int32(nodeCount), int32(maxDegree)))
}

//export destroy
func destroy(handle C.int32_t) {
	hops.Destroy(facade.Handle(handle))
}

//export set_source
func set_source(handle, nodeID C.int32_t, isSource C.bool) {
	hops.SetSource(facade.Handle(handle), int32(nodeID), bool(isSource))
}

//export clear_sources
func clear_sources(handle C.int32_t) {
	hops.ClearSources(facade.Handle(handle))
}

//export step
func step(handle, rounds C.int32_t) {
	hops.Step(facade.Handle(handle), int32(rounds))
}

//export get_value
func get_value(handle, nodeID C.int32_t) C.int32_t {
	return C.int32_t(hops.Value(facade.Handle(handle), int32(nodeID)))
}

//export get_neighborhood
func get_neighborhood(handle, nodeID C.int32_t, outSize *C.int32_t) *C.int32_t {
	return exportIDs(hops.Neighborhood(facade.Handle(handle), int32(nodeID)), outSize)
}

//export free_neighborhood
func free_neighborhood(ptr *C.int32_t) {
	if ptr != nil {
		C.free(unsafe.Pointer(ptr))
	}
}

//export create_with_distance
func create_with_distance(nodeCount C.int32_t, maxDistance C.double) C.int32_t {
	return C.int32_t(distances.Create(int32(nodeCount), float64(maxDistance)))
}

//export destroy_with_distance
func destroy_with_distance(handle C.int32_t) {
	distances.Destroy(facade.Handle(handle))
}

//export set_source_with_distance
func set_source_with_distance(handle, nodeID C.int32_t, isSource C.bool) {
	distances.SetSource(facade.Handle(handle), int32(nodeID), bool(isSource))
}

//export clear_sources_with_distance
func clear_sources_with_distance(handle C.int32_t) {
	distances.ClearSources(facade.Handle(handle))
}

//export step_with_distance
func step_with_distance(handle, rounds C.int32_t) {
	distances.Step(facade.Handle(handle), int32(rounds))
}

//export get_value_with_distance
func get_value_with_distance(handle, nodeID C.int32_t) C.double {
	return C.double(distances.Value(facade.Handle(handle), int32(nodeID)))
}

//export get_neighborhood_with_distance
func get_neighborhood_with_distance(handle, nodeID C.int32_t, outSize *C.int32_t) *C.int32_t {
	return exportIDs(distances.Neighborhood(facade.Handle(handle), int32(nodeID)), outSize)
}

//export free_neighborhood_with_distance
func free_neighborhood_with_distance(ptr *C.int32_t) {
	free_neighborhood(ptr)
}

//export update_position
func update_position(handle, nodeID C.int32_t, x, y, z C.double) {
	distances.UpdatePosition(facade.Handle(handle), int32(nodeID), float64(x), float64(y), float64(z))
}

// exportIDs copies ids into a C array. Empty sets yield NULL with size 0.
func exportIDs(ids []int32, outSize *C.int32_t) *C.int32_t {
	if outSize != nil {
		*outSize = C.int32_t(len(ids))
	}
	if len(ids) == 0 {
		return nil
	}

	ptr := (*C.int32_t)(C.malloc(C.size_t(len(ids)) * C.size_t(unsafe.Sizeof(C.int32_t(0)))))
	copy(unsafe.Slice((*int32)(unsafe.Pointer(ptr)), len(ids)), ids)

	return ptr
}

func main() {}
