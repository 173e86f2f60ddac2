// SPDX-License-Identifier: MIT
// Package: fieldsim/dfs
//
// Package dfs walks a topology depth-first and labels its connected
// components. A gradient can only reach nodes in a component that holds a
// source, so the component split explains every node left at the sentinel.
//
// Walk uses an explicit stack (no recursion) and visits neighbours in
// ascending id order, so Order is reproducible.
//
// Errors:
//
//	ErrGraphNil            - nil graph.
//	ErrStartVertexNotFound - start id is not registered.
package dfs
