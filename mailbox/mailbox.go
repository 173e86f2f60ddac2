// SPDX-License-Identifier: MIT
// Package: fieldsim/mailbox
//
// mailbox.go - in-memory, neighbor-keyed, last-write-wins inboxes.

package mailbox

import (
	"slices"

	"github.com/katalvlaran/fieldsim/topology"
)

// Neighborhood is the part of a topology the mailbox needs.
type Neighborhood interface {
	Neighbors(id topology.NodeID) []topology.NodeID
	IsNeighbor(a, b topology.NodeID) bool
}

// Mailbox buffers the latest payload per (sender, receiver) pair.
type Mailbox[P any] struct {
	topo  Neighborhood
	inbox map[topology.NodeID]map[topology.NodeID]P // receiver → sender → payload
}

// New returns an empty mailbox that routes along n.
func New[P any](n Neighborhood) *Mailbox[P] {
	return &Mailbox[P]{
		topo:  n,
		inbox: make(map[topology.NodeID]map[topology.NodeID]P),
	}
}

// Send delivers payload to every current neighbor of sender, replacing any
// earlier payload from the same sender. It returns the number of inboxes
// written; a sender with no neighbors (or an unknown sender) delivers nothing.
func (m *Mailbox[P]) Send(sender topology.NodeID, payload P) int {
	nbrs := m.topo.Neighbors(sender)
	for _, receiver := range nbrs {
		slots, ok := m.inbox[receiver]
		if !ok {
			slots = make(map[topology.NodeID]P)
			m.inbox[receiver] = slots
		}
		slots[sender] = payload
	}

	return len(nbrs)
}

// Receive returns the payloads visible to receiver: one per sender that is a
// current neighbor. The returned map is a fresh copy owned by the caller.
func (m *Mailbox[P]) Receive(receiver topology.NodeID) map[topology.NodeID]P {
	slots := m.inbox[receiver]
	out := make(map[topology.NodeID]P, len(slots))
	for sender, payload := range slots {
		if m.topo.IsNeighbor(receiver, sender) {
			out[sender] = payload
		}
	}

	return out
}

// Prune drops every buffered entry whose sender is no longer a neighbor of
// its receiver and returns how many entries were removed.
func (m *Mailbox[P]) Prune() int {
	removed := 0
	for receiver, slots := range m.inbox {
		for sender := range slots {
			if !m.topo.IsNeighbor(receiver, sender) {
				delete(slots, sender)
				removed++
			}
		}
		if len(slots) == 0 {
			delete(m.inbox, receiver)
		}
	}

	return removed
}

// Senders lists, ascending, every sender with a buffered entry for receiver,
// stale or not.
func (m *Mailbox[P]) Senders(receiver topology.NodeID) []topology.NodeID {
	slots := m.inbox[receiver]
	out := make([]topology.NodeID, 0, len(slots))
	for sender := range slots {
		out = append(out, sender)
	}
	slices.Sort(out)

	return out
}

// Len returns the total number of buffered entries.
func (m *Mailbox[P]) Len() int {
	total := 0
	for _, slots := range m.inbox {
		total += len(slots)
	}

	return total
}

// Reset discards every buffered entry.
func (m *Mailbox[P]) Reset() {
	m.inbox = make(map[topology.NodeID]map[topology.NodeID]P)
}
