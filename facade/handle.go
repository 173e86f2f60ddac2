// SPDX-License-Identifier: MIT
// Package: fieldsim/facade
//
// handle.go - generational slot table keyed by int32 handles.

package facade

import "sync"

// Handle identifies a live instance. The zero Handle is always invalid.
type Handle int32

// Invalid is returned by Create when the parameters are rejected.
const Invalid Handle = 0

const (
	slotBits = 20
	slotMask = 1<<slotBits - 1
	genMask  = 1<<(31-slotBits) - 1
)

// pack builds a handle from a zero-based slot and a generation in [1, genMask].
func pack(slot int, gen uint32) Handle {
	return Handle(int32(gen&genMask)<<slotBits | int32(slot+1))
}

// unpack is the inverse of pack; ok is false for values pack never produces.
func unpack(h Handle) (slot int, gen uint32, ok bool) {
	if h <= 0 {
		return 0, 0, false
	}
	slot = int(int32(h)&slotMask) - 1
	gen = uint32(int32(h)>>slotBits) & genMask

	return slot, gen, slot >= 0 && gen != 0
}

// instance serialises calls on one engine.
type instance[E any] struct {
	mu  sync.Mutex
	eng E
}

type slot[E any] struct {
	gen  uint32
	live *instance[E]
}

// table is an arena of instances with free-slot reuse.
type table[E any] struct {
	mu    sync.RWMutex
	slots []slot[E]
	free  []int
	count int
}

// insert stores eng and returns its handle, or Invalid when every slot
// index is in use.
func (t *table[E]) insert(eng E) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	var idx int
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		if len(t.slots) >= slotMask {
			return Invalid
		}
		idx = len(t.slots)
		t.slots = append(t.slots, slot[E]{})
	}

	s := &t.slots[idx]
	s.gen++
	if s.gen > genMask {
		s.gen = 1
	}
	s.live = &instance[E]{eng: eng}
	t.count++

	return pack(idx, s.gen)
}

// lookup returns the live instance behind h.
func (t *table[E]) lookup(h Handle) (*instance[E], bool) {
	idx, gen, ok := unpack(h)
	if !ok {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	if idx >= len(t.slots) {
		return nil, false
	}
	s := t.slots[idx]
	if s.live == nil || s.gen != gen {
		return nil, false
	}

	return s.live, true
}

// remove frees the slot behind h and reports whether it was live.
func (t *table[E]) remove(h Handle) bool {
	idx, gen, ok := unpack(h)
	if !ok {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if idx >= len(t.slots) {
		return false
	}
	s := &t.slots[idx]
	if s.live == nil || s.gen != gen {
		return false
	}
	s.live = nil
	t.free = append(t.free, idx)
	t.count--

	return true
}

func (t *table[E]) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.count
}

// with runs fn on the engine behind h while holding that instance's lock.
// It reports whether h was live.
func (t *table[E]) with(h Handle, fn func(E)) bool {
	inst, ok := t.lookup(h)
	if !ok {
		return false
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()
	fn(inst.eng)

	return true
}
