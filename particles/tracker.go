package particles

// Handle is a stable reference to a tracked particle. The generation makes
// handles to removed particles fail instead of aliasing whatever record was
// moved into their old slot.
type Handle struct {
	Index uint32
	Gen   uint32
}

// Tracker issues generation-tagged handles for particles in a Store and
// keeps them resolving to the right slot across swap-and-pop removals.
// Every insert and remove on the store must go through the Tracker once one
// is attached.
type Tracker struct {
	store *Store

	gens    []uint32 // handle index -> current generation
	slotOf  []int32  // handle index -> slot, -1 when free
	ownerOf []uint32 // slot -> handle index
	free    []uint32

	repairLinks bool
}

// NewTracker attaches a tracker to s. Particles already in the store are
// adopted and get handles in slot order.
func NewTracker(s *Store) *Tracker {
	t := &Tracker{
		store:   s,
		gens:    make([]uint32, 0, s.Cap()),
		slotOf:  make([]int32, 0, s.Cap()),
		ownerOf: make([]uint32, 0, s.Cap()),
	}
	for slot := 0; slot < s.Len(); slot++ {
		t.gens = append(t.gens, 0)
		t.slotOf = append(t.slotOf, int32(slot))
		t.ownerOf = append(t.ownerOf, uint32(slot))
	}
	return t
}

// SetLinkRepair makes Remove rewrite link nodes that point at the moved or
// removed slot. This costs a scan of the live set per removal.
func (t *Tracker) SetLinkRepair(on bool) {
	t.repairLinks = on
}

// Store returns the underlying store.
func (t *Tracker) Store() *Store { return t.store }

// Handles returns the handle owning each live slot, in slot order.
func (t *Tracker) Handles() []Handle {
	out := make([]Handle, len(t.ownerOf))
	for slot, idx := range t.ownerOf {
		out[slot] = Handle{Index: idx, Gen: t.gens[idx]}
	}
	return out
}

// Insert adds a particle and returns its handle.
func (t *Tracker) Insert(p Spec) Handle {
	slot := t.store.Insert(p)

	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
		t.slotOf[idx] = int32(slot)
	} else {
		idx = uint32(len(t.gens))
		t.gens = append(t.gens, 0)
		t.slotOf = append(t.slotOf, int32(slot))
	}
	t.ownerOf = append(t.ownerOf[:slot], idx)
	return Handle{Index: idx, Gen: t.gens[idx]}
}

// Slot resolves h to its current slot.
func (t *Tracker) Slot(h Handle) (int, bool) {
	if int(h.Index) >= len(t.gens) || t.gens[h.Index] != h.Gen {
		return 0, false
	}
	slot := t.slotOf[h.Index]
	if slot < 0 {
		return 0, false
	}
	return int(slot), true
}

// Alive reports whether h still refers to a live particle.
func (t *Tracker) Alive(h Handle) bool {
	_, ok := t.Slot(h)
	return ok
}

// Remove deletes the particle behind h. It returns false for stale handles.
func (t *Tracker) Remove(h Handle) bool {
	slot, ok := t.Slot(h)
	if !ok {
		return false
	}
	last := t.store.Len() - 1
	moved := t.ownerOf[last]

	t.store.Remove(slot)
	if slot != last {
		t.ownerOf[slot] = moved
		t.slotOf[moved] = int32(slot)
	}
	t.ownerOf = t.ownerOf[:last]

	t.slotOf[h.Index] = -1
	t.gens[h.Index]++
	t.free = append(t.free, h.Index)

	if t.repairLinks {
		t.retarget(int32(slot), int32(last))
	}
	return true
}

// retarget fixes link nodes after removed was freed and last moved into it.
func (t *Tracker) retarget(removed, last int32) {
	s := t.store
	for i := 0; i < s.Len(); i++ {
		switch s.Link(i) {
		case removed:
			s.SetLink(i, NoLink)
		case last:
			if removed != last {
				s.SetLink(i, removed)
			}
		}
	}
}

// Len returns the number of live particles.
func (t *Tracker) Len() int { return t.store.Len() }

// HandleAt returns the handle owning slot.
func (t *Tracker) HandleAt(slot int) (Handle, bool) {
	if slot < 0 || slot >= len(t.ownerOf) {
		return Handle{}, false
	}
	idx := t.ownerOf[slot]
	return Handle{Index: idx, Gen: t.gens[idx]}, true
}

// RemoveSlot removes whichever particle currently occupies slot. Out of
// range slots are a no-op and return false.
func (t *Tracker) RemoveSlot(slot int) bool {
	h, ok := t.HandleAt(slot)
	if !ok {
		return false
	}
	return t.Remove(h)
}

// Reset removes every particle. All outstanding handles become stale.
func (t *Tracker) Reset() {
	for _, idx := range t.ownerOf {
		t.slotOf[idx] = -1
		t.gens[idx]++
		t.free = append(t.free, idx)
	}
	t.ownerOf = t.ownerOf[:0]
	t.store.Reset()
}
