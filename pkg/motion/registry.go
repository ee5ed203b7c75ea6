package motion

// registry owns the mapping from (owner, key) to running animations and
// enforces at-most-one animation per slot. Iteration order is insertion
// order within an owner; owners appear in first-registration order.
// Replacement and deferral policy live in the Scheduler; the registry is
// plain bookkeeping.
type registry struct {
	order   []any
	byOwner map[any]*ownerSlot
}

type ownerSlot struct {
	order []string
	byKey map[string]*Animation
}

func newRegistry() *registry {
	return &registry{byOwner: make(map[any]*ownerSlot)}
}

func (r *registry) get(owner any, key string) (*Animation, bool) {
	slot, ok := r.byOwner[owner]
	if !ok {
		return nil, false
	}
	a, ok := slot.byKey[key]
	return a, ok
}

// insert adds a new entry. The slot must be empty; the Scheduler cancels
// any prior occupant first.
func (r *registry) insert(a *Animation) {
	owner := a.handle.Owner
	slot, ok := r.byOwner[owner]
	if !ok {
		slot = &ownerSlot{byKey: make(map[string]*Animation)}
		r.byOwner[owner] = slot
		r.order = append(r.order, owner)
	}
	slot.byKey[a.key] = a
	slot.order = append(slot.order, a.key)
}

func (r *registry) remove(owner any, key string) {
	slot, ok := r.byOwner[owner]
	if !ok {
		return
	}
	if _, ok := slot.byKey[key]; !ok {
		return
	}
	delete(slot.byKey, key)
	for i, k := range slot.order {
		if k == key {
			slot.order = append(slot.order[:i], slot.order[i+1:]...)
			break
		}
	}
	if len(slot.byKey) == 0 {
		delete(r.byOwner, owner)
		for i, o := range r.order {
			if o == owner {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
}

// snapshot appends every active entry, owners in stable order and keys
// in insertion order. The Scheduler iterates the snapshot, not the live
// maps, so entries registered mid-tick are not advanced with zero
// elapsed time.
func (r *registry) snapshot(buf []*Animation) []*Animation {
	for _, owner := range r.order {
		slot := r.byOwner[owner]
		for _, key := range slot.order {
			buf = append(buf, slot.byKey[key])
		}
	}
	return buf
}

// ownerAnimations returns the active entries for one owner in insertion
// order.
func (r *registry) ownerAnimations(owner any) []*Animation {
	slot, ok := r.byOwner[owner]
	if !ok {
		return nil
	}
	out := make([]*Animation, 0, len(slot.order))
	for _, key := range slot.order {
		out = append(out, slot.byKey[key])
	}
	return out
}

func (r *registry) size() int {
	n := 0
	for _, slot := range r.byOwner {
		n += len(slot.byKey)
	}
	return n
}
