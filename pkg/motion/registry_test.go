package motion

import "testing"

func makeAnim(owner any, key string) *Animation {
	return &Animation{
		handle: PropertyHandle{Owner: owner, Property: "p"},
		key:    key,
		state:  StateRunning,
	}
}

func TestRegistrySnapshotOrder(t *testing.T) {
	r := newRegistry()
	a, b := "owner-a", "owner-b"

	r.insert(makeAnim(a, "k1"))
	r.insert(makeAnim(b, "k1"))
	r.insert(makeAnim(a, "k2"))

	snap := r.snapshot(nil)
	if len(snap) != 3 {
		t.Fatalf("snapshot length = %d, want 3", len(snap))
	}
	// Owners in first-seen order, keys in insertion order within owner.
	order := []struct {
		owner any
		key   string
	}{{a, "k1"}, {a, "k2"}, {b, "k1"}}
	for i, want := range order {
		if snap[i].handle.Owner != want.owner || snap[i].key != want.key {
			t.Errorf("snapshot[%d] = (%v, %s), want (%v, %s)",
				i, snap[i].handle.Owner, snap[i].key, want.owner, want.key)
		}
	}
}

func TestRegistryRemoveCompacts(t *testing.T) {
	r := newRegistry()
	o := "o"
	r.insert(makeAnim(o, "k1"))
	r.insert(makeAnim(o, "k2"))
	r.insert(makeAnim(o, "k3"))

	r.remove(o, "k2")
	snap := r.snapshot(nil)
	if len(snap) != 2 || snap[0].key != "k1" || snap[1].key != "k3" {
		t.Errorf("snapshot after remove = %v entries", len(snap))
	}

	r.remove(o, "k1")
	r.remove(o, "k3")
	if r.size() != 0 {
		t.Errorf("size = %d after removing all, want 0", r.size())
	}
	if got := r.snapshot(nil); len(got) != 0 {
		t.Errorf("snapshot after removing all has %d entries", len(got))
	}
	// Removing from an empty registry is harmless.
	r.remove(o, "k1")
}

func TestRegistryOwnerAnimations(t *testing.T) {
	r := newRegistry()
	r.insert(makeAnim("a", "k1"))
	r.insert(makeAnim("a", "k2"))
	r.insert(makeAnim("b", "k1"))

	got := r.ownerAnimations("a")
	if len(got) != 2 || got[0].key != "k1" || got[1].key != "k2" {
		t.Errorf("ownerAnimations = %d entries", len(got))
	}
	if r.ownerAnimations("missing") != nil {
		t.Error("unknown owner should return nil")
	}
}
