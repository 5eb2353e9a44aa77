package event

import (
	"testing"

	"github.com/dshills/gamebus/internal/sim"
)

func TestRegistry_OrderPreserved(t *testing.T) {
	r := newRegistry()
	key := KeyFor(GlobalID, KindNewGame)

	r.add(key, entry{fn: func(_, _ any) {}, user: "a", mask: sim.Any})
	r.add(key, entry{fn: func(_, _ any) {}, user: "b", mask: sim.Any})
	r.add(key, entry{fn: func(_, _ any) {}, user: "c", mask: sim.Any})

	snap := r.snapshot(key)
	if len(snap) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(snap))
	}
	for i, want := range []string{"a", "b", "c"} {
		if snap[i].user != want {
			t.Errorf("entry %d: expected user %q, got %v", i, want, snap[i].user)
		}
	}
}

func TestRegistry_RemoveFirstMatch(t *testing.T) {
	r := newRegistry()
	key := KeyFor(GlobalID, KindNewGame)
	fn := func(_, _ any) {}

	// Same function registered twice with different user args; removal
	// matches by function identity only and takes the first.
	r.add(key, entry{fn: fn, user: "first", mask: sim.Any})
	r.add(key, entry{fn: fn, user: "second", mask: sim.Any})

	removed, ok := r.remove(key, descriptor{fn: fn}, nil)
	if !ok {
		t.Fatal("remove failed")
	}
	if removed.user != "first" {
		t.Errorf("expected first entry removed, got %v", removed.user)
	}

	snap := r.snapshot(key)
	if len(snap) != 1 || snap[0].user != "second" {
		t.Errorf("expected only the second entry to remain")
	}
}

func TestRegistry_RemoveAbsent(t *testing.T) {
	r := newRegistry()
	key := KeyFor(GlobalID, KindNewGame)

	if _, ok := r.remove(key, descriptor{fn: func(_, _ any) {}}, nil); ok {
		t.Error("remove on absent key should report false")
	}

	r.add(key, entry{fn: func(_, _ any) {}, mask: sim.Any})
	if _, ok := r.remove(key, descriptor{fn: func(_, _ any) {}}, nil); ok {
		t.Error("remove of unmatched descriptor should report false")
	}
}

func TestRegistry_ScriptedIdentityMatch(t *testing.T) {
	r := newRegistry()
	rt := newStubRuntime()
	key := KeyFor(ReceiverID(7), KindAttackStart)

	r.add(key, entry{callable: "cb-a", scriptArg: "arg-a", mask: sim.Any})
	r.add(key, entry{callable: "cb-b", scriptArg: "arg-b", mask: sim.Any})

	// The stored argument never participates in matching.
	removed, ok := r.remove(key, descriptor{scripted: true, callable: "cb-b"}, rt)
	if !ok {
		t.Fatal("remove failed")
	}
	if removed.scriptArg != "arg-b" {
		t.Errorf("wrong entry removed: %v", removed.scriptArg)
	}
	if r.count(key) != 1 {
		t.Errorf("expected 1 remaining entry, got %d", r.count(key))
	}
}

func TestRegistry_MixedVariantsNeverMatch(t *testing.T) {
	r := newRegistry()
	rt := newStubRuntime()
	key := KeyFor(GlobalID, KindNewGame)

	r.add(key, entry{callable: "cb", mask: sim.Any})
	if _, ok := r.remove(key, descriptor{fn: func(_, _ any) {}}, rt); ok {
		t.Error("native descriptor must not match a scripted entry")
	}
}

func TestRegistry_SnapshotIsolation(t *testing.T) {
	r := newRegistry()
	key := KeyFor(GlobalID, KindNewGame)
	fn := func(_, _ any) {}

	r.add(key, entry{fn: fn, user: "a", mask: sim.Any})
	r.add(key, entry{fn: fn, user: "b", mask: sim.Any})

	snap := r.snapshot(key)

	// Mutations after the snapshot must not disturb it.
	if _, ok := r.remove(key, descriptor{fn: fn}, nil); !ok {
		t.Fatal("remove failed")
	}
	r.add(key, entry{fn: fn, user: "c", mask: sim.Any})

	if len(snap) != 2 || snap[0].user != "a" || snap[1].user != "b" {
		t.Error("snapshot changed under mutation")
	}
}

func TestRegistry_EmptyBucketDeleted(t *testing.T) {
	r := newRegistry()
	key := KeyFor(GlobalID, KindNewGame)
	fn := func(_, _ any) {}

	r.add(key, entry{fn: fn, mask: sim.Any})
	if _, ok := r.remove(key, descriptor{fn: fn}, nil); !ok {
		t.Fatal("remove failed")
	}
	if _, exists := r.buckets[key]; exists {
		t.Error("empty bucket should be deleted from the table")
	}
}

func TestRegistry_Drain(t *testing.T) {
	r := newRegistry()
	r.add(KeyFor(GlobalID, KindNewGame), entry{fn: func(_, _ any) {}, mask: sim.Any})
	r.add(KeyFor(ReceiverID(1), KindEntityDeath), entry{callable: "cb", mask: sim.Any})

	all := r.drain()
	if len(all) != 2 {
		t.Fatalf("expected 2 drained entries, got %d", len(all))
	}
	if len(r.buckets) != 0 {
		t.Error("expected empty table after drain")
	}
}

func TestKeyFor_Distinct(t *testing.T) {
	seen := make(map[Key]bool)
	receivers := []ReceiverID{0, 1, 7, GlobalID}
	kinds := []Kind{KindUpdateStart, KindNewGame, KindUser}

	for _, r := range receivers {
		for _, k := range kinds {
			key := KeyFor(r, k)
			if seen[key] {
				t.Fatalf("key collision for (%d, %d)", r, k)
			}
			seen[key] = true
		}
	}
}
