package event

// registry maps a (receiver, kind) key to its insertion-ordered subscriber
// list. It is thread-confined, unsynchronized state: all access happens on
// the tick-owning goroutine.
type registry struct {
	buckets map[Key][]entry
}

func newRegistry() *registry {
	return &registry{buckets: make(map[Key][]entry)}
}

// add appends an entry to the bucket for key, creating the bucket if absent.
// No deduplication: registering the same target twice yields two firings.
func (r *registry) add(key Key, e entry) {
	r.buckets[key] = append(r.buckets[key], e)
}

// remove deletes the first entry in the bucket matching the descriptor,
// preserving the order of the remaining entries. It returns the removed
// entry so the caller can release scripted references. The second return is
// false when the key is absent or nothing matched.
func (r *registry) remove(key Key, d descriptor, rt ScriptRuntime) (entry, bool) {
	bucket, ok := r.buckets[key]
	if !ok {
		return entry{}, false
	}
	for i := range bucket {
		if !bucket[i].matches(d, rt) {
			continue
		}
		removed := bucket[i]
		// Rebuild rather than splice in place: dispatch snapshots hold the
		// old backing array and must keep seeing the list they started with.
		next := make([]entry, 0, len(bucket)-1)
		next = append(next, bucket[:i]...)
		next = append(next, bucket[i+1:]...)
		if len(next) == 0 {
			delete(r.buckets, key)
		} else {
			r.buckets[key] = next
		}
		return removed, true
	}
	return entry{}, false
}

// snapshot returns a copy of the bucket for key as it exists right now.
// Dispatch iterates the copy, so a handler that registers or unregisters
// mid-delivery cannot skip or double-fire siblings within that delivery.
func (r *registry) snapshot(key Key) []entry {
	bucket := r.buckets[key]
	if len(bucket) == 0 {
		return nil
	}
	out := make([]entry, len(bucket))
	copy(out, bucket)
	return out
}

// drain removes and returns every entry in the table, leaving it empty.
// Used at shutdown to release retained scripted references.
func (r *registry) drain() []entry {
	var all []entry
	for _, bucket := range r.buckets {
		all = append(all, bucket...)
	}
	r.buckets = make(map[Key][]entry)
	return all
}

func (r *registry) count(key Key) int {
	return len(r.buckets[key])
}
