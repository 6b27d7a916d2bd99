// Package dedup keeps a bounded window of already-announced reference
// numbers so the same paid transaction is not re-announced every poll.
package dedup

// DefaultCapacity matches the window a typical tracker page can return
// many times over.
const DefaultCapacity = 2000

// Ring is a fixed-capacity FIFO set of refNo strings. Once full, adding a
// new entry evicts the oldest one. Absence of an entry does not mean the
// transaction is new, only that it has not been announced within the
// retained window. Not safe for concurrent use; the watch loop is the
// single reader and writer.
type Ring struct {
	index    map[string]struct{}
	order    []string
	head     int
	capacity int
}

// New creates a ring. A non-positive capacity falls back to
// DefaultCapacity.
func New(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{
		index:    make(map[string]struct{}, capacity),
		order:    make([]string, 0, capacity),
		capacity: capacity,
	}
}

// Contains reports whether refNo is inside the retained window.
func (r *Ring) Contains(refNo string) bool {
	_, ok := r.index[refNo]
	return ok
}

// Add records refNo, evicting the oldest entry once the window is full.
// Adding a refNo that is already present is a no-op.
func (r *Ring) Add(refNo string) {
	if r.Contains(refNo) {
		return
	}
	if len(r.order) < r.capacity {
		r.order = append(r.order, refNo)
	} else {
		delete(r.index, r.order[r.head])
		r.order[r.head] = refNo
		r.head = (r.head + 1) % r.capacity
	}
	r.index[refNo] = struct{}{}
}

// Len returns the number of retained entries.
func (r *Ring) Len() int {
	return len(r.index)
}

// Capacity returns the configured window size.
func (r *Ring) Capacity() int {
	return r.capacity
}
