// Package journal reconciles a cache load with the mutations that landed
// while the load was in flight. Policy is last writer wins:
//
//   - a record deleted during the flight stays deleted,
//   - a record created during the flight appears exactly once,
//   - a record updated during the flight keeps the newer copy.
//
// A load that started before another load already applied is discarded.
// Journal is not safe for concurrent use; callers hold their own lock.
package journal

import "time"

type kind uint8

const (
	created kind = iota + 1
	updated
	deleted
)

type entry[T any] struct {
	seq  uint64
	kind kind
	id   string
	rec  T
}

// Ticket identifies one load.
type Ticket struct {
	gen uint64
	seq uint64
}

type Journal[T any] struct {
	id    func(T) string
	stamp func(T) time.Time

	gen      uint64
	applied  uint64
	seq      uint64
	inflight int
	entries  []entry[T]
}

// New takes the record key and, optionally, its last-modified stamp. Without
// a stamp a journaled update always beats the fetched copy.
func New[T any](id func(T) string, stamp func(T) time.Time) *Journal[T] {
	return &Journal[T]{id: id, stamp: stamp}
}

func (j *Journal[T]) Begin() Ticket {
	j.gen++
	j.inflight++
	return Ticket{gen: j.gen, seq: j.seq}
}

func (j *Journal[T]) Loading() bool { return j.inflight > 0 }

func (j *Journal[T]) Created(rec T) { j.record(created, j.id(rec), rec) }
func (j *Journal[T]) Updated(rec T) { j.record(updated, j.id(rec), rec) }

func (j *Journal[T]) Deleted(id string) {
	var zero T
	j.record(deleted, id, zero)
}

func (j *Journal[T]) record(k kind, id string, rec T) {
	j.seq++
	if j.inflight == 0 {
		return
	}
	j.entries = append(j.entries, entry[T]{seq: j.seq, kind: k, id: id, rec: rec})
}

// Cancel closes a load whose result is thrown away.
func (j *Journal[T]) Cancel(t Ticket) { j.done() }

// Fail closes a failed load. It reports whether the failure is still
// relevant, i.e. no newer load has applied in the meantime.
func (j *Journal[T]) Fail(t Ticket) bool {
	defer j.done()
	return t.gen > j.applied
}

// Finish closes a successful load and returns the reconciled list. ok is
// false when the load is stale and must be discarded.
func (j *Journal[T]) Finish(t Ticket, fetched []T) (merged []T, ok bool) {
	defer j.done()
	if t.gen < j.applied {
		return nil, false
	}
	j.applied = t.gen
	return j.merge(t.seq, fetched), true
}

func (j *Journal[T]) done() {
	j.inflight--
	if j.inflight <= 0 {
		j.inflight = 0
		j.entries = nil
	}
}

func (j *Journal[T]) merge(since uint64, fetched []T) []T {
	out := append([]T(nil), fetched...)
	present := make(map[string]bool, len(out))
	for _, r := range out {
		present[j.id(r)] = true
	}

	var fresh []T
	for _, e := range j.entries {
		if e.seq <= since || e.kind != created || present[e.id] {
			continue
		}
		present[e.id] = true
		fresh = append(fresh, e.rec)
	}
	if len(fresh) > 0 {
		// newest creation first, as the cache prepends
		head := make([]T, 0, len(fresh)+len(out))
		for i := len(fresh) - 1; i >= 0; i-- {
			head = append(head, fresh[i])
		}
		out = append(head, out...)
	}

	gone := map[string]bool{}
	for _, e := range j.entries {
		if e.seq <= since {
			continue
		}
		switch e.kind {
		case updated:
			for i := range out {
				if j.id(out[i]) == e.id && j.newer(e.rec, out[i]) {
					out[i] = e.rec
				}
			}
		case deleted:
			gone[e.id] = true
		}
	}
	if len(gone) == 0 {
		return out
	}

	kept := out[:0]
	for _, r := range out {
		if !gone[j.id(r)] {
			kept = append(kept, r)
		}
	}
	return kept
}

func (j *Journal[T]) newer(journaled, fetched T) bool {
	if j.stamp == nil {
		return true
	}
	return !j.stamp(journaled).Before(j.stamp(fetched))
}
