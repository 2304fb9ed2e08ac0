// Package hashtable implements an open-addressing map with linear probing and
// tombstones. It backs every lookup structure in jsonshape (name interning,
// shape canonicalisation, name bindings). It is not safe for concurrent use.
package hashtable

import (
	"hash/maphash"
	"iter"
)

// DefaultMaxLoad is the occupancy ratio (filled + tombstones) above which a
// growable table doubles before inserting.
const DefaultMaxLoad = 0.7

type slotState uint8

const (
	slotEmpty slotState = iota
	slotFilled
	slotRemoved
)

type slot[K comparable, V any] struct {
	state slotState
	hash  uint64
	key   K
	value V
}

// Options tunes a Table. The zero value selects an auto-growing table with
// DefaultMaxLoad.
type Options struct {
	// MaxLoad overrides DefaultMaxLoad when in (0, 1).
	MaxLoad float64
	// Fixed disables growth. Set on a full table panics.
	Fixed bool
}

// Table is a bucket-count-fixed-at-a-time open-addressing map.
type Table[K comparable, V any] struct {
	slots      []slot[K, V]
	filled     int
	tombstones int
	seed       maphash.Seed
	maxLoad    float64
	fixed      bool
}

// New returns a table with the given bucket count (minimum 1).
func New[K comparable, V any](buckets int, opts ...Options) *Table[K, V] {
	if buckets < 1 {
		buckets = 1
	}
	var opt Options
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	maxLoad := opt.MaxLoad
	if maxLoad <= 0 || maxLoad >= 1 {
		maxLoad = DefaultMaxLoad
	}
	return &Table[K, V]{
		slots:   make([]slot[K, V], buckets),
		seed:    maphash.MakeSeed(),
		maxLoad: maxLoad,
		fixed:   opt.Fixed,
	}
}

// Len reports the number of filled slots.
func (t *Table[K, V]) Len() int { return t.filled }

// Buckets reports the current bucket count.
func (t *Table[K, V]) Buckets() int { return len(t.slots) }

func (t *Table[K, V]) hash(k K) uint64 { return maphash.Comparable(t.seed, k) }

// probe walks every slot once, starting at the key's home index.
func (t *Table[K, V]) probe(h uint64) iter.Seq[int] {
	return func(yield func(int) bool) {
		n := len(t.slots)
		start := int(h % uint64(n))
		for i := 0; i < n; i++ {
			if !yield((start + i) % n) {
				return
			}
		}
	}
}

func (t *Table[K, V]) lookup(k K, h uint64) int {
	for i := range t.probe(h) {
		s := &t.slots[i]
		switch s.state {
		case slotEmpty:
			return -1
		case slotFilled:
			if s.hash == h && s.key == k {
				return i
			}
		}
	}
	return -1
}

// Find returns the value stored under k.
func (t *Table[K, V]) Find(k K) (V, bool) {
	if i := t.lookup(k, t.hash(k)); i >= 0 {
		return t.slots[i].value, true
	}
	var zero V
	return zero, false
}

// Set stores v under k, reusing the first empty or tombstoned slot on the
// probe path, or overwriting an existing entry for k.
func (t *Table[K, V]) Set(k K, v V) {
	h := t.hash(k)
	if i := t.lookup(k, h); i >= 0 {
		t.slots[i].value = v
		return
	}
	if !t.fixed && float64(t.filled+t.tombstones+1) > t.maxLoad*float64(len(t.slots)) {
		// mostly tombstones: clean in place instead of growing
		if float64(t.filled+1) > t.maxLoad*float64(len(t.slots))/2 {
			t.rebuild(len(t.slots) * 2)
		} else {
			t.rebuild(len(t.slots))
		}
	}
	for i := range t.probe(h) {
		s := &t.slots[i]
		if s.state == slotFilled {
			continue
		}
		if s.state == slotRemoved {
			t.tombstones--
		}
		*s = slot[K, V]{state: slotFilled, hash: h, key: k, value: v}
		t.filled++
		return
	}
	panic("hashtable: table full; no free slot on probe path")
}

// Remove deletes k, leaving a tombstone. It reports whether k was present.
func (t *Table[K, V]) Remove(k K) bool {
	i := t.lookup(k, t.hash(k))
	if i < 0 {
		return false
	}
	var zeroK K
	var zeroV V
	t.slots[i] = slot[K, V]{state: slotRemoved, hash: t.slots[i].hash, key: zeroK, value: zeroV}
	t.filled--
	t.tombstones++
	return true
}

// Rehash rebuilds the table with n buckets. It only grows; smaller or equal
// counts are ignored. Tombstones are dropped.
func (t *Table[K, V]) Rehash(n int) {
	if n <= len(t.slots) {
		return
	}
	t.rebuild(n)
}

func (t *Table[K, V]) rebuild(n int) {
	old := t.slots
	t.slots = make([]slot[K, V], n)
	t.tombstones = 0
	for i := range old {
		s := &old[i]
		if s.state != slotFilled {
			continue
		}
		for j := range t.probe(s.hash) {
			if t.slots[j].state == slotEmpty {
				t.slots[j] = *s
				break
			}
		}
	}
}

// All iterates filled entries in slot order.
func (t *Table[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := range t.slots {
			s := &t.slots[i]
			if s.state != slotFilled {
				continue
			}
			if !yield(s.key, s.value) {
				return
			}
		}
	}
}
