// Package pool provides a stable-index object store. Elements live in
// independently allocated buckets so that neither their index nor their
// address changes while other elements are added or removed.
package pool

import (
	"fmt"
	"iter"
	"math/bits"
)

// DefaultItemCount is the number of slots per bucket. It must not exceed 64
// (one occupancy word per bucket).
const DefaultItemCount = 64

// Handle identifies a slot together with the generation it was issued for.
type Handle struct {
	Index int
	Gen   uint32
}

type bucket[T any] struct {
	items    []T
	gens     []uint32
	occupied uint64
	count    int
}

// Store is a bucket array. The zero value is not usable; call New.
type Store[T any] struct {
	itemCount int
	full      uint64
	buckets   []*bucket[T]
	vacant    []int // bucket indices with at least one free slot
	len       int
}

// New creates a store with itemCount slots per bucket (1..64, 0 selects
// DefaultItemCount).
func New[T any](itemCount int) *Store[T] {
	if itemCount == 0 {
		itemCount = DefaultItemCount
	}
	if itemCount < 1 || itemCount > 64 {
		panic(fmt.Sprintf("pool: item count %d out of range 1..64", itemCount))
	}
	full := ^uint64(0)
	if itemCount < 64 {
		full = uint64(1)<<itemCount - 1
	}
	return &Store[T]{itemCount: itemCount, full: full}
}

// Len reports the number of occupied slots.
func (s *Store[T]) Len() int { return s.len }

// ItemCount reports the bucket size.
func (s *Store[T]) ItemCount() int { return s.itemCount }

func (s *Store[T]) split(index int) (bi, si int) { return index / s.itemCount, index % s.itemCount }

// Add claims the first free slot of a bucket with a vacancy, allocating a new
// bucket only when none exists. The returned pointer stays valid until the
// slot is removed.
func (s *Store[T]) Add() (Handle, *T) {
	if len(s.vacant) == 0 {
		s.buckets = append(s.buckets, &bucket[T]{
			items: make([]T, s.itemCount),
			gens:  make([]uint32, s.itemCount),
		})
		s.vacant = append(s.vacant, len(s.buckets)-1)
	}
	bi := s.vacant[0]
	b := s.buckets[bi]
	si := bits.TrailingZeros64(^b.occupied & s.full)
	b.occupied |= 1 << si
	b.count++
	s.len++
	if b.occupied == s.full {
		s.vacant = s.vacant[1:]
	}
	return Handle{Index: bi*s.itemCount + si, Gen: b.gens[si]}, &b.items[si]
}

// Remove vacates the slot in O(1). Other elements keep their indices. It
// reports whether h referred to a live element.
func (s *Store[T]) Remove(h Handle) bool {
	b, si, ok := s.slot(h.Index)
	if !ok || b.gens[si] != h.Gen {
		return false
	}
	wasFull := b.occupied == s.full
	var zero T
	b.items[si] = zero
	b.occupied &^= 1 << si
	b.gens[si]++
	b.count--
	s.len--
	if wasFull {
		bi, _ := s.split(h.Index)
		s.insertVacant(bi)
	}
	return true
}

// insertVacant keeps the vacancy list ordered so lower buckets fill first.
func (s *Store[T]) insertVacant(bi int) {
	i := 0
	for i < len(s.vacant) && s.vacant[i] < bi {
		i++
	}
	s.vacant = append(s.vacant, 0)
	copy(s.vacant[i+1:], s.vacant[i:])
	s.vacant[i] = bi
}

func (s *Store[T]) slot(index int) (*bucket[T], int, bool) {
	if index < 0 {
		return nil, 0, false
	}
	bi, si := s.split(index)
	if bi >= len(s.buckets) {
		return nil, 0, false
	}
	b := s.buckets[bi]
	if b.occupied&(1<<si) == 0 {
		return nil, 0, false
	}
	return b, si, true
}

// Get returns the element for h, or false when the slot is vacant, out of
// range, or was reused since h was issued.
func (s *Store[T]) Get(h Handle) (*T, bool) {
	b, si, ok := s.slot(h.Index)
	if !ok || b.gens[si] != h.Gen {
		return nil, false
	}
	return &b.items[si], true
}

// Exists reports whether h refers to a live element.
func (s *Store[T]) Exists(h Handle) bool {
	_, ok := s.Get(h)
	return ok
}

// At returns the element at index regardless of generation.
func (s *Store[T]) At(index int) (*T, bool) {
	b, si, ok := s.slot(index)
	if !ok {
		return nil, false
	}
	return &b.items[si], true
}

// MustGet is Get for callers that hold the invariant that h is live.
func (s *Store[T]) MustGet(h Handle) *T {
	p, ok := s.Get(h)
	if !ok {
		panic(fmt.Sprintf("pool: invalid handle %d/%d (len %d)", h.Index, h.Gen, s.len))
	}
	return p
}

// IndexOf recovers the handle of an element pointer by scanning buckets. It
// is linear in the number of buckets and intended for rare fallbacks.
func (s *Store[T]) IndexOf(p *T) (Handle, bool) {
	if p == nil {
		return Handle{}, false
	}
	for bi, b := range s.buckets {
		for si := range b.items {
			if &b.items[si] != p {
				continue
			}
			if b.occupied&(1<<si) == 0 {
				return Handle{}, false
			}
			return Handle{Index: bi*s.itemCount + si, Gen: b.gens[si]}, true
		}
	}
	return Handle{}, false
}

// All iterates live elements in index order.
func (s *Store[T]) All() iter.Seq2[Handle, *T] {
	return func(yield func(Handle, *T) bool) {
		for bi, b := range s.buckets {
			if b.count == 0 {
				continue
			}
			for si := 0; si < s.itemCount; si++ {
				if b.occupied&(1<<si) == 0 {
					continue
				}
				if !yield(Handle{Index: bi*s.itemCount + si, Gen: b.gens[si]}, &b.items[si]) {
					return
				}
			}
		}
	}
}
