// Package names interns strings into an append-only byte arena.
//
// Each record is laid out as
//
//	[u16 length][bytes][0x00][padding to 8-byte alignment]
//
// after an 8-byte guard, so offset 0 never denotes a record and serves as the
// not-found sentinel. Identical content always yields the same Name within one
// Table, which makes Name equality a valid proxy for string equality.
//
// A Table is not safe for concurrent use.
package names

import (
	"encoding/binary"
	"fmt"

	"github.com/reoring/jsonshape/internal/hashtable"
)

const (
	// Guard is written at the start of every arena.
	Guard uint64 = 0x6a736e616d657321

	headerSize = 8
	lenSize    = 2
	align      = 8
	// MaxLen is the longest string a record can hold.
	MaxLen = 1<<16 - 1
)

// Name is a handle to an interned string.
type Name struct {
	off uint32
	t   *Table
}

// Offset returns the record's byte offset in its arena (0 for the zero Name).
func (n Name) Offset() uint32 { return n.off }

// Valid reports whether n refers to a record.
func (n Name) Valid() bool { return n.off != 0 && n.t != nil }

// Table returns the owning table.
func (n Name) Table() *Table { return n.t }

// String returns the interned content.
func (n Name) String() string {
	if !n.Valid() {
		return ""
	}
	return n.t.read(n.off)
}

// Options configures a Table.
type Options struct {
	// Capacity bounds the arena in bytes; exceeding it panics. Zero means the
	// arena grows on demand.
	Capacity int
	// Buckets is the initial index size.
	Buckets int
}

// Table is the interning arena.
type Table struct {
	arena    []byte
	capacity int
	index    *hashtable.Table[string, uint32]
	count    int
}

// New creates an empty table.
func New(opts ...Options) *Table {
	var opt Options
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.Buckets <= 0 {
		opt.Buckets = 64
	}
	initial := 1024
	if opt.Capacity > 0 {
		if opt.Capacity < headerSize {
			panic(fmt.Sprintf("names: capacity %d smaller than header", opt.Capacity))
		}
		initial = opt.Capacity
	}
	arena := make([]byte, headerSize, initial)
	binary.LittleEndian.PutUint64(arena, Guard)
	return &Table{
		arena:    arena,
		capacity: opt.Capacity,
		index:    hashtable.New[string, uint32](opt.Buckets),
	}
}

// Len reports how many distinct strings are interned.
func (t *Table) Len() int { return t.count }

// Size reports the arena size in bytes, header included.
func (t *Table) Size() int { return len(t.arena) }

// Bytes exposes the arena for diagnostics. Callers must not modify it.
func (t *Table) Bytes() []byte { return t.arena }

// Find returns the Name for s if it has been interned.
func (t *Table) Find(s string) (Name, bool) {
	off, ok := t.index.Find(s)
	if !ok {
		return Name{}, false
	}
	return Name{off: off, t: t}, true
}

// FindOrAdd returns the existing Name for s or appends a new record.
func (t *Table) FindOrAdd(s string) Name {
	if n, ok := t.Find(s); ok {
		return n
	}
	if len(s) > MaxLen {
		panic(fmt.Sprintf("names: string of %d bytes exceeds record limit %d", len(s), MaxLen))
	}
	off := len(t.arena)
	size := recordSize(len(s))
	if t.capacity > 0 && off+size > t.capacity {
		panic(fmt.Sprintf("names: arena overflow (%d + %d > %d)", off, size, t.capacity))
	}
	rec := make([]byte, size)
	binary.LittleEndian.PutUint16(rec, uint16(len(s)))
	copy(rec[lenSize:], s)
	t.arena = append(t.arena, rec...)
	t.index.Set(s, uint32(off))
	t.count++
	return Name{off: uint32(off), t: t}
}

// First returns the earliest record, or the zero Name when empty.
func (t *Table) First() Name {
	if len(t.arena) <= headerSize {
		return Name{}
	}
	return Name{off: headerSize, t: t}
}

// Next returns the record following n, or the zero Name at the end.
func (t *Table) Next(n Name) Name {
	if !n.Valid() || n.t != t {
		return Name{}
	}
	l := int(binary.LittleEndian.Uint16(t.arena[n.off:]))
	next := int(n.off) + recordSize(l)
	if next >= len(t.arena) {
		return Name{}
	}
	return Name{off: uint32(next), t: t}
}

func (t *Table) read(off uint32) string {
	l := int(binary.LittleEndian.Uint16(t.arena[off:]))
	start := int(off) + lenSize
	return string(t.arena[start : start+l])
}

func recordSize(n int) int {
	size := lenSize + n + 1
	if r := size % align; r != 0 {
		size += align - r
	}
	return size
}
