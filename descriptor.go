package jsonshape

import (
	"fmt"

	"github.com/reoring/jsonshape/names"
)

// Kind tags a type descriptor or a value.
type Kind uint8

const (
	KindNone Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindArray
	KindCompound
	KindUnion
	// KindUnknown is the element type of an array that held no elements.
	KindUnknown
)

var kindNames = [...]string{
	KindNone:     "none",
	KindString:   "string",
	KindInt:      "int",
	KindFloat:    "float",
	KindBool:     "bool",
	KindArray:    "array",
	KindCompound: "compound",
	KindUnion:    "union",
	KindUnknown:  "unknown",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Primitive reports whether k carries no child types.
func (k Kind) Primitive() bool {
	switch k {
	case KindArray, KindCompound, KindUnion:
		return false
	}
	return true
}

// TypeID is a canonical type handle issued by a Universe. Two handles from the
// same Universe are equal iff the shapes they denote are structurally equal.
// The zero TypeID is invalid.
type TypeID uint32

// Fixed handles present in every Universe.
const (
	TypeInvalid TypeID = iota
	TypeNone
	TypeString
	TypeInt
	TypeFloat
	TypeBool
	TypeUnknown
)

// Member is a named compound member.
type Member struct {
	Name names.Name
	Type TypeID
}

// Field is a compound member described by its string name, used when building
// compounds.
type Field struct {
	Name string
	Type TypeID
}

// Descriptor is the structural shape behind a TypeID. Only the fields
// relevant to Kind are set. Slices returned by a Universe are shared with the
// canonical instance and must not be modified.
type Descriptor struct {
	Kind    Kind
	Elem    TypeID   // KindArray
	Members []Member // KindCompound, in first-seen order
	Cases   []TypeID // KindUnion, never a union, in first-seen order
}

// Member returns the type of the named member.
func (d *Descriptor) Member(name names.Name) (TypeID, bool) {
	for _, m := range d.Members {
		if m.Name == name {
			return m.Type, true
		}
	}
	return TypeInvalid, false
}

func (d *Descriptor) hasCase(t TypeID) bool {
	for _, c := range d.Cases {
		if c == t {
			return true
		}
	}
	return false
}

// Equal reports structural equality. Child types are compared by handle, which
// is sufficient because children are already canonical. Compound members and
// union cases compare as sets.
func Equal(a, b *Descriptor) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindArray:
		return a.Elem == b.Elem
	case KindCompound:
		if len(a.Members) != len(b.Members) {
			return false
		}
		for _, m := range a.Members {
			if t, ok := b.Member(m.Name); !ok || t != m.Type {
				return false
			}
		}
		return true
	case KindUnion:
		if len(a.Cases) != len(b.Cases) {
			return false
		}
		for _, c := range a.Cases {
			if !b.hasCase(c) {
				return false
			}
		}
		return true
	}
	return true
}

func (d Descriptor) clone() Descriptor {
	out := Descriptor{Kind: d.Kind, Elem: d.Elem}
	if d.Members != nil {
		out.Members = append([]Member(nil), d.Members...)
	}
	if d.Cases != nil {
		out.Cases = append([]TypeID(nil), d.Cases...)
	}
	return out
}
