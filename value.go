package jsonshape

import (
	"github.com/reoring/jsonshape/names"
)

// Value is a concrete data tree whose shape mirrors its Type. A Value is
// never union-tagged; unions only appear in types.
type Value struct {
	Kind    Kind
	Type    TypeID
	Str     string
	Int     int64
	Float   float64
	Bool    bool
	Members []ValueMember // KindCompound, document order
	Elems   []*Value      // KindArray
}

// ValueMember is a named compound member.
type ValueMember struct {
	Name  names.Name
	Value *Value
}

// Lookup returns the member called name.
func (v *Value) Lookup(name string) (*Value, bool) {
	if v == nil || v.Kind != KindCompound {
		return nil, false
	}
	for _, m := range v.Members {
		if m.Name.String() == name {
			return m.Value, true
		}
	}
	return nil, false
}

// Index returns the i-th array element.
func (v *Value) Index(i int) (*Value, bool) {
	if v == nil || v.Kind != KindArray || i < 0 || i >= len(v.Elems) {
		return nil, false
	}
	return v.Elems[i], true
}

// Len returns the number of members or elements.
func (v *Value) Len() int {
	switch v.Kind {
	case KindCompound:
		return len(v.Members)
	case KindArray:
		return len(v.Elems)
	}
	return 0
}

// Clone returns a deep copy of v.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	out := *v
	if v.Members != nil {
		out.Members = make([]ValueMember, len(v.Members))
		for i, m := range v.Members {
			out.Members[i] = ValueMember{Name: m.Name, Value: m.Value.Clone()}
		}
	}
	if v.Elems != nil {
		out.Elems = make([]*Value, len(v.Elems))
		for i, e := range v.Elems {
			out.Elems[i] = e.Clone()
		}
	}
	return &out
}

// Release drops v's children so the tree can be collected piecemeal; v is
// reset to a None value.
func (v *Value) Release() {
	if v == nil {
		return
	}
	for _, m := range v.Members {
		m.Value.Release()
	}
	for _, e := range v.Elems {
		e.Release()
	}
	*v = Value{Kind: KindNone, Type: TypeNone}
}

// Interface converts v to plain Go values: nil, string, int64, float64, bool,
// map[string]any and []any.
func (v *Value) Interface() any {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindBool:
		return v.Bool
	case KindCompound:
		m := make(map[string]any, len(v.Members))
		for _, mm := range v.Members {
			m[mm.Name.String()] = mm.Value.Interface()
		}
		return m
	case KindArray:
		a := make([]any, len(v.Elems))
		for i, e := range v.Elems {
			a[i] = e.Interface()
		}
		return a
	}
	return nil
}
