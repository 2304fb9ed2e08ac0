package jsonshape_test

import (
	"errors"
	"slices"
	"testing"

	jsonshape "github.com/reoring/jsonshape"
)

func field(name string, t jsonshape.TypeID) jsonshape.Field {
	return jsonshape.Field{Name: name, Type: t}
}

func TestMakeUnion_CommutativeAndFlat(t *testing.T) {
	u := jsonshape.New()
	ab := u.MakeUnion(jsonshape.TypeInt, jsonshape.TypeString)
	ba := u.MakeUnion(jsonshape.TypeString, jsonshape.TypeInt)
	if ab != ba {
		t.Fatalf("union not commutative: %d != %d", ab, ba)
	}
	abc := u.MakeUnion(ab, jsonshape.TypeBool)
	d := u.Describe(abc)
	if d.Kind != jsonshape.KindUnion || len(d.Cases) != 3 {
		t.Fatalf("expected flat 3-case union, got %+v", d)
	}
	for _, c := range d.Cases {
		if u.KindOf(c) == jsonshape.KindUnion {
			t.Fatalf("nested union case %d", c)
		}
	}
	if u.MakeUnion(abc, ab) != abc {
		t.Fatalf("union with a subset should be unchanged")
	}
	if u.MakeUnion(jsonshape.TypeInt, jsonshape.TypeInt) != jsonshape.TypeInt {
		t.Fatalf("union of a type with itself should be that type")
	}
	if u.UnionOf(jsonshape.TypeBool, jsonshape.TypeString, jsonshape.TypeInt) != abc {
		t.Fatalf("UnionOf should canonicalise to the same handle")
	}
}

func TestUnionOf_EmptyPanics(t *testing.T) {
	u := jsonshape.New()
	defer func() {
		if r := recover(); r == nil || !errors.Is(r.(error), jsonshape.ErrEmptyUnion) {
			t.Fatalf("expected ErrEmptyUnion panic, got %v", r)
		}
	}()
	u.UnionOf()
}

func TestMergeTypes_CompoundsConverge(t *testing.T) {
	u := jsonshape.New()
	a := u.MustCompound(field("a", jsonshape.TypeInt))
	b := u.MustCompound(field("b", jsonshape.TypeString))
	m := u.MergeTypes(u.MergeTypes(a, b), a)
	want := u.MustCompound(field("a", jsonshape.TypeInt), field("b", jsonshape.TypeString))
	if m != want {
		t.Fatalf("merge = %d want %d", m, want)
	}
	names := []string{}
	for _, mm := range u.Describe(m).Members {
		names = append(names, mm.Name.String())
	}
	if !slices.Equal(names, []string{"a", "b"}) {
		t.Fatalf("member order %v", names)
	}
}

func TestMergeTypes_WidensSharedMember(t *testing.T) {
	u := jsonshape.New()
	a := u.MustCompound(field("x", jsonshape.TypeInt))
	b := u.MustCompound(field("x", jsonshape.TypeString))
	got := u.MergeTypes(a, b)
	want := u.MustCompound(field("x", u.MakeUnion(jsonshape.TypeInt, jsonshape.TypeString)))
	if got != want {
		t.Fatalf("merge = %d want %d", got, want)
	}
}

func TestMergeTypes_Unknown(t *testing.T) {
	u := jsonshape.New()
	if u.MergeTypes(jsonshape.TypeUnknown, jsonshape.TypeInt) != jsonshape.TypeInt {
		t.Fatalf("Unknown should be an identity")
	}
	empty := u.ArrayOf(jsonshape.TypeUnknown)
	ints := u.ArrayOf(jsonshape.TypeInt)
	if u.MergeTypes(empty, ints) != ints || u.MergeTypes(ints, empty) != ints {
		t.Fatalf("Array<Unknown> should yield to a concrete array")
	}
	strs := u.ArrayOf(jsonshape.TypeString)
	if got := u.MergeTypes(ints, strs); got != u.MakeUnion(ints, strs) {
		t.Fatalf("distinct arrays should form a union, got kind %s", u.KindOf(got))
	}
}

func TestCompoundMemberMerge_RejectsNonCompound(t *testing.T) {
	u := jsonshape.New()
	c := u.MustCompound()
	if _, err := u.CompoundMemberMerge(c, jsonshape.TypeInt); !errors.Is(err, jsonshape.ErrNotCompound) {
		t.Fatalf("got %v", err)
	}
	got, err := u.CompoundMemberMerge(c, c)
	if err != nil || got != c {
		t.Fatalf("merge with self = (%d,%v)", got, err)
	}
}

func TestEqual_SetSemantics(t *testing.T) {
	u := jsonshape.New()
	x, y := u.Name("x"), u.Name("y")
	a := &jsonshape.Descriptor{Kind: jsonshape.KindCompound, Members: []jsonshape.Member{{Name: x, Type: jsonshape.TypeInt}, {Name: y, Type: jsonshape.TypeBool}}}
	b := &jsonshape.Descriptor{Kind: jsonshape.KindCompound, Members: []jsonshape.Member{{Name: y, Type: jsonshape.TypeBool}, {Name: x, Type: jsonshape.TypeInt}}}
	if !jsonshape.Equal(a, b) {
		t.Fatalf("reordered members should be equal")
	}
	b.Members[0].Type = jsonshape.TypeString
	if jsonshape.Equal(a, b) {
		t.Fatalf("different member type should differ")
	}
	ua := &jsonshape.Descriptor{Kind: jsonshape.KindUnion, Cases: []jsonshape.TypeID{jsonshape.TypeInt, jsonshape.TypeString}}
	ub := &jsonshape.Descriptor{Kind: jsonshape.KindUnion, Cases: []jsonshape.TypeID{jsonshape.TypeString, jsonshape.TypeInt}}
	if !jsonshape.Equal(ua, ub) {
		t.Fatalf("reordered cases should be equal")
	}
}
