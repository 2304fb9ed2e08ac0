package jsonshape

import "slices"

// appendCases adds t, or t's cases when it is a union, to dst without
// duplicates. Unions therefore never nest.
func (u *Universe) appendCases(dst []TypeID, t TypeID) []TypeID {
	d := u.desc(t)
	if d.Kind != KindUnion {
		if !slices.Contains(dst, t) {
			dst = append(dst, t)
		}
		return dst
	}
	for _, c := range d.Cases {
		if !slices.Contains(dst, c) {
			dst = append(dst, c)
		}
	}
	return dst
}

// MakeUnion returns the canonical union of a and b, flattening union operands.
// The union of a type with itself is that type.
func (u *Universe) MakeUnion(a, b TypeID) TypeID {
	if a == b {
		return a
	}
	cases := u.appendCases(nil, a)
	cases = u.appendCases(cases, b)
	t, _ := u.FindEquivOrAdd(Descriptor{Kind: KindUnion, Cases: cases})
	return t
}

// UnionOf returns the canonical union of all ts. A single distinct case is
// returned as is. It panics when ts is empty.
func (u *Universe) UnionOf(ts ...TypeID) TypeID {
	if len(ts) == 0 {
		panic(ErrEmptyUnion)
	}
	var cases []TypeID
	for _, t := range ts {
		cases = u.appendCases(cases, t)
	}
	t, _ := u.FindEquivOrAdd(Descriptor{Kind: KindUnion, Cases: cases})
	return t
}

// MergeTypes widens a and b into one type: compounds merge member-wise,
// anything else becomes a union. Unknown, the element of an empty array,
// carries no information and yields the other operand, also one level inside
// arrays.
func (u *Universe) MergeTypes(a, b TypeID) TypeID {
	if a == b {
		return a
	}
	if a == TypeUnknown {
		return b
	}
	if b == TypeUnknown {
		return a
	}
	da, db := u.desc(a), u.desc(b)
	switch {
	case da.Kind == KindCompound && db.Kind == KindCompound:
		t, _ := u.CompoundMemberMerge(a, b)
		return t
	case da.Kind == KindArray && db.Kind == KindArray:
		if da.Elem == TypeUnknown {
			return b
		}
		if db.Elem == TypeUnknown {
			return a
		}
	}
	return u.MakeUnion(a, b)
}

// CompoundMemberMerge merges b's members into a copy of a's. New names are
// appended in b's order; a shared name with a different type is widened with
// MergeTypes.
func (u *Universe) CompoundMemberMerge(a, b TypeID) (TypeID, error) {
	da, db := u.desc(a), u.desc(b)
	if da.Kind != KindCompound || db.Kind != KindCompound {
		return TypeInvalid, ErrNotCompound
	}
	members := slices.Clone(da.Members)
	for _, m := range db.Members {
		i := slices.IndexFunc(members, func(x Member) bool { return x.Name == m.Name })
		switch {
		case i < 0:
			members = append(members, m)
		case members[i].Type != m.Type:
			members[i].Type = u.MergeTypes(members[i].Type, m.Type)
		}
	}
	t, _ := u.intern(Descriptor{Kind: KindCompound, Members: members})
	return t, nil
}
