package jsonshape

import (
	"encoding/binary"
	"fmt"
	"slices"
	"sort"

	"go.uber.org/zap"

	"github.com/reoring/jsonshape/internal/hashtable"
	"github.com/reoring/jsonshape/internal/pool"
	"github.com/reoring/jsonshape/names"
)

// Universe owns one independent type system: its name table, the canonical
// descriptor store and the name bindings. Handles from one Universe are
// meaningless in another. A Universe is not safe for concurrent use.
type Universe struct {
	opt      Options
	log      *zap.Logger
	names    *names.Table
	types    *pool.Store[Descriptor]
	shapes   *hashtable.Table[string, TypeID]
	bindings *hashtable.Table[names.Name, TypeID]
	keyBuf   []byte
}

// New creates a Universe with the primitive singletons pre-interned.
func New(opts ...Options) *Universe {
	opt := normalizeOptions(opts)
	hopt := hashtable.Options{MaxLoad: opt.MaxLoad}
	u := &Universe{
		opt:      opt,
		log:      opt.Logger,
		names:    names.New(names.Options{Capacity: opt.NameCapacity, Buckets: opt.TypeBuckets}),
		types:    pool.New[Descriptor](opt.PoolItemCount),
		shapes:   hashtable.New[string, TypeID](opt.TypeBuckets, hopt),
		bindings: hashtable.New[names.Name, TypeID](opt.TypeBuckets, hopt),
	}
	for _, k := range []Kind{KindNone, KindString, KindInt, KindFloat, KindBool, KindUnknown} {
		u.intern(Descriptor{Kind: k})
	}
	return u
}

// Names exposes the Universe's name table.
func (u *Universe) Names() *names.Table { return u.names }

// Logger returns the configured logger.
func (u *Universe) Logger() *zap.Logger { return u.log }

// Len reports how many canonical types exist, primitives included.
func (u *Universe) Len() int { return u.types.Len() }

// Name interns s in the Universe's name table.
func (u *Universe) Name(s string) names.Name { return u.names.FindOrAdd(s) }

// Primitive returns the singleton handle for a primitive kind.
func Primitive(k Kind) TypeID {
	switch k {
	case KindNone:
		return TypeNone
	case KindString:
		return TypeString
	case KindInt:
		return TypeInt
	case KindFloat:
		return TypeFloat
	case KindBool:
		return TypeBool
	case KindUnknown:
		return TypeUnknown
	}
	return TypeInvalid
}

// Valid reports whether t was issued by this Universe.
func (u *Universe) Valid(t TypeID) bool {
	if t == TypeInvalid {
		return false
	}
	_, ok := u.types.At(int(t) - 1)
	return ok
}

func (u *Universe) desc(t TypeID) *Descriptor {
	d, ok := u.types.At(int(t) - 1)
	if t == TypeInvalid || !ok {
		panic(fmt.Sprintf("jsonshape: type id %d out of range (%d types)", t, u.types.Len()))
	}
	return d
}

// Describe returns the canonical descriptor for t. Its slices must not be
// modified.
func (u *Universe) Describe(t TypeID) Descriptor { return *u.desc(t) }

// KindOf returns the kind of t.
func (u *Universe) KindOf(t TypeID) Kind { return u.desc(t).Kind }

// shapeKey encodes d so that two descriptors have equal keys iff they are
// structurally equal: members are keyed by sorted name offset, cases by
// sorted handle.
func (u *Universe) shapeKey(d *Descriptor) string {
	b := u.keyBuf[:0]
	b = append(b, byte(d.Kind))
	switch d.Kind {
	case KindArray:
		b = binary.AppendUvarint(b, uint64(d.Elem))
	case KindCompound:
		ms := slices.Clone(d.Members)
		sort.Slice(ms, func(i, j int) bool { return ms[i].Name.Offset() < ms[j].Name.Offset() })
		b = binary.AppendUvarint(b, uint64(len(ms)))
		for _, m := range ms {
			b = binary.AppendUvarint(b, uint64(m.Name.Offset()))
			b = binary.AppendUvarint(b, uint64(m.Type))
		}
	case KindUnion:
		cs := slices.Clone(d.Cases)
		slices.Sort(cs)
		b = binary.AppendUvarint(b, uint64(len(cs)))
		for _, c := range cs {
			b = binary.AppendUvarint(b, uint64(c))
		}
	}
	u.keyBuf = b
	return string(b)
}

// validate checks references and structural invariants of a candidate.
func (u *Universe) validate(d *Descriptor) error {
	switch d.Kind {
	case KindNone, KindString, KindInt, KindFloat, KindBool, KindUnknown:
		return nil
	case KindArray:
		if !u.Valid(d.Elem) {
			return fmt.Errorf("%w: array element %d", ErrInvalidType, d.Elem)
		}
	case KindCompound:
		for i, m := range d.Members {
			if !m.Name.Valid() || m.Name.Table() != u.names {
				return fmt.Errorf("%w: member %d has a foreign name", ErrInvalidType, i)
			}
			if !u.Valid(m.Type) {
				return fmt.Errorf("%w: member %q type %d", ErrInvalidType, m.Name.String(), m.Type)
			}
			for _, prev := range d.Members[:i] {
				if prev.Name == m.Name {
					return fmt.Errorf("%w: %q", ErrDuplicateMember, m.Name.String())
				}
			}
		}
	case KindUnion:
		if len(d.Cases) == 0 {
			return ErrEmptyUnion
		}
		for i, c := range d.Cases {
			if !u.Valid(c) {
				return fmt.Errorf("%w: union case %d", ErrInvalidType, c)
			}
			if u.desc(c).Kind == KindUnion {
				return fmt.Errorf("%w: case %d", ErrNestedUnion, c)
			}
			if slices.Contains(d.Cases[:i], c) {
				return fmt.Errorf("jsonshape: duplicate union case %d", c)
			}
		}
	default:
		return fmt.Errorf("jsonshape: unknown kind %d", d.Kind)
	}
	return nil
}

// intern canonicalises an already-validated candidate. A union of a single
// case collapses to that case.
func (u *Universe) intern(d Descriptor) (TypeID, bool) {
	if d.Kind == KindUnion && len(d.Cases) == 1 {
		return d.Cases[0], true
	}
	key := u.shapeKey(&d)
	if t, ok := u.shapes.Find(key); ok {
		return t, true
	}
	h, slot := u.types.Add()
	*slot = d.clone()
	t := TypeID(h.Index + 1)
	u.shapes.Set(key, t)
	if ce := u.log.Check(zap.DebugLevel, "interned type"); ce != nil {
		ce.Write(zap.Uint32("id", uint32(t)), zap.Stringer("kind", d.Kind), zap.Int("types", u.types.Len()))
	}
	return t, false
}

// AddType validates d and returns its canonical handle, interning it when no
// structurally equal type exists yet. Union cases must already be flattened.
func (u *Universe) AddType(d Descriptor) (TypeID, error) {
	if err := u.validate(&d); err != nil {
		return TypeInvalid, err
	}
	t, _ := u.intern(d)
	return t, nil
}

// FindEquivOrAdd is AddType for callers that guarantee d is valid. It reports
// whether an equal type already existed. An invalid descriptor panics.
func (u *Universe) FindEquivOrAdd(d Descriptor) (TypeID, bool) {
	if err := u.validate(&d); err != nil {
		panic(err)
	}
	return u.intern(d)
}

// Lookup returns the canonical handle equal to d without interning.
func (u *Universe) Lookup(d Descriptor) (TypeID, bool) {
	if d.Kind == KindUnion && len(d.Cases) == 1 {
		return d.Cases[0], true
	}
	return u.shapes.Find(u.shapeKey(&d))
}

// ArrayOf returns Array<elem>.
func (u *Universe) ArrayOf(elem TypeID) TypeID {
	t, _ := u.FindEquivOrAdd(Descriptor{Kind: KindArray, Elem: elem})
	return t
}

// Compound returns the compound with the given fields in order.
func (u *Universe) Compound(fields ...Field) (TypeID, error) {
	ms := make([]Member, len(fields))
	for i, f := range fields {
		ms[i] = Member{Name: u.names.FindOrAdd(f.Name), Type: f.Type}
	}
	return u.AddType(Descriptor{Kind: KindCompound, Members: ms})
}

// MustCompound is like Compound but panics on error.
func (u *Universe) MustCompound(fields ...Field) TypeID {
	t, err := u.Compound(fields...)
	if err != nil {
		panic(err)
	}
	return t
}

// Binding associates a name with a type.
type Binding struct {
	Name string
	Type TypeID
}

// BindName associates name with t, replacing any previous binding.
func (u *Universe) BindName(name string, t TypeID) error {
	if !u.Valid(t) {
		return fmt.Errorf("%w: %d", ErrInvalidType, t)
	}
	u.bindings.Set(u.names.FindOrAdd(name), t)
	u.log.Debug("bound type", zap.String("name", name), zap.Uint32("id", uint32(t)))
	return nil
}

// FindByName returns the type bound to name.
func (u *Universe) FindByName(name string) (TypeID, bool) {
	n, ok := u.names.Find(name)
	if !ok {
		return TypeInvalid, false
	}
	return u.bindings.Find(n)
}

// Unbind removes a binding and reports whether it existed.
func (u *Universe) Unbind(name string) bool {
	n, ok := u.names.Find(name)
	if !ok {
		return false
	}
	return u.bindings.Remove(n)
}

// Bindings lists every binding sorted by name.
func (u *Universe) Bindings() []Binding {
	out := make([]Binding, 0, u.bindings.Len())
	for n, t := range u.bindings.All() {
		out = append(out, Binding{Name: n.String(), Type: t})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Types iterates every canonical type in creation order.
func (u *Universe) Types() []TypeID {
	out := make([]TypeID, 0, u.types.Len())
	for h := range u.types.All() {
		out = append(out, TypeID(h.Index+1))
	}
	return out
}
