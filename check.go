package jsonshape

import (
	"github.com/reoring/jsonshape/internal/engine"
)

// CheckCode is the outcome of a compatibility check.
type CheckCode int

const (
	CheckOk CheckCode = iota
	CheckMemberCountMismatch
	CheckArrayElementTypeMismatch
	CheckMismatchedTypeID
	CheckMissingMember
	CheckMemberMismatch
	CheckNoMatchForUnionCase
	CheckMismatchedUnions
)

var checkCodes = [...]string{
	CheckOk:                       "ok",
	CheckMemberCountMismatch:      CodeMemberCountMismatch,
	CheckArrayElementTypeMismatch: CodeArrayElementTypeMismatch,
	CheckMismatchedTypeID:         CodeMismatchedTypeID,
	CheckMissingMember:            CodeMissingMember,
	CheckMemberMismatch:           CodeMemberMismatch,
	CheckNoMatchForUnionCase:      CodeNoMatchForUnionCase,
	CheckMismatchedUnions:         CodeMismatchedUnions,
}

// String returns the issue code for c.
func (c CheckCode) String() string {
	if c >= 0 && int(c) < len(checkCodes) {
		return checkCodes[c]
	}
	return "unknown"
}

// TypeCheckResult reports whether an input type satisfies a validator.
// Path is a JSON Pointer to the deepest failing location; array elements are
// addressed with "*".
type TypeCheckResult struct {
	Passed bool
	Result CheckCode
	Path   string
}

// Err converts a failed result into Issues, or nil when it passed.
func (r TypeCheckResult) Err() error {
	if r.Passed {
		return nil
	}
	return Issues{newIssue(r.Path, r.Result.String(), nil)}
}

// Check tests whether values of type input are acceptable where validator is
// expected. It is a one-directional structural subtype test: compounds must
// match member for member, a union validator accepts any input satisfying one
// of its cases, and a union input must have every case accepted. Unknown on
// either side is accepted.
func (u *Universe) Check(input, validator TypeID) TypeCheckResult {
	return u.check(input, validator, "")
}

func pass() TypeCheckResult { return TypeCheckResult{Passed: true, Result: CheckOk} }

func fail(code CheckCode, path string) TypeCheckResult {
	if path == "" {
		path = "/"
	}
	return TypeCheckResult{Result: code, Path: path}
}

func (u *Universe) check(input, validator TypeID, path string) TypeCheckResult {
	if input == validator || input == TypeUnknown || validator == TypeUnknown {
		return pass()
	}
	in, va := u.desc(input), u.desc(validator)
	if va.Kind != KindUnion && in.Kind != va.Kind {
		return fail(CheckMismatchedTypeID, path)
	}
	switch va.Kind {
	case KindArray:
		if r := u.check(in.Elem, va.Elem, path+"/*"); !r.Passed {
			return TypeCheckResult{Result: CheckArrayElementTypeMismatch, Path: r.Path}
		}
		return pass()
	case KindCompound:
		if len(in.Members) != len(va.Members) {
			return fail(CheckMemberCountMismatch, path)
		}
		for _, m := range va.Members {
			mp := engine.JoinPointer(path, m.Name.String())
			it, ok := in.Member(m.Name)
			if !ok {
				return fail(CheckMissingMember, mp)
			}
			if r := u.check(it, m.Type, mp); !r.Passed {
				return TypeCheckResult{Result: CheckMemberMismatch, Path: r.Path}
			}
		}
		return pass()
	case KindUnion:
		if in.Kind != KindUnion {
			if u.anyCase(input, va.Cases, path) {
				return pass()
			}
			return fail(CheckNoMatchForUnionCase, path)
		}
		for _, c := range in.Cases {
			if !u.anyCase(c, va.Cases, path) {
				return fail(CheckMismatchedUnions, path)
			}
		}
		return pass()
	}
	// same primitive kind; primitives are singletons so this is unreachable
	// for canonical handles
	return pass()
}

func (u *Universe) anyCase(input TypeID, cases []TypeID, path string) bool {
	for _, c := range cases {
		if u.check(input, c, path).Passed {
			return true
		}
	}
	return false
}

// CheckValue tests v's type against validator.
func (u *Universe) CheckValue(v *Value, validator TypeID) TypeCheckResult {
	return u.Check(v.Type, validator)
}
