package jsonshape

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/jsonshape/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeMemberCountMismatch      = "member_count_mismatch"
	CodeArrayElementTypeMismatch = "array_element_type_mismatch"
	CodeMismatchedTypeID         = "mismatched_type_id"
	CodeMissingMember            = "missing_member"
	CodeMemberMismatch           = "member_mismatch"
	CodeNoMatchForUnionCase      = "no_match_for_union_case"
	CodeMismatchedUnions         = "mismatched_unions"
	CodeParseError               = "parse_error"
	CodeDuplicateKey             = "duplicate_key"
	CodeTruncated                = "truncated"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/*/price).
	Code    string // One of the codes listed above.
	Message string
	// Params carries structured parameters (e.g., {"expected":"int"}) for
	// i18n and diagnostics.
	Params map[string]string
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. missing_member at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func newIssue(path, code string, params map[string]string) Issue {
	if path == "" {
		path = "/"
	}
	return Issue{Path: path, Code: code, Message: i18n.T(code, params), Params: params}
}

var (
	// ErrInvalidType reports a TypeID not issued by the Universe.
	ErrInvalidType = errors.New("jsonshape: invalid type id")
	// ErrNestedUnion reports a union case that is itself a union.
	ErrNestedUnion = errors.New("jsonshape: union case is a union")
	// ErrEmptyUnion reports a union with no cases.
	ErrEmptyUnion = errors.New("jsonshape: union has no cases")
	// ErrDuplicateMember reports a compound with a repeated member name.
	ErrDuplicateMember = errors.New("jsonshape: duplicate compound member")
	// ErrNotCompound reports a compound-only operation applied to another kind.
	ErrNotCompound = errors.New("jsonshape: not a compound type")
)
