// Package printer renders types, values and tokens of a jsonshape Universe as
// indented text, two spaces per level.
package printer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"

	"github.com/reoring/jsonshape"
)

const indentUnit = "  "

type writer struct {
	w   io.Writer
	err error
}

func (p *writer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *writer) line(depth int, s string) {
	p.printf("%s%s\n", strings.Repeat(indentUnit, depth), s)
}

// Type writes the structure of t. Primitives and arrays of primitives fit on
// one line; compounds and unions open an indented block.
func Type(w io.Writer, u *jsonshape.Universe, t jsonshape.TypeID) error {
	p := &writer{w: w}
	writeType(p, u, t, 0, "")
	return p.err
}

// TypeString is Type into a string.
func TypeString(u *jsonshape.Universe, t jsonshape.TypeID) string {
	var b strings.Builder
	_ = Type(&b, u, t)
	return b.String()
}

// inline renders t on one line when it has no compound or union inside.
func inline(u *jsonshape.Universe, t jsonshape.TypeID) (string, bool) {
	d := u.Describe(t)
	switch d.Kind {
	case jsonshape.KindArray:
		s, ok := inline(u, d.Elem)
		if !ok {
			return "", false
		}
		return "array<" + s + ">", true
	case jsonshape.KindCompound:
		if len(d.Members) == 0 {
			return "{}", true
		}
		return "", false
	case jsonshape.KindUnion:
		return "", false
	}
	return d.Kind.String(), true
}

func writeType(p *writer, u *jsonshape.Universe, t jsonshape.TypeID, depth int, prefix string) {
	if s, ok := inline(u, t); ok {
		p.line(depth, prefix+s)
		return
	}
	d := u.Describe(t)
	switch d.Kind {
	case jsonshape.KindArray:
		p.line(depth, prefix+"array<")
		writeType(p, u, d.Elem, depth+1, "")
		p.line(depth, ">")
	case jsonshape.KindCompound:
		p.line(depth, prefix+"{")
		for _, m := range d.Members {
			writeType(p, u, m.Type, depth+1, memberLabel(m.Name.String())+": ")
		}
		p.line(depth, "}")
	case jsonshape.KindUnion:
		p.line(depth, prefix+"union(")
		for _, c := range d.Cases {
			writeType(p, u, c, depth+1, "| ")
		}
		p.line(depth, ")")
	}
}

// memberLabel quotes names that would not read as a bare identifier.
func memberLabel(name string) string {
	if name == "" {
		return strconv.Quote(name)
	}
	for _, r := range name {
		if !(r == '_' || r == '-' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return strconv.Quote(name)
		}
	}
	return name
}

// Value writes v as indented JSON-like text, members in document order.
func Value(w io.Writer, v *jsonshape.Value) error {
	p := &writer{w: w}
	writeValue(p, v, 0, "")
	return p.err
}

// ValueString is Value into a string.
func ValueString(v *jsonshape.Value) string {
	var b strings.Builder
	_ = Value(&b, v)
	return b.String()
}

func scalar(v *jsonshape.Value) string {
	switch v.Kind {
	case jsonshape.KindString:
		return strconv.Quote(v.Str)
	case jsonshape.KindInt:
		return strconv.FormatInt(v.Int, 10)
	case jsonshape.KindFloat:
		s := strconv.FormatFloat(v.Float, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEIN") {
			s += ".0"
		}
		return s
	case jsonshape.KindBool:
		return strconv.FormatBool(v.Bool)
	}
	return "null"
}

func writeValue(p *writer, v *jsonshape.Value, depth int, prefix string) {
	switch v.Kind {
	case jsonshape.KindCompound:
		if len(v.Members) == 0 {
			p.line(depth, prefix+"{}")
			return
		}
		p.line(depth, prefix+"{")
		for _, m := range v.Members {
			writeValue(p, m.Value, depth+1, memberLabel(m.Name.String())+": ")
		}
		p.line(depth, "}")
	case jsonshape.KindArray:
		if len(v.Elems) == 0 {
			p.line(depth, prefix+"[]")
			return
		}
		p.line(depth, prefix+"[")
		for _, e := range v.Elems {
			writeValue(p, e, depth+1, "")
		}
		p.line(depth, "]")
	default:
		p.line(depth, prefix+scalar(v))
	}
}

// TokenText renders a single token on one line.
func TokenText(tok jsonshape.Token) string {
	switch tok.Kind {
	case jsonshape.TokenKey, jsonshape.TokenString:
		return tok.Kind.String() + " " + strconv.Quote(tok.String)
	case jsonshape.TokenNumber:
		return tok.Kind.String() + " " + tok.Number
	case jsonshape.TokenBool:
		return tok.Kind.String() + " " + strconv.FormatBool(tok.Bool)
	}
	return tok.Kind.String()
}

// Token writes one token per line, indented by container depth.
func Token(w io.Writer, toks ...jsonshape.Token) error {
	p := &writer{w: w}
	depth := 0
	for _, tok := range toks {
		switch tok.Kind {
		case jsonshape.TokenEndObject, jsonshape.TokenEndArray:
			depth = max(depth-1, 0)
			p.line(depth, TokenText(tok))
		case jsonshape.TokenBeginObject, jsonshape.TokenBeginArray:
			p.line(depth, TokenText(tok))
			depth++
		default:
			p.line(depth, TokenText(tok))
		}
	}
	return p.err
}

// Diff returns a unified diff between the renderings of a and b, or "" when
// they render identically.
func Diff(u *jsonshape.Universe, a, b jsonshape.TypeID, fromName, toName string) (string, error) {
	if a == b {
		return "", nil
	}
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(TypeString(u, a)),
		B:        difflib.SplitLines(TypeString(u, b)),
		FromFile: fromName,
		ToFile:   toName,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(ud)
}
