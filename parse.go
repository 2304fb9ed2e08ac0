package jsonshape

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	eng "github.com/reoring/jsonshape/internal/engine"
)

// ParseStatus is the outcome of parsing one document.
type ParseStatus int

const (
	// ParseEOF means the input held no value (empty, whitespace or comments).
	ParseEOF ParseStatus = iota
	ParseFailed
	ParseSucceeded
)

func (s ParseStatus) String() string {
	switch s {
	case ParseEOF:
		return "eof"
	case ParseFailed:
		return "failed"
	case ParseSucceeded:
		return "succeeded"
	}
	return "unknown"
}

// ParseError locates a parse failure. Line and Column are 1-based; they are
// zero when the position is unknown (Offset -1).
type ParseError struct {
	Offset      int64
	Line        int
	Column      int
	Code        string
	Description string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Description)
}

// Issues converts e into the common issue model.
func (e *ParseError) Issues() Issues {
	return Issues{newIssue("/", e.Code, map[string]string{
		"line":   strconv.Itoa(e.Line),
		"column": strconv.Itoa(e.Column),
	})}
}

// ParseResult is the discriminated outcome of ParseJSON: Node is set when
// Status is ParseSucceeded, Err when it is ParseFailed.
type ParseResult struct {
	Status ParseStatus
	Node   *JSONNode
	Err    *ParseError
}

func newParseError(data []byte, off int64, code, desc string) *ParseError {
	line, col := eng.Position(data, off)
	return &ParseError{Offset: off, Line: line, Column: col, Code: code, Description: desc}
}

func syntaxToParseError(data []byte, err error) *ParseError {
	var se *eng.SyntaxError
	if errors.As(err, &se) {
		return newParseError(data, se.Offset, CodeParseError, se.Msg)
	}
	return newParseError(data, int64(len(data)), CodeParseError, err.Error())
}

func errorToParseError(data []byte, err error) *ParseError {
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return newParseError(data, ie.Offset, ie.Code, ie.Message+" at "+ie.Path)
	}
	return syntaxToParseError(data, err)
}

func (u *Universe) logIssue(si eng.SimpleIssue) {
	u.log.Warn("json issue", zap.String("code", si.Code), zap.String("path", si.Path), zap.String("message", si.Message))
}

// ParseJSON parses one document, accepting trailing commas and C-style
// comments.
func (u *Universe) ParseJSON(data []byte) ParseResult {
	relaxed, blank, perr := u.prepare(data)
	if perr != nil {
		return ParseResult{Status: ParseFailed, Err: perr}
	}
	if blank {
		return ParseResult{Status: ParseEOF}
	}
	src := u.source(relaxed)
	node, err := eng.DecodeNode(src)
	if err != nil {
		return ParseResult{Status: ParseFailed, Err: errorToParseError(data, err)}
	}
	if _, err := src.NextToken(); !errors.Is(err, io.EOF) {
		return ParseResult{Status: ParseFailed, Err: newParseError(data, int64(len(data)), CodeParseError, "unexpected data after top-level value")}
	}
	return ParseResult{Status: ParseSucceeded, Node: node}
}

// ParseValue parses data and builds its typed value tree. The value is nil
// unless the result status is ParseSucceeded.
func (u *Universe) ParseValue(data []byte) (*Value, ParseResult) {
	res := u.ParseJSON(data)
	if res.Status != ParseSucceeded {
		return nil, res
	}
	return u.ValueFromJSON(res.Node), res
}

// numberKind classifies a number literal: a decimal point or exponent makes
// it a float, and integers beyond int64 fall back to float.
func numberKind(lit string) (Kind, int64, float64) {
	if !strings.ContainsAny(lit, ".eE") {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return KindInt, i, 0
		}
	}
	f, _ := strconv.ParseFloat(lit, 64)
	return KindFloat, 0, f
}

func (u *Universe) emptyArrayElem() TypeID {
	if u.opt.EmptyArrayAsNone {
		return TypeNone
	}
	return TypeUnknown
}

// arrayType builds Array<T> where T is the single distinct element type or
// the union of all distinct element types.
func (u *Universe) arrayType(elems []TypeID) TypeID {
	if len(elems) == 0 {
		return u.ArrayOf(u.emptyArrayElem())
	}
	return u.ArrayOf(u.UnionOf(elems...))
}

func (u *Universe) compoundType(ms []Member) TypeID {
	t, _ := u.intern(Descriptor{Kind: KindCompound, Members: ms})
	return t
}

// TypeFromJSON infers the canonical type of node.
func (u *Universe) TypeFromJSON(node *JSONNode) TypeID {
	switch node.Kind {
	case eng.NodeString:
		return TypeString
	case eng.NodeNumber:
		k, _, _ := numberKind(node.Text)
		return Primitive(k)
	case eng.NodeBool:
		return TypeBool
	case eng.NodeObject:
		ms := make([]Member, len(node.Members))
		for i, m := range node.Members {
			ms[i] = Member{Name: u.names.FindOrAdd(m.Key), Type: u.TypeFromJSON(m.Value)}
		}
		return u.compoundType(ms)
	case eng.NodeArray:
		elems := make([]TypeID, len(node.Elems))
		for i, e := range node.Elems {
			elems[i] = u.TypeFromJSON(e)
		}
		return u.arrayType(elems)
	}
	return TypeNone
}

// ValueFromJSON builds the value tree of node, typing every subtree.
func (u *Universe) ValueFromJSON(node *JSONNode) *Value {
	switch node.Kind {
	case eng.NodeString:
		return &Value{Kind: KindString, Type: TypeString, Str: node.Text}
	case eng.NodeNumber:
		k, i, f := numberKind(node.Text)
		return &Value{Kind: k, Type: Primitive(k), Int: i, Float: f}
	case eng.NodeBool:
		return &Value{Kind: KindBool, Type: TypeBool, Bool: node.Bool}
	case eng.NodeObject:
		v := &Value{Kind: KindCompound, Members: make([]ValueMember, len(node.Members))}
		ms := make([]Member, len(node.Members))
		for i, m := range node.Members {
			n := u.names.FindOrAdd(m.Key)
			mv := u.ValueFromJSON(m.Value)
			v.Members[i] = ValueMember{Name: n, Value: mv}
			ms[i] = Member{Name: n, Type: mv.Type}
		}
		v.Type = u.compoundType(ms)
		return v
	case eng.NodeArray:
		v := &Value{Kind: KindArray, Elems: make([]*Value, len(node.Elems))}
		elems := make([]TypeID, len(node.Elems))
		for i, e := range node.Elems {
			v.Elems[i] = u.ValueFromJSON(e)
			elems[i] = v.Elems[i].Type
		}
		v.Type = u.arrayType(elems)
		return v
	}
	return &Value{Kind: KindNone, Type: TypeNone}
}
