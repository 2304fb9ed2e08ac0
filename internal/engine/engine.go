package engine

import (
	"errors"
	"fmt"
	"io"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

var kindNames = [...]string{
	KindBeginObject: "begin_object",
	KindEndObject:   "end_object",
	KindBeginArray:  "begin_array",
	KindEndArray:    "end_array",
	KindKey:         "key",
	KindString:      "string",
	KindNumber:      "number",
	KindBool:        "bool",
	KindNull:        "null",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string // literal text as it appeared in the input
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// ErrUnexpectedToken reports a token that cannot appear at its position.
var ErrUnexpectedToken = errors.New("unexpected token")

// NodeKind mirrors the JSON value kinds.
type NodeKind int

const (
	NodeNull NodeKind = iota
	NodeBool
	NodeNumber
	NodeString
	NodeObject
	NodeArray
)

// Node is an ordered JSON tree. Object members keep document order.
type Node struct {
	Kind    NodeKind
	Text    string // string content, or number literal text
	Bool    bool
	Members []Member
	Elems   []*Node
	Offset  int64
}

// Member is a single object field.
type Member struct {
	Key   string
	Value *Node
}

// DecodeNode reads exactly one value from src. It returns io.EOF when the
// source holds no value at all.
func DecodeNode(src TokenSource) (*Node, error) {
	tok, err := src.NextToken()
	if err != nil {
		return nil, err
	}
	n, err := decodeValue(src, tok)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return n, nil
}

func decodeValue(src TokenSource, tok Token) (*Node, error) {
	switch tok.Kind {
	case KindBeginObject:
		return decodeObject(src, tok.Offset)
	case KindBeginArray:
		return decodeArray(src, tok.Offset)
	case KindString:
		return &Node{Kind: NodeString, Text: tok.String, Offset: tok.Offset}, nil
	case KindNumber:
		return &Node{Kind: NodeNumber, Text: tok.Number, Offset: tok.Offset}, nil
	case KindBool:
		return &Node{Kind: NodeBool, Bool: tok.Bool, Offset: tok.Offset}, nil
	case KindNull:
		return &Node{Kind: NodeNull, Offset: tok.Offset}, nil
	default:
		return nil, fmt.Errorf("%w %s", ErrUnexpectedToken, tok.Kind)
	}
}

func decodeObject(src TokenSource, off int64) (*Node, error) {
	n := &Node{Kind: NodeObject, Offset: off}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndObject {
			return n, nil
		}
		if tok.Kind != KindKey {
			return nil, fmt.Errorf("%w %s, expected key", ErrUnexpectedToken, tok.Kind)
		}
		vt, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(src, vt)
		if err != nil {
			return nil, err
		}
		n.setMember(tok.String, v)
	}
}

// setMember keeps the first position of a repeated key and the last value.
func (n *Node) setMember(key string, v *Node) {
	for i := range n.Members {
		if n.Members[i].Key == key {
			n.Members[i].Value = v
			return
		}
	}
	n.Members = append(n.Members, Member{Key: key, Value: v})
}

func decodeArray(src TokenSource, off int64) (*Node, error) {
	n := &Node{Kind: NodeArray, Offset: off}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndArray {
			return n, nil
		}
		v, err := decodeValue(src, tok)
		if err != nil {
			return nil, err
		}
		n.Elems = append(n.Elems, v)
	}
}
