package jsonshape

import (
	"errors"
	"io"

	eng "github.com/reoring/jsonshape/internal/engine"
	"github.com/reoring/jsonshape/source/gojson"
)

// Exported aliases so callers can work with tokens and parsed trees without
// reaching into internal packages.
type (
	Token     = eng.Token
	TokenKind = eng.Kind
	JSONNode  = eng.Node
	NodeKind  = eng.NodeKind
)

const (
	TokenBeginObject TokenKind = eng.KindBeginObject
	TokenEndObject   TokenKind = eng.KindEndObject
	TokenBeginArray  TokenKind = eng.KindBeginArray
	TokenEndArray    TokenKind = eng.KindEndArray
	TokenKey         TokenKind = eng.KindKey
	TokenString      TokenKind = eng.KindString
	TokenNumber      TokenKind = eng.KindNumber
	TokenBool        TokenKind = eng.KindBool
	TokenNull        TokenKind = eng.KindNull
)

const (
	NodeNull   NodeKind = eng.NodeNull
	NodeBool   NodeKind = eng.NodeBool
	NodeNumber NodeKind = eng.NodeNumber
	NodeString NodeKind = eng.NodeString
	NodeObject NodeKind = eng.NodeObject
	NodeArray  NodeKind = eng.NodeArray
)

// prepare applies size limits and the permissive extensions, then validates
// the syntax. blank reports input with no value at all.
func (u *Universe) prepare(data []byte) (relaxed []byte, blank bool, perr *ParseError) {
	if u.opt.MaxBytes > 0 && int64(len(data)) > u.opt.MaxBytes {
		return nil, false, newParseError(data, u.opt.MaxBytes, CodeTruncated, "max bytes exceeded")
	}
	relaxed, err := eng.Relax(data)
	if err != nil {
		return nil, false, syntaxToParseError(data, err)
	}
	if eng.IsBlank(relaxed) {
		return nil, true, nil
	}
	if err := gojson.Validate(relaxed); err != nil {
		return nil, false, syntaxToParseError(data, err)
	}
	return relaxed, false, nil
}

// source returns an enforcing token source over already-validated input.
func (u *Universe) source(relaxed []byte) eng.TokenSource {
	opt := eng.EnforceOptions{
		OnDuplicate: toEngineDup(u.opt.Strictness.OnDuplicateKey),
		MaxDepth:    u.opt.MaxDepth,
		IssueSink:   u.logIssue,
	}
	return eng.WrapWithEnforcement(u.rawSource(relaxed), opt)
}

func (u *Universe) rawSource(relaxed []byte) eng.TokenSource {
	return gojson.NewBytes(relaxed)
}

// Tokenize returns the token stream of a single JSON document.
func (u *Universe) Tokenize(data []byte) ([]Token, error) {
	relaxed, blank, perr := u.prepare(data)
	if perr != nil {
		return nil, perr
	}
	if blank {
		return nil, nil
	}
	src := u.source(relaxed)
	var out []Token
	for {
		tok, err := src.NextToken()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, errorToParseError(data, err)
		}
		out = append(out, tok)
	}
}
