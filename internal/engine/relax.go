package engine

import (
	"bytes"
	"fmt"
)

// SyntaxError reports malformed input at a byte offset.
type SyntaxError struct {
	Offset int64
	Msg    string
}

func (e *SyntaxError) Error() string { return fmt.Sprintf("%s (offset %d)", e.Msg, e.Offset) }

// Relax rewrites the two permitted JSON extensions, C-style comments and
// trailing commas, into whitespace. The result has the same length as data
// and keeps every newline, so offsets and line/column positions computed on
// it are valid for the original input. data is not modified.
func Relax(data []byte) ([]byte, error) {
	out := bytes.Clone(data)
	if err := blankComments(out); err != nil {
		return nil, err
	}
	blankTrailingCommas(out)
	return out, nil
}

func blankComments(b []byte) error {
	inString := false
	for i := 0; i < len(b); i++ {
		c := b[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			continue
		}
		if c != '/' || i+1 >= len(b) {
			continue
		}
		switch b[i+1] {
		case '/':
			j := i
			for j < len(b) && b[j] != '\n' {
				b[j] = ' '
				j++
			}
			i = j
		case '*':
			end := bytes.Index(b[i+2:], []byte("*/"))
			if end < 0 {
				return &SyntaxError{Offset: int64(i), Msg: "unterminated block comment"}
			}
			stop := i + 2 + end + 2
			for j := i; j < stop; j++ {
				if b[j] != '\n' {
					b[j] = ' '
				}
			}
			i = stop - 1
		}
	}
	return nil
}

// blankTrailingCommas removes a comma only when it follows a value and
// precedes a closing bracket; `[,]` and `[1,,]` stay invalid.
func blankTrailingCommas(b []byte) {
	inString := false
	var prev byte
	for i := 0; i < len(b); i++ {
		c := b[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
				prev = c
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case ',':
			j := i + 1
			for j < len(b) && isSpace(b[j]) {
				j++
			}
			afterValue := prev != 0 && prev != '[' && prev != '{' && prev != ',' && prev != ':'
			if afterValue && j < len(b) && (b[j] == '}' || b[j] == ']') {
				b[i] = ' '
				continue
			}
		}
		if !isSpace(c) {
			prev = c
		}
	}
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

// IsBlank reports whether b holds only JSON whitespace.
func IsBlank(b []byte) bool {
	for _, c := range b {
		if !isSpace(c) {
			return false
		}
	}
	return true
}

// Position converts a byte offset into a 1-based line and column.
func Position(data []byte, off int64) (line, col int) {
	if off < 0 {
		return 0, 0
	}
	if off > int64(len(data)) {
		off = int64(len(data))
	}
	line, col = 1, 1
	for _, c := range data[:off] {
		if c == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
