package jsonshape

import (
	"errors"
	"io"

	eng "github.com/reoring/jsonshape/internal/engine"
)

// DuplicateKeys reports every repeated object key in data, in document order,
// regardless of the Universe's duplicate policy. maxIssues <= 0 means no
// limit. A syntax error is returned as a *ParseError.
func (u *Universe) DuplicateKeys(data []byte, maxIssues int) (Issues, error) {
	relaxed, blank, perr := u.prepare(data)
	if perr != nil {
		return nil, perr
	}
	if blank {
		return nil, nil
	}
	var iss Issues
	src := eng.WrapWithEnforcement(u.rawSource(relaxed), eng.EnforceOptions{
		OnDuplicate: eng.DupWarn,
		IssueSink: func(si eng.SimpleIssue) {
			if maxIssues <= 0 || len(iss) < maxIssues {
				iss = append(iss, fromEngineIssue(si))
			}
		},
	})
	for {
		_, err := src.NextToken()
		if errors.Is(err, io.EOF) {
			return iss, nil
		}
		if err != nil {
			return nil, errorToParseError(data, err)
		}
	}
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

func fromEngineIssue(si eng.SimpleIssue) Issue {
	is := newIssue(si.Path, si.Code, nil)
	if si.Message != "" {
		is.Message = si.Message
	}
	return is
}
