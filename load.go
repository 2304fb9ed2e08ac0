package jsonshape

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Record is one parsed document of a Collection.
type Record struct {
	Path  string
	Value *Value
}

// Collection holds the documents loaded from a directory. It owns its values
// until Release is called.
type Collection struct {
	LoadPath string
	Records  []Record
}

// Release drops every record's value tree.
func (c *Collection) Release() {
	for i := range c.Records {
		c.Records[i].Value.Release()
		c.Records[i].Value = nil
	}
	c.Records = nil
}

// Schema merges the types of all records into one. An empty collection yields
// TypeUnknown.
func (c *Collection) Schema(u *Universe) TypeID {
	t := TypeUnknown
	for _, r := range c.Records {
		t = u.MergeTypes(t, r.Value.Type)
	}
	return t
}

// LoadError reports the file that aborted a directory load.
type LoadError struct {
	Dir  string
	File string // empty when the directory itself could not be read
	Err  error
}

func (e *LoadError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("load %s: %v", e.Dir, e.Err)
	}
	return fmt.Sprintf("load %s: %s: %v", e.Dir, e.File, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ErrEmptyDocument marks a file holding no JSON value (ParseEOF).
var ErrEmptyDocument = errors.New("empty document")

// IsJSONFile reports whether name has a .json extension, ignoring case.
func IsJSONFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".json")
}

// LoadJSONDir parses every *.json file of dir (case-insensitive extension,
// lexical order, no recursion). Files holding no value are skipped. The first
// unreadable or malformed file aborts the load; no partial Collection is
// returned.
func (u *Universe) LoadJSONDir(ctx context.Context, dir string) (*Collection, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{Dir: dir, Err: err}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	c := &Collection{LoadPath: dir}
	for _, e := range entries {
		if e.IsDir() || !IsJSONFile(e.Name()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			c.Release()
			return nil, &LoadError{Dir: dir, File: e.Name(), Err: err}
		}
		v, err := u.LoadJSONFile(filepath.Join(dir, e.Name()))
		if errors.Is(err, ErrEmptyDocument) {
			u.log.Debug("skipped empty document", zap.String("file", e.Name()))
			continue
		}
		if err != nil {
			u.log.Warn("load aborted", zap.String("dir", dir), zap.String("file", e.Name()), zap.Error(err))
			c.Release()
			return nil, &LoadError{Dir: dir, File: e.Name(), Err: err}
		}
		u.log.Debug("loaded", zap.String("file", e.Name()), zap.Uint32("type", uint32(v.Type)))
		c.Records = append(c.Records, Record{Path: filepath.Join(dir, e.Name()), Value: v})
	}
	return c, nil
}

// LoadJSONFile reads and parses a single document.
func (u *Universe) LoadJSONFile(path string) (*Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	v, res := u.ParseValue(data)
	switch res.Status {
	case ParseFailed:
		return nil, res.Err
	case ParseEOF:
		return nil, ErrEmptyDocument
	}
	return v, nil
}
