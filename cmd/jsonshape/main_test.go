package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestInfer_MergesDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.json": `{"a":1,"b":"x"}`,
		"b.JSON": `{"a":2,"b":"y","c":true}`,
		"c.txt":  `not json`,
	})
	code, out, errOut := runCLI(t, "infer", dir)
	if code != 0 {
		t.Fatalf("exit=%d stderr=%s", code, errOut)
	}
	want := "{\n  a: int\n  b: string\n  c: bool\n}\n"
	if !strings.HasSuffix(out, want) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestCheck_ExitCodes(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"in.json":    `{"a":1}`,
		"valid.json": `{"a":5}`,
		"other.json": `{"b":5}`,
	})
	code, out, _ := runCLI(t, "check", filepath.Join(dir, "in.json"), filepath.Join(dir, "valid.json"))
	if code != 0 || !strings.Contains(out, "ok") {
		t.Fatalf("expected pass, got exit=%d out=%q", code, out)
	}
	code, out, _ = runCLI(t, "check", filepath.Join(dir, "in.json"), filepath.Join(dir, "other.json"))
	if code != 1 || !strings.Contains(out, "missing_member at /b") {
		t.Fatalf("expected missing member, got exit=%d out=%q", code, out)
	}
}

func TestSchema_YAML(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"x.json": `{"n": [1, 2.5]}`})
	code, out, errOut := runCLI(t, "schema", "-format", "yaml", dir)
	if code != 0 {
		t.Fatalf("exit=%d stderr=%s", code, errOut)
	}
	for _, want := range []string{"type: object", "anyOf:", "type: integer", "type: number"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestLoadFailureNamesFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"1.json": `{"ok":true}`,
		"2.json": `{"broken": }`,
	})
	code, _, errOut := runCLI(t, "infer", dir)
	if code != 1 || !strings.Contains(errOut, "2.json") {
		t.Fatalf("expected failure naming 2.json, got exit=%d stderr=%q", code, errOut)
	}
}

func TestDiff(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.json": `{"a":1}`,
		"b.json": `{"a":"1"}`,
	})
	code, out, _ := runCLI(t, "diff", filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json"))
	if code != 0 || !strings.Contains(out, "-  a: int") || !strings.Contains(out, "+  a: string") {
		t.Fatalf("unexpected diff (exit=%d):\n%s", code, out)
	}
}

func TestTokensAndNames(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"t.json": "// header\n{\"k\": [true,],}"})
	code, out, errOut := runCLI(t, "tokens", filepath.Join(dir, "t.json"))
	if code != 0 {
		t.Fatalf("exit=%d stderr=%s", code, errOut)
	}
	want := "begin_object\n  key \"k\"\n  begin_array\n    bool true\n  end_array\nend_object\n"
	if out != want {
		t.Fatalf("tokens:\n%s\nwant:\n%s", out, want)
	}
	code, out, _ = runCLI(t, "names", dir)
	if code != 0 || !strings.Contains(out, "k") {
		t.Fatalf("names: exit=%d out=%q", code, out)
	}
}

func TestUsage(t *testing.T) {
	if code, _, errOut := runCLI(t); code != 2 || !strings.Contains(errOut, "Usage") {
		t.Fatalf("expected usage, got %d", code)
	}
	if code, _, _ := runCLI(t, "bogus"); code != 2 {
		t.Fatalf("unknown command exit=%d", code)
	}
	if code, _, _ := runCLI(t, "check", "only-one"); code != 2 {
		t.Fatalf("wrong arity exit=%d", code)
	}
}

func TestDups(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"d.json": `{"a":1,"a":2}`,
		"u.json": `{"a":1}`,
	})
	code, out, _ := runCLI(t, "dups", filepath.Join(dir, "d.json"))
	if code != 1 || !strings.Contains(out, "duplicate_key at /a") {
		t.Fatalf("exit=%d out=%q", code, out)
	}
	if code, out, _ := runCLI(t, "dups", filepath.Join(dir, "u.json")); code != 0 || !strings.Contains(out, "no duplicate keys") {
		t.Fatalf("exit=%d out=%q", code, out)
	}
}
