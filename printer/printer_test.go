package printer_test

import (
	"strings"
	"testing"

	jsonshape "github.com/reoring/jsonshape"
	"github.com/reoring/jsonshape/printer"
)

func TestTypeString(t *testing.T) {
	u := jsonshape.New()
	item := u.MustCompound(
		jsonshape.Field{Name: "id", Type: jsonshape.TypeInt},
		jsonshape.Field{Name: "tags", Type: u.ArrayOf(jsonshape.TypeString)},
		jsonshape.Field{Name: "two words", Type: u.MakeUnion(jsonshape.TypeBool, jsonshape.TypeNone)},
		jsonshape.Field{Name: "meta", Type: u.MustCompound()},
	)
	got := printer.TypeString(u, u.ArrayOf(item))
	want := strings.Join([]string{
		"array<",
		"  {",
		"    id: int",
		"    tags: array<string>",
		`    "two words": union(`,
		"      | bool",
		"      | none",
		"    )",
		"    meta: {}",
		"  }",
		">",
		"",
	}, "\n")
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
	if printer.TypeString(u, jsonshape.TypeUnknown) != "unknown\n" {
		t.Fatalf("primitive rendering")
	}
}

func TestValueString(t *testing.T) {
	u := jsonshape.New()
	v, res := u.ParseValue([]byte(`{"s":"q\"","f":2.0,"e":[],"o":{},"xs":[1,null]}`))
	if res.Status != jsonshape.ParseSucceeded {
		t.Fatalf("parse: %v", res.Err)
	}
	want := strings.Join([]string{
		"{",
		`  s: "q\""`,
		"  f: 2.0",
		"  e: []",
		"  o: {}",
		"  xs: [",
		"    1",
		"    null",
		"  ]",
		"}",
		"",
	}, "\n")
	if got := printer.ValueString(v); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestToken(t *testing.T) {
	u := jsonshape.New()
	toks, err := u.Tokenize([]byte(`[{"a": 1.5}, "x"]`))
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	if err := printer.Token(&b, toks...); err != nil {
		t.Fatal(err)
	}
	want := "begin_array\n  begin_object\n    key \"a\"\n    number 1.5\n  end_object\n  string \"x\"\nend_array\n"
	if b.String() != want {
		t.Fatalf("got:\n%s", b.String())
	}
}

func TestDiff(t *testing.T) {
	u := jsonshape.New()
	a := u.MustCompound(jsonshape.Field{Name: "a", Type: jsonshape.TypeInt})
	b := u.MustCompound(jsonshape.Field{Name: "a", Type: jsonshape.TypeInt}, jsonshape.Field{Name: "b", Type: jsonshape.TypeBool})
	d, err := printer.Diff(u, a, b, "old", "new")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"--- old", "+++ new", "+  b: bool", "   a: int"} {
		if !strings.Contains(d, want) {
			t.Fatalf("diff missing %q:\n%s", want, d)
		}
	}
	if d, _ := printer.Diff(u, a, a, "x", "y"); d != "" {
		t.Fatalf("identical types should not diff: %q", d)
	}
}
