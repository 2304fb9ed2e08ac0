package jsonschema_test

import (
	"strings"
	"testing"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	jsonshape "github.com/reoring/jsonshape"
	"github.com/reoring/jsonshape/jsonschema"
)

func sample(u *jsonshape.Universe) jsonshape.TypeID {
	return u.MustCompound(
		jsonshape.Field{Name: "id", Type: jsonshape.TypeInt},
		jsonshape.Field{Name: "tags", Type: u.ArrayOf(jsonshape.TypeUnknown)},
		jsonshape.Field{Name: "v", Type: u.MakeUnion(jsonshape.TypeString, jsonshape.TypeFloat)},
	)
}

func TestFromType(t *testing.T) {
	u := jsonshape.New()
	s := jsonschema.FromType(u, sample(u))
	if s.Dialect != jsonschema.Draft || s.Type != "object" {
		t.Fatalf("root = %+v", s)
	}
	if s.AdditionalProperties == nil || *s.AdditionalProperties {
		t.Fatalf("compounds should be closed")
	}
	if strings.Join(s.Required, ",") != "id,tags,v" {
		t.Fatalf("required = %v", s.Required)
	}
	if s.Properties["id"].Type != "integer" || s.Properties["id"].Dialect != "" {
		t.Fatalf("id = %+v", s.Properties["id"])
	}
	tags := s.Properties["tags"]
	if tags.Type != "array" || tags.Items == nil || tags.Items.Type != "" {
		t.Fatalf("Array<Unknown> should have unconstrained items: %+v", tags)
	}
	v := s.Properties["v"]
	if len(v.AnyOf) != 2 || v.AnyOf[0].Type != "string" || v.AnyOf[1].Type != "number" {
		t.Fatalf("union = %+v", v)
	}
}

func TestFromType_IntFloatUnionAcceptsBoth(t *testing.T) {
	u := jsonshape.New()
	s := jsonschema.FromType(u, u.ArrayOf(u.MakeUnion(jsonshape.TypeInt, jsonshape.TypeFloat)))
	if s.Items == nil || len(s.Items.AnyOf) != 2 {
		t.Fatalf("items = %+v", s.Items)
	}
	got := map[string]bool{}
	for _, c := range s.Items.AnyOf {
		got[c.Type] = true
	}
	if !got["integer"] || !got["number"] {
		t.Fatalf("cases = %v", got)
	}
	out, err := jsonschema.EncodeJSON(s)
	if err != nil {
		t.Fatal(err)
	}
	// integers match both cases, so exactly-one would reject them
	if !strings.Contains(string(out), `"anyOf"`) || strings.Contains(string(out), `"oneOf"`) {
		t.Fatalf("unions should use anyOf:\n%s", out)
	}
}

func TestEncodeJSON(t *testing.T) {
	u := jsonshape.New()
	out, err := jsonschema.EncodeJSON(jsonschema.FromType(u, sample(u)))
	if err != nil {
		t.Fatal(err)
	}
	var back map[string]any
	if err := j.Unmarshal(out, &back); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if back["$schema"] != jsonschema.Draft || back["additionalProperties"] != false {
		t.Fatalf("got %v", back)
	}
}

func TestEncodeYAML(t *testing.T) {
	u := jsonshape.New()
	out, err := jsonschema.EncodeYAML(jsonschema.FromType(u, u.ArrayOf(jsonshape.TypeBool)))
	if err != nil {
		t.Fatal(err)
	}
	var back jsonschema.Schema
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if back.Type != "array" || back.Items == nil || back.Items.Type != "boolean" {
		t.Fatalf("got %+v from\n%s", back, out)
	}
	if !strings.HasPrefix(string(out), "$schema: ") {
		t.Fatalf("yaml should start with the dialect:\n%s", out)
	}
}
