package jsonshape_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	jsonshape "github.com/reoring/jsonshape"
)

// ---- Helpers ----

// generateHugeJSONArray returns a JSON array of objects of the form:
// [{"id":"obj_0","name":"n0","age":0,"active":true,"meta":{"score":0},"k0":"v0",...}, ...]
// Odd objects carry a float score so the element type becomes a union.
func generateHugeJSONArray(numObjects int, extraFields int) []byte {
	var buf bytes.Buffer
	buf.Grow(numObjects * (64 + extraFields*16))
	buf.WriteByte('[')
	for i := 0; i < numObjects; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		fmt.Fprintf(&buf, "\"id\":\"obj_%d\",", i)
		fmt.Fprintf(&buf, "\"name\":\"n%d\",", i)
		fmt.Fprintf(&buf, "\"age\":%d,", i)
		if i%2 == 0 {
			buf.WriteString("\"active\":true,")
			fmt.Fprintf(&buf, "\"meta\":{\"score\":%d}", i)
		} else {
			buf.WriteString("\"active\":false,")
			fmt.Fprintf(&buf, "\"meta\":{\"score\":%d.5}", i)
		}
		for k := 0; k < extraFields; k++ {
			buf.WriteString(",\"k")
			buf.WriteString(strconv.Itoa(k))
			buf.WriteString("\":\"v")
			buf.WriteString(strconv.Itoa(i))
			buf.WriteString("\"")
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

// ---- Benchmarks ----

func BenchmarkParseValue_Small(b *testing.B) {
	data := []byte(`{"id":"u_1","name":"alice","tags":["a","b"],"age":30}`)
	u := jsonshape.New()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	for b.Loop() {
		v, res := u.ParseValue(data)
		if res.Status != jsonshape.ParseSucceeded {
			b.Fatalf("parse: %v", res.Err)
		}
		v.Release()
	}
}

func BenchmarkTypeFromJSON_HugeArray(b *testing.B) {
	for _, n := range []int{100, 1000} {
		data := generateHugeJSONArray(n, 8)
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			u := jsonshape.New()
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				res := u.ParseJSON(data)
				if res.Status != jsonshape.ParseSucceeded {
					b.Fatalf("parse: %v", res.Err)
				}
				u.TypeFromJSON(res.Node)
			}
		})
	}
}

func BenchmarkLoadJSONDir(b *testing.B) {
	dir := b.TempDir()
	for i := 0; i < 50; i++ {
		doc := fmt.Sprintf(`{"id":%d,"name":"n%d","extra_%d":true}`, i, i, i%5)
		if err := os.WriteFile(filepath.Join(dir, fmt.Sprintf("%03d.json", i)), []byte(doc), 0o644); err != nil {
			b.Fatal(err)
		}
	}
	b.ReportAllocs()
	for b.Loop() {
		u := jsonshape.New()
		c, err := u.LoadJSONDir(context.Background(), dir)
		if err != nil {
			b.Fatal(err)
		}
		c.Schema(u)
		c.Release()
	}
}

func BenchmarkMergeTypes(b *testing.B) {
	u := jsonshape.New()
	var ts []jsonshape.TypeID
	for i := 0; i < 32; i++ {
		ts = append(ts, u.MustCompound(
			jsonshape.Field{Name: "id", Type: jsonshape.TypeInt},
			jsonshape.Field{Name: "f" + strconv.Itoa(i%8), Type: jsonshape.TypeString},
		))
	}
	for b.Loop() {
		acc := jsonshape.TypeUnknown
		for _, t := range ts {
			acc = u.MergeTypes(acc, t)
		}
	}
}
