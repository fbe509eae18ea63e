package domtree_test

import (
	"testing"

	"github.com/nanojson/pulljson/internal/domtree"
	"github.com/nanojson/pulljson/pulljson"
)

func TestBuildNestedDocument(t *testing.T) {
	scratch := make([]byte, 256)
	src := pulljson.NewSlice([]byte(`{"a":1,"b":[true,false,null],"c":{"d":"e"}}`), scratch)

	n, err := domtree.Build(src)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if n.Kind != domtree.KindObject {
		t.Fatalf("Kind = %v, want KindObject", n.Kind)
	}
	m := n.ToAny().(map[string]any)
	if m["a"].(int64) != 1 {
		t.Fatalf("a = %v", m["a"])
	}
	b := m["b"].([]any)
	if len(b) != 3 || b[0] != true || b[1] != false || b[2] != nil {
		t.Fatalf("b = %v", b)
	}
	c := m["c"].(map[string]any)
	if c["d"] != "e" {
		t.Fatalf("c.d = %v", c["d"])
	}
}

func TestBuildBareScalarDocument(t *testing.T) {
	scratch := make([]byte, 64)
	src := pulljson.NewSlice([]byte(`42`), scratch)
	n, err := domtree.Build(src)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if n.Kind != domtree.KindNumber {
		t.Fatalf("Kind = %v", n.Kind)
	}
}
