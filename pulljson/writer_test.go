package pulljson_test

import (
	"testing"

	"github.com/nanojson/pulljson/pulljson"
)

func writeAll(t *testing.T, w *pulljson.Writer, chunks ...string) []pulljson.Event {
	t.Helper()
	var out []pulljson.Event
	emit := func(ev pulljson.Event) error {
		// a view is valid only until the next event, so keep a copy
		ev.Text.Bytes = append([]byte(nil), ev.Text.Bytes...)
		out = append(out, ev)
		return nil
	}
	for _, c := range chunks {
		if err := w.Write([]byte(c), emit); err != nil {
			t.Fatalf("Write(%q): %v", c, err)
		}
	}
	if err := w.Finish(emit); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	return out
}

func TestWriterChunkBoundaryMidToken(t *testing.T) {
	scratch := make([]byte, 64)
	w := pulljson.NewWriter(scratch)
	evs := writeAll(t, w, `{"na`, `me":"Al`, `ice"}`)

	want := []pulljson.EventType{
		pulljson.TypeStartObject, pulljson.TypeKey, pulljson.TypeString,
		pulljson.TypeEndObject, pulljson.TypeEndDocument,
	}
	if len(evs) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(evs), len(want), evs)
	}
	for i, ty := range want {
		if evs[i].Type != ty {
			t.Fatalf("evs[%d].Type = %v, want %v", i, evs[i].Type, ty)
		}
	}
	if string(evs[1].Text.Bytes) != "name" {
		t.Fatalf("key = %q", evs[1].Text.Bytes)
	}
	if string(evs[2].Text.Bytes) != "Alice" {
		t.Fatalf("value = %q", evs[2].Text.Bytes)
	}
}

func TestWriterEscapeSplitAcrossChunks(t *testing.T) {
	scratch := make([]byte, 64)
	w := pulljson.NewWriter(scratch)
	// the escape sequence \n is itself split across the chunk boundary
	evs := writeAll(t, w, `"a\`, `nb"`)

	if len(evs) != 2 || evs[0].Type != pulljson.TypeString {
		t.Fatalf("evs = %+v", evs)
	}
	if string(evs[0].Text.Bytes) != "a\nb" {
		t.Fatalf("text = %q", evs[0].Text.Bytes)
	}
	if evs[0].Text.Borrowed {
		t.Fatal("an escaped value must be materialized, not borrowed")
	}
}

func TestWriterUnicodeEscapeSplitAcrossChunks(t *testing.T) {
	scratch := make([]byte, 64)
	w := pulljson.NewWriter(scratch)
	evs := writeAll(t, w, `"\u00`, `e9"`)

	if len(evs) != 2 || evs[0].Type != pulljson.TypeString {
		t.Fatalf("evs = %+v", evs)
	}
	if string(evs[0].Text.Bytes) != "é" {
		t.Fatalf("text = %q, want %q", evs[0].Text.Bytes, "é")
	}
}

func TestWriterMultipleValuesAcrossWrites(t *testing.T) {
	scratch := make([]byte, 64)
	w := pulljson.NewWriter(scratch)
	evs := writeAll(t, w, `[1,2`, `,3]`)

	want := []pulljson.EventType{
		pulljson.TypeStartArray, pulljson.TypeNumber, pulljson.TypeNumber,
		pulljson.TypeNumber, pulljson.TypeEndArray, pulljson.TypeEndDocument,
	}
	if len(evs) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(evs), len(want), evs)
	}
	for i, ty := range want {
		if evs[i].Type != ty {
			t.Fatalf("evs[%d].Type = %v, want %v", i, evs[i].Type, ty)
		}
	}
}

func TestWriterRejectsInvalidSyntax(t *testing.T) {
	scratch := make([]byte, 64)
	w := pulljson.NewWriter(scratch)
	emit := func(pulljson.Event) error { return nil }
	err := w.Write([]byte(`{"a":}`), emit)
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	if _, ok := err.(*pulljson.SyntaxError); !ok {
		t.Fatalf("err type = %T, want *pulljson.SyntaxError", err)
	}
}
