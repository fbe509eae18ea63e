package jsontok_test

import (
	"testing"

	"github.com/nanojson/pulljson/bitstack"
	"github.com/nanojson/pulljson/jsontok"
)

// recorder is a minimal jsontok.Handler that also owns the bitstack, so
// it doubles as a jsontok.Containers — mirroring how the real event
// processor combines both roles.
type recorder struct {
	stack  *bitstack.Stack
	events []string
	hex    []byte
}

func newRecorder(depth int) *recorder {
	return &recorder{stack: bitstack.New(depth)}
}

func (r *recorder) Peek() (bool, bool) { return r.stack.Peek() }

func (r *recorder) Begin(tag jsontok.Tag, pos int) error {
	r.events = append(r.events, "Begin:"+tag.String())
	return nil
}

func (r *recorder) End(tag jsontok.Tag, pos int) error {
	r.events = append(r.events, "End:"+tag.String())
	return nil
}

func (r *recorder) Literal(tag jsontok.Tag, pos int) error {
	r.events = append(r.events, "Lit:"+tag.String())
	switch tag {
	case jsontok.TagObjectStart:
		return r.stack.Push(true)
	case jsontok.TagArrayStart:
		return r.stack.Push(false)
	case jsontok.TagObjectEnd:
		return r.stack.Pop(true)
	case jsontok.TagArrayEnd:
		return r.stack.Pop(false)
	}
	return nil
}

func (r *recorder) HexDigit(b byte) error {
	r.hex = append(r.hex, b)
	return nil
}

func run(t *testing.T, depth int, input string) (*recorder, error) {
	t.Helper()
	rec := newRecorder(depth)
	tok := jsontok.New(rec)
	for i := 0; i < len(input); i++ {
		if err := tok.Feed(input[i], rec); err != nil {
			return rec, err
		}
	}
	if err := tok.Finish(rec); err != nil {
		return rec, err
	}
	return rec, nil
}

func eq(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("event count = %d, want %d\n got: %v\nwant: %v", len(got), len(want), got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("event[%d] = %q, want %q\n got: %v\nwant: %v", i, got[i], want[i], got, want)
		}
	}
}

func TestBareScalars(t *testing.T) {
	cases := map[string][]string{
		`"hi"`: {"Begin:String", "End:String"},
		`42`:   {"Begin:Number", "End:Number"},
		`-1.5`: {"Begin:Number", "End:Number"},
		`true`: {"Lit:True"},
		`false`: {"Lit:False"},
		`null`: {"Lit:Null"},
	}
	for input, want := range cases {
		rec, err := run(t, 8, input)
		if err != nil {
			t.Fatalf("%q: %v", input, err)
		}
		eq(t, rec.events, want)
	}
}

func TestEmptyContainers(t *testing.T) {
	rec, err := run(t, 8, `{}`)
	if err != nil {
		t.Fatal(err)
	}
	eq(t, rec.events, []string{"Lit:ObjectStart", "Lit:ObjectEnd"})

	rec, err = run(t, 8, `[]`)
	if err != nil {
		t.Fatal(err)
	}
	eq(t, rec.events, []string{"Lit:ArrayStart", "Lit:ArrayEnd"})
}

func TestObjectWithKeyValue(t *testing.T) {
	rec, err := run(t, 8, `{"a":1}`)
	if err != nil {
		t.Fatal(err)
	}
	eq(t, rec.events, []string{
		"Lit:ObjectStart",
		"Begin:Key", "End:Key",
		"Begin:Number", "End:Number",
		"Lit:ObjectEnd",
	})
}

func TestArrayOfMixedValues(t *testing.T) {
	rec, err := run(t, 8, `[1,"two",true,null,[3]]`)
	if err != nil {
		t.Fatal(err)
	}
	eq(t, rec.events, []string{
		"Lit:ArrayStart",
		"Begin:Number", "End:Number",
		"Begin:String", "End:String",
		"Lit:True",
		"Lit:Null",
		"Lit:ArrayStart",
		"Begin:Number", "End:Number",
		"Lit:ArrayEnd",
		"Lit:ArrayEnd",
	})
}

func TestNumberTerminatedByCloseBracket(t *testing.T) {
	rec, err := run(t, 8, `[1]`)
	if err != nil {
		t.Fatal(err)
	}
	eq(t, rec.events, []string{
		"Lit:ArrayStart",
		"Begin:Number", "End:Number",
		"Lit:ArrayEnd",
	})
}

func TestSimpleEscape(t *testing.T) {
	rec, err := run(t, 8, `"a\nb"`)
	if err != nil {
		t.Fatal(err)
	}
	eq(t, rec.events, []string{
		"Begin:String",
		"Begin:EscapeSequence", "End:EscapeNewline",
		"End:String",
	})
}

func TestUnicodeEscape(t *testing.T) {
	rec, err := run(t, 8, `"\u00e9"`)
	if err != nil {
		t.Fatal(err)
	}
	eq(t, rec.events, []string{
		"Begin:String",
		"Begin:EscapeSequence", "Begin:UnicodeEscape", "End:UnicodeEscape",
		"End:String",
	})
	if string(rec.hex) != "00e9" {
		t.Fatalf("hex digits = %q, want 00e9", rec.hex)
	}
}

func TestMismatchedContainerIsRejected(t *testing.T) {
	if _, err := run(t, 8, `{]`); err == nil {
		t.Fatal("expected an error closing an object with ']'")
	}
}

func TestDepthExceeded(t *testing.T) {
	if _, err := run(t, 2, `[[[1]]]`); err != bitstack.ErrDepthExceeded {
		t.Fatalf("err = %v, want ErrDepthExceeded", err)
	}
}

func TestTrailingCommaRejected(t *testing.T) {
	if _, err := run(t, 8, `[1,]`); err == nil {
		t.Fatal("expected an error on trailing comma")
	}
}

func TestLeadingZeroRejected(t *testing.T) {
	if _, err := run(t, 8, `01`); err == nil {
		t.Fatal("expected an error on leading zero followed by a digit")
	}
}

func TestBareDotRejected(t *testing.T) {
	if _, err := run(t, 8, `1.`); err == nil {
		t.Fatal("expected an error on EOF right after a decimal point")
	}
}

func TestUnterminatedStringRejected(t *testing.T) {
	if _, err := run(t, 8, `"abc`); err == nil {
		t.Fatal("expected an error on EOF inside a string")
	}
}

func TestControlCharInStringRejected(t *testing.T) {
	if _, err := run(t, 8, "\"a\tb\""); err == nil {
		t.Fatal("expected an error on a raw tab byte inside a string")
	}
}

func TestNeverPanicsOnAdversarialInput(t *testing.T) {
	inputs := []string{
		"", "{", "}", "[", "]", `"`, `\`, `\u`, `\uZZZZ`, "-", ".", "e", "1e",
		"{{{{{{{{{{{{{{{{", "]]]]]]]]]]", `{"a"}`, `{"a":}`, `{:1}`, `,`, `::`,
		string([]byte{0x00, 0x01, 0xff}), `nul`, `tru`, `fals`, `truee`,
	}
	for _, in := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("input %q panicked: %v", in, r)
				}
			}()
			run(t, 32, in)
		}()
	}
}
