// Package eventdiff renders a human-readable diff between two event-trace
// strings, for golden-stream test failures where a raw slice-equality
// mismatch is hard to read at a glance.
package eventdiff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/nanojson/pulljson/pulljson"
)

// Trace renders one line per event: the event type, followed for a Key
// or String by its quoted text, for a Number by its raw span and outcome
// (`Number 1(Integer)`), and for a Bool by its value.
func Trace(evs []pulljson.Event) string {
	var b strings.Builder
	for _, ev := range evs {
		fmt.Fprintf(&b, "%s", ev.Type)
		switch ev.Type {
		case pulljson.TypeKey, pulljson.TypeString:
			fmt.Fprintf(&b, " %q", ev.Text.Bytes)
		case pulljson.TypeNumber:
			fmt.Fprintf(&b, " %s(%s)", ev.Num, ev.Num.Outcome)
		case pulljson.TypeBool:
			fmt.Fprintf(&b, " %v", ev.Bool)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Diff returns a human-readable diff of the rendered traces of want and
// got, or "" if they render identically.
func Diff(want, got []pulljson.Event) string {
	wantText, gotText := Trace(want), Trace(got)
	if wantText == gotText {
		return ""
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(wantText, gotText, true)
	return dmp.DiffPrettyText(diffs)
}
