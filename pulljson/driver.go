package pulljson

import "github.com/nanojson/pulljson/event"

// popper is satisfied by event.Processor[B] for any buffer type B; it
// lets the shared pump loop stay generic-free (Go does not allow a
// non-generic function to take a generic-instantiated type as a plain
// parameter without itself being generic, so each driver passes its own
// processor's Pop method in as a closure instead).
type popper func() (event.Event, bool)

// pump implements the shared "while queue empty, advance; then drain one
// event" loop described for all three drivers. advance is called only
// when the queue is currently empty, and is responsible for feeding
// enough input to the tokenizer to make progress (or to return errDone
// once the document is exhausted and EndDocument has already been
// delivered).
func pump(pop popper, cfg config, dead *bool, advance func() error) (Event, error) {
	if *dead {
		return Event{}, errDone
	}
	for {
		if ev, ok := pop(); ok {
			out, ok, err := translate(ev, cfg)
			if err != nil {
				*dead = true
				return Event{}, err
			}
			if !ok {
				continue // FloatSkipped: pull again
			}
			return out, nil
		}
		if err := advance(); err != nil {
			*dead = true
			return Event{}, err
		}
	}
}
