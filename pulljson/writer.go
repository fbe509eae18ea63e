package pulljson

import (
	"github.com/nanojson/pulljson/content"
	"github.com/nanojson/pulljson/event"
	"github.com/nanojson/pulljson/jsontok"
)

// Writer is the push-style driver: the caller feeds successive,
// externally-owned chunks (e.g. as they arrive off a socket) via Write,
// and reads Finish's tail events once no more chunks are coming. Events
// are delivered through the caller-supplied emit callback rather than an
// accumulated slice, keeping the core's zero-allocation discipline
// intact even when many chunks arrive before an event boundary.
type Writer struct {
	buf  *content.Push
	proc *event.Processor[*content.Push]
	tok  *jsontok.Tokenizer
	cfg  config

	base    int
	tokDone bool
	dead    bool
}

// NewWriter returns a Writer driver. scratch is the fixed-capacity
// escape-materialization work area, sized independently of any one
// chunk (a key or string escaped across a chunk boundary lives there).
func NewWriter(scratch []byte, opts ...Option) *Writer {
	cfg := newConfig(opts)
	buf := content.NewPush(scratch)
	proc := event.New[*content.Push](buf, cfg.depth)
	return &Writer{
		buf:  buf,
		proc: proc,
		tok:  jsontok.New(proc),
		cfg:  cfg,
	}
}

// Depth reports the current container nesting depth.
func (w *Writer) Depth() int { return w.proc.Depth() }

// Write feeds chunk, logically concatenated after every previously
// written chunk, invoking emit once per event the chunk completed.
func (w *Writer) Write(chunk []byte, emit func(Event) error) error {
	if w.dead {
		return errDone

	}
	if err := w.buf.Feed(chunk, w.base); err != nil {
		w.dead = true
		return newSyntaxError(classify(err), w.tok.Pos(), nil)
	}
	for _, b := range chunk {
		if err := w.tok.Feed(b, w.proc); err != nil {
			w.dead = true
			return newSyntaxError(classify(err), w.tok.Pos(), nil)
		}
		if err := w.drain(emit); err != nil {
			return err
		}
	}
	w.base += len(chunk)
	return nil
}

// Finish signals that no more chunks are coming, flushing any trailing
// number termination and the final EndDocument event.
func (w *Writer) Finish(emit func(Event) error) error {
	if w.dead {
		return errDone
	}
	if !w.tokDone {
		w.tokDone = true
		if err := w.tok.Finish(w.proc); err != nil {
			w.dead = true
			return newSyntaxError(classify(err), w.tok.Pos(), nil)
		}
		if err := w.proc.Finish(); err != nil {
			w.dead = true
			return err
		}
	}
	return w.drain(emit)
}

func (w *Writer) drain(emit func(Event) error) error {
	for {
		ev, ok := w.proc.Pop()
		if !ok {
			return nil
		}
		out, ok, err := translate(ev, w.cfg)
		if err != nil {
			w.dead = true
			return err
		}
		if !ok {
			continue
		}
		if err := emit(out); err != nil {
			return err
		}
	}
}
