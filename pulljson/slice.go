package pulljson

import (
	"errors"

	"github.com/nanojson/pulljson/content"
	"github.com/nanojson/pulljson/event"
	"github.com/nanojson/pulljson/jsontok"
)

// errDone guards against pulling past the EndDocument event; it is not
// part of the formal error catalog (it signals caller protocol misuse,
// not a document defect).
var errDone = errors.New("pulljson: parser already finished")

// Slice parses a document that is entirely resident in memory. It is the
// simplest of the three drivers: the content buffer always has the full
// input available, so only an actual escape ever touches scratch.
type Slice struct {
	input []byte
	proc  *event.Processor[*content.Slice]
	tok   *jsontok.Tokenizer
	cfg   config

	pos     int
	tokDone bool
	dead    bool
}

// NewSlice returns a Slice driver over input. scratch is the
// fixed-capacity work buffer used to materialize any escaped string or
// key content; its capacity bounds the longest escaped token this parse
// can handle (ErrScratchBufferFull otherwise).
func NewSlice(input, scratch []byte, opts ...Option) *Slice {
	cfg := newConfig(opts)
	buf := content.NewSlice(input, scratch)
	proc := event.New[*content.Slice](buf, cfg.depth)
	return &Slice{
		input: input,
		proc:  proc,
		tok:   jsontok.New(proc),
		cfg:   cfg,
	}
}

// Next pulls the next event, driving as many input bytes through the
// tokenizer as necessary to produce one.
func (s *Slice) Next() (Event, error) {
	return pump(s.proc.Pop, s.cfg, &s.dead, s.advance)
}

// Depth reports the current container nesting depth.
func (s *Slice) Depth() int { return s.proc.Depth() }

// advance feeds one more byte (or signals finish) when the queue is
// currently empty.
func (s *Slice) advance() error {
	if s.pos < len(s.input) {
		b := s.input[s.pos]
		if err := s.tok.Feed(b, s.proc); err != nil {
			return newSyntaxError(classify(err), s.tok.Pos(), s.input)
		}
		s.pos++
		return nil
	}
	if !s.tokDone {
		s.tokDone = true
		if err := s.tok.Finish(s.proc); err != nil {
			return newSyntaxError(classify(err), s.tok.Pos(), s.input)
		}
		return s.proc.Finish()
	}
	return errDone
}
