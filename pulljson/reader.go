package pulljson

import (
	"io"

	"github.com/nanojson/pulljson/content"
	"github.com/nanojson/pulljson/event"
	"github.com/nanojson/pulljson/jsontok"
)

// Reader is the pull-style streaming driver: it reads from an io.Reader
// into a fixed-capacity work buffer, compacting whenever the buffer fills
// and every byte it holds has already been fed to the tokenizer: the
// open token's not-yet-copied bytes are committed to scratch, and the
// buffer then restarts empty at the next absolute offset.
type Reader struct {
	r      io.Reader
	window []byte // fixed backing array, caller-owned
	buf    *content.Streaming
	proc   *event.Processor[*content.Streaming]
	tok    *jsontok.Tokenizer
	cfg    config

	validLen int // bytes currently valid in window, starting at buf.Base()
	consumed int // how many of those bytes the tokenizer has already seen

	eof     bool
	tokDone bool
	dead    bool
}

// NewReader returns a Reader driver pulling from r. window is the
// fixed-capacity work buffer (its length is W in the buffer-sufficiency
// sense: any single token longer than W requires scratch to span it via
// compaction, and any token whose raw span can never fit — because
// scratch is also too small — fails with ErrScratchBufferFull). scratch
// is the escape-materialization work area.
func NewReader(r io.Reader, window, scratch []byte, opts ...Option) *Reader {
	cfg := newConfig(opts)
	buf := content.NewStreaming(window[:0], scratch)
	proc := event.New[*content.Streaming](buf, cfg.depth)
	return &Reader{
		r:      r,
		window: window,
		buf:    buf,
		proc:   proc,
		tok:    jsontok.New(proc),
		cfg:    cfg,
	}
}

// Next pulls the next event, reading more input as necessary.
func (rd *Reader) Next() (Event, error) {
	return pump(rd.proc.Pop, rd.cfg, &rd.dead, rd.advance)
}

// Depth reports the current container nesting depth.
func (rd *Reader) Depth() int { return rd.proc.Depth() }

func (rd *Reader) advance() error {
	if rd.consumed < rd.validLen {
		b := rd.window[rd.consumed]
		if err := rd.tok.Feed(b, rd.proc); err != nil {
			return newSyntaxError(classify(err), rd.tok.Pos(), nil)
		}
		rd.consumed++
		return nil
	}
	if rd.eof {
		if !rd.tokDone {
			rd.tokDone = true
			if err := rd.tok.Finish(rd.proc); err != nil {
				return newSyntaxError(classify(err), rd.tok.Pos(), nil)
			}
			return rd.proc.Finish()
		}
		return errDone
	}
	return rd.refill()
}

// refill tops up the window, compacting first if it is already full.
func (rd *Reader) refill() error {
	if rd.validLen == len(rd.window) {
		newBase := rd.buf.Base() + rd.validLen
		if err := rd.buf.PrepareCompact(newBase); err != nil {
			return newSyntaxError(classify(err), rd.tok.Pos(), nil)
		}
		rd.validLen = 0
		rd.consumed = 0
		rd.buf.SetWindow(rd.window[:0], newBase)
	}
	n, err := rd.r.Read(rd.window[rd.validLen:])
	if n > 0 {
		rd.validLen += n
		rd.buf.SetWindow(rd.window[:rd.validLen], rd.buf.Base())
	}
	if err != nil {
		if err == io.EOF {
			rd.eof = true
			return nil
		}
		return err
	}
	return nil
}
