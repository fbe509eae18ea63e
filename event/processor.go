package event

import (
	"github.com/nanojson/pulljson/bitstack"
	"github.com/nanojson/pulljson/content"
	"github.com/nanojson/pulljson/jsontok"
)

const queueCapacity = 8

// Processor implements jsontok.Handler and jsontok.Containers, converting
// the tokenizer's low-level callbacks into a small FIFO of user-facing
// Events. It is generic over the content.Buffer strategy a particular
// driver (Slice/Reader/Writer) supplies, so the translation logic is
// written once but never boxes the buffer behind an interface value in
// the hot path.
type Processor[B content.Buffer] struct {
	buf   B
	stack *bitstack.Stack

	queue     [queueCapacity]Event
	queueHead int
	queueLen  int

	// unicode escape bookkeeping
	hexDigits    [4]byte
	hexCount     int
	havePendHigh bool
	pendHigh     uint16

	// whether the most recently opened string/key span is a key
	inKey bool

	// after a structural close, the tokenizer asks Peek via Containers;
	// endDelivered tracks whether we've already delivered EndDocument.
	endDelivered bool
}

// New returns a Processor backed by buf and a depth bitstack with room
// for up to maxDepth nested containers.
func New[B content.Buffer](buf B, maxDepth int) *Processor[B] {
	return &Processor[B]{buf: buf, stack: bitstack.New(maxDepth)}
}

// Depth reports the current container nesting depth.
func (p *Processor[B]) Depth() int { return p.stack.Len() }

// Peek implements jsontok.Containers.
func (p *Processor[B]) Peek() (isObject bool, ok bool) { return p.stack.Peek() }

func (p *Processor[B]) enqueue(ev Event) error {
	if p.queueLen >= queueCapacity {
		return ErrQueueOverflow
	}
	idx := (p.queueHead + p.queueLen) % queueCapacity
	p.queue[idx] = ev
	p.queueLen++
	return nil
}

// Pop removes and returns the oldest queued Event, if any.
func (p *Processor[B]) Pop() (Event, bool) {
	if p.queueLen == 0 {
		return Event{}, false
	}
	ev := p.queue[p.queueHead]
	p.queueHead = (p.queueHead + 1) % queueCapacity
	p.queueLen--
	return ev, true
}

// Empty reports whether the queue currently holds no events.
func (p *Processor[B]) Empty() bool { return p.queueLen == 0 }

func (p *Processor[B]) checkNoPendingSurrogate() error {
	if p.havePendHigh {
		return ErrInvalidUnicodeCodepoint
	}
	return nil
}

// Begin implements jsontok.Handler.
func (p *Processor[B]) Begin(tag jsontok.Tag, pos int) error {
	switch tag {
	case jsontok.TagString:
		p.inKey = false
		p.buf.BeginToken(pos + 1)
	case jsontok.TagKey:
		p.inKey = true
		p.buf.BeginToken(pos + 1)
	case jsontok.TagNumber:
		p.buf.BeginToken(pos)
	case jsontok.TagEscapeSequence:
		return p.buf.OnEscapePoint(pos)
	case jsontok.TagUnicodeEscape:
		p.hexCount = 0
	}
	return nil
}

// End implements jsontok.Handler.
func (p *Processor[B]) End(tag jsontok.Tag, pos int) error {
	switch tag {
	case jsontok.TagString:
		if err := p.checkNoPendingSurrogate(); err != nil {
			return err
		}
		view, err := p.buf.Extract(pos)
		if err != nil {
			return err
		}
		p.buf.ResetScratch()
		return p.enqueue(Event{Kind: KindString, Text: view})
	case jsontok.TagKey:
		if err := p.checkNoPendingSurrogate(); err != nil {
			return err
		}
		view, err := p.buf.Extract(pos)
		if err != nil {
			return err
		}
		p.buf.ResetScratch()
		return p.enqueue(Event{Kind: KindKey, Text: view})
	case jsontok.TagNumber:
		view, err := p.buf.Extract(pos)
		if err != nil {
			return err
		}
		p.buf.ResetScratch()
		return p.enqueue(Event{Kind: KindNumber, Text: view})
	case jsontok.TagUnicodeEscape:
		return p.resolveUnicodeEscape()
	default:
		if b, ok := jsontok.SimpleEscapeByte(tag); ok {
			if err := p.checkNoPendingSurrogate(); err != nil {
				return err
			}
			return p.buf.AppendByte(b)
		}
	}
	return nil
}

// Literal implements jsontok.Handler.
func (p *Processor[B]) Literal(tag jsontok.Tag, pos int) error {
	switch tag {
	case jsontok.TagObjectStart:
		if err := p.stack.Push(true); err != nil {
			return err
		}
		return p.enqueue(Event{Kind: KindStartObject})
	case jsontok.TagArrayStart:
		if err := p.stack.Push(false); err != nil {
			return err
		}
		return p.enqueue(Event{Kind: KindStartArray})
	case jsontok.TagObjectEnd:
		if err := p.stack.Pop(true); err != nil {
			return err
		}
		return p.enqueue(Event{Kind: KindEndObject})
	case jsontok.TagArrayEnd:
		if err := p.stack.Pop(false); err != nil {
			return err
		}
		return p.enqueue(Event{Kind: KindEndArray})
	case jsontok.TagTrue:
		return p.enqueue(Event{Kind: KindBool, Bool: true})
	case jsontok.TagFalse:
		return p.enqueue(Event{Kind: KindBool, Bool: false})
	case jsontok.TagNull:
		return p.enqueue(Event{Kind: KindNull})
	}
	return nil
}

// HexDigit implements jsontok.Handler.
func (p *Processor[B]) HexDigit(b byte) error {
	if p.hexCount < len(p.hexDigits) {
		p.hexDigits[p.hexCount] = b
	}
	p.hexCount++
	return nil
}

func (p *Processor[B]) resolveUnicodeEscape() error {
	var unit uint16
	for _, b := range p.hexDigits {
		v, _ := jsontok.HexValue(b) // tokenizer already validated hex-ness
		unit = unit<<4 | uint16(v)
	}

	if p.havePendHigh {
		if !jsontok.IsLowSurrogate(unit) {
			return ErrInvalidUnicodeCodepoint
		}
		r := jsontok.CombineSurrogates(p.pendHigh, unit)
		p.havePendHigh = false
		return p.buf.AppendRune(r)
	}
	switch {
	case jsontok.IsHighSurrogate(unit):
		p.pendHigh = unit
		p.havePendHigh = true
		return p.buf.SkipUnicodeEscape()
	case jsontok.IsLowSurrogate(unit):
		return ErrInvalidUnicodeCodepoint
	default:
		r, err := jsontok.DecodeUnicodeEscape(unit)
		if err != nil {
			return err
		}
		return p.buf.AppendRune(r)
	}
}

// Finish must be called once the tokenizer reports end of input; it
// queues the final EndDocument event.
func (p *Processor[B]) Finish() error {
	if p.endDelivered {
		return nil
	}
	p.endDelivered = true
	return p.enqueue(Event{Kind: KindEndDocument})
}
