package jsontok

import "errors"

// ErrUnexpectedByte is returned when a byte appears somewhere the JSON
// grammar does not allow it.
var ErrUnexpectedByte = errors.New("jsontok: unexpected byte")

// ErrUnexpectedEndOfInput is returned by Finish when the document ends
// mid-token or mid-container.
var ErrUnexpectedEndOfInput = errors.New("jsontok: unexpected end of input")

// ErrInvalidEscape is returned for a backslash followed by a byte that is
// neither a recognized simple escape nor 'u'.
var ErrInvalidEscape = errors.New("jsontok: invalid escape")

// ErrInvalidNumber is returned when a number's digit grammar is violated
// (a bare '-' or '.' with no following digit, a dangling exponent, etc).
var ErrInvalidNumber = errors.New("jsontok: invalid number")

// ErrControlCharInString is returned when a raw (unescaped) ASCII control
// character appears inside a string or key.
var ErrControlCharInString = errors.New("jsontok: control character in string")

// phase tracks what the tokenizer is currently lexing, independent of the
// grammar-level expectation (expect) that governs what byte may come
// next at the current nesting level.
type phase int

const (
	phaseNone phase = iota
	phaseString
	phaseKey
	phaseNumber
	phaseLiteral
	phaseEscape
	phaseUnicodeEscape
)

// expect tracks what the grammar allows next at the current nesting
// level. It needs no per-level stack of its own: pushing a container
// always resets it to a fixed starting expectation, and popping one
// always lands back in "just finished a value", which is recoverable
// purely from the (shared) container-type bitstack.
type expect int

const (
	expectValue          expect = iota // bare top-level value, or after ':' / ',' in an array
	expectValueOrClose                 // right after '[': a value, or immediate ']'
	expectKey                          // object, after ',': a key string is required
	expectKeyOrClose                   // right after '{': a key string, or immediate '}'
	expectColon                        // object, right after a key
	expectCommaOrCloseObj
	expectCommaOrCloseArr
	expectDone // top level value already produced; only whitespace/EOF remain
)

// Tokenizer is a byte-at-a-time JSON lexer. It owns no buffer of its own
// beyond a handful of scalar fields and never allocates after
// construction.
type Tokenizer struct {
	containers Containers

	expect      expect
	phase       phase
	returnPhase phase // phase to resume once an escape sequence completes

	pos int // absolute offset of the next byte to be fed

	tokenStart int // absolute offset where the current span (String/Key/Number) began

	num numState

	literalWant string
	literalIdx  int
	literalTag  Tag

	hexCount int

	done  bool // Finish has been called successfully
	dead  bool // a previous call returned an error; no further calls are valid
}

// New returns a Tokenizer ready to lex a fresh document. containers
// supplies read access to the depth/container-type bitstack that some
// other component (the event processor) owns and mutates from within
// Handler.Literal callbacks for ObjectStart/ObjectEnd/ArrayStart/ArrayEnd.
func New(containers Containers) *Tokenizer {
	return &Tokenizer{containers: containers, expect: expectValue}
}

// Reset prepares the Tokenizer to lex a new document from offset 0,
// without reallocating.
func (t *Tokenizer) Reset() {
	t.expect = expectValue
	t.phase = phaseNone
	t.returnPhase = phaseNone
	t.pos = 0
	t.tokenStart = 0
	t.num = numState{}
	t.literalWant = ""
	t.literalIdx = 0
	t.hexCount = 0
	t.done = false
	t.dead = false
}

// Pos returns the absolute offset of the next byte Feed expects.
func (t *Tokenizer) Pos() int { return t.pos }

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// Feed processes exactly one input byte, invoking zero or more Handler
// callbacks, and returns an error if b violates JSON grammar at this
// position. Once Feed or Finish returns a non-nil error, the Tokenizer
// is dead and must not be called again.
func (t *Tokenizer) Feed(b byte, h Handler) error {
	if t.dead || t.done {
		return ErrUnexpectedByte
	}
	if err := t.feed(b, h); err != nil {
		t.dead = true
		return err
	}
	t.pos++
	return nil
}

func (t *Tokenizer) feed(b byte, h Handler) error {
	switch t.phase {
	case phaseString, phaseKey:
		return t.feedStringByte(b, h)
	case phaseEscape:
		return t.feedEscapeByte(b, h)
	case phaseUnicodeEscape:
		return t.feedHexByte(b, h)
	case phaseNumber:
		return t.feedNumberByte(b, h)
	case phaseLiteral:
		return t.feedLiteralByte(b, h)
	default:
		return t.feedGrammarByte(b, h)
	}
}

func (t *Tokenizer) feedStringByte(b byte, h Handler) error {
	tag := TagString
	if t.phase == phaseKey {
		tag = TagKey
	}
	switch {
	case b == '"':
		if err := h.End(tag, t.pos); err != nil {
			return err
		}
		t.phase = phaseNone
		if tag == TagKey {
			t.expect = expectColon
			return nil
		}
		return t.afterValue()
	case b == '\\':
		if err := h.Begin(TagEscapeSequence, t.pos); err != nil {
			return err
		}
		t.returnPhase = t.phase
		t.phase = phaseEscape
		return nil
	case b < 0x20:
		return ErrControlCharInString
	default:
		return nil
	}
}

func (t *Tokenizer) feedEscapeByte(b byte, h Handler) error {
	if simpleTag, ok := EscapeTagForByte(b); ok {
		if err := h.End(simpleTag, t.pos); err != nil {
			return err
		}
		t.phase = t.returnPhase
		return nil
	}
	if b == 'u' {
		if err := h.Begin(TagUnicodeEscape, t.pos); err != nil {
			return err
		}
		t.phase = phaseUnicodeEscape
		t.hexCount = 0
		return nil
	}
	return ErrInvalidEscape
}

func (t *Tokenizer) feedHexByte(b byte, h Handler) error {
	if _, ok := HexValue(b); !ok {
		return ErrInvalidEscape
	}
	if err := h.HexDigit(b); err != nil {
		return err
	}
	t.hexCount++
	if t.hexCount == 4 {
		if err := h.End(TagUnicodeEscape, t.pos+1); err != nil {
			return err
		}
		t.phase = t.returnPhase
	}
	return nil
}

// feedNumberByte processes a byte while inside a number. A number has no
// closing delimiter of its own: the first byte that does not extend it
// ends the span and is then re-dispatched as if freshly arrived under
// the grammar's post-value expectation.
func (t *Tokenizer) feedNumberByte(b byte, h Handler) error {
	switch t.num.step(b) {
	case numContinue:
		return nil
	case numInvalid:
		return ErrInvalidNumber
	default: // numTerminated
		if err := h.End(TagNumber, t.pos); err != nil {
			return err
		}
		t.phase = phaseNone
		if err := t.afterValue(); err != nil {
			return err
		}
		return t.feedGrammarByte(b, h)
	}
}

func (t *Tokenizer) feedLiteralByte(b byte, h Handler) error {
	if b != t.literalWant[t.literalIdx] {
		return ErrUnexpectedByte
	}
	t.literalIdx++
	if t.literalIdx == len(t.literalWant) {
		if err := h.Literal(t.literalTag, t.tokenStart); err != nil {
			return err
		}
		t.phase = phaseNone
		return t.afterValue()
	}
	return nil
}

// feedGrammarByte handles a byte that is not mid-token: whitespace,
// structural punctuation, or the first byte of a new value/key.
func (t *Tokenizer) feedGrammarByte(b byte, h Handler) error {
	if isWhitespace(b) {
		return nil
	}
	switch b {
	case '{':
		if !t.canStartValue() {
			return ErrUnexpectedByte
		}
		if err := h.Literal(TagObjectStart, t.pos); err != nil {
			return err
		}
		t.expect = expectKeyOrClose
		return nil
	case '[':
		if !t.canStartValue() {
			return ErrUnexpectedByte
		}
		if err := h.Literal(TagArrayStart, t.pos); err != nil {
			return err
		}
		t.expect = expectValueOrClose
		return nil
	case '}':
		if t.expect != expectKeyOrClose && t.expect != expectCommaOrCloseObj {
			return ErrUnexpectedByte
		}
		if err := h.Literal(TagObjectEnd, t.pos); err != nil {
			return err
		}
		return t.afterContainerEnd()
	case ']':
		if t.expect != expectValueOrClose && t.expect != expectCommaOrCloseArr {
			return ErrUnexpectedByte
		}
		if err := h.Literal(TagArrayEnd, t.pos); err != nil {
			return err
		}
		return t.afterContainerEnd()
	case ',':
		switch t.expect {
		case expectCommaOrCloseObj:
			t.expect = expectKey
		case expectCommaOrCloseArr:
			t.expect = expectValue
		default:
			return ErrUnexpectedByte
		}
		return nil
	case ':':
		if t.expect != expectColon {
			return ErrUnexpectedByte
		}
		t.expect = expectValue
		return nil
	case '"':
		if t.expect == expectKey || t.expect == expectKeyOrClose {
			t.phase = phaseKey
			t.tokenStart = t.pos
			return h.Begin(TagKey, t.pos)
		}
		if !t.canStartValue() {
			return ErrUnexpectedByte
		}
		t.phase = phaseString
		t.tokenStart = t.pos
		return h.Begin(TagString, t.pos)
	case '-':
		if !t.canStartValue() {
			return ErrUnexpectedByte
		}
		t.num.start(b)
		t.phase = phaseNumber
		t.tokenStart = t.pos
		return h.Begin(TagNumber, t.pos)
	case 't', 'f', 'n':
		if !t.canStartValue() {
			return ErrUnexpectedByte
		}
		return t.beginLiteral(b)
	default:
		if isDigit(b) {
			if !t.canStartValue() {
				return ErrUnexpectedByte
			}
			t.num.start(b)
			t.phase = phaseNumber
			t.tokenStart = t.pos
			return h.Begin(TagNumber, t.pos)
		}
		return ErrUnexpectedByte
	}
}

func (t *Tokenizer) canStartValue() bool {
	return t.expect == expectValue || t.expect == expectValueOrClose
}

func (t *Tokenizer) beginLiteral(b byte) error {
	switch b {
	case 't':
		t.literalWant, t.literalTag = "true", TagTrue
	case 'f':
		t.literalWant, t.literalTag = "false", TagFalse
	case 'n':
		t.literalWant, t.literalTag = "null", TagNull
	}
	t.tokenStart = t.pos
	t.literalIdx = 1 // first byte already matched by dispatch
	t.phase = phaseLiteral
	return nil
}

// afterValue transitions expect once a scalar value (string, number,
// bool, null) has just completed, based on the container now open.
func (t *Tokenizer) afterValue() error {
	isObject, ok := t.containers.Peek()
	switch {
	case !ok:
		t.expect = expectDone
	case isObject:
		t.expect = expectCommaOrCloseObj
	default:
		t.expect = expectCommaOrCloseArr
	}
	return nil
}

// afterContainerEnd is afterValue's twin for the moment a container
// itself just closed: the bitstack has already been popped by Handler's
// Literal callback, so Peek reflects the enclosing level.
func (t *Tokenizer) afterContainerEnd() error {
	return t.afterValue()
}

// Finish signals end of input. It reports ErrUnexpectedEndOfInput if the
// document is incomplete (open string/number/container, or no value seen
// yet), and otherwise terminates a trailing in-progress number.
func (t *Tokenizer) Finish(h Handler) error {
	if t.dead || t.done {
		return ErrUnexpectedByte
	}
	if err := t.finish(h); err != nil {
		t.dead = true
		return err
	}
	t.done = true
	return nil
}

func (t *Tokenizer) finish(h Handler) error {
	if t.phase == phaseNumber {
		if !t.num.stage.terminable() {
			return ErrUnexpectedEndOfInput
		}
		if err := h.End(TagNumber, t.pos); err != nil {
			return err
		}
		t.phase = phaseNone
		if err := t.afterValue(); err != nil {
			return err
		}
	}
	if t.phase != phaseNone {
		return ErrUnexpectedEndOfInput
	}
	if t.expect != expectDone {
		return ErrUnexpectedEndOfInput
	}
	return nil
}
