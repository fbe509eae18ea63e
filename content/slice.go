package content

import "unicode/utf8"

// Slice is the Buffer for the whole-document-in-memory driver. The input
// is a single, fully available byte slice, so borrowing is always
// possible unless the token contains an escape.
type Slice struct {
	input []byte
	scratch []byte
	scratchLen int

	tokenStart int
	escaping   bool
}

// NewSlice returns a Slice buffer reading from input, using scratch as
// its fixed-capacity escape-decoding work area.
func NewSlice(input, scratch []byte) *Slice {
	return &Slice{input: input, scratch: scratch}
}

func (s *Slice) BeginToken(pos int) {
	s.tokenStart = pos
	s.escaping = false
	s.scratchLen = 0
}

func (s *Slice) OnEscapePoint(pos int) error {
	return s.commit(pos)
}

// SkipUnicodeEscape implements Buffer.
func (s *Slice) SkipUnicodeEscape() error {
	s.tokenStart += unicodeEscapeWidth
	s.escaping = true
	return nil
}

func (s *Slice) commit(uptoPos int) error {
	n := uptoPos - s.tokenStart
	if n < 0 || uptoPos > len(s.input) {
		return ErrScratchBufferFull
	}
	if s.scratchLen+n > len(s.scratch) {
		return ErrScratchBufferFull
	}
	copy(s.scratch[s.scratchLen:], s.input[s.tokenStart:uptoPos])
	s.scratchLen += n
	s.tokenStart = uptoPos
	s.escaping = true
	return nil
}

func (s *Slice) AppendByte(b byte) error {
	if s.scratchLen >= len(s.scratch) {
		return ErrScratchBufferFull
	}
	s.scratch[s.scratchLen] = b
	s.scratchLen++
	s.tokenStart += simpleEscapeWidth
	s.escaping = true
	return nil
}

func (s *Slice) AppendRune(r rune) error {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	if s.scratchLen+n > len(s.scratch) {
		return ErrScratchBufferFull
	}
	copy(s.scratch[s.scratchLen:], buf[:n])
	s.scratchLen += n
	s.tokenStart += unicodeEscapeWidth
	s.escaping = true
	return nil
}

func (s *Slice) Extract(endPos int) (View, error) {
	if !s.escaping {
		if endPos < s.tokenStart || endPos > len(s.input) {
			return View{}, ErrScratchBufferFull
		}
		return View{Bytes: s.input[s.tokenStart:endPos], Borrowed: true}, nil
	}
	if err := s.commit(endPos); err != nil {
		return View{}, err
	}
	return View{Bytes: s.scratch[:s.scratchLen], Borrowed: false}, nil
}

func (s *Slice) ResetScratch() {
	s.scratchLen = 0
	s.escaping = false
}
