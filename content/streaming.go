package content

import "unicode/utf8"

// Streaming is the Buffer for the pull-style reader driver: input
// arrives into a small, caller-owned work buffer (window) that is
// periodically compacted (the caller installs a new window at a later
// absolute offset) to make room for more bytes read from the source. Borrowing is possible only
// while the token's bytes remain inside the current window; compaction
// that would discard not-yet-copied token bytes forces an eager commit
// into scratch first.
type Streaming struct {
	window []byte // caller-owned, reused read buffer; length is the valid portion
	base   int    // absolute offset corresponding to window[0]

	scratch    []byte
	scratchLen int

	tokenStart int // absolute offset
	escaping   bool
}

// NewStreaming returns a Streaming buffer. window and scratch are
// fixed-capacity slices owned by the caller for the life of the parse.
func NewStreaming(window, scratch []byte) *Streaming {
	return &Streaming{window: window[:0], scratch: scratch}
}

// SetWindow replaces the live window contents and records the absolute
// offset of window[0]. Call this after reading more bytes in, or after
// PrepareCompact to install the window at its new base.
func (s *Streaming) SetWindow(data []byte, base int) {
	s.window = data
	s.base = base
}

// Base returns the absolute offset corresponding to window[0].
func (s *Streaming) Base() int { return s.base }

func (s *Streaming) BeginToken(pos int) {
	s.tokenStart = pos
	s.escaping = false
	s.scratchLen = 0
}

func (s *Streaming) OnEscapePoint(pos int) error {
	return s.commit(pos)
}

// SkipUnicodeEscape implements Buffer.
func (s *Streaming) SkipUnicodeEscape() error {
	s.tokenStart += unicodeEscapeWidth
	s.escaping = true
	return nil
}

func (s *Streaming) commit(uptoPos int) error {
	start := s.tokenStart - s.base
	end := uptoPos - s.base
	if start < 0 || end > len(s.window) || start > end {
		return ErrScratchBufferFull
	}
	n := end - start
	if s.scratchLen+n > len(s.scratch) {
		return ErrScratchBufferFull
	}
	copy(s.scratch[s.scratchLen:], s.window[start:end])
	s.scratchLen += n
	s.tokenStart = uptoPos
	s.escaping = true
	return nil
}

func (s *Streaming) AppendByte(b byte) error {
	if s.scratchLen >= len(s.scratch) {
		return ErrScratchBufferFull
	}
	s.scratch[s.scratchLen] = b
	s.scratchLen++
	s.tokenStart += simpleEscapeWidth
	s.escaping = true
	return nil
}

func (s *Streaming) AppendRune(r rune) error {
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

func (s *Streaming) Extract(endPos int) (View, error) {
	if !s.escaping {
		start := s.tokenStart - s.base
		end := endPos - s.base
		if start < 0 || end > len(s.window) || start > end {
			return View{}, ErrScratchBufferFull
		}
		return View{Bytes: s.window[start:end], Borrowed: true}, nil
	}
	if err := s.commit(endPos); err != nil {
		return View{}, err
	}
	return View{Bytes: s.scratch[:s.scratchLen], Borrowed: false}, nil
}

func (s *Streaming) ResetScratch() {
	s.scratchLen = 0
	s.escaping = false
}

// PrepareCompact must be called before sliding the window so that
// newBase becomes the new window[0]. If an open token still has
// not-yet-copied bytes below newBase, they are committed to scratch
// first; otherwise this is a no-op.
func (s *Streaming) PrepareCompact(newBase int) error {
	if s.tokenStart >= newBase {
		return nil
	}
	if s.tokenStart < s.base {
		return nil // no open token in this window at all
	}
	if i := s.tokenStart - s.base; i < len(s.window) && s.window[i] == '\\' {
		// mid-escape: the escape's source bytes are skipped, never
		// copied, once it is decoded
		return nil
	}
	return s.commit(newBase)
}
