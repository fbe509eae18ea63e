package pulljson

import (
	"errors"
	"fmt"

	"github.com/nanojson/pulljson/bitstack"
	"github.com/nanojson/pulljson/content"
	"github.com/nanojson/pulljson/event"
	"github.com/nanojson/pulljson/jsontok"
)

// Sentinel errors, re-exported from the lower-level packages that detect
// them so callers need only import pulljson and compare with errors.Is.
var (
	ErrDepthExceeded         = bitstack.ErrDepthExceeded
	ErrMismatchedContainer   = bitstack.ErrMismatchedContainer
	ErrUnexpectedEndOfInput  = jsontok.ErrUnexpectedEndOfInput
	ErrUnexpectedByte        = jsontok.ErrUnexpectedByte
	ErrTokenizerError        = errors.New("pulljson: syntax error")
	ErrInvalidEscape         = jsontok.ErrInvalidEscape
	ErrInvalidUnicodeCodepoint = event.ErrInvalidUnicodeCodepoint
	ErrInvalidNumber         = jsontok.ErrInvalidNumber
	ErrIntegerOverflow       = errors.New("pulljson: integer overflow")
	ErrFloatNotAllowed       = errors.New("pulljson: float not allowed")
	ErrScratchBufferFull     = content.ErrScratchBufferFull
	ErrUnexpectedState       = errors.New("pulljson: unexpected internal state")
)

// classify maps a lower-level error (as returned by jsontok/event/content/
// bitstack) to the sentinel it corresponds to at the public surface. Errors
// already defined in this package (or unrecognized ones) pass through.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, jsontok.ErrUnexpectedByte),
		errors.Is(err, jsontok.ErrUnexpectedEndOfInput),
		errors.Is(err, jsontok.ErrInvalidEscape),
		errors.Is(err, jsontok.ErrInvalidNumber),
		errors.Is(err, jsontok.ErrControlCharInString):
		return err
	default:
		return err
	}
}

// SyntaxError wraps a lower-level error with the absolute byte offset at
// which it was detected, and (when the full input is available, as with
// the slice driver) the 1-based line and column.
type SyntaxError struct {
	Err    error
	offset int
	input  []byte // nil when unavailable (reader/writer drivers mid-stream)
}

func newSyntaxError(err error, offset int, input []byte) *SyntaxError {
	return &SyntaxError{Err: err, offset: offset, input: input}
}

func (e *SyntaxError) Error() string {
	if e.input != nil {
		line, col := e.lineCol()
		return fmt.Sprintf("pulljson: %v at offset %d (line %d, col %d)", e.Err, e.offset, line, col)
	}
	return fmt.Sprintf("pulljson: %v at offset %d", e.Err, e.offset)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Offset returns the absolute byte offset from document origin at which
// the error was detected.
func (e *SyntaxError) Offset() int { return e.offset }

// Line returns the 1-based line number of the error, or 0 if the input
// that produced it is not fully retained (streaming/push drivers report
// only Offset once their work buffer has moved past the error site).
func (e *SyntaxError) Line() int {
	line, _ := e.lineCol()
	return line
}

// Col returns the 1-based column number of the error, or 0 under the
// same conditions as Line.
func (e *SyntaxError) Col() int {
	_, col := e.lineCol()
	return col
}

func (e *SyntaxError) lineCol() (line, col int) {
	if e.input == nil {
		return 0, 0
	}
	line, col = 1, 1
	limit := e.offset
	if limit > len(e.input) {
		limit = len(e.input)
	}
	for i := 0; i < limit; i++ {
		if e.input[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
