package jsontok

import "errors"

// ErrInvalidUnicodeCodepoint is returned by DecodeUnicodeEscape when the
// \uXXXX code unit it is given is a surrogate, which is not a valid
// codepoint on its own. Surrogate pairing errors are reported by the
// event processor, not by this package.
var ErrInvalidUnicodeCodepoint = errors.New("jsontok: invalid unicode codepoint")

// SimpleEscapeByte returns the single decoded byte for a simple escape
// tag (the End tag of a Begin(TagEscapeSequence) that was not \u). It is
// the adaptation of the teacher's bsEscQuoted lookup table.
func SimpleEscapeByte(tag Tag) (byte, bool) {
	switch tag {
	case TagEscapeQuote:
		return '"', true
	case TagEscapeBackslash:
		return '\\', true
	case TagEscapeSlash:
		return '/', true
	case TagEscapeBackspace:
		return '\b', true
	case TagEscapeFormFeed:
		return '\f', true
	case TagEscapeNewline:
		return '\n', true
	case TagEscapeReturn:
		return '\r', true
	case TagEscapeTab:
		return '\t', true
	default:
		return 0, false
	}
}

// EscapeTagForByte maps the byte following a backslash to the tag the
// tokenizer should emit as the End of that escape, or ok=false if the
// byte does not introduce a recognized simple escape (the caller must
// then check for 'u', which introduces TagUnicodeEscape instead).
func EscapeTagForByte(b byte) (Tag, bool) {
	switch b {
	case '"':
		return TagEscapeQuote, true
	case '\\':
		return TagEscapeBackslash, true
	case '/':
		return TagEscapeSlash, true
	case 'b':
		return TagEscapeBackspace, true
	case 'f':
		return TagEscapeFormFeed, true
	case 'n':
		return TagEscapeNewline, true
	case 'r':
		return TagEscapeReturn, true
	case 't':
		return TagEscapeTab, true
	default:
		return 0, false
	}
}

// HexValue returns the 4-bit value of an ASCII hex digit.
func HexValue(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	default:
		return 0, false
	}
}

const (
	highSurrogateStart = 0xD800
	highSurrogateEnd   = 0xDBFF
	lowSurrogateStart  = 0xDC00
	lowSurrogateEnd    = 0xDFFF
)

// IsHighSurrogate reports whether a decoded \uXXXX code unit is the
// first half of a UTF-16 surrogate pair and must be followed by a low
// surrogate before it can be turned into a rune.
func IsHighSurrogate(unit uint16) bool {
	return unit >= highSurrogateStart && unit <= highSurrogateEnd
}

// IsLowSurrogate reports whether a decoded \uXXXX code unit is the
// second half of a UTF-16 surrogate pair.
func IsLowSurrogate(unit uint16) bool {
	return unit >= lowSurrogateStart && unit <= lowSurrogateEnd
}

// CombineSurrogates assembles a high and low surrogate pair into the
// rune they encode. Callers must check IsHighSurrogate/IsLowSurrogate
// first; CombineSurrogates does not re-validate its inputs.
func CombineSurrogates(high, low uint16) rune {
	return rune(0x10000 + (uint32(high)-highSurrogateStart)<<10 + (uint32(low) - lowSurrogateStart))
}

// DecodeUnicodeEscape turns a single \uXXXX code unit that is not a
// surrogate into the rune it denotes directly. Surrogates must instead
// go through IsHighSurrogate/IsLowSurrogate/CombineSurrogates, since a
// lone surrogate is not a valid rune on its own.
func DecodeUnicodeEscape(unit uint16) (rune, error) {
	if IsHighSurrogate(unit) || IsLowSurrogate(unit) {
		return 0, ErrInvalidUnicodeCodepoint
	}
	return rune(unit), nil
}
