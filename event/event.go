// Package event turns the jsontok tokenizer's low-level Begin/End/Literal
// callbacks into a small queue of user-visible parse events: container
// start/end, key, string, number and literal values, and end-of-document.
// It owns the depth bitstack and the copy-on-escape content buffer, and
// is generic over which content.Buffer strategy the driver above it uses.
package event

import (
	"errors"

	"github.com/nanojson/pulljson/content"
)

// ErrQueueOverflow is returned when an event is produced while the
// internal event queue already holds its full capacity of events that
// have not been popped yet.
var ErrQueueOverflow = errors.New("event: queue overflow")

// ErrInvalidUnicodeCodepoint is returned when a \uXXXX escape leaves a
// UTF-16 surrogate unpaired.
var ErrInvalidUnicodeCodepoint = errors.New("event: invalid unicode codepoint")

// Kind identifies the shape of a completed Event.
type Kind int

const (
	KindStartObject Kind = iota
	KindEndObject
	KindStartArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
	KindEndDocument
)

func (k Kind) String() string {
	switch k {
	case KindStartObject:
		return "StartObject"
	case KindEndObject:
		return "EndObject"
	case KindStartArray:
		return "StartArray"
	case KindEndArray:
		return "EndArray"
	case KindKey:
		return "Key"
	case KindString:
		return "String"
	case KindNumber:
		return "Number"
	case KindBool:
		return "Bool"
	case KindNull:
		return "Null"
	case KindEndDocument:
		return "EndDocument"
	default:
		return "Unknown"
	}
}

// Event is one fully-formed parse event. Text holds the decoded content
// for KindKey/KindString, and the raw (undecoded) digit span for
// KindNumber — numbers are never escaped, so their View is always
// Borrowed unless buffer pressure forced a copy. Bool carries the
// decoded value for KindBool; the other kinds carry no payload beyond
// Kind itself.
type Event struct {
	Kind Kind
	Text content.View
	Bool bool
}
