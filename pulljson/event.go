package pulljson

import (
	"github.com/nanojson/pulljson/content"
	"github.com/nanojson/pulljson/event"
)

// EventType identifies the shape of an Event.
type EventType int

const (
	TypeStartObject EventType = iota
	TypeEndObject
	TypeStartArray
	TypeEndArray
	TypeKey
	TypeString
	TypeNumber
	TypeBool
	TypeNull
	TypeEndDocument
)

func (t EventType) String() string {
	switch t {
	case TypeStartObject:
		return "StartObject"
	case TypeEndObject:
		return "EndObject"
	case TypeStartArray:
		return "StartArray"
	case TypeEndArray:
		return "EndArray"
	case TypeKey:
		return "Key"
	case TypeString:
		return "String"
	case TypeNumber:
		return "Number"
	case TypeBool:
		return "Bool"
	case TypeNull:
		return "Null"
	case TypeEndDocument:
		return "EndDocument"
	default:
		return "Unknown"
	}
}

// StringView is a Key or String event's text: either Borrowed directly
// from the original input, or Unescaped content materialized in a
// scratch buffer. Valid only until the next event is pulled — callers
// that need to retain it across a pull must copy it first.
type StringView struct {
	Bytes    []byte
	Borrowed bool
}

func (v StringView) String() string { return string(v.Bytes) }

func viewFrom(v content.View) StringView {
	return StringView{Bytes: v.Bytes, Borrowed: v.Borrowed}
}

// Event is one item of the parser's output stream.
type Event struct {
	Type EventType
	Text StringView // valid for TypeKey, TypeString
	Num  Number     // valid for TypeNumber
	Bool bool       // valid for TypeBool
}

var kindToType = map[event.Kind]EventType{
	event.KindStartObject: TypeStartObject,
	event.KindEndObject:   TypeEndObject,
	event.KindStartArray:  TypeStartArray,
	event.KindEndArray:    TypeEndArray,
	event.KindKey:         TypeKey,
	event.KindString:      TypeString,
	event.KindBool:        TypeBool,
	event.KindNull:        TypeNull,
	event.KindEndDocument: TypeEndDocument,
}

// translate converts one internal event.Event into a public Event. ok is
// false when the event was suppressed entirely (a float-syntax number
// under WithFloatSkip), in which case the driver must pull again.
func translate(ev event.Event, c config) (Event, bool, error) {
	if ev.Kind == event.KindNumber {
		n, err := decodeNumber(ev.Text.Bytes, c)
		if err != nil {
			return Event{}, false, err
		}
		if n.Outcome == FloatSkippedOutcome {
			return Event{}, false, nil
		}
		return Event{Type: TypeNumber, Num: n}, true, nil
	}

	typ, ok := kindToType[ev.Kind]
	if !ok {
		return Event{}, false, ErrUnexpectedState
	}
	out := Event{Type: typ}
	switch ev.Kind {
	case event.KindKey, event.KindString:
		out.Text = viewFrom(ev.Text)
	case event.KindBool:
		out.Bool = ev.Bool
	}
	return out, true, nil
}
