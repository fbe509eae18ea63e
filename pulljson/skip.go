package pulljson

// EventSource is satisfied by the pull-style drivers (Slice, Reader).
// Writer is push-driven and has no analogous "pull and discard" shape,
// so SkipValue does not apply to it.
type EventSource interface {
	Next() (Event, error)
}

// SkipValue discards the rest of a value the caller just received from
// last, counting nesting with a single local counter: no extra heap
// state is allocated regardless of how deeply the skipped value is
// nested. Call it immediately after receiving a StartObject, StartArray,
// or Key event (in the Key case, it skips the key's associated value).
// For any other event type it is a no-op, since a scalar value is
// already fully consumed by the event that carries it.
func SkipValue(src EventSource, last Event) error {
	switch last.Type {
	case TypeStartObject, TypeStartArray:
		depth := 1
		for depth > 0 {
			ev, err := src.Next()
			if err != nil {
				return err
			}
			switch ev.Type {
			case TypeStartObject, TypeStartArray:
				depth++
			case TypeEndObject, TypeEndArray:
				depth--
			}
		}
		return nil
	case TypeKey:
		ev, err := src.Next()
		if err != nil {
			return err
		}
		return SkipValue(src, ev)
	default:
		return nil
	}
}
