package content

// Push is the Buffer for the push-style writer driver: the caller feeds
// externally-owned chunks one at a time (e.g. as they arrive off a
// socket) instead of pulling from a source. It reuses Streaming's
// window/scratch machinery verbatim — a chunk rotation is, from the
// buffer's point of view, exactly the same event as a streaming
// reader's window compaction: bytes before the new base may disappear,
// so any open token's still-uncommitted bytes must be copied to scratch
// before the swap.
type Push struct {
	*Streaming
}

// NewPush returns a Push buffer. scratch is the fixed-capacity
// escape-decoding work area; it is sized independently of any one
// chunk's size, since a key/string value escaped across chunk
// boundaries lives there, not in the chunk itself.
func NewPush(scratch []byte) *Push {
	return &Push{Streaming: NewStreaming(nil, scratch)}
}

// Feed installs chunk as the live window, with chunk[0] at absolute
// offset base. Any open token bytes from the previous chunk that have
// not yet been committed are copied into scratch first.
func (p *Push) Feed(chunk []byte, base int) error {
	if err := p.PrepareCompact(base); err != nil {
		return err
	}
	p.SetWindow(chunk, base)
	return nil
}
