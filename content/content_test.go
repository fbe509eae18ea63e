package content_test

import (
	"testing"

	"github.com/nanojson/pulljson/content"
)

func TestSliceBorrowsWithoutEscape(t *testing.T) {
	input := []byte(`hello world`)
	scratch := make([]byte, 16)
	b := content.NewSlice(input, scratch)

	b.BeginToken(0)
	view, err := b.Extract(5)
	if err != nil {
		t.Fatal(err)
	}
	if !view.Borrowed {
		t.Fatal("expected a borrowed view when no escape occurred")
	}
	if string(view.Bytes) != "hello" {
		t.Fatalf("view = %q, want %q", view.Bytes, "hello")
	}
}

func TestSliceCopiesOnEscape(t *testing.T) {
	input := []byte(`ab\ncd`) // the literal bytes a b \ n c d
	scratch := make([]byte, 16)
	b := content.NewSlice(input, scratch)

	b.BeginToken(0)
	if err := b.OnEscapePoint(2); err != nil { // commit "ab" ahead of the backslash
		t.Fatal(err)
	}
	if err := b.AppendByte('\n'); err != nil {
		t.Fatal(err)
	}
	view, err := b.Extract(6) // "cd" still to come from input[4:6]
	if err != nil {
		t.Fatal(err)
	}
	if view.Borrowed {
		t.Fatal("expected an unescaped (copied) view once an escape occurred")
	}
	want := "ab\ncd"
	if string(view.Bytes) != want {
		t.Fatalf("view = %q, want %q", view.Bytes, want)
	}
}

func TestSliceScratchOverflow(t *testing.T) {
	input := []byte(`abcdef`)
	scratch := make([]byte, 2)
	b := content.NewSlice(input, scratch)
	b.BeginToken(0)
	if err := b.OnEscapePoint(6); err != content.ErrScratchBufferFull {
		t.Fatalf("err = %v, want ErrScratchBufferFull", err)
	}
}

func TestStreamingBorrowsWithinWindow(t *testing.T) {
	scratch := make([]byte, 16)
	b := content.NewStreaming(nil, scratch)
	b.SetWindow([]byte(`"hi"`), 0)

	b.BeginToken(1)
	view, err := b.Extract(3)
	if err != nil {
		t.Fatal(err)
	}
	if !view.Borrowed || string(view.Bytes) != "hi" {
		t.Fatalf("view = %+v, want borrowed \"hi\"", view)
	}
}

func TestStreamingCompactForcesCommit(t *testing.T) {
	scratch := make([]byte, 16)
	b := content.NewStreaming(nil, scratch)
	// window holds `"longtoken` starting at absolute offset 0; the token
	// (a string's content) begins right after the quote, at offset 1.
	b.SetWindow([]byte(`"longtoken`), 0)
	b.BeginToken(1)

	// caller wants to slide the window so absolute offset 5 becomes the
	// new window[0]; bytes [1,5) of the open token must survive.
	if err := b.PrepareCompact(5); err != nil {
		t.Fatal(err)
	}
	// simulate the slide: new window holds the remaining bytes, with
	// "token" logically continuing from offset 5.
	b.SetWindow([]byte(`token" tail`), 5)

	view, err := b.Extract(10) // absolute end of the 9-byte token "longtoken"
	if err != nil {
		t.Fatal(err)
	}
	if view.Borrowed {
		t.Fatal("expected a committed (non-borrowed) view after compaction mid-token")
	}
	if string(view.Bytes) != "longtoken" {
		t.Fatalf("view = %q, want %q", view.Bytes, "longtoken")
	}
}

func TestPushFeedCommitsAcrossChunkBoundary(t *testing.T) {
	scratch := make([]byte, 16)
	p := content.NewPush(scratch)

	if err := p.Feed([]byte(`"part`), 0); err != nil {
		t.Fatal(err)
	}
	p.BeginToken(1) // the string content starts right after the quote

	if err := p.Feed([]byte(`one"`), 5); err != nil {
		t.Fatal(err)
	}

	view, err := p.Extract(8) // the closing quote sits at absolute offset 8
	if err != nil {
		t.Fatal(err)
	}
	if view.Borrowed {
		t.Fatal("expected a committed view once the token spanned two chunks")
	}
	if string(view.Bytes) != "partone" {
		t.Fatalf("view = %q, want %q", view.Bytes, "partone")
	}
}

func TestPushScratchOverflowAcrossChunks(t *testing.T) {
	scratch := make([]byte, 4)
	p := content.NewPush(scratch)
	if err := p.Feed([]byte(`"toolong`), 0); err != nil {
		t.Fatal(err)
	}
	p.BeginToken(1)
	if err := p.Feed([]byte(`er"`), 8); err != content.ErrScratchBufferFull {
		t.Fatalf("err = %v, want ErrScratchBufferFull", err)
	}
}
