package bitstack_test

import (
	"testing"

	"github.com/nanojson/pulljson/bitstack"
)

func TestPushPopRoundTrip(t *testing.T) {
	s := bitstack.New(8)
	seq := []bool{true, false, false, true}
	for _, isObj := range seq {
		if err := s.Push(isObj); err != nil {
			t.Fatalf("Push(%v): %v", isObj, err)
		}
	}
	if got := s.Len(); got != len(seq) {
		t.Fatalf("Len() = %d, want %d", got, len(seq))
	}
	for i := len(seq) - 1; i >= 0; i-- {
		if err := s.Pop(seq[i]); err != nil {
			t.Fatalf("Pop(%v) at %d: %v", seq[i], i, err)
		}
	}
	if !s.Empty() {
		t.Fatalf("expected empty stack, len=%d", s.Len())
	}
}

func TestDepthExceeded(t *testing.T) {
	s := bitstack.New(2)
	if err := s.Push(true); err != nil {
		t.Fatal(err)
	}
	if err := s.Push(false); err != nil {
		t.Fatal(err)
	}
	if err := s.Push(true); err != bitstack.ErrDepthExceeded {
		t.Fatalf("Push at capacity = %v, want ErrDepthExceeded", err)
	}
}

func TestMismatchedContainer(t *testing.T) {
	s := bitstack.New(4)
	if err := s.Push(true); err != nil {
		t.Fatal(err)
	}
	if err := s.Pop(false); err != bitstack.ErrMismatchedContainer {
		t.Fatalf("Pop(false) on object = %v, want ErrMismatchedContainer", err)
	}
	// stack must be unchanged after a failed pop
	if s.Len() != 1 {
		t.Fatalf("Len() after failed pop = %d, want 1", s.Len())
	}
	if err := s.Pop(true); err != nil {
		t.Fatalf("Pop(true): %v", err)
	}
}

func TestPopEmpty(t *testing.T) {
	s := bitstack.New(4)
	if err := s.Pop(true); err != bitstack.ErrMismatchedContainer {
		t.Fatalf("Pop on empty stack = %v, want ErrMismatchedContainer", err)
	}
}

func TestPeek(t *testing.T) {
	s := bitstack.New(4)
	if _, ok := s.Peek(); ok {
		t.Fatal("Peek on empty stack reported ok=true")
	}
	s.Push(false)
	isObj, ok := s.Peek()
	if !ok || isObj {
		t.Fatalf("Peek() = (%v, %v), want (false, true)", isObj, ok)
	}
}

func TestLargeDepthSpansMultipleWords(t *testing.T) {
	const depth = 200
	s := bitstack.New(depth)
	for i := 0; i < depth; i++ {
		if err := s.Push(i%2 == 0); err != nil {
			t.Fatalf("Push at %d: %v", i, err)
		}
	}
	for i := depth - 1; i >= 0; i-- {
		if err := s.Pop(i%2 == 0); err != nil {
			t.Fatalf("Pop at %d: %v", i, err)
		}
	}
}

func TestReset(t *testing.T) {
	s := bitstack.New(4)
	s.Push(true)
	s.Push(false)
	s.Reset()
	if !s.Empty() {
		t.Fatalf("expected empty after Reset, len=%d", s.Len())
	}
	if err := s.Push(true); err != nil {
		t.Fatalf("Push after Reset: %v", err)
	}
}
