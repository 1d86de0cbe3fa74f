package bytebuffer

import (
	"bytes"
	"testing"
)

func TestAppendAndLinearize(t *testing.T) {
	b := New()
	b.Append([]byte("hello "))
	b.Append([]byte("world"))

	got := b.Linearize()
	if string(got) != "hello world" {
		t.Fatalf("got %q", got)
	}
	if b.Size() != len("hello world") {
		t.Fatalf("size = %d", b.Size())
	}
}

func TestAppendAcrossSegmentBoundary(t *testing.T) {
	b := New()
	first := bytes.Repeat([]byte{0xAA}, segmentSize-3)
	second := []byte{1, 2, 3, 4, 5, 6}

	b.Append(first)
	b.Append(second)

	if b.Size() != len(first)+len(second) {
		t.Fatalf("size = %d, want %d", b.Size(), len(first)+len(second))
	}

	got := b.Linearize()
	if !bytes.Equal(got[:len(first)], first) {
		t.Fatal("first segment mismatch")
	}
	if !bytes.Equal(got[len(first):], second) {
		t.Fatal("second segment mismatch")
	}
}

func TestReadTruncatesOutOfRangeWindow(t *testing.T) {
	b := New()
	b.Append([]byte{1, 2, 3, 4, 5})

	dst := make([]byte, 10)
	n := b.Read(dst, 3)
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}
	if !bytes.Equal(dst[:2], []byte{4, 5}) {
		t.Fatalf("dst = %v", dst[:2])
	}
}

func TestReadOffsetBeyondSizeReturnsZero(t *testing.T) {
	b := New()
	b.Append([]byte{1, 2, 3})

	if n := b.Read(make([]byte, 4), 3); n != 0 {
		t.Fatalf("n = %d, want 0", n)
	}
	if n := b.Read(make([]byte, 4), 100); n != 0 {
		t.Fatalf("n = %d, want 0", n)
	}
}

func TestReset(t *testing.T) {
	b := New()
	b.Append([]byte("data"))
	b.Reset()

	if b.Size() != 0 {
		t.Fatalf("size after reset = %d", b.Size())
	}
	if len(b.Linearize()) != 0 {
		t.Fatal("expected empty linearize after reset")
	}
}

func TestAppendByte(t *testing.T) {
	b := New()
	for i := byte(0); i < 5; i++ {
		b.AppendByte(i)
	}
	if !bytes.Equal(b.Linearize(), []byte{0, 1, 2, 3, 4}) {
		t.Fatalf("got %v", b.Linearize())
	}
}
