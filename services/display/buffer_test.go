package display

import (
	"errors"
	"testing"
)

func TestBufferFramesOnFlush(t *testing.T) {
	var b Buffer
	b.Clear()
	b.SetCursor(0, 0)
	b.WriteLine("a")
	b.WriteLine("b")
	if len(b.Frames()) != 0 {
		t.Fatalf("frame captured before Flush")
	}
	if err := b.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	b.WriteLine("c")
	b.FlushErr = errors.New("bus")
	if err := b.Flush(); err == nil {
		t.Fatalf("FlushErr not returned")
	}

	frames := b.Frames()
	if len(frames) != 2 {
		t.Fatalf("frames = %v", frames)
	}
	if got := b.String(); got != "a\nb\nc" {
		t.Fatalf("last frame = %q", got)
	}
	if len(frames[0]) != 2 {
		t.Fatalf("first frame mutated: %v", frames[0])
	}
}

func TestBufferLastEmpty(t *testing.T) {
	var b Buffer
	if b.Last() != nil {
		t.Fatalf("Last on empty buffer = %v", b.Last())
	}
}
