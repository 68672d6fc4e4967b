package display

import "strings"

// Buffer is an in-memory Sink. Each Flush captures the pending lines as a
// frame.
type Buffer struct {
	pending []string
	frames  [][]string

	// FlushErr, if set, is returned by every Flush; the frame is still kept.
	FlushErr error
}

func (b *Buffer) Clear() { b.pending = b.pending[:0] }

// SetCursor is accepted but only line order is tracked.
func (b *Buffer) SetCursor(x, y int16) {}

func (b *Buffer) WriteLine(text string) { b.pending = append(b.pending, text) }

func (b *Buffer) Flush() error {
	b.frames = append(b.frames, append([]string(nil), b.pending...))
	return b.FlushErr
}

// Frames returns every flushed frame, oldest first.
func (b *Buffer) Frames() [][]string { return b.frames }

// Last returns the most recent frame, or nil.
func (b *Buffer) Last() []string {
	if len(b.frames) == 0 {
		return nil
	}
	return b.frames[len(b.frames)-1]
}

func (b *Buffer) String() string { return strings.Join(b.Last(), "\n") }
