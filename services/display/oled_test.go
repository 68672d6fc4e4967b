package display

import (
	"errors"
	"image/color"
	"testing"
)

type fakeScreen struct {
	px       map[[2]int16]bool
	cleared  int
	displays int
	err      error
}

func newFakeScreen() *fakeScreen { return &fakeScreen{px: map[[2]int16]bool{}} }

func (s *fakeScreen) Size() (int16, int16) { return Width, Height }

func (s *fakeScreen) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= Width || y >= Height {
		return
	}
	s.px[[2]int16{x, y}] = c.R != 0 || c.G != 0 || c.B != 0
}

func (s *fakeScreen) Display() error { s.displays++; return s.err }

func (s *fakeScreen) ClearBuffer() {
	s.cleared++
	s.px = map[[2]int16]bool{}
}

func (s *fakeScreen) rowsLit() (minY, maxY int16, n int) {
	minY, maxY = Height, -1
	for p, on := range s.px {
		if !on {
			continue
		}
		n++
		minY = min(minY, p[1])
		maxY = max(maxY, p[1])
	}
	return minY, maxY, n
}

func TestOLEDLinesStackDownward(t *testing.T) {
	scr := newFakeScreen()
	o := NewOLED(scr)
	o.Clear()
	o.WriteLine("Lux: 50.00")
	_, firstMax, n := scr.rowsLit()
	if n == 0 {
		t.Fatalf("first line drew nothing")
	}
	if x, y := o.Cursor(); x != 0 || y != LineHeight {
		t.Fatalf("cursor after one line = (%d,%d)", x, y)
	}

	scr.px = map[[2]int16]bool{}
	o.WriteLine("Distance: 100.00 cm")
	secondMin, _, n := scr.rowsLit()
	if n == 0 {
		t.Fatalf("second line drew nothing")
	}
	if secondMin <= firstMax {
		t.Fatalf("second line overlaps the first: rows from %d, first ended at %d", secondMin, firstMax)
	}
	if scr.displays != 0 {
		t.Fatalf("WriteLine pushed to the panel")
	}
}

func TestOLEDClearHomesCursor(t *testing.T) {
	scr := newFakeScreen()
	o := NewOLED(scr)
	o.SetCursor(10, 24)
	o.WriteLine("x")
	o.Clear()
	if x, y := o.Cursor(); x != 0 || y != 0 {
		t.Fatalf("cursor after Clear = (%d,%d)", x, y)
	}
	if _, _, n := scr.rowsLit(); n != 0 {
		t.Fatalf("%d pixels left after Clear", n)
	}
}

func TestOLEDFlushReportsPanelError(t *testing.T) {
	scr := newFakeScreen()
	scr.err = errors.New("nack")
	o := NewOLED(scr)
	if err := o.Flush(); err == nil {
		t.Fatalf("Flush swallowed the panel error")
	}
	if scr.displays != 1 {
		t.Fatalf("displays = %d", scr.displays)
	}
}
