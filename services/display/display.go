// Package display renders the monitor's text frame on a small screen.
//
// A frame is built with Clear, SetCursor and WriteLine calls and becomes
// visible on Flush. Nothing reaches the screen until Flush.
package display

// Sink is what the control loop draws through.
type Sink interface {
	Clear()
	SetCursor(x, y int16)
	WriteLine(text string)
	Flush() error
}

// Panel geometry of the 128x64 module with the 6x8 text cell used on it.
const (
	Width      = 128
	Height     = 64
	LineHeight = 8
	CharWidth  = 6

	Cols = Width / CharWidth
	Rows = Height / LineHeight
)
