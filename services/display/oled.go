package display

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Screen is a framebuffered display such as *ssd1306.Device.
type Screen interface {
	drivers.Displayer
	ClearBuffer()
}

// White is the only ink a monochrome panel has.
var White = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// OLED draws text lines onto a Screen with tinyfont.
type OLED struct {
	scr  Screen
	font tinyfont.Fonter
	ink  color.RGBA

	x, y int16
}

// NewOLED wraps scr with the default small font in white.
func NewOLED(scr Screen) *OLED {
	return &OLED{scr: scr, font: &tinyfont.Org01, ink: White}
}

// SetFont swaps the font used for later lines.
func (o *OLED) SetFont(f tinyfont.Fonter) { o.font = f }

// Clear blanks the framebuffer and homes the cursor.
func (o *OLED) Clear() {
	o.scr.ClearBuffer()
	o.x, o.y = 0, 0
}

// SetCursor moves the top-left corner of the next line.
func (o *OLED) SetCursor(x, y int16) { o.x, o.y = x, y }

// Cursor returns the current cursor position.
func (o *OLED) Cursor() (x, y int16) { return o.x, o.y }

// WriteLine draws text at the cursor and advances one line. Text that
// runs past the bottom edge is clipped by the screen.
func (o *OLED) WriteLine(text string) {
	// tinyfont positions glyphs on their baseline.
	tinyfont.WriteLine(o.scr, o.font, o.x, o.y+LineHeight-2, text, o.ink)
	o.x = 0
	o.y += LineHeight
}

// Flush pushes the framebuffer to the panel.
func (o *OLED) Flush() error { return o.scr.Display() }
