//go:build !rp2040 && !rp2350

package display

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorInk    = lipgloss.Color("45")
	colorBorder = lipgloss.Color("238")
	colorTitle  = lipgloss.Color("243")
)

// Panel emulates the OLED in a terminal: Rows lines of Cols characters in a
// bordered box, redrawn to w on each Flush.
type Panel struct {
	w     io.Writer
	title string

	rows [Rows]string
	row  int
	col  int
}

// NewPanel returns a panel that writes frames to w.
func NewPanel(w io.Writer, title string) *Panel {
	return &Panel{w: w, title: title}
}

func (p *Panel) Clear() {
	p.rows = [Rows]string{}
	p.row, p.col = 0, 0
}

// SetCursor maps pixel coordinates onto the character grid.
func (p *Panel) SetCursor(x, y int16) {
	p.col = int(x) / CharWidth
	p.row = int(y) / LineHeight
}

func (p *Panel) WriteLine(text string) {
	if p.row < 0 || p.row >= Rows {
		return
	}
	line := strings.Repeat(" ", max(p.col, 0)) + text
	if len(line) > Cols {
		line = line[:Cols]
	}
	p.rows[p.row] = line
	p.row++
	p.col = 0
}

func (p *Panel) Flush() error {
	_, err := io.WriteString(p.w, p.Render()+"\n")
	return err
}

// Render returns the current frame as a bordered box.
func (p *Panel) Render() string {
	ink := lipgloss.NewStyle().Foreground(colorInk).Width(Cols)
	lines := make([]string, 0, Rows)
	for _, r := range p.rows {
		lines = append(lines, ink.Render(r))
	}
	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Render(body)
	if p.title == "" {
		return box
	}
	title := lipgloss.NewStyle().Foreground(colorTitle).Render(p.title)
	return lipgloss.JoinVertical(lipgloss.Left, title, box)
}
