// Package logx is the diagnostics line sink used by the control loop.
// Output is fire-and-forget; nothing in the firmware reads it back.
package logx

import (
	"io"
	"strings"
	"sync"

	"envmon-go/x/fmtx"
)

// Logger is satisfied by *zap.SugaredLogger as well as the serial writer below.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Serial writes "Info: ..." style lines to w (usually a UART).
type Serial struct {
	mu sync.Mutex
	w  io.Writer
}

func NewSerial(w io.Writer) *Serial { return &Serial{w: w} }

func (s *Serial) Infof(format string, args ...any)  { s.line("Info: ", format, args) }
func (s *Serial) Warnf(format string, args ...any)  { s.line("Warn: ", format, args) }
func (s *Serial) Errorf(format string, args ...any) { s.line("Error: ", format, args) }

func (s *Serial) line(prefix, format string, args []any) {
	msg := fmtx.Sprintf(format, args...)
	s.mu.Lock()
	_, _ = io.WriteString(s.w, prefix+msg+"\r\n")
	s.mu.Unlock()
}

// Nop drops everything.
type Nop struct{}

func (Nop) Infof(string, ...any)  {}
func (Nop) Warnf(string, ...any)  {}
func (Nop) Errorf(string, ...any) {}

// Recorder keeps formatted lines in memory, prefixed with their level.
type Recorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *Recorder) Infof(format string, args ...any)  { r.add("info", format, args) }
func (r *Recorder) Warnf(format string, args ...any)  { r.add("warn", format, args) }
func (r *Recorder) Errorf(format string, args ...any) { r.add("error", format, args) }

func (r *Recorder) add(level, format string, args []any) {
	r.mu.Lock()
	r.lines = append(r.lines, level+": "+fmtx.Sprintf(format, args...))
	r.mu.Unlock()
}

// Lines returns a copy of everything recorded so far.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

// Contains reports whether any recorded line contains sub.
func (r *Recorder) Contains(sub string) bool {
	for _, l := range r.Lines() {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}
