package fmtx

import (
	"bytes"
	"errors"
	"testing"
)

type code string

func (c code) String() string { return string(c) }

func TestSprintfVerbs(t *testing.T) {
	for _, c := range []struct {
		fmt  string
		args []any
		want string
	}{
		{"hello %s", []any{"world"}, "hello world"},
		{"num %d hex %x", []any{255, 255}, "num 255 hex ff"},
		{"bool %t %t", []any{true, false}, "bool true false"},
		{"literal %%", nil, "literal %"},
		{"v=%v", []any{123}, "v=123"},
		{"trim: %.3s", []any{"abcdef"}, "trim: abc"},
		{"Lux: %.2f", []any{float32(50)}, "Lux: 50.00"},
		{"Brightness: %.4f", []any{0.59}, "Brightness: 0.5900"},
		{"Dist: %.2f cm", []any{float32(-1)}, "Dist: -1.00 cm"},
		{"[%6.1f]", []any{3.14}, "[   3.1]"},
		{"cpu clock %d MHz: %v", []any{uint32(80), errors.New("unsupported")}, "cpu clock 80 MHz: unsupported"},
		{"state %s", []any{code("halted")}, "state halted"},
	} {
		if got := Sprintf(c.fmt, c.args...); got != c.want {
			t.Fatalf("Sprintf(%q, ...) = %q, want %q", c.fmt, got, c.want)
		}
	}
}

func TestFprintf(t *testing.T) {
	var buf bytes.Buffer
	n, err := Fprintf(&buf, "hi %s", "there")
	if err != nil {
		t.Fatalf("Fprintf error: %v", err)
	}
	if got, want := buf.String(), "hi there"; got != want || n != len(want) {
		t.Fatalf("Fprintf wrote %q (%d), want %q", got, n, want)
	}
}
