package logx

import (
	"bytes"
	"testing"
)

func TestSerialPrefixesAndTerminatesLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewSerial(&buf)
	l.Infof("Lux: %.2f", float32(12.5))
	l.Warnf("distance sensor timeout")
	l.Errorf("Inference failed!")

	want := "Info: Lux: 12.50\r\nWarn: distance sensor timeout\r\nError: Inference failed!\r\n"
	if got := buf.String(); got != want {
		t.Fatalf("serial output = %q, want %q", got, want)
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Warnf("invalid %s reading", "lux")
	if !r.Contains("invalid lux reading") {
		t.Fatalf("Recorder lines = %q", r.Lines())
	}
	if got := r.Lines()[0]; got != "warn: invalid lux reading" {
		t.Fatalf("line = %q", got)
	}
	if r.Contains("nope") {
		t.Fatalf("Contains matched a missing line")
	}
}
