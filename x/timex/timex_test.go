package timex

import (
	"testing"
	"time"
)

func TestMonoDelayIsAtLeastRequested(t *testing.T) {
	m := NewMono()
	start := time.Now()
	m.DelayMicros(300)
	if el := time.Since(start); el < 300*time.Microsecond {
		t.Fatalf("DelayMicros(300) returned after %v", el)
	}
}

func TestMonoMicrosNonDecreasing(t *testing.T) {
	m := NewMono()
	prev := m.Micros()
	for i := 0; i < 1000; i++ {
		now := m.Micros()
		if now < prev {
			t.Fatalf("Micros went backwards: %d -> %d", prev, now)
		}
		prev = now
	}
}
