// Package timex holds the monotonic clock shared by the device and the host
// runner.
package timex

import "time"

// Mono is a monotonic clock anchored at its creation. It serves both the
// microsecond pulse timing and the millisecond cycle cadence.
type Mono struct{ start time.Time }

// NewMono starts a clock at zero.
func NewMono() Mono { return Mono{start: time.Now()} }

// Micros returns microseconds since the clock started.
func (m Mono) Micros() uint64 { return uint64(time.Since(m.start) / time.Microsecond) }

// DelayMicros busy-waits for us microseconds. It never yields, so the delay
// is not stretched by the scheduler.
func (m Mono) DelayMicros(us uint32) {
	end := m.Micros() + uint64(us)
	for m.Micros() < end {
	}
}

// Now returns the current time.
func (Mono) Now() time.Time { return time.Now() }

// Sleep blocks for d.
func (Mono) Sleep(d time.Duration) { time.Sleep(d) }
