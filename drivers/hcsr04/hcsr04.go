// Package hcsr04 provides a redundant pulse-echo driver for the HC-SR04
// ultrasonic ranging sensor.
//
//	d := hcsr04.New(trig, echo, clk)
//	d.Configure()
//	cm := d.Measure() // hcsr04.Invalid when every attempt timed out
//
// Each measurement fires ReadingsCount independent trigger pulses and averages
// the attempts that produced an echo. Timed-out attempts are dropped, never
// averaged in as zero.
//
// Trigger timing is microsecond-exact: the driver busy-waits on Clock rather
// than sleeping, so the caller must own both pins exclusively for the
// duration of Measure.
package hcsr04

import (
	"time"
)

// Invalid is returned by Measure when no attempt produced an echo.
const Invalid float32 = -1

// SpeedOfSound in centimetres per microsecond (343 m/s).
const SpeedOfSound = 0.0343

// Defaults.
const (
	DefaultReadingsCount = 3
	DefaultTimeout       = 25 * time.Millisecond
	DefaultSettleUS      = 2
	DefaultPulseUS       = 10

	maxReadings = 8
)

// Pin is the subset of machine.Pin the driver needs.
type Pin interface {
	Set(level bool)
	Get() bool
}

// Clock is a free-running microsecond counter with a busy-wait delay.
type Clock interface {
	Micros() uint64
	DelayMicros(us uint32)
}

// Logger receives timeout diagnostics. Optional.
type Logger interface {
	Warnf(format string, args ...any)
}

// Config controls non-hardware behaviour. All fields are optional.
type Config struct {
	// ReadingsCount is the number of attempts per Measure. Default 3, max 8.
	ReadingsCount int
	// Timeout bounds each echo wait. Default 25 ms.
	Timeout time.Duration
	// SettleUS is the low time before the trigger pulse. Default 2 us.
	SettleUS uint32
	// PulseUS is the trigger pulse width. Default 10 us.
	PulseUS uint32
	// Log, if set, is told about each timed-out attempt.
	Log Logger
}

// Device drives one HC-SR04.
type Device struct {
	trig Pin
	echo Pin
	clk  Clock

	cfg       Config
	timeoutUS uint64

	durs     [maxReadings]uint32 // last attempt durations, 0 = timeout
	timeouts int
}

// New creates a Device with the default config and parks the trigger line
// low. The pins must already be configured as output (trigger) and input
// (echo).
func New(trig, echo Pin, clk Clock) *Device {
	d := &Device{trig: trig, echo: echo, clk: clk}
	d.Configure()
	return d
}

// Configure applies optional config and parks the trigger line low.
func (d *Device) Configure(cfgs ...Config) {
	var c Config
	if len(cfgs) > 0 {
		c = cfgs[0]
	}
	if c.ReadingsCount <= 0 {
		c.ReadingsCount = DefaultReadingsCount
	}
	if c.ReadingsCount > maxReadings {
		c.ReadingsCount = maxReadings
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.SettleUS == 0 {
		c.SettleUS = DefaultSettleUS
	}
	if c.PulseUS == 0 {
		c.PulseUS = DefaultPulseUS
	}
	d.cfg = c
	d.timeoutUS = uint64(c.Timeout / time.Microsecond)
	d.trig.Set(false)
}

// Measure fires ReadingsCount pulses and returns the mean distance in cm of
// the attempts that saw an echo, or Invalid.
func (d *Device) Measure() float32 {
	n := d.cfg.ReadingsCount
	d.timeouts = 0
	for i := 0; i < n; i++ {
		dur := d.ReadPulse()
		d.durs[i] = dur
		if dur == 0 {
			d.timeouts++
			if d.cfg.Log != nil {
				d.cfg.Log.Warnf("distance sensor timeout")
			}
		}
	}
	return Average(d.durs[:n])
}

// ReadPulse fires one trigger pulse and returns the echo high time in
// microseconds, or 0 on timeout.
func (d *Device) ReadPulse() uint32 {
	d.trig.Set(false)
	d.clk.DelayMicros(d.cfg.SettleUS)
	d.trig.Set(true)
	d.clk.DelayMicros(d.cfg.PulseUS)
	d.trig.Set(false)
	return d.pulseIn()
}

// pulseIn waits for a high pulse on echo and times it. The whole wait,
// including the pulse itself, is bounded by the timeout.
func (d *Device) pulseIn() uint32 {
	start := d.clk.Micros()
	for d.echo.Get() {
		if d.clk.Micros()-start >= d.timeoutUS {
			return 0
		}
	}
	for !d.echo.Get() {
		if d.clk.Micros()-start >= d.timeoutUS {
			return 0
		}
	}
	rise := d.clk.Micros()
	for d.echo.Get() {
		if d.clk.Micros()-start >= d.timeoutUS {
			return 0
		}
	}
	return uint32(d.clk.Micros() - rise)
}

// Timeouts returns how many attempts of the last Measure timed out.
func (d *Device) Timeouts() int { return d.timeouts }

// Durations returns the raw echo times of the last Measure (0 = timeout).
func (d *Device) Durations() []uint32 { return d.durs[:d.cfg.ReadingsCount] }

// DistanceCM converts a round-trip echo time to a one-way distance.
func DistanceCM(durationUS uint32) float32 {
	return float32(durationUS) * SpeedOfSound / 2
}

// Average returns the mean distance of the non-zero durations, or Invalid
// when there are none.
func Average(durationsUS []uint32) float32 {
	var sum float32
	valid := 0
	for _, us := range durationsUS {
		if us == 0 {
			continue
		}
		sum += DistanceCM(us)
		valid++
	}
	if valid == 0 {
		return Invalid
	}
	return sum / float32(valid)
}
