package monitor

import "time"

// Config holds the build-time constants of the control loop. Zero fields take
// the defaults below.
type Config struct {
	Cadence         time.Duration // minimum spacing of sampling cycles
	WatchdogTimeout time.Duration
	WakeInterval    time.Duration // deep-sleep timer wake
	SettleDelay     time.Duration // notice visible before deep sleep
	FarThresholdCM  float32       // validated distance above this => deep sleep

	LuxMin, LuxMax, LuxFallback    float32
	DistMin, DistMax, DistFallback float32

	CPUMHz uint32
}

// Defaults.
const (
	DefaultCadence         = 500 * time.Millisecond
	DefaultWatchdogTimeout = 30 * time.Second
	DefaultWakeInterval    = 5 * time.Second
	DefaultSettleDelay     = 1 * time.Second
	DefaultFarThresholdCM  = 300

	DefaultLuxMin      = 0
	DefaultLuxMax      = 100000
	DefaultLuxFallback = 0

	DefaultDistMin      = 2
	DefaultDistMax      = 400
	DefaultDistFallback = 400

	DefaultCPUMHz = 80
)

// DefaultConfig returns the firmware constants.
func DefaultConfig() Config {
	return Config{
		Cadence:         DefaultCadence,
		WatchdogTimeout: DefaultWatchdogTimeout,
		WakeInterval:    DefaultWakeInterval,
		SettleDelay:     DefaultSettleDelay,
		FarThresholdCM:  DefaultFarThresholdCM,
		LuxMin:          DefaultLuxMin,
		LuxMax:          DefaultLuxMax,
		LuxFallback:     DefaultLuxFallback,
		DistMin:         DefaultDistMin,
		DistMax:         DefaultDistMax,
		DistFallback:    DefaultDistFallback,
		CPUMHz:          DefaultCPUMHz,
	}
}

// withDefaults fills zero durations and thresholds. Range bounds are taken as
// given once any of them is set, since 0 is a legitimate bound.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Cadence <= 0 {
		c.Cadence = d.Cadence
	}
	if c.WatchdogTimeout <= 0 {
		c.WatchdogTimeout = d.WatchdogTimeout
	}
	if c.WakeInterval <= 0 {
		c.WakeInterval = d.WakeInterval
	}
	if c.SettleDelay <= 0 {
		c.SettleDelay = d.SettleDelay
	}
	if c.FarThresholdCM == 0 {
		c.FarThresholdCM = d.FarThresholdCM
	}
	if c.LuxMin == 0 && c.LuxMax == 0 && c.LuxFallback == 0 {
		c.LuxMin, c.LuxMax, c.LuxFallback = d.LuxMin, d.LuxMax, d.LuxFallback
	}
	if c.DistMin == 0 && c.DistMax == 0 && c.DistFallback == 0 {
		c.DistMin, c.DistMax, c.DistFallback = d.DistMin, d.DistMax, d.DistFallback
	}
	if c.CPUMHz == 0 {
		c.CPUMHz = d.CPUMHz
	}
	return c
}
