// Package monitor is the sampling, inference and power control loop.
//
// One Controller is created at startup and driven by a single loop:
//
//	c := monitor.New(monitor.DefaultConfig(), deps)
//	if err := c.Boot(steps...); err != nil {
//		// Halted: the watchdog is no longer fed and will reset the device.
//	}
//	err := c.Run(ctx)
//
// Every pass feeds the watchdog, then either samples (light, distance,
// validate, normalize, infer, present) or light-sleeps until the next cycle
// is due. A validated distance beyond the far threshold ends the boot in deep
// sleep.
package monitor

import (
	"context"
	"errors"
	"math"
	"time"

	"envmon-go/errcode"
	"envmon-go/services/display"
	"envmon-go/x/logx"
)

// DistanceSensor returns a distance in cm or a negative sentinel.
type DistanceSensor interface {
	Measure() float32
}

// LightSensor returns ambient illuminance in lux.
type LightSensor interface {
	ReadLux() (float32, error)
}

// Inferencer is the brightness model, already initialised.
type Inferencer interface {
	Ready() bool
	SetInputs(normLux, normDist float32)
	Run() error
	Output() float32
}

// Clock is wall time plus a blocking delay.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// Power covers the watchdog and the sleep modes of the board.
type Power interface {
	ArmWatchdog(timeout time.Duration) error
	FeedWatchdog()
	LightSleep(d time.Duration)
	// DeepSleep arms the timer wake and powers down. On hardware it does not
	// return; the board cold-starts on wake.
	DeepSleep(wake time.Duration) error
	SetCPUFrequency(mhz uint32) error
}

// Deps are the collaborators owned by the loop.
type Deps struct {
	Distance DistanceSensor
	Light    LightSensor
	Engine   Inferencer
	Display  display.Sink
	Log      logx.Logger
	Clock    Clock
	Power    Power
}

// State is the power state of the loop.
type State uint8

const (
	Booting State = iota
	ActiveWait
	Sampling
	LightSleep
	DeepSleep
	Halted
)

func (s State) String() string {
	switch s {
	case Booting:
		return "booting"
	case ActiveWait:
		return "active_wait"
	case Sampling:
		return "sampling"
	case LightSleep:
		return "light_sleep"
	case DeepSleep:
		return "deep_sleep"
	case Halted:
		return "halted"
	default:
		return "unknown"
	}
}

// ErrDeepSleep is returned by Run when deep sleep returned control, which
// only happens off-device.
const ErrDeepSleep = errcode.DeepSleep

// SleepNotice is shown before deep sleep.
const SleepNotice = "Entering sleep mode..."

// BootStep is one named startup action. A failing step halts the device.
type BootStep struct {
	Name string
	Run  func() error
}

// Cycle is the outcome of the most recent sampling pass.
type Cycle struct {
	At         time.Time
	Raw        RawReading
	Valid      ValidatedReading
	Input      ModelInput
	Brightness float32
	Err        error // inference failure, nil otherwise
	Far        bool
}

// Controller owns the cycle timer and power state. It is not safe for
// concurrent use.
type Controller struct {
	cfg Config
	d   Deps

	state     State
	lastCycle time.Time
	cycled    bool
	last      Cycle

	feeds   uint64
	haltErr error
}

// New returns a controller in the Booting state.
func New(cfg Config, d Deps) *Controller {
	if d.Log == nil {
		d.Log = logx.Nop{}
	}
	return &Controller{cfg: cfg.withDefaults(), d: d}
}

func (c *Controller) Config() Config { return c.cfg }
func (c *Controller) State() State   { return c.state }

// Last returns the most recent sampling pass.
func (c *Controller) Last() Cycle { return c.last }

// Feeds returns how many times the watchdog has been fed.
func (c *Controller) Feeds() uint64 { return c.feeds }

// Err returns the fatal error once Halted.
func (c *Controller) Err() error { return c.haltErr }

// Boot arms the watchdog, runs the startup steps in order, checks the engine
// and downclocks the CPU. Any failure halts.
func (c *Controller) Boot(steps ...BootStep) error {
	if c.state != Booting {
		return &errcode.E{C: errcode.Busy, Op: "boot", Msg: "already booted"}
	}
	if err := c.d.Power.ArmWatchdog(c.cfg.WatchdogTimeout); err != nil {
		c.d.Log.Warnf("watchdog: %v", err)
	}
	for _, s := range steps {
		if err := s.Run(); err != nil {
			return c.Halt(s.Name, err)
		}
		c.d.Power.FeedWatchdog()
	}
	if c.d.Engine == nil || !c.d.Engine.Ready() {
		return c.Halt("inference", errcode.EngineNotReady)
	}
	c.d.Log.Infof("Model loaded and ready!")
	c.d.Log.Infof("Setup complete!")

	if err := c.d.Power.SetCPUFrequency(c.cfg.CPUMHz); err != nil {
		c.d.Log.Warnf("cpu clock %d MHz: %v", c.cfg.CPUMHz, err)
	}
	c.state = ActiveWait
	return nil
}

// Halt records a fatal fault and stops the loop. The watchdog is never fed
// again, so on hardware it resets the device.
func (c *Controller) Halt(op string, err error) error {
	var e *errcode.E
	switch {
	case errors.As(err, &e):
	case err == nil:
		err = &errcode.E{C: errcode.Halted, Op: op}
	default:
		if code, ok := err.(errcode.Code); ok {
			err = &errcode.E{C: code, Op: op}
		} else {
			err = &errcode.E{C: errcode.Halted, Op: op, Err: err}
		}
	}
	c.d.Log.Errorf("%v", err)
	c.haltErr = err
	c.state = Halted
	return err
}

// Step runs one pass of the loop and returns the branch it took: Sampling,
// LightSleep, DeepSleep or Halted.
func (c *Controller) Step() State {
	switch c.state {
	case Halted, DeepSleep:
		return c.state
	case Booting:
		c.Halt("step", &errcode.E{C: errcode.Halted, Op: "step", Msg: "not booted"})
		return Halted
	}

	c.d.Power.FeedWatchdog()
	c.feeds++

	now := c.d.Clock.Now()
	if c.cycled {
		if wait := c.cfg.Cadence - now.Sub(c.lastCycle); wait > 0 {
			c.state = LightSleep
			c.d.Power.LightSleep(wait)
			c.state = ActiveWait
			return LightSleep
		}
	}

	c.state = Sampling
	if c.sample(now) {
		return DeepSleep
	}
	c.state = ActiveWait
	return Sampling
}

// Run loops Step until deep sleep, a halt or ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch c.Step() {
		case DeepSleep:
			return ErrDeepSleep
		case Halted:
			return c.haltErr
		}
	}
}

// sample runs one cycle and reports whether it ended in deep sleep.
func (c *Controller) sample(now time.Time) bool {
	cyc := Cycle{At: now}

	lux, err := c.d.Light.ReadLux()
	if err != nil {
		c.d.Log.Warnf("light sensor: %v", err)
		lux = float32(math.NaN())
	}
	cyc.Raw = RawReading{Lux: lux, DistanceCM: c.d.Distance.Measure()}

	cyc.Valid = c.cfg.Sanitize(cyc.Raw)
	if !cyc.Valid.LuxOK {
		c.d.Log.Warnf("Invalid lux reading!")
	}
	if !cyc.Valid.DistanceOK {
		c.d.Log.Warnf("Invalid distance reading!")
	}
	cyc.Input = Normalize(cyc.Valid)
	cyc.Far = cyc.Valid.DistanceCM > c.cfg.FarThresholdCM

	c.d.Engine.SetInputs(cyc.Input.NormLux, cyc.Input.NormDist)
	if err := c.d.Engine.Run(); err != nil {
		c.d.Log.Errorf("Inference failed!")
		cyc.Err = errcode.Wrap(errcode.InferenceFailed, "run", err)
		c.last = cyc
		if cyc.Far {
			c.deepSleep()
			return true
		}
		return false
	}
	cyc.Brightness = c.d.Engine.Output()
	c.last = cyc

	c.present(cyc)
	c.d.Log.Infof("Lux: %.2f, Dist: %.2f cm, Brightness: %.4f",
		cyc.Valid.Lux, cyc.Valid.DistanceCM, cyc.Brightness)

	if cyc.Far {
		c.deepSleep()
		return true
	}
	c.lastCycle = now
	c.cycled = true
	return false
}

func (c *Controller) present(cyc Cycle) {
	s := c.d.Display
	s.Clear()
	s.SetCursor(0, 0)
	s.WriteLine("Lux: " + ftoa(cyc.Valid.Lux, 2))
	s.WriteLine("Distance: " + ftoa(cyc.Valid.DistanceCM, 2) + " cm")
	s.WriteLine("Brightness: " + ftoa(cyc.Brightness, 4))
	if err := s.Flush(); err != nil {
		c.d.Log.Warnf("display: %v", err)
	}
}

// deepSleep shows the notice on top of whatever the panel holds, lets it
// settle and powers down. It returns only off-device.
func (c *Controller) deepSleep() {
	c.d.Display.WriteLine(SleepNotice)
	if err := c.d.Display.Flush(); err != nil {
		c.d.Log.Warnf("display: %v", err)
	}
	c.d.Clock.Sleep(c.cfg.SettleDelay)

	c.state = DeepSleep
	c.d.Log.Infof("deep sleep, wake in %dms", c.cfg.WakeInterval.Milliseconds())
	if err := c.d.Power.DeepSleep(c.cfg.WakeInterval); err != nil {
		c.d.Log.Errorf("deep sleep: %v", err)
	}
}
