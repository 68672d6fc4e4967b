//go:build !rp2040 && !rp2350

package platform

import (
	"math"
	"sync"
	"time"

	"envmon-go/drivers/hcsr04"
)

// ----------------------------- I²C (host) ------------------------------------

// HostI2C implements tinygo drivers.I2C for host-side runs. Reads are filled
// by Reply when set; Err, when set, fails every transfer.
type HostI2C struct {
	mu     sync.Mutex
	Err    error
	Reply  func(addr uint16, r []byte)
	Writes int
	LastTx struct {
		Addr uint16
		W    []byte
		Rn   int
	}
}

func (h *HostI2C) Tx(addr uint16, w, r []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.LastTx.Addr = addr
	h.LastTx.W = append([]byte(nil), w...)
	h.LastTx.Rn = len(r)
	if h.Err != nil {
		return h.Err
	}
	if len(w) > 0 {
		h.Writes++
	}
	if len(r) > 0 && h.Reply != nil {
		h.Reply(addr, r)
	}
	return nil
}

// ----------------------------- HC-SR04 (host) --------------------------------

// echoLatency is the gap between the trigger falling edge and the echo
// rising edge on a real module.
const echoLatency = 150

// SonarSim emulates an HC-SR04 on a virtual microsecond clock. Every Micros
// read costs one microsecond, so busy loops make progress.
type SonarSim struct {
	mu sync.Mutex

	now      uint64
	trig     bool
	echoFrom uint64
	echoTo   uint64

	// Distance returns the target distance in cm for the nth ping. NaN or a
	// value <= 0 means no echo comes back.
	Distance func(ping int) float32
	pings    int
}

// NewSonarSim returns a simulator that answers pings with distance.
func NewSonarSim(distance func(ping int) float32) *SonarSim {
	return &SonarSim{Distance: distance}
}

// Trig is the trigger line (driven by the driver).
func (s *SonarSim) Trig() hcsr04.Pin { return simTrig{s} }

// Echo is the echo line (read by the driver).
func (s *SonarSim) Echo() hcsr04.Pin { return simEcho{s} }

func (s *SonarSim) Micros() uint64 {
	s.mu.Lock()
	s.now++
	n := s.now
	s.mu.Unlock()
	return n
}

func (s *SonarSim) DelayMicros(us uint32) {
	s.mu.Lock()
	s.now += uint64(us)
	s.mu.Unlock()
}

// Pings returns how many trigger pulses have been seen.
func (s *SonarSim) Pings() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pings
}

func (s *SonarSim) setTrig(level bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.trig
	s.trig = level
	if !(old && !level) {
		return
	}
	// Falling edge: the module sends its burst and raises echo for the
	// round-trip time.
	var d float32
	if s.Distance != nil {
		d = s.Distance(s.pings)
	}
	s.pings++
	if d <= 0 || math.IsNaN(float64(d)) || math.IsInf(float64(d), 0) {
		s.echoFrom, s.echoTo = 0, 0
		return
	}
	s.echoFrom = s.now + echoLatency
	s.echoTo = s.echoFrom + uint64(2*d/hcsr04.SpeedOfSound)
}

func (s *SonarSim) echo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.echoTo != 0 && s.now >= s.echoFrom && s.now < s.echoTo
}

type simTrig struct{ s *SonarSim }

func (p simTrig) Set(level bool) { p.s.setTrig(level) }
func (p simTrig) Get() bool {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	return p.s.trig
}

type simEcho struct{ s *SonarSim }

func (p simEcho) Set(bool)  {}
func (p simEcho) Get() bool { return p.s.echo() }

// ----------------------------- light (host) ----------------------------------

// LightScript is a monitor.LightSensor driven by a function of the read count.
type LightScript struct {
	Lux   func(n int) (float32, error)
	reads int
}

func (l *LightScript) ReadLux() (float32, error) {
	n := l.reads
	l.reads++
	if l.Lux == nil {
		return 0, nil
	}
	return l.Lux(n)
}

// ----------------------------- time and power (host) -------------------------

// VirtualClock is a monitor.Clock that only moves when slept. Pace, when set,
// also sleeps that fraction of each delay in real time.
type VirtualClock struct {
	mu   sync.Mutex
	now  time.Time
	Pace float64
}

func NewVirtualClock(start time.Time) *VirtualClock { return &VirtualClock{now: start} }

func (c *VirtualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *VirtualClock) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	if c.Pace > 0 {
		time.Sleep(time.Duration(float64(d) * c.Pace))
	}
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// SimPower emulates the watchdog and sleep modes against a clock. A gap
// between feeds longer than the armed timeout is recorded as a watchdog
// reset.
type SimPower struct {
	Clock interface {
		Now() time.Time
		Sleep(time.Duration)
	}

	timeout  time.Duration
	lastFeed time.Time
	armed    bool

	Feeds       int
	LightSleeps int
	Slept       time.Duration
	DeepSleeps  int
	Wake        time.Duration
	Resets      int
	MHz         uint32
}

func (p *SimPower) ArmWatchdog(timeout time.Duration) error {
	p.timeout = timeout
	p.lastFeed = p.Clock.Now()
	p.armed = true
	return nil
}

func (p *SimPower) FeedWatchdog() {
	now := p.Clock.Now()
	if p.armed && now.Sub(p.lastFeed) > p.timeout {
		p.Resets++
	}
	p.lastFeed = now
	p.Feeds++
}

func (p *SimPower) LightSleep(d time.Duration) {
	p.LightSleeps++
	p.Slept += d
	p.Clock.Sleep(d)
}

// DeepSleep advances the clock by the wake interval and returns; the caller
// performs the cold restart.
func (p *SimPower) DeepSleep(wake time.Duration) error {
	p.DeepSleeps++
	p.Wake = wake
	p.armed = false
	p.Clock.Sleep(wake)
	return nil
}

func (p *SimPower) SetCPUFrequency(mhz uint32) error {
	p.MHz = mhz
	return nil
}

// Starved reports whether the watchdog would have fired by now.
func (p *SimPower) Starved() bool {
	return p.armed && p.Clock.Now().Sub(p.lastFeed) > p.timeout
}
