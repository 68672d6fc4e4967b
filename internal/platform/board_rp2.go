//go:build rp2040 || rp2350

package platform

import (
	"machine"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"envmon-go/errcode"
	"envmon-go/x/mathx"
)

// OpenUART configures UART0 for the diagnostics log.
func OpenUART(baud uint32, tx, rx machine.Pin) *uartx.UART {
	u := uartx.UART0
	_ = u.Configure(uartx.UARTConfig{
		BaudRate: baud,
		TX:       tx,
		RX:       rx,
	})
	return u
}

// ConfigureI2C sets b up at 400 kHz on the given pins.
func ConfigureI2C(b *machine.I2C, sda, scl machine.Pin) error {
	return b.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       sda,
		SCL:       scl,
	})
}

// SonarPins configures the HC-SR04 lines. machine.Pin satisfies hcsr04.Pin.
func SonarPins(trig, echo machine.Pin) (machine.Pin, machine.Pin) {
	trig.Configure(machine.PinConfig{Mode: machine.PinOutput})
	echo.Configure(machine.PinConfig{Mode: machine.PinInput})
	trig.Low()
	return trig, echo
}

// Power drives the RP2 watchdog and sleep modes.
type Power struct{}

// ArmWatchdog starts the hardware watchdog. The RP2 counter tops out at
// machine.WatchdogMaxTimeout, so longer timeouts are clamped.
func (Power) ArmWatchdog(timeout time.Duration) error {
	ms := mathx.Clamp(timeout.Milliseconds(), 1, int64(machine.WatchdogMaxTimeout))
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: uint32(ms)}); err != nil {
		return err
	}
	return machine.Watchdog.Start()
}

func (Power) FeedWatchdog() { machine.Watchdog.Update() }

// LightSleep waits with the core idle; the scheduler sleeps until the next
// timer event.
func (Power) LightSleep(d time.Duration) { time.Sleep(d) }

// DeepSleep idles for the wake interval and then resets the chip, so the
// next boot is a cold start. It does not return.
func (Power) DeepSleep(wake time.Duration) error {
	machine.Watchdog.Update()
	time.Sleep(wake)
	machine.CPUReset()
	return errcode.DeepSleep
}

// SetCPUFrequency is not exposed by the RP2 machine package.
func (Power) SetCPUFrequency(mhz uint32) error { return errcode.Unsupported }

// Park blocks forever without feeding the watchdog.
func Park() { select {} }
