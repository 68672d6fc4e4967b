//go:build rp2040 || rp2350

// cmd/pico-envmon is the monitor firmware for the Raspberry Pi Pico.
package main

import (
	"context"
	"machine"
	"time"

	"envmon-go/drivers/hcsr04"
	"envmon-go/errcode"
	"envmon-go/inference"
	"envmon-go/inference/model"
	"envmon-go/internal/platform"
	"envmon-go/services/display"
	"envmon-go/services/monitor"
	"envmon-go/x/logx"
	"envmon-go/x/timex"
)

// Statically allocated; the engine never touches the heap after Init.
var (
	arena  inference.Arena
	engine inference.Engine
)

func main() {
	// Give a serial console time to attach.
	time.Sleep(1500 * time.Millisecond)

	log := logx.NewSerial(platform.OpenUART(logBaud, uartTX, uartRX))
	log.Infof("envmon boot")

	clk := timex.NewMono()
	trig, echo := platform.SonarPins(sonarTrig, sonarEcho)
	sonar := hcsr04.New(trig, echo, clk)
	sonar.Configure(hcsr04.Config{Log: log})

	bus := machine.I2C0
	screen := platform.NewSSD1306(bus)
	light := platform.NewBH1750(bus)

	ctl := monitor.New(monitor.DefaultConfig(), monitor.Deps{
		Distance: sonar,
		Light:    light,
		Engine:   &engine,
		Display:  display.NewOLED(screen),
		Log:      log,
		Clock:    clk,
		Power:    platform.Power{},
	})

	err := ctl.Boot(
		monitor.BootStep{Name: "i2c", Run: func() error {
			return errcode.Wrap(errcode.SensorInit, "i2c0", platform.ConfigureI2C(bus, i2cSDA, i2cSCL))
		}},
		monitor.BootStep{Name: "ssd1306", Run: func() error { return platform.ConfigureSSD1306(screen) }},
		monitor.BootStep{Name: "bh1750", Run: light.Configure},
		monitor.BootStep{Name: "model", Run: func() error {
			return platform.LoadModel(&engine, model.Brightness, arena[:])
		}},
	)
	if err != nil {
		platform.Park()
	}

	// Deep sleep resets the chip, so Run only comes back on a fault.
	err = ctl.Run(context.Background())
	log.Errorf("loop stopped: %v", err)
	platform.Park()
}
