// Package platform wires the monitor to a board: real peripherals on the
// RP2040, simulated ones on the host.
package platform

import (
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/bh1750"

	"envmon-go/errcode"
)

// ----------------------------- BH1750 ----------------------------------------

// BH1750 adapts the tinygo bh1750 driver to monitor.LightSensor.
type BH1750 struct {
	bus drivers.I2C
	dev bh1750.Device
	buf [2]byte
}

func NewBH1750(bus drivers.I2C) *BH1750 {
	return &BH1750{bus: bus, dev: bh1750.New(bus)}
}

// Configure powers the sensor on and selects continuous high-resolution
// mode. The driver does not report bus errors, so presence is probed with
// the power-on command first.
func (b *BH1750) Configure() error {
	if err := b.bus.Tx(b.dev.Address, []byte{bh1750.POWER_ON}, nil); err != nil {
		return errcode.Wrap(errcode.SensorInit, "bh1750", err)
	}
	b.dev.Configure()
	return nil
}

// ReadLux returns illuminance in lux. The measurement is read off the bus
// here rather than through the driver, which drops transfer errors.
func (b *BH1750) ReadLux() (float32, error) {
	if err := b.bus.Tx(b.dev.Address, nil, b.buf[:]); err != nil {
		return 0, err
	}
	raw := uint32(b.buf[0])<<8 | uint32(b.buf[1])
	// Same scaling as bh1750.Illuminance in high resolution mode, in mlx.
	mlx := 250 * bh1750.HIGH_RES * raw / 3
	return float32(mlx) / 1000, nil
}

// ----------------------------- display ---------------------------------------

// OLEDAddress is the common 0x3C strap of 128x64 modules; the driver
// defaults to 0x3D.
const OLEDAddress = 0x3C

// Panel is the part of a framebuffer display used at startup.
type Panel interface {
	ClearBuffer()
	Display() error
}

// InitPanel blanks a configured panel and pushes the frame. The push is the
// first transfer that reports errors, so a missing panel fails here.
func InitPanel(p Panel, op string) error {
	p.ClearBuffer()
	if err := p.Display(); err != nil {
		return errcode.Wrap(errcode.DisplayInit, op, err)
	}
	return nil
}
