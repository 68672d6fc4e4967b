//go:build rp2040 || rp2350

package platform

import (
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ssd1306"
)

// OLEDConfig is the 128x64 I2C module.
var OLEDConfig = ssd1306.Config{
	Width:    128,
	Height:   64,
	Address:  OLEDAddress,
	VccState: ssd1306.SWITCHCAPVCC,
}

// NewSSD1306 returns the panel driver. Nothing is sent until
// ConfigureSSD1306.
func NewSSD1306(bus drivers.I2C) *ssd1306.Device { return ssd1306.NewI2C(bus) }

// ConfigureSSD1306 sends the init sequence and pushes a blank frame.
func ConfigureSSD1306(d *ssd1306.Device) error {
	d.Configure(OLEDConfig)
	return InitPanel(d, "ssd1306")
}
