//go:build rp2040 || rp2350

package main

import "machine"

// Raspberry Pi Pico wiring.
const (
	uartTX = machine.GPIO0
	uartRX = machine.GPIO1

	i2cSDA = machine.GPIO4 // SSD1306 and BH1750 share I2C0
	i2cSCL = machine.GPIO5

	sonarTrig = machine.GPIO16
	sonarEcho = machine.GPIO17
)

const logBaud = 115200
