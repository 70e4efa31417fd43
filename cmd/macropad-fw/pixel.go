//go:build tinygo && rp2040

package main

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ws2812"

	"macropad/internal/core"
)

// ws2812Pixel drives the single onboard NeoPixel.
type ws2812Pixel struct {
	dev ws2812.Device
	buf [1]color.RGBA
}

func newWS2812Pixel(pin machine.Pin) *ws2812Pixel {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &ws2812Pixel{dev: ws2812.New(pin)}
}

func (p *ws2812Pixel) SetPixelColor(c core.Color) error {
	p.buf[0] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	return nil
}

func (p *ws2812Pixel) Show() error {
	return p.dev.WriteColors(p.buf[:])
}
