package core

import "log/slog"

// Color is an RGB triple, 0-255 per channel.
type Color struct {
	R, G, B uint8
}

// Off is the color pushed by SetOff.
var Off = Color{}

// Scale returns c with every channel multiplied by pct/100. pct is clamped
// to [0, 100].
func (c Color) Scale(pct int) Color {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	scale := func(v uint8) uint8 { return uint8(int(v) * pct / 100) }
	return Color{R: scale(c.R), G: scale(c.G), B: scale(c.B)}
}

// ColorTable maps every Mode to its indicator color.
type ColorTable [ModeCount]Color

// DefaultColors is red for Numpad, green for Media and blue for Macro.
var DefaultColors = ColorTable{
	ModeNumpad: {R: 255},
	ModeMedia:  {G: 255},
	ModeMacro:  {B: 255},
}

// DefaultBrightness is the percentage the stock board drives its pixel at.
const DefaultBrightness = 30

// Pixel is the single addressable LED primitive.
type Pixel interface {
	SetPixelColor(c Color) error
	Show() error
}

// Indicator renders mode colors onto an optional Pixel.
//
// A nil Pixel is the Absent capability: every render is a no-op. Errors from
// a present Pixel are logged and never propagate, so the keyboard keeps
// working with a broken or missing LED.
type Indicator struct {
	px     Pixel
	colors ColorTable
	logger *slog.Logger

	last    Color
	written bool
}

// NewIndicator builds an indicator over px (nil means absent). colors are
// scaled by brightness percent once, here.
func NewIndicator(px Pixel, colors ColorTable, brightness int, logger *slog.Logger) *Indicator {
	if logger == nil {
		logger = slog.Default()
	}
	var scaled ColorTable
	for i, c := range colors {
		scaled[i] = c.Scale(brightness)
	}
	return &Indicator{px: px, colors: scaled, logger: logger}
}

// Present reports whether an LED is attached.
func (ind *Indicator) Present() bool { return ind != nil && ind.px != nil }

// Color returns the (scaled) color for m.
func (ind *Indicator) Color(m Mode) Color {
	return ind.colors[m.normalize()]
}

// Last returns the most recently pushed color and whether anything has been
// pushed yet.
func (ind *Indicator) Last() (Color, bool) { return ind.last, ind.written }

// SetSolid pushes the color of mode m and flushes.
func (ind *Indicator) SetSolid(m Mode) {
	ind.push(ind.Color(m))
}

// SetOff pushes black and flushes.
func (ind *Indicator) SetOff() {
	ind.push(Off)
}

func (ind *Indicator) push(c Color) {
	if !ind.Present() {
		return
	}
	if err := ind.px.SetPixelColor(c); err != nil {
		ind.logger.Warn("indicator write failed", "error", err, "r", c.R, "g", c.G, "b", c.B)
		return
	}
	if err := ind.px.Show(); err != nil {
		ind.logger.Warn("indicator flush failed", "error", err)
		return
	}
	ind.last = c
	ind.written = true
}
