//go:build tinygo && rp2040

// Command macropad-fw is the on-device firmware. It scans the key matrix,
// decodes the encoder and drives the mode indicator, reporting keys to the
// host over USB HID.
package main

import (
	"log/slog"
	"machine"
	"time"

	"macropad/internal/core"
)

const scanInterval = 10 * time.Millisecond

func main() {
	logger := slog.New(slog.NewTextHandler(machine.Serial, &slog.HandlerOptions{Level: slog.LevelInfo}))

	m := newMatrix(rowPins, colPins)
	m.configure()
	if bootHeld(m) {
		logger.Warn("boot key held, firmware idle")
		for {
			time.Sleep(time.Second)
		}
	}

	enc := newEncoderPins(encoderPinA, encoderPinB)
	px := newWS2812Pixel(ledPin)
	pad := core.New(enc, newHIDSink(), px, core.DefaultConfig(), logger)
	logger.Info("macropad ready", "rows", core.Rows, "cols", core.Cols)

	for {
		pad.BeforeScan()
		m.scan(pad.PressAt, pad.ReleaseAt)
		time.Sleep(scanInterval)
	}
}
