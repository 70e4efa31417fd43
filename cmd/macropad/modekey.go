package main

import (
	"context"
	"log/slog"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// watchModeSelectPin turns edges on an active-low push button into
// ModeSelectPress / ModeSelectRelease events. It runs until ctx is canceled.
func watchModeSelectPin(ctx context.Context, name string, events chan<- Event, logger *slog.Logger) error {
	if err := initHost(); err != nil {
		return err
	}
	pin, err := openInputPin(name, gpio.BothEdges)
	if err != nil {
		return err
	}
	defer pin.Halt()

	logger.Info("mode-select pin ready", "pin", name)
	return debounceEdges(ctx, pin, modeKeyDebounce, events, logger)
}

// edgePin is the subset of gpio.PinIn the debouncer needs.
type edgePin interface {
	WaitForEdge(timeout time.Duration) bool
	Read() gpio.Level
}

// debounceEdges reports a level change only once the pin has been quiet for
// the debounce timeout.
func debounceEdges(ctx context.Context, pin edgePin, debounce time.Duration, events chan<- Event, logger *slog.Logger) error {
	pressed := false
	newPressed := false
	for {
		if ctx.Err() != nil {
			return nil
		}
		// Wait for an edge, except while a change is settling.
		timeout := debounce
		if newPressed == pressed {
			timeout = shutdownPollInterval
		}
		if pin.WaitForEdge(timeout) {
			newPressed = pin.Read() == gpio.Low
			continue
		}
		if newPressed == pressed {
			continue
		}
		pressed = newPressed

		var ev Event = ModeSelectRelease{}
		if pressed {
			ev = ModeSelectPress{}
		}
		logger.Debug("mode-select pin", "pressed", pressed)

		select {
		case events <- ev:
		case <-ctx.Done():
			return nil
		}
	}
}
