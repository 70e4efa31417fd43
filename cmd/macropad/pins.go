package main

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"macropad/internal/core"
)

// parseDirection maps "cw"/"ccw" to a rotation.
func parseDirection(s string) (core.Rotation, error) {
	switch s {
	case "cw", "clockwise":
		return core.Clockwise, nil
	case "ccw", "counterclockwise", "counter-clockwise":
		return core.CounterClockwise, nil
	default:
		return core.RotationNone, fmt.Errorf("invalid direction %q (must be cw or ccw)", s)
	}
}

// ============================================================================
// Virtual encoder
// ============================================================================

// virtualPins is a core.Pins fed from IPC. Each scan consumes one queued
// sample; once the queue is empty the last sample is held, like a real
// encoder resting between detents.
//
// Owned by the scan loop goroutine.
type virtualPins struct {
	queue   [][2]bool
	current [2]bool
}

func newVirtualPins() *virtualPins {
	return &virtualPins{current: [2]bool{true, true}}
}

// Levels implements core.Pins.
func (p *virtualPins) Levels() (bool, bool) {
	if len(p.queue) > 0 {
		p.current = p.queue[0]
		p.queue = p.queue[1:]
	}
	return p.current[0], p.current[1]
}

// Push queues one raw sample.
func (p *virtualPins) Push(a, b bool) {
	p.queue = append(p.queue, [2]bool{a, b})
}

// PushDetent queues the samples of one detent in direction r: A falls with
// B reflecting the direction, then both lines return to rest.
func (p *virtualPins) PushDetent(r core.Rotation) {
	switch r {
	case core.Clockwise:
		p.Push(false, false)
	case core.CounterClockwise:
		p.Push(false, true)
	default:
		return
	}
	p.Push(true, true)
}

// Pending reports how many samples are still queued.
func (p *virtualPins) Pending() int { return len(p.queue) }

// ============================================================================
// GPIO encoder (periph)
// ============================================================================

// gpioPins samples the encoder lines through periph. Both lines are inputs
// with pull-ups, so a released contact reads high.
type gpioPins struct {
	a, b gpio.PinIO
}

// initHost loads the periph drivers. Safe to call more than once.
func initHost() error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("periph host init: %w", err)
	}
	return nil
}

// openInputPin looks up a pin by name and configures it as a pulled-up input.
func openInputPin(name string, edge gpio.Edge) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("unknown gpio pin %q", name)
	}
	if err := p.In(gpio.PullUp, edge); err != nil {
		return nil, fmt.Errorf("configure %s: %w", name, err)
	}
	return p, nil
}

func openGPIOPins(nameA, nameB string) (*gpioPins, error) {
	if err := initHost(); err != nil {
		return nil, err
	}
	a, err := openInputPin(nameA, gpio.NoEdge)
	if err != nil {
		return nil, fmt.Errorf("encoder A: %w", err)
	}
	b, err := openInputPin(nameB, gpio.NoEdge)
	if err != nil {
		return nil, fmt.Errorf("encoder B: %w", err)
	}
	return &gpioPins{a: a, b: b}, nil
}

// Levels implements core.Pins.
func (p *gpioPins) Levels() (bool, bool) {
	return p.a.Read() == gpio.High, p.b.Read() == gpio.High
}

// Close releases both pins.
func (p *gpioPins) Close() error {
	errA := p.a.Halt()
	errB := p.b.Halt()
	if errA != nil {
		return errA
	}
	return errB
}
