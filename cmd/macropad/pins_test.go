package main

import (
	"context"
	"sync"
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"

	"macropad/internal/core"
)

func TestVirtualPins_HoldsLastSample(t *testing.T) {
	p := newVirtualPins()
	if a, b := p.Levels(); !a || !b {
		t.Fatalf("idle levels should be high, got %v %v", a, b)
	}

	p.Push(false, true)
	if a, b := p.Levels(); a || !b {
		t.Fatalf("expected queued sample, got %v %v", a, b)
	}
	if a, b := p.Levels(); a || !b {
		t.Fatalf("expected last sample held, got %v %v", a, b)
	}
}

func TestVirtualPins_DetentDecodesToOneRotation(t *testing.T) {
	for _, r := range []core.Rotation{core.Clockwise, core.CounterClockwise} {
		p := newVirtualPins()
		a, _ := p.Levels()
		dec := core.NewDecoder(a)

		p.PushDetent(r)
		var got []core.Rotation
		for p.Pending() > 0 {
			if rot := dec.Update(p.Levels()); rot != core.RotationNone {
				got = append(got, rot)
			}
		}
		if len(got) != 1 || got[0] != r {
			t.Errorf("%v detent decoded as %v", r, got)
		}
	}
}

func TestVirtualPins_NoneQueuesNothing(t *testing.T) {
	p := newVirtualPins()
	p.PushDetent(core.RotationNone)
	if p.Pending() != 0 {
		t.Fatalf("expected empty queue, got %d", p.Pending())
	}
}

func TestParseDirection(t *testing.T) {
	if r, err := parseDirection("cw"); err != nil || r != core.Clockwise {
		t.Errorf("cw: %v %v", r, err)
	}
	if r, err := parseDirection("ccw"); err != nil || r != core.CounterClockwise {
		t.Errorf("ccw: %v %v", r, err)
	}
	if _, err := parseDirection("left"); err == nil {
		t.Errorf("expected error for left")
	}
}

// fakeEdgePin delivers levels pushed on edges as edge interrupts.
type fakeEdgePin struct {
	mu    sync.Mutex
	level gpio.Level
	edges chan gpio.Level
}

func newFakeEdgePin() *fakeEdgePin {
	return &fakeEdgePin{level: gpio.High, edges: make(chan gpio.Level)}
}

func (p *fakeEdgePin) WaitForEdge(timeout time.Duration) bool {
	select {
	case l := <-p.edges:
		p.mu.Lock()
		p.level = l
		p.mu.Unlock()
		return true
	case <-time.After(timeout):
		return false
	}
}

func (p *fakeEdgePin) Read() gpio.Level {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

func TestDebounceEdges_BouncyPressIsOneEvent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pin := newFakeEdgePin()
	events := make(chan Event, 8)
	done := make(chan error, 1)
	go func() {
		done <- debounceEdges(ctx, pin, 20*time.Millisecond, events, quietLogger())
	}()

	// Contact bounce: low, high, low in quick succession.
	pin.edges <- gpio.Low
	pin.edges <- gpio.High
	pin.edges <- gpio.Low

	select {
	case ev := <-events:
		if _, ok := ev.(ModeSelectPress); !ok {
			t.Fatalf("expected ModeSelectPress, got %#v", ev)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("timeout waiting for press")
	}

	select {
	case ev := <-events:
		t.Fatalf("unexpected extra event %#v", ev)
	case <-time.After(50 * time.Millisecond):
	}

	pin.edges <- gpio.High
	select {
	case ev := <-events:
		if _, ok := ev.(ModeSelectRelease); !ok {
			t.Fatalf("expected ModeSelectRelease, got %#v", ev)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("timeout waiting for release")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("debounceEdges returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("debouncer did not stop")
	}
}

func TestDebounceEdges_GlitchBackToIdleIsIgnored(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pin := newFakeEdgePin()
	events := make(chan Event, 8)
	go debounceEdges(ctx, pin, 5*time.Millisecond, events, quietLogger())

	pin.edges <- gpio.Low
	pin.edges <- gpio.High

	select {
	case ev := <-events:
		t.Fatalf("glitch produced %#v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}
