package core

import "log/slog"

// ReleaseTimer turns a momentary event into a key press that is released
// automatically after a fixed number of scan cycles. At most one synthesized
// key is held at a time.
type ReleaseTimer struct {
	sink   KeySink
	cycles int
	logger *slog.Logger

	pending Key
	held    bool
	elapsed int
}

// NewReleaseTimer returns a timer that holds each asserted key for cycles
// calls to Tick.
func NewReleaseTimer(sink KeySink, cycles int, logger *slog.Logger) *ReleaseTimer {
	if cycles <= 0 {
		cycles = DefaultTiming().ReleaseCycles
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReleaseTimer{sink: sink, cycles: cycles, logger: logger}
}

// Pending returns the key currently held down, if any.
func (t *ReleaseTimer) Pending() (Key, bool) { return t.pending, t.held }

// Assert presses k and starts its countdown. A key that is still held is
// released first, so the host never sees two synthesized keys down at once and
// a repeated key is reported as two distinct presses.
func (t *ReleaseTimer) Assert(k Key) {
	t.release()
	t.down(k)
	t.pending = k
	t.held = true
	t.elapsed = 0
}

// Tick advances the countdown; call once per cycle.
func (t *ReleaseTimer) Tick() {
	if !t.held {
		return
	}
	t.elapsed++
	if t.elapsed >= t.cycles {
		t.release()
	}
}

// Release lets go of the pending key now. Releasing with nothing pending is a
// no-op.
func (t *ReleaseTimer) Release() { t.release() }

func (t *ReleaseTimer) release() {
	if !t.held {
		return
	}
	k := t.pending
	t.pending = KeyNone
	t.held = false
	t.elapsed = 0
	if t.sink == nil {
		return
	}
	if err := t.sink.KeyUp(k); err != nil {
		t.logger.Warn("synthesized key up failed", "key", k.String(), "error", err)
	}
}

func (t *ReleaseTimer) down(k Key) {
	if t.sink == nil {
		return
	}
	if err := t.sink.KeyDown(k); err != nil {
		t.logger.Warn("synthesized key down failed", "key", k.String(), "error", err)
	}
}
