package main

import (
	"time"

	"macropad/internal/core"
)

// StateSnapshot is a coherent copy of the pad state, produced by the scan
// loop on request.
type StateSnapshot struct {
	Pad core.Snapshot

	// Indicator is the last color written to the pixel.
	Indicator        core.Color
	IndicatorWritten bool
	IndicatorPresent bool

	At time.Time
}

// snapshotPad captures pad state. Must be called from the scan loop.
func snapshotPad(pad *core.Pad, now time.Time) StateSnapshot {
	ind := pad.Indicator()
	c, written := ind.Last()
	return StateSnapshot{
		Pad:              pad.Snapshot(),
		Indicator:        c,
		IndicatorWritten: written,
		IndicatorPresent: ind.Present(),
		At:               now,
	}
}

// StateBroadcast is a marker interface for state changes published to the
// WebSocket stream.
type StateBroadcast interface {
	broadcastMarker()
}

// BroadcastModeChanged is emitted when the mode or active layer changes.
type BroadcastModeChanged struct {
	Mode  core.Mode
	Layer int
	At    time.Time
}

// BroadcastSelectingChanged is emitted on entering or leaving selection.
type BroadcastSelectingChanged struct {
	Selecting bool
	At        time.Time
}

// BroadcastIndicatorChanged is emitted for every color shown on the pixel.
type BroadcastIndicatorChanged struct {
	Color core.Color
	At    time.Time
}

// BroadcastKey is emitted for every key-down and key-up sent to the host.
type BroadcastKey struct {
	Key  core.Key
	Down bool
	At   time.Time
}

func (BroadcastModeChanged) broadcastMarker()      {}
func (BroadcastSelectingChanged) broadcastMarker() {}
func (BroadcastIndicatorChanged) broadcastMarker() {}
func (BroadcastKey) broadcastMarker()              {}

// diffSnapshots returns the broadcasts describing the change from prev to next.
func diffSnapshots(prev, next core.Snapshot, at time.Time) []StateBroadcast {
	var out []StateBroadcast
	if prev.Selecting != next.Selecting {
		out = append(out, BroadcastSelectingChanged{Selecting: next.Selecting, At: at})
	}
	if prev.Mode != next.Mode || prev.Layer != next.Layer {
		out = append(out, BroadcastModeChanged{Mode: next.Mode, Layer: next.Layer, At: at})
	}
	return out
}

// publishBroadcast never blocks the scan loop; when nobody keeps up the
// broadcast is dropped.
func publishBroadcast(out chan<- StateBroadcast, b StateBroadcast) bool {
	if out == nil {
		return false
	}
	select {
	case out <- b:
		return true
	default:
		return false
	}
}
