package main

import (
	"context"
	"log/slog"
	"time"

	"macropad/internal/core"
)

// ============================================================================
// Scan loop
// ============================================================================
//
// runDaemon is the single owner of the Pad. Every tick is one scan cycle:
//
//  1. pad.BeforeScan() (init countdown, blink, release timer, encoder)
//  2. the matrix phase: key events queued since the last tick are dispatched
//     in arrival order
//  3. state diffs are published to the WebSocket stream
//
// A mode-select press dispatched in step 2 is therefore visible to the next
// cycle's encoder routing.
//
// ============================================================================

// runDaemon runs the scan loop until ctx is canceled or events is closed.
// vpins may be nil when the encoder is on real GPIO.
func runDaemon(
	ctx context.Context,
	events <-chan Event,
	pad *core.Pad,
	vpins *virtualPins,
	scanHz int,
	broadcasts chan<- StateBroadcast,
	logger *slog.Logger,
) error {
	if scanHz <= 0 {
		scanHz = defaultScanHz
	}
	ticker := time.NewTicker(time.Second / time.Duration(scanHz))
	defer ticker.Stop()

	logger.Info("scan loop starting", "hz", scanHz)

	var queue []Event
	prev := pad.Snapshot()

	// A key left down by the release timer would stick on the host.
	defer pad.ReleaseTimer().Release()

	for {
		select {
		case <-ctx.Done():
			logger.Info("scan loop stopping (context canceled)")
			return nil

		case ev, ok := <-events:
			if !ok {
				logger.Info("scan loop stopping (events channel closed)")
				return nil
			}
			queue = acceptEvent(ev, queue, pad, vpins, logger)

		case now := <-ticker.C:
			queue = runScanCycle(pad, queue, logger)
			next := pad.Snapshot()
			for _, b := range diffSnapshots(prev, next, now.UTC()) {
				if !publishBroadcast(broadcasts, b) {
					logger.Debug("state broadcast dropped", "type", b)
				}
			}
			prev = next
		}
	}
}

// acceptEvent handles events that act immediately (encoder samples, snapshot
// requests) and queues matrix events for the next scan.
func acceptEvent(ev Event, queue []Event, pad *core.Pad, vpins *virtualPins, logger *slog.Logger) []Event {
	switch ev := ev.(type) {
	case RequestStateSnapshot:
		select {
		case ev.Reply <- snapshotPad(pad, time.Now().UTC()):
		default:
		}

	case PinLevels:
		if vpins == nil {
			logger.Warn("pin levels ignored, encoder is not virtual")
			return queue
		}
		vpins.Push(ev.A, ev.B)

	case Rotate:
		if vpins == nil {
			logger.Warn("rotate ignored, encoder is not virtual")
			return queue
		}
		r, err := parseDirection(ev.Direction)
		if err != nil {
			logger.Warn("rotate ignored", "error", err)
			return queue
		}
		vpins.PushDetent(r)

	case ModeSelectTap:
		queue = append(queue, ModeSelectPress{}, ModeSelectRelease{})

	default:
		queue = append(queue, ev)
	}
	return queue
}

// runScanCycle performs one full scan cycle and returns the emptied queue.
func runScanCycle(pad *core.Pad, queue []Event, logger *slog.Logger) []Event {
	pad.BeforeScan()
	for _, ev := range queue {
		dispatchMatrixEvent(pad, ev, logger)
	}
	return queue[:0]
}

func dispatchMatrixEvent(pad *core.Pad, ev Event, logger *slog.Logger) {
	switch ev := ev.(type) {
	case KeyPress:
		pad.PressAt(ev.Row, ev.Col)
	case KeyRelease:
		pad.ReleaseAt(ev.Row, ev.Col)
	case ModeSelectPress:
		pad.PressBinding(core.ModeSelect)
	case ModeSelectRelease:
		pad.ReleaseBinding(core.ModeSelect)
	default:
		logger.Warn("unhandled event", "type", ev)
	}
}
