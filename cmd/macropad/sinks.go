package main

import (
	"log/slog"
	"time"

	"macropad/internal/core"
)

// logSink is the output backend for machines without uinput: every key is
// only logged.
type logSink struct {
	logger *slog.Logger
}

func (s logSink) KeyDown(k core.Key) error {
	s.logger.Info("key down", "key", k.String())
	return nil
}

func (s logSink) KeyUp(k core.Key) error {
	s.logger.Info("key up", "key", k.String())
	return nil
}

// broadcastingSink forwards to next and publishes every key to the state
// stream. The broadcast is sent even when next fails, since the pad state
// already counts the key as sent.
type broadcastingSink struct {
	next core.KeySink
	out  chan<- StateBroadcast
	now  func() time.Time
}

func newBroadcastingSink(next core.KeySink, out chan<- StateBroadcast) *broadcastingSink {
	return &broadcastingSink{next: next, out: out, now: time.Now}
}

func (s *broadcastingSink) KeyDown(k core.Key) error {
	err := s.next.KeyDown(k)
	publishBroadcast(s.out, BroadcastKey{Key: k, Down: true, At: s.now().UTC()})
	return err
}

func (s *broadcastingSink) KeyUp(k core.Key) error {
	err := s.next.KeyUp(k)
	publishBroadcast(s.out, BroadcastKey{Key: k, Down: false, At: s.now().UTC()})
	return err
}

// hubPixel is a virtual indicator: it has no LED, it publishes each shown
// color to the state stream.
type hubPixel struct {
	out     chan<- StateBroadcast
	now     func() time.Time
	pending core.Color
}

func newHubPixel(out chan<- StateBroadcast) *hubPixel {
	return &hubPixel{out: out, now: time.Now}
}

func (p *hubPixel) SetPixelColor(c core.Color) error {
	p.pending = c
	return nil
}

func (p *hubPixel) Show() error {
	publishBroadcast(p.out, BroadcastIndicatorChanged{Color: p.pending, At: p.now().UTC()})
	return nil
}
