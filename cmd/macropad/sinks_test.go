package main

import (
	"errors"
	"testing"
	"time"

	"macropad/internal/core"
)

func TestBroadcastingSink_PublishesEvenOnError(t *testing.T) {
	out := make(chan StateBroadcast, 4)
	next := &recordingSink{fail: errors.New("device gone")}
	s := newBroadcastingSink(next, out)
	at := time.Unix(42, 0)
	s.now = func() time.Time { return at }

	if err := s.KeyDown(core.KeyVolumeUp); err == nil {
		t.Fatalf("expected the inner error to be returned")
	}
	_ = s.KeyUp(core.KeyVolumeUp)

	expectKeys(t, next.snapshot(), "down:VolumeUp", "up:VolumeUp")

	got := []StateBroadcast{<-out, <-out}
	want := []StateBroadcast{
		BroadcastKey{Key: core.KeyVolumeUp, Down: true, At: at.UTC()},
		BroadcastKey{Key: core.KeyVolumeUp, Down: false, At: at.UTC()},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("broadcast %d = %#v, want %#v", i, got[i], want[i])
		}
	}
}

func TestHubPixel_PublishesOnShow(t *testing.T) {
	out := make(chan StateBroadcast, 4)
	px := newHubPixel(out)

	_ = px.SetPixelColor(core.Color{G: 76})
	select {
	case b := <-out:
		t.Fatalf("SetPixelColor must not publish, got %#v", b)
	default:
	}

	_ = px.Show()
	b, ok := (<-out).(BroadcastIndicatorChanged)
	if !ok || b.Color != (core.Color{G: 76}) {
		t.Fatalf("unexpected broadcast %#v", b)
	}
}

func TestHubPixel_DrivesIndicator(t *testing.T) {
	out := make(chan StateBroadcast, 4)
	ind := core.NewIndicator(newHubPixel(out), core.DefaultColors, 30, quietLogger())

	ind.SetSolid(core.ModeMacro)
	b := (<-out).(BroadcastIndicatorChanged)
	if b.Color != (core.Color{B: 76}) {
		t.Fatalf("expected blue at 30%%, got %+v", b.Color)
	}
}

func TestPublishBroadcast_NeverBlocks(t *testing.T) {
	if publishBroadcast(nil, BroadcastSelectingChanged{}) {
		t.Fatalf("nil channel should report dropped")
	}
	out := make(chan StateBroadcast, 1)
	if !publishBroadcast(out, BroadcastSelectingChanged{}) {
		t.Fatalf("first publish should succeed")
	}
	if publishBroadcast(out, BroadcastSelectingChanged{}) {
		t.Fatalf("publish to a full channel should be dropped")
	}
}
