package core

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

// recordingPixel records every flushed color.
type recordingPixel struct {
	pending Color
	shown   []Color
	sets    int
}

func (p *recordingPixel) SetPixelColor(c Color) error {
	p.sets++
	p.pending = c
	return nil
}

func (p *recordingPixel) Show() error {
	p.shown = append(p.shown, p.pending)
	return nil
}

// failingPixel fails every write.
type failingPixel struct {
	calls int
}

func (p *failingPixel) SetPixelColor(Color) error {
	p.calls++
	return errors.New("pixel not connected")
}

func (p *failingPixel) Show() error {
	p.calls++
	return errors.New("pixel not connected")
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestIndicator_SetSolidPushesModeColor(t *testing.T) {
	px := &recordingPixel{}
	ind := NewIndicator(px, DefaultColors, 100, quietLogger())

	ind.SetSolid(ModeMedia)

	if len(px.shown) != 1 {
		t.Fatalf("expected 1 flush, got %d", len(px.shown))
	}
	if px.shown[0] != (Color{G: 255}) {
		t.Errorf("expected green, got %+v", px.shown[0])
	}
	if last, ok := ind.Last(); !ok || last != px.shown[0] {
		t.Errorf("expected Last()=%+v, got %+v (ok=%v)", px.shown[0], last, ok)
	}
}

func TestIndicator_SetOffPushesBlack(t *testing.T) {
	px := &recordingPixel{}
	ind := NewIndicator(px, DefaultColors, 100, quietLogger())

	ind.SetSolid(ModeNumpad)
	ind.SetOff()

	if got := px.shown[len(px.shown)-1]; got != Off {
		t.Errorf("expected off, got %+v", got)
	}
}

func TestIndicator_BrightnessScaling(t *testing.T) {
	px := &recordingPixel{}
	ind := NewIndicator(px, DefaultColors, DefaultBrightness, quietLogger())

	ind.SetSolid(ModeNumpad)

	if want := (Color{R: 76}); px.shown[0] != want {
		t.Errorf("expected %+v at 30%%, got %+v", want, px.shown[0])
	}
}

func TestIndicator_AbsentIsNoop(t *testing.T) {
	ind := NewIndicator(nil, DefaultColors, 100, quietLogger())
	if ind.Present() {
		t.Fatal("expected absent indicator")
	}
	ind.SetSolid(ModeMacro)
	ind.SetOff()
	if _, ok := ind.Last(); ok {
		t.Error("absent indicator must not record a write")
	}
}

func TestIndicator_ErrorsAreSwallowed(t *testing.T) {
	px := &failingPixel{}
	ind := NewIndicator(px, DefaultColors, 100, quietLogger())

	ind.SetSolid(ModeNumpad)
	ind.SetOff()

	if px.calls != 2 {
		t.Errorf("expected one failed write per render, got %d calls", px.calls)
	}
	if _, ok := ind.Last(); ok {
		t.Error("failed writes must not update Last()")
	}
}

func TestColor_ScaleClamps(t *testing.T) {
	c := Color{R: 200, G: 100, B: 50}
	if got := c.Scale(150); got != c {
		t.Errorf("expected clamp to 100%%, got %+v", got)
	}
	if got := c.Scale(-5); got != Off {
		t.Errorf("expected clamp to 0%%, got %+v", got)
	}
}
