package core

import "testing"

// scriptedPins returns queued samples one per call, then holds the last one.
type scriptedPins struct {
	queue   []sample
	current sample
}

func newScriptedPins() *scriptedPins {
	return &scriptedPins{current: sample{a: true, b: true}}
}

func (p *scriptedPins) Levels() (bool, bool) {
	if len(p.queue) > 0 {
		p.current = p.queue[0]
		p.queue = p.queue[1:]
	}
	return p.current.a, p.current.b
}

// detent queues one clockwise or counter-clockwise click followed by the
// return to idle.
func (p *scriptedPins) detent(r Rotation) {
	b := r == CounterClockwise
	p.queue = append(p.queue, sample{a: false, b: b}, sample{a: true, b: true})
}

type padFixture struct {
	pad  *Pad
	pins *scriptedPins
	sink *recordingSink
	px   *recordingPixel
}

func newPadFixture(t *testing.T) *padFixture {
	t.Helper()
	pins := newScriptedPins()
	sink := newRecordingSink()
	px := &recordingPixel{}
	cfg := DefaultConfig()
	cfg.Brightness = 100
	return &padFixture{
		pad:  New(pins, sink, px, cfg, quietLogger()),
		pins: pins,
		sink: sink,
		px:   px,
	}
}

func (f *padFixture) scan(n int) {
	for i := 0; i < n; i++ {
		f.pad.BeforeScan()
	}
}

func TestPad_StartupColorOnEleventhCycle(t *testing.T) {
	f := newPadFixture(t)

	f.scan(10)
	if len(f.px.shown) != 0 {
		t.Fatalf("indicator written before cycle 11: %v", f.px.shown)
	}
	f.scan(1)
	if len(f.px.shown) != 1 || f.px.shown[0] != DefaultColors[ModeNumpad] {
		t.Fatalf("expected exactly one startup render of mode 0, got %v", f.px.shown)
	}
	if len(f.sink.log) != 0 {
		t.Errorf("unexpected key events: %v", f.sink.log)
	}
}

func TestPad_ClockwiseInNormalTapsVolumeUp(t *testing.T) {
	f := newPadFixture(t)
	f.scan(11)

	f.pins.detent(Clockwise)
	f.scan(1)
	expectLog(t, f.sink.log, "down:VolumeUp")

	f.scan(1)
	expectLog(t, f.sink.log, "down:VolumeUp")

	f.scan(1)
	expectLog(t, f.sink.log, "down:VolumeUp", "up:VolumeUp")

	f.scan(10)
	expectLog(t, f.sink.log, "down:VolumeUp", "up:VolumeUp")
}

func TestPad_CounterClockwiseInNormalTapsVolumeDown(t *testing.T) {
	f := newPadFixture(t)

	f.pins.detent(CounterClockwise)
	f.scan(3)

	expectLog(t, f.sink.log, "down:VolumeDown", "up:VolumeDown")
}

func TestPad_RotationInSelectionChangesModeOnly(t *testing.T) {
	f := newPadFixture(t)
	f.scan(11)

	// Mode-select is the top-right key on every layer.
	f.pad.PressAt(0, 3)
	f.pad.ReleaseAt(0, 3)
	if !f.pad.Modes().Selecting() {
		t.Fatal("mode-select press did not enter selection")
	}

	f.pins.detent(Clockwise)
	f.scan(1)

	snap := f.pad.Snapshot()
	if snap.Mode != ModeMedia || snap.Layer != 1 {
		t.Fatalf("expected mode 1 / layer 1, got mode %v layer %d", snap.Mode, snap.Layer)
	}
	if got := f.px.shown[len(f.px.shown)-1]; got != DefaultColors[ModeMedia] {
		t.Errorf("expected solid media color, got %+v", got)
	}

	f.scan(5)
	if len(f.sink.log) != 0 {
		t.Errorf("rotation during selection must not emit keys, got %v", f.sink.log)
	}
}

func TestPad_ToggleBeforeRotationInSameCycleIsHonoured(t *testing.T) {
	f := newPadFixture(t)

	// Rotation queued for the next cycle; the mode-select press is dispatched
	// during this cycle's matrix scan, i.e. after BeforeScan.
	f.scan(1)
	f.pad.PressAt(0, 3)
	f.pins.detent(CounterClockwise)
	f.scan(1)

	if f.pad.Modes().Mode() != ModeMacro {
		t.Fatalf("expected ModeMacro, got %v", f.pad.Modes().Mode())
	}
	if len(f.sink.log) != 0 {
		t.Errorf("expected no key events, got %v", f.sink.log)
	}
}

func TestPad_LayerFollowsModeForKeyLookups(t *testing.T) {
	f := newPadFixture(t)

	f.pad.PressAt(0, 3)
	f.pins.detent(Clockwise)
	f.scan(1)
	f.pad.ReleaseAt(0, 3)
	f.pad.PressAt(0, 3)
	f.pad.ReleaseAt(0, 3)

	f.pad.PressAt(0, 1)
	f.pad.ReleaseAt(0, 1)
	expectLog(t, f.sink.log, "down:MediaPlayPause", "up:MediaPlayPause")
}

func TestPad_ReleaseMatchesPressAcrossLayerChange(t *testing.T) {
	f := newPadFixture(t)

	f.pad.PressAt(0, 0) // "7" on numpad
	f.pad.PressAt(0, 3)
	f.pins.detent(Clockwise)
	f.scan(1)
	f.pad.ReleaseAt(0, 0)

	expectLog(t, f.sink.log, "down:7", "up:7")
}

func TestPad_CtrlChordOrdering(t *testing.T) {
	f := newPadFixture(t)
	f.pad.PressAt(0, 3)
	f.pins.detent(CounterClockwise)
	f.scan(1)
	f.pad.ReleaseAt(0, 3)
	f.pad.PressAt(0, 3)
	f.pad.ReleaseAt(0, 3)

	f.pad.PressAt(3, 0)
	f.pad.ReleaseAt(3, 0)

	expectLog(t, f.sink.log, "down:LeftCtrl", "down:C", "up:C", "up:LeftCtrl")
}

func TestPad_OverlappingCtrlChordsShareModifier(t *testing.T) {
	f := newPadFixture(t)
	f.pad.PressBinding(Ctrl(KeyC))
	f.pad.PressBinding(Ctrl(KeyV))
	f.pad.ReleaseBinding(Ctrl(KeyC))
	expectLog(t, f.sink.log, "down:LeftCtrl", "down:C", "down:V", "up:C")

	f.pad.ReleaseBinding(Ctrl(KeyV))
	expectLog(t, f.sink.log, "down:LeftCtrl", "down:C", "down:V", "up:C", "up:V", "up:LeftCtrl")
	if len(f.sink.down) != 0 {
		t.Errorf("keys left down: %v", f.sink.down)
	}
}

func TestPad_DeadKeyAndOutOfRangeAreIgnored(t *testing.T) {
	f := newPadFixture(t)
	f.pad.PressAt(0, 2)
	f.pad.ReleaseAt(0, 2)
	f.pad.PressAt(9, 9)
	f.pad.ReleaseAt(-1, 0)
	if len(f.sink.log) != 0 {
		t.Fatalf("expected no key events, got %v", f.sink.log)
	}
}

func TestPad_SyntheticBindingAutoReleases(t *testing.T) {
	f := newPadFixture(t)

	f.pad.PressBinding(Tap(KeyMute))
	f.pad.ReleaseBinding(Tap(KeyMute))
	expectLog(t, f.sink.log, "down:Mute")

	f.scan(2)
	expectLog(t, f.sink.log, "down:Mute", "up:Mute")
}

func TestPad_RunsWithoutIndicatorOrPins(t *testing.T) {
	p := New(nil, newRecordingSink(), nil, DefaultConfig(), quietLogger())
	for i := 0; i < 100; i++ {
		p.BeforeScan()
	}
	if p.Indicator().Present() {
		t.Fatal("expected absent indicator")
	}
	if !p.Snapshot().Initialized {
		t.Fatal("expected initialization to complete without an indicator")
	}
}

func TestPad_FastSpinNeverHoldsTwoKeys(t *testing.T) {
	f := newPadFixture(t)
	for i := 0; i < 5; i++ {
		f.pins.detent(Clockwise)
		f.pins.detent(CounterClockwise)
	}
	f.scan(30)
	if f.sink.maxDown != 1 {
		t.Fatalf("expected at most one synthesized key down, saw %d", f.sink.maxDown)
	}
	if len(f.sink.down) != 0 {
		t.Errorf("keys left down: %v", f.sink.down)
	}
}
