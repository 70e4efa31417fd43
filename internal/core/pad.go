package core

import "log/slog"

// Timing holds the cycle-count constants. All values are in scan cycles, so
// their wall-clock duration depends on the host's scan rate; keep the counts
// when porting to a faster or slower loop.
type Timing struct {
	// InitDelayCycles is how many cycles pass before the startup color is
	// rendered (the LED driver may not be ready right after power-on).
	InitDelayCycles int
	// BlinkCycles is the half period of the selection blink.
	BlinkCycles int
	// ReleaseCycles is how long a synthesized key stays down.
	ReleaseCycles int
}

// DefaultTiming matches the stock firmware.
func DefaultTiming() Timing {
	return Timing{
		InitDelayCycles: 10,
		BlinkCycles:     30,
		ReleaseCycles:   2,
	}
}

func (t Timing) withDefaults() Timing {
	d := DefaultTiming()
	if t.InitDelayCycles < 0 {
		t.InitDelayCycles = d.InitDelayCycles
	}
	if t.BlinkCycles <= 0 {
		t.BlinkCycles = d.BlinkCycles
	}
	if t.ReleaseCycles <= 0 {
		t.ReleaseCycles = d.ReleaseCycles
	}
	return t
}

// Pins samples the two encoder lines. true is the released (pulled-up) level.
type Pins interface {
	Levels() (a, b bool)
}

// Config bundles everything a Pad needs besides its collaborators.
type Config struct {
	Timing     Timing
	Colors     ColorTable
	Brightness int
	Keymap     Keymap
}

// DefaultConfig returns the stock layout, colors and timing.
func DefaultConfig() Config {
	return Config{
		Timing:     DefaultTiming(),
		Colors:     DefaultColors,
		Brightness: DefaultBrightness,
		Keymap:     DefaultKeymap(),
	}
}

// VolumeKey maps a rotation to the synthesized key it produces in Normal.
func VolumeKey(r Rotation) (Key, bool) {
	switch r {
	case Clockwise:
		return KeyVolumeUp, true
	case CounterClockwise:
		return KeyVolumeDown, true
	default:
		return KeyNone, false
	}
}

// Snapshot is a read-only view of the pad state.
type Snapshot struct {
	Mode         Mode
	Layer        int
	Selecting    bool
	BlinkPhase   bool
	Initialized  bool
	Pending      Key
	PendingHeld  bool
	LastRotation Rotation
	Cycles       uint64
}

// Pad is the scan-cycle coordinator. It owns the decoder, mode state, release
// timer and indicator, and is the host-binding layer that resolves keymap
// entries into key-down/key-up calls.
//
// A Pad is single-owner: BeforeScan, PressAt and ReleaseAt must be called from
// one goroutine.
type Pad struct {
	pins   Pins
	sink   KeySink
	logger *slog.Logger

	decoder   *Decoder
	modes     *ModeState
	release   *ReleaseTimer
	indicator *Indicator

	keymap Keymap
	layer  int

	// held records the binding resolved when each position went down, so the
	// release matches the press even if the layer changed in between.
	held     [Rows * Cols]Binding
	heldDown [Rows * Cols]bool
	// ctrlHeld counts Ctrl chords currently down; LeftCtrl is reported on
	// the first press and released after the last.
	ctrlHeld int

	lastRotation Rotation
	cycles       uint64
}

// New builds a Pad. px may be nil when no indicator is fitted. The decoder is
// seeded from one sample of pins taken here.
func New(pins Pins, sink KeySink, px Pixel, cfg Config, logger *slog.Logger) *Pad {
	if logger == nil {
		logger = slog.Default()
	}
	timing := cfg.Timing.withDefaults()

	p := &Pad{
		pins:   pins,
		sink:   sink,
		logger: logger,
		keymap: cfg.Keymap,
	}
	a, _ := p.sample()
	p.decoder = NewDecoder(a)
	p.indicator = NewIndicator(px, cfg.Colors, cfg.Brightness, logger)
	p.modes = NewModeState(p.indicator, p, timing)
	p.release = NewReleaseTimer(sink, timing.ReleaseCycles, logger)
	if !p.indicator.Present() {
		logger.Info("indicator absent, running without visual feedback")
	}
	return p
}

func (p *Pad) Modes() *ModeState           { return p.modes }
func (p *Pad) Indicator() *Indicator       { return p.indicator }
func (p *Pad) ReleaseTimer() *ReleaseTimer { return p.release }

// SetActiveLayer implements LayerSetter for the pad's own keymap.
func (p *Pad) SetActiveLayer(layer int) {
	if layer < 0 || layer >= ModeCount {
		return
	}
	if layer != p.layer {
		p.logger.Debug("active layer changed", "layer", layer, "mode", Mode(layer).String())
	}
	p.layer = layer
}

// BeforeScan runs once per scan cycle, before the host reads the key matrix.
//
// Bookkeeping runs before the encoder is sampled so that a mode-select toggle
// dispatched during the previous cycle's scan is already visible when this
// cycle's rotation is routed.
func (p *Pad) BeforeScan() {
	p.cycles++
	p.modes.TickInit()
	p.modes.TickBlink()
	p.release.Tick()

	a, b := p.sample()
	r := p.decoder.Update(a, b)
	p.lastRotation = r
	if r == RotationNone {
		return
	}

	if p.modes.Selecting() {
		p.modes.Cycle(r)
		p.logger.Info("mode changed", "mode", p.modes.Mode().String(), "rotation", r.String())
		return
	}

	if k, ok := VolumeKey(r); ok {
		p.release.Assert(k)
	}
}

// PressAt dispatches the press of the physical key at (row, col) on the
// active layer.
func (p *Pad) PressAt(row, col int) {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return
	}
	idx := row*Cols + col
	if p.heldDown[idx] {
		return
	}
	b := p.keymap.Lookup(p.layer, row, col)
	p.held[idx] = b
	p.heldDown[idx] = true
	p.PressBinding(b)
}

// ReleaseAt dispatches the release of the physical key at (row, col).
func (p *Pad) ReleaseAt(row, col int) {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return
	}
	idx := row*Cols + col
	if !p.heldDown[idx] {
		return
	}
	b := p.held[idx]
	p.held[idx] = NoKey
	p.heldDown[idx] = false
	p.ReleaseBinding(b)
}

// PressBinding dispatches a key-down for b.
func (p *Pad) PressBinding(b Binding) {
	switch b.Kind {
	case BindStandard:
		if b.Ctrl {
			p.ctrlHeld++
			if p.ctrlHeld == 1 {
				p.down(KeyLeftCtrl)
			}
		}
		p.down(b.Key)
	case BindModeSelect:
		p.modes.ToggleSelect()
		p.logger.Info("mode select", "selecting", p.modes.Selecting(), "mode", p.modes.Mode().String())
	case BindSynthetic:
		p.release.Assert(b.Key)
	}
}

// ReleaseBinding dispatches a key-up for b. Mode-select and synthetic
// bindings do nothing on release.
func (p *Pad) ReleaseBinding(b Binding) {
	if b.Kind != BindStandard {
		return
	}
	p.up(b.Key)
	if b.Ctrl && p.ctrlHeld > 0 {
		p.ctrlHeld--
		if p.ctrlHeld == 0 {
			p.up(KeyLeftCtrl)
		}
	}
}

// Snapshot returns the current state.
func (p *Pad) Snapshot() Snapshot {
	k, held := p.release.Pending()
	return Snapshot{
		Mode:         p.modes.Mode(),
		Layer:        p.layer,
		Selecting:    p.modes.Selecting(),
		BlinkPhase:   p.modes.BlinkPhase(),
		Initialized:  p.modes.Initialized(),
		Pending:      k,
		PendingHeld:  held,
		LastRotation: p.lastRotation,
		Cycles:       p.cycles,
	}
}

func (p *Pad) sample() (a, b bool) {
	if p.pins == nil {
		return true, true
	}
	return p.pins.Levels()
}

func (p *Pad) down(k Key) {
	if p.sink == nil {
		return
	}
	if err := p.sink.KeyDown(k); err != nil {
		p.logger.Warn("key down failed", "key", k.String(), "error", err)
	}
}

func (p *Pad) up(k Key) {
	if p.sink == nil {
		return
	}
	if err := p.sink.KeyUp(k); err != nil {
		p.logger.Warn("key up failed", "key", k.String(), "error", err)
	}
}
