package core

// Mode is one of the three operating configurations. Each mode is bound 1:1
// to a keymap layer and an indicator color.
type Mode uint8

const (
	ModeNumpad Mode = iota
	ModeMedia
	ModeMacro

	ModeCount = 3
)

func (m Mode) String() string {
	switch m {
	case ModeNumpad:
		return "Numpad"
	case ModeMedia:
		return "Media"
	case ModeMacro:
		return "Macro"
	default:
		return "Unknown"
	}
}

func (m Mode) normalize() Mode { return m % ModeCount }

// Rotate advances m by one position in the direction of r, wrapping in both
// directions. RotationNone returns m unchanged.
func (m Mode) Rotate(r Rotation) Mode {
	next := (int(m.normalize()) + r.Step() + ModeCount) % ModeCount
	return Mode(next)
}

// LayerSetter makes a keymap layer active in the host runtime.
type LayerSetter interface {
	SetActiveLayer(layer int)
}

// ModeState arbitrates between normal operation and mode selection.
//
// It has two states, Normal and Selecting, toggled only by the mode-select
// key. While Selecting, rotations change the mode and the indicator blinks.
type ModeState struct {
	mode      Mode
	selecting bool

	blinkPhase   bool
	blinkCounter int

	initialized bool
	initCounter int

	timing Timing
	ind    *Indicator
	layers LayerSetter
}

// NewModeState returns a state in Normal at ModeNumpad, not yet initialized.
// ind and layers may be nil.
func NewModeState(ind *Indicator, layers LayerSetter, timing Timing) *ModeState {
	return &ModeState{
		timing: timing.withDefaults(),
		ind:    ind,
		layers: layers,
	}
}

func (s *ModeState) Mode() Mode            { return s.mode }
func (s *ModeState) Selecting() bool       { return s.selecting }
func (s *ModeState) BlinkPhase() bool      { return s.blinkPhase }
func (s *ModeState) BlinkCounter() int     { return s.blinkCounter }
func (s *ModeState) Initialized() bool     { return s.initialized }
func (s *ModeState) InitCounter() int      { return s.initCounter }
func (s *ModeState) Indicator() *Indicator { return s.ind }

// ToggleSelect flips between Normal and Selecting and resets the blink. On
// leaving Selecting the current mode's solid color is rendered.
func (s *ModeState) ToggleSelect() {
	s.selecting = !s.selecting
	s.blinkCounter = 0
	s.blinkPhase = false
	if !s.selecting && s.ind != nil {
		s.ind.SetSolid(s.mode)
	}
}

// Cycle moves to the next or previous mode while Selecting and reports whether
// the rotation was consumed. It is a no-op returning false in Normal.
func (s *ModeState) Cycle(r Rotation) bool {
	if !s.selecting || r == RotationNone {
		return false
	}
	s.mode = s.mode.Rotate(r)
	if s.ind != nil {
		s.ind.SetSolid(s.mode)
	}
	if s.layers != nil {
		s.layers.SetActiveLayer(int(s.mode))
	}
	return true
}

// TickBlink advances the selection blink; call once per cycle.
func (s *ModeState) TickBlink() {
	if !s.selecting {
		return
	}
	s.blinkCounter++
	if s.blinkCounter < s.timing.BlinkCycles {
		return
	}
	s.blinkCounter = 0
	s.blinkPhase = !s.blinkPhase
	if s.ind == nil {
		return
	}
	if s.blinkPhase {
		s.ind.SetSolid(s.mode)
	} else {
		s.ind.SetOff()
	}
}

// TickInit renders the startup color once the LED driver has had
// InitDelayCycles cycles to come up; call once per cycle.
func (s *ModeState) TickInit() {
	if s.initialized {
		return
	}
	s.initCounter++
	if s.initCounter <= s.timing.InitDelayCycles {
		return
	}
	if s.ind != nil {
		s.ind.SetSolid(s.mode)
	}
	s.initialized = true
}
