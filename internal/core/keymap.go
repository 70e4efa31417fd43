package core

// Matrix geometry of the keypad.
const (
	Rows = 5
	Cols = 4
)

// BindingKind selects how a keymap entry behaves when pressed.
type BindingKind uint8

const (
	// BindNone is a dead position.
	BindNone BindingKind = iota
	// BindStandard presses Key (with Ctrl held first when set) for as long as
	// the physical key is down.
	BindStandard
	// BindModeSelect toggles mode selection on press and does nothing on
	// release.
	BindModeSelect
	// BindSynthetic taps Key through the ReleaseTimer, exactly like an
	// encoder detent.
	BindSynthetic
)

func (k BindingKind) String() string {
	switch k {
	case BindNone:
		return "none"
	case BindStandard:
		return "standard"
	case BindModeSelect:
		return "mode_select"
	case BindSynthetic:
		return "synthetic"
	default:
		return "unknown"
	}
}

// Binding is one keymap entry.
type Binding struct {
	Kind BindingKind
	Key  Key
	Ctrl bool
}

// Std binds a plain key.
func Std(k Key) Binding { return Binding{Kind: BindStandard, Key: k} }

// Ctrl binds k chorded with left control.
func Ctrl(k Key) Binding { return Binding{Kind: BindStandard, Key: k, Ctrl: true} }

// Tap binds a synthesized momentary press of k.
func Tap(k Key) Binding { return Binding{Kind: BindSynthetic, Key: k} }

var (
	NoKey      = Binding{}
	ModeSelect = Binding{Kind: BindModeSelect}
)

func (b Binding) String() string {
	switch b.Kind {
	case BindStandard:
		if b.Ctrl {
			return "Ctrl+" + b.Key.String()
		}
		return b.Key.String()
	case BindSynthetic:
		return "Tap(" + b.Key.String() + ")"
	case BindModeSelect:
		return "ModeSelect"
	default:
		return "None"
	}
}

// Layer is a row-major Rows x Cols grid of bindings.
type Layer [Rows * Cols]Binding

// Keymap holds one layer per Mode.
type Keymap [ModeCount]Layer

// Lookup returns the binding at (row, col) on layer. Out-of-range positions
// resolve to NoKey.
func (km *Keymap) Lookup(layer, row, col int) Binding {
	if layer < 0 || layer >= ModeCount || row < 0 || row >= Rows || col < 0 || col >= Cols {
		return NoKey
	}
	return km[layer][row*Cols+col]
}

// DefaultKeymap is the stock layout: numpad, media controls and F-key/Ctrl
// shortcuts, with the mode-select key in the top-right corner of every layer.
func DefaultKeymap() Keymap {
	return Keymap{
		ModeNumpad: {
			Std(KeyN7), Std(KeyN8), NoKey, ModeSelect,
			Std(KeyN4), Std(KeyN5), Std(KeyN6), Std(KeyPlus),
			Std(KeyN1), Std(KeyN2), Std(KeyN3), Std(KeyMinus),
			Std(KeyN0), Std(KeyDot), Std(KeyEnter), NoKey,
			Std(KeyBackspace), Std(KeyAsterisk), Std(KeySlash), Std(KeyEqual),
		},
		ModeMedia: {
			Std(KeyMediaPrev), Std(KeyMediaPlayPause), NoKey, ModeSelect,
			NoKey, NoKey, NoKey, Std(KeyMediaNext),
			NoKey, NoKey, NoKey, Std(KeyMute),
			NoKey, NoKey, NoKey, NoKey,
			NoKey, NoKey, NoKey, NoKey,
		},
		ModeMacro: {
			Std(KeyF13), Std(KeyF14), NoKey, ModeSelect,
			Std(KeyF15), Std(KeyF16), Std(KeyF17), Std(KeyF18),
			Std(KeyF19), Std(KeyF20), Std(KeyF21), Std(KeyF22),
			Ctrl(KeyC), Ctrl(KeyV), Ctrl(KeyZ), NoKey,
			Ctrl(KeyS), Ctrl(KeyA), Ctrl(KeyX), Ctrl(KeyY),
		},
	}
}
