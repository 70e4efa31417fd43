//go:build tinygo && rp2040

package main

import (
	"errors"
	"machine/usb/hid/keyboard"

	"macropad/internal/core"
)

var errUnmappedKey = errors.New("no HID usage for key")

// usage builds a keyboard-page keycode.
func usage(u uint16) keyboard.Keycode { return keyboard.Keycode(0xF000 | u) }

var hidKeycodes = map[core.Key]keyboard.Keycode{
	core.KeyN1:        usage(0x1E),
	core.KeyN2:        usage(0x1F),
	core.KeyN3:        usage(0x20),
	core.KeyN4:        usage(0x21),
	core.KeyN5:        usage(0x22),
	core.KeyN6:        usage(0x23),
	core.KeyN7:        usage(0x24),
	core.KeyN8:        usage(0x25),
	core.KeyN9:        usage(0x26),
	core.KeyN0:        usage(0x27),
	core.KeyEnter:     usage(0x28),
	core.KeyBackspace: usage(0x2A),
	core.KeyMinus:     usage(0x2D),
	core.KeyEqual:     usage(0x2E),
	core.KeyDot:       usage(0x37),
	core.KeySlash:     usage(0x54),
	core.KeyAsterisk:  usage(0x55),
	core.KeyPlus:      usage(0x57),

	core.KeyA: usage(0x04),
	core.KeyC: usage(0x06),
	core.KeyS: usage(0x16),
	core.KeyV: usage(0x19),
	core.KeyX: usage(0x1B),
	core.KeyY: usage(0x1C),
	core.KeyZ: usage(0x1D),

	core.KeyF13: usage(0x68),
	core.KeyF14: usage(0x69),
	core.KeyF15: usage(0x6A),
	core.KeyF16: usage(0x6B),
	core.KeyF17: usage(0x6C),
	core.KeyF18: usage(0x6D),
	core.KeyF19: usage(0x6E),
	core.KeyF20: usage(0x6F),
	core.KeyF21: usage(0x70),
	core.KeyF22: usage(0x71),

	core.KeyMediaPrev:      keyboard.KeyMediaPrevTrack,
	core.KeyMediaPlayPause: keyboard.KeyMediaPlayPause,
	core.KeyMediaNext:      keyboard.KeyMediaNextTrack,
	core.KeyMute:           keyboard.KeyMediaMute,
	core.KeyVolumeUp:       keyboard.KeyMediaVolumeInc,
	core.KeyVolumeDown:     keyboard.KeyMediaVolumeDec,

	core.KeyLeftCtrl: keyboard.KeyModifierCtrl,
}

// hidSink reports keys over the USB HID keyboard endpoint.
type hidSink struct {
	kb *keyboard.Keyboard
}

func newHIDSink() *hidSink { return &hidSink{kb: keyboard.Port()} }

func (s *hidSink) KeyDown(k core.Key) error {
	c, ok := hidKeycodes[k]
	if !ok {
		return errUnmappedKey
	}
	return s.kb.Down(c)
}

func (s *hidSink) KeyUp(k core.Key) error {
	c, ok := hidKeycodes[k]
	if !ok {
		return errUnmappedKey
	}
	return s.kb.Up(c)
}
