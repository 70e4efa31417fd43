package main

import (
	"time"

	"macropad/internal/core"
)

// Linux input event types and codes (from <linux/input.h>)
const (
	EV_SYN = 0x00
	EV_KEY = 0x01

	SYN_REPORT = 0

	KEY_1          = 2
	KEY_2          = 3
	KEY_3          = 4
	KEY_4          = 5
	KEY_5          = 6
	KEY_6          = 7
	KEY_7          = 8
	KEY_8          = 9
	KEY_9          = 10
	KEY_0          = 11
	KEY_MINUS      = 12
	KEY_EQUAL      = 13
	KEY_BACKSPACE  = 14
	KEY_Y          = 21
	KEY_ENTER      = 28
	KEY_LEFTCTRL   = 29
	KEY_A          = 30
	KEY_S          = 31
	KEY_Z          = 44
	KEY_X          = 45
	KEY_C          = 46
	KEY_V          = 47
	KEY_DOT        = 52
	KEY_KPASTERISK = 55
	KEY_KPPLUS     = 78
	KEY_KPSLASH    = 98

	KEY_MUTE         = 113
	KEY_VOLUMEDOWN   = 114
	KEY_VOLUMEUP     = 115
	KEY_NEXTSONG     = 163
	KEY_PLAYPAUSE    = 164
	KEY_PREVIOUSSONG = 165

	KEY_F13 = 183
	KEY_F14 = 184
	KEY_F15 = 185
	KEY_F16 = 186
	KEY_F17 = 187
	KEY_F18 = 188
	KEY_F19 = 189
	KEY_F20 = 190
	KEY_F21 = 191
	KEY_F22 = 192
)

// Input event value constants
const (
	evValueRelease = 0
	evValuePress   = 1
	evValueRepeat  = 2
)

// linuxKeyCodes maps every logical key to the code emitted through uinput.
// Plus has no unshifted key on a US layout, so the keypad plus is used.
var linuxKeyCodes = map[core.Key]uint16{
	core.KeyN0:             KEY_0,
	core.KeyN1:             KEY_1,
	core.KeyN2:             KEY_2,
	core.KeyN3:             KEY_3,
	core.KeyN4:             KEY_4,
	core.KeyN5:             KEY_5,
	core.KeyN6:             KEY_6,
	core.KeyN7:             KEY_7,
	core.KeyN8:             KEY_8,
	core.KeyN9:             KEY_9,
	core.KeyDot:            KEY_DOT,
	core.KeyEnter:          KEY_ENTER,
	core.KeyPlus:           KEY_KPPLUS,
	core.KeyMinus:          KEY_MINUS,
	core.KeyAsterisk:       KEY_KPASTERISK,
	core.KeySlash:          KEY_KPSLASH,
	core.KeyEqual:          KEY_EQUAL,
	core.KeyBackspace:      KEY_BACKSPACE,
	core.KeyA:              KEY_A,
	core.KeyC:              KEY_C,
	core.KeyS:              KEY_S,
	core.KeyV:              KEY_V,
	core.KeyX:              KEY_X,
	core.KeyY:              KEY_Y,
	core.KeyZ:              KEY_Z,
	core.KeyF13:            KEY_F13,
	core.KeyF14:            KEY_F14,
	core.KeyF15:            KEY_F15,
	core.KeyF16:            KEY_F16,
	core.KeyF17:            KEY_F17,
	core.KeyF18:            KEY_F18,
	core.KeyF19:            KEY_F19,
	core.KeyF20:            KEY_F20,
	core.KeyF21:            KEY_F21,
	core.KeyF22:            KEY_F22,
	core.KeyMediaPrev:      KEY_PREVIOUSSONG,
	core.KeyMediaPlayPause: KEY_PLAYPAUSE,
	core.KeyMediaNext:      KEY_NEXTSONG,
	core.KeyMute:           KEY_MUTE,
	core.KeyVolumeUp:       KEY_VOLUMEUP,
	core.KeyVolumeDown:     KEY_VOLUMEDOWN,
	core.KeyLeftCtrl:       KEY_LEFTCTRL,
}

// Daemon defaults
const (
	// 100 Hz makes the 30-cycle selection blink roughly 0.3 s, as on the
	// stock board.
	defaultScanHz = 100

	defaultEncoderBackend = "gpio"
	defaultPinA           = "GPIO17"
	defaultPinB           = "GPIO27"
	defaultModeSelectPin  = "GPIO22"

	defaultOutputBackend = "uinput"
	defaultUinputPath    = "/dev/uinput"
	defaultDeviceName    = "macropad"

	defaultSocketPath    = "/tmp/macropad.sock"
	defaultStateWSListen = "127.0.0.1:3002"
	defaultStateWSPath   = "/ws/state"

	// Mode-select pin debounce, same figure the HAT button driver uses.
	modeKeyDebounce = 10 * time.Millisecond

	// How often blocking readers wake up to check for shutdown.
	shutdownPollInterval = 200 * time.Millisecond
)
