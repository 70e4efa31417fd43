package core

// Key is a logical key identifier. Hosts translate it to their own codes
// (Linux input codes for uinput, HID usages for the firmware).
type Key uint8

const (
	KeyNone Key = iota

	KeyN0
	KeyN1
	KeyN2
	KeyN3
	KeyN4
	KeyN5
	KeyN6
	KeyN7
	KeyN8
	KeyN9
	KeyDot
	KeyEnter
	KeyPlus
	KeyMinus
	KeyAsterisk
	KeySlash
	KeyEqual
	KeyBackspace

	KeyA
	KeyC
	KeyS
	KeyV
	KeyX
	KeyY
	KeyZ

	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22

	KeyMediaPrev
	KeyMediaPlayPause
	KeyMediaNext
	KeyMute
	KeyVolumeUp
	KeyVolumeDown

	KeyLeftCtrl

	keyCount
)

var keyNames = [keyCount]string{
	KeyNone:           "None",
	KeyN0:             "0",
	KeyN1:             "1",
	KeyN2:             "2",
	KeyN3:             "3",
	KeyN4:             "4",
	KeyN5:             "5",
	KeyN6:             "6",
	KeyN7:             "7",
	KeyN8:             "8",
	KeyN9:             "9",
	KeyDot:            "Dot",
	KeyEnter:          "Enter",
	KeyPlus:           "Plus",
	KeyMinus:          "Minus",
	KeyAsterisk:       "Asterisk",
	KeySlash:          "Slash",
	KeyEqual:          "Equal",
	KeyBackspace:      "Backspace",
	KeyA:              "A",
	KeyC:              "C",
	KeyS:              "S",
	KeyV:              "V",
	KeyX:              "X",
	KeyY:              "Y",
	KeyZ:              "Z",
	KeyF13:            "F13",
	KeyF14:            "F14",
	KeyF15:            "F15",
	KeyF16:            "F16",
	KeyF17:            "F17",
	KeyF18:            "F18",
	KeyF19:            "F19",
	KeyF20:            "F20",
	KeyF21:            "F21",
	KeyF22:            "F22",
	KeyMediaPrev:      "MediaPrev",
	KeyMediaPlayPause: "MediaPlayPause",
	KeyMediaNext:      "MediaNext",
	KeyMute:           "Mute",
	KeyVolumeUp:       "VolumeUp",
	KeyVolumeDown:     "VolumeDown",
	KeyLeftCtrl:       "LeftCtrl",
}

func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return "Unknown"
}

// ParseKey returns the key whose String() is name.
func ParseKey(name string) (Key, bool) {
	for k, n := range keyNames {
		if n == name {
			return Key(k), true
		}
	}
	return KeyNone, false
}

// KeySink is the host key-dispatch API.
type KeySink interface {
	KeyDown(k Key) error
	KeyUp(k Key) error
}
