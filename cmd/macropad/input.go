package main

// inputEvent represents a Linux input event structure
// struct input_event { struct timeval time; __u16 type; __u16 code; __s32 value; };
type inputEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

// modeSelectEventFor translates an evdev event into a mode-select event.
// Autorepeat and other keys yield nil.
func modeSelectEventFor(ev inputEvent, code uint16) Event {
	if ev.Type != EV_KEY || ev.Code != code {
		return nil
	}
	switch ev.Value {
	case evValuePress:
		return ModeSelectPress{}
	case evValueRelease:
		return ModeSelectRelease{}
	default:
		return nil
	}
}
