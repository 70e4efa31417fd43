package main

import "testing"

func TestModeSelectEventFor(t *testing.T) {
	const code = KEY_F13

	cases := []struct {
		name string
		ev   inputEvent
		want Event
	}{
		{"press", inputEvent{Type: EV_KEY, Code: code, Value: evValuePress}, ModeSelectPress{}},
		{"release", inputEvent{Type: EV_KEY, Code: code, Value: evValueRelease}, ModeSelectRelease{}},
		{"autorepeat", inputEvent{Type: EV_KEY, Code: code, Value: evValueRepeat}, nil},
		{"other key", inputEvent{Type: EV_KEY, Code: KEY_ENTER, Value: evValuePress}, nil},
		{"sync", inputEvent{Type: EV_SYN, Code: SYN_REPORT}, nil},
	}
	for _, tc := range cases {
		if got := modeSelectEventFor(tc.ev, code); got != tc.want {
			t.Errorf("%s: got %#v, want %#v", tc.name, got, tc.want)
		}
	}
}
