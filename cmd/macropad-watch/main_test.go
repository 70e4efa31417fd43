package main

import (
	"strings"
	"testing"
)

func TestFormatFrame(t *testing.T) {
	const ts = `"ts":"2024-05-01T10:00:00Z"`
	cases := []struct {
		frame string
		want  string
	}{
		{`{"type":"mode_changed",` + ts + `,"data":{"mode":"Media","mode_index":1,"layer":1}}`, "[MODE] Media (layer 1)"},
		{`{"type":"selecting_changed",` + ts + `,"data":{"selecting":true}}`, "[SELECT] ON"},
		{`{"type":"indicator_changed",` + ts + `,"data":{"color":{"r":76,"g":0,"b":0}}}`, "[LED] #4c0000"},
		{`{"type":"key_up",` + ts + `,"data":{"key":"VolumeUp"}}`, "[KEY] UP   VolumeUp"},
		{`{"type":"state_init",` + ts + `,"data":{"mode":"Numpad","layer":0,"selecting":false}}`, "led=unset"},
		{`not json`, "[TEXT] not json"},
	}
	for _, tc := range cases {
		got, ok := formatFrame([]byte(tc.frame), true)
		if !ok || !strings.Contains(got, tc.want) {
			t.Errorf("formatFrame(%s) = %q, want it to contain %q", tc.frame, got, tc.want)
		}
	}
}

func TestFormatFrame_HidesKeys(t *testing.T) {
	if _, ok := formatFrame([]byte(`{"type":"key_down","data":{"key":"A"}}`), false); ok {
		t.Fatalf("key frames should be hidden")
	}
}
