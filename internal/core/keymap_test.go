package core

import "testing"

func TestDefaultKeymap_ModeSelectOnEveryLayer(t *testing.T) {
	km := DefaultKeymap()
	for layer := 0; layer < ModeCount; layer++ {
		if b := km.Lookup(layer, 0, 3); b.Kind != BindModeSelect {
			t.Errorf("layer %d: expected mode select at (0,3), got %v", layer, b)
		}
	}
}

func TestKeymap_LookupOutOfRange(t *testing.T) {
	km := DefaultKeymap()
	for _, pos := range [][3]int{{-1, 0, 0}, {3, 0, 0}, {0, Rows, 0}, {0, 0, Cols}, {0, -1, 0}} {
		if b := km.Lookup(pos[0], pos[1], pos[2]); b != NoKey {
			t.Errorf("Lookup%v: expected NoKey, got %v", pos, b)
		}
	}
}

func TestBinding_String(t *testing.T) {
	cases := map[Binding]string{
		Std(KeyN7):   "7",
		Ctrl(KeyC):   "Ctrl+C",
		Tap(KeyMute): "Tap(Mute)",
		ModeSelect:   "ModeSelect",
		NoKey:        "None",
	}
	for b, want := range cases {
		if got := b.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}

func TestParseKey_RoundTripsNames(t *testing.T) {
	for k := KeyNone; k < keyCount; k++ {
		got, ok := ParseKey(k.String())
		if !ok || got != k {
			t.Errorf("ParseKey(%q): expected %v, got %v (ok=%v)", k.String(), k, got, ok)
		}
	}
	if _, ok := ParseKey("NoSuchKey"); ok {
		t.Error("expected unknown name to fail")
	}
}
