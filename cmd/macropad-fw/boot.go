//go:build tinygo && rp2040

package main

// bootHeld reports whether the top-right key is down at power-on. The
// firmware then stays idle so the board can be reflashed without the
// keyboard talking to the host.
func bootHeld(m *matrix) bool {
	return m.pressed(0, 3)
}
