//go:build tinygo && rp2040

package main

import (
	"machine"
	"time"

	"macropad/internal/core"
)

var (
	rowPins = [core.Rows]machine.Pin{machine.D4, machine.D5, machine.D6, machine.D10, machine.D9}
	colPins = [core.Cols]machine.Pin{machine.D0, machine.D1, machine.D2, machine.D3}

	encoderPinA = machine.D8
	encoderPinB = machine.D7
	ledPin      = machine.GPIO14
)

// matrix scans a row-driven, column-read key grid. Rows idle high and are
// pulled low one at a time; a pressed key pulls its column low.
type matrix struct {
	rows  [core.Rows]machine.Pin
	cols  [core.Cols]machine.Pin
	state [core.Rows][core.Cols]bool
}

func newMatrix(rows [core.Rows]machine.Pin, cols [core.Cols]machine.Pin) *matrix {
	return &matrix{rows: rows, cols: cols}
}

func (m *matrix) configure() {
	for _, r := range m.rows {
		r.Configure(machine.PinConfig{Mode: machine.PinOutput})
		r.High()
	}
	for _, c := range m.cols {
		c.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}
}

// pressed reads a single position.
func (m *matrix) pressed(row, col int) bool {
	m.rows[row].Low()
	settle()
	down := !m.cols[col].Get()
	m.rows[row].High()
	return down
}

// scan reads the whole grid and reports edges.
func (m *matrix) scan(press, release func(row, col int)) {
	for r := range m.rows {
		m.rows[r].Low()
		settle()
		for c := range m.cols {
			down := !m.cols[c].Get()
			if down == m.state[r][c] {
				continue
			}
			m.state[r][c] = down
			if down {
				press(r, c)
			} else {
				release(r, c)
			}
		}
		m.rows[r].High()
	}
}

// settle gives the column lines time to follow the row change.
func settle() { time.Sleep(5 * time.Microsecond) }

// encoderPins samples the two encoder lines for the decoder.
type encoderPins struct {
	a, b machine.Pin
}

func newEncoderPins(a, b machine.Pin) *encoderPins {
	a.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	b.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return &encoderPins{a: a, b: b}
}

func (p *encoderPins) Levels() (bool, bool) { return p.a.Get(), p.b.Get() }
