package core

// Rotation is the decoded result of one encoder poll.
type Rotation uint8

const (
	RotationNone Rotation = iota
	Clockwise
	CounterClockwise
)

func (r Rotation) String() string {
	switch r {
	case RotationNone:
		return "None"
	case Clockwise:
		return "Clockwise"
	case CounterClockwise:
		return "CounterClockwise"
	default:
		return "Unknown"
	}
}

// Step returns +1 for Clockwise, -1 for CounterClockwise and 0 otherwise.
func (r Rotation) Step() int {
	switch r {
	case Clockwise:
		return 1
	case CounterClockwise:
		return -1
	default:
		return 0
	}
}

// Decoder is a one-edge-per-detent quadrature decoder.
//
// Pins are active-low with pull-ups, so true means released/high. A rotation
// fires only on the falling edge of A; the level of B at that instant gives
// the direction. Rising edges of A are ignored, which filters half steps and
// contact bounce without a timer.
type Decoder struct {
	lastA bool
}

// NewDecoder returns a decoder seeded with the current level of pin A.
func NewDecoder(initialA bool) *Decoder {
	return &Decoder{lastA: initialA}
}

// Update consumes one sample of both pins. It must be called exactly once per
// scan cycle.
func (d *Decoder) Update(a, b bool) Rotation {
	falling := d.lastA && !a
	d.lastA = a
	if !falling {
		return RotationNone
	}
	if b {
		return CounterClockwise
	}
	return Clockwise
}
