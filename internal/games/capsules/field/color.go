package field

// Color is one of the three capsule/virus colours.
type Color uint8

const (
	ColorRed Color = iota
	ColorYellow
	ColorBlue

	colorCount = 3
)

// Spin is a rotation sense, shared by colour cycling and capsule rotation.
type Spin uint8

const (
	SpinCW Spin = iota
	SpinCCW
)

// Rotate returns the next colour in the 3-cycle for the given spin.
// The mapping is a bijection, so three rotations in the same spin return
// the original colour and opposite spins undo each other.
func (c Color) Rotate(s Spin) Color {
	if s == SpinCW {
		return (c + 1) % colorCount
	}
	return (c + 2) % colorCount
}

// String returns the colour name.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "Red"
	case ColorYellow:
		return "Yellow"
	case ColorBlue:
		return "Blue"
	default:
		return "Unknown"
	}
}

// RandomColor draws a uniform colour from rng.
func RandomColor(rng Rand) Color {
	return Color(rng.Intn(colorCount))
}

// RandomSpin draws a uniform spin from rng.
func RandomSpin(rng Rand) Spin {
	if rng.Intn(2) == 0 {
		return SpinCW
	}
	return SpinCCW
}

// ColorSource is the lookup the run detector scans over. Implementations
// report the visible colour of a cell, or false for an empty cell.
type ColorSource interface {
	ColorAt(p Position) (Color, bool)
}
