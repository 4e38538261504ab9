// Package field implements the playing-field simulation for the capsules
// game: the settled and falling grids, the player-controlled capsule, the
// settle/eliminate/unsettle cascade and the randomized virus placement.
// The package is UI-agnostic, deterministic and free of external
// dependencies so the whole engine stays testable in isolation.
package field

import "iter"

// Field dimensions in cells. Row 0 is the top row, column 0 the leftmost.
const (
	FieldWidth  = 8
	FieldHeight = 16
)

// Row is a bounded row index in [0, FieldHeight).
type Row uint8

// Col is a bounded column index in [0, FieldWidth).
type Col uint8

// BottomRow is the floor row of the field.
const BottomRow = Row(FieldHeight - 1)

// RightmostCol is the last column of the field.
const RightmostCol = Col(FieldWidth - 1)

// NewRow converts an unbounded integer to a Row.
// Returns false if the value is outside the field.
func NewRow(v int) (Row, bool) {
	if v < 0 || v >= FieldHeight {
		return 0, false
	}
	return Row(v), true
}

// NewCol converts an unbounded integer to a Col.
// Returns false if the value is outside the field.
func NewCol(v int) (Col, bool) {
	if v < 0 || v >= FieldWidth {
		return 0, false
	}
	return Col(v), true
}

// Direction identifies one of the four neighbours of a cell.
// The declaration order is clockwise so rotation is modular arithmetic.
type Direction uint8

const (
	DirAbove Direction = iota
	DirRight
	DirBelow
	DirLeft
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirAbove:
		return "Above"
	case DirRight:
		return "Right"
	case DirBelow:
		return "Below"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Delta returns the (row, col) offset of one step in this direction.
func (d Direction) Delta() (dr, dc int) {
	switch d {
	case DirAbove:
		return -1, 0
	case DirRight:
		return 0, 1
	case DirBelow:
		return 1, 0
	case DirLeft:
		return 0, -1
	default:
		return 0, 0
	}
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return Direction((d + 2) % 4)
}

// Rotate returns the direction turned a quarter in the given spin.
func (d Direction) Rotate(s Spin) Direction {
	if s == SpinCW {
		return Direction((d + 1) % 4)
	}
	return Direction((d + 3) % 4)
}

// Position is a cell location on either grid.
type Position struct {
	Row Row
	Col Col
}

// At is a convenience constructor for Position.
func At(r Row, c Col) Position {
	return Position{Row: r, Col: c}
}

// Step returns the adjacent position in the given direction.
// Returns false at a field edge.
func (p Position) Step(d Direction) (Position, bool) {
	dr, dc := d.Delta()
	r, ok := NewRow(int(p.Row) + dr)
	if !ok {
		return Position{}, false
	}
	c, ok := NewCol(int(p.Col) + dc)
	if !ok {
		return Position{}, false
	}
	return Position{Row: r, Col: c}, true
}

// Span is an inclusive range of index values, From <= To.
type Span[T ~uint8] struct {
	From T
	To   T
}

// NewSpan creates an inclusive span. Panics if from > to since a span with
// no orientation cannot be iterated meaningfully.
func NewSpan[T ~uint8](from, to T) Span[T] {
	if from > to {
		panic("field: span bounds out of order")
	}
	return Span[T]{From: from, To: to}
}

// Len returns the number of indices in the span.
func (s Span[T]) Len() int {
	return int(s.To) - int(s.From) + 1
}

// Contains returns true if v lies inside the span.
func (s Span[T]) Contains(v T) bool {
	return v >= s.From && v <= s.To
}

// Asc iterates the span from From up to To.
func (s Span[T]) Asc() iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := s.From; ; v++ {
			if !yield(v) {
				return
			}
			if v == s.To {
				return
			}
		}
	}
}

// Desc iterates the span from To down to From.
func (s Span[T]) Desc() iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := s.To; ; v-- {
			if !yield(v) {
				return
			}
			if v == s.From {
				return
			}
		}
	}
}
