package field

// MinRunLen is the run length that triggers elimination.
const MinRunLen = 4

// Axis identifies a run orientation.
type Axis uint8

const (
	AxisRow Axis = iota
	AxisCol
)

// Run is a maximal same-colour line of at least MinRunLen tiles. Line is
// the fixed row (AxisRow) or column (AxisCol); the span covers the moving
// index, inclusive. Runs compare structurally, so the same line detected
// from two hint positions deduplicates to one value.
type Run struct {
	Color Color
	Axis  Axis
	Line  uint8
	Range Span[uint8]
}

// Len returns the run length in tiles.
func (r Run) Len() int {
	return r.Range.Len()
}

// Positions lists the run's cells in ascending order along its axis.
func (r Run) Positions() []Position {
	out := make([]Position, 0, r.Len())
	for v := range r.Range.Asc() {
		if r.Axis == AxisRow {
			out = append(out, At(Row(r.Line), Col(v)))
		} else {
			out = append(out, At(Row(v), Col(r.Line)))
		}
	}
	return out
}

// DetectRun scans outward from a hint position for a maximal same-colour
// run through it. The horizontal axis is checked first and wins on any
// qualifying length; the vertical axis is only consulted after. Returns
// false if the hint cell is empty or no direction reaches MinRunLen.
func DetectRun(src ColorSource, at Position) (Run, bool) {
	c, ok := src.ColorAt(at)
	if !ok {
		return Run{}, false
	}

	match := func(p Position, d Direction) (Position, bool) {
		q, ok := p.Step(d)
		if !ok {
			return Position{}, false
		}
		qc, ok := src.ColorAt(q)
		return q, ok && qc == c
	}

	lo, hi := at, at
	for q, ok := match(lo, DirLeft); ok; q, ok = match(lo, DirLeft) {
		lo = q
	}
	for q, ok := match(hi, DirRight); ok; q, ok = match(hi, DirRight) {
		hi = q
	}
	if int(hi.Col)-int(lo.Col)+1 >= MinRunLen {
		return Run{
			Color: c,
			Axis:  AxisRow,
			Line:  uint8(at.Row),
			Range: NewSpan(uint8(lo.Col), uint8(hi.Col)),
		}, true
	}

	lo, hi = at, at
	for q, ok := match(lo, DirAbove); ok; q, ok = match(lo, DirAbove) {
		lo = q
	}
	for q, ok := match(hi, DirBelow); ok; q, ok = match(hi, DirBelow) {
		hi = q
	}
	if int(hi.Row)-int(lo.Row)+1 >= MinRunLen {
		return Run{
			Color: c,
			Axis:  AxisCol,
			Line:  uint8(at.Col),
			Range: NewSpan(uint8(lo.Row), uint8(hi.Row)),
		}, true
	}

	return Run{}, false
}
