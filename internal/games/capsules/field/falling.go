package field

// FallingGrid holds every element currently in free fall. Gravity is a
// circular row offset over the backing array: Tick rotates the logical
// view one row down in O(1) without moving any cell.
type FallingGrid struct {
	cells  [FieldHeight][FieldWidth]fallCell
	offset int
}

type fallCell struct {
	full bool
	elem Element
}

// NewFallingGrid returns an empty falling grid.
func NewFallingGrid() *FallingGrid {
	return &FallingGrid{}
}

// MovingRow is a physical row handle. It stays pinned to its contents
// across ticks, so the capsule controller resolves its row once at spawn
// and converts back on demand.
type MovingRow int

// physical maps a logical row to its backing-array slot.
func (g *FallingGrid) physical(r Row) int {
	return (int(r) + g.offset) % FieldHeight
}

// Moving returns the physical handle for a logical row.
func (g *FallingGrid) Moving(r Row) MovingRow {
	return MovingRow(g.physical(r))
}

// Logical converts a physical handle back to the logical row it currently
// denotes. Panics on a handle that no grid row maps to, since such a
// handle can only come from a corrupted caller.
func (g *FallingGrid) Logical(m MovingRow) Row {
	v := (int(m) - g.offset) % FieldHeight
	if v < 0 {
		v += FieldHeight
	}
	r, ok := NewRow(v)
	if !ok {
		panic("field: moving row handle outside the grid")
	}
	return r
}

// Tick moves every falling element one row down by rotating the offset.
func (g *FallingGrid) Tick() {
	g.offset = (g.offset + FieldHeight - 1) % FieldHeight
}

// Get returns the element at a logical position, or false if vacant.
func (g *FallingGrid) Get(p Position) (Element, bool) {
	c := g.cells[g.physical(p.Row)][p.Col]
	return c.elem, c.full
}

// Occupied reports whether a logical position holds an element.
func (g *FallingGrid) Occupied(p Position) bool {
	return g.cells[g.physical(p.Row)][p.Col].full
}

// Set stores an element at a logical position.
func (g *FallingGrid) Set(p Position, e Element) {
	g.cells[g.physical(p.Row)][p.Col] = fallCell{full: true, elem: e}
}

// Take removes and returns the element at a logical position.
func (g *FallingGrid) Take(p Position) (Element, bool) {
	slot := &g.cells[g.physical(p.Row)][p.Col]
	if !slot.full {
		return Element{}, false
	}
	e := slot.elem
	*slot = fallCell{}
	return e, true
}

// Empty reports whether nothing is falling.
func (g *FallingGrid) Empty() bool {
	for r := range g.cells {
		for c := range g.cells[r] {
			if g.cells[r][c].full {
				return false
			}
		}
	}
	return true
}

// Each calls fn for every occupied cell in logical order, top row first,
// left to right.
func (g *FallingGrid) Each(fn func(p Position, e Element)) {
	for r := 0; r < FieldHeight; r++ {
		for c := 0; c < FieldWidth; c++ {
			p := At(Row(r), Col(c))
			if e, ok := g.Get(p); ok {
				fn(p, e)
			}
		}
	}
}
