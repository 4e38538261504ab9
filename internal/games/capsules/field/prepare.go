package field

// Rand is the randomness the field needs. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Placement is one virus placed during field preparation.
type Placement struct {
	Pos   Position
	Color Color
}

// PlaceViruses picks count distinct uniform positions inside the given row
// span and assigns each a random colour, rotating the colour with a fixed
// random spin whenever the candidate would complete a run of MinRunLen on
// the field built so far. With three colours at most two rotations are
// ever needed, since a cell touches at most two runs-in-waiting (one per
// axis) and each blocks one colour.
//
// Returns the placements in placement order. count must not exceed the
// number of cells in rows; asking for more is a caller bug and panics.
func PlaceViruses(rng Rand, rows Span[Row], count int) []Placement {
	cells := make([]Position, 0, rows.Len()*FieldWidth)
	for r := range rows.Asc() {
		for c := range NewSpan(Col(0), RightmostCol).Asc() {
			cells = append(cells, At(r, c))
		}
	}
	if count > len(cells) {
		panic("field: more viruses requested than cells in the target rows")
	}

	scratch := NewSettledGrid()
	placements := make([]Placement, 0, count)
	for len(placements) < count {
		i := rng.Intn(len(cells))
		pos := cells[i]
		cells[i] = cells[len(cells)-1]
		cells = cells[:len(cells)-1]

		color := RandomColor(rng)
		spin := RandomSpin(rng)
		placed := false
		for try := 0; try < colorCount; try++ {
			scratch.Set(pos, VirusTile(color))
			if _, runs := DetectRun(scratch, pos); !runs {
				placed = true
				break
			}
			scratch.Take(pos)
			color = color.Rotate(spin)
		}
		if !placed {
			panic("field: no colour avoids a run at a virus placement")
		}
		placements = append(placements, Placement{Pos: pos, Color: color})
	}
	return placements
}
