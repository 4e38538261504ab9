package field

// SettledGrid holds everything at rest: viruses and locked capsule halves.
// Cells here never move; they only appear via Settle and disappear via
// Eliminate or Unsettle.
type SettledGrid struct {
	tiles [FieldHeight][FieldWidth]Tile
}

// NewSettledGrid returns an empty settled grid.
func NewSettledGrid() *SettledGrid {
	return &SettledGrid{}
}

// Get returns the tile at p.
func (g *SettledGrid) Get(p Position) Tile {
	return g.tiles[p.Row][p.Col]
}

// Set stores a tile at p.
func (g *SettledGrid) Set(p Position, t Tile) {
	g.tiles[p.Row][p.Col] = t
}

// Take removes and returns the tile at p.
func (g *SettledGrid) Take(p Position) Tile {
	t := g.tiles[p.Row][p.Col]
	g.tiles[p.Row][p.Col] = EmptyTile()
	return t
}

// Occupied reports whether p holds a tile.
func (g *SettledGrid) Occupied(p Position) bool {
	return g.tiles[p.Row][p.Col].Occupied()
}

// ColorAt implements ColorSource over settled tiles.
func (g *SettledGrid) ColorAt(p Position) (Color, bool) {
	return g.tiles[p.Row][p.Col].Color()
}

// Defeated reports whether anything has settled in the top row.
func (g *SettledGrid) Defeated() bool {
	for c := range g.tiles[0] {
		if g.tiles[0][c].Occupied() {
			return true
		}
	}
	return false
}

// VirusCount returns the number of viruses still on the grid.
func (g *SettledGrid) VirusCount() int {
	n := 0
	for r := range g.tiles {
		for c := range g.tiles[r] {
			if g.tiles[r][c].Kind == TileVirus {
				n++
			}
		}
	}
	return n
}

// Each calls fn for every occupied tile, top row first, left to right.
func (g *SettledGrid) Each(fn func(p Position, t Tile)) {
	for r := range g.tiles {
		for c := range g.tiles[r] {
			if g.tiles[r][c].Occupied() {
				fn(At(Row(r), Col(c)), g.tiles[r][c])
			}
		}
	}
}
