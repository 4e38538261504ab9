package field

// Element is one capsule half as stored in the falling grid. A bound
// element remembers the direction of its partner half; the pair is kept
// consistent by the capsule controller and the cascade.
type Element struct {
	Color      Color
	HasPartner bool
	Partner    Direction
}

// Single creates an unbound element.
func Single(c Color) Element {
	return Element{Color: c}
}

// Bound creates an element whose partner lies in direction d.
func Bound(c Color, d Direction) Element {
	return Element{Color: c, HasPartner: true, Partner: d}
}

// PartnerDir returns the partner direction, or false for an unbound element.
func (e Element) PartnerDir() (Direction, bool) {
	return e.Partner, e.HasPartner
}

// TileKind discriminates settled-grid cell contents.
type TileKind uint8

const (
	TileEmpty TileKind = iota
	TileCapsule
	TileVirus
)

// Tile is one settled-grid cell: empty, a settled capsule element, or a
// virus. Viruses carry a colour but never a partner.
type Tile struct {
	Kind TileKind
	Elem Element
}

// EmptyTile returns the vacant tile.
func EmptyTile() Tile {
	return Tile{Kind: TileEmpty}
}

// VirusTile returns a virus of the given colour.
func VirusTile(c Color) Tile {
	return Tile{Kind: TileVirus, Elem: Single(c)}
}

// CapsuleTile wraps a capsule element into a settled tile.
func CapsuleTile(e Element) Tile {
	return Tile{Kind: TileCapsule, Elem: e}
}

// Occupied reports whether the tile holds anything.
func (t Tile) Occupied() bool {
	return t.Kind != TileEmpty
}

// Element returns the capsule element, or false if the tile is not a
// settled capsule half.
func (t Tile) Element() (Element, bool) {
	if t.Kind != TileCapsule {
		return Element{}, false
	}
	return t.Elem, true
}

// Color returns the tile's visible colour, or false for an empty tile.
func (t Tile) Color() (Color, bool) {
	if t.Kind == TileEmpty {
		return 0, false
	}
	return t.Elem.Color, true
}
