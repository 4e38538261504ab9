package field

// Movement is a player request on the live capsule.
type Movement uint8

const (
	MoveLeft Movement = iota
	MoveRight
	MoveRotateCW
	MoveRotateCCW
)

// Update is one renderer instruction: clear a cell or paint it. Mutating
// operations emit updates in application order, clears before sets, so a
// renderer can replay them positionally without diffing the grids.
type Update struct {
	Pos   Position
	Color Color
	Clear bool
}

func clearAt(p Position) Update {
	return Update{Pos: p, Clear: true}
}

func paintAt(p Position, c Color) Update {
	return Update{Pos: p, Color: c}
}

// Capsule is the controller for the player's live pair. It tracks one of
// the two elements by physical row handle and column; the partner is
// always rediscovered through that element's partner direction, so the
// controller never goes stale while the pair keeps falling.
type Capsule struct {
	row MovingRow
	col Col
}

// Spawn inserts a fresh horizontal pair on the top row, centred, left half
// first. The caller must ensure the spawn cells are free; the returned
// updates paint the two halves.
func Spawn(g *FallingGrid, left, right Color) (*Capsule, []Update) {
	lp := At(0, FieldWidth/2-1)
	rp := At(0, FieldWidth/2)
	g.Set(lp, Bound(left, DirRight))
	g.Set(rp, Bound(right, DirLeft))
	return &Capsule{row: g.Moving(0), col: lp.Col},
		[]Update{paintAt(lp, left), paintAt(rp, right)}
}

// Pair returns the tracked element's position and its partner's.
// Panics if the grid no longer matches the controller, which means the
// pair was consumed without discarding the controller.
func (c *Capsule) Pair(g *FallingGrid) (self, partner Position) {
	self = At(g.Logical(c.row), c.col)
	e, ok := g.Get(self)
	if !ok {
		panic("field: capsule controller points at an empty cell")
	}
	d, bound := e.PartnerDir()
	if !bound {
		panic("field: capsule controller tracks an unbound element")
	}
	partner, ok = self.Step(d)
	if !ok {
		panic("field: capsule partner direction leaves the grid")
	}
	return self, partner
}

// Active reports whether the tracked element is still in the falling grid.
// Once the pair settles the controller must be discarded.
func (c *Capsule) Active(g *FallingGrid) bool {
	return g.Occupied(At(g.Logical(c.row), c.col))
}

// Apply attempts a movement. Every movement runs the same way: compute the
// pair's target positions and orientations, reject if any target is off
// the grid or collides with a settled tile, then clear the old cells and
// write the new ones. On success it returns the four ordered updates; on
// rejection it returns false with no state change.
func (c *Capsule) Apply(m Movement, fg *FallingGrid, sg *SettledGrid) ([]Update, bool) {
	selfPos, partnerPos := c.Pair(fg)
	selfEl, _ := fg.Get(selfPos)
	partnerEl, ok := fg.Get(partnerPos)
	if !ok {
		panic("field: capsule partner cell is empty")
	}

	newSelf, newPartner := selfPos, partnerPos
	newSelfEl, newPartnerEl := selfEl, partnerEl

	switch m {
	case MoveLeft, MoveRight:
		d := DirLeft
		if m == MoveRight {
			d = DirRight
		}
		ns, ok := selfPos.Step(d)
		if !ok {
			return nil, false
		}
		np, ok := partnerPos.Step(d)
		if !ok {
			return nil, false
		}
		newSelf, newPartner = ns, np

	case MoveRotateCW, MoveRotateCCW:
		spin := SpinCW
		if m == MoveRotateCCW {
			spin = SpinCCW
		}
		// The tracked element is the pivot: the partner swings around it
		// and both partner directions turn by the same spin.
		nd := newSelfEl.Partner.Rotate(spin)
		np, ok := selfPos.Step(nd)
		if !ok {
			return nil, false
		}
		newPartner = np
		newSelfEl.Partner = nd
		newPartnerEl.Partner = nd.Opposite()
	}

	if sg.Occupied(newSelf) || sg.Occupied(newPartner) {
		return nil, false
	}

	fg.Take(selfPos)
	fg.Take(partnerPos)
	fg.Set(newSelf, newSelfEl)
	fg.Set(newPartner, newPartnerEl)

	// Re-anchor on whichever new cell shares the tracked row.
	if g := fg.Logical(c.row); newSelf.Row == g {
		c.col = newSelf.Col
	} else {
		c.row = fg.Moving(newSelf.Row)
		c.col = newSelf.Col
	}

	return []Update{
		clearAt(selfPos),
		clearAt(partnerPos),
		paintAt(newSelf, newSelfEl.Color),
		paintAt(newPartner, newPartnerEl.Color),
	}, true
}
