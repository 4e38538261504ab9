package capsules

import "github.com/vovakirdan/tui-capsules/internal/games/capsules/field"

// board couples one falling/settled grid pair with the capsule controller
// and the cascade bookkeeping for a single player. The single-player game
// owns one board; the versus game owns two.
type board struct {
	falling *field.FallingGrid
	settled *field.SettledGrid
	capsule *field.Capsule

	// lowest is the bottom-most row any falling element occupies,
	// maintained across spawns, gravity ticks and cascades. Only valid
	// while hasFalling is true.
	lowest     field.Row
	hasFalling bool

	// capsuleCells mirrors the live capsule's cells, maintained purely by
	// replaying the ordered update lists the controller emits.
	capsuleCells map[field.Position]field.Color
}

// tickOutcome summarizes what one gravity tick's cascade did.
type tickOutcome struct {
	ClearedTiles   int
	ClearedViruses int
	Locked         bool // the player capsule came to rest this tick
}

func newBoard() *board {
	return &board{
		falling:      field.NewFallingGrid(),
		settled:      field.NewSettledGrid(),
		capsuleCells: make(map[field.Position]field.Color),
	}
}

// prepare seeds the settled grid with viruses between topRow and the floor.
func (b *board) prepare(rng field.Rand, viruses int, topRow field.Row) {
	rows := field.NewSpan(topRow, field.BottomRow)
	if max := rows.Len() * field.FieldWidth; viruses > max {
		viruses = max
	}
	for _, pl := range field.PlaceViruses(rng, rows, viruses) {
		b.settled.Set(pl.Pos, field.VirusTile(pl.Color))
	}
}

// spawnBlocked reports whether the capsule entry cells are occupied.
func (b *board) spawnBlocked() bool {
	return b.settled.Occupied(field.At(0, field.FieldWidth/2-1)) ||
		b.settled.Occupied(field.At(0, field.FieldWidth/2))
}

// spawn inserts a new capsule with two colours drawn from rng.
func (b *board) spawn(rng field.Rand) {
	left := field.RandomColor(rng)
	right := left.Rotate(field.RandomSpin(rng))
	ctl, updates := field.Spawn(b.falling, left, right)
	b.capsule = ctl
	b.applyUpdates(updates)
	if !b.hasFalling {
		b.lowest = 0
		b.hasFalling = true
	}
}

// move forwards a player movement to the live capsule.
func (b *board) move(m field.Movement) bool {
	if b.capsule == nil {
		return false
	}
	updates, ok := b.capsule.Apply(m, b.falling, b.settled)
	if !ok {
		return false
	}
	b.applyUpdates(updates)
	// A rotation can push a half one row below the tracked bound; the
	// settle sweep starts at lowest, so it must cover the whole pair.
	for p := range b.capsuleCells {
		if p.Row > b.lowest {
			b.lowest = p.Row
		}
	}
	return true
}

// applyUpdates replays an ordered update list onto the capsule mirror.
func (b *board) applyUpdates(updates []field.Update) {
	for _, u := range updates {
		if u.Clear {
			delete(b.capsuleCells, u.Pos)
		} else {
			b.capsuleCells[u.Pos] = u.Color
		}
	}
}

// gravity advances the falling grid one row and runs the cascade:
// settle what found support, eliminate runs through what settled, then
// unsettle whatever the eliminations left hanging.
func (b *board) gravity() tickOutcome {
	var out tickOutcome
	if !b.hasFalling {
		return out
	}

	b.falling.Tick()
	if b.lowest < field.BottomRow {
		b.lowest++
	}
	// The capsule mirror moves with the grid.
	if len(b.capsuleCells) > 0 {
		shifted := make(map[field.Position]field.Color, len(b.capsuleCells))
		for p, c := range b.capsuleCells {
			if q, ok := p.Step(field.DirBelow); ok {
				shifted[q] = c
			}
		}
		b.capsuleCells = shifted
	}

	virusesBefore := b.settled.VirusCount()
	settled, next, more := field.Settle(b.falling, b.settled, b.lowest)

	// The lock verdict must come before eliminations run: a run through
	// the freshly settled pair can clear one half and unsettle the other,
	// which would leave the controller tracking an unbound survivor.
	if b.capsule != nil {
		for _, p := range settled {
			if _, live := b.capsuleCells[p]; live {
				b.capsule = nil
				clear(b.capsuleCells)
				out.Locked = true
				break
			}
		}
	}

	elim := field.Eliminate(b.settled, settled)
	low, touched := field.Unsettle(b.falling, b.settled, elim)

	b.hasFalling = more || touched
	switch {
	case more && touched:
		b.lowest = max(next, low)
	case more:
		b.lowest = next
	case touched:
		b.lowest = low
	}

	out.ClearedTiles = len(elim.Cleared)
	out.ClearedViruses = virusesBefore - b.settled.VirusCount()
	return out
}

// idle reports whether nothing is falling and no capsule is live, i.e.
// the board is ready for the next spawn or a verdict.
func (b *board) idle() bool {
	return b.capsule == nil && !b.hasFalling
}
