package field

import "testing"

func countFalling(fg *FallingGrid) int {
	n := 0
	fg.Each(func(Position, Element) { n++ })
	return n
}

func countSettled(sg *SettledGrid) int {
	n := 0
	sg.Each(func(Position, Tile) { n++ })
	return n
}

func TestSettleOnFloor(t *testing.T) {
	fg := NewFallingGrid()
	sg := NewSettledGrid()
	fg.Set(At(BottomRow, 3), Single(ColorRed))

	settled, _, more := Settle(fg, sg, BottomRow)
	if more {
		t.Error("elements reported still falling")
	}
	if len(settled) != 1 || settled[0] != At(BottomRow, 3) {
		t.Fatalf("settled = %v, want [(15,3)]", settled)
	}
	if !sg.Occupied(At(BottomRow, 3)) || fg.Occupied(At(BottomRow, 3)) {
		t.Error("element not transferred to the settled grid")
	}
}

func TestSettleStackInOneSweep(t *testing.T) {
	fg := NewFallingGrid()
	sg := NewSettledGrid()
	fg.Set(At(BottomRow, 0), Single(ColorRed))
	fg.Set(At(14, 0), Single(ColorBlue))

	settled, _, more := Settle(fg, sg, BottomRow)
	if more {
		t.Error("stack did not fully settle in one sweep")
	}
	if len(settled) != 2 {
		t.Fatalf("settled %d elements, want 2", len(settled))
	}
	if settled[0] != At(BottomRow, 0) || settled[1] != At(14, 0) {
		t.Errorf("settlement order = %v, want bottom first", settled)
	}
}

func TestSettlePullsBoundPartner(t *testing.T) {
	fg := NewFallingGrid()
	sg := NewSettledGrid()
	fg.Set(At(BottomRow, 2), Bound(ColorRed, DirAbove))
	fg.Set(At(14, 2), Bound(ColorBlue, DirBelow))

	settled, _, more := Settle(fg, sg, BottomRow)
	if more {
		t.Error("pair did not fully settle")
	}
	if len(settled) != 2 || settled[0] != At(BottomRow, 2) || settled[1] != At(14, 2) {
		t.Fatalf("settled = %v, want supported half then its partner", settled)
	}
	if !sg.Occupied(At(14, 2)) {
		t.Error("partner not in the settled grid")
	}
}

func TestSettleHorizontalPairSingleSupport(t *testing.T) {
	fg := NewFallingGrid()
	sg := NewSettledGrid()
	sg.Set(At(BottomRow, 1), VirusTile(ColorYellow))
	fg.Set(At(14, 1), Bound(ColorRed, DirRight))
	fg.Set(At(14, 2), Bound(ColorBlue, DirLeft))

	settled, _, more := Settle(fg, sg, 14)
	if more {
		t.Error("pair with one supported half did not settle")
	}
	if len(settled) != 2 {
		t.Fatalf("settled %d elements, want 2", len(settled))
	}
	if !sg.Occupied(At(14, 1)) || !sg.Occupied(At(14, 2)) {
		t.Error("both halves should be settled")
	}
}

func TestSettleUnsupportedStays(t *testing.T) {
	fg := NewFallingGrid()
	sg := NewSettledGrid()
	fg.Set(At(10, 3), Single(ColorRed))

	settled, next, more := Settle(fg, sg, 10)
	if len(settled) != 0 {
		t.Fatalf("settled = %v, want none", settled)
	}
	if !more || next != 10 {
		t.Errorf("(next, more) = (%d, %v), want (10, true)", next, more)
	}
	if !fg.Occupied(At(10, 3)) {
		t.Error("unsupported element left the falling grid")
	}
}

func TestEliminateClearsRunAndExposesPartner(t *testing.T) {
	sg := NewSettledGrid()
	sg.Set(At(BottomRow, 2), CapsuleTile(Single(ColorRed)))
	sg.Set(At(BottomRow, 3), CapsuleTile(Single(ColorRed)))
	sg.Set(At(BottomRow, 4), CapsuleTile(Single(ColorRed)))
	sg.Set(At(BottomRow, 5), CapsuleTile(Bound(ColorRed, DirAbove)))
	sg.Set(At(14, 5), CapsuleTile(Bound(ColorBlue, DirBelow)))

	elim := Eliminate(sg, []Position{At(BottomRow, 3)})

	if len(elim.Cleared) != 4 {
		t.Fatalf("cleared %d tiles, want 4", len(elim.Cleared))
	}
	for _, p := range elim.Cleared {
		if sg.Occupied(p) {
			t.Errorf("cleared tile %v still occupied", p)
		}
	}
	if len(elim.Exposed) != 1 || elim.Exposed[0] != At(14, 5) {
		t.Fatalf("exposed = %v, want [(14,5)]", elim.Exposed)
	}
	survivor, ok := sg.Get(At(14, 5)).Element()
	if !ok {
		t.Fatal("survivor vanished")
	}
	if survivor.HasPartner {
		t.Error("survivor still bound to its removed partner")
	}
}

func TestEliminateOverlappingRunsDedup(t *testing.T) {
	sg := NewSettledGrid()
	for c := Col(0); c <= 3; c++ {
		sg.Set(At(BottomRow, c), VirusTile(ColorRed))
	}
	for r := Row(12); r <= 14; r++ {
		sg.Set(At(r, 0), VirusTile(ColorRed))
	}

	// Both hints see a run; the shared corner must be removed once.
	elim := Eliminate(sg, []Position{At(BottomRow, 1), At(13, 0), At(BottomRow, 1)})
	if len(elim.Cleared) != 7 {
		t.Fatalf("cleared %d tiles, want 7", len(elim.Cleared))
	}
	if countSettled(sg) != 0 {
		t.Errorf("%d tiles survive, want 0", countSettled(sg))
	}
}

func TestEliminateNothing(t *testing.T) {
	sg := NewSettledGrid()
	sg.Set(At(BottomRow, 0), VirusTile(ColorRed))
	elim := Eliminate(sg, []Position{At(BottomRow, 0)})
	if len(elim.Cleared) != 0 || len(elim.Exposed) != 0 {
		t.Errorf("elimination on a lone tile = %+v", elim)
	}
}

func TestUnsettleDropsUnsupportedHalf(t *testing.T) {
	fg := NewFallingGrid()
	sg := NewSettledGrid()
	sg.Set(At(14, 5), CapsuleTile(Single(ColorBlue)))

	low, touched := Unsettle(fg, sg, Elimination{
		Cleared: []Position{At(BottomRow, 5)},
		Exposed: []Position{At(14, 5)},
	})
	if !touched || low != 14 {
		t.Fatalf("(low, touched) = (%d, %v), want (14, true)", low, touched)
	}
	if sg.Occupied(At(14, 5)) {
		t.Error("unsupported half still settled")
	}
	if e, ok := fg.Get(At(14, 5)); !ok || e.Color != ColorBlue {
		t.Error("half not moved into the falling grid")
	}
}

func TestUnsettleChainUpward(t *testing.T) {
	fg := NewFallingGrid()
	sg := NewSettledGrid()
	sg.Set(At(14, 2), CapsuleTile(Single(ColorBlue)))
	sg.Set(At(13, 2), CapsuleTile(Single(ColorYellow)))

	low, touched := Unsettle(fg, sg, Elimination{Cleared: []Position{At(BottomRow, 2)}})
	if !touched || low != 14 {
		t.Fatalf("(low, touched) = (%d, %v), want (14, true)", low, touched)
	}
	if countFalling(fg) != 2 || countSettled(sg) != 0 {
		t.Errorf("falling/settled = %d/%d, want 2/0", countFalling(fg), countSettled(sg))
	}
}

func TestUnsettleVirusNeverMoves(t *testing.T) {
	fg := NewFallingGrid()
	sg := NewSettledGrid()
	sg.Set(At(14, 3), VirusTile(ColorRed))

	_, touched := Unsettle(fg, sg, Elimination{Cleared: []Position{At(BottomRow, 3)}})
	if touched {
		t.Error("unsettle moved something with only a virus in play")
	}
	if !sg.Occupied(At(14, 3)) || countFalling(fg) != 0 {
		t.Error("virus left the settled grid")
	}
}

func TestUnsettlePairHeldByOneSupport(t *testing.T) {
	fg := NewFallingGrid()
	sg := NewSettledGrid()
	sg.Set(At(BottomRow, 2), VirusTile(ColorYellow))
	sg.Set(At(14, 1), CapsuleTile(Bound(ColorRed, DirRight)))
	sg.Set(At(14, 2), CapsuleTile(Bound(ColorBlue, DirLeft)))

	_, touched := Unsettle(fg, sg, Elimination{Cleared: []Position{At(BottomRow, 1)}})
	if touched {
		t.Error("pair with a supported half was unsettled")
	}
	if !sg.Occupied(At(14, 1)) || !sg.Occupied(At(14, 2)) {
		t.Error("pair broke apart")
	}
}

func TestUnsettleVerticalPairStandsOnLowerHalf(t *testing.T) {
	fg := NewFallingGrid()
	sg := NewSettledGrid()
	sg.Set(At(BottomRow, 4), CapsuleTile(Bound(ColorRed, DirAbove)))
	sg.Set(At(14, 4), CapsuleTile(Bound(ColorBlue, DirBelow)))

	// The upper half's support is its own partner; only external support
	// counts, and the lower half rests on the floor, so nothing moves.
	_, touched := Unsettle(fg, sg, Elimination{Cleared: []Position{At(BottomRow, 3)}})
	if touched {
		t.Error("floor-standing vertical pair was unsettled")
	}
}

func TestCascadeEndToEnd(t *testing.T) {
	fg := NewFallingGrid()
	sg := NewSettledGrid()
	sg.Set(At(BottomRow, 0), VirusTile(ColorRed))
	sg.Set(At(BottomRow, 1), CapsuleTile(Single(ColorRed)))
	sg.Set(At(BottomRow, 2), CapsuleTile(Single(ColorRed)))
	sg.Set(At(14, 2), CapsuleTile(Single(ColorBlue)))
	fg.Set(At(BottomRow, 3), Single(ColorRed))

	settled, _, more := Settle(fg, sg, BottomRow)
	if more || len(settled) != 1 {
		t.Fatalf("settle = (%v, more=%v)", settled, more)
	}

	elim := Eliminate(sg, settled)
	if len(elim.Cleared) != 4 {
		t.Fatalf("cleared %d tiles, want the full bottom run", len(elim.Cleared))
	}

	low, touched := Unsettle(fg, sg, elim)
	if !touched || low != 14 {
		t.Fatalf("(low, touched) = (%d, %v), want (14, true)", low, touched)
	}

	// The freed blue half falls one row and comes to rest on the floor.
	fg.Tick()
	settled, _, more = Settle(fg, sg, BottomRow)
	if more || len(settled) != 1 || settled[0] != At(BottomRow, 2) {
		t.Fatalf("re-settle = (%v, more=%v)", settled, more)
	}
	if sg.VirusCount() != 0 {
		t.Errorf("%d viruses remain, want 0", sg.VirusCount())
	}
	if c, ok := sg.ColorAt(At(BottomRow, 2)); !ok || c != ColorBlue {
		t.Error("blue half did not land back on the floor")
	}
}
