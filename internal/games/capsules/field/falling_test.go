package field

import "testing"

func TestFallingGridTickMovesDown(t *testing.T) {
	g := NewFallingGrid()
	g.Set(At(3, 2), Single(ColorRed))

	g.Tick()

	if g.Occupied(At(3, 2)) {
		t.Error("element still at old row after tick")
	}
	e, ok := g.Get(At(4, 2))
	if !ok || e.Color != ColorRed {
		t.Fatalf("Get(4,2) = (%v, %v), want red element", e, ok)
	}
}

func TestFallingGridMovingRowPinned(t *testing.T) {
	g := NewFallingGrid()
	g.Set(At(0, 5), Single(ColorBlue))
	handle := g.Moving(0)

	for i := 0; i < 5; i++ {
		g.Tick()
	}

	if got := g.Logical(handle); got != 5 {
		t.Fatalf("Logical(handle) = %d after 5 ticks, want 5", got)
	}
	if !g.Occupied(At(5, 5)) {
		t.Error("element not found at the handle's logical row")
	}
}

func TestFallingGridTickWraps(t *testing.T) {
	g := NewFallingGrid()
	handle := g.Moving(0)
	for i := 0; i < FieldHeight; i++ {
		g.Tick()
	}
	if got := g.Logical(handle); got != 0 {
		t.Fatalf("Logical(handle) = %d after a full wrap, want 0", got)
	}
}

func TestFallingGridTakeEmpties(t *testing.T) {
	g := NewFallingGrid()
	p := At(7, 1)
	g.Set(p, Single(ColorYellow))

	e, ok := g.Take(p)
	if !ok || e.Color != ColorYellow {
		t.Fatalf("Take = (%v, %v), want yellow element", e, ok)
	}
	if _, ok := g.Take(p); ok {
		t.Error("second Take returned an element")
	}
	if !g.Empty() {
		t.Error("grid not empty after removing its only element")
	}
}

func TestFallingGridEachOrder(t *testing.T) {
	g := NewFallingGrid()
	g.Set(At(4, 6), Single(ColorRed))
	g.Set(At(2, 1), Single(ColorBlue))
	g.Set(At(2, 3), Single(ColorYellow))

	var got []Position
	g.Each(func(p Position, _ Element) {
		got = append(got, p)
	})

	want := []Position{At(2, 1), At(2, 3), At(4, 6)}
	if len(got) != len(want) {
		t.Fatalf("Each visited %d cells, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("visit %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSettledGridBasics(t *testing.T) {
	g := NewSettledGrid()
	p := At(10, 4)

	g.Set(p, VirusTile(ColorBlue))
	if !g.Occupied(p) {
		t.Fatal("cell not occupied after Set")
	}
	if c, ok := g.ColorAt(p); !ok || c != ColorBlue {
		t.Errorf("ColorAt = (%v, %v), want blue", c, ok)
	}
	if g.VirusCount() != 1 {
		t.Errorf("VirusCount = %d, want 1", g.VirusCount())
	}
	if g.Defeated() {
		t.Error("Defeated with empty top row")
	}

	g.Set(At(0, 0), CapsuleTile(Single(ColorRed)))
	if !g.Defeated() {
		t.Error("not Defeated with occupied top row")
	}

	if tile := g.Take(p); tile.Kind != TileVirus {
		t.Errorf("Take returned kind %v, want virus", tile.Kind)
	}
	if g.Occupied(p) {
		t.Error("cell still occupied after Take")
	}
}
