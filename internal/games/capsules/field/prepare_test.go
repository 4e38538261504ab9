package field

import (
	"math/rand"
	"testing"
)

func TestPlaceVirusesCountAndSpan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	rows := NewSpan(Row(8), BottomRow)

	placements := PlaceViruses(rng, rows, 24)
	if len(placements) != 24 {
		t.Fatalf("placed %d viruses, want 24", len(placements))
	}

	seen := make(map[Position]bool)
	for _, pl := range placements {
		if !rows.Contains(pl.Pos.Row) {
			t.Errorf("virus at %v outside target rows", pl.Pos)
		}
		if seen[pl.Pos] {
			t.Errorf("duplicate virus position %v", pl.Pos)
		}
		seen[pl.Pos] = true
	}
}

func TestPlaceVirusesNoInitialRuns(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		rows := NewSpan(Row(6), BottomRow)

		placements := PlaceViruses(rng, rows, 40)
		sg := NewSettledGrid()
		for _, pl := range placements {
			sg.Set(pl.Pos, VirusTile(pl.Color))
		}
		for _, pl := range placements {
			if run, ok := DetectRun(sg, pl.Pos); ok {
				t.Fatalf("seed %d: initial run %+v through %v", seed, run, pl.Pos)
			}
		}
	}
}

func TestPlaceVirusesDeterministic(t *testing.T) {
	rows := NewSpan(Row(10), BottomRow)
	a := PlaceViruses(rand.New(rand.NewSource(7)), rows, 16)
	b := PlaceViruses(rand.New(rand.NewSource(7)), rows, 16)
	if len(a) != len(b) {
		t.Fatalf("runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("placement %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestPlaceVirusesFullSpan(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	rows := NewSpan(Row(12), BottomRow)

	// Fill every cell of the span; colour rotation must still avoid runs.
	placements := PlaceViruses(rng, rows, rows.Len()*FieldWidth)
	sg := NewSettledGrid()
	for _, pl := range placements {
		sg.Set(pl.Pos, VirusTile(pl.Color))
	}
	for _, pl := range placements {
		if _, ok := DetectRun(sg, pl.Pos); ok {
			t.Fatalf("run through %v on a fully packed span", pl.Pos)
		}
	}
}
