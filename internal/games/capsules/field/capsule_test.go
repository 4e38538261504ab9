package field

import "testing"

func spawnAtRow(t *testing.T, fg *FallingGrid, row Row) *Capsule {
	t.Helper()
	cap, updates := Spawn(fg, ColorRed, ColorBlue)
	if len(updates) != 2 {
		t.Fatalf("Spawn emitted %d updates, want 2", len(updates))
	}
	for r := Row(0); r < row; r++ {
		fg.Tick()
	}
	return cap
}

func TestSpawnCentredPair(t *testing.T) {
	fg := NewFallingGrid()
	cap, updates := Spawn(fg, ColorRed, ColorBlue)

	left, right := At(0, 3), At(0, 4)
	if updates[0].Pos != left || updates[0].Clear || updates[0].Color != ColorRed {
		t.Errorf("update 0 = %+v, want paint red at %v", updates[0], left)
	}
	if updates[1].Pos != right || updates[1].Clear || updates[1].Color != ColorBlue {
		t.Errorf("update 1 = %+v, want paint blue at %v", updates[1], right)
	}

	le, _ := fg.Get(left)
	re, _ := fg.Get(right)
	if d, ok := le.PartnerDir(); !ok || d != DirRight {
		t.Errorf("left partner dir = (%v, %v), want Right", d, ok)
	}
	if d, ok := re.PartnerDir(); !ok || d != DirLeft {
		t.Errorf("right partner dir = (%v, %v), want Left", d, ok)
	}

	self, partner := cap.Pair(fg)
	if self != left || partner != right {
		t.Errorf("Pair = (%v, %v), want (%v, %v)", self, partner, left, right)
	}
}

func TestCapsuleMoveSideways(t *testing.T) {
	fg := NewFallingGrid()
	sg := NewSettledGrid()
	cap := spawnAtRow(t, fg, 2)

	updates, ok := cap.Apply(MoveLeft, fg, sg)
	if !ok {
		t.Fatal("move left rejected on an empty field")
	}
	if len(updates) != 4 {
		t.Fatalf("move emitted %d updates, want 4", len(updates))
	}
	if !updates[0].Clear || !updates[1].Clear || updates[2].Clear || updates[3].Clear {
		t.Error("updates not ordered clears before sets")
	}

	self, partner := cap.Pair(fg)
	if self != At(2, 2) || partner != At(2, 3) {
		t.Errorf("Pair after left = (%v, %v), want ((2,2), (2,3))", self, partner)
	}

	// Walk to the left wall, then one more must be rejected.
	for {
		if _, ok := cap.Apply(MoveLeft, fg, sg); !ok {
			break
		}
	}
	self, partner = cap.Pair(fg)
	if self != At(2, 0) || partner != At(2, 1) {
		t.Errorf("Pair at wall = (%v, %v), want ((2,0), (2,1))", self, partner)
	}
}

func TestCapsuleMoveBlockedBySettled(t *testing.T) {
	fg := NewFallingGrid()
	sg := NewSettledGrid()
	cap := spawnAtRow(t, fg, 2)
	sg.Set(At(2, 5), VirusTile(ColorYellow))

	if _, ok := cap.Apply(MoveRight, fg, sg); ok {
		t.Fatal("move into a settled tile accepted")
	}
	self, partner := cap.Pair(fg)
	if self != At(2, 3) || partner != At(2, 4) {
		t.Errorf("rejected move changed the pair: (%v, %v)", self, partner)
	}
}

func TestCapsuleRotationFourCycle(t *testing.T) {
	fg := NewFallingGrid()
	sg := NewSettledGrid()
	cap := spawnAtRow(t, fg, 5)

	type pairState struct {
		self, partner Position
		selfDir       Direction
	}
	snapshot := func() pairState {
		self, partner := cap.Pair(fg)
		e, _ := fg.Get(self)
		return pairState{self, partner, e.Partner}
	}
	start := snapshot()

	for i := 0; i < 4; i++ {
		if _, ok := cap.Apply(MoveRotateCW, fg, sg); !ok {
			t.Fatalf("rotation %d rejected in open space", i)
		}
	}
	if got := snapshot(); got != start {
		t.Errorf("four CW rotations = %+v, want %+v", got, start)
	}

	if _, ok := cap.Apply(MoveRotateCW, fg, sg); !ok {
		t.Fatal("CW rotation rejected")
	}
	if _, ok := cap.Apply(MoveRotateCCW, fg, sg); !ok {
		t.Fatal("CCW rotation rejected")
	}
	if got := snapshot(); got != start {
		t.Errorf("CW then CCW = %+v, want %+v", got, start)
	}
}

func TestCapsuleRotationKeepsPartnerDirsConsistent(t *testing.T) {
	fg := NewFallingGrid()
	sg := NewSettledGrid()
	cap := spawnAtRow(t, fg, 5)

	if _, ok := cap.Apply(MoveRotateCW, fg, sg); !ok {
		t.Fatal("rotation rejected")
	}
	self, partner := cap.Pair(fg)
	if partner != At(6, 3) {
		t.Fatalf("partner after CW = %v, want (6,3)", partner)
	}
	se, _ := fg.Get(self)
	pe, _ := fg.Get(partner)
	if se.Partner != DirBelow || pe.Partner != DirAbove {
		t.Errorf("partner dirs = (%v, %v), want (Below, Above)", se.Partner, pe.Partner)
	}
}

func TestCapsuleRotationRejectedAtTopRow(t *testing.T) {
	fg := NewFallingGrid()
	sg := NewSettledGrid()
	cap := spawnAtRow(t, fg, 0)

	// CCW from horizontal would swing the partner above row 0.
	if _, ok := cap.Apply(MoveRotateCCW, fg, sg); ok {
		t.Fatal("rotation off the top of the grid accepted")
	}
	self, partner := cap.Pair(fg)
	if self != At(0, 3) || partner != At(0, 4) {
		t.Errorf("rejected rotation changed the pair: (%v, %v)", self, partner)
	}
	// CW swings the partner below instead: fine even at row 0.
	if _, ok := cap.Apply(MoveRotateCW, fg, sg); !ok {
		t.Fatal("CW rotation at top row rejected")
	}
}
