package field

import "testing"

func TestNewRowBounds(t *testing.T) {
	tests := []struct {
		in   int
		want Row
		ok   bool
	}{
		{0, 0, true},
		{FieldHeight - 1, BottomRow, true},
		{-1, 0, false},
		{FieldHeight, 0, false},
	}
	for _, tt := range tests {
		got, ok := NewRow(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("NewRow(%d) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNewColBounds(t *testing.T) {
	if _, ok := NewCol(FieldWidth); ok {
		t.Errorf("NewCol(%d) accepted out-of-range value", FieldWidth)
	}
	if c, ok := NewCol(FieldWidth - 1); !ok || c != RightmostCol {
		t.Errorf("NewCol(%d) = (%d, %v)", FieldWidth-1, c, ok)
	}
}

func TestDirectionRotateCycle(t *testing.T) {
	for d := DirAbove; d <= DirLeft; d++ {
		if got := d.Rotate(SpinCW).Rotate(SpinCW).Rotate(SpinCW).Rotate(SpinCW); got != d {
			t.Errorf("four CW rotations of %v = %v", d, got)
		}
		if got := d.Rotate(SpinCW).Rotate(SpinCCW); got != d {
			t.Errorf("CW then CCW of %v = %v", d, got)
		}
		if got := d.Opposite().Opposite(); got != d {
			t.Errorf("double opposite of %v = %v", d, got)
		}
		if d.Rotate(SpinCW).Rotate(SpinCW) != d.Opposite() {
			t.Errorf("two CW rotations of %v do not reach the opposite", d)
		}
	}
}

func TestPositionStep(t *testing.T) {
	tests := []struct {
		name string
		from Position
		dir  Direction
		want Position
		ok   bool
	}{
		{"down", At(3, 4), DirBelow, At(4, 4), true},
		{"up", At(3, 4), DirAbove, At(2, 4), true},
		{"left", At(3, 4), DirLeft, At(3, 3), true},
		{"right", At(3, 4), DirRight, At(3, 5), true},
		{"top edge", At(0, 0), DirAbove, Position{}, false},
		{"bottom edge", At(BottomRow, 0), DirBelow, Position{}, false},
		{"left edge", At(5, 0), DirLeft, Position{}, false},
		{"right edge", At(5, RightmostCol), DirRight, Position{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.from.Step(tt.dir)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Step(%v) = (%v, %v), want (%v, %v)", tt.dir, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSpanIteration(t *testing.T) {
	s := NewSpan(Row(2), Row(5))
	if s.Len() != 4 {
		t.Fatalf("Len = %d, want 4", s.Len())
	}
	var asc []Row
	for v := range s.Asc() {
		asc = append(asc, v)
	}
	var desc []Row
	for v := range s.Desc() {
		desc = append(desc, v)
	}
	wantAsc := []Row{2, 3, 4, 5}
	wantDesc := []Row{5, 4, 3, 2}
	for i := range wantAsc {
		if asc[i] != wantAsc[i] {
			t.Errorf("Asc[%d] = %d, want %d", i, asc[i], wantAsc[i])
		}
		if desc[i] != wantDesc[i] {
			t.Errorf("Desc[%d] = %d, want %d", i, desc[i], wantDesc[i])
		}
	}
	if !s.Contains(2) || !s.Contains(5) || s.Contains(6) || s.Contains(1) {
		t.Error("Contains disagrees with span bounds")
	}
}

func TestColorRotateBijection(t *testing.T) {
	for c := ColorRed; c <= ColorBlue; c++ {
		if got := c.Rotate(SpinCW).Rotate(SpinCW).Rotate(SpinCW); got != c {
			t.Errorf("three CW rotations of %v = %v", c, got)
		}
		if got := c.Rotate(SpinCCW).Rotate(SpinCW); got != c {
			t.Errorf("CCW then CW of %v = %v", c, got)
		}
		if c.Rotate(SpinCW) == c {
			t.Errorf("CW rotation of %v is a fixed point", c)
		}
	}
}
