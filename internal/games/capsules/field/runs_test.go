package field

import "testing"

func TestDetectRunHorizontal(t *testing.T) {
	sg := NewSettledGrid()
	for c := Col(1); c <= 4; c++ {
		sg.Set(At(10, c), VirusTile(ColorRed))
	}

	run, ok := DetectRun(sg, At(10, 2))
	if !ok {
		t.Fatal("no run found")
	}
	if run.Axis != AxisRow || run.Line != 10 || run.Range != NewSpan[uint8](1, 4) {
		t.Errorf("run = %+v, want row 10 cols 1..4", run)
	}
	if run.Color != ColorRed || run.Len() != 4 {
		t.Errorf("run colour/len = %v/%d", run.Color, run.Len())
	}
}

func TestDetectRunVertical(t *testing.T) {
	sg := NewSettledGrid()
	for r := Row(6); r <= 10; r++ {
		sg.Set(At(r, 3), CapsuleTile(Single(ColorBlue)))
	}

	run, ok := DetectRun(sg, At(8, 3))
	if !ok {
		t.Fatal("no run found")
	}
	if run.Axis != AxisCol || run.Line != 3 || run.Range != NewSpan[uint8](6, 10) {
		t.Errorf("run = %+v, want col 3 rows 6..10", run)
	}
	if run.Len() != 5 {
		t.Errorf("run length = %d, want 5", run.Len())
	}
}

func TestDetectRunHorizontalPriority(t *testing.T) {
	sg := NewSettledGrid()
	// A cross of reds through (12,3): both axes reach four.
	for c := Col(1); c <= 4; c++ {
		sg.Set(At(12, c), VirusTile(ColorRed))
	}
	for r := Row(10); r <= 13; r++ {
		sg.Set(At(r, 3), VirusTile(ColorRed))
	}

	run, ok := DetectRun(sg, At(12, 3))
	if !ok {
		t.Fatal("no run found")
	}
	if run.Axis != AxisRow {
		t.Errorf("axis = %v, want the horizontal run to win", run.Axis)
	}
}

func TestDetectRunTooShort(t *testing.T) {
	sg := NewSettledGrid()
	for c := Col(2); c <= 4; c++ {
		sg.Set(At(9, c), VirusTile(ColorYellow))
	}
	if _, ok := DetectRun(sg, At(9, 3)); ok {
		t.Error("run of three reported")
	}
}

func TestDetectRunMixedColorsBreak(t *testing.T) {
	sg := NewSettledGrid()
	sg.Set(At(9, 1), VirusTile(ColorYellow))
	sg.Set(At(9, 2), VirusTile(ColorYellow))
	sg.Set(At(9, 3), VirusTile(ColorBlue))
	sg.Set(At(9, 4), VirusTile(ColorYellow))
	sg.Set(At(9, 5), VirusTile(ColorYellow))
	if _, ok := DetectRun(sg, At(9, 2)); ok {
		t.Error("run found across a colour break")
	}
}

func TestDetectRunEmptyHint(t *testing.T) {
	sg := NewSettledGrid()
	if _, ok := DetectRun(sg, At(5, 5)); ok {
		t.Error("run found at an empty cell")
	}
}

func TestRunPositions(t *testing.T) {
	run := Run{Color: ColorBlue, Axis: AxisCol, Line: 2, Range: NewSpan[uint8](4, 7)}
	got := run.Positions()
	want := []Position{At(4, 2), At(5, 2), At(6, 2), At(7, 2)}
	if len(got) != len(want) {
		t.Fatalf("Positions returned %d cells, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Positions[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
