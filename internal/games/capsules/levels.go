package capsules

import "github.com/vovakirdan/tui-capsules/internal/games/capsules/field"

// Level defines the campaign parameters for one stage.
type Level struct {
	Viruses        int       // Viruses placed at level start
	TopRow         field.Row // Highest row a virus may occupy
	FallEveryTicks int       // Gravity interval in simulation ticks
}

// levels is the campaign table. Virus counts rise and the spawn band
// climbs while gravity speeds up.
var levels = []Level{
	{Viruses: 4, TopRow: 12, FallEveryTicks: 36},
	{Viruses: 8, TopRow: 11, FallEveryTicks: 33},
	{Viruses: 12, TopRow: 10, FallEveryTicks: 30},
	{Viruses: 16, TopRow: 10, FallEveryTicks: 27},
	{Viruses: 20, TopRow: 9, FallEveryTicks: 24},
	{Viruses: 24, TopRow: 9, FallEveryTicks: 21},
	{Viruses: 28, TopRow: 8, FallEveryTicks: 18},
	{Viruses: 32, TopRow: 7, FallEveryTicks: 15},
	{Viruses: 40, TopRow: 6, FallEveryTicks: 12},
	{Viruses: 48, TopRow: 5, FallEveryTicks: 10},
}

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	return len(levels)
}

// GetLevel returns the level definition for a 0-based index, or nil if
// the index is out of range.
func GetLevel(index int) *Level {
	if index < 0 || index >= len(levels) {
		return nil
	}
	return &levels[index]
}

// endlessLevel extrapolates level parameters past the campaign table for
// endless mode: the last stage with ever faster gravity.
func endlessLevel(wave int) Level {
	lv := levels[len(levels)-1]
	if wave < len(levels) {
		lv = levels[wave]
	}
	if speedup := wave - len(levels) + 1; speedup > 0 {
		lv.FallEveryTicks -= speedup
		if lv.FallEveryTicks < 4 {
			lv.FallEveryTicks = 4
		}
	}
	return lv
}
