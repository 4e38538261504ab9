// Package config provides YAML-based game configuration loading and
// difficulty management for the capsules platform.
package config

// CapsulesConfig contains all configuration for the capsules game modes.
type CapsulesConfig struct {
	Gameplay   CapsulesGameplay `yaml:"gameplay"`
	Versus     VersusConfig     `yaml:"versus"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// CapsulesGameplay defines scoring and pacing parameters shared by all modes.
type CapsulesGameplay struct {
	VirusScore   int `yaml:"virus_score"`    // Per virus cleared, multiplied by level
	CapsuleScore int `yaml:"capsule_score"`  // Per non-virus tile cleared
	SpawnDelay   int `yaml:"spawn_delay"`    // Ticks between lock and next spawn
	ClearedDelay int `yaml:"cleared_delay"`  // Level-cleared banner duration
	MinFallTicks int `yaml:"min_fall_ticks"` // Fall interval floor for speedups
}

// VersusConfig defines parameters for online head-to-head matches.
type VersusConfig struct {
	Viruses      int `yaml:"viruses"`       // Viruses on each board
	TopRow       int `yaml:"top_row"`       // Highest row viruses may occupy
	FallInterval int `yaml:"fall_interval"` // Ticks between gravity steps
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
	FallReduction   int     `yaml:"fall_reduction"`   // Ticks shaved off the fall interval at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
