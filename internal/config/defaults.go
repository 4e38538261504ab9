package config

import (
	_ "embed"
)

//go:embed defaults/capsules.yaml
var defaultCapsulesYAML []byte

// DefaultCapsulesConfig returns the default capsules configuration.
func DefaultCapsulesConfig() CapsulesConfig {
	return CapsulesConfig{
		Gameplay: CapsulesGameplay{
			VirusScore:   100,
			CapsuleScore: 10,
			SpawnDelay:   20,
			ClearedDelay: 120,
			MinFallTicks: 4,
		},
		Versus: VersusConfig{
			Viruses:      16,
			TopRow:       9,
			FallInterval: 24,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
				FallReduction:   8,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "capsules", "capsules_endless", "capsules_versus":
		return defaultCapsulesYAML
	default:
		return nil
	}
}
