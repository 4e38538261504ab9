package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadCapsules loads the capsules configuration.
// Search order: customPath -> ~/.capsules/configs/capsules.yaml -> ./configs/capsules.yaml -> embedded default
func LoadCapsules(customPath string) (CapsulesConfig, error) {
	var cfg CapsulesConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("capsules.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/capsules.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultCapsulesYAML, &cfg); err != nil {
		return DefaultCapsulesConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".capsules", "configs", filename)
}

// ApplyCapsulesPreset modifies the config based on a difficulty preset.
func ApplyCapsulesPreset(cfg *CapsulesConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.SpawnDelay = 30
		cfg.Versus.Viruses = 12
		cfg.Versus.FallInterval = 30
	case DifficultyHard:
		cfg.Gameplay.SpawnDelay = 12
		cfg.Versus.Viruses = 24
		cfg.Versus.TopRow = 7
		cfg.Versus.FallInterval = 18
	}
}
