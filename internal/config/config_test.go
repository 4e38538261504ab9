package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCapsulesEmbeddedDefault(t *testing.T) {
	// With no custom path and no user/local config, the embedded YAML
	// should parse and match the hardcoded defaults.
	cfg, err := LoadCapsules("")
	if err != nil {
		t.Fatalf("LoadCapsules() failed: %v", err)
	}

	def := DefaultCapsulesConfig()
	if cfg.Gameplay != def.Gameplay {
		t.Errorf("Gameplay = %+v, want %+v", cfg.Gameplay, def.Gameplay)
	}
	if cfg.Versus != def.Versus {
		t.Errorf("Versus = %+v, want %+v", cfg.Versus, def.Versus)
	}
}

func TestLoadCapsulesCustomPath(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "custom.yaml")
	yaml := `
gameplay:
  virus_score: 250
versus:
  viruses: 8
  fall_interval: 40
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadCapsules(path)
	if err != nil {
		t.Fatalf("LoadCapsules() failed: %v", err)
	}
	if cfg.Gameplay.VirusScore != 250 {
		t.Errorf("VirusScore = %d, want 250", cfg.Gameplay.VirusScore)
	}
	if cfg.Versus.Viruses != 8 || cfg.Versus.FallInterval != 40 {
		t.Errorf("Versus = %+v", cfg.Versus)
	}
}

func TestLoadCapsulesMissingCustomPath(t *testing.T) {
	_, err := LoadCapsules("/no/such/file.yaml")
	if err == nil {
		t.Error("Expected error for missing custom config path")
	}
}

func TestApplyCapsulesPreset(t *testing.T) {
	cfg := DefaultCapsulesConfig()
	ApplyCapsulesPreset(&cfg, DifficultyHard)

	if !cfg.Difficulty.Enabled {
		t.Error("Hard preset should enable difficulty progression")
	}
	if cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("InitialLevel = %v, want 0.7", cfg.Difficulty.InitialLevel)
	}
	if cfg.Versus.Viruses != 24 {
		t.Errorf("Versus.Viruses = %d, want 24", cfg.Versus.Viruses)
	}

	cfg = DefaultCapsulesConfig()
	ApplyCapsulesPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("Fixed preset should disable difficulty progression")
	}
}

func TestDifficultyManagerLevel(t *testing.T) {
	mgr := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.0,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 1000},
		Scaling:      ScalingConfig{FallReduction: 10},
	})

	if lvl := mgr.Level(0, 0); lvl != 0.0 {
		t.Errorf("Level(0) = %v, want 0", lvl)
	}
	if lvl := mgr.Level(500, 0); lvl != 0.5 {
		t.Errorf("Level(500) = %v, want 0.5", lvl)
	}
	if lvl := mgr.Level(5000, 0); lvl != 1.0 {
		t.Errorf("Level(5000) = %v, want 1 (clamped)", lvl)
	}
}

func TestDifficultyManagerFallInterval(t *testing.T) {
	mgr := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.0,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 1000},
		Scaling:      ScalingConfig{FallReduction: 10},
	})

	if got := mgr.FallInterval(30, 4, 0, 0); got != 30 {
		t.Errorf("FallInterval at level 0 = %d, want 30", got)
	}
	if got := mgr.FallInterval(30, 4, 500, 0); got != 25 {
		t.Errorf("FallInterval at level 0.5 = %d, want 25", got)
	}
	// Never drops below the floor
	if got := mgr.FallInterval(6, 4, 1000, 0); got != 4 {
		t.Errorf("FallInterval below floor = %d, want 4", got)
	}
}

func TestDifficultyManagerDisabled(t *testing.T) {
	mgr := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 1000},
	})

	if mgr.IsEnabled() {
		t.Error("IsEnabled() should be false")
	}
	// Level is pinned to the initial level when disabled
	if lvl := mgr.Level(99999, 99999); lvl != 0.5 {
		t.Errorf("Level = %v, want 0.5", lvl)
	}
}

func TestGetDefaultYAML(t *testing.T) {
	for _, id := range []string{"capsules", "capsules_endless", "capsules_versus"} {
		if data := GetDefaultYAML(id); len(data) == 0 {
			t.Errorf("GetDefaultYAML(%q) returned empty data", id)
		}
	}
	if data := GetDefaultYAML("unknown"); data != nil {
		t.Error("GetDefaultYAML(unknown) should return nil")
	}
}
