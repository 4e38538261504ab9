package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-capsules/internal/core"
	"github.com/vovakirdan/tui-capsules/internal/games/capsules"
	"github.com/vovakirdan/tui-capsules/internal/platform/tui"
	"github.com/vovakirdan/tui-capsules/internal/registry"
	"github.com/vovakirdan/tui-capsules/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      int
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing. With no argument, a mode selector is shown.

Controls:
  A/D or Left/Right  - Move capsule
  W/Up/X             - Rotate clockwise
  Z                  - Rotate counter-clockwise
  S/Down/Space       - Soft drop
  P/Esc              - Pause
  R                  - Restart (after game over)
  Q/Ctrl+C           - Quit

Difficulty options:
  easy   - Slower capsules, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  capsules play
  capsules play capsules_endless
  capsules play --difficulty hard
  capsules play --level 10
  capsules play --config ./my-capsules.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Campaign level to start at (skips the mode selector)")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "capsules"
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if mode exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'capsules list' to see available modes.")
		os.Exit(1)
	}

	// Get terminal size early for the mode selector
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	capsules.SetConfigPath(flagConfig)
	capsules.SetDifficultyPreset(flagDifficulty)

	if gameID == "capsules" {
		if flagLevel > 0 {
			// Explicit level skips the selector
			capsules.SetStartLevel(flagLevel)
		} else {
			selection, updatedCfg, selErr := tui.RunCapsulesModeSelector(cfg)
			if selErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
				os.Exit(1)
			}
			cfg = updatedCfg

			// User pressed back or quit
			if selection == nil {
				return
			}

			// Apply selection
			if selection.Mode == tui.CapsulesModeEndless {
				gameID = "capsules_endless"
			}
			if selection.Level > 0 {
				capsules.SetStartLevel(selection.Level)
			}
		}
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	// Run the game
	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
