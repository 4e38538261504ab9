// capsules is a TUI falling-block puzzle game played in the terminal.
//
// Usage:
//
//	capsules list              - List available game modes
//	capsules play [mode]       - Play a mode
//	capsules menu              - Start menu to pick modes interactively
//	capsules serve             - Start SSH server for remote play
//	capsules scores <mode>     - Show high scores for a mode
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.capsules/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import game modes to register them
	_ "github.com/vovakirdan/tui-capsules/internal/games/capsules"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "capsules",
	Short: "Capsules - A falling-block puzzle game in your terminal",
	Long: `Capsules is a terminal puzzle game. Drop two-colored capsules into
a bottle and line up four cells of the same color to clear the viruses.

Available commands:
  list     - Show all available game modes
  play     - Play a mode directly
  menu     - Interactive mode picker menu
  serve    - Start SSH server for remote play (with online versus)
  scores   - View high scores

Examples:
  capsules list
  capsules play
  capsules play capsules_endless
  capsules menu
  capsules serve --ssh :2222
  capsules scores capsules`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.capsules/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
