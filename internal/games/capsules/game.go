// Package capsules implements the falling-capsule virus-clearing puzzle.
// The simulation itself lives in the field subpackage; this package maps
// platform input onto it, drives gravity, and keeps score.
package capsules

import (
	"math/rand"

	"github.com/vovakirdan/tui-capsules/internal/config"
	"github.com/vovakirdan/tui-capsules/internal/core"
	"github.com/vovakirdan/tui-capsules/internal/games/capsules/field"
	"github.com/vovakirdan/tui-capsules/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// Game implements the single-player capsules game.
type Game struct {
	mode Mode
	rng  *rand.Rand
	tick uint64

	cfg        config.CapsulesConfig
	difficulty *config.DifficultyManager

	board *board
	score int

	levelIndex     int
	fallEveryTicks int
	ticksToFall    int
	ticksToSpawn   int

	screenW int
	screenH int

	gameOver        bool
	won             bool
	levelCleared    bool
	levelClearTicks int
	paused          bool
	tooSmall        bool
	moveProcessed   bool
}

// Package-level start level selector, set from the CLI before Reset.
var selectedStartLevel int

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = "" // Use config default
	}
}

// SetStartLevel sets the starting level (1-based). 0 means level one.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// New creates a new campaign mode game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new endless mode game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

func init() {
	registry.Register("capsules", func() registry.Game {
		return New()
	})
	registry.Register("capsules_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "capsules_endless"
	}
	return "capsules"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Capsules (Endless)"
	}
	return "Capsules"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	gameCfg, err := config.LoadCapsules(configPath)
	if err != nil {
		gameCfg = config.DefaultCapsulesConfig()
	}
	if difficultyPreset != "" {
		config.ApplyCapsulesPreset(&gameCfg, difficultyPreset)
	}
	g.cfg = gameCfg
	g.difficulty = config.NewDifficultyManager(gameCfg.Difficulty)

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.score = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.gameOver = false
	g.won = false
	g.levelCleared = false
	g.levelClearTicks = 0
	g.paused = false
	g.moveProcessed = false

	g.levelIndex = 0
	if start := max(selectedStartLevel, cfg.Level); start > 1 && start <= LevelCount() {
		g.levelIndex = start - 1
	}
	selectedStartLevel = 0

	g.loadLevel()
	g.checkScreenSize()
}

// loadLevel prepares the board for the current level index.
func (g *Game) loadLevel() {
	lv := g.currentLevel()
	g.fallEveryTicks = lv.FallEveryTicks
	g.ticksToFall = g.fallInterval()
	g.ticksToSpawn = 0

	g.board = newBoard()
	g.board.prepare(g.rng, lv.Viruses, lv.TopRow)
	g.board.spawn(g.rng)
}

func (g *Game) currentLevel() Level {
	if g.mode == ModeEndless {
		return endlessLevel(g.levelIndex)
	}
	lv := GetLevel(g.levelIndex)
	if lv == nil {
		lv = GetLevel(LevelCount() - 1)
	}
	return *lv
}

// fallInterval returns the current gravity interval, tightened by the
// difficulty progression when a preset enables it.
func (g *Game) fallInterval() int {
	if g.difficulty == nil || !g.difficulty.IsEnabled() {
		return g.fallEveryTicks
	}
	return g.difficulty.FallInterval(
		g.fallEveryTicks, g.cfg.Gameplay.MinFallTicks, g.score, int(g.tick))
}

// checkScreenSize checks if the screen is large enough for the bottle.
func (g *Game) checkScreenSize() {
	minW := field.FieldWidth*2 + 24 // bottle plus HUD column
	minH := field.FieldHeight + 4
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.moveProcessed = false

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) && (g.gameOver || g.won) {
		// Will be reset by platform
		return core.StepResult{State: g.State()}
	}

	if g.levelCleared {
		g.levelClearTicks++
		if g.levelClearTicks >= g.cfg.Gameplay.ClearedDelay {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	if g.gameOver || g.won {
		return core.StepResult{State: g.State()}
	}

	g.handleMovement(in)

	// Soft drop pulls the next gravity tick forward.
	if in.Has(core.ActionDrop) {
		g.ticksToFall = 0
	}

	g.ticksToFall--
	if g.ticksToFall <= 0 {
		g.ticksToFall = g.fallInterval()
		out := g.board.gravity()
		g.score += out.ClearedViruses*g.cfg.Gameplay.VirusScore*(g.levelIndex+1) +
			(out.ClearedTiles-out.ClearedViruses)*g.cfg.Gameplay.CapsuleScore
	}

	g.resolveBoard()

	return core.StepResult{State: g.State()}
}

// handleMovement maps directional input onto the live capsule.
func (g *Game) handleMovement(in core.InputFrame) {
	if g.moveProcessed {
		return
	}
	var m field.Movement
	switch {
	case in.Has(core.ActionLeft):
		m = field.MoveLeft
	case in.Has(core.ActionRight):
		m = field.MoveRight
	case in.Has(core.ActionRotateCW):
		m = field.MoveRotateCW
	case in.Has(core.ActionRotateCCW):
		m = field.MoveRotateCCW
	default:
		return
	}
	g.board.move(m)
	g.moveProcessed = true
}

// resolveBoard checks win/defeat and schedules the next spawn once the
// board has gone quiet.
func (g *Game) resolveBoard() {
	if !g.board.idle() {
		return
	}

	if g.board.settled.VirusCount() == 0 {
		g.levelCleared = true
		g.levelClearTicks = 0
		return
	}

	if g.board.settled.Defeated() || g.board.spawnBlocked() {
		g.gameOver = true
		return
	}

	g.ticksToSpawn++
	if g.ticksToSpawn >= g.cfg.Gameplay.SpawnDelay {
		g.ticksToSpawn = 0
		g.board.spawn(g.rng)
		g.ticksToFall = g.fallInterval()
	}
}

// advanceLevel moves to the next level, keeping the score.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.levelClearTicks = 0

	if g.mode == ModeCampaign && g.levelIndex >= LevelCount()-1 {
		g.won = true
		return
	}

	g.levelIndex++
	g.loadLevel()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	viruses := 0
	if g.board != nil {
		viruses = g.board.settled.VirusCount()
	}
	return core.GameState{
		Score:       g.score,
		Level:       g.levelIndex + 1,
		VirusesLeft: viruses,
		Won:         g.won,
		GameOver:    g.gameOver || g.won,
		Paused:      g.paused || g.tooSmall || g.levelCleared,
	}
}
