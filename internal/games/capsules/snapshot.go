package capsules

import "github.com/vovakirdan/tui-capsules/internal/games/capsules/field"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the observable game state for determinism testing.
type Snapshot struct {
	Tick          uint64
	Mode          string
	Level         int // 1-indexed for display
	Score         int
	VirusesLeft   int
	FallingCells  int
	SettledCells  int
	CapsuleActive bool
	State         GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	}

	falling := 0
	g.board.falling.Each(func(p field.Position, e field.Element) { falling++ })
	settled := 0
	g.board.settled.Each(func(p field.Position, t field.Tile) { settled++ })

	return Snapshot{
		Tick:          g.tick,
		Mode:          string(g.mode),
		Level:         g.levelIndex + 1,
		Score:         g.score,
		VirusesLeft:   g.board.settled.VirusCount(),
		FallingCells:  falling,
		SettledCells:  settled,
		CapsuleActive: g.board.capsule != nil,
		State:         state,
	}
}
