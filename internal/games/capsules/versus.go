package capsules

import (
	"math/rand"

	"github.com/vovakirdan/tui-capsules/internal/config"
	"github.com/vovakirdan/tui-capsules/internal/core"
	"github.com/vovakirdan/tui-capsules/internal/games/capsules/field"
	"github.com/vovakirdan/tui-capsules/internal/multiplayer"
)

// VersusGameID is the identifier used for online head-to-head matches.
const VersusGameID = "capsules_versus"

// VersusGame implements multiplayer.OnlineGame: two boards seeded
// identically, one per player. You win by clearing your viruses first or
// by outlasting an opponent who tops out.
type VersusGame struct {
	tick   uint64
	cfg    config.CapsulesConfig
	boards [2]*board
	rngs   [2]*rand.Rand

	ticksToFall [2]int
	spawnWait   [2]int
	scores      [2]int

	gameOver bool
	winner   core.PlayerID
}

// NewVersus creates a new versus game.
func NewVersus() *VersusGame {
	return &VersusGame{}
}

// Reset initializes both boards from the same seed, so layouts and
// capsule colour sequences are identical for both players.
func (g *VersusGame) Reset(cfg core.RuntimeConfig) {
	gameCfg, err := config.LoadCapsules(configPath)
	if err != nil {
		gameCfg = config.DefaultCapsulesConfig()
	}
	g.cfg = gameCfg

	g.tick = 0
	g.gameOver = false
	g.winner = 0

	// The config value arrives from YAML unvalidated; an out-of-range
	// row must not take the shared match loop down.
	topRow, ok := field.NewRow(g.cfg.Versus.TopRow)
	if !ok {
		topRow = field.Row(config.DefaultCapsulesConfig().Versus.TopRow)
	}
	for i := range g.boards {
		g.rngs[i] = rand.New(rand.NewSource(cfg.Seed))
		g.boards[i] = newBoard()
		g.boards[i].prepare(g.rngs[i], g.cfg.Versus.Viruses, topRow)
		g.boards[i].spawn(g.rngs[i])
		g.ticksToFall[i] = g.cfg.Versus.FallInterval
		g.spawnWait[i] = 0
		g.scores[i] = 0
	}
}

// StepMulti advances both boards one tick using each player's input.
func (g *VersusGame) StepMulti(input core.MultiInputFrame) core.StepResult {
	g.tick++
	if g.gameOver {
		return core.StepResult{}
	}

	g.stepBoard(0, input.Player1())
	g.stepBoard(1, input.Player2())
	g.judge()

	return core.StepResult{}
}

// stepBoard applies one player's input and gravity to their board.
func (g *VersusGame) stepBoard(i int, in core.InputFrame) {
	b := g.boards[i]

	switch {
	case in.Has(core.ActionLeft):
		b.move(field.MoveLeft)
	case in.Has(core.ActionRight):
		b.move(field.MoveRight)
	case in.Has(core.ActionRotateCW):
		b.move(field.MoveRotateCW)
	case in.Has(core.ActionRotateCCW):
		b.move(field.MoveRotateCCW)
	}

	if in.Has(core.ActionDrop) {
		g.ticksToFall[i] = 0
	}

	g.ticksToFall[i]--
	if g.ticksToFall[i] <= 0 {
		g.ticksToFall[i] = g.cfg.Versus.FallInterval
		out := b.gravity()
		g.scores[i] += out.ClearedViruses*g.cfg.Gameplay.VirusScore +
			(out.ClearedTiles-out.ClearedViruses)*g.cfg.Gameplay.CapsuleScore
	}

	if b.idle() && b.settled.VirusCount() > 0 &&
		!b.settled.Defeated() && !b.spawnBlocked() {
		g.spawnWait[i]++
		if g.spawnWait[i] >= g.cfg.Gameplay.SpawnDelay {
			g.spawnWait[i] = 0
			b.spawn(g.rngs[i])
			g.ticksToFall[i] = g.cfg.Versus.FallInterval
		}
	}
}

// judge decides the match once a board clears out or tops out.
func (g *VersusGame) judge() {
	cleared := [2]bool{
		g.boards[0].settled.VirusCount() == 0,
		g.boards[1].settled.VirusCount() == 0,
	}
	dead := [2]bool{
		g.boards[0].idle() && (g.boards[0].settled.Defeated() || g.boards[0].spawnBlocked()),
		g.boards[1].idle() && (g.boards[1].settled.Defeated() || g.boards[1].spawnBlocked()),
	}

	switch {
	case cleared[0] && cleared[1]:
		g.end(0) // simultaneous clear is a draw
	case cleared[0] || dead[1]:
		g.end(core.Player1)
	case cleared[1] || dead[0]:
		g.end(core.Player2)
	case dead[0] && dead[1]:
		g.end(0)
	}
}

func (g *VersusGame) end(winner core.PlayerID) {
	g.gameOver = true
	g.winner = winner
}

// IsGameOver returns true if the match has ended.
func (g *VersusGame) IsGameOver() bool {
	return g.gameOver
}

// Winner returns the winning player, or 0 for none (or a draw).
func (g *VersusGame) Winner() core.PlayerID {
	return g.winner
}

// Score1 returns Player 1's score.
func (g *VersusGame) Score1() int {
	return g.scores[0]
}

// Score2 returns Player 2's score.
func (g *VersusGame) Score2() int {
	return g.scores[1]
}

// VirusesLeft returns how many viruses remain on a player's board.
func (g *VersusGame) VirusesLeft(p core.PlayerID) int {
	if p == core.Player2 {
		return g.boards[1].settled.VirusCount()
	}
	return g.boards[0].settled.VirusCount()
}

// Cell encoding for versus snapshots, one byte per cell.
const (
	snapEmpty   = 0
	snapVirus   = 1 // 1..3: virus, colour+1
	snapCapsule = 4 // 4..6: settled capsule, colour+4
	snapFalling = 7 // 7..9: falling element, colour+7
)

// VersusSnapshot carries both boards for network transmission.
// Uses primitive types only for stable serialization.
type VersusSnapshot struct {
	Tick     uint64
	Board1   []uint8 // row-major FieldHeight*FieldWidth cells
	Board2   []uint8
	Viruses1 int
	Viruses2 int
	Score1   int
	Score2   int
	GameOver bool
	Winner   int // 0=none/draw, 1=Player1, 2=Player2
}

// IsGameSnapshot implements the GameSnapshot interface marker.
func (VersusSnapshot) IsGameSnapshot() {}

// Ensure VersusSnapshot implements multiplayer.GameSnapshot
var _ multiplayer.GameSnapshot = VersusSnapshot{}

// Snapshot returns the current match state for network transmission.
func (g *VersusGame) Snapshot() multiplayer.GameSnapshot {
	return VersusSnapshot{
		Tick:     g.tick,
		Board1:   encodeBoard(g.boards[0]),
		Board2:   encodeBoard(g.boards[1]),
		Viruses1: g.boards[0].settled.VirusCount(),
		Viruses2: g.boards[1].settled.VirusCount(),
		Score1:   g.scores[0],
		Score2:   g.scores[1],
		GameOver: g.gameOver,
		Winner:   int(g.winner),
	}
}

// encodeBoard flattens one board into a row-major byte grid.
func encodeBoard(b *board) []uint8 {
	out := make([]uint8, field.FieldHeight*field.FieldWidth)
	b.settled.Each(func(p field.Position, t field.Tile) {
		base := uint8(snapCapsule)
		if t.Kind == field.TileVirus {
			base = snapVirus
		}
		c, _ := t.Color()
		out[int(p.Row)*field.FieldWidth+int(p.Col)] = base + uint8(c)
	})
	b.falling.Each(func(p field.Position, e field.Element) {
		out[int(p.Row)*field.FieldWidth+int(p.Col)] = snapFalling + uint8(e.Color)
	})
	return out
}

// Ensure VersusGame implements the online interface.
var _ multiplayer.OnlineGame = (*VersusGame)(nil)
