package capsules

import (
	"fmt"

	"github.com/vovakirdan/tui-capsules/internal/core"
	"github.com/vovakirdan/tui-capsules/internal/games/capsules/field"
)

// Visual characters for rendering.
const (
	capsuleChar = '●'
	virusChar   = '×'
)

// cellColor maps a field colour onto the screen palette.
func cellColor(c field.Color) core.Color {
	switch c {
	case field.ColorRed:
		return core.ColorBrightRed
	case field.ColorYellow:
		return core.ColorBrightYellow
	case field.ColorBlue:
		return core.ColorBrightBlue
	default:
		return core.ColorDefault
	}
}

// Render draws the bottle, its contents and the HUD.
func (g *Game) Render(dst *core.Screen) {
	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2, "Window too small!")
		dst.DrawTextCentered(dst.Height()/2+1, "Please enlarge your terminal")
		return
	}

	// Cells are two characters wide so the bottle reads roughly square.
	bottleW := field.FieldWidth*2 + 2
	bottleH := field.FieldHeight + 2
	originX := (dst.Width() - bottleW - 20) / 2
	if originX < 0 {
		originX = 0
	}
	originY := (dst.Height() - bottleH) / 2
	if originY < 0 {
		originY = 0
	}

	bottle := core.NewRect(originX, originY, bottleW, bottleH)
	dst.DrawBox(bottle)

	drawCell := func(p field.Position, r rune, c field.Color) {
		x := bottle.X + 1 + int(p.Col)*2
		y := bottle.Y + 1 + int(p.Row)
		dst.SetColored(x, y, r, cellColor(c))
	}

	g.board.settled.Each(func(p field.Position, t field.Tile) {
		ch := capsuleChar
		if t.Kind == field.TileVirus {
			ch = virusChar
		}
		c, _ := t.Color()
		drawCell(p, ch, c)
	})

	// Debris falls outside the capsule mirror; the live capsule is drawn
	// from the mirror the update lists maintain.
	g.board.falling.Each(func(p field.Position, e field.Element) {
		if _, mirrored := g.board.capsuleCells[p]; mirrored {
			return
		}
		drawCell(p, capsuleChar, e.Color)
	})
	for p, c := range g.board.capsuleCells {
		drawCell(p, capsuleChar, c)
	}

	g.drawHUD(dst, bottle)
}

// DrawSnapshotBoard draws an encoded versus board onto dst with its
// top-left cell at (x, y). Cells are two characters wide, matching the
// local renderer. Used by online clients that only see snapshots.
func DrawSnapshotBoard(dst *core.Screen, board []uint8, x, y int) {
	for i, v := range board {
		if v == snapEmpty {
			continue
		}
		col := i % field.FieldWidth
		row := i / field.FieldWidth

		ch := capsuleChar
		var c field.Color
		switch {
		case v >= snapFalling:
			c = field.Color(v - snapFalling)
		case v >= snapCapsule:
			c = field.Color(v - snapCapsule)
		default:
			ch = virusChar
			c = field.Color(v - snapVirus)
		}
		dst.SetColored(x+col*2, y+row, ch, cellColor(c))
	}
}

// drawHUD draws score, level and virus count beside the bottle.
func (g *Game) drawHUD(dst *core.Screen, bottle core.Rect) {
	x := bottle.Right() + 2
	y := bottle.Y + 1

	dst.DrawText(x, y, g.Title())
	dst.DrawText(x, y+2, fmt.Sprintf("Score: %d", g.score))
	dst.DrawText(x, y+3, fmt.Sprintf("Level: %d", g.levelIndex+1))
	dst.DrawTextColored(x, y+4, fmt.Sprintf("Viruses: %d", g.board.settled.VirusCount()), core.ColorBrightGreen)

	dst.DrawTextColored(x, y+6, "←/→ move", core.ColorGray)
	dst.DrawTextColored(x, y+7, "↑/z rotate", core.ColorGray)
	dst.DrawTextColored(x, y+8, "↓ drop  p pause", core.ColorGray)

	switch {
	case g.levelCleared && !g.won:
		dst.DrawTextCentered(bottle.Y-1, "LEVEL CLEARED!")
	case g.won:
		dst.DrawTextCentered(bottle.Y-1, "ALL LEVELS CLEARED! Press R to restart")
	case g.gameOver:
		dst.DrawTextCentered(bottle.Y-1, "GAME OVER - Press R to restart")
	case g.paused:
		dst.DrawTextCentered(bottle.Y-1, "PAUSED")
	}
}
