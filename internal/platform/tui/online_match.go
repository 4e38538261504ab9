package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-capsules/internal/core"
	"github.com/vovakirdan/tui-capsules/internal/games/capsules"
	"github.com/vovakirdan/tui-capsules/internal/games/capsules/field"
	"github.com/vovakirdan/tui-capsules/internal/multiplayer"
)

// OnlineMatchModel displays an active online versus match.
// The server runs the authoritative simulation; this model only sends
// input and renders the snapshots it receives.
type OnlineMatchModel struct {
	coordinator *multiplayer.Coordinator
	eventChan   <-chan multiplayer.SessionEvent
	sessionID   multiplayer.SessionID
	matchID     multiplayer.MatchID
	side        core.PlayerID

	width     int
	height    int
	screen    *core.Screen
	keyMapper *KeyMapper

	snapshot   *capsules.VersusSnapshot
	ended      bool
	endEvent   multiplayer.MatchEndedEvent
	backToMenu bool
	quitting   bool
}

// NewOnlineMatchModel creates a model for an active match.
func NewOnlineMatchModel(
	coordinator *multiplayer.Coordinator,
	eventChan <-chan multiplayer.SessionEvent,
	sessionID multiplayer.SessionID,
	matchID multiplayer.MatchID,
	side core.PlayerID,
	width, height int,
) OnlineMatchModel {
	return OnlineMatchModel{
		coordinator: coordinator,
		eventChan:   eventChan,
		sessionID:   sessionID,
		matchID:     matchID,
		side:        side,
		width:       width,
		height:      height,
		screen:      core.NewScreen(width, height),
		keyMapper:   NewKeyMapper(),
	}
}

// Init starts listening for match events.
func (m OnlineMatchModel) Init() tea.Cmd {
	return m.waitForEvent()
}

func (m OnlineMatchModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		if m.eventChan == nil {
			return nil
		}
		evt, ok := <-m.eventChan
		if !ok {
			return nil
		}
		return evt
	}
}

// Update handles messages.
func (m OnlineMatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case multiplayer.SnapshotEvent:
		if snap, ok := msg.Snapshot.(capsules.VersusSnapshot); ok {
			m.snapshot = &snap
		}
		return m, m.waitForEvent()
	case multiplayer.MatchEndedEvent:
		m.ended = true
		m.endEvent = msg
		return m, nil
	}
	return m, nil
}

func (m OnlineMatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.ended {
		switch key {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "enter", "esc", "b":
			m.backToMenu = true
			return m, nil
		}
		return m, nil
	}

	switch key {
	case "ctrl+c", "q":
		m.leaveMatch()
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.leaveMatch()
		m.backToMenu = true
		return m, nil
	}

	// Forward game input to the authoritative server
	action, _ := m.keyMapper.MapKey(msg)
	if action != core.ActionNone {
		frame := core.NewInputFrame()
		frame.Set(action)
		m.coordinator.Send(multiplayer.PlayerInputMsg{
			MatchID: m.matchID,
			Player:  m.side,
			Input:   frame,
		})
	}

	return m, nil
}

func (m *OnlineMatchModel) leaveMatch() {
	m.coordinator.Send(multiplayer.LeaveMatchMsg{
		SessionID: m.sessionID,
		MatchID:   m.matchID,
	})
}

// View renders both boards side by side.
func (m OnlineMatchModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()

	if m.snapshot == nil {
		m.screen.DrawTextCentered(m.height/2, "Waiting for first snapshot...")
		return RenderScreen(m.screen)
	}

	boardW := field.FieldWidth*2 + 2
	boardH := field.FieldHeight + 2
	gap := 8
	totalW := boardW*2 + gap

	originX := (m.width - totalW) / 2
	if originX < 0 {
		originX = 0
	}
	originY := (m.height - boardH - 2) / 2
	if originY < 1 {
		originY = 1
	}

	snap := m.snapshot
	m.drawBoard(snap.Board1, originX, originY, core.Player1, snap.Viruses1, snap.Score1)
	m.drawBoard(snap.Board2, originX+boardW+gap, originY, core.Player2, snap.Viruses2, snap.Score2)

	if m.ended {
		m.screen.DrawTextCentered(originY-1, m.endBanner())
		m.screen.DrawTextCentered(originY+boardH+1, "Enter: Back to menu  |  Q: Quit")
	} else {
		m.screen.DrawTextCentered(originY+boardH+1, "A/D move  W rotate  S drop  |  Esc: Forfeit")
	}

	return RenderScreen(m.screen)
}

// drawBoard draws one bottle with its label and counters.
func (m OnlineMatchModel) drawBoard(board []uint8, x, y int, player core.PlayerID, viruses, score int) {
	boardW := field.FieldWidth*2 + 2
	boardH := field.FieldHeight + 2

	label := "OPPONENT"
	color := core.ColorGray
	if player == m.side {
		label = "YOU"
		color = core.ColorBrightWhite
	}

	m.screen.DrawTextColored(x+1, y-1, label, color)
	m.screen.DrawBox(core.NewRect(x, y, boardW, boardH))
	capsules.DrawSnapshotBoard(m.screen, board, x+1, y+1)
	m.screen.DrawText(x+1, y+boardH, fmt.Sprintf("Score %d", score))
	m.screen.DrawTextColored(x+1, y+boardH+1, fmt.Sprintf("Viruses %d", viruses), core.ColorBrightGreen)
}

// endBanner describes the match outcome from this player's perspective.
func (m OnlineMatchModel) endBanner() string {
	switch {
	case m.endEvent.Winner == 0:
		return fmt.Sprintf("DRAW - %s", m.endEvent.Reason)
	case m.endEvent.Winner == m.side:
		return fmt.Sprintf("YOU WIN! - %s", m.endEvent.Reason)
	default:
		return fmt.Sprintf("YOU LOSE - %s", m.endEvent.Reason)
	}
}

// BackToMenu returns true if the user wants to return to the menu.
func (m OnlineMatchModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if the user wants to quit entirely.
func (m OnlineMatchModel) IsQuitting() bool {
	return m.quitting
}
