package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/deathray/internal/registry"
)

const sessionGameID = "stub_session"

func init() {
	registry.Register(sessionGameID, func() registry.Game { return &stubGame{} })
}

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm, cmd
}

func TestSessionFlow(t *testing.T) {
	m := NewSessionModel(sessionGameID, seededStore(t), nil, testConfig(), Session{Player: "alice"})

	// Menu -> game
	m, cmd := sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame || m.game == nil {
		t.Fatal("Play should start a game")
	}
	if cmd == nil {
		t.Error("starting a game should schedule ticks")
	}
	if !m.game.session.Embedded || m.game.session.Player != "alice" {
		t.Errorf("game session = %+v, expected embedded for alice", m.game.session)
	}

	// Pause, then back to the menu
	m, _ = sessionUpdate(t, m, runeKey('p'))
	m, _ = sessionUpdate(t, m, TickMsg{})
	m, _ = sessionUpdate(t, m, runeKey('b'))
	if m.screen != screenMenu || m.game != nil {
		t.Fatal("back should return to the menu")
	}

	// Menu -> scores -> menu
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenScores || m.scoreboard == nil {
		t.Fatal("High Scores should open the scoreboard")
	}
	if m.scoreboard.ViewTitle() != "Top runs" || len(m.scoreboard.views) != 3 {
		t.Errorf("scoreboard should start on Top runs with a My runs view")
	}
	m, _ = sessionUpdate(t, m, runeKey('b'))
	if m.screen != screenMenu {
		t.Fatal("back should leave the scoreboard")
	}
	if m.quitting {
		t.Error("leaving the scoreboard must not end the session")
	}

	// Quit from the menu
	m, cmd = sessionUpdate(t, m, runeKey('q'))
	if !m.quitting || cmd == nil {
		t.Error("q should end the session")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestSessionResizeReachesGame(t *testing.T) {
	m := NewSessionModel(sessionGameID, nil, nil, testConfig(), Session{})
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = sessionUpdate(t, m, tea.WindowSizeMsg{Width: 90, Height: 30})

	game := m.game.game.(*stubGame)
	if len(game.resized) != 1 || game.resized[0] != [2]int{90, 29} {
		t.Errorf("Resize calls = %v, expected 90x29", game.resized)
	}
	if m.config.ScreenW != 90 || m.config.ScreenH != 30 {
		t.Errorf("session config = %dx%d, expected 90x30", m.config.ScreenW, m.config.ScreenH)
	}
}

func TestNewSSHServerRejectsUnknownGame(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.GameID = "no_such_game"
	if _, err := NewSSHServer(cfg); err == nil {
		t.Error("NewSSHServer should fail for an unregistered game")
	}
}
