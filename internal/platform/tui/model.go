package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/deathray/internal/core"
	"github.com/vovakirdan/deathray/internal/registry"
	"github.com/vovakirdan/deathray/internal/storage"
)

// helpRows is the height of the help bar under the game screen.
const helpRows = 1

// Session describes who is playing and how finished runs are recorded.
type Session struct {
	Player     string // Name stored with saved runs
	Difficulty string // Preset name stored with saved runs
	FixedSeed  bool   // Keep the seed when restarting
	Embedded   bool   // Running inside a session; back returns to the menu
}

// Result summarizes a finished program.
type Result struct {
	State    core.GameState
	Saved    *storage.RunRecord // Last run written to the store, if any
	SaveErr  error              // Last storage failure, if any
	Quitting bool
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	session    Session
	keys       *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the current run has been recorded
	saved      *storage.RunRecord
	saveErr    error
}

// NewModel creates a new Bubble Tea model for the given game.
// cfg describes the whole terminal; the game gets everything above the help bar.
// store and logger may be nil.
func NewModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig, session Session) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	cfg.ScreenH = max(cfg.ScreenH-helpRows, 1)

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		session:    session,
		keys:       NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keys.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.Keys()

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Back):
		if m.session.Embedded && (m.gameState.GameOver || m.gameState.Paused) {
			m.backToMenu = true
		}
		return m, nil
	case key.Matches(msg, keys.Restart):
		m.restart()
		return m, nil
	}

	m.keys.MapKeyToFrame(msg, &m.inputFrame)
	return m, nil
}

// handleResize adapts the game to a new terminal size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = max(msg.Height-helpRows, 1)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
		return m, nil
	}
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.logger != nil {
		for _, ev := range result.Events {
			m.logger.Debug("event", "player", m.session.Player, "tick", m.gameState.Ticks, "event", ev)
		}
	}

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveRun()
	}

	return m, tickCmd(m.config.TickRate)
}

// restart begins a new run. The seed changes unless it was fixed.
func (m *Model) restart() {
	if !m.session.FixedSeed {
		m.config.Seed = time.Now().UnixNano()
	}
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.inputFrame.Clear()
}

// saveRun records the finished run once. Failures are logged and the
// game keeps going.
func (m *Model) saveRun() {
	m.scoreSaved = true
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}

	rec, err := m.store.SaveRun(storage.RunRecord{
		Score:        m.gameState.Score,
		WrongHits:    m.gameState.WrongHits,
		WrongCatches: m.gameState.WrongCatches,
		Ticks:        int64(m.gameState.Ticks),
		Seed:         m.config.Seed,
		Difficulty:   m.session.Difficulty,
		Player:       m.session.Player,
	})
	if err != nil {
		m.saveErr = err
		if m.logger != nil {
			m.logger.Warn("Could not save run", "player", m.session.Player, "score", m.gameState.Score, "error", err)
		}
		return
	}

	m.saved = &rec
	if m.logger != nil {
		m.logger.Info("Run saved", "player", rec.Player, "score", rec.Score, "run", rec.RunID)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".deathray", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.warn("Could not create screenshot directory", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.warn("Could not save screenshot", err)
	}
}

func (m *Model) warn(msg string, err error) {
	if m.logger != nil {
		m.logger.Warn(msg, "error", err)
	}
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if the player asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the player asked to leave the game.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Result summarizes the model after the program ends.
func (m Model) Result() Result {
	return Result{
		State:    m.gameState,
		Saved:    m.saved,
		SaveErr:  m.saveErr,
		Quitting: m.quitting,
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys.Keys())
}

// Run starts the Bubble Tea program for a local game.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig, session Session) (Result, error) {
	model := NewModel(game, store, logger, cfg, session)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return Result{}, err
	}
	if fm, ok := final.(Model); ok {
		return fm.Result(), nil
	}
	return Result{}, nil
}
