package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenSetup
	screenGame
	screenScoreboard
)

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	Store      *storage.Store
	Config     core.RuntimeConfig
	Difficulty string // Preselected in the setup menu
	Logger     *log.Logger
	Observer   TickObserver
	HoldTicks  int
}

// SessionModel chains the variant menu, the run setup, the game and the
// run ledger into one program. It is the top-level model of SSH sessions
// and of the local menu command.
//
// Sub-models finish by returning tea.Quit; the session swallows those and
// quits only when the user asked to.
type SessionModel struct {
	opts   SessionOptions
	config core.RuntimeConfig
	screen sessionScreen

	menu       MenuModel
	setup      SetupModel
	scoreboard ScoreboardModel
	game       *Model

	quitting bool
}

// NewSessionModel creates a session that starts at the variant menu.
func NewSessionModel(opts SessionOptions) SessionModel {
	return SessionModel{
		opts:   opts,
		config: opts.Config,
		menu:   NewMenuModel(opts.Store, opts.Config),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenSetup:
		return m.updateSetup(msg)
	case screenGame:
		return m.updateGame(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Ticks left over from a finished game
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}

	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scoreboard = NewScoreboardModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScoreboard
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		item := m.menu.Selected()
		m.setup = NewSetupModel(item.GameID, item.Title, m.opts.Difficulty, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenSetup
		return m, m.setup.Init()
	}

	return m, cmd
}

func (m SessionModel) updateSetup(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}

	newSetup, cmd := m.setup.Update(msg)
	if setupModel, ok := newSetup.(SetupModel); ok {
		m.setup = setupModel
	}

	switch {
	case m.setup.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.setup.WantsBack():
		return m.backToMenu()

	case m.setup.Selected() != nil:
		return m.startGame(*m.setup.Selected())
	}

	return m, cmd
}

// startGame creates the chosen game and hands control to it.
func (m SessionModel) startGame(setup Setup) (tea.Model, tea.Cmd) {
	game, err := registry.Create(setup.GameID)
	if err != nil {
		// The menu lists registered games only
		if m.opts.Logger != nil {
			m.opts.Logger.Error("cannot create game", "game", setup.GameID, "error", err)
		}
		return m.backToMenu()
	}
	if c, ok := game.(Configurer); ok {
		c.Configure(setup.Difficulty, setup.Level)
	}

	cfg := m.config
	cfg.Seed = time.Now().UnixNano()
	model := NewModel(game, ModelOptions{
		Store:      m.opts.Store,
		Config:     cfg,
		Difficulty: setup.Difficulty,
		Logger:     m.opts.Logger,
		Observer:   m.opts.Observer,
		Embedded:   true,
		HoldTicks:  m.opts.HoldTicks,
	})
	m.game = &model
	m.screen = screenGame

	if m.opts.Logger != nil {
		m.opts.Logger.Info("run started", "game", setup.GameID, "difficulty", setup.Difficulty, "level", setup.Level)
	}
	return m, model.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		if m.opts.Logger != nil {
			state := m.game.State()
			m.opts.Logger.Info("run left", "game", m.game.game.ID(), "score", state.Score, "level", state.Level)
		}
		m.game = nil
		return m.backToMenu()
	}

	return m, cmd
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}

	newBoard, cmd := m.scoreboard.Update(msg)
	if board, ok := newBoard.(ScoreboardModel); ok {
		m.scoreboard = board
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		return m.backToMenu()
	}

	return m, cmd
}

// backToMenu rebuilds the menu so best scores are current.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.opts.Store, m.config)
	m.screen = screenMenu
	return m, m.menu.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenSetup:
		return m.setup.View()
	case screenGame:
		return m.game.View()
	case screenScoreboard:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// IsQuitting returns true once the user quit the session.
func (m SessionModel) IsQuitting() bool {
	return m.quitting
}

// RunSession runs the full menu flow in the local terminal.
func RunSession(opts SessionOptions) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if m, ok := final.(SessionModel); ok && m.game != nil {
		m.game.ledger.Abandon(m.game.game.State())
	}
	return err
}
