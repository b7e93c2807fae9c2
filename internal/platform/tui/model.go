package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// statusRows is the number of screen rows used by the status bar.
const statusRows = 1

// Resizer is implemented by games that can follow a terminal resize without
// restarting the run.
type Resizer interface {
	Resize(w, h int)
}

// Configurer is implemented by games with a per-instance difficulty preset
// and starting level.
type Configurer interface {
	Configure(preset string, level int)
}

// TickObserver receives the wall time of every simulation step.
type TickObserver interface {
	ObserveTick(d time.Duration)
}

// ModelOptions configures a Model.
type ModelOptions struct {
	Store      *storage.Store // nil disables the ledger
	Config     core.RuntimeConfig
	Difficulty string // Recorded with the run; applied through Configurer by the caller
	Logger     *log.Logger
	Observer   TickObserver // Optional
	Embedded   bool         // Back returns to a parent menu instead of quitting
	HoldTicks  int          // Movement hold window; 0 selects the default
}

// Model is the Bubble Tea model that runs one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	ledger     *RunLedger
	config     core.RuntimeConfig
	difficulty string
	observer   TickObserver
	embedded   bool

	keyMapper *KeyMapper
	input     *InputTracker
	gameState core.GameState

	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, opts ModelOptions) Model {
	cfg := opts.Config
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.TickRate = clampTickRate(cfg.TickRate)

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-statusRows, 1)),
		ledger:     NewRunLedger(opts.Store, opts.Logger),
		config:     cfg,
		difficulty: opts.Difficulty,
		observer:   opts.Observer,
		embedded:   opts.Embedded,
		keyMapper:  NewKeyMapper(),
		input:      NewInputTracker(opts.HoldTicks),
	}
}

// gameConfig is the runtime config handed to the game: the status bar is not
// part of its screen.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = max(cfg.ScreenH-statusRows, 1)
	return cfg
}

// Init starts the first run and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	m.ledger.Start(m.game.ID(), m.config.Seed, m.difficulty, m.game.State())
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.ledger.Abandon(m.game.State())
		return m, tea.Quit
	}

	// Back leaves only from a finished or paused run.
	if action == core.ActionBack {
		if m.gameState.GameOver || m.gameState.Paused {
			m.ledger.Abandon(m.game.State())
			if m.embedded {
				m.backToMenu = true
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		}
		action = core.ActionPause
	}

	m.input.Press(action)
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	cfg := m.gameConfig()
	m.screen.Resize(cfg.ScreenW, cfg.ScreenH)

	if r, ok := m.game.(Resizer); ok {
		r.Resize(cfg.ScreenW, cfg.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(cfg)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	frame := m.input.Frame()

	// Restart with a fresh seed so every run differs
	if frame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.gameConfig())
		m.gameState = m.game.State()
		m.ledger.Start(m.game.ID(), m.config.Seed, m.difficulty, m.gameState)
		m.input.Reset()
		return m, tickCmd(m.config.TickRate)
	}

	start := time.Now()
	result := m.game.Step(frame)
	if m.observer != nil {
		m.observer.ObserveTick(time.Since(start))
	}
	m.gameState = result.State
	m.ledger.Observe(m.gameState)

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + renderStatusBar(m.game.Title(), m.difficulty, m.gameState, m.config.ScreenW)
}

// State returns the state seen after the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one game in the local terminal until the user quits.
func Run(game registry.Game, opts ModelOptions) error {
	model := NewModel(game, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.ledger.Abandon(m.game.State())
	}
	return err
}
