package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// maxStartLevel is the highest level offered in the setup menu.
const maxStartLevel = 10

// Difficulty choices, in menu order. The empty preset keeps the config file as is.
var difficultyChoices = []struct {
	Preset string
	Label  string
}{
	{"normal", "Normal"},
	{"easy", "Easy (5 lives)"},
	{"hard", "Hard (2 lives, faster march)"},
	{"fixed", "Fixed (level 1 pace forever)"},
}

// Setup rows
const (
	setupRowDifficulty = iota
	setupRowLevel
	setupRowStart
	setupRowCount
)

// Setup holds the user's choices for a new run.
type Setup struct {
	GameID     string
	Difficulty string
	Level      int
}

// SetupModel lets users choose difficulty and starting level before a run.
type SetupModel struct {
	title      string
	setup      Setup
	row        int
	difficulty int
	width      int
	height     int
	keyMapper  *KeyMapper
	choosing   bool
	quitting   bool
	back       bool
}

// NewSetupModel creates a setup menu for the given game, preselecting the
// difficulty preset when it is one of the menu choices.
func NewSetupModel(gameID, title, difficulty string, width, height int) SetupModel {
	m := SetupModel{
		title:     title,
		setup:     Setup{GameID: gameID, Level: 1},
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
	for i, c := range difficultyChoices {
		if c.Preset == difficulty {
			m.difficulty = i
		}
	}
	m.setup.Difficulty = difficultyChoices[m.difficulty].Preset
	return m
}

// Init initializes the model.
func (m SetupModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m SetupModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	case MenuActionUp:
		if m.row > 0 {
			m.row--
		}
	case MenuActionDown:
		if m.row < setupRowCount-1 {
			m.row++
		}
	case MenuActionLeft:
		m.adjust(-1)
	case MenuActionRight:
		m.adjust(1)
	case MenuActionSelect:
		if m.row == setupRowStart {
			m.choosing = false
			return m, tea.Quit
		}
		m.adjust(1)
	}

	return m, nil
}

// adjust cycles the value on the current row.
func (m *SetupModel) adjust(d int) {
	switch m.row {
	case setupRowDifficulty:
		n := len(difficultyChoices)
		m.difficulty = (m.difficulty + d + n) % n
		m.setup.Difficulty = difficultyChoices[m.difficulty].Preset
	case setupRowLevel:
		m.setup.Level = core.Clamp(m.setup.Level+d, 1, maxStartLevel)
	}
}

// View renders the setup menu.
func (m SetupModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(strings.ToUpper(m.title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Set up your run:", m.width))
	b.WriteString("\n\n")

	rows := []string{
		fmt.Sprintf("Difficulty:   < %s >", difficultyChoices[m.difficulty].Label),
		fmt.Sprintf("Start level:  < %d >", m.setup.Level),
		"Start",
	}
	for i, row := range rows {
		cursor := "  "
		if i == m.row {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+row, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Left/Right: Change  |  Enter: Start  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the setup, or nil if still choosing.
func (m SetupModel) Selected() *Setup {
	if m.choosing {
		return nil
	}
	return &m.setup
}

// IsQuitting returns true if user wants to quit.
func (m SetupModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m SetupModel) WantsBack() bool {
	return m.back
}
