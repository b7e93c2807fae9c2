package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

const ledgerRunLimit = 100

var (
	ledgerTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	ledgerDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	ledgerTabStyle   = ledgerTitleStyle.Background(lipgloss.Color("57")).Padding(0, 1)
	ledgerBoxStyle   = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)
)

// ScoreboardKeyMap defines the key bindings of the run ledger screen.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Next    key.Binding
	Prev    key.Binding
	Details key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Details, k.Next, k.Back}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Details}, {k.Next, k.Prev}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns the ledger bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "prev run")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "next run")),
		Next:    key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("tab", "next model set")),
		Prev:    key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("S-tab", "prev model set")),
		Details: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "levels")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the ledger: the best runs of one model set and the
// level history of the run under the cursor.
type ScoreboardModel struct {
	store   *storage.Store
	games   []registry.GameInfo
	current int

	runs       []storage.Run
	levels     []storage.LevelResult
	showLevels bool

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel opens the ledger on the first registered model set.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		games:  registry.List(),
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = newRunTable(width, height)
	m.reload()
	return m
}

// newRunTable sizes the run columns to the terminal; the date column takes
// the spare width.
func newRunTable(width, height int) table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Level", Width: 6},
		{Title: "Outcome", Width: 11},
		{Title: "Date", Width: 12},
	}
	if spare := width - 44; spare > 12 {
		columns[4].Width = min(spare, 20)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-12, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = ledgerTabStyle.Padding(0)
	t.SetStyles(s)
	return t
}

// reload fetches the best runs of the current model set and resets the cursor.
func (m *ScoreboardModel) reload() {
	m.runs = nil
	if m.store != nil && len(m.games) > 0 {
		if runs, err := m.store.TopRuns(m.games[m.current].ID, ledgerRunLimit); err == nil {
			m.runs = runs
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprint(r.Score),
			fmt.Sprint(r.Level),
			r.Outcome,
			r.StartedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
	m.loadLevels()
}

func (m *ScoreboardModel) loadLevels() {
	m.levels = nil
	i := m.table.Cursor()
	if m.store == nil || i < 0 || i >= len(m.runs) {
		return
	}
	if levels, err := m.store.Levels(m.runs[i].ID); err == nil {
		m.levels = levels
	}
}

// cycle moves to the next (step 1) or previous (step -1) model set.
func (m *ScoreboardModel) cycle(step int) {
	if len(m.games) == 0 {
		return
	}
	m.current = (m.current + step + len(m.games)) % len(m.games)
	m.reload()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cycle(-1)
			return m, nil
		case key.Matches(msg, m.keys.Details):
			m.showLevels = !m.showLevels
			return m, nil
		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			m.loadLevels()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = newRunTable(m.width, m.height)
		m.reload()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(ledgerTitleStyle.Render(centerText("RUN LEDGER", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	body := ledgerDimStyle.Italic(true).Padding(2, 4).
		Render("No runs recorded yet.\nPlay a game to fill the ledger!")
	if len(m.runs) > 0 {
		body = m.table.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, ledgerBoxStyle.Render(body)))
	b.WriteString("\n")

	if m.showLevels {
		b.WriteString("\n")
		b.WriteString(ledgerDimStyle.Render(centerText(m.levelHistory(), m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(ledgerDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderTabs lists the model sets with the current one highlighted, or only
// the current one when they do not fit.
func (m ScoreboardModel) renderTabs() string {
	if len(m.games) == 0 {
		return ""
	}
	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.current {
			tabs[i] = ledgerTabStyle.Render(g.Title)
		} else {
			tabs[i] = ledgerDimStyle.Render(" " + g.Title + " ")
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		return fmt.Sprintf("< %s >", m.games[m.current].Title)
	}
	return line
}

// levelHistory summarizes the selected run one level at a time.
func (m ScoreboardModel) levelHistory() string {
	if len(m.levels) == 0 {
		return "No finished levels for this run."
	}
	parts := make([]string, len(m.levels))
	for i, l := range m.levels {
		mark := "✓"
		if l.Outcome != phaseLevelClear {
			mark = "✗"
		}
		parts[i] = fmt.Sprintf("L%d %s %d", l.Level, mark, l.Score)
	}
	return strings.Join(parts, "  →  ")
}

// IsGoingBack returns true if the user asked for the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if the user quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
