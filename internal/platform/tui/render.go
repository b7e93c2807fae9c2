package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			// Apply style to the run
			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))
	statusTitleStyle = statusStyle.
				Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Padding(0, 1)
	statusPhaseStyles = map[string]lipgloss.Style{
		"PLAYING":    statusStyle.Foreground(lipgloss.Color("10")),
		"LEVELCLEAR": statusStyle.Foreground(lipgloss.Color("14")),
		"ALIENSWIN":  statusStyle.Foreground(lipgloss.Color("9")),
		"GAMEOVER":   statusStyle.Foreground(lipgloss.Color("9")),
	}
)

// statusHelp returns the key hints that apply in the given state.
func statusHelp(state core.GameState) string {
	switch {
	case state.GameOver:
		return "r restart  b menu  q quit"
	case state.Paused:
		return "p resume  b menu  q quit"
	}
	return "←/→ move  space fire  p pause  q quit"
}

// renderStatusBar draws the one-line bar below the playfield.
func renderStatusBar(title, difficulty string, state core.GameState, width int) string {
	left := statusTitleStyle.Render(title)
	if difficulty != "" {
		left += statusStyle.Render(" " + strings.ToUpper(difficulty))
	}

	phase := state.Phase
	if state.Paused {
		phase = "PAUSED"
	}
	phaseStyle, ok := statusPhaseStyles[phase]
	if !ok {
		phaseStyle = statusStyle
	}
	left += phaseStyle.Render(fmt.Sprintf(" %s", phase))

	right := statusStyle.Render(statusHelp(state) + " ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return lipgloss.NewStyle().MaxWidth(width).Render(left)
	}
	return left + statusStyle.Render(strings.Repeat(" ", gap)) + right
}
