// Package tui hosts the invaders simulation in a terminal through Bubble Tea,
// locally or over SSH. It maps keys to actions, drives the fixed tick loop,
// and records runs into the session ledger.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Tick rate bounds accepted from the command line.
const (
	minTickRate = 10
	maxTickRate = 240
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// clampTickRate keeps the tick rate in the range the host can drive.
func clampTickRate(rate int) int {
	switch {
	case rate <= 0:
		return 60
	case rate < minTickRate:
		return minTickRate
	case rate > maxTickRate:
		return maxTickRate
	}
	return rate
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(clampTickRate(tickRate))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
