package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "h", "left":
		return core.ActionLeft, false
	case "d", "l", "right":
		return core.ActionRight, false
	case " ", "w", "up":
		return core.ActionFire, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}

// defaultHoldTicks is how long a movement key counts as held after its last
// key event. It spans the gap between the terminal's first auto-repeat
// events, which is the longest one.
const defaultHoldTicks = 30

// InputTracker turns discrete terminal key events into per-tick input frames.
// Terminals report presses and auto-repeats but no releases, so movement
// keys stay held for a window after each event. Every other action,
// fire included, lasts exactly one tick; a burst of auto-repeated fire
// events therefore yields separate presses.
type InputTracker struct {
	holdTicks int
	held      map[core.Action]int // Ticks left for each held action
	once      core.InputFrame
}

// NewInputTracker creates a tracker that holds movement for holdTicks ticks;
// holdTicks <= 0 selects the default.
func NewInputTracker(holdTicks int) *InputTracker {
	if holdTicks <= 0 {
		holdTicks = defaultHoldTicks
	}
	return &InputTracker{
		holdTicks: holdTicks,
		held:      make(map[core.Action]int),
		once:      core.NewInputFrame(),
	}
}

// Press records a key event for the action.
func (t *InputTracker) Press(a core.Action) {
	switch a {
	case core.ActionNone:
		return
	case core.ActionLeft, core.ActionRight:
		// Reversing direction releases the other key at once.
		delete(t.held, opposite(a))
		t.held[a] = t.holdTicks
	default:
		t.once.Set(a)
	}
}

func opposite(a core.Action) core.Action {
	if a == core.ActionLeft {
		return core.ActionRight
	}
	return core.ActionLeft
}

// Frame returns the input for the next tick and ages held actions.
func (t *InputTracker) Frame() core.InputFrame {
	frame := t.once.Clone()
	t.once.Clear()
	for a, left := range t.held {
		frame.Set(a)
		if left <= 1 {
			delete(t.held, a)
		} else {
			t.held[a] = left - 1
		}
	}
	return frame
}

// Reset drops all pending and held input.
func (t *InputTracker) Reset() {
	clear(t.held)
	t.once.Clear()
}
