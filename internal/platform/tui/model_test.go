package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

type tickRecorder struct{ n int }

func (r *tickRecorder) ObserveTick(time.Duration) { r.n++ }

func newTestModel(t *testing.T, embedded bool) (Model, *scriptedGame) {
	t.Helper()
	g := &scriptedGame{}
	m := NewModel(g, ModelOptions{
		Config:   core.RuntimeConfig{ScreenW: 60, ScreenH: 20, TickRate: 60, Seed: 1},
		Embedded: embedded,
	})
	m.Init()
	return m, g
}

func updateModel(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestModelKeysReachNextStep(t *testing.T) {
	m, g := newTestModel(t, false)
	if g.resets != 1 {
		t.Fatalf("Init should reset the game once, got %d", g.resets)
	}

	m, _ = updateModel(t, m, keyMsg("left"))
	m, _ = updateModel(t, m, keyMsg("space"))
	m, cmd := updateModel(t, m, TickMsg{})

	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if !g.last.Has(core.ActionLeft) || !g.last.Has(core.ActionFire) {
		t.Error("step should see left and fire")
	}

	updateModel(t, m, TickMsg{})
	if !g.last.Has(core.ActionLeft) {
		t.Error("left should still be held on the next tick")
	}
	if g.last.Has(core.ActionFire) {
		t.Error("fire should last a single tick")
	}
}

func TestModelObserverTimesSteps(t *testing.T) {
	rec := &tickRecorder{}
	g := &scriptedGame{}
	m := NewModel(g, ModelOptions{
		Config:   core.RuntimeConfig{ScreenW: 60, ScreenH: 20},
		Observer: rec,
	})
	m.Init()

	for range 3 {
		m, _ = updateModel(t, m, TickMsg{})
	}
	if rec.n != 3 {
		t.Errorf("observer saw %d ticks, want 3", rec.n)
	}
}

func TestModelBackPausesWhilePlaying(t *testing.T) {
	m, g := newTestModel(t, true)

	m, _ = updateModel(t, m, keyMsg("esc"))
	if m.BackToMenu() {
		t.Fatal("back during play should not leave")
	}
	updateModel(t, m, TickMsg{})
	if !g.last.Has(core.ActionPause) {
		t.Error("back during play should pause")
	}
}

func TestModelBackLeavesWhenOver(t *testing.T) {
	m, g := newTestModel(t, true)
	g.state = core.GameState{Phase: "GAMEOVER", GameOver: true}
	m, _ = updateModel(t, m, TickMsg{})

	m, cmd := updateModel(t, m, keyMsg("esc"))
	if !m.BackToMenu() {
		t.Error("back after game over should return to the menu")
	}
	if cmd != nil {
		t.Error("embedded model should not quit the program")
	}
	if m.View() != "" {
		t.Error("view should be empty after leaving")
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	m, g := newTestModel(t, false)
	g.state = core.GameState{Phase: "GAMEOVER", GameOver: true}
	m, _ = updateModel(t, m, TickMsg{})

	m, _ = updateModel(t, m, keyMsg("r"))
	m, _ = updateModel(t, m, TickMsg{})

	if g.resets != 2 {
		t.Errorf("resets = %d, want 2", g.resets)
	}
	if m.State().GameOver {
		t.Error("state should be live after restart")
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, false)
	m, cmd := updateModel(t, m, keyMsg("q"))

	if !m.IsQuitting() {
		t.Error("q should quit")
	}
	if cmd == nil {
		t.Error("quit should return tea.Quit")
	}
}

func TestModelViewHasStatusBar(t *testing.T) {
	m, _ := newTestModel(t, false)
	m, _ = updateModel(t, m, TickMsg{})

	view := m.View()
	if !strings.Contains(view, "SCRIPTED") {
		t.Error("view should contain the game screen")
	}
	if !strings.Contains(view, "Scripted") {
		t.Error("view should contain the status bar title")
	}
}

func TestModelResizeResetsGamesWithoutResizer(t *testing.T) {
	m, g := newTestModel(t, false)
	m, _ = updateModel(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if g.resets != 2 {
		t.Errorf("resets = %d, want 2", g.resets)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30-statusRows {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}
