package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders/sim"
)

func TestCollectorCountsEvents(t *testing.T) {
	c := NewCollector()

	events := []sim.Event{
		{Type: sim.EventLevelStarted, Level: 1},
		{Type: sim.EventAlienDestroyed, Tier: 0, Score: 10},
		{Type: sim.EventAlienDestroyed, Tier: 2, Score: 30},
		{Type: sim.EventMotherShipDestroyed, Score: 100},
		{Type: sim.EventLevelStarted, Level: 3},
		{Type: sim.EventLevelStarted, Level: 2},
	}
	for _, ev := range events {
		c.HandleEvent(ev)
	}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"alien destroyed events", testutil.ToFloat64(c.events.WithLabelValues("alien_destroyed")), 2},
		{"level started events", testutil.ToFloat64(c.events.WithLabelValues("level_started")), 3},
		{"tier 0 kills", testutil.ToFloat64(c.aliensKilled.WithLabelValues("0")), 1},
		{"tier 2 kills", testutil.ToFloat64(c.aliensKilled.WithLabelValues("2")), 1},
		{"score", testutil.ToFloat64(c.score), 140},
		{"highest level", testutil.ToFloat64(c.highestLevel), 3},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestCollectorPrecreatesSeries(t *testing.T) {
	c := NewCollector()
	if n := testutil.CollectAndCount(c.events); n != len(sim.EventTypes()) {
		t.Errorf("event series = %d, want %d", n, len(sim.EventTypes()))
	}
}

func TestCollectorAsWorldSink(t *testing.T) {
	c := NewCollector()
	w := sim.NewWorld(config.DefaultInvadersConfig(), sim.Options{Seed: 1})
	defer w.Dispose()
	w.Subscribe(c)

	w.Step(sim.Input{})
	if got := testutil.ToFloat64(c.events.WithLabelValues("level_started")); got != 1 {
		t.Errorf("LevelStarted = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.highestLevel); got != 1 {
		t.Errorf("highest level = %v, want 1", got)
	}
}

func TestRouter(t *testing.T) {
	c := NewCollector()
	c.HandleEvent(sim.Event{Type: sim.EventPlayerFired})
	c.ObserveTick(2 * time.Millisecond)

	ts := httptest.NewServer(NewRouter(c))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/healthz status = %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	for _, want := range []string{
		`invaders_events_total{type="player_fired"} 1`,
		"invaders_tick_duration_seconds_count 1",
		"invaders_highest_level 0",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("/metrics missing %q", want)
		}
	}
}
