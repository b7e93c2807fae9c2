// Package metrics exports simulation events as Prometheus metrics.
//
// A Collector is an event sink: attach it to every world and it counts what
// happens across all sessions. Labels are bounded: event types and tier
// indexes only, never per-session values.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vovakirdan/tui-invaders/internal/games/invaders/sim"
)

// Collector counts simulation events on its own registry.
type Collector struct {
	reg *prometheus.Registry

	events       *prometheus.CounterVec
	aliensKilled *prometheus.CounterVec
	score        prometheus.Counter
	highestLevel prometheus.Gauge
	tickDuration prometheus.Histogram

	mu      sync.Mutex
	highest int
}

// NewCollector creates a collector with a fresh registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	c := &Collector{
		reg: reg,
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "invaders_events_total",
			Help: "Simulation events by type",
		}, []string{"type"}),
		aliensKilled: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "invaders_aliens_destroyed_total",
			Help: "Aliens destroyed by tier",
		}, []string{"tier"}),
		score: factory.NewCounter(prometheus.CounterOpts{
			Name: "invaders_score_total",
			Help: "Points scored across all runs",
		}),
		highestLevel: factory.NewGauge(prometheus.GaugeOpts{
			Name: "invaders_highest_level",
			Help: "Highest level started by any run",
		}),
		tickDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "invaders_tick_duration_seconds",
			Help:    "Time spent in one simulation step",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),
	}

	// Pre-create every event series so dashboards see zeros.
	for _, t := range sim.EventTypes() {
		c.events.WithLabelValues(t.String())
	}

	return c
}

// Registry returns the registry the collector's metrics live on.
func (c *Collector) Registry() *prometheus.Registry {
	return c.reg
}

// HandleEvent implements sim.Sink.
func (c *Collector) HandleEvent(ev sim.Event) {
	c.events.WithLabelValues(ev.Type.String()).Inc()
	if ev.Score > 0 {
		c.score.Add(float64(ev.Score))
	}

	switch ev.Type {
	case sim.EventAlienDestroyed:
		c.aliensKilled.WithLabelValues(strconv.Itoa(ev.Tier)).Inc()
	case sim.EventLevelStarted:
		c.mu.Lock()
		if ev.Level > c.highest {
			c.highest = ev.Level
			c.highestLevel.Set(float64(ev.Level))
		}
		c.mu.Unlock()
	}
}

// ObserveTick records how long one step took.
func (c *Collector) ObserveTick(d time.Duration) {
	c.tickDuration.Observe(d.Seconds())
}
