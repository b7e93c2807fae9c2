// Package invaders adapts the combat simulation to the arcade platform:
// it maps platform input to the player's controls, runs one simulation
// tick per Step and draws the world into a character screen.
package invaders

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders/sim"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

// Registry identifiers.
const (
	IDClassic = "invaders"
	IDAlt     = "invaders_alt"
)

// Settings shared by every game created through the registry. They are set
// once by the CLI before any game starts.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	startLevel       int
	logger           = log.New(io.Discard)
	sinks            []sim.Sink
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetStartLevel overrides the configured starting level; 0 keeps the config value.
func SetStartLevel(level int) {
	startLevel = level
}

// SetLogger sets the logger handed to every new world.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// AddSink registers a sink that receives the events of every game.
// Sinks are called from each game's own goroutine.
func AddSink(s sim.Sink) {
	sinks = append(sinks, s)
}

// Game implements registry.Game for both model sets.
type Game struct {
	alt     bool
	preset  config.DifficultyPreset // Overrides the package preset when set
	level   int                     // Overrides the package start level when > 0
	runtime core.RuntimeConfig
	cfg     config.InvadersConfig
	world   *sim.World
	paused  bool

	steps   int // Formation steps seen this level, drives sprite animation
	effects []effect
	banner  string
	bannerT int // Ticks left for the banner

	screenTooSmall bool
}

// New creates the classic game.
func New() *Game {
	return &Game{}
}

// NewAlt creates the game with the alternate model set.
func NewAlt() *Game {
	return &Game{alt: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.alt {
		return IDAlt
	}
	return IDClassic
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.alt {
		return "Invaders (Alt)"
	}
	return "Invaders"
}

// Description returns a one-line summary for game listings.
func (g *Game) Description() string {
	if g.alt {
		return "Alternate model set: slower, heavier formation with fixed explosion presets"
	}
	return "Classic formation: three tiers of rows, barriers and a bonus mothership"
}

// Configure sets this game's difficulty preset and starting level, taking
// precedence over the package settings. It applies from the next Reset.
func (g *Game) Configure(preset string, level int) {
	g.preset = config.ParsePreset(preset)
	g.level = level
}

// LoadConfig resolves the configuration a new run of this variant would use.
func (g *Game) LoadConfig() (config.InvadersConfig, error) {
	cfg, err := config.Load(configPath)

	preset := difficultyPreset
	if g.preset != "" {
		preset = g.preset
	}
	if preset != "" {
		config.ApplyPreset(&cfg, preset)
	}
	if g.alt {
		config.ApplyAltMode(&cfg)
	}

	level := startLevel
	if g.level > 0 {
		level = g.level
	}
	if level > 0 {
		cfg.Difficulty.StartLevel = level
	}
	return cfg, err
}

// Resize updates the screen size without restarting the run.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.screenTooSmall = w < minScreenW || h < minScreenH
}

// Reset starts a new run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := g.LoadConfig()
	if err != nil {
		logger.Warn("using default config", "err", err)
	}
	g.cfg = cfg

	if g.world != nil {
		g.world.Dispose()
	}
	g.world = sim.NewWorld(cfg, sim.Options{
		Seed:     runtime.Seed,
		TickRate: runtime.TickRate,
		Logger:   logger,
	})
	g.world.Subscribe(g)
	for _, s := range sinks {
		g.world.Subscribe(s)
	}

	g.paused = false
	g.steps = 0
	g.effects = g.effects[:0]
	g.banner = ""
	g.bannerT = 0
	g.screenTooSmall = runtime.ScreenW < minScreenW || runtime.ScreenH < minScreenH
}

// World exposes the running simulation.
func (g *Game) World() *sim.World {
	return g.world
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	phase := g.world.Run().Phase()

	if in.Has(core.ActionRestart) && phase.Terminal() {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !phase.Terminal() {
		g.paused = !g.paused
	}
	if g.paused || phase.Terminal() {
		return core.StepResult{State: g.State()}
	}

	g.world.Step(sim.Input{
		Left:  in.Has(core.ActionLeft),
		Right: in.Has(core.ActionRight),
		Fire:  in.Has(core.ActionFire),
	})
	g.ageEffects()

	return core.StepResult{State: g.State()}
}

// HandleEvent keeps the presentation state in step with the simulation.
func (g *Game) HandleEvent(ev sim.Event) {
	switch ev.Type {
	case sim.EventFormationStep:
		g.steps++
	case sim.EventAlienDestroyed, sim.EventMotherShipDestroyed, sim.EventPlayerDied:
		g.effects = append(g.effects, effect{pos: ev.Pos, size: ev.Explosion.Size, ttl: effectTicks})
	case sim.EventLevelStarted:
		g.steps = 0
		g.showBanner(levelBanner(ev.Level))
	case sim.EventMotherShipSpawned:
		g.showBanner("MOTHERSHIP!")
	}
}

func (g *Game) showBanner(text string) {
	g.banner = text
	g.bannerT = bannerTicks
}

func (g *Game) ageEffects() {
	live := g.effects[:0]
	for _, e := range g.effects {
		e.ttl--
		if e.ttl > 0 {
			live = append(live, e)
		}
	}
	g.effects = live
	if g.bannerT > 0 {
		g.bannerT--
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	snap := g.world.Run().Snapshot()
	return core.GameState{
		Score:    snap.Score,
		Level:    snap.Level,
		Phase:    snap.Phase.String(),
		GameOver: snap.Phase.Terminal(),
		Paused:   g.paused,
	}
}

func init() {
	registry.Register(IDClassic, func() registry.Game {
		return New()
	})
	registry.Register(IDAlt, func() registry.Game {
		return NewAlt()
	})
}
