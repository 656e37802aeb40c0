// Package brickshot implements a volley brick breaker: aim once, fire a
// stream of balls, wear down the bricks before they reach the floor.
package brickshot

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickshot/internal/config"
	"github.com/vovakirdan/brickshot/internal/core"
	"github.com/vovakirdan/brickshot/internal/registry"
)

func init() {
	registry.Register("brickshot", func() registry.Game { return New() })
	registry.Register("brickshot_classic", func() registry.Game { return NewClassic() })
}

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// eventLogger receives domain events of every game created afterwards.
var eventLogger *log.Logger

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetEventLogger routes domain events to l at debug level. Nil disables it.
func SetEventLogger(l *log.Logger) {
	eventLogger = l
}

// Mode selects the movement and contact policies.
type Mode int

const (
	// ModeScaled moves balls by speed * frame time and polls overlaps.
	ModeScaled Mode = iota
	// ModeClassic moves balls a fixed distance per tick and resolves
	// contacts from started/stopped contact events.
	ModeClassic
)

// Game adapts the simulation to the platform's registry.Game interface.
type Game struct {
	mode      Mode
	sim       *Simulation
	cfg       config.BrickshotConfig
	settings  Settings
	runtime   core.RuntimeConfig
	view      view
	layoutRNG *SimpleRNG
	paused    bool
	preset    config.DifficultyPreset
	observers []Observer
}

// New creates a brickshot game with frame-time scaled movement.
func New() *Game {
	return &Game{mode: ModeScaled}
}

// NewClassic creates a brickshot game with fixed-step movement and
// event-driven contacts.
func NewClassic() *Game {
	return &Game{mode: ModeClassic}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeClassic {
		return "brickshot_classic"
	}
	return "brickshot"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeClassic {
		return "Brickshot (Classic)"
	}
	return "Brickshot"
}

// SetDifficulty selects a preset for this instance, overriding the one set
// with SetDifficultyPreset. It applies from the next Reset.
func (g *Game) SetDifficulty(name string) bool {
	p, ok := config.ParsePreset(name)
	if !ok {
		return false
	}
	g.preset = p
	return true
}

// Subscribe registers an observer that survives restarts.
func (g *Game) Subscribe(o Observer) {
	g.observers = append(g.observers, o)
	if g.sim != nil {
		g.sim.Subscribe(o)
	}
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadBrickshot(configPath)
	if err != nil {
		if eventLogger != nil {
			eventLogger.Warn("falling back to default config", "err", err)
		}
		cfg = config.DefaultBrickshotConfig()
	}
	preset := g.preset
	if preset == "" {
		preset = difficultyPreset
	}
	if preset != "" {
		config.ApplyBrickshotPreset(&cfg, preset)
	}
	g.ResetWithConfig(runtime, cfg)
}

// ResetWithConfig restarts the game with an explicit configuration,
// bypassing the config search path.
func (g *Game) ResetWithConfig(runtime core.RuntimeConfig, cfg config.BrickshotConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = 60
	}
	g.runtime = runtime
	g.cfg = cfg
	g.settings = SettingsFromConfig(cfg)
	difficulty := config.NewDifficultyManager(cfg.Difficulty)

	var integrator Integrator = TimeScaled{MaxStep: cfg.Physics.MaxFrameStep}
	var resolver Resolver = CollisionResolver{}
	if g.mode == ModeClassic || cfg.Physics.Integration == config.IntegrationFixed {
		integrator = FixedStep{Step: cfg.Physics.FixedStep}
	}
	if g.mode == ModeClassic {
		resolver = NewContactResolver()
	}

	g.sim = NewSimulation(g.settings, Options{
		Integrator: integrator,
		Resolver:   resolver,
		Layout:     g.buildLayout(cfg, difficulty, runtime.Seed),
		Difficulty: difficulty,
	})
	for _, o := range g.observers {
		g.sim.Subscribe(o)
	}
	if eventLogger != nil {
		g.sim.Subscribe(LogObserver{Logger: eventLogger})
	}

	g.view = newView(runtime.ScreenW, runtime.ScreenH, g.settings)
	g.paused = false
}

func (g *Game) buildLayout(cfg config.BrickshotConfig, difficulty *config.DifficultyManager, seed int64) LayoutGenerator {
	g.layoutRNG = nil
	if cfg.Layout.File != "" {
		fl, err := LoadFileLayout(cfg.Layout.File)
		if err == nil {
			return fl
		}
		if eventLogger != nil {
			eventLogger.Warn("using random layout", "err", err)
		}
	}
	rl := NewRandomLayout(cfg.Layout, difficulty, seed)
	g.layoutRNG = rl.RNG()
	return rl
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	dt := 1.0 / float64(g.runtime.TickRate)
	if in.Elapsed > 0 {
		dt = in.Elapsed.Seconds()
	}

	t := Tick{
		DT: dt,
		In: Input{
			Confirm: in.Has(core.ActionConfirm),
			Fire:    in.Has(core.ActionFire),
			Recall:  in.Has(core.ActionRecall),
		},
	}
	if in.Has(core.ActionLeft) {
		t.In.Nudge--
	}
	if in.Has(core.ActionRight) {
		t.In.Nudge++
	}
	if in.Click != nil {
		p := g.view.toWorld(in.Click.X, in.Click.Y)
		t.In.Pointer = &p
	}

	g.sim.Step(t)
	return core.StepResult{State: g.State()}
}

// State returns the current game state.
// The game is over while the outcome screen of a decided layout is shown.
func (g *Game) State() core.GameState {
	if g.sim == nil {
		return core.GameState{}
	}
	s := g.sim.Session()
	return core.GameState{
		Score:    s.Score,
		GameOver: g.sim.Phase() == PhaseInit && s.Outcome.Decided(),
		Paused:   g.paused,
		Outcome:  s.Outcome.String(),
		Round:    s.Round,
		Volleys:  s.Volleys,
		Balls:    s.Shooter.Count,
	}
}

// Phase returns the active phase.
func (g *Game) Phase() Phase {
	return g.sim.Phase()
}

// Session returns the simulation context, for inspection.
func (g *Game) Session() *Session {
	return g.sim.Session()
}
