// Package stack implements the block stacking game.
// A block slides above the tower; placing it keeps only the part that
// overlaps the block below, so every misaligned drop narrows the target.
package stack

import (
	"github.com/vovakirdan/tui-stacker/internal/config"
	"github.com/vovakirdan/tui-stacker/internal/core"
	"github.com/vovakirdan/tui-stacker/internal/registry"
)

// Variant selects the rule set.
type Variant int

const (
	VariantStandard Variant = iota // moving block inherits the landed width
	VariantClassic                 // moving block always has the base width
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Game drives an Engine at a fixed tick and renders it.
type Game struct {
	variant Variant

	cfg       config.StackConfig
	configErr error // why cfg fell back to the defaults
	rt        core.RuntimeConfig
	engine    *Engine
	fx        *Effects

	paused     bool
	tickCount  int
	elapsedMs  float64
	spawnIn    float64 // seconds until the next block spawns, <= 0 when idle
	spawnDue   bool
	highScore  int
	bestStreak int
	lastKind   Kind
}

// New creates a standard stacking game.
func New() *Game {
	return &Game{variant: VariantStandard}
}

// NewClassic creates the fixed-width variant.
func NewClassic() *Game {
	return &Game{variant: VariantClassic}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.variant == VariantClassic {
		return config.GameStackClassic
	}
	return config.GameStack
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.variant == VariantClassic {
		return "Stack (Classic)"
	}
	return "Stack"
}

// ConfigErr reports why the last Reset ran on the built-in defaults,
// or nil when the configured file loaded.
func (g *Game) ConfigErr() error {
	return g.configErr
}

// Reset loads config and starts a new run.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.rt = rt

	cfg, err := config.LoadStack(g.ID(), configPath)
	g.configErr = err
	if err != nil {
		cfg = config.DefaultFor(g.ID())
	}
	if difficultyPreset != "" {
		config.ApplyStackPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	g.engine = NewEngine(cfg, NewRandom(rt.Seed))
	g.fx = NewEffects(cfg.Effects)
	g.paused = false
	g.tickCount = 0
	g.elapsedMs = 0
	g.spawnIn = 0
	g.spawnDue = false
	g.bestStreak = 0
	g.lastKind = Ignored

	g.engine.SpawnNext()
}

// SetHighScore sets the best score shown in the HUD.
func (g *Game) SetHighScore(score int) {
	g.highScore = score
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	dt := g.rt.TickSeconds()
	st := g.engine.State()

	if st.GameOver {
		// Let the falling block finish its trajectory.
		g.fx.Update(dt)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	g.elapsedMs += dt * 1000
	g.fx.Update(dt)

	var cues []core.Cue
	if in.Has(core.ActionPlace) {
		cues = g.place()
	}

	if g.spawnDue {
		g.spawnIn -= dt
		if g.spawnIn <= 0 {
			g.spawnDue = false
			g.engine.SpawnNext()
		}
	}

	g.engine.AdvanceMotion(dt)

	return core.StepResult{State: g.State(), Cues: cues}
}

// place attempts a placement and schedules what follows.
func (g *Game) place() []core.Cue {
	res := g.engine.AttemptPlacement()
	if res.Kind == Ignored {
		return nil
	}
	g.lastKind = res.Kind
	g.fx.Apply(res)
	g.bestStreak = max(g.bestStreak, res.PerfectStreak)

	if res.Kind == Miss {
		return []core.Cue{core.CueMiss}
	}

	cues := []core.Cue{core.CuePlace}
	if res.StreakGlow {
		cues = append(cues, core.CuePerfect)
	}
	if res.MilestoneCrossed {
		cues = append(cues, core.CueMilestone)
	}

	g.spawnDue = true
	g.spawnIn = float64(res.SpawnAfterMs) / 1000
	return cues
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	st := g.engine.State()
	return core.GameState{
		Score:    st.Score,
		GameOver: st.GameOver,
		Paused:   g.paused,
	}
}

// Placements returns the number of successful placements this run.
func (g *Game) Placements() int {
	return g.engine.State().Placements
}

// BestStreak returns the longest perfect streak this run.
func (g *Game) BestStreak() int {
	return g.bestStreak
}

// Engine exposes the underlying engine for inspection.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Register the game variants with the registry
func init() {
	registry.Register(config.GameStack, func() registry.Game {
		return New()
	})
	registry.Register(config.GameStackClassic, func() registry.Game {
		return NewClassic()
	})
}
