package config

import (
	"math"

	"github.com/vovakirdan/tui-stacker/internal/core"
)

// Tuning is the set of values derived from a score.
type Tuning struct {
	Speed        float64  // Moving block speed, units per second
	Darkness     float64  // 0.0 = light, 1.0 = fully dark
	Tint         core.RGB // Neutral gray applied to every block
	Wobble       float64  // Horizontal sway amplitude for tower blocks
	OverlayAlpha float64  // Opacity of the darkening overlay
}

// DifficultyController derives speed, darkness and wobble from score alone.
// It keeps no counters, so the same score always yields the same Tuning.
type DifficultyController struct {
	motion MotionConfig
	unit   int
	cfg    DifficultyConfig
}

// NewDifficultyController creates a controller for the given game config.
func NewDifficultyController(cfg StackConfig) *DifficultyController {
	unit := cfg.Placement.ScoreUnit
	if unit <= 0 {
		unit = 1
	}
	return &DifficultyController{
		motion: cfg.Motion,
		unit:   unit,
		cfg:    cfg.Difficulty,
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyController) IsEnabled() bool {
	return d.cfg.Enabled
}

// Derive computes every tuning value for score.
func (d *DifficultyController) Derive(score int) Tuning {
	darkness := d.Darkness(score)
	return Tuning{
		Speed:        d.Speed(score),
		Darkness:     darkness,
		Tint:         d.Tint(darkness),
		Wobble:       d.Wobble(score),
		OverlayAlpha: darkness * d.cfg.OverlayMaxAlpha,
	}
}

// Speed returns the moving block speed for score.
// Each placement adds SpeedStep and each milestone adds MilestoneBonus,
// capped at MaxSpeed.
func (d *DifficultyController) Speed(score int) float64 {
	if !d.cfg.Enabled || score <= 0 {
		return d.motion.BaseSpeed
	}
	placements := float64(score / d.unit)
	speed := d.motion.BaseSpeed +
		placements*d.motion.SpeedStep +
		float64(d.milestones(score))*d.motion.MilestoneBonus
	return math.Min(speed, d.motion.MaxSpeed)
}

// Darkness returns the darkness level for score, stepped per milestone.
func (d *DifficultyController) Darkness(score int) float64 {
	if !d.cfg.Enabled {
		return 0
	}
	return core.ClampF(float64(d.milestones(score))*d.cfg.DarknessStep, 0, 1)
}

// Tint interpolates a gray level between the light and dark endpoints.
func (d *DifficultyController) Tint(darkness float64) core.RGB {
	darkness = core.ClampF(darkness, 0, 1)
	light := float64(d.cfg.TintLight)
	dark := float64(d.cfg.TintDark)
	level := math.Round(light + (dark-light)*darkness)
	return core.GrayRGB(uint8(core.ClampF(level, 0, 255)))
}

// Wobble returns the sway amplitude: zero, low or high by score threshold.
func (d *DifficultyController) Wobble(score int) float64 {
	if !d.cfg.Enabled {
		return 0
	}
	switch {
	case score >= d.cfg.WobbleHighAt:
		return d.cfg.WobbleHigh
	case score >= d.cfg.WobbleLowAt:
		return d.cfg.WobbleLow
	default:
		return 0
	}
}

// MilestoneCrossed reports whether moving from prev to next passed a milestone.
func (d *DifficultyController) MilestoneCrossed(prev, next int) bool {
	return d.milestones(next) > d.milestones(prev)
}

func (d *DifficultyController) milestones(score int) int {
	if score <= 0 || d.cfg.Milestone <= 0 {
		return 0
	}
	return score / d.cfg.Milestone
}

// WobbleOffset returns the shared-phase horizontal sway for a frame.
// Every tower block uses the same offset; it never changes block positions.
func WobbleOffset(elapsedMillis, intensity float64) float64 {
	if intensity == 0 {
		return 0
	}
	return math.Sin(elapsedMillis/100) * intensity
}
