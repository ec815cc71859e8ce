// Package config provides YAML-based game configuration loading and
// difficulty derivation for the stacking game.
package config

import (
	"errors"
	"fmt"
)

// StackConfig contains all tunables for one stacking game variant.
// World units are abstract: the field is Field.Width x Field.Height with y
// growing downward, so the tower rises toward y = 0.
type StackConfig struct {
	Field      FieldConfig      `yaml:"field" toml:"field"`
	Blocks     BlockConfig      `yaml:"blocks" toml:"blocks"`
	Placement  PlacementConfig  `yaml:"placement" toml:"placement"`
	Motion     MotionConfig     `yaml:"motion" toml:"motion"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
	Effects    EffectsConfig    `yaml:"effects" toml:"effects"`
}

// FieldConfig defines the play field geometry.
type FieldConfig struct {
	Width           float64 `yaml:"width" toml:"width"`
	Height          float64 `yaml:"height" toml:"height"`
	BaseY           float64 `yaml:"base_y" toml:"base_y"`                     // centerY of the base block
	ScrollThreshold float64 `yaml:"scroll_threshold" toml:"scroll_threshold"` // evict when a landed block's centerY is above this
}

// BlockConfig defines block dimensions.
type BlockConfig struct {
	Height       float64 `yaml:"height" toml:"height"`
	BaseWidth    float64 `yaml:"base_width" toml:"base_width"`
	InheritWidth bool    `yaml:"inherit_width" toml:"inherit_width"` // false = legacy fixed-width moving blocks
}

// PlacementConfig defines scoring and placement resolution parameters.
type PlacementConfig struct {
	ScoreUnit        int     `yaml:"score_unit" toml:"score_unit"`
	PerfectTolerance float64 `yaml:"perfect_tolerance" toml:"perfect_tolerance"`
	MinSliver        float64 `yaml:"min_sliver" toml:"min_sliver"`           // narrower overhangs are not emitted
	MinPieceWidth    float64 `yaml:"min_piece_width" toml:"min_piece_width"` // emitted overhang widths are floored here
	SpawnDelayMs     int     `yaml:"spawn_delay_ms" toml:"spawn_delay_ms"`
	StreakGlowAt     int     `yaml:"streak_glow_at" toml:"streak_glow_at"`
}

// MotionConfig defines the moving block speed ramp.
type MotionConfig struct {
	BaseSpeed      float64 `yaml:"base_speed" toml:"base_speed"`           // units per second
	SpeedStep      float64 `yaml:"speed_step" toml:"speed_step"`           // added per successful placement
	MilestoneBonus float64 `yaml:"milestone_bonus" toml:"milestone_bonus"` // added per score milestone
	MaxSpeed       float64 `yaml:"max_speed" toml:"max_speed"`
}

// DifficultyConfig defines the score-driven darkness and wobble ramps.
type DifficultyConfig struct {
	Enabled         bool    `yaml:"enabled" toml:"enabled"`
	Milestone       int     `yaml:"milestone" toml:"milestone"` // score modulus for speed bonus and darkness steps
	DarknessStep    float64 `yaml:"darkness_step" toml:"darkness_step"`
	TintLight       int     `yaml:"tint_light" toml:"tint_light"` // gray level at darkness 0
	TintDark        int     `yaml:"tint_dark" toml:"tint_dark"`   // gray level at darkness 1
	OverlayMaxAlpha float64 `yaml:"overlay_max_alpha" toml:"overlay_max_alpha"`
	WobbleLowAt     int     `yaml:"wobble_low_at" toml:"wobble_low_at"`
	WobbleHighAt    int     `yaml:"wobble_high_at" toml:"wobble_high_at"`
	WobbleLow       float64 `yaml:"wobble_low" toml:"wobble_low"`
	WobbleHigh      float64 `yaml:"wobble_high" toml:"wobble_high"`
}

// EffectsConfig defines scripted presentation trajectories.
type EffectsConfig struct {
	MissFallDistance     float64 `yaml:"miss_fall_distance" toml:"miss_fall_distance"`
	MissRotation         float64 `yaml:"miss_rotation" toml:"miss_rotation"` // rotation drawn from [-v, +v] degrees
	OverhangFallDistance float64 `yaml:"overhang_fall_distance" toml:"overhang_fall_distance"`
	OverhangRotation     float64 `yaml:"overhang_rotation" toml:"overhang_rotation"`
	FallDurationMs       int     `yaml:"fall_duration_ms" toml:"fall_duration_ms"`
	FadeMs               int     `yaml:"fade_ms" toml:"fade_ms"`
	ShiftMs              int     `yaml:"shift_ms" toml:"shift_ms"`
	SquashMs             int     `yaml:"squash_ms" toml:"squash_ms"`
}

// Validate reports the first structural problem with the config.
func (c StackConfig) Validate() error {
	switch {
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return errors.New("config: field dimensions must be positive")
	case c.Field.BaseY <= 0 || c.Field.BaseY > c.Field.Height:
		return fmt.Errorf("config: base_y %.1f outside field height %.1f", c.Field.BaseY, c.Field.Height)
	case c.Field.ScrollThreshold >= c.Field.BaseY:
		return fmt.Errorf("config: scroll_threshold %.1f must be above base_y %.1f", c.Field.ScrollThreshold, c.Field.BaseY)
	case c.Blocks.Height <= 0:
		return errors.New("config: block height must be positive")
	case c.Blocks.BaseWidth <= 0 || c.Blocks.BaseWidth > c.Field.Width:
		return fmt.Errorf("config: base_width %.1f must be in (0, %.1f]", c.Blocks.BaseWidth, c.Field.Width)
	case c.Placement.ScoreUnit <= 0:
		return errors.New("config: score_unit must be positive")
	case c.Placement.PerfectTolerance < 0 || c.Placement.MinSliver < 0 || c.Placement.MinPieceWidth < 0:
		return errors.New("config: placement tolerances must not be negative")
	case c.Placement.SpawnDelayMs < 0:
		return errors.New("config: spawn_delay_ms must not be negative")
	case c.Motion.BaseSpeed <= 0:
		return errors.New("config: base_speed must be positive")
	case c.Motion.MaxSpeed < c.Motion.BaseSpeed:
		return fmt.Errorf("config: max_speed %.1f below base_speed %.1f", c.Motion.MaxSpeed, c.Motion.BaseSpeed)
	case c.Motion.SpeedStep < 0 || c.Motion.MilestoneBonus < 0:
		return errors.New("config: speed increments must not be negative")
	}

	d := c.Difficulty
	switch {
	case d.Milestone <= 0:
		return errors.New("config: milestone must be positive")
	case d.DarknessStep < 0:
		return errors.New("config: darkness_step must not be negative")
	case d.TintLight < 0 || d.TintLight > 255 || d.TintDark < 0 || d.TintDark > 255:
		return errors.New("config: tint levels must be in [0, 255]")
	case d.OverlayMaxAlpha < 0 || d.OverlayMaxAlpha > 1:
		return errors.New("config: overlay_max_alpha must be in [0, 1]")
	case d.WobbleHighAt < d.WobbleLowAt:
		return fmt.Errorf("config: wobble_high_at %d below wobble_low_at %d", d.WobbleHighAt, d.WobbleLowAt)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown values yield "" (use config as-is).
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
