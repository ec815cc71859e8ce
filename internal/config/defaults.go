package config

import (
	_ "embed"
)

//go:embed defaults/stack.yaml
var defaultStackYAML []byte

//go:embed defaults/stack_classic.yaml
var defaultStackClassicYAML []byte

// Game IDs with embedded defaults.
const (
	GameStack        = "stack"
	GameStackClassic = "stack_classic"
)

// DefaultStackConfig returns the hardcoded default configuration.
// It mirrors defaults/stack.yaml and is the last fallback if the embed fails to parse.
func DefaultStackConfig() StackConfig {
	return StackConfig{
		Field: FieldConfig{
			Width:           800,
			Height:          800,
			BaseY:           700,
			ScrollThreshold: 250,
		},
		Blocks: BlockConfig{
			Height:       30,
			BaseWidth:    260,
			InheritWidth: true,
		},
		Placement: PlacementConfig{
			ScoreUnit:        10,
			PerfectTolerance: 5,
			MinSliver:        0.5,
			MinPieceWidth:    2,
			SpawnDelayMs:     200,
			StreakGlowAt:     2,
		},
		Motion: MotionConfig{
			BaseSpeed:      200,
			SpeedStep:      5,
			MilestoneBonus: 20,
			MaxSpeed:       400,
		},
		Difficulty: DifficultyConfig{
			Enabled:         true,
			Milestone:       50,
			DarknessStep:    0.1,
			TintLight:       235,
			TintDark:        90,
			OverlayMaxAlpha: 0.6,
			WobbleLowAt:     100,
			WobbleHighAt:    200,
			WobbleLow:       2,
			WobbleHigh:      5,
		},
		Effects: EffectsConfig{
			MissFallDistance:     900,
			MissRotation:         360,
			OverhangFallDistance: 500,
			OverhangRotation:     180,
			FallDurationMs:       1000,
			FadeMs:               300,
			ShiftMs:              300,
			SquashMs:             100,
		},
	}
}

// DefaultStackClassicConfig returns the legacy fixed-width rule set.
func DefaultStackClassicConfig() StackConfig {
	cfg := DefaultStackConfig()
	cfg.Blocks.BaseWidth = 200
	cfg.Blocks.InheritWidth = false
	return cfg
}

// DefaultFor returns the hardcoded default for a game ID.
func DefaultFor(gameID string) StackConfig {
	if gameID == GameStackClassic {
		return DefaultStackClassicConfig()
	}
	return DefaultStackConfig()
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case GameStack:
		return defaultStackYAML
	case GameStackClassic:
		return defaultStackClassicYAML
	default:
		return nil
	}
}
