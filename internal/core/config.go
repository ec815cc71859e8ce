package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickSeconds returns the duration of one simulation tick in seconds.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// Cue is a presentation event raised by a game during a tick.
// The platform maps cues to sounds; games never play audio themselves.
type Cue int

const (
	CueNone      Cue = iota
	CuePlace         // A block landed on the tower
	CuePerfect       // A placement extended the perfect streak past one
	CueMilestone     // Score crossed a difficulty milestone
	CueMiss          // The moving block missed the tower entirely
)

// String returns a human-readable name for the cue.
func (c Cue) String() string {
	switch c {
	case CuePlace:
		return "place"
	case CuePerfect:
		return "perfect"
	case CueMilestone:
		return "milestone"
	case CueMiss:
		return "miss"
	default:
		return "none"
	}
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any cues raised during the tick.
type StepResult struct {
	State GameState
	Cues  []Cue
}
