package stack

import (
	"math"

	"github.com/vovakirdan/tui-stacker/internal/config"
	"github.com/vovakirdan/tui-stacker/internal/core"
)

// Block is an axis-aligned rectangle in world units, identified by its center.
type Block struct {
	CenterX float64
	CenterY float64
	Width   float64
	Height  float64
	Tint    core.RGB
}

// Left returns the x coordinate of the left edge.
func (b Block) Left() float64 { return b.CenterX - b.Width/2 }

// Right returns the x coordinate of the right edge.
func (b Block) Right() float64 { return b.CenterX + b.Width/2 }

// Span returns the horizontal extent of the block.
func (b Block) Span() core.Span { return core.SpanAround(b.CenterX, b.Width) }

// MovingBlock is the block sliding above the tower, waiting to be placed.
type MovingBlock struct {
	Block
	Direction int     // -1 or +1
	Speed     float64 // world units per second
}

// RunState is the per-run state owned by the engine.
type RunState struct {
	Score         int
	Speed         float64
	Darkness      float64
	Tint          core.RGB
	Wobble        float64
	OverlayAlpha  float64
	PerfectStreak int
	Placements    int
	GameOver      bool
}

// Kind classifies the outcome of a placement attempt.
type Kind int

const (
	Ignored Kind = iota // No moving block, run over, or degenerate input
	Success             // Block landed on the tower
	Miss                // No overlap, run is over
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Miss:
		return "miss"
	default:
		return "ignored"
	}
}

// FallingPiece describes a block fragment leaving the tower.
// It is a presentation hint only; the engine never tracks it.
type FallingPiece struct {
	Block
	DropDistance float64 // downward travel in world units
	TargetAlpha  float64
	Rotation     float64 // degrees
	DurationMs   int
}

// Result is what a placement attempt produced.
type Result struct {
	Kind Kind

	// Success only.
	Landed           Block
	Overhangs        []FallingPiece
	PerfectStreak    int
	StreakGlow       bool
	Evicted          *Block  // bottom block removed to keep the tower in view
	Shift            float64 // distance every remaining block moved down
	DarknessChanged  bool
	MilestoneCrossed bool
	SpawnAfterMs     int // delay before the driver should call SpawnNext

	// Miss only.
	Fall *FallingPiece

	Score int
}

// Overlap is the horizontal intersection of a moving block with the tower top.
type Overlap struct {
	LeftEdge  float64
	RightEdge float64
	Width     float64
	CenterX   float64
}

// Resolve computes the overlap between moving and top.
// A non-positive Width means the blocks do not overlap.
func Resolve(moving, top Block) Overlap {
	s := moving.Span().Intersect(top.Span())
	return Overlap{
		LeftEdge:  s.Lo,
		RightEdge: s.Hi,
		Width:     s.Width(),
		CenterX:   s.Center(),
	}
}

// Engine owns the tower, the run state and the moving block.
// It has no timers and is not safe for concurrent use.
type Engine struct {
	cfg        config.StackConfig
	difficulty *config.DifficultyController
	rng        RandomSource

	tower  *Tower
	moving *MovingBlock
	state  RunState
}

// NewEngine creates an engine and starts the first run.
// The first moving block appears after SpawnNext.
func NewEngine(cfg config.StackConfig, rng RandomSource) *Engine {
	if rng == nil {
		rng = NewRandom(1)
	}
	e := &Engine{
		cfg:        cfg,
		difficulty: config.NewDifficultyController(cfg),
		rng:        rng,
		tower:      NewTower(32),
	}
	e.Reset()
	return e
}

// Reset discards the current run and seeds a fresh tower with the base block.
func (e *Engine) Reset() {
	tuning := e.difficulty.Derive(0)
	e.state = RunState{
		Speed:        tuning.Speed,
		Darkness:     tuning.Darkness,
		Tint:         tuning.Tint,
		Wobble:       tuning.Wobble,
		OverlayAlpha: tuning.OverlayAlpha,
	}
	e.moving = nil
	e.tower.Reset(Block{
		CenterX: e.cfg.Field.Width / 2,
		CenterY: e.cfg.Field.BaseY,
		Width:   e.cfg.Blocks.BaseWidth,
		Height:  e.cfg.Blocks.Height,
		Tint:    tuning.Tint,
	})
}

// SpawnNext creates the moving block one block-height above the tower top.
// It starts at the field edge its random direction leads away from.
// Returns false when the run is over or a block is already moving.
func (e *Engine) SpawnNext() bool {
	if e.state.GameOver || e.moving != nil {
		return false
	}
	top, ok := e.tower.Top()
	if !ok {
		return false
	}

	width := top.Width
	if !e.cfg.Blocks.InheritWidth {
		width = e.cfg.Blocks.BaseWidth
	}

	dir := 1
	x := 0.0
	if e.rng.Float64() < 0.5 {
		dir = -1
		x = e.cfg.Field.Width
	}

	e.moving = &MovingBlock{
		Block: Block{
			CenterX: x,
			CenterY: top.CenterY - e.cfg.Blocks.Height,
			Width:   width,
			Height:  e.cfg.Blocks.Height,
			Tint:    e.state.Tint,
		},
		Direction: dir,
		Speed:     e.state.Speed,
	}
	return true
}

// AdvanceMotion moves the block horizontally by dt seconds.
// Reaching either field boundary reverses direction; overshoot is kept.
func (e *Engine) AdvanceMotion(dt float64) {
	if e.state.GameOver || e.moving == nil || dt <= 0 {
		return
	}
	m := e.moving
	m.CenterX += float64(m.Direction) * m.Speed * dt

	// Only flip when heading outward, so an overshoot cannot trap the block.
	switch {
	case m.CenterX >= e.cfg.Field.Width && m.Direction > 0:
		m.Direction = -1
	case m.CenterX <= 0 && m.Direction < 0:
		m.Direction = 1
	}
}

// AttemptPlacement drops the moving block onto the tower.
func (e *Engine) AttemptPlacement() Result {
	if e.state.GameOver || e.moving == nil || e.moving.Width <= 0 {
		return Result{Kind: Ignored, Score: e.state.Score}
	}
	top, ok := e.tower.Top()
	if !ok || top.Width <= 0 {
		return Result{Kind: Ignored, Score: e.state.Score}
	}

	moving := e.moving.Block
	e.moving = nil

	ov := Resolve(moving, top)
	if ov.Width <= 0 {
		e.state.GameOver = true
		e.state.PerfectStreak = 0
		fall := FallingPiece{
			Block:        moving,
			DropDistance: e.cfg.Effects.MissFallDistance,
			TargetAlpha:  0,
			Rotation:     e.rotation(e.cfg.Effects.MissRotation),
			DurationMs:   e.cfg.Effects.FallDurationMs,
		}
		return Result{Kind: Miss, Fall: &fall, Score: e.state.Score}
	}

	res := Result{Kind: Success}

	if math.Abs(ov.CenterX-top.CenterX) < e.cfg.Placement.PerfectTolerance {
		e.state.PerfectStreak++
	} else {
		e.state.PerfectStreak = 0
	}
	res.PerfectStreak = e.state.PerfectStreak
	res.StreakGlow = e.state.PerfectStreak >= e.cfg.Placement.StreakGlowAt

	res.Overhangs = e.overhangs(moving, ov)

	landed := Block{
		CenterX: ov.CenterX,
		CenterY: moving.CenterY,
		Width:   ov.Width,
		Height:  moving.Height,
		Tint:    e.state.Tint,
	}
	e.tower.PushBack(landed)

	prevScore := e.state.Score
	e.state.Score += e.cfg.Placement.ScoreUnit
	e.state.Placements++
	res.MilestoneCrossed = e.difficulty.MilestoneCrossed(prevScore, e.state.Score)
	res.DarknessChanged = e.applyTuning()

	if landed.CenterY < e.cfg.Field.ScrollThreshold && e.tower.Len() > 1 {
		if evicted, ok := e.tower.PopFront(); ok {
			e.tower.ShiftDown(e.cfg.Blocks.Height)
			res.Evicted = &evicted
			res.Shift = e.cfg.Blocks.Height
		}
	}

	res.Landed, _ = e.tower.Top()
	res.Score = e.state.Score
	res.SpawnAfterMs = e.cfg.Placement.SpawnDelayMs
	return res
}

// overhangs returns the slivers of moving that hang past the overlap.
func (e *Engine) overhangs(moving Block, ov Overlap) []FallingPiece {
	var pieces []FallingPiece
	emit := func(lo, hi float64) {
		w := hi - lo
		if w <= 0 || w < e.cfg.Placement.MinSliver {
			return
		}
		pieces = append(pieces, FallingPiece{
			Block: Block{
				CenterX: (lo + hi) / 2,
				CenterY: moving.CenterY,
				Width:   math.Max(w, e.cfg.Placement.MinPieceWidth),
				Height:  moving.Height,
				Tint:    moving.Tint,
			},
			DropDistance: e.cfg.Effects.OverhangFallDistance,
			TargetAlpha:  0,
			Rotation:     e.rotation(e.cfg.Effects.OverhangRotation),
			DurationMs:   e.cfg.Effects.FallDurationMs,
		})
	}
	if moving.Left() < ov.LeftEdge {
		emit(moving.Left(), ov.LeftEdge)
	}
	if moving.Right() > ov.RightEdge {
		emit(ov.RightEdge, moving.Right())
	}
	return pieces
}

// applyTuning re-derives the ramps from score and retints on a darkness change.
func (e *Engine) applyTuning() bool {
	t := e.difficulty.Derive(e.state.Score)
	e.state.Speed = math.Max(e.state.Speed, t.Speed)
	e.state.Wobble = t.Wobble
	e.state.OverlayAlpha = t.OverlayAlpha

	if t.Darkness == e.state.Darkness {
		return false
	}
	e.state.Darkness = math.Max(e.state.Darkness, t.Darkness)
	e.state.Tint = t.Tint
	e.tower.Retint(t.Tint)
	return true
}

// rotation draws a value uniformly from [-limit, +limit].
func (e *Engine) rotation(limit float64) float64 {
	return (e.rng.Float64()*2 - 1) * limit
}

// State returns a copy of the run state.
func (e *Engine) State() RunState {
	return e.state
}

// Tower returns a copy of the tower, bottom first.
func (e *Engine) Tower() []Block {
	return e.tower.Blocks()
}

// TowerLen returns the number of landed blocks.
func (e *Engine) TowerLen() int {
	return e.tower.Len()
}

// Top returns the current tower top.
func (e *Engine) Top() Block {
	b, _ := e.tower.Top()
	return b
}

// Moving returns a copy of the moving block, if any.
func (e *Engine) Moving() (MovingBlock, bool) {
	if e.moving == nil {
		return MovingBlock{}, false
	}
	return *e.moving, true
}

// Ramping reports whether speed and darkness grow with the score.
func (e *Engine) Ramping() bool {
	return e.difficulty.IsEnabled()
}
