package stack

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/tui-stacker/internal/config"
)

// Squash depth of the landing bounce, as a fraction of full height.
const squashScale = 0.8

// fallingSprite plays a FallingPiece hint: drop, fade and spin together.
type fallingSprite struct {
	piece FallingPiece
	drop  *gween.Tween
	fade  *gween.Tween
	spin  *gween.Tween

	DY    float64 // current downward offset
	Alpha float64
	Angle float64
	Done  bool
}

func newFallingSprite(p FallingPiece) *fallingSprite {
	d := float32(p.DurationMs) / 1000
	return &fallingSprite{
		piece: p,
		drop:  gween.New(0, float32(p.DropDistance), d, ease.InQuad),
		fade:  gween.New(1, float32(p.TargetAlpha), d, ease.InQuad),
		spin:  gween.New(0, float32(p.Rotation), d, ease.Linear),
		Alpha: 1,
	}
}

func (s *fallingSprite) update(dt float32) {
	if s.Done {
		return
	}
	dy, f1 := s.drop.Update(dt)
	a, f2 := s.fade.Update(dt)
	r, f3 := s.spin.Update(dt)
	s.DY, s.Alpha, s.Angle = float64(dy), float64(a), float64(r)
	s.Done = f1 && f2 && f3
}

// visibleWidth narrows the piece as it turns edge-on.
func (s *fallingSprite) visibleWidth() float64 {
	c := math.Abs(math.Cos(s.Angle * math.Pi / 180))
	return s.piece.Width * math.Max(c, 0.2)
}

// fadeSprite fades an evicted block out in place.
type fadeSprite struct {
	block Block
	tween *gween.Tween
	Alpha float64
	Done  bool
}

func (s *fadeSprite) update(dt float32) {
	if s.Done {
		return
	}
	a, finished := s.tween.Update(dt)
	s.Alpha = float64(a)
	s.Done = finished
}

// Effects holds every running presentation tween. Nothing here feeds back
// into the engine.
type Effects struct {
	cfg config.EffectsConfig

	falling []*fallingSprite
	fades   []*fadeSprite

	shift       *gween.Tween
	ShiftOffset float64 // added to tower y while the shift-down plays

	squash      []*gween.Tween
	SquashScale float64

	glowLeft float64 // seconds of streak glow remaining
}

// NewEffects creates an idle effect player.
func NewEffects(cfg config.EffectsConfig) *Effects {
	return &Effects{cfg: cfg, SquashScale: 1}
}

// Clear drops all running effects.
func (fx *Effects) Clear() {
	fx.falling = nil
	fx.fades = nil
	fx.shift = nil
	fx.ShiftOffset = 0
	fx.squash = nil
	fx.SquashScale = 1
	fx.glowLeft = 0
}

// Apply starts the tweens a placement result asks for.
func (fx *Effects) Apply(res Result) {
	switch res.Kind {
	case Miss:
		if res.Fall != nil {
			fx.falling = append(fx.falling, newFallingSprite(*res.Fall))
		}
	case Success:
		for _, p := range res.Overhangs {
			fx.falling = append(fx.falling, newFallingSprite(p))
		}

		half := float32(fx.cfg.SquashMs) / 1000
		fx.squash = []*gween.Tween{
			gween.New(1, squashScale, half, ease.InOutQuad),
			gween.New(squashScale, 1, half, ease.InOutQuad),
		}

		if res.StreakGlow {
			fx.glowLeft = float64(fx.cfg.FadeMs) / 1000
		}

		if res.Evicted != nil {
			fx.fades = append(fx.fades, &fadeSprite{
				block: *res.Evicted,
				tween: gween.New(1, 0, float32(fx.cfg.FadeMs)/1000, ease.Linear),
				Alpha: 1,
			})
			// Blocks have already moved down; draw them from where they were.
			fx.ShiftOffset = -res.Shift
			fx.shift = gween.New(float32(-res.Shift), 0, float32(fx.cfg.ShiftMs)/1000, ease.OutQuad)
		}
	}
}

// Update advances every tween by dt seconds and drops finished ones.
func (fx *Effects) Update(dt float64) {
	step := float32(dt)

	live := fx.falling[:0]
	for _, s := range fx.falling {
		s.update(step)
		if !s.Done {
			live = append(live, s)
		}
	}
	fx.falling = live

	fades := fx.fades[:0]
	for _, s := range fx.fades {
		s.update(step)
		if !s.Done {
			fades = append(fades, s)
		}
	}
	fx.fades = fades

	if fx.shift != nil {
		v, finished := fx.shift.Update(step)
		fx.ShiftOffset = float64(v)
		if finished {
			fx.shift = nil
			fx.ShiftOffset = 0
		}
	}

	if len(fx.squash) > 0 {
		v, finished := fx.squash[0].Update(step)
		fx.SquashScale = float64(v)
		if finished {
			fx.squash = fx.squash[1:]
			if len(fx.squash) == 0 {
				fx.SquashScale = 1
			}
		}
	}

	if fx.glowLeft > 0 {
		fx.glowLeft = math.Max(0, fx.glowLeft-dt)
	}
}

// Glowing reports whether the streak glow is showing.
func (fx *Effects) Glowing() bool {
	return fx.glowLeft > 0
}

// Active reports whether any tween is still running.
func (fx *Effects) Active() bool {
	return len(fx.falling) > 0 || len(fx.fades) > 0 || fx.shift != nil || len(fx.squash) > 0
}
