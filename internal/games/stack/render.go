package stack

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-stacker/internal/config"
	"github.com/vovakirdan/tui-stacker/internal/core"
)

// Visual characters for rendering
const (
	BlockChar    = '█'
	MovingChar   = '▓'
	SquashChar   = '▄'
	GroundChar   = '▀'
	FadeHighChar = '▓'
	FadeMidChar  = '▒'
	FadeLowChar  = '░'
)

// Fixed palette for the field.
const (
	skyRGB    core.RGB = 0x9ec9e8
	nightRGB  core.RGB = 0x0b0f1a
	groundRGB core.RGB = 0x6b4f3a
	glowRGB   core.RGB = 0xffd75f
)

// Minimum playable screen size.
const (
	minScreenW = 20
	minScreenH = 10
)

// layout maps world coordinates onto screen cells.
// Columns scale linearly with the field width; rows are one block per line,
// counted up from the base row. When the tower is taller than the screen the
// base row moves below the bottom edge so the top of the stack stays in view.
type layout struct {
	w, h    int
	baseRow int
	field   config.FieldConfig
	blockH  float64
}

// topRow is the highest row a block may occupy; row 0 holds the HUD.
const topRow = 2

func newLayout(dst *core.Screen, cfg config.StackConfig, highestY float64) layout {
	l := layout{
		w:       dst.Width(),
		h:       dst.Height(),
		baseRow: dst.Height() - 2,
		field:   cfg.Field,
		blockH:  cfg.Blocks.Height,
	}
	if r := l.row(highestY); r < topRow {
		l.baseRow += topRow - r
	}
	return l
}

// scrolled reports whether the ground has been pushed off screen.
func (l layout) scrolled() bool {
	return l.baseRow > l.h-2
}

func (l layout) col(x float64) int {
	return int(math.Round(x / l.field.Width * float64(l.w)))
}

func (l layout) row(y float64) int {
	return l.baseRow - int(math.Round((l.field.BaseY-y)/l.blockH))
}

// drawSpan fills the cells covered by [left, right) on row y.
// A block never shrinks below one cell so thin slivers stay visible.
func (l layout) drawSpan(dst *core.Screen, left, right float64, y int, glyph rune, fg core.RGB) {
	if y < 1 || y > l.h-2 {
		return
	}
	x0, x1 := l.col(left), l.col(right)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	for x := x0; x < x1; x++ {
		dst.SetRGB(x, y, glyph, fg)
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2, "Screen too small")
		return
	}

	st := g.engine.State()
	l := newLayout(dst, g.cfg, g.highestY())

	g.drawField(dst, l, st)

	for _, s := range g.fx.fades {
		b := s.block
		l.drawSpan(dst, b.Left(), b.Right(), l.row(b.CenterY), fadeGlyph(s.Alpha), b.Tint)
	}

	g.drawTower(dst, l, st)

	if m, ok := g.engine.Moving(); ok {
		y := l.row(m.CenterY + g.fx.ShiftOffset)
		l.drawSpan(dst, m.Left(), m.Right(), y, MovingChar, m.Tint)
	}

	for _, s := range g.fx.falling {
		p := s.piece
		half := s.visibleWidth() / 2
		y := l.row(p.CenterY + s.DY)
		l.drawSpan(dst, p.CenterX-half, p.CenterX+half, y, fadeGlyph(s.Alpha), p.Tint)
	}

	g.drawHUD(dst, st)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if st.GameOver && !g.fx.Active() {
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", st.Score)
		title := "GAME OVER"
		if st.Score > g.highScore && st.Score > 0 {
			title = "GAME OVER - NEW BEST!"
		}
		g.drawCenteredMessage(dst, title, subtitle)
	}
}

// highestY returns the world y of the topmost block that must stay visible.
func (g *Game) highestY() float64 {
	y := g.engine.Top().CenterY
	if m, ok := g.engine.Moving(); ok {
		y = min(y, m.CenterY)
	} else if !g.engine.State().GameOver {
		y -= g.cfg.Blocks.Height
	}
	return y
}

// drawField paints the sky, darkened by the overlay, and the ground line.
func (g *Game) drawField(dst *core.Screen, l layout, st RunState) {
	sky := core.Blend(skyRGB, nightRGB, st.OverlayAlpha)
	for y := 0; y < l.h-1; y++ {
		for x := 0; x < l.w; x++ {
			dst.SetBackground(x, y, sky)
		}
	}
	for x := 0; x < l.w; x++ {
		dst.SetBackground(x, l.h-1, sky)
		if !l.scrolled() {
			dst.SetRGB(x, l.h-1, GroundChar, groundRGB)
		}
	}
}

// drawTower draws every landed block with the shared wobble offset.
func (g *Game) drawTower(dst *core.Screen, l layout, st RunState) {
	sway := config.WobbleOffset(g.elapsedMs, st.Wobble)
	blocks := g.engine.Tower()

	for i, b := range blocks {
		glyph := BlockChar
		fg := b.Tint
		if i == len(blocks)-1 && g.lastKind == Success {
			if g.fx.SquashScale < 0.9 {
				glyph = SquashChar
			}
			if g.fx.Glowing() {
				fg = glowRGB
			}
		}
		y := l.row(b.CenterY + g.fx.ShiftOffset)
		l.drawSpan(dst, b.Left()+sway, b.Right()+sway, y, glyph, fg)
	}
}

// drawHUD draws score, best, streak and speed on the top row.
func (g *Game) drawHUD(dst *core.Screen, st RunState) {
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", st.Score))

	if g.highScore > 0 {
		dst.DrawText(16, 0, fmt.Sprintf(" Best: %d ", core.Max(g.highScore, st.Score)))
	}

	if st.PerfectStreak >= g.cfg.Placement.StreakGlowAt {
		dst.DrawTextColor(30, 0, fmt.Sprintf(" Perfect x%d ", st.PerfectStreak), core.ColorBrightYellow)
	}

	speed := fmt.Sprintf(" Speed: %d ", int(st.Speed))
	if !g.engine.Ramping() {
		speed = fmt.Sprintf(" Speed: %d (fixed) ", int(st.Speed))
	}
	dst.DrawText(dst.Width()-len(speed)-1, 0, speed)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Reset style under the box so text is not tinted by blocks behind it
	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			dst.SetColor(x, y, ' ', core.ColorDefault)
			dst.SetBackground(x, y, core.NoRGB)
		}
	}
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}

// fadeGlyph picks a lighter shade as alpha drops.
func fadeGlyph(alpha float64) rune {
	switch {
	case alpha > 0.66:
		return FadeHighChar
	case alpha > 0.33:
		return FadeMidChar
	default:
		return FadeLowChar
	}
}
