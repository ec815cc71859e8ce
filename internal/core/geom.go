// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect represents an axis-aligned bounding box in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Span is a closed horizontal interval [Lo, Hi] in world units.
// A span with Hi <= Lo is empty.
type Span struct {
	Lo, Hi float64
}

// SpanAround returns the span of a slab centered at center with the given width.
func SpanAround(center, width float64) Span {
	half := width / 2
	return Span{Lo: center - half, Hi: center + half}
}

// Width returns Hi - Lo. Negative or zero for empty spans.
func (s Span) Width() float64 {
	return s.Hi - s.Lo
}

// Center returns the midpoint of the span.
func (s Span) Center() float64 {
	return (s.Lo + s.Hi) / 2
}

// Empty reports whether the span has no positive extent.
func (s Span) Empty() bool {
	return s.Width() <= 0
}

// Intersect returns the overlap of two spans.
// The result is not normalized: disjoint spans yield Lo > Hi, so callers can
// read the (negative) gap from Width.
func (s Span) Intersect(other Span) Span {
	return Span{
		Lo: max(s.Lo, other.Lo),
		Hi: min(s.Hi, other.Hi),
	}
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
