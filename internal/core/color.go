package core

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// RGB is a packed 0xRRGGBB true-color value.
// When a cell carries an RGB other than NoRGB it overrides the palette Color.
type RGB uint32

// NoRGB marks a cell without a true-color override.
const NoRGB RGB = 1 << 24

// GrayRGB packs a single grayscale channel identically into R, G and B.
func GrayRGB(level uint8) RGB {
	v := uint32(level)
	return RGB(v<<16 | v<<8 | v)
}

// Components splits the packed value into its 8-bit channels.
func (c RGB) Components() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Valid reports whether c is a real color rather than NoRGB.
func (c RGB) Valid() bool {
	return c < NoRGB
}

// Hex formats the color as #rrggbb for terminal styling.
func (c RGB) Hex() string {
	return c.colorful().Hex()
}

func (c RGB) colorful() colorful.Color {
	r, g, b := c.Components()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Blend mixes a toward b by t in [0,1]. t = 0 returns a, t = 1 returns b.
func Blend(a, b RGB, t float64) RGB {
	if !a.Valid() {
		return b
	}
	if !b.Valid() {
		return a
	}
	mixed := a.colorful().BlendRgb(b.colorful(), ClampF(t, 0, 1)).Clamped()
	r, g, bl := mixed.RGB255()
	return RGB(uint32(r)<<16 | uint32(g)<<8 | uint32(bl))
}
