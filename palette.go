package vexterm

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Standard ANSI 16-color palette RGB values (in ANSI order)
var ansiColorsRGB = []RGB{
	{R: 0, G: 0, B: 0},       // 0: Black
	{R: 170, G: 0, B: 0},     // 1: Red
	{R: 0, G: 170, B: 0},     // 2: Green
	{R: 170, G: 85, B: 0},    // 3: Yellow/Brown
	{R: 0, G: 0, B: 170},     // 4: Blue
	{R: 170, G: 0, B: 170},   // 5: Magenta
	{R: 0, G: 170, B: 170},   // 6: Cyan
	{R: 170, G: 170, B: 170}, // 7: White/Silver
	// Bright variants (8-15)
	{R: 85, G: 85, B: 85},    // 8: Bright Black (Dark Gray)
	{R: 255, G: 85, B: 85},   // 9: Bright Red
	{R: 85, G: 255, B: 85},   // 10: Bright Green
	{R: 255, G: 255, B: 85},  // 11: Bright Yellow
	{R: 85, G: 85, B: 255},   // 12: Bright Blue
	{R: 255, G: 85, B: 255},  // 13: Bright Magenta
	{R: 85, G: 255, B: 255},  // 14: Bright Cyan
	{R: 255, G: 255, B: 255}, // 15: Bright White
}

// indexRGB derives the RGB value for a 256-color palette index:
// 0-15 named colors, 16-231 the 6x6x6 color cube, 232-255 grayscale ramp.
func indexRGB(idx int) RGB {
	if idx < 0 {
		idx = 0
	} else if idx > 255 {
		idx = 255
	}
	if idx < 16 {
		return ansiColorsRGB[idx]
	} else if idx < 232 {
		idx -= 16
		b := idx % 6
		g := (idx / 6) % 6
		r := idx / 36
		return RGB{R: uint8(r * 51), G: uint8(g * 51), B: uint8(b * 51)}
	}
	gray := uint8((idx-232)*10 + 8)
	return RGB{R: gray, G: gray, B: gray}
}

// ColorPalette is a fixed mapping from the 256 terminal color indices to
// RGB values. It is a plain value constructed once and handed to the
// renderer or a frontend, never a process-wide global.
type ColorPalette struct {
	entries [256]RGB
}

// NewColorPalette builds the standard palette: 16 named colors, the
// 216-color cube, and the 24-step grayscale ramp.
func NewColorPalette() ColorPalette {
	var p ColorPalette
	for i := 0; i < 256; i++ {
		p.entries[i] = indexRGB(i)
	}
	return p
}

// Lookup returns the RGB value for a palette index. Out-of-range indices
// clamp to the nearest valid entry.
func (p *ColorPalette) Lookup(idx int) RGB {
	if idx < 0 {
		idx = 0
	} else if idx > 255 {
		idx = 255
	}
	return p.entries[idx]
}

// Resolve maps a Color to a concrete RGB using this palette. The default
// sentinel resolves to the supplied fallback (a frontend's configured
// default fg or bg).
func (p *ColorPalette) Resolve(c Color, fallback RGB) RGB {
	switch c.Type {
	case ColorTypeDefault:
		return fallback
	case ColorTypeNamed, ColorTypeIndex:
		return p.Lookup(int(c.Index))
	default:
		return RGB{R: c.R, G: c.G, B: c.B}
	}
}

// Nearest returns the palette index whose entry is perceptually closest to
// the given RGB. Frontends use this to downgrade true color on hosts that
// only support indexed color.
func (p *ColorPalette) Nearest(rgb RGB) int {
	target := colorful.Color{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
	best := 0
	bestDist := -1.0
	for i, e := range p.entries {
		c := colorful.Color{
			R: float64(e.R) / 255.0,
			G: float64(e.G) / 255.0,
			B: float64(e.B) / 255.0,
		}
		d := target.DistanceLab(c)
		if bestDist < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
