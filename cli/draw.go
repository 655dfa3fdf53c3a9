package cli

import (
	"github.com/gdamore/tcell/v2"

	"github.com/vexterm/vexterm"
)

// Hosting-terminal defaults used when the core reports a default color
var (
	defaultFg = vexterm.RGB{R: 212, G: 212, B: 212}
	defaultBg = vexterm.RGB{R: 30, G: 30, B: 30}
)

// drawer converts cells to tcell content. On hosts without true color
// support it downgrades RGB values to the nearest palette index.
type drawer struct {
	screen    tcell.Screen
	palette   vexterm.ColorPalette
	trueColor bool
}

func newDrawer(screen tcell.Screen) *drawer {
	return &drawer{
		screen:    screen,
		palette:   vexterm.NewColorPalette(),
		trueColor: screen.Colors() >= 1<<24,
	}
}

// drawDirty redraws every cell covered by a dirty region. Regions may
// overlap; redundant redraws are harmless.
func (d *drawer) drawDirty(r *vexterm.Renderer) {
	cols, rows := r.Size()
	reverseVideo := r.State().ReverseVideo
	for _, region := range r.DirtyRegions() {
		region = region.Intersect(cols, rows)
		for y := region.Y; y < region.Y+region.Height; y++ {
			for x := region.X; x < region.X+region.Width; x++ {
				d.drawCell(x, y, r.Cell(x, y), reverseVideo)
			}
		}
	}
}

func (d *drawer) drawCell(x, y int, cell vexterm.Cell, reverseVideo bool) {
	fg, fgDef := cell.Foreground, defaultFg
	bg, bgDef := cell.Background, defaultBg
	if reverseVideo {
		fg, bg = bg, fg
		fgDef, bgDef = bgDef, fgDef
	}

	style := tcell.StyleDefault.
		Foreground(d.toTcell(fg, fgDef)).
		Background(d.toTcell(bg, bgDef)).
		Bold(cell.Attrs.Bold).
		Dim(cell.Attrs.Dim).
		Italic(cell.Attrs.Italic).
		Underline(cell.Attrs.Underline).
		Blink(cell.Attrs.Blink).
		Reverse(cell.Attrs.Reverse).
		StrikeThrough(cell.Attrs.Strikethrough)

	ch := cell.Char
	if cell.Attrs.Hidden || ch < ' ' {
		ch = ' '
	}
	d.screen.SetContent(x, y, ch, nil, style)
}

// toTcell maps a cell color to a tcell color. Named and indexed colors
// keep their palette index on non-true-color hosts; everything else
// resolves to RGB, downgraded to the nearest index when needed.
func (d *drawer) toTcell(c vexterm.Color, fallback vexterm.RGB) tcell.Color {
	if !d.trueColor {
		if idx := c.ToIndex(); idx >= 0 {
			return tcell.PaletteColor(idx)
		}
	}
	rgb := d.palette.Resolve(c, fallback)
	if d.trueColor {
		return tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
	}
	return tcell.PaletteColor(d.palette.Nearest(rgb))
}
