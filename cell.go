package vexterm

// TextAttributes holds the independent SGR attribute flags. They are not
// mutually exclusive; any combination may be active at once.
type TextAttributes struct {
	Bold          bool
	Dim           bool
	Italic        bool
	Underline     bool
	Blink         bool
	Reverse       bool
	Hidden        bool
	Strikethrough bool
}

// Cell represents a single character cell in the terminal grid
type Cell struct {
	Char       rune
	Foreground Color
	Background Color
	Attrs      TextAttributes
	Dirty      bool
}

// DefaultCell returns an empty cell with default colors and no attributes
func DefaultCell() Cell {
	return Cell{
		Char:       ' ',
		Foreground: DefaultForeground,
		Background: DefaultBackground,
	}
}

// IsDefault reports whether the cell is indistinguishable from a freshly
// erased cell (dirty flag ignored).
func (c Cell) IsDefault() bool {
	return c.Char == ' ' &&
		c.Foreground == DefaultForeground &&
		c.Background == DefaultBackground &&
		c.Attrs == (TextAttributes{})
}
