package vexterm

// ActiveBuffer selects which screen buffer commands apply to
type ActiveBuffer int

const (
	BufferPrimary ActiveBuffer = iota
	BufferAlternate
)

// ScreenBuffer is a fixed-size grid of cells plus a scrollback of rows
// that scrolled off the top. The grid is row-major; every accessor clamps
// or rejects out-of-range coordinates rather than panicking.
type ScreenBuffer struct {
	cells         [][]Cell
	cols, rows    int
	scrollback    [][]Cell
	maxScrollback int
}

// NewScreenBuffer creates a buffer of the given size filled with default
// cells. maxScrollback bounds the scrollback row count; 0 disables it.
func NewScreenBuffer(cols, rows, maxScrollback int) *ScreenBuffer {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if maxScrollback < 0 {
		maxScrollback = 0
	}
	b := &ScreenBuffer{
		cols:          cols,
		rows:          rows,
		maxScrollback: maxScrollback,
	}
	b.cells = make([][]Cell, rows)
	for y := range b.cells {
		b.cells[y] = newDefaultRow(cols)
	}
	return b
}

func newDefaultRow(cols int) []Cell {
	row := make([]Cell, cols)
	def := DefaultCell()
	for x := range row {
		row[x] = def
	}
	return row
}

// Size returns the grid dimensions
func (b *ScreenBuffer) Size() (cols, rows int) {
	return b.cols, b.rows
}

// Cell returns the cell at (x, y), or a default cell when out of range
func (b *ScreenBuffer) Cell(x, y int) Cell {
	if y < 0 || y >= b.rows || x < 0 || x >= b.cols {
		return DefaultCell()
	}
	return b.cells[y][x]
}

// SetCell writes a cell at (x, y); out-of-range writes are dropped
func (b *ScreenBuffer) SetCell(x, y int, c Cell) {
	if y < 0 || y >= b.rows || x < 0 || x >= b.cols {
		return
	}
	b.cells[y][x] = c
}

// Row returns the backing slice for row y, or nil when out of range.
// Callers that mutate it are responsible for dirty tracking.
func (b *ScreenBuffer) Row(y int) []Cell {
	if y < 0 || y >= b.rows {
		return nil
	}
	return b.cells[y]
}

// Clear resets every cell in the grid to the default cell
func (b *ScreenBuffer) Clear() {
	for y := range b.cells {
		row := b.cells[y]
		def := DefaultCell()
		for x := range row {
			row[x] = def
		}
	}
}

// PushScrollback appends a copy of a row that scrolled off the top,
// evicting the oldest row once the cap is reached.
func (b *ScreenBuffer) PushScrollback(row []Cell) {
	if b.maxScrollback == 0 {
		return
	}
	saved := make([]Cell, len(row))
	copy(saved, row)
	b.scrollback = append(b.scrollback, saved)
	if len(b.scrollback) > b.maxScrollback {
		b.scrollback = b.scrollback[len(b.scrollback)-b.maxScrollback:]
	}
}

// Scrollback returns the stored rows, oldest first
func (b *ScreenBuffer) Scrollback() [][]Cell {
	return b.scrollback
}

// ScrollbackLen returns the number of stored scrollback rows
func (b *ScreenBuffer) ScrollbackLen() int {
	return len(b.scrollback)
}

// ClearScrollback discards all scrollback rows
func (b *ScreenBuffer) ClearScrollback() {
	b.scrollback = nil
}

// Resize changes the grid dimensions, anchored at the top-left corner.
// Surviving cells keep their content; new cells are default; content
// beyond the new bounds is lost. Scrollback is untouched.
func (b *ScreenBuffer) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if cols == b.cols && rows == b.rows {
		return
	}
	next := make([][]Cell, rows)
	for y := 0; y < rows; y++ {
		next[y] = newDefaultRow(cols)
		if y < b.rows {
			n := b.cols
			if cols < n {
				n = cols
			}
			copy(next[y][:n], b.cells[y][:n])
		}
	}
	b.cells = next
	b.cols = cols
	b.rows = rows
}

// ScreenBuffers bundles the primary and alternate buffers with the
// selector that says which one is live.
type ScreenBuffers struct {
	Primary   *ScreenBuffer
	Alternate *ScreenBuffer
	Active    ActiveBuffer
}

// NewScreenBuffers creates both buffers at the same size. The alternate
// buffer never accumulates scrollback.
func NewScreenBuffers(cols, rows, maxScrollback int) *ScreenBuffers {
	return &ScreenBuffers{
		Primary:   NewScreenBuffer(cols, rows, maxScrollback),
		Alternate: NewScreenBuffer(cols, rows, 0),
	}
}

// Current returns the buffer commands currently apply to
func (s *ScreenBuffers) Current() *ScreenBuffer {
	if s.Active == BufferAlternate {
		return s.Alternate
	}
	return s.Primary
}

// Resize resizes both buffers to keep them in lockstep
func (s *ScreenBuffers) Resize(cols, rows int) {
	s.Primary.Resize(cols, rows)
	s.Alternate.Resize(cols, rows)
}
