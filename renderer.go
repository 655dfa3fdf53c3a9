package vexterm

// RendererOptions configures a Renderer. Zero values take defaults.
type RendererOptions struct {
	Cols          int // default 80
	Rows          int // default 24
	MaxScrollback int // default 1000 rows; negative disables scrollback
}

func (o *RendererOptions) setDefaults() {
	if o.Cols <= 0 {
		o.Cols = 80
	}
	if o.Rows <= 0 {
		o.Rows = 24
	}
	if o.MaxScrollback == 0 {
		o.MaxScrollback = 1000
	}
	if o.MaxScrollback < 0 {
		o.MaxScrollback = 0
	}
}

// Renderer applies Commands to the terminal state and the active screen
// buffer. It is the only mutator of either. Like the parser it is total:
// out-of-range requests are clamped, defaulted, or dropped, never errored.
//
// A Renderer is not safe for concurrent use; each terminal session owns
// exactly one and serializes access to it.
type Renderer struct {
	state   TerminalState
	buffers *ScreenBuffers
	dirty   []Region
	cols    int
	rows    int
}

// NewRenderer creates a renderer with both screen buffers at the
// configured size, cursor at the origin, and default colors.
func NewRenderer(opts RendererOptions) *Renderer {
	opts.setDefaults()
	return &Renderer{
		state:   NewTerminalState(opts.Rows),
		buffers: NewScreenBuffers(opts.Cols, opts.Rows, opts.MaxScrollback),
		cols:    opts.Cols,
		rows:    opts.Rows,
	}
}

// HandleCommands applies a batch of commands in order
func (r *Renderer) HandleCommands(cmds []Command) {
	for _, cmd := range cmds {
		r.HandleCommand(cmd)
	}
}

// HandleCommand applies a single command
func (r *Renderer) HandleCommand(cmd Command) {
	switch c := cmd.(type) {
	case Print:
		r.printChar(c.Char)

	case CursorUp:
		r.moveCursorTo(r.state.CursorX, r.state.CursorY-c.N)
	case CursorDown:
		r.moveCursorTo(r.state.CursorX, r.state.CursorY+c.N)
	case CursorForward:
		r.moveCursorTo(r.state.CursorX+c.N, r.state.CursorY)
	case CursorBackward:
		r.moveCursorTo(r.state.CursorX-c.N, r.state.CursorY)
	case CursorNextLine:
		r.moveCursorTo(0, r.state.CursorY+c.N)
	case CursorPreviousLine:
		r.moveCursorTo(0, r.state.CursorY-c.N)
	case CursorColumn:
		r.moveCursorTo(c.Col-1, r.state.CursorY)
	case CursorRow:
		r.moveCursorTo(r.state.CursorX, c.Row-1)
	case CursorPosition:
		r.cursorPosition(c.Row, c.Col)
	case SaveCursor:
		r.state.SavedCursor = CursorPositionState{X: r.state.CursorX, Y: r.state.CursorY}
		r.state.HasSavedCursor = true
	case RestoreCursor:
		if r.state.HasSavedCursor {
			r.moveCursorTo(r.state.SavedCursor.X, r.state.SavedCursor.Y)
		}
	case Index:
		r.lineFeed()
	case ReverseIndex:
		r.reverseIndex()

	case EraseInDisplay:
		r.eraseInDisplay(c.Mode)
	case EraseInLine:
		r.eraseInLine(c.Mode)
	case EraseCharacters:
		r.eraseCharacters(c.N)
	case InsertCharacters:
		r.insertCharacters(c.N)
	case DeleteCharacters:
		r.deleteCharacters(c.N)
	case InsertLines:
		r.insertLines(c.N)
	case DeleteLines:
		r.deleteLines(c.N)
	case ScrollUp:
		r.scrollUp(c.N)
	case ScrollDown:
		r.scrollDown(c.N)

	case ResetAttributes:
		r.state.Attrs = TextAttributes{}
		r.state.Foreground = DefaultForeground
		r.state.Background = DefaultBackground
	case SetBold:
		r.state.Attrs.Bold = true
	case SetDim:
		r.state.Attrs.Dim = true
	case SetItalic:
		r.state.Attrs.Italic = true
	case SetUnderline:
		r.state.Attrs.Underline = true
	case SetBlink:
		r.state.Attrs.Blink = true
	case SetReverse:
		r.state.Attrs.Reverse = true
	case SetHidden:
		r.state.Attrs.Hidden = true
	case SetStrikethrough:
		r.state.Attrs.Strikethrough = true
	case ResetIntensity:
		r.state.Attrs.Bold = false
		r.state.Attrs.Dim = false
	case ResetItalic:
		r.state.Attrs.Italic = false
	case ResetUnderline:
		r.state.Attrs.Underline = false
	case ResetBlink:
		r.state.Attrs.Blink = false
	case ResetReverse:
		r.state.Attrs.Reverse = false
	case ResetHidden:
		r.state.Attrs.Hidden = false
	case ResetStrikethrough:
		r.state.Attrs.Strikethrough = false
	case SetForegroundColor:
		r.state.Foreground = c.Color
	case SetBackgroundColor:
		r.state.Background = c.Color
	case ResetForegroundColor:
		r.state.Foreground = DefaultForeground
	case ResetBackgroundColor:
		r.state.Background = DefaultBackground

	case SetApplicationCursorKeys:
		r.state.ApplicationCursor = c.On
	case SetInsertMode:
		r.state.InsertMode = c.On
	case SetReverseVideo:
		r.state.ReverseVideo = c.On
		r.markDirty(RegionForScreen(r.cols, r.rows))
	case SetOriginMode:
		r.state.OriginMode = c.On
	case SetAutoWrap:
		r.state.AutoWrap = c.On
	case SetCursorBlink:
		r.state.CursorBlink = c.On
	case SetCursorVisible:
		r.state.CursorVisible = c.On
	case SetBracketedPaste:
		r.state.BracketedPaste = c.On
	case SetMouseTracking:
		r.state.Mouse.Mode = c.Mode
		r.state.Mouse.Enabled = c.Mode != MouseReportNone
	case MouseTracking:
		r.state.Mouse.Enabled = c.Enabled
	case SetAlternateScreen:
		r.setAlternateScreen(c.On, c.SaveCursor)
	case SetCursorStyle:
		r.state.CursorShape = c.Shape
		r.state.CursorBlink = c.Blink

	case SetScrollRegion:
		r.setScrollRegion(c.Top, c.Bottom)
	case DeviceAttributes, DeviceStatusReport:
		// Answered by the session, which sees the command stream too
	case FullReset:
		r.fullReset()
	}
}

// printChar gives control characters their cursor semantics and writes
// everything else at the cursor with the current colors and attributes.
func (r *Renderer) printChar(ch rune) {
	switch {
	case ch == '\r':
		r.state.CursorX = 0
		return
	case ch == '\n' || ch == 0x0B || ch == 0x0C:
		r.lineFeed()
		return
	case ch == '\b':
		if r.state.CursorX > 0 {
			r.state.CursorX--
		}
		return
	case ch == '\t':
		// Tab stops every 8 columns
		next := (r.state.CursorX/8 + 1) * 8
		if next > r.cols-1 {
			next = r.cols - 1
		}
		r.state.CursorX = next
		return
	case ch < 0x20:
		// NUL, BEL and the rest are dropped
		return
	}

	buf := r.buffers.Current()
	x, y := r.state.CursorX, r.state.CursorY

	if r.state.InsertMode {
		r.shiftRowRight(y, x, 1)
	}

	buf.SetCell(x, y, Cell{
		Char:       ch,
		Foreground: r.state.Foreground,
		Background: r.state.Background,
		Attrs:      r.state.Attrs,
		Dirty:      true,
	})
	r.markDirty(RegionForCell(x, y))

	if x+1 >= r.cols {
		if r.state.AutoWrap {
			r.state.CursorX = 0
			r.lineFeed()
		}
		// Auto-wrap off pins the cursor at the last column
		return
	}
	r.state.CursorX = x + 1
}

// lineFeed moves the cursor down one row, scrolling the region when the
// cursor sits on its bottom margin.
func (r *Renderer) lineFeed() {
	if r.state.CursorY == r.state.ScrollBottom {
		r.scrollUp(1)
		return
	}
	if r.state.CursorY < r.rows-1 {
		r.state.CursorY++
	}
}

func (r *Renderer) reverseIndex() {
	if r.state.CursorY == r.state.ScrollTop {
		r.scrollDown(1)
		return
	}
	if r.state.CursorY > 0 {
		r.state.CursorY--
	}
}

// moveCursorTo clamps the target into the grid
func (r *Renderer) moveCursorTo(x, y int) {
	if x < 0 {
		x = 0
	} else if x >= r.cols {
		x = r.cols - 1
	}
	if y < 0 {
		y = 0
	} else if y >= r.rows {
		y = r.rows - 1
	}
	r.state.CursorX = x
	r.state.CursorY = y
}

// cursorPosition handles 1-based absolute positioning. With origin mode
// on, the row is relative to the scroll region's top and clamped to its
// bottom margin.
func (r *Renderer) cursorPosition(row, col int) {
	row--
	col--
	if row < 0 {
		row = 0
	}
	if col < 0 {
		col = 0
	}
	if r.state.OriginMode {
		row += r.state.ScrollTop
		if row > r.state.ScrollBottom {
			row = r.state.ScrollBottom
		}
		if col >= r.cols {
			col = r.cols - 1
		}
		r.state.CursorX = col
		r.state.CursorY = row
		return
	}
	r.moveCursorTo(col, row)
}

func (r *Renderer) eraseInDisplay(mode int) {
	buf := r.buffers.Current()
	x, y := r.state.CursorX, r.state.CursorY
	def := DefaultCell()
	def.Dirty = true

	switch mode {
	case 0: // Cursor to end of display
		for row := y; row < r.rows; row++ {
			start := 0
			if row == y {
				start = x
			}
			for col := start; col < r.cols; col++ {
				buf.SetCell(col, row, def)
			}
		}
	case 1: // Start of display to cursor, inclusive
		for row := 0; row <= y; row++ {
			end := r.cols - 1
			if row == y {
				end = x
			}
			for col := 0; col <= end; col++ {
				buf.SetCell(col, row, def)
			}
		}
	case 2: // Entire display
		for row := 0; row < r.rows; row++ {
			for col := 0; col < r.cols; col++ {
				buf.SetCell(col, row, def)
			}
		}
	case 3: // Saved scrollback lines; the visible screen stays intact
		buf.ClearScrollback()
		return
	}
	r.markDirty(RegionForScreen(r.cols, r.rows))
}

func (r *Renderer) eraseInLine(mode int) {
	buf := r.buffers.Current()
	x, y := r.state.CursorX, r.state.CursorY
	def := DefaultCell()
	def.Dirty = true

	switch mode {
	case 0: // Cursor to end of line
		for col := x; col < r.cols; col++ {
			buf.SetCell(col, y, def)
		}
	case 1: // Start of line to cursor, inclusive
		for col := 0; col <= x; col++ {
			buf.SetCell(col, y, def)
		}
	case 2: // Entire line
		for col := 0; col < r.cols; col++ {
			buf.SetCell(col, y, def)
		}
	default:
		return
	}
	r.markDirty(RegionForRow(y, r.cols))
}

func (r *Renderer) eraseCharacters(n int) {
	if n < 1 {
		n = 1
	}
	buf := r.buffers.Current()
	x, y := r.state.CursorX, r.state.CursorY
	def := DefaultCell()
	def.Dirty = true
	for i := 0; i < n && x+i < r.cols; i++ {
		buf.SetCell(x+i, y, def)
	}
	r.markDirty(RegionForRow(y, r.cols))
}

func (r *Renderer) insertCharacters(n int) {
	if n < 1 {
		n = 1
	}
	r.shiftRowRight(r.state.CursorY, r.state.CursorX, n)
	r.markDirty(RegionForRow(r.state.CursorY, r.cols))
}

func (r *Renderer) deleteCharacters(n int) {
	if n < 1 {
		n = 1
	}
	buf := r.buffers.Current()
	y := r.state.CursorY
	row := buf.Row(y)
	if row == nil {
		return
	}
	x := r.state.CursorX
	def := DefaultCell()
	def.Dirty = true
	for col := x; col < r.cols; col++ {
		if col+n < r.cols {
			row[col] = row[col+n]
		} else {
			row[col] = def
		}
		row[col].Dirty = true
	}
	r.markDirty(RegionForRow(y, r.cols))
}

// shiftRowRight opens n blank cells at (x, y), dropping cells shifted
// past the right margin.
func (r *Renderer) shiftRowRight(y, x, n int) {
	buf := r.buffers.Current()
	row := buf.Row(y)
	if row == nil || x >= r.cols {
		return
	}
	def := DefaultCell()
	def.Dirty = true
	for col := r.cols - 1; col >= x; col-- {
		if col-n >= x {
			row[col] = row[col-n]
		} else {
			row[col] = def
		}
		row[col].Dirty = true
	}
}

func (r *Renderer) insertLines(n int) {
	if n < 1 {
		n = 1
	}
	y := r.state.CursorY
	top, bottom := r.state.ScrollTop, r.state.ScrollBottom
	if y < top || y > bottom {
		return
	}
	buf := r.buffers.Current()
	for row := bottom; row >= y; row-- {
		src := row - n
		if src >= y {
			copyRow(buf.Row(row), buf.Row(src))
		} else {
			clearRow(buf.Row(row))
		}
	}
	r.markDirty(RegionForScreen(r.cols, r.rows))
}

func (r *Renderer) deleteLines(n int) {
	if n < 1 {
		n = 1
	}
	y := r.state.CursorY
	top, bottom := r.state.ScrollTop, r.state.ScrollBottom
	if y < top || y > bottom {
		return
	}
	buf := r.buffers.Current()
	for row := y; row <= bottom; row++ {
		src := row + n
		if src <= bottom {
			copyRow(buf.Row(row), buf.Row(src))
		} else {
			clearRow(buf.Row(row))
		}
	}
	r.markDirty(RegionForScreen(r.cols, r.rows))
}

// scrollUp shifts the scroll region up n rows. Rows leaving the top of a
// full-screen region move into the scrollback; a partial region never
// feeds the scrollback. The whole screen is conservatively marked dirty.
func (r *Renderer) scrollUp(n int) {
	if n < 1 {
		n = 1
	}
	buf := r.buffers.Current()
	top, bottom := r.state.ScrollTop, r.state.ScrollBottom
	fullScreen := top == 0 && bottom == r.rows-1

	for i := 0; i < n; i++ {
		if fullScreen {
			buf.PushScrollback(buf.Row(top))
		}
		for row := top; row < bottom; row++ {
			copyRow(buf.Row(row), buf.Row(row+1))
		}
		clearRow(buf.Row(bottom))
	}
	r.markDirty(RegionForScreen(r.cols, r.rows))
}

// scrollDown shifts the scroll region down n rows, clearing the rows
// that open up at the top. Nothing enters the scrollback.
func (r *Renderer) scrollDown(n int) {
	if n < 1 {
		n = 1
	}
	buf := r.buffers.Current()
	top, bottom := r.state.ScrollTop, r.state.ScrollBottom

	for i := 0; i < n; i++ {
		for row := bottom; row > top; row-- {
			copyRow(buf.Row(row), buf.Row(row-1))
		}
		clearRow(buf.Row(top))
	}
	r.markDirty(RegionForScreen(r.cols, r.rows))
}

func copyRow(dst, src []Cell) {
	if dst == nil || src == nil {
		return
	}
	copy(dst, src)
	for i := range dst {
		dst[i].Dirty = true
	}
}

func clearRow(row []Cell) {
	if row == nil {
		return
	}
	def := DefaultCell()
	def.Dirty = true
	for i := range row {
		row[i] = def
	}
}

// setScrollRegion applies 1-based margins only when they describe a
// valid region; anything else is silently dropped.
func (r *Renderer) setScrollRegion(top, bottom int) {
	if bottom <= 0 {
		bottom = r.rows
	}
	top--
	bottom--
	if top < 0 {
		top = 0
	}
	if top < bottom && bottom < r.rows {
		r.state.ScrollTop = top
		r.state.ScrollBottom = bottom
	}
}

func (r *Renderer) setAlternateScreen(on, saveCursor bool) {
	if on {
		if r.buffers.Active == BufferAlternate {
			return
		}
		if saveCursor {
			r.state.SavedCursor = CursorPositionState{X: r.state.CursorX, Y: r.state.CursorY}
			r.state.HasSavedCursor = true
		}
		r.buffers.Active = BufferAlternate
		r.buffers.Alternate.Clear()
		r.state.CursorX = 0
		r.state.CursorY = 0
	} else {
		if r.buffers.Active == BufferPrimary {
			return
		}
		r.buffers.Active = BufferPrimary
		if saveCursor && r.state.HasSavedCursor {
			r.moveCursorTo(r.state.SavedCursor.X, r.state.SavedCursor.Y)
		}
	}
	r.markDirty(RegionForScreen(r.cols, r.rows))
}

func (r *Renderer) fullReset() {
	r.state = NewTerminalState(r.rows)
	r.buffers.Active = BufferPrimary
	r.buffers.Primary.Clear()
	r.buffers.Alternate.Clear()
	r.markDirty(RegionForScreen(r.cols, r.rows))
}

// Resize reallocates both buffers anchored at the top-left, re-clamps
// the cursor, resets the scroll region to the full screen, and marks the
// whole screen dirty. Truncated content is lost, not moved to scrollback.
func (r *Renderer) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	r.buffers.Resize(cols, rows)
	r.cols = cols
	r.rows = rows
	r.moveCursorTo(r.state.CursorX, r.state.CursorY)
	r.state.ScrollTop = 0
	r.state.ScrollBottom = rows - 1
	r.markDirty(RegionForScreen(cols, rows))
}

func (r *Renderer) markDirty(region Region) {
	// Regions are appended as-is; consumers tolerate overlap
	r.dirty = append(r.dirty, region)
}

// Size returns the grid dimensions
func (r *Renderer) Size() (cols, rows int) {
	return r.cols, r.rows
}

// CursorPos returns the 0-based cursor position
func (r *Renderer) CursorPos() (x, y int) {
	return r.state.CursorX, r.state.CursorY
}

// State returns a snapshot of the terminal state
func (r *Renderer) State() TerminalState {
	return r.state
}

// ScreenContent returns the active buffer's rows. The slice is shared
// with the renderer; callers read it between HandleCommand batches and
// must not mutate it.
func (r *Renderer) ScreenContent() [][]Cell {
	buf := r.buffers.Current()
	rows := make([][]Cell, r.rows)
	for y := 0; y < r.rows; y++ {
		rows[y] = buf.Row(y)
	}
	return rows
}

// Cell returns the cell at (x, y) in the active buffer
func (r *Renderer) Cell(x, y int) Cell {
	return r.buffers.Current().Cell(x, y)
}

// ScrollbackContent returns the active buffer's scrollback, oldest row
// first. The alternate buffer never accumulates scrollback.
func (r *Renderer) ScrollbackContent() [][]Cell {
	return r.buffers.Current().Scrollback()
}

// DirtyRegions returns the rectangles changed since the last clear.
// They are not coalesced; overlapping regions are normal.
func (r *Renderer) DirtyRegions() []Region {
	return r.dirty
}

// ClearDirtyRegions acknowledges the dirty list after a redraw
func (r *Renderer) ClearDirtyRegions() {
	r.dirty = r.dirty[:0]
}

// ActiveScreen reports which buffer is live
func (r *Renderer) ActiveScreen() ActiveBuffer {
	return r.buffers.Active
}
