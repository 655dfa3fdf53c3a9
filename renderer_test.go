package vexterm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feed runs raw bytes through a fresh parser into the renderer
func feed(r *Renderer, input string) {
	r.HandleCommands(NewParser().ProcessInput([]byte(input)))
}

func rowText(r *Renderer, y int) string {
	cols, _ := r.Size()
	var b strings.Builder
	for x := 0; x < cols; x++ {
		b.WriteRune(r.Cell(x, y).Char)
	}
	return strings.TrimRight(b.String(), " ")
}

func newTestRenderer(cols, rows int) *Renderer {
	return NewRenderer(RendererOptions{Cols: cols, Rows: rows, MaxScrollback: 10})
}

func TestColonSGRLeavesAttributesIntact(t *testing.T) {
	// An unsupported colon-form color must not reset the live attributes
	r := newTestRenderer(10, 3)
	feed(r, "\x1b[1;31m\x1b[38:2:10:20:30mx")

	cell := r.Cell(0, 0)
	assert.Equal(t, 'x', cell.Char)
	assert.True(t, cell.Attrs.Bold)
	assert.Equal(t, NamedColor(1), cell.Foreground)
}

func TestEraseSavedLinesClearsScrollbackOnly(t *testing.T) {
	r := newTestRenderer(4, 2)
	feed(r, "r1\r\nr2\r\nr3")
	require.Equal(t, 1, len(r.ScrollbackContent()))

	feed(r, "\x1b[3J")
	assert.Empty(t, r.ScrollbackContent())
	assert.Equal(t, "r2", rowText(r, 0))
	assert.Equal(t, "r3", rowText(r, 1))
}

func TestPrintWritesCellAndAdvances(t *testing.T) {
	r := newTestRenderer(10, 4)
	feed(r, "\x1b[1;31mA")

	cell := r.Cell(0, 0)
	assert.Equal(t, 'A', cell.Char)
	assert.True(t, cell.Attrs.Bold)
	assert.Equal(t, NamedColor(1), cell.Foreground)

	x, y := r.CursorPos()
	assert.Equal(t, 1, x)
	assert.Equal(t, 0, y)
}

func TestAutoWrapAdvancesToNextRow(t *testing.T) {
	r := newTestRenderer(5, 4)
	feed(r, "abcde")

	x, y := r.CursorPos()
	assert.Equal(t, 0, x)
	assert.Equal(t, 1, y)
	assert.Equal(t, "abcde", rowText(r, 0))
}

func TestAutoWrapScrollsOnLastRow(t *testing.T) {
	r := newTestRenderer(5, 2)
	feed(r, "11111")
	feed(r, "22222")
	feed(r, "3")

	// Row of 1s went to scrollback, 2s shifted up, 3 starts the new row
	require.Equal(t, 1, r.buffers.Primary.ScrollbackLen())
	assert.Equal(t, "22222", rowText(r, 0))
	assert.Equal(t, "3", rowText(r, 1))

	x, y := r.CursorPos()
	assert.Equal(t, 1, x)
	assert.Equal(t, 1, y)
}

func TestAutoWrapDisabledPinsAtLastColumn(t *testing.T) {
	r := newTestRenderer(5, 2)
	feed(r, "\x1b[?7labcdefg")

	// Cursor pinned at the last column, later prints overwrite
	x, y := r.CursorPos()
	assert.Equal(t, 4, x)
	assert.Equal(t, 0, y)
	assert.Equal(t, "abcdg", rowText(r, 0))
}

func TestCarriageReturnAndLineFeed(t *testing.T) {
	r := newTestRenderer(10, 4)
	feed(r, "ab\r\ncd")

	assert.Equal(t, "ab", rowText(r, 0))
	assert.Equal(t, "cd", rowText(r, 1))
}

func TestBackspaceAndTab(t *testing.T) {
	r := newTestRenderer(20, 4)
	feed(r, "ab\bX")
	assert.Equal(t, "aX", rowText(r, 0))

	feed(r, "\r\tY")
	x, _ := r.CursorPos()
	assert.Equal(t, 9, x)
	assert.Equal(t, 'Y', r.Cell(8, 0).Char)
}

func TestCursorMovementClamps(t *testing.T) {
	r := newTestRenderer(10, 5)
	feed(r, "\x1b[100;100H")
	x, y := r.CursorPos()
	assert.Equal(t, 9, x)
	assert.Equal(t, 4, y)

	feed(r, "\x1b[50A\x1b[50D")
	x, y = r.CursorPos()
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
}

func TestSaveRestoreCursor(t *testing.T) {
	r := newTestRenderer(10, 5)
	feed(r, "\x1b[3;4H\x1b7\x1b[H")
	feed(r, "\x1b8")
	x, y := r.CursorPos()
	assert.Equal(t, 3, x)
	assert.Equal(t, 2, y)
}

func TestRestoreWithoutSaveIsNoop(t *testing.T) {
	r := newTestRenderer(10, 5)
	feed(r, "\x1b[3;4H\x1b[u")
	x, y := r.CursorPos()
	assert.Equal(t, 3, x)
	assert.Equal(t, 2, y)
}

func TestResetAttributesResetsColorsToo(t *testing.T) {
	r := newTestRenderer(10, 4)
	feed(r, "\x1b[1;31;44m\x1b[0m")

	state := r.State()
	assert.Equal(t, TextAttributes{}, state.Attrs)
	assert.True(t, state.Foreground.IsDefault())
	assert.True(t, state.Background.IsDefault())
}

func TestTrueColorForegroundApplied(t *testing.T) {
	r := newTestRenderer(10, 4)
	feed(r, "\x1b[38;2;10;20;30mZ")

	cell := r.Cell(0, 0)
	assert.Equal(t, ColorTypeTrueColor, cell.Foreground.Type)
	assert.Equal(t, uint8(10), cell.Foreground.R)
	assert.Equal(t, uint8(20), cell.Foreground.G)
	assert.Equal(t, uint8(30), cell.Foreground.B)
}

func TestEraseInLineMode2ResetsFullRow(t *testing.T) {
	r := newTestRenderer(8, 3)
	feed(r, "\x1b[41mxxxxxxxx")
	feed(r, "\x1b[1;1H\x1b[0m\x1b[2K")

	for x := 0; x < 8; x++ {
		assert.True(t, r.Cell(x, 0).IsDefault(), "column %d", x)
	}

	found := false
	for _, region := range r.DirtyRegions() {
		if region.Contains(0, 0) && region.Contains(7, 0) {
			found = true
		}
	}
	assert.True(t, found, "row 0 should be covered by a dirty region")
}

func TestEraseInDisplayFromCursor(t *testing.T) {
	r := newTestRenderer(4, 3)
	feed(r, "aaa\r\nbbb\r\nccc")
	feed(r, "\x1b[2;2H\x1b[0J")

	assert.Equal(t, "aaa", rowText(r, 0))
	assert.Equal(t, 'b', r.Cell(0, 1).Char)
	assert.True(t, r.Cell(1, 1).IsDefault())
	assert.True(t, r.Cell(0, 2).IsDefault())
}

func TestEraseInDisplayAll(t *testing.T) {
	r := newTestRenderer(4, 3)
	feed(r, "aaaa")
	feed(r, "\x1b[2J")
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			assert.True(t, r.Cell(x, y).IsDefault())
		}
	}
}

func TestScrollbackFIFOEviction(t *testing.T) {
	r := NewRenderer(RendererOptions{Cols: 4, Rows: 2, MaxScrollback: 3})

	// Each LF at the bottom row evicts one row into scrollback
	feed(r, "r0\r\n")
	for i := 1; i <= 5; i++ {
		feed(r, "r"+string(rune('0'+i))+"\r\n")
	}

	sb := r.ScrollbackContent()
	require.Len(t, sb, 3)
	// Oldest rows were evicted first
	assert.Equal(t, 'r', sb[0][0].Char)
	assert.Equal(t, '2', sb[0][1].Char)
	assert.Equal(t, '4', sb[2][1].Char)
}

func TestScrollRegionInvalidIgnored(t *testing.T) {
	r := newTestRenderer(10, 10)
	feed(r, "\x1b[5;3r")

	state := r.State()
	assert.Equal(t, 0, state.ScrollTop)
	assert.Equal(t, 9, state.ScrollBottom)
}

func TestScrollRegionOutOfRangeIgnored(t *testing.T) {
	r := newTestRenderer(10, 10)
	feed(r, "\x1b[2;11r")

	state := r.State()
	assert.Equal(t, 0, state.ScrollTop)
	assert.Equal(t, 9, state.ScrollBottom)
}

func TestScrollRegionScrollsOnlyRegion(t *testing.T) {
	r := newTestRenderer(4, 4)
	feed(r, "top\r\naa\r\nbb\r\n")
	feed(r, "\x1b[2;3r")         // rows 1..2 (0-based)
	feed(r, "\x1b[3;1Hnew\x1b[D") // cursor on region bottom
	feed(r, "\n")

	// Row 0 untouched, region shifted up, nothing reached scrollback
	assert.Equal(t, "top", rowText(r, 0))
	assert.Equal(t, "new", rowText(r, 1))
	assert.Equal(t, "", rowText(r, 2))
	assert.Equal(t, 0, r.buffers.Primary.ScrollbackLen())
}

func TestOriginModeCursorRelativeToRegion(t *testing.T) {
	r := newTestRenderer(10, 10)
	feed(r, "\x1b[3;6r\x1b[?6h\x1b[1;1H")

	_, y := r.CursorPos()
	assert.Equal(t, 2, y)

	// Clamped to the region bottom
	feed(r, "\x1b[99;1H")
	_, y = r.CursorPos()
	assert.Equal(t, 5, y)
}

func TestResizePreservesIntersection(t *testing.T) {
	r := newTestRenderer(6, 4)
	feed(r, "abcdef")
	feed(r, "\x1b[2;1Hsecond")

	r.Resize(3, 2)
	assert.Equal(t, "abc", rowText(r, 0))
	assert.Equal(t, "sec", rowText(r, 1))

	r.Resize(6, 4)
	assert.Equal(t, "abc", rowText(r, 0))
	assert.Equal(t, "sec", rowText(r, 1))
	assert.True(t, r.Cell(3, 0).IsDefault(), "truncated content is not recoverable")
	assert.Equal(t, "", rowText(r, 2))
}

func TestResizeReclampsCursor(t *testing.T) {
	r := newTestRenderer(10, 10)
	feed(r, "\x1b[10;10H")
	r.Resize(4, 4)
	x, y := r.CursorPos()
	assert.Equal(t, 3, x)
	assert.Equal(t, 3, y)
}

func TestAlternateScreenPreservesPrimary(t *testing.T) {
	r := newTestRenderer(8, 3)
	feed(r, "primary")
	feed(r, "\x1b[?1049h")

	assert.Equal(t, BufferAlternate, r.ActiveScreen())
	assert.Equal(t, "", rowText(r, 0), "alternate starts cleared")

	feed(r, "alt")
	feed(r, "\x1b[?1049l")
	assert.Equal(t, BufferPrimary, r.ActiveScreen())
	assert.Equal(t, "primary", rowText(r, 0))
}

func TestInsertModeShiftsRow(t *testing.T) {
	r := newTestRenderer(6, 2)
	feed(r, "abcd\x1b[1;2H\x1b[4hXY")
	assert.Equal(t, "aXYbcd", rowText(r, 0))
}

func TestInsertAndDeleteCharacters(t *testing.T) {
	r := newTestRenderer(6, 2)
	feed(r, "abcdef\x1b[1;2H\x1b[2@")
	assert.Equal(t, "a  bcd", rowText(r, 0))
	assert.Equal(t, 'b', r.Cell(3, 0).Char)

	feed(r, "\x1b[1;2H\x1b[2P")
	assert.Equal(t, 'b', r.Cell(1, 0).Char)
	assert.Equal(t, 'c', r.Cell(2, 0).Char)
}

func TestEraseCharacters(t *testing.T) {
	r := newTestRenderer(6, 2)
	feed(r, "abcdef\x1b[1;2H\x1b[3X")
	assert.Equal(t, 'a', r.Cell(0, 0).Char)
	assert.True(t, r.Cell(1, 0).IsDefault())
	assert.True(t, r.Cell(3, 0).IsDefault())
	assert.Equal(t, 'e', r.Cell(4, 0).Char)
}

func TestInsertAndDeleteLines(t *testing.T) {
	r := newTestRenderer(4, 4)
	feed(r, "a\r\nb\r\nc\r\nd")
	feed(r, "\x1b[2;1H\x1b[1L")
	assert.Equal(t, "a", rowText(r, 0))
	assert.Equal(t, "", rowText(r, 1))
	assert.Equal(t, "b", rowText(r, 2))
	assert.Equal(t, "c", rowText(r, 3))

	feed(r, "\x1b[2;1H\x1b[1M")
	assert.Equal(t, "b", rowText(r, 1))
	assert.Equal(t, "c", rowText(r, 2))
	assert.Equal(t, "", rowText(r, 3))
}

func TestReverseIndexScrollsDownAtTop(t *testing.T) {
	r := newTestRenderer(4, 3)
	feed(r, "a\r\nb\r\nc")
	feed(r, "\x1b[1;1H\x1bM")
	assert.Equal(t, "", rowText(r, 0))
	assert.Equal(t, "a", rowText(r, 1))
	assert.Equal(t, "b", rowText(r, 2))
}

func TestFullResetRestoresInitialState(t *testing.T) {
	r := newTestRenderer(8, 4)
	feed(r, "\x1b[1;31mhello\x1b[?25l\x1b[2;4r")
	feed(r, "\x1bc")

	state := r.State()
	assert.True(t, state.CursorVisible)
	assert.Equal(t, TextAttributes{}, state.Attrs)
	assert.Equal(t, 0, state.ScrollTop)
	assert.Equal(t, 3, state.ScrollBottom)
	assert.Equal(t, "", rowText(r, 0))

	x, y := r.CursorPos()
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
}

func TestDirtyRegionsAccumulateUntilCleared(t *testing.T) {
	r := newTestRenderer(8, 4)
	r.ClearDirtyRegions()

	feed(r, "ab")
	assert.Len(t, r.DirtyRegions(), 2)

	feed(r, "c")
	assert.Len(t, r.DirtyRegions(), 3)

	r.ClearDirtyRegions()
	assert.Empty(t, r.DirtyRegions())
}

func TestMouseModesTracked(t *testing.T) {
	r := newTestRenderer(8, 4)
	feed(r, "\x1b[?1003h")
	state := r.State()
	assert.True(t, state.Mouse.Enabled)
	assert.Equal(t, MouseReportAnyEvent, state.Mouse.Mode)

	feed(r, "\x1b[?1003l")
	state = r.State()
	assert.False(t, state.Mouse.Enabled)
	assert.Equal(t, MouseReportNone, state.Mouse.Mode)
}

func TestModesToggleState(t *testing.T) {
	r := newTestRenderer(8, 4)
	feed(r, "\x1b[?1h\x1b[?2004h\x1b[4h")
	state := r.State()
	assert.True(t, state.ApplicationCursor)
	assert.True(t, state.BracketedPaste)
	assert.True(t, state.InsertMode)

	feed(r, "\x1b[?1l\x1b[?2004l\x1b[4l")
	state = r.State()
	assert.False(t, state.ApplicationCursor)
	assert.False(t, state.BracketedPaste)
	assert.False(t, state.InsertMode)
}
