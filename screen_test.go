package vexterm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreenBufferStartsDefault(t *testing.T) {
	b := NewScreenBuffer(4, 2, 10)
	cols, rows := b.Size()
	assert.Equal(t, 4, cols)
	assert.Equal(t, 2, rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			assert.True(t, b.Cell(x, y).IsDefault())
		}
	}
}

func TestScreenBufferOutOfRangeAccess(t *testing.T) {
	b := NewScreenBuffer(4, 2, 10)
	assert.True(t, b.Cell(-1, 0).IsDefault())
	assert.True(t, b.Cell(0, 99).IsDefault())
	assert.Nil(t, b.Row(-1))
	assert.Nil(t, b.Row(2))

	// Dropped, not panicking
	b.SetCell(99, 99, Cell{Char: 'x'})
}

func TestScreenBufferResizeAnchoredTopLeft(t *testing.T) {
	b := NewScreenBuffer(4, 3, 10)
	b.SetCell(0, 0, Cell{Char: 'a'})
	b.SetCell(3, 0, Cell{Char: 'b'})
	b.SetCell(0, 2, Cell{Char: 'c'})

	b.Resize(2, 2)
	assert.Equal(t, 'a', b.Cell(0, 0).Char)
	assert.True(t, b.Cell(1, 0).IsDefault())

	b.Resize(4, 3)
	assert.Equal(t, 'a', b.Cell(0, 0).Char)
	assert.True(t, b.Cell(3, 0).IsDefault(), "'b' was truncated")
	assert.True(t, b.Cell(0, 2).IsDefault(), "'c' was truncated")
}

func TestScrollbackCapIsFIFO(t *testing.T) {
	b := NewScreenBuffer(2, 2, 3)
	for i := 0; i < 5; i++ {
		row := []Cell{{Char: rune('0' + i)}, {Char: 'x'}}
		b.PushScrollback(row)
	}

	sb := b.Scrollback()
	require.Len(t, sb, 3)
	assert.Equal(t, '2', sb[0][0].Char)
	assert.Equal(t, '4', sb[2][0].Char)
}

func TestScrollbackCopiesRows(t *testing.T) {
	b := NewScreenBuffer(2, 2, 3)
	row := []Cell{{Char: 'a'}, {Char: 'b'}}
	b.PushScrollback(row)
	row[0].Char = 'z'

	assert.Equal(t, 'a', b.Scrollback()[0][0].Char)
}

func TestScrollbackDisabled(t *testing.T) {
	b := NewScreenBuffer(2, 2, 0)
	b.PushScrollback([]Cell{{Char: 'a'}})
	assert.Equal(t, 0, b.ScrollbackLen())
}

func TestScreenBuffersSelector(t *testing.T) {
	s := NewScreenBuffers(4, 2, 10)
	assert.Same(t, s.Primary, s.Current())

	s.Active = BufferAlternate
	assert.Same(t, s.Alternate, s.Current())
}
