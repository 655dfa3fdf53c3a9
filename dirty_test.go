package vexterm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegionContains(t *testing.T) {
	r := Region{X: 2, Y: 1, Width: 3, Height: 2}
	assert.True(t, r.Contains(2, 1))
	assert.True(t, r.Contains(4, 2))
	assert.False(t, r.Contains(5, 1))
	assert.False(t, r.Contains(2, 3))
	assert.False(t, r.Contains(1, 1))
}

func TestRegionEmpty(t *testing.T) {
	assert.True(t, Region{}.Empty())
	assert.True(t, Region{Width: 5}.Empty())
	assert.False(t, RegionForCell(0, 0).Empty())
}

func TestRegionIntersect(t *testing.T) {
	tests := []struct {
		name string
		in   Region
		want Region
	}{
		{"inside", Region{X: 1, Y: 1, Width: 2, Height: 2}, Region{X: 1, Y: 1, Width: 2, Height: 2}},
		{"overhang right", Region{X: 3, Y: 0, Width: 5, Height: 1}, Region{X: 3, Y: 0, Width: 1, Height: 1}},
		{"overhang bottom", Region{X: 0, Y: 2, Width: 1, Height: 9}, Region{X: 0, Y: 2, Width: 1, Height: 1}},
		{"negative origin", Region{X: -2, Y: -2, Width: 4, Height: 4}, Region{X: 0, Y: 0, Width: 2, Height: 2}},
		{"fully outside", Region{X: 10, Y: 10, Width: 2, Height: 2}, Region{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Intersect(4, 3))
		})
	}
}

func TestRegionConstructors(t *testing.T) {
	assert.Equal(t, Region{X: 0, Y: 3, Width: 10, Height: 1}, RegionForRow(3, 10))
	assert.Equal(t, Region{X: 2, Y: 3, Width: 1, Height: 1}, RegionForCell(2, 3))
	assert.Equal(t, Region{X: 0, Y: 0, Width: 10, Height: 5}, RegionForScreen(10, 5))
}
