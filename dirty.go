package vexterm

// Region is a rectangle of cells that changed since the last time a
// frontend acknowledged the dirty list. Coordinates are 0-based and the
// bounds are inclusive.
type Region struct {
	X, Y          int
	Width, Height int
}

// RegionForRow returns a region covering one full row
func RegionForRow(row, cols int) Region {
	return Region{X: 0, Y: row, Width: cols, Height: 1}
}

// RegionForCell returns a single-cell region
func RegionForCell(x, y int) Region {
	return Region{X: x, Y: y, Width: 1, Height: 1}
}

// RegionForScreen returns a region covering the whole grid
func RegionForScreen(cols, rows int) Region {
	return Region{X: 0, Y: 0, Width: cols, Height: rows}
}

// Contains reports whether the cell at (x, y) lies inside the region
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether the region covers no cells
func (r Region) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersect clips the region to the given grid size. Regions that fall
// entirely outside come back empty.
func (r Region) Intersect(cols, rows int) Region {
	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.Width, r.Y+r.Height
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > cols {
		x1 = cols
	}
	if y1 > rows {
		y1 = rows
	}
	if x1 <= x0 || y1 <= y0 {
		return Region{}
	}
	return Region{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
