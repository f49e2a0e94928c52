package core

// Index returns the linear cell index for coordinates (x, y). Every per-cell
// slice of a map uses this row-major layout.
func (s Size) Index(x, y int) int { return y*s.W + x }

// Coords converts a linear cell index back into (x, y).
func (s Size) Coords(i int) (int, int) {
	if s.W <= 0 {
		return 0, 0
	}
	return i % s.W, i / s.W
}

// Cells reports the total number of cells.
func (s Size) Cells() int {
	if s.W <= 0 || s.H <= 0 {
		return 0
	}
	return s.W * s.H
}

// InBounds reports whether (x, y) lies on the grid.
func (s Size) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.W && y < s.H
}

// Neighbors8 appends the in-bounds Moore neighbours of cell i to dst and
// returns the extended slice. Out-of-bounds neighbours are skipped rather
// than wrapped.
func (s Size) Neighbors8(i int, dst []int) []int {
	x, y := s.Coords(i)
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= s.H {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := x + dx
			if nx < 0 || nx >= s.W {
				continue
			}
			dst = append(dst, ny*s.W+nx)
		}
	}
	return dst
}

// Rect returns the indices of every cell inside the rectangle spanned by the
// two corners, clipped to the grid. Corners may be given in any order.
func (s Size) Rect(x0, y0, x1, y1 int) []int {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, s.W-1), min(y1, s.H-1)
	if x1 < x0 || y1 < y0 {
		return nil
	}
	cells := make([]int, 0, (x1-x0+1)*(y1-y0+1))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			cells = append(cells, y*s.W+x)
		}
	}
	return cells
}
