package physics

import "math"

// SpatialGrid buckets indices by position so a query only visits the 3x3
// cells around a point. The cell size must be at least the largest distance
// at which two objects can touch.
//
// Points outside the covered rectangle are filed into the nearest border
// cell.
type SpatialGrid struct {
	x0, y0 float64
	inv    float64 // 1 / cell size
	cols   int
	rows   int
	cells  [][]int
}

// NewSpatialGrid covers the rectangle at (originX, originY) of the given
// size with square cells.
func NewSpatialGrid(originX, originY, width, height, cellSize float64) *SpatialGrid {
	cellSize = math.Max(cellSize, 1)
	cols := max(1, int(math.Ceil(width/cellSize)))
	rows := max(1, int(math.Ceil(height/cellSize)))
	return &SpatialGrid{
		x0:    originX,
		y0:    originY,
		inv:   1 / cellSize,
		cols:  cols,
		rows:  rows,
		cells: make([][]int, cols*rows),
	}
}

// Clear empties every cell but keeps its backing array for the next tick.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert files index under the cell containing (x, y).
func (g *SpatialGrid) Insert(x, y float64, index int) {
	c := g.row(y)*g.cols + g.col(x)
	g.cells[c] = append(g.cells[c], index)
}

// QueryAround calls fn with every index filed in the cells adjacent to
// (x, y), stopping as soon as fn returns true.
func (g *SpatialGrid) QueryAround(x, y float64, fn func(index int) bool) {
	col, row := g.col(x), g.row(y)
	for r := max(row-1, 0); r <= min(row+1, g.rows-1); r++ {
		for c := max(col-1, 0); c <= min(col+1, g.cols-1); c++ {
			for _, i := range g.cells[r*g.cols+c] {
				if fn(i) {
					return
				}
			}
		}
	}
}

func (g *SpatialGrid) col(x float64) int {
	return cellIndex((x-g.x0)*g.inv, g.cols)
}

func (g *SpatialGrid) row(y float64) int {
	return cellIndex((y-g.y0)*g.inv, g.rows)
}

// cellIndex floors f into [0, n). NaN maps to 0.
func cellIndex(f float64, n int) int {
	switch {
	case !(f >= 0):
		return 0
	case f >= float64(n):
		return n - 1
	}
	return int(f)
}
