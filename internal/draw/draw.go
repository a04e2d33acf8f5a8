// Package draw renders colored shapes onto a half-block terminal surface.
package draw

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ColorReset restores default terminal colors.
const ColorReset = "\033[0m"

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
