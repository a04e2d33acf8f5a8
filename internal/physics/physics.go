// Package physics provides collision detection and distance utilities.
package physics

import "math"

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point lies strictly inside radius of a target position.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) < radius*radius
}

// CirclesOverlap checks if two circles overlap.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// UnitVector returns the normalized direction from (x1,y1) to (x2,y2).
// Coincident points yield the raw (zero) delta instead of NaN.
func UnitVector(x1, y1, x2, y2 float64) (nx, ny float64) {
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		length = 1
	}
	return dx / length, dy / length
}

// CircleTopY returns the y coordinate of the upper arc of a circle at column x
// (screen coordinates, y grows downward).
// ok is false when x lies outside the circle's horizontal extent (or is NaN).
func CircleTopY(cx, cy, radius, x float64) (y float64, ok bool) {
	dx := x - cx
	if !(math.Abs(dx) <= radius) {
		return 0, false
	}
	return cy - math.Sqrt(radius*radius-dx*dx), true
}
