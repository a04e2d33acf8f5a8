// Package object defines the game entities and the factories that create them.
package object

import "github.com/tomz197/dartkids/internal/draw"

// Point is an alias for the draw package's Point type.
type Point = draw.Point

// Rand is the random source used by entity factories and effects.
// *rand.Rand satisfies it; tests substitute a seeded or scripted source.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Viewport is the drawable surface in logical pixels.
type Viewport struct {
	Width  float64
	Height float64
	Scale  float64 // Pixel ratio applied to all tuned distances
}

// Valid reports whether the surface has usable dimensions.
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0 && v.Scale > 0
}

// Px scales a tuned distance by the pixel ratio.
func (v Viewport) Px(n float64) float64 {
	return n * v.Scale
}

// CenterX returns the horizontal center of the surface.
func (v Viewport) CenterX() float64 {
	return v.Width / 2
}

// randRange returns a value in [lo, lo+span).
func randRange(rng Rand, lo, span float64) float64 {
	return lo + rng.Float64()*span
}

// randSigned returns a value in [-half, half).
func randSigned(rng Rand, half float64) float64 {
	return (rng.Float64()*2 - 1) * half
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
