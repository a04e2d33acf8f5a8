package object

import (
	"github.com/tomz197/dartkids/internal/loop/config"
	"github.com/tomz197/dartkids/internal/physics"
)

// Planet is the disc the rocks fall toward. Its top arc rises above the
// bottom edge of the surface.
type Planet struct {
	CX, CY float64 // Center
	R      float64 // Radius
}

// NewPlanet derives planet geometry from the viewport.
func NewPlanet(vp Viewport) Planet {
	return Planet{
		CX: vp.CenterX(),
		CY: vp.Height + vp.Px(config.PlanetOffsetY),
		R:  vp.Height * config.PlanetRadiusRatio,
	}
}

// SurfaceY returns the height of the planet surface at column x.
// ok is false beyond the planet's horizontal extent: nothing can land there.
func (p Planet) SurfaceY(x float64) (y float64, ok bool) {
	if p.R <= 0 {
		return 0, false
	}
	return physics.CircleTopY(p.CX, p.CY, p.R, x)
}

// Impacts reports whether a body at (x,y) with radius r has its leading
// (lower) edge past the surface.
func (p Planet) Impacts(x, y, r float64) bool {
	surface, ok := p.SurfaceY(x)
	if !ok {
		return false
	}
	return y+r > surface
}
