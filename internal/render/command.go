// Package render turns a game scene into drawing commands and paints them
// onto a terminal canvas. Building commands never touches the canvas, so a
// frame can be inspected or replayed.
package render

import (
	"github.com/tomz197/dartkids/internal/asset"
	"github.com/tomz197/dartkids/internal/draw"
)

// Kind selects what a Command draws.
type Kind int

const (
	KindTranslate Kind = iota // Replace the transform with (X,Y)
	KindRect                  // Filled rectangle at (X,Y) of size W×H
	KindDisc                  // Filled circle at (X,Y) of radius R
	KindRing                  // Circle outline at (X,Y) of radius R
	KindPolygon               // Closed polygon through Points, filled when Fill
	KindPolyline              // Open path through Points
	KindLine                  // Segment Points[0]–Points[1]
	KindSprite                // Sprite of half-size R at (X,Y), rotated by Angle
	KindGlobe                 // Sprite wrapped onto a disc of radius R, spun by Angle
	KindGradientDisc          // Disc shaded from Color to Color2 toward the rim
)

func (k Kind) String() string {
	switch k {
	case KindTranslate:
		return "translate"
	case KindRect:
		return "rect"
	case KindDisc:
		return "disc"
	case KindRing:
		return "ring"
	case KindPolygon:
		return "polygon"
	case KindPolyline:
		return "polyline"
	case KindLine:
		return "line"
	case KindSprite:
		return "sprite"
	case KindGlobe:
		return "globe"
	case KindGradientDisc:
		return "gradient"
	default:
		return "unknown"
	}
}

// Command is one drawing operation in logical surface coordinates.
type Command struct {
	Kind   Kind
	X, Y   float64
	W, H   float64
	R      float64
	Angle  float64
	Points []draw.Point
	Fill   bool
	Color  draw.Color
	Color2 draw.Color
	Alpha  float64
	Sprite *asset.Sprite
}

// Palette
var (
	colorStar       = draw.White
	colorPlanetLit  = draw.Hex("#1d4ed8")
	colorPlanetDark = draw.Hex("#0c4a6e")
	colorAtmosphere = draw.RGB(96, 165, 250)
	colorShip       = draw.Hex("#e5e7eb")
	colorFlame      = draw.Hex("#f59e0b")
	colorBullet     = draw.Hex("#a7f3d0")
	colorTrail      = draw.RGB(147, 197, 253)
	colorRockEdge   = draw.Hex("#93c5fd")
	colorMarker     = draw.Hex("#f59e0b")
	colorMuzzle     = draw.Hex("#f59e0b")
	colorDebris     = draw.Hex("#cbd5e1")
)

const (
	starCount       = 60
	starSize        = 2.0
	starAlpha       = 0x18 / 255.0
	atmosphereScale = 1.02
	atmosphereAlpha = 0.04
	trailAlpha      = 0.35
	rockEdgeAlpha   = 0x66 / 255.0
	rockSaturation  = 0.24
	rockLightness   = 0.35
	flashRingScale  = 0.95
	flashBaseAlpha  = 0.15
	flashStepAlpha  = 0.05
	markerNear      = 10.0
	markerFar       = 26.0
	markerAlpha     = 0x88 / 255.0
	particleSize    = 3.0
)
