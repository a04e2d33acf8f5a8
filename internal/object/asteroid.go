package object

import (
	"math"

	"github.com/tomz197/dartkids/internal/loop/config"
	"github.com/tomz197/dartkids/internal/physics"
)

// RockType is the material category of a rock. It only selects the sprite.
type RockType int

const (
	RockMetal RockType = iota
	RockIce
	RockVolcano
)

// RockTypes lists every rock type in sprite order.
var RockTypes = [...]RockType{RockMetal, RockIce, RockVolcano}

func (t RockType) String() string {
	switch t {
	case RockMetal:
		return "metal"
	case RockIce:
		return "ice"
	case RockVolcano:
		return "volcano"
	default:
		return "unknown"
	}
}

// PickRockType draws a rock type using the tuned weights.
func PickRockType(rng Rand) RockType {
	r := rng.Float64()
	switch {
	case r < config.WeightMetal:
		return RockMetal
	case r < config.WeightMetal+config.WeightIce:
		return RockIce
	default:
		return RockVolcano
	}
}

// HitPointsFor returns the hit-points of a rock of the given radius.
func HitPointsFor(radius, scale float64) int {
	switch {
	case radius < config.RockHPSmall*scale:
		return 2
	case radius > config.RockHPLarge*scale:
		return 4
	default:
		return 3
	}
}

// TrailPoint is one sample of a rock's recent path.
type TrailPoint struct {
	X, Y  float64
	Alpha float64
}

// Rock is an asteroid falling toward the planet.
type Rock struct {
	X, Y         float64      // Position (center)
	PrevX, PrevY float64      // Position before the last update
	R            float64      // Radius
	VX, VY       float64      // Velocity in pixels per frame
	Rot          float64      // Current rotation angle
	RotSpeed     float64      // Radians per frame
	Shape        []Point      // Silhouette offsets from center, fixed at creation
	Hue          int          // Body hue in degrees
	Type         RockType
	HP           int          // Remaining hit-points, never negative
	Flash        int          // Frames of hit flash remaining
	Trail        []TrailPoint // Recent positions, oldest first
	Entered      bool         // Has been on screen at least once
	Age          int          // Frames alive
}

// NewRock builds a rock for the given level above the visible area,
// loosely aimed at the planet.
func NewRock(level int, planet Planet, vp Viewport, rng Rand) *Rock {
	size := vp.Px(randRange(rng, config.RockMinSize, config.RockSizeRange))

	// Spawn over the planet, but not absurdly far off screen.
	x := planet.CX + randSigned(rng, planet.R*config.RockSpawnSpread)
	band := vp.Px(config.CullMargin) * 0.5
	x = clamp(x, -band, vp.Width+band)
	y := -vp.Px(randRange(rng, config.RockSpawnGapMin, config.RockSpawnGapSpan))

	levelFactor := config.RockBaseSpeed + float64(level)*config.RockLevelSpeed
	speed := levelFactor * vp.Scale

	// Homing bias grows with the fall speed so the approach angle stays similar.
	var bias float64
	if planet.R > 0 {
		bias = (planet.CX - x) / planet.R * config.RockHomeBias * vp.Scale *
			levelFactor / (config.RockBaseSpeed + config.RockLevelSpeed)
	}
	drift := bias + randSigned(rng, config.RockJitter)*vp.Scale

	rot := rng.Float64() * 2 * math.Pi
	rotSpeed := randSigned(rng, config.RockSpinRange)
	sides := config.RockMinSides + int(rng.Float64()*config.RockSideRange)
	shape := rockShape(size, sides, rng)

	hue := config.RockHueBase - level*config.RockHueStep
	if hue < config.RockHueFloor {
		hue = config.RockHueFloor
	}

	return &Rock{
		X:        x,
		Y:        y,
		PrevX:    x,
		PrevY:    y,
		R:        size,
		VX:       drift,
		VY:       speed,
		Rot:      rot,
		RotSpeed: rotSpeed,
		Shape:    shape,
		Hue:      hue,
		Type:     PickRockType(rng),
		HP:       HitPointsFor(size, vp.Scale),
	}
}

// rockShape generates an irregular polygon silhouette.
func rockShape(radius float64, sides int, rng Rand) []Point {
	pts := make([]Point, sides)
	for i := range pts {
		a := float64(i) / float64(sides) * 2 * math.Pi
		wobble := randRange(rng, config.RockWobbleMin, config.RockWobbleSpan)
		pts[i] = Point{
			X: math.Cos(a) * radius * wobble,
			Y: math.Sin(a) * radius * wobble,
		}
	}
	return pts
}

// Update advances the rock one frame: movement, rotation, damping,
// entry detection, flash decay, trail sampling and aging.
func (r *Rock) Update(vp Viewport, rng Rand) {
	r.PrevX, r.PrevY = r.X, r.Y

	r.Y += r.VY
	r.X += r.VX
	r.Rot += r.RotSpeed

	if !r.Entered {
		m := vp.Px(config.RockEnterMargin)
		enteredVert := r.Y > -m
		enteredHorz := r.X > -m && r.X < vp.Width+m
		if enteredVert || enteredHorz {
			r.Entered = true
		}
	}

	// Decay drift so homing does not compound.
	r.VX *= config.RockDampX
	r.VY *= config.RockDampY

	if r.Flash > 0 {
		r.Flash--
	}

	if rng.Float64() < config.RockTrailChance {
		r.pushTrail(r.X, r.Y, 0.7)
	}

	r.Age++
}

// ShouldCull reports whether an entered rock has left the extended
// off-screen band. Rocks that never entered are never culled here.
func (r *Rock) ShouldCull(vp Viewport) bool {
	if !r.Entered {
		return false
	}
	m := vp.Px(config.CullMargin)
	return r.X < -m || r.X > vp.Width+m ||
		r.Y > vp.Height+m || r.Y < -m*config.CullTopFactor
}

// Expired reports whether the rock has outlived the failsafe age.
func (r *Rock) Expired() bool {
	return r.Age > config.RockMaxAge
}

// HitRadius is the shrunk radius used for bullet collisions.
func (r *Rock) HitRadius() float64 {
	return r.R * config.RockHitScale
}

// HitBy reports whether a bullet at (x,y) overlaps the rock.
func (r *Rock) HitBy(x, y float64) bool {
	return physics.PointInCircle(x, y, r.X, r.Y, r.HitRadius())
}

// Deflect applies a bullet hit from (bx,by): an impulse away from the
// bullet, a spin perturbation, a flash and the loss of one hit-point.
func (r *Rock) Deflect(bx, by, scale float64, rng Rand) {
	nx, ny := physics.UnitVector(bx, by, r.X, r.Y)
	r.VX += nx * config.DeflectTangent * scale
	r.VY += ny * config.DeflectNormal * scale

	r.RotSpeed += randSigned(rng, config.DeflectSpinRange)
	r.Flash = config.RockFlashFrames
	if r.HP > 0 {
		r.HP--
	}

	r.pushTrail(r.X, r.Y, 0.9)
}

// Destroyed reports whether the rock has no hit-points left.
func (r *Rock) Destroyed() bool {
	return r.HP <= 0
}

// pushTrail appends a trail point, dropping the oldest past the cap.
func (r *Rock) pushTrail(x, y, alpha float64) {
	if len(r.Trail) >= config.RockTrailCap {
		copy(r.Trail, r.Trail[1:])
		r.Trail = r.Trail[:len(r.Trail)-1]
	}
	r.Trail = append(r.Trail, TrailPoint{X: x, Y: y, Alpha: alpha})
}
