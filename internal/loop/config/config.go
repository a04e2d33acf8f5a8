// Package config centralizes all tunable game parameters.
//
// Distances are in logical surface pixels at a pixel ratio of 1 and are
// multiplied by the viewport scale at use. Durations expressed as integers
// are frames at the nominal tick rate.
package config

import "time"

// Frame timing
const (
	TickRate      = 60
	TickTime      = time.Second / TickRate
	MaxFrameDelta = time.Second / 30 // Largest delta integrated per Update call
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Max render resolution in terminal cells. Larger terminals get a
// centered, bordered play area.
const (
	MaxTermWidth  = 240
	MaxTermHeight = 80
)

// Terminal surface: logical pixels per terminal column and per sub-pixel row.
// A half-block cell is 1 column by 2 sub-pixel rows.
const (
	PixelsPerColumn = 8.0
	PixelsPerSubRow = 8.0
)

// Session
const (
	InitialLives = 5
	InitialLevel = 1
)

// Scoring
const (
	ScoreDestroyed = 10 // Rock shot down to zero hit-points
	ScoreSaved     = 5  // Rock left the play area or aged out
)

// Planet geometry
const (
	PlanetOffsetY     = 120.0 // Center sits this far below the bottom edge
	PlanetRadiusRatio = 0.60  // Radius as a fraction of viewport height
	PlanetSpin        = 0.003 // Texture rotation per frame (radians)
)

// Ship
const (
	ShipSize      = 44.0
	ShipSpeed     = 7.0
	ShipMargin    = 40.0  // Horizontal clamp distance from the edges
	ShipBottomGap = 140.0 // Spawn height above the bottom edge
	FireCooldown  = 10    // Frames between shots
)

// Bullets
const (
	BulletSpeed   = 12.0 // Upward pixels per frame
	BulletTopCull = 40.0 // Removed once above -BulletTopCull
	BulletLength  = 14.0
)

// Rocks
const (
	WaveBase = 6 // Wave size is WaveBase + level

	RockMinSize   = 22.0
	RockSizeRange = 18.0
	RockHPSmall   = 28.0 // Below: 2 hit-points
	RockHPLarge   = 36.0 // Above: 4 hit-points, otherwise 3

	RockSpawnSpread  = 0.9   // Fraction of planet radius used for horizontal spawn
	RockSpawnGapMin  = 50.0  // Minimum spawn height above the top edge
	RockSpawnGapSpan = 250.0 // Random extra spawn height

	RockBaseSpeed  = 1.0
	RockLevelSpeed = 0.25
	RockHomeBias   = 0.35 // Drift toward planet center per unit of normalized offset
	RockJitter     = 0.15 // Half-width of random horizontal drift

	RockDampX = 0.996
	RockDampY = 0.998

	RockMinSides   = 8
	RockSideRange  = 6
	RockWobbleMin  = 0.72
	RockWobbleSpan = 0.5

	RockSpinRange = 0.004 // Initial rotation speed in [-RockSpinRange, RockSpinRange)

	RockEnterMargin = 10.0  // Entered once inside the view extended by this margin
	CullMargin      = 220.0 // Off-screen band past which entered rocks are culled
	CullTopFactor   = 1.5   // Top band is CullMargin * CullTopFactor

	RockMaxAge = 20 * TickRate // Failsafe lifetime in frames

	RockHitScale     = 0.8 // Collision radius shrink for bullet hits
	RockTrailCap     = 16
	RockTrailChance  = 0.25 // Per-frame chance to sample a trail point
	RockFlashFrames  = 10
	DeflectTangent   = 2.0
	DeflectNormal    = 1.2
	DeflectSpinRange = 0.006 // Rotation perturbation in [-DeflectSpinRange, DeflectSpinRange)

	RockHueBase  = 200
	RockHueStep  = 8
	RockHueFloor = 160
)

// Rock type weights (must sum to 1)
const (
	WeightMetal = 0.4
	WeightIce   = 0.3
)

// Particles
const (
	MuzzleParticles    = 6
	DebrisParticles    = 10
	ExplosionParticles = 16

	MuzzleSpeed   = 2.0
	DebrisSpeed   = 3.0
	ParticleSpeed = 1.0 // Random extra speed on top of the role speed

	MuzzleLife    = 20
	DebrisLife    = 20
	DeflectLife   = 18
	ExplosionLife = 26

	MaxParticleLife = ExplosionLife // Alpha reference for fading

	DeflectBoost   = 1.7
	ExplosionBoost = 1.5
)

// Screen shake
const (
	ShakeFrames    = 14
	ShakeAmplitude = 6.0
)

// Notices (banner durations)
const (
	NoticeDefault = 1800 * time.Millisecond
	NoticeLevelUp = 1200 * time.Millisecond
	NoticeImpact  = 1400 * time.Millisecond
)

// Touch pads (bottom row of the play area)
const (
	PadMinWidth = 12 // Narrower areas get no pads
)

// Persistence keys
const (
	BestScoreKey = "dartkids_best"
	SkipIntroKey = "dartkids_skip_intro"
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)
