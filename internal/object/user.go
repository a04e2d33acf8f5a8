package object

import "github.com/tomz197/dartkids/internal/loop/config"

// Ship is the player-controlled interceptor. It slides along a fixed line
// near the bottom of the surface and fires straight up.
type Ship struct {
	X, Y     float64 // Position (center of ship)
	W, H     float64 // Full width and height
	Speed    float64 // Pixels per frame at full input
	Cooldown int     // Frames until the next shot is allowed
}

// NewShip creates a ship at its spawn position for the viewport.
func NewShip(vp Viewport) *Ship {
	s := &Ship{}
	s.Reset(vp)
	return s
}

// Reset puts the ship back at the spawn position with no cooldown.
func (s *Ship) Reset(vp Viewport) {
	s.W = vp.Px(config.ShipSize)
	s.H = vp.Px(config.ShipSize)
	s.Speed = vp.Px(config.ShipSpeed)
	s.Cooldown = 0
	s.X = vp.CenterX()
	s.Y = vp.Height - vp.Px(config.ShipBottomGap)
}

// Anchor re-seats the ship after a viewport change, keeping its relative
// horizontal position.
func (s *Ship) Anchor(old, vp Viewport) {
	if old.Width > 0 {
		s.X = s.X / old.Width * vp.Width
	}
	s.W = vp.Px(config.ShipSize)
	s.H = vp.Px(config.ShipSize)
	s.Speed = vp.Px(config.ShipSpeed)
	s.Y = vp.Height - vp.Px(config.ShipBottomGap)
	s.clamp(vp)
}

// Move shifts the ship by dir (-1, 0, +1) steps and clamps it to the surface.
func (s *Ship) Move(dir int, vp Viewport) {
	s.X += float64(dir) * s.Speed
	s.clamp(vp)
}

func (s *Ship) clamp(vp Viewport) {
	margin := vp.Px(config.ShipMargin)
	lo, hi := margin, vp.Width-margin
	if hi < lo {
		s.X = vp.CenterX()
		return
	}
	s.X = clamp(s.X, lo, hi)
}

// Tick decrements the fire cooldown.
func (s *Ship) Tick() {
	if s.Cooldown > 0 {
		s.Cooldown--
	}
}

// CanFire reports whether the cooldown has elapsed.
func (s *Ship) CanFire() bool {
	return s.Cooldown <= 0
}

// Fire launches a bullet from the nose and starts the cooldown.
// ok is false while cooling down.
func (s *Ship) Fire(vp Viewport) (b Bullet, ok bool) {
	if !s.CanFire() {
		return Bullet{}, false
	}
	s.Cooldown = config.FireCooldown
	return NewBullet(s.X, s.Nose(), vp), true
}

// Nose returns the y coordinate of the ship's tip.
func (s *Ship) Nose() float64 {
	return s.Y - s.H*0.6
}

// Outline returns the ship triangle (tip, right wing, left wing).
func (s *Ship) Outline() [3]Point {
	return [3]Point{
		{X: s.X, Y: s.Y - s.H*0.6},
		{X: s.X + s.W*0.35, Y: s.Y + s.H*0.4},
		{X: s.X - s.W*0.35, Y: s.Y + s.H*0.4},
	}
}

// Flame returns the exhaust triangle drawn under the ship while playing.
func (s *Ship) Flame(scale float64) [3]Point {
	return [3]Point{
		{X: s.X, Y: s.Y + s.H*0.42},
		{X: s.X + 6*scale, Y: s.Y + s.H*0.65},
		{X: s.X - 6*scale, Y: s.Y + s.H*0.65},
	}
}
