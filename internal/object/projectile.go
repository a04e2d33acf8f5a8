package object

import "github.com/tomz197/dartkids/internal/loop/config"

// Bullet is a shot fired straight up by the ship.
type Bullet struct {
	X, Y float64 // Position (tip)
	VY   float64 // Vertical velocity, negative is up
}

// NewBullet creates a bullet at (x,y) moving up at the tuned speed.
func NewBullet(x, y float64, vp Viewport) Bullet {
	return Bullet{X: x, Y: y, VY: -vp.Px(config.BulletSpeed)}
}

// Update moves the bullet one frame. Returns true once it has left the top bound.
func (b *Bullet) Update(vp Viewport) (remove bool) {
	b.Y += b.VY
	return b.Y < -vp.Px(config.BulletTopCull)
}
