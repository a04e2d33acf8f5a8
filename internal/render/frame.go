package render

import (
	"math"

	"github.com/tomz197/dartkids/internal/asset"
	"github.com/tomz197/dartkids/internal/draw"
	"github.com/tomz197/dartkids/internal/game"
	"github.com/tomz197/dartkids/internal/loop/config"
	"github.com/tomz197/dartkids/internal/object"
)

// rockSprites maps rock types to sprite names.
var rockSprites = map[object.RockType]string{
	object.RockMetal:   asset.Metal,
	object.RockIce:     asset.Ice,
	object.RockVolcano: asset.Volcano,
}

// Frame appends the drawing commands for sc to dst and returns the
// extended slice. Layers go back to front: stars, planet, ship, bullets,
// rocks, particles. rng only jitters the screen shake. sprites may be nil.
// A scene without a usable viewport draws nothing.
func Frame(dst []Command, sc game.Scene, sprites *asset.Library, rng object.Rand) []Command {
	vp := sc.Viewport
	if !vp.Valid() {
		return dst
	}

	var ox, oy float64
	if sc.Shake > 0 {
		ox = (rng.Float64() - 0.5) * vp.Px(config.ShakeAmplitude)
		oy = (rng.Float64() - 0.5) * vp.Px(config.ShakeAmplitude)
	}
	dst = append(dst, Command{Kind: KindTranslate, X: ox, Y: oy})

	dst = stars(dst, vp)
	dst = planet(dst, sc, sprites)
	dst = ship(dst, sc)
	dst = bullets(dst, sc)
	for _, r := range sc.Rocks {
		dst = rock(dst, r, vp, sprites)
	}
	dst = particles(dst, sc)
	return dst
}

func stars(dst []Command, vp object.Viewport) []Command {
	w, h := int(vp.Width), int(vp.Height)
	if w <= 0 || h <= 0 {
		return dst
	}
	for i := 0; i < starCount; i++ {
		dst = append(dst, Command{
			Kind:  KindRect,
			X:     float64((i * 73) % w),
			Y:     float64((i * 131) % h),
			W:     starSize,
			H:     starSize,
			Color: colorStar,
			Alpha: starAlpha,
		})
	}
	return dst
}

// planet draws the textured globe, or a shaded disc until the texture is
// ready, then a faint atmosphere.
func planet(dst []Command, sc game.Scene, sprites *asset.Library) []Command {
	p := sc.Planet
	if p.R <= 0 {
		return dst
	}
	if tex := sprites.Sprite(asset.Earth); tex.Ready() {
		dst = append(dst, Command{Kind: KindGlobe, X: p.CX, Y: p.CY, R: p.R, Angle: sc.PlanetAngle, Sprite: tex, Alpha: 1})
	} else {
		dst = append(dst, Command{
			Kind:   KindGradientDisc,
			X:      p.CX,
			Y:      p.CY,
			R:      p.R,
			Color:  colorPlanetLit,
			Color2: colorPlanetDark,
			Alpha:  1,
		})
	}
	return append(dst, Command{
		Kind:  KindDisc,
		X:     p.CX,
		Y:     p.CY,
		R:     p.R * atmosphereScale,
		Color: colorAtmosphere,
		Alpha: atmosphereAlpha,
	})
}

func ship(dst []Command, sc game.Scene) []Command {
	s := sc.Ship
	hull := s.Outline()
	dst = append(dst, Command{Kind: KindPolygon, Points: hull[:], Fill: true, Color: colorShip, Alpha: 1})
	if !sc.GameOver && !sc.Paused {
		flame := s.Flame(sc.Viewport.Scale)
		dst = append(dst, Command{Kind: KindPolygon, Points: flame[:], Fill: true, Color: colorFlame, Alpha: 1})
	}
	return dst
}

func bullets(dst []Command, sc game.Scene) []Command {
	length := sc.Viewport.Px(config.BulletLength)
	for _, b := range sc.Bullets {
		dst = append(dst, Command{
			Kind:   KindLine,
			Points: []draw.Point{{X: b.X, Y: b.Y}, {X: b.X, Y: b.Y - length}},
			Color:  colorBullet,
			Alpha:  1,
		})
	}
	return dst
}

// rock draws the trail, the body, a hit flash and the direction marker.
func rock(dst []Command, r *object.Rock, vp object.Viewport, sprites *asset.Library) []Command {
	if len(r.Trail) > 1 {
		pts := make([]draw.Point, len(r.Trail))
		for i, t := range r.Trail {
			pts[i] = draw.Point{X: t.X, Y: t.Y}
		}
		dst = append(dst, Command{Kind: KindPolyline, Points: pts, Color: colorTrail, Alpha: trailAlpha})
	}

	if tex := sprites.Sprite(rockSprites[r.Type]); tex.Ready() {
		dst = append(dst, Command{Kind: KindSprite, X: r.X, Y: r.Y, R: r.R, Angle: r.Rot, Sprite: tex, Alpha: 1})
	} else if len(r.Shape) >= 3 {
		body := rotated(r.Shape, r.X, r.Y, r.Rot)
		dst = append(dst,
			Command{Kind: KindPolygon, Points: body, Fill: true, Color: draw.HSL(float64(r.Hue), rockSaturation, rockLightness), Alpha: 1},
			Command{Kind: KindPolygon, Points: body, Color: colorRockEdge, Alpha: rockEdgeAlpha},
		)
	}

	if r.Flash > 0 {
		dst = append(dst, Command{
			Kind:  KindRing,
			X:     r.X,
			Y:     r.Y,
			R:     r.R * flashRingScale,
			Color: draw.White,
			Alpha: flashBaseAlpha + float64(r.Flash)*flashStepAlpha,
		})
	}

	top := r.Y - r.R
	return append(dst, Command{
		Kind: KindLine,
		Points: []draw.Point{
			{X: r.X, Y: top - vp.Px(markerNear)},
			{X: r.X, Y: top - vp.Px(markerFar)},
		},
		Color: colorMarker,
		Alpha: markerAlpha,
	})
}

func particles(dst []Command, sc game.Scene) []Command {
	size := sc.Viewport.Px(particleSize)
	for _, p := range sc.Particles {
		col := colorDebris
		if p.Role == object.RoleMuzzle {
			col = colorMuzzle
		}
		dst = append(dst, Command{Kind: KindRect, X: p.X, Y: p.Y, W: size, H: size, Color: col, Alpha: p.Alpha()})
	}
	return dst
}

// rotated returns shape turned by angle and moved to (x,y).
func rotated(shape []draw.Point, x, y, angle float64) []draw.Point {
	sin, cos := math.Sincos(angle)
	out := make([]draw.Point, len(shape))
	for i, p := range shape {
		out[i] = draw.Point{
			X: x + p.X*cos - p.Y*sin,
			Y: y + p.X*sin + p.Y*cos,
		}
	}
	return out
}
