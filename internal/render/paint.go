package render

import (
	"math"

	"github.com/tomz197/dartkids/internal/asset"
	"github.com/tomz197/dartkids/internal/draw"
)

// Paint draws cmds onto c in order. The canvas should be cleared first.
func Paint(c *draw.Canvas, cmds []Command) {
	for i := range cmds {
		cmd := &cmds[i]
		if cmd.Kind == KindTranslate {
			c.ResetTransform()
			c.Translate(cmd.X, cmd.Y)
			continue
		}

		c.SetColor(cmd.Color)
		c.SetAlpha(cmd.Alpha)
		switch cmd.Kind {
		case KindRect:
			c.FillRect(cmd.X, cmd.Y, cmd.W, cmd.H)
		case KindDisc:
			c.FillCircle(cmd.X, cmd.Y, cmd.R)
		case KindRing:
			c.DrawCircle(cmd.X, cmd.Y, cmd.R)
		case KindPolygon:
			c.DrawPolygon(cmd.Points, cmd.Fill)
		case KindPolyline:
			c.DrawPolyline(cmd.Points)
		case KindLine:
			if len(cmd.Points) >= 2 {
				c.DrawLine(cmd.Points[0], cmd.Points[1])
			}
		case KindSprite:
			c.Sample(cmd.X, cmd.Y, cmd.R, spriteSampler(cmd.Sprite, cmd.Angle))
		case KindGlobe:
			c.Sample(cmd.X, cmd.Y, cmd.R, globeSampler(cmd.Sprite, cmd.Angle))
		case KindGradientDisc:
			c.Sample(cmd.X, cmd.Y, cmd.R, gradientSampler(cmd.Color, cmd.Color2))
		}
	}
	c.ResetTransform()
	c.SetAlpha(1)
}

// spriteSampler maps the square onto the sprite turned by angle.
func spriteSampler(s *asset.Sprite, angle float64) draw.SampleFunc {
	sin, cos := math.Sincos(angle)
	return func(u, v float64) (draw.Color, float64, bool) {
		ru := u*cos + v*sin
		rv := -u*sin + v*cos
		col, ok := s.At((ru+1)/2, (rv+1)/2)
		return col, 1, ok
	}
}

// globeSampler projects an equirectangular texture onto the visible half
// of a sphere. angle scrolls the longitude.
func globeSampler(s *asset.Sprite, angle float64) draw.SampleFunc {
	shift := angle / (2 * math.Pi)
	return func(u, v float64) (draw.Color, float64, bool) {
		if u*u+v*v > 1 {
			return draw.Color{}, 0, false
		}
		ring := math.Sqrt(1 - v*v)
		lon := 0.0
		if ring > 0 {
			lon = math.Asin(math.Max(-1, math.Min(1, u/ring)))
		}
		lat := math.Asin(v)
		tu := 0.5 + lon/(2*math.Pi) + shift
		tv := lat/math.Pi + 0.5
		if tv >= 1 {
			tv = math.Nextafter(1, 0)
		}
		col, ok := s.Wrap(tu, tv)
		if !ok {
			return draw.Color{}, 0, false
		}
		// Darken toward the limb.
		depth := math.Sqrt(math.Max(0, 1-u*u-v*v))
		return col.Scale(0.55 + 0.45*depth), 1, true
	}
}

// gradientSampler shades a disc lit from the upper left.
func gradientSampler(lit, dark draw.Color) draw.SampleFunc {
	return func(u, v float64) (draw.Color, float64, bool) {
		if u*u+v*v > 1 {
			return draw.Color{}, 0, false
		}
		d := math.Hypot(u+0.25, v+0.25)
		t := math.Max(0, math.Min(1, (d-0.5)/0.5))
		return lit.Blend(dark, t), 1, true
	}
}
