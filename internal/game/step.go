package game

import (
	"github.com/tomz197/dartkids/internal/loop/config"
	"github.com/tomz197/dartkids/internal/object"
)

// step runs one fixed tick of the pipeline.
func (g *Game) step(dir int) {
	if g.state == StateGameOver {
		g.fireQueued = false
		g.effects.Advance()
		g.decayShake()
		return
	}

	g.updateShip(dir)
	g.updateBullets()
	g.updateRocks()
	g.cullRocks()
	g.checkBulletHits()
	g.checkPlanetImpacts()
	g.advanceWave()

	g.effects.Advance()
	g.decayShake()
}

// updateShip moves the ship, fires a queued shot and counts down the cooldown.
func (g *Game) updateShip(dir int) {
	g.ship.Move(dir, g.vp)

	if g.fireQueued {
		g.fireQueued = false
		if b, ok := g.ship.Fire(g.vp); ok {
			g.bullets = append(g.bullets, b)
			g.effects.Burst(b.X, b.Y, config.MuzzleParticles, object.RoleMuzzle, 1, config.MuzzleLife, g.vp.Scale, g.rng)
		}
	}

	g.ship.Tick()
	g.planetAngle += config.PlanetSpin
}

// updateBullets moves bullets and drops those past the top bound.
func (g *Game) updateBullets() {
	kept := g.bullets[:0]
	for _, b := range g.bullets {
		if b.Update(g.vp) {
			continue
		}
		kept = append(kept, b)
	}
	g.bullets = kept
}

func (g *Game) updateRocks() {
	for _, r := range g.rocks {
		r.Update(g.vp, g.rng)
	}
}

// cullRocks removes entered rocks that left the extended margin or outlived
// the failsafe age. Each counts as saved.
func (g *Game) cullRocks() {
	kept := g.rocks[:0]
	for _, r := range g.rocks {
		if r.Entered && (r.ShouldCull(g.vp) || r.Expired()) {
			g.score += config.ScoreSaved
			continue
		}
		kept = append(kept, r)
	}
	clear(g.rocks[len(kept):])
	g.rocks = kept
}

// checkBulletHits resolves bullet-rock overlaps. Each rock takes the
// overlapping bullet with the highest index first, and keeps taking hits
// until it has none left or is destroyed.
func (g *Game) checkBulletHits() {
	if len(g.bullets) == 0 || len(g.rocks) == 0 {
		return
	}

	g.grid.Clear()
	for i, b := range g.bullets {
		g.grid.Insert(b.X, b.Y, i)
	}
	if cap(g.spentBuf) < len(g.bullets) {
		g.spentBuf = make([]bool, len(g.bullets))
	}
	spent := g.spentBuf[:len(g.bullets)]
	clear(spent)

	kept := g.rocks[:0]
	for _, r := range g.rocks {
		destroyed := false
		for {
			hit := -1
			g.grid.QueryAround(r.X, r.Y, func(j int) bool {
				if spent[j] || j <= hit {
					return false
				}
				if r.HitBy(g.bullets[j].X, g.bullets[j].Y) {
					hit = j
				}
				return false
			})
			if hit < 0 {
				break
			}

			b := g.bullets[hit]
			spent[hit] = true
			r.Deflect(b.X, b.Y, g.vp.Scale, g.rng)
			g.effects.Burst(r.X, r.Y, config.DebrisParticles, object.RoleDebris,
				config.DeflectBoost, config.DeflectLife, g.vp.Scale, g.rng)

			if r.Destroyed() {
				g.effects.Burst(r.X, r.Y, config.ExplosionParticles, object.RoleDebris,
					config.ExplosionBoost, config.ExplosionLife, g.vp.Scale, g.rng)
				g.score += config.ScoreDestroyed
				destroyed = true
				break
			}
		}
		if !destroyed {
			kept = append(kept, r)
		}
	}
	clear(g.rocks[len(kept):])
	g.rocks = kept

	bullets := g.bullets[:0]
	for i, b := range g.bullets {
		if !spent[i] {
			bullets = append(bullets, b)
		}
	}
	g.bullets = bullets
}

// checkPlanetImpacts removes rocks whose leading edge crossed the planet
// arc and damages the planet for each. Stops at game over.
func (g *Game) checkPlanetImpacts() {
	kept := g.rocks[:0]
	for _, r := range g.rocks {
		if g.state == StatePlaying && g.planet.Impacts(r.X, r.Y, r.R) {
			g.damage()
			continue
		}
		kept = append(kept, r)
	}
	clear(g.rocks[len(kept):])
	g.rocks = kept
}

// damage costs a life and shakes the screen. The last life ends the game
// and settles the best score.
func (g *Game) damage() {
	g.lives--
	g.shake = config.ShakeFrames

	if g.lives > 0 {
		g.notify(Notice{Kind: NoticeImpact, Duration: config.NoticeImpact})
		return
	}

	g.lives = 0
	g.state = StateGameOver
	g.fireQueued = false

	// Another session may have raised the stored best since this one read it.
	g.best = max(g.best, g.prefs.Int(config.BestScoreKey))
	if g.score > g.best {
		g.best = g.score
		g.prefs.SetInt(config.BestScoreKey, g.best)
		g.notify(Notice{Kind: NoticeRecord, Duration: config.NoticeDefault})
	} else {
		g.notify(Notice{Kind: NoticeGameOver, Duration: config.NoticeDefault})
	}
	g.logger.Info("game over", "score", g.score, "level", g.level, "best", g.best)
}

// advanceWave starts the next level once every rock is gone.
func (g *Game) advanceWave() {
	if g.state != StatePlaying || len(g.rocks) > 0 {
		return
	}
	g.level++
	g.rocks = append(g.rocks, object.SpawnWave(g.level, g.planet, g.vp, g.rng)...)
	g.notify(Notice{Kind: NoticeLevelUp, Duration: config.NoticeLevelUp})
	g.logger.Debug("wave cleared", "level", g.level, "rocks", len(g.rocks), "score", g.score)
}

func (g *Game) decayShake() {
	if g.shake > 0 {
		g.shake--
	}
}
