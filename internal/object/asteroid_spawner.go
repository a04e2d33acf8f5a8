package object

import "github.com/tomz197/dartkids/internal/loop/config"

// WaveSize returns the number of rocks spawned for a level.
func WaveSize(level int) int {
	return config.WaveBase + level
}

// SpawnWave creates a full wave of rocks for the level.
func SpawnWave(level int, planet Planet, vp Viewport, rng Rand) []*Rock {
	n := WaveSize(level)
	rocks := make([]*Rock, 0, n)
	for i := 0; i < n; i++ {
		rocks = append(rocks, NewRock(level, planet, vp, rng))
	}
	return rocks
}
