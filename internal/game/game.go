// Package game is the planet-defense simulation: it owns every entity and
// counter, advances them in fixed ticks and exposes read-only views for
// rendering and the HUD.
package game

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/dartkids/internal/input"
	"github.com/tomz197/dartkids/internal/loop/config"
	"github.com/tomz197/dartkids/internal/object"
	"github.com/tomz197/dartkids/internal/physics"
)

// Prefs is the persisted key-value capability the game needs.
// Implementations never fail: a missing or unreadable value reads as 0.
type Prefs interface {
	Int(key string) int
	SetInt(key string, n int)
}

// State is the game phase.
type State int

const (
	StatePlaying State = iota
	StateGameOver
)

func (s State) String() string {
	if s == StateGameOver {
		return "game over"
	}
	return "playing"
}

// Options configures a Game. Zero values select defaults.
type Options struct {
	Prefs  Prefs       // Best-score storage; defaults to an in-memory map
	Rand   object.Rand // Randomness for spawns and effects; defaults to time-seeded
	Logger *log.Logger // Defaults to discarding
}

// Game owns the session: ship, bullets, rocks, particles, score, lives,
// level and the game-over and paused flags.
type Game struct {
	vp      object.Viewport
	pending *object.Viewport // Applied at the start of the next Update
	planet  object.Planet

	// Broad phase for bullet hits, rebuilt on resize
	grid     *physics.SpatialGrid
	spentBuf []bool

	ship    *object.Ship
	bullets []object.Bullet
	rocks   []*object.Rock
	effects object.Effects

	state        State
	paused       bool
	help         bool
	pausedBefore bool // Paused flag from before help was raised
	exit         bool
	score        int
	best         int
	lives        int
	level        int
	shake        int
	planetAngle  float64
	spawnPending bool // Wave owed once the viewport becomes valid

	acc        time.Duration
	fireQueued bool
	notices    []Notice

	prefs  Prefs
	rng    object.Rand
	logger *log.Logger
}

// New creates a game for the viewport and starts the first wave.
func New(vp object.Viewport, opts Options) *Game {
	if opts.Prefs == nil {
		opts.Prefs = make(memoryPrefs)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	g := &Game{
		prefs:  opts.Prefs,
		rng:    opts.Rand,
		logger: opts.Logger,
		ship:   &object.Ship{},
	}
	g.setViewport(vp)
	g.Reset()
	return g
}

// Reset starts a fresh session: score 0, full lives, level 1, a new wave.
// The paused and help flags are left to the host.
func (g *Game) Reset() {
	g.ship.Reset(g.vp)
	g.bullets = g.bullets[:0]
	g.rocks = g.rocks[:0]
	g.effects.Reset()

	g.state = StatePlaying
	g.score = 0
	g.lives = config.InitialLives
	g.level = config.InitialLevel
	g.shake = 0
	g.planetAngle = 0
	g.acc = 0
	g.fireQueued = false
	g.best = max(g.best, g.prefs.Int(config.BestScoreKey))

	g.spawnPending = true
	g.spawnWaveIfReady()

	g.notify(Notice{Kind: NoticeWelcome, Duration: config.NoticeDefault})
	g.logger.Debug("session reset", "best", g.best)
}

// TogglePause flips the paused flag.
func (g *Game) TogglePause() {
	g.paused = !g.paused
	if g.paused {
		g.fireQueued = false
	}
}

// RequestHelp pauses the game and raises the help flag.
func (g *Game) RequestHelp() {
	if !g.help {
		g.pausedBefore = g.paused
	}
	g.help = true
	g.paused = true
	g.fireQueued = false
}

// DismissHelp clears the help flag. Play resumes unless the player had
// paused before opening help.
func (g *Game) DismissHelp() {
	if !g.help {
		return
	}
	g.help = false
	g.paused = g.pausedBefore
}

// Exit asks the host to leave the game.
func (g *Game) Exit() {
	g.exit = true
}

// Exited reports whether Exit was called.
func (g *Game) Exited() bool {
	return g.exit
}

// Resize queues a viewport change. It takes effect at the start of the
// next Update so a tick never sees two geometries.
func (g *Game) Resize(vp object.Viewport) {
	g.pending = &vp
}

// Update advances the simulation by dt, clamped to the frame-delta cap,
// in fixed ticks. intent.Dir applies to every tick run by this call;
// intent.Fire is kept until the next tick consumes it.
func (g *Game) Update(dt time.Duration, intent input.Intent) {
	g.applyResize()
	if !g.vp.Valid() || g.paused {
		return
	}

	if dt > config.MaxFrameDelta {
		dt = config.MaxFrameDelta
	}
	if dt < 0 {
		dt = 0
	}
	if intent.Fire && g.state == StatePlaying {
		g.fireQueued = true
	}

	g.acc += dt
	for g.acc >= config.TickTime {
		g.acc -= config.TickTime
		g.step(intent.Dir)
	}
}

// Step advances exactly one tick, ignoring the accumulator.
func (g *Game) Step(intent input.Intent) {
	g.applyResize()
	if !g.vp.Valid() || g.paused {
		return
	}
	if intent.Fire && g.state == StatePlaying {
		g.fireQueued = true
	}
	g.step(intent.Dir)
}

func (g *Game) applyResize() {
	if g.pending == nil {
		return
	}
	vp := *g.pending
	g.pending = nil

	old := g.vp
	g.setViewport(vp)
	switch {
	case !vp.Valid():
	case old.Valid():
		g.ship.Anchor(old, vp)
	default:
		g.ship.Reset(vp)
	}
	g.spawnWaveIfReady()
}

func (g *Game) setViewport(vp object.Viewport) {
	g.vp = vp
	g.planet = object.NewPlanet(vp)
	if vp.Valid() {
		cell := vp.Px((config.RockMinSize + config.RockSizeRange) * config.RockHitScale)
		g.grid = physics.NewSpatialGrid(0, -cell, vp.Width, vp.Height+cell, cell)
	}
}

func (g *Game) spawnWaveIfReady() {
	if !g.spawnPending || !g.vp.Valid() {
		return
	}
	g.spawnPending = false
	g.rocks = append(g.rocks, object.SpawnWave(g.level, g.planet, g.vp, g.rng)...)
}

// Notices returns and clears the pending notices, oldest first.
func (g *Game) Notices() []Notice {
	n := g.notices
	g.notices = nil
	return n
}

func (g *Game) notify(n Notice) {
	n.Score = g.score
	n.Best = g.best
	n.Level = g.level
	n.Lives = g.lives
	g.notices = append(g.notices, n)
}

// HUD is the per-frame status snapshot. The host formats it.
type HUD struct {
	Score    int
	Best     int
	Lives    int
	Level    int
	GameOver bool
	Paused   bool
	Help     bool
}

// HUD returns the current status.
func (g *Game) HUD() HUD {
	return HUD{
		Score:    g.score,
		Best:     g.best,
		Lives:    g.lives,
		Level:    g.level,
		GameOver: g.state == StateGameOver,
		Paused:   g.paused,
		Help:     g.help,
	}
}

// State returns the game phase.
func (g *Game) State() State {
	return g.state
}

// Viewport returns the geometry currently in effect.
func (g *Game) Viewport() object.Viewport {
	return g.vp
}

// Scene is a read-only view of the entities for one frame. Its slices
// alias game state and are valid until the next Update or Step.
type Scene struct {
	Viewport    object.Viewport
	Planet      object.Planet
	PlanetAngle float64
	Ship        object.Ship
	Bullets     []object.Bullet
	Rocks       []*object.Rock
	Particles   []object.Particle
	Shake       int
	GameOver    bool
	Paused      bool
}

// Scene returns the frame view.
func (g *Game) Scene() Scene {
	return Scene{
		Viewport:    g.vp,
		Planet:      g.planet,
		PlanetAngle: g.planetAngle,
		Ship:        *g.ship,
		Bullets:     g.bullets,
		Rocks:       g.rocks,
		Particles:   g.effects.Particles,
		Shake:       g.shake,
		GameOver:    g.state == StateGameOver,
		Paused:      g.paused,
	}
}

// memoryPrefs is the default in-process Prefs.
type memoryPrefs map[string]int

func (m memoryPrefs) Int(key string) int       { return m[key] }
func (m memoryPrefs) SetInt(key string, n int) { m[key] = n }
