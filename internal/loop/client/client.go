// Package client runs one player's session: it reads terminal input,
// drives a game, and draws the playfield and text overlays.
package client

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/dartkids/internal/asset"
	"github.com/tomz197/dartkids/internal/draw"
	"github.com/tomz197/dartkids/internal/game"
	"github.com/tomz197/dartkids/internal/input"
	"github.com/tomz197/dartkids/internal/loop/config"
	"github.com/tomz197/dartkids/internal/loop/server"
	"github.com/tomz197/dartkids/internal/object"
	"github.com/tomz197/dartkids/internal/render"
	"github.com/tomz197/dartkids/internal/store"
)

// Prefs is the per-player key-value capability: the best score for the
// game plus the skip-intro flag for the host.
type Prefs interface {
	game.Prefs
	Flag(key string) bool
	SetFlag(key string, on bool)
}

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	game         *game.Game
	mapper       input.Mapper
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	term         *draw.Terminal
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	prefs        Prefs
	sprites      *asset.Library
	shakeRand    *rand.Rand
	cmds         []render.Command // Reused frame command buffer
	styles       styles
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Prefs        Prefs          // Defaults to an in-memory store
	Sprites      *asset.Library // May be nil or still loading
	Seed         int64          // 0 seeds from the clock
	Logger       *log.Logger
}

// NewClient creates a new client registered with the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.StdoutSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("user", opts.Username)

	prefs := opts.Prefs
	if prefs == nil {
		prefs = store.NewPrefs(store.NewMemory(), opts.Username, logger)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	vp := viewportFor(renderWidth, renderHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, vp.Width, vp.Height)
	canvas.SetOffset(offsetCol, offsetRow)

	c := &Client{
		server:       gs,
		handle:       gs.RegisterClient(opts.Username),
		state:        NewClientState(),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		term:         draw.NewTerminal(w),
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		prefs:        prefs,
		sprites:      opts.Sprites,
		shakeRand:    rand.New(rand.NewSource(seed + 1)),
		styles:       newStyles(w),
		logger:       logger,
	}
	c.game = game.New(vp, game.Options{
		Prefs:  prefs,
		Rand:   rand.New(rand.NewSource(seed)),
		Logger: logger,
	})
	c.mapper.Layout = padLayout(renderWidth, renderHeight)

	if !prefs.Flag(config.SkipIntroKey) {
		c.game.RequestHelp()
	}
	return c
}

// Run starts the client loop. Blocks until the client quits, its input
// ends or the server shutdown countdown runs out.
func (c *Client) Run() error {
	c.term.Enter()
	defer c.term.Leave()
	defer c.server.UnregisterClient(c.handle.ID)

	c.logger.Info("session started", "best", c.game.HUD().Best)
	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()
		c.updateGame(frameStart)

		if err := c.drawFrame(frameStart); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	hud := c.game.HUD()
	c.logger.Info("session ended", "score", hud.Score, "best", hud.Best, "level", hud.Level)
	c.term.Clear()
	return nil
}

// processInput reads this frame's input and applies it.
func (c *Client) processInput() {
	c.handleInput(input.ReadInput(c.inputStream), time.Now())
}

// handleInput tracks inactivity, maps the frame's input to an intent and
// applies the host commands.
func (c *Client) handleInput(in input.Input, now time.Time) {
	c.state.Input = in
	c.state.Intent = input.Intent{}

	if len(in.Pressed) > 0 || len(in.Mouse) > 0 {
		c.lastInput = now
		c.state.isInactive = false
	} else if idle := now.Sub(c.lastInput).Seconds(); idle > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive session")
		c.state.Running = false
	} else if idle > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if in.Closed || in.Quit {
		c.game.Exit()
		c.state.Running = false
		return
	}
	if c.state.Screen == ScreenShutdown {
		return
	}

	// Mouse reports use terminal coordinates; pads live in canvas coordinates.
	for i := range in.Mouse {
		in.Mouse[i].Col -= c.canvas.OffsetCol()
		in.Mouse[i].Row -= c.canvas.OffsetRow()
	}
	intent := c.mapper.Map(in)
	hud := c.game.HUD()
	switch {
	case hud.Help:
		if in.SkipIntro {
			skip := !c.prefs.Flag(config.SkipIntroKey)
			c.prefs.SetFlag(config.SkipIntroKey, skip)
		}
		if in.Enter {
			c.game.DismissHelp()
			c.restartInput()
		}
		return
	case in.Reset || (hud.GameOver && in.Enter):
		c.game.Reset()
		c.restartInput()
		return
	case in.Help:
		c.game.RequestHelp()
		return
	case in.Pause:
		c.game.TogglePause()
	}
	c.state.Intent = intent
}

// restartInput drops held keys and touches so nothing carries into the
// next round.
func (c *Client) restartInput() {
	input.ResetKeyInput(c.inputStream)
	c.mapper.Release()
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				c.state.Running = false
				return
			}
			if event.Type == server.EventServerShutdown && c.state.Screen != ScreenShutdown {
				c.state.Screen = ScreenShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area. The game sees the new viewport on its next
// Update.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.term.Clear()
		c.canvas.ForceRedraw()

		vp := viewportFor(renderWidth, renderHeight)
		c.canvas.Resize(renderWidth, renderHeight)
		c.canvas.SetLogicalSize(vp.Width, vp.Height)
		c.game.Resize(vp)
		c.mapper.Layout = padLayout(renderWidth, renderHeight)
		c.logger.Debug("terminal resized", "cols", renderWidth, "rows", renderHeight)
	}

	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// updateGame advances the simulation and collects its notices.
func (c *Client) updateGame(now time.Time) {
	if c.state.Screen == ScreenShutdown {
		c.state.shutdownTimer -= c.state.delta.Seconds()
		if c.state.shutdownTimer <= 0 {
			c.state.Running = false
		}
		return
	}

	c.game.Update(c.state.delta, c.state.Intent)
	for _, n := range c.game.Notices() {
		c.state.banner = banner{text: noticeText(n), until: now.Add(n.Duration)}
		switch n.Kind {
		case game.NoticeWelcome:
			c.state.record = false
		case game.NoticeRecord:
			c.state.record = true
		}
	}
	if c.game.Exited() {
		c.state.Running = false
	}
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = max(0, min(termWidth, config.MaxTermWidth))
	renderHeight = max(0, min(termHeight, config.MaxTermHeight))
	offsetCol = max(0, (termWidth-renderWidth)/2)
	offsetRow = max(0, (termHeight-renderHeight)/2)
	return
}

// viewportFor maps a render area in cells to the logical surface.
func viewportFor(cols, rows int) object.Viewport {
	return object.Viewport{
		Width:  float64(cols) * config.PixelsPerColumn,
		Height: float64(rows) * 2 * config.PixelsPerSubRow,
		Scale:  1,
	}
}

// padLayout places the touch pads on the bottom row of the render area.
// Too narrow an area gets none.
func padLayout(cols, rows int) input.PadLayout {
	if cols < config.PadMinWidth || rows < 2 {
		return input.PadLayout{}
	}
	return input.PadLayout{Row: rows, Col: 1, Width: cols}
}
