package client

import (
	"time"

	"github.com/tomz197/dartkids/internal/game"
	"github.com/tomz197/dartkids/internal/input"
)

// Screen is what the client shows on top of the playfield.
type Screen int

const (
	ScreenGame     Screen = iota // Playfield with HUD and overlays
	ScreenShutdown               // Server is shutting down
)

// overlay identifies the text layer so a change triggers a full redraw.
type overlay struct {
	screen   Screen
	inactive bool
	help     bool
	paused   bool
	over     bool
}

// banner is a transient notice line.
type banner struct {
	text  string
	until time.Time
}

// ClientState holds per-session presentation state. The game itself lives
// in game.Game.
type ClientState struct {
	Input         input.Input
	Intent        input.Intent
	Screen        Screen
	Running       bool          // Client loop running
	delta         time.Duration // Frame delta time
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state
	prevOverlay   overlay
	banner        banner
	record        bool // The finished game set a new best score
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Screen:  ScreenGame,
		Running: true,
	}
}

func (s *ClientState) overlayFor(hud game.HUD) overlay {
	return overlay{
		screen:   s.Screen,
		inactive: s.isInactive,
		help:     hud.Help,
		paused:   hud.Paused,
		over:     hud.GameOver,
	}
}
