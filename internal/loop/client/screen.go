package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/dartkids/internal/game"
	"github.com/tomz197/dartkids/internal/input"
	"github.com/tomz197/dartkids/internal/loop/config"
	"github.com/tomz197/dartkids/internal/render"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame(now time.Time) error {
	hud := c.game.HUD()

	// On overlay transitions, do a full terminal clear so text from the
	// previous overlay doesn't persist on screen.
	if ov := c.state.overlayFor(hud); ov != c.state.prevOverlay {
		c.chunkWriter.Clear()
		c.canvas.ForceRedraw()
		c.state.prevOverlay = ov
	}

	c.canvas.Clear()
	c.cmds = render.Frame(c.cmds[:0], c.game.Scene(), c.sprites, c.shakeRand)
	render.Paint(c.canvas, c.cmds)

	c.canvas.Render(c.chunkWriter)
	c.canvas.RenderBorder(c.chunkWriter)
	c.drawUI(hud, now)

	return c.chunkWriter.Flush()
}

// drawUI draws the text overlay.
func (c *Client) drawUI(hud game.HUD, now time.Time) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	if termWidth <= 0 || termHeight <= 0 {
		return
	}
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.Screen == ScreenShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}
	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY, now)
		return
	}

	c.drawHUD(hud, termWidth)
	switch {
	case hud.Help:
		c.drawHelpScreen(centerX, centerY)
		return
	case hud.GameOver:
		c.drawGameOverScreen(hud, centerX, centerY, now)
	case hud.Paused:
		c.drawPausedScreen(centerX, centerY)
	default:
		if b := c.state.banner; b.text != "" && now.Before(b.until) {
			c.writeCentered(centerX, termHeight/4, c.styles.banner.Render(b.text))
		}
	}
	c.drawPads(hud)
}

// writeText writes styled text at a canvas position and marks the covered
// cells so the canvas repaints them next frame.
func (c *Client) writeText(col, row int, s string) {
	if row < 1 || row > c.canvas.TerminalHeight() {
		return
	}
	col = max(col, 1)
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, lipgloss.Width(s))
}

func (c *Client) writeCentered(centerX, row int, s string) {
	c.writeText(centerX-lipgloss.Width(s)/2, row, s)
}

// writeBlock centers a multi-line block on (centerX, centerY).
func (c *Client) writeBlock(centerX, centerY int, block string) {
	lines := strings.Split(block, "\n")
	width := lipgloss.Width(block)
	top := centerY - len(lines)/2
	for i, line := range lines {
		c.writeText(centerX-width/2, top+i, line)
	}
}

// drawHUD draws score, best and level on the left and lives on the right.
// Numbers are padded so shrinking values don't leave residual characters.
func (c *Client) drawHUD(hud game.HUD, termWidth int) {
	s := c.styles
	left := s.hudLabel.Render("Score ") + s.hud.Render(fmt.Sprintf("%-7d", hud.Score)) +
		s.hudLabel.Render("Best ") + s.hud.Render(fmt.Sprintf("%-7d", hud.Best)) +
		s.hudLabel.Render("Level ") + s.hud.Render(fmt.Sprintf("%-3d", hud.Level))
	c.writeText(2, 1, left)

	lost := max(0, config.InitialLives-hud.Lives)
	lives := s.lives.Render(strings.Repeat("♥", hud.Lives)) + s.lost.Render(strings.Repeat("♡", lost))
	c.writeText(termWidth-lipgloss.Width(lives), 1, lives)
}

// drawPads draws the touch pads on the bottom row, highlighting held ones.
func (c *Client) drawPads(hud game.HUD) {
	layout := c.mapper.Layout
	if layout.Width == 0 {
		return
	}
	dir, fire := c.mapper.Touching()
	for _, p := range input.Pads {
		col, width := layout.Span(p)
		held := (p == input.PadLeft && dir < 0) || (p == input.PadRight && dir > 0) || (p == input.PadFire && fire)
		style := c.styles.pad
		if held && !hud.GameOver {
			style = c.styles.padHeld
		}
		c.writeText(col, layout.Row, style.Width(width).Render(p.Label()))
	}
}

// drawHelpScreen draws the controls and the skip-intro toggle.
func (c *Client) drawHelpScreen(centerX, centerY int) {
	s := c.styles
	check := "[ ]"
	if c.prefs.Flag(config.SkipIntroKey) {
		check = "[x]"
	}
	row := func(keys, action string) string {
		return s.key.Render(fmt.Sprintf("%-12s", keys)) + s.text.Render(action)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		s.title.Render("PLANET DEFENSE"),
		"",
		s.text.Render("Rocks are falling toward the planet."),
		s.text.Render("Shoot them down before they land."),
		"",
		row("A D / ← →", "move"),
		row("SPACE", "fire"),
		row("P", "pause"),
		row("R", "restart"),
		row("H", "this help"),
		row("Q / Esc", "quit"),
		"",
		s.dim.Render("Mouse: hold the pads on the bottom row."),
		"",
		s.text.Render(check+" skip this screen next time ")+s.key.Render("(S)"),
		"",
		s.banner.Render(">>  Press ENTER to start  <<"),
	)
	c.writeBlock(centerX, centerY, s.box.Render(body))
}

// drawGameOverScreen draws the final score and the restart prompt.
func (c *Client) drawGameOverScreen(hud game.HUD, centerX, centerY int, now time.Time) {
	s := c.styles
	c.writeCentered(centerX, centerY-3, s.title.Render("GAME OVER"))
	c.writeCentered(centerX, centerY-1, s.text.Render(fmt.Sprintf("Score %d   Best %d   Level %d", hud.Score, hud.Best, hud.Level)))
	if c.state.record {
		c.writeCentered(centerX, centerY, s.banner.Render("New record!"))
	}
	if now.UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, centerY+2, s.key.Render(">>  Press R or ENTER to play again  <<"))
	}
}

func (c *Client) drawPausedScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-1, c.styles.title.Render("PAUSED"))
	c.writeCentered(centerX, centerY+1, c.styles.dim.Render("Press P to resume"))
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int, now time.Time) {
	c.writeCentered(centerX, centerY-2, c.styles.title.Render("INACTIVITY WARNING"))

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-now.Sub(c.lastInput).Seconds()),
	)
	c.writeCentered(centerX, centerY, c.styles.text.Render(msg))
	c.writeCentered(centerX, centerY+2, c.styles.dim.Render("Press any key to continue"))
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	s := c.styles
	c.writeCentered(centerX, centerY-3, s.title.Render("SERVER SHUTTING DOWN"))
	c.writeCentered(centerX, centerY-1, s.text.Render("The server is restarting for maintenance."))
	c.writeCentered(centerX, centerY, s.text.Render("Your best score is saved. Please reconnect in a moment."))

	remaining := int(c.state.shutdownTimer) + 1
	c.writeCentered(centerX, centerY+2, s.text.Render(fmt.Sprintf("Disconnecting in %d seconds...", remaining)))
	c.writeCentered(centerX, centerY+4, s.dim.Render("Press Q to disconnect now"))
}

// noticeText formats a game notice for the banner.
func noticeText(n game.Notice) string {
	switch n.Kind {
	case game.NoticeWelcome:
		return "Protect the planet!"
	case game.NoticeLevelUp:
		return fmt.Sprintf("Level %d", n.Level)
	case game.NoticeImpact:
		if n.Lives == 1 {
			return "Impact! Last life"
		}
		return fmt.Sprintf("Impact! %d lives left", n.Lives)
	case game.NoticeRecord:
		return fmt.Sprintf("New record: %d", n.Score)
	case game.NoticeGameOver:
		return fmt.Sprintf("Game over: %d points", n.Score)
	default:
		return ""
	}
}
