package client

import (
	"fmt"
	"time"

	"github.com/tomz197/rocketarena/internal/loop/config"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On screen or inactivity transitions, do a full terminal clear
	// so UI elements from the previous screen don't persist.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	snapshot := c.server.GetSnapshot()
	if err := c.renderer.Frame(snapshot.Snapshot); err != nil {
		return err
	}

	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}

	c.drawUI(snapshot.Players)

	return c.chunkWriter.Flush()
}

// drawUI draws the screen overlay for the current state.
func (c *Client) drawUI(players int) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.GameState {
	case GameStatePlaying:
		c.drawPlayingHUD(termWidth, termHeight, players)
	case GameStateStart:
		c.drawStartScreen(centerX, centerY)
	}
}

// centered writes text centered on column centerX and marks it for repaint.
func (c *Client) centered(centerX, row int, text string) {
	col := max(centerX-len(text)/2, 1)
	c.chunkWriter.WriteAt(col, row, text)
	c.canvas.MarkTextDirty(col, row, len(text))
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.centered(centerX, centerY-2, "INACTIVITY WARNING")
	c.centered(centerX, centerY, fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	))
	c.centered(centerX, centerY+2, "Press any key to continue")
}

// drawStartScreen draws the title screen over the live arena.
func (c *Client) drawStartScreen(centerX, centerY int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		` ___  ___   ___ _  _____ _____    _   ___ ___ _  _   _   `,
		`| _ \/ _ \ / __| |/ / __|_   _|  /_\ | _ \ __| \| | /_\  `,
		`|   / (_) | (__| ' <| _|  | |   / _ \|   / _|| .' |/ _ \ `,
		`|_|_\\___/ \___|_|\_\___| |_|  /_/ \_\_|_\___|_|\_/_/ \_\`,
	}

	titleStartY := centerY - 7
	for i, line := range titleArt {
		c.centered(centerX, titleStartY+i, line)
	}

	c.centered(centerX, titleStartY+len(titleArt)+1, "~ Shared-arena rocket shooter ~")

	controlsY := titleStartY + len(titleArt) + 3
	c.centered(centerX, controlsY, "Controls")
	controlLines := []string{
		"A D / < >  . . .  Steer",
		"W / Up  . . . .  Thrust",
		"S / Down  . . .  Shield",
		"SPACE  . . . . . . Fire",
		"Q  . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		c.centered(centerX, controlsY+1+i, line)
	}

	// Blinking start prompt
	prompt := ">>  Press SPACE to Launch  <<"
	if time.Now().UnixMilli()/600%2 != 0 {
		prompt = "                             "
	}
	c.centered(centerX, controlsY+len(controlLines)+2, prompt)
}

// drawPlayingHUD draws the connection HUD. Per-ship score lines are drawn
// by the renderer at each ship's score position.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth, termHeight, players int) {
	playersText := fmt.Sprintf("Players: %-4d", players)
	col := max(termWidth-len(playersText)-1, 1)
	c.chunkWriter.WriteAt(col, 1, playersText)
	c.canvas.MarkTextDirty(col, 1, len(playersText))

	if c.state.banner != "" {
		c.centered(termWidth/2, termHeight/2+4, c.state.banner)
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.centered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	c.centered(centerX, centerY-1, "The server is restarting for maintenance.")
	c.centered(centerX, centerY, "Please reconnect in a moment.")
	remaining := int(c.state.shutdownTimer) + 1
	c.centered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	c.centered(centerX, centerY+4, "Press Q to disconnect now")
}
