// Package client runs one terminal connection against a game server:
// input, screens and frame pacing.
package client

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/rocketarena/internal/draw"
	"github.com/tomz197/rocketarena/internal/input"
	"github.com/tomz197/rocketarena/internal/loop/config"
	"github.com/tomz197/rocketarena/internal/loop/server"
	"github.com/tomz197/rocketarena/internal/physics"
	"github.com/tomz197/rocketarena/internal/render"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	arena        physics.Arena
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	renderer     *render.Terminal
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	log          *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Arena        physics.Arena
	Logger       *log.Logger
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r io.ByteReader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	arena := opts.Arena
	if arena.Width <= 0 || arena.Height <= 0 {
		arena = physics.Arena{Width: config.DefaultArenaWidth, Height: config.DefaultArenaHeight}
	}

	username := opts.Username
	if len(username) > config.MaxUsernameLength {
		username = username[:config.MaxUsernameLength]
	}

	handle := gs.RegisterClient(username)

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := draw.FitArena(termWidth, termHeight, arena.Width, arena.Height, config.MaxTermWidth)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, arena.Width, arena.Height)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	return &Client{
		server:       gs,
		handle:       handle,
		state:        NewClientState(),
		arena:        arena,
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		renderer:     render.NewTerminal(canvas, chunkWriter),
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		log:          logger.With("client", handle.ID),
	}
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)
	defer c.server.UnregisterClient(c.handle.ID)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()

		switch c.state.GameState {
		case GameStateStart:
			c.updateStartState()
		case GameStatePlaying:
			c.updatePlayingState()
		case GameStateShutdown:
			c.updateShutdownState()
		}

		if err := c.drawFrame(); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input and sends the ship's control record to the server.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.log.Info("disconnecting inactive client")
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}

	if c.state.GameState == GameStatePlaying && c.state.Ship >= 0 {
		c.server.SendControl(c.handle.ID, c.state.Input.Control(c.state.Ship))
	}
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
			switch event.Type {
			case server.EventRoundCleared:
				c.state.Round = event.Round
				c.showBanner(fmt.Sprintf("All clear! Round %d incoming", event.Round))
			case server.EventWaveSpawned:
				c.state.Round = event.Round
			case server.EventServerShutdown:
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

func (c *Client) showBanner(text string) {
	c.state.banner = text
	c.state.bannerTimer = 3
}

// updateScreen handles terminal resize, fitting the arena and centering it.
// On actual size changes, clears the terminal to remove residual cells
// outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := draw.FitArena(termWidth, termHeight, c.arena.Width, c.arena.Height, config.MaxTermWidth)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.Resize(renderWidth, renderHeight)
		c.canvas.SetOffset(offsetCol, offsetRow)
		c.chunkWriter.SetOffset(offsetCol, offsetRow)
		c.canvas.ForceRedraw()
	}
}

// updateStartState handles the start screen.
func (c *Client) updateStartState() {
	if c.state.Input.Space || c.state.Input.Enter {
		c.startGame()
	}
}

// updatePlayingState ticks the banner timer.
func (c *Client) updatePlayingState() {
	if c.state.bannerTimer > 0 {
		c.state.bannerTimer -= c.state.delta.Seconds()
		if c.state.bannerTimer <= 0 {
			c.state.banner = ""
		}
	}
}

// startGame asks the server for a ship and switches to the arena view.
func (c *Client) startGame() {
	input.ResetKeyInput(c.inputStream)

	ship := c.server.SpawnShip(c.handle.ID)
	if ship < 0 {
		return // Not registered yet; retry next frame
	}
	c.state.Ship = ship
	c.renderer.SetViewer(ship)
	c.state.GameState = GameStatePlaying
	c.log.Debug("joined arena", "ship", ship)
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
