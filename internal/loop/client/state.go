package client

import (
	"time"

	"github.com/tomz197/rocketarena/internal/input"
)

// GameState represents the current screen for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds per-connection state (input, ship, screen timers).
// Each client has its own instance, managed by the Client.
type ClientState struct {
	Input         input.Input
	GameState     GameState
	Ship          int // Ship index, -1 before spawning
	Running       bool
	Round         int     // Last round announced by the server
	banner        string  // Transient message under the HUD
	bannerTimer   float64 // Seconds left to show banner
	delta         time.Duration
	shutdownTimer float64 // Countdown before auto-disconnect on shutdown
	isInactive    bool
	prevGameState GameState
	wasInactive   bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState: GameStateStart,
		Ship:      -1,
		Running:   true,
		Round:     1,
	}
}
