// Package config centralizes the tunables of the hosting layer. Simulation
// constants live in the sim package.
package config

import "time"

// Arena dimensions in world units. Terminal rendering scales to fit.
const (
	DefaultArenaWidth  = 960.0
	DefaultArenaHeight = 640.0
)

// Terminal render area cap in columns; wider terminals get a border.
const MaxTermWidth = 200

// Player
const (
	MaxUsernameLength = 16
)

// ShipColors is the bolt color cycle, one per ship index.
var ShipColors = []string{"red", "blue", "green", "yellow", "magenta", "cyan", "orange", "white"}

// ShipColor returns the color for the ship at index.
func ShipColor(index int) string {
	if index < 0 {
		return ShipColors[0]
	}
	return ShipColors[index%len(ShipColors)]
}

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
	ShutdownTimeout        = 15 * time.Second
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 30
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Server tick rate and the elapsed-time clamp applied before each step.
const (
	ServerTickRate = 60
	MaxFrameTime   = 100 * time.Millisecond
)
