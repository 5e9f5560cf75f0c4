// Package controls turns raw device state into ship controls and keeps
// track of which input device flies which ship.
package controls

import (
	"math"

	"github.com/tomz197/rocketarena/internal/sim"
)

// Deadzone is the analog magnitude below which sticks and triggers read 0.
const Deadzone = 0.2

// Pad is the device-neutral state of one input source for a frame.
type Pad struct {
	Left, Right bool
	Thrust      bool
	Shield      bool
	Fire        bool
	Stick       float64 // Horizontal axis, [-1, 1]
	Trigger     float64 // Throttle axis, [0, 1]
}

// Control maps the pad to a control record for ship.
func (p Pad) Control(ship int) sim.Control {
	steer := deadzone(p.Stick)
	if p.Left {
		steer--
	}
	if p.Right {
		steer++
	}
	throttle := deadzone(p.Trigger)
	if p.Thrust {
		throttle = 1
	}
	return sim.Control{
		Ship:     ship,
		Steer:    max(-1, min(1, steer)),
		Throttle: max(0, min(1, throttle)),
		Shield:   p.Shield,
		Fire:     p.Fire,
	}
}

func deadzone(v float64) float64 {
	if math.Abs(v) < Deadzone || math.IsNaN(v) {
		return 0
	}
	return v
}

// Roster binds input sources to ship indices.
type Roster struct {
	seats map[string]int
	order []string
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{seats: make(map[string]int)}
}

// Join seats source, creating its ship with spawn on first call.
func (r *Roster) Join(source string, spawn func() int) int {
	if ship, ok := r.seats[source]; ok {
		return ship
	}
	ship := spawn()
	r.seats[source] = ship
	r.order = append(r.order, source)
	return ship
}

// Leave unseats source and hands its ship to remove.
func (r *Roster) Leave(source string, remove func(int)) {
	ship, ok := r.seats[source]
	if !ok {
		return
	}
	delete(r.seats, source)
	for i, s := range r.order {
		if s == source {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	remove(ship)
}

// Ship returns the ship flown by source.
func (r *Roster) Ship(source string) (int, bool) {
	ship, ok := r.seats[source]
	return ship, ok
}

// Sources returns the seated sources in join order.
func (r *Roster) Sources() []string {
	return r.order
}
