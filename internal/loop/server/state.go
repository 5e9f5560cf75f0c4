package server

import (
	"time"

	"github.com/tomz197/rocketarena/internal/sim"
)

// WorldSnapshot is an immutable view of the hosted world for rendering.
// It is never mutated after it is published.
type WorldSnapshot struct {
	sim.Snapshot
	Players int           // Connected clients
	Tick    uint64        // Number of steps taken so far
	Delta   time.Duration // Elapsed time fed to the last step
}

// Ship returns the snapshot of the ship with the given index.
func (s *WorldSnapshot) Ship(index int) (sim.EntitySnapshot, bool) {
	if index < 0 {
		return sim.EntitySnapshot{}, false
	}
	for _, e := range s.Entities {
		if e.Kind == sim.KindShip && e.ShipIndex == index {
			return e, true
		}
	}
	return sim.EntitySnapshot{}, false
}

// Count returns the number of entities of the given kind.
func (s *WorldSnapshot) Count(kind sim.Kind) int {
	n := 0
	for _, e := range s.Entities {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
