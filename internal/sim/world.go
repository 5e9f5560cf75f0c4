package sim

import (
	"math"

	"github.com/tomz197/rocketarena/internal/physics"
	"github.com/tomz197/rocketarena/internal/vmath"
)

// World owns the live set and runs the frame pipeline.
type World struct {
	arena   physics.Arena
	spawner *Spawner

	live    []*Entity
	byID    map[ID]*Entity
	nextID  ID
	pending []*Entity // Collision spawns, merged after the pass

	ships []ID // Ship index -> entity ID; indices are never reused

	round int
	phase Phase
}

// Report summarizes one Step for logging and HUDs.
type Report struct {
	Round        int
	Phase        Phase
	RoundCleared bool // A countdown started this frame
	WaveSpawned  bool
	Shots        int
	Collisions   int
	Live         int
}

// NewWorld creates an empty world at round 1.
func NewWorld(arena physics.Arena, rng Rand) *World {
	return &World{
		arena:   arena,
		spawner: NewSpawner(rng),
		byID:    make(map[ID]*Entity),
		round:   1,
		phase:   PhasePlaying,
	}
}

// Arena returns the world bounds.
func (w *World) Arena() physics.Arena {
	return w.arena
}

// Round returns the current round number, starting at 1.
func (w *World) Round() int {
	return w.round
}

// Phase returns the current round phase.
func (w *World) Phase() Phase {
	return w.phase
}

// Len returns the size of the live set.
func (w *World) Len() int {
	return len(w.live)
}

// Start spawns the wave for the current round if the arena is empty of
// hazards and no countdown is running. Without it the first Step clears
// round 1 immediately and counts down into round 2.
func (w *World) Start() {
	if w.phase != PhasePlaying {
		return
	}
	if hazards, countdowns := w.census(); hazards > 0 || countdowns > 0 {
		return
	}
	w.spawnWave()
}

// CreateShip adds a ship with the given bolt color and returns its index.
func (w *World) CreateShip(color string) int {
	n := len(w.ships)
	position := w.arena.Wrap(vmath.New(w.arena.Width/3+float64(n)*50, 200))
	scorePos := vmath.New(50+float64(n)*150, 50)
	ship := w.spawner.Ship(position, scorePos, color)
	ship.Ship.Index = n
	w.adopt(ship)
	w.ships = append(w.ships, ship.ID)
	return n
}

// RemoveShip expires the ship at index. Unknown indices are ignored.
func (w *World) RemoveShip(index int) {
	if ship := w.shipAt(index); ship != nil {
		ship.Expire()
	}
}

// ShipCount returns the number of ships ever created.
func (w *World) ShipCount() int {
	return len(w.ships)
}

// Ship returns a snapshot of the ship at index, if it is still live.
func (w *World) Ship(index int) (EntitySnapshot, bool) {
	ship := w.shipAt(index)
	if ship == nil {
		return EntitySnapshot{}, false
	}
	return ship.snapshot(), true
}

// Step advances the world by dt seconds. Negative or non-finite dt is
// treated as zero. Controls naming unknown or removed ships are ignored.
func (w *World) Step(dt float64, controls []Control) Report {
	if !(dt > 0) || math.IsInf(dt, 1) {
		dt = 0
	}
	var r Report

	for _, c := range controls {
		ship := w.shipAt(c.Ship)
		if ship == nil {
			continue
		}
		if p := ship.applyControl(c, dt, w.spawner); p != nil {
			p.Position = w.arena.Wrap(p.Position)
			w.adopt(p)
			r.Shots++
		}
	}

	waves := 0
	for _, e := range w.live {
		if e.Integrate(dt, w.arena) == EventSpawnWave {
			waves++
		}
	}
	for ; waves > 0; waves-- {
		w.spawnWave()
		r.WaveSpawned = true
	}

	w.purge()
	r.RoundCleared = w.checkCleared()
	r.Collisions = w.resolveCollisions()

	r.Round = w.round
	r.Phase = w.phase
	r.Live = len(w.live)
	return r
}

// adopt assigns an ID and appends e to the live set.
func (w *World) adopt(e *Entity) {
	w.nextID++
	e.ID = w.nextID
	w.live = append(w.live, e)
	w.byID[e.ID] = e
}

// lookup resolves a stable ID. Gone entities resolve to nil.
func (w *World) lookup(id ID) *Entity {
	e, ok := w.byID[id]
	if !ok || e.IsExpired() {
		return nil
	}
	return e
}

func (w *World) shipAt(index int) *Entity {
	if index < 0 || index >= len(w.ships) {
		return nil
	}
	return w.lookup(w.ships[index])
}

// purge removes expired entities, keeping order.
func (w *World) purge() {
	kept := w.live[:0]
	for _, e := range w.live {
		if e.IsExpired() {
			delete(w.byID, e.ID)
			continue
		}
		kept = append(kept, e)
	}
	clear(w.live[len(kept):])
	w.live = kept
}

// liveSet adapts the live set to physics.Collider.
type liveSet []*Entity

func (l liveSet) Len() int { return len(l) }

func (l liveSet) Circle(i int) (vmath.Vector, float64, bool) {
	e := l[i]
	return e.Position, e.Radius(), e.Collidable()
}

// resolveCollisions detects overlapping pairs on the current live set, then
// resolves them in order. A pair is skipped if either side already expired
// earlier in this pass. Spawns join the live set only after the pass.
func (w *World) resolveCollisions() int {
	pairs := physics.Overlaps(liveSet(w.live))
	resolved := 0
	for _, p := range pairs {
		a, b := w.live[p.I], w.live[p.J]
		if a.IsExpired() || b.IsExpired() {
			continue
		}
		ka, kb := a.Kind, b.Kind
		oa := a.OnCollision(kb, w.spawner)
		ob := b.OnCollision(ka, w.spawner)
		w.pending = append(w.pending, oa.Spawned...)
		w.pending = append(w.pending, ob.Spawned...)
		w.credit(oa.Award)
		w.credit(ob.Award)
		resolved++
	}

	for _, e := range w.pending {
		w.adopt(e)
	}
	clear(w.pending)
	w.pending = w.pending[:0]
	return resolved
}

// credit applies an award; an owner that is gone or not a ship is a no-op.
func (w *World) credit(a *Award) {
	if a == nil {
		return
	}
	owner := w.lookup(a.Owner)
	if owner == nil || owner.Kind != KindShip {
		return
	}
	owner.Ship.Score += a.Points
}
