// Package sim implements the arena simulation: the entity model, the
// per-frame update pipeline, collision detection and resolution, ship
// control and the round progression.
//
// A World is not safe for concurrent use. It owns its live set
// exclusively; callers interact through Step, CreateShip, RemoveShip,
// Draw and Snapshot.
package sim

import (
	"strconv"

	"github.com/tomz197/rocketarena/internal/physics"
	"github.com/tomz197/rocketarena/internal/vmath"
)

// Kind is the closed set of entity variants.
type Kind int

const (
	KindHazard Kind = iota
	KindShip
	KindProjectile
	KindEffect
	KindAnnouncement
	KindCountdown
)

var kindNames = [...]string{
	KindHazard:       "hazard",
	KindShip:         "ship",
	KindProjectile:   "projectile",
	KindEffect:       "effect",
	KindAnnouncement: "announcement",
	KindCountdown:    "countdown",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// HazardSize is the size class of a hazard.
type HazardSize int

const (
	HazardSmall HazardSize = iota + 1
	HazardMedium
	HazardLarge
)

// smaller returns the size one class down, or 0 for Small.
func (s HazardSize) smaller() HazardSize {
	if s <= HazardSmall {
		return 0
	}
	return s - 1
}

// ID is a stable entity identifier. IDs are never reused within a World;
// resolving an ID whose entity is gone yields nothing.
type ID uint64

// Entity is one simulated object. Exactly one of the variant payloads
// matching Kind is non-nil; Kind never changes after creation.
type Entity struct {
	ID       ID
	Kind     Kind
	Position vmath.Vector
	Velocity vmath.Vector
	Accel    vmath.Vector
	Rotation float64

	expired bool

	Hazard     *HazardState
	Ship       *ShipState
	Projectile *ProjectileState
	Timer      *TimerState // Effect, Announcement and Countdown
}

// HazardState is the asteroid payload.
type HazardState struct {
	Size HazardSize
	Spin float64 // Radians/sec, cosmetic
}

// ProjectileState is the bullet payload.
type ProjectileState struct {
	Start    vmath.Vector
	Traveled float64
	Owner    ID
	Color    string
}

// TimerState is the payload of the age-driven, non-colliding variants.
type TimerState struct {
	Age   float64
	Text  string
	Count int // Countdown only
}

// Event is a request an entity raises toward the owning World during
// integration.
type Event int

const (
	EventNone Event = iota
	EventSpawnWave
)

// Type returns the variant tag.
func (e *Entity) Type() Kind {
	return e.Kind
}

// Radius returns the collision radius for the entity's variant.
func (e *Entity) Radius() float64 {
	switch e.Kind {
	case KindHazard:
		return hazardRadii[e.Hazard.Size]
	case KindShip:
		return ShipRadius
	case KindProjectile:
		return ProjectileRadius
	default:
		return MarkerRadius
	}
}

// Collidable reports whether the entity takes part in collision detection.
// Effects, announcements and countdowns never collide, nor does anything
// with a non-positive radius.
func (e *Entity) Collidable() bool {
	switch e.Kind {
	case KindHazard, KindShip, KindProjectile:
		return e.Radius() > 0
	default:
		return false
	}
}

// Expire flags the entity for removal. The flag is never cleared.
func (e *Entity) Expire() {
	e.expired = true
}

// IsExpired reports whether the entity should leave the live set.
func (e *Entity) IsExpired() bool {
	if e.expired {
		return true
	}
	switch e.Kind {
	case KindProjectile:
		return e.Projectile.Traveled > ProjectileRange
	case KindEffect:
		return e.Timer.Age > EffectLifetime
	case KindAnnouncement:
		return e.Timer.Age > AnnouncementLifetime
	case KindCountdown:
		return e.Timer.Count <= CountdownTerminal
	}
	return false
}

// Distance returns the distance between the centers of a and b.
func Distance(a, b *Entity) float64 {
	return a.Position.Distance(b.Position)
}

// Integrate advances the entity by dt seconds inside arena.
// A countdown reaching its terminal count returns EventSpawnWave exactly once.
func (e *Entity) Integrate(dt float64, arena physics.Arena) Event {
	switch e.Kind {
	case KindHazard:
		e.move(dt, arena)
		e.Rotation += e.Hazard.Spin * dt
	case KindShip:
		e.move(dt, arena)
		e.Ship.chargeShield(dt)
	case KindProjectile:
		e.move(dt, arena)
		e.Projectile.Traveled += e.Velocity.Length() * dt
	case KindEffect, KindAnnouncement:
		e.Timer.Age += dt
	case KindCountdown:
		return e.tickCountdown(dt)
	}
	return EventNone
}

func (e *Entity) move(dt float64, arena physics.Arena) {
	e.Position, e.Velocity = physics.Integrate(e.Position, e.Velocity, e.Accel, dt)
	e.Position = arena.Wrap(e.Position)
}

func (e *Entity) tickCountdown(dt float64) Event {
	t := e.Timer
	if t.Count <= CountdownTerminal {
		return EventNone
	}
	t.Age += dt
	for t.Age >= 1 && t.Count > CountdownTerminal {
		t.Age--
		t.Count--
		t.Text = strconv.Itoa(t.Count)
	}
	if t.Count == CountdownTerminal {
		return EventSpawnWave
	}
	return EventNone
}
