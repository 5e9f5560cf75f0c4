package sim

import (
	"strconv"

	"github.com/tomz197/rocketarena/internal/physics"
	"github.com/tomz197/rocketarena/internal/vmath"
)

// Spawner builds new entities from templates plus randomized parameters.
// Entities it returns carry no ID until the World adopts them.
type Spawner struct {
	rng Rand
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(rng Rand) *Spawner {
	return &Spawner{rng: rng}
}

// uniform returns a value in [lo, hi).
func (s *Spawner) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.rng.Float64()
}

// Hazard creates a hazard of the given size.
func (s *Spawner) Hazard(size HazardSize, position, velocity vmath.Vector) *Entity {
	return &Entity{
		Kind:     KindHazard,
		Position: position,
		Velocity: velocity,
		Hazard: &HazardState{
			Size: size,
			Spin: s.uniform(-HazardSpinMax, HazardSpinMax),
		},
	}
}

// FragmentPair splits a parent hazard into two hazards one class smaller at
// the parent's position. Each fragment receives the parent velocity plus an
// impulse along the perpendicular of the parent's heading, rotated by up to
// ±45°. A stationary parent uses +X as its heading. Small parents yield nil.
func (s *Spawner) FragmentPair(size HazardSize, position, velocity vmath.Vector) []*Entity {
	child := size.smaller()
	if child == 0 {
		return nil
	}

	scale := 1.0
	if child == HazardSmall {
		scale = SmallFragmentBoost
	}

	dir := velocity.Normalize()
	if dir == vmath.Zero {
		dir = vmath.New(1, 0)
	}
	perp := dir.Perp()

	fragments := make([]*Entity, 0, 2)
	for i := 0; i < 2; i++ {
		angle := s.uniform(-FragmentSpread, FragmentSpread)
		magnitude := s.uniform(FragmentImpulseMin, FragmentImpulseMax) * scale
		impulse := perp.Rotate(angle).Scale(magnitude)
		fragments = append(fragments, s.Hazard(child, position, velocity.Add(impulse)))
	}
	return fragments
}

// Effect creates an explosion at position.
func (s *Spawner) Effect(position vmath.Vector) *Entity {
	return &Entity{
		Kind:     KindEffect,
		Position: position,
		Timer:    &TimerState{},
	}
}

// Announcement creates a transient text entity.
func (s *Spawner) Announcement(position vmath.Vector, text string) *Entity {
	return &Entity{
		Kind:     KindAnnouncement,
		Position: position,
		Timer:    &TimerState{Text: text},
	}
}

// Countdown creates the between-rounds countdown starting at CountdownStart.
func (s *Spawner) Countdown(position vmath.Vector) *Entity {
	c := &Entity{
		Kind:     KindCountdown,
		Position: position,
		Timer:    &TimerState{Count: CountdownStart},
	}
	c.Timer.Text = strconv.Itoa(CountdownStart)
	return c
}

// Projectile creates a bullet owned by the ship with ID owner.
func (s *Spawner) Projectile(owner ID, origin, velocity vmath.Vector, color string) *Entity {
	return &Entity{
		Kind:     KindProjectile,
		Position: origin,
		Velocity: velocity,
		Projectile: &ProjectileState{
			Start: origin,
			Owner: owner,
			Color: color,
		},
	}
}

// Ship creates a stationary ship pointing up.
func (s *Spawner) Ship(position, scorePos vmath.Vector, color string) *Entity {
	return &Entity{
		Kind:     KindShip,
		Position: position,
		Ship: &ShipState{
			Color:       color,
			ScorePos:    scorePos,
			shotPending: true,
		},
	}
}

// Wave creates count Large hazards at uniformly random positions. Each
// velocity component is drawn independently from [0, maxSpeed), so waves
// drift toward +X/+Y.
func (s *Spawner) Wave(count int, arena physics.Arena, maxSpeed float64) []*Entity {
	if count <= 0 {
		return nil
	}
	hazards := make([]*Entity, 0, count)
	for i := 0; i < count; i++ {
		position := vmath.New(s.uniform(0, arena.Width), s.uniform(0, arena.Height))
		velocity := vmath.New(s.uniform(0, maxSpeed), s.uniform(0, maxSpeed))
		hazards = append(hazards, s.Hazard(HazardLarge, position, velocity))
	}
	return hazards
}
