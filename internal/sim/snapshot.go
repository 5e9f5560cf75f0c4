package sim

import (
	"github.com/tomz197/rocketarena/internal/physics"
	"github.com/tomz197/rocketarena/internal/vmath"
)

// EntitySnapshot is a read-only copy of what a renderer needs to draw one
// entity. Fields that do not apply to the entity's kind are zero.
type EntitySnapshot struct {
	ID       ID
	Kind     Kind
	Position vmath.Vector
	Rotation float64
	Radius   float64

	Size HazardSize

	ShipIndex    int
	Score        int
	Damage       int
	Thrusting    bool
	ShieldActive bool
	ShieldCharge float64 // Fraction of MaxShieldTime
	BurstHeat    float64 // Fraction of MaxBurstTime
	ScorePos     vmath.Vector

	Color string // Ship and projectile bolt color
	Age   float64
	Text  string
}

// Snapshot is an immutable view of the whole world.
type Snapshot struct {
	Round    int
	Phase    Phase
	Arena    physics.Arena
	Entities []EntitySnapshot
}

// Drawable is the rendering collaborator. DrawEntity is called once per
// live entity per draw pass.
type Drawable interface {
	DrawEntity(EntitySnapshot)
}

// Draw offers every live entity to d in live-set order.
func (w *World) Draw(d Drawable) {
	for _, e := range w.live {
		d.DrawEntity(e.snapshot())
	}
}

// Draw offers every entity in the snapshot to d in live-set order.
func (s Snapshot) Draw(d Drawable) {
	for _, e := range s.Entities {
		d.DrawEntity(e)
	}
}

// Snapshot copies the world state, reusing buf's backing array when it
// is large enough.
func (w *World) Snapshot(buf []EntitySnapshot) Snapshot {
	buf = buf[:0]
	for _, e := range w.live {
		buf = append(buf, e.snapshot())
	}
	return Snapshot{
		Round:    w.round,
		Phase:    w.phase,
		Arena:    w.arena,
		Entities: buf,
	}
}

func (e *Entity) snapshot() EntitySnapshot {
	s := EntitySnapshot{
		ID:       e.ID,
		Kind:     e.Kind,
		Position: e.Position,
		Rotation: e.Rotation,
		Radius:   e.Radius(),
	}
	switch e.Kind {
	case KindHazard:
		s.Size = e.Hazard.Size
	case KindShip:
		sh := e.Ship
		s.ShipIndex = sh.Index
		s.Score = sh.Score
		s.Damage = sh.Damage
		s.Thrusting = sh.Thrust > 0
		s.ShieldActive = sh.ShieldActive()
		s.ShieldCharge = sh.ShieldTime / MaxShieldTime
		s.BurstHeat = sh.BurstTime / MaxBurstTime
		s.ScorePos = sh.ScorePos
		s.Color = sh.Color
	case KindProjectile:
		s.Color = e.Projectile.Color
	case KindEffect, KindAnnouncement, KindCountdown:
		s.Age = e.Timer.Age
		s.Text = e.Timer.Text
	}
	return s
}
