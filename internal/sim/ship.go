package sim

import (
	"math"

	"github.com/tomz197/rocketarena/internal/vmath"
)

// Control is one frame of intents for a ship, addressed by ship index.
type Control struct {
	Ship     int
	Steer    float64 // [-1, 1]; clamped
	Throttle float64 // [0, 1]; values outside are ignored
	Shield   bool
	Fire     bool
}

// ShipState is the rocket payload.
type ShipState struct {
	Index      int
	Score      int
	Damage     int
	Thrust     float64 // [0, MaxThrust]
	ShieldOn   bool
	ShieldTime float64 // [0, MaxShieldTime]
	SinceShot  float64
	BurstTime  float64 // [0, MaxBurstTime]
	Color      string
	ScorePos   vmath.Vector

	shotPending bool // Shot timing restarted; next shot does not wait
}

// Heading is the unit vector the ship points at. Rotation 0 faces -Y.
func Heading(rotation float64) vmath.Vector {
	return vmath.FromAngle(rotation - math.Pi/2)
}

// ShieldActive reports whether the shield currently absorbs hits: it must
// be switched on and its charge strictly between empty and saturated.
func (s *ShipState) ShieldActive() bool {
	return s.ShieldOn && s.ShieldTime > 0 && s.ShieldTime < MaxShieldTime
}

// chargeShield moves the charge toward MaxShieldTime while the shield is on
// and toward zero while it is off.
func (s *ShipState) chargeShield(dt float64) {
	if s.ShieldOn {
		s.ShieldTime = math.Min(s.ShieldTime+dt, MaxShieldTime)
	} else {
		s.ShieldTime = math.Max(s.ShieldTime-dt, 0)
	}
}

func (s *ShipState) absorb(charge float64) {
	s.ShieldTime = math.Min(s.ShieldTime+charge, MaxShieldTime)
}

// applyControl turns one input record into thrust, rotation, shield and
// weapon state. It returns a projectile when a shot is fired.
func (e *Entity) applyControl(c Control, dt float64, sp *Spawner) *Entity {
	s := e.Ship

	if c.Throttle >= 0 && c.Throttle <= 1 {
		s.Thrust = MaxThrust * c.Throttle
	}
	if !math.IsNaN(c.Steer) {
		e.Rotation += math.Max(-1, math.Min(1, c.Steer)) * SteerPerUpdate
	}
	e.Accel = Heading(e.Rotation).Scale(s.Thrust)

	s.ShieldOn = c.Shield
	s.chargeShield(dt)

	if !c.Fire {
		s.SinceShot = 0
		s.shotPending = true
		s.BurstTime = math.Max(s.BurstTime-dt, 0)
		return nil
	}

	s.BurstTime = math.Min(s.BurstTime+dt, MaxBurstTime)
	if (s.shotPending || s.SinceShot > FireInterval) && s.BurstTime < MaxBurstTime {
		s.shotPending = false
		s.SinceShot = 0
		dir := Heading(e.Rotation)
		origin := e.Position.Add(dir.Scale(ProjectileMuzzle))
		velocity := dir.Scale(ProjectileSpeed).Add(e.Velocity)
		return sp.Projectile(e.ID, origin, velocity, s.Color)
	}
	s.SinceShot += dt
	return nil
}
