package sim

// Award credits points to a ship that may no longer exist.
type Award struct {
	Owner  ID
	Points int
}

// Outcome is what one side of a collision produces.
type Outcome struct {
	Spawned []*Entity
	Award   *Award
}

// OnCollision reacts to touching an entity of kind other. It only ever
// reads the other side's tag, so both sides of a pair see each other's
// pre-collision state regardless of call order.
func (e *Entity) OnCollision(other Kind, sp *Spawner) Outcome {
	switch e.Kind {
	case KindHazard:
		return e.hazardHit(other, sp)
	case KindProjectile:
		return e.projectileHit(other, sp)
	case KindShip:
		return e.shipHit(other, sp)
	}
	return Outcome{}
}

func (e *Entity) hazardHit(other Kind, sp *Spawner) Outcome {
	if other != KindProjectile && other != KindShip {
		return Outcome{}
	}
	e.Expire()
	return Outcome{Spawned: sp.FragmentPair(e.Hazard.Size, e.Position, e.Velocity)}
}

func (e *Entity) projectileHit(other Kind, sp *Spawner) Outcome {
	if other != KindHazard && other != KindShip {
		return Outcome{}
	}
	e.Expire()
	return Outcome{
		Spawned: []*Entity{sp.Effect(e.Position)},
		Award:   &Award{Owner: e.Projectile.Owner, Points: ScoreHit},
	}
}

func (e *Entity) shipHit(other Kind, sp *Spawner) Outcome {
	s := e.Ship
	switch other {
	case KindHazard:
		if !s.ShieldActive() {
			s.Damage += DamageFromHazard
		}
		return Outcome{Spawned: []*Entity{sp.Effect(e.Position)}}
	case KindProjectile:
		if s.ShieldActive() {
			s.absorb(AbsorbProjectile)
		} else {
			s.Damage += DamageFromProjectile
		}
	case KindShip:
		if s.ShieldActive() {
			s.absorb(AbsorbShip)
		} else {
			s.Damage += DamageFromShip
		}
	}
	return Outcome{}
}
