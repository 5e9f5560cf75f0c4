package sim

import "math"

// Ship
const (
	ShipRadius     = 20.0
	MaxThrust      = 100.0 // Acceleration at full throttle (units/s²)
	SteerPerUpdate = 0.1   // Radians added per control update at steer = 1
	MaxShieldTime  = 2.0   // Seconds; a saturated shield stops protecting
	MaxBurstTime   = 2.5   // Seconds of continuous fire before overheating
	FireInterval   = 0.2   // Minimum seconds between shots while fire is held
)

// Projectiles
const (
	ProjectileRadius = 3.0
	ProjectileSpeed  = 250.0 // Muzzle speed added to the ship's velocity
	ProjectileMuzzle = 25.0  // Spawn offset ahead of the ship center
	ProjectileRange  = 700.0 // Travel distance before the projectile expires
)

// Hazards
const (
	FragmentImpulseMin = 30.0
	FragmentImpulseMax = 80.0
	FragmentSpread     = math.Pi / 4 // Max deviation from the perpendicular
	SmallFragmentBoost = 2.0         // Impulse multiplier for Medium -> Small
	HazardSpinMax      = 1.0         // Radians/sec
)

// Effects, announcements and countdowns
const (
	MarkerRadius         = 10.0
	EffectLifetime       = 1.0
	AnnouncementLifetime = 3.0
	CountdownStart       = 5
	CountdownTerminal    = -1
)

// Scoring and damage
const (
	ScoreHit             = 100
	DamageFromHazard     = 100
	DamageFromProjectile = 50
	DamageFromShip       = 500
	AbsorbProjectile     = 0.01 // Shield charge added when a shot is absorbed
	AbsorbShip           = 0.05 // Shield charge added when a ram is absorbed
)

// Waves
const (
	WaveHazardsPerRound = 2
	WaveSpeedPerRound   = 50.0
)

var hazardRadii = map[HazardSize]float64{
	HazardSmall:  10,
	HazardMedium: 20,
	HazardLarge:  30,
}
