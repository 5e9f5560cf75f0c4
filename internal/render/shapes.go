package render

import (
	"math"

	"github.com/tomz197/rocketarena/internal/sim"
	"github.com/tomz197/rocketarena/internal/vmath"
)

// Ship silhouette, relative to the collision radius.
const (
	wingAngle  = 2.5 // Radians from the nose, ~143°
	wingLength = 0.7
	flameSpan  = 0.9
	hazardVert = 10
)

// ShieldPad is the gap between a ship's hull and its shield ring.
const ShieldPad = 6.0

// HazardVertices is the outline vertex count of every hazard.
const HazardVertices = hazardVert

// ShipOutline returns the nose and both wing tips of a ship.
func ShipOutline(e sim.EntitySnapshot) [3]vmath.Vector {
	nose := sim.Heading(e.Rotation)
	r := e.Radius
	return [3]vmath.Vector{
		e.Position.Add(nose.Scale(r)),
		e.Position.Add(nose.Rotate(wingAngle).Scale(r * wingLength)),
		e.Position.Add(nose.Rotate(-wingAngle).Scale(r * wingLength)),
	}
}

// Flame returns the exhaust segment behind a thrusting ship.
func Flame(e sim.EntitySnapshot) (from, to vmath.Vector) {
	nose := sim.Heading(e.Rotation)
	from = e.Position.Sub(nose.Scale(e.Radius * wingLength))
	to = e.Position.Sub(nose.Scale(e.Radius * (wingLength + flameSpan)))
	return from, to
}

// HazardOutline fills dst with a hazard's jagged outline. The shape is a
// function of the entity ID, so it stays put between frames.
func HazardOutline(e sim.EntitySnapshot, dst []vmath.Vector) []vmath.Vector {
	dst = dst[:0]
	for i := range hazardVert {
		a := e.Rotation + 2*math.Pi*float64(i)/hazardVert
		r := e.Radius * jitter(uint64(e.ID), i)
		dst = append(dst, vmath.New(e.Position.X+r*math.Cos(a), e.Position.Y+r*math.Sin(a)))
	}
	return dst
}

// EffectRing returns the current ring radius of an effect and whether it
// has passed the hot half of its life.
func EffectRing(e sim.EntitySnapshot) (radius float64, late bool) {
	progress := math.Min(e.Age/sim.EffectLifetime, 1)
	return e.Radius * (0.5 + 1.5*progress), progress > 0.5
}

// jitter returns a stable radius factor in [0.75, 1.05) for vertex i of
// the hazard with the given id.
func jitter(id uint64, i int) float64 {
	x := id*0x9e3779b97f4a7c15 + uint64(i)*0xbf58476d1ce4e5b9
	x ^= x >> 31
	x *= 0x94d049bb133111eb
	x ^= x >> 29
	return 0.75 + 0.3*float64(x>>11)/float64(1<<53)
}
