// Package physics provides kinematic integration, arena wrapping and
// pairwise circle collision detection.
package physics

import (
	"math"

	"github.com/tomz197/rocketarena/internal/vmath"
)

// Arena is the rectangular simulation area. Its topology is a torus:
// leaving one edge re-enters at the opposite edge.
type Arena struct {
	Width  float64
	Height float64
}

// Center returns the middle of the arena.
func (a Arena) Center() vmath.Vector {
	return vmath.New(a.Width/2, a.Height/2)
}

// Wrap maps p into [0, Width) x [0, Height) (Asteroids-style).
func (a Arena) Wrap(p vmath.Vector) vmath.Vector {
	return vmath.New(wrapAxis(p.X, a.Width), wrapAxis(p.Y, a.Height))
}

// Contains reports whether p lies inside the half-open arena rectangle.
func (a Arena) Contains(p vmath.Vector) bool {
	return p.X >= 0 && p.X < a.Width && p.Y >= 0 && p.Y < a.Height
}

func wrapAxis(v, bound float64) float64 {
	if bound <= 0 {
		return v
	}
	v = math.Mod(v, bound)
	if v < 0 {
		v += bound
	}
	// Tiny negative values round up to bound after the addition.
	if v >= bound {
		v = 0
	}
	return v
}

// Integrate advances a body by dt using explicit Euler:
// velocity += acceleration*dt, then position += velocity*dt.
func Integrate(pos, vel, acc vmath.Vector, dt float64) (vmath.Vector, vmath.Vector) {
	vel = vel.Add(acc.Scale(dt))
	pos = pos.Add(vel.Scale(dt))
	return pos, vel
}

// CirclesOverlap checks if two circles overlap (touching does not count).
func CirclesOverlap(c1 vmath.Vector, r1 float64, c2 vmath.Vector, r2 float64) bool {
	return c1.Distance(c2) < r1+r2
}
