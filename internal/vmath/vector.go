// Package vmath provides the 2D vector type used by the simulation.
package vmath

import "math"

// Vector is a 2D vector in arena units.
type Vector struct {
	X, Y float64
}

// Zero is the zero vector.
var Zero = Vector{}

// New creates a vector from its components.
func New(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// FromAngle returns the unit vector pointing at angle radians
// (0 = +X, increasing toward +Y).
func FromAngle(angle float64) Vector {
	return Vector{X: math.Cos(angle), Y: math.Sin(angle)}
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s.
func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product of v and o.
func (v Vector) Dot(o Vector) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Length returns the Euclidean length of v.
func (v Vector) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns the unit vector in the direction of v.
// The zero vector normalizes to the zero vector.
func (v Vector) Normalize() Vector {
	l := v.Length()
	if l == 0 {
		return Zero
	}
	return Vector{X: v.X / l, Y: v.Y / l}
}

// Perp returns v rotated by +90 degrees.
func (v Vector) Perp() Vector {
	return Vector{X: -v.Y, Y: v.X}
}

// Rotate returns v rotated by angle radians.
func (v Vector) Rotate(angle float64) Vector {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vector{
		X: v.X*c - v.Y*s,
		Y: v.X*s + v.Y*c,
	}
}

// Distance returns the Euclidean distance between v and o.
func (v Vector) Distance(o Vector) float64 {
	return math.Sqrt(v.DistanceSquared(o))
}

// DistanceSquared returns the squared distance between v and o.
// Use this when comparing distances to avoid the sqrt cost.
func (v Vector) DistanceSquared(o Vector) float64 {
	dx := o.X - v.X
	dy := o.Y - v.Y
	return dx*dx + dy*dy
}

// IsFinite reports whether both components are finite.
func (v Vector) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
