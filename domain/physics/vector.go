// Package physics holds the vector and rigid-body primitives consumed by the
// three-body entropy simulator.
package physics

import "math"

// Vector3 is a triple of double-precision floats.
type Vector3 struct {
	X, Y, Z float64
}

// Add returns v + other.
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v scaled by s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and other.
func (v Vector3) Dot(other Vector3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product v x other.
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// MagnitudeSquared returns |v|^2, avoiding the sqrt when only comparison is needed.
func (v Vector3) MagnitudeSquared() float64 {
	return v.Dot(v)
}

// Magnitude returns |v|.
func (v Vector3) Magnitude() float64 {
	return math.Sqrt(v.MagnitudeSquared())
}

// Distance returns |v - other|.
func (v Vector3) Distance(other Vector3) float64 {
	return v.Sub(other).Magnitude()
}

// IsFinite reports whether all three components are finite (no NaN/Inf).
func (v Vector3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}
