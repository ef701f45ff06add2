package geom

import "math"

// Vector3 is a position in the 3D event frame (centimetres).
// Coordinate convention: X=drift, Y=vertical, Z=beam (matches the
// readout geometry: the W wires measure Z directly).
type Vector3 struct {
	X, Y, Z float64
}

// Sub returns v - o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Magnitude returns the Euclidean length of v.
func (v Vector3) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Vector2 is a position in a single readout view: X is the drift
// coordinate (common to all views), Z is the wire coordinate of that
// view.
type Vector2 struct {
	X, Z float64
}

// Sub returns v - o.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Z: v.Z - o.Z}
}

// Magnitude returns the Euclidean length of v.
func (v Vector2) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Z*v.Z)
}
