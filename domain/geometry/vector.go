package geometry

import (
	"fmt"
	"math"

	pkgerrors "partforge/pkg/errors"
)

// Vector2 is a direction or displacement in the sketch plane.
type Vector2 struct {
	X float64
	Y float64
}

// Vec returns the vector ⟨x, y⟩.
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

func (v Vector2) String() string {
	return fmt.Sprintf("⟨%g, %g⟩", v.X, v.Y)
}

// Dot returns the dot product of v and o.
func (v Vector2) Dot(o Vector2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the 2D cross product of v and o.
func (v Vector2) Cross(o Vector2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Hypot returns the magnitude of the vector.
func (v Vector2) Hypot() float64 {
	return math.Hypot(v.X, v.Y)
}

// Angle returns the angle in radians between the vector and ⟨1, 0⟩,
// counterclockwise-positive. This is atan2(y, x).
func (v Vector2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Add adds two vectors.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub subtracts o from v.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Mul scales the vector by f.
func (v Vector2) Mul(f float64) Vector2 {
	return Vector2{X: v.X * f, Y: v.Y * f}
}

// Normalize returns a vector of magnitude 1.0 with the same angle as v.
// Returns a ZeroVectorError when the magnitude is below epsilon.
func Normalize(v Vector2) (Vector2, error) {
	h := v.Hypot()
	if h < Epsilon {
		return Vector2{}, pkgerrors.NewZeroVectorError()
	}
	return v.Mul(1.0 / h), nil
}

// VecFromAngle returns a unit vector at the given angle, in radians.
func VecFromAngle(th float64) Vector2 {
	y, x := math.Sincos(th)
	return Vector2{X: x, Y: y}
}
