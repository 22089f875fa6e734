// Package geometry provides the 2D primitives that sketches are built
// from. All types are immutable values; angles cross the package boundary
// in degrees and are converted to radians internally. Rotation is
// counterclockwise-positive, matching the sketch plane's right-hand
// coordinate convention.
package geometry

import (
	"fmt"
	"math"
)

// Point2 is a point in a sketch's local 2D plane.
type Point2 struct {
	X float64
	Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point2 {
	return Point2{X: x, Y: y}
}

func (p Point2) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Add translates the point by a vector.
func (p Point2) Add(v Vector2) Point2 {
	return Point2{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub computes the vector from o to p.
func (p Point2) Sub(o Point2) Vector2 {
	return Vector2{X: p.X - o.X, Y: p.Y - o.Y}
}

// Midpoint returns the midpoint of two points.
func (p Point2) Midpoint(o Point2) Point2 {
	return Point2{
		X: 0.5 * (p.X + o.X),
		Y: 0.5 * (p.Y + o.Y),
	}
}

// Distance returns the euclidean distance between two points.
func (p Point2) Distance(o Point2) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// DistanceSquared returns the squared euclidean distance between two points.
func (p Point2) DistanceSquared(o Point2) float64 {
	x := p.X - o.X
	y := p.Y - o.Y
	return x*x + y*y
}

// ApproxEqual reports whether two points are within eps of each other.
func (p Point2) ApproxEqual(o Point2, eps float64) bool {
	return p.Distance(o) < eps
}

// IsFinite reports whether both coordinates are finite, non-NaN numbers.
func (p Point2) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) &&
		!math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
