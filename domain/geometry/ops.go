package geometry

import (
	"fmt"
	"math"

	pkgerrors "partforge/pkg/errors"
)

// Epsilon is the relative tolerance used for collinearity and degeneracy
// checks throughout the geometric primitives.
const Epsilon = 1e-9

// Radians converts degrees to radians.
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// Degrees converts radians to degrees.
func Degrees(radians float64) float64 {
	return radians * 180.0 / math.Pi
}

// Rotate rotates p about origin by theta degrees, counterclockwise-positive.
func Rotate(p, origin Point2, thetaDegrees float64) Point2 {
	sin, cos := math.Sincos(Radians(thetaDegrees))
	d := p.Sub(origin)
	return Point2{
		X: origin.X + d.X*cos - d.Y*sin,
		Y: origin.Y + d.X*sin + d.Y*cos,
	}
}

// Reflect mirrors p across the infinite line through linePoint with
// direction lineDir.
func Reflect(p Point2, linePoint Point2, lineDir Vector2) Point2 {
	d := p.Sub(linePoint)
	h2 := lineDir.Dot(lineDir)
	if h2 < Epsilon*Epsilon {
		// A zero-direction mirror line reflects onto the point itself.
		return p
	}
	t := d.Dot(lineDir) / h2
	foot := linePoint.Add(lineDir.Mul(t))
	return Point2{
		X: 2*foot.X - p.X,
		Y: 2*foot.Y - p.Y,
	}
}

// LineIntersection returns the intersection of the infinite line through p1
// with direction d1 and the infinite line through p2 with direction d2.
// Returns a ParallelLinesError when the directions are collinear within a
// relative epsilon.
func LineIntersection(p1 Point2, d1 Vector2, p2 Point2, d2 Vector2) (Point2, error) {
	denom := d1.Cross(d2)
	scale := d1.Hypot() * d2.Hypot()
	if math.Abs(denom) <= Epsilon*scale {
		return Point2{}, pkgerrors.NewParallelLinesError(
			fmt.Sprintf("lines through %v (dir %v) and %v (dir %v) are parallel", p1, d1, p2, d2))
	}
	t := p2.Sub(p1).Cross(d2) / denom
	return p1.Add(d1.Mul(t)), nil
}

// SideOfLine returns the signed perpendicular distance of p from the
// infinite line through origin with the given direction. Positive is the
// left side of the direction vector.
func SideOfLine(p, origin Point2, dir Vector2) float64 {
	h := dir.Hypot()
	if h < Epsilon {
		return p.Distance(origin)
	}
	return dir.Cross(p.Sub(origin)) / h
}

// SegmentIntersection returns the intersection point of two closed
// segments, if any. The second return is false when the segments do not
// touch or are parallel.
func SegmentIntersection(a1, a2, b1, b2 Point2) (Point2, bool) {
	d1 := a2.Sub(a1)
	d2 := b2.Sub(b1)
	denom := d1.Cross(d2)
	scale := d1.Hypot() * d2.Hypot()
	if math.Abs(denom) <= Epsilon*scale {
		return Point2{}, false
	}
	diff := b1.Sub(a1)
	t := diff.Cross(d2) / denom
	u := diff.Cross(d1) / denom
	if t < -Epsilon || t > 1+Epsilon || u < -Epsilon || u > 1+Epsilon {
		return Point2{}, false
	}
	return a1.Add(d1.Mul(t)), true
}

// DistanceToSegment returns the distance from p to the closed segment ab.
func DistanceToSegment(p, a, b Point2) float64 {
	d := b.Sub(a)
	h2 := d.Dot(d)
	if h2 < Epsilon*Epsilon {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(d) / h2
	t = math.Max(0, math.Min(1, t))
	return p.Distance(a.Add(d.Mul(t)))
}
