package entity

import (
	"math"

	"partforge/domain/geometry"
)

// ContainTolerance is the distance below which a point counts as contained
// in or on an entity's footprint.
const ContainTolerance = 1e-8

// Footprint is the locally known planar extent of an entity, expressed in
// the sketch plane's coordinates. It exists solely so filters can evaluate
// contains-point and line-intersection predicates without the remote
// evaluator. Entities resolved only remotely have no footprint.
type Footprint interface {
	// Contains reports whether p lies inside or on the footprint.
	Contains(p geometry.Point2) bool

	// CrossesLine reports whether the infinite line through origin with
	// the given direction crosses the footprint. Lines exactly on a
	// boundary count as crossing.
	CrossesLine(origin geometry.Point2, dir geometry.Vector2) bool
}

// DiskFootprint is the enclosed region of a circle: a face.
type DiskFootprint struct {
	Center geometry.Point2
	Radius float64
}

func (f DiskFootprint) Contains(p geometry.Point2) bool {
	return p.Distance(f.Center) <= f.Radius+ContainTolerance
}

func (f DiskFootprint) CrossesLine(origin geometry.Point2, dir geometry.Vector2) bool {
	if dir.Hypot() < geometry.Epsilon {
		return f.Contains(origin)
	}
	return math.Abs(geometry.SideOfLine(f.Center, origin, dir)) <= f.Radius+ContainTolerance
}

// RingFootprint is the boundary of a circle: a closed edge.
type RingFootprint struct {
	Center geometry.Point2
	Radius float64
}

func (f RingFootprint) Contains(p geometry.Point2) bool {
	return math.Abs(p.Distance(f.Center)-f.Radius) <= ContainTolerance
}

func (f RingFootprint) CrossesLine(origin geometry.Point2, dir geometry.Vector2) bool {
	if dir.Hypot() < geometry.Epsilon {
		return f.Contains(origin)
	}
	return math.Abs(geometry.SideOfLine(f.Center, origin, dir)) <= f.Radius+ContainTolerance
}

// SegmentFootprint is a straight edge between two endpoints.
type SegmentFootprint struct {
	A geometry.Point2
	B geometry.Point2
}

func (f SegmentFootprint) Contains(p geometry.Point2) bool {
	return geometry.DistanceToSegment(p, f.A, f.B) <= ContainTolerance
}

func (f SegmentFootprint) CrossesLine(origin geometry.Point2, dir geometry.Vector2) bool {
	if dir.Hypot() < geometry.Epsilon {
		return f.Contains(origin)
	}
	sa := geometry.SideOfLine(f.A, origin, dir)
	sb := geometry.SideOfLine(f.B, origin, dir)
	if math.Abs(sa) <= ContainTolerance || math.Abs(sb) <= ContainTolerance {
		return true
	}
	return (sa > 0) != (sb > 0)
}

// ArcFootprint is a circular edge spanning the counterclockwise interval
// [Start, End] in radians.
type ArcFootprint struct {
	Center geometry.Point2
	Radius float64
	Start  float64
	End    float64
}

func (f ArcFootprint) withinInterval(theta float64) bool {
	span := f.End - f.Start
	for span < 0 {
		span += 2 * math.Pi
	}
	rel := math.Mod(theta-f.Start, 2*math.Pi)
	if rel < 0 {
		rel += 2 * math.Pi
	}
	return rel <= span+geometry.Epsilon
}

func (f ArcFootprint) Contains(p geometry.Point2) bool {
	if math.Abs(p.Distance(f.Center)-f.Radius) > ContainTolerance {
		return false
	}
	return f.withinInterval(p.Sub(f.Center).Angle())
}

func (f ArcFootprint) CrossesLine(origin geometry.Point2, dir geometry.Vector2) bool {
	if dir.Hypot() < geometry.Epsilon {
		return f.Contains(origin)
	}
	d := geometry.SideOfLine(f.Center, origin, dir)
	if math.Abs(d) > f.Radius+ContainTolerance {
		return false
	}
	// Points where the line meets the full circle, checked against the
	// arc's angular interval.
	h := dir.Hypot()
	unit := dir.Mul(1 / h)
	t0 := f.Center.Sub(origin).Dot(unit)
	foot := origin.Add(unit.Mul(t0))
	half := math.Sqrt(math.Max(0, f.Radius*f.Radius-d*d))
	for _, s := range []float64{-half, half} {
		hit := foot.Add(unit.Mul(s))
		if f.withinInterval(hit.Sub(f.Center).Angle()) {
			return true
		}
	}
	return false
}

// PolygonFootprint is the enclosed region of a closed loop of segments:
// a face. Vertices are in loop order; the loop is implicitly closed.
type PolygonFootprint struct {
	Vertices []geometry.Point2
}

func (f PolygonFootprint) Contains(p geometry.Point2) bool {
	n := len(f.Vertices)
	if n < 3 {
		return false
	}
	// Boundary points count as contained.
	for i := 0; i < n; i++ {
		a := f.Vertices[i]
		b := f.Vertices[(i+1)%n]
		if geometry.DistanceToSegment(p, a, b) <= ContainTolerance {
			return true
		}
	}
	// Ray cast toward +x.
	inside := false
	for i := 0; i < n; i++ {
		a := f.Vertices[i]
		b := f.Vertices[(i+1)%n]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if x > p.X {
				inside = !inside
			}
		}
	}
	return inside
}

func (f PolygonFootprint) CrossesLine(origin geometry.Point2, dir geometry.Vector2) bool {
	if dir.Hypot() < geometry.Epsilon {
		return f.Contains(origin)
	}
	var pos, neg bool
	for _, v := range f.Vertices {
		s := geometry.SideOfLine(v, origin, dir)
		if math.Abs(s) <= ContainTolerance {
			return true
		}
		if s > 0 {
			pos = true
		} else {
			neg = true
		}
	}
	return pos && neg
}

// PointFootprint is a vertex.
type PointFootprint struct {
	P geometry.Point2
}

func (f PointFootprint) Contains(p geometry.Point2) bool {
	return p.Distance(f.P) <= ContainTolerance
}

func (f PointFootprint) CrossesLine(origin geometry.Point2, dir geometry.Vector2) bool {
	if dir.Hypot() < geometry.Epsilon {
		return f.Contains(origin)
	}
	return math.Abs(geometry.SideOfLine(f.P, origin, dir)) <= ContainTolerance
}
