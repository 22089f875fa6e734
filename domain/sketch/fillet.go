package sketch

import (
	"fmt"
	"math"

	"partforge/domain/geometry"
	pkgerrors "partforge/pkg/errors"
)

// AddFillet rounds the corner where two lines meet. Both lines are
// shortened in place so they end at their trim points, a distance of
// radius/tan(θ/2) from the intersection, and a new arc tangent to both
// trimmed lines is added on the side where the lines met.
func (s *Sketch) AddFillet(line1, line2 *Line, radius float64) (*Arc, error) {
	if radius <= 0 {
		return nil, pkgerrors.NewInvalidFilletError(fmt.Sprintf("fillet radius must be positive, got %g", radius))
	}

	corner, err := geometry.LineIntersection(
		line1.Start, line1.End.Sub(line1.Start),
		line2.Start, line2.End.Sub(line2.Start),
	)
	if err != nil {
		return nil, err
	}

	u1, avail1 := awayFromCorner(line1, corner)
	u2, avail2 := awayFromCorner(line2, corner)

	// Opening angle between the two lines, measured at the corner.
	cos := math.Max(-1, math.Min(1, u1.Dot(u2)))
	opening := math.Acos(cos)
	if opening < geometry.Epsilon {
		return nil, pkgerrors.NewInvalidFilletError("lines are collinear at the corner, no fillet exists")
	}

	trim := radius / math.Tan(opening/2)
	if trim > avail1 || trim > avail2 {
		return nil, pkgerrors.NewInvalidFilletError(fmt.Sprintf(
			"fillet radius %g needs %g of line length, but only %g and %g are available",
			radius, trim, avail1, avail2))
	}

	t1 := corner.Add(u1.Mul(trim))
	t2 := corner.Add(u2.Mul(trim))

	// The arc center sits on the corner's bisector at radius/sin(θ/2).
	bisector, err := geometry.Normalize(u1.Add(u2))
	if err != nil {
		return nil, pkgerrors.NewInvalidFilletError("lines are anti-parallel at the corner, no fillet exists")
	}
	center := corner.Add(bisector.Mul(radius / math.Sin(opening/2)))

	shortenToward(line1, corner, t1)
	shortenToward(line2, corner, t2)
	s.derived = nil

	// The minor arc between the tangent points is the fillet.
	a1 := t1.Sub(center).Angle()
	a2 := t2.Sub(center).Angle()
	sweep := math.Mod(a2-a1, 2*math.Pi)
	if sweep < 0 {
		sweep += 2 * math.Pi
	}
	var arc *Arc
	if sweep <= math.Pi {
		arc = arcFromEndpoints(center, radius, t1, t2)
	} else {
		arc = arcFromEndpoints(center, radius, t2, t1)
	}

	if err := s.add(arc); err != nil {
		return nil, err
	}
	s.journal = append(s.journal,
		TransformRecord{Op: "fillet", SourceID: line1.TransientID(), ResultID: arc.TransientID()},
		TransformRecord{Op: "fillet", SourceID: line2.TransientID(), ResultID: arc.TransientID()},
	)
	return arc, nil
}

// awayFromCorner returns the unit direction of a line pointing from the
// corner toward its far endpoint, plus the usable length on that side.
func awayFromCorner(l *Line, corner geometry.Point2) (geometry.Vector2, float64) {
	far := l.End
	if corner.DistanceSquared(l.Start) > corner.DistanceSquared(l.End) {
		far = l.Start
	}
	d := far.Sub(corner)
	avail := d.Hypot()
	if avail < geometry.Epsilon {
		return geometry.Vec(0, 0), 0
	}
	return d.Mul(1 / avail), avail
}

// shortenToward replaces the endpoint of l nearest to the corner with the
// trim point.
func shortenToward(l *Line, corner, trim geometry.Point2) {
	if corner.DistanceSquared(l.Start) <= corner.DistanceSquared(l.End) {
		l.Start = trim
	} else {
		l.End = trim
	}
}
