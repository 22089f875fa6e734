// Package sketch holds the user-declared 2D primitives and the transform
// engine that operates on them. Sketch items are importantly different
// from entities: items are the curves the user draws, private to the
// sketch, while entities are the faces/edges/vertices derived from how
// those items combine. Only entities can be queried and fed to other
// features.
package sketch

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"partforge/domain/geometry"
	pkgerrors "partforge/pkg/errors"
)

// Item is a user-declared 2D primitive belonging to a sketch. The set of
// variants is closed: Line, Circle and Arc. Consumers switch exhaustively
// over them; a new variant requires updating every consumer, which is
// intended.
type Item interface {
	// TransientID is the stable local identity of the item, distinct from
	// any remote id. Transforms that mutate keep the identity; copies get
	// a fresh one.
	TransientID() string

	// Clone returns a deep copy with a fresh transient id.
	Clone() Item

	// Validate reports degenerate geometry: zero-length lines,
	// non-positive radii.
	Validate() error

	translate(dx, dy float64)
	rotate(origin geometry.Point2, thetaDegrees float64)
	mirror(linePoint geometry.Point2, lineDir geometry.Vector2)

	sketchItem()
}

func newTransientID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// Line is a straight sketch segment.
type Line struct {
	id    string
	Start geometry.Point2
	End   geometry.Point2
}

// NewLine creates a line segment between two points.
func NewLine(start, end geometry.Point2) *Line {
	return &Line{id: newTransientID(), Start: start, End: end}
}

func (l *Line) TransientID() string { return l.id }

// Length returns the length of the line.
func (l *Line) Length() float64 {
	return l.Start.Distance(l.End)
}

// Direction returns the unit vector pointing from start to end.
func (l *Line) Direction() geometry.Vector2 {
	d, err := geometry.Normalize(l.End.Sub(l.Start))
	if err != nil {
		return geometry.Vec(0, 0)
	}
	return d
}

// Midpoint returns the midpoint of the line.
func (l *Line) Midpoint() geometry.Point2 {
	return l.Start.Midpoint(l.End)
}

func (l *Line) Clone() Item {
	return &Line{id: newTransientID(), Start: l.Start, End: l.End}
}

func (l *Line) Validate() error {
	if !l.Start.IsFinite() || !l.End.IsFinite() {
		return pkgerrors.NewDegenerateGeometryError(fmt.Sprintf("line %v has non-finite coordinates", l))
	}
	if l.Length() < geometry.Epsilon {
		return pkgerrors.NewDegenerateGeometryError(fmt.Sprintf("line %v has zero length", l))
	}
	return nil
}

func (l *Line) translate(dx, dy float64) {
	v := geometry.Vec(dx, dy)
	l.Start = l.Start.Add(v)
	l.End = l.End.Add(v)
}

func (l *Line) rotate(origin geometry.Point2, thetaDegrees float64) {
	l.Start = geometry.Rotate(l.Start, origin, thetaDegrees)
	l.End = geometry.Rotate(l.End, origin, thetaDegrees)
}

func (l *Line) mirror(linePoint geometry.Point2, lineDir geometry.Vector2) {
	l.Start = geometry.Reflect(l.Start, linePoint, lineDir)
	l.End = geometry.Reflect(l.End, linePoint, lineDir)
}

func (l *Line) sketchItem() {}

func (l *Line) String() string {
	return fmt.Sprintf("Line(start=%v, end=%v)", l.Start, l.End)
}

// Circle is a full sketch circle.
type Circle struct {
	id     string
	Center geometry.Point2
	Radius float64
}

// NewCircle creates a circle from its center and radius.
func NewCircle(center geometry.Point2, radius float64) *Circle {
	return &Circle{id: newTransientID(), Center: center, Radius: radius}
}

func (c *Circle) TransientID() string { return c.id }

func (c *Circle) Clone() Item {
	return &Circle{id: newTransientID(), Center: c.Center, Radius: c.Radius}
}

func (c *Circle) Validate() error {
	if !c.Center.IsFinite() || math.IsNaN(c.Radius) || math.IsInf(c.Radius, 0) {
		return pkgerrors.NewDegenerateGeometryError(fmt.Sprintf("circle %v has non-finite geometry", c))
	}
	if c.Radius <= 0 {
		return pkgerrors.NewDegenerateGeometryError(fmt.Sprintf("circle %v has non-positive radius", c))
	}
	return nil
}

func (c *Circle) translate(dx, dy float64) {
	c.Center = c.Center.Add(geometry.Vec(dx, dy))
}

func (c *Circle) rotate(origin geometry.Point2, thetaDegrees float64) {
	c.Center = geometry.Rotate(c.Center, origin, thetaDegrees)
}

func (c *Circle) mirror(linePoint geometry.Point2, lineDir geometry.Vector2) {
	c.Center = geometry.Reflect(c.Center, linePoint, lineDir)
}

func (c *Circle) sketchItem() {}

func (c *Circle) String() string {
	return fmt.Sprintf("Circle(center=%v, radius=%g)", c.Center, c.Radius)
}

// Arc is a circular sketch arc. The angular interval is stored in radians
// and always sweeps counterclockwise from StartAngle to EndAngle, with
// EndAngle >= StartAngle.
type Arc struct {
	id         string
	Center     geometry.Point2
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

// NewArc creates an arc from its center, radius and angular interval in
// degrees.
func NewArc(center geometry.Point2, radius, startDegrees, endDegrees float64) *Arc {
	start := geometry.Radians(startDegrees)
	end := geometry.Radians(endDegrees)
	for end < start {
		end += 2 * math.Pi
	}
	return &Arc{id: newTransientID(), Center: center, Radius: radius, StartAngle: start, EndAngle: end}
}

// arcFromEndpoints rebuilds an arc of a known radius and center so that it
// sweeps counterclockwise from the angle of a to the angle of b.
func arcFromEndpoints(center geometry.Point2, radius float64, a, b geometry.Point2) *Arc {
	start := a.Sub(center).Angle()
	end := b.Sub(center).Angle()
	for end < start {
		end += 2 * math.Pi
	}
	return &Arc{id: newTransientID(), Center: center, Radius: radius, StartAngle: start, EndAngle: end}
}

func (a *Arc) TransientID() string { return a.id }

// Sweep returns the angular extent of the arc in radians.
func (a *Arc) Sweep() float64 {
	return a.EndAngle - a.StartAngle
}

// StartPoint returns the arc endpoint at StartAngle.
func (a *Arc) StartPoint() geometry.Point2 {
	return a.pointAt(a.StartAngle)
}

// EndPoint returns the arc endpoint at EndAngle.
func (a *Arc) EndPoint() geometry.Point2 {
	return a.pointAt(a.EndAngle)
}

// MidPoint returns the point at the middle of the swept interval.
func (a *Arc) MidPoint() geometry.Point2 {
	return a.pointAt(0.5 * (a.StartAngle + a.EndAngle))
}

func (a *Arc) pointAt(theta float64) geometry.Point2 {
	sin, cos := math.Sincos(theta)
	return geometry.Pt(a.Center.X+a.Radius*cos, a.Center.Y+a.Radius*sin)
}

// Length returns the arc length.
func (a *Arc) Length() float64 {
	return a.Radius * a.Sweep()
}

func (a *Arc) Clone() Item {
	return &Arc{
		id:         newTransientID(),
		Center:     a.Center,
		Radius:     a.Radius,
		StartAngle: a.StartAngle,
		EndAngle:   a.EndAngle,
	}
}

func (a *Arc) Validate() error {
	if !a.Center.IsFinite() || math.IsNaN(a.Radius) || math.IsInf(a.Radius, 0) {
		return pkgerrors.NewDegenerateGeometryError(fmt.Sprintf("arc %v has non-finite geometry", a))
	}
	if a.Radius <= 0 {
		return pkgerrors.NewDegenerateGeometryError(fmt.Sprintf("arc %v has non-positive radius", a))
	}
	if a.Sweep() < geometry.Epsilon {
		return pkgerrors.NewDegenerateGeometryError(fmt.Sprintf("arc %v has zero sweep", a))
	}
	return nil
}

func (a *Arc) translate(dx, dy float64) {
	a.Center = a.Center.Add(geometry.Vec(dx, dy))
}

func (a *Arc) rotate(origin geometry.Point2, thetaDegrees float64) {
	// Rotating is a rigid motion: shift the interval, move the center.
	a.Center = geometry.Rotate(a.Center, origin, thetaDegrees)
	a.StartAngle += geometry.Radians(thetaDegrees)
	a.EndAngle += geometry.Radians(thetaDegrees)
}

func (a *Arc) mirror(linePoint geometry.Point2, lineDir geometry.Vector2) {
	// Reflection reverses angular sense, so the interval is re-derived
	// from the reflected endpoints: the old end becomes the new start.
	start := geometry.Reflect(a.StartPoint(), linePoint, lineDir)
	end := geometry.Reflect(a.EndPoint(), linePoint, lineDir)
	center := geometry.Reflect(a.Center, linePoint, lineDir)

	rebuilt := arcFromEndpoints(center, a.Radius, end, start)
	a.Center = rebuilt.Center
	a.StartAngle = rebuilt.StartAngle
	a.EndAngle = rebuilt.EndAngle
}

func (a *Arc) sketchItem() {}

func (a *Arc) String() string {
	return fmt.Sprintf("Arc(center=%v, radius=%g, %g<θ<%g)",
		a.Center, a.Radius, geometry.Degrees(a.StartAngle), geometry.Degrees(a.EndAngle))
}
