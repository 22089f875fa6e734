package sketch

import (
	"fmt"

	"partforge/domain/entity"
	"partforge/domain/geometry"
	pkgerrors "partforge/pkg/errors"
)

// Sketch is an ordered collection of sketch items on a plane. It owns
// every item added to it and is the source of the derived face/edge/vertex
// entities that downstream features query.
type Sketch struct {
	transientID string
	remoteID    string
	name        string
	plane       entity.QueryExpression

	items   []Item
	derived *derivedSet
	journal []TransformRecord
}

// TransformRecord is the provenance of one transform application.
type TransformRecord struct {
	Op       string
	SourceID string
	ResultID string
	Copied   bool
}

// NewSketch creates an empty sketch on the plane described by the given
// query expression.
func NewSketch(name string, plane entity.QueryExpression) *Sketch {
	return &Sketch{
		transientID: newTransientID(),
		name:        name,
		plane:       plane,
	}
}

// Name returns the sketch's display name.
func (s *Sketch) Name() string { return s.name }

// TransientID returns the sketch's local identity, assigned before any
// remote round trip.
func (s *Sketch) TransientID() string { return s.transientID }

// ID returns the remote feature id, empty until the sketch has been
// submitted.
func (s *Sketch) ID() string { return s.remoteID }

// BindRemote records the remote feature id after a successful submission.
func (s *Sketch) BindRemote(id string) { s.remoteID = id }

// Plane returns the query expression describing the sketch plane.
func (s *Sketch) Plane() entity.QueryExpression { return s.plane }

// Items returns the sketch's items in insertion order.
func (s *Sketch) Items() []Item {
	return append([]Item(nil), s.items...)
}

// Journal returns the provenance records of every transform applied so
// far.
func (s *Sketch) Journal() []TransformRecord {
	return append([]TransformRecord(nil), s.journal...)
}

// queryID is the identity the sketch's entity queries are rooted at.
// Empty until the sketch is submitted: local narrowing works either way,
// but rendering a query rooted at an unsubmitted sketch must fail rather
// than ship an id the remote evaluator has never seen.
func (s *Sketch) queryID() string {
	return s.remoteID
}

// add validates and appends an item, invalidating the derived-entity
// cache. Inserting a new item can split existing faces, so derived
// entities are recomputed lazily on next access.
func (s *Sketch) add(item Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	s.items = append(s.items, item)
	s.derived = nil
	return nil
}

// AddLine adds a line segment to the sketch.
func (s *Sketch) AddLine(start, end geometry.Point2) (*Line, error) {
	line := NewLine(start, end)
	if err := s.add(line); err != nil {
		return nil, err
	}
	return line, nil
}

// AddCircle adds a circle to the sketch.
func (s *Sketch) AddCircle(center geometry.Point2, radius float64) (*Circle, error) {
	circle := NewCircle(center, radius)
	if err := s.add(circle); err != nil {
		return nil, err
	}
	return circle, nil
}

// AddCenterpointArc adds an arc from its center, radius and angular
// interval in degrees.
func (s *Sketch) AddCenterpointArc(center geometry.Point2, radius, startDegrees, endDegrees float64) (*Arc, error) {
	arc := NewArc(center, radius, startDegrees, endDegrees)
	if err := s.add(arc); err != nil {
		return nil, err
	}
	return arc, nil
}

// TracePoints traces a series of points with line segments, in list
// order. When endConnect is true an extra segment closes the loop.
func (s *Sketch) TracePoints(endConnect bool, points ...geometry.Point2) ([]*Line, error) {
	if len(points) < 2 {
		return nil, pkgerrors.NewParameterError(fmt.Sprintf("need at least 2 points to trace, got %d", len(points)))
	}
	var lines []*Line
	for i := 1; i < len(points); i++ {
		line, err := s.AddLine(points[i-1], points[i])
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if endConnect {
		line, err := s.AddLine(points[len(points)-1], points[0])
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// AddCornerRectangle adds a rectangle from two opposite corners.
func (s *Sketch) AddCornerRectangle(corner1, corner2 geometry.Point2) ([]*Line, error) {
	return s.TracePoints(true,
		corner1,
		geometry.Pt(corner2.X, corner1.Y),
		corner2,
		geometry.Pt(corner1.X, corner2.Y),
	)
}

// Entities returns every derived entity of the sketch as a filter. A
// sketch with no items resolves to an empty, valid filter.
func (s *Sketch) Entities() entity.Filter {
	d := s.deriveEntities()
	return entity.NewFilter(entity.SketchRegion{FeatureID: s.queryID()}, d.all())
}

// Faces returns the sketch's enclosed regions.
func (s *Sketch) Faces() entity.Filter {
	return s.Entities().OfKind(entity.KindFace)
}

// Edges returns the sketch's curve segments.
func (s *Sketch) Edges() entity.Filter {
	return s.Entities().OfKind(entity.KindEdge)
}

// Vertices returns the sketch's segment endpoints and intersections.
func (s *Sketch) Vertices() entity.Filter {
	return s.Entities().OfKind(entity.KindVertex)
}

// FaceFilter lets a whole sketch stand in wherever faces are expected,
// mirroring how callers extrude "the sketch".
func (s *Sketch) FaceFilter() entity.Filter {
	return s.Faces()
}

func (s *Sketch) String() string {
	return fmt.Sprintf("Sketch(%q)", s.name)
}
