// Package entity models references to remote geometry. An Entity never
// carries authoritative coordinate data; the remote modeler owns the real
// shape. What an Entity does carry is a transient identifier, a kind, and
// optionally enough locally computed measure/footprint information to let
// filters narrow without a network round trip.
package entity

import (
	"fmt"

	"partforge/domain/geometry"
)

// Kind discriminates the four entity kinds the remote modeler exposes.
type Kind string

const (
	KindVertex Kind = "VERTEX"
	KindEdge   Kind = "EDGE"
	KindFace   Kind = "FACE"
	KindBody   Kind = "BODY"
)

// ParseKind matches a string to a Kind, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindVertex, KindEdge, KindFace, KindBody:
		return Kind(s), nil
	}
	switch s {
	case "vertex":
		return KindVertex, nil
	case "edge":
		return KindEdge, nil
	case "face":
		return KindFace, nil
	case "body":
		return KindBody, nil
	}
	return "", fmt.Errorf("'%s' is not a valid entity kind", s)
}

// Measure is the locally known metric summary of an entity: a
// representative point (centroid for faces and bodies, midpoint for edges,
// the point itself for vertices) and a size (area for faces, length for
// edges, zero for vertices).
type Measure struct {
	Known bool
	Ref   geometry.Point2
	Size  float64
}

// Entity is a reference to a piece of remote geometry.
type Entity struct {
	TransientID string
	Kind        Kind

	// Measure supports local largest/smallest/closest-to evaluation. A
	// zero Measure means the geometry is only known remotely.
	Measure Measure

	// Footprint, when present, supports local contains-point and
	// line-intersection evaluation.
	Footprint Footprint
}

func (e Entity) String() string {
	return fmt.Sprintf("%s(%s)", e.Kind, e.TransientID)
}
