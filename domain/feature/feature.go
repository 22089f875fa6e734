// Package feature holds the modeling operations that make up a part
// studio's timeline: sketches, extrudes, lofts and construction planes.
// Features are built locally, submitted once, and bound to the remote
// id the evaluator assigns. After binding a feature is history; it is
// never edited in place.
package feature

import (
	"strings"

	"partforge/domain/entity"
)

// Feature is anything that occupies a slot in the timeline.
type Feature interface {
	// ID returns the remote feature id, empty until submitted.
	ID() string

	// Name returns the feature's display name.
	Name() string

	// BindRemote records the remote feature id after submission.
	BindRemote(id string)
}

// FaceSource is anything that can supply faces to a feature: a sketch,
// a part, or a filter already narrowed by the caller.
type FaceSource interface {
	FaceFilter() entity.Filter
}

// PlaneRef is anything a sketch can sit on: a default plane or an
// offset construction plane.
type PlaneRef interface {
	// PlaneExpression returns the query describing the plane entity.
	PlaneExpression() entity.QueryExpression
}

// Timeline is the ordered feature history of a part studio.
type Timeline struct {
	features []Feature
}

// Append adds a submitted feature to the end of the timeline.
func (t *Timeline) Append(f Feature) {
	t.features = append(t.features, f)
}

// Len returns the number of features in the timeline.
func (t *Timeline) Len() int {
	return len(t.features)
}

// All returns the features in timeline order.
func (t *Timeline) All() []Feature {
	return append([]Feature(nil), t.features...)
}

// Get returns the first feature whose name matches, case-insensitive.
func (t *Timeline) Get(name string) (Feature, bool) {
	for _, f := range t.features {
		if strings.EqualFold(f.Name(), name) {
			return f, true
		}
	}
	return nil, false
}

// GetID returns the feature bound to the given remote id.
func (t *Timeline) GetID(id string) (Feature, bool) {
	for _, f := range t.features {
		if f.ID() == id {
			return f, true
		}
	}
	return nil, false
}
