package feature

import (
	"partforge/domain/entity"
)

// Extrude sweeps a set of sketch faces along the plane normal by a
// signed distance, producing a new solid or modifying an existing one.
type Extrude struct {
	id   string
	name string

	Source   FaceSource
	Distance float64

	// MergeWith adds the extruded volume to an existing part instead of
	// creating a new one. SubtractFrom removes it from an existing part.
	// At most one of the two may be set.
	MergeWith    *Part
	SubtractFrom *Part
}

// NewExtrude creates an extrude of the given faces by a signed distance
// in user units.
func NewExtrude(source FaceSource, distance float64) *Extrude {
	return &Extrude{Source: source, Distance: distance}
}

// Named sets the feature's display name and returns the extrude for
// chaining.
func (e *Extrude) Named(name string) *Extrude {
	e.name = name
	return e
}

// Merging makes the extrude add material to an existing part.
func (e *Extrude) Merging(p *Part) *Extrude {
	e.MergeWith = p
	return e
}

// Subtracting makes the extrude remove material from an existing part.
func (e *Extrude) Subtracting(p *Part) *Extrude {
	e.SubtractFrom = p
	return e
}

func (e *Extrude) ID() string   { return e.id }
func (e *Extrude) Name() string { return e.name }

// SetName is used for default naming when no explicit name was given.
func (e *Extrude) SetName(name string) { e.name = name }

// BindRemote records the remote feature id after submission.
func (e *Extrude) BindRemote(id string) { e.id = id }

// FaceFilter returns the faces this feature consumes.
func (e *Extrude) FaceFilter() entity.Filter {
	return e.Source.FaceFilter()
}
