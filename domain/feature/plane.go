package feature

import (
	"fmt"

	"partforge/domain/entity"
)

// Orientation names one of the three default construction planes every
// part studio starts with.
type Orientation string

const (
	Top   Orientation = "Top"
	Front Orientation = "Front"
	Right Orientation = "Right"
)

// DefaultPlane is one of the studio's built-in planes. Its transient id
// is resolved remotely on first use and bound once.
type DefaultPlane struct {
	orientation Orientation
	transientID string
}

// NewDefaultPlane returns an unbound default plane.
func NewDefaultPlane(o Orientation) *DefaultPlane {
	return &DefaultPlane{orientation: o}
}

// Orientation returns which of the three built-in planes this is.
func (p *DefaultPlane) Orientation() Orientation { return p.orientation }

// TransientID returns the resolved plane entity id, empty until bound.
func (p *DefaultPlane) TransientID() string { return p.transientID }

// Bind records the remotely resolved transient id.
func (p *DefaultPlane) Bind(id string) { p.transientID = id }

// PlaneExpression returns the query selecting this plane's face.
func (p *DefaultPlane) PlaneExpression() entity.QueryExpression {
	return entity.Transient{IDs: []string{p.transientID}}
}

func (p *DefaultPlane) String() string {
	return fmt.Sprintf("DefaultPlane(%s)", p.orientation)
}

// OffsetPlane is a construction plane parallel to another plane at a
// signed distance along its normal. It occupies a timeline slot like
// any other feature.
type OffsetPlane struct {
	id   string
	name string

	Base     PlaneRef
	Distance float64
}

// NewOffsetPlane creates an offset plane feature from a base plane and
// a signed offset distance in user units.
func NewOffsetPlane(base PlaneRef, distance float64) *OffsetPlane {
	return &OffsetPlane{Base: base, Distance: distance}
}

// Named sets the feature's display name and returns the plane for
// chaining.
func (p *OffsetPlane) Named(name string) *OffsetPlane {
	p.name = name
	return p
}

func (p *OffsetPlane) ID() string   { return p.id }
func (p *OffsetPlane) Name() string { return p.name }

// SetName is used for default naming when no explicit name was given.
func (p *OffsetPlane) SetName(name string) { p.name = name }

// BindRemote records the remote feature id after submission.
func (p *OffsetPlane) BindRemote(id string) { p.id = id }

// PlaneExpression selects the plane face this feature created. Before
// submission the query is rooted at nothing and cannot resolve, so
// sketches must be placed on the plane only after it is submitted.
func (p *OffsetPlane) PlaneExpression() entity.QueryExpression {
	return entity.CreatedBy{FeatureID: p.id, Kind: entity.KindFace}
}
