package entity

// QueryExpression is an immutable description of an entity subset. Building
// one never touches the network; it is either evaluated locally (when the
// geometry is already known) or rendered verbatim into an outgoing feature
// request for the remote evaluator to resolve.
//
// The expression forms a closed set of variants. Consumers (the local
// filter evaluator and the request builder) handle every variant with an
// exhaustive type switch; adding a variant is a deliberate, breaking
// change for both.
type QueryExpression interface {
	queryNode()
}

// Point3 is a point or direction in the part studio's 3D space, used only
// inside query expressions. The remote evaluator works in 3D even though
// sketch geometry is planar.
type Point3 struct {
	X float64
	Y float64
	Z float64
}

// SketchRegion selects every entity derived from a sketch feature's items.
type SketchRegion struct {
	FeatureID string
}

// CreatedBy selects entities of one kind created by a feature.
type CreatedBy struct {
	FeatureID string
	Kind      Kind
}

// OwnedBy selects entities of one kind belonging to a part's body.
type OwnedBy struct {
	PartID string
	Kind   Kind
}

// Transient selects a concrete set of remotely assigned transient ids.
type Transient struct {
	IDs []string
}

// Intersects keeps entities crossed by an infinite line.
type Intersects struct {
	Inner     QueryExpression
	Origin    Point3
	Direction Point3
}

// Largest narrows to the single entity with the maximum measure.
type Largest struct {
	Inner QueryExpression
}

// Smallest narrows to the single entity with the minimum measure.
type Smallest struct {
	Inner QueryExpression
}

// ClosestTo narrows to the entity whose reference point is nearest to a
// point.
type ClosestTo struct {
	Inner QueryExpression
	Point Point3
}

// ContainsPoint keeps entities whose region or boundary contains a point.
type ContainsPoint struct {
	Inner QueryExpression
	Point Point3
}

// OfKind keeps entities of one kind.
type OfKind struct {
	Inner QueryExpression
	Kind  Kind
}

// UnionOf is the set union of several expressions.
type UnionOf struct {
	Operands []QueryExpression
}

func (SketchRegion) queryNode()  {}
func (CreatedBy) queryNode()     {}
func (OwnedBy) queryNode()       {}
func (Transient) queryNode()     {}
func (Intersects) queryNode()    {}
func (Largest) queryNode()       {}
func (Smallest) queryNode()      {}
func (ClosestTo) queryNode()     {}
func (ContainsPoint) queryNode() {}
func (OfKind) queryNode()        {}
func (UnionOf) queryNode()       {}
