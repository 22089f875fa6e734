// Package ports defines the boundary between the application layer and
// the remote CAD evaluator. The application talks only to these
// interfaces; infrastructure provides the implementations.
package ports

import "context"

// SubmissionAPI is the remote evaluator collaborator. Every call crosses
// the network and may fail with a REMOTE or NETWORK error.
type SubmissionAPI interface {
	// AddFeature submits one feature definition and returns the remote
	// evaluation result. The remote evaluator assigns the feature id and
	// reports the bodies and entities the feature produced.
	AddFeature(ctx context.Context, def FeatureDefinition) (*FeatureResult, error)

	// EvalQuery evaluates a query script against the current studio
	// state and returns the matching entities.
	EvalQuery(ctx context.Context, script string) ([]EntityRef, error)

	// ListParts returns the solid bodies the studio currently contains.
	ListParts(ctx context.Context) ([]PartRef, error)
}

// FeatureDefinition is the wire form of one feature submission. All
// lengths and coordinates are in meters; queries are rendered scripts
// the remote evaluator parses.
type FeatureDefinition struct {
	Kind string `json:"kind"`
	Name string `json:"name"`

	// Sketch features.
	PlaneQuery string        `json:"planeQuery,omitempty"`
	Curves     []CurveRecord `json:"curves,omitempty"`

	// Extrude and loft features.
	FaceQuery    string   `json:"faceQuery,omitempty"`
	EndFaceQuery string   `json:"endFaceQuery,omitempty"`
	Distance     float64  `json:"distance,omitempty"`
	Operation    string   `json:"operation,omitempty"`
	BooleanScope []string `json:"booleanScope,omitempty"`

	// Part-level features: translate and boolean union.
	BodyQuery string     `json:"bodyQuery,omitempty"`
	Offset    [3]float64 `json:"offset,omitempty"`
	Copy      bool       `json:"copy,omitempty"`
	KeepTools bool       `json:"keepTools,omitempty"`
}

// Feature kinds understood by the evaluator.
const (
	KindSketch       = "newSketch"
	KindExtrude      = "extrude"
	KindLoft         = "loft"
	KindOffsetPlane  = "cPlane"
	KindTransform    = "transform"
	KindBooleanUnion = "boolean"
)

// Boolean operations an extrude can perform.
const (
	OperationNew    = "NEW"
	OperationAdd    = "ADD"
	OperationRemove = "REMOVE"
)

// CurveRecord is the wire form of one sketch item. Coordinates are in
// meters, angles in radians.
type CurveRecord struct {
	Type string `json:"type"`
	ID   string `json:"id"`

	Start [2]float64 `json:"start,omitempty"`
	End   [2]float64 `json:"end,omitempty"`

	Center     [2]float64 `json:"center,omitempty"`
	Radius     float64    `json:"radius,omitempty"`
	StartAngle float64    `json:"startAngle,omitempty"`
	EndAngle   float64    `json:"endAngle,omitempty"`
}

// Curve record types.
const (
	CurveLine   = "line"
	CurveCircle = "circle"
	CurveArc    = "arc"
)

// FeatureResult is what the evaluator reports after regenerating a
// submitted feature.
type FeatureResult struct {
	FeatureID string      `json:"featureId"`
	Status    string      `json:"featureStatus"`
	Parts     []PartRef   `json:"parts,omitempty"`
	Entities  []EntityRef `json:"entities,omitempty"`
}

// PartRef identifies one solid body.
type PartRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EntityRef is one remotely resolved entity with its measure data.
// Reference coordinates are in meters; Size is square meters for faces
// and meters for edges.
type EntityRef struct {
	TransientID string     `json:"transientId"`
	Kind        string     `json:"entityType"`
	OwnerID     string     `json:"ownerId"`
	Reference   [3]float64 `json:"reference"`
	Size        float64    `json:"size"`
}
