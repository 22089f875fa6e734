// Package builder renders locally built features into the wire form the
// remote evaluator accepts. Rendering is where unit normalization
// happens: sketch geometry stays in user units until a feature is
// submitted, and every length crossing the wire is converted to meters
// here. Build-time validation rejects requests that are already known
// to be invalid before any network call is made.
package builder

import (
	"fmt"

	"go.uber.org/zap"

	"partforge/application/ports"
	"partforge/domain/entity"
	"partforge/domain/feature"
	"partforge/domain/sketch"
	pkgerrors "partforge/pkg/errors"
)

// UnitSystem names the length unit user-facing geometry is expressed in.
type UnitSystem string

const (
	UnitInch   UnitSystem = "inch"
	UnitMetric UnitSystem = "metric"
)

const metersPerInch = 0.0254

// Factor returns the meters-per-unit conversion factor.
func (u UnitSystem) Factor() float64 {
	if u == UnitInch {
		return metersPerInch
	}
	return 1
}

// Builder renders features for one part studio. It is stateless apart
// from its unit system and safe to share.
type Builder struct {
	units  UnitSystem
	logger *zap.Logger
}

// New creates a builder for the given unit system.
func New(units UnitSystem, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{units: units, logger: logger}
}

// Units returns the builder's unit system.
func (b *Builder) Units() UnitSystem {
	return b.units
}

// BuildSketch renders a sketch feature: its plane query plus one curve
// record per item, converted to meters.
func (b *Builder) BuildSketch(s *sketch.Sketch) (ports.FeatureDefinition, error) {
	plane, err := b.renderQuery(s.Plane())
	if err != nil {
		return ports.FeatureDefinition{}, err
	}

	f := b.units.Factor()
	items := s.Items()
	curves := make([]ports.CurveRecord, 0, len(items))
	for _, item := range items {
		switch it := item.(type) {
		case *sketch.Line:
			curves = append(curves, ports.CurveRecord{
				Type:  ports.CurveLine,
				ID:    it.TransientID(),
				Start: [2]float64{it.Start.X * f, it.Start.Y * f},
				End:   [2]float64{it.End.X * f, it.End.Y * f},
			})
		case *sketch.Circle:
			curves = append(curves, ports.CurveRecord{
				Type:   ports.CurveCircle,
				ID:     it.TransientID(),
				Center: [2]float64{it.Center.X * f, it.Center.Y * f},
				Radius: it.Radius * f,
			})
		case *sketch.Arc:
			curves = append(curves, ports.CurveRecord{
				Type:       ports.CurveArc,
				ID:         it.TransientID(),
				Center:     [2]float64{it.Center.X * f, it.Center.Y * f},
				Radius:     it.Radius * f,
				StartAngle: it.StartAngle,
				EndAngle:   it.EndAngle,
			})
		default:
			return ports.FeatureDefinition{}, pkgerrors.NewInternalError(fmt.Sprintf("unknown sketch item %T", item))
		}
	}

	b.logger.Debug("rendered sketch feature",
		zap.String("name", s.Name()),
		zap.Int("curves", len(curves)))
	return ports.FeatureDefinition{
		Kind:       ports.KindSketch,
		Name:       s.Name(),
		PlaneQuery: plane,
		Curves:     curves,
	}, nil
}

// BuildExtrude renders an extrude feature. An extrude whose face query
// is locally known to match nothing fails here, before any network
// call.
func (b *Builder) BuildExtrude(e *feature.Extrude) (ports.FeatureDefinition, error) {
	if e.Source == nil {
		return ports.FeatureDefinition{}, pkgerrors.NewParameterError("extrude has no face source")
	}
	if e.MergeWith != nil && e.SubtractFrom != nil {
		return ports.FeatureDefinition{}, pkgerrors.NewParameterError("extrude cannot both merge and subtract")
	}

	faces := e.FaceFilter()
	if faces.IsEmpty() {
		return ports.FeatureDefinition{}, pkgerrors.NewEmptyQueryError("extrude profile matches no faces")
	}
	query, err := b.renderQuery(faces.Expression())
	if err != nil {
		return ports.FeatureDefinition{}, err
	}

	def := ports.FeatureDefinition{
		Kind:      ports.KindExtrude,
		Name:      e.Name(),
		FaceQuery: query,
		Distance:  e.Distance * b.units.Factor(),
		Operation: ports.OperationNew,
	}
	switch {
	case e.MergeWith != nil:
		def.Operation = ports.OperationAdd
		def.BooleanScope = []string{e.MergeWith.PartID}
	case e.SubtractFrom != nil:
		def.Operation = ports.OperationRemove
		def.BooleanScope = []string{e.SubtractFrom.PartID}
	}

	b.logger.Debug("rendered extrude feature",
		zap.String("name", e.Name()),
		zap.String("operation", def.Operation))
	return def, nil
}

// BuildLoft renders a loft feature. Both profiles must be locally
// plausible: a side known to match nothing cannot be paired.
func (b *Builder) BuildLoft(l *feature.Loft) (ports.FeatureDefinition, error) {
	if l.Start == nil || l.End == nil {
		return ports.FeatureDefinition{}, pkgerrors.NewParameterError("loft needs both a start and an end profile")
	}
	start := l.Start.FaceFilter()
	end := l.End.FaceFilter()
	if start.IsEmpty() || end.IsEmpty() {
		return ports.FeatureDefinition{}, pkgerrors.NewLoftMismatchError("loft profile matches no faces")
	}
	if start.IsResolved() && end.IsResolved() && start.Count() != end.Count() {
		return ports.FeatureDefinition{}, pkgerrors.NewLoftMismatchError(fmt.Sprintf(
			"loft profiles cannot be paired one-to-one: %d faces against %d",
			start.Count(), end.Count()))
	}

	startQ, err := b.renderQuery(start.Expression())
	if err != nil {
		return ports.FeatureDefinition{}, err
	}
	endQ, err := b.renderQuery(end.Expression())
	if err != nil {
		return ports.FeatureDefinition{}, err
	}

	b.logger.Debug("rendered loft feature", zap.String("name", l.Name()))
	return ports.FeatureDefinition{
		Kind:         ports.KindLoft,
		Name:         l.Name(),
		FaceQuery:    startQ,
		EndFaceQuery: endQ,
	}, nil
}

// BuildTranslatePart renders a part translate: the target body's query
// plus the offset converted to meters.
func (b *Builder) BuildTranslatePart(t *feature.TranslatePart) (ports.FeatureDefinition, error) {
	if t.Target == nil {
		return ports.FeatureDefinition{}, pkgerrors.NewParameterError("translate has no target part")
	}
	body, err := b.renderQuery(entity.OwnedBy{PartID: t.Target.PartID, Kind: entity.KindBody})
	if err != nil {
		return ports.FeatureDefinition{}, err
	}

	f := b.units.Factor()
	return ports.FeatureDefinition{
		Kind:      ports.KindTransform,
		Name:      t.Name(),
		BodyQuery: body,
		Offset:    [3]float64{t.Offset.X * f, t.Offset.Y * f, t.Offset.Z * f},
		Copy:      t.Copy,
	}, nil
}

// BuildBooleanUnion renders a union of parts. A union needs at least two
// bodies to fuse.
func (b *Builder) BuildBooleanUnion(u *feature.BooleanUnion) (ports.FeatureDefinition, error) {
	if len(u.Tools) < 2 {
		return ports.FeatureDefinition{}, pkgerrors.NewParameterError(fmt.Sprintf(
			"boolean union needs at least 2 parts, got %d", len(u.Tools)))
	}
	scope := make([]string, len(u.Tools))
	for i, p := range u.Tools {
		if p == nil {
			return ports.FeatureDefinition{}, pkgerrors.NewParameterError("boolean union has a nil part")
		}
		scope[i] = p.PartID
	}

	return ports.FeatureDefinition{
		Kind:         ports.KindBooleanUnion,
		Name:         u.Name(),
		BooleanScope: scope,
		KeepTools:    u.KeepTools,
	}, nil
}

// BuildOffsetPlane renders an offset construction plane feature.
func (b *Builder) BuildOffsetPlane(p *feature.OffsetPlane) (ports.FeatureDefinition, error) {
	if p.Base == nil {
		return ports.FeatureDefinition{}, pkgerrors.NewParameterError("offset plane has no base plane")
	}
	base, err := b.renderQuery(p.Base.PlaneExpression())
	if err != nil {
		return ports.FeatureDefinition{}, err
	}

	return ports.FeatureDefinition{
		Kind:       ports.KindOffsetPlane,
		Name:       p.Name(),
		PlaneQuery: base,
		Distance:   p.Distance * b.units.Factor(),
	}, nil
}
