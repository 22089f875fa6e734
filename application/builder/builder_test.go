package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"partforge/application/ports"
	"partforge/domain/entity"
	"partforge/domain/feature"
	"partforge/domain/geometry"
	"partforge/domain/sketch"
	pkgerrors "partforge/pkg/errors"
)

func planeOn(id string) entity.QueryExpression {
	return entity.Transient{IDs: []string{id}}
}

func TestBuildSketchConvertsInchesToMeters(t *testing.T) {
	b := New(UnitInch, zap.NewNop())
	sk := sketch.NewSketch("Sketch 1", planeOn("JDC"))
	_, err := sk.AddCircle(geometry.Pt(1, 0), 0.5)
	require.NoError(t, err)
	_, err = sk.AddLine(geometry.Pt(0, 0), geometry.Pt(2, 0))
	require.NoError(t, err)

	def, err := b.BuildSketch(sk)
	require.NoError(t, err)
	assert.Equal(t, ports.KindSketch, def.Kind)
	assert.Equal(t, `qTransient("JDC")`, def.PlaneQuery)
	require.Len(t, def.Curves, 2)

	circle := def.Curves[0]
	assert.Equal(t, ports.CurveCircle, circle.Type)
	assert.InDelta(t, 0.0127, circle.Radius, 1e-12)
	assert.InDelta(t, 0.0254, circle.Center[0], 1e-12)

	line := def.Curves[1]
	assert.Equal(t, ports.CurveLine, line.Type)
	assert.InDelta(t, 0.0508, line.End[0], 1e-12)
}

func TestBuildSketchMetricPassesThrough(t *testing.T) {
	b := New(UnitMetric, zap.NewNop())
	sk := sketch.NewSketch("Sketch 1", planeOn("JDC"))
	_, err := sk.AddCircle(geometry.Pt(0, 0), 0.5)
	require.NoError(t, err)

	def, err := b.BuildSketch(sk)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, def.Curves[0].Radius, 1e-12)
}

func TestBuildSketchKeepsArcAngles(t *testing.T) {
	b := New(UnitInch, zap.NewNop())
	sk := sketch.NewSketch("Sketch 1", planeOn("JDC"))
	arc, err := sk.AddCenterpointArc(geometry.Pt(0, 0), 1, 0, 90)
	require.NoError(t, err)

	def, err := b.BuildSketch(sk)
	require.NoError(t, err)
	require.Len(t, def.Curves, 1)
	rec := def.Curves[0]
	assert.Equal(t, ports.CurveArc, rec.Type)
	assert.InDelta(t, arc.StartAngle, rec.StartAngle, 1e-12)
	assert.InDelta(t, arc.EndAngle, rec.EndAngle, 1e-12)
	assert.InDelta(t, 0.0254, rec.Radius, 1e-12)
}

func TestRenderQueryNesting(t *testing.T) {
	b := New(UnitInch, zap.NewNop())
	expr := entity.Largest{Inner: entity.ContainsPoint{
		Inner: entity.SketchRegion{FeatureID: "FS1"},
		Point: entity.Point3{X: 1, Y: 0, Z: 0},
	}}

	got, err := b.renderQuery(expr)
	require.NoError(t, err)
	assert.Equal(t,
		`qLargest(qContainsPoint(qSketchRegion(makeId("FS1"), false), vector([0.0254, 0, 0]) * meter))`,
		got)
}

func TestRenderQueryUnionAndKinds(t *testing.T) {
	b := New(UnitMetric, zap.NewNop())
	expr := entity.OfKind{
		Inner: entity.UnionOf{Operands: []entity.QueryExpression{
			entity.OwnedBy{PartID: "P1", Kind: entity.KindFace},
			entity.CreatedBy{FeatureID: "FX2", Kind: entity.KindFace},
		}},
		Kind: entity.KindFace,
	}

	got, err := b.renderQuery(expr)
	require.NoError(t, err)
	assert.Equal(t,
		`qEntityFilter(qUnion([qOwnedByBody(qTransient("P1"), EntityType.FACE), qCreatedBy(makeId("FX2"), EntityType.FACE)]), EntityType.FACE)`,
		got)
}

func TestRenderQueryRejectsUnsubmittedFeature(t *testing.T) {
	b := New(UnitInch, zap.NewNop())
	_, err := b.renderQuery(entity.SketchRegion{FeatureID: ""})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeParameter))
}

func TestBuildExtrudeRejectsEmptyProfile(t *testing.T) {
	b := New(UnitInch, zap.NewNop())
	sk := sketch.NewSketch("Sketch 1", planeOn("JDC"))

	_, err := b.BuildExtrude(feature.NewExtrude(sk, 1))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeEmptyQuery))
}

func TestBuildExtrudeBooleanScope(t *testing.T) {
	b := New(UnitInch, zap.NewNop())
	sk := sketch.NewSketch("Sketch 1", planeOn("JDC"))
	sk.BindRemote("FS1")
	_, err := sk.AddCircle(geometry.Pt(0, 0), 0.5)
	require.NoError(t, err)
	base := feature.NewPart("P1", "base", nil)

	def, err := b.BuildExtrude(feature.NewExtrude(sk, 1).Merging(base))
	require.NoError(t, err)
	assert.Equal(t, ports.OperationAdd, def.Operation)
	assert.Equal(t, []string{"P1"}, def.BooleanScope)
	assert.InDelta(t, 0.0254, def.Distance, 1e-12)
	assert.Contains(t, def.FaceQuery, `qSketchRegion(makeId("FS1"), false)`)
}

func TestBuildExtrudeRejectsMergeAndSubtract(t *testing.T) {
	b := New(UnitInch, zap.NewNop())
	sk := sketch.NewSketch("Sketch 1", planeOn("JDC"))
	_, err := sk.AddCircle(geometry.Pt(0, 0), 0.5)
	require.NoError(t, err)

	e := feature.NewExtrude(sk, 1).
		Merging(feature.NewPart("P1", "a", nil)).
		Subtracting(feature.NewPart("P2", "b", nil))
	_, err = b.BuildExtrude(e)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeParameter))
}

func TestBuildLoftRejectsEmptySide(t *testing.T) {
	b := New(UnitInch, zap.NewNop())
	full := sketch.NewSketch("Sketch 1", planeOn("JDC"))
	_, err := full.AddCircle(geometry.Pt(0, 0), 0.5)
	require.NoError(t, err)
	empty := sketch.NewSketch("Sketch 2", planeOn("JDC"))

	_, err = b.BuildLoft(feature.NewLoft(full, empty))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeLoftMismatch))
}

func TestBuildLoftRejectsCountMismatch(t *testing.T) {
	b := New(UnitInch, zap.NewNop())
	start := sketch.NewSketch("Sketch 1", planeOn("JDC"))
	start.BindRemote("FS1")
	_, err := start.AddCircle(geometry.Pt(0, 0), 0.5)
	require.NoError(t, err)
	_, err = start.AddCircle(geometry.Pt(3, 0), 0.5)
	require.NoError(t, err)

	end := sketch.NewSketch("Sketch 2", planeOn("JDC"))
	end.BindRemote("FS2")
	for _, x := range []float64{0, 3, 6} {
		_, err = end.AddCircle(geometry.Pt(x, 0), 0.5)
		require.NoError(t, err)
	}

	_, err = b.BuildLoft(feature.NewLoft(start, end))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeLoftMismatch))

	// Equal face counts pair one-to-one and build fine.
	_, err = start.AddCircle(geometry.Pt(6, 0), 0.5)
	require.NoError(t, err)
	def, err := b.BuildLoft(feature.NewLoft(start, end))
	require.NoError(t, err)
	assert.Equal(t, ports.KindLoft, def.Kind)
}

func TestBuildExtrudeRejectsUnsubmittedSketch(t *testing.T) {
	b := New(UnitInch, zap.NewNop())
	sk := sketch.NewSketch("Sketch 1", planeOn("JDC"))
	_, err := sk.AddCircle(geometry.Pt(0, 0), 0.5)
	require.NoError(t, err)

	_, err = b.BuildExtrude(feature.NewExtrude(sk, 1))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeParameter))
}

func TestBuildTranslatePartConvertsOffset(t *testing.T) {
	b := New(UnitInch, zap.NewNop())
	part := feature.NewPart("P1", "base", nil)

	def, err := b.BuildTranslatePart(
		feature.NewTranslatePart(part, entity.Point3{X: 1, Y: 2, Z: 0}).Copying())
	require.NoError(t, err)
	assert.Equal(t, ports.KindTransform, def.Kind)
	assert.Equal(t, `qOwnedByBody(qTransient("P1"), EntityType.BODY)`, def.BodyQuery)
	assert.InDelta(t, 0.0254, def.Offset[0], 1e-12)
	assert.InDelta(t, 0.0508, def.Offset[1], 1e-12)
	assert.True(t, def.Copy)
}

func TestBuildTranslatePartRequiresTarget(t *testing.T) {
	b := New(UnitInch, zap.NewNop())
	_, err := b.BuildTranslatePart(feature.NewTranslatePart(nil, entity.Point3{X: 1}))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeParameter))
}

func TestBuildBooleanUnion(t *testing.T) {
	b := New(UnitInch, zap.NewNop())
	u := feature.NewBooleanUnion(
		feature.NewPart("P1", "a", nil),
		feature.NewPart("P2", "b", nil),
	).KeepingTools()

	def, err := b.BuildBooleanUnion(u)
	require.NoError(t, err)
	assert.Equal(t, ports.KindBooleanUnion, def.Kind)
	assert.Equal(t, []string{"P1", "P2"}, def.BooleanScope)
	assert.True(t, def.KeepTools)
}

func TestBuildBooleanUnionNeedsTwoParts(t *testing.T) {
	b := New(UnitInch, zap.NewNop())
	_, err := b.BuildBooleanUnion(feature.NewBooleanUnion(feature.NewPart("P1", "a", nil)))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeParameter))
}

func TestBuildOffsetPlane(t *testing.T) {
	b := New(UnitInch, zap.NewNop())
	top := feature.NewDefaultPlane(feature.Top)
	top.Bind("JDC")

	def, err := b.BuildOffsetPlane(feature.NewOffsetPlane(top, 2).Named("Raised"))
	require.NoError(t, err)
	assert.Equal(t, ports.KindOffsetPlane, def.Kind)
	assert.Equal(t, `qTransient("JDC")`, def.PlaneQuery)
	assert.InDelta(t, 0.0508, def.Distance, 1e-12)
}
