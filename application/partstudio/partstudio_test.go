package partstudio

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"partforge/application/builder"
	"partforge/application/ports"
	"partforge/domain/entity"
	"partforge/domain/feature"
	"partforge/domain/geometry"
	pkgerrors "partforge/pkg/errors"
)

type stubAPI struct {
	addCalls  int
	evalCalls int
	listCalls int

	addFn  func(def ports.FeatureDefinition) (*ports.FeatureResult, error)
	evalFn func(script string) ([]ports.EntityRef, error)
	listFn func() ([]ports.PartRef, error)
}

func (s *stubAPI) AddFeature(_ context.Context, def ports.FeatureDefinition) (*ports.FeatureResult, error) {
	s.addCalls++
	if s.addFn == nil {
		return &ports.FeatureResult{FeatureID: "F0", Status: "OK"}, nil
	}
	return s.addFn(def)
}

func (s *stubAPI) EvalQuery(_ context.Context, script string) ([]ports.EntityRef, error) {
	s.evalCalls++
	if s.evalFn == nil {
		return []ports.EntityRef{{TransientID: "JDC"}}, nil
	}
	return s.evalFn(script)
}

func (s *stubAPI) ListParts(_ context.Context) ([]ports.PartRef, error) {
	s.listCalls++
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn()
}

func newStudio(api ports.SubmissionAPI) *PartStudio {
	return New(api, builder.New(builder.UnitInch, zap.NewNop()), zap.NewNop())
}

func TestSketchExtrudeRoundTrip(t *testing.T) {
	const inch = 0.0254
	stub := &stubAPI{
		addFn: func(def ports.FeatureDefinition) (*ports.FeatureResult, error) {
			switch def.Kind {
			case ports.KindSketch:
				return &ports.FeatureResult{FeatureID: "FS1", Status: "OK"}, nil
			case ports.KindExtrude:
				side := math.Pi * (0.5 * inch) * (0.5 * inch)
				return &ports.FeatureResult{
					FeatureID: "FX1",
					Status:    "OK",
					Parts:     []ports.PartRef{{ID: "P1", Name: "Part 1"}},
					Entities: []ports.EntityRef{
						{TransientID: "f-top", Kind: "FACE", OwnerID: "P1",
							Reference: [3]float64{0, 0, inch}, Size: side},
						{TransientID: "f-bottom", Kind: "FACE", OwnerID: "P1",
							Reference: [3]float64{0, 0, 0}, Size: side},
						{TransientID: "f-side", Kind: "FACE", OwnerID: "P1",
							Reference: [3]float64{0.5 * inch, 0, 0.5 * inch},
							Size:      2 * math.Pi * 0.5 * inch * inch},
					},
				}, nil
			}
			t.Fatalf("unexpected feature kind %s", def.Kind)
			return nil, nil
		},
	}
	ps := newStudio(stub)
	ctx := context.Background()

	top, err := ps.TopPlane(ctx)
	require.NoError(t, err)

	sk := ps.NewSketch(top, "")
	_, err = sk.AddCircle(geometry.Pt(0, 0), 0.5)
	require.NoError(t, err)
	require.NoError(t, ps.AddSketch(ctx, sk))
	assert.Equal(t, "FS1", sk.ID())

	part, err := ps.AddExtrude(ctx, feature.NewExtrude(sk, 1))
	require.NoError(t, err)
	require.NotNil(t, part)
	assert.Equal(t, "P1", part.PartID)

	faces := part.Faces()
	require.True(t, faces.IsResolved())
	assert.Equal(t, 3, faces.Count())

	largest := faces.Largest()
	require.Equal(t, 1, largest.Count())
	assert.Equal(t, "f-side", largest.Resolved()[0].TransientID)

	// Flat-face measures come back in user units.
	caps := faces.Smallest()
	require.Equal(t, 1, caps.Count())
	assert.InDelta(t, math.Pi*0.25, caps.Resolved()[0].Measure.Size, 1e-9)

	assert.Equal(t, 2, ps.Features().Len())
	assert.Equal(t, 2, stub.addCalls)
}

func TestLocalValidationSkipsNetwork(t *testing.T) {
	stub := &stubAPI{}
	ps := newStudio(stub)
	ctx := context.Background()

	top, err := ps.TopPlane(ctx)
	require.NoError(t, err)

	empty := ps.NewSketch(top, "")
	require.NoError(t, ps.AddSketch(ctx, empty))

	_, err = ps.AddExtrude(ctx, feature.NewExtrude(empty, 1))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeEmptyQuery))

	// The sketch submission is the only feature call made.
	assert.Equal(t, 1, stub.addCalls)
	assert.Equal(t, 1, ps.Features().Len())
}

func TestDefaultPlaneResolvedOnce(t *testing.T) {
	stub := &stubAPI{}
	ps := newStudio(stub)
	ctx := context.Background()

	first, err := ps.TopPlane(ctx)
	require.NoError(t, err)
	second, err := ps.TopPlane(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, "JDC", first.TransientID())
	assert.Equal(t, 1, stub.evalCalls)

	_, err = ps.FrontPlane(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stub.evalCalls)
}

func TestRemoteErrorLeavesStudioUntouched(t *testing.T) {
	stub := &stubAPI{
		addFn: func(ports.FeatureDefinition) (*ports.FeatureResult, error) {
			return nil, pkgerrors.NewRemoteError(400, `{"message":"regeneration failed"}`)
		},
	}
	ps := newStudio(stub)
	ctx := context.Background()

	top, err := ps.TopPlane(ctx)
	require.NoError(t, err)
	sk := ps.NewSketch(top, "")
	_, err = sk.AddCircle(geometry.Pt(0, 0), 1)
	require.NoError(t, err)

	err = ps.AddSketch(ctx, sk)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsRemote(err))
	assert.Contains(t, pkgerrors.GetAppError(err).Body, "regeneration failed")

	assert.Empty(t, sk.ID())
	assert.Equal(t, 0, ps.Features().Len())
	assert.Equal(t, 0, ps.Parts().Len())
}

func TestDefaultFeatureNaming(t *testing.T) {
	stub := &stubAPI{}
	ps := newStudio(stub)
	ctx := context.Background()

	top, err := ps.TopPlane(ctx)
	require.NoError(t, err)

	first := ps.NewSketch(top, "")
	second := ps.NewSketch(top, "")
	named := ps.NewSketch(top, "profile")
	assert.Equal(t, "Sketch 1", first.Name())
	assert.Equal(t, "Sketch 2", second.Name())
	assert.Equal(t, "profile", named.Name())

	_, err = first.AddCircle(geometry.Pt(0, 0), 1)
	require.NoError(t, err)
	require.NoError(t, ps.AddSketch(ctx, first))

	e := feature.NewExtrude(first, 1)
	_, err = ps.AddExtrude(ctx, e)
	require.NoError(t, err)
	assert.Equal(t, "Extrude 1", e.Name())
}

func TestTranslateCopyAndUnionCreateParts(t *testing.T) {
	stub := &stubAPI{
		listFn: func() ([]ports.PartRef, error) {
			return []ports.PartRef{{ID: "P1", Name: "Base"}}, nil
		},
		addFn: func(def ports.FeatureDefinition) (*ports.FeatureResult, error) {
			switch def.Kind {
			case ports.KindTransform:
				assert.True(t, def.Copy)
				assert.Contains(t, def.BodyQuery, `qTransient("P1")`)
				return &ports.FeatureResult{
					FeatureID: "FT1",
					Status:    "OK",
					Parts:     []ports.PartRef{{ID: "P2", Name: "Base copy"}},
				}, nil
			case ports.KindBooleanUnion:
				assert.Equal(t, []string{"P1", "P2"}, def.BooleanScope)
				return &ports.FeatureResult{
					FeatureID: "FB1",
					Status:    "OK",
					Parts:     []ports.PartRef{{ID: "P3", Name: "Fused"}},
				}, nil
			}
			t.Fatalf("unexpected feature kind %s", def.Kind)
			return nil, nil
		},
	}
	ps := newStudio(stub)
	ctx := context.Background()

	require.NoError(t, ps.RefreshParts(ctx))
	base, ok := ps.Parts().GetID("P1")
	require.True(t, ok)

	tr := feature.NewTranslatePart(base, entity.Point3{Z: 2}).Copying()
	moved, err := ps.AddTranslatePart(ctx, tr)
	require.NoError(t, err)
	require.NotNil(t, moved)
	assert.Equal(t, "P2", moved.PartID)
	assert.Equal(t, "Transform 1", tr.Name())

	u := feature.NewBooleanUnion(base, moved)
	fused, err := ps.AddBooleanUnion(ctx, u)
	require.NoError(t, err)
	require.NotNil(t, fused)
	assert.Equal(t, "P3", fused.PartID)
	assert.Equal(t, "Union 1", u.Name())

	assert.Equal(t, 2, ps.Features().Len())
	assert.Equal(t, 3, ps.Parts().Len())
}

func TestBooleanUnionValidationSkipsNetwork(t *testing.T) {
	stub := &stubAPI{}
	ps := newStudio(stub)

	_, err := ps.AddBooleanUnion(context.Background(),
		feature.NewBooleanUnion(feature.NewPart("P1", "only", nil)))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeParameter))
	assert.Equal(t, 0, stub.addCalls)
	assert.Equal(t, 0, ps.Features().Len())
}

func TestRefreshPartsRegistersUnseen(t *testing.T) {
	stub := &stubAPI{
		listFn: func() ([]ports.PartRef, error) {
			return []ports.PartRef{{ID: "P1", Name: "Base"}, {ID: "P2", Name: "Lid"}}, nil
		},
	}
	ps := newStudio(stub)
	ctx := context.Background()

	require.NoError(t, ps.RefreshParts(ctx))
	require.NoError(t, ps.RefreshParts(ctx))

	assert.Equal(t, 2, ps.Parts().Len())
	got, ok := ps.Parts().Get("lid")
	require.True(t, ok)
	assert.Equal(t, "P2", got.PartID)
}
