// Package partstudio is the application service tying the domain model
// to the remote evaluator. A PartStudio owns the feature timeline, the
// part list and the entity cache; every Add call builds and validates a
// feature locally, submits it, and merges the evaluator's response into
// the cache before returning. Submission and merge are one step: a
// failed call leaves the studio untouched.
//
// A PartStudio is not safe for concurrent use. The timeline is an
// ordered history and features reference earlier features' results, so
// callers drive it sequentially.
package partstudio

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"partforge/application/builder"
	"partforge/application/ports"
	"partforge/domain/entity"
	"partforge/domain/feature"
	"partforge/domain/geometry"
	"partforge/domain/sketch"
	pkgerrors "partforge/pkg/errors"
)

// PartStudio drives one remote part studio.
type PartStudio struct {
	api     ports.SubmissionAPI
	builder *builder.Builder
	logger  *zap.Logger

	timeline feature.Timeline
	parts    feature.PartList
	cache    *entity.Cache
	planes   map[feature.Orientation]*feature.DefaultPlane
	seq      map[string]int
}

// New creates a part studio service over the given submission port.
func New(api ports.SubmissionAPI, b *builder.Builder, logger *zap.Logger) *PartStudio {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PartStudio{
		api:     api,
		builder: b,
		logger:  logger,
		cache:   entity.NewCache(),
		planes: map[feature.Orientation]*feature.DefaultPlane{
			feature.Top:   feature.NewDefaultPlane(feature.Top),
			feature.Front: feature.NewDefaultPlane(feature.Front),
			feature.Right: feature.NewDefaultPlane(feature.Right),
		},
		seq: make(map[string]int),
	}
}

// Features returns the submitted feature timeline.
func (ps *PartStudio) Features() *feature.Timeline {
	return &ps.timeline
}

// Parts returns the parts created so far.
func (ps *PartStudio) Parts() *feature.PartList {
	return &ps.parts
}

// TopPlane returns the studio's Top default plane, resolving its
// transient id remotely on first use.
func (ps *PartStudio) TopPlane(ctx context.Context) (*feature.DefaultPlane, error) {
	return ps.defaultPlane(ctx, feature.Top)
}

// FrontPlane returns the studio's Front default plane.
func (ps *PartStudio) FrontPlane(ctx context.Context) (*feature.DefaultPlane, error) {
	return ps.defaultPlane(ctx, feature.Front)
}

// RightPlane returns the studio's Right default plane.
func (ps *PartStudio) RightPlane(ctx context.Context) (*feature.DefaultPlane, error) {
	return ps.defaultPlane(ctx, feature.Right)
}

func (ps *PartStudio) defaultPlane(ctx context.Context, o feature.Orientation) (*feature.DefaultPlane, error) {
	p := ps.planes[o]
	if p.TransientID() != "" {
		return p, nil
	}
	refs, err := ps.api.EvalQuery(ctx, builder.PlaneLookupScript(o))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "resolving %s plane", o)
	}
	if len(refs) == 0 {
		return nil, pkgerrors.NewEmptyQueryError(fmt.Sprintf("%s plane not found in studio", o))
	}
	p.Bind(refs[0].TransientID)
	ps.logger.Debug("resolved default plane",
		zap.String("orientation", string(o)),
		zap.String("transientId", refs[0].TransientID))
	return p, nil
}

// nextName produces the default display name for an unnamed feature.
func (ps *PartStudio) nextName(kind string) string {
	ps.seq[kind]++
	return fmt.Sprintf("%s %d", kind, ps.seq[kind])
}

// NewSketch creates an empty local sketch on a plane. The sketch joins
// the timeline only when AddSketch submits it; until then the caller is
// free to draw and transform.
func (ps *PartStudio) NewSketch(plane feature.PlaneRef, name string) *sketch.Sketch {
	if name == "" {
		name = ps.nextName("Sketch")
	}
	return sketch.NewSketch(name, plane.PlaneExpression())
}

// AddSketch submits a locally drawn sketch, binds the remote feature id
// and merges the derived entities the evaluator reports.
func (ps *PartStudio) AddSketch(ctx context.Context, sk *sketch.Sketch) error {
	def, err := ps.builder.BuildSketch(sk)
	if err != nil {
		return err
	}
	res, err := ps.submit(ctx, def)
	if err != nil {
		return err
	}
	sk.BindRemote(res.FeatureID)
	ps.timeline.Append(sk)
	ps.mergeResult(res)
	return nil
}

// AddExtrude submits an extrude and returns the part it created, or nil
// when the extrude only modified existing parts.
func (ps *PartStudio) AddExtrude(ctx context.Context, e *feature.Extrude) (*feature.Part, error) {
	if e.Name() == "" {
		e.SetName(ps.nextName("Extrude"))
	}
	def, err := ps.builder.BuildExtrude(e)
	if err != nil {
		return nil, err
	}
	res, err := ps.submit(ctx, def)
	if err != nil {
		return nil, err
	}
	e.BindRemote(res.FeatureID)
	ps.timeline.Append(e)
	ps.mergeResult(res)
	return ps.registerParts(res), nil
}

// AddLoft submits a loft between two profiles and returns the part it
// created.
func (ps *PartStudio) AddLoft(ctx context.Context, l *feature.Loft) (*feature.Part, error) {
	if l.Name() == "" {
		l.SetName(ps.nextName("Loft"))
	}
	def, err := ps.builder.BuildLoft(l)
	if err != nil {
		return nil, err
	}
	res, err := ps.submit(ctx, def)
	if err != nil {
		return nil, err
	}
	l.BindRemote(res.FeatureID)
	ps.timeline.Append(l)
	ps.mergeResult(res)
	return ps.registerParts(res), nil
}

// AddTranslatePart submits a part translate. When the translate copies,
// the returned part is the moved copy; otherwise nil, since the target
// part kept its identity.
func (ps *PartStudio) AddTranslatePart(ctx context.Context, t *feature.TranslatePart) (*feature.Part, error) {
	if t.Name() == "" {
		t.SetName(ps.nextName("Transform"))
	}
	def, err := ps.builder.BuildTranslatePart(t)
	if err != nil {
		return nil, err
	}
	res, err := ps.submit(ctx, def)
	if err != nil {
		return nil, err
	}
	t.BindRemote(res.FeatureID)
	ps.timeline.Append(t)
	ps.mergeResult(res)
	return ps.registerParts(res), nil
}

// AddBooleanUnion submits a union of parts and returns the fused part.
func (ps *PartStudio) AddBooleanUnion(ctx context.Context, u *feature.BooleanUnion) (*feature.Part, error) {
	if u.Name() == "" {
		u.SetName(ps.nextName("Union"))
	}
	def, err := ps.builder.BuildBooleanUnion(u)
	if err != nil {
		return nil, err
	}
	res, err := ps.submit(ctx, def)
	if err != nil {
		return nil, err
	}
	u.BindRemote(res.FeatureID)
	ps.timeline.Append(u)
	ps.mergeResult(res)
	return ps.registerParts(res), nil
}

// AddOffsetPlane submits an offset construction plane. Sketches may sit
// on it once this returns.
func (ps *PartStudio) AddOffsetPlane(ctx context.Context, p *feature.OffsetPlane) error {
	if p.Name() == "" {
		p.SetName(ps.nextName("Plane"))
	}
	def, err := ps.builder.BuildOffsetPlane(p)
	if err != nil {
		return err
	}
	res, err := ps.submit(ctx, def)
	if err != nil {
		return err
	}
	p.BindRemote(res.FeatureID)
	ps.timeline.Append(p)
	ps.mergeResult(res)
	return nil
}

// RefreshParts pulls the remote part list and registers any parts the
// studio has not seen, such as bodies created outside this client.
func (ps *PartStudio) RefreshParts(ctx context.Context) error {
	refs, err := ps.api.ListParts(ctx)
	if err != nil {
		return err
	}
	for _, ref := range refs {
		if _, ok := ps.parts.GetID(ref.ID); !ok {
			ps.parts.Add(feature.NewPart(ref.ID, ref.Name, ps.cache))
		}
	}
	return nil
}

func (ps *PartStudio) submit(ctx context.Context, def ports.FeatureDefinition) (*ports.FeatureResult, error) {
	ps.logger.Info("submitting feature",
		zap.String("kind", def.Kind),
		zap.String("name", def.Name))
	res, err := ps.api.AddFeature(ctx, def)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// mergeResult folds the evaluator's entity refs into the cache, grouped
// by owner, with wire units converted back to user units.
func (ps *PartStudio) mergeResult(res *ports.FeatureResult) {
	f := ps.builder.Units().Factor()
	groups := make(map[string][]entity.Entity)
	var owners []string
	for _, ref := range res.Entities {
		kind, err := entity.ParseKind(ref.Kind)
		if err != nil {
			ps.logger.Warn("skipping entity of unknown kind",
				zap.String("transientId", ref.TransientID),
				zap.String("kind", ref.Kind))
			continue
		}
		if _, seen := groups[ref.OwnerID]; !seen {
			owners = append(owners, ref.OwnerID)
		}
		groups[ref.OwnerID] = append(groups[ref.OwnerID], entity.Entity{
			TransientID: ref.TransientID,
			Kind:        kind,
			Measure: entity.Measure{
				Known: true,
				Ref:   geometry.Pt(ref.Reference[0]/f, ref.Reference[1]/f),
				Size:  userSize(kind, ref.Size, f),
			},
		})
	}
	for _, owner := range owners {
		ps.cache.Merge(owner, groups[owner])
	}
}

// userSize converts a wire-unit size back to user units by the power of
// the length factor its kind implies.
func userSize(kind entity.Kind, size, factor float64) float64 {
	switch kind {
	case entity.KindFace:
		return size / (factor * factor)
	case entity.KindEdge:
		return size / factor
	case entity.KindBody:
		return size / (factor * factor * factor)
	default:
		return size
	}
}

// registerParts wraps the result's created parts and returns the first
// one.
func (ps *PartStudio) registerParts(res *ports.FeatureResult) *feature.Part {
	var first *feature.Part
	for _, ref := range res.Parts {
		p := feature.NewPart(ref.ID, ref.Name, ps.cache)
		ps.parts.Add(p)
		if first == nil {
			first = p
		}
	}
	return first
}
