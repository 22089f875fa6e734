package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partforge/domain/geometry"
)

func face(id string, cx, cy, area float64) Entity {
	return Entity{
		TransientID: id,
		Kind:        KindFace,
		Measure:     Measure{Known: true, Ref: geometry.Pt(cx, cy), Size: area},
		Footprint:   DiskFootprint{Center: geometry.Pt(cx, cy), Radius: 1},
	}
}

func TestLargestSmallest(t *testing.T) {
	f := NewFilter(SketchRegion{FeatureID: "s1"}, []Entity{
		face("a", 0, 0, 2),
		face("b", 5, 0, 9),
		face("c", 9, 0, 1),
	})

	largest := f.Largest()
	require.True(t, largest.IsResolved())
	require.Equal(t, 1, largest.Count())
	assert.Equal(t, "b", largest.Resolved()[0].TransientID)

	smallest := f.Smallest()
	require.Equal(t, 1, smallest.Count())
	assert.Equal(t, "c", smallest.Resolved()[0].TransientID)
}

func TestLargestTieKeepsFirst(t *testing.T) {
	f := NewFilter(SketchRegion{FeatureID: "s1"}, []Entity{
		face("first", 0, 0, 4),
		face("second", 5, 0, 4),
	})

	got := f.Largest().Resolved()
	require.Len(t, got, 1)
	assert.Equal(t, "first", got[0].TransientID)

	got = f.Smallest().Resolved()
	require.Len(t, got, 1)
	assert.Equal(t, "first", got[0].TransientID)
}

func TestClosestTo(t *testing.T) {
	f := NewFilter(SketchRegion{FeatureID: "s1"}, []Entity{
		face("near", 1, 0, 1),
		face("far", 10, 0, 1),
	})

	got := f.ClosestTo(Point3{X: 0, Y: 0}).Resolved()
	require.Len(t, got, 1)
	assert.Equal(t, "near", got[0].TransientID)
}

func TestContainsPoint(t *testing.T) {
	f := NewFilter(SketchRegion{FeatureID: "s1"}, []Entity{
		face("a", 0, 0, 1),
		face("b", 10, 0, 1),
	})

	got := f.ContainsPoint(Point3{X: 0.5, Y: 0}).Resolved()
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].TransientID)

	// A point on the boundary is included.
	got = f.ContainsPoint(Point3{X: 1, Y: 0}).Resolved()
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].TransientID)
}

func TestIntersects(t *testing.T) {
	f := NewFilter(SketchRegion{FeatureID: "s1"}, []Entity{
		face("a", 0, 0, 1),
		face("b", 10, 10, 1),
	})

	// Horizontal line through y=0 crosses only the disk at the origin.
	got := f.Intersects(Point3{X: -5, Y: 0}, Point3{X: 1, Y: 0}).Resolved()
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].TransientID)

	// Tangent lines count as crossing.
	got = f.Intersects(Point3{X: -5, Y: 1}, Point3{X: 1, Y: 0}).Resolved()
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].TransientID)
}

func TestChainingOrderMatters(t *testing.T) {
	// One large face far from p, one small face containing p.
	big := face("big", 10, 10, 100)
	small := face("small", 0, 0, 1)
	f := NewFilter(SketchRegion{FeatureID: "s1"}, []Entity{big, small})

	p := Point3{X: 0, Y: 0}

	// contains_point first narrows to the small face, so largest picks it.
	left := f.ContainsPoint(p).Largest().Resolved()
	require.Len(t, left, 1)
	assert.Equal(t, "small", left[0].TransientID)

	// largest first picks the big face, which does not contain p.
	right := f.Largest().ContainsPoint(p).Resolved()
	assert.Empty(t, right)
}

func TestEmptyFilterIsValid(t *testing.T) {
	f := NewFilter(SketchRegion{FeatureID: "empty"}, nil)
	assert.True(t, f.IsEmpty())

	// Narrowing an empty filter stays empty and never errors.
	assert.Equal(t, 0, f.Largest().Count())
	assert.Equal(t, 0, f.ClosestTo(Point3{}).Count())
	assert.Equal(t, 0, f.ContainsPoint(Point3{}).Count())
}

func TestSymbolicFilterDefers(t *testing.T) {
	f := NewDeferred(CreatedBy{FeatureID: "pending", Kind: KindFace})
	got := f.ContainsPoint(Point3{X: 1}).Largest()

	require.False(t, got.IsResolved())
	assert.False(t, got.IsEmpty())

	// The predicates are recorded in order on the expression tree.
	largest, ok := got.Expression().(Largest)
	require.True(t, ok)
	contains, ok := largest.Inner.(ContainsPoint)
	require.True(t, ok)
	assert.Equal(t, Point3{X: 1}, contains.Point)
	assert.Equal(t, CreatedBy{FeatureID: "pending", Kind: KindFace}, contains.Inner)
}

func TestFilterWithoutFootprintsDefersContainment(t *testing.T) {
	// Remote-merged entities carry measures but no footprint.
	e := Entity{
		TransientID: "r1",
		Kind:        KindFace,
		Measure:     Measure{Known: true, Ref: geometry.Pt(0, 0), Size: 3},
	}
	f := NewFilter(OwnedBy{PartID: "p1", Kind: KindFace}, []Entity{e})

	// Measure-based narrowing still works locally.
	assert.True(t, f.Largest().IsResolved())

	// Containment cannot be answered locally, so it defers.
	assert.False(t, f.ContainsPoint(Point3{}).IsResolved())
}

func TestUnionDeduplicatesByIdentity(t *testing.T) {
	a := NewFilter(SketchRegion{FeatureID: "s1"}, []Entity{face("x", 0, 0, 1), face("y", 1, 0, 1)})
	b := NewFilter(SketchRegion{FeatureID: "s2"}, []Entity{face("y", 1, 0, 1), face("z", 2, 0, 1)})

	got := a.Union(b)
	require.True(t, got.IsResolved())
	ids := make([]string, 0, got.Count())
	for _, e := range got.Resolved() {
		ids = append(ids, e.TransientID)
	}
	assert.Equal(t, []string{"x", "y", "z"}, ids)
}

func TestOfKind(t *testing.T) {
	edge := Entity{TransientID: "e1", Kind: KindEdge}
	f := NewFilter(SketchRegion{FeatureID: "s1"}, []Entity{face("f1", 0, 0, 1), edge})

	got := f.OfKind(KindEdge).Resolved()
	require.Len(t, got, 1)
	assert.Equal(t, "e1", got[0].TransientID)
}

func TestCacheMerge(t *testing.T) {
	c := NewCache()
	c.Merge("part1", []Entity{face("a", 0, 0, 1), {TransientID: "e", Kind: KindEdge}})
	c.Merge("part1", []Entity{face("a", 0, 0, 1), face("b", 1, 1, 2)})

	assert.Len(t, c.All("part1"), 3)
	assert.Len(t, c.OwnedBy("part1", KindFace), 2)
	assert.Len(t, c.OwnedBy("part1", KindEdge), 1)
	assert.False(t, c.Has("unknown"))
}
