package sketch

import (
	"fmt"
	"math"

	"partforge/domain/entity"
	"partforge/domain/geometry"
)

// vertexTolerance is the distance below which two segment endpoints count
// as the same vertex when chaining loops and deduplicating vertices.
const vertexTolerance = 1e-8

// derivedSet is the lazily computed local model of the entities a
// sketch's items produce. It exists so filters can narrow locally; the
// remote evaluator remains the authority on the real derived geometry.
type derivedSet struct {
	faces    []entity.Entity
	edges    []entity.Entity
	vertices []entity.Entity
}

func (d *derivedSet) all() []entity.Entity {
	out := make([]entity.Entity, 0, len(d.faces)+len(d.edges)+len(d.vertices))
	out = append(out, d.faces...)
	out = append(out, d.edges...)
	out = append(out, d.vertices...)
	return out
}

// deriveEntities recomputes the derived entities when the cache was
// invalidated by a mutation. An empty sketch yields an empty, valid set.
func (s *Sketch) deriveEntities() *derivedSet {
	if s.derived != nil {
		return s.derived
	}
	d := &derivedSet{}

	var segs []boundarySeg
	for _, item := range s.items {
		switch it := item.(type) {
		case *Line:
			d.edges = append(d.edges, entity.Entity{
				TransientID: it.TransientID() + ".edge",
				Kind:        entity.KindEdge,
				Measure:     entity.Measure{Known: true, Ref: it.Midpoint(), Size: it.Length()},
				Footprint:   entity.SegmentFootprint{A: it.Start, B: it.End},
			})
			segs = append(segs, boundarySeg{item: it, a: it.Start, b: it.End})
		case *Circle:
			d.faces = append(d.faces, entity.Entity{
				TransientID: it.TransientID() + ".face",
				Kind:        entity.KindFace,
				Measure:     entity.Measure{Known: true, Ref: it.Center, Size: math.Pi * it.Radius * it.Radius},
				Footprint:   entity.DiskFootprint{Center: it.Center, Radius: it.Radius},
			})
			d.edges = append(d.edges, entity.Entity{
				TransientID: it.TransientID() + ".edge",
				Kind:        entity.KindEdge,
				Measure:     entity.Measure{Known: true, Ref: it.Center, Size: 2 * math.Pi * it.Radius},
				Footprint:   entity.RingFootprint{Center: it.Center, Radius: it.Radius},
			})
		case *Arc:
			d.edges = append(d.edges, entity.Entity{
				TransientID: it.TransientID() + ".edge",
				Kind:        entity.KindEdge,
				Measure:     entity.Measure{Known: true, Ref: it.MidPoint(), Size: it.Length()},
				Footprint: entity.ArcFootprint{
					Center: it.Center, Radius: it.Radius,
					Start: it.StartAngle, End: it.EndAngle,
				},
			})
			segs = append(segs, boundarySeg{
				item: it,
				a:    it.StartPoint(),
				b:    it.EndPoint(),
				via:  arcSamples(it),
			})
		}
	}

	d.faces = append(d.faces, loopFaces(segs)...)
	d.vertices = deriveVertices(segs)

	s.derived = d
	return d
}

// boundarySeg is an open curve segment that can participate in a closed
// loop. Lines join their endpoints directly; arcs also contribute interior
// sample points so the loop polygon follows the curve instead of its
// chord. The remote evaluator owns the exact region either way.
type boundarySeg struct {
	item Item
	a, b geometry.Point2
	via  []geometry.Point2
}

// arcSamples returns interior points of the arc in start-to-end order.
func arcSamples(a *Arc) []geometry.Point2 {
	sweep := a.Sweep()
	n := int(math.Ceil(sweep/(math.Pi/8))) - 1
	if n < 1 {
		n = 1
	}
	pts := make([]geometry.Point2, 0, n)
	for i := 1; i <= n; i++ {
		pts = append(pts, a.pointAt(a.StartAngle+sweep*float64(i)/float64(n+1)))
	}
	return pts
}

// loopFaces chains segments endpoint-to-endpoint and emits one face per
// closed loop. Chaining is greedy in insertion order, which keeps the
// face ordering deterministic.
func loopFaces(segs []boundarySeg) []entity.Entity {
	used := make([]bool, len(segs))
	var faces []entity.Entity

	for start := range segs {
		if used[start] {
			continue
		}
		used[start] = true
		loopStart := segs[start].a
		pts := appendWalk([]geometry.Point2{segs[start].a}, segs[start], true)
		cur := segs[start].b
		closed := false

		for !closed {
			if cur.ApproxEqual(loopStart, vertexTolerance) {
				closed = true
				break
			}
			advanced := false
			for j := range segs {
				if used[j] {
					continue
				}
				switch {
				case segs[j].a.ApproxEqual(cur, vertexTolerance):
					used[j] = true
					pts = appendWalk(pts, segs[j], true)
					cur = segs[j].b
					advanced = true
				case segs[j].b.ApproxEqual(cur, vertexTolerance):
					used[j] = true
					pts = appendWalk(pts, segs[j], false)
					cur = segs[j].a
					advanced = true
				}
				if advanced {
					break
				}
			}
			if !advanced {
				break
			}
		}

		if !closed || len(pts) < 4 {
			continue
		}
		poly := pts[:len(pts)-1] // drop the closing duplicate
		area, centroid := polygonMeasure(poly)
		if area < geometry.Epsilon {
			continue
		}
		faces = append(faces, entity.Entity{
			TransientID: segs[start].item.TransientID() + ".face",
			Kind:        entity.KindFace,
			Measure:     entity.Measure{Known: true, Ref: centroid, Size: area},
			Footprint:   entity.PolygonFootprint{Vertices: poly},
		})
	}
	return faces
}

// appendWalk appends a segment's interior sample points and far endpoint
// to the loop polygon, in traversal order.
func appendWalk(pts []geometry.Point2, seg boundarySeg, forward bool) []geometry.Point2 {
	if forward {
		pts = append(pts, seg.via...)
		return append(pts, seg.b)
	}
	for i := len(seg.via) - 1; i >= 0; i-- {
		pts = append(pts, seg.via[i])
	}
	return append(pts, seg.a)
}

// polygonMeasure returns the absolute shoelace area and the centroid of a
// simple polygon.
func polygonMeasure(pts []geometry.Point2) (float64, geometry.Point2) {
	var twiceArea, cx, cy float64
	n := len(pts)
	for i := 0; i < n; i++ {
		p := pts[i]
		q := pts[(i+1)%n]
		cross := p.X*q.Y - q.X*p.Y
		twiceArea += cross
		cx += (p.X + q.X) * cross
		cy += (p.Y + q.Y) * cross
	}
	if math.Abs(twiceArea) < geometry.Epsilon {
		return 0, geometry.Point2{}
	}
	area := twiceArea / 2
	return math.Abs(area), geometry.Pt(cx/(6*area), cy/(6*area))
}

// deriveVertices collects segment endpoints plus the crossing points of
// line segments, deduplicated by position.
func deriveVertices(segs []boundarySeg) []entity.Entity {
	var verts []entity.Entity
	have := func(p geometry.Point2) bool {
		for _, v := range verts {
			if v.Measure.Ref.ApproxEqual(p, vertexTolerance) {
				return true
			}
		}
		return false
	}
	addVertex := func(id string, p geometry.Point2) {
		if have(p) {
			return
		}
		verts = append(verts, entity.Entity{
			TransientID: id,
			Kind:        entity.KindVertex,
			Measure:     entity.Measure{Known: true, Ref: p},
			Footprint:   entity.PointFootprint{P: p},
		})
	}

	for _, seg := range segs {
		addVertex(seg.item.TransientID()+".start", seg.a)
		addVertex(seg.item.TransientID()+".end", seg.b)
	}

	// Crossing lines split each other; the split points are vertices too.
	for i := 0; i < len(segs); i++ {
		li, ok := segs[i].item.(*Line)
		if !ok {
			continue
		}
		for j := i + 1; j < len(segs); j++ {
			lj, ok := segs[j].item.(*Line)
			if !ok {
				continue
			}
			if p, hit := geometry.SegmentIntersection(li.Start, li.End, lj.Start, lj.End); hit {
				addVertex(fmt.Sprintf("%s.%s.cross", li.TransientID(), lj.TransientID()), p)
			}
		}
	}
	return verts
}
