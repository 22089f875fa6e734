package entity

import "partforge/domain/geometry"

// Filter is the user-facing handle over a QueryExpression plus the set of
// concretely known entities it currently resolves to. Filters are values;
// every narrowing method returns a new Filter and never mutates the
// receiver, which is what makes chaining safe:
//
//	sketch.Faces().ContainsPoint(p).Largest()
//
// Narrowing evaluates immediately, left to right, whenever the current set
// is resolved and carries the data the predicate needs. Otherwise the
// predicate is appended to the expression tree and the filter turns
// symbolic: the remote evaluator resolves it at submission time. This is
// what lets filters reference geometry produced by features that have not
// been submitted yet.
type Filter struct {
	expr     QueryExpression
	entities []Entity
	resolved bool
}

// NewFilter builds a resolved filter over a known entity set.
func NewFilter(expr QueryExpression, entities []Entity) Filter {
	return Filter{expr: expr, entities: entities, resolved: true}
}

// NewDeferred builds a purely symbolic filter whose entities are only
// known to the remote evaluator.
func NewDeferred(expr QueryExpression) Filter {
	return Filter{expr: expr}
}

// Expression returns the filter's query expression.
func (f Filter) Expression() QueryExpression {
	return f.expr
}

// IsResolved reports whether the filter's entity set is locally known.
func (f Filter) IsResolved() bool {
	return f.resolved
}

// Resolved returns a copy of the locally known entity set. Empty for
// symbolic filters.
func (f Filter) Resolved() []Entity {
	out := make([]Entity, len(f.entities))
	copy(out, f.entities)
	return out
}

// Count returns the number of locally known entities.
func (f Filter) Count() int {
	return len(f.entities)
}

// IsEmpty reports whether a resolved filter holds no entities. A symbolic
// filter is never empty locally; only the remote evaluator can decide.
func (f Filter) IsEmpty() bool {
	return f.resolved && len(f.entities) == 0
}

// measuresKnown reports whether every entity carries a usable measure.
func (f Filter) measuresKnown() bool {
	for _, e := range f.entities {
		if !e.Measure.Known {
			return false
		}
	}
	return true
}

// footprintsKnown reports whether every entity carries a footprint.
func (f Filter) footprintsKnown() bool {
	for _, e := range f.entities {
		if e.Footprint == nil {
			return false
		}
	}
	return true
}

// Largest narrows to the single entity with the maximum measure (area for
// faces, length for edges). Ties keep the first entity in the filter's
// current ordering.
func (f Filter) Largest() Filter {
	expr := Largest{Inner: f.expr}
	if !f.resolved || !f.measuresKnown() {
		return NewDeferred(expr)
	}
	if len(f.entities) == 0 {
		return NewFilter(expr, nil)
	}
	best := 0
	for i, e := range f.entities {
		if e.Measure.Size > f.entities[best].Measure.Size {
			best = i
		}
	}
	return NewFilter(expr, []Entity{f.entities[best]})
}

// Smallest narrows to the single entity with the minimum measure. Ties
// keep the first entity in the current ordering.
func (f Filter) Smallest() Filter {
	expr := Smallest{Inner: f.expr}
	if !f.resolved || !f.measuresKnown() {
		return NewDeferred(expr)
	}
	if len(f.entities) == 0 {
		return NewFilter(expr, nil)
	}
	best := 0
	for i, e := range f.entities {
		if e.Measure.Size < f.entities[best].Measure.Size {
			best = i
		}
	}
	return NewFilter(expr, []Entity{f.entities[best]})
}

// ClosestTo narrows to the entity whose reference point has the minimum
// euclidean distance to p. Ties keep the first entity in the current
// ordering. Distance is evaluated in the sketch plane; out-of-plane
// components are only meaningful to the remote evaluator.
func (f Filter) ClosestTo(p Point3) Filter {
	expr := ClosestTo{Inner: f.expr, Point: p}
	if !f.resolved || !f.measuresKnown() {
		return NewDeferred(expr)
	}
	if len(f.entities) == 0 {
		return NewFilter(expr, nil)
	}
	best := 0
	bestD := distXY(f.entities[0], p)
	for i := 1; i < len(f.entities); i++ {
		if d := distXY(f.entities[i], p); d < bestD {
			best, bestD = i, d
		}
	}
	return NewFilter(expr, []Entity{f.entities[best]})
}

func distXY(e Entity, p Point3) float64 {
	dx := e.Measure.Ref.X - p.X
	dy := e.Measure.Ref.Y - p.Y
	return dx*dx + dy*dy
}

// ContainsPoint keeps entities whose region or boundary contains p within
// tolerance.
func (f Filter) ContainsPoint(p Point3) Filter {
	expr := ContainsPoint{Inner: f.expr, Point: p}
	if !f.resolved || !f.footprintsKnown() {
		return NewDeferred(expr)
	}
	var kept []Entity
	for _, e := range f.entities {
		if e.Footprint.Contains(planar(p)) {
			kept = append(kept, e)
		}
	}
	return NewFilter(expr, kept)
}

// Intersects keeps entities crossed by the infinite line through origin
// with the given direction. A line exactly on a boundary counts as
// crossing.
func (f Filter) Intersects(origin, direction Point3) Filter {
	expr := Intersects{Inner: f.expr, Origin: origin, Direction: direction}
	if !f.resolved || !f.footprintsKnown() {
		return NewDeferred(expr)
	}
	var kept []Entity
	for _, e := range f.entities {
		if e.Footprint.CrossesLine(planar(origin), planarDir(direction)) {
			kept = append(kept, e)
		}
	}
	return NewFilter(expr, kept)
}

// OfKind keeps entities of one kind.
func (f Filter) OfKind(k Kind) Filter {
	expr := OfKind{Inner: f.expr, Kind: k}
	if !f.resolved {
		return NewDeferred(expr)
	}
	var kept []Entity
	for _, e := range f.entities {
		if e.Kind == k {
			kept = append(kept, e)
		}
	}
	return NewFilter(expr, kept)
}

// Union combines two filters into the union of their entity sets.
// Duplicates are removed by transient identity, first occurrence wins.
// If either side is symbolic the union is symbolic.
func (f Filter) Union(other Filter) Filter {
	expr := UnionOf{Operands: []QueryExpression{f.expr, other.expr}}
	if !f.resolved || !other.resolved {
		return NewDeferred(expr)
	}
	seen := make(map[string]bool, len(f.entities)+len(other.entities))
	var merged []Entity
	for _, e := range append(f.Resolved(), other.Resolved()...) {
		if seen[e.TransientID] {
			continue
		}
		seen[e.TransientID] = true
		merged = append(merged, e)
	}
	return NewFilter(expr, merged)
}

func planar(p Point3) geometry.Point2 {
	return geometry.Pt(p.X, p.Y)
}

func planarDir(p Point3) geometry.Vector2 {
	return geometry.Vec(p.X, p.Y)
}
