package feature

import (
	"fmt"
	"strings"

	"partforge/domain/entity"
)

// Part is a solid body created by a feature. Its entity filters are
// rooted at the part's remote id and draw their locally known members
// from the studio's entity cache; members the cache has not seen stay
// symbolic and resolve remotely.
type Part struct {
	PartID   string
	PartName string

	cache *entity.Cache
}

// NewPart wraps a remotely created part. The cache may be shared with
// other parts; it is read through, never written.
func NewPart(id, name string, cache *entity.Cache) *Part {
	return &Part{PartID: id, PartName: name, cache: cache}
}

func (p *Part) String() string {
	return fmt.Sprintf("Part(%q, %s)", p.PartName, p.PartID)
}

func (p *Part) filter(kind entity.Kind) entity.Filter {
	expr := entity.OwnedBy{PartID: p.PartID, Kind: kind}
	if p.cache != nil && p.cache.Has(p.PartID) {
		return entity.NewFilter(expr, p.cache.OwnedBy(p.PartID, kind))
	}
	return entity.NewDeferred(expr)
}

// Faces returns the part's faces.
func (p *Part) Faces() entity.Filter {
	return p.filter(entity.KindFace)
}

// Edges returns the part's edges.
func (p *Part) Edges() entity.Filter {
	return p.filter(entity.KindEdge)
}

// Vertices returns the part's vertices.
func (p *Part) Vertices() entity.Filter {
	return p.filter(entity.KindVertex)
}

// FaceFilter lets a part stand in wherever faces are expected.
func (p *Part) FaceFilter() entity.Filter {
	return p.Faces()
}

// PartList is the set of parts a studio has produced, in creation
// order.
type PartList struct {
	parts []*Part
}

// Add appends a part to the list.
func (l *PartList) Add(p *Part) {
	l.parts = append(l.parts, p)
}

// Len returns the number of parts.
func (l *PartList) Len() int {
	return len(l.parts)
}

// All returns the parts in creation order.
func (l *PartList) All() []*Part {
	return append([]*Part(nil), l.parts...)
}

// Get returns the first part whose name matches, case-insensitive.
func (l *PartList) Get(name string) (*Part, bool) {
	for _, p := range l.parts {
		if strings.EqualFold(p.PartName, name) {
			return p, true
		}
	}
	return nil, false
}

// GetID returns the part with the given remote id.
func (l *PartList) GetID(id string) (*Part, bool) {
	for _, p := range l.parts {
		if p.PartID == id {
			return p, true
		}
	}
	return nil, false
}
