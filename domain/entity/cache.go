package entity

// Cache is the part-studio-scoped store of concretely known entities,
// keyed by the feature or part that owns them. It is written by the
// feature submission flow after a successful remote response and read by
// filters. Submission and merge happen as one step, so no filter ever
// observes a partially updated cache.
type Cache struct {
	byOwner map[string][]Entity
}

// NewCache creates an empty entity cache.
func NewCache() *Cache {
	return &Cache{byOwner: make(map[string][]Entity)}
}

// Merge appends entities under an owner id, dropping duplicates by
// transient identity.
func (c *Cache) Merge(owner string, entities []Entity) {
	existing := c.byOwner[owner]
	seen := make(map[string]bool, len(existing))
	for _, e := range existing {
		seen[e.TransientID] = true
	}
	for _, e := range entities {
		if seen[e.TransientID] {
			continue
		}
		seen[e.TransientID] = true
		existing = append(existing, e)
	}
	c.byOwner[owner] = existing
}

// Replace overwrites the entity set of an owner.
func (c *Cache) Replace(owner string, entities []Entity) {
	c.byOwner[owner] = append([]Entity(nil), entities...)
}

// OwnedBy returns the cached entities of one kind under an owner id.
func (c *Cache) OwnedBy(owner string, kind Kind) []Entity {
	var out []Entity
	for _, e := range c.byOwner[owner] {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// All returns every cached entity under an owner id.
func (c *Cache) All(owner string) []Entity {
	return append([]Entity(nil), c.byOwner[owner]...)
}

// Has reports whether any entities are cached under an owner id.
func (c *Cache) Has(owner string) bool {
	return len(c.byOwner[owner]) > 0
}
