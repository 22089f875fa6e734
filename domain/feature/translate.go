package feature

import "partforge/domain/entity"

// TranslatePart moves a solid body by a 3D offset. With Copy set the
// original stays put and a translated copy becomes a new part.
type TranslatePart struct {
	id   string
	name string

	Target *Part
	Offset entity.Point3
	Copy   bool
}

// NewTranslatePart creates a translate of one part by an offset in user
// units.
func NewTranslatePart(target *Part, offset entity.Point3) *TranslatePart {
	return &TranslatePart{Target: target, Offset: offset}
}

// Named sets the feature's display name and returns the translate for
// chaining.
func (t *TranslatePart) Named(name string) *TranslatePart {
	t.name = name
	return t
}

// Copying makes the translate leave the original in place and move a
// copy instead.
func (t *TranslatePart) Copying() *TranslatePart {
	t.Copy = true
	return t
}

func (t *TranslatePart) ID() string   { return t.id }
func (t *TranslatePart) Name() string { return t.name }

// SetName is used for default naming when no explicit name was given.
func (t *TranslatePart) SetName(name string) { t.name = name }

// BindRemote records the remote feature id after submission.
func (t *TranslatePart) BindRemote(id string) { t.id = id }
