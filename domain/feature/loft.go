package feature

// Loft blends between two face profiles, producing a solid whose cross
// section transitions from the start profile to the end profile.
type Loft struct {
	id   string
	name string

	Start FaceSource
	End   FaceSource
}

// NewLoft creates a loft between two face profiles.
func NewLoft(start, end FaceSource) *Loft {
	return &Loft{Start: start, End: end}
}

// Named sets the feature's display name and returns the loft for
// chaining.
func (l *Loft) Named(name string) *Loft {
	l.name = name
	return l
}

func (l *Loft) ID() string   { return l.id }
func (l *Loft) Name() string { return l.name }

// SetName is used for default naming when no explicit name was given.
func (l *Loft) SetName(name string) { l.name = name }

// BindRemote records the remote feature id after submission.
func (l *Loft) BindRemote(id string) { l.id = id }
