package feature

// BooleanUnion fuses two or more parts into one solid. With KeepTools
// set the input parts survive alongside the fused result.
type BooleanUnion struct {
	id   string
	name string

	Tools     []*Part
	KeepTools bool
}

// NewBooleanUnion creates a union of the given parts.
func NewBooleanUnion(tools ...*Part) *BooleanUnion {
	return &BooleanUnion{Tools: tools}
}

// Named sets the feature's display name and returns the union for
// chaining.
func (u *BooleanUnion) Named(name string) *BooleanUnion {
	u.name = name
	return u
}

// KeepingTools makes the union preserve its input parts.
func (u *BooleanUnion) KeepingTools() *BooleanUnion {
	u.KeepTools = true
	return u
}

func (u *BooleanUnion) ID() string   { return u.id }
func (u *BooleanUnion) Name() string { return u.name }

// SetName is used for default naming when no explicit name was given.
func (u *BooleanUnion) SetName(name string) { u.name = name }

// BindRemote records the remote feature id after submission.
func (u *BooleanUnion) BindRemote(id string) { u.id = id }
