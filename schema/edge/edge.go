package edge

import "fmt"

// DeleteRule defines what happens to the destination objects of a
// relationship when its source object is deleted.
type DeleteRule uint8

// Delete rules.
const (
	Nullify DeleteRule = iota
	Cascade
	Deny
	NoAction
)

var ruleNames = [...]string{
	Nullify:  "nullify",
	Cascade:  "cascade",
	Deny:     "deny",
	NoAction: "no-action",
}

// String returns the delete rule name.
func (r DeleteRule) String() string {
	if int(r) < len(ruleNames) {
		return ruleNames[r]
	}
	return fmt.Sprintf("DeleteRule(%d)", r)
}

// ParseDeleteRule returns the rule registered under the given name.
func ParseDeleteRule(s string) (DeleteRule, error) {
	for r, name := range ruleNames {
		if name == s {
			return DeleteRule(r), nil
		}
	}
	return Nullify, fmt.Errorf("edge: unknown delete rule %q", s)
}

// MarshalText implements the encoding.TextMarshaler interface.
func (r DeleteRule) MarshalText() ([]byte, error) {
	if int(r) >= len(ruleNames) {
		return nil, fmt.Errorf("edge: invalid delete rule %d", r)
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (r *DeleteRule) UnmarshalText(text []byte) error {
	v, err := ParseDeleteRule(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Many is the maximum count of a to-many relationship.
const Many = 0

// Descriptor holds the relationship configuration. Destination and
// Inverse are names; they are resolved by the compiler.
type Descriptor struct {
	Name        string
	Destination string
	Optional    bool
	MinCount    int
	MaxCount    int
	DeleteRule  DeleteRule
	Inverse     string
	Ordered     bool
	Comment     string
	Err         error
}

// ToMany reports if the relationship is a to-many relationship.
func (d *Descriptor) ToMany() bool {
	return d.MaxCount != 1
}

// Builder for relationships.
type Builder struct {
	desc *Descriptor
}

// To returns a new relationship builder pointing to the destination entity.
// Relationships are optional, to-one and nullify on delete by default.
//
//	edge.To("author", "Author").Inverse("publications")
//	edge.To("publications", "Publication").ToMany().Cascade().Inverse("author")
func To(name, destination string) *Builder {
	return &Builder{
		desc: &Descriptor{
			Name:        name,
			Destination: destination,
			Optional:    true,
			MaxCount:    1,
			DeleteRule:  Nullify,
		},
	}
}

// ToMany makes the relationship a to-many relationship.
func (b *Builder) ToMany() *Builder {
	b.desc.MaxCount = Many
	return b
}

// Required indicates that the relationship must hold a value.
func (b *Builder) Required() *Builder {
	b.desc.Optional = false
	return b
}

// Min sets the minimum count of the relationship.
func (b *Builder) Min(n int) *Builder {
	if n < 0 {
		b.setErr(fmt.Errorf("relationship %q: negative min count %d", b.desc.Name, n))
	}
	b.desc.MinCount = n
	return b
}

// Max sets the maximum count of the relationship. Zero means unbounded.
func (b *Builder) Max(n int) *Builder {
	if n < 0 {
		b.setErr(fmt.Errorf("relationship %q: negative max count %d", b.desc.Name, n))
	}
	b.desc.MaxCount = n
	return b
}

// DeleteRule sets the delete rule of the relationship.
func (b *Builder) DeleteRule(r DeleteRule) *Builder {
	b.desc.DeleteRule = r
	return b
}

// Cascade is a shortcut for DeleteRule(Cascade).
func (b *Builder) Cascade() *Builder {
	return b.DeleteRule(Cascade)
}

// Deny is a shortcut for DeleteRule(Deny).
func (b *Builder) Deny() *Builder {
	return b.DeleteRule(Deny)
}

// Inverse sets the name of the inverse relationship on the destination entity.
func (b *Builder) Inverse(name string) *Builder {
	b.desc.Inverse = name
	return b
}

// Ordered marks a to-many relationship as ordered.
func (b *Builder) Ordered() *Builder {
	b.desc.Ordered = true
	return b
}

// Comment sets the relationship comment.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// Descriptor returns the relationship descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}

func (b *Builder) setErr(err error) {
	if b.desc.Err == nil {
		b.desc.Err = err
	}
}
