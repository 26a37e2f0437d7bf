package schema

import (
	"fmt"

	"github.com/syssam/modeldesc/schema/edge"
	"github.com/syssam/modeldesc/schema/field"
	"github.com/syssam/modeldesc/schema/index"
)

// The builder interfaces accepted by the entity builder.
type (
	// Attribute is implemented by *field.Attribute.
	Attribute interface{ Descriptor() *field.Descriptor }
	// FetchedProperty is implemented by *field.FetchedProperty.
	FetchedProperty interface {
		Descriptor() *field.FetchedDescriptor
	}
	// Relationship is implemented by *edge.Builder.
	Relationship interface{ Descriptor() *edge.Descriptor }
	// Index is implemented by *index.Builder.
	Index interface{ Descriptor() *index.Descriptor }

	// Mixin is a reusable set of properties and indexes. Package mixin
	// holds the base implementation and the common mixins.
	Mixin interface {
		Attributes() []Attribute
		Relationships() []Relationship
		Indexes() []Index
	}
)

// Entity describes an entity of the model. Parent, relationship destinations,
// inverses and index elements are referenced by name.
type Entity struct {
	// Name is the unique key of the entity in the compiled set.
	Name string
	// TypeName is the optional managed-object type tag.
	TypeName string
	// Parent holds the name of the parent entity, if any.
	Parent            string
	Abstract          bool
	Attributes        []*field.Descriptor
	FetchedProperties []*field.FetchedDescriptor
	Relationships     []*edge.Descriptor
	Indexes           []*index.Descriptor
	// Constraints holds the uniqueness constraints, one group of property
	// names per constraint.
	Constraints [][]string
	// Configuration is the name of the configuration the entity belongs to.
	// Empty means none.
	Configuration string
	Err           error
}

// Builder for entity descriptions.
type Builder struct {
	ent *Entity
}

// New returns a builder for an entity description.
//
//	schema.New("Publication").
//		Attributes(
//			field.Date("publicationDate"),
//			field.Int64("numberOfViews").Optional(),
//		).
//		Relationships(
//			edge.To("author", "Author").Inverse("publications"),
//		)
func New(name string) *Builder {
	return &Builder{ent: &Entity{Name: name}}
}

// TypeName sets the managed-object type tag of the entity.
func (b *Builder) TypeName(name string) *Builder {
	b.ent.TypeName = name
	return b
}

// Parent sets the parent entity name.
func (b *Builder) Parent(name string) *Builder {
	b.ent.Parent = name
	return b
}

// Abstract marks the entity as abstract.
func (b *Builder) Abstract() *Builder {
	b.ent.Abstract = true
	return b
}

// Attributes appends attributes to the entity.
func (b *Builder) Attributes(attrs ...Attribute) *Builder {
	for _, a := range attrs {
		d := a.Descriptor()
		b.check(d.Err)
		b.ent.Attributes = append(b.ent.Attributes, d)
	}
	return b
}

// FetchedProperties appends fetched properties to the entity.
func (b *Builder) FetchedProperties(props ...FetchedProperty) *Builder {
	for _, p := range props {
		d := p.Descriptor()
		b.check(d.Err)
		b.ent.FetchedProperties = append(b.ent.FetchedProperties, d)
	}
	return b
}

// Relationships appends relationships to the entity.
func (b *Builder) Relationships(rels ...Relationship) *Builder {
	for _, r := range rels {
		d := r.Descriptor()
		b.check(d.Err)
		b.ent.Relationships = append(b.ent.Relationships, d)
	}
	return b
}

// Indexes appends indexes to the entity.
func (b *Builder) Indexes(idx ...Index) *Builder {
	for _, i := range idx {
		d := i.Descriptor()
		b.check(d.Err)
		b.ent.Indexes = append(b.ent.Indexes, d)
	}
	return b
}

// Mixin appends the properties and indexes of the given mixins, in order.
func (b *Builder) Mixin(mixins ...Mixin) *Builder {
	for _, m := range mixins {
		b.Attributes(m.Attributes()...).
			Relationships(m.Relationships()...).
			Indexes(m.Indexes()...)
	}
	return b
}

// Unique adds a uniqueness constraint over the given property names.
func (b *Builder) Unique(props ...string) *Builder {
	if len(props) == 0 {
		b.check(fmt.Errorf("entity %q: empty uniqueness constraint", b.ent.Name))
		return b
	}
	b.ent.Constraints = append(b.ent.Constraints, props)
	return b
}

// Configuration sets the configuration of the entity.
func (b *Builder) Configuration(name string) *Builder {
	b.ent.Configuration = name
	return b
}

// Entity returns the entity description.
func (b *Builder) Entity() *Entity {
	return b.ent
}

func (b *Builder) check(err error) {
	if err != nil && b.ent.Err == nil {
		b.ent.Err = err
	}
}
