package mixin

import (
	"github.com/syssam/modeldesc/schema"
	"github.com/syssam/modeldesc/schema/edge"
	"github.com/syssam/modeldesc/schema/field"
	"github.com/syssam/modeldesc/schema/index"
)

// Schema is the default implementation of schema.Mixin. It should be
// embedded in custom mixins.
type Schema struct{}

// Attributes returns the attributes of the mixin.
func (Schema) Attributes() []schema.Attribute { return nil }

// Relationships returns the relationships of the mixin.
func (Schema) Relationships() []schema.Relationship { return nil }

// Indexes returns the indexes of the mixin.
func (Schema) Indexes() []schema.Index { return nil }

var _ schema.Mixin = (*Schema)(nil)

// Time adds the createdAt and updatedAt date attributes.
type Time struct {
	Schema
}

// Attributes returns the time tracking attributes.
func (Time) Attributes() []schema.Attribute {
	return append(CreateTime{}.Attributes(), UpdateTime{}.Attributes()...)
}

// CreateTime adds only the createdAt date attribute.
type CreateTime struct {
	Schema
}

// Attributes returns the createdAt attribute.
func (CreateTime) Attributes() []schema.Attribute {
	return []schema.Attribute{
		field.Date("createdAt").Comment("creation date"),
	}
}

// UpdateTime adds only the updatedAt date attribute.
type UpdateTime struct {
	Schema
}

// Attributes returns the updatedAt attribute.
func (UpdateTime) Attributes() []schema.Attribute {
	return []schema.Attribute{
		field.Date("updatedAt").Comment("last modification date"),
	}
}

// SoftDelete adds an optional deletedAt date attribute. A nil value means
// the object is not deleted.
type SoftDelete struct {
	Schema
}

// Attributes returns the soft delete attribute.
func (SoftDelete) Attributes() []schema.Attribute {
	return []schema.Attribute{
		field.Date("deletedAt").Optional().Comment("deletion date"),
	}
}

// Identifier adds an indexed UUID identifier attribute and an index on it.
type Identifier struct {
	Schema
}

// Attributes returns the identifier attribute.
func (Identifier) Attributes() []schema.Attribute {
	return []schema.Attribute{
		field.UUID("identifier").Indexed(),
	}
}

// Indexes returns the identifier index.
func (Identifier) Indexes() []schema.Index {
	return []schema.Index{
		index.Fields("byIdentifier", "identifier"),
	}
}

// Transient wraps a mixin and marks all its attributes transient.
//
//	schema.New("Draft").Mixin(mixin.Transient(mixin.Time{}))
func Transient(m schema.Mixin) schema.Mixin {
	return transient{Mixin: m}
}

// DeleteRule wraps a mixin and sets the delete rule of all its
// relationships.
func DeleteRule(m schema.Mixin, rule edge.DeleteRule) schema.Mixin {
	return deleteRule{Mixin: m, rule: rule}
}

type transient struct {
	schema.Mixin
}

func (t transient) Attributes() []schema.Attribute {
	attrs := t.Mixin.Attributes()
	for _, a := range attrs {
		a.Descriptor().Transient = true
	}
	return attrs
}

type deleteRule struct {
	schema.Mixin
	rule edge.DeleteRule
}

func (d deleteRule) Relationships() []schema.Relationship {
	rels := d.Mixin.Relationships()
	for _, r := range rels {
		r.Descriptor().DeleteRule = d.rule
	}
	return rels
}
