// Package mixin provides the base mixin implementation and common mixins
// for entity descriptions.
//
// A mixin is a reusable set of attributes, relationships and indexes that
// can be applied to several entities. Custom mixins embed Schema and
// override the methods they need:
//
//	type Audit struct {
//		mixin.Schema
//	}
//
//	func (Audit) Attributes() []schema.Attribute {
//		return []schema.Attribute{
//			field.String("createdBy").Optional(),
//			field.String("updatedBy").Optional(),
//		}
//	}
//
// Mixins are applied with the entity builder:
//
//	schema.New("Publication").
//		Mixin(mixin.Time{}, Audit{}).
//		Attributes(field.String("title"))
package mixin
