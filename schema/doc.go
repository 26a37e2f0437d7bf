// Package schema provides the declarative description of a data model.
//
// A description is an ordered list of entities. Each entity carries its
// attributes, fetched properties, relationships, indexes, uniqueness
// constraints and configuration tag. Cross-entity references (parent,
// relationship destination, inverse, index properties) are plain names that
// are resolved by the compiler package.
//
// The description builders live in the subpackages:
//
//   - [field]: attributes and fetched properties
//   - [edge]: relationships
//   - [index]: fetch indexes
//
// # Quick Start
//
//	author := schema.New("Author").
//		Attributes(field.String("name")).
//		Relationships(
//			edge.To("publications", "Publication").ToMany().Cascade().Inverse("author"),
//		).
//		Entity()
//
//	publication := schema.New("Publication").
//		Attributes(
//			field.Date("publicationDate"),
//			field.Int64("numberOfViews").Optional(),
//		).
//		Relationships(edge.To("author", "Author").Inverse("publications")).
//		Indexes(index.Fields("byAuthor", "author")).
//		Entity()
//
//	story := schema.New("Story").
//		Parent("Publication").
//		Attributes(field.URI("videoURL")).
//		Entity()
//
// Builders record the first invalid option on the description (Entity.Err)
// instead of panicking; the compiler reports it.
package schema
