// Package edge provides fluent builders for describing relationships between entities.
//
// A relationship points from its owning entity to a destination entity. The
// destination and the inverse are referenced by name; they are resolved when the
// model is compiled, so the destination may be declared later in the input or
// live in a base model.
//
// # Cardinality
//
// Relationships are to-one by default. A maximum count of zero (edge.Many)
// means "many":
//
//	// Publication -> Author (to-one)
//	edge.To("author", "Author")
//
//	// Author -> Publications (to-many)
//	edge.To("publications", "Publication").ToMany()
//
//	// At least one, at most five
//	edge.To("tags", "Tag").Min(1).Max(5)
//
// # Inverse Relationships
//
// Inverses are named on one or both sides. Naming it on one side is enough for
// the compiler to link both relationships to each other. An inverse inherited
// by the destination from a parent entity is linked one way only:
//
//	// Author
//	edge.To("publications", "Publication").ToMany().Inverse("author")
//
//	// Publication
//	edge.To("author", "Author").Inverse("publications")
//
// # Delete Rules
//
// Control what happens to destination objects when the source is deleted:
//
//   - edge.Nullify: clear the inverse reference (default)
//   - edge.Cascade: delete the destination objects
//   - edge.Deny: refuse deletion while destinations exist
//   - edge.NoAction: do nothing
//
//	edge.To("publications", "Publication").ToMany().Cascade()
package edge
