// Package field provides fluent builders for entity attributes and
// fetched properties.
//
// One constructor exists per attribute type:
//
//	field.String("name")
//	field.Int64("numberOfViews").Optional().Default(int64(0))
//	field.Date("publicationDate").Indexed()
//	field.UUID("identifier").Default(uuid.Nil)
//	field.Bytes("thumbnail").Transient()
//
// Default values are checked against the attribute type when they are set.
// A failed check is recorded on the descriptor and reported by the compiler.
//
// Fetched properties carry an opaque predicate that is passed through to
// the resolved model as is:
//
//	field.Fetched("recentPublications", "publicationDate > $LAST_WEEK")
package field
