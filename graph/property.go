package graph

import (
	"github.com/syssam/modeldesc/schema/edge"
	"github.com/syssam/modeldesc/schema/field"
	"github.com/syssam/modeldesc/schema/index"
)

// PropertyKind identifies the concrete type of a property.
type PropertyKind uint8

// Property kinds.
const (
	KindAttribute PropertyKind = iota + 1
	KindFetchedProperty
	KindRelationship
)

// String returns the kind name.
func (k PropertyKind) String() string {
	switch k {
	case KindAttribute:
		return "attribute"
	case KindFetchedProperty:
		return "fetched property"
	case KindRelationship:
		return "relationship"
	}
	return "unknown"
}

// The following types and their exported methods make up the resolved
// property set of an entity.
type (
	// Property is implemented by *Attribute, *FetchedProperty and *Relationship.
	Property interface {
		Info() *PropertyInfo
		Kind() PropertyKind
	}

	// PropertyInfo holds the information shared by all properties.
	PropertyInfo struct {
		// Name of the property. Unique within its entity.
		Name string
		// Entity holds the entity that declares the property.
		Entity *Entity
		// Optional indicates that the property may be nil.
		Optional bool
		// Comment holds the comment from the description.
		Comment string
	}

	// Attribute is a resolved scalar property.
	Attribute struct {
		PropertyInfo
		Type      field.Type
		Default   any
		Indexed   bool
		Spotlight bool
		Transient bool
	}

	// FetchedProperty is a resolved fetched property. The predicate is
	// passed through from the description without interpretation.
	FetchedProperty struct {
		PropertyInfo
		Predicate any
	}

	// Relationship is a resolved reference from one entity to another.
	Relationship struct {
		PropertyInfo
		// Destination holds the entity this relationship points to.
		Destination *Entity
		MinCount    int
		// MaxCount of zero means "many".
		MaxCount   int
		DeleteRule edge.DeleteRule
		Ordered    bool
		// InverseName holds the inverse name as declared in the description.
		// Empty when the inverse was only named on the other side.
		InverseName string
		// Inverse points to the inverse relationship, if one is linked.
		Inverse *Relationship
	}

	// Index is a resolved fetch index.
	Index struct {
		Name     string
		Entity   *Entity
		Elements []*IndexElement
	}

	// IndexElement is a resolved index element.
	IndexElement struct {
		Property  Property
		Type      index.ElementType
		Ascending bool
	}
)

// Info returns the shared property information.
func (p *PropertyInfo) Info() *PropertyInfo { return p }

// Kind implements the Property interface.
func (*Attribute) Kind() PropertyKind { return KindAttribute }

// Kind implements the Property interface.
func (*FetchedProperty) Kind() PropertyKind { return KindFetchedProperty }

// Kind implements the Property interface.
func (*Relationship) Kind() PropertyKind { return KindRelationship }

// IsToMany reports if the relationship is a to-many relationship.
func (r *Relationship) IsToMany() bool { return r.MaxCount != 1 }

// IsToOne reports if the relationship is a to-one relationship.
func (r *Relationship) IsToOne() bool { return r.MaxCount == 1 }

// HasInverse reports if the relationship is linked to an inverse.
func (r *Relationship) HasInverse() bool { return r.Inverse != nil }

// Names returns the names of the index element properties.
func (i *Index) Names() []string {
	names := make([]string, len(i.Elements))
	for j, e := range i.Elements {
		names[j] = e.Property.Info().Name
	}
	return names
}

var (
	_ Property = (*Attribute)(nil)
	_ Property = (*FetchedProperty)(nil)
	_ Property = (*Relationship)(nil)
)
