package graph

import (
	"errors"
	"fmt"
	"slices"
)

// ErrPropertyExists is returned when a property name is declared twice on
// the same entity.
var ErrPropertyExists = errors.New("graph: property already exists")

// Entity represents one node-type in the graph, its properties and its
// place in the inheritance hierarchy.
type Entity struct {
	// Name holds the entity name. Unique within a model.
	Name string
	// TypeName holds the managed-object type tag. Empty means the default type.
	TypeName string
	// Abstract entities cannot be instantiated.
	Abstract bool
	// Configuration holds the configuration tag from the description.
	Configuration string
	// Parent holds the parent entity, if any.
	Parent *Entity
	// Children holds the entities that declare this one as parent,
	// in linking order.
	Children []*Entity
	// Attributes, FetchedProperties and Relationships hold the properties
	// declared by this entity, in declaration order.
	Attributes        []*Attribute
	FetchedProperties []*FetchedProperty
	Relationships     []*Relationship
	// Indexes holds the indexes declared on this entity. Indexes are not
	// inherited by children.
	Indexes []*Index
	// Constraints holds the resolved uniqueness constraints.
	Constraints [][]Property

	properties map[string]Property
	// declaration order of all own properties.
	order []Property
}

// NewEntity returns an entity shell with no properties.
func NewEntity(name string) *Entity {
	return &Entity{
		Name:       name,
		properties: make(map[string]Property),
	}
}

// AddAttribute adds an attribute to the entity.
func (e *Entity) AddAttribute(a *Attribute) error {
	if err := e.add(a); err != nil {
		return err
	}
	e.Attributes = append(e.Attributes, a)
	return nil
}

// AddFetchedProperty adds a fetched property to the entity.
func (e *Entity) AddFetchedProperty(f *FetchedProperty) error {
	if err := e.add(f); err != nil {
		return err
	}
	e.FetchedProperties = append(e.FetchedProperties, f)
	return nil
}

// AddRelationship adds a relationship to the entity.
func (e *Entity) AddRelationship(r *Relationship) error {
	if err := e.add(r); err != nil {
		return err
	}
	e.Relationships = append(e.Relationships, r)
	return nil
}

func (e *Entity) add(p Property) error {
	info := p.Info()
	if prev, ok := e.properties[info.Name]; ok {
		return fmt.Errorf("%w: %s %q of entity %q conflicts with %s", ErrPropertyExists, p.Kind(), info.Name, e.Name, prev.Kind())
	}
	info.Entity = e
	e.properties[info.Name] = p
	e.order = append(e.order, p)
	return nil
}

// SetParent links the entity to its parent and registers it as a child
// of the parent. The link is not checked for cycles.
func (e *Entity) SetParent(parent *Entity) {
	if e.Parent != nil {
		e.Parent.Children = slices.DeleteFunc(e.Parent.Children, func(c *Entity) bool { return c == e })
	}
	e.Parent = parent
	if parent != nil {
		parent.Children = append(parent.Children, e)
	}
}

// OwnProperty returns the property declared by this entity with the given name.
func (e *Entity) OwnProperty(name string) (Property, bool) {
	p, ok := e.properties[name]
	return p, ok
}

// Property returns the property with the given name, looking up the
// inheritance chain from this entity to the root.
func (e *Entity) Property(name string) (Property, bool) {
	for t := e; t != nil; t = t.Parent {
		if p, ok := t.properties[name]; ok {
			return p, true
		}
	}
	return nil, false
}

// Attribute returns the attribute with the given name, including
// inherited ones.
func (e *Entity) Attribute(name string) (*Attribute, bool) {
	p, ok := e.Property(name)
	if !ok {
		return nil, false
	}
	a, ok := p.(*Attribute)
	return a, ok
}

// Relationship returns the relationship with the given name, including
// inherited ones.
func (e *Entity) Relationship(name string) (*Relationship, bool) {
	p, ok := e.Property(name)
	if !ok {
		return nil, false
	}
	r, ok := p.(*Relationship)
	return r, ok
}

// Properties returns the properties declared by this entity in declaration
// order: attributes, fetched properties, then relationships.
func (e *Entity) Properties() []Property {
	return slices.Clone(e.order)
}

// PropertiesByName returns all the properties of the entity keyed by name,
// inherited ones included. Properties of an entity shadow properties of
// the same name declared by its ancestors.
func (e *Entity) PropertiesByName() map[string]Property {
	m := make(map[string]Property)
	for t := e; t != nil; t = t.Parent {
		for name, p := range t.properties {
			if _, ok := m[name]; !ok {
				m[name] = p
			}
		}
	}
	return m
}

// PropertyNames returns the names of the own properties in declaration order.
func (e *Entity) PropertyNames() []string {
	names := make([]string, len(e.order))
	for i, p := range e.order {
		names[i] = p.Info().Name
	}
	return names
}

// Ancestors returns the parent chain of the entity, nearest first.
func (e *Entity) Ancestors() []*Entity {
	var ancestors []*Entity
	for t := e.Parent; t != nil; t = t.Parent {
		ancestors = append(ancestors, t)
	}
	return ancestors
}

// Descendants returns all the entities inheriting from this one,
// in depth-first order.
func (e *Entity) Descendants() []*Entity {
	var desc []*Entity
	for _, c := range e.Children {
		desc = append(desc, c)
		desc = append(desc, c.Descendants()...)
	}
	return desc
}

// IsKindOf reports if the entity is other or inherits from it.
func (e *Entity) IsKindOf(other *Entity) bool {
	for t := e; t != nil; t = t.Parent {
		if t == other {
			return true
		}
	}
	return false
}

// String returns the entity name.
func (e *Entity) String() string { return e.Name }
