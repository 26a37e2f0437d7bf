package compiler

import (
	"fmt"
	"maps"
	"slices"

	"github.com/syssam/modeldesc/graph"
	"github.com/syssam/modeldesc/schema"
)

// compileIndexes resolves the indexes and uniqueness constraints of every
// compiled entity against its final property set, inherited properties
// included. Indexes declared by a parent are not copied to its children.
func (c *compiler) compileIndexes() error {
	for i, d := range c.descs {
		e := c.ents[i]
		indexes, err := c.resolveIndexes(d, e)
		if err != nil {
			return err
		}
		e.Indexes = indexes
		c.nindexes += len(indexes)
		e.Constraints = nil
		for _, group := range d.Constraints {
			props, err := resolveConstraint(d.Name, e, group)
			if err != nil {
				return err
			}
			e.Constraints = append(e.Constraints, props)
		}
	}
	return nil
}

func (c *compiler) resolveIndexes(d *schema.Entity, e *graph.Entity) ([]*graph.Index, error) {
	indexes := make([]*graph.Index, 0, len(d.Indexes))
	seen := make(map[string]bool, len(d.Indexes))
	for _, desc := range d.Indexes {
		switch {
		case desc == nil:
			return nil, &IndexError{Kind: ErrInvalidDescription, Entity: d.Name, Message: "nil index"}
		case desc.Err != nil:
			return nil, &IndexError{Kind: ErrInvalidDescription, Entity: d.Name, Index: desc.Name, Message: desc.Err.Error()}
		case desc.Name == "":
			return nil, &IndexError{Kind: ErrInvalidDescription, Entity: d.Name, Message: "missing index name"}
		case seen[desc.Name]:
			return nil, &IndexError{Kind: ErrInvalidDescription, Entity: d.Name, Index: desc.Name, Message: "declared twice"}
		case len(desc.Elements) == 0:
			return nil, &IndexError{Kind: ErrInvalidDescription, Entity: d.Name, Index: desc.Name, Message: "no elements"}
		}
		seen[desc.Name] = true
		idx := &graph.Index{Name: desc.Name, Entity: e}
		for pos, el := range desc.Elements {
			switch {
			case el.Property == "" && el.Expression == "":
				return nil, &IndexError{Kind: ErrInvalidDescription, Entity: d.Name, Index: desc.Name, Position: pos, Message: "empty element"}
			case el.Property != "" && el.Expression != "":
				return nil, &IndexError{
					Kind:     ErrInvalidDescription,
					Entity:   d.Name,
					Index:    desc.Name,
					Position: pos,
					Property: el.Property,
					Message:  fmt.Sprintf("has both a property and expression %q", el.Expression),
				}
			}
			if el.IsExpression() {
				return nil, &IndexError{
					Kind:     ErrUnsupportedIndexExpression,
					Entity:   d.Name,
					Index:    desc.Name,
					Position: pos,
					Message:  "expression type " + el.Expression,
				}
			}
			p, ok := e.Property(el.Property)
			if !ok {
				return nil, &IndexError{
					Kind:     ErrUnresolvedIndexProperty,
					Entity:   d.Name,
					Index:    desc.Name,
					Position: pos,
					Property: el.Property,
					Message:  suggest(el.Property, propertyNames(e)),
				}
			}
			idx.Elements = append(idx.Elements, &graph.IndexElement{
				Property:  p,
				Type:      el.Type,
				Ascending: el.Ascending,
			})
		}
		indexes = append(indexes, idx)
	}
	return indexes, nil
}

func resolveConstraint(entity string, e *graph.Entity, group []string) ([]graph.Property, error) {
	if len(group) == 0 {
		return nil, &PropertyError{Kind: ErrInvalidDescription, Entity: entity, Message: "empty uniqueness constraint"}
	}
	props := make([]graph.Property, len(group))
	for i, name := range group {
		p, ok := e.Property(name)
		if !ok {
			return nil, &PropertyError{
				Kind:     ErrUnresolvedConstraintProperty,
				Entity:   entity,
				Property: name,
				Message:  suggest(name, propertyNames(e)),
			}
		}
		props[i] = p
	}
	return props, nil
}

// propertyNames returns the sorted names of all properties of e,
// inherited ones included.
func propertyNames(e *graph.Entity) []string {
	return slices.Sorted(maps.Keys(e.PropertiesByName()))
}
