package compiler

import (
	"github.com/syssam/modeldesc/graph"
)

// registerNames validates the descriptions and allocates one entity shell
// per description.
func (c *compiler) registerNames() error {
	c.ents = make([]*graph.Entity, len(c.descs))
	for i, d := range c.descs {
		switch {
		case d == nil:
			return &EntityError{Kind: ErrInvalidDescription, Message: "nil entity description"}
		case d.Name == "":
			return &EntityError{Kind: ErrInvalidDescription, Message: "missing entity name"}
		case d.Err != nil:
			return &EntityError{Kind: ErrInvalidDescription, Entity: d.Name, Cause: d.Err}
		}
		if _, ok := c.byName[d.Name]; ok {
			return &EntityError{Kind: ErrDuplicateEntityName, Entity: d.Name, Message: "declared twice"}
		}
		if _, ok := c.base.Entity(d.Name); ok {
			return &EntityError{Kind: ErrDuplicateEntityName, Entity: d.Name, Message: "already declared by the base model"}
		}
		e := graph.NewEntity(d.Name)
		e.TypeName = d.TypeName
		e.Abstract = d.Abstract
		e.Configuration = d.Configuration
		c.ents[i] = e
		c.byName[d.Name] = e
	}
	return nil
}

// lookup resolves an entity name against the compiled set, then the base model.
func (c *compiler) lookup(name string) (*graph.Entity, bool) {
	if e, ok := c.byName[name]; ok {
		return e, true
	}
	return c.base.Entity(name)
}

// entityNames returns the names lookup can resolve.
func (c *compiler) entityNames() []string {
	names := c.base.EntityNames()
	for _, e := range c.ents {
		names = append(names, e.Name)
	}
	return names
}
