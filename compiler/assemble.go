package compiler

import (
	"errors"

	"github.com/syssam/modeldesc/graph"
)

// partition groups the compiled entities by configuration tag. Untagged
// entities join the default configuration if one is set, and no
// configuration otherwise.
func (c *compiler) partition() error {
	for _, e := range c.ents {
		name := e.Configuration
		if name == "" {
			name = c.cfg.DefaultConfiguration
		}
		if name == "" {
			continue
		}
		c.configs[name] = append(c.configs[name], e)
	}
	return nil
}

// assemble appends the compiled entities to the base model clone and
// merges the configurations. Configurations of the base model are kept.
func (c *compiler) assemble() (*graph.Model, error) {
	m := c.base
	for _, e := range c.ents {
		if err := m.Add(e); err != nil {
			if errors.Is(err, graph.ErrEntityExists) {
				return nil, &EntityError{Kind: ErrDuplicateEntityName, Entity: e.Name, Message: "already declared by the base model"}
			}
			return nil, err
		}
	}
	for name, ents := range c.configs {
		for _, e := range ents {
			m.Assign(name, e)
		}
	}
	return m, nil
}
