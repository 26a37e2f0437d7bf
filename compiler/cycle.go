package compiler

import (
	"strings"

	"github.com/syssam/modeldesc/graph"
)

// checkInheritance rejects parent chains that loop and, unless property
// overrides are enabled, properties that redeclare an inherited name. It
// must run before anything walks the parent chain.
func (c *compiler) checkInheritance() error {
	for _, e := range c.ents {
		if cycle := parentCycle(e); cycle != nil {
			names := make([]string, len(cycle))
			for i, t := range cycle {
				names[i] = t.Name
			}
			return &EntityError{
				Kind:    ErrInheritanceCycle,
				Entity:  e.Name,
				Message: strings.Join(names, " -> "),
			}
		}
	}
	if c.cfg.PropertyOverride {
		return nil
	}
	for _, e := range c.ents {
		if e.Parent == nil {
			continue
		}
		for _, p := range e.Properties() {
			name := p.Info().Name
			if inherited, ok := e.Parent.Property(name); ok {
				return &PropertyError{
					Kind:     ErrDuplicatePropertyName,
					Entity:   e.Name,
					Property: name,
					Message:  "redeclares a property inherited from " + inherited.Info().Entity.Name,
				}
			}
		}
	}
	return nil
}

// parentCycle returns the loop reachable from e through parent links, with
// the first entity repeated at the end, or nil if the chain ends.
func parentCycle(e *graph.Entity) []*graph.Entity {
	pos := make(map[*graph.Entity]int)
	var chain []*graph.Entity
	for t := e; t != nil; t = t.Parent {
		if i, ok := pos[t]; ok {
			return append(chain[i:], t)
		}
		pos[t] = len(chain)
		chain = append(chain, t)
	}
	return nil
}
