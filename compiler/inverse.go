package compiler

import (
	"fmt"
	"slices"

	"github.com/syssam/modeldesc/graph"
)

// linkInverses connects every pending relationship to its named inverse on
// the destination entity, inherited relationships included. The inverse is
// linked back only when its declaring entity is a kind of the
// relationship's destination; an inherited inverse is linked one way and
// left untouched. A relationship already linked elsewhere, or declaring a
// different inverse name, is a conflict.
func (c *compiler) linkInverses() error {
	for _, p := range c.pending {
		r := p.rel
		owner, dest := r.Info().Entity, r.Destination
		rerr := func(kind error, msg string) error {
			return &RelationshipError{
				Kind:         kind,
				Entity:       owner.Name,
				Relationship: r.Name,
				Destination:  dest.Name,
				Inverse:      p.inverse,
				Message:      msg,
			}
		}
		prop, ok := dest.Property(p.inverse)
		if !ok {
			return rerr(ErrUnresolvedInverseRelationship, suggest(p.inverse, relationshipNames(dest)))
		}
		target, ok := prop.(*graph.Relationship)
		if !ok {
			return rerr(ErrUnresolvedInverseRelationship, fmt.Sprintf("%s is not a relationship (%s)", p.inverse, prop.Kind()))
		}
		back := target.Info().Entity.IsKindOf(dest)
		switch {
		case back && target.InverseName != "" && target.InverseName != r.Name:
			return rerr(ErrConflictingInverse, fmt.Sprintf("%s.%s declares inverse %q", target.Info().Entity.Name, target.Name, target.InverseName))
		case back && target.Inverse != nil && target.Inverse != r:
			return rerr(ErrConflictingInverse, fmt.Sprintf("%s.%s is already the inverse of %s.%s", target.Info().Entity.Name, target.Name, target.Inverse.Info().Entity.Name, target.Inverse.Name))
		case r.Inverse != nil && r.Inverse != target:
			return rerr(ErrConflictingInverse, fmt.Sprintf("already the inverse of %s.%s", r.Inverse.Info().Entity.Name, r.Inverse.Name))
		case !owner.IsKindOf(target.Destination):
			return rerr(ErrConflictingInverse, fmt.Sprintf("%s.%s points to %s", target.Info().Entity.Name, target.Name, target.Destination.Name))
		}
		if r.Inverse == nil {
			c.ninverses++
		}
		r.Inverse = target
		if back {
			target.Inverse = r
		}
	}
	return nil
}

// relationshipNames returns the sorted names of the relationships of e,
// inherited ones included.
func relationshipNames(e *graph.Entity) []string {
	var names []string
	for name, p := range e.PropertiesByName() {
		if p.Kind() == graph.KindRelationship {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
