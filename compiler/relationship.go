package compiler

import (
	"fmt"

	"github.com/syssam/modeldesc/graph"
	"github.com/syssam/modeldesc/schema"
	"github.com/syssam/modeldesc/schema/edge"
)

// pendingInverse is a relationship waiting for its named inverse to be linked.
type pendingInverse struct {
	rel     *graph.Relationship
	inverse string
}

// compileRelationships resolves relationship destinations and parent
// entities. Inverses are recorded and linked in a later phase.
func (c *compiler) compileRelationships() error {
	for i, d := range c.descs {
		e := c.ents[i]
		for _, r := range d.Relationships {
			if err := checkRelationship(d, r); err != nil {
				return err
			}
			dest, ok := c.lookup(r.Destination)
			if !ok {
				return &RelationshipError{
					Kind:         ErrUnresolvedEntityReference,
					Entity:       d.Name,
					Relationship: r.Name,
					Destination:  r.Destination,
					Message:      suggest(r.Destination, c.entityNames()),
				}
			}
			rel := &graph.Relationship{
				PropertyInfo: graph.PropertyInfo{
					Name:     r.Name,
					Optional: r.Optional,
					Comment:  r.Comment,
				},
				Destination: dest,
				MinCount:    r.MinCount,
				MaxCount:    r.MaxCount,
				DeleteRule:  r.DeleteRule,
				Ordered:     r.Ordered,
				InverseName: r.Inverse,
			}
			if err := e.AddRelationship(rel); err != nil {
				return duplicateProperty(d.Name, r.Name, err)
			}
			c.nrels++
			if r.Inverse != "" {
				c.pending = append(c.pending, pendingInverse{rel: rel, inverse: r.Inverse})
			}
		}
		if d.Parent == "" {
			continue
		}
		parent, ok := c.lookup(d.Parent)
		if !ok {
			return &EntityError{
				Kind:    ErrUnresolvedParentEntity,
				Entity:  d.Name,
				Ref:     d.Parent,
				Message: suggest(d.Parent, c.entityNames()),
			}
		}
		e.SetParent(parent)
	}
	return nil
}

func checkRelationship(d *schema.Entity, r *edge.Descriptor) error {
	var msg string
	switch {
	case r == nil:
		return &RelationshipError{Kind: ErrInvalidDescription, Entity: d.Name, Message: "nil relationship"}
	case r.Err != nil:
		return &RelationshipError{Kind: ErrInvalidDescription, Entity: d.Name, Relationship: r.Name, Cause: r.Err}
	case r.Name == "":
		msg = "missing relationship name"
	case r.Destination == "":
		msg = "missing destination entity"
	case r.MinCount < 0 || r.MaxCount < 0:
		msg = fmt.Sprintf("negative cardinality [%d, %d]", r.MinCount, r.MaxCount)
	case r.MaxCount != edge.Many && r.MinCount > r.MaxCount:
		msg = fmt.Sprintf("min count %d exceeds max count %d", r.MinCount, r.MaxCount)
	default:
		return nil
	}
	return &RelationshipError{Kind: ErrInvalidDescription, Entity: d.Name, Relationship: r.Name, Message: msg}
}
