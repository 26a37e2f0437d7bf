package compiler

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/modeldesc/graph"
	"github.com/syssam/modeldesc/schema"
	"github.com/syssam/modeldesc/schema/field"
)

// compileProperties builds the attributes and fetched properties of every
// entity. Entities are independent in this phase and are compiled
// concurrently; the returned error is the first one in declaration order.
func (c *compiler) compileProperties() error {
	errs := make([]error, len(c.descs))
	var g errgroup.Group
	g.SetLimit(c.cfg.Workers)
	for i := range c.descs {
		g.Go(func() error {
			errs[i] = compileEntityProperties(c.descs[i], c.ents[i])
			return nil
		})
	}
	_ = g.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func compileEntityProperties(d *schema.Entity, e *graph.Entity) error {
	for _, a := range d.Attributes {
		if err := checkAttribute(d, a); err != nil {
			return err
		}
		err := e.AddAttribute(&graph.Attribute{
			PropertyInfo: graph.PropertyInfo{
				Name:     a.Name,
				Optional: a.Optional,
				Comment:  a.Comment,
			},
			Type:      a.Type,
			Default:   a.Default,
			Indexed:   a.Indexed,
			Spotlight: a.Spotlight,
			Transient: a.Transient,
		})
		if err != nil {
			return duplicateProperty(d.Name, a.Name, err)
		}
	}
	for _, f := range d.FetchedProperties {
		switch {
		case f == nil:
			return &PropertyError{Kind: ErrInvalidDescription, Entity: d.Name, Message: "nil fetched property"}
		case f.Err != nil:
			return &PropertyError{Kind: ErrInvalidDescription, Entity: d.Name, Property: f.Name, Cause: f.Err}
		case f.Name == "":
			return &PropertyError{Kind: ErrInvalidDescription, Entity: d.Name, Message: "missing fetched property name"}
		case f.Predicate == nil:
			return &PropertyError{Kind: ErrInvalidDescription, Entity: d.Name, Property: f.Name, Message: "missing predicate"}
		}
		err := e.AddFetchedProperty(&graph.FetchedProperty{
			PropertyInfo: graph.PropertyInfo{
				Name:     f.Name,
				Optional: f.Optional,
				Comment:  f.Comment,
			},
			Predicate: f.Predicate,
		})
		if err != nil {
			return duplicateProperty(d.Name, f.Name, err)
		}
	}
	return nil
}

func checkAttribute(d *schema.Entity, a *field.Descriptor) error {
	switch {
	case a == nil:
		return &PropertyError{Kind: ErrInvalidDescription, Entity: d.Name, Message: "nil attribute"}
	case a.Err != nil:
		return &PropertyError{Kind: ErrInvalidDescription, Entity: d.Name, Property: a.Name, Cause: a.Err}
	case a.Name == "":
		return &PropertyError{Kind: ErrInvalidDescription, Entity: d.Name, Message: "missing attribute name"}
	case !a.Type.Valid():
		return &PropertyError{Kind: ErrInvalidDescription, Entity: d.Name, Property: a.Name, Message: fmt.Sprintf("invalid attribute type %d", a.Type)}
	}
	if a.Default != nil {
		if err := a.Type.CheckDefault(a.Default); err != nil {
			return &PropertyError{Kind: ErrInvalidDescription, Entity: d.Name, Property: a.Name, Message: "invalid default", Cause: err}
		}
	}
	return nil
}

// duplicateProperty converts a graph.ErrPropertyExists error.
func duplicateProperty(entity, name string, err error) error {
	if errors.Is(err, graph.ErrPropertyExists) {
		return &PropertyError{Kind: ErrDuplicatePropertyName, Entity: entity, Property: name, Message: "declared twice"}
	}
	return err
}
