// Package index provides builders for describing fetch indexes of an entity.
//
//	index.Fields("byAuthor", "author", "publicationDate")
//
//	index.Named("byLocation",
//		index.Property("location").Type(index.RTree),
//		index.Property("createdAt").Descending(),
//	)
package index

import (
	"fmt"
	"strings"
)

// ElementType is the collation type of an index element.
type ElementType uint8

// Element types.
const (
	Binary ElementType = iota
	RTree
)

// String returns the element type name.
func (t ElementType) String() string {
	switch t {
	case Binary:
		return "binary"
	case RTree:
		return "rtree"
	}
	return fmt.Sprintf("ElementType(%d)", t)
}

// MarshalText implements the encoding.TextMarshaler interface.
func (t ElementType) MarshalText() ([]byte, error) {
	if t > RTree {
		return nil, fmt.Errorf("index: invalid element type %d", t)
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (t *ElementType) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "binary", "":
		*t = Binary
	case "rtree":
		*t = RTree
	default:
		return fmt.Errorf("index: unknown element type %q", text)
	}
	return nil
}

// Element is a single element of an index. Exactly one of Property and
// Expression is set. Expression elements are kept in the description so
// that the compiler can reject them explicitly.
type Element struct {
	Property   string
	Expression string
	Type       ElementType
	Ascending  bool
}

// IsExpression reports if the element is expression-typed. An element
// carrying an expression is expression-typed even if a property is set.
func (e Element) IsExpression() bool {
	return e.Expression != ""
}

// String returns a short representation of the element.
func (e Element) String() string {
	if e.IsExpression() {
		return "expression(" + e.Expression + ")"
	}
	return e.Property
}

// ElementBuilder configures a single index element.
type ElementBuilder struct {
	elem Element
}

// Property returns an element referencing the named property.
// Elements are binary and ascending by default.
func Property(name string) *ElementBuilder {
	return &ElementBuilder{elem: Element{Property: name, Ascending: true}}
}

// Expression returns an expression-typed element.
func Expression(exprType string) *ElementBuilder {
	return &ElementBuilder{elem: Element{Expression: exprType, Ascending: true}}
}

// Type sets the collation type of the element.
func (b *ElementBuilder) Type(t ElementType) *ElementBuilder {
	b.elem.Type = t
	return b
}

// Descending sets the element order to descending.
func (b *ElementBuilder) Descending() *ElementBuilder {
	b.elem.Ascending = false
	return b
}

// Element returns the configured element.
func (b *ElementBuilder) Element() Element {
	return b.elem
}

// Descriptor holds the index configuration.
type Descriptor struct {
	Name     string
	Elements []Element
	Err      error
}

// Builder for indexes.
type Builder struct {
	desc *Descriptor
}

// Named returns an index built from the given elements.
func Named(name string, elems ...*ElementBuilder) *Builder {
	b := &Builder{desc: &Descriptor{Name: name}}
	for _, e := range elems {
		b.desc.Elements = append(b.desc.Elements, e.Element())
	}
	if len(b.desc.Elements) == 0 {
		b.desc.Err = fmt.Errorf("index %q: no elements", name)
	}
	return b
}

// Fields returns an index over the named properties, using the
// default element configuration.
func Fields(name string, props ...string) *Builder {
	elems := make([]*ElementBuilder, len(props))
	for i, p := range props {
		elems[i] = Property(p)
	}
	return Named(name, elems...)
}

// Descriptor returns the index descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}
