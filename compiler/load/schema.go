package load

import (
	"fmt"
	"math"
	"net/url"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/syssam/modeldesc/schema"
	"github.com/syssam/modeldesc/schema/edge"
	"github.com/syssam/modeldesc/schema/field"
	"github.com/syssam/modeldesc/schema/index"
)

// Document is a description document: the entity descriptions of one
// compilation, in declaration order.
type Document struct {
	Entities []*Entity `yaml:"entities" msgpack:"entities"`
}

// Entity represents a schema.Entity loaded from a document.
type Entity struct {
	Name          string          `yaml:"name" msgpack:"name"`
	TypeName      string          `yaml:"type,omitempty" msgpack:"type,omitempty"`
	Parent        string          `yaml:"parent,omitempty" msgpack:"parent,omitempty"`
	Abstract      bool            `yaml:"abstract,omitempty" msgpack:"abstract,omitempty"`
	Configuration string          `yaml:"configuration,omitempty" msgpack:"configuration,omitempty"`
	Attributes    []*Attribute    `yaml:"attributes,omitempty" msgpack:"attributes,omitempty"`
	Fetched       []*Fetched      `yaml:"fetched,omitempty" msgpack:"fetched,omitempty"`
	Relationships []*Relationship `yaml:"relationships,omitempty" msgpack:"relationships,omitempty"`
	Indexes       []*Index        `yaml:"indexes,omitempty" msgpack:"indexes,omitempty"`
	Unique        [][]string      `yaml:"unique,omitempty" msgpack:"unique,omitempty"`
}

// Attribute represents a field.Descriptor loaded from a document.
type Attribute struct {
	Name      string `yaml:"name" msgpack:"name"`
	Type      string `yaml:"type" msgpack:"type"`
	Optional  bool   `yaml:"optional,omitempty" msgpack:"optional,omitempty"`
	Default   any    `yaml:"default,omitempty" msgpack:"default,omitempty"`
	Indexed   bool   `yaml:"indexed,omitempty" msgpack:"indexed,omitempty"`
	Spotlight bool   `yaml:"spotlight,omitempty" msgpack:"spotlight,omitempty"`
	Transient bool   `yaml:"transient,omitempty" msgpack:"transient,omitempty"`
	Comment   string `yaml:"comment,omitempty" msgpack:"comment,omitempty"`
}

// Fetched represents a field.FetchedDescriptor loaded from a document.
type Fetched struct {
	Name      string `yaml:"name" msgpack:"name"`
	Predicate any    `yaml:"predicate" msgpack:"predicate"`
	Optional  bool   `yaml:"optional,omitempty" msgpack:"optional,omitempty"`
	Comment   string `yaml:"comment,omitempty" msgpack:"comment,omitempty"`
}

// Relationship represents an edge.Descriptor loaded from a document.
// Optional defaults to true and Max to 1, as with edge.To.
type Relationship struct {
	Name        string `yaml:"name" msgpack:"name"`
	Destination string `yaml:"destination" msgpack:"destination"`
	Optional    *bool  `yaml:"optional,omitempty" msgpack:"optional,omitempty"`
	Min         int    `yaml:"min,omitempty" msgpack:"min,omitempty"`
	Max         *int   `yaml:"max,omitempty" msgpack:"max,omitempty"`
	ToMany      bool   `yaml:"many,omitempty" msgpack:"many,omitempty"`
	DeleteRule  string `yaml:"delete,omitempty" msgpack:"delete,omitempty"`
	Inverse     string `yaml:"inverse,omitempty" msgpack:"inverse,omitempty"`
	Ordered     bool   `yaml:"ordered,omitempty" msgpack:"ordered,omitempty"`
	Comment     string `yaml:"comment,omitempty" msgpack:"comment,omitempty"`
}

// Index represents an index.Descriptor loaded from a document. Fields is a
// shorthand for ascending binary elements.
type Index struct {
	Name     string     `yaml:"name" msgpack:"name"`
	Fields   []string   `yaml:"fields,omitempty" msgpack:"fields,omitempty"`
	Elements []*Element `yaml:"elements,omitempty" msgpack:"elements,omitempty"`
}

// Element represents an index.Element loaded from a document.
type Element struct {
	Property   string `yaml:"property,omitempty" msgpack:"property,omitempty"`
	Expression string `yaml:"expression,omitempty" msgpack:"expression,omitempty"`
	Type       string `yaml:"type,omitempty" msgpack:"type,omitempty"`
	Descending bool   `yaml:"descending,omitempty" msgpack:"descending,omitempty"`
}

// NewEntity creates a loaded entity from an entity description.
// It returns an error if the description or one of its descriptors
// contains an error.
func NewEntity(d *schema.Entity) (*Entity, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	ne := &Entity{
		Name:          d.Name,
		TypeName:      d.TypeName,
		Parent:        d.Parent,
		Abstract:      d.Abstract,
		Configuration: d.Configuration,
		Unique:        d.Constraints,
	}
	for _, fd := range d.Attributes {
		a, err := NewAttribute(fd)
		if err != nil {
			return nil, fmt.Errorf("entity %q: %w", d.Name, err)
		}
		ne.Attributes = append(ne.Attributes, a)
	}
	for _, fd := range d.FetchedProperties {
		if fd.Err != nil {
			return nil, fmt.Errorf("entity %q: %w", d.Name, fd.Err)
		}
		ne.Fetched = append(ne.Fetched, &Fetched{
			Name:      fd.Name,
			Predicate: fd.Predicate,
			Optional:  fd.Optional,
			Comment:   fd.Comment,
		})
	}
	for _, ed := range d.Relationships {
		r, err := NewRelationship(ed)
		if err != nil {
			return nil, fmt.Errorf("entity %q: %w", d.Name, err)
		}
		ne.Relationships = append(ne.Relationships, r)
	}
	for _, idx := range d.Indexes {
		if idx.Err != nil {
			return nil, fmt.Errorf("entity %q: %w", d.Name, idx.Err)
		}
		ne.Indexes = append(ne.Indexes, NewIndex(idx))
	}
	return ne, nil
}

// NewAttribute creates a loaded attribute from an attribute descriptor.
func NewAttribute(fd *field.Descriptor) (*Attribute, error) {
	if fd.Err != nil {
		return nil, fd.Err
	}
	text, err := fd.Type.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("attribute %q: %w", fd.Name, err)
	}
	return &Attribute{
		Name:      fd.Name,
		Type:      string(text),
		Optional:  fd.Optional,
		Default:   exportDefault(fd.Default),
		Indexed:   fd.Indexed,
		Spotlight: fd.Spotlight,
		Transient: fd.Transient,
		Comment:   fd.Comment,
	}, nil
}

// NewRelationship creates a loaded relationship from a relationship descriptor.
func NewRelationship(ed *edge.Descriptor) (*Relationship, error) {
	if ed.Err != nil {
		return nil, ed.Err
	}
	optional, maxCount := ed.Optional, ed.MaxCount
	return &Relationship{
		Name:        ed.Name,
		Destination: ed.Destination,
		Optional:    &optional,
		Min:         ed.MinCount,
		Max:         &maxCount,
		DeleteRule:  ed.DeleteRule.String(),
		Inverse:     ed.Inverse,
		Ordered:     ed.Ordered,
		Comment:     ed.Comment,
	}, nil
}

// NewIndex creates a loaded index from an index descriptor.
func NewIndex(idx *index.Descriptor) *Index {
	ni := &Index{Name: idx.Name}
	for _, e := range idx.Elements {
		ne := &Element{
			Property:   e.Property,
			Expression: e.Expression,
			Descending: !e.Ascending,
		}
		if e.Type != index.Binary {
			ne.Type = e.Type.String()
		}
		ni.Elements = append(ni.Elements, ne)
	}
	return ni
}

// Describe converts the loaded entity back to an entity description.
func (e *Entity) Describe() (*schema.Entity, error) {
	d := &schema.Entity{
		Name:          e.Name,
		TypeName:      e.TypeName,
		Parent:        e.Parent,
		Abstract:      e.Abstract,
		Configuration: e.Configuration,
		Constraints:   e.Unique,
	}
	for _, a := range e.Attributes {
		fd, err := a.descriptor()
		if err != nil {
			return nil, fmt.Errorf("entity %q: %w", e.Name, err)
		}
		d.Attributes = append(d.Attributes, fd)
	}
	for _, f := range e.Fetched {
		d.FetchedProperties = append(d.FetchedProperties, &field.FetchedDescriptor{
			Name:      f.Name,
			Predicate: f.Predicate,
			Optional:  f.Optional,
			Comment:   f.Comment,
		})
	}
	for _, r := range e.Relationships {
		ed, err := r.descriptor()
		if err != nil {
			return nil, fmt.Errorf("entity %q: %w", e.Name, err)
		}
		d.Relationships = append(d.Relationships, ed)
	}
	for _, idx := range e.Indexes {
		id, err := idx.descriptor()
		if err != nil {
			return nil, fmt.Errorf("entity %q: %w", e.Name, err)
		}
		d.Indexes = append(d.Indexes, id)
	}
	return d, nil
}

func (a *Attribute) descriptor() (*field.Descriptor, error) {
	t, err := field.ParseType(a.Type)
	if err != nil {
		return nil, fmt.Errorf("attribute %q: %w", a.Name, err)
	}
	def, err := coerceDefault(t, a.Default)
	if err != nil {
		return nil, fmt.Errorf("attribute %q: %w", a.Name, err)
	}
	return &field.Descriptor{
		Name:      a.Name,
		Type:      t,
		Optional:  a.Optional,
		Default:   def,
		Indexed:   a.Indexed,
		Spotlight: a.Spotlight,
		Transient: a.Transient,
		Comment:   a.Comment,
	}, nil
}

func (r *Relationship) descriptor() (*edge.Descriptor, error) {
	ed := &edge.Descriptor{
		Name:        r.Name,
		Destination: r.Destination,
		Optional:    true,
		MinCount:    r.Min,
		MaxCount:    1,
		Inverse:     r.Inverse,
		Ordered:     r.Ordered,
		Comment:     r.Comment,
	}
	if r.Optional != nil {
		ed.Optional = *r.Optional
	}
	switch {
	case r.Max != nil && r.ToMany && *r.Max == 1:
		return nil, fmt.Errorf("relationship %q: many with max 1", r.Name)
	case r.Max != nil:
		ed.MaxCount = *r.Max
	case r.ToMany:
		ed.MaxCount = edge.Many
	}
	if r.DeleteRule != "" {
		rule, err := edge.ParseDeleteRule(r.DeleteRule)
		if err != nil {
			return nil, fmt.Errorf("relationship %q: %w", r.Name, err)
		}
		ed.DeleteRule = rule
	}
	return ed, nil
}

func (i *Index) descriptor() (*index.Descriptor, error) {
	d := &index.Descriptor{Name: i.Name}
	for _, name := range i.Fields {
		d.Elements = append(d.Elements, index.Element{Property: name, Ascending: true})
	}
	for pos, e := range i.Elements {
		if (e.Property == "") == (e.Expression == "") {
			return nil, fmt.Errorf("index %q: element %d needs exactly one of property and expression", i.Name, pos)
		}
		var typ index.ElementType
		if err := typ.UnmarshalText([]byte(e.Type)); err != nil {
			return nil, fmt.Errorf("index %q: %w", i.Name, err)
		}
		d.Elements = append(d.Elements, index.Element{
			Property:   e.Property,
			Expression: e.Expression,
			Type:       typ,
			Ascending:  !e.Descending,
		})
	}
	return d, nil
}

// coerceDefault converts a decoded default value to the Go type of the
// attribute type. Documents lose the exact Go type of numbers, and dates
// are written as strings.
func coerceDefault(t field.Type, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	switch {
	case t == field.TypeDate:
		if s, ok := v.(string); ok {
			for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
				if tm, err := time.Parse(layout, s); err == nil {
					return tm, nil
				}
			}
			return nil, fmt.Errorf("invalid date default %q", s)
		}
	case t == field.TypeURI:
		if s, ok := v.(string); ok {
			u, err := url.Parse(s)
			if err != nil {
				return nil, err
			}
			return u, nil
		}
	case t == field.TypeUUID:
		if s, ok := v.(string); ok {
			return uuid.Parse(s)
		}
	case t.Numeric() && isNumber(rv.Kind()):
		gt := t.GoType()
		if isFloat(gt.Kind()) {
			f := rv.Convert(reflect.TypeFor[float64]()).Float()
			if gt.Kind() == reflect.Float32 && !math.IsInf(f, 0) && math.Abs(f) > math.MaxFloat32 {
				return nil, fmt.Errorf("default value %v overflows %s", v, t)
			}
			return rv.Convert(gt).Interface(), nil
		}
		if !isInteger(rv.Kind()) {
			return v, nil
		}
		var n int64
		if k := rv.Kind(); k >= reflect.Uint && k <= reflect.Uint64 {
			if rv.Uint() > math.MaxInt64 {
				return nil, fmt.Errorf("default value %v overflows %s", v, t)
			}
			n = int64(rv.Uint())
		} else {
			n = rv.Int()
		}
		if err := t.CheckDefault(n); err != nil {
			return nil, err
		}
		return reflect.ValueOf(n).Convert(gt).Interface(), nil
	}
	return v, nil
}

// exportDefault converts default values that have no portable encoding
// to their string form.
func exportDefault(v any) any {
	switch v := v.(type) {
	case *url.URL:
		return v.String()
	case url.URL:
		return v.String()
	case uuid.UUID:
		return v.String()
	}
	return v
}

func isNumber(k reflect.Kind) bool {
	return isInteger(k) || isFloat(k)
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}
