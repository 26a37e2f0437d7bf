package field

import "fmt"

// Descriptor for attribute configuration.
type Descriptor struct {
	Name      string // attribute name.
	Type      Type   // attribute type.
	Optional  bool   // nil value is allowed.
	Default   any    // default value.
	Indexed   bool   // indexed by the store.
	Spotlight bool   // indexed by spotlight.
	Transient bool   // not persisted.
	Comment   string // attribute comment.
	Err       error
}

// Attribute is the builder returned by the type constructors.
type Attribute struct {
	desc *Descriptor
}

// New returns a builder for an attribute with the given name and type.
func New(name string, t Type) *Attribute {
	b := &Attribute{desc: &Descriptor{Name: name, Type: t}}
	if !t.Valid() {
		b.desc.Err = fmt.Errorf("attribute %q: invalid type %d", name, t)
	}
	return b
}

// Int16 returns a new integer16 attribute.
func Int16(name string) *Attribute { return New(name, TypeInteger16) }

// Int32 returns a new integer32 attribute.
func Int32(name string) *Attribute { return New(name, TypeInteger32) }

// Int64 returns a new integer64 attribute.
func Int64(name string) *Attribute { return New(name, TypeInteger64) }

// Decimal returns a new decimal attribute.
func Decimal(name string) *Attribute { return New(name, TypeDecimal) }

// Double returns a new double attribute.
func Double(name string) *Attribute { return New(name, TypeDouble) }

// Float returns a new float attribute.
func Float(name string) *Attribute { return New(name, TypeFloat) }

// String returns a new string attribute.
func String(name string) *Attribute { return New(name, TypeString) }

// Bool returns a new boolean attribute.
func Bool(name string) *Attribute { return New(name, TypeBoolean) }

// Date returns a new date attribute.
func Date(name string) *Attribute { return New(name, TypeDate) }

// Bytes returns a new binary-data attribute.
func Bytes(name string) *Attribute { return New(name, TypeBinaryData) }

// URI returns a new URI attribute.
func URI(name string) *Attribute { return New(name, TypeURI) }

// UUID returns a new UUID attribute.
func UUID(name string) *Attribute { return New(name, TypeUUID) }

// Transformable returns a new transformable attribute.
func Transformable(name string) *Attribute { return New(name, TypeTransformable) }

// Undefined returns a new attribute with an undefined type.
// Undefined attributes are usually transient.
func Undefined(name string) *Attribute { return New(name, TypeUndefined) }

// Optional indicates that this attribute may be nil.
func (b *Attribute) Optional() *Attribute {
	b.desc.Optional = true
	return b
}

// Default sets the default value of the attribute. The value is checked
// against the attribute type.
func (b *Attribute) Default(v any) *Attribute {
	if err := b.desc.Type.CheckDefault(v); err != nil && b.desc.Err == nil {
		b.desc.Err = fmt.Errorf("attribute %q: %w", b.desc.Name, err)
	}
	b.desc.Default = v
	return b
}

// Indexed marks the attribute as indexed.
func (b *Attribute) Indexed() *Attribute {
	b.desc.Indexed = true
	return b
}

// Spotlight marks the attribute as indexed by spotlight.
func (b *Attribute) Spotlight() *Attribute {
	b.desc.Spotlight = true
	return b
}

// Transient marks the attribute as transient.
func (b *Attribute) Transient() *Attribute {
	b.desc.Transient = true
	return b
}

// Comment sets the comment of the attribute.
func (b *Attribute) Comment(c string) *Attribute {
	b.desc.Comment = c
	return b
}

// Descriptor implements the schema.Attribute interface by returning its descriptor.
func (b *Attribute) Descriptor() *Descriptor {
	return b.desc
}

// FetchedDescriptor describes a fetched property. The predicate is opaque
// to the compiler and passed through to the resolved property as is.
type FetchedDescriptor struct {
	Name      string
	Predicate any
	Optional  bool
	Comment   string
	Err       error
}

// FetchedProperty is the builder for fetched properties.
type FetchedProperty struct {
	desc *FetchedDescriptor
}

// Fetched returns a new fetched property with the given predicate.
func Fetched(name string, predicate any) *FetchedProperty {
	b := &FetchedProperty{desc: &FetchedDescriptor{Name: name, Predicate: predicate}}
	if predicate == nil {
		b.desc.Err = fmt.Errorf("fetched property %q: missing predicate", name)
	}
	return b
}

// Optional indicates that this fetched property may be nil.
func (b *FetchedProperty) Optional() *FetchedProperty {
	b.desc.Optional = true
	return b
}

// Comment sets the comment of the fetched property.
func (b *FetchedProperty) Comment(c string) *FetchedProperty {
	b.desc.Comment = c
	return b
}

// Descriptor returns the fetched property descriptor.
func (b *FetchedProperty) Descriptor() *FetchedDescriptor {
	return b.desc
}
