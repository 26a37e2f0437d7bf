package load

import (
	"fmt"
	"net/url"
	"reflect"
	"time"

	"github.com/go-openapi/inflect"
	"github.com/google/uuid"

	"github.com/syssam/modeldesc/schema/edge"
	"github.com/syssam/modeldesc/schema/field"
)

// PropertyName returns the property name of a Go struct field:
// "PublicationDate" becomes "publicationDate".
func PropertyName(goField string) string {
	return inflect.CamelizeDownFirst(goField)
}

// RelationshipOf infers a relationship from a field of the model struct.
// The destination is the name of the field's element type:
//
//	*T                a optional to-one relationship
//	T (struct)        a required to-one relationship
//	[]*T, []T         a required to-many relationship
//	map[*T]struct{}   a required to-many relationship
//
// The returned builder can be refined further, for example with Inverse.
func RelationshipOf(model any, goField string) (*edge.Builder, error) {
	sf, err := structField(model, goField)
	if err != nil {
		return nil, err
	}
	name := PropertyName(sf.Name)
	t := sf.Type
	switch {
	case t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct && !isScalar(t.Elem()):
		return edge.To(name, t.Elem().Name()), nil
	case t.Kind() == reflect.Struct && !isScalar(t):
		return edge.To(name, t.Name()).Required(), nil
	case t.Kind() == reflect.Slice:
		if dest := indirect(t.Elem()); dest.Kind() == reflect.Struct && !isScalar(dest) {
			return edge.To(name, dest.Name()).ToMany().Required(), nil
		}
	case t.Kind() == reflect.Map && t.Elem() == emptyStruct:
		if dest := indirect(t.Key()); dest.Kind() == reflect.Struct {
			return edge.To(name, dest.Name()).ToMany().Required(), nil
		}
	}
	return nil, fmt.Errorf("load: %s.%s: type %s is not a relationship", typeName(model), goField, t)
}

// InverseOf returns the property name of the relationship held by the
// given field of the model struct, for use with edge.Builder.Inverse.
func InverseOf(model any, goField string) (string, error) {
	if _, err := RelationshipOf(model, goField); err != nil {
		return "", err
	}
	return PropertyName(goField), nil
}

// AttributeOf infers an attribute from a field of the model struct. Pointer
// fields give optional attributes.
func AttributeOf(model any, goField string) (*field.Attribute, error) {
	sf, err := structField(model, goField)
	if err != nil {
		return nil, err
	}
	t, optional := sf.Type, false
	if t.Kind() == reflect.Pointer && t != urlType {
		t, optional = t.Elem(), true
	}
	typ, ok := attributeType(t)
	if !ok {
		return nil, fmt.Errorf("load: %s.%s: type %s has no attribute type", typeName(model), goField, sf.Type)
	}
	attr := field.New(PropertyName(sf.Name), typ)
	if optional {
		attr.Optional()
	}
	return attr, nil
}

var (
	emptyStruct = reflect.TypeOf(struct{}{})
	timeType    = reflect.TypeOf(time.Time{})
	uuidType    = reflect.TypeOf(uuid.UUID{})
	urlType     = reflect.TypeOf(&url.URL{})
)

func attributeType(t reflect.Type) (field.Type, bool) {
	switch t {
	case timeType:
		return field.TypeDate, true
	case uuidType:
		return field.TypeUUID, true
	case urlType, urlType.Elem():
		return field.TypeURI, true
	}
	switch t.Kind() {
	case reflect.Int16:
		return field.TypeInteger16, true
	case reflect.Int32:
		return field.TypeInteger32, true
	case reflect.Int64, reflect.Int:
		return field.TypeInteger64, true
	case reflect.Float32:
		return field.TypeFloat, true
	case reflect.Float64:
		return field.TypeDouble, true
	case reflect.String:
		return field.TypeString, true
	case reflect.Bool:
		return field.TypeBoolean, true
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return field.TypeBinaryData, true
		}
	}
	return field.TypeUndefined, false
}

// isScalar reports if the struct type maps to an attribute.
func isScalar(t reflect.Type) bool {
	_, ok := attributeType(t)
	return ok
}

func structField(model any, goField string) (reflect.StructField, error) {
	t := reflect.TypeOf(model)
	if t == nil || indirect(t).Kind() != reflect.Struct {
		return reflect.StructField{}, fmt.Errorf("load: %T is not a struct", model)
	}
	sf, ok := indirect(t).FieldByName(goField)
	if !ok {
		return reflect.StructField{}, fmt.Errorf("load: %s has no field %s", typeName(model), goField)
	}
	return sf, nil
}

func typeName(model any) string {
	if t := reflect.TypeOf(model); t != nil {
		return indirect(t).Name()
	}
	return "<nil>"
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
