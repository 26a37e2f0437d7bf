package field

import (
	"fmt"
	"net/url"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// A Type represents an attribute type.
type Type uint8

// List of attribute types.
const (
	TypeUndefined Type = iota
	TypeInteger16
	TypeInteger32
	TypeInteger64
	TypeDecimal
	TypeDouble
	TypeFloat
	TypeString
	TypeBoolean
	TypeDate
	TypeBinaryData
	TypeURI
	TypeUUID
	TypeTransformable
	endTypes
)

var typeNames = [...]string{
	TypeUndefined:     "undefined",
	TypeInteger16:     "integer16",
	TypeInteger32:     "integer32",
	TypeInteger64:     "integer64",
	TypeDecimal:       "decimal",
	TypeDouble:        "double",
	TypeFloat:         "float",
	TypeString:        "string",
	TypeBoolean:       "boolean",
	TypeDate:          "date",
	TypeBinaryData:    "binary",
	TypeURI:           "uri",
	TypeUUID:          "uuid",
	TypeTransformable: "transformable",
}

// String returns the string representation of a type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", t)
}

// Valid reports if the given type is a known attribute type.
func (t Type) Valid() bool {
	return t < endTypes
}

// Numeric reports if the given type is a numeric type.
func (t Type) Numeric() bool {
	switch t {
	case TypeInteger16, TypeInteger32, TypeInteger64, TypeDecimal, TypeDouble, TypeFloat:
		return true
	}
	return false
}

// ParseType returns the type registered under the given name.
// It accepts the names returned by Type.String.
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if name == s {
			return Type(t), nil
		}
	}
	return TypeUndefined, fmt.Errorf("field: unknown attribute type %q", s)
}

// MarshalText implements the encoding.TextMarshaler interface.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("field: invalid attribute type %d", t)
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (t *Type) UnmarshalText(text []byte) error {
	v, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

var (
	timeType  = reflect.TypeOf(time.Time{})
	uuidType  = reflect.TypeOf(uuid.UUID{})
	urlType   = reflect.TypeOf(&url.URL{})
	bytesType = reflect.TypeOf([]byte(nil))
)

// GoType returns the Go type that holds values of the attribute type.
// It returns nil for types without a fixed representation
// (undefined and transformable).
func (t Type) GoType() reflect.Type {
	switch t {
	case TypeInteger16:
		return reflect.TypeOf(int16(0))
	case TypeInteger32:
		return reflect.TypeOf(int32(0))
	case TypeInteger64:
		return reflect.TypeOf(int64(0))
	case TypeDecimal, TypeDouble:
		return reflect.TypeOf(float64(0))
	case TypeFloat:
		return reflect.TypeOf(float32(0))
	case TypeString:
		return reflect.TypeOf("")
	case TypeBoolean:
		return reflect.TypeOf(false)
	case TypeDate:
		return timeType
	case TypeBinaryData:
		return bytesType
	case TypeURI:
		return urlType
	case TypeUUID:
		return uuidType
	}
	return nil
}

// CheckDefault reports whether v can be used as a default value for
// attributes of type t. Numeric types accept any Go number kind that fits
// the type's family; decimals also accept their string form.
func (t Type) CheckDefault(v any) error {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch k := rv.Kind(); t {
	case TypeUndefined, TypeTransformable:
		return nil
	case TypeInteger16, TypeInteger32, TypeInteger64:
		switch k {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if overflows(t, rv.Int()) {
				return fmt.Errorf("default value %v overflows %s", v, t)
			}
			return nil
		case reflect.Uint8, reflect.Uint16, reflect.Uint32:
			if overflows(t, int64(rv.Uint())) {
				return fmt.Errorf("default value %v overflows %s", v, t)
			}
			return nil
		}
	case TypeDecimal:
		if k == reflect.String {
			return nil
		}
		fallthrough
	case TypeDouble, TypeFloat:
		switch k {
		case reflect.Float32, reflect.Float64,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return nil
		}
	case TypeURI:
		switch v.(type) {
		case *url.URL, url.URL, string:
			return nil
		}
	case TypeUUID:
		switch v := v.(type) {
		case uuid.UUID:
			return nil
		case string:
			if _, err := uuid.Parse(v); err != nil {
				return fmt.Errorf("default value %q is not a valid uuid: %w", v, err)
			}
			return nil
		}
	default:
		if gt := t.GoType(); gt != nil && rv.Type().AssignableTo(gt) {
			return nil
		}
	}
	return fmt.Errorf("default value of type %T is not valid for %s attribute", v, t)
}

func overflows(t Type, n int64) bool {
	switch t {
	case TypeInteger16:
		return n < -1<<15 || n > 1<<15-1
	case TypeInteger32:
		return n < -1<<31 || n > 1<<31-1
	}
	return false
}
