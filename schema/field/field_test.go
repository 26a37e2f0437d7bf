package field_test

import (
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/modeldesc/schema/field"
)

func TestAttribute(t *testing.T) {
	fd := field.String("name").
		Optional().
		Indexed().
		Spotlight().
		Comment("comment").
		Descriptor()
	assert.Equal(t, "name", fd.Name)
	assert.Equal(t, field.TypeString, fd.Type)
	assert.True(t, fd.Optional)
	assert.True(t, fd.Indexed)
	assert.True(t, fd.Spotlight)
	assert.False(t, fd.Transient)
	assert.Equal(t, "comment", fd.Comment)
	assert.NoError(t, fd.Err)

	fd = field.Int64("numberOfViews").Default(int64(10)).Transient().Descriptor()
	assert.Equal(t, int64(10), fd.Default)
	assert.True(t, fd.Transient)
	assert.False(t, fd.Optional)
	assert.NoError(t, fd.Err)
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		attr *field.Attribute
		typ  field.Type
	}{
		{field.Int16("a"), field.TypeInteger16},
		{field.Int32("a"), field.TypeInteger32},
		{field.Int64("a"), field.TypeInteger64},
		{field.Decimal("a"), field.TypeDecimal},
		{field.Double("a"), field.TypeDouble},
		{field.Float("a"), field.TypeFloat},
		{field.String("a"), field.TypeString},
		{field.Bool("a"), field.TypeBoolean},
		{field.Date("a"), field.TypeDate},
		{field.Bytes("a"), field.TypeBinaryData},
		{field.URI("a"), field.TypeURI},
		{field.UUID("a"), field.TypeUUID},
		{field.Transformable("a"), field.TypeTransformable},
		{field.Undefined("a"), field.TypeUndefined},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			fd := tt.attr.Descriptor()
			assert.Equal(t, tt.typ, fd.Type)
			assert.NoError(t, fd.Err)
		})
	}
	assert.Error(t, field.New("a", field.Type(99)).Descriptor().Err)
}

func TestDefault(t *testing.T) {
	tests := []struct {
		name  string
		attr  *field.Attribute
		value any
		ok    bool
	}{
		{"int16", field.Int16("n"), 100, true},
		{"int16 overflow", field.Int16("n"), 1 << 16, false},
		{"int32 from uint8", field.Int32("n"), uint8(3), true},
		{"int32 overflow", field.Int32("n"), int64(1) << 40, false},
		{"int64 from string", field.Int64("n"), "1", false},
		{"decimal string", field.Decimal("n"), "1.25", true},
		{"decimal float", field.Decimal("n"), 1.25, true},
		{"double int", field.Double("n"), 3, true},
		{"float bool", field.Float("n"), true, false},
		{"string", field.String("s"), "hello", true},
		{"string int", field.String("s"), 1, false},
		{"bool", field.Bool("b"), false, true},
		{"date", field.Date("d"), time.Unix(0, 0), true},
		{"date string", field.Date("d"), "2024-01-01", false},
		{"bytes", field.Bytes("b"), []byte("x"), true},
		{"uri", field.URI("u"), &url.URL{Scheme: "https", Host: "example.com"}, true},
		{"uri string", field.URI("u"), "https://example.com", true},
		{"uuid", field.UUID("id"), uuid.New(), true},
		{"uuid string", field.UUID("id"), "6f1c1a52-95d4-4b8e-9a47-3f0d2c1f6e21", true},
		{"uuid bad string", field.UUID("id"), "not-a-uuid", false},
		{"transformable", field.Transformable("t"), struct{ X int }{1}, true},
		{"nil", field.String("s"), nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fd := tt.attr.Default(tt.value).Descriptor()
			if tt.ok {
				assert.NoError(t, fd.Err)
			} else {
				assert.Error(t, fd.Err)
			}
			assert.Equal(t, tt.value, fd.Default)
		})
	}
}

func TestType(t *testing.T) {
	require := require.New(t)
	require.Equal("integer16", field.TypeInteger16.String())
	require.Equal("binary", field.TypeBinaryData.String())
	require.True(field.TypeDouble.Numeric())
	require.False(field.TypeString.Numeric())
	require.False(field.Type(99).Valid())

	typ, err := field.ParseType("uuid")
	require.NoError(err)
	require.Equal(field.TypeUUID, typ)
	_, err = field.ParseType("money")
	require.Error(err)

	var u field.Type
	require.NoError(u.UnmarshalText([]byte("date")))
	require.Equal(field.TypeDate, u)
	text, err := field.TypeURI.MarshalText()
	require.NoError(err)
	require.Equal("uri", string(text))
	_, err = field.Type(99).MarshalText()
	require.EqualError(err, "field: invalid attribute type 99")

	require.Equal(reflect.TypeOf(time.Time{}), field.TypeDate.GoType())
	require.Equal(reflect.TypeOf(uuid.UUID{}), field.TypeUUID.GoType())
	require.Equal(reflect.TypeOf(&url.URL{}), field.TypeURI.GoType())
}

func TestFetched(t *testing.T) {
	fd := field.Fetched("recent", "date > $NOW").Optional().Comment("recent ones").Descriptor()
	assert.Equal(t, "recent", fd.Name)
	assert.Equal(t, "date > $NOW", fd.Predicate)
	assert.True(t, fd.Optional)
	assert.Equal(t, "recent ones", fd.Comment)
	assert.NoError(t, fd.Err)

	fd = field.Fetched("recent", nil).Descriptor()
	assert.EqualError(t, fd.Err, `fetched property "recent": missing predicate`)
}
