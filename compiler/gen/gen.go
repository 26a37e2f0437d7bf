package gen

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"

	"github.com/syssam/modeldesc/graph"
	"github.com/syssam/modeldesc/schema/field"
)

// Header is the header comment of generated files.
const Header = "Code generated by modelc. DO NOT EDIT."

// Structs renders one struct declaration per entity of the model, in model
// order. Child structs embed the struct of their parent.
func Structs(m *graph.Model, pkg string) *jen.File {
	f := jen.NewFile(pkg)
	f.HeaderComment(Header)
	for _, e := range m.Entities() {
		genStruct(f, e)
	}
	return f
}

// Render writes the struct declarations of the model to w.
func Render(w io.Writer, m *graph.Model, pkg string) error {
	return Structs(m, pkg).Render(w)
}

// WriteFile writes the struct declarations of the model to path, creating
// the parent directory if needed.
func WriteFile(path string, m *graph.Model, pkg string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Render(out, m, pkg); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// StructName returns the Go type name of the entity: its managed-object
// type tag if set, its name otherwise.
func StructName(e *graph.Entity) string {
	if e.TypeName != "" {
		return e.TypeName
	}
	return inflect.Camelize(e.Name)
}

// FieldName returns the Go field name of a property.
func FieldName(p graph.Property) string {
	return inflect.Camelize(p.Info().Name)
}

func genStruct(f *jen.File, e *graph.Entity) {
	name := StructName(e)
	if e.Abstract {
		f.Commentf("%s is the abstract %s entity.", name, e.Name)
	} else {
		f.Commentf("%s is the %s entity.", name, e.Name)
	}
	f.Type().Id(name).StructFunc(func(group *jen.Group) {
		if e.Parent != nil {
			group.Id(StructName(e.Parent))
		}
		for _, a := range e.Attributes {
			group.Id(FieldName(a)).Add(attributeType(a)).Tag(tags(a))
		}
		for _, fp := range e.FetchedProperties {
			group.Id(FieldName(fp)).Index().Any().Tag(map[string]string{"json": "-"})
		}
		for _, r := range e.Relationships {
			code := jen.Op("*").Id(StructName(r.Destination))
			if r.IsToMany() {
				code = jen.Index().Op("*").Id(StructName(r.Destination))
			}
			group.Id(FieldName(r)).Add(code).Tag(tags(r))
		}
	})
}

func tags(p graph.Property) map[string]string {
	return map[string]string{"json": fmt.Sprintf("%s,omitempty", p.Info().Name)}
}

// attributeType returns the Go type of the attribute. Optional attributes
// are pointers, unless the type is already nillable.
func attributeType(a *graph.Attribute) jen.Code {
	var code *jen.Statement
	switch a.Type {
	case field.TypeInteger16:
		code = jen.Int16()
	case field.TypeInteger32:
		code = jen.Int32()
	case field.TypeInteger64:
		code = jen.Int64()
	case field.TypeDecimal, field.TypeDouble:
		code = jen.Float64()
	case field.TypeFloat:
		code = jen.Float32()
	case field.TypeString:
		code = jen.String()
	case field.TypeBoolean:
		code = jen.Bool()
	case field.TypeDate:
		code = jen.Qual("time", "Time")
	case field.TypeUUID:
		code = jen.Qual("github.com/google/uuid", "UUID")
	case field.TypeBinaryData:
		return jen.Index().Byte()
	case field.TypeURI:
		return jen.Op("*").Qual("net/url", "URL")
	default:
		return jen.Any()
	}
	if a.Optional {
		return jen.Op("*").Add(code)
	}
	return code
}
