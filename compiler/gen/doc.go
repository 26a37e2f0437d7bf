// Package gen renders Go struct declarations for a resolved model.
//
// Each entity becomes one struct named after its type tag, or its name.
// A child struct embeds the struct of its parent. Attributes map to their
// Go types, to-one relationships to pointers and to-many relationships to
// slices of pointers:
//
//	m, err := compiler.Compile(entities)
//	if err != nil {
//		return err
//	}
//	if err := gen.WriteFile("model/model.go", m, "model"); err != nil {
//		return err
//	}
package gen
