// Package graph holds the resolved model produced by the compiler.
//
// A Model owns its entities. Every link between them is a plain pointer
// into the same model:
//
//   - Entity.Parent and Entity.Children describe inheritance.
//   - Relationship.Destination points to the destination entity.
//   - Relationship.Inverse points to the inverse relationship, and the
//     inverse points back.
//   - Index elements and constraint groups point to the resolved
//     properties they name.
//
// Property lookups walk the inheritance chain:
//
//	pub, _ := model.Entity("Publication")
//	author, _ := pub.Relationship("author")
//	fmt.Println(author.Destination.Name, author.Inverse.Name)
//
// Configurations map a configuration name to the entities assigned to it:
//
//	for _, name := range model.Configurations() {
//		fmt.Println(name, model.EntitiesFor(name))
//	}
//
// Models are built by the compiler package and are not safe for concurrent
// mutation. Clone returns an independent deep copy.
package graph
