package graph

// Clone returns a deep copy of the model. Entities, properties and indexes
// are copied and all the links are remapped into the copy. Opaque values
// (attribute defaults and fetch predicates) are shared.
func (m *Model) Clone() *Model {
	c := NewModel()
	if m == nil {
		return c
	}
	ents := make(map[*Entity]*Entity, len(m.entities))
	props := make(map[Property]Property)
	for _, e := range m.entities {
		ne := NewEntity(e.Name)
		ne.TypeName = e.TypeName
		ne.Abstract = e.Abstract
		ne.Configuration = e.Configuration
		for _, p := range e.order {
			var np Property
			switch p := p.(type) {
			case *Attribute:
				a := *p
				np = &a
				ne.Attributes = append(ne.Attributes, &a)
			case *FetchedProperty:
				f := *p
				np = &f
				ne.FetchedProperties = append(ne.FetchedProperties, &f)
			case *Relationship:
				r := *p
				np = &r
				ne.Relationships = append(ne.Relationships, &r)
			}
			np.Info().Entity = ne
			ne.properties[np.Info().Name] = np
			ne.order = append(ne.order, np)
			props[p] = np
		}
		ents[e] = ne
		c.entities = append(c.entities, ne)
		c.byName[ne.Name] = ne
	}
	for _, e := range m.entities {
		ne := ents[e]
		if e.Parent != nil {
			ne.Parent = ents[e.Parent]
		}
		for _, child := range e.Children {
			ne.Children = append(ne.Children, ents[child])
		}
		for _, r := range ne.Relationships {
			if r.Destination != nil {
				r.Destination = ents[r.Destination]
			}
			if r.Inverse != nil {
				r.Inverse = props[r.Inverse].(*Relationship)
			}
		}
		for _, idx := range e.Indexes {
			ni := &Index{Name: idx.Name, Entity: ne}
			for _, el := range idx.Elements {
				ni.Elements = append(ni.Elements, &IndexElement{
					Property:  props[el.Property],
					Type:      el.Type,
					Ascending: el.Ascending,
				})
			}
			ne.Indexes = append(ne.Indexes, ni)
		}
		for _, group := range e.Constraints {
			ng := make([]Property, len(group))
			for i, p := range group {
				ng[i] = props[p]
			}
			ne.Constraints = append(ne.Constraints, ng)
		}
	}
	for name, list := range m.configs {
		for _, e := range list {
			c.configs[name] = append(c.configs[name], ents[e])
		}
	}
	return c
}
