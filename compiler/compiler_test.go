package compiler

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/modeldesc/graph"
	"github.com/syssam/modeldesc/schema"
	"github.com/syssam/modeldesc/schema/edge"
	"github.com/syssam/modeldesc/schema/field"
	"github.com/syssam/modeldesc/schema/index"
)

func author() *schema.Builder {
	return schema.New("Author").
		Attributes(field.String("name")).
		Relationships(edge.To("publications", "Publication").ToMany().Cascade().Inverse("author"))
}

func publication() *schema.Builder {
	return schema.New("Publication").
		Attributes(
			field.Date("publicationDate"),
			field.Int64("numberOfViews").Optional().Default(int64(0)),
		).
		Relationships(edge.To("author", "Author").Inverse("publications"))
}

func entities(builders ...*schema.Builder) []*schema.Entity {
	ents := make([]*schema.Entity, len(builders))
	for i, b := range builders {
		ents[i] = b.Entity()
	}
	return ents
}

func TestCompile_Inverses(t *testing.T) {
	require := require.New(t)
	m, err := Compile(entities(author(), publication()))
	require.NoError(err)
	require.Equal([]string{"Author", "Publication"}, m.EntityNames())

	a, ok := m.Entity("Author")
	require.True(ok)
	p, ok := m.Entity("Publication")
	require.True(ok)
	pubs, ok := a.Relationship("publications")
	require.True(ok)
	auth, ok := p.Relationship("author")
	require.True(ok)

	require.Same(p, pubs.Destination)
	require.Same(a, auth.Destination)
	require.Same(auth, pubs.Inverse)
	require.Same(pubs, auth.Inverse)
	require.True(pubs.IsToMany())
	require.True(auth.IsToOne())
	require.Equal(edge.Cascade, pubs.DeleteRule)
	require.Equal(edge.Nullify, auth.DeleteRule)
	require.Same(a, pubs.Entity)
}

func TestCompile_InverseNamedOnOneSide(t *testing.T) {
	require := require.New(t)
	m, err := Compile(entities(
		schema.New("Author").
			Relationships(edge.To("publications", "Publication").ToMany()),
		schema.New("Publication").
			Relationships(edge.To("author", "Author").Inverse("publications")),
	))
	require.NoError(err)
	a, _ := m.Entity("Author")
	p, _ := m.Entity("Publication")
	pubs, _ := a.Relationship("publications")
	auth, _ := p.Relationship("author")
	require.Same(auth, pubs.Inverse)
	require.Same(pubs, auth.Inverse)
	require.Empty(pubs.InverseName)
	require.Equal("publications", auth.InverseName)
}

func TestCompile_InverseErrors(t *testing.T) {
	tests := []struct {
		name string
		ents []*schema.Entity
		kind error
		msg  string
	}{
		{
			name: "missing inverse",
			ents: entities(
				schema.New("Author").Relationships(edge.To("publications", "Publication").ToMany()),
				schema.New("Publication").Relationships(edge.To("author", "Author").Inverse("publication")),
			),
			kind: ErrUnresolvedInverseRelationship,
			msg:  `did you mean "publications"?`,
		},
		{
			name: "inverse is an attribute",
			ents: entities(
				schema.New("Author").Attributes(field.String("name")),
				schema.New("Publication").Relationships(edge.To("author", "Author").Inverse("name")),
			),
			kind: ErrUnresolvedInverseRelationship,
			msg:  "name is not a relationship (attribute)",
		},
		{
			name: "inverse declares another name",
			ents: entities(
				schema.New("Author").Relationships(
					edge.To("publications", "Publication").ToMany().Inverse("writer"),
				),
				schema.New("Publication").Relationships(
					edge.To("author", "Author").Inverse("publications"),
					edge.To("writer", "Author"),
				),
			),
			kind: ErrConflictingInverse,
		},
		{
			name: "inverse already linked",
			ents: entities(
				schema.New("Author").Relationships(
					edge.To("publications", "Publication").ToMany(),
				),
				schema.New("Publication").Relationships(
					edge.To("author", "Author").Inverse("publications"),
					edge.To("editor", "Author").Inverse("publications"),
				),
			),
			kind: ErrConflictingInverse,
			msg:  "already the inverse of Publication.author",
		},
		{
			name: "inverse points elsewhere",
			ents: entities(
				schema.New("Author").Relationships(
					edge.To("publications", "Publication").ToMany(),
				),
				schema.New("Publication"),
				schema.New("Magazine").Relationships(
					edge.To("author", "Author").Inverse("publications"),
				),
			),
			kind: ErrConflictingInverse,
			msg:  "points to Publication",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Compile(tt.ents)
			require.Nil(t, m)
			require.ErrorIs(t, err, tt.kind)
			assert.True(t, IsRelationshipError(err))
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestCompile_SelfInverse(t *testing.T) {
	m, err := Compile(entities(
		schema.New("Person").Relationships(edge.To("friends", "Person").ToMany().Inverse("friends")),
	))
	require.NoError(t, err)
	p, _ := m.Entity("Person")
	friends, _ := p.Relationship("friends")
	require.Same(t, friends, friends.Inverse)
}

func TestCompile_Inheritance(t *testing.T) {
	require := require.New(t)
	m, err := Compile(entities(
		schema.New("Story").
			Parent("Publication").
			Attributes(field.String("title")).
			Indexes(index.Fields("byDate", "publicationDate", "title")),
		author(),
		publication().Abstract(),
	))
	require.NoError(err)
	p, _ := m.Entity("Publication")
	s, _ := m.Entity("Story")
	require.Same(p, s.Parent)
	require.Equal([]*graph.Entity{s}, p.Children)
	require.True(p.Abstract)
	require.True(s.IsKindOf(p))
	require.False(p.IsKindOf(s))

	require.Len(s.Indexes, 1)
	require.Equal([]string{"publicationDate", "title"}, s.Indexes[0].Names())
	date, _ := p.Attribute("publicationDate")
	require.Same(date, s.Indexes[0].Elements[0].Property)
	require.Empty(p.Indexes)

	// inherited relationships resolve through the child.
	auth, ok := s.Relationship("author")
	require.True(ok)
	require.Same(p, auth.Entity)
}

func TestCompile_InverseOnInheritedRelationship(t *testing.T) {
	require := require.New(t)
	m, err := Compile(entities(
		schema.New("Author").Relationships(
			edge.To("stories", "Story").ToMany().Inverse("author"),
			edge.To("articles", "Article").ToMany().Inverse("author"),
			edge.To("publications", "Publication").ToMany(),
		),
		schema.New("Publication").Relationships(edge.To("author", "Author").Inverse("publications")),
		schema.New("Story").Parent("Publication"),
		schema.New("Article").Parent("Publication"),
	))
	require.NoError(err)
	a, _ := m.Entity("Author")
	p, _ := m.Entity("Publication")
	auth, _ := p.Relationship("author")
	pubs, _ := a.Relationship("publications")
	for _, name := range []string{"stories", "articles"} {
		rel, _ := a.Relationship(name)
		require.Same(auth, rel.Inverse, name)
	}
	// the inherited side keeps pointing back at a relationship whose
	// destination covers every publication.
	require.Same(pubs, auth.Inverse)
	require.True(p.IsKindOf(auth.Inverse.Destination))
}

func TestCompile_UnresolvedParent(t *testing.T) {
	m, err := Compile(entities(
		schema.New("Story").Parent("Publication").Attributes(field.String("title")),
	))
	require.Nil(t, m)
	require.ErrorIs(t, err, ErrUnresolvedParentEntity)
	require.True(t, IsEntityError(err))
	require.Contains(t, err.Error(), `"Publication"`)
	require.Contains(t, err.Error(), "Story")
}

func TestCompile_UnresolvedDestination(t *testing.T) {
	_, err := Compile(entities(
		schema.New("Author"),
		schema.New("Publication").Relationships(edge.To("author", "Autor")),
	))
	require.ErrorIs(t, err, ErrUnresolvedEntityReference)
	require.Contains(t, err.Error(), "(Publication -> Autor)")
	require.Contains(t, err.Error(), `did you mean "Author"?`)
}

func TestCompile_Indexes(t *testing.T) {
	t.Run("unresolved property", func(t *testing.T) {
		_, err := Compile(entities(
			author(),
			publication().Indexes(index.Fields("byAuthor", "author", "ghost")),
		))
		require.ErrorIs(t, err, ErrUnresolvedIndexProperty)
		var idxErr *IndexError
		require.ErrorAs(t, err, &idxErr)
		require.Equal(t, "Publication", idxErr.Entity)
		require.Equal(t, "byAuthor", idxErr.Index)
		require.Equal(t, 1, idxErr.Position)
		require.Equal(t, "ghost", idxErr.Property)
	})

	t.Run("expression element", func(t *testing.T) {
		_, err := Compile(entities(
			author(),
			publication().Indexes(index.Named("byExpr", index.Property("author"), index.Expression("lowercase"))),
		))
		require.ErrorIs(t, err, ErrUnsupportedIndexExpression)
		require.Contains(t, err.Error(), "element 1")
	})

	t.Run("malformed element", func(t *testing.T) {
		for name, el := range map[string]index.Element{
			"mixed": {Property: "author", Expression: "lowercase:", Ascending: true},
			"empty": {Ascending: true},
		} {
			t.Run(name, func(t *testing.T) {
				pub := publication().Entity()
				pub.Indexes = []*index.Descriptor{{Name: "byAuthor", Elements: []index.Element{el}}}
				m, err := Compile([]*schema.Entity{author().Entity(), pub})
				require.Nil(t, m)
				require.ErrorIs(t, err, ErrInvalidDescription)
				var idxErr *IndexError
				require.ErrorAs(t, err, &idxErr)
				require.Equal(t, "byAuthor", idxErr.Index)
				require.Equal(t, 0, idxErr.Position)
			})
		}
	})

	t.Run("element configuration", func(t *testing.T) {
		m, err := Compile(entities(
			author(),
			publication().Indexes(index.Named("byDate",
				index.Property("publicationDate").Descending(),
				index.Property("author").Type(index.RTree),
			)),
		))
		require.NoError(t, err)
		p, _ := m.Entity("Publication")
		require.Len(t, p.Indexes, 1)
		idx := p.Indexes[0]
		require.Same(t, p, idx.Entity)
		require.False(t, idx.Elements[0].Ascending)
		require.Equal(t, index.RTree, idx.Elements[1].Type)
		require.Equal(t, graph.KindRelationship, idx.Elements[1].Property.Kind())
	})

	t.Run("duplicate index name", func(t *testing.T) {
		_, err := Compile(entities(
			schema.New("Author").
				Attributes(field.String("name")).
				Indexes(index.Fields("byName", "name"), index.Fields("byName", "name")),
		))
		require.ErrorIs(t, err, ErrInvalidDescription)
	})
}

func TestCompile_Constraints(t *testing.T) {
	m, err := Compile(entities(
		author().Unique("name"),
		publication().Unique("author", "publicationDate"),
	))
	require.NoError(t, err)
	p, _ := m.Entity("Publication")
	require.Len(t, p.Constraints, 1)
	require.Equal(t, "author", p.Constraints[0][0].Info().Name)
	require.Equal(t, "publicationDate", p.Constraints[0][1].Info().Name)

	_, err = Compile(entities(schema.New("Author").Attributes(field.String("name")).Unique("nam")))
	require.ErrorIs(t, err, ErrUnresolvedConstraintProperty)
	require.Contains(t, err.Error(), `did you mean "name"?`)
}

func TestCompile_DuplicateEntityName(t *testing.T) {
	first := schema.New("Author").Attributes(field.String("name")).Entity()
	second := schema.New("Author").Attributes(field.Int64("age")).Entity()
	for _, ents := range [][]*schema.Entity{{first, second}, {second, first}} {
		m, err := Compile(ents)
		require.Nil(t, m)
		require.ErrorIs(t, err, ErrDuplicateEntityName)
		require.Contains(t, err.Error(), "Author")
	}
}

func TestCompile_DuplicatePropertyName(t *testing.T) {
	tests := []struct {
		name string
		ent  *schema.Builder
	}{
		{
			name: "attributes",
			ent:  schema.New("Author").Attributes(field.String("name"), field.String("name")),
		},
		{
			name: "attribute and fetched property",
			ent: schema.New("Author").
				Attributes(field.String("name")).
				FetchedProperties(field.Fetched("name", "name == $X")),
		},
		{
			name: "attribute and relationship",
			ent: schema.New("Author").
				Attributes(field.String("friend")).
				Relationships(edge.To("friend", "Author")),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(entities(tt.ent))
			require.ErrorIs(t, err, ErrDuplicatePropertyName)
			require.Contains(t, err.Error(), "declared twice")
		})
	}
}

func TestCompile_PropertyOverride(t *testing.T) {
	ents := func() []*schema.Entity {
		return entities(
			schema.New("Publication").Attributes(field.String("title")),
			schema.New("Story").Parent("Publication").Attributes(field.String("title").Optional()),
		)
	}
	_, err := Compile(ents())
	require.ErrorIs(t, err, ErrDuplicatePropertyName)
	require.Contains(t, err.Error(), "inherited from Publication")

	m, err := Compile(ents(), WithPropertyOverride())
	require.NoError(t, err)
	s, _ := m.Entity("Story")
	title, _ := s.Attribute("title")
	require.Same(t, s, title.Entity)
	require.True(t, title.Optional)
}

func TestCompile_InheritanceCycle(t *testing.T) {
	_, err := Compile(entities(
		schema.New("A").Parent("C"),
		schema.New("B").Parent("A"),
		schema.New("C").Parent("B"),
	))
	require.ErrorIs(t, err, ErrInheritanceCycle)
	require.Contains(t, err.Error(), "A -> C -> B -> A")

	_, err = Compile(entities(schema.New("A").Parent("A")))
	require.ErrorIs(t, err, ErrInheritanceCycle)
}

func TestCompile_InvalidDescription(t *testing.T) {
	tests := []struct {
		name string
		ents []*schema.Entity
	}{
		{"nil entity", []*schema.Entity{nil}},
		{"empty name", []*schema.Entity{{}}},
		{"builder error", entities(schema.New("A").Unique())},
		{"bad default", entities(schema.New("A").Attributes(field.Int16("n").Default(int64(1 << 20))))},
		{"nil predicate", entities(schema.New("A").FetchedProperties(field.Fetched("f", nil)))},
		{"min exceeds max", []*schema.Entity{{
			Name: "A",
			Relationships: []*edge.Descriptor{{
				Name: "r", Destination: "A", MinCount: 2, MaxCount: 1,
			}},
		}}},
		{"missing destination", []*schema.Entity{{
			Name:          "A",
			Relationships: []*edge.Descriptor{{Name: "r", MaxCount: 1}},
		}}},
		{"invalid attribute type", []*schema.Entity{{
			Name:       "A",
			Attributes: []*field.Descriptor{{Name: "a", Type: field.Type(200)}},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Compile(tt.ents)
			require.Nil(t, m)
			require.ErrorIs(t, err, ErrInvalidDescription)
		})
	}
}

func TestCompile_Configurations(t *testing.T) {
	ents := func() []*schema.Entity {
		return entities(
			author().Configuration("Cloud"),
			publication().Configuration("Local"),
			schema.New("Draft").Attributes(field.String("text")),
			schema.New("Note").Configuration("Cloud"),
		)
	}

	t.Run("partition", func(t *testing.T) {
		m, err := Compile(ents())
		require.NoError(t, err)
		require.Equal(t, []string{"Cloud", "Local"}, m.Configurations())
		require.Equal(t, []string{"Author", "Note"}, names(m.EntitiesFor("Cloud")))
		require.Equal(t, []string{"Publication"}, names(m.EntitiesFor("Local")))
		for _, e := range m.Entities() {
			configs := m.ConfigurationsOf(e)
			if e.Configuration == "" {
				assert.Empty(t, configs, e.Name)
				continue
			}
			assert.Equal(t, []string{e.Configuration}, configs, e.Name)
		}
	})

	t.Run("default configuration", func(t *testing.T) {
		m, err := Compile(ents(), WithDefaultConfiguration("Default"))
		require.NoError(t, err)
		require.Equal(t, []string{"Cloud", "Default", "Local"}, m.Configurations())
		require.Equal(t, []string{"Draft"}, names(m.EntitiesFor("Default")))
	})
}

func TestCompile_Base(t *testing.T) {
	base, err := Compile(entities(author().Configuration("Cloud"), publication()))
	require.NoError(t, err)
	baseHash := base.VersionIdentifier()

	t.Run("merge", func(t *testing.T) {
		require := require.New(t)
		m, err := Compile(entities(
			schema.New("Story").
				Parent("Publication").
				Attributes(field.String("title")).
				Relationships(edge.To("editor", "Author").Inverse("edited")).
				Configuration("Cloud"),
			schema.New("Magazine").Relationships(edge.To("stories", "Story").ToMany()),
		), WithBase(base))
		require.Error(err)
		require.ErrorIs(err, ErrUnresolvedInverseRelationship)

		m, err = Compile(entities(
			schema.New("Story").
				Parent("Publication").
				Attributes(field.String("title")).
				Configuration("Cloud"),
			schema.New("Magazine").Relationships(edge.To("stories", "Story").ToMany()),
		), WithBase(base))
		require.NoError(err)
		require.Equal([]string{"Author", "Publication", "Story", "Magazine"}, m.EntityNames())
		require.Equal([]string{"Author", "Story"}, names(m.EntitiesFor("Cloud")))

		p, _ := m.Entity("Publication")
		s, _ := m.Entity("Story")
		require.Same(p, s.Parent)
		basePub, _ := base.Entity("Publication")
		require.NotSame(basePub, p)
		require.Empty(basePub.Children)
		require.Equal(baseHash, base.VersionIdentifier())

		// links inside the merged model point into the merged model.
		a, _ := m.Entity("Author")
		pubs, _ := a.Relationship("publications")
		require.Same(p, pubs.Destination)
		require.Same(a, pubs.Inverse.Destination)
	})

	t.Run("collision", func(t *testing.T) {
		_, err := Compile(entities(schema.New("Author")), WithBase(base))
		require.ErrorIs(t, err, ErrDuplicateEntityName)
		require.Contains(t, err.Error(), "base model")
	})

	t.Run("inverse already linked in base", func(t *testing.T) {
		_, err := Compile(entities(
			schema.New("Review").Relationships(edge.To("author", "Author").Inverse("publications")),
		), WithBase(base))
		require.ErrorIs(t, err, ErrConflictingInverse)
	})
}

func TestCompile_Options(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"nil base", WithBase(nil)},
		{"empty default configuration", WithDefaultConfiguration("")},
		{"zero workers", WithWorkers(0)},
		{"nil logger", WithLogger(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(nil, tt.opt)
			require.ErrorIs(t, err, ErrInvalidConfig)
			require.True(t, IsConfigError(err))
		})
	}
}

func TestCompile_DeterministicErrors(t *testing.T) {
	var ents []*schema.Entity
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		ents = append(ents, schema.New(name).Attributes(field.String("x"), field.String("x")).Entity())
	}
	for range 20 {
		_, err := Compile(ents, WithWorkers(4))
		var propErr *PropertyError
		require.ErrorAs(t, err, &propErr)
		require.Equal(t, "A", propErr.Entity)
	}
}

func TestCompile_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, err := Compile(entities(author(), publication()), WithLogger(logger))
	require.NoError(t, err)
	out := buf.String()
	for _, phase := range []string{"names", "properties", "relationships", "inheritance", "inverses", "indexes", "configurations", "assemble"} {
		assert.Contains(t, out, "phase="+phase)
	}
	assert.Contains(t, out, "relationships=2")
	assert.Contains(t, out, "inverses=1")
}

func TestCompile_Empty(t *testing.T) {
	m, err := Compile(nil)
	require.NoError(t, err)
	require.Zero(t, m.Len())
	require.Empty(t, m.Configurations())
}

func names(ents []*graph.Entity) []string {
	out := make([]string, len(ents))
	for i, e := range ents {
		out[i] = e.Name
	}
	return out
}
