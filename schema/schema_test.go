package schema_test

import (
	"testing"

	"github.com/syssam/modeldesc/schema"
	"github.com/syssam/modeldesc/schema/edge"
	"github.com/syssam/modeldesc/schema/field"
	"github.com/syssam/modeldesc/schema/index"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	ent := schema.New("Story").
		TypeName("StoryObject").
		Parent("Publication").
		Abstract().
		Attributes(field.String("title"), field.Int32("wordCount").Optional()).
		FetchedProperties(field.Fetched("related", "title == $TITLE")).
		Relationships(edge.To("editor", "Person")).
		Indexes(index.Fields("byTitle", "title")).
		Unique("title").
		Configuration("Cloud").
		Entity()

	assert.Equal(t, "Story", ent.Name)
	assert.Equal(t, "StoryObject", ent.TypeName)
	assert.Equal(t, "Publication", ent.Parent)
	assert.True(t, ent.Abstract)
	require.Len(t, ent.Attributes, 2)
	assert.Equal(t, "wordCount", ent.Attributes[1].Name)
	require.Len(t, ent.FetchedProperties, 1)
	require.Len(t, ent.Relationships, 1)
	assert.Equal(t, "Person", ent.Relationships[0].Destination)
	require.Len(t, ent.Indexes, 1)
	assert.Equal(t, [][]string{{"title"}}, ent.Constraints)
	assert.Equal(t, "Cloud", ent.Configuration)
	assert.NoError(t, ent.Err)
}

func TestBuilderErrors(t *testing.T) {
	t.Run("first error wins", func(t *testing.T) {
		ent := schema.New("Story").
			Attributes(field.Int16("n").Default("x")).
			Relationships(edge.To("r", "Story").Min(-1)).
			Entity()
		require.Error(t, ent.Err)
		assert.Contains(t, ent.Err.Error(), `attribute "n"`)
	})

	t.Run("empty constraint", func(t *testing.T) {
		ent := schema.New("Story").Unique().Entity()
		assert.EqualError(t, ent.Err, `entity "Story": empty uniqueness constraint`)
	})

	t.Run("index without elements", func(t *testing.T) {
		ent := schema.New("Story").Indexes(index.Named("empty")).Entity()
		assert.Error(t, ent.Err)
	})
}
