package compiler

import (
	"log/slog"

	"github.com/syssam/modeldesc/graph"
	"github.com/syssam/modeldesc/schema"
)

// Compile resolves the entity descriptions into a model. Names are
// registered first, then properties, relationships and parent links are
// compiled, inheritance is checked, inverses are linked, indexes and
// constraints are resolved against the final property sets, and the
// entities are partitioned into configurations. Any failure aborts the
// compilation and no model is returned.
//
//	model, err := compiler.Compile([]*schema.Entity{
//		schema.New("Author").Attributes(field.String("name")).Entity(),
//	})
func Compile(entities []*schema.Entity, opts ...Option) (*graph.Model, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	c := newCompiler(cfg, entities)
	for _, p := range []struct {
		name string
		run  func() error
	}{
		{"names", c.registerNames},
		{"properties", c.compileProperties},
		{"relationships", c.compileRelationships},
		{"inheritance", c.checkInheritance},
		{"inverses", c.linkInverses},
		{"indexes", c.compileIndexes},
		{"configurations", c.partition},
	} {
		if err := p.run(); err != nil {
			return nil, err
		}
		c.log.Debug("compile phase", c.stats(p.name)...)
	}
	m, err := c.assemble()
	if err != nil {
		return nil, err
	}
	c.log.Debug("compile phase", c.stats("assemble")...)
	return m, nil
}

// compiler holds the state shared by the compile phases.
type compiler struct {
	cfg   *Config
	log   *slog.Logger
	descs []*schema.Entity
	base  *graph.Model
	// ents is parallel to descs.
	ents    []*graph.Entity
	byName  map[string]*graph.Entity
	pending []pendingInverse
	configs map[string][]*graph.Entity
	// counters reported in the phase logs.
	nrels, ninverses, nindexes int
}

func newCompiler(cfg *Config, descs []*schema.Entity) *compiler {
	base := graph.NewModel()
	if cfg.Base != nil {
		base = cfg.Base.Clone()
	}
	return &compiler{
		cfg:     cfg,
		log:     cfg.Logger,
		descs:   descs,
		base:    base,
		byName:  make(map[string]*graph.Entity, len(descs)),
		configs: make(map[string][]*graph.Entity),
	}
}

func (c *compiler) stats(phase string) []any {
	return []any{
		slog.String("phase", phase),
		slog.Int("entities", len(c.ents)),
		slog.Int("relationships", c.nrels),
		slog.Int("inverses", c.ninverses),
		slog.Int("indexes", c.nindexes),
	}
}
