package graph

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrEntityExists is returned when an entity name is added twice to a model.
var ErrEntityExists = errors.New("graph: entity already exists")

// Model is the resolved model. It owns its entities; all the links between
// entities (parent, children, destinations, inverses) point into the same
// model.
type Model struct {
	entities []*Entity
	byName   map[string]*Entity
	configs  map[string][]*Entity
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{
		byName:  make(map[string]*Entity),
		configs: make(map[string][]*Entity),
	}
}

// Add appends the entity to the model.
func (m *Model) Add(e *Entity) error {
	if _, ok := m.byName[e.Name]; ok {
		return fmt.Errorf("%w: %q", ErrEntityExists, e.Name)
	}
	m.entities = append(m.entities, e)
	m.byName[e.Name] = e
	return nil
}

// Entity returns the entity with the given name.
func (m *Model) Entity(name string) (*Entity, bool) {
	if m == nil {
		return nil, false
	}
	e, ok := m.byName[name]
	return e, ok
}

// Entities returns the entities of the model in the order they were added.
func (m *Model) Entities() []*Entity {
	if m == nil {
		return nil
	}
	return slices.Clone(m.entities)
}

// EntityNames returns the names of the entities in the order they were added.
func (m *Model) EntityNames() []string {
	if m == nil {
		return nil
	}
	names := make([]string, len(m.entities))
	for i, e := range m.entities {
		names[i] = e.Name
	}
	return names
}

// Len returns the number of entities in the model.
func (m *Model) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entities)
}

// Assign adds the entity to the named configuration. Assigning an entity
// twice to the same configuration is a no-op.
func (m *Model) Assign(config string, e *Entity) {
	if slices.Contains(m.configs[config], e) {
		return
	}
	m.configs[config] = append(m.configs[config], e)
}

// Configurations returns the configuration names, sorted.
func (m *Model) Configurations() []string {
	if m == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(m.configs))
}

// EntitiesFor returns the entities assigned to the named configuration,
// in assignment order.
func (m *Model) EntitiesFor(config string) []*Entity {
	if m == nil {
		return nil
	}
	return slices.Clone(m.configs[config])
}

// ConfigurationsOf returns the configurations the entity is assigned to.
func (m *Model) ConfigurationsOf(e *Entity) []string {
	var names []string
	for _, name := range m.Configurations() {
		if slices.Contains(m.configs[name], e) {
			names = append(names, name)
		}
	}
	return names
}
