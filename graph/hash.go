package graph

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// hashSpace is the namespace of entity and model version hashes.
var hashSpace = uuid.MustParse("6f1c1a52-95d4-4b8e-9a47-3f0d2c1f6e21")

// VersionHash returns a deterministic hash of the entity structure: its
// name, parent, abstract flag and the signatures of its own properties.
// Property order, comments and the managed-object type tag do not change
// the hash.
func (e *Entity) VersionHash() uuid.UUID {
	var b strings.Builder
	b.WriteString(e.Name)
	if e.Parent != nil {
		b.WriteString("<")
		b.WriteString(e.Parent.Name)
	}
	if e.Abstract {
		b.WriteString("!abstract")
	}
	props := slices.SortedFunc(slices.Values(e.order), func(a, b Property) int {
		return cmp.Compare(a.Info().Name, b.Info().Name)
	})
	for _, p := range props {
		b.WriteString("\n")
		b.WriteString(signature(p))
	}
	return uuid.NewSHA1(hashSpace, []byte(b.String()))
}

func signature(p Property) string {
	info := p.Info()
	switch p := p.(type) {
	case *Attribute:
		return fmt.Sprintf("a|%s|%s|%t|%t", info.Name, p.Type, info.Optional, p.Transient)
	case *FetchedProperty:
		return fmt.Sprintf("f|%s|%t", info.Name, info.Optional)
	case *Relationship:
		dest := ""
		if p.Destination != nil {
			dest = p.Destination.Name
		}
		inv := ""
		if p.Inverse != nil {
			inv = p.Inverse.Name
		}
		return fmt.Sprintf("r|%s|%s|%t|%d|%d|%s|%t|%s", info.Name, dest, info.Optional, p.MinCount, p.MaxCount, p.DeleteRule, p.Ordered, inv)
	}
	return info.Name
}

// VersionIdentifier returns a deterministic identifier of the model,
// derived from the version hashes of its entities in name order.
func (m *Model) VersionIdentifier() uuid.UUID {
	names := slices.Sorted(slices.Values(m.EntityNames()))
	var b strings.Builder
	for _, name := range names {
		e := m.byName[name]
		b.WriteString(name)
		b.WriteString("=")
		b.WriteString(e.VersionHash().String())
		b.WriteString("\n")
	}
	return uuid.NewSHA1(hashSpace, []byte(b.String()))
}
