package generator

import (
	"errors"
	"fmt"
)

var ErrUnknownArchetype = errors.New("unknown archetype")

// Archetypes lists the available templates in display order. Framework
// options apply to the express archetype only.
func Archetypes(opts ...FrameworkOption) []Archetype {
	return []Archetype{
		NewPlainProject(),
		NewFrameworkProject(opts...),
	}
}

// Lookup returns the archetype called name.
func Lookup(name string, opts ...FrameworkOption) (Archetype, error) {
	for _, a := range Archetypes(opts...) {
		if a.Name() == name {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownArchetype, name)
}

// ArchetypeNames returns the names of Archetypes, in order.
func ArchetypeNames() []string {
	var names []string
	for _, a := range Archetypes() {
		names = append(names, a.Name())
	}
	return names
}
