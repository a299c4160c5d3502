package character

import (
	"slices"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/benkolera/salty-deadlands/internal/errors"
)

// EntityType is the toolkit entity type of a sheet
const EntityType = "character"

// GetID implements core.Entity
func (s *Sheet) GetID() string {
	return s.ID
}

// GetType implements core.Entity
func (s *Sheet) GetType() string {
	return EntityType
}

var _ core.Entity = (*Sheet)(nil)

// Effects returns the effect set for category
func (s *Sheet) Effects(category Category) EffectSet {
	switch category {
	case CategoryEdges:
		return s.Edges
	case CategoryHinderances:
		return s.Hinderances
	case CategoryKnacks:
		return s.Knacks
	case CategoryBlessings:
		return s.Blessings
	default:
		return nil
	}
}

// Effect looks up a single effect
func (s *Sheet) Effect(category Category, name string) (Effect, error) {
	if !slices.Contains(Categories(), category) {
		return nil, errors.InvalidArgumentf("unknown effect category: %s", category)
	}

	e, ok := s.Effects(category)[name]
	if !ok {
		return nil, errors.NotFoundf("%s %q not found on %s", category, name, s.Name).
			WithMeta("category", string(category)).
			WithMeta("effect", name)
	}
	return e, nil
}

// Trait looks up a trait by name
func (s *Sheet) Trait(name string) (Trait, error) {
	t, ok := s.Traits[name]
	if !ok {
		return Trait{}, errors.NotFoundf("trait %q not found", name).WithMeta("trait", name)
	}
	return t, nil
}

// EffectNames returns the names in set, sorted
func EffectNames(set EffectSet) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// AptitudeNames returns the aptitudes of t, sorted
func (t Trait) AptitudeNames() []string {
	names := make([]string, 0, len(t.Aptitudes))
	for name := range t.Aptitudes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ConcentrationNames returns the concentrations of c, sorted
func (c Concentrated) ConcentrationNames() []string {
	names := make([]string, 0, len(c.Concentrations))
	for name := range c.Concentrations {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
