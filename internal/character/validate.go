package character

import (
	"fmt"

	"github.com/benkolera/salty-deadlands/internal/dice"
	"github.com/benkolera/salty-deadlands/internal/errors"
)

// Validate checks that the sheet can be rolled from
func (s *Sheet) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("id", s.ID, vb)
	errors.ValidateRequired("name", s.Name, vb)
	errors.ValidateMin("size", s.Size, 1, vb)
	errors.ValidateMin("light_armor", s.LightArmor, 0, vb)

	for _, name := range StandardTraits() {
		if _, ok := s.Traits[name]; !ok {
			vb.RequiredField("traits." + name)
		}
	}

	for name, t := range s.Traits {
		field := "traits." + name
		if !dice.TraitLadder.Contains(t.Dice.Sides) {
			vb.Fieldf(field+".dice", "unsupported trait die: %s", t.Dice.Sides)
		}
		errors.ValidateRange(field+".dice", t.Dice.Num, 0, dice.MaxDice, vb)

		for aptName, apt := range t.Aptitudes {
			validateAptitude(fmt.Sprintf("%s.aptitudes.%s", field, aptName), apt, vb)
		}
	}

	for _, category := range Categories() {
		for name, e := range s.Effects(category) {
			if e == nil {
				vb.Fieldf(fmt.Sprintf("%s.%s", category, name), "effect is empty")
				continue
			}
			if spell, ok := e.(Spell); ok && spell.Duration < 0 {
				vb.Fieldf(fmt.Sprintf("%s.%s.duration", category, name), "must be at least 0")
			}
		}
	}

	return vb.Build()
}

func validateAptitude(field string, apt Aptitude, vb *errors.ValidationBuilder) {
	switch a := apt.(type) {
	case Pure:
		errors.ValidateRange(field, a.Value, 0, dice.MaxDice, vb)
	case Concentrated:
		if len(a.Concentrations) == 0 {
			vb.Field(field, "concentrated aptitude has no concentrations")
		}
		for name, c := range a.Concentrations {
			errors.ValidateRange(field+"."+name, c.Value, 0, dice.MaxDice, vb)
		}
	default:
		vb.Field(field, "aptitude is empty")
	}
}
