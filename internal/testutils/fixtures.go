package testutils

import (
	"github.com/benkolera/salty-deadlands/internal/bonus"
	"github.com/benkolera/salty-deadlands/internal/character"
	"github.com/benkolera/salty-deadlands/internal/dice"
	"github.com/benkolera/salty-deadlands/internal/testutils/builders"
)

const (
	// TestCharacterName is the default character name for test fixtures
	TestCharacterName = "Doc Holliday"

	// TestCharacterID is the default character ID for test fixtures
	TestCharacterID = "doc"
)

// CreateTestGunslinger creates a sheet with a shootin concentration, one
// passive edge and one spell.
//
//	Deftness 4d10, Shootin: Pistol 4
//	Spirit 2d8, Guts 2
//	Vigor 3d6
//	"Eagle Eyes": +1 to Deftness
//	"Bolt o' Doom": spell, 2 rounds, promotes Deftness: Shootin: Pistol by the input
func CreateTestGunslinger() *character.Sheet {
	return builders.NewSheetBuilder().
		WithID(TestCharacterID).
		WithName(TestCharacterName).
		WithTrait(character.Deftness, dice.New(4, dice.D10, 0)).
		WithTrait(character.Spirit, dice.New(2, dice.D8, 0)).
		WithTrait(character.Vigor, dice.New(3, dice.D6, 0)).
		WithConcentration(character.Deftness, "Shootin", "Pistol", 4).
		WithAptitude(character.Spirit, "Guts", 2).
		WithPassive("Eagle Eyes", bonus.Aptitude{
			Filter: bonus.Filter{Trait: bonus.Is(character.Deftness)},
			Effect: bonus.Flat{Bonus: 1},
			Reason: "Eagle Eyes (Edge)",
		}).
		WithSpell("Bolt o' Doom", 2, func(n int) bonus.Bonus {
			return bonus.Aptitude{
				Filter: bonus.ForConcentration(character.Deftness, "Shootin", "Pistol"),
				Effect: bonus.DicePromote{Faces: n},
				Reason: "Bolt o' Doom",
			}
		}).
		Build()
}
