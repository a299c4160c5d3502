// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/benkolera/salty-deadlands/internal/bonus"
	"github.com/benkolera/salty-deadlands/internal/character"
	"github.com/benkolera/salty-deadlands/internal/dice"
)

// SheetBuilder provides a fluent interface for building test sheets
type SheetBuilder struct {
	sheet *character.Sheet
}

// NewSheetBuilder creates a builder with every standard trait at 2d6, size 6
// and no effects
func NewSheetBuilder() *SheetBuilder {
	traits := make(map[string]character.Trait)
	for _, name := range character.StandardTraits() {
		traits[name] = character.Trait{
			Dice:      dice.New(2, dice.D6, 0),
			Aptitudes: map[string]character.Aptitude{},
		}
	}

	return &SheetBuilder{
		sheet: &character.Sheet{
			ID:          "sheet-test-123",
			Name:        "Test Cowpoke",
			Traits:      traits,
			Edges:       character.EffectSet{},
			Hinderances: character.EffectSet{},
			Knacks:      character.EffectSet{},
			Blessings:   character.EffectSet{},
			Size:        6,
		},
	}
}

// WithID sets the sheet ID
func (b *SheetBuilder) WithID(id string) *SheetBuilder {
	b.sheet.ID = id
	return b
}

// WithName sets the character name
func (b *SheetBuilder) WithName(name string) *SheetBuilder {
	b.sheet.Name = name
	return b
}

// WithSize sets the character size
func (b *SheetBuilder) WithSize(size int) *SheetBuilder {
	b.sheet.Size = size
	return b
}

// WithLightArmor sets the base light armor
func (b *SheetBuilder) WithLightArmor(armor int) *SheetBuilder {
	b.sheet.LightArmor = armor
	return b
}

// WithTrait replaces a trait's dice, keeping its aptitudes
func (b *SheetBuilder) WithTrait(name string, ds dice.DiceSet) *SheetBuilder {
	t := b.sheet.Traits[name]
	t.Dice = ds
	if t.Aptitudes == nil {
		t.Aptitudes = map[string]character.Aptitude{}
	}
	b.sheet.Traits[name] = t
	return b
}

// WithAptitude adds a pure aptitude to a trait
func (b *SheetBuilder) WithAptitude(trait, aptitude string, value int) *SheetBuilder {
	b.trait(trait).Aptitudes[aptitude] = character.Pure{Value: value}
	return b
}

// WithConcentration adds a concentration to an aptitude group, creating the
// group if needed
func (b *SheetBuilder) WithConcentration(trait, group, concentration string, value int) *SheetBuilder {
	t := b.trait(trait)
	c, ok := t.Aptitudes[group].(character.Concentrated)
	if !ok {
		c = character.Concentrated{Concentrations: map[string]character.Pure{}}
	}
	c.Concentrations[concentration] = character.Pure{Value: value}
	t.Aptitudes[group] = c
	return b
}

// WithEffect adds an effect to a category
func (b *SheetBuilder) WithEffect(category character.Category, name string, effect character.Effect) *SheetBuilder {
	switch category {
	case character.CategoryEdges:
		b.sheet.Edges[name] = effect
	case character.CategoryHinderances:
		b.sheet.Hinderances[name] = effect
	case character.CategoryKnacks:
		b.sheet.Knacks[name] = effect
	case character.CategoryBlessings:
		b.sheet.Blessings[name] = effect
	}
	return b
}

// WithPassive adds an always-on edge
func (b *SheetBuilder) WithPassive(name string, granted bonus.Bonus) *SheetBuilder {
	return b.WithEffect(character.CategoryEdges, name, character.Passive{Bonus: granted})
}

// WithSpell adds a blessing whose bonus is produced by grant
func (b *SheetBuilder) WithSpell(name string, duration int, grant func(int) bonus.Bonus) *SheetBuilder {
	return b.WithEffect(character.CategoryBlessings, name, character.Spell{
		InputDesc: "successes",
		Duration:  duration,
		BonusFunc: func(input int) (bonus.Bonus, bool) {
			return grant(input), true
		},
	})
}

// Build returns the built sheet
func (b *SheetBuilder) Build() *character.Sheet {
	return b.sheet
}

func (b *SheetBuilder) trait(name string) character.Trait {
	t, ok := b.sheet.Traits[name]
	if !ok || t.Aptitudes == nil {
		t.Aptitudes = map[string]character.Aptitude{}
		b.sheet.Traits[name] = t
	}
	return t
}
