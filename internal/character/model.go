package character

import (
	"github.com/benkolera/salty-deadlands/internal/bonus"
	"github.com/benkolera/salty-deadlands/internal/dice"
)

// Standard trait names
const (
	Deftness   = "Deftness"
	Nimbleness = "Nimbleness"
	Quickness  = "Quickness"
	Strength   = "Strength"
	Vigor      = "Vigor"
	Cognition  = "Cognition"
	Knowledge  = "Knowledge"
	Mien       = "Mien"
	Smarts     = "Smarts"
	Spirit     = "Spirit"
)

// StandardTraits returns every trait a sheet must have, in sheet order
func StandardTraits() []string {
	return []string{
		Deftness, Nimbleness, Quickness, Strength, Vigor,
		Cognition, Knowledge, Mien, Smarts, Spirit,
	}
}

// Aptitude is either a Pure value or a group of Concentrated values
type Aptitude interface {
	isAptitude()
}

// Pure is an aptitude rolled with Value dice of its trait
type Pure struct {
	Value int
}

// Concentrated groups related aptitudes, e.g. Shootin: Shotgun
type Concentrated struct {
	Concentrations map[string]Pure
}

func (Pure) isAptitude()         {}
func (Concentrated) isAptitude() {}

// Trait is a dice set together with the aptitudes rolled from it
type Trait struct {
	Dice      dice.DiceSet
	Aptitudes map[string]Aptitude
}

// Effect is something on the sheet that may grant a bonus
type Effect interface {
	Description() string
	isEffect()
}

// Simple effects are descriptive only
type Simple struct {
	Desc string
}

// Passive effects always grant their bonus
type Passive struct {
	Bonus bonus.Bonus
	Desc  string
}

// Spell effects grant a bonus computed from a roll while they are active.
// BonusFunc receives the spell input described by InputDesc.
type Spell struct {
	InputDesc string
	BonusFunc func(input int) (bonus.Bonus, bool)
	Duration  int
	Desc      string
}

func (Simple) isEffect()  {}
func (Passive) isEffect() {}
func (Spell) isEffect()   {}

func (e Simple) Description() string  { return e.Desc }
func (e Passive) Description() string { return e.Desc }
func (e Spell) Description() string   { return e.Desc }

// Grant returns the spell's bonus for input
func (e Spell) Grant(input int) (bonus.Bonus, bool) {
	if e.BonusFunc == nil {
		return nil, false
	}
	return e.BonusFunc(input)
}

// EffectSet maps effect names to effects
type EffectSet map[string]Effect

// Category names one of the effect sets on a sheet
type Category string

const (
	CategoryEdges       Category = "edges"
	CategoryHinderances Category = "hinderances"
	CategoryKnacks      Category = "knacks"
	CategoryBlessings   Category = "blessings"
)

// Categories returns every effect category in sheet order
func Categories() []Category {
	return []Category{CategoryEdges, CategoryHinderances, CategoryKnacks, CategoryBlessings}
}

// Sheet is a full character
type Sheet struct {
	ID          string
	Name        string
	Traits      map[string]Trait
	Edges       EffectSet
	Hinderances EffectSet
	Knacks      EffectSet
	Blessings   EffectSet
	// Size divides damage into wounds
	Size int
	// LightArmor is subtracted from damage before it is divided by Size
	LightArmor int
}
