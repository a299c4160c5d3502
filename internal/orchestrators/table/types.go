package table

import (
	"time"

	"github.com/benkolera/salty-deadlands/internal/character"
	"github.com/benkolera/salty-deadlands/internal/combat"
	"github.com/benkolera/salty-deadlands/internal/dice"
	"github.com/benkolera/salty-deadlands/internal/repositories/rolls"
)

// CharacterState is a character as it currently stands at the table
type CharacterState struct {
	ID         string
	Name       string
	View       character.View
	Wounds     map[combat.Location]combat.Level
	WoundLevel combat.Level
	Dead       bool
	LightArmor int
	Active     []ActiveEffect
	// Bonuses lists the reason of every bonus in effect, wound modifier first
	Bonuses []string
}

// ActiveEffect is a running spell
type ActiveEffect struct {
	Ref             combat.EffectRef
	RoundsRemaining int
	Input           int
}

// RollRecord is one resolved trait or aptitude roll
type RollRecord struct {
	ID          string
	CharacterID string
	Ref         character.Ref
	Untrained   bool
	Dice        dice.DiceSet
	// Command is the chat command that reproduces the roll in an external roller
	Command string
	Results []int
	Result  dice.TraitRoll
	// TN, Outcome and Successes are only set when rolled against a target number
	TN        *int
	Outcome   *dice.Outcome
	Successes *dice.Outcome
	RolledAt  time.Time
}

// DamageRecord is one damage roll
type DamageRecord struct {
	ID       string
	Dice     dice.DiceSet
	Results  []int
	Total    int
	RolledAt time.Time
}

// AddCharacterInput defines the request for seating a character
type AddCharacterInput struct {
	Sheet *character.Sheet
}

// AddCharacterOutput defines the response for seating a character
type AddCharacterOutput struct {
	Character *CharacterState
}

// GetCharacterInput defines the request for a character's current state
type GetCharacterInput struct {
	CharacterID string
}

// GetCharacterOutput defines the response for a character's current state
type GetCharacterOutput struct {
	Character *CharacterState
}

// ListCharactersInput defines the request for every seated character
type ListCharactersInput struct{}

// ListCharactersOutput lists characters in the order they were added
type ListCharactersOutput struct {
	Characters []*CharacterState
}

// RemoveCharacterInput defines the request for removing a character
type RemoveCharacterInput struct {
	CharacterID string
}

// RemoveCharacterOutput defines the response for removing a character
type RemoveCharacterOutput struct{}

// ToggleCombatInput defines the request for starting or ending combat
type ToggleCombatInput struct{}

// ToggleCombatOutput defines the response for starting or ending combat
type ToggleCombatOutput struct {
	Turns combat.Turns
	// Ended is true when combat was running and every effect was stopped
	Ended bool
}

// NextRoundInput defines the request for advancing the round
type NextRoundInput struct{}

// NextRoundOutput defines the response for advancing the round
type NextRoundOutput struct {
	Turns combat.Turns
	// Expired lists the effects that ran out this round
	Expired []ExpiredEffect
}

// ExpiredEffect is an effect that stopped when the round advanced
type ExpiredEffect struct {
	CharacterID string
	Ref         combat.EffectRef
}

// ToggleEffectInput defines the request for casting or stopping an effect.
// Input is the spell roll, e.g. a dice total or a number of successes.
type ToggleEffectInput struct {
	CharacterID string
	Category    character.Category
	Name        string
	Input       int
}

// ToggleEffectOutput defines the response for toggling an effect
type ToggleEffectOutput struct {
	Active          bool
	RoundsRemaining int
	Character       *CharacterState
}

// ApplyDamageInput defines the request for hitting a character
type ApplyDamageInput struct {
	CharacterID string
	Location    combat.Location
	Damage      int
}

// ApplyDamageOutput defines the response for hitting a character
type ApplyDamageOutput struct {
	// Prevented is true when an event handler cancelled the damage
	Prevented       bool
	WoundsInflicted int
	Character       *CharacterState
}

// HealInput defines the request for removing wounds
type HealInput struct {
	CharacterID string
	Location    combat.Location
	Levels      int
}

// HealOutput defines the response for removing wounds
type HealOutput struct {
	Character *CharacterState
}

// RollTraitInput defines the request for a bare trait roll. Untrained rolls
// a single die at -4 in place of a missing aptitude.
type RollTraitInput struct {
	CharacterID string
	Trait       string
	TN          *int
	Untrained   bool
}

// RollAptitudeInput defines the request for an aptitude or concentration
// roll
type RollAptitudeInput struct {
	CharacterID string
	Ref         character.Ref
	TN          *int
}

// RollOutput defines the response for a trait or aptitude roll
type RollOutput struct {
	Record *RollRecord
}

// Contestant is one side of an opposed roll
type Contestant struct {
	CharacterID string
	Ref         character.Ref
}

// RollOpposedInput defines the request for an opposed roll
type RollOpposedInput struct {
	Attacker Contestant
	Defender Contestant
}

// RollOpposedOutput defines the response for an opposed roll
type RollOpposedOutput struct {
	Attacker *RollRecord
	Defender *RollRecord
	Result   dice.OpposedResult
}

// RollDamageInput defines the request for a damage roll. Steps promotes the
// dice along the damage ladder first.
type RollDamageInput struct {
	Code  string
	Steps int
}

// RollDamageOutput defines the response for a damage roll
type RollDamageOutput struct {
	Record *DamageRecord
}

// DiceCodeInput defines the request for an external roller command
type DiceCodeInput struct {
	CharacterID string
	Ref         character.Ref
	TN          *int
	Untrained   bool
	// Damage sums every exploded die instead of keeping the highest. Only
	// bare traits have a damage code, and it takes no TN.
	Damage bool
}

// DiceCodeOutput defines the response for an external roller command
type DiceCodeOutput struct {
	Dice    dice.DiceSet
	Command string
}

// ListRollsInput defines the request for the roll log. An empty CharacterID
// lists every roll at the table; a Limit of zero lists them all.
type ListRollsInput struct {
	CharacterID string
	Limit       int
}

// ListRollsOutput holds logged rolls, newest first
type ListRollsOutput struct {
	Rolls []*rolls.Entry
}
