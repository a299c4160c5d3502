package bonus

import (
	"fmt"

	"github.com/benkolera/salty-deadlands/internal/dice"
)

// Effect is what an aptitude bonus does to a dice set
type Effect interface {
	fmt.Stringer
	isEffect()
}

// Flat adds Bonus to the dice set's bonus
type Flat struct {
	Bonus int
}

// DiceSub replaces the dice set entirely
type DiceSub struct {
	NewDice dice.DiceSet
}

// DicePromote steps the dice up the trait ladder Faces times
type DicePromote struct {
	Faces int
}

func (Flat) isEffect()        {}
func (DiceSub) isEffect()     {}
func (DicePromote) isEffect() {}

func (e Flat) String() string {
	return fmt.Sprintf("%+d", e.Bonus)
}

func (e DiceSub) String() string {
	return "becomes " + e.NewDice.String()
}

func (e DicePromote) String() string {
	return fmt.Sprintf("promote %d", e.Faces)
}

// Bonus is a modifier granted by a wound, an edge, a spell or similar
type Bonus interface {
	// AppliesTo reports whether the bonus affects rolls keyed by key
	AppliesTo(key Key) bool
	// Describe is a one line summary for display
	Describe() string
	isBonus()
}

// Aptitude modifies the dice of every roll its filter matches
type Aptitude struct {
	Filter Filter
	Effect Effect
	Reason string
}

// LightArmor adds to the character's light armor. It never applies to rolls.
type LightArmor struct {
	Bonus  int
	Reason string
}

func (Aptitude) isBonus()   {}
func (LightArmor) isBonus() {}

// AppliesTo implements Bonus
func (b Aptitude) AppliesTo(key Key) bool {
	return b.Filter.Matches(key)
}

// AppliesTo implements Bonus
func (LightArmor) AppliesTo(Key) bool {
	return false
}

// Describe implements Bonus
func (b Aptitude) Describe() string {
	return fmt.Sprintf("%s: %s (%s)", b.Reason, b.Effect, b.Filter)
}

// Describe implements Bonus
func (b LightArmor) Describe() string {
	return fmt.Sprintf("%s: %+d light armor", b.Reason, b.Bonus)
}

// WoundModifierReason labels the bonus produced by WoundPenalty
const WoundModifierReason = "Wound Modifier"

// WoundPenalty is the penalty every roll takes at the given wound level.
// A level of zero or less has no penalty.
func WoundPenalty(level int) (Bonus, bool) {
	if level <= 0 {
		return nil, false
	}
	return Aptitude{
		Filter: Everything(),
		Effect: Flat{Bonus: -level},
		Reason: WoundModifierReason,
	}, true
}
