package bonus

import (
	"slices"

	"github.com/benkolera/salty-deadlands/internal/dice"
)

// Matching returns the bonuses that apply to key, in their original order
func Matching(bonuses []Bonus, key Key) []Bonus {
	var out []Bonus
	for _, b := range bonuses {
		if b.AppliesTo(key) {
			out = append(out, b)
		}
	}
	return out
}

func effectRank(e Effect) int {
	if _, ok := e.(DiceSub); ok {
		return 0
	}
	return 1
}

// Apply folds the aptitude bonuses onto base. Dice substitutions go first
// and everything else follows in its original order. Light armor bonuses
// are ignored.
func Apply(base dice.DiceSet, bonuses []Bonus) dice.DiceSet {
	var aptitudes []Aptitude
	for _, b := range bonuses {
		if a, ok := b.(Aptitude); ok {
			aptitudes = append(aptitudes, a)
		}
	}

	slices.SortStableFunc(aptitudes, func(a, b Aptitude) int {
		return effectRank(a.Effect) - effectRank(b.Effect)
	})

	acc := base
	for _, a := range aptitudes {
		switch e := a.Effect.(type) {
		case Flat:
			acc = acc.AddBonus(e.Bonus)
		case DiceSub:
			acc = e.NewDice
		case DicePromote:
			acc = dice.StepTrait(acc, e.Faces)
		}
	}
	return acc
}

// ApplyFor applies only the bonuses matching key
func ApplyFor(base dice.DiceSet, key Key, bonuses []Bonus) dice.DiceSet {
	return Apply(base, Matching(bonuses, key))
}

// LightArmorTotal adds every light armor bonus to base
func LightArmorTotal(base int, bonuses []Bonus) int {
	total := base
	for _, b := range bonuses {
		if la, ok := b.(LightArmor); ok {
			total += la.Bonus
		}
	}
	return total
}

// Reasons lists the reason of every bonus, in order
func Reasons(bonuses []Bonus) []string {
	out := make([]string, 0, len(bonuses))
	for _, b := range bonuses {
		switch v := b.(type) {
		case Aptitude:
			out = append(out, v.Reason)
		case LightArmor:
			out = append(out, v.Reason)
		}
	}
	return out
}
