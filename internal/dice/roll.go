package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=dicemock github.com/KirkDiggler/rpg-toolkit/dice Roller

import (
	"strconv"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/benkolera/salty-deadlands/internal/errors"
)

// Roller is the randomness source every roll draws from
type Roller = toolkitdice.Roller

// MaxRerolls caps how many times a single die may explode
const MaxRerolls = 10

// TraitRoll is the result of a trait roll: either busted or a total
type TraitRoll struct {
	Busted bool `json:"busted"`
	Total  int  `json:"total,omitempty"`
}

// Bust is the busted trait roll
var Bust = TraitRoll{Busted: true}

// Value returns a non-busted trait roll of total
func Value(total int) TraitRoll {
	return TraitRoll{Total: total}
}

// String renders the result the way the table reads it out
func (t TraitRoll) String() string {
	if t.Busted {
		return "bust"
	}
	return strconv.Itoa(t.Total)
}

// RollDie rolls one exploding die. Every time the die shows its highest face
// it is rolled again and added on, up to MaxRerolls extra rolls.
func RollDie(r Roller, sides Sides) (int, error) {
	total := 0
	for rerolls := MaxRerolls; ; rerolls-- {
		face, err := r.Roll(int(sides))
		if err != nil {
			return 0, errors.Wrapf(err, "failed to roll %s", sides)
		}
		total += face
		if rerolls == 0 || face < int(sides) {
			return total, nil
		}
	}
}

// RollDice rolls every die of ds and returns the exploded total of each
func RollDice(r Roller, ds DiceSet) ([]int, error) {
	results := make([]int, 0, max(ds.Num, 0))
	for i := 0; i < ds.Num; i++ {
		v, err := RollDie(r, ds.Sides)
		if err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return results, nil
}

// BustedOrMax busts when more than half of the dice came up 1. Otherwise it
// returns the highest die. An empty pool is a bust.
func BustedOrMax(results []int) TraitRoll {
	if len(results) == 0 {
		return Bust
	}

	ones, highest := 0, results[0]
	for _, v := range results {
		if v == 1 {
			ones++
		}
		highest = max(highest, v)
	}

	if ones > len(results)-ones {
		return Bust
	}
	return Value(highest)
}

// TraitResult adds bonus to the best die unless the roll busted
func TraitResult(results []int, bonus int) TraitRoll {
	res := BustedOrMax(results)
	if res.Busted {
		return res
	}
	return Value(res.Total + bonus)
}

// RollTrait rolls ds as a trait roll
func RollTrait(r Roller, ds DiceSet) (TraitRoll, error) {
	res, _, err := RollTraitDetailed(r, ds)
	return res, err
}

// RollTraitDetailed rolls ds as a trait roll and also returns the per-die
// exploded totals.
func RollTraitDetailed(r Roller, ds DiceSet) (TraitRoll, []int, error) {
	results, err := RollDice(r, ds)
	if err != nil {
		return TraitRoll{}, nil, err
	}
	return TraitResult(results, ds.Bonus), results, nil
}

// RollDamage sums every exploded die of ds. Damage never busts and the bonus
// is not added.
func RollDamage(r Roller, ds DiceSet) (int, []int, error) {
	results, err := RollDice(r, ds)
	if err != nil {
		return 0, nil, err
	}

	total := 0
	for _, v := range results {
		total += v
	}
	return total, results, nil
}
