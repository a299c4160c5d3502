package dice

import (
	"fmt"
	"strconv"
)

// Sides is the number of faces on a die
type Sides int

// Die faces used by the ruleset
const (
	D4  Sides = 4
	D6  Sides = 6
	D8  Sides = 8
	D10 Sides = 10
	D12 Sides = 12
	D20 Sides = 20
)

// MaxDice is the largest dice count accepted from codes and sheets
const MaxDice = 100

// Valid reports whether s is one of the die sizes the ruleset knows about
func (s Sides) Valid() bool {
	return DamageLadder.Contains(s)
}

// String returns the die name, e.g. "d12"
func (s Sides) String() string {
	return "d" + strconv.Itoa(int(s))
}

// DiceSet is Num dice of Sides faces plus a flat Bonus. It is a value type:
// every method returns a new DiceSet.
type DiceSet struct {
	Num   int   `json:"num" yaml:"num"`
	Sides Sides `json:"sides" yaml:"sides"`
	Bonus int   `json:"bonus,omitempty" yaml:"bonus,omitempty"`
}

// New creates a DiceSet
func New(num int, sides Sides, bonus int) DiceSet {
	return DiceSet{Num: num, Sides: sides, Bonus: bonus}
}

// WithNum returns a copy with the dice count replaced
func (ds DiceSet) WithNum(num int) DiceSet {
	ds.Num = num
	return ds
}

// WithSides returns a copy with the die size replaced
func (ds DiceSet) WithSides(sides Sides) DiceSet {
	ds.Sides = sides
	return ds
}

// WithBonus returns a copy with the bonus replaced
func (ds DiceSet) WithBonus(bonus int) DiceSet {
	ds.Bonus = bonus
	return ds
}

// AddBonus returns a copy with n added to the bonus
func (ds DiceSet) AddBonus(n int) DiceSet {
	return ds.WithBonus(ds.Bonus + n)
}

// String returns the canonical code "{num}d{sides}[+|-{bonus}]". The bonus
// segment is omitted when zero and positive bonuses carry an explicit sign.
func (ds DiceSet) String() string {
	switch {
	case ds.Bonus > 0:
		return fmt.Sprintf("%dd%d+%d", ds.Num, ds.Sides, ds.Bonus)
	case ds.Bonus < 0:
		return fmt.Sprintf("%dd%d%d", ds.Num, ds.Sides, ds.Bonus)
	default:
		return fmt.Sprintf("%dd%d", ds.Num, ds.Sides)
	}
}
