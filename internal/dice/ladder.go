package dice

// Ladder is an ascending progression of die sizes used when promoting dice
type Ladder []Sides

var (
	// TraitLadder tops out at d12
	TraitLadder = Ladder{D4, D6, D8, D10, D12}

	// DamageLadder continues past d12 to d20
	DamageLadder = Ladder{D4, D6, D8, D10, D12, D20}
)

// bonusPastTop is added per step once the ladder's last die is reached
const bonusPastTop = 2

// Contains reports whether s is a rung of the ladder
func (l Ladder) Contains(s Sides) bool {
	return l.index(s) >= 0
}

func (l Ladder) index(s Sides) int {
	for i, rung := range l {
		if rung == s {
			return i
		}
	}
	return -1
}

// Top returns the last rung
func (l Ladder) Top() Sides {
	return l[len(l)-1]
}

// Step promotes ds by times single steps. Below the top a step moves to the
// next die size and resets the bonus to zero; at the top it adds 2 to the
// bonus. Num never changes. A negative times is treated as zero.
//
// Sides that are not on the ladder step onto the bottom rung.
func (l Ladder) Step(ds DiceSet, times int) DiceSet {
	for ; times > 0; times-- {
		i := l.index(ds.Sides)
		if i == len(l)-1 {
			ds.Bonus += bonusPastTop
			continue
		}
		ds.Sides = l[i+1]
		ds.Bonus = 0
	}
	return ds
}

// StepTrait promotes ds along the trait ladder
func StepTrait(ds DiceSet, times int) DiceSet {
	return TraitLadder.Step(ds, times)
}

// StepDamage promotes ds along the damage ladder
func StepDamage(ds DiceSet, times int) DiceSet {
	return DamageLadder.Step(ds, times)
}
