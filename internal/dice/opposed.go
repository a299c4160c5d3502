package dice

// BaselineTN is the target number each side of an opposed roll rolls against
const BaselineTN = 5

// Winner identifies who took an opposed roll
type Winner int

const (
	Draw Winner = iota
	Attacker
	Defender
)

func (w Winner) String() string {
	switch w {
	case Attacker:
		return "attacker"
	case Defender:
		return "defender"
	default:
		return "draw"
	}
}

// OpposedResult is the outcome of an opposed roll. On a draw only the two
// bust flags are set. On a win Raises and LoserBusted describe the result.
type OpposedResult struct {
	Winner         Winner `json:"winner"`
	Raises         int    `json:"raises,omitempty"`
	LoserBusted    bool   `json:"loser_busted,omitempty"`
	AttackerBusted bool   `json:"attacker_busted,omitempty"`
	DefenderBusted bool   `json:"defender_busted,omitempty"`
}

// opposedMargin ranks bust and failure together below a zero margin
func opposedMargin(o Outcome) int {
	if !o.IsSuccess() {
		return -1
	}
	return o.Value
}

func raises(margin int) int {
	if margin <= 0 {
		return 0
	}
	return SuccessesFromMargin(margin) - 1
}

// Opposed resolves an opposed roll from each side's margin over its target
// number.
func Opposed(attacker, defender Outcome) OpposedResult {
	am, dm := opposedMargin(attacker), opposedMargin(defender)
	if am == dm {
		return OpposedResult{
			Winner:         Draw,
			AttackerBusted: attacker.IsBust(),
			DefenderBusted: defender.IsBust(),
		}
	}

	if am > dm {
		return OpposedResult{
			Winner:      Attacker,
			Raises:      max(0, raises(am)-raises(dm)),
			LoserBusted: defender.IsBust(),
		}
	}
	return OpposedResult{
		Winner:      Defender,
		Raises:      max(0, raises(dm)-raises(am)),
		LoserBusted: attacker.IsBust(),
	}
}

// RollOpposed rolls both sides against BaselineTN and resolves the contest.
// The attacker rolls first.
func RollOpposed(r Roller, attacker, defender DiceSet) (OpposedResult, error) {
	a, err := RollAboveTN(r, attacker, BaselineTN)
	if err != nil {
		return OpposedResult{}, err
	}
	d, err := RollAboveTN(r, defender, BaselineTN)
	if err != nil {
		return OpposedResult{}, err
	}
	return Opposed(a, d), nil
}
