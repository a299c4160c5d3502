package dice

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/benkolera/salty-deadlands/internal/errors"
)

// RaiseStep is the margin over the target number that earns a raise
const RaiseStep = 5

// Exploding describes how an external dice roller should treat explosions
// when it reads a dice code.
type Exploding struct {
	// Sum adds every exploded die together; false keeps only the highest
	Sum bool `json:"sum"`
	// TN is the target number the roll is compared against, if any
	TN *int `json:"tn,omitempty"`
	// Raises asks the roller to count raises in steps of 5
	Raises bool `json:"raises"`
}

// KeepHighest is the exploding mode for trait rolls
func KeepHighest() Exploding {
	return Exploding{Sum: false}
}

// SumAll is the exploding mode for damage rolls
func SumAll() Exploding {
	return Exploding{Sum: true}
}

// AgainstTN returns a copy compared against tn
func (e Exploding) AgainstTN(tn int) Exploding {
	e.TN = &tn
	return e
}

// WithRaises returns a copy that counts raises
func (e Exploding) WithRaises() Exploding {
	e.Raises = true
	return e
}

func (e Exploding) suffix() string {
	var b strings.Builder
	b.WriteString("!")
	if !e.Sum {
		b.WriteString("k")
	}
	if e.TN != nil {
		b.WriteString("t")
		b.WriteString(strconv.Itoa(*e.TN))
	}
	if e.Raises {
		b.WriteString("s")
		b.WriteString(strconv.Itoa(RaiseStep))
	}
	return b.String()
}

// Code serializes the dice set in the notation understood by external dice
// rollers, e.g. "5d12+2!kt7s5". A nil exploding yields String().
func (ds DiceSet) Code(exploding *Exploding) string {
	if exploding == nil {
		return ds.String()
	}
	return ds.String() + exploding.suffix()
}

var codePattern = regexp.MustCompile(`^(\d+)d(\d+)([+-]\d+)?(?:(!)(k)?(?:t(-?\d+))?(s5)?)?$`)

// ParseCode reads a dice code produced by Code. The returned Exploding is nil
// when the code has no "!" suffix.
func ParseCode(code string) (DiceSet, *Exploding, error) {
	m := codePattern.FindStringSubmatch(strings.TrimSpace(strings.ToLower(code)))
	if m == nil {
		return DiceSet{}, nil, errors.InvalidArgumentf("invalid dice code: %q (expected format: NdS[+B][!][k][tN][s5])", code)
	}

	num, err := strconv.Atoi(m[1])
	if err != nil {
		return DiceSet{}, nil, errors.InvalidArgumentf("invalid dice count in code: %q", code)
	}
	if num > MaxDice {
		return DiceSet{}, nil, errors.InvalidArgumentf("too many dice in code: %q (at most %d)", code, MaxDice).
			WithMeta("num", num)
	}
	sides, err := strconv.Atoi(m[2])
	if err != nil {
		return DiceSet{}, nil, errors.InvalidArgumentf("invalid die size in code: %q", code)
	}
	if !Sides(sides).Valid() {
		return DiceSet{}, nil, errors.InvalidArgumentf("unsupported die size d%d in code: %q", sides, code).
			WithMeta("sides", sides)
	}

	bonus := 0
	if m[3] != "" {
		bonus, err = strconv.Atoi(m[3])
		if err != nil {
			return DiceSet{}, nil, errors.InvalidArgumentf("invalid bonus in code: %q", code)
		}
	}

	ds := New(num, Sides(sides), bonus)
	if m[4] == "" {
		return ds, nil, nil
	}

	exploding := Exploding{Sum: m[5] == "", Raises: m[7] != ""}
	if m[6] != "" {
		tn, err := strconv.Atoi(m[6])
		if err != nil {
			return DiceSet{}, nil, errors.InvalidArgumentf("invalid target number in code: %q", code)
		}
		exploding = exploding.AgainstTN(tn)
	}

	return ds, &exploding, nil
}
