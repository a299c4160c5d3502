package dice

import "strconv"

// Kind tags an Outcome
type Kind int

const (
	KindBust Kind = iota + 1
	KindFailure
	KindSuccess
)

func (k Kind) String() string {
	switch k {
	case KindBust:
		return "bust"
	case KindFailure:
		return "failure"
	case KindSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Outcome is the result of comparing a roll with a target number. Value holds
// a margin or a success count depending on the producer and is only
// meaningful when Kind is KindSuccess.
type Outcome struct {
	Kind  Kind `json:"kind"`
	Value int  `json:"value,omitempty"`
}

// BustOutcome returns the bust outcome
func BustOutcome() Outcome { return Outcome{Kind: KindBust} }

// FailureOutcome returns the failure outcome
func FailureOutcome() Outcome { return Outcome{Kind: KindFailure} }

// Margin returns a successful outcome carrying n
func Margin(n int) Outcome { return Outcome{Kind: KindSuccess, Value: n} }

// IsBust reports whether o is a bust
func (o Outcome) IsBust() bool { return o.Kind == KindBust }

// IsFailure reports whether o is a failure
func (o Outcome) IsFailure() bool { return o.Kind == KindFailure }

// IsSuccess reports whether o carries a value
func (o Outcome) IsSuccess() bool { return o.Kind == KindSuccess }

func (o Outcome) String() string {
	if o.IsSuccess() {
		return o.Kind.String() + "(" + strconv.Itoa(o.Value) + ")"
	}
	return o.Kind.String()
}

// MapOutcome applies f to a successful value. Bust and Failure pass through.
func MapOutcome(o Outcome, f func(int) int) Outcome {
	if !o.IsSuccess() {
		return o
	}
	return Margin(f(o.Value))
}

// FlatMapOutcome applies f to a successful value and returns its outcome.
// Bust and Failure pass through.
func FlatMapOutcome(o Outcome, f func(int) Outcome) Outcome {
	if !o.IsSuccess() {
		return o
	}
	return f(o.Value)
}

// AboveTN compares a trait roll with tn. The margin is res - tn.
func AboveTN(res TraitRoll, tn int) Outcome {
	switch {
	case res.Busted:
		return BustOutcome()
	case res.Total < tn:
		return FailureOutcome()
	default:
		return Margin(res.Total - tn)
	}
}

// SuccessesFromMargin is one success plus one per full RaiseStep of margin
func SuccessesFromMargin(margin int) int {
	return 1 + floorDiv(margin, RaiseStep)
}

// SuccessesVsTN compares res with tn and converts the margin to successes
func SuccessesVsTN(res TraitRoll, tn int) Outcome {
	return MapOutcome(AboveTN(res, tn), SuccessesFromMargin)
}

// RollAboveTN rolls ds as a trait roll against tn
func RollAboveTN(r Roller, ds DiceSet, tn int) (Outcome, error) {
	res, err := RollTrait(r, ds)
	if err != nil {
		return Outcome{}, err
	}
	return AboveTN(res, tn), nil
}

// RollSuccessesVsTN rolls ds as a trait roll against tn and counts successes
func RollSuccessesVsTN(r Roller, ds DiceSet, tn int) (Outcome, error) {
	res, err := RollTrait(r, ds)
	if err != nil {
		return Outcome{}, err
	}
	return SuccessesVsTN(res, tn), nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
