package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dicemock "github.com/benkolera/salty-deadlands/internal/dice/mock"
)

func TestMapOutcome(t *testing.T) {
	inc := func(x int) int { return x + 1 }

	assert.Equal(t, Margin(6), MapOutcome(Margin(5), inc))
	assert.Equal(t, FailureOutcome(), MapOutcome(FailureOutcome(), inc))
	assert.Equal(t, BustOutcome(), MapOutcome(BustOutcome(), inc))
}

func TestFlatMapOutcome(t *testing.T) {
	inc := func(x int) Outcome { return Margin(x + 1) }
	fail := func(int) Outcome { return FailureOutcome() }
	bust := func(int) Outcome { return BustOutcome() }

	assert.Equal(t, Margin(6), FlatMapOutcome(Margin(5), inc))
	assert.Equal(t, FailureOutcome(), FlatMapOutcome(Margin(5), fail))
	assert.Equal(t, BustOutcome(), FlatMapOutcome(Margin(5), bust))

	assert.Equal(t, FailureOutcome(), FlatMapOutcome(FailureOutcome(), inc))
	assert.Equal(t, FailureOutcome(), FlatMapOutcome(FailureOutcome(), bust))
	assert.Equal(t, BustOutcome(), FlatMapOutcome(BustOutcome(), inc))
	assert.Equal(t, BustOutcome(), FlatMapOutcome(BustOutcome(), fail))
}

func TestAboveTN(t *testing.T) {
	assert.Equal(t, BustOutcome(), AboveTN(Bust, 5))
	assert.Equal(t, FailureOutcome(), AboveTN(Value(4), 5))
	assert.Equal(t, Margin(0), AboveTN(Value(5), 5))
	assert.Equal(t, Margin(7), AboveTN(Value(12), 5))
}

func TestSuccessesVsTN(t *testing.T) {
	assert.Equal(t, BustOutcome(), SuccessesVsTN(Bust, 5))
	assert.Equal(t, FailureOutcome(), SuccessesVsTN(Value(4), 5))
	assert.Equal(t, Margin(1), SuccessesVsTN(Value(5), 5))
	assert.Equal(t, Margin(1), SuccessesVsTN(Value(9), 5))
	assert.Equal(t, Margin(2), SuccessesVsTN(Value(10), 5))
	assert.Equal(t, Margin(2), SuccessesVsTN(Value(12), 7))

	t.Run("successes are monotone in the result", func(t *testing.T) {
		for tn := 3; tn <= 11; tn++ {
			prev := 0
			for res := tn; res < tn+40; res++ {
				o := SuccessesVsTN(Value(res), tn)
				require.True(t, o.IsSuccess())
				assert.GreaterOrEqual(t, o.Value, prev)
				prev = o.Value
			}
		}
	})
}

func TestSuccessesFromMargin(t *testing.T) {
	assert.Equal(t, 1, SuccessesFromMargin(0))
	assert.Equal(t, 1, SuccessesFromMargin(4))
	assert.Equal(t, 2, SuccessesFromMargin(5))
	assert.Equal(t, 3, SuccessesFromMargin(14))
	assert.Equal(t, 0, SuccessesFromMargin(-1))
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "bust", BustOutcome().String())
	assert.Equal(t, "failure", FailureOutcome().String())
	assert.Equal(t, "success(3)", Margin(3).String())
}

func TestRollAboveTN(t *testing.T) {
	ds := New(2, D6, 2)

	got, err := RollAboveTN(dicemock.NewScriptedRoller(4, 3), ds, 5)
	require.NoError(t, err)
	assert.Equal(t, Margin(1), got)

	got, err = RollAboveTN(dicemock.NewScriptedRoller(1, 1), ds, 5)
	require.NoError(t, err)
	assert.Equal(t, BustOutcome(), got)

	_, err = RollAboveTN(dicemock.NewScriptedRoller(4), ds, 5)
	assert.Error(t, err)
}

func TestRollSuccessesVsTN(t *testing.T) {
	ds := New(2, D6, 2)

	got, err := RollSuccessesVsTN(dicemock.NewScriptedRoller(4, 3), ds, 5)
	require.NoError(t, err)
	assert.Equal(t, Margin(1), got)

	got, err = RollSuccessesVsTN(dicemock.NewScriptedRoller(2, 1), ds, 5)
	require.NoError(t, err)
	assert.Equal(t, FailureOutcome(), got)
}
