package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benkolera/salty-deadlands/internal/errors"
)

func TestDiceSet_String(t *testing.T) {
	tests := []struct {
		name string
		ds   DiceSet
		want string
	}{
		{name: "no bonus", ds: New(5, D12, 0), want: "5d12"},
		{name: "positive bonus", ds: New(5, D12, 2), want: "5d12+2"},
		{name: "negative bonus", ds: New(1, D8, -4), want: "1d8-4"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.ds.String())
		})
	}
}

func TestDiceSet_ValueSemantics(t *testing.T) {
	base := New(4, D8, 0)

	bumped := base.AddBonus(2)
	assert.Equal(t, New(4, D8, 2), bumped)
	assert.Equal(t, New(4, D8, 0), base, "AddBonus must not mutate the receiver")

	assert.Equal(t, New(3, D8, 0), base.WithNum(3))
	assert.Equal(t, New(4, D12, 0), base.WithSides(D12))
	assert.Equal(t, New(4, D8, -1), base.WithBonus(-1))
	assert.Equal(t, New(4, D8, 0), base)
}

func TestDiceSet_Code(t *testing.T) {
	ds := New(5, D12, 2)

	tests := []struct {
		name      string
		ds        DiceSet
		exploding *Exploding
		want      string
	}{
		{name: "no explosions", ds: New(5, D12, 0), want: "5d12"},
		{name: "bonus without explosions", ds: ds, want: "5d12+2"},
		{name: "explosions summed", ds: ds, exploding: &Exploding{Sum: true}, want: "5d12+2!"},
		{name: "keep highest", ds: ds, exploding: &Exploding{Sum: false}, want: "5d12+2!k"},
		{name: "against tn", ds: ds, exploding: ptr(KeepHighest().AgainstTN(7)), want: "5d12+2!kt7"},
		{name: "against tn with raises", ds: ds, exploding: ptr(KeepHighest().AgainstTN(7).WithRaises()), want: "5d12+2!kt7s5"},
		{name: "summed with raises", ds: New(2, D6, -1), exploding: ptr(SumAll().WithRaises()), want: "2d6-1!s5"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.ds.Code(tc.exploding))
		})
	}
}

func TestParseCode(t *testing.T) {
	t.Run("round trips every code form", func(t *testing.T) {
		codes := []string{"5d12", "5d12+2", "5d12+2!", "5d12+2!k", "5d12+2!kt7", "5d12+2!kt7s5", "1d8-4!kt5s5", "3d20!s5"}
		for _, code := range codes {
			ds, exploding, err := ParseCode(code)
			require.NoError(t, err, code)
			assert.Equal(t, code, ds.Code(exploding))
		}
	})

	t.Run("plain code has no exploding", func(t *testing.T) {
		ds, exploding, err := ParseCode("4d6")
		require.NoError(t, err)
		assert.Equal(t, New(4, D6, 0), ds)
		assert.Nil(t, exploding)
	})

	t.Run("reads exploding options", func(t *testing.T) {
		ds, exploding, err := ParseCode("5d12+2!kt7s5")
		require.NoError(t, err)
		assert.Equal(t, New(5, D12, 2), ds)
		require.NotNil(t, exploding)
		assert.False(t, exploding.Sum)
		require.NotNil(t, exploding.TN)
		assert.Equal(t, 7, *exploding.TN)
		assert.True(t, exploding.Raises)
	})

	t.Run("rejects malformed codes", func(t *testing.T) {
		for _, code := range []string{"", "d12", "5d", "5x12", "5d12+", "5d12!q", "5d12s5"} {
			_, _, err := ParseCode(code)
			require.Error(t, err, code)
			assert.True(t, errors.IsInvalidArgument(err), code)
		}
	})

	t.Run("rejects too many dice", func(t *testing.T) {
		_, _, err := ParseCode("101d6")
		require.Error(t, err)
		assert.True(t, errors.IsInvalidArgument(err))
		assert.Equal(t, 101, errors.GetMeta(err)["num"])

		_, _, err = ParseCode("9223372036854775807d6")
		assert.True(t, errors.IsInvalidArgument(err))

		_, _, err = ParseCode("99999999999999999999d6")
		assert.True(t, errors.IsInvalidArgument(err))

		ds, _, err := ParseCode("100d6")
		require.NoError(t, err)
		assert.Equal(t, MaxDice, ds.Num)
	})

	t.Run("rejects unknown die sizes", func(t *testing.T) {
		_, _, err := ParseCode("2d7")
		require.Error(t, err)
		assert.True(t, errors.IsInvalidArgument(err))
		assert.Equal(t, 7, errors.GetMeta(err)["sides"])
	})
}

func TestLadder_Step(t *testing.T) {
	t.Run("trait ladder stops at d12", func(t *testing.T) {
		start := New(2, D4, 0)
		assert.Equal(t, New(2, D6, 0), StepTrait(start, 1))
		assert.Equal(t, New(2, D8, 0), StepTrait(start, 2))
		assert.Equal(t, New(2, D10, 0), StepTrait(start, 3))
		assert.Equal(t, New(2, D12, 0), StepTrait(start, 4))
		assert.Equal(t, New(2, D12, 2), StepTrait(start, 5))
		assert.Equal(t, New(2, D12, 4), StepTrait(start, 6))
	})

	t.Run("damage ladder stops at d20", func(t *testing.T) {
		start := New(2, D4, 0)
		assert.Equal(t, New(2, D6, 0), StepDamage(start, 1))
		assert.Equal(t, New(2, D8, 0), StepDamage(start, 2))
		assert.Equal(t, New(2, D10, 0), StepDamage(start, 3))
		assert.Equal(t, New(2, D12, 0), StepDamage(start, 4))
		assert.Equal(t, New(2, D20, 0), StepDamage(start, 5))
		assert.Equal(t, New(2, D20, 2), StepDamage(start, 6))
		assert.Equal(t, New(2, D20, 4), StepDamage(start, 7))
	})

	t.Run("stepping resets the bonus below the top", func(t *testing.T) {
		assert.Equal(t, New(3, D10, 0), StepTrait(New(3, D8, 3), 1))
	})

	t.Run("steps are additive", func(t *testing.T) {
		for _, ladder := range []Ladder{TraitLadder, DamageLadder} {
			for _, sides := range ladder {
				ds := New(4, sides, 1)
				for a := 0; a <= 4; a++ {
					for b := 0; b <= 4; b++ {
						assert.Equal(t, ladder.Step(ds, a+b), ladder.Step(ladder.Step(ds, a), b))
					}
				}
			}
		}
	})

	t.Run("zero and negative steps are identity", func(t *testing.T) {
		ds := New(3, D8, 1)
		assert.Equal(t, ds, StepTrait(ds, 0))
		assert.Equal(t, ds, StepTrait(ds, -2))
	})

	t.Run("num never changes", func(t *testing.T) {
		assert.Equal(t, 7, StepDamage(New(7, D4, 0), 20).Num)
	})
}

func TestSides_Valid(t *testing.T) {
	for _, s := range []Sides{D4, D6, D8, D10, D12, D20} {
		assert.True(t, s.Valid(), s.String())
	}
	for _, s := range []Sides{0, 1, 2, 3, 7, 100} {
		assert.False(t, s.Valid(), s.String())
	}
}

func ptr[T any](v T) *T { return &v }
