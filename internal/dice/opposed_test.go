package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dicemock "github.com/benkolera/salty-deadlands/internal/dice/mock"
)

func TestOpposed(t *testing.T) {
	t.Run("bust and failure draw with each other", func(t *testing.T) {
		bads := []Outcome{BustOutcome(), FailureOutcome()}
		for _, a := range bads {
			for _, d := range bads {
				assert.Equal(t, OpposedResult{
					Winner:         Draw,
					AttackerBusted: a.IsBust(),
					DefenderBusted: d.IsBust(),
				}, Opposed(a, d))
			}
		}
	})

	t.Run("equal margins draw", func(t *testing.T) {
		assert.Equal(t, OpposedResult{Winner: Draw}, Opposed(Margin(0), Margin(0)))
		assert.Equal(t, OpposedResult{Winner: Draw}, Opposed(Margin(7), Margin(7)))
	})

	tests := []struct {
		name     string
		attacker Outcome
		defender Outcome
		want     OpposedResult
	}{
		{name: "attacker beats bust", attacker: Margin(1), defender: BustOutcome(), want: OpposedResult{Winner: Attacker, LoserBusted: true}},
		{name: "attacker beats failure", attacker: Margin(1), defender: FailureOutcome(), want: OpposedResult{Winner: Attacker}},
		{name: "attacker by one", attacker: Margin(1), defender: Margin(0), want: OpposedResult{Winner: Attacker}},
		{name: "attacker one raise", attacker: Margin(5), defender: Margin(0), want: OpposedResult{Winner: Attacker, Raises: 1}},
		{name: "attacker two raises", attacker: Margin(10), defender: Margin(0), want: OpposedResult{Winner: Attacker, Raises: 2}},
		{name: "defender raises cancel", attacker: Margin(6), defender: Margin(5), want: OpposedResult{Winner: Attacker}},
		{name: "defender raises subtract", attacker: Margin(20), defender: Margin(19), want: OpposedResult{Winner: Attacker, Raises: 1}},
		{name: "defender beats bust", attacker: BustOutcome(), defender: Margin(1), want: OpposedResult{Winner: Defender, LoserBusted: true}},
		{name: "defender beats failure", attacker: FailureOutcome(), defender: Margin(1), want: OpposedResult{Winner: Defender}},
		{name: "defender by one", attacker: Margin(0), defender: Margin(1), want: OpposedResult{Winner: Defender}},
		{name: "defender one raise", attacker: Margin(0), defender: Margin(5), want: OpposedResult{Winner: Defender, Raises: 1}},
		{name: "defender two raises", attacker: Margin(0), defender: Margin(10), want: OpposedResult{Winner: Defender, Raises: 2}},
		{name: "attacker raises cancel", attacker: Margin(5), defender: Margin(6), want: OpposedResult{Winner: Defender}},
		{name: "attacker raises subtract", attacker: Margin(19), defender: Margin(20), want: OpposedResult{Winner: Defender, Raises: 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Opposed(tc.attacker, tc.defender))
		})
	}

	t.Run("swapping sides mirrors the winner", func(t *testing.T) {
		outcomes := []Outcome{BustOutcome(), FailureOutcome()}
		for m := 0; m <= 25; m++ {
			outcomes = append(outcomes, Margin(m))
		}

		mirror := map[Winner]Winner{Draw: Draw, Attacker: Defender, Defender: Attacker}
		for _, a := range outcomes {
			for _, d := range outcomes {
				ab, ba := Opposed(a, d), Opposed(d, a)
				assert.Equal(t, mirror[ab.Winner], ba.Winner)
				assert.Equal(t, ab.Raises, ba.Raises)
				assert.GreaterOrEqual(t, ab.Raises, 0)
			}
		}
	})
}

func TestRollOpposed(t *testing.T) {
	// attacker rolls 9 on 1d10 and defender rolls 4 on 1d6, both against 5
	r := dicemock.NewScriptedRoller(9, 4)

	res, err := RollOpposed(r, New(1, D10, 0), New(1, D6, 0))
	require.NoError(t, err)
	assert.Equal(t, OpposedResult{Winner: Attacker}, res)
	assert.Zero(t, r.Remaining())
}
