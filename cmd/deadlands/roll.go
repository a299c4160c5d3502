package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benkolera/salty-deadlands/internal/dice"
)

var (
	rollTN     int
	rollDamage bool
	rollSteps  int
)

var rollCmd = &cobra.Command{
	Use:   "roll [code]",
	Short: "Roll a dice code",
	Long: `Roll a dice code as a trait roll: every die explodes, the best die counts
and the roll busts when more than half the dice come up 1. Examples:

  roll 4d8+2
  roll 3d10 --tn 7
  roll 2d8 --damage --steps 1`,
	Args: cobra.ExactArgs(1),
	RunE: runRoll,
}

var opposedCmd = &cobra.Command{
	Use:   "opposed [attacker] [defender]",
	Short: "Roll two dice codes against each other",
	Long: `Roll an opposed contest. Each side rolls against TN 5 and the better margin
wins, with a raise for every full 5 points of difference. Example:

  opposed 4d10+1 3d8`,
	Args: cobra.ExactArgs(2),
	RunE: runOpposed,
}

func init() {
	rollCmd.Flags().IntVar(&rollTN, "tn", dice.BaselineTN, "Target number to roll against")
	rollCmd.Flags().BoolVar(&rollDamage, "damage", false, "Roll damage: sum every die and never bust")
	rollCmd.Flags().IntVar(&rollSteps, "steps", 0, "Damage ladder steps to promote the dice first")
}

func runRoll(cmd *cobra.Command, args []string) error {
	ds, _, err := dice.ParseCode(args[0])
	if err != nil {
		return err
	}
	r := roller(cmd)

	if rollDamage {
		ds = dice.StepDamage(ds, rollSteps)
		total, results, err := dice.RollDamage(r, ds)
		if err != nil {
			return err
		}
		fmt.Printf("Damage %s: %v = %d\n", ds.Code(ptr(dice.SumAll())), results, total)
		return nil
	}

	result, results, err := dice.RollTraitDetailed(r, ds)
	if err != nil {
		return err
	}
	fmt.Printf("Roll %s: %v => %s\n", ds, results, result)

	if tn := tnFlag(cmd, rollTN); tn != nil {
		fmt.Printf("  vs TN %d: %s\n", *tn, dice.AboveTN(result, *tn))
		fmt.Printf("  Successes: %s\n", dice.SuccessesVsTN(result, *tn))
	}
	return nil
}

func runOpposed(cmd *cobra.Command, args []string) error {
	attacker, _, err := dice.ParseCode(args[0])
	if err != nil {
		return err
	}
	defender, _, err := dice.ParseCode(args[1])
	if err != nil {
		return err
	}

	res, err := dice.RollOpposed(roller(cmd), attacker, defender)
	if err != nil {
		return err
	}

	switch res.Winner {
	case dice.Draw:
		fmt.Printf("%s vs %s: draw\n", attacker, defender)
		if res.AttackerBusted {
			fmt.Println("  Attacker went bust")
		}
		if res.DefenderBusted {
			fmt.Println("  Defender went bust")
		}
	default:
		fmt.Printf("%s vs %s: %s wins with %d raise(s)\n", attacker, defender, res.Winner, res.Raises)
		if res.LoserBusted {
			fmt.Println("  The loser went bust")
		}
	}
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
