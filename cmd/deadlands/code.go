package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benkolera/salty-deadlands/internal/errors"
	"github.com/benkolera/salty-deadlands/internal/orchestrators/table"
)

var (
	codeTN         int
	codeUntrained  bool
	codeDamage     bool
	checkTN        int
	checkUntrained bool
)

var codeCmd = &cobra.Command{
	Use:   "code [trait] [aptitude] [concentration]",
	Short: "Print the chat roller command for a roll on a sheet",
	Long: `Print the /die command that makes an external chat roller roll the
effective dice of a trait, aptitude or concentration. Examples:

  code Spirit Faith --tn 7
  code Deftness Shootin Shotgun
  code Nimbleness --untrained
  code Strength --damage`,
	Args: cobra.RangeArgs(1, 3),
	RunE: runCode,
}

var checkCmd = &cobra.Command{
	Use:   "check [trait] [aptitude] [concentration]",
	Short: "Roll a trait, aptitude or concentration on a sheet",
	Long: `Roll the effective dice of a trait, aptitude or concentration. Examples:

  check Spirit Faith --tn 7
  check Vigor --hit torso=13 --tn 5`,
	Args: cobra.RangeArgs(1, 3),
	RunE: runCheck,
}

func init() {
	addSheetFlags(codeCmd)
	codeCmd.Flags().IntVar(&codeTN, "tn", 5, "Target number to roll against")
	codeCmd.Flags().BoolVar(&codeUntrained, "untrained", false, "Roll one trait die at -4 for a missing aptitude")
	codeCmd.Flags().BoolVar(&codeDamage, "damage", false, "Sum every exploded die, for a damage roll off a trait")

	addSheetFlags(checkCmd)
	checkCmd.Flags().IntVar(&checkTN, "tn", 5, "Target number to roll against")
	checkCmd.Flags().BoolVar(&checkUntrained, "untrained", false, "Roll one trait die at -4 for a missing aptitude")
}

func runCode(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	svc, sheet, err := seatCharacter(ctx, cmd)
	if err != nil {
		return err
	}

	out, err := svc.DiceCode(ctx, &table.DiceCodeInput{
		CharacterID: sheet.ID,
		Ref:         parseRef(args),
		TN:          tnFlag(cmd, codeTN),
		Untrained:   codeUntrained,
		Damage:      codeDamage,
	})
	if err != nil {
		return err
	}

	fmt.Println(out.Command)
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	svc, sheet, err := seatCharacter(ctx, cmd)
	if err != nil {
		return err
	}

	ref := parseRef(args)
	tn := tnFlag(cmd, checkTN)

	var out *table.RollOutput
	if checkUntrained && !ref.IsTrait() {
		return errors.InvalidArgumentf("%s cannot be rolled untrained", ref)
	}
	if ref.IsTrait() {
		out, err = svc.RollTrait(ctx, &table.RollTraitInput{
			CharacterID: sheet.ID,
			Trait:       ref.Trait,
			TN:          tn,
			Untrained:   checkUntrained,
		})
	} else {
		out, err = svc.RollAptitude(ctx, &table.RollAptitudeInput{
			CharacterID: sheet.ID,
			Ref:         ref,
			TN:          tn,
		})
	}
	if err != nil {
		return err
	}

	record := out.Record
	fmt.Printf("%s rolls %s (%s): %v => %s\n", sheet.Name, record.Ref, record.Dice, record.Results, record.Result)
	if record.Outcome != nil {
		fmt.Printf("  vs TN %d: %s\n", *record.TN, record.Outcome)
		fmt.Printf("  Successes: %s\n", record.Successes)
	}
	return nil
}
