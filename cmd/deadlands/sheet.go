package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benkolera/salty-deadlands/internal/combat"
	"github.com/benkolera/salty-deadlands/internal/orchestrators/table"
)

var sheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Show a character sheet with every bonus applied",
	Long: `Show the effective dice of every trait, aptitude and concentration on a
sheet. Wounds and running spells change the dice. Examples:

  sheet
  sheet --hit torso=13
  sheet --cast blessings/Smite=2 --file doc.yaml`,
	Args: cobra.NoArgs,
	RunE: runSheet,
}

func init() {
	addSheetFlags(sheetCmd)
}

func runSheet(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	svc, sheet, err := seatCharacter(ctx, cmd)
	if err != nil {
		return err
	}

	out, err := svc.GetCharacter(ctx, &table.GetCharacterInput{CharacterID: sheet.ID})
	if err != nil {
		return err
	}

	printCharacter(out.Character)
	return nil
}

func printCharacter(c *table.CharacterState) {
	fmt.Printf("%s (%s)\n", c.Name, c.ID)
	fmt.Printf("=================\n")

	for _, t := range c.View.Traits {
		fmt.Printf("\n%-12s %s\n", t.Name, t.Dice)
		for _, apt := range t.Aptitudes {
			if !apt.IsGroup() {
				fmt.Printf("  %-22s %s\n", apt.Name, apt.Dice)
				continue
			}
			fmt.Printf("  %s\n", apt.Name)
			for _, conc := range apt.Concentrations {
				fmt.Printf("    %-20s %s\n", conc.Name, conc.Dice)
			}
		}
	}

	fmt.Printf("\nWounds:\n")
	for _, loc := range combat.Locations() {
		fmt.Printf("  %-6s %s\n", loc, c.Wounds[loc])
	}
	if c.Dead {
		fmt.Printf("  DEAD\n")
	}
	fmt.Printf("Light armor: %d\n", c.LightArmor)

	if len(c.Active) > 0 {
		fmt.Printf("Running:\n")
		for _, a := range c.Active {
			fmt.Printf("  %s (%d round(s) left, input %d)\n", effectName(a.Ref), a.RoundsRemaining, a.Input)
		}
	}
	if len(c.Bonuses) > 0 {
		fmt.Printf("Bonuses: %s\n", strings.Join(c.Bonuses, ", "))
	}
}

func effectName(ref combat.EffectRef) string {
	return string(ref.Category) + "/" + ref.Name
}
