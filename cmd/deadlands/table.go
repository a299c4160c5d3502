package main

import (
	"context"
	"strconv"
	"strings"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"

	"github.com/benkolera/salty-deadlands/internal/character"
	"github.com/benkolera/salty-deadlands/internal/combat"
	"github.com/benkolera/salty-deadlands/internal/dice"
	"github.com/benkolera/salty-deadlands/internal/errors"
	"github.com/benkolera/salty-deadlands/internal/orchestrators/table"
	"github.com/benkolera/salty-deadlands/internal/pkg/clock"
	"github.com/benkolera/salty-deadlands/internal/pkg/idgen"
	"github.com/benkolera/salty-deadlands/internal/repositories/rolls"
)

const defaultSheet = "gabriela"

var (
	// Sheet source flags
	sheetFile    string
	sheetBuiltin string

	// Table state flags
	hits  []string
	casts []string
)

// addSheetFlags registers the flags that pick a sheet and set up its state
func addSheetFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sheetFile, "file", "", "Path to a YAML character sheet")
	cmd.Flags().StringVar(&sheetBuiltin, "builtin", defaultSheet,
		"Builtin sheet ("+strings.Join(character.BuiltinNames(), ", ")+")")
	cmd.Flags().StringArrayVar(&hits, "hit", nil, "Damage taken before the command, as LOCATION=DAMAGE (repeatable)")
	cmd.Flags().StringArrayVar(&casts, "cast", nil, "Spell running during the command, as CATEGORY/NAME=INPUT (repeatable)")
	cmd.MarkFlagsMutuallyExclusive("file", "builtin")
}

// roller returns seeded dice when --seed was given
func roller(cmd *cobra.Command) dice.Roller {
	if cmd.Flags().Changed("seed") {
		return dice.NewSeededRoller(seed)
	}
	return toolkitdice.DefaultRoller
}

func loadSheet() (*character.Sheet, error) {
	if sheetFile != "" {
		return character.Load(sheetFile)
	}
	return character.Builtin(sheetBuiltin)
}

// seatCharacter creates a table with the selected sheet seated and every
// --hit and --cast applied
func seatCharacter(ctx context.Context, cmd *cobra.Command) (table.Service, *character.Sheet, error) {
	sheet, err := loadSheet()
	if err != nil {
		return nil, nil, err
	}

	svc, err := table.NewOrchestrator(&table.Config{
		Roller:      roller(cmd),
		IDGenerator: idgen.NewUUID("roll"),
		Clock:       clock.New(),
		EventBus:    events.NewBus(),
		RollLog:     rolls.NewInMemory(),
	})
	if err != nil {
		return nil, nil, err
	}

	if _, err := svc.AddCharacter(ctx, &table.AddCharacterInput{Sheet: sheet}); err != nil {
		return nil, nil, err
	}

	for _, cast := range casts {
		input, err := parseCast(sheet.ID, cast)
		if err != nil {
			return nil, nil, err
		}
		if _, err := svc.ToggleEffect(ctx, input); err != nil {
			return nil, nil, errors.Wrapf(err, "failed to cast %s", cast)
		}
	}

	for _, hit := range hits {
		input, err := parseHit(sheet.ID, hit)
		if err != nil {
			return nil, nil, err
		}
		if _, err := svc.ApplyDamage(ctx, input); err != nil {
			return nil, nil, errors.Wrapf(err, "failed to apply hit %s", hit)
		}
	}

	return svc, sheet, nil
}

// parseHit reads LOCATION=DAMAGE
func parseHit(characterID, s string) (*table.ApplyDamageInput, error) {
	loc, amount, ok := strings.Cut(s, "=")
	if !ok {
		return nil, errors.InvalidArgumentf("invalid hit %q (expected LOCATION=DAMAGE)", s)
	}

	location, err := combat.ParseLocation(strings.TrimSpace(loc))
	if err != nil {
		return nil, err
	}
	damage, err := strconv.Atoi(strings.TrimSpace(amount))
	if err != nil {
		return nil, errors.InvalidArgumentf("invalid damage in hit %q", s)
	}

	return &table.ApplyDamageInput{
		CharacterID: characterID,
		Location:    location,
		Damage:      damage,
	}, nil
}

// parseCast reads CATEGORY/NAME=INPUT. The input defaults to 0.
func parseCast(characterID, s string) (*table.ToggleEffectInput, error) {
	ref, value, hasInput := strings.Cut(s, "=")
	category, name, ok := strings.Cut(ref, "/")
	if !ok || name == "" {
		return nil, errors.InvalidArgumentf("invalid cast %q (expected CATEGORY/NAME=INPUT)", s)
	}

	input := 0
	if hasInput {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, errors.InvalidArgumentf("invalid input in cast %q", s)
		}
		input = n
	}

	return &table.ToggleEffectInput{
		CharacterID: characterID,
		Category:    character.Category(strings.ToLower(strings.TrimSpace(category))),
		Name:        strings.TrimSpace(name),
		Input:       input,
	}, nil
}

// parseRef reads TRAIT [APTITUDE [CONCENTRATION]]
func parseRef(args []string) character.Ref {
	var ref character.Ref
	ref.Trait = args[0]
	if len(args) > 1 {
		ref.Aptitude = args[1]
	}
	if len(args) > 2 {
		ref.Concentration = args[2]
	}
	return ref
}

// tnFlag returns the --tn value when it was given
func tnFlag(cmd *cobra.Command, tn int) *int {
	if !cmd.Flags().Changed("tn") {
		return nil
	}
	return &tn
}
