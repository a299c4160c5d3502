package table

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/benkolera/salty-deadlands/internal/character"
	"github.com/benkolera/salty-deadlands/internal/dice"
	"github.com/benkolera/salty-deadlands/internal/errors"
	"github.com/benkolera/salty-deadlands/internal/repositories/rolls"
)

// dieCommand prefixes dice codes for the external chat roller
const dieCommand = "/die "

// RollTrait rolls a bare trait, optionally against a target number
func (o *orchestrator) RollTrait(ctx context.Context, input *RollTraitInput) (*RollOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("character_id", input.CharacterID, vb)
	errors.ValidateRequired("trait", input.Trait, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	ref := character.Ref{Trait: input.Trait}
	sheet, ds, err := o.diceFor(input.CharacterID, ref, input.Untrained)
	if err != nil {
		return nil, err
	}

	record, err := o.rollRecord(ctx, sheet, ref, input.Untrained, ds, input.TN)
	if err != nil {
		return nil, err
	}

	return &RollOutput{Record: record}, nil
}

// RollAptitude rolls an aptitude or concentration
func (o *orchestrator) RollAptitude(ctx context.Context, input *RollAptitudeInput) (*RollOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("character_id", input.CharacterID, vb)
	errors.ValidateRequired("ref.trait", input.Ref.Trait, vb)
	errors.ValidateRequired("ref.aptitude", input.Ref.Aptitude, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	sheet, ds, err := o.diceFor(input.CharacterID, input.Ref, false)
	if err != nil {
		return nil, err
	}

	record, err := o.rollRecord(ctx, sheet, input.Ref, false, ds, input.TN)
	if err != nil {
		return nil, err
	}

	return &RollOutput{Record: record}, nil
}

// RollOpposed rolls both contestants against the baseline target number.
// The attacker rolls first.
func (o *orchestrator) RollOpposed(ctx context.Context, input *RollOpposedInput) (*RollOpposedOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("attacker.character_id", input.Attacker.CharacterID, vb)
	errors.ValidateRequired("attacker.ref.trait", input.Attacker.Ref.Trait, vb)
	errors.ValidateRequired("defender.character_id", input.Defender.CharacterID, vb)
	errors.ValidateRequired("defender.ref.trait", input.Defender.Ref.Trait, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	atkSheet, atkDice, err := o.diceFor(input.Attacker.CharacterID, input.Attacker.Ref, false)
	if err != nil {
		return nil, errors.Wrap(err, "attacker")
	}
	defSheet, defDice, err := o.diceFor(input.Defender.CharacterID, input.Defender.Ref, false)
	if err != nil {
		return nil, errors.Wrap(err, "defender")
	}

	tn := dice.BaselineTN
	attacker, err := o.roll(atkSheet, input.Attacker.Ref, false, atkDice, &tn)
	if err != nil {
		return nil, err
	}
	defender, err := o.roll(defSheet, input.Defender.Ref, false, defDice, &tn)
	if err != nil {
		return nil, err
	}

	result := dice.Opposed(*attacker.Outcome, *defender.Outcome)

	for _, record := range []*RollRecord{attacker, defender} {
		if err := o.logRoll(ctx, rolls.KindOpposed, record); err != nil {
			return nil, err
		}
	}

	slog.Info("Opposed roll resolved",
		"attacker_id", atkSheet.ID,
		"attacker_roll", input.Attacker.Ref.String(),
		"attacker_result", attacker.Result.String(),
		"defender_id", defSheet.ID,
		"defender_roll", input.Defender.Ref.String(),
		"defender_result", defender.Result.String(),
		"winner", result.Winner.String(),
		"raises", result.Raises,
	)

	o.notify(ctx, EventOpposedRolled, atkSheet, defSheet, map[string]any{
		ContextWinner: result.Winner.String(),
		ContextRaises: result.Raises,
	})

	return &RollOpposedOutput{
		Attacker: attacker,
		Defender: defender,
		Result:   result,
	}, nil
}

// RollDamage rolls a damage dice code. Every die explodes and is summed.
func (o *orchestrator) RollDamage(ctx context.Context, input *RollDamageInput) (*RollDamageOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Code == "" {
		return nil, errors.InvalidArgument("code is required")
	}
	if input.Steps < 0 {
		return nil, errors.InvalidArgument("steps must not be negative")
	}

	ds, _, err := dice.ParseCode(input.Code)
	if err != nil {
		return nil, err
	}
	ds = dice.StepDamage(ds, input.Steps)

	total, results, err := dice.RollDamage(o.roller, ds)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll damage %s", ds)
	}

	record := &DamageRecord{
		ID:       o.idGen.Generate(),
		Dice:     ds,
		Results:  results,
		Total:    total,
		RolledAt: o.clock.Now(),
	}

	_, err = o.rollLog.Append(ctx, &rolls.AppendInput{Entry: &rolls.Entry{
		ID:       record.ID,
		Kind:     rolls.KindDamage,
		Label:    "damage",
		Dice:     ds,
		Results:  results,
		Result:   strconv.Itoa(total),
		RolledAt: record.RolledAt,
	}})
	if err != nil {
		return nil, errors.Wrap(err, "failed to log roll")
	}

	slog.Debug("Damage rolled",
		"roll_id", record.ID,
		"dice", ds.String(),
		"results", results,
		"total", total,
	)

	o.notify(ctx, EventDamageRolled, tableEntity{}, nil, map[string]any{
		ContextRollID:    record.ID,
		ContextCode:      ds.Code(ptr(dice.SumAll())),
		ContextRollTotal: total,
	})

	return &RollDamageOutput{Record: record}, nil
}

// DiceCode returns the external roller command for a roll
func (o *orchestrator) DiceCode(_ context.Context, input *DiceCodeInput) (*DiceCodeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("character_id", input.CharacterID, vb)
	errors.ValidateRequired("ref.trait", input.Ref.Trait, vb)
	if input.Damage {
		if !input.Ref.IsTrait() {
			vb.InvalidField("damage", "only bare traits have a damage code")
		}
		if input.Untrained {
			vb.InvalidField("damage", "damage cannot be rolled untrained")
		}
		if input.TN != nil {
			vb.InvalidField("tn", "damage is not rolled against a target number")
		}
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	_, ds, err := o.diceFor(input.CharacterID, input.Ref, input.Untrained)
	if err != nil {
		return nil, err
	}

	if input.Damage {
		return &DiceCodeOutput{Dice: ds, Command: dieCommand + ds.Code(ptr(dice.SumAll()))}, nil
	}
	return &DiceCodeOutput{Dice: ds, Command: command(ds, input.TN)}, nil
}

// ListRolls returns the roll log, newest first
func (o *orchestrator) ListRolls(ctx context.Context, input *ListRollsInput) (*ListRollsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Limit < 0 {
		return nil, errors.InvalidArgument("limit must not be negative")
	}

	out, err := o.rollLog.List(ctx, &rolls.ListInput{
		CharacterID: input.CharacterID,
		Limit:       input.Limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list rolls")
	}

	return &ListRollsOutput{Rolls: out.Entries}, nil
}

// diceFor derives the dice of a roll from the character's current state.
// Only bare traits may be rolled untrained.
func (o *orchestrator) diceFor(characterID string, ref character.Ref, untrained bool) (*character.Sheet, dice.DiceSet, error) {
	if untrained && !ref.IsTrait() {
		return nil, dice.DiceSet{}, errors.InvalidArgumentf("%s cannot be rolled untrained", ref)
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	state, err := o.lookup(characterID)
	if err != nil {
		return nil, dice.DiceSet{}, err
	}

	ds, err := character.DiceFor(state.sheet, ref, state.bonuses())
	if err != nil {
		return nil, dice.DiceSet{}, err
	}
	if untrained {
		ds = character.Untrained(ds)
	}

	return state.sheet, ds, nil
}

// rollRecord rolls and publishes a trait roll
func (o *orchestrator) rollRecord(ctx context.Context, sheet *character.Sheet, ref character.Ref, untrained bool, ds dice.DiceSet, tn *int) (*RollRecord, error) {
	record, err := o.roll(sheet, ref, untrained, ds, tn)
	if err != nil {
		return nil, err
	}
	if err := o.logRoll(ctx, rolls.KindTrait, record); err != nil {
		return nil, err
	}

	data := map[string]any{
		ContextRollID: record.ID,
		ContextCode:   ds.String(),
		ContextResult: record.Result.String(),
	}
	if record.Outcome != nil {
		data[ContextOutcome] = record.Outcome.String()
	}
	o.notify(ctx, EventTraitRolled, sheet, sheet, data)

	return record, nil
}

// logRoll appends a trait roll to the roll log
func (o *orchestrator) logRoll(ctx context.Context, kind rolls.Kind, record *RollRecord) error {
	result := record.Result.String()
	if record.Outcome != nil {
		result = record.Outcome.String()
	}

	_, err := o.rollLog.Append(ctx, &rolls.AppendInput{Entry: &rolls.Entry{
		ID:          record.ID,
		CharacterID: record.CharacterID,
		Kind:        kind,
		Label:       record.Ref.String(),
		Dice:        record.Dice,
		Results:     record.Results,
		Result:      result,
		RolledAt:    record.RolledAt,
	}})
	if err != nil {
		return errors.Wrap(err, "failed to log roll")
	}
	return nil
}

// roll rolls ds once and resolves it against tn when one is given
func (o *orchestrator) roll(sheet *character.Sheet, ref character.Ref, untrained bool, ds dice.DiceSet, tn *int) (*RollRecord, error) {
	result, results, err := dice.RollTraitDetailed(o.roller, ds)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll %s", ref)
	}

	record := &RollRecord{
		ID:          o.idGen.Generate(),
		CharacterID: sheet.ID,
		Ref:         ref,
		Untrained:   untrained,
		Dice:        ds,
		Command:     command(ds, tn),
		Results:     results,
		Result:      result,
		RolledAt:    o.clock.Now(),
	}
	if tn != nil {
		target := *tn
		outcome := dice.AboveTN(result, target)
		successes := dice.SuccessesVsTN(result, target)
		record.TN = &target
		record.Outcome = &outcome
		record.Successes = &successes
	}

	slog.Debug("Trait rolled",
		"roll_id", record.ID,
		"character_id", sheet.ID,
		"roll", ref.String(),
		"dice", ds.String(),
		"results", results,
		"result", result.String(),
	)

	return record, nil
}

// command is the chat command for an external roller: keep the highest
// exploded die and count raises, against tn when one is given
func command(ds dice.DiceSet, tn *int) string {
	exploding := dice.KeepHighest().WithRaises()
	if tn != nil {
		exploding = dice.KeepHighest().AgainstTN(*tn).WithRaises()
	}
	return dieCommand + ds.Code(&exploding)
}

func ptr[T any](v T) *T {
	return &v
}
