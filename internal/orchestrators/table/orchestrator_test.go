package table_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/benkolera/salty-deadlands/internal/character"
	"github.com/benkolera/salty-deadlands/internal/combat"
	"github.com/benkolera/salty-deadlands/internal/dice"
	dicemock "github.com/benkolera/salty-deadlands/internal/dice/mock"
	"github.com/benkolera/salty-deadlands/internal/errors"
	"github.com/benkolera/salty-deadlands/internal/orchestrators/table"
	"github.com/benkolera/salty-deadlands/internal/pkg/clock"
	"github.com/benkolera/salty-deadlands/internal/pkg/idgen"
	"github.com/benkolera/salty-deadlands/internal/repositories/rolls"
	"github.com/benkolera/salty-deadlands/internal/testutils"
	"github.com/benkolera/salty-deadlands/internal/testutils/builders"
	"github.com/benkolera/salty-deadlands/internal/testutils/mocks"
)

var (
	boltOfDoom = combat.EffectRef{Category: character.CategoryBlessings, Name: "Bolt o' Doom"}
	pistol     = character.Ref{Trait: character.Deftness, Aptitude: "Shootin", Concentration: "Pistol"}
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctx          context.Context
	roller       *dicemock.ScriptedRoller
	bus          events.EventBus
	rolledAt     time.Time
	orchestrator table.Service
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.roller = dicemock.NewScriptedRoller()
	s.bus = events.NewBus()
	s.rolledAt = time.Date(1876, time.August, 2, 16, 10, 0, 0, time.UTC)

	var err error
	s.orchestrator, err = table.NewOrchestrator(&table.Config{
		Roller:      s.roller,
		IDGenerator: idgen.NewSequential("roll"),
		Clock:       &clock.Fixed{At: s.rolledAt},
		EventBus:    s.bus,
		RollLog:     rolls.NewInMemory(),
	})
	s.Require().NoError(err)

	_, err = s.orchestrator.AddCharacter(s.ctx, &table.AddCharacterInput{
		Sheet: testutils.CreateTestGunslinger(),
	})
	s.Require().NoError(err)
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func intPtr(v int) *int {
	return &v
}

// record captures every event of eventType published on the bus
func (s *OrchestratorTestSuite) record(eventType string) *[]events.Event {
	var got []events.Event
	s.bus.SubscribeFunc(eventType, 100, func(_ context.Context, e events.Event) error {
		got = append(got, e)
		return nil
	})
	return &got
}

func (s *OrchestratorTestSuite) character() *table.CharacterState {
	out, err := s.orchestrator.GetCharacter(s.ctx, &table.GetCharacterInput{
		CharacterID: testutils.TestCharacterID,
	})
	s.Require().NoError(err)
	return out.Character
}

func (s *OrchestratorTestSuite) pistolDice() dice.DiceSet {
	out, err := s.orchestrator.DiceCode(s.ctx, &table.DiceCodeInput{
		CharacterID: testutils.TestCharacterID,
		Ref:         pistol,
	})
	s.Require().NoError(err)
	return out.Dice
}

func (s *OrchestratorTestSuite) TestNewOrchestrator_Validation() {
	_, err := table.NewOrchestrator(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = table.NewOrchestrator(&table.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "Roller")
	s.Contains(err.Error(), "EventBus")
	s.Contains(err.Error(), "RollLog")
}

func (s *OrchestratorTestSuite) TestAddCharacter() {
	added := s.record(table.EventCharacterAdded)

	out, err := s.orchestrator.AddCharacter(s.ctx, &table.AddCharacterInput{
		Sheet: builders.NewSheetBuilder().Build(),
	})
	s.Require().NoError(err)
	s.Equal("sheet-test-123", out.Character.ID)
	s.Equal("Test Cowpoke", out.Character.Name)
	s.Len(*added, 1)

	s.Run("rejects a duplicate", func() {
		_, err := s.orchestrator.AddCharacter(s.ctx, &table.AddCharacterInput{
			Sheet: testutils.CreateTestGunslinger(),
		})
		s.True(errors.IsAlreadyExists(err))
	})

	s.Run("rejects an invalid sheet", func() {
		_, err := s.orchestrator.AddCharacter(s.ctx, &table.AddCharacterInput{
			Sheet: builders.NewSheetBuilder().WithID("tiny").WithSize(0).Build(),
		})
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("requires a sheet", func() {
		_, err := s.orchestrator.AddCharacter(s.ctx, &table.AddCharacterInput{})
		s.True(errors.IsInvalidArgument(err))

		_, err = s.orchestrator.AddCharacter(s.ctx, nil)
		s.True(errors.IsInvalidArgument(err))
	})
}

func (s *OrchestratorTestSuite) TestGetCharacter() {
	c := s.character()

	s.Equal(testutils.TestCharacterName, c.Name)
	s.Require().NotEmpty(c.View.Traits)
	s.Equal(character.Deftness, c.View.Traits[0].Name)
	s.Equal(dice.New(4, dice.D10, 1), c.View.Traits[0].Dice, "Eagle Eyes adds to every Deftness roll")
	s.Equal([]string{"Eagle Eyes (Edge)"}, c.Bonuses)
	s.Equal(combat.LevelNone, c.WoundLevel)
	s.False(c.Dead)
	s.Zero(c.LightArmor)
	s.Empty(c.Active)
	s.Len(c.Wounds, len(combat.Locations()))

	_, err := s.orchestrator.GetCharacter(s.ctx, &table.GetCharacterInput{CharacterID: "nobody"})
	s.True(errors.IsNotFound(err))
	s.Equal("nobody", errors.GetMeta(err)["character_id"])

	_, err = s.orchestrator.GetCharacter(s.ctx, &table.GetCharacterInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestListAndRemoveCharacters() {
	_, err := s.orchestrator.AddCharacter(s.ctx, &table.AddCharacterInput{
		Sheet: builders.NewSheetBuilder().Build(),
	})
	s.Require().NoError(err)

	list, err := s.orchestrator.ListCharacters(s.ctx, &table.ListCharactersInput{})
	s.Require().NoError(err)
	s.Require().Len(list.Characters, 2)
	s.Equal(testutils.TestCharacterID, list.Characters[0].ID)
	s.Equal("sheet-test-123", list.Characters[1].ID)

	removed := s.record(table.EventCharacterRemoved)
	_, err = s.orchestrator.RemoveCharacter(s.ctx, &table.RemoveCharacterInput{CharacterID: testutils.TestCharacterID})
	s.Require().NoError(err)
	s.Len(*removed, 1)

	list, err = s.orchestrator.ListCharacters(s.ctx, &table.ListCharactersInput{})
	s.Require().NoError(err)
	s.Require().Len(list.Characters, 1)
	s.Equal("sheet-test-123", list.Characters[0].ID)

	_, err = s.orchestrator.RemoveCharacter(s.ctx, &table.RemoveCharacterInput{CharacterID: testutils.TestCharacterID})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestToggleEffect() {
	toggled := s.record(table.EventEffectToggled)

	out, err := s.orchestrator.ToggleEffect(s.ctx, &table.ToggleEffectInput{
		CharacterID: testutils.TestCharacterID,
		Category:    boltOfDoom.Category,
		Name:        boltOfDoom.Name,
		Input:       2,
	})
	s.Require().NoError(err)
	s.True(out.Active)
	s.Equal(2, out.RoundsRemaining)
	s.Equal([]table.ActiveEffect{{Ref: boltOfDoom, RoundsRemaining: 2, Input: 2}}, out.Character.Active)
	s.Equal([]string{"Eagle Eyes (Edge)", "Bolt o' Doom"}, out.Character.Bonuses)

	// +1 from Eagle Eyes, then two steps: d10 to d12 and +2 past the top
	s.Equal(dice.New(4, dice.D12, 2), s.pistolDice())

	s.Require().Len(*toggled, 1)
	active, ok := (*toggled)[0].Context().Get(table.ContextActive)
	s.True(ok)
	s.Equal(true, active)

	out, err = s.orchestrator.ToggleEffect(s.ctx, &table.ToggleEffectInput{
		CharacterID: testutils.TestCharacterID,
		Category:    boltOfDoom.Category,
		Name:        boltOfDoom.Name,
	})
	s.Require().NoError(err)
	s.False(out.Active)
	s.Empty(out.Character.Active)
	s.Equal(dice.New(4, dice.D10, 1), s.pistolDice())
}

func (s *OrchestratorTestSuite) TestToggleEffect_Errors() {
	_, err := s.orchestrator.ToggleEffect(s.ctx, &table.ToggleEffectInput{
		CharacterID: testutils.TestCharacterID,
		Category:    character.CategoryEdges,
		Name:        "Eagle Eyes",
	})
	s.True(errors.IsFailedPrecondition(err), "passive effects are always on")

	_, err = s.orchestrator.ToggleEffect(s.ctx, &table.ToggleEffectInput{
		CharacterID: testutils.TestCharacterID,
		Category:    character.CategoryBlessings,
		Name:        "Smite",
	})
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.ToggleEffect(s.ctx, &table.ToggleEffectInput{
		CharacterID: testutils.TestCharacterID,
		Category:    character.Category("Curses"),
		Name:        "Bolt o' Doom",
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestNextRound_ExpiresSpells() {
	expired := s.record(table.EventEffectExpired)

	_, err := s.orchestrator.ToggleEffect(s.ctx, &table.ToggleEffectInput{
		CharacterID: testutils.TestCharacterID,
		Category:    boltOfDoom.Category,
		Name:        boltOfDoom.Name,
		Input:       1,
	})
	s.Require().NoError(err)

	out, err := s.orchestrator.NextRound(s.ctx, &table.NextRoundInput{})
	s.Require().NoError(err)
	s.Equal(2, out.Turns.Round)
	s.Empty(out.Expired)
	s.Equal([]table.ActiveEffect{{Ref: boltOfDoom, RoundsRemaining: 1, Input: 1}}, s.character().Active)

	out, err = s.orchestrator.NextRound(s.ctx, &table.NextRoundInput{})
	s.Require().NoError(err)
	s.Equal(3, out.Turns.Round)
	s.Equal([]table.ExpiredEffect{{CharacterID: testutils.TestCharacterID, Ref: boltOfDoom}}, out.Expired)
	s.Empty(s.character().Active)
	s.Len(*expired, 1)
}

func (s *OrchestratorTestSuite) TestToggleCombat() {
	started := s.record(table.EventCombatStarted)
	ended := s.record(table.EventCombatEnded)

	out, err := s.orchestrator.ToggleCombat(s.ctx, &table.ToggleCombatInput{})
	s.Require().NoError(err)
	s.Equal(combat.Turns{InCombat: true, Round: 1}, out.Turns)
	s.False(out.Ended)

	_, err = s.orchestrator.ToggleEffect(s.ctx, &table.ToggleEffectInput{
		CharacterID: testutils.TestCharacterID,
		Category:    boltOfDoom.Category,
		Name:        boltOfDoom.Name,
		Input:       3,
	})
	s.Require().NoError(err)
	_, err = s.orchestrator.NextRound(s.ctx, &table.NextRoundInput{})
	s.Require().NoError(err)

	out, err = s.orchestrator.ToggleCombat(s.ctx, &table.ToggleCombatInput{})
	s.Require().NoError(err)
	s.Equal(combat.Turns{InCombat: false, Round: 1}, out.Turns)
	s.True(out.Ended)
	s.Empty(s.character().Active, "ending combat stops every spell")

	s.Len(*started, 1)
	s.Len(*ended, 1)
}

func (s *OrchestratorTestSuite) TestApplyDamage() {
	taken := s.record(table.EventDamageTaken)

	out, err := s.orchestrator.ApplyDamage(s.ctx, &table.ApplyDamageInput{
		CharacterID: testutils.TestCharacterID,
		Location:    combat.Torso,
		Damage:      13,
	})
	s.Require().NoError(err)
	s.False(out.Prevented)
	s.Equal(2, out.WoundsInflicted)
	s.Equal(combat.LevelHeavy, out.Character.Wounds[combat.Torso])
	s.Equal(combat.LevelHeavy, out.Character.WoundLevel)
	s.False(out.Character.Dead)

	// The wound modifier comes first and hits every roll
	s.Equal([]string{"Wound Modifier", "Eagle Eyes (Edge)"}, out.Character.Bonuses)
	s.Equal(dice.New(4, dice.D10, -1), out.Character.View.Traits[0].Dice)

	s.Require().Len(*taken, 1)
	wounds, ok := (*taken)[0].Context().Get(table.ContextWounds)
	s.True(ok)
	s.Equal(2, wounds)
}

func (s *OrchestratorTestSuite) TestApplyDamage_Death() {
	died := s.record(table.EventCharacterDied)

	out, err := s.orchestrator.ApplyDamage(s.ctx, &table.ApplyDamageInput{
		CharacterID: testutils.TestCharacterID,
		Location:    combat.Head,
		Damage:      30,
	})
	s.Require().NoError(err)
	s.Equal(5, out.WoundsInflicted)
	s.Equal(combat.LevelMaimed, out.Character.Wounds[combat.Head])
	s.True(out.Character.Dead)
	s.Len(*died, 1)

	_, err = s.orchestrator.ApplyDamage(s.ctx, &table.ApplyDamageInput{
		CharacterID: testutils.TestCharacterID,
		Location:    combat.Torso,
		Damage:      30,
	})
	s.Require().NoError(err)
	s.Len(*died, 1, "a character only dies once")
}

func (s *OrchestratorTestSuite) TestApplyDamage_BeforeDamageHandlers() {
	s.Run("cancelled", func() {
		id := s.bus.SubscribeFunc(table.EventBeforeDamage, 100, func(_ context.Context, e events.Event) error {
			e.Context().Set(table.ContextCancelled, true)
			return nil
		})
		defer func() { _ = s.bus.Unsubscribe(id) }()

		out, err := s.orchestrator.ApplyDamage(s.ctx, &table.ApplyDamageInput{
			CharacterID: testutils.TestCharacterID,
			Location:    combat.LeftArm,
			Damage:      20,
		})
		s.Require().NoError(err)
		s.True(out.Prevented)
		s.Zero(out.WoundsInflicted)
		s.Equal(combat.LevelNone, out.Character.Wounds[combat.LeftArm])
	})

	s.Run("cancelled false is ignored", func() {
		id := s.bus.SubscribeFunc(table.EventBeforeDamage, 100, func(_ context.Context, e events.Event) error {
			e.Context().Set(table.ContextCancelled, false)
			return nil
		})
		defer func() { _ = s.bus.Unsubscribe(id) }()

		out, err := s.orchestrator.ApplyDamage(s.ctx, &table.ApplyDamageInput{
			CharacterID: testutils.TestCharacterID,
			Location:    combat.RightArm,
			Damage:      6,
		})
		s.Require().NoError(err)
		s.False(out.Prevented)
		s.Equal(1, out.WoundsInflicted)
	})

	s.Run("reduced", func() {
		id := s.bus.SubscribeFunc(table.EventBeforeDamage, 100, func(_ context.Context, e events.Event) error {
			e.Context().Set(table.ContextDamage, 6)
			return nil
		})
		defer func() { _ = s.bus.Unsubscribe(id) }()

		out, err := s.orchestrator.ApplyDamage(s.ctx, &table.ApplyDamageInput{
			CharacterID: testutils.TestCharacterID,
			Location:    combat.LeftArm,
			Damage:      20,
		})
		s.Require().NoError(err)
		s.Equal(1, out.WoundsInflicted)
		s.Equal(combat.LevelLight, out.Character.Wounds[combat.LeftArm])
	})
}

func (s *OrchestratorTestSuite) TestApplyDamage_Validation() {
	_, err := s.orchestrator.ApplyDamage(s.ctx, &table.ApplyDamageInput{
		Location: combat.Location("tail"),
		Damage:   -1,
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	fields, ok := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Require().True(ok)
	s.Contains(fields, "character_id")
	s.Contains(fields, "location")
	s.Contains(fields, "damage")

	_, err = s.orchestrator.ApplyDamage(s.ctx, &table.ApplyDamageInput{
		CharacterID: "nobody",
		Location:    combat.Head,
		Damage:      1,
	})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestHeal() {
	_, err := s.orchestrator.ApplyDamage(s.ctx, &table.ApplyDamageInput{
		CharacterID: testutils.TestCharacterID,
		Location:    combat.RightLeg,
		Damage:      19,
	})
	s.Require().NoError(err)

	out, err := s.orchestrator.Heal(s.ctx, &table.HealInput{
		CharacterID: testutils.TestCharacterID,
		Location:    combat.RightLeg,
		Levels:      2,
	})
	s.Require().NoError(err)
	s.Equal(combat.LevelLight, out.Character.Wounds[combat.RightLeg])

	out, err = s.orchestrator.Heal(s.ctx, &table.HealInput{
		CharacterID: testutils.TestCharacterID,
		Location:    combat.RightLeg,
		Levels:      4,
	})
	s.Require().NoError(err)
	s.Equal(combat.LevelNone, out.Character.Wounds[combat.RightLeg])

	_, err = s.orchestrator.Heal(s.ctx, &table.HealInput{
		CharacterID: testutils.TestCharacterID,
		Location:    combat.RightLeg,
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestRollTrait() {
	rolled := s.record(table.EventTraitRolled)
	s.roller.Push(3, 7, 2, 5)

	out, err := s.orchestrator.RollTrait(s.ctx, &table.RollTraitInput{
		CharacterID: testutils.TestCharacterID,
		Trait:       character.Deftness,
		TN:          intPtr(5),
	})
	s.Require().NoError(err)

	record := out.Record
	s.Equal("roll_1", record.ID)
	s.Equal(testutils.TestCharacterID, record.CharacterID)
	s.Equal(dice.New(4, dice.D10, 1), record.Dice)
	s.Equal("/die 4d10+1!kt5s5", record.Command)
	s.Equal([]int{3, 7, 2, 5}, record.Results)
	s.Equal(dice.Value(8), record.Result)
	s.Equal(intPtr(5), record.TN)
	s.Equal(dice.Margin(3), *record.Outcome)
	s.Equal(dice.Margin(1), *record.Successes)
	s.Equal(s.rolledAt, record.RolledAt)
	s.Zero(s.roller.Remaining())

	s.Require().Len(*rolled, 1)
	id, ok := (*rolled)[0].Context().Get(table.ContextRollID)
	s.True(ok)
	s.Equal("roll_1", id)
}

func (s *OrchestratorTestSuite) TestRollTrait_Bust() {
	s.roller.Push(1, 1, 9, 1)

	out, err := s.orchestrator.RollTrait(s.ctx, &table.RollTraitInput{
		CharacterID: testutils.TestCharacterID,
		Trait:       character.Deftness,
		TN:          intPtr(5),
	})
	s.Require().NoError(err)
	s.True(out.Record.Result.Busted)
	s.Equal(dice.BustOutcome(), *out.Record.Outcome)
	s.Equal(dice.BustOutcome(), *out.Record.Successes)
}

func (s *OrchestratorTestSuite) TestRollTrait_Untrained() {
	s.roller.Push(6)

	out, err := s.orchestrator.RollTrait(s.ctx, &table.RollTraitInput{
		CharacterID: testutils.TestCharacterID,
		Trait:       character.Deftness,
		Untrained:   true,
	})
	s.Require().NoError(err)
	s.True(out.Record.Untrained)
	s.Equal(dice.New(1, dice.D10, -3), out.Record.Dice)
	s.Equal("/die 1d10-3!ks5", out.Record.Command)
	s.Equal(dice.Value(3), out.Record.Result)
	s.Nil(out.Record.TN)
	s.Nil(out.Record.Outcome)
}

func (s *OrchestratorTestSuite) TestRollTrait_Exploding() {
	s.roller.Push(10, 4, 2, 3, 1)

	out, err := s.orchestrator.RollTrait(s.ctx, &table.RollTraitInput{
		CharacterID: testutils.TestCharacterID,
		Trait:       character.Deftness,
	})
	s.Require().NoError(err)
	s.Equal([]int{14, 2, 3, 1}, out.Record.Results)
	s.Equal(dice.Value(15), out.Record.Result)
}

func (s *OrchestratorTestSuite) TestRollAptitude() {
	s.roller.Push(4, 9, 2, 6)

	out, err := s.orchestrator.RollAptitude(s.ctx, &table.RollAptitudeInput{
		CharacterID: testutils.TestCharacterID,
		Ref:         pistol,
		TN:          intPtr(7),
	})
	s.Require().NoError(err)
	s.Equal(pistol, out.Record.Ref)
	s.Equal("/die 4d10+1!kt7s5", out.Record.Command)
	s.Equal(dice.Value(10), out.Record.Result)
	s.Equal(dice.Margin(3), *out.Record.Outcome)

	s.Run("a concentration group is not rollable", func() {
		_, err := s.orchestrator.RollAptitude(s.ctx, &table.RollAptitudeInput{
			CharacterID: testutils.TestCharacterID,
			Ref:         character.Ref{Trait: character.Deftness, Aptitude: "Shootin"},
		})
		s.True(errors.IsFailedPrecondition(err))
	})

	s.Run("requires an aptitude", func() {
		_, err := s.orchestrator.RollAptitude(s.ctx, &table.RollAptitudeInput{
			CharacterID: testutils.TestCharacterID,
			Ref:         character.Ref{Trait: character.Deftness},
		})
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("unknown aptitude", func() {
		_, err := s.orchestrator.RollAptitude(s.ctx, &table.RollAptitudeInput{
			CharacterID: testutils.TestCharacterID,
			Ref:         character.Ref{Trait: character.Spirit, Aptitude: "Faith"},
		})
		s.True(errors.IsNotFound(err))
	})
}

func (s *OrchestratorTestSuite) TestRollOpposed() {
	opposed := s.record(table.EventOpposedRolled)

	_, err := s.orchestrator.AddCharacter(s.ctx, &table.AddCharacterInput{
		Sheet: builders.NewSheetBuilder().Build(),
	})
	s.Require().NoError(err)

	// Attacker 4d10+1 rolls 10 for a margin of 5. Defender 2d6 rolls 3.
	s.roller.Push(9, 2, 3, 4)
	s.roller.Push(2, 3)

	out, err := s.orchestrator.RollOpposed(s.ctx, &table.RollOpposedInput{
		Attacker: table.Contestant{CharacterID: testutils.TestCharacterID, Ref: character.Ref{Trait: character.Deftness}},
		Defender: table.Contestant{CharacterID: "sheet-test-123", Ref: character.Ref{Trait: character.Deftness}},
	})
	s.Require().NoError(err)
	s.Equal(dice.Margin(5), *out.Attacker.Outcome)
	s.Equal(dice.FailureOutcome(), *out.Defender.Outcome)
	s.Equal(dice.OpposedResult{Winner: dice.Attacker, Raises: 1}, out.Result)
	s.Equal("roll_1", out.Attacker.ID)
	s.Equal("roll_2", out.Defender.ID)

	s.Require().Len(*opposed, 1)
	winner, ok := (*opposed)[0].Context().Get(table.ContextWinner)
	s.True(ok)
	s.Equal(dice.Attacker.String(), winner)

	_, err = s.orchestrator.RollOpposed(s.ctx, &table.RollOpposedInput{
		Attacker: table.Contestant{CharacterID: testutils.TestCharacterID, Ref: character.Ref{Trait: character.Deftness}},
		Defender: table.Contestant{CharacterID: "nobody", Ref: character.Ref{Trait: character.Deftness}},
	})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestRollDamage() {
	// 2d8 steps up to 2d10; the 10 explodes
	s.roller.Push(3, 10, 4)

	out, err := s.orchestrator.RollDamage(s.ctx, &table.RollDamageInput{Code: "2d8", Steps: 1})
	s.Require().NoError(err)
	s.Equal(dice.New(2, dice.D10, 0), out.Record.Dice)
	s.Equal([]int{3, 14}, out.Record.Results)
	s.Equal(17, out.Record.Total)
	s.Equal(s.rolledAt, out.Record.RolledAt)

	_, err = s.orchestrator.RollDamage(s.ctx, &table.RollDamageInput{Code: "2d7"})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.RollDamage(s.ctx, &table.RollDamageInput{Code: "2d8", Steps: -1})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestDiceCode() {
	out, err := s.orchestrator.DiceCode(s.ctx, &table.DiceCodeInput{
		CharacterID: testutils.TestCharacterID,
		Ref:         pistol,
		TN:          intPtr(7),
	})
	s.Require().NoError(err)
	s.Equal(dice.New(4, dice.D10, 1), out.Dice)
	s.Equal("/die 4d10+1!kt7s5", out.Command)

	out, err = s.orchestrator.DiceCode(s.ctx, &table.DiceCodeInput{
		CharacterID: testutils.TestCharacterID,
		Ref:         character.Ref{Trait: character.Vigor},
		Untrained:   true,
	})
	s.Require().NoError(err)
	s.Equal("/die 1d6-4!ks5", out.Command)

	_, err = s.orchestrator.DiceCode(s.ctx, &table.DiceCodeInput{
		CharacterID: testutils.TestCharacterID,
		Ref:         pistol,
		Untrained:   true,
	})
	s.True(errors.IsInvalidArgument(err), "only bare traits roll untrained")
}

func (s *OrchestratorTestSuite) TestDiceCode_Damage() {
	out, err := s.orchestrator.DiceCode(s.ctx, &table.DiceCodeInput{
		CharacterID: testutils.TestCharacterID,
		Ref:         character.Ref{Trait: character.Strength},
		Damage:      true,
	})
	s.Require().NoError(err)
	s.Equal("/die "+out.Dice.String()+"!", out.Command)

	for name, input := range map[string]*table.DiceCodeInput{
		"aptitude":  {CharacterID: testutils.TestCharacterID, Ref: pistol, Damage: true},
		"untrained": {CharacterID: testutils.TestCharacterID, Ref: character.Ref{Trait: character.Strength}, Damage: true, Untrained: true},
		"tn":        {CharacterID: testutils.TestCharacterID, Ref: character.Ref{Trait: character.Strength}, Damage: true, TN: intPtr(5)},
	} {
		_, err := s.orchestrator.DiceCode(s.ctx, input)
		s.True(errors.IsInvalidArgument(err), name)
	}
}

func (s *OrchestratorTestSuite) TestListRolls() {
	_, err := s.orchestrator.AddCharacter(s.ctx, &table.AddCharacterInput{
		Sheet: builders.NewSheetBuilder().Build(),
	})
	s.Require().NoError(err)

	s.roller.Push(3, 7, 2, 5)
	_, err = s.orchestrator.RollTrait(s.ctx, &table.RollTraitInput{
		CharacterID: testutils.TestCharacterID,
		Trait:       character.Deftness,
		TN:          intPtr(5),
	})
	s.Require().NoError(err)

	s.roller.Push(4, 4)
	_, err = s.orchestrator.RollTrait(s.ctx, &table.RollTraitInput{
		CharacterID: "sheet-test-123",
		Trait:       character.Vigor,
	})
	s.Require().NoError(err)

	s.roller.Push(5, 3)
	_, err = s.orchestrator.RollDamage(s.ctx, &table.RollDamageInput{Code: "2d6"})
	s.Require().NoError(err)

	out, err := s.orchestrator.ListRolls(s.ctx, &table.ListRollsInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Rolls, 3)
	s.Equal(rolls.KindDamage, out.Rolls[0].Kind)
	s.Equal("8", out.Rolls[0].Result)
	s.Equal("Vigor", out.Rolls[1].Label)
	s.Equal("4", out.Rolls[1].Result)
	s.Equal(&rolls.Entry{
		ID:          "roll_1",
		CharacterID: testutils.TestCharacterID,
		Kind:        rolls.KindTrait,
		Label:       "Deftness",
		Dice:        dice.New(4, dice.D10, 1),
		Results:     []int{3, 7, 2, 5},
		Result:      "success(3)",
		RolledAt:    s.rolledAt,
	}, out.Rolls[2])

	out, err = s.orchestrator.ListRolls(s.ctx, &table.ListRollsInput{CharacterID: testutils.TestCharacterID})
	s.Require().NoError(err)
	s.Len(out.Rolls, 1)

	out, err = s.orchestrator.ListRolls(s.ctx, &table.ListRollsInput{Limit: 1})
	s.Require().NoError(err)
	s.Len(out.Rolls, 1)

	_, err = s.orchestrator.RemoveCharacter(s.ctx, &table.RemoveCharacterInput{CharacterID: testutils.TestCharacterID})
	s.Require().NoError(err)

	out, err = s.orchestrator.ListRolls(s.ctx, &table.ListRollsInput{})
	s.Require().NoError(err)
	s.Len(out.Rolls, 2, "removing a character drops their rolls")

	_, err = s.orchestrator.ListRolls(s.ctx, &table.ListRollsInput{Limit: -1})
	s.True(errors.IsInvalidArgument(err))
}

func TestRollTrait_RollerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRoller := dicemock.NewMockRoller(ctrl)

	orch, err := table.NewOrchestrator(&table.Config{
		Roller:      mockRoller,
		IDGenerator: idgen.NewSequential("roll"),
		Clock:       clock.New(),
		EventBus:    events.NewBus(),
		RollLog:     rolls.NewInMemory(),
	})
	require.NoError(t, err)

	_, err = orch.AddCharacter(context.Background(), &table.AddCharacterInput{
		Sheet: testutils.CreateTestGunslinger(),
	})
	require.NoError(t, err)

	mocks.ExpectFaces(mockRoller, dice.D10, 4)
	mocks.ExpectRollError(mockRoller, dice.D10, stderrors.New("dice fell off the table"))

	_, err = orch.RollTrait(context.Background(), &table.RollTraitInput{
		CharacterID: testutils.TestCharacterID,
		Trait:       character.Deftness,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dice fell off the table")
	assert.Contains(t, err.Error(), "failed to roll Deftness")
}
