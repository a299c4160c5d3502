// Package table implements the table orchestrator: the characters seated at
// a game, their wounds and running spells, combat rounds, and every roll
// made against them
package table

//go:generate mockgen -destination=mock/mock_service.go -package=tablemock github.com/benkolera/salty-deadlands/internal/orchestrators/table Service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/benkolera/salty-deadlands/internal/bonus"
	"github.com/benkolera/salty-deadlands/internal/character"
	"github.com/benkolera/salty-deadlands/internal/combat"
	"github.com/benkolera/salty-deadlands/internal/dice"
	"github.com/benkolera/salty-deadlands/internal/errors"
	"github.com/benkolera/salty-deadlands/internal/pkg/clock"
	"github.com/benkolera/salty-deadlands/internal/pkg/idgen"
	"github.com/benkolera/salty-deadlands/internal/repositories/rolls"
)

// Service defines the interface for table operations
type Service interface {
	// AddCharacter seats a validated sheet at the table
	AddCharacter(ctx context.Context, input *AddCharacterInput) (*AddCharacterOutput, error)

	// GetCharacter returns the effective state of a character
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)

	// ListCharacters returns every seated character
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)

	// RemoveCharacter removes a character from the table
	RemoveCharacter(ctx context.Context, input *RemoveCharacterInput) (*RemoveCharacterOutput, error)

	// ToggleCombat starts combat, or ends it and stops every running spell
	ToggleCombat(ctx context.Context, input *ToggleCombatInput) (*ToggleCombatOutput, error)

	// NextRound advances the round and counts down every running spell
	NextRound(ctx context.Context, input *NextRoundInput) (*NextRoundOutput, error)

	// ToggleEffect casts or stops a spell on a character
	ToggleEffect(ctx context.Context, input *ToggleEffectInput) (*ToggleEffectOutput, error)

	// ApplyDamage wounds a character at a hit location
	ApplyDamage(ctx context.Context, input *ApplyDamageInput) (*ApplyDamageOutput, error)

	// Heal removes wound levels at a hit location
	Heal(ctx context.Context, input *HealInput) (*HealOutput, error)

	// RollTrait rolls a bare trait, optionally against a target number
	RollTrait(ctx context.Context, input *RollTraitInput) (*RollOutput, error)

	// RollAptitude rolls an aptitude or concentration
	RollAptitude(ctx context.Context, input *RollAptitudeInput) (*RollOutput, error)

	// RollOpposed rolls two characters against each other
	RollOpposed(ctx context.Context, input *RollOpposedInput) (*RollOpposedOutput, error)

	// RollDamage rolls a damage dice code
	RollDamage(ctx context.Context, input *RollDamageInput) (*RollDamageOutput, error)

	// DiceCode returns the external roller command for a roll
	DiceCode(ctx context.Context, input *DiceCodeInput) (*DiceCodeOutput, error)

	// ListRolls returns the roll log, newest first
	ListRolls(ctx context.Context, input *ListRollsInput) (*ListRollsOutput, error)
}

// Config holds the dependencies for the table orchestrator
type Config struct {
	Roller      dice.Roller
	IDGenerator idgen.Generator
	Clock       clock.Clock
	EventBus    events.EventBus
	RollLog     rolls.Repository
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.RollLog == nil {
		vb.RequiredField("RollLog")
	}

	return vb.Build()
}

type orchestrator struct {
	roller   dice.Roller
	idGen    idgen.Generator
	clock    clock.Clock
	eventBus events.EventBus
	rollLog  rolls.Repository

	mu         sync.RWMutex
	turns      combat.Turns
	characters map[string]*characterState
	// order holds character IDs in the order they were seated
	order []string
}

// characterState is everything that changes about a character during play.
// Sheets are never modified once seated.
type characterState struct {
	sheet       *character.Sheet
	wounds      combat.Wounds
	activations combat.Activations
}

func (c *characterState) bonuses() []bonus.Bonus {
	return combat.Bonuses(c.sheet, c.wounds, c.activations)
}

// tableEntity is the source of events that concern the whole table
type tableEntity struct{}

func (tableEntity) GetID() string   { return "table" }
func (tableEntity) GetType() string { return "table" }

// NewOrchestrator creates a new table orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		roller:     cfg.Roller,
		idGen:      cfg.IDGenerator,
		clock:      cfg.Clock,
		eventBus:   cfg.EventBus,
		rollLog:    cfg.RollLog,
		turns:      combat.NewTurns(),
		characters: make(map[string]*characterState),
	}, nil
}

// AddCharacter seats a validated sheet at the table
func (o *orchestrator) AddCharacter(ctx context.Context, input *AddCharacterInput) (*AddCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Sheet == nil {
		return nil, errors.InvalidArgument("sheet is required")
	}
	if err := input.Sheet.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid sheet")
	}

	sheet := input.Sheet
	state := &characterState{
		sheet:       sheet,
		activations: combat.Activations{},
	}

	o.mu.Lock()
	if _, exists := o.characters[sheet.ID]; exists {
		o.mu.Unlock()
		return nil, errors.AlreadyExistsf("character %s is already at the table", sheet.ID)
	}
	o.characters[sheet.ID] = state
	o.order = append(o.order, sheet.ID)
	snapshot := o.snapshot(state)
	o.mu.Unlock()

	slog.Info("Character added to table",
		"character_id", sheet.ID,
		"character_name", sheet.Name,
	)

	o.notify(ctx, EventCharacterAdded, tableEntity{}, sheet, nil)

	return &AddCharacterOutput{Character: snapshot}, nil
}

// GetCharacter returns the effective state of a character
func (o *orchestrator) GetCharacter(_ context.Context, input *GetCharacterInput) (*GetCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	state, err := o.lookup(input.CharacterID)
	if err != nil {
		return nil, err
	}

	return &GetCharacterOutput{Character: o.snapshot(state)}, nil
}

// ListCharacters returns every seated character in seating order
func (o *orchestrator) ListCharacters(_ context.Context, input *ListCharactersInput) (*ListCharactersOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	characters := make([]*CharacterState, 0, len(o.order))
	for _, id := range o.order {
		characters = append(characters, o.snapshot(o.characters[id]))
	}

	return &ListCharactersOutput{Characters: characters}, nil
}

// RemoveCharacter removes a character from the table
func (o *orchestrator) RemoveCharacter(ctx context.Context, input *RemoveCharacterInput) (*RemoveCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	o.mu.Lock()
	state, err := o.lookup(input.CharacterID)
	if err != nil {
		o.mu.Unlock()
		return nil, err
	}
	delete(o.characters, input.CharacterID)
	for i, id := range o.order {
		if id == input.CharacterID {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
	o.mu.Unlock()

	cleared, err := o.rollLog.Clear(ctx, &rolls.ClearInput{CharacterID: input.CharacterID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to clear roll log")
	}

	slog.Info("Character removed from table",
		"character_id", input.CharacterID,
		"rolls_cleared", cleared.Removed,
	)

	o.notify(ctx, EventCharacterRemoved, tableEntity{}, state.sheet, nil)

	return &RemoveCharacterOutput{}, nil
}

// ToggleCombat starts combat, or ends it and stops every running spell
func (o *orchestrator) ToggleCombat(ctx context.Context, input *ToggleCombatInput) (*ToggleCombatOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	turns, ended := o.turns.ToggleCombat()
	o.turns = turns
	if ended {
		for _, state := range o.characters {
			state.activations = state.activations.Reset()
		}
	}
	o.mu.Unlock()

	eventType := EventCombatStarted
	if ended {
		eventType = EventCombatEnded
	}

	slog.Info("Combat toggled",
		"in_combat", turns.InCombat,
		"round", turns.Round,
	)

	o.notify(ctx, eventType, tableEntity{}, nil, map[string]any{ContextRound: turns.Round})

	return &ToggleCombatOutput{Turns: turns, Ended: ended}, nil
}

// NextRound advances the round and counts down every running spell
func (o *orchestrator) NextRound(ctx context.Context, input *NextRoundInput) (*NextRoundOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var expired []ExpiredEffect
	expiredBy := make(map[string]*character.Sheet)

	o.mu.Lock()
	o.turns = o.turns.NextRound()
	turns := o.turns
	for _, id := range o.order {
		state := o.characters[id]
		next := state.activations.Tick()
		for _, ref := range effectRefs(state.sheet) {
			if _, was := state.activations[ref]; !was {
				continue
			}
			if _, still := next[ref]; !still {
				expired = append(expired, ExpiredEffect{CharacterID: id, Ref: ref})
				expiredBy[id] = state.sheet
			}
		}
		state.activations = next
	}
	o.mu.Unlock()

	slog.Info("Round advanced",
		"round", turns.Round,
		"expired_count", len(expired),
	)

	o.notify(ctx, EventRoundStarted, tableEntity{}, nil, map[string]any{ContextRound: turns.Round})
	for _, e := range expired {
		o.notify(ctx, EventEffectExpired, expiredBy[e.CharacterID], expiredBy[e.CharacterID], map[string]any{
			ContextCategory: string(e.Ref.Category),
			ContextEffect:   e.Ref.Name,
		})
	}

	return &NextRoundOutput{Turns: turns, Expired: expired}, nil
}

// ToggleEffect casts or stops a spell on a character
func (o *orchestrator) ToggleEffect(ctx context.Context, input *ToggleEffectInput) (*ToggleEffectOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	o.mu.Lock()
	state, err := o.lookup(input.CharacterID)
	if err != nil {
		o.mu.Unlock()
		return nil, err
	}
	effect, err := state.sheet.Effect(input.Category, input.Name)
	if err != nil {
		o.mu.Unlock()
		return nil, err
	}
	if _, ok := effect.(character.Spell); !ok {
		o.mu.Unlock()
		return nil, errors.FailedPreconditionf("%s %s is not a spell", input.Category, input.Name).
			WithMeta("category", string(input.Category)).
			WithMeta("effect", input.Name)
	}

	ref := combat.EffectRef{Category: input.Category, Name: input.Name}
	state.activations = state.activations.Toggle(ref, effect, input.Input)
	activation := state.activations[ref]
	snapshot := o.snapshot(state)
	o.mu.Unlock()

	slog.Info("Effect toggled",
		"character_id", input.CharacterID,
		"category", input.Category,
		"effect", input.Name,
		"active", activation.Active(),
		"rounds_remaining", activation.RoundsRemaining,
	)

	o.notify(ctx, EventEffectToggled, state.sheet, state.sheet, map[string]any{
		ContextCategory: string(input.Category),
		ContextEffect:   input.Name,
		ContextActive:   activation.Active(),
	})

	return &ToggleEffectOutput{
		Active:          activation.Active(),
		RoundsRemaining: activation.RoundsRemaining,
		Character:       snapshot,
	}, nil
}

// ApplyDamage wounds a character at a hit location. Handlers of
// EventBeforeDamage may cancel the hit or change its damage.
func (o *orchestrator) ApplyDamage(ctx context.Context, input *ApplyDamageInput) (*ApplyDamageOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("character_id", input.CharacterID, vb)
	if !input.Location.Valid() {
		vb.InvalidField("location", "unknown hit location")
	}
	errors.ValidateMin("damage", input.Damage, 0, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	o.mu.RLock()
	state, err := o.lookup(input.CharacterID)
	o.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	before := newEvent(EventBeforeDamage, tableEntity{}, state.sheet, map[string]any{
		ContextLocation: string(input.Location),
		ContextDamage:   input.Damage,
	})
	if err := o.eventBus.Publish(ctx, before); err != nil {
		slog.Warn("Event handler failed",
			"event_type", EventBeforeDamage,
			"error", err,
		)
	}
	if cancelled(before) {
		slog.Info("Damage prevented",
			"character_id", input.CharacterID,
			"location", input.Location,
			"damage", input.Damage,
		)
		o.mu.RLock()
		snapshot := o.snapshot(state)
		o.mu.RUnlock()
		return &ApplyDamageOutput{Prevented: true, Character: snapshot}, nil
	}

	damage := input.Damage
	if v, ok := before.Context().Get(ContextDamage); ok {
		if n, ok := v.(int); ok {
			damage = max(n, 0)
		}
	}

	o.mu.Lock()
	state, err = o.lookup(input.CharacterID)
	if err != nil {
		o.mu.Unlock()
		return nil, err
	}
	wasDead := state.wounds.Dead()
	lightArmor := combat.LightArmor(state.sheet, state.bonuses())
	wounds, inflicted := state.wounds.Apply(input.Location, damage, lightArmor, state.sheet.Size)
	state.wounds = wounds
	snapshot := o.snapshot(state)
	o.mu.Unlock()

	slog.Info("Damage applied",
		"character_id", input.CharacterID,
		"location", input.Location,
		"damage", damage,
		"light_armor", lightArmor,
		"wounds_inflicted", inflicted,
		"wound_level", wounds.Level(input.Location),
	)

	o.notify(ctx, EventDamageTaken, tableEntity{}, state.sheet, map[string]any{
		ContextLocation: string(input.Location),
		ContextDamage:   damage,
		ContextWounds:   inflicted,
		ContextLevel:    int(wounds.Level(input.Location)),
	})
	if !wasDead && wounds.Dead() {
		slog.Info("Character died", "character_id", input.CharacterID)
		o.notify(ctx, EventCharacterDied, tableEntity{}, state.sheet, map[string]any{
			ContextLocation: string(input.Location),
		})
	}

	return &ApplyDamageOutput{WoundsInflicted: inflicted, Character: snapshot}, nil
}

// Heal removes wound levels at a hit location
func (o *orchestrator) Heal(_ context.Context, input *HealInput) (*HealOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("character_id", input.CharacterID, vb)
	if !input.Location.Valid() {
		vb.InvalidField("location", "unknown hit location")
	}
	errors.ValidateRange("levels", input.Levels, 1, int(combat.LevelMaimed), vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	o.mu.Lock()
	state, err := o.lookup(input.CharacterID)
	if err != nil {
		o.mu.Unlock()
		return nil, err
	}
	state.wounds = state.wounds.Heal(input.Location, input.Levels)
	snapshot := o.snapshot(state)
	o.mu.Unlock()

	slog.Info("Wounds healed",
		"character_id", input.CharacterID,
		"location", input.Location,
		"levels", input.Levels,
	)

	return &HealOutput{Character: snapshot}, nil
}

// lookup finds a seated character. Callers hold the lock.
func (o *orchestrator) lookup(characterID string) (*characterState, error) {
	state, ok := o.characters[characterID]
	if !ok {
		return nil, errors.NotFoundf("character %s is not at the table", characterID).
			WithMeta("character_id", characterID)
	}
	return state, nil
}

// snapshot derives the public view of a character. Callers hold the lock.
func (o *orchestrator) snapshot(state *characterState) *CharacterState {
	bonuses := state.bonuses()

	var active []ActiveEffect
	for _, ref := range effectRefs(state.sheet) {
		if a, ok := state.activations[ref]; ok && a.Active() {
			active = append(active, ActiveEffect{
				Ref:             ref,
				RoundsRemaining: a.RoundsRemaining,
				Input:           a.Input,
			})
		}
	}

	return &CharacterState{
		ID:         state.sheet.ID,
		Name:       state.sheet.Name,
		View:       character.Effective(state.sheet, bonuses),
		Wounds:     state.wounds.ByLocation(),
		WoundLevel: state.wounds.Max(),
		Dead:       state.wounds.Dead(),
		LightArmor: combat.LightArmor(state.sheet, bonuses),
		Active:     active,
		Bonuses:    bonus.Reasons(bonuses),
	}
}

// effectRefs lists every effect on the sheet, category by category in name
// order
func effectRefs(sheet *character.Sheet) []combat.EffectRef {
	var refs []combat.EffectRef
	for _, category := range character.Categories() {
		for _, name := range character.EffectNames(sheet.Effects(category)) {
			refs = append(refs, combat.EffectRef{Category: category, Name: name})
		}
	}
	return refs
}
