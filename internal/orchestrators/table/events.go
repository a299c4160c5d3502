package table

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"
)

// Event types published on the table's event bus
const (
	EventCharacterAdded   = "deadlands.character.added"
	EventCharacterRemoved = "deadlands.character.removed"
	EventCombatStarted    = "deadlands.combat.started"
	EventCombatEnded      = "deadlands.combat.ended"
	EventRoundStarted     = "deadlands.round.started"
	EventEffectToggled    = "deadlands.effect.toggled"
	EventEffectExpired    = "deadlands.effect.expired"
	// EventBeforeDamage handlers set ContextCancelled to prevent the damage
	// or rewrite ContextDamage to change it
	EventBeforeDamage  = "deadlands.damage.before"
	EventDamageTaken   = "deadlands.damage.taken"
	EventCharacterDied = "deadlands.character.died"
	EventTraitRolled   = "deadlands.roll.trait"
	EventOpposedRolled = "deadlands.roll.opposed"
	EventDamageRolled  = "deadlands.roll.damage"
)

// Event context keys
const (
	ContextRound     = "round"
	ContextCategory  = "category"
	ContextEffect    = "effect"
	ContextActive    = "active"
	ContextLocation  = "location"
	ContextDamage    = "damage"
	ContextWounds    = "wounds"
	ContextLevel     = "level"
	ContextRollID    = "roll_id"
	ContextCode      = "code"
	ContextResult    = "result"
	ContextOutcome   = "outcome"
	ContextWinner    = "winner"
	ContextRaises    = "raises"
	ContextRollTotal = "total"
	ContextCancelled = "cancelled"
)

// newEvent builds an event with context data attached
func newEvent(eventType string, source, target core.Entity, data map[string]any) events.Event {
	event := events.NewGameEvent(eventType, source, target)
	for k, v := range data {
		event.Context().Set(k, v)
	}
	return event
}

// cancelled reports whether a handler set ContextCancelled on event
func cancelled(event events.Event) bool {
	v, ok := event.Context().Get(ContextCancelled)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// notify publishes an event after a state change and logs handler failures
func (o *orchestrator) notify(ctx context.Context, eventType string, source, target core.Entity, data map[string]any) {
	if err := o.eventBus.Publish(ctx, newEvent(eventType, source, target, data)); err != nil {
		slog.Warn("Event handler failed",
			"event_type", eventType,
			"error", err,
		)
	}
}
