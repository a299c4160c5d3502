package combat

import (
	"github.com/benkolera/salty-deadlands/internal/bonus"
	"github.com/benkolera/salty-deadlands/internal/character"
)

// Activation is the running state of one effect. Only spells are ever
// active; Input is the roll the spell was cast with.
type Activation struct {
	RoundsRemaining int `json:"rounds_remaining"`
	Input           int `json:"input"`
}

// Active reports whether rounds remain
func (a Activation) Active() bool {
	return a.RoundsRemaining > 0
}

// Toggle casts an inactive spell for its duration with input, or stops it.
// Toggling anything that is not a spell leaves it inactive.
func (a Activation) Toggle(effect character.Effect, input int) Activation {
	spell, ok := effect.(character.Spell)
	if a.RoundsRemaining != 0 || !ok || spell.Duration <= 0 {
		return Activation{}
	}
	return Activation{RoundsRemaining: spell.Duration, Input: input}
}

// Tick counts down one round. The input is cleared once no rounds remain.
func (a Activation) Tick() Activation {
	a.RoundsRemaining = max(0, a.RoundsRemaining-1)
	if a.RoundsRemaining == 0 {
		return Activation{}
	}
	return a
}

// Reset stops the effect. Combat ending resets every activation.
func (Activation) Reset() Activation {
	return Activation{}
}

// Bonus is what effect grants in state a: a passive effect always grants
// its bonus, an active spell grants the bonus for its input, anything else
// grants nothing.
func Bonus(effect character.Effect, a Activation) (bonus.Bonus, bool) {
	switch e := effect.(type) {
	case character.Passive:
		return e.Bonus, e.Bonus != nil
	case character.Spell:
		if a.Active() {
			return e.Grant(a.Input)
		}
	}
	return nil, false
}

// EffectRef names an effect on a sheet
type EffectRef struct {
	Category character.Category `json:"category"`
	Name     string             `json:"name"`
}

// Activations holds the activation of every effect that has been toggled
type Activations map[EffectRef]Activation

// Toggle returns a copy with ref toggled
func (as Activations) Toggle(ref EffectRef, effect character.Effect, input int) Activations {
	out := as.clone()
	next := out[ref].Toggle(effect, input)
	if next.Active() {
		out[ref] = next
	} else {
		delete(out, ref)
	}
	return out
}

// Tick returns a copy with every activation counted down one round
func (as Activations) Tick() Activations {
	out := make(Activations, len(as))
	for ref, a := range as {
		if next := a.Tick(); next.Active() {
			out[ref] = next
		}
	}
	return out
}

// Reset returns the empty set
func (Activations) Reset() Activations {
	return Activations{}
}

func (as Activations) clone() Activations {
	out := make(Activations, len(as))
	for ref, a := range as {
		out[ref] = a
	}
	return out
}

// ActiveBonuses collects the bonus of every effect on the sheet, category by
// category with effects in name order
func ActiveBonuses(sheet *character.Sheet, as Activations) []bonus.Bonus {
	var out []bonus.Bonus
	for _, category := range character.Categories() {
		set := sheet.Effects(category)
		for _, name := range character.EffectNames(set) {
			if b, ok := Bonus(set[name], as[EffectRef{Category: category, Name: name}]); ok {
				out = append(out, b)
			}
		}
	}
	return out
}

// Bonuses is the full bonus list for the character: the wound modifier
// first, then every active effect
func Bonuses(sheet *character.Sheet, w Wounds, as Activations) []bonus.Bonus {
	var out []bonus.Bonus
	if p, ok := w.Penalty(); ok {
		out = append(out, p)
	}
	return append(out, ActiveBonuses(sheet, as)...)
}

// LightArmor is the sheet's light armor plus every light armor bonus
func LightArmor(sheet *character.Sheet, bonuses []bonus.Bonus) int {
	return bonus.LightArmorTotal(sheet.LightArmor, bonuses)
}
