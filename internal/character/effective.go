package character

import (
	"slices"

	"github.com/benkolera/salty-deadlands/internal/bonus"
	"github.com/benkolera/salty-deadlands/internal/dice"
	"github.com/benkolera/salty-deadlands/internal/errors"
)

// untrainedPenalty is taken by a trait rolled in place of a missing aptitude
const untrainedPenalty = 4

// Ref names a roll on the sheet. An empty Aptitude is the bare trait; a
// non-empty Concentration picks one concentration of the Aptitude group.
type Ref struct {
	Trait         string `json:"trait"`
	Aptitude      string `json:"aptitude,omitempty"`
	Concentration string `json:"concentration,omitempty"`
}

// Key is the bonus key of the roll
func (r Ref) Key() bonus.Key {
	switch {
	case r.Aptitude == "":
		return bonus.TraitKey(r.Trait)
	case r.Concentration == "":
		return bonus.AptitudeKey(r.Trait, r.Aptitude)
	default:
		return bonus.ConcentrationKey(r.Trait, r.Aptitude, r.Concentration)
	}
}

// IsTrait reports whether r is a bare trait roll
func (r Ref) IsTrait() bool {
	return r.Aptitude == ""
}

func (r Ref) String() string {
	s := r.Trait
	if r.Aptitude != "" {
		s += ": " + r.Aptitude
	}
	if r.Concentration != "" {
		s += ": " + r.Concentration
	}
	return s
}

// TraitDice is the trait's dice with the bonuses that apply to a bare trait
// roll
func TraitDice(s *Sheet, trait string, bonuses []bonus.Bonus) (dice.DiceSet, error) {
	t, err := s.Trait(trait)
	if err != nil {
		return dice.DiceSet{}, err
	}
	return bonus.ApplyFor(t.Dice, bonus.TraitKey(trait), bonuses), nil
}

// AptitudeDice rolls a pure aptitude with its value as the number of trait
// dice
func AptitudeDice(s *Sheet, trait, aptitude string, bonuses []bonus.Bonus) (dice.DiceSet, error) {
	t, err := s.Trait(trait)
	if err != nil {
		return dice.DiceSet{}, err
	}

	apt, ok := t.Aptitudes[aptitude]
	if !ok {
		return dice.DiceSet{}, errors.NotFoundf("aptitude %s: %s not found", trait, aptitude).
			WithMeta("trait", trait).
			WithMeta("aptitude", aptitude)
	}

	pure, ok := apt.(Pure)
	if !ok {
		return dice.DiceSet{}, errors.FailedPreconditionf("%s: %s is a concentration group; name a concentration", trait, aptitude)
	}

	return bonus.ApplyFor(t.Dice.WithNum(pure.Value), bonus.AptitudeKey(trait, aptitude), bonuses), nil
}

// ConcentrationDice rolls one concentration of an aptitude group
func ConcentrationDice(s *Sheet, trait, group, concentration string, bonuses []bonus.Bonus) (dice.DiceSet, error) {
	t, err := s.Trait(trait)
	if err != nil {
		return dice.DiceSet{}, err
	}

	c, ok := t.Aptitudes[group].(Concentrated)
	if !ok {
		return dice.DiceSet{}, errors.NotFoundf("concentration group %s: %s not found", trait, group).
			WithMeta("trait", trait).
			WithMeta("aptitude", group)
	}

	pure, ok := c.Concentrations[concentration]
	if !ok {
		return dice.DiceSet{}, errors.NotFoundf("concentration %s: %s: %s not found", trait, group, concentration).
			WithMeta("trait", trait).
			WithMeta("aptitude", group).
			WithMeta("concentration", concentration)
	}

	key := bonus.ConcentrationKey(trait, group, concentration)
	return bonus.ApplyFor(t.Dice.WithNum(pure.Value), key, bonuses), nil
}

// DiceFor resolves the effective dice of any roll on the sheet
func DiceFor(s *Sheet, ref Ref, bonuses []bonus.Bonus) (dice.DiceSet, error) {
	switch {
	case ref.IsTrait():
		return TraitDice(s, ref.Trait, bonuses)
	case ref.Concentration == "":
		return AptitudeDice(s, ref.Trait, ref.Aptitude, bonuses)
	default:
		return ConcentrationDice(s, ref.Trait, ref.Aptitude, ref.Concentration, bonuses)
	}
}

// Untrained is a single die of the set at -4, rolled when a character lacks
// the aptitude
func Untrained(ds dice.DiceSet) dice.DiceSet {
	return ds.WithNum(1).AddBonus(-untrainedPenalty)
}

// View is the effective dice of every roll on a sheet
type View struct {
	Traits []TraitView `json:"traits"`
}

// TraitView is a trait and its aptitudes after bonuses
type TraitView struct {
	Name      string         `json:"name"`
	Dice      dice.DiceSet   `json:"dice"`
	Aptitudes []AptitudeView `json:"aptitudes,omitempty"`
}

// AptitudeView is a pure aptitude or a concentration group. Groups have no
// dice of their own.
type AptitudeView struct {
	Name           string         `json:"name"`
	Ref            Ref            `json:"ref"`
	Dice           dice.DiceSet   `json:"dice"`
	Concentrations []AptitudeView `json:"concentrations,omitempty"`
}

// IsGroup reports whether v is a concentration group
func (v AptitudeView) IsGroup() bool {
	return v.Concentrations != nil
}

// Effective derives every dice set on the sheet. Standard traits come first
// in sheet order; aptitudes are sorted by name.
func Effective(s *Sheet, bonuses []bonus.Bonus) View {
	var view View
	for _, name := range traitOrder(s) {
		t := s.Traits[name]
		tv := TraitView{
			Name: name,
			Dice: bonus.ApplyFor(t.Dice, bonus.TraitKey(name), bonuses),
		}

		for _, aptName := range t.AptitudeNames() {
			switch apt := t.Aptitudes[aptName].(type) {
			case Pure:
				tv.Aptitudes = append(tv.Aptitudes, AptitudeView{
					Name: aptName,
					Ref:  Ref{Trait: name, Aptitude: aptName},
					Dice: bonus.ApplyFor(t.Dice.WithNum(apt.Value), bonus.AptitudeKey(name, aptName), bonuses),
				})
			case Concentrated:
				group := AptitudeView{
					Name:           aptName,
					Ref:            Ref{Trait: name, Aptitude: aptName},
					Concentrations: []AptitudeView{},
				}
				for _, cName := range apt.ConcentrationNames() {
					group.Concentrations = append(group.Concentrations, AptitudeView{
						Name: cName,
						Ref:  Ref{Trait: name, Aptitude: aptName, Concentration: cName},
						Dice: bonus.ApplyFor(
							t.Dice.WithNum(apt.Concentrations[cName].Value),
							bonus.ConcentrationKey(name, aptName, cName),
							bonuses,
						),
					})
				}
				tv.Aptitudes = append(tv.Aptitudes, group)
			}
		}

		view.Traits = append(view.Traits, tv)
	}
	return view
}

// traitOrder lists standard traits first, then any others by name
func traitOrder(s *Sheet) []string {
	var order []string
	seen := make(map[string]bool, len(s.Traits))
	for _, name := range StandardTraits() {
		if _, ok := s.Traits[name]; ok {
			order = append(order, name)
			seen[name] = true
		}
	}

	var extra []string
	for name := range s.Traits {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	return append(order, extra...)
}
