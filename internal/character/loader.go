package character

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/benkolera/salty-deadlands/internal/bonus"
	"github.com/benkolera/salty-deadlands/internal/dice"
	"github.com/benkolera/salty-deadlands/internal/errors"
)

// Effect types in sheet documents
const (
	effectSimple  = "simple"
	effectPassive = "passive"
	effectSpell   = "spell"
)

// Bonus and bonus effect types in sheet documents
const (
	bonusAptitude   = "aptitude"
	bonusLightArmor = "light_armor"

	effectFlat    = "bonus"
	effectSub     = "dice_sub"
	effectPromote = "dice_promote"
)

type sheetDoc struct {
	ID          string               `yaml:"id"`
	Name        string               `yaml:"name"`
	Size        int                  `yaml:"size"`
	LightArmor  int                  `yaml:"light_armor"`
	Traits      map[string]traitDoc  `yaml:"traits"`
	Edges       map[string]effectDoc `yaml:"edges"`
	Hinderances map[string]effectDoc `yaml:"hinderances"`
	Knacks      map[string]effectDoc `yaml:"knacks"`
	Blessings   map[string]effectDoc `yaml:"blessings"`
}

type traitDoc struct {
	Dice      string                 `yaml:"dice"`
	Aptitudes map[string]aptitudeDoc `yaml:"aptitudes"`
}

// aptitudeDoc is either a bare number or {concentrations: {name: number}}
type aptitudeDoc struct {
	Aptitude
}

func (a *aptitudeDoc) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var n int
		if err := value.Decode(&n); err != nil {
			return errors.InvalidArgumentf("aptitude must be a number (line %d)", value.Line)
		}
		a.Aptitude = Pure{Value: n}
		return nil
	case yaml.MappingNode:
		var group struct {
			Concentrations map[string]int `yaml:"concentrations"`
		}
		if err := value.Decode(&group); err != nil {
			return errors.Wrapf(err, "invalid concentrations (line %d)", value.Line)
		}
		c := Concentrated{Concentrations: make(map[string]Pure, len(group.Concentrations))}
		for name, v := range group.Concentrations {
			c.Concentrations[name] = Pure{Value: v}
		}
		a.Aptitude = c
		return nil
	default:
		return errors.InvalidArgumentf("aptitude must be a number or a concentrations mapping (line %d)", value.Line)
	}
}

type effectDoc struct {
	Type     string    `yaml:"type"`
	Desc     string    `yaml:"desc"`
	Bonus    *bonusDoc `yaml:"bonus"`
	Input    string    `yaml:"input"`
	Duration int       `yaml:"duration"`
	// Grants is the template of a spell's bonus. Its amount is the spell input.
	Grants *bonusDoc `yaml:"grants"`
}

type bonusDoc struct {
	Type   string          `yaml:"type"`
	Reason string          `yaml:"reason"`
	Bonus  int             `yaml:"bonus"`
	Filter bonus.Filter    `yaml:"filter"`
	Effect *bonusEffectDoc `yaml:"effect"`
}

type bonusEffectDoc struct {
	Type  string `yaml:"type"`
	Bonus int    `yaml:"bonus"`
	Faces int    `yaml:"faces"`
	Dice  string `yaml:"dice"`
}

// Parse reads a YAML sheet and validates it
func Parse(data []byte) (*Sheet, error) {
	var doc sheetDoc
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode sheet")
	}

	sheet, err := doc.toSheet()
	if err != nil {
		return nil, err
	}

	if err := sheet.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid sheet %q", sheet.ID)
	}
	return sheet, nil
}

// Load reads and parses the sheet at path
func Load(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("sheet file %s not found", path)
		}
		return nil, errors.Wrapf(err, "failed to read sheet %s", path)
	}
	return Parse(data)
}

func (d sheetDoc) toSheet() (*Sheet, error) {
	s := &Sheet{
		ID:         d.ID,
		Name:       d.Name,
		Size:       d.Size,
		LightArmor: d.LightArmor,
		Traits:     make(map[string]Trait, len(d.Traits)),
	}

	for name, t := range d.Traits {
		ds, exploding, err := dice.ParseCode(t.Dice)
		if err != nil {
			return nil, errors.Wrapf(err, "trait %s", name)
		}
		if exploding != nil {
			return nil, errors.InvalidArgumentf("trait %s dice must not carry exploding options: %s", name, t.Dice)
		}

		trait := Trait{Dice: ds, Aptitudes: make(map[string]Aptitude, len(t.Aptitudes))}
		for aptName, apt := range t.Aptitudes {
			trait.Aptitudes[aptName] = apt.Aptitude
		}
		s.Traits[name] = trait
	}

	var err error
	if s.Edges, err = toEffectSet(CategoryEdges, d.Edges); err != nil {
		return nil, err
	}
	if s.Hinderances, err = toEffectSet(CategoryHinderances, d.Hinderances); err != nil {
		return nil, err
	}
	if s.Knacks, err = toEffectSet(CategoryKnacks, d.Knacks); err != nil {
		return nil, err
	}
	if s.Blessings, err = toEffectSet(CategoryBlessings, d.Blessings); err != nil {
		return nil, err
	}

	return s, nil
}

func toEffectSet(category Category, docs map[string]effectDoc) (EffectSet, error) {
	set := make(EffectSet, len(docs))
	for name, doc := range docs {
		e, err := doc.toEffect()
		if err != nil {
			return nil, errors.Wrapf(err, "%s %q", category, name)
		}
		set[name] = e
	}
	return set, nil
}

func (d effectDoc) toEffect() (Effect, error) {
	switch d.Type {
	case effectSimple, "":
		return Simple{Desc: d.Desc}, nil

	case effectPassive:
		if d.Bonus == nil {
			return nil, errors.InvalidArgument("passive effect needs a bonus")
		}
		b, err := d.Bonus.toBonus()
		if err != nil {
			return nil, err
		}
		return Passive{Bonus: b, Desc: d.Desc}, nil

	case effectSpell:
		spell := Spell{InputDesc: d.Input, Duration: d.Duration, Desc: d.Desc}
		if d.Grants != nil {
			grant := *d.Grants
			// check the template once so a bad sheet fails at load time
			if _, err := grant.withAmount(0).toBonus(); err != nil {
				return nil, err
			}
			spell.BonusFunc = func(input int) (bonus.Bonus, bool) {
				b, err := grant.withAmount(input).toBonus()
				return b, err == nil
			}
		}
		return spell, nil

	default:
		return nil, errors.InvalidArgumentf("unknown effect type: %s", d.Type)
	}
}

// withAmount fills the numeric field of a spell grant
func (b bonusDoc) withAmount(n int) bonusDoc {
	if b.Effect == nil {
		b.Bonus = n
		return b
	}

	effect := *b.Effect
	switch effect.Type {
	case effectFlat:
		effect.Bonus = n
	case effectPromote:
		effect.Faces = n
	}
	b.Effect = &effect
	return b
}

func (b bonusDoc) toBonus() (bonus.Bonus, error) {
	switch b.Type {
	case bonusLightArmor:
		return bonus.LightArmor{Bonus: b.Bonus, Reason: b.Reason}, nil

	case bonusAptitude:
		if b.Effect == nil {
			return nil, errors.InvalidArgument("aptitude bonus needs an effect")
		}
		effect, err := b.Effect.toEffect()
		if err != nil {
			return nil, err
		}
		return bonus.Aptitude{Filter: b.Filter, Effect: effect, Reason: b.Reason}, nil

	default:
		return nil, errors.InvalidArgumentf("unknown bonus type: %s", b.Type)
	}
}

func (e bonusEffectDoc) toEffect() (bonus.Effect, error) {
	switch e.Type {
	case effectFlat:
		return bonus.Flat{Bonus: e.Bonus}, nil
	case effectPromote:
		return bonus.DicePromote{Faces: e.Faces}, nil
	case effectSub:
		ds, _, err := dice.ParseCode(e.Dice)
		if err != nil {
			return nil, errors.Wrap(err, "dice_sub")
		}
		return bonus.DiceSub{NewDice: ds}, nil
	default:
		return nil, errors.InvalidArgumentf("unknown bonus effect type: %s", e.Type)
	}
}
