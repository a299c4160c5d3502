package combat

import (
	"github.com/benkolera/salty-deadlands/internal/bonus"
	"github.com/benkolera/salty-deadlands/internal/errors"
)

// Location is a hit location
type Location string

const (
	Head     Location = "head"
	LeftArm  Location = "larm"
	RightArm Location = "rarm"
	Torso    Location = "torso"
	LeftLeg  Location = "lleg"
	RightLeg Location = "rleg"
)

// Locations returns every hit location in sheet order
func Locations() []Location {
	return []Location{Head, LeftArm, RightArm, Torso, LeftLeg, RightLeg}
}

func (l Location) index() int {
	for i, loc := range Locations() {
		if loc == l {
			return i
		}
	}
	return -1
}

// Valid reports whether l is a known hit location
func (l Location) Valid() bool {
	return l.index() >= 0
}

// ParseLocation accepts the short location codes
func ParseLocation(s string) (Location, error) {
	l := Location(s)
	if !l.Valid() {
		return "", errors.InvalidArgumentf("unknown hit location: %q", s).
			WithMeta("location", s)
	}
	return l, nil
}

// Level is the wound level at a location
type Level int

const (
	LevelNone Level = iota
	LevelLight
	LevelHeavy
	LevelSerious
	LevelCritical
	LevelMaimed
)

func (lv Level) String() string {
	switch lv {
	case LevelNone:
		return "none"
	case LevelLight:
		return "light"
	case LevelHeavy:
		return "heavy"
	case LevelSerious:
		return "serious"
	case LevelCritical:
		return "critical"
	case LevelMaimed:
		return "maimed"
	default:
		return "unknown"
	}
}

func clampLevel(n int) Level {
	return Level(min(max(n, int(LevelNone)), int(LevelMaimed)))
}

// WoundsFromDamage is the number of wound levels damage inflicts. Light
// armor is subtracted first and the rest is divided by size, rounding down.
// Damage never removes wounds.
func WoundsFromDamage(damage, lightArmor, size int) int {
	if size <= 0 {
		return 0
	}
	n := damage - lightArmor
	if n <= 0 {
		return 0
	}
	return n / size
}

// Wounds holds the wound level of every location
type Wounds struct {
	levels [6]Level
}

// Level returns the wound level at loc
func (w Wounds) Level(loc Location) Level {
	i := loc.index()
	if i < 0 {
		return LevelNone
	}
	return w.levels[i]
}

// Change moves the level at loc by delta, clamped to none..maimed
func (w Wounds) Change(loc Location, delta int) Wounds {
	i := loc.index()
	if i < 0 {
		return w
	}
	w.levels[i] = clampLevel(int(w.levels[i]) + delta)
	return w
}

// Apply takes damage at loc and returns the new wounds with the number of
// levels inflicted
func (w Wounds) Apply(loc Location, damage, lightArmor, size int) (Wounds, int) {
	n := WoundsFromDamage(damage, lightArmor, size)
	return w.Change(loc, n), n
}

// Heal removes levels wounds at loc
func (w Wounds) Heal(loc Location, levels int) Wounds {
	return w.Change(loc, -max(levels, 0))
}

// Max is the worst wound level on the body
func (w Wounds) Max() Level {
	worst := LevelNone
	for _, lv := range w.levels {
		worst = max(worst, lv)
	}
	return worst
}

// Dead reports whether the head or torso is maimed
func (w Wounds) Dead() bool {
	return w.Level(Head) == LevelMaimed || w.Level(Torso) == LevelMaimed
}

// Penalty is the wound modifier every roll takes
func (w Wounds) Penalty() (bonus.Bonus, bool) {
	return bonus.WoundPenalty(int(w.Max()))
}

// ByLocation returns the level of every location
func (w Wounds) ByLocation() map[Location]Level {
	out := make(map[Location]Level, len(w.levels))
	for _, loc := range Locations() {
		out[loc] = w.Level(loc)
	}
	return out
}
