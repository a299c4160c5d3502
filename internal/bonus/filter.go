package bonus

type fieldKind uint8

const (
	fieldAny fieldKind = iota
	fieldNone
	fieldIs
)

// Field is one component of a Filter or Key. The zero value is Any.
type Field struct {
	kind  fieldKind
	value string
}

// Any is an unset field. It matches every value, including None.
func Any() Field { return Field{} }

// None is an explicitly empty field. It only matches None and Any.
func None() Field { return Field{kind: fieldNone} }

// Is is a field holding name
func Is(name string) Field { return Field{kind: fieldIs, value: name} }

// IsAny reports whether f is unset
func (f Field) IsAny() bool { return f.kind == fieldAny }

// IsNone reports whether f is explicitly empty
func (f Field) IsNone() bool { return f.kind == fieldNone }

// Value returns the name held by f
func (f Field) Value() (string, bool) {
	return f.value, f.kind == fieldIs
}

func (f Field) String() string {
	switch f.kind {
	case fieldNone:
		return "none"
	case fieldIs:
		return f.value
	default:
		return "*"
	}
}

func (f Field) matches(key Field) bool {
	if f.kind == fieldAny || key.kind == fieldAny {
		return true
	}
	return f == key
}

// Filter selects the rolls a bonus applies to
type Filter struct {
	Trait         Field
	Aptitude      Field
	Concentration Field
}

// Everything is the empty filter
func Everything() Filter { return Filter{} }

// ForTrait only matches rolls of the bare trait
func ForTrait(trait string) Filter {
	return Filter{Trait: Is(trait), Aptitude: None(), Concentration: None()}
}

// ForAptitude matches a pure aptitude of trait
func ForAptitude(trait, aptitude string) Filter {
	return Filter{Trait: Is(trait), Aptitude: Is(aptitude), Concentration: None()}
}

// ForConcentration matches one concentration inside an aptitude group
func ForConcentration(trait, group, concentration string) Filter {
	return Filter{Trait: Is(trait), Aptitude: Is(concentration), Concentration: Is(group)}
}

// Matches reports whether every field of f matches key
func (f Filter) Matches(key Key) bool {
	return f.Trait.matches(key.Trait) &&
		f.Aptitude.matches(key.Aptitude) &&
		f.Concentration.matches(key.Concentration)
}

func (f Filter) String() string {
	return f.Trait.String() + "/" + f.Concentration.String() + "/" + f.Aptitude.String()
}

// Key identifies the roll bonuses are matched against. It has the same
// fuzzy fields as a Filter.
//
// A concentration is keyed with its own name in Aptitude and the group name
// in Concentration.
type Key struct {
	Trait         Field
	Aptitude      Field
	Concentration Field
}

// TraitKey keys a bare trait roll
func TraitKey(trait string) Key {
	return Key{Trait: Is(trait), Aptitude: None(), Concentration: None()}
}

// AptitudeKey keys a pure aptitude. The concentration is left unset.
func AptitudeKey(trait, aptitude string) Key {
	return Key{Trait: Is(trait), Aptitude: Is(aptitude)}
}

// ConcentrationKey keys a concentration inside an aptitude group
func ConcentrationKey(trait, group, concentration string) Key {
	return Key{Trait: Is(trait), Aptitude: Is(concentration), Concentration: Is(group)}
}

// Matches reports whether filter applies to key
func Matches(filter Filter, key Key) bool {
	return filter.Matches(key)
}

func (k Key) String() string {
	return Filter(k).String()
}
