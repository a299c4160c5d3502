// Package bonus models the situational modifiers that reshape a dice set
// before it is rolled.
//
// A Bonus either targets aptitude rolls through a Filter or raises the
// character's light armor. Filters fuzzy match Keys field by field: an
// unset field on either side matches anything, while a None field only
// matches another None. Apply folds every matching aptitude bonus onto a
// base dice set, with dice substitutions applied before anything else.
package bonus
