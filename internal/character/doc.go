// Package character holds the character sheet: traits and their aptitudes,
// the edges, hinderances, knacks and blessings that grant bonuses, and the
// derivation of the effective dice set for every roll on the sheet.
//
// Sheets are plain data. They are read from YAML with Parse or Load, or
// taken from the sheets embedded in the binary with Builtin.
package character
