// Package combat tracks the state that changes while a character is at the
// table: wounds per hit location, the combat round, and which spells are
// running. Every type is a value and every transition returns a new value.
package combat
