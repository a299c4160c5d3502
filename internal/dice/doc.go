// Package dice implements the Deadlands dice engine.
//
// A DiceSet is N dice of S sides plus a flat bonus, written "4d12+2". Trait
// rolls throw every die, explode dice that land on their maximum face and keep
// the single highest die plus the bonus; a strict majority of ones busts the
// roll regardless of the other dice. Damage rolls sum every exploded die.
//
// Results are compared against target numbers (AboveTN, SuccessesVsTN) and
// against each other (Opposed). Bust and Failure are ordinary Outcome values,
// not errors.
//
// Randomness comes from an injected Roller (the rpg-toolkit dice roller
// interface). The only error any roll function returns is one produced by the
// Roller itself.
package dice
