package combat

// Turns tracks whether the table is in combat and the current round
type Turns struct {
	InCombat bool `json:"in_combat"`
	Round    int  `json:"round"`
}

// NewTurns is the state before combat starts
func NewTurns() Turns {
	return Turns{Round: 1}
}

// ToggleCombat starts or ends combat. Either way the round resets to 1.
// ended is true when combat was running.
func (t Turns) ToggleCombat() (next Turns, ended bool) {
	return Turns{InCombat: !t.InCombat, Round: 1}, t.InCombat
}

// NextRound advances the round counter
func (t Turns) NextRound() Turns {
	t.Round++
	return t
}
