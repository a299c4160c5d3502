// Package rolls provides the repository interface and types for the roll log
package rolls

//go:generate mockgen -destination=mock/mock_repository.go -package=rollsmock github.com/benkolera/salty-deadlands/internal/repositories/rolls Repository

import (
	"context"
	"time"

	"github.com/benkolera/salty-deadlands/internal/dice"
)

// Kind says what sort of roll an entry records
type Kind string

const (
	KindTrait   Kind = "trait"
	KindOpposed Kind = "opposed"
	KindDamage  Kind = "damage"
)

// Entry is one roll in the log
type Entry struct {
	// Unique identifier of the roll
	ID string

	// Character that rolled; empty for rolls that belong to nobody, like damage
	CharacterID string

	Kind Kind

	// What was rolled, e.g. "Deftness: Shootin: Pistol"
	Label string

	Dice dice.DiceSet

	// Exploded total of every die
	Results []int

	// Result as read out at the table, e.g. "12", "bust" or "success(3)"
	Result string

	RolledAt time.Time
}

// AppendInput defines the request for logging a roll
type AppendInput struct {
	Entry *Entry
}

// AppendOutput defines the response for logging a roll
type AppendOutput struct{}

// ListInput defines the request for reading the log. An empty CharacterID
// lists every roll. A Limit of zero or less returns everything.
type ListInput struct {
	CharacterID string
	Limit       int
}

// ListOutput holds entries newest first
type ListOutput struct {
	Entries []*Entry
}

// ClearInput defines the request for dropping a character's rolls
type ClearInput struct {
	CharacterID string
}

// ClearOutput defines the response for dropping a character's rolls
type ClearOutput struct {
	Removed int
}

// Repository defines the storage interface for the roll log
type Repository interface {
	// Append adds a roll to the log
	Append(ctx context.Context, input *AppendInput) (*AppendOutput, error)

	// List returns logged rolls, newest first
	List(ctx context.Context, input *ListInput) (*ListOutput, error)

	// Clear removes every roll made by a character
	Clear(ctx context.Context, input *ClearInput) (*ClearOutput, error)
}
