package rolls

import (
	"context"
	"slices"
	"sync"

	"github.com/benkolera/salty-deadlands/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu      sync.RWMutex
	entries []*Entry
	ids     map[string]struct{}
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		ids: make(map[string]struct{}),
	}
}

// Append adds a roll to the log
func (r *InMemoryRepository) Append(_ context.Context, input *AppendInput) (*AppendOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Entry == nil {
		return nil, errors.InvalidArgument("entry is required")
	}
	if input.Entry.ID == "" {
		return nil, errors.InvalidArgument("roll ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ids[input.Entry.ID]; exists {
		return nil, errors.AlreadyExistsf("roll %s already logged", input.Entry.ID)
	}

	entry := *input.Entry
	entry.Results = slices.Clone(input.Entry.Results)
	r.entries = append(r.entries, &entry)
	r.ids[entry.ID] = struct{}{}

	return &AppendOutput{}, nil
}

// List returns logged rolls, newest first
func (r *InMemoryRepository) List(_ context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Entry
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if input.CharacterID != "" && e.CharacterID != input.CharacterID {
			continue
		}

		// Return a copy to prevent external modification
		c := *e
		c.Results = slices.Clone(e.Results)
		out = append(out, &c)

		if input.Limit > 0 && len(out) == input.Limit {
			break
		}
	}

	return &ListOutput{Entries: out}, nil
}

// Clear removes every roll made by a character
func (r *InMemoryRepository) Clear(_ context.Context, input *ClearInput) (*ClearOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.entries[:0]
	removed := 0
	for _, e := range r.entries {
		if e.CharacterID == input.CharacterID {
			delete(r.ids, e.ID)
			removed++
			continue
		}
		kept = append(kept, e)
	}
	clear(r.entries[len(kept):])
	r.entries = kept

	return &ClearOutput{Removed: removed}, nil
}
