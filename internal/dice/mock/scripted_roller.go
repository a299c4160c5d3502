package dicemock

import (
	"fmt"
	"sync"
)

// ScriptedRoller returns predetermined faces in order. It fails once the
// script is exhausted or a face does not fit the requested die.
type ScriptedRoller struct {
	mu    sync.Mutex
	faces []int
	next  int
}

// NewScriptedRoller creates a roller that will return faces in order
func NewScriptedRoller(faces ...int) *ScriptedRoller {
	return &ScriptedRoller{faces: faces}
}

// Push appends faces to the script
func (s *ScriptedRoller) Push(faces ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faces = append(s.faces, faces...)
}

// Remaining returns how many faces have not been used yet
func (s *ScriptedRoller) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.faces) - s.next
}

// Roll implements dice.Roller
func (s *ScriptedRoller) Roll(size int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.next >= len(s.faces) {
		return 0, fmt.Errorf("no more scripted rolls available (used %d of %d)", s.next, len(s.faces))
	}

	face := s.faces[s.next]
	if face < 1 || face > size {
		return 0, fmt.Errorf("invalid scripted roll %d for d%d", face, size)
	}
	s.next++
	return face, nil
}

// RollN implements dice.Roller
func (s *ScriptedRoller) RollN(count, size int) ([]int, error) {
	results := make([]int, count)
	for i := range results {
		v, err := s.Roll(size)
		if err != nil {
			return nil, err
		}
		results[i] = v
	}
	return results, nil
}
