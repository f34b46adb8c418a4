// Single-car control: pending stop sets, occupant models and the tick-driven
// state machine.
package elev

import (
	"slices"
	"sync"
)

// FloorSet is a mutex-guarded set of floors. The dispatcher inserts while the
// owning car's loop removes, so every operation takes the lock. Each car owns
// two of these; there is no fleet-wide lock.
type FloorSet struct {
	mu     sync.Mutex
	floors map[int]struct{}
}

func NewFloorSet() *FloorSet {
	return &FloorSet{floors: make(map[int]struct{})}
}

// Add inserts a floor. Returns false if it was already pending.
func (s *FloorSet) Add(floor int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.floors[floor]; ok {
		return false
	}
	s.floors[floor] = struct{}{}
	return true
}

// Remove deletes a floor. Returns false if it was not pending.
func (s *FloorSet) Remove(floor int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.floors[floor]; !ok {
		return false
	}
	delete(s.floors, floor)
	return true
}

func (s *FloorSet) Contains(floor int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.floors[floor]
	return ok
}

func (s *FloorSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.floors)
}

// Floors returns a sorted copy of the pending floors.
func (s *FloorSet) Floors() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	floors := make([]int, 0, len(s.floors))
	for f := range s.floors {
		floors = append(floors, f)
	}
	slices.Sort(floors)
	return floors
}
