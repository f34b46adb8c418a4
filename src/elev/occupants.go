package elev

import (
	"math/rand"
	"sync"
)

// Occupants models boarding and alighting at a serviced floor. Alight reports
// how many riders leave when the floor was an internal destination. Board
// returns the destinations pressed by riders entering at a pickup floor, at
// most available of them. Pluggable so tests can script exact sequences.
type Occupants interface {
	Alight(floor, load int) int
	Board(floor, available int) []int
}

// Fixed replays scripted boardings. Destinations registered for a floor are
// handed out once, then the floor boards nobody.
type Fixed struct {
	mu        sync.Mutex
	alight    int
	boardings map[int][]int
}

func NewFixed(alight int, boardings map[int][]int) *Fixed {
	if boardings == nil {
		boardings = make(map[int][]int)
	}
	return &Fixed{alight: alight, boardings: boardings}
}

func (f *Fixed) Alight(floor, load int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.alight < 1 {
		return 1
	}
	return f.alight
}

func (f *Fixed) Board(floor, available int) []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	dests := f.boardings[floor]
	delete(f.boardings, floor)
	if len(dests) > available {
		dests = dests[:available]
	}
	return dests
}

// Random boards one or two riders pressing random in-bounds floors, the demo
// behaviour. Seeded so a demo run is reproducible.
type Random struct {
	mu       sync.Mutex
	rng      *rand.Rand
	minFloor int
	maxFloor int
}

func NewRandom(seed int64, minFloor, maxFloor int) *Random {
	return &Random{
		rng:      rand.New(rand.NewSource(seed)),
		minFloor: minFloor,
		maxFloor: maxFloor,
	}
}

func (r *Random) Alight(floor, load int) int { return 1 }

func (r *Random) Board(floor, available int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	entering := 1 + r.rng.Intn(2)
	if entering > available {
		entering = available
	}
	dests := make([]int, 0, entering)
	for i := 0; i < entering; i++ {
		dest := floor
		for dest == floor {
			dest = r.minFloor + r.rng.Intn(r.maxFloor-r.minFloor+1)
		}
		dests = append(dests, dest)
	}
	return dests
}
