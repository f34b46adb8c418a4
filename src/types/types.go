// Shared value types for the fleet: travel directions, car behaviours and
// pickup/destination requests.
package types

import "sync/atomic"

type Direction int

const (
	DirUp   Direction = 1
	DirDown Direction = -1
	DirIdle Direction = 0
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "idle"
	}
}

type CarBehaviour int

const (
	Idle CarBehaviour = iota
	Moving
	DoorsOpen
	DoorsClosed
)

func (b CarBehaviour) String() string {
	switch b {
	case Moving:
		return "moving"
	case DoorsOpen:
		return "doorsOpen"
	case DoorsClosed:
		return "doorsClosed"
	default:
		return "idle"
	}
}

type Origin int

const (
	External Origin = iota
	Internal
)

func (o Origin) String() string {
	if o == Internal {
		return "internal"
	}
	return "external"
}

// Request is a single press event. Hall presses carry a direction hint,
// cab presses only a floor. Immutable once stamped by the dispatcher.
type Request struct {
	ID        uint64
	Floor     int
	Hint      Direction
	Origin    Origin
	CreatedAt uint64
}

var requestID atomic.Uint64

// NewHallRequest creates an external pickup request for a floor.
func NewHallRequest(floor int, hint Direction) Request {
	return Request{
		ID:     requestID.Add(1),
		Floor:  floor,
		Hint:   hint,
		Origin: External,
	}
}

// NewCabRequest creates an internal destination request for a floor.
func NewCabRequest(floor int) Request {
	return Request{
		ID:     requestID.Add(1),
		Floor:  floor,
		Hint:   DirIdle,
		Origin: Internal,
	}
}
