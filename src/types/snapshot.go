package types

import "fmt"

// CarSnapshot is an immutable copy of a car's observable state. Selection
// strategies and monitors work on snapshots, never on live cars.
type CarSnapshot struct {
	ID        int
	Floor     int
	Dir       Direction
	Behaviour CarBehaviour
	Load      int
	Capacity  int
	Pending   []int
}

// InvalidFloorError is returned when a request names a floor outside the
// building bounds. The floor is never clamped.
type InvalidFloorError struct {
	Floor int
	Min   int
	Max   int
}

func (e InvalidFloorError) Error() string {
	return fmt.Sprintf("floor %d outside bounds [%d, %d]", e.Floor, e.Min, e.Max)
}
