package strategy

import "liftfleet/src/types"

// Selection picks the fleet index that should service a pickup request.
type Selection interface {
	Select(req types.Request, fleet []types.CarSnapshot) int
}

// NearestCar picks the car with minimum distance to the requested floor, ties
// broken by ascending fleet index. It deliberately ignores direction, door
// state and load: a full car moving away can still win. Known limitation of
// the nearest-car heuristic, kept as is.
type NearestCar struct{}

func (NearestCar) Select(req types.Request, fleet []types.CarSnapshot) int {
	assignee := 0
	for i, car := range fleet[1:] {
		if abs(car.Floor-req.Floor) < abs(fleet[assignee].Floor-req.Floor) {
			assignee = i + 1
		}
	}
	return assignee
}
