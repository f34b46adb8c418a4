package strategy

import (
	"github.com/tiendc/go-deepcopy"

	"liftfleet/src/config"
	"liftfleet/src/types"
)

// TimeToServe picks the car that could open its doors at the requested floor
// soonest, estimated in logical ticks by simulating the car's SCAN/LOOK run.
// Unlike NearestCar it accounts for direction and queued stops. Ties broken by
// ascending fleet index.
type TimeToServe struct{}

func (TimeToServe) Select(req types.Request, fleet []types.CarSnapshot) int {
	assignee := 0
	best := serveCost(fleet[0], req.Floor)
	for i, car := range fleet[1:] {
		if cost := serveCost(car, req.Floor); cost < best {
			assignee = i + 1
			best = cost
		}
	}
	return assignee
}

// serveCost estimates ticks until the car opens its doors at floor.
//   - deep-copies the snapshot so the simulation never aliases live state
//   - walks the SCAN/LOOK schedule, one tick per floor travelled
//   - adds door dwell for every stop served on the way
func serveCost(snap types.CarSnapshot, floor int) int {
	sim := new(types.CarSnapshot)
	if err := deepcopy.Copy(sim, &snap); err != nil {
		panic(err)
	}
	sim.Pending = append(sim.Pending, floor)

	cost := 0
	if sim.Behaviour == types.DoorsOpen {
		cost += config.DoorDwellTicks / 2
	}

	for {
		next, ok := ScanLook{}.NextStop(sim.Floor, sim.Dir, sim.Pending, 0, 0)
		if !ok {
			return cost
		}
		cost += abs(next - sim.Floor)
		if next > sim.Floor {
			sim.Dir = types.DirUp
		} else if next < sim.Floor {
			sim.Dir = types.DirDown
		}
		sim.Floor = next
		if next == floor {
			return cost
		}
		cost += config.DoorDwellTicks
		sim.Pending = remove(sim.Pending, next)
	}
}

func remove(floors []int, floor int) []int {
	kept := floors[:0]
	for _, f := range floors {
		if f != floor {
			kept = append(kept, f)
		}
	}
	return kept
}
