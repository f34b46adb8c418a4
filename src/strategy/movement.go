// Movement and selection strategies. Both are small closed sets picked at
// construction time.
package strategy

import "liftfleet/src/types"

// Movement decides the next stop for a single car. Implementations are pure:
// no mutation, no randomness.
type Movement interface {
	NextStop(floor int, dir types.Direction, pending []int, minFloor, maxFloor int) (int, bool)
}

// ScanLook services stops in the current direction of travel before
// reversing.
//  1. No pending floors: no stop.
//  2. Going up (or idle): nearest pending floor at or above.
//  3. Going down (or idle): nearest pending floor at or below.
//  4. Reversal: nearest pending floor on the far side.
//  5. Fallback: pending floor with minimum distance, ties toward the lower
//     floor. Unreachable given 1-4 but defined.
type ScanLook struct{}

func (ScanLook) NextStop(floor int, dir types.Direction, pending []int, minFloor, maxFloor int) (int, bool) {
	if len(pending) == 0 {
		return 0, false
	}

	if dir == types.DirUp || dir == types.DirIdle {
		if next, ok := lowestAtOrAbove(pending, floor); ok {
			return next, true
		}
	}
	if dir == types.DirDown || dir == types.DirIdle {
		if next, ok := highestAtOrBelow(pending, floor); ok {
			return next, true
		}
	}

	switch dir {
	case types.DirUp:
		if next, ok := highestAtOrBelow(pending, floor-1); ok {
			return next, true
		}
	case types.DirDown:
		if next, ok := lowestAtOrAbove(pending, floor+1); ok {
			return next, true
		}
	}

	best := pending[0]
	for _, f := range pending[1:] {
		switch d, bd := abs(f-floor), abs(best-floor); {
		case d < bd:
			best = f
		case d == bd && f < best:
			best = f
		}
	}
	return best, true
}

func lowestAtOrAbove(pending []int, floor int) (int, bool) {
	next, found := 0, false
	for _, f := range pending {
		if f >= floor && (!found || f < next) {
			next, found = f, true
		}
	}
	return next, found
}

func highestAtOrBelow(pending []int, floor int) (int, bool) {
	next, found := 0, false
	for _, f := range pending {
		if f <= floor && (!found || f > next) {
			next, found = f, true
		}
	}
	return next, found
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
