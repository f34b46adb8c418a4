package strategy

import (
	"testing"

	"liftfleet/src/types"
)

func snapshotsAt(floors ...int) []types.CarSnapshot {
	snaps := make([]types.CarSnapshot, len(floors))
	for i, f := range floors {
		snaps[i] = types.CarSnapshot{ID: i, Floor: f, Dir: types.DirIdle, Behaviour: types.Idle}
	}
	return snaps
}

func TestNearestCar_PicksMinimumDistance(t *testing.T) {
	fleet := snapshotsAt(2, 9, 5)
	req := types.NewHallRequest(6, types.DirUp)
	if got := (NearestCar{}).Select(req, fleet); got != 2 {
		t.Errorf("Expected car 2, got %v", got)
	}
}

func TestNearestCar_TieGoesToLowestIndex(t *testing.T) {
	fleet := snapshotsAt(4, 8)
	req := types.NewHallRequest(6, types.DirUp)
	if got := (NearestCar{}).Select(req, fleet); got != 0 {
		t.Errorf("Expected car 0 on tie, got %v", got)
	}
}

// NearestCar ignores queued work; a car heading away with stops queued still
// wins on raw distance.
func TestNearestCar_IgnoresPendingWork(t *testing.T) {
	fleet := snapshotsAt(5, 7)
	fleet[0].Dir = types.DirDown
	fleet[0].Pending = []int{1}
	req := types.NewHallRequest(6, types.DirUp)
	if got := (NearestCar{}).Select(req, fleet); got != 0 {
		t.Errorf("Expected car 0, got %v", got)
	}
}

// TimeToServe accounts for the queued run: the busy car must first travel to
// floor 1, so the farther idle car wins.
func TestTimeToServe_PrefersUnburdenedCar(t *testing.T) {
	fleet := snapshotsAt(5, 7)
	fleet[0].Dir = types.DirDown
	fleet[0].Pending = []int{1}
	req := types.NewHallRequest(6, types.DirUp)
	if got := (TimeToServe{}).Select(req, fleet); got != 1 {
		t.Errorf("Expected car 1, got %v", got)
	}
}

func TestTimeToServe_TieGoesToLowestIndex(t *testing.T) {
	fleet := snapshotsAt(4, 4)
	req := types.NewHallRequest(6, types.DirUp)
	if got := (TimeToServe{}).Select(req, fleet); got != 0 {
		t.Errorf("Expected car 0 on tie, got %v", got)
	}
}

func TestServeCost_AtRequestedFloor(t *testing.T) {
	snap := types.CarSnapshot{Floor: 6, Dir: types.DirIdle, Behaviour: types.Idle}
	if got := serveCost(snap, 6); got != 0 {
		t.Errorf("Expected cost 0, got %v", got)
	}
}

func TestServeCost_DoesNotMutateSnapshot(t *testing.T) {
	snap := types.CarSnapshot{Floor: 5, Dir: types.DirDown, Pending: []int{1}}
	serveCost(snap, 6)
	if len(snap.Pending) != 1 || snap.Pending[0] != 1 {
		t.Errorf("Expected pending [1] unchanged, got %v", snap.Pending)
	}
}
