package elev

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"liftfleet/src/clock"
	"liftfleet/src/types"
	"liftfleet/src/watch"
)

func testCar(capacity, dwell int, occ Occupants, sink watch.Sink) *Car {
	return New(Config{
		ID:          0,
		MinFloor:    1,
		MaxFloor:    10,
		MaxCapacity: capacity,
		DwellTicks:  dwell,
		Occupants:   occ,
		Sink:        sink,
		Log:         zerolog.Nop(),
	})
}

func drive(c *Car, ticks int) {
	for i := 0; i < ticks; i++ {
		c.step(uint64(i + 1))
	}
}

func doorOpenFloors(s *watch.ChanSink) []int {
	var floors []int
	for {
		select {
		case e := <-s.Events():
			if e.Type == watch.DoorsOpened {
				floors = append(floors, e.Floor)
			}
		default:
			return floors
		}
	}
}

func drain(s *watch.ChanSink) {
	for {
		select {
		case <-s.Events():
		default:
			return
		}
	}
}

// Car at floor 1 with cab calls {3, 7}: services 3, then 7, then parks idle
// at 7 with nothing pending.
func TestCar_ServesUpwardThenParks(t *testing.T) {
	sink := watch.NewChanSink(128)
	c := testCar(5, 2, NewFixed(1, nil), sink)
	c.PressCab(3)
	c.PressCab(7)

	drive(c, 30)

	snap := c.Snapshot()
	if snap.Behaviour != types.Idle || snap.Floor != 7 {
		t.Errorf("Expected idle at floor 7, got %v at floor %v", snap.Behaviour, snap.Floor)
	}
	if len(snap.Pending) != 0 {
		t.Errorf("Expected empty pending set, got %v", snap.Pending)
	}
	opened := doorOpenFloors(sink)
	expected := []int{3, 7}
	if len(opened) != len(expected) {
		t.Fatalf("Expected door openings %v, got %v", expected, opened)
	}
	for i := range expected {
		if opened[i] != expected[i] {
			t.Errorf("Expected door openings %v, got %v", expected, opened)
			break
		}
	}
}

// A pending floor added while the car is en route is serviced when passed,
// even though it was not the computed target.
func TestCar_StopsForPassedPendingFloor(t *testing.T) {
	sink := watch.NewChanSink(128)
	c := testCar(5, 2, NewFixed(1, nil), sink)
	c.PressCab(7)

	drive(c, 3) // departs, then reaches floor 3
	if snap := c.Snapshot(); snap.Floor != 3 || snap.Behaviour != types.Moving {
		t.Fatalf("Expected moving at floor 3, got %v at floor %v", snap.Behaviour, snap.Floor)
	}
	c.AddPickup(5)
	drive(c, 20)

	opened := doorOpenFloors(sink)
	expected := []int{5, 7}
	if len(opened) != len(expected) {
		t.Fatalf("Expected door openings %v, got %v", expected, opened)
	}
	for i := range expected {
		if opened[i] != expected[i] {
			t.Errorf("Expected door openings %v, got %v", expected, opened)
			break
		}
	}
}

// From floor 5 with pending {2, 6} the up leg is served first, then the car
// reverses for 2.
func TestCar_ReversesAfterUpLeg(t *testing.T) {
	sink := watch.NewChanSink(128)
	c := testCar(5, 2, NewFixed(1, nil), sink)
	c.PressCab(5)
	drive(c, 15)
	if snap := c.Snapshot(); snap.Floor != 5 || snap.Behaviour != types.Idle {
		t.Fatalf("Expected idle at floor 5, got %v at floor %v", snap.Behaviour, snap.Floor)
	}
	drain(sink)

	c.PressCab(6)
	c.PressCab(2)
	drive(c, 25)

	opened := doorOpenFloors(sink)
	expected := []int{6, 2}
	if len(opened) != len(expected) {
		t.Fatalf("Expected door openings %v, got %v", expected, opened)
	}
	for i := range expected {
		if opened[i] != expected[i] {
			t.Errorf("Expected door openings %v, got %v", expected, opened)
			break
		}
	}
}

// Three riders want in at floor 3 but only two seats are free. Load never
// exceeds capacity and the excess rider is simply not modeled.
func TestCar_CapacityBound(t *testing.T) {
	c := testCar(2, 2, NewFixed(1, map[int][]int{3: {4, 5, 6}}), watch.Nop{})
	c.AddPickup(3)

	maxLoad := 0
	for i := 0; i < 40; i++ {
		c.step(uint64(i + 1))
		snap := c.Snapshot()
		if snap.Load > snap.Capacity {
			t.Fatalf("Load %v exceeds capacity %v", snap.Load, snap.Capacity)
		}
		if snap.Load > maxLoad {
			maxLoad = snap.Load
		}
	}
	if maxLoad != 2 {
		t.Errorf("Expected peak load 2, got %v", maxLoad)
	}
	if snap := c.Snapshot(); snap.Load != 0 || len(snap.Pending) != 0 {
		t.Errorf("Expected unloaded idle car, got load %v pending %v", snap.Load, snap.Pending)
	}
}

// A boarder's destination becomes a cab call and alights later.
func TestCar_BoarderPressesDestination(t *testing.T) {
	c := testCar(5, 2, NewFixed(1, map[int][]int{2: {5}}), watch.Nop{})
	c.AddPickup(2)

	drive(c, 5) // depart, arrive at 2, board
	snap := c.Snapshot()
	if snap.Load != 1 {
		t.Errorf("Expected load 1 after boarding, got %v", snap.Load)
	}
	found := false
	for _, f := range snap.Pending {
		if f == 5 {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected destination 5 pending, got %v", snap.Pending)
	}

	drive(c, 20)
	if snap := c.Snapshot(); snap.Load != 0 || snap.Floor != 5 {
		t.Errorf("Expected empty car parked at 5, got load %v floor %v", snap.Load, snap.Floor)
	}
}

func TestCar_DuplicateCabPress(t *testing.T) {
	c := testCar(5, 2, NewFixed(1, nil), watch.Nop{})
	c.PressCab(4)
	c.PressCab(4)
	if snap := c.Snapshot(); len(snap.Pending) != 1 {
		t.Errorf("Expected one pending floor, got %v", snap.Pending)
	}
}

func TestCar_RejectsOutOfBoundsFloors(t *testing.T) {
	c := testCar(5, 2, NewFixed(1, nil), watch.Nop{})
	var invalid types.InvalidFloorError
	if err := c.PressCab(11); !errors.As(err, &invalid) {
		t.Errorf("Expected InvalidFloorError for floor 11, got %v", err)
	}
	if err := c.AddPickup(0); !errors.As(err, &invalid) {
		t.Errorf("Expected InvalidFloorError for floor 0, got %v", err)
	}
	if snap := c.Snapshot(); len(snap.Pending) != 0 {
		t.Errorf("Expected no pending floors after rejections, got %v", snap.Pending)
	}
}

func TestCar_NoPendingStaysIdle(t *testing.T) {
	sink := watch.NewChanSink(16)
	c := testCar(5, 2, NewFixed(1, nil), sink)
	drive(c, 5)
	snap := c.Snapshot()
	if snap.Behaviour != types.Idle || snap.Floor != 1 {
		t.Errorf("Expected idle at floor 1, got %v at floor %v", snap.Behaviour, snap.Floor)
	}
	select {
	case e := <-sink.Events():
		t.Errorf("Expected no events while parked, got %v", e.Type)
	default:
	}
}

// Doors stay open for exactly the configured dwell, then close.
func TestCar_DoorDwellTicks(t *testing.T) {
	c := testCar(5, 3, NewFixed(1, nil), watch.Nop{})
	c.AddPickup(1)

	c.step(1)
	if snap := c.Snapshot(); snap.Behaviour != types.DoorsOpen {
		t.Fatalf("Expected doors open after service, got %v", snap.Behaviour)
	}
	openTicks := 0
	for i := 0; i < 10; i++ {
		c.step(uint64(i + 2))
		if c.Snapshot().Behaviour != types.DoorsOpen {
			break
		}
		openTicks++
	}
	if openTicks != 2 {
		t.Errorf("Expected doors open for 2 further ticks before closing, got %v", openTicks)
	}
	if snap := c.Snapshot(); snap.Behaviour == types.DoorsOpen {
		t.Errorf("Expected doors closed, still open")
	}
}

func TestCar_RunShutsDownCleanly(t *testing.T) {
	ticks := clock.NewManual()
	c := testCar(5, 2, NewFixed(1, nil), watch.Nop{})
	c.ticks = ticks

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		c.Run(stop)
		close(done)
	}()

	c.PressCab(3)
	ticks.Advance(3)
	close(stop)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Errorf("Expected Run to return after stop signal")
	}
}
