package elev

import (
	"sync"

	"github.com/rs/zerolog"

	"liftfleet/src/clock"
	"liftfleet/src/config"
	"liftfleet/src/strategy"
	"liftfleet/src/types"
	"liftfleet/src/watch"
)

// Car is one elevator: position, direction, door state, load and the two
// pending stop sets. Its control loop exclusively owns the motion state;
// external callers only insert into the pending sets.
type Car struct {
	id          int
	minFloor    int
	maxFloor    int
	maxCapacity int
	dwellTicks  int

	// Guards the motion state below. Held for one step at a time; readers go
	// through Snapshot.
	mu        sync.Mutex
	floor     int
	dir       types.Direction
	behaviour types.CarBehaviour
	load      int
	dwellLeft int
	tick      uint64

	cabCalls *FloorSet
	pickups  *FloorSet

	movement  strategy.Movement
	occupants Occupants
	ticks     clock.Source
	sink      watch.Sink
	log       zerolog.Logger
}

type Config struct {
	ID          int
	MinFloor    int
	MaxFloor    int
	MaxCapacity int
	DwellTicks  int
	Movement    strategy.Movement
	Occupants   Occupants
	Ticks       clock.Source
	Sink        watch.Sink
	Log         zerolog.Logger
}

// New builds a parked car at the bottom floor with empty pending sets.
func New(cfg Config) *Car {
	if cfg.Movement == nil {
		cfg.Movement = strategy.ScanLook{}
	}
	if cfg.Occupants == nil {
		cfg.Occupants = NewFixed(1, nil)
	}
	if cfg.Sink == nil {
		cfg.Sink = watch.Nop{}
	}
	if cfg.DwellTicks < 1 {
		cfg.DwellTicks = config.DoorDwellTicks
	}
	c := &Car{
		id:          cfg.ID,
		minFloor:    cfg.MinFloor,
		maxFloor:    cfg.MaxFloor,
		maxCapacity: cfg.MaxCapacity,
		dwellTicks:  cfg.DwellTicks,
		floor:       cfg.MinFloor,
		dir:         types.DirIdle,
		behaviour:   types.Idle,
		cabCalls:    NewFloorSet(),
		pickups:     NewFloorSet(),
		movement:    cfg.Movement,
		occupants:   cfg.Occupants,
		ticks:       cfg.Ticks,
		sink:        cfg.Sink,
		log:         cfg.Log.With().Int("car", cfg.ID).Logger(),
	}
	c.log.Info().Int("floor", c.floor).Msg("Car initialized")
	return c
}

func (c *Car) ID() int { return c.id }

// AddPickup queues an external pickup at a floor.
func (c *Car) AddPickup(floor int) error {
	if floor < c.minFloor || floor > c.maxFloor {
		return types.InvalidFloorError{Floor: floor, Min: c.minFloor, Max: c.maxFloor}
	}
	if c.pickups.Add(floor) {
		c.log.Debug().Int("floor", floor).Msg("Pickup queued")
	}
	return nil
}

// PressCab queues an internal destination, the cab panel path.
func (c *Car) PressCab(floor int) error {
	if floor < c.minFloor || floor > c.maxFloor {
		return types.InvalidFloorError{Floor: floor, Min: c.minFloor, Max: c.maxFloor}
	}
	if c.cabCalls.Add(floor) {
		c.log.Debug().Int("floor", floor).Msg("Cab call queued")
	}
	return nil
}

// Snapshot copies the observable state for strategies and monitors.
func (c *Car) Snapshot() types.CarSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return types.CarSnapshot{
		ID:        c.id,
		Floor:     c.floor,
		Dir:       c.dir,
		Behaviour: c.behaviour,
		Load:      c.load,
		Capacity:  c.maxCapacity,
		Pending:   c.pendingFloors(),
	}
}

// Run drives the control loop until stop is closed: one tick from the clock,
// one state transition. Shutdown is a clean return, never an error.
func (c *Car) Run(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			c.log.Info().Msg("Car shut down")
			return
		case tick, ok := <-c.ticks.C():
			if !ok {
				c.log.Info().Msg("Tick source closed, car shut down")
				return
			}
			c.step(tick)
		}
	}
}

// step applies exactly one state transition.
func (c *Car) step(tick uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tick = tick

	switch c.behaviour {
	case types.DoorsOpen:
		c.dwellLeft--
		if c.dwellLeft <= 0 {
			c.behaviour = types.DoorsClosed
			c.emit(watch.DoorsClosed)
		}

	case types.Moving:
		target, ok := c.nextStop()
		if !ok {
			c.enterIdle()
			return
		}
		if target != c.floor {
			c.moveToward(target)
		}
		if c.floor == target || c.pendingHere() {
			c.serviceFloor()
		}

	default: // Idle, DoorsClosed
		target, ok := c.nextStop()
		if !ok {
			c.enterIdle()
			return
		}
		if target == c.floor {
			c.serviceFloor()
			return
		}
		c.setDir(directionTo(c.floor, target))
		c.behaviour = types.Moving
		c.log.Debug().Int("target", target).Str("dir", c.dir.String()).Msg("Departing")
	}
}

// moveToward advances one floor toward target and records the travel
// direction.
func (c *Car) moveToward(target int) {
	c.setDir(directionTo(c.floor, target))
	c.floor += int(c.dir)
	c.emit(watch.FloorChanged)
	c.log.Debug().Int("floor", c.floor).Int("target", target).Msg("Moving")
}

// serviceFloor opens the doors and consumes the pending stop: riders alight
// for a cab call, then board for a pickup up to the remaining capacity. Each
// boarder presses one in-bounds destination.
func (c *Car) serviceFloor() {
	c.behaviour = types.DoorsOpen
	c.dwellLeft = c.dwellTicks
	c.emit(watch.DoorsOpened)

	if c.cabCalls.Remove(c.floor) {
		leaving := c.occupants.Alight(c.floor, c.load)
		if leaving < 1 {
			leaving = 1
		}
		if leaving > c.load {
			leaving = c.load
		}
		c.load -= leaving
		c.log.Info().Int("floor", c.floor).Int("leaving", leaving).Int("load", c.load).Msg("Riders alighted")
	}

	if c.pickups.Remove(c.floor) {
		available := c.maxCapacity - c.load
		dests := c.occupants.Board(c.floor, available)
		if len(dests) > available {
			dests = dests[:available]
		}
		boarded := 0
		for _, dest := range dests {
			if dest == c.floor || dest < c.minFloor || dest > c.maxFloor {
				continue
			}
			c.cabCalls.Add(dest)
			boarded++
		}
		c.load += boarded
		c.log.Info().Int("floor", c.floor).Int("boarded", boarded).Int("load", c.load).Msg("Riders boarded")
	}
}

// enterIdle parks the car. Emits only on the transition, an idle car stays
// silent while polling.
func (c *Car) enterIdle() {
	if c.behaviour == types.Idle && c.dir == types.DirIdle {
		return
	}
	c.behaviour = types.Idle
	c.dir = types.DirIdle
	c.emit(watch.IdleEntered)
	c.log.Info().Int("floor", c.floor).Msg("Idle")
}

func (c *Car) setDir(dir types.Direction) {
	if dir == c.dir {
		return
	}
	c.dir = dir
	c.emit(watch.DirectionChanged)
}

func (c *Car) nextStop() (int, bool) {
	return c.movement.NextStop(c.floor, c.dir, c.pendingFloors(), c.minFloor, c.maxFloor)
}

func (c *Car) pendingFloors() []int {
	return append(c.cabCalls.Floors(), c.pickups.Floors()...)
}

func (c *Car) pendingHere() bool {
	return c.cabCalls.Contains(c.floor) || c.pickups.Contains(c.floor)
}

func (c *Car) emit(t watch.EventType) {
	c.sink.Notify(watch.New(c.id, t, c.floor, c.dir, c.tick))
}

func directionTo(from, to int) types.Direction {
	if to > from {
		return types.DirUp
	}
	if to < from {
		return types.DirDown
	}
	return types.DirIdle
}
