// Building is the composition root: the fixed fleet, the floor bounds and the
// lifecycle of the per-car control loops. It is never resized after
// construction.
package building

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"liftfleet/src/clock"
	"liftfleet/src/config"
	"liftfleet/src/elev"
	"liftfleet/src/strategy"
	"liftfleet/src/types"
	"liftfleet/src/watch"
)

type Building struct {
	minFloor int
	maxFloor int
	cars     []*elev.Car
	clocks   []clock.Source

	stopOnce sync.Once
	stop     chan struct{}
	wg       sync.WaitGroup
	log      zerolog.Logger
}

// Deps are the pluggable collaborators for the fleet. Nil fields fall back to
// demo defaults: SCAN/LOOK movement, wall-clock ticks, no event sink.
type Deps struct {
	Movement  strategy.Movement
	Occupants func(carID int) elev.Occupants
	Clocks    func(carID int) clock.Source
	Sink      watch.Sink
	Log       zerolog.Logger
}

// New wires one car per config entry. Every car starts parked at the bottom
// floor, idle, empty and unloaded.
func New(cfg config.FleetConfig, deps Deps) *Building {
	if deps.Movement == nil {
		deps.Movement = strategy.ScanLook{}
	}
	if deps.Occupants == nil {
		deps.Occupants = func(carID int) elev.Occupants {
			return elev.NewRandom(time.Now().UnixNano()+int64(carID), cfg.MinFloor, cfg.MaxFloor)
		}
	}
	if deps.Clocks == nil {
		deps.Clocks = func(int) clock.Source {
			return clock.NewWall(cfg.TickInterval)
		}
	}
	if deps.Sink == nil {
		deps.Sink = watch.Nop{}
	}

	b := &Building{
		minFloor: cfg.MinFloor,
		maxFloor: cfg.MaxFloor,
		stop:     make(chan struct{}),
		log:      deps.Log,
	}
	for i, carCfg := range cfg.Cars {
		ticks := deps.Clocks(i)
		b.clocks = append(b.clocks, ticks)
		b.cars = append(b.cars, elev.New(elev.Config{
			ID:          i,
			MinFloor:    cfg.MinFloor,
			MaxFloor:    cfg.MaxFloor,
			MaxCapacity: carCfg.MaxCapacity,
			DwellTicks:  cfg.DoorDwellTicks,
			Movement:    deps.Movement,
			Occupants:   deps.Occupants(i),
			Ticks:       ticks,
			Sink:        deps.Sink,
			Log:         deps.Log,
		}))
	}
	return b
}

func (b *Building) MinFloor() int { return b.minFloor }
func (b *Building) MaxFloor() int { return b.maxFloor }

func (b *Building) Cars() []*elev.Car { return b.cars }

func (b *Building) Car(i int) *elev.Car { return b.cars[i] }

// Snapshots copies the observable state of every car, in fleet order.
func (b *Building) Snapshots() []types.CarSnapshot {
	snaps := make([]types.CarSnapshot, len(b.cars))
	for i, car := range b.cars {
		snaps[i] = car.Snapshot()
	}
	return snaps
}

// Start launches one control loop goroutine per car.
func (b *Building) Start() {
	b.log.Info().Int("cars", len(b.cars)).Int("minFloor", b.minFloor).Int("maxFloor", b.maxFloor).Msg("Fleet started")
	for _, car := range b.cars {
		b.wg.Add(1)
		go func(c *elev.Car) {
			defer b.wg.Done()
			c.Run(b.stop)
		}(car)
	}
}

// Stop signals every loop to finish its current tick and waits for them.
// Calling Stop more than once is safe.
func (b *Building) Stop() {
	b.stopOnce.Do(func() {
		close(b.stop)
		for _, ticks := range b.clocks {
			ticks.Stop()
		}
	})
	b.wg.Wait()
	b.log.Info().Msg("Fleet stopped")
}
