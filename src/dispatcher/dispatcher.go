// Routes incoming requests to the best-positioned car. The dispatcher only
// ever touches the pending sets of the chosen car, never its motion state.
package dispatcher

import (
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"liftfleet/src/building"
	"liftfleet/src/strategy"
	"liftfleet/src/types"
)

type Dispatcher struct {
	building  *building.Building
	selection strategy.Selection
	log       zerolog.Logger
	submitted atomic.Uint64
}

func New(b *building.Building, selection strategy.Selection, log zerolog.Logger) *Dispatcher {
	if selection == nil {
		selection = strategy.NearestCar{}
	}
	return &Dispatcher{
		building:  b,
		selection: selection,
		log:       log,
	}
}

// Submit validates a request, picks a car and queues the stop. An
// out-of-bounds floor is rejected, never clamped. The chosen car observes the
// new stop on its own next decision point.
func (d *Dispatcher) Submit(req types.Request) error {
	if req.Floor < d.building.MinFloor() || req.Floor > d.building.MaxFloor() {
		err := types.InvalidFloorError{
			Floor: req.Floor,
			Min:   d.building.MinFloor(),
			Max:   d.building.MaxFloor(),
		}
		d.log.Warn().Uint64("request", req.ID).Int("floor", req.Floor).Msg("Request rejected")
		return fmt.Errorf("submit request %d: %w", req.ID, err)
	}
	req.CreatedAt = d.submitted.Add(1)

	assignee := d.selection.Select(req, d.building.Snapshots())
	car := d.building.Car(assignee)

	var err error
	if req.Origin == types.Internal {
		err = car.PressCab(req.Floor)
	} else {
		err = car.AddPickup(req.Floor)
	}
	if err != nil {
		return fmt.Errorf("submit request %d: %w", req.ID, err)
	}

	d.log.Info().
		Uint64("request", req.ID).
		Int("floor", req.Floor).
		Str("hint", req.Hint.String()).
		Str("origin", req.Origin.String()).
		Int("car", car.ID()).
		Msg("Request routed")
	return nil
}

// Run consumes requests from a source channel until stop is closed.
// Submission errors are logged and dropped, a bad request never stops intake.
func (d *Dispatcher) Run(requests <-chan types.Request, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			d.log.Info().Msg("Dispatcher shut down")
			return
		case req, ok := <-requests:
			if !ok {
				d.log.Info().Msg("Request source closed, dispatcher shut down")
				return
			}
			if err := d.Submit(req); err != nil {
				d.log.Error().Err(err).Msg("Dropping request")
			}
		}
	}
}
