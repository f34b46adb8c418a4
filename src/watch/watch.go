// Fire-and-forget observability events for car state transitions. Cars emit,
// sinks consume; a slow or absent sink never stalls a control loop.
package watch

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"liftfleet/src/types"
)

type EventType int

const (
	FloorChanged EventType = iota
	DirectionChanged
	DoorsOpened
	DoorsClosed
	IdleEntered
)

func (t EventType) String() string {
	switch t {
	case FloorChanged:
		return "floorChanged"
	case DirectionChanged:
		return "directionChanged"
	case DoorsOpened:
		return "doorsOpened"
	case DoorsClosed:
		return "doorsClosed"
	case IdleEntered:
		return "idleEntered"
	default:
		return "unknown"
	}
}

type Event struct {
	ID    uuid.UUID
	Car   int
	Type  EventType
	Floor int
	Dir   types.Direction
	Tick  uint64
}

// New stamps a fresh event id.
func New(car int, t EventType, floor int, dir types.Direction, tick uint64) Event {
	return Event{
		ID:    uuid.New(),
		Car:   car,
		Type:  t,
		Floor: floor,
		Dir:   dir,
		Tick:  tick,
	}
}

type Sink interface {
	Notify(Event)
}

// Nop discards all events.
type Nop struct{}

func (Nop) Notify(Event) {}

// LogSink writes each event as a structured log line.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Notify(e Event) {
	s.log.Info().
		Str("event", e.Type.String()).
		Str("id", e.ID.String()).
		Int("car", e.Car).
		Int("floor", e.Floor).
		Str("dir", e.Dir.String()).
		Uint64("tick", e.Tick).
		Msg("transition")
}

// ChanSink buffers events on a channel and drops when full, so Notify never
// blocks the emitting car.
type ChanSink struct {
	ch chan Event
}

func NewChanSink(buffer int) *ChanSink {
	return &ChanSink{ch: make(chan Event, buffer)}
}

func (s *ChanSink) Notify(e Event) {
	select {
	case s.ch <- e:
	default:
	}
}

func (s *ChanSink) Events() <-chan Event { return s.ch }
