// Logical tick sources for the car control loops. A car consumes one tick per
// state transition, so tests can drive a loop deterministically while the demo
// runs on a wall-clock ticker.
package clock

import "time"

// Source delivers numbered logical ticks. The channel is closed by Stop.
type Source interface {
	C() <-chan uint64
	Stop()
}

// Wall converts a wall-clock ticker into logical ticks.
type Wall struct {
	ticker *time.Ticker
	out    chan uint64
	done   chan struct{}
}

func NewWall(interval time.Duration) *Wall {
	w := &Wall{
		ticker: time.NewTicker(interval),
		out:    make(chan uint64),
		done:   make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *Wall) run() {
	defer close(w.out)
	var tick uint64
	for {
		select {
		case <-w.done:
			return
		case <-w.ticker.C:
			tick++
			select {
			case w.out <- tick:
			case <-w.done:
				return
			}
		}
	}
}

func (w *Wall) C() <-chan uint64 { return w.out }

func (w *Wall) Stop() {
	w.ticker.Stop()
	close(w.done)
}

// Manual is a hand-driven tick source for tests.
type Manual struct {
	out  chan uint64
	tick uint64
}

func NewManual() *Manual {
	return &Manual{out: make(chan uint64)}
}

func (m *Manual) C() <-chan uint64 { return m.out }

// Advance grants n ticks. The channel is unbuffered, so when Advance returns
// all but the last tick are fully processed by the consumer.
func (m *Manual) Advance(n int) {
	for i := 0; i < n; i++ {
		m.tick++
		m.out <- m.tick
	}
}

func (m *Manual) Stop() { close(m.out) }
