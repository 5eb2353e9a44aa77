package loop

import (
	"context"
	"time"

	"github.com/dshills/gamebus/internal/event"
	"github.com/dshills/gamebus/internal/event/events"
)

// Runner ticks a bus at a fixed rate on one goroutine.
type Runner struct {
	bus      *event.Bus
	interval time.Duration

	// changes optionally carries config-file change signals; each one is
	// republished as a deferred KindConfigChanged event at the top of the
	// next tick.
	changes <-chan string

	// PreTick, when set, runs at the start of every tick before the queue
	// is serviced. Embeddings use it to feed simulation work onto the bus.
	PreTick func(*event.Bus)

	ticks uint64
}

// New creates a Runner. changes may be nil.
func New(bus *event.Bus, interval time.Duration, changes <-chan string) *Runner {
	return &Runner{bus: bus, interval: interval, changes: changes}
}

// Ticks returns the number of completed ticks.
func (r *Runner) Ticks() uint64 {
	return r.ticks
}

// Run ticks until the context is cancelled, maxTicks is reached
// (0 = unbounded), or a tick fails. The calling goroutine becomes the
// bus-owning thread for the duration.
func (r *Runner) Run(ctx context.Context, maxTicks uint64) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.tick(); err != nil {
				return err
			}
			r.ticks++
			if maxTicks > 0 && r.ticks >= maxTicks {
				return nil
			}
		}
	}
}

func (r *Runner) tick() error {
	r.drainChanges()
	if r.PreTick != nil {
		r.PreTick(r.bus)
	}
	return r.bus.ServiceQueue()
}

func (r *Runner) drainChanges() {
	if r.changes == nil {
		return
	}
	for {
		select {
		case path := <-r.changes:
			// Queue-full here means the embedding is saturated; the reload
			// signal is droppable, the next change will produce another.
			_ = r.bus.Notify(event.KindConfigChanged, events.ConfigChanged{Path: path}, event.OriginNative)
		default:
			return
		}
	}
}
