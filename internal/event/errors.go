package event

import "errors"

// Sentinel errors for the event core.
var (
	// ErrQueueFull is returned by Notify when the deferred queue is at
	// capacity. The event was not enqueued; the publisher may retry, drop,
	// or escalate.
	ErrQueueFull = errors.New("event queue is full")

	// ErrNilHandler is returned when a nil handler function or callable is
	// registered.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrNilRuntime is returned when a scripted handler or scripted-origin
	// event is used on a bus constructed without a script runtime.
	ErrNilRuntime = errors.New("no script runtime configured")

	// ErrClosed is returned when operations are attempted on a closed bus.
	ErrClosed = errors.New("event bus is closed")

	// ErrReservedReceiver is returned when an entity-scoped call is made
	// with the global sentinel as the entity id.
	ErrReservedReceiver = errors.New("receiver id is reserved for global scope")

	// ErrQueueCapacity is returned by New when the configured queue
	// capacity is not positive.
	ErrQueueCapacity = errors.New("queue capacity must be positive")
)
