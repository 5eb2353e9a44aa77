package event

import (
	"fmt"

	"github.com/dshills/gamebus/internal/sim"
)

// Bus is one event dispatch subsystem instance: handler registry, deferred
// queue, dispatch engine, and tick driver. Multiple independent instances
// may coexist (each test gets its own).
//
// A Bus is strictly thread-confined. Every method must be called from the
// single goroutine that owns the simulation tick; no internal locking is
// performed. No method blocks, and every call runs to completion.
type Bus struct {
	registry *registry
	queue    *queue
	config   busConfig
	closed   bool
}

// New allocates a Bus with the given options.
func New(opts ...Option) (*Bus, error) {
	config := defaultBusConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.queueCapacity <= 0 {
		return nil, ErrQueueCapacity
	}
	return &Bus{
		registry: newRegistry(),
		queue:    newQueue(config.queueCapacity),
		config:   config,
	}, nil
}

// Close shuts the subsystem down. Pending scripted-origin events are drained
// and their payload references released without firing any handlers, then
// every retained scripted subscription reference is released. Pending
// native-origin events are discarded; the dispatcher holds no ownership over
// them. Close is idempotent.
func (b *Bus) Close() {
	if b.closed {
		return
	}
	b.closed = true

	rt := b.config.runtime
	for {
		ev, ok := b.queue.pop()
		if !ok {
			break
		}
		if ev.Origin == OriginScripted && rt != nil && ev.Payload != nil {
			rt.Release(ev.Payload)
		}
	}
	for _, e := range b.registry.drain() {
		if !e.scripted() || rt == nil {
			continue
		}
		rt.Release(e.callable)
		if e.scriptArg != nil {
			rt.Release(e.scriptArg)
		}
	}
}

// Pending returns the number of deferred events awaiting the next
// ServiceQueue.
func (b *Bus) Pending() int {
	return b.queue.len()
}

// ServiceQueue runs one tick of event delivery: the synthetic update-start
// marker, a complete drain of the deferred queue, then the update-ui and
// update-end markers. It must be called exactly once per simulation tick.
//
// Events pushed by handlers during the drain are consumed within the same
// drain, enabling same-tick causal chains. A handler that unconditionally
// republishes will loop the tick forever; that is a publisher obligation,
// not something the core defends against.
//
// A scripted handler fault aborts the tick and is returned; events still
// queued at that point remain queued. A native handler panic propagates.
func (b *Bus) ServiceQueue() error {
	if b.closed {
		return ErrClosed
	}

	if err := b.dispatch(Event{Kind: KindUpdateStart, Origin: OriginNative, Receiver: GlobalID}); err != nil {
		return err
	}

	for {
		ev, ok := b.queue.pop()
		if !ok {
			break
		}
		if err := b.dispatch(ev); err != nil {
			return err
		}
	}

	if err := b.dispatch(Event{Kind: KindUpdateUI, Origin: OriginNative, Receiver: GlobalID}); err != nil {
		return err
	}
	return b.dispatch(Event{Kind: KindUpdateEnd, Origin: OriginNative, Receiver: GlobalID})
}

// dispatch delivers one event to every eligible subscriber, in registration
// order, against a snapshot of the subscriber list. The simulation state is
// read once for the whole delivery so a handler that flips it mid-dispatch
// cannot tear the filtering of its siblings. For scripted-origin events the
// payload reference is released exactly once after the last handler, even
// when a handler faults.
func (b *Bus) dispatch(ev Event) error {
	snap := b.registry.snapshot(KeyFor(ev.Receiver, ev.Kind))
	err := b.deliver(ev, snap)
	if ev.Origin == OriginScripted && ev.Payload != nil {
		b.config.runtime.Release(ev.Payload)
	}
	return err
}

func (b *Bus) deliver(ev Event, snap []entry) error {
	if len(snap) == 0 {
		return nil
	}
	state := b.config.simState()

	for i := range snap {
		e := &snap[i]
		if e.mask&state == 0 {
			continue
		}

		if !e.scripted() {
			e.fn(e.user, ev.Payload)
			continue
		}

		rt := b.config.runtime
		var payload Ref
		if ev.Origin == OriginScripted {
			payload = rt.UnwrapWeak(ev.Payload)
		} else {
			payload = rt.WrapNative(ev.Kind, ev.Payload)
		}
		arg := e.scriptArg
		if arg != nil {
			arg = rt.UnwrapWeak(arg)
		}
		if err := rt.Invoke(e.callable, arg, payload); err != nil {
			return &HandlerError{Kind: ev.Kind, Receiver: ev.Receiver, Err: err}
		}
	}
	return nil
}

// publish builds an event and pushes it onto the deferred queue. On
// ErrQueueFull the event was not enqueued and, for scripted origins, payload
// ownership stays with the publisher.
func (b *Bus) publish(kind Kind, receiver ReceiverID, payload any, origin Origin) error {
	if b.closed {
		return ErrClosed
	}
	if origin == OriginScripted && b.config.runtime == nil {
		return ErrNilRuntime
	}
	return b.queue.push(Event{Kind: kind, Payload: payload, Origin: origin, Receiver: receiver})
}

func (b *Bus) publishImmediate(kind Kind, receiver ReceiverID, payload any, origin Origin) error {
	if b.closed {
		return ErrClosed
	}
	if origin == OriginScripted && b.config.runtime == nil {
		return ErrNilRuntime
	}
	return b.dispatch(Event{Kind: kind, Payload: payload, Origin: origin, Receiver: receiver})
}

// Notify publishes a global-scoped event for delivery on the next
// ServiceQueue drain.
func (b *Bus) Notify(kind Kind, payload any, origin Origin) error {
	return b.publish(kind, GlobalID, payload, origin)
}

// NotifyEntity publishes an entity-scoped event for delivery on the next
// ServiceQueue drain.
func (b *Bus) NotifyEntity(kind Kind, ent ReceiverID, payload any, origin Origin) error {
	if ent == GlobalID {
		return ErrReservedReceiver
	}
	return b.publish(kind, ent, payload, origin)
}

// NotifyImmediate dispatches a global-scoped event synchronously, bypassing
// the queue. Used for same-frame, ordering-sensitive signals such as
// KindRender3D where deferring to the next tick would be observably late.
func (b *Bus) NotifyImmediate(kind Kind, payload any, origin Origin) error {
	return b.publishImmediate(kind, GlobalID, payload, origin)
}

// NotifyEntityImmediate dispatches an entity-scoped event synchronously.
func (b *Bus) NotifyEntityImmediate(kind Kind, ent ReceiverID, payload any, origin Origin) error {
	if ent == GlobalID {
		return ErrReservedReceiver
	}
	return b.publishImmediate(kind, ent, payload, origin)
}

// Register subscribes a native handler to a global-scoped kind. The user
// argument is passed back verbatim on every invocation; the registry takes
// no ownership of it. mask selects the simulation states the handler fires
// in (sim.Any for all).
func (b *Bus) Register(kind Kind, fn HandlerFunc, user any, mask sim.State) error {
	return b.registerNative(KeyFor(GlobalID, kind), fn, user, mask)
}

// RegisterEntity subscribes a native handler to events scoped to one entity.
func (b *Bus) RegisterEntity(kind Kind, ent ReceiverID, fn HandlerFunc, user any, mask sim.State) error {
	if ent == GlobalID {
		return ErrReservedReceiver
	}
	return b.registerNative(KeyFor(ent, kind), fn, user, mask)
}

// Unregister removes the first global-scoped native subscription for kind
// whose handler is the same function as fn. It reports whether a
// subscription was removed; unregistering twice returns true then false.
func (b *Bus) Unregister(kind Kind, fn HandlerFunc) bool {
	return b.unregister(KeyFor(GlobalID, kind), descriptor{fn: fn})
}

// UnregisterEntity removes the first entity-scoped native subscription for
// (kind, ent) matching fn.
func (b *Bus) UnregisterEntity(kind Kind, ent ReceiverID, fn HandlerFunc) bool {
	if ent == GlobalID {
		return false
	}
	return b.unregister(KeyFor(ent, kind), descriptor{fn: fn})
}

// ScriptRegister subscribes a scripted callable to a global-scoped kind.
// The registry retains the callable and argument references for the
// lifetime of the subscription.
func (b *Bus) ScriptRegister(kind Kind, callable, arg Ref, mask sim.State) error {
	return b.registerScripted(KeyFor(GlobalID, kind), callable, arg, mask)
}

// ScriptRegisterEntity subscribes a scripted callable to events scoped to
// one entity.
func (b *Bus) ScriptRegisterEntity(kind Kind, ent ReceiverID, callable, arg Ref, mask sim.State) error {
	if ent == GlobalID {
		return ErrReservedReceiver
	}
	return b.registerScripted(KeyFor(ent, kind), callable, arg, mask)
}

// ScriptUnregister removes the first global-scoped scripted subscription for
// kind whose callable is identity-equal to callable. The stored argument
// does not participate in matching. Retained references are released on
// successful removal.
func (b *Bus) ScriptUnregister(kind Kind, callable Ref) bool {
	return b.unregister(KeyFor(GlobalID, kind), descriptor{scripted: true, callable: callable})
}

// ScriptUnregisterEntity removes the first entity-scoped scripted
// subscription for (kind, ent) matching callable.
func (b *Bus) ScriptUnregisterEntity(kind Kind, ent ReceiverID, callable Ref) bool {
	if ent == GlobalID {
		return false
	}
	return b.unregister(KeyFor(ent, kind), descriptor{scripted: true, callable: callable})
}

func (b *Bus) registerNative(key Key, fn HandlerFunc, user any, mask sim.State) error {
	if b.closed {
		return ErrClosed
	}
	if fn == nil {
		return ErrNilHandler
	}
	b.registry.add(key, entry{fn: fn, user: user, mask: mask})
	return nil
}

func (b *Bus) registerScripted(key Key, callable, arg Ref, mask sim.State) error {
	if b.closed {
		return ErrClosed
	}
	if callable == nil {
		return ErrNilHandler
	}
	rt := b.config.runtime
	if rt == nil {
		return ErrNilRuntime
	}
	rt.Retain(callable)
	if arg != nil {
		rt.Retain(arg)
	}
	b.registry.add(key, entry{callable: callable, scriptArg: arg, mask: mask})
	return nil
}

func (b *Bus) unregister(key Key, d descriptor) bool {
	if b.closed {
		return false
	}
	if d.scripted && b.config.runtime == nil {
		return false
	}
	removed, ok := b.registry.remove(key, d, b.config.runtime)
	if !ok {
		return false
	}
	if removed.scripted() {
		b.config.runtime.Release(removed.callable)
		if removed.scriptArg != nil {
			b.config.runtime.Release(removed.scriptArg)
		}
	}
	return true
}

// HandlerError wraps a scripted handler fault with the event it was
// handling. Handler faults are fatal to the tick; the dispatcher performs
// no sandboxing or retry.
type HandlerError struct {
	// Kind is the kind of the event being delivered.
	Kind Kind

	// Receiver is the scope of the event being delivered.
	Receiver ReceiverID

	// Err is the underlying fault.
	Err error
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler fault for %s event (receiver %d): %v", e.Kind, e.Receiver, e.Err)
}

// Unwrap returns the underlying error.
func (e *HandlerError) Unwrap() error {
	return e.Err
}
