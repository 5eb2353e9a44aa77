// Package event provides the in-process event dispatch core: a typed
// publish/subscribe bus that lets independent subsystems and the scripting
// layer react to game occurrences without direct coupling.
//
// # Architecture
//
// One Bus instance owns three pieces of thread-confined state:
//
//   - a handler registry mapping (receiver, kind) keys to insertion-ordered
//     subscriber lists
//   - a bounded FIFO queue of deferred events, drained once per tick
//   - the dispatch engine that resolves a key, applies simulation-state
//     filtering, and invokes each eligible handler in registration order
//
// Producers either defer delivery (Notify, NotifyEntity) or dispatch
// synchronously (NotifyImmediate, NotifyEntityImmediate). The tick driver,
// ServiceQueue, brackets each drain between synthetic update-start,
// update-ui and update-end markers:
//
//	bus, _ := event.New(event.WithSimState(holder.Current))
//	defer bus.Close()
//
//	bus.Register(event.KindEntityDamaged, onDamage, nil, sim.Running)
//	bus.NotifyEntity(event.KindEntityDamaged, ent, dmg, event.OriginNative)
//
//	// once per simulation tick, on the owning goroutine:
//	if err := bus.ServiceQueue(); err != nil {
//	    // a scripted handler faulted; fatal to the tick
//	}
//
// # Delivery guarantees
//
// Within one dispatch, handlers fire in registration order. Across one
// ServiceQueue call, events fire in FIFO publish order, with events
// published by handlers during the drain consumed before the drain exits.
// Dispatch iterates a snapshot of the subscriber list, so a handler that
// unregisters itself or a sibling mid-delivery does not disturb that
// delivery; the mutation is visible from the next delivery on.
//
// # Scripted handlers
//
// Scripted callables and scripted-origin payloads are reference-counted
// values owned by a scripting runtime. The bus reaches them only through
// the narrow ScriptRuntime interface (invoke, identity, retain, release,
// wrap, unwrap), so any embedding can supply its own runtime. The registry
// retains callable and argument references for the subscription lifetime,
// and the dispatcher releases a scripted-origin payload exactly once after
// the last handler has observed it.
//
// # Threading
//
// A Bus is deliberately unsynchronized. Every method must run on the single
// goroutine that owns the simulation tick; handlers must not block or touch
// the bus from other goroutines. The single-thread execution model is the
// lock.
package event
