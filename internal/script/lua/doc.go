// Package lua implements the event core's scripting bridge on top of
// gopher-lua.
//
// The bridge models scripted values as reference-counted handles around
// lua.LValue. The event bus retains a handle for the lifetime of a
// subscription and releases scripted-origin payload handles after delivery;
// handles with a zero count are dropped from the runtime's live table and
// become collectible.
//
// Scripts interact with the bus through a global `events` table installed
// by Install:
//
//	events.register(events.ENTITY_DEATH, on_death, events.weak(self))
//	events.register_entity(events.ATTACK_START, ent_id, on_attack, nil, events.RUNNING)
//	events.notify(events.NEW_GAME, { difficulty = "hard" })
//	events.unregister(events.ENTITY_DEATH, on_death)
//
// Like the bus itself, a Runtime is confined to the tick-owning goroutine;
// gopher-lua's LState is not goroutine-safe.
package lua
