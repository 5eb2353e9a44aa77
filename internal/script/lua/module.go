package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/gamebus/internal/event"
	"github.com/dshills/gamebus/internal/sim"
)

// Install binds the runtime to a bus and exposes the global `events` table
// to scripts. It must be called before any script runs.
func (r *Runtime) Install(bus *event.Bus) {
	m := &module{rt: r, bus: bus}

	t := r.L.SetFuncs(r.L.NewTable(), map[string]lua.LGFunction{
		"register":          m.register,
		"unregister":        m.unregister,
		"register_entity":   m.registerEntity,
		"unregister_entity": m.unregisterEntity,
		"notify":            m.notify,
		"notify_entity":     m.notifyEntity,
		"weak":              m.weak,
	})
	setConstants(t)
	r.L.SetGlobal("events", t)
	r.installed = true
}

// module holds the bus binding for the script-facing API.
type module struct {
	rt  *Runtime
	bus *event.Bus
}

// register(kind, fn [, arg [, mask]])
func (m *module) register(L *lua.LState) int {
	kind := event.Kind(L.CheckInt(1))
	fn := L.CheckFunction(2)
	arg, mask := m.optArgMask(L, 3)

	if err := m.bus.ScriptRegister(kind, m.rt.Wrap(fn), arg, mask); err != nil {
		L.RaiseError("events.register: %s", err.Error())
	}
	return 0
}

// unregister(kind, fn) -> bool
func (m *module) unregister(L *lua.LState) int {
	kind := event.Kind(L.CheckInt(1))
	fn := L.CheckFunction(2)

	L.Push(lua.LBool(m.bus.ScriptUnregister(kind, m.rt.Wrap(fn))))
	return 1
}

// register_entity(kind, ent, fn [, arg [, mask]])
func (m *module) registerEntity(L *lua.LState) int {
	kind := event.Kind(L.CheckInt(1))
	ent := event.ReceiverID(L.CheckInt(2))
	fn := L.CheckFunction(3)
	arg, mask := m.optArgMask(L, 4)

	if err := m.bus.ScriptRegisterEntity(kind, ent, m.rt.Wrap(fn), arg, mask); err != nil {
		L.RaiseError("events.register_entity: %s", err.Error())
	}
	return 0
}

// unregister_entity(kind, ent, fn) -> bool
func (m *module) unregisterEntity(L *lua.LState) int {
	kind := event.Kind(L.CheckInt(1))
	ent := event.ReceiverID(L.CheckInt(2))
	fn := L.CheckFunction(3)

	L.Push(lua.LBool(m.bus.ScriptUnregisterEntity(kind, ent, m.rt.Wrap(fn))))
	return 1
}

// notify(kind [, payload])
func (m *module) notify(L *lua.LState) int {
	kind := event.Kind(L.CheckInt(1))
	payload := m.publishPayload(L, 2)

	if err := m.bus.Notify(kind, payload, event.OriginScripted); err != nil {
		if payload != nil {
			m.rt.Release(payload)
		}
		L.RaiseError("events.notify: %s", err.Error())
	}
	return 0
}

// notify_entity(kind, ent [, payload])
func (m *module) notifyEntity(L *lua.LState) int {
	kind := event.Kind(L.CheckInt(1))
	ent := event.ReceiverID(L.CheckInt(2))
	payload := m.publishPayload(L, 3)

	if err := m.bus.NotifyEntity(kind, ent, payload, event.OriginScripted); err != nil {
		if payload != nil {
			m.rt.Release(payload)
		}
		L.RaiseError("events.notify_entity: %s", err.Error())
	}
	return 0
}

// weak(v) -> weak reference wrapper
//
// The wrapper is what the bus retains; the target's lifetime stays with the
// script. At dispatch time the wrapper resolves back to the target.
func (m *module) weak(L *lua.LState) int {
	target := L.CheckAny(1)

	ud := L.NewUserData()
	ud.Value = m.rt.WrapWeak(target)
	L.Push(ud)
	return 1
}

// optArgMask reads the optional user argument and phase mask starting at
// stack index n.
func (m *module) optArgMask(L *lua.LState, n int) (event.Ref, sim.State) {
	var arg event.Ref
	if L.GetTop() >= n {
		if lv := L.Get(n); lv != lua.LNil {
			arg = m.rt.refFor(lv)
		}
	}
	mask := sim.Any
	if L.GetTop() >= n+1 {
		mask = sim.State(L.CheckInt(n + 1))
	}
	return arg, mask
}

// publishPayload boxes an optional payload at stack index n and transfers
// one reference to the dispatcher.
func (m *module) publishPayload(L *lua.LState, n int) event.Ref {
	if L.GetTop() < n {
		return nil
	}
	lv := L.Get(n)
	if lv == lua.LNil {
		return nil
	}
	ref := m.rt.refFor(lv)
	m.rt.Retain(ref)
	return ref
}

// refFor boxes a Lua value, reusing the existing handle when the value is a
// weak wrapper produced by events.weak.
func (r *Runtime) refFor(lv lua.LValue) event.Ref {
	if ud, ok := lv.(*lua.LUserData); ok {
		if h, ok := ud.Value.(*handle); ok {
			return h
		}
	}
	return r.Wrap(lv)
}

// setConstants publishes event kinds and simulation states to scripts.
func setConstants(t *lua.LTable) {
	kinds := map[string]event.Kind{
		"UPDATE_START":        event.KindUpdateStart,
		"UPDATE_UI":           event.KindUpdateUI,
		"UPDATE_END":          event.KindUpdateEnd,
		"NEW_GAME":            event.KindNewGame,
		"SIMSTATE_CHANGED":    event.KindSimStateChanged,
		"RENDER_3D":           event.KindRender3D,
		"RENDER_UI":           event.KindRenderUI,
		"ANIM_CYCLE_FINISHED": event.KindAnimCycleFinished,
		"ANIM_FINISHED":       event.KindAnimFinished,
		"ENTITY_DEATH":        event.KindEntityDeath,
		"ATTACK_START":        event.KindAttackStart,
		"ATTACK_END":          event.KindAttackEnd,
		"ENTITY_DAMAGED":      event.KindEntityDamaged,
		"CONFIG_CHANGED":      event.KindConfigChanged,
		"USER":                event.KindUser,
	}
	for name, kind := range kinds {
		t.RawSetString(name, lua.LNumber(kind))
	}

	states := map[string]sim.State{
		"RUNNING":           sim.Running,
		"PAUSED_FULL":       sim.PausedFull,
		"PAUSED_UI_RUNNING": sim.PausedUIRunning,
		"ANY":               sim.Any,
	}
	for name, state := range states {
		t.RawSetString(name, lua.LNumber(state))
	}
}
