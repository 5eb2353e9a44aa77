package lua

import (
	"fmt"

	"github.com/google/uuid"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/gamebus/internal/event"
)

// handle is the bridge's Ref representation: a counted box around one Lua
// value. The count tracks subscription and payload ownership taken through
// Retain/Release; it is not the Lua GC's business.
type handle struct {
	id   uuid.UUID
	val  lua.LValue
	weak bool
	refs int
}

// Runtime implements event.ScriptRuntime using an embedded gopher-lua
// state. It is thread-confined: every method, and all script execution,
// must happen on the tick-owning goroutine.
type Runtime struct {
	L *lua.LState

	// live holds every handle with a positive reference count, keeping it
	// addressable for identity checks and release for as long as the bus
	// holds it.
	live map[uuid.UUID]*handle

	installed bool
	closed    bool
}

// New creates a Runtime with a fresh Lua state. Only the base, table,
// string and math libraries are opened; io, os, debug and package stay
// closed to scripts.
func New() (*Runtime, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	return &Runtime{
		L:    L,
		live: make(map[uuid.UUID]*handle),
	}, nil
}

// Close releases the Lua state. The owning bus must be closed first so its
// retained handles have been released.
func (r *Runtime) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.L.Close()
}

// DoFile executes a Lua script file. Install must have been called so the
// script can reach the events table.
func (r *Runtime) DoFile(path string) error {
	if r.closed {
		return ErrRuntimeClosed
	}
	if !r.installed {
		return ErrNotInstalled
	}
	return r.L.DoFile(path)
}

// DoString executes Lua source text.
func (r *Runtime) DoString(code string) error {
	if r.closed {
		return ErrRuntimeClosed
	}
	if !r.installed {
		return ErrNotInstalled
	}
	return r.L.DoString(code)
}

// Wrap boxes a Lua value into a bridge handle. The handle starts with a
// zero reference count; callers that transfer ownership (e.g. publishing a
// scripted-origin payload) must Retain it first.
func (r *Runtime) Wrap(val lua.LValue) event.Ref {
	return &handle{id: uuid.New(), val: val}
}

// WrapWeak boxes a Lua value into a weak-reference handle. The bus stores
// and releases the wrapper; UnwrapWeak resolves it to the target value at
// dispatch time.
func (r *Runtime) WrapWeak(val lua.LValue) event.Ref {
	return &handle{id: uuid.New(), val: val, weak: true}
}

// Value returns the Lua value inside a bridge ref.
func (r *Runtime) Value(ref event.Ref) lua.LValue {
	return r.lvalue(ref)
}

// GoValue converts the Lua value inside a bridge ref to a plain Go value.
// Native handlers use it to consume script-published payloads.
func (r *Runtime) GoValue(ref event.Ref) any {
	return fromLua(r.lvalue(ref))
}

// Invoke calls a scripted handler with its user argument and the event
// payload. Implements event.ScriptRuntime.
func (r *Runtime) Invoke(callable, arg, payload event.Ref) error {
	if r.closed {
		return ErrRuntimeClosed
	}
	fn := r.lvalue(callable)
	if fn.Type() != lua.LTFunction {
		return fmt.Errorf("%w: %s", ErrNotCallable, fn.Type())
	}

	r.L.Push(fn)
	r.L.Push(r.lvalue(arg))
	r.L.Push(r.lvalue(payload))
	if err := r.L.PCall(2, 0, nil); err != nil {
		return fmt.Errorf("lua handler: %w", err)
	}
	return nil
}

// IdentityEquals reports whether two refs box the same Lua value.
// Functions, tables and userdata compare by object identity; scalars by
// value. Implements event.ScriptRuntime.
func (r *Runtime) IdentityEquals(a, b event.Ref) bool {
	ha, okA := a.(*handle)
	hb, okB := b.(*handle)
	if !okA || !okB {
		return false
	}
	return ha.val == hb.val
}

// Retain takes a reference on a handle. Implements event.ScriptRuntime.
func (r *Runtime) Retain(ref event.Ref) {
	h, ok := ref.(*handle)
	if !ok {
		return
	}
	h.refs++
	r.live[h.id] = h
}

// Release drops a reference on a handle; at zero the handle leaves the live
// table and becomes collectible. Implements event.ScriptRuntime.
func (r *Runtime) Release(ref event.Ref) {
	h, ok := ref.(*handle)
	if !ok {
		return
	}
	h.refs--
	if h.refs <= 0 {
		delete(r.live, h.id)
	}
}

// UnwrapWeak resolves a weak-reference handle to a transient handle around
// its target; other refs pass through unchanged. Implements
// event.ScriptRuntime.
func (r *Runtime) UnwrapWeak(ref event.Ref) event.Ref {
	h, ok := ref.(*handle)
	if !ok || !h.weak {
		return ref
	}
	return &handle{id: uuid.New(), val: h.val}
}

// WrapNative converts a native payload into its scripting-visible
// representation for the given kind. Implements event.ScriptRuntime.
func (r *Runtime) WrapNative(kind event.Kind, payload any) event.Ref {
	return &handle{id: uuid.New(), val: r.wrapPayload(kind, payload)}
}

// liveCount reports the number of handles currently held by the bus.
func (r *Runtime) liveCount() int {
	return len(r.live)
}

// lvalue extracts the Lua value from a bridge ref; nil refs map to LNil.
func (r *Runtime) lvalue(ref event.Ref) lua.LValue {
	if ref == nil {
		return lua.LNil
	}
	if h, ok := ref.(*handle); ok {
		return h.val
	}
	return lua.LNil
}
