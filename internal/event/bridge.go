package event

// Ref is an opaque reference to a value owned by the scripting runtime.
// The dispatcher never inspects a Ref; it only passes refs back through the
// ScriptRuntime that produced them.
type Ref = any

// ScriptRuntime is the narrow capability surface the dispatcher uses to
// treat scripted handlers uniformly with native ones. Any embedding is free
// to implement it; the core never depends on a concrete scripting runtime.
//
// All methods are called on the tick-owning goroutine and must not block.
type ScriptRuntime interface {
	// Invoke calls a scripted callable with a user argument and an event
	// payload. An error reported here is a handler fault and is fatal to
	// the tick.
	Invoke(callable, arg, payload Ref) error

	// IdentityEquals reports whether two refs denote the same scripted
	// value. Used for unregister matching; compares identity, not value.
	IdentityEquals(a, b Ref) bool

	// Retain takes a reference on a scripted value for the duration of a
	// subscription.
	Retain(ref Ref)

	// Release drops a reference previously taken with Retain, or the
	// dispatcher's ownership of a scripted-origin payload.
	Release(ref Ref)

	// WrapNative converts a native payload into a scripting-visible value
	// for the given kind. The wrapping strategy is kind-specific and owned
	// by the runtime.
	WrapNative(kind Kind, payload any) Ref

	// UnwrapWeak resolves a weak-reference wrapper to the underlying value.
	// Non-weak refs are returned unchanged.
	UnwrapWeak(ref Ref) Ref
}
