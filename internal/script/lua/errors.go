package lua

import "errors"

// Sentinel errors for the Lua runtime.
var (
	// ErrRuntimeClosed is returned when operations are attempted on a
	// closed runtime.
	ErrRuntimeClosed = errors.New("lua runtime is closed")

	// ErrNotCallable is returned when a handler invocation targets a value
	// that is not a Lua function.
	ErrNotCallable = errors.New("scripted handler is not callable")

	// ErrNotInstalled is returned by script execution before Install has
	// bound the runtime to a bus.
	ErrNotInstalled = errors.New("events module is not installed")
)
