package event

import (
	"reflect"

	"github.com/dshills/gamebus/internal/sim"
)

// HandlerFunc is a native event handler. It receives the user argument
// supplied at registration time and the event payload. Handlers run to
// completion on the tick-owning goroutine and must not block.
type HandlerFunc func(user, payload any)

// entry is one subscriber in a registry bucket. It is a tagged variant:
// exactly one of fn (native) or callable (scripted) is set.
type entry struct {
	fn   HandlerFunc
	user any

	callable  Ref
	scriptArg Ref

	// mask selects the simulation states this entry fires in.
	mask sim.State
}

func (e *entry) scripted() bool {
	return e.callable != nil
}

// nativeEqual reports whether two native handler functions are the same
// function. Go forbids comparing funcs with ==; the registration-time
// function identity is the pointer reflect reports.
func nativeEqual(a, b HandlerFunc) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// matches implements the unregister identity predicate: native entries
// compare by function identity, scripted entries by runtime identity of the
// callable only. The user argument never participates.
func (e *entry) matches(d descriptor, rt ScriptRuntime) bool {
	if e.scripted() != d.scripted {
		return false
	}
	if d.scripted {
		return rt.IdentityEquals(e.callable, d.callable)
	}
	return nativeEqual(e.fn, d.fn)
}

// descriptor identifies an entry for unregistration.
type descriptor struct {
	scripted bool
	fn       HandlerFunc
	callable Ref
}
