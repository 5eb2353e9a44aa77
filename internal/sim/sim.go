package sim

// State is a bitmask describing the current simulation mode. Handler phase
// masks are ANDed against the current state at dispatch time, so a handler
// can opt into any combination of modes.
type State int

const (
	// Running means the simulation is advancing normally.
	Running State = 1 << iota

	// PausedFull means both the simulation and the UI are frozen.
	PausedFull

	// PausedUIRunning means the simulation is frozen but the UI still ticks.
	PausedUIRunning
)

// Any matches every simulation state. Handlers registered with Any are
// never filtered out by phase masking.
const Any = Running | PausedFull | PausedUIRunning

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case PausedFull:
		return "paused"
	case PausedUIRunning:
		return "paused-ui-running"
	default:
		return "mixed"
	}
}

// Holder is a mutable cell for the current simulation state. It is
// thread-confined like the rest of the event core: only the tick-owning
// goroutine may call Set or Current.
type Holder struct {
	state   State
	changed func(State)
}

// NewHolder creates a Holder starting in the given state. The optional
// changed callback fires on every transition to a different state; callers
// typically use it to publish a state-changed event.
func NewHolder(initial State, changed func(State)) *Holder {
	return &Holder{state: initial, changed: changed}
}

// Current returns the current simulation state.
func (h *Holder) Current() State {
	return h.state
}

// Set transitions to a new state. Setting the current state again is a no-op
// and does not fire the changed callback.
func (h *Holder) Set(s State) {
	if s == h.state {
		return
	}
	h.state = s
	if h.changed != nil {
		h.changed(s)
	}
}
