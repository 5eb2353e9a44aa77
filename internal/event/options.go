package event

import "github.com/dshills/gamebus/internal/sim"

// DefaultQueueCapacity is the deferred queue size used when no override is
// given.
const DefaultQueueCapacity = 2048

// busConfig contains bus construction settings.
type busConfig struct {
	queueCapacity int
	simState      SimStateFunc
	runtime       ScriptRuntime
}

func defaultBusConfig() busConfig {
	return busConfig{
		queueCapacity: DefaultQueueCapacity,
		simState:      func() sim.State { return sim.Running },
	}
}

// Option configures a Bus at construction time.
type Option func(*busConfig)

// WithQueueCapacity overrides the deferred queue capacity.
func WithQueueCapacity(n int) Option {
	return func(c *busConfig) {
		c.queueCapacity = n
	}
}

// WithSimState installs the simulation-state provider consulted once per
// dispatch for phase filtering. The default provider always reports
// sim.Running.
func WithSimState(fn SimStateFunc) Option {
	return func(c *busConfig) {
		if fn != nil {
			c.simState = fn
		}
	}
}

// WithScriptRuntime installs the scripting bridge used for scripted handlers
// and scripted-origin payloads. Without one, scripted registrations and
// scripted-origin events are rejected with ErrNilRuntime.
func WithScriptRuntime(rt ScriptRuntime) Option {
	return func(c *busConfig) {
		c.runtime = rt
	}
}
