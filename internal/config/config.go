package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/gamebus/internal/sim"
)

// Defaults applied when the configuration file is absent or a field is
// unset.
const (
	DefaultQueueCapacity = 2048
	DefaultTickRate      = 30
	DefaultInitialState  = "running"
)

// Config is the event subsystem configuration.
type Config struct {
	// QueueCapacity is the deferred event queue size.
	QueueCapacity int `toml:"queue_capacity"`

	// TickRate is the simulation tick frequency in Hz.
	TickRate int `toml:"tick_rate"`

	// ScriptPath is an optional Lua script loaded at startup.
	ScriptPath string `toml:"script_path"`

	// InitialState is the simulation state at startup: "running",
	// "paused" or "paused-ui-running".
	InitialState string `toml:"initial_state"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		QueueCapacity: DefaultQueueCapacity,
		TickRate:      DefaultTickRate,
		InitialState:  DefaultInitialState,
	}
}

// Load reads the configuration from path. A missing file yields Default()
// without an error; a malformed file is an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.QueueCapacity <= 0 {
		return fmt.Errorf("queue_capacity must be positive, got %d", c.QueueCapacity)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %d", c.TickRate)
	}
	if _, err := c.SimState(); err != nil {
		return err
	}
	return nil
}

// TickInterval returns the duration of one simulation tick.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// SimState parses the configured initial simulation state.
func (c Config) SimState() (sim.State, error) {
	switch c.InitialState {
	case "", "running":
		return sim.Running, nil
	case "paused":
		return sim.PausedFull, nil
	case "paused-ui-running":
		return sim.PausedUIRunning, nil
	default:
		return 0, fmt.Errorf("unknown initial_state %q", c.InitialState)
	}
}
