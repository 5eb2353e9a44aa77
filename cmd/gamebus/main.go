// Package main runs the event dispatch core standalone: it loads a
// configuration file and an optional Lua script, then drives the bus at the
// configured tick rate until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/gamebus/internal/config"
	"github.com/dshills/gamebus/internal/event"
	"github.com/dshills/gamebus/internal/event/events"
	"github.com/dshills/gamebus/internal/loop"
	luascript "github.com/dshills/gamebus/internal/script/lua"
	"github.com/dshills/gamebus/internal/sim"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		scriptPath  string
		maxTicks    uint64
		showVersion bool
	)
	flag.StringVar(&configPath, "config", "gamebus.toml", "Path to configuration file")
	flag.StringVar(&configPath, "c", "gamebus.toml", "Path to configuration file (shorthand)")
	flag.StringVar(&scriptPath, "script", "", "Lua script to load (overrides config)")
	flag.Uint64Var(&maxTicks, "ticks", 0, "Stop after this many ticks (0 = run until interrupted)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("gamebus %s\n", version)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if scriptPath != "" {
		cfg.ScriptPath = scriptPath
	}
	initial, err := cfg.SimState()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	rt, err := luascript.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create script runtime: %v\n", err)
		return 1
	}
	defer rt.Close()

	var bus *event.Bus
	holder := sim.NewHolder(initial, func(s sim.State) {
		bus.Notify(event.KindSimStateChanged, events.SimStateChanged{New: s}, event.OriginNative)
	})

	bus, err = event.New(
		event.WithQueueCapacity(cfg.QueueCapacity),
		event.WithSimState(holder.Current),
		event.WithScriptRuntime(rt),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize event core: %v\n", err)
		return 1
	}
	defer bus.Close()

	rt.Install(bus)
	if cfg.ScriptPath != "" {
		if err := rt.DoFile(cfg.ScriptPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: script %s: %v\n", cfg.ScriptPath, err)
			return 1
		}
	}

	watcher, err := config.NewWatcher(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to watch config: %v\n", err)
		return 1
	}
	defer watcher.Close()

	if err := bus.Notify(event.KindNewGame, nil, event.OriginNative); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := loop.New(bus, cfg.TickInterval(), watcher.Changes())
	if err := runner.Run(ctx, maxTicks); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
