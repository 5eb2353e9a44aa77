package loop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dshills/gamebus/internal/event"
	"github.com/dshills/gamebus/internal/event/events"
	"github.com/dshills/gamebus/internal/sim"
)

func TestRunner_TicksAndStops(t *testing.T) {
	bus, err := event.New()
	if err != nil {
		t.Fatalf("event.New() failed: %v", err)
	}
	defer bus.Close()

	starts := 0
	bus.Register(event.KindUpdateStart, func(_, _ any) { starts++ }, nil, sim.Any)

	r := New(bus, time.Millisecond, nil)
	if err := r.Run(context.Background(), 3); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if r.Ticks() != 3 {
		t.Errorf("expected 3 ticks, got %d", r.Ticks())
	}
	if starts != 3 {
		t.Errorf("expected update-start once per tick, got %d", starts)
	}
}

func TestRunner_ContextCancel(t *testing.T) {
	bus, err := event.New()
	if err != nil {
		t.Fatalf("event.New() failed: %v", err)
	}
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(bus, time.Millisecond, nil)
	if err := r.Run(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunner_ConfigChangeRepublished(t *testing.T) {
	bus, err := event.New()
	if err != nil {
		t.Fatalf("event.New() failed: %v", err)
	}
	defer bus.Close()

	var got []string
	bus.Register(event.KindConfigChanged, func(_, payload any) {
		got = append(got, payload.(events.ConfigChanged).Path)
	}, nil, sim.Any)

	changes := make(chan string, 1)
	changes <- "/tmp/gamebus.toml"

	r := New(bus, time.Millisecond, changes)
	if err := r.Run(context.Background(), 1); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if len(got) != 1 || got[0] != "/tmp/gamebus.toml" {
		t.Errorf("expected one config-changed delivery, got %v", got)
	}
}

func TestRunner_PreTick(t *testing.T) {
	bus, err := event.New()
	if err != nil {
		t.Fatalf("event.New() failed: %v", err)
	}
	defer bus.Close()

	fired := 0
	bus.Register(event.KindNewGame, func(_, _ any) { fired++ }, nil, sim.Any)

	r := New(bus, time.Millisecond, nil)
	r.PreTick = func(b *event.Bus) {
		if r.Ticks() == 0 {
			b.Notify(event.KindNewGame, nil, event.OriginNative)
		}
	}
	if err := r.Run(context.Background(), 2); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if fired != 1 {
		t.Errorf("expected pre-tick publish delivered same tick, got %d", fired)
	}
}
