package lua

import (
	"path/filepath"
	"testing"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/gamebus/internal/event"
	"github.com/dshills/gamebus/internal/event/events"
	"github.com/dshills/gamebus/internal/sim"
)

func TestDoFile_UnitScript(t *testing.T) {
	bus, rt := newBoundRuntime(t)

	if err := rt.DoFile(filepath.Join("testdata", "unit.lua")); err != nil {
		t.Fatalf("DoFile() failed: %v", err)
	}

	var deaths []any
	bus.Register(event.KindEntityDeath, func(_, p any) {
		deaths = append(deaths, rt.GoValue(p))
	}, nil, sim.Any)

	// Two hits: the second drops the unit to zero and it announces death.
	for _, dmg := range []int{40, 60} {
		err := bus.NotifyEntity(event.KindEntityDamaged, 7,
			events.EntityDamaged{Attacker: 1, Amount: dmg}, event.OriginNative)
		if err != nil {
			t.Fatalf("NotifyEntity() failed: %v", err)
		}
	}
	if err := bus.ServiceQueue(); err != nil {
		t.Fatalf("ServiceQueue() failed: %v", err)
	}

	unit, ok := rt.L.GetGlobal("test_unit").(*lua.LTable)
	if !ok {
		t.Fatal("script did not expose test_unit")
	}
	if unit.RawGetString("attacks_seen") != lua.LNumber(2) {
		t.Errorf("expected 2 attacks seen, got %v", unit.RawGetString("attacks_seen"))
	}
	if unit.RawGetString("hp") != lua.LNumber(0) {
		t.Errorf("expected hp 0, got %v", unit.RawGetString("hp"))
	}

	// The death notify from inside a handler was consumed in the same drain.
	if len(deaths) != 1 {
		t.Fatalf("expected 1 death event, got %d", len(deaths))
	}
	m, ok := deaths[0].(map[string]any)
	if !ok || m["id"] != int64(7) {
		t.Errorf("unexpected death payload: %v", deaths[0])
	}
}
