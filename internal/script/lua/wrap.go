package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/gamebus/internal/event"
	"github.com/dshills/gamebus/internal/event/events"
	"github.com/dshills/gamebus/internal/sim"
)

// wrapPayload builds the scripting-visible representation of a native
// payload. Known engine payloads get a stable, documented table shape;
// anything else falls back to generic conversion.
func (r *Runtime) wrapPayload(kind event.Kind, payload any) lua.LValue {
	switch kind {
	case event.KindSimStateChanged:
		if p, ok := payload.(events.SimStateChanged); ok {
			t := r.L.NewTable()
			t.RawSetString("state", lua.LNumber(p.New))
			t.RawSetString("name", lua.LString(p.New.String()))
			return t
		}
		// SimStateChanged is also published with the bare state value.
		if s, ok := payload.(sim.State); ok {
			t := r.L.NewTable()
			t.RawSetString("state", lua.LNumber(s))
			t.RawSetString("name", lua.LString(s.String()))
			return t
		}

	case event.KindEntityDamaged:
		if p, ok := payload.(events.EntityDamaged); ok {
			t := r.L.NewTable()
			t.RawSetString("attacker", lua.LNumber(p.Attacker))
			t.RawSetString("amount", lua.LNumber(p.Amount))
			return t
		}

	case event.KindEntityDeath:
		if p, ok := payload.(events.EntityDeath); ok {
			t := r.L.NewTable()
			t.RawSetString("killer", lua.LNumber(p.Killer))
			return t
		}

	case event.KindAnimCycleFinished:
		if p, ok := payload.(events.AnimCycleFinished); ok {
			t := r.L.NewTable()
			t.RawSetString("clip", lua.LString(p.Clip))
			return t
		}

	case event.KindAnimFinished:
		if p, ok := payload.(events.AnimFinished); ok {
			t := r.L.NewTable()
			t.RawSetString("clip", lua.LString(p.Clip))
			return t
		}

	case event.KindConfigChanged:
		if p, ok := payload.(events.ConfigChanged); ok {
			t := r.L.NewTable()
			t.RawSetString("path", lua.LString(p.Path))
			return t
		}
	}

	return r.toLua(payload)
}
