package event

import "github.com/dshills/gamebus/internal/sim"

// Kind identifies what occurred. Kinds are opaque, totally-ordered values;
// the engine reserves a block of well-known kinds below and embeddings may
// define their own starting at KindUser.
type Kind int32

const (
	// KindUpdateStart is the synthetic tick-phase marker fired by
	// ServiceQueue before the deferred queue is drained.
	KindUpdateStart Kind = iota

	// KindUpdateUI is the synthetic tick-phase marker fired after the drain.
	KindUpdateUI

	// KindUpdateEnd is the synthetic tick-phase marker closing the tick.
	KindUpdateEnd

	// KindNewGame signals that a new game session was set up.
	KindNewGame

	// KindSimStateChanged signals a simulation state transition. The payload
	// is the new sim.State.
	KindSimStateChanged

	// KindRender3D signals that the 3D scene is about to be rendered.
	// Published immediately; deferring it a tick would be observably late.
	KindRender3D

	// KindRenderUI signals that the UI overlay is about to be rendered.
	KindRenderUI

	// KindAnimCycleFinished signals that an entity's animation clip completed
	// one cycle.
	KindAnimCycleFinished

	// KindAnimFinished signals that a non-looping animation clip finished.
	KindAnimFinished

	// KindEntityDeath signals that an entity died.
	KindEntityDeath

	// KindAttackStart signals that an entity began an attack.
	KindAttackStart

	// KindAttackEnd signals that an entity finished an attack.
	KindAttackEnd

	// KindEntityDamaged signals that an entity took damage.
	KindEntityDamaged

	// KindConfigChanged signals that the subsystem configuration file was
	// modified on disk and reloaded.
	KindConfigChanged

	// KindUser is the first kind value available to embeddings.
	KindUser
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindUpdateStart:
		return "update-start"
	case KindUpdateUI:
		return "update-ui"
	case KindUpdateEnd:
		return "update-end"
	case KindNewGame:
		return "new-game"
	case KindSimStateChanged:
		return "simstate-changed"
	case KindRender3D:
		return "render-3d"
	case KindRenderUI:
		return "render-ui"
	case KindAnimCycleFinished:
		return "anim-cycle-finished"
	case KindAnimFinished:
		return "anim-finished"
	case KindEntityDeath:
		return "entity-death"
	case KindAttackStart:
		return "attack-start"
	case KindAttackEnd:
		return "attack-end"
	case KindEntityDamaged:
		return "entity-damaged"
	case KindConfigChanged:
		return "config-changed"
	default:
		return "user"
	}
}

// ReceiverID scopes an event to a single entity, or to the global scope via
// GlobalID.
type ReceiverID uint32

// GlobalID is the reserved receiver for events not associated with any
// entity. Real entity identifiers must never reach this value.
const GlobalID = ReceiverID(^uint32(0))

// Key is the registry lookup key for one (receiver, kind) pair. Distinct
// pairs always map to distinct keys: Kind occupies the low 32 bits and the
// receiver the high 32. Keys are never persisted or compared across
// processes.
type Key uint64

// KeyFor derives the registry key for a receiver and kind.
func KeyFor(receiver ReceiverID, kind Kind) Key {
	return Key(uint64(receiver)<<32 | uint64(uint32(kind)))
}

// Origin records which side of the scripting boundary produced an event's
// payload. It decides payload ownership: scripted payloads are released
// through the bridge exactly once after delivery, native payloads are never
// managed by the dispatcher.
type Origin int

const (
	// OriginNative marks a payload produced by engine code.
	OriginNative Origin = iota

	// OriginScripted marks a payload owned by the scripting runtime.
	OriginScripted
)

// String returns a human-readable origin name.
func (o Origin) String() string {
	switch o {
	case OriginNative:
		return "native"
	case OriginScripted:
		return "scripted"
	default:
		return "unknown"
	}
}

// Event is one occurrence flowing through the bus.
type Event struct {
	// Kind is the category of occurrence.
	Kind Kind

	// Payload is the event argument. May be nil. For OriginScripted events
	// it is a Ref owned by the scripting runtime until dispatch completes.
	Payload any

	// Origin determines payload ownership semantics.
	Origin Origin

	// Receiver scopes delivery to one entity, or GlobalID.
	Receiver ReceiverID
}

// SimStateFunc reports the current simulation state. It is read once per
// dispatch so every handler within one delivery sees the same value.
type SimStateFunc func() sim.State
