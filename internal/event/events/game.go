package events

import "github.com/dshills/gamebus/internal/sim"

// SimStateChanged is the payload for KindSimStateChanged.
type SimStateChanged struct {
	// New is the state the simulation just entered.
	New sim.State
}

// EntityDamaged is the payload for KindEntityDamaged.
type EntityDamaged struct {
	// Attacker is the entity that dealt the damage, or zero if
	// environmental.
	Attacker uint32

	// Amount is the damage dealt.
	Amount int
}

// EntityDeath is the payload for KindEntityDeath.
type EntityDeath struct {
	// Killer is the entity that landed the killing blow, or zero.
	Killer uint32
}

// ConfigChanged is the payload for KindConfigChanged.
type ConfigChanged struct {
	// Path is the configuration file that was modified.
	Path string
}
