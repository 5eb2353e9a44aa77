package events

// AnimCycleFinished is the payload for KindAnimCycleFinished.
type AnimCycleFinished struct {
	// Clip is the name of the animation clip that completed a cycle.
	Clip string
}

// AnimFinished is the payload for KindAnimFinished.
type AnimFinished struct {
	// Clip is the name of the non-looping clip that finished.
	Clip string
}
