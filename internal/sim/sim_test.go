package sim

import "testing"

func TestState_Masking(t *testing.T) {
	if Running&PausedFull != 0 {
		t.Error("states must not overlap")
	}
	if Any&Running == 0 || Any&PausedFull == 0 || Any&PausedUIRunning == 0 {
		t.Error("Any must cover every state")
	}
}

func TestHolder_SetFiresOnTransition(t *testing.T) {
	var got []State
	h := NewHolder(Running, func(s State) { got = append(got, s) })

	h.Set(Running) // no-op
	h.Set(PausedFull)
	h.Set(PausedFull) // no-op
	h.Set(Running)

	if h.Current() != Running {
		t.Errorf("expected Running, got %v", h.Current())
	}
	want := []State{PausedFull, Running}
	if len(got) != len(want) {
		t.Fatalf("expected %d transitions, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("transition %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestHolder_NilCallback(t *testing.T) {
	h := NewHolder(Running, nil)
	h.Set(PausedFull)
	if h.Current() != PausedFull {
		t.Errorf("expected PausedFull, got %v", h.Current())
	}
}
