package event

import "fmt"

// stubRuntime is a recording ScriptRuntime for tests. Refs are plain
// comparable Go values; refcounts are tracked per ref.
type stubRuntime struct {
	refs      map[Ref]int
	calls     []stubCall
	invokeErr error
}

// stubCall records one Invoke.
type stubCall struct {
	callable Ref
	arg      Ref
	payload  Ref
}

// stubWeak marks a ref as a weak-reference wrapper around target.
type stubWeak struct {
	target Ref
}

// stubWrapped is the scripting-visible representation of a native payload.
type stubWrapped struct {
	kind    Kind
	payload any
}

func newStubRuntime() *stubRuntime {
	return &stubRuntime{refs: make(map[Ref]int)}
}

func (s *stubRuntime) Invoke(callable, arg, payload Ref) error {
	s.calls = append(s.calls, stubCall{callable: callable, arg: arg, payload: payload})
	return s.invokeErr
}

func (s *stubRuntime) IdentityEquals(a, b Ref) bool {
	return a == b
}

func (s *stubRuntime) Retain(ref Ref) {
	s.refs[ref]++
}

func (s *stubRuntime) Release(ref Ref) {
	s.refs[ref]--
}

func (s *stubRuntime) WrapNative(kind Kind, payload any) Ref {
	return stubWrapped{kind: kind, payload: payload}
}

func (s *stubRuntime) UnwrapWeak(ref Ref) Ref {
	if w, ok := ref.(stubWeak); ok {
		return w.target
	}
	return ref
}

func (s *stubRuntime) refCount(ref Ref) int {
	return s.refs[ref]
}

// checkBalanced fails the runtime invariant check if any ref has a nonzero
// count after all retains and releases should have paired up.
func (s *stubRuntime) checkBalanced() error {
	for ref, n := range s.refs {
		if n != 0 {
			return fmt.Errorf("ref %v has count %d", ref, n)
		}
	}
	return nil
}
