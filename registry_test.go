package luneffi

import "testing"

// Confidence that this function is working: 90%
// TestCallbackManagerTrackUntrack exercises the registry in isolation, with
// a bare zero-value *CallbackHandle standing in for one built by
// CreateCallback -- this test never touches libffi, only the manager's own
// bookkeeping.
func TestCallbackManagerTrackUntrack(t *testing.T) {
	mgr := newCallbackManager()
	h := &CallbackHandle{}

	if mgr.Count() != 0 {
		t.Fatalf("new manager should start empty, got Count()=%d", mgr.Count())
	}

	mgr.track(0x1000, h)
	if mgr.Count() != 1 {
		t.Errorf("Count() = %d after track, want 1", mgr.Count())
	}

	got, ok := mgr.Lookup(0x1000)
	if !ok || got != h {
		t.Errorf("Lookup(0x1000) = (%v, %v), want (h, true)", got, ok)
	}

	mgr.untrack(0x1000)
	if mgr.Count() != 0 {
		t.Errorf("Count() = %d after untrack, want 0", mgr.Count())
	}
	if _, ok := mgr.Lookup(0x1000); ok {
		t.Error("Lookup should fail for an untracked code pointer")
	}
}

// Confidence that this function is working: 85%
func TestCallbackManagerIsolatedPerInstance(t *testing.T) {
	a := newCallbackManager()
	b := newCallbackManager()
	a.track(0x42, &CallbackHandle{})
	if b.Count() != 0 {
		t.Error("a separate manager instance should not see another's entries")
	}
}
