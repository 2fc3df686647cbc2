package registry

import "testing"

func TestSetGet(t *testing.T) {
	r := NewRegistry()
	r.SetGlobal("k", 42)
	v, ok := r.GetGlobal("k")
	if !ok || v != 42 {
		t.Errorf("GetGlobal = %v, %v, want 42, true", v, ok)
	}
}

func TestGet_Missing(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.GetGlobal("nope"); ok {
		t.Error("GetGlobal missing key: want false")
	}
}

func TestLock_Unlock(t *testing.T) {
	r := NewRegistry()
	if r.IsLocked("k") {
		t.Error("new key should not be locked")
	}
	r.Lock("k")
	if !r.IsLocked("k") {
		t.Error("Lock did not stick")
	}
	r.UnlockForTesting("k")
	if r.IsLocked("k") {
		t.Error("UnlockForTesting did not unlock")
	}
}
