// ABOUTME: Tests for the process registry: tracking, cleanup, idempotence
// ABOUTME: Heavier kill-path coverage lives in the runner and devserver tests

package pkgmanager

import (
	"os/exec"
	"testing"
	"time"
)

func TestRegistry_AddRemoveLen(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if r.Len() != 0 {
		t.Fatalf("fresh registry Len = %d", r.Len())
	}

	a := exec.Command("true")
	b := exec.Command("true")
	r.Add(a)
	r.Add(b)
	if r.Len() != 2 {
		t.Errorf("Len = %d; want 2", r.Len())
	}

	r.Remove(a)
	if r.Len() != 1 {
		t.Errorf("Len = %d; want 1", r.Len())
	}
	// Removing twice is harmless.
	r.Remove(a)
	if r.Len() != 1 {
		t.Errorf("Len = %d after double remove; want 1", r.Len())
	}
	r.Remove(b)
	if r.Len() != 0 {
		t.Errorf("Len = %d; want 0", r.Len())
	}
}

func TestRegistry_CleanupEmpty(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	done := make(chan struct{})
	go func() {
		r.Cleanup()
		r.Cleanup()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Cleanup blocked on empty registry")
	}
}

func TestRegistry_CleanupUnstartedCommand(t *testing.T) {
	t.Parallel()

	// A registered command that never started has no process; Cleanup
	// must skip it rather than crash, and it stays registered.
	r := NewRegistry()
	r.Add(exec.Command("true"))

	done := make(chan struct{})
	go func() {
		r.Cleanup()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(cleanupGrace + 2*time.Second):
		t.Fatal("Cleanup did not return")
	}
}
