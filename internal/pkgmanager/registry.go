// ABOUTME: Shared registry of live dispatched processes for teardown cleanup
// ABOUTME: Cleanup terminates process groups with SIGTERM, escalating to SIGKILL

package pkgmanager

import (
	"os/exec"
	"sync"
	"time"
)

// cleanupGrace is how long Cleanup waits between SIGTERM and SIGKILL.
const cleanupGrace = 5 * time.Second

// Registry tracks every process the dispatcher has started and not yet
// reaped. One registry is shared per Runner, so a single Cleanup call at
// teardown covers in-flight installs and dev servers alike.
type Registry struct {
	mu    sync.Mutex
	procs map[*exec.Cmd]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{procs: make(map[*exec.Cmd]struct{})}
}

// Add registers a started command.
func (r *Registry) Add(cmd *exec.Cmd) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.procs[cmd] = struct{}{}
}

// Remove deregisters a command once it has been reaped.
func (r *Registry) Remove(cmd *exec.Cmd) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.procs, cmd)
}

// Len returns the number of live registered processes.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.procs)
}

// contains reports whether cmd is still registered. The escalation
// timers consult this so a SIGKILL never lands on a process group whose
// id may already have been reused.
func (r *Registry) contains(cmd *exec.Cmd) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.procs[cmd]
	return ok
}

// Cleanup terminates every registered process group: SIGTERM first, then
// SIGKILL for whatever is still registered after the grace period. Safe
// to call repeatedly and with concurrent Add/Remove; signaling an
// already-dead group is a no-op.
func (r *Registry) Cleanup() {
	r.mu.Lock()
	procs := make([]*exec.Cmd, 0, len(r.procs))
	for cmd := range r.procs {
		procs = append(procs, cmd)
	}
	r.mu.Unlock()

	if len(procs) == 0 {
		return
	}
	for _, cmd := range procs {
		_ = terminateGroup(cmd)
	}

	deadline := time.After(cleanupGrace)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-deadline:
			r.mu.Lock()
			for cmd := range r.procs {
				_ = killGroup(cmd)
			}
			r.mu.Unlock()
			return
		case <-tick.C:
			if r.Len() == 0 {
				return
			}
		}
	}
}
