// ABOUTME: Precedence engine: override > lockfile > workspace > first available manager
// ABOUTME: Pure over injected capabilities; same directory and caps, same answer

package pkgmanager

import "github.com/xaheen/xaheen-go/internal/log"

// Resolver applies the precedence hierarchy over a fixed capability
// snapshot. Capabilities are injected, never probed implicitly, so a
// resolver is deterministic and cheap to call repeatedly.
type Resolver struct {
	caps Capabilities
}

// NewResolver returns a resolver that trusts the given capabilities.
func NewResolver(caps Capabilities) *Resolver {
	return &Resolver{caps: caps}
}

// Resolve determines which manager governs dir.
//
// Signals are consulted strongest first: a valid override naming an
// installed manager wins outright; a valid override naming a missing
// manager is demoted and the chain continues, so a command is never
// dispatched to a binary that is not there. Then the first lockfile in
// priority order, then workspace configuration, then the first installed
// manager on the system. Lockfile and workspace picks are not filtered
// by availability: they state what the project declares, and provenance
// is recorded either way for diagnostics.
func (r *Resolver) Resolve(dir, overrideRaw string) Resolution {
	res := Resolution{
		Dir:       dir,
		Override:  ResolveOverride(overrideRaw),
		Lockfile:  DetectLockfile(dir),
		Workspace: DetectWorkspace(dir),
	}

	if res.Override.Valid {
		if r.caps.Has(res.Override.Manager) {
			return r.pick(res, res.Override.Manager, ProvenanceOverride)
		}
		res.Override.Demoted = true
		log.Warn("override %q names %s, which is not installed; falling back",
			res.Override.Raw, res.Override.Manager)
	}

	if res.Lockfile.Found {
		return r.pick(res, res.Lockfile.Manager, ProvenanceLockfile)
	}

	if m, ok := res.Workspace.Kind.Manager(); ok {
		return r.pick(res, m, ProvenanceWorkspace)
	}

	if m, ok := r.caps.First(); ok {
		return r.pick(res, m, ProvenanceSystemDefault)
	}

	log.Debug("no manager resolved for %s", dir)
	return res
}

func (r *Resolver) pick(res Resolution, m Manager, p Provenance) Resolution {
	res.Manager = m
	res.Found = true
	res.Provenance = p
	log.Debug("resolved %s for %s via %s", m, res.Dir, p)
	return res
}
