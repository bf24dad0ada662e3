// ABOUTME: Core types for package manager detection: manager ids, signals, resolution
// ABOUTME: Closed manager set (npm, yarn, pnpm, bun) with a fixed priority order

package pkgmanager

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownManager is returned when an API is handed a manager id outside
// the supported set. This is the one detection failure that is an error,
// not an absorbed no-signal: it means calling code is broken.
var ErrUnknownManager = errors.New("unknown package manager")

// Manager identifies a supported JavaScript package manager.
type Manager int

const (
	Npm Manager = iota
	Yarn
	Pnpm
	Bun

	managerCount
)

// Managers returns the supported managers in detection priority order:
// npm, yarn, pnpm, bun. Lockfile scanning and the first-available system
// fallback both follow this order.
func Managers() []Manager {
	return []Manager{Npm, Yarn, Pnpm, Bun}
}

// String returns the command name of the manager.
func (m Manager) String() string {
	switch m {
	case Npm:
		return "npm"
	case Yarn:
		return "yarn"
	case Pnpm:
		return "pnpm"
	case Bun:
		return "bun"
	default:
		return "unknown"
	}
}

// Known reports whether m is one of the supported managers.
func (m Manager) Known() bool {
	return m >= 0 && m < managerCount
}

// ParseManager converts a manager name to its Manager id. Matching is
// exact on the canonical lowercase names; user input should be trimmed
// and lowercased first (see ResolveOverride).
func ParseManager(s string) (Manager, error) {
	switch s {
	case "npm":
		return Npm, nil
	case "yarn":
		return Yarn, nil
	case "pnpm":
		return Pnpm, nil
	case "bun":
		return Bun, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownManager, s)
	}
}

// Provenance records which detection stage produced a resolution.
type Provenance int

const (
	ProvenanceNone Provenance = iota
	ProvenanceOverride
	ProvenanceLockfile
	ProvenanceWorkspace
	ProvenanceSystemDefault
)

// String returns the stage name as shown in diagnostics.
func (p Provenance) String() string {
	switch p {
	case ProvenanceOverride:
		return "override"
	case ProvenanceLockfile:
		return "lockfile"
	case ProvenanceWorkspace:
		return "workspace"
	case ProvenanceSystemDefault:
		return "system-default"
	default:
		return "none"
	}
}

// WorkspaceKind classifies the workspace configuration of a directory.
type WorkspaceKind int

const (
	WorkspaceNone WorkspaceKind = iota
	WorkspaceNpm
	WorkspaceYarn
	WorkspacePnpm
)

// String returns the workspace kind as the name of its manager.
func (k WorkspaceKind) String() string {
	switch k {
	case WorkspaceNpm:
		return "npm"
	case WorkspaceYarn:
		return "yarn"
	case WorkspacePnpm:
		return "pnpm"
	default:
		return "none"
	}
}

// Manager returns the manager implied by the workspace kind.
func (k WorkspaceKind) Manager() (Manager, bool) {
	switch k {
	case WorkspaceNpm:
		return Npm, true
	case WorkspaceYarn:
		return Yarn, true
	case WorkspacePnpm:
		return Pnpm, true
	default:
		return 0, false
	}
}

// LockfileSignal is the outcome of scanning a directory for lockfiles.
type LockfileSignal struct {
	Dir     string
	Manager Manager
	Found   bool
	Path    string // path of the matched lockfile
}

// WorkspaceSignal is the outcome of reading workspace configuration.
// Globs is best effort: a malformed config still classifies the
// workspace but yields no member globs.
type WorkspaceSignal struct {
	Dir        string
	Kind       WorkspaceKind
	ConfigPath string // file that classified the workspace
	Globs      []string
}

// OverrideSignal is the outcome of interpreting an explicit override
// string. Demoted is set when a valid override named a manager that is
// not installed and the chain fell through to weaker signals.
type OverrideSignal struct {
	Raw     string
	Manager Manager
	Valid   bool
	Demoted bool
}

// Resolution is the final answer: which manager governs a directory and
// why. The contributing signals are always carried, even when the chosen
// manager turns out unavailable, so diagnostics can show the full chain.
type Resolution struct {
	Dir        string
	Manager    Manager
	Found      bool
	Provenance Provenance

	Override  OverrideSignal
	Lockfile  LockfileSignal
	Workspace WorkspaceSignal
}

// Ambiguous reports whether the detection signals name more than one
// distinct manager. Signals that agree on a single manager are not a
// conflict. Precedence still picks a winner; this only flags that the
// project carries conflicting evidence worth surfacing.
func (r Resolution) Ambiguous() bool {
	var named [managerCount]bool
	if r.Override.Valid {
		named[r.Override.Manager] = true
	}
	if r.Lockfile.Found {
		named[r.Lockfile.Manager] = true
	}
	if m, ok := r.Workspace.Kind.Manager(); ok {
		named[m] = true
	}
	n := 0
	for _, hit := range named {
		if hit {
			n++
		}
	}
	return n > 1
}

// Execution captures the outcome of a dispatched manager command. Child
// failures are data here, not errors: a non-zero exit, a timeout, or a
// missing binary is recorded in the struct and the error return of the
// dispatch APIs stays nil.
type Execution struct {
	Command  string
	Args     []string
	Dir      string
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
	TimedOut bool
}

// Ok reports whether the command ran to completion with exit status 0.
func (e Execution) Ok() bool {
	return !e.TimedOut && e.ExitCode == 0
}
