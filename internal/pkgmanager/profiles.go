// ABOUTME: Per-manager invocation profiles: command, install/dev args, marker files
// ABOUTME: Single source of truth so detection and dispatch can never disagree

package pkgmanager

// Profile describes how one manager is invoked and which files mark it.
type Profile struct {
	Command       string   // binary name looked up on PATH
	InstallArgs   []string // arguments for a dependency install
	DevArgs       []string // arguments for starting the dev server
	Lockfile      string   // lockfile name claimed by this manager
	WorkspaceFile string   // dedicated workspace config, empty if none
}

// profiles is indexed by Manager and never mutated after init.
var profiles = [managerCount]Profile{
	Npm: {
		Command:     "npm",
		InstallArgs: []string{"install"},
		DevArgs:     []string{"run", "dev"},
		Lockfile:    "package-lock.json",
	},
	Yarn: {
		Command:     "yarn",
		InstallArgs: []string{"install"},
		DevArgs:     []string{"dev"},
		Lockfile:    "yarn.lock",
	},
	Pnpm: {
		Command:       "pnpm",
		InstallArgs:   []string{"install"},
		DevArgs:       []string{"dev"},
		Lockfile:      "pnpm-lock.yaml",
		WorkspaceFile: "pnpm-workspace.yaml",
	},
	Bun: {
		Command:     "bun",
		InstallArgs: []string{"install"},
		DevArgs:     []string{"dev"},
		Lockfile:    "bun.lockb",
	},
}

// ProfileFor returns the invocation profile for m.
func ProfileFor(m Manager) (Profile, error) {
	if !m.Known() {
		return Profile{}, ErrUnknownManager
	}
	return profiles[m], nil
}
