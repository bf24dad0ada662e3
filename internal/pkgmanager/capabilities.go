// ABOUTME: System capability probing: which managers are installed, at what version
// ABOUTME: Parallel LookPath plus --version probes with a per-manager timeout

package pkgmanager

import (
	"context"
	"os/exec"
	"strings"
	"time"
	"unicode"

	"golang.org/x/sync/errgroup"
)

// probeTimeout bounds a single --version invocation. A manager that
// cannot report its version inside this window counts as unavailable.
const probeTimeout = 5 * time.Second

// Capabilities reports which managers are installed on this system.
type Capabilities struct {
	Installed map[Manager]bool
	Versions  map[Manager]string // canonical version, "" when unparsable
}

// Has reports whether m is installed.
func (c Capabilities) Has(m Manager) bool {
	return c.Installed[m]
}

// Version returns the probed version of m, "" when unknown.
func (c Capabilities) Version(m Manager) string {
	return c.Versions[m]
}

// First returns the first installed manager in priority order.
func (c Capabilities) First() (Manager, bool) {
	for _, m := range Managers() {
		if c.Installed[m] {
			return m, true
		}
	}
	return 0, false
}

type probeResult struct {
	installed bool
	version   string
}

// Probe checks every supported manager concurrently and never fails: a
// missing binary, a non-zero exit, or a hung version query only marks
// that manager as unavailable.
func Probe(ctx context.Context) Capabilities {
	var results [managerCount]probeResult

	var g errgroup.Group
	for _, m := range Managers() {
		g.Go(func() error {
			results[m] = probeOne(ctx, profiles[m].Command)
			return nil
		})
	}
	_ = g.Wait()

	caps := Capabilities{
		Installed: make(map[Manager]bool, managerCount),
		Versions:  make(map[Manager]string, managerCount),
	}
	for _, m := range Managers() {
		caps.Installed[m] = results[m].installed
		if results[m].version != "" {
			caps.Versions[m] = results[m].version
		}
	}
	return caps
}

func probeOne(ctx context.Context, command string) probeResult {
	path, err := exec.LookPath(command)
	if err != nil {
		return probeResult{}
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return probeResult{}
	}
	return probeResult{installed: true, version: parseVersion(string(out))}
}

// parseVersion canonicalizes version-query output: first line, leading
// "v" stripped, trailing metadata after space or "+" cut. Returns ""
// when the remainder does not look like a version.
func parseVersion(out string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "v")
	line, _, _ = strings.Cut(line, " ")
	line, _, _ = strings.Cut(line, "+")
	if line == "" || !unicode.IsDigit(rune(line[0])) {
		return ""
	}
	return line
}
