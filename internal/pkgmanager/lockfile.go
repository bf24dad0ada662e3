// ABOUTME: Lockfile signal detection: first matching lockfile in priority order
// ABOUTME: Filename presence only; contents are never read, errors never surface

package pkgmanager

import (
	"os"
	"path/filepath"
)

// DetectLockfile scans dir for the lockfile of each manager in priority
// order and returns the first match. Detection is filename-based only:
// empty, corrupted, or binary lockfiles still count. The scan is strictly
// directory-local and never descends into node_modules or anywhere else.
// Any filesystem error (missing dir, permission denied) yields no signal.
func DetectLockfile(dir string) LockfileSignal {
	for _, m := range Managers() {
		path := filepath.Join(dir, profiles[m].Lockfile)
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		return LockfileSignal{Dir: dir, Manager: m, Found: true, Path: path}
	}
	return LockfileSignal{Dir: dir}
}
