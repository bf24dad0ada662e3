// ABOUTME: Workspace member enumeration and nearest-root lookup for diagnostics
// ABOUTME: Expands member globs against the filesystem, honoring pnpm negations

package pkgmanager

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// WorkspacePackages expands the member globs of a workspace signal into
// member directories, relative to the workspace dir and sorted. Only
// directories containing a package.json count, and nothing under
// node_modules ever does. pnpm-style "!" globs exclude matches.
func WorkspacePackages(sig WorkspaceSignal) ([]string, error) {
	if sig.Kind == WorkspaceNone || len(sig.Globs) == 0 {
		return nil, nil
	}

	var includes, excludes []string
	for _, g := range sig.Globs {
		if neg, ok := strings.CutPrefix(g, "!"); ok {
			excludes = append(excludes, neg)
			continue
		}
		includes = append(includes, g)
	}

	fsys := os.DirFS(sig.Dir)
	seen := make(map[string]struct{})
	var members []string
	for _, g := range includes {
		matches, err := doublestar.Glob(fsys, g)
		if err != nil {
			return nil, fmt.Errorf("workspace glob %q: %w", g, err)
		}
		for _, rel := range matches {
			if !isMemberDir(fsys, rel) || excludedBy(rel, excludes) {
				continue
			}
			if _, dup := seen[rel]; dup {
				continue
			}
			seen[rel] = struct{}{}
			members = append(members, rel)
		}
	}
	sort.Strings(members)
	return members, nil
}

func isMemberDir(fsys fs.FS, rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if part == "node_modules" {
			return false
		}
	}
	info, err := fs.Stat(fsys, rel)
	if err != nil || !info.IsDir() {
		return false
	}
	_, err = fs.Stat(fsys, path.Join(rel, packageJSONFile))
	return err == nil
}

func excludedBy(rel string, excludes []string) bool {
	for _, pattern := range excludes {
		if match, _ := doublestar.Match(pattern, rel); match {
			return true
		}
	}
	return false
}

// NearestWorkspaceRoot walks upward from dir and returns the first
// directory carrying workspace configuration. Diagnostics only:
// resolution itself is strictly directory-local and never consults
// parents.
func NearestWorkspaceRoot(dir string) (WorkspaceSignal, bool) {
	cur, err := filepath.Abs(dir)
	if err != nil {
		return WorkspaceSignal{}, false
	}
	for {
		if sig := DetectWorkspace(cur); sig.Kind != WorkspaceNone {
			return sig, true
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return WorkspaceSignal{}, false
		}
		cur = parent
	}
}
