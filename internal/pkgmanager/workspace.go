// ABOUTME: Workspace configuration detection: pnpm-workspace.yaml and package.json workspaces
// ABOUTME: Presence classifies pnpm; JSON array means npm, object means yarn

package pkgmanager

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	pnpmWorkspaceFile = "pnpm-workspace.yaml"
	packageJSONFile   = "package.json"
)

// DetectWorkspace classifies the workspace configuration of dir.
//
// A pnpm-workspace.yaml classifies pnpm by presence alone: a malformed
// YAML body still classifies, it only loses the member globs. Otherwise
// package.json is consulted: a "workspaces" array classifies npm, a
// "workspaces" object classifies yarn. A missing or unparsable
// package.json, or any other workspaces shape, classifies none. The
// check is directory-local; parents are never consulted.
func DetectWorkspace(dir string) WorkspaceSignal {
	sig := WorkspaceSignal{Dir: dir}

	wsPath := filepath.Join(dir, pnpmWorkspaceFile)
	if info, err := os.Stat(wsPath); err == nil && info.Mode().IsRegular() {
		sig.Kind = WorkspacePnpm
		sig.ConfigPath = wsPath
		sig.Globs = pnpmGlobs(wsPath)
		return sig
	}

	pkgPath := filepath.Join(dir, packageJSONFile)
	data, err := os.ReadFile(pkgPath)
	if err != nil {
		return sig
	}
	var pkg struct {
		Workspaces json.RawMessage `json:"workspaces"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return sig
	}

	switch firstJSONByte(pkg.Workspaces) {
	case '[':
		sig.Kind = WorkspaceNpm
		sig.ConfigPath = pkgPath
		sig.Globs = stringArray(pkg.Workspaces)
	case '{':
		sig.Kind = WorkspaceYarn
		sig.ConfigPath = pkgPath
		var obj struct {
			Packages json.RawMessage `json:"packages"`
		}
		if json.Unmarshal(pkg.Workspaces, &obj) == nil {
			sig.Globs = stringArray(obj.Packages)
		}
	}
	return sig
}

// pnpmGlobs reads the packages list from a pnpm-workspace.yaml, best
// effort. Parse failures return nil: presence already classified.
func pnpmGlobs(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var doc struct {
		Packages []string `yaml:"packages"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil
	}
	return doc.Packages
}

// firstJSONByte returns the first non-whitespace byte of raw, 0 if none.
// Classification keys off the JSON kind of the workspaces value, not its
// element types, so a malformed-but-array workspaces still means npm.
func firstJSONByte(raw json.RawMessage) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}

// stringArray decodes a JSON array of strings, nil on any mismatch.
func stringArray(raw json.RawMessage) []string {
	var out []string
	if json.Unmarshal(raw, &out) != nil {
		return nil
	}
	return out
}
