// ABOUTME: Tests for workspace member glob expansion and nearest-root lookup
// ABOUTME: Members need a package.json; node_modules and negations excluded

package pkgmanager

import (
	"path/filepath"
	"reflect"
	"testing"
)

func memberFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, member := range []string{
		"packages/core",
		"packages/cli",
		"packages/legacy",
		"apps/web",
	} {
		writeFile(t, dir, filepath.Join(member, "package.json"), []byte(`{"name":"x"}`))
	}
	// Not members: no package.json, or under node_modules.
	writeFile(t, dir, filepath.Join("packages", "docs", "README.md"), []byte("docs"))
	writeFile(t, dir, filepath.Join("node_modules", "dep", "package.json"), []byte("{}"))
	writeFile(t, dir, filepath.Join("packages", "core", "node_modules", "dep", "package.json"), []byte("{}"))
	return dir
}

func TestWorkspacePackages_Globs(t *testing.T) {
	t.Parallel()

	dir := memberFixture(t)
	sig := WorkspaceSignal{
		Dir:   dir,
		Kind:  WorkspacePnpm,
		Globs: []string{"packages/*", "apps/*"},
	}

	members, err := WorkspacePackages(sig)
	if err != nil {
		t.Fatalf("WorkspacePackages: %v", err)
	}
	want := []string{"apps/web", "packages/cli", "packages/core", "packages/legacy"}
	if !reflect.DeepEqual(members, want) {
		t.Errorf("members = %v; want %v", members, want)
	}
}

func TestWorkspacePackages_Negation(t *testing.T) {
	t.Parallel()

	dir := memberFixture(t)
	sig := WorkspaceSignal{
		Dir:   dir,
		Kind:  WorkspacePnpm,
		Globs: []string{"packages/*", "!packages/legacy"},
	}

	members, err := WorkspacePackages(sig)
	if err != nil {
		t.Fatalf("WorkspacePackages: %v", err)
	}
	want := []string{"packages/cli", "packages/core"}
	if !reflect.DeepEqual(members, want) {
		t.Errorf("members = %v; want %v", members, want)
	}
}

func TestWorkspacePackages_DoubleStar(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, filepath.Join("libs", "a", "package.json"), []byte("{}"))
	writeFile(t, dir, filepath.Join("libs", "nested", "b", "package.json"), []byte("{}"))
	writeFile(t, dir, filepath.Join("libs", "node_modules", "c", "package.json"), []byte("{}"))

	members, err := WorkspacePackages(WorkspaceSignal{
		Dir:   dir,
		Kind:  WorkspaceNpm,
		Globs: []string{"libs/**"},
	})
	if err != nil {
		t.Fatalf("WorkspacePackages: %v", err)
	}
	want := []string{"libs/a", "libs/nested/b"}
	if !reflect.DeepEqual(members, want) {
		t.Errorf("members = %v; want %v", members, want)
	}
}

func TestWorkspacePackages_NoWorkspace(t *testing.T) {
	t.Parallel()

	members, err := WorkspacePackages(WorkspaceSignal{Dir: t.TempDir(), Kind: WorkspaceNone})
	if err != nil {
		t.Fatalf("WorkspacePackages: %v", err)
	}
	if members != nil {
		t.Errorf("members = %v; want nil", members)
	}
}

func TestWorkspacePackages_DuplicateGlobs(t *testing.T) {
	t.Parallel()

	dir := memberFixture(t)
	members, err := WorkspacePackages(WorkspaceSignal{
		Dir:   dir,
		Kind:  WorkspaceYarn,
		Globs: []string{"packages/*", "packages/core", "packages/*"},
	})
	if err != nil {
		t.Fatalf("WorkspacePackages: %v", err)
	}
	want := []string{"packages/cli", "packages/core", "packages/legacy"}
	if !reflect.DeepEqual(members, want) {
		t.Errorf("members = %v; want deduplicated %v", members, want)
	}
}

func TestNearestWorkspaceRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "pnpm-workspace.yaml", []byte("packages:\n  - 'packages/*'\n"))
	member := filepath.Join(root, "packages", "app", "src")
	writeFile(t, member, "placeholder.txt", []byte(""))

	sig, ok := NearestWorkspaceRoot(member)
	if !ok {
		t.Fatal("workspace root not found from nested dir")
	}
	if sig.Kind != WorkspacePnpm {
		t.Errorf("Kind = %v; want WorkspacePnpm", sig.Kind)
	}
	if sig.Dir != root {
		t.Errorf("Dir = %q; want %q", sig.Dir, root)
	}
}

func TestNearestWorkspaceRoot_None(t *testing.T) {
	t.Parallel()

	if sig, ok := NearestWorkspaceRoot(t.TempDir()); ok {
		t.Errorf("found unexpected workspace root %q", sig.Dir)
	}
}
