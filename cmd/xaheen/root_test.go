// ABOUTME: Shared test harness for CLI commands plus root-level wiring tests
// ABOUTME: Stubs the capability probe and captures command output

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xaheen/xaheen-go/internal/pkgmanager"
)

// stubCaps replaces the process-wide capability probe for one test.
func stubCaps(t *testing.T, installed ...pkgmanager.Manager) {
	t.Helper()
	caps := pkgmanager.Capabilities{
		Installed: make(map[pkgmanager.Manager]bool, len(pkgmanager.Managers())),
		Versions:  make(map[pkgmanager.Manager]string),
	}
	for _, m := range pkgmanager.Managers() {
		caps.Installed[m] = false
	}
	for _, m := range installed {
		caps.Installed[m] = true
		caps.Versions[m] = "1.0.0"
	}
	prev := probeCaps
	probeCaps = func() pkgmanager.Capabilities { return caps }
	t.Cleanup(func() { probeCaps = prev })
}

// runCommand executes the CLI with args and returns stdout, stderr, and
// the execution error.
func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// writeFile creates a file under dir, making parent directories as needed.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// fakeBin writes an executable shell script into a scratch dir that is
// prepended to PATH for the remainder of the test.
func fakeBin(t *testing.T, name, body string) string {
	t.Helper()
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("requires /bin/sh")
	}
	dir := t.TempDir()
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return dir
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	cmd := newRootCmd()
	want := []string{"detect", "install", "dev", "doctor", "workspaces"}
	for _, name := range want {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestRequireAvailable(t *testing.T) {
	caps := pkgmanager.Capabilities{
		Installed: map[pkgmanager.Manager]bool{pkgmanager.Npm: true},
	}
	if err := requireAvailable(pkgmanager.Npm, caps); err != nil {
		t.Errorf("requireAvailable(npm) = %v; want nil", err)
	}
	err := requireAvailable(pkgmanager.Pnpm, caps)
	if err == nil {
		t.Fatal("requireAvailable(pnpm) = nil; want error")
	}
	if !strings.Contains(err.Error(), "pnpm") || !strings.Contains(err.Error(), pkgmanager.OverrideEnvVar) {
		t.Errorf("error %q should name the manager and the override variable", err)
	}
}

func TestOverrideValue_FlagBeatsEnv(t *testing.T) {
	t.Setenv(pkgmanager.OverrideEnvVar, "pnpm")
	stubCaps(t, pkgmanager.Npm, pkgmanager.Pnpm)

	dir := t.TempDir()
	out, _, err := runCommand(t, "detect", "--dir", dir, "--manager", "npm")
	if err != nil {
		t.Fatalf("detect error = %v", err)
	}
	if !strings.Contains(out, "npm") {
		t.Errorf("output %q should pick the flag override npm over the env pnpm", out)
	}
	if strings.Contains(out, "pnpm") {
		t.Errorf("output %q should not mention the env override", out)
	}
}

func TestOverrideValue_EnvAlone(t *testing.T) {
	t.Setenv(pkgmanager.OverrideEnvVar, "yarn")
	stubCaps(t, pkgmanager.Npm, pkgmanager.Yarn)

	dir := t.TempDir()
	out, _, err := runCommand(t, "detect", "--dir", dir)
	if err != nil {
		t.Fatalf("detect error = %v", err)
	}
	if !strings.Contains(out, "yarn") {
		t.Errorf("output %q should honor the environment override", out)
	}
}
