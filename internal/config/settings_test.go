// ABOUTME: Tests for settings loading, merging, and duration accessors
// ABOUTME: Uses temp directories and HOME redirection for isolated file tests

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	global := &Settings{InstallTimeoutMs: 60000, DevPort: 3000}
	project := &Settings{InstallTimeoutMs: 120000}

	result := merge(global, project)

	if result.InstallTimeoutMs != 120000 {
		t.Errorf("InstallTimeoutMs = %d, want 120000", result.InstallTimeoutMs)
	}
	if result.DevPort != 3000 {
		t.Errorf("DevPort = %d, want 3000 from global", result.DevPort)
	}
}

func TestMerge_Nil(t *testing.T) {
	t.Parallel()

	if result := merge(nil, nil); result == nil {
		t.Fatal("merge(nil, nil) should return non-nil")
	}
}

func TestMerge_EnvMaps(t *testing.T) {
	t.Parallel()

	global := &Settings{Env: map[string]string{"A": "1", "B": "2"}}
	project := &Settings{Env: map[string]string{"B": "override", "C": "3"}}

	result := merge(global, project)

	if result.Env["A"] != "1" {
		t.Error("expected A=1 from global")
	}
	if result.Env["B"] != "override" {
		t.Error("expected B=override from project")
	}
	if result.Env["C"] != "3" {
		t.Error("expected C=3 from project")
	}
	if global.Env["B"] != "2" {
		t.Error("merge mutated the global env map")
	}
}

func TestMerge_ReadyPatternsReplacedNotAppended(t *testing.T) {
	t.Parallel()

	global := &Settings{DevReadyPatterns: []string{"ready"}}
	project := &Settings{DevReadyPatterns: []string{"compiled", "serving"}}

	result := merge(global, project)
	if len(result.DevReadyPatterns) != 2 || result.DevReadyPatterns[0] != "compiled" {
		t.Errorf("DevReadyPatterns = %v; want project list", result.DevReadyPatterns)
	}
}

func TestSettings_DurationAccessors(t *testing.T) {
	t.Parallel()

	var nilSettings *Settings
	if nilSettings.InstallTimeout() != DefaultInstallTimeout {
		t.Error("nil settings did not yield default install timeout")
	}
	if (&Settings{}).DevReadyTimeout() != DefaultDevReadyTimeout {
		t.Error("zero settings did not yield default ready timeout")
	}

	s := &Settings{InstallTimeoutMs: 90000, DevReadyTimeoutMs: 1500}
	if s.InstallTimeout() != 90*time.Second {
		t.Errorf("InstallTimeout = %v; want 90s", s.InstallTimeout())
	}
	if s.DevReadyTimeout() != 1500*time.Millisecond {
		t.Errorf("DevReadyTimeout = %v; want 1.5s", s.DevReadyTimeout())
	}
}

func TestSettings_EnvSlice(t *testing.T) {
	t.Parallel()

	s := &Settings{Env: map[string]string{"B": "2", "A": "1"}}
	got := s.EnvSlice()
	if len(got) != 2 || got[0] != "A=1" || got[1] != "B=2" {
		t.Errorf("EnvSlice = %v; want sorted [A=1 B=2]", got)
	}

	if (&Settings{}).EnvSlice() != nil {
		t.Error("empty settings yielded non-nil env slice")
	}
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	globalDir := filepath.Join(home, ".xaheen")
	if err := EnsureDir(globalDir); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	globalJSON := `{"install_timeout_ms": 60000, "dev_port": 3000, "env": {"CI": "1"}}`
	if err := os.WriteFile(filepath.Join(globalDir, "settings.json"), []byte(globalJSON), 0o644); err != nil {
		t.Fatalf("write global: %v", err)
	}

	project := t.TempDir()
	projectDir := filepath.Join(project, ".xaheen")
	if err := EnsureDir(projectDir); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	projectJSON := `{"dev_port": 5173, "env": {"NODE_ENV": "development"}}`
	if err := os.WriteFile(filepath.Join(projectDir, "settings.json"), []byte(projectJSON), 0o644); err != nil {
		t.Fatalf("write project: %v", err)
	}

	s, err := Load(project)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.DevPort != 5173 {
		t.Errorf("DevPort = %d; want project 5173", s.DevPort)
	}
	if s.InstallTimeoutMs != 60000 {
		t.Errorf("InstallTimeoutMs = %d; want global 60000", s.InstallTimeoutMs)
	}
	if s.Env["CI"] != "1" || s.Env["NODE_ENV"] != "development" {
		t.Errorf("Env = %v; want merged map", s.Env)
	}
}

func TestLoad_MissingFilesIsZero(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	s, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load with no files: %v", err)
	}
	if s.InstallTimeout() != DefaultInstallTimeout {
		t.Error("missing files did not produce defaults")
	}
}

func TestLoad_MalformedProjectFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	project := t.TempDir()
	projectDir := filepath.Join(project, ".xaheen")
	if err := EnsureDir(projectDir); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(projectDir, "settings.json"), []byte("{nope"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Load(project); err == nil {
		t.Error("malformed settings did not error")
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Setenv("XAHEEN_TEST_TOKEN", "s3cr3t")

	s := &Settings{Env: map[string]string{
		"NPM_TOKEN": "${XAHEEN_TEST_TOKEN}",
		"PLAIN":     "as-is",
		"MISSING":   "${XAHEEN_TEST_UNSET_VAR}",
	}}
	ResolveEnvVars(s)

	if s.Env["NPM_TOKEN"] != "s3cr3t" {
		t.Errorf("NPM_TOKEN = %q; want expanded secret", s.Env["NPM_TOKEN"])
	}
	if s.Env["PLAIN"] != "as-is" {
		t.Errorf("PLAIN = %q; want untouched", s.Env["PLAIN"])
	}
	if s.Env["MISSING"] != "" {
		t.Errorf("MISSING = %q; want empty for unset var", s.Env["MISSING"])
	}
}
