// ABOUTME: Settings loading with global + project config deep merge
// ABOUTME: Project values win field-wise; env maps merge key-wise

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// Defaults applied when neither settings file sets a value.
const (
	DefaultInstallTimeout  = 5 * time.Minute
	DefaultDevReadyTimeout = 60 * time.Second
)

// Settings holds the merged configuration. Timeouts are stored in
// milliseconds to keep the files unit-explicit; use the accessor methods
// for time.Duration values with defaults applied.
//
// Settings deliberately carry no manager override: the environment
// variable is the sole override channel, and a second one hidden in a
// config file would make resolutions depend on invisible state.
type Settings struct {
	InstallTimeoutMs  int               `json:"install_timeout_ms,omitempty"`
	DevReadyTimeoutMs int               `json:"dev_ready_timeout_ms,omitempty"`
	DevPort           int               `json:"dev_port,omitempty"`
	DevReadyPatterns  []string          `json:"dev_ready_patterns,omitempty"`
	Env               map[string]string `json:"env,omitempty"`
}

// Load reads and merges global and project-local settings. Project
// settings override global settings. ${VAR} references in env values
// are expanded after the merge.
func Load(projectRoot string) (*Settings, error) {
	global, err := loadFile(GlobalSettingsFile())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading global settings: %w", err)
	}

	project, err := loadFile(ProjectSettingsFile(projectRoot))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project settings: %w", err)
	}

	merged := merge(global, project)
	ResolveEnvVars(merged)
	return merged, nil
}

// loadFile reads a Settings from a JSON file. Returns zero Settings if
// the file does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge deep-merges project settings onto global settings. Non-zero
// project values override global values; env maps merge key-wise.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		project = &Settings{}
	}

	result := *global

	if project.InstallTimeoutMs != 0 {
		result.InstallTimeoutMs = project.InstallTimeoutMs
	}
	if project.DevReadyTimeoutMs != 0 {
		result.DevReadyTimeoutMs = project.DevReadyTimeoutMs
	}
	if project.DevPort != 0 {
		result.DevPort = project.DevPort
	}
	if len(project.DevReadyPatterns) > 0 {
		result.DevReadyPatterns = project.DevReadyPatterns
	}

	if len(global.Env) > 0 || len(project.Env) > 0 {
		result.Env = make(map[string]string, len(global.Env)+len(project.Env))
		for k, v := range global.Env {
			result.Env[k] = v
		}
		for k, v := range project.Env {
			result.Env[k] = v
		}
	}

	return &result
}

// InstallTimeout returns the install timeout with the default applied.
func (s *Settings) InstallTimeout() time.Duration {
	if s == nil || s.InstallTimeoutMs <= 0 {
		return DefaultInstallTimeout
	}
	return time.Duration(s.InstallTimeoutMs) * time.Millisecond
}

// DevReadyTimeout returns the readiness window with the default applied.
func (s *Settings) DevReadyTimeout() time.Duration {
	if s == nil || s.DevReadyTimeoutMs <= 0 {
		return DefaultDevReadyTimeout
	}
	return time.Duration(s.DevReadyTimeoutMs) * time.Millisecond
}

// EnvSlice returns the env map as sorted KEY=value pairs, ready to be
// appended to a child process environment.
func (s *Settings) EnvSlice() []string {
	if s == nil || len(s.Env) == 0 {
		return nil
	}
	out := make([]string, 0, len(s.Env))
	for k, v := range s.Env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
