// ABOUTME: Override interpretation: trims, lowercases, exact membership check
// ABOUTME: Anything outside the canonical set is invalid and falls through

package pkgmanager

import "strings"

// OverrideEnvVar is the environment variable callers conventionally read
// the override from. The resolver itself only sees the raw string.
const OverrideEnvVar = "XAHEEN_PKG_MANAGER"

// ResolveOverride interprets an explicit override string. The raw value
// is trimmed and lowercased, then matched exactly against the canonical
// manager names. Typos, paths, shell metacharacters, and empty strings
// are all simply invalid: no expansion, no execution, no fuzzy matching
// happens here. An invalid override never blocks resolution; it only
// fails to contribute a signal.
func ResolveOverride(raw string) OverrideSignal {
	sig := OverrideSignal{Raw: raw}
	m, err := ParseManager(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		return sig
	}
	sig.Manager = m
	sig.Valid = true
	return sig
}
