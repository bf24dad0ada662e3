// ABOUTME: Did-you-mean suggestions for near-miss manager names
// ABOUTME: CLI convenience only; the override resolver never fuzzy-matches

package pkgmanager

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// SuggestManager proposes a manager for a near-miss name such as "npmm"
// or "pnp". It backs "did you mean" hints in the CLI and is deliberately
// kept out of the resolution path: an override either matches exactly or
// contributes nothing.
func SuggestManager(raw string) (Manager, bool) {
	canon := strings.ToLower(strings.TrimSpace(raw))
	if canon == "" {
		return 0, false
	}
	if m, err := ParseManager(canon); err == nil {
		return m, true
	}

	names := make([]string, 0, managerCount)
	for _, m := range Managers() {
		names = append(names, m.String())
	}

	// Input as pattern over the names catches truncations ("pnp");
	// each name as pattern over the input catches extensions ("npmm").
	if matches := fuzzy.Find(canon, names); len(matches) > 0 {
		if m, err := ParseManager(matches[0].Str); err == nil {
			return m, true
		}
	}

	bestScore := 0
	found := false
	var best Manager
	for _, m := range Managers() {
		matches := fuzzy.Find(m.String(), []string{canon})
		if len(matches) == 0 {
			continue
		}
		if !found || matches[0].Score > bestScore {
			found = true
			bestScore = matches[0].Score
			best = m
		}
	}
	return best, found
}
