// ABOUTME: Directory argument normalization for the CLI
// ABOUTME: Handles Unicode spaces, NFC composition, tilde expansion, absolutization

package main

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normalizeDir turns a user-supplied directory argument into a clean
// absolute path. Terminal paste tends to smuggle in Unicode spaces and
// decomposed accents, so those are normalized before resolution.
func normalizeDir(raw string) (string, error) {
	dir := normalizeSpaces(norm.NFC.String(raw))

	if strings.HasPrefix(dir, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			dir = home + dir[1:]
		}
	}

	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(cwd, dir)
	}
	return filepath.Clean(dir), nil
}

// normalizeSpaces replaces Unicode space characters with ASCII space.
// Covered codepoints: U+00A0, U+2000-U+200A, U+202F, U+205F, U+3000.
func normalizeSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isUnicodeSpace(r) {
			b.WriteByte(' ')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isUnicodeSpace(r rune) bool {
	switch {
	case r == '\u00A0': // no-break space
		return true
	case r >= '\u2000' && r <= '\u200A': // en/em/thin/hair/etc. spaces
		return true
	case r == '\u202F': // narrow no-break space
		return true
	case r == '\u205F': // medium mathematical space
		return true
	case r == '\u3000': // ideographic space
		return true
	}
	return false
}
