// ABOUTME: Tests for the interactive picker model
// ABOUTME: Pure Update/View logic; no terminal required

package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xaheen/xaheen-go/internal/pkgmanager"
)

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testPicker() pickerModel {
	return pickerModel{
		choices: []pkgmanager.Manager{pkgmanager.Npm, pkgmanager.Pnpm, pkgmanager.Bun},
		versions: map[pkgmanager.Manager]string{
			pkgmanager.Npm:  "10.2.4",
			pkgmanager.Pnpm: "9.1.0",
			pkgmanager.Bun:  "1.1.8",
		},
	}
}

func TestPicker_MoveAndSelect(t *testing.T) {
	t.Parallel()

	m := testPicker()
	next, _ := m.Update(key(tea.KeyDown))
	m = next.(pickerModel)
	next, _ = m.Update(runeKey('j'))
	m = next.(pickerModel)
	next, _ = m.Update(key(tea.KeyEnter))
	m = next.(pickerModel)

	if !m.done {
		t.Error("done = false after enter; want true")
	}
	if m.choices[m.cursor] != pkgmanager.Bun {
		t.Errorf("selected %s; want bun", m.choices[m.cursor])
	}
}

func TestPicker_CursorClamped(t *testing.T) {
	t.Parallel()

	m := testPicker()
	for i := 0; i < 10; i++ {
		next, _ := m.Update(key(tea.KeyDown))
		m = next.(pickerModel)
	}
	if m.cursor != len(m.choices)-1 {
		t.Errorf("cursor = %d; want %d", m.cursor, len(m.choices)-1)
	}
	for i := 0; i < 10; i++ {
		next, _ := m.Update(key(tea.KeyUp))
		m = next.(pickerModel)
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d; want 0", m.cursor)
	}
}

func TestPicker_EscAborts(t *testing.T) {
	t.Parallel()

	m := testPicker()
	next, _ := m.Update(key(tea.KeyEsc))
	m = next.(pickerModel)
	if !m.aborted {
		t.Error("aborted = false after esc; want true")
	}
}

func TestPicker_ViewListsChoices(t *testing.T) {
	t.Parallel()

	m := testPicker()
	view := m.View()
	for _, want := range []string{"npm", "pnpm", "bun", "10.2.4", "enter to confirm"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if !strings.Contains(view, "> ") {
		t.Errorf("view %q should mark the cursor line", view)
	}
}

func TestPicker_ViewEmptyWhenDone(t *testing.T) {
	t.Parallel()

	m := testPicker()
	m.done = true
	if view := m.View(); view != "" {
		t.Errorf("View() after done = %q; want empty", view)
	}
}

func TestPromptManager_NoTerminal(t *testing.T) {
	// Test binaries have no TTY on stdin, so the prompt must decline
	// rather than hang.
	caps := pkgmanager.Capabilities{
		Installed: map[pkgmanager.Manager]bool{pkgmanager.Npm: true},
		Versions:  map[pkgmanager.Manager]string{pkgmanager.Npm: "10.0.0"},
	}
	if _, ok := promptManager(caps); ok {
		t.Error("promptManager should return false without a terminal")
	}
}

func TestPromptManager_NothingInstalled(t *testing.T) {
	t.Parallel()

	if _, ok := promptManager(pkgmanager.Capabilities{}); ok {
		t.Error("promptManager should return false with nothing installed")
	}
}
