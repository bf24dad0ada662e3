// ABOUTME: Interactive manager picker shown when detection finds nothing
// ABOUTME: Arrow-key selection over installed managers, esc aborts

package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/xaheen/xaheen-go/internal/pkgmanager"
	"github.com/xaheen/xaheen-go/internal/ui"
)

// --- pickerModel: bubbletea model for single-choice selection ---

type pickerModel struct {
	choices  []pkgmanager.Manager
	versions map[pkgmanager.Manager]string
	cursor   int
	done     bool
	aborted  bool
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.aborted = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(ui.Title.Render("Select a package manager") + "\n")
	for i, c := range m.choices {
		name := c.String()
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
			name = ui.Selected.Render(name)
		}
		line := prefix + name
		if v := m.versions[c]; v != "" {
			line += " " + ui.Subtle.Render(v)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(ui.Subtle.Render("enter to confirm, esc to cancel") + "\n")
	return b.String()
}

// promptManager asks the user to choose among the installed managers.
// Returns false when nothing is installed, stdin is not a terminal, or
// the user aborts.
func promptManager(caps pkgmanager.Capabilities) (pkgmanager.Manager, bool) {
	var choices []pkgmanager.Manager
	for _, m := range pkgmanager.Managers() {
		if caps.Has(m) {
			choices = append(choices, m)
		}
	}
	if len(choices) == 0 || !term.IsTerminal(int(os.Stdin.Fd())) {
		return 0, false
	}

	versions := make(map[pkgmanager.Manager]string, len(choices))
	for _, c := range choices {
		versions[c] = caps.Version(c)
	}

	result, err := tea.NewProgram(pickerModel{choices: choices, versions: versions}).Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "picker:", err)
		return 0, false
	}
	rm := result.(pickerModel)
	if rm.aborted || !rm.done {
		return 0, false
	}
	return rm.choices[rm.cursor], true
}
