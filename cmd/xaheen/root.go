// ABOUTME: Root command for the xaheen CLI
// ABOUTME: Persistent flags plus the shared detection pipeline used by every subcommand

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/xaheen/xaheen-go/internal/log"
	"github.com/xaheen/xaheen-go/internal/pkgmanager"
	"github.com/xaheen/xaheen-go/internal/ui"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xaheen",
		Short: "Detect and drive the package manager that governs a project",
		Long: `xaheen figures out which JavaScript package manager (npm, yarn, pnpm
or bun) governs a project directory and runs installs and dev servers
through it.

Detection precedence: explicit override (--manager flag or the
` + pkgmanager.OverrideEnvVar + ` environment variable), then lockfile,
then workspace configuration, then the first manager installed on the
system.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("dir", "C", ".", "project directory to operate on")
	cmd.PersistentFlags().StringP("manager", "m", "", "override the package manager (same channel as "+pkgmanager.OverrideEnvVar+")")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	cmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log.SetLevel(log.LevelDebug)
		}
		noColor, _ := cmd.Flags().GetBool("no-color")
		if noColor || os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stdout.Fd())) {
			ui.NoColor()
		}
	}

	cmd.AddCommand(
		newDetectCmd(),
		newInstallCmd(),
		newDevCmd(),
		newDoctorCmd(),
		newWorkspacesCmd(),
	)

	return cmd
}

// probeCaps probes the system once per process. Every subcommand shares
// the same capability snapshot so detection and dispatch agree on what
// is installed.
var probeCaps = sync.OnceValue(func() pkgmanager.Capabilities {
	return pkgmanager.Probe(context.Background())
})

// overrideValue returns the raw manager override for this invocation.
// The --manager flag wins over the environment variable; both feed the
// same exact-match resolution, so a typo in either is rejected rather
// than guessed at.
func overrideValue(cmd *cobra.Command) string {
	if raw, _ := cmd.Flags().GetString("manager"); strings.TrimSpace(raw) != "" {
		return raw
	}
	return os.Getenv(pkgmanager.OverrideEnvVar)
}

// projectDir resolves the directory for this invocation: an optional
// positional argument wins over the --dir flag. Either way the result
// is a normalized absolute path.
func projectDir(cmd *cobra.Command, args []string) (string, error) {
	raw, _ := cmd.Flags().GetString("dir")
	if len(args) > 0 {
		raw = args[0]
	}
	return normalizeDir(raw)
}

// resolveProject runs the full detection pipeline for the current
// invocation and returns the resolution alongside the capability
// snapshot it was computed against.
func resolveProject(cmd *cobra.Command, args []string) (pkgmanager.Resolution, pkgmanager.Capabilities, error) {
	dir, err := projectDir(cmd, args)
	if err != nil {
		return pkgmanager.Resolution{}, pkgmanager.Capabilities{}, err
	}
	caps := probeCaps()
	res := pkgmanager.NewResolver(caps).Resolve(dir, overrideValue(cmd))
	return res, caps, nil
}

// warnInvalidOverride tells the user when their override was ignored,
// with a did-you-mean hint for near misses. Suggestions live here at
// the presentation edge; resolution itself never fuzzy-matches.
func warnInvalidOverride(w io.Writer, res pkgmanager.Resolution) {
	raw := strings.TrimSpace(res.Override.Raw)
	if raw == "" || res.Override.Valid {
		return
	}
	msg := fmt.Sprintf("ignoring invalid package manager override %q", raw)
	if m, ok := pkgmanager.SuggestManager(raw); ok {
		msg += fmt.Sprintf(" (did you mean %q?)", m)
	}
	fmt.Fprintln(w, ui.Warn.Render(msg))
}

// requireAvailable guards dispatch: a resolved manager that is not
// installed is refused with guidance instead of a bare exec failure.
func requireAvailable(m pkgmanager.Manager, caps pkgmanager.Capabilities) error {
	if caps.Has(m) {
		return nil
	}
	return fmt.Errorf("%s resolved via project signals but is not installed; install %s or set %s to an available manager",
		m, m, pkgmanager.OverrideEnvVar)
}
