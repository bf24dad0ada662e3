// ABOUTME: install command: run dependency installation with the detected manager
// ABOUTME: Refuses unavailable managers, enforces the timeout, surfaces child output

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/xaheen/xaheen-go/internal/config"
	"github.com/xaheen/xaheen-go/internal/pkgmanager"
	"github.com/xaheen/xaheen-go/internal/ui"
)

func newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install [dir]",
		Short: "Install dependencies with the detected package manager",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInstall,
	}
	cmd.Flags().Duration("timeout", 0, "install timeout (0 uses configuration, default 5m)")
	return cmd
}

func runInstall(cmd *cobra.Command, args []string) error {
	res, caps, err := resolveProject(cmd, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	warnInvalidOverride(errOut, res)

	manager := res.Manager
	if !res.Found {
		// Interactive sessions get a picker; scripts get a clear error.
		var ok bool
		manager, ok = promptManager(caps)
		if !ok {
			return fmt.Errorf("no package manager detected in %s: add a lockfile, set %s, or install one of npm, yarn, pnpm, bun",
				res.Dir, pkgmanager.OverrideEnvVar)
		}
	}
	if err := requireAvailable(manager, caps); err != nil {
		return err
	}
	if info, err := os.Stat(res.Dir); err != nil {
		return fmt.Errorf("project directory: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", res.Dir)
	}

	settings, err := config.Load(res.Dir)
	if err != nil {
		return err
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout <= 0 {
		timeout = settings.InstallTimeout()
	}

	runner := pkgmanager.NewRunner()
	runner.ExtraEnv = settings.EnvSlice()

	fmt.Fprintf(out, "installing with %s in %s\n", ui.Title.Render(manager.String()), res.Dir)
	ex, err := runner.Install(cmd.Context(), manager, res.Dir, timeout)
	if err != nil {
		return err
	}

	if ex.Stdout != "" {
		fmt.Fprint(out, ex.Stdout)
	}
	if ex.Stderr != "" {
		fmt.Fprint(errOut, ex.Stderr)
	}

	switch {
	case ex.TimedOut:
		return fmt.Errorf("%s install timed out after %s; re-run with --timeout or check your network", manager, timeout)
	case !ex.Ok():
		return fmt.Errorf("%s install failed with exit code %d; try running %q in %s",
			manager, ex.ExitCode, ex.Command+" "+strings.Join(ex.Args, " "), res.Dir)
	}

	fmt.Fprintf(out, "%s\n", ui.Ok.Render(fmt.Sprintf("install finished in %s", ex.Duration.Round(time.Millisecond))))
	return nil
}
