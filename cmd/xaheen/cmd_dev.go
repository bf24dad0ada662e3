// ABOUTME: dev command: start the project dev server through the detected manager
// ABOUTME: Handles readiness reporting, PORT injection, and graceful shutdown on signals

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xaheen/xaheen-go/internal/config"
	"github.com/xaheen/xaheen-go/internal/pkgmanager"
	"github.com/xaheen/xaheen-go/internal/ui"
)

func newDevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev [dir]",
		Short: "Start the dev server through the detected package manager",
		Long: `dev starts the project's development server via the detected package
manager and waits for it to report readiness on stdout or stderr.
The command stays in the foreground; Ctrl-C stops the whole process
group, not just the manager.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDev,
	}
	cmd.Flags().Int("port", 0, "inject PORT into the server environment (0 leaves it unset)")
	cmd.Flags().Duration("ready-timeout", 0, "how long to wait for readiness (0 uses configuration, default 1m)")
	cmd.Flags().StringArray("ready-pattern", nil, "substring that marks the server ready (repeatable, replaces defaults)")
	return cmd
}

func runDev(cmd *cobra.Command, args []string) error {
	res, caps, err := resolveProject(cmd, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	warnInvalidOverride(errOut, res)

	manager := res.Manager
	if !res.Found {
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

	opts := pkgmanager.DevOptions{
		Port:          settings.DevPort,
		ReadyTimeout:  settings.DevReadyTimeout(),
		ReadyPatterns: settings.DevReadyPatterns,
		Echo:          out,
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		opts.Port = port
	}
	if rt, _ := cmd.Flags().GetDuration("ready-timeout"); rt > 0 {
		opts.ReadyTimeout = rt
	}
	if patterns, _ := cmd.Flags().GetStringArray("ready-pattern"); len(patterns) > 0 {
		opts.ReadyPatterns = patterns
	}

	// Ctrl-C cancels the context, which tears down the whole process
	// group with SIGTERM before the hard kill.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := pkgmanager.NewRunner()
	runner.ExtraEnv = settings.EnvSlice()
	defer runner.Registry().Cleanup()

	fmt.Fprintf(out, "starting dev server with %s in %s\n", ui.Title.Render(manager.String()), res.Dir)
	server, err := runner.StartDev(ctx, manager, res.Dir, opts)
	if err != nil {
		return err
	}

	if server.WaitReady(opts.ReadyTimeout) {
		msg := "dev server ready"
		if opts.Port > 0 {
			msg = fmt.Sprintf("dev server ready on port %d", opts.Port)
		}
		fmt.Fprintf(out, "%s %s\n", ui.Ok.Render(msg), ui.Subtle.Render(fmt.Sprintf("(pid %d)", server.Pid())))
	} else if server.Running() {
		fmt.Fprintf(errOut, "%s\n", ui.Warn.Render(fmt.Sprintf("no readiness signal after %s; server is still running (pid %d)", opts.ReadyTimeout, server.Pid())))
	} else {
		// Output was already echoed live; the exit code is the story here.
		return fmt.Errorf("dev server exited with code %d before becoming ready", server.Wait())
	}

	code := server.Wait()
	if ctx.Err() != nil {
		fmt.Fprintln(out, "dev server stopped")
		return nil
	}
	if code != 0 {
		return fmt.Errorf("dev server exited with code %d", code)
	}
	fmt.Fprintln(out, "dev server exited")
	return nil
}
