// ABOUTME: Dispatcher for manager commands: install runs with timeout and group kill
// ABOUTME: Child failures are data in Execution; error returns mean caller misuse

package pkgmanager

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/xaheen/xaheen-go/internal/log"
)

const (
	// DefaultInstallTimeout bounds a dependency install.
	DefaultInstallTimeout = 5 * time.Minute

	// killGrace is the window between SIGTERM and SIGKILL for a child
	// that was cut short by timeout or cancellation.
	killGrace = 5 * time.Second

	// maxCapturedOutput caps each captured stream per execution.
	maxCapturedOutput = 10 * 1024 * 1024

	truncationMark = "\n... [output truncated]"
)

// Runner dispatches commands for resolved managers. Children run in
// their own process group and are tracked in a shared Registry so one
// teardown call reaps everything the runner started.
type Runner struct {
	registry *Registry

	// ExtraEnv entries ("KEY=value") are appended to the environment of
	// every dispatched child.
	ExtraEnv []string
}

// NewRunner returns a runner with a fresh registry.
func NewRunner() *Runner {
	return &Runner{registry: NewRegistry()}
}

// Registry exposes the shared process registry for teardown wiring.
func (r *Runner) Registry() *Registry {
	return r.registry
}

// Install runs the manager's install command in dir. A timeout <= 0
// falls back to DefaultInstallTimeout. The only possible error is
// ErrUnknownManager; everything the child does, including timing out or
// not existing on PATH at all, comes back as data in the Execution.
func (r *Runner) Install(ctx context.Context, m Manager, dir string, timeout time.Duration) (Execution, error) {
	prof, err := ProfileFor(m)
	if err != nil {
		return Execution{}, err
	}
	if timeout <= 0 {
		timeout = DefaultInstallTimeout
	}
	log.Info("installing dependencies with %s in %s", m, dir)
	return r.run(ctx, prof.Command, prof.InstallArgs, dir, timeout), nil
}

// run executes one command to completion under a timeout. On timeout the
// whole process group gets SIGTERM, then SIGKILL after killGrace.
func (r *Runner) run(ctx context.Context, command string, args []string, dir string, timeout time.Duration) Execution {
	ex := Execution{Command: command, Args: args, Dir: dir}

	// Never spawn a binary that is not there; report it like a shell would.
	if _, err := exec.LookPath(command); err != nil {
		ex.ExitCode = 127
		ex.Stderr = command + ": command not found"
		return ex
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), r.ExtraEnv...)
	setProcGroup(cmd)

	var stdout, stderr bytes.Buffer
	outw := &limitedWriter{w: &stdout, limit: maxCapturedOutput}
	errw := &limitedWriter{w: &stderr, limit: maxCapturedOutput}
	cmd.Stdout = outw
	cmd.Stderr = errw

	cmd.Cancel = func() error {
		_ = terminateGroup(cmd)
		time.AfterFunc(killGrace, func() {
			if r.registry.contains(cmd) {
				_ = killGroup(cmd)
			}
		})
		return nil
	}
	cmd.WaitDelay = killGrace + time.Second

	start := time.Now()
	if err := cmd.Start(); err != nil {
		ex.ExitCode = -1
		ex.Stderr = err.Error()
		return ex
	}
	r.registry.Add(cmd)
	runErr := cmd.Wait()
	r.registry.Remove(cmd)

	ex.Duration = time.Since(start)
	ex.Stdout = stdout.String()
	ex.Stderr = stderr.String()
	if outw.exceeded {
		ex.Stdout += truncationMark
	}
	if errw.exceeded {
		ex.Stderr += truncationMark
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		ex.TimedOut = true
		ex.ExitCode = exitCode(runErr)
		log.Warn("%s timed out after %v in %s", command, timeout, dir)
	case runErr != nil:
		ex.ExitCode = exitCode(runErr)
	}
	return ex
}

// exitCode extracts the child's exit status; -1 when it was killed by a
// signal or never exited normally.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// limitedWriter stops capturing after limit bytes but keeps accepting
// writes, so a chatty child is truncated rather than blocked on a full
// pipe.
type limitedWriter struct {
	w        io.Writer
	limit    int
	written  int
	exceeded bool
}

func (lw *limitedWriter) Write(p []byte) (int, error) {
	remaining := lw.limit - lw.written
	if remaining <= 0 {
		lw.exceeded = true
		return len(p), nil
	}
	if len(p) > remaining {
		n, err := lw.w.Write(p[:remaining])
		lw.written += n
		lw.exceeded = true
		if err != nil {
			return n, err
		}
		return len(p), nil
	}
	n, err := lw.w.Write(p)
	lw.written += n
	return n, err
}
