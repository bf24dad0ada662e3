// ABOUTME: Dev server dispatch: spawn, readiness pattern matching, graceful stop
// ABOUTME: A readiness timeout is not fatal; the process stays registered for cleanup

package pkgmanager

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/xaheen/xaheen-go/internal/log"
)

// DefaultReadyTimeout bounds the readiness watch window.
const DefaultReadyTimeout = 60 * time.Second

// defaultReadyPatterns are matched case-insensitively, substring-wise,
// against each line of combined dev server output.
var defaultReadyPatterns = []string{"ready", "listening", "started", "local:"}

// DevOptions tune a dev server spawn. The zero value is usable.
type DevOptions struct {
	Port          int           // injected as PORT when > 0
	ReadyTimeout  time.Duration // 0 means DefaultReadyTimeout
	ReadyPatterns []string      // nil means defaultReadyPatterns
	Echo          io.Writer     // receives each output line as it arrives; nil discards
}

// DevServer is a running dev process started by a Runner. It stays in
// the runner's registry until it exits, so teardown cleanup reaches it
// whether or not it ever became ready.
type DevServer struct {
	Manager Manager
	Dir     string
	Port    int

	cmd      *exec.Cmd
	registry *Registry
	patterns []string
	echo     io.Writer

	readyOnce sync.Once
	ready     chan struct{} // closed on first pattern match
	done      chan struct{} // closed when the process has been reaped
	waitErr   error         // valid after done is closed

	mu  sync.Mutex
	buf bytes.Buffer

	stopOnce sync.Once
}

// StartDev spawns the manager's dev invocation in dir. The returned
// server is already registered for cleanup. An unknown manager id fails
// fast; a binary that cannot be spawned is an error too, since there is
// no process to hand back. Everything after a successful spawn, early
// death included, is observed through the handle.
func (r *Runner) StartDev(ctx context.Context, m Manager, dir string, opts DevOptions) (*DevServer, error) {
	prof, err := ProfileFor(m)
	if err != nil {
		return nil, err
	}

	patterns := opts.ReadyPatterns
	if len(patterns) == 0 {
		patterns = defaultReadyPatterns
	}
	lowered := make([]string, len(patterns))
	for i, p := range patterns {
		lowered[i] = strings.ToLower(p)
	}

	cmd := exec.CommandContext(ctx, prof.Command, prof.DevArgs...)
	cmd.Dir = dir
	env := append(os.Environ(), r.ExtraEnv...)
	if opts.Port > 0 {
		env = append(env, fmt.Sprintf("PORT=%d", opts.Port))
	}
	cmd.Env = env
	setProcGroup(cmd)
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

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("dev server pipe: %w", err)
	}
	// Readiness is matched over both streams, so stderr shares the pipe.
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s dev server: %w", m, err)
	}
	r.registry.Add(cmd)
	log.Info("started %s dev server in %s (pid %d)", m, dir, cmd.Process.Pid)

	d := &DevServer{
		Manager:  m,
		Dir:      dir,
		Port:     opts.Port,
		cmd:      cmd,
		registry: r.registry,
		patterns: lowered,
		echo:     opts.Echo,
		ready:    make(chan struct{}),
		done:     make(chan struct{}),
	}
	go d.watch(stdout)
	return d, nil
}

// watch consumes combined output until EOF, then reaps the process.
// Line scanning stops at the buffer cap; an oversized line flips the
// watch into chunked drains so later output still reaches the matcher
// and the echo writer instead of backing up the pipe.
func (d *DevServer) watch(out io.Reader) {
	scanner := bufio.NewScanner(out)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		d.appendOutput(line)
		d.matchReady(line)
		if d.echo != nil {
			fmt.Fprintln(d.echo, line)
		}
	}
	if scanner.Err() != nil {
		d.drain(out)
	}

	d.waitErr = d.cmd.Wait()
	d.registry.Remove(d.cmd)
	close(d.done)
	log.Debug("%s dev server in %s exited (code %d)", d.Manager, d.Dir, exitCode(d.waitErr))
}

// drain consumes output in fixed chunks once line scanning has given
// up. Matching carries the previous tail so a pattern split across two
// reads is still seen.
func (d *DevServer) drain(out io.Reader) {
	overlap := 0
	for _, p := range d.patterns {
		if len(p) > overlap {
			overlap = len(p)
		}
	}
	buf := make([]byte, 64*1024)
	var tail string
	for {
		n, err := out.Read(buf)
		if n > 0 {
			chunk := string(buf[:n])
			d.appendChunk(chunk)
			if d.echo != nil {
				fmt.Fprint(d.echo, chunk)
			}
			joined := tail + chunk
			d.matchReady(joined)
			if len(joined) > overlap {
				joined = joined[len(joined)-overlap:]
			}
			tail = joined
		}
		if err != nil {
			return
		}
	}
}

func (d *DevServer) appendOutput(line string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.buf.Len() < maxCapturedOutput {
		d.buf.WriteString(line)
		d.buf.WriteByte('\n')
	}
}

func (d *DevServer) appendChunk(chunk string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.buf.Len() < maxCapturedOutput {
		d.buf.WriteString(chunk)
	}
}

func (d *DevServer) matchReady(line string) {
	lower := strings.ToLower(line)
	for _, p := range d.patterns {
		if strings.Contains(lower, p) {
			d.readyOnce.Do(func() { close(d.ready) })
			return
		}
	}
}

// WaitReady blocks until a readiness pattern appears, the process exits,
// or the window elapses; timeout <= 0 means DefaultReadyTimeout. A false
// result does not stop the server: a slow starter keeps running and
// stays registered for cleanup.
func (d *DevServer) WaitReady(timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = DefaultReadyTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-d.ready:
		return true
	case <-d.done:
		return d.Ready()
	case <-timer.C:
		return d.Ready()
	}
}

// Ready reports whether a readiness pattern has been seen so far.
func (d *DevServer) Ready() bool {
	select {
	case <-d.ready:
		return true
	default:
		return false
	}
}

// Running reports whether the process has not yet exited.
func (d *DevServer) Running() bool {
	select {
	case <-d.done:
		return false
	default:
		return true
	}
}

// Output returns the combined stdout+stderr captured so far.
func (d *DevServer) Output() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.String()
}

// Pid returns the child process id.
func (d *DevServer) Pid() int {
	if d.cmd.Process == nil {
		return 0
	}
	return d.cmd.Process.Pid
}

// Wait blocks until the process exits and returns its exit code, -1
// when it was killed by a signal.
func (d *DevServer) Wait() int {
	<-d.done
	return exitCode(d.waitErr)
}

// Stop terminates the dev server group: SIGTERM first, SIGKILL if it
// outlives the grace period. Idempotent; returns once the process has
// been reaped.
func (d *DevServer) Stop() {
	d.stopOnce.Do(func() {
		select {
		case <-d.done:
			return
		default:
		}
		log.Debug("stopping %s dev server (pid %d)", d.Manager, d.Pid())
		_ = terminateGroup(d.cmd)
		select {
		case <-d.done:
		case <-time.After(killGrace):
			_ = killGroup(d.cmd)
			<-d.done
		}
	})
	<-d.done
}
