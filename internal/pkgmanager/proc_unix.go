// ABOUTME: Unix process-group control for dispatched manager commands
// ABOUTME: Children run in their own group so signals reach every descendant

//go:build unix

package pkgmanager

import (
	"os/exec"
	"syscall"
)

// setProcGroup places the child in its own process group so that
// terminateGroup and killGroup reach the manager and everything it
// spawned (node, esbuild workers, etc.), not just the direct child.
func setProcGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// terminateGroup sends SIGTERM to the child's process group.
func terminateGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM)
}

// killGroup sends SIGKILL to the child's process group.
func killGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
}
