// ABOUTME: Process control fallback for platforms without unix process groups
// ABOUTME: Signals degrade to killing the direct child only

//go:build !unix

package pkgmanager

import "os/exec"

func setProcGroup(cmd *exec.Cmd) {}

func terminateGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}

func killGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
