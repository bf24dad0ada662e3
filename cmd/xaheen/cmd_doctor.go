// ABOUTME: doctor command: show which package managers are installed and usable
// ABOUTME: Probes all managers, renders a status table, and inspects project signals

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/xaheen/xaheen-go/internal/pkgmanager"
	"github.com/xaheen/xaheen-go/internal/ui"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor [dir]",
		Short: "Check which package managers are installed",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDoctor,
	}
	cmd.Flags().Bool("json", false, "output as JSON")
	return cmd
}

type managerStatus struct {
	Manager   string `json:"manager"`
	Installed bool   `json:"installed"`
	Version   string `json:"version,omitempty"`
	Path      string `json:"path,omitempty"`
}

type doctorReport struct {
	Dir       string          `json:"dir"`
	Managers  []managerStatus `json:"managers"`
	Lockfile  string          `json:"lockfile,omitempty"`
	Workspace string          `json:"workspace,omitempty"`
	Override  string          `json:"override,omitempty"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	dir, err := projectDir(cmd, args)
	if err != nil {
		return err
	}
	caps := probeCaps()
	out := cmd.OutOrStdout()

	report := doctorReport{Dir: dir, Override: os.Getenv(pkgmanager.OverrideEnvVar)}
	installed := 0
	for _, m := range pkgmanager.Managers() {
		st := managerStatus{Manager: m.String(), Installed: caps.Has(m)}
		if st.Installed {
			installed++
			st.Version = caps.Version(m)
			if path, err := exec.LookPath(m.String()); err == nil {
				st.Path = path
			}
		}
		report.Managers = append(report.Managers, st)
	}
	lock := pkgmanager.DetectLockfile(dir)
	if lock.Found {
		report.Lockfile = lock.Path
	}
	workspace := pkgmanager.DetectWorkspace(dir)
	if workspace.Kind != pkgmanager.WorkspaceNone {
		report.Workspace = workspace.ConfigPath
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printDoctor(cmd, report, lock, workspace, caps)
	}

	if installed == 0 {
		return errors.New("no package manager installed; install one of npm, yarn, pnpm, bun")
	}
	return nil
}

func printDoctor(cmd *cobra.Command, report doctorReport, lock pkgmanager.LockfileSignal, workspace pkgmanager.WorkspaceSignal, caps pkgmanager.Capabilities) {
	out := cmd.OutOrStdout()

	tbl := ui.NewTable(out, "MANAGER", "STATUS", "VERSION", "PATH")
	for _, st := range report.Managers {
		status := ui.Err.Render("missing")
		version := "-"
		path := "-"
		if st.Installed {
			status = ui.Ok.Render("ok")
			if st.Version != "" {
				version = st.Version
			}
			if st.Path != "" {
				path = st.Path
			}
		}
		tbl.Row(st.Manager, status, version, path)
	}
	tbl.Flush()

	fmt.Fprintln(out)
	if lock.Found {
		fmt.Fprintf(out, "lockfile:  %s (%s)\n", lock.Path, lock.Manager)
	} else {
		fmt.Fprintf(out, "lockfile:  %s\n", ui.Subtle.Render("(none)"))
	}
	if workspace.Kind != pkgmanager.WorkspaceNone {
		fmt.Fprintf(out, "workspace: %s (%s)\n", workspace.ConfigPath, workspace.Kind)
	} else {
		fmt.Fprintf(out, "workspace: %s\n", ui.Subtle.Render("(none)"))
	}

	if report.Override != "" {
		over := pkgmanager.ResolveOverride(report.Override)
		switch {
		case !over.Valid:
			fmt.Fprintf(out, "%s=%s %s\n", pkgmanager.OverrideEnvVar, report.Override, ui.Warn.Render("(invalid, will be ignored)"))
		case !caps.Has(over.Manager):
			fmt.Fprintf(out, "%s=%s %s\n", pkgmanager.OverrideEnvVar, report.Override, ui.Warn.Render("(set but not installed, will be demoted)"))
		default:
			fmt.Fprintf(out, "%s=%s %s\n", pkgmanager.OverrideEnvVar, report.Override, ui.Ok.Render("(active)"))
		}
	}
}
