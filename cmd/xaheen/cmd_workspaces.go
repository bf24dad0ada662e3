// ABOUTME: workspaces command: show workspace configuration and member packages
// ABOUTME: Expands member globs and hints at the nearest workspace root when local detection misses

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xaheen/xaheen-go/internal/pkgmanager"
	"github.com/xaheen/xaheen-go/internal/ui"
)

func newWorkspacesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspaces [dir]",
		Short: "Show workspace configuration and member packages",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runWorkspaces,
	}
	cmd.Flags().Bool("json", false, "output as JSON")
	return cmd
}

type workspaceReport struct {
	Dir        string   `json:"dir"`
	Kind       string   `json:"kind"`
	Manager    string   `json:"manager,omitempty"`
	ConfigPath string   `json:"config_path,omitempty"`
	Globs      []string `json:"globs,omitempty"`
	Members    []string `json:"members,omitempty"`
}

func runWorkspaces(cmd *cobra.Command, args []string) error {
	dir, err := projectDir(cmd, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	asJSON, _ := cmd.Flags().GetBool("json")

	sig := pkgmanager.DetectWorkspace(dir)
	report := workspaceReport{Dir: dir, Kind: sig.Kind.String()}

	if sig.Kind == pkgmanager.WorkspaceNone {
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		fmt.Fprintf(out, "no workspace configuration in %s\n", dir)
		if root, ok := pkgmanager.NearestWorkspaceRoot(dir); ok {
			fmt.Fprintf(out, "%s\n", ui.Subtle.Render(fmt.Sprintf("nearest workspace root: %s (%s)", root.Dir, root.Kind)))
		}
		return nil
	}

	report.ConfigPath = sig.ConfigPath
	report.Globs = sig.Globs
	if m, ok := sig.Kind.Manager(); ok {
		report.Manager = m.String()
	}

	members, err := pkgmanager.WorkspacePackages(sig)
	if err != nil {
		return fmt.Errorf("expand workspace members: %w", err)
	}
	report.Members = members

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(out, "%s workspace %s\n", ui.Title.Render(report.Kind), ui.Subtle.Render("("+sig.ConfigPath+")"))
	if len(sig.Globs) > 0 {
		fmt.Fprintf(out, "globs: %v\n", sig.Globs)
	}
	if len(members) == 0 {
		fmt.Fprintln(out, "no member packages found")
		return nil
	}
	fmt.Fprintf(out, "%d member package(s):\n", len(members))
	for _, m := range members {
		fmt.Fprintf(out, "  %s\n", m)
	}
	return nil
}
