// ABOUTME: detect command: report which package manager governs a directory
// ABOUTME: One-line human output, a full signal chain with --explain, or --json

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xaheen/xaheen-go/internal/pkgmanager"
	"github.com/xaheen/xaheen-go/internal/ui"
)

func newDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect [dir]",
		Short: "Detect the package manager for a project",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDetect,
	}
	cmd.Flags().Bool("json", false, "output as JSON")
	cmd.Flags().Bool("explain", false, "show every detection signal, not just the winner")
	return cmd
}

// detection is the JSON presentation of a resolution.
type detection struct {
	Dir         string          `json:"dir"`
	Found       bool            `json:"found"`
	Manager     string          `json:"manager,omitempty"`
	Version     string          `json:"version,omitempty"`
	Provenance  string          `json:"provenance"`
	Ambiguous   bool            `json:"ambiguous"`
	Override    *overrideJSON   `json:"override,omitempty"`
	Lockfile    *lockfileJSON   `json:"lockfile,omitempty"`
	Workspace   *workspaceJSON  `json:"workspace,omitempty"`
	NearestRoot *workspaceJSON  `json:"nearest_root,omitempty"`
	Installed   map[string]bool `json:"installed"`
}

type overrideJSON struct {
	Raw     string `json:"raw"`
	Valid   bool   `json:"valid"`
	Manager string `json:"manager,omitempty"`
	Demoted bool   `json:"demoted"`
}

type lockfileJSON struct {
	Manager string `json:"manager"`
	Path    string `json:"path"`
}

type workspaceJSON struct {
	Kind       string   `json:"kind"`
	ConfigPath string   `json:"config_path"`
	Globs      []string `json:"globs,omitempty"`
}

func newDetection(res pkgmanager.Resolution, caps pkgmanager.Capabilities) detection {
	d := detection{
		Dir:        res.Dir,
		Found:      res.Found,
		Provenance: res.Provenance.String(),
		Ambiguous:  res.Ambiguous(),
		Installed:  make(map[string]bool, len(pkgmanager.Managers())),
	}
	if res.Found {
		d.Manager = res.Manager.String()
		d.Version = caps.Version(res.Manager)
	}
	if res.Override.Raw != "" {
		o := &overrideJSON{
			Raw:     res.Override.Raw,
			Valid:   res.Override.Valid,
			Demoted: res.Override.Demoted,
		}
		if res.Override.Valid {
			o.Manager = res.Override.Manager.String()
		}
		d.Override = o
	}
	if res.Lockfile.Found {
		d.Lockfile = &lockfileJSON{
			Manager: res.Lockfile.Manager.String(),
			Path:    res.Lockfile.Path,
		}
	}
	if res.Workspace.Kind != pkgmanager.WorkspaceNone {
		d.Workspace = &workspaceJSON{
			Kind:       res.Workspace.Kind.String(),
			ConfigPath: res.Workspace.ConfigPath,
			Globs:      res.Workspace.Globs,
		}
	} else if root, ok := pkgmanager.NearestWorkspaceRoot(res.Dir); ok {
		d.NearestRoot = &workspaceJSON{
			Kind:       root.Kind.String(),
			ConfigPath: root.ConfigPath,
			Globs:      root.Globs,
		}
	}
	for _, m := range pkgmanager.Managers() {
		d.Installed[m.String()] = caps.Has(m)
	}
	return d
}

func runDetect(cmd *cobra.Command, args []string) error {
	res, caps, err := resolveProject(cmd, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(newDetection(res, caps))
	}

	warnInvalidOverride(cmd.ErrOrStderr(), res)

	if explain, _ := cmd.Flags().GetBool("explain"); explain {
		printExplanation(cmd, res, caps)
		return nil
	}

	if !res.Found {
		fmt.Fprintln(out, "no package manager detected")
		fmt.Fprintf(out, "%s\n", ui.Subtle.Render("install one of npm, yarn, pnpm, bun or set "+pkgmanager.OverrideEnvVar))
		return nil
	}

	fmt.Fprintf(out, "%s %s\n", ui.Ok.Render(res.Manager.String()), ui.Subtle.Render("("+provenanceDetail(res)+")"))
	if res.Ambiguous() {
		fmt.Fprintf(out, "%s\n", ui.Warn.Render("note: detection signals disagree; run with --explain to see all of them"))
	}
	if res.Workspace.Kind == pkgmanager.WorkspaceNone {
		if root, ok := pkgmanager.NearestWorkspaceRoot(res.Dir); ok {
			fmt.Fprintf(out, "%s\n", ui.Subtle.Render(fmt.Sprintf("inside %s workspace rooted at %s", root.Kind, root.Dir)))
		}
	}
	return nil
}

// provenanceDetail renders the winning signal in a form worth printing,
// e.g. "lockfile: package-lock.json" rather than just "lockfile".
func provenanceDetail(res pkgmanager.Resolution) string {
	switch res.Provenance {
	case pkgmanager.ProvenanceOverride:
		return "override: " + pkgmanager.OverrideEnvVar
	case pkgmanager.ProvenanceLockfile:
		return "lockfile: " + res.Lockfile.Path
	case pkgmanager.ProvenanceWorkspace:
		return "workspace: " + res.Workspace.ConfigPath
	case pkgmanager.ProvenanceSystemDefault:
		return "first available on system"
	}
	return res.Provenance.String()
}

func printExplanation(cmd *cobra.Command, res pkgmanager.Resolution, caps pkgmanager.Capabilities) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, ui.Title.Render("Detection for "+res.Dir))

	tbl := ui.NewTable(out, "SIGNAL", "VALUE", "VERDICT")

	switch {
	case res.Override.Raw == "":
		tbl.Row("override", "(unset)", "-")
	case !res.Override.Valid:
		tbl.Row("override", res.Override.Raw, "invalid, ignored")
	case res.Override.Demoted:
		tbl.Row("override", res.Override.Manager, res.Override.Manager.String()+" not installed, demoted")
	default:
		tbl.Row("override", res.Override.Manager, "wins")
	}

	if res.Lockfile.Found {
		tbl.Row("lockfile", res.Lockfile.Path, verdictFor(res, pkgmanager.ProvenanceLockfile))
	} else {
		tbl.Row("lockfile", "(none)", "-")
	}

	if res.Workspace.Kind != pkgmanager.WorkspaceNone {
		tbl.Row("workspace", res.Workspace.ConfigPath, verdictFor(res, pkgmanager.ProvenanceWorkspace))
	} else {
		tbl.Row("workspace", "(none)", "-")
	}

	var installed []string
	for _, m := range pkgmanager.Managers() {
		if caps.Has(m) {
			installed = append(installed, m.String())
		}
	}
	if len(installed) == 0 {
		tbl.Row("system", "(none installed)", "-")
	} else {
		tbl.Row("system", strings.Join(installed, ", "), verdictFor(res, pkgmanager.ProvenanceSystemDefault))
	}
	tbl.Flush()

	fmt.Fprintln(out)
	if res.Found {
		fmt.Fprintf(out, "winner: %s via %s\n", ui.Ok.Render(res.Manager.String()), res.Provenance)
	} else {
		fmt.Fprintln(out, "winner: "+ui.Warn.Render("none"))
	}
}

func verdictFor(res pkgmanager.Resolution, p pkgmanager.Provenance) string {
	if res.Found && res.Provenance == p {
		return "wins"
	}
	return "outranked"
}
