package output

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/slinky/pkg/executor"
	"github.com/arthur-debert/slinky/pkg/planner"
	"github.com/arthur-debert/slinky/pkg/types"
	"github.com/arthur-debert/slinky/pkg/ui"
)

type packageView struct {
	Name      string   `json:"name"`
	Root      string   `json:"root"`
	TargetDir string   `json:"target_dir,omitempty"`
	Ignore    []string `json:"ignore,omitempty"`
}

// Packages lists the packages found in stowDir.
func (r *Renderer) Packages(stowDir string, pkgs []types.Package) error {
	views := make([]packageView, 0, len(pkgs))
	for _, p := range pkgs {
		views = append(views, packageView{
			Name:      p.Name,
			Root:      p.Root,
			TargetDir: p.Config.TargetDir,
			Ignore:    p.Config.Ignore,
		})
	}

	if r.format == ui.FormatJSON {
		return r.json(struct {
			StowDir  string        `json:"stow_dir"`
			Packages []packageView `json:"packages"`
		}{stowDir, views})
	}
	return r.execute("packages", struct {
		StowDir  string
		Packages []packageView
	}{stowDir, views})
}

type operationView struct {
	Kind    string `json:"kind"`
	Path    string `json:"path"`
	Source  string `json:"source"`
	Target  string `json:"target"`
	Dir     bool   `json:"dir"`
	Reason  string `json:"reason,omitempty"`
	Outcome string `json:"outcome"`
	Error   string `json:"error,omitempty"`

	// template-only fields
	Label string `json:"-"`
	Style string `json:"-"`
}

type executionView struct {
	Package    string          `json:"package"`
	TargetDir  string          `json:"target_dir"`
	Direction  string          `json:"direction"`
	Mode       string          `json:"mode"`
	Operations []operationView `json:"operations"`
	Counts     executor.Counts `json:"counts"`
	OK         bool            `json:"ok"`
	Summary    string          `json:"-"`
}

var kindStyles = map[planner.OpKind]string{
	planner.OpCreate:        "Create",
	planner.OpAlreadyLinked: "Linked",
	planner.OpConflict:      "Conflict",
	planner.OpRemove:        "Remove",
}

func newExecutionView(log *executor.ExecutionLog) executionView {
	v := executionView{
		Package:    log.Plan.Package.Name,
		TargetDir:  log.Plan.TargetDir,
		Direction:  log.Plan.Direction.String(),
		Mode:       log.Mode.String(),
		Operations: make([]operationView, 0, len(log.Entries)),
		Counts:     log.Counts,
		OK:         log.OK(),
		Summary:    summary(log),
	}

	for _, e := range log.Entries {
		op := operationView{
			Kind:    e.Op.Kind.String(),
			Path:    e.Op.Target,
			Source:  e.Op.Source,
			Target:  e.Op.Target,
			Dir:     e.Op.Dir,
			Outcome: e.Outcome.String(),
			Label:   e.Op.Kind.String(),
			Style:   kindStyles[e.Op.Kind],
		}
		if e.Op.Kind == planner.OpConflict {
			op.Reason = e.Op.Reason.String()
		}
		if e.Err != nil {
			op.Error = e.Err.Error()
			op.Label = "failed"
			op.Style = "Error"
		}
		if e.Op.Dir {
			op.Path += "/"
		}
		v.Operations = append(v.Operations, op)
	}
	return v
}

func summary(log *executor.ExecutionLog) string {
	c := log.Counts
	var parts []string
	if log.Mode == executor.DryRun {
		parts = append(parts, fmt.Sprintf("%d would apply", c.WouldApply))
	} else {
		parts = append(parts, fmt.Sprintf("%d applied", c.Applied))
	}
	parts = append(parts, fmt.Sprintf("%d skipped", c.Skipped))
	if c.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", c.Failed))
	}
	return strings.Join(parts, ", ")
}

// Execution renders the outcome of link or unlink runs, one block per
// package. JSON output is a single array.
func (r *Renderer) Execution(logs []*executor.ExecutionLog) error {
	views := make([]executionView, 0, len(logs))
	for _, log := range logs {
		views = append(views, newExecutionView(log))
	}

	if r.format == ui.FormatJSON {
		return r.json(views)
	}
	for _, v := range views {
		if err := r.execute("execution", v); err != nil {
			return err
		}
	}
	return nil
}
