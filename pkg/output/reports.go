package output

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/planner"
	"github.com/arthur-debert/slinky/pkg/secrets"
	"github.com/arthur-debert/slinky/pkg/status"
	"github.com/arthur-debert/slinky/pkg/ui"
	"github.com/arthur-debert/slinky/pkg/vault"
)

// table renders rows with pterm. Text mode drops pterm's colors so the
// output is stable when piped.
func (r *Renderer) table(data pterm.TableData) error {
	tp := pterm.DefaultTable.WithHasHeader().WithData(data)
	if r.format != ui.FormatTerminal {
		plain := pterm.NewStyle()
		tp = tp.WithStyle(plain).WithHeaderStyle(plain).WithSeparatorStyle(plain)
	}

	s, err := tp.Srender()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to render table")
	}
	_, err = fmt.Fprintln(r.w, s)
	return err
}

type statusView struct {
	Package   string         `json:"package"`
	TargetDir string         `json:"target_dir"`
	State     status.State   `json:"state"`
	Counts    planner.Counts `json:"counts"`
	Conflicts []conflictView `json:"conflicts,omitempty"`
	Pending   []string       `json:"pending,omitempty"`
}

type conflictView struct {
	Target string `json:"target"`
	Reason string `json:"reason"`
}

var stateStyles = map[status.State]string{
	status.Linked:     "Success",
	status.Partial:    "Warning",
	status.Unlinked:   "Muted",
	status.Conflicted: "Error",
}

// Status renders one row per package, followed by the conflicting targets.
func (r *Renderer) Status(reports []*status.Report) error {
	views := make([]statusView, 0, len(reports))
	for _, rep := range reports {
		v := statusView{
			Package:   rep.Package.Name,
			TargetDir: rep.TargetDir,
			State:     rep.State,
			Counts:    rep.Counts,
		}
		for _, op := range rep.Conflicts {
			v.Conflicts = append(v.Conflicts, conflictView{Target: op.Target, Reason: op.Reason.String()})
		}
		for _, op := range rep.Pending {
			v.Pending = append(v.Pending, op.Target)
		}
		views = append(views, v)
	}

	if r.format == ui.FormatJSON {
		return r.json(views)
	}
	if len(views) == 0 {
		r.Message("Muted", "No packages")
		return nil
	}

	data := pterm.TableData{{"Package", "State", "Linked", "Pending", "Conflicts"}}
	for _, v := range views {
		data = append(data, []string{
			v.Package,
			r.style(stateStyles[v.State], string(v.State)),
			fmt.Sprint(v.Counts.AlreadyLinked),
			fmt.Sprint(len(v.Pending)),
			fmt.Sprint(v.Counts.Conflict),
		})
	}
	if err := r.table(data); err != nil {
		return err
	}

	for _, v := range views {
		for _, c := range v.Conflicts {
			_, _ = fmt.Fprintf(r.w, "%s %s %s\n",
				r.style("Conflict", "conflict"), c.Target, r.style("Muted", "("+c.Reason+")"))
		}
	}
	return nil
}

// Findings renders the scan results. Only previews are shown, never values.
func (r *Renderer) Findings(findings []secrets.Finding) error {
	if r.format == ui.FormatJSON {
		if findings == nil {
			findings = []secrets.Finding{}
		}
		return r.json(findings)
	}
	if len(findings) == 0 {
		r.Message("Success", "No secrets found")
		return nil
	}

	data := pterm.TableData{{"File", "Line", "Category", "Placeholder", "Preview"}}
	for _, f := range findings {
		data = append(data, []string{
			f.File,
			fmt.Sprint(f.Line),
			string(f.Category),
			r.style("Secret", secrets.Token(f.Placeholder)),
			f.Preview,
		})
	}
	if err := r.table(data); err != nil {
		return err
	}
	r.Message("Muted", "%d finding(s) in %d file(s)", len(findings), countFiles(findings))
	return nil
}

func countFiles(findings []secrets.Finding) int {
	files, _ := secrets.ByFile(findings)
	return len(files)
}

type templateView struct {
	Source       string   `json:"source"`
	Path         string   `json:"path"`
	Placeholders []string `json:"placeholders"`
}

// Templates lists the template files written by a redaction.
func (r *Renderer) Templates(tfs []vault.TemplateFile) error {
	views := make([]templateView, 0, len(tfs))
	for _, tf := range tfs {
		views = append(views, templateView(tf))
	}
	if r.format == ui.FormatJSON {
		return r.json(views)
	}
	return r.execute("templates", views)
}

// Written lists files produced by rehydration.
func (r *Renderer) Written(files []string) error {
	if files == nil {
		files = []string{}
	}
	if r.format == ui.FormatJSON {
		return r.json(struct {
			Written []string `json:"written"`
		}{files})
	}
	return r.execute("written", files)
}
