// Package status summarizes how far a package is linked into its target.
package status

import (
	"github.com/arthur-debert/slinky/pkg/planner"
	"github.com/arthur-debert/slinky/pkg/types"
)

// State is the overall link state of a package
type State string

const (
	// Linked: every entry is in place
	Linked State = "linked"
	// Partial: some entries are linked and others are missing
	Partial State = "partial"
	// Unlinked: nothing is linked yet
	Unlinked State = "unlinked"
	// Conflicted: at least one target blocks linking
	Conflicted State = "conflict"
)

// Report is the status of one package
type Report struct {
	Package   types.Package
	TargetDir string
	State     State
	Counts    planner.Counts
	Conflicts []planner.Operation
	Pending   []planner.Operation
}

// Of derives the status of pkg from its link plan against targetDir.
func Of(rc *types.RunContext, pkg types.Package, targetDir string) (*Report, error) {
	plan, err := planner.Plan(rc, pkg, targetDir, planner.Link)
	if err != nil {
		return nil, err
	}
	return FromPlan(plan), nil
}

// FromPlan classifies an existing link plan.
func FromPlan(plan *planner.PlanResult) *Report {
	r := &Report{
		Package:   plan.Package,
		TargetDir: plan.TargetDir,
		Counts:    plan.Counts,
		Conflicts: plan.Conflicts(),
		Pending:   plan.Pending(),
	}

	c := plan.Counts
	switch {
	case c.Conflict > 0:
		r.State = Conflicted
	case len(r.Pending) == 0:
		r.State = Linked
	case c.AlreadyLinked > 0:
		r.State = Partial
	default:
		r.State = Unlinked
	}
	return r
}
