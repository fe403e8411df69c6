package planner

import (
	"path/filepath"

	"github.com/arthur-debert/slinky/pkg/paths"
	"github.com/arthur-debert/slinky/pkg/types"
)

// Direction selects between projecting a package and withdrawing it
type Direction int

const (
	Link Direction = iota
	Unlink
)

func (d Direction) String() string {
	if d == Unlink {
		return "unlink"
	}
	return "link"
}

// Counts aggregates a plan by operation kind
type Counts struct {
	Create        int `json:"create"`
	AlreadyLinked int `json:"already_linked"`
	Conflict      int `json:"conflict"`
	Remove        int `json:"remove"`
}

// Total is the number of operations counted.
func (c Counts) Total() int {
	return c.Create + c.AlreadyLinked + c.Conflict + c.Remove
}

// PlanResult is the ordered outcome of planning one package. It is not
// modified after Plan returns.
type PlanResult struct {
	Package    types.Package
	TargetDir  string
	Direction  Direction
	Operations []Operation
	Counts     Counts
}

func (p *PlanResult) add(op Operation) {
	p.Operations = append(p.Operations, op)
	switch op.Kind {
	case OpCreate:
		p.Counts.Create++
	case OpAlreadyLinked:
		p.Counts.AlreadyLinked++
	case OpConflict:
		p.Counts.Conflict++
	case OpRemove:
		p.Counts.Remove++
	}
}

// HasChanges reports whether applying the plan would mutate anything.
func (p *PlanResult) HasChanges() bool {
	return p.Counts.Create+p.Counts.Remove > 0
}

// Conflicts returns the conflict operations in plan order.
func (p *PlanResult) Conflicts() []Operation {
	return p.Filter(OpConflict)
}

// Pending returns the creates that link the package's own entries. Creates
// that relink another package's entries while unfolding a shared directory
// are left out.
func (p *PlanResult) Pending() []Operation {
	var out []Operation
	root := filepath.Clean(p.Package.Root)
	for _, op := range p.Filter(OpCreate) {
		if paths.IsWithin(root, op.Source) {
			out = append(out, op)
		}
	}
	return out
}

// Filter returns the operations of the given kinds in plan order.
func (p *PlanResult) Filter(kinds ...OpKind) []Operation {
	var out []Operation
	for _, op := range p.Operations {
		for _, k := range kinds {
			if op.Kind == k {
				out = append(out, op)
				break
			}
		}
	}
	return out
}
