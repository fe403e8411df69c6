package planner

import (
	"fmt"
)

// OpKind discriminates the LinkOperation variants
type OpKind int

const (
	OpCreate OpKind = iota
	OpAlreadyLinked
	OpConflict
	OpRemove
)

func (k OpKind) String() string {
	switch k {
	case OpCreate:
		return "create"
	case OpAlreadyLinked:
		return "already-linked"
	case OpConflict:
		return "conflict"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// ConflictReason explains why a target blocks a link
type ConflictReason int

const (
	ReasonNone ConflictReason = iota
	// ReasonNotASymlink: a regular file sits where the link should go
	ReasonNotASymlink
	// ReasonPointsElsewhere: a symlink exists but targets another source
	ReasonPointsElsewhere
	// ReasonKindMismatch: a directory was expected and a file found, or vice versa
	ReasonKindMismatch
)

func (r ConflictReason) String() string {
	switch r {
	case ReasonNone:
		return ""
	case ReasonNotASymlink:
		return "not a symlink"
	case ReasonPointsElsewhere:
		return "points elsewhere"
	case ReasonKindMismatch:
		return "kind mismatch"
	default:
		return "unknown"
	}
}

// Operation is one step of a plan. Build it with the constructors below so
// that only the fields meaningful for its Kind are set.
type Operation struct {
	Kind OpKind

	// RelPath is the package-relative path the operation concerns
	RelPath string

	// Source is the absolute path inside the package
	Source string

	// Target is the absolute path inside the target directory
	Target string

	// Reason is set for conflicts only
	Reason ConflictReason

	// Dir marks operations on a whole directory, i.e. folded links
	Dir bool
}

// Create plans a new symlink target -> source.
func Create(rel, source, target string, dir bool) Operation {
	return Operation{Kind: OpCreate, RelPath: rel, Source: source, Target: target, Dir: dir}
}

// AlreadyLinked records a target that already is the expected symlink.
func AlreadyLinked(rel, source, target string, dir bool) Operation {
	return Operation{Kind: OpAlreadyLinked, RelPath: rel, Source: source, Target: target, Dir: dir}
}

// Conflict records a target that blocks linking.
func Conflict(rel, source, target string, reason ConflictReason) Operation {
	return Operation{Kind: OpConflict, RelPath: rel, Source: source, Target: target, Reason: reason}
}

// Remove plans deleting the symlink at target.
func Remove(rel, source, target string, dir bool) Operation {
	return Operation{Kind: OpRemove, RelPath: rel, Source: source, Target: target, Dir: dir}
}

// Mutates reports whether applying the operation changes the filesystem.
func (o Operation) Mutates() bool {
	return o.Kind == OpCreate || o.Kind == OpRemove
}

func (o Operation) String() string {
	switch o.Kind {
	case OpCreate:
		return fmt.Sprintf("create %s -> %s", o.Target, o.Source)
	case OpAlreadyLinked:
		return fmt.Sprintf("already linked %s", o.Target)
	case OpConflict:
		return fmt.Sprintf("conflict %s (%s)", o.Target, o.Reason)
	case OpRemove:
		return fmt.Sprintf("remove %s", o.Target)
	default:
		return "unknown operation"
	}
}
