package executor

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/paths"
	"github.com/arthur-debert/slinky/pkg/planner"
	"github.com/arthur-debert/slinky/pkg/types"
)

// Mode selects between simulating and applying a plan
type Mode int

const (
	DryRun Mode = iota
	Apply
)

func (m Mode) String() string {
	if m == Apply {
		return "apply"
	}
	return "dry-run"
}

// Outcome is what happened to one operation
type Outcome int

const (
	Applied Outcome = iota
	Skipped
	Failed
	WouldApply
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	case WouldApply:
		return "would apply"
	default:
		return "unknown"
	}
}

// Entry pairs an operation with its outcome. Err is set only when Failed.
type Entry struct {
	Op      planner.Operation
	Outcome Outcome
	Err     error
}

// Counts aggregates an execution log by outcome
type Counts struct {
	Applied    int `json:"applied"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
	WouldApply int `json:"would_apply"`
}

// ExecutionLog is the per-operation record of one Execute call.
type ExecutionLog struct {
	Plan    *planner.PlanResult
	Mode    Mode
	Entries []Entry
	Counts  Counts
}

func (l *ExecutionLog) record(op planner.Operation, outcome Outcome, err error) {
	l.Entries = append(l.Entries, Entry{Op: op, Outcome: outcome, Err: err})
	switch outcome {
	case Applied:
		l.Counts.Applied++
	case Skipped:
		l.Counts.Skipped++
	case Failed:
		l.Counts.Failed++
	case WouldApply:
		l.Counts.WouldApply++
	}
}

// Failures returns the failed entries in execution order.
func (l *ExecutionLog) Failures() []Entry {
	var out []Entry
	for _, e := range l.Entries {
		if e.Outcome == Failed {
			out = append(out, e)
		}
	}
	return out
}

// OK reports whether no operation failed.
func (l *ExecutionLog) OK() bool {
	return l.Counts.Failed == 0
}

// Execute runs plan in the given mode. It does not return an error: per
// operation failures are recorded in the log and execution continues.
func Execute(rc *types.RunContext, plan *planner.PlanResult, mode Mode) *ExecutionLog {
	logger := rc.Logger.With().
		Str("component", "executor").
		Str("package", plan.Package.Name).
		Str("mode", mode.String()).
		Logger()

	log := &ExecutionLog{Plan: plan, Mode: mode}
	x := &executor{rc: rc, root: plan.TargetDir, logger: logger}

	// folded links that could not be removed; writing below them would
	// land inside whatever they point to
	var stuck []string

	for _, op := range plan.Operations {
		if !op.Mutates() {
			log.record(op, Skipped, nil)
			continue
		}
		if mode == DryRun {
			log.record(op, WouldApply, nil)
			continue
		}
		if dir, ok := below(stuck, op.Target); ok {
			err := errors.New(errors.ErrConflict, "parent link was not removed").
				WithDetail("path", op.Target).
				WithDetail("parent", dir)
			logger.Warn().Err(err).Str("target", op.Target).Msg("Operation failed")
			log.record(op, Failed, err)
			continue
		}

		var (
			outcome Outcome
			err     error
		)
		switch op.Kind {
		case planner.OpCreate:
			outcome, err = x.create(op)
		case planner.OpRemove:
			outcome, err = x.remove(op)
		}

		if err != nil {
			logger.Warn().Err(err).Str("target", op.Target).Msg("Operation failed")
			log.record(op, Failed, err)
			if op.Kind == planner.OpRemove && op.Dir {
				stuck = append(stuck, op.Target)
			}
			continue
		}
		logger.Debug().Str("op", op.Kind.String()).Str("target", op.Target).Str("outcome", outcome.String()).Msg("Executed")
		log.record(op, outcome, nil)
	}

	logger.Info().
		Int("applied", log.Counts.Applied).
		Int("skipped", log.Counts.Skipped).
		Int("failed", log.Counts.Failed).
		Int("would_apply", log.Counts.WouldApply).
		Msg("Execution finished")
	return log
}

// below returns the entry of dirs that strictly contains target.
func below(dirs []string, target string) (string, bool) {
	for _, dir := range dirs {
		if target != dir && paths.IsWithin(dir, target) {
			return dir, true
		}
	}
	return "", false
}

type executor struct {
	rc     *types.RunContext
	root   string
	logger zerolog.Logger
}

// create makes parent directories and the symlink. An existing target is
// never replaced: if it already is the link the operation is skipped,
// otherwise the target changed since planning and the operation fails.
func (x *executor) create(op planner.Operation) (Outcome, error) {
	if info, err := x.rc.FS.Lstat(op.Target); err == nil {
		if info.Mode()&os.ModeSymlink != 0 {
			if dest, err := x.rc.FS.Readlink(op.Target); err == nil && dest == op.Source {
				return Skipped, nil
			}
		}
		return Failed, errors.New(errors.ErrConflict, "target appeared after planning").
			WithDetail("operation", "symlink").
			WithDetail("path", op.Target)
	} else if !os.IsNotExist(err) {
		return Failed, errors.PathError(err, "lstat", op.Target)
	}

	parent := filepath.Dir(op.Target)
	if err := x.rc.FS.MkdirAll(parent, 0755); err != nil {
		return Failed, errors.PathError(err, "mkdir", parent)
	}
	if err := x.rc.FS.Symlink(op.Source, op.Target); err != nil {
		return Failed, errors.PathError(err, "symlink", op.Target)
	}
	return Applied, nil
}

// remove deletes the symlink at the target, then prunes directories it
// leaves empty. Only symlinks are ever removed.
func (x *executor) remove(op planner.Operation) (Outcome, error) {
	info, err := x.rc.FS.Lstat(op.Target)
	if os.IsNotExist(err) {
		return Skipped, nil
	}
	if err != nil {
		return Failed, errors.PathError(err, "lstat", op.Target)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return Failed, errors.New(errors.ErrConflict, "target is no longer a symlink").
			WithDetail("operation", "remove").
			WithDetail("path", op.Target)
	}

	if err := x.rc.FS.Remove(op.Target); err != nil {
		return Failed, errors.PathError(err, "remove", op.Target)
	}
	x.prune(filepath.Dir(op.Target))
	return Applied, nil
}

// prune removes empty directories from dir upwards, stopping below the
// target root or at the first directory with content.
func (x *executor) prune(dir string) {
	for dir != x.root && paths.IsWithin(x.root, dir) {
		entries, err := x.rc.FS.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := x.rc.FS.Remove(dir); err != nil {
			x.logger.Warn().Err(err).Str("dir", dir).Msg("Could not prune empty directory")
			return
		}
		x.logger.Debug().Str("dir", dir).Msg("Pruned empty directory")
		dir = filepath.Dir(dir)
	}
}
