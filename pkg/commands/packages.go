package commands

import (
	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/executor"
	"github.com/arthur-debert/slinky/pkg/packages"
	"github.com/arthur-debert/slinky/pkg/planner"
	"github.com/arthur-debert/slinky/pkg/status"
	"github.com/arthur-debert/slinky/pkg/types"
)

// ListPackages returns every package in stowDir.
func ListPackages(rc *types.RunContext, stowDir string) ([]types.Package, error) {
	log := rc.Logger.With().Str("component", "commands").Logger()
	log.Debug().Str("command", "ListPackages").Msg("Executing command")

	pkgs, err := packages.Resolve(rc, stowDir)
	if err != nil {
		return nil, err
	}

	log.Info().Str("command", "ListPackages").Int("packageCount", len(pkgs)).Msg("Command finished")
	return pkgs, nil
}

func selectPackages(rc *types.RunContext, opts PackageOptions) ([]types.Package, error) {
	all, err := packages.Resolve(rc, opts.StowDir)
	if err != nil {
		return nil, err
	}
	return packages.Select(all, opts.names())
}

// LinkPackages plans and executes linking for the selected packages.
func LinkPackages(rc *types.RunContext, opts PackageOptions, mode executor.Mode) ([]*executor.ExecutionLog, error) {
	return run(rc, opts, planner.Link, mode)
}

// UnlinkPackages plans and executes unlinking for the selected packages.
func UnlinkPackages(rc *types.RunContext, opts PackageOptions, mode executor.Mode) ([]*executor.ExecutionLog, error) {
	return run(rc, opts, planner.Unlink, mode)
}

// run plans every package before executing any, so a planning error leaves
// the filesystem untouched. When applying, each package after the first is
// planned again just before it runs, since an earlier one may have folded a
// directory they share.
func run(rc *types.RunContext, opts PackageOptions, direction planner.Direction, mode executor.Mode) ([]*executor.ExecutionLog, error) {
	log := rc.Logger.With().Str("component", "commands").Logger()
	log.Debug().
		Str("direction", direction.String()).
		Str("mode", mode.String()).
		Msg("Executing command")

	if opts.TargetDir == "" {
		return nil, errors.New(errors.ErrInvalidInput, "target directory is not set")
	}
	if len(opts.Names) == 0 && !opts.All && len(opts.Defaults) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no packages given; name packages or use --all")
	}

	pkgs, err := selectPackages(rc, opts)
	if err != nil {
		return nil, err
	}

	plans := make([]*planner.PlanResult, 0, len(pkgs))
	for _, pkg := range pkgs {
		plan, err := planner.Plan(rc, pkg, targetFor(pkg, opts.TargetDir), direction)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	logs := make([]*executor.ExecutionLog, 0, len(plans))
	for i, plan := range plans {
		if mode == executor.Apply && i > 0 {
			plan, err = planner.Plan(rc, plan.Package, plan.TargetDir, direction)
			if err != nil {
				return logs, err
			}
		}
		logs = append(logs, executor.Execute(rc, plan, mode))
	}

	log.Info().
		Str("direction", direction.String()).
		Int("packageCount", len(logs)).
		Msg("Command finished")
	return logs, nil
}

// Failures counts failed operations across logs.
func Failures(logs []*executor.ExecutionLog) int {
	n := 0
	for _, l := range logs {
		n += l.Counts.Failed
	}
	return n
}

// Status reports the link state of the selected packages. With no names
// every package is reported.
func Status(rc *types.RunContext, opts PackageOptions) ([]*status.Report, error) {
	opts.All = len(opts.Names) == 0
	pkgs, err := selectPackages(rc, opts)
	if err != nil {
		return nil, err
	}

	reports := make([]*status.Report, 0, len(pkgs))
	for _, pkg := range pkgs {
		r, err := status.Of(rc, pkg, targetFor(pkg, opts.TargetDir))
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}
