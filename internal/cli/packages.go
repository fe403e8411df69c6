package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/slinky/pkg/commands"
	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/executor"
	"github.com/arthur-debert/slinky/pkg/planner"
)

func newListCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.session(cmd)
			if err != nil {
				return err
			}
			pkgs, err := commands.ListPackages(s.rc, s.cfg.StowDir)
			if err != nil {
				return err
			}
			return s.out.Packages(s.cfg.StowDir, pkgs)
		},
	}
}

func newLinkCmd(g *globalOptions) *cobra.Command {
	return newExecuteCmd(g, planner.Link, &cobra.Command{
		Use:     "link [packages...]",
		Short:   MsgLinkShort,
		Long:    MsgLinkLong,
		Example: MsgLinkExample,
	})
}

func newUnlinkCmd(g *globalOptions) *cobra.Command {
	return newExecuteCmd(g, planner.Unlink, &cobra.Command{
		Use:     "unlink [packages...]",
		Short:   MsgUnlinkShort,
		Long:    MsgUnlinkLong,
		Example: MsgUnlinkExample,
	})
}

// newExecuteCmd wires the shared plan-and-execute flow of link and unlink.
func newExecuteCmd(g *globalOptions, direction planner.Direction, cmd *cobra.Command) *cobra.Command {
	var all bool

	cmd.GroupID = "core"
	cmd.ValidArgsFunction = packageNamesCompletion(g)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		s, err := g.session(cmd)
		if err != nil {
			return err
		}

		opts := commands.PackageOptionsFrom(s.cfg, args, all)
		run := commands.LinkPackages
		if direction == planner.Unlink {
			run = commands.UnlinkPackages
		}
		logs, err := run(s.rc, opts, g.mode())
		if err != nil {
			return err
		}
		if err := s.out.Execution(logs); err != nil {
			return err
		}

		conflicts := 0
		for _, l := range logs {
			conflicts += l.Plan.Counts.Conflict
		}
		if conflicts > 0 {
			s.out.Message("Warning", MsgConflictsFormat, conflicts)
		}
		if g.mode() == executor.DryRun {
			s.out.Message("Muted", MsgDryRunNotice)
		}
		if n := commands.Failures(logs); n > 0 {
			return errors.Newf(errors.ErrIO, MsgErrFailedOps, n).WithDetail("failed", n)
		}
		return nil
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, MsgFlagAll)
	return cmd
}

func newStatusCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "status [packages...]",
		Short:             MsgStatusShort,
		Long:              MsgStatusLong,
		GroupID:           "core",
		ValidArgsFunction: packageNamesCompletion(g),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.session(cmd)
			if err != nil {
				return err
			}
			reports, err := commands.Status(s.rc, commands.PackageOptionsFrom(s.cfg, args, false))
			if err != nil {
				return err
			}
			return s.out.Status(reports)
		},
	}
}

// packageNamesCompletion completes the names of packages not already given.
func packageNamesCompletion(g *globalOptions) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		s, err := g.session(cmd)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		all, err := commands.ListPackages(s.rc, s.cfg.StowDir)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		given := make(map[string]bool, len(args))
		for _, a := range args {
			given[strings.TrimRight(a, "/")] = true
		}
		var names []string
		for _, p := range all {
			if !given[p.Name] {
				names = append(names, p.Name)
			}
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}
